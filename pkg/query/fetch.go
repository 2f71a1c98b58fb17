package query

import (
	"context"
	"fmt"
	"time"
)

// FetchFunc produces the value for a key, typically by hitting the
// backend through a domain API module.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// Fetch returns the value for key, hitting the network only when
// needed.
//
// If the cached value is fresh (populated within its stale window and
// not invalidated), it is returned without a network call. Otherwise
// fn runs, de-duplicated so that concurrent callers for the same key
// share a single in-flight request, and the result is stored.
//
// On fetch failure the last-known value, if any, is returned alongside
// the error; callers decide whether stale data is acceptable.
func Fetch[T any](ctx context.Context, c *Client, key Key, fn FetchFunc[T], opts ...FetchOption) (T, error) {
	var zero T

	o := c.fetchDefaults()
	for _, opt := range opts {
		opt(&o)
	}

	anyFn := func(ctx context.Context) (any, error) {
		return fn(ctx)
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return zero, ErrClosed
	}

	e := c.ensureEntry(key, o.staleTime, o.gcTime)
	e.staleTime = o.staleTime
	e.gcTime = o.gcTime
	e.refetch = anyFn

	if !o.enabled {
		if e.hasValue {
			val, castErr := cast[T](e.value, key)
			c.mu.Unlock()
			return val, castErr
		}
		c.mu.Unlock()
		return zero, ErrDisabled
	}

	now := time.Now()
	if e.fresh(now) {
		val, castErr := cast[T](e.value, key)
		c.mu.Unlock()
		return val, castErr
	}

	gen := e.generation
	prev, hasPrev := e.value, e.hasValue
	c.mu.Unlock()

	v, err := c.runFetch(ctx, key, gen, anyFn, o.retries)
	if err != nil {
		if hasPrev {
			val, castErr := cast[T](prev, key)
			if castErr != nil {
				return zero, castErr
			}
			return val, err
		}
		return zero, err
	}
	return cast[T](v, key)
}

// Get peeks at the cached value for key without triggering a fetch.
func Get[T any](c *Client, key Key) (T, bool) {
	var zero T

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key.String()]
	if !ok || !e.hasValue {
		return zero, false
	}
	v, ok := e.value.(T)
	if !ok {
		return zero, false
	}
	return v, true
}

// Seed writes a provisional value directly into the cache, bypassing
// the network. The entry counts as fresh so reads serve it
// immediately, but it stays flagged provisional until the next
// successful fetch confirms (and possibly replaces) it; the fetch is
// authoritative, never the seed.
func Seed[T any](c *Client, key Key, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := c.ensureEntry(key, c.opts.staleTime, c.opts.gcTime)
	e.value = value
	e.hasValue = true
	e.provisional = true
	e.err = nil
	e.updatedAt = time.Now()
	e.invalidated = false
	c.notifyLocked(e)
}

func (c *Client) fetchDefaults() fetchOptions {
	return fetchOptions{
		staleTime: c.opts.staleTime,
		gcTime:    c.opts.gcTime,
		retries:   c.opts.queryRetries,
		enabled:   true,
	}
}

func cast[T any](v any, key Key) (T, error) {
	t, ok := v.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("query: cached value for %q is %T, not %T", key.String(), v, zero)
	}
	return t, nil
}
