package query

import (
	"context"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// entry holds the cached state for one key.
type entry struct {
	key         Key
	value       any
	err         error
	updatedAt   time.Time // when value was last populated
	lastUsed    time.Time // for garbage collection
	staleTime   time.Duration
	gcTime      time.Duration
	generation  uint64
	subscribers map[uint64]chan struct{}
	refetch     func(ctx context.Context) (any, error)
	hasValue    bool
	invalidated bool
	provisional bool
	fetching    bool
}

// fresh reports whether the cached value can be served without a
// network call. Invalidated entries are never fresh regardless of age.
func (e *entry) fresh(now time.Time) bool {
	if !e.hasValue || e.invalidated {
		return false
	}
	return now.Sub(e.updatedAt) < e.staleTime
}

// Client is the query cache: it keys server data by a stable tuple,
// tracks freshness, de-duplicates in-flight requests, and notifies
// subscribers on every state change. One instance is shared for the
// whole session; tests construct a fresh one per case.
type Client struct {
	mu      sync.Mutex
	entries map[string]*entry
	sf      singleflight.Group
	opts    *clientOptions
	log     *slog.Logger
	nextSub uint64
	done    chan struct{}
	closed  bool
}

// NewClient creates a query cache.
//
// Example:
//
//	c := query.NewClient(
//	    query.WithDefaultStaleTime(5 * time.Minute),
//	    query.WithDefaultGCTime(10 * time.Minute),
//	)
//	defer c.Close()
func NewClient(opts ...ClientOption) *Client {
	o := defaultClientOptions()
	for _, opt := range opts {
		opt(o)
	}

	c := &Client{
		entries: make(map[string]*entry),
		opts:    o,
		log:     o.log,
		done:    make(chan struct{}),
	}

	if o.gcInterval > 0 {
		go c.janitor()
	}

	return c
}

// Close stops the janitor goroutine. Close is idempotent.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	close(c.done)
	return nil
}

// Subscribe registers interest in a key. The returned channel receives
// a (coalesced, non-blocking) signal whenever the entry's state
// changes; the cancel function unregisters. Subscribed keys are exempt
// from garbage collection and are refetched on invalidation.
func (c *Client) Subscribe(key Key) (<-chan struct{}, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := c.ensureEntry(key, c.opts.staleTime, c.opts.gcTime)
	id := c.nextSub
	c.nextSub++

	ch := make(chan struct{}, 1)
	e.subscribers[id] = ch

	cancel := func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if cur, ok := c.entries[key.String()]; ok {
			delete(cur.subscribers, id)
			cur.lastUsed = time.Now()
		}
	}
	return ch, cancel
}

// Invalidate marks every entry whose key starts with the prefix as
// stale and triggers a background refetch for entries that currently
// have subscribers. The last-known value stays servable until
// replaced.
func (c *Client) Invalidate(ctx context.Context, prefix Key) {
	c.mu.Lock()

	var refetches []func()
	for _, e := range c.entries {
		if !e.key.HasPrefix(prefix) {
			continue
		}
		e.invalidated = true
		e.generation++
		c.notifyLocked(e)

		if len(e.subscribers) > 0 && e.refetch != nil {
			key, gen, fn := e.key, e.generation, e.refetch
			retries := c.opts.queryRetries
			refetches = append(refetches, func() {
				go func() {
					// Detach from the caller's lifetime: an unmounted
					// caller does not cancel a shared cache refresh.
					_, _ = c.runFetch(context.WithoutCancel(ctx), key, gen, fn, retries)
				}()
			})
		}
	}
	c.mu.Unlock()

	for _, refetch := range refetches {
		refetch()
	}
}

// Clear drops every cache entry. In-flight fetches are discarded on
// completion since their entries are gone.
func (c *Client) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, e := range c.entries {
		c.notifyLocked(e)
	}
	c.entries = make(map[string]*entry)
}

// IsProvisional reports whether the entry for key holds an optimistic
// seed that has not yet been confirmed by a fetch.
func (c *Client) IsProvisional(key Key) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key.String()]
	return ok && e.provisional
}

// IsFetching reports whether a fetch for key is currently in flight.
func (c *Client) IsFetching(key Key) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key.String()]
	return ok && e.fetching
}

// Err returns the last fetch error recorded for key, if any. The error
// coexists with a servable previous value.
func (c *Client) Err(key Key) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key.String()]; ok {
		return e.err
	}
	return nil
}

// RefetchStale refetches every subscribed entry whose value is no
// longer fresh. Applications call this from their own reconnect or
// focus triggers.
func (c *Client) RefetchStale(ctx context.Context) {
	c.mu.Lock()
	now := time.Now()
	var refetches []func()
	for _, e := range c.entries {
		if len(e.subscribers) == 0 || e.refetch == nil || e.fresh(now) {
			continue
		}
		key, gen, fn := e.key, e.generation, e.refetch
		retries := c.opts.queryRetries
		refetches = append(refetches, func() {
			go func() {
				_, _ = c.runFetch(context.WithoutCancel(ctx), key, gen, fn, retries)
			}()
		})
	}
	c.mu.Unlock()

	for _, refetch := range refetches {
		refetch()
	}
}

// ensureEntry returns the entry for key, creating it if needed.
// Caller must hold the mutex.
func (c *Client) ensureEntry(key Key, staleTime, gcTime time.Duration) *entry {
	ks := key.String()
	e, ok := c.entries[ks]
	if !ok {
		e = &entry{
			key:         key,
			staleTime:   staleTime,
			gcTime:      gcTime,
			subscribers: make(map[uint64]chan struct{}),
		}
		c.entries[ks] = e
	}
	e.lastUsed = time.Now()
	return e
}

// notifyLocked signals all subscribers of an entry without blocking.
// Caller must hold the mutex.
func (c *Client) notifyLocked(e *entry) {
	for _, ch := range e.subscribers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// runFetch executes fn at most retries+1 times, de-duplicated per
// (key, generation), and applies the result iff the entry's generation
// still matches. Responses from superseded requests are discarded.
func (c *Client) runFetch(ctx context.Context, key Key, gen uint64, fn func(ctx context.Context) (any, error), retries int) (any, error) {
	sfKey := key.String() + "#" + strconv.FormatUint(gen, 10)

	v, err, _ := c.sf.Do(sfKey, func() (any, error) {
		c.setFetching(key, gen, true)

		var val any
		var lastErr error
		for attempt := 0; attempt <= retries; attempt++ {
			val, lastErr = fn(ctx)
			if lastErr == nil {
				break
			}
			if ctx.Err() != nil {
				break
			}
		}

		if lastErr != nil {
			c.applyError(key, gen, lastErr)
			return nil, lastErr
		}
		c.applyValue(key, gen, val)
		return val, nil
	})
	return v, err
}

func (c *Client) setFetching(key Key, gen uint64, fetching bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key.String()]; ok && e.generation == gen {
		e.fetching = fetching
		c.notifyLocked(e)
	}
}

// applyValue stores a fetch result. A result whose originating request
// was superseded (generation mismatch) or whose entry was cleared is
// dropped: completion order must not let an old response overwrite a
// newer one.
func (c *Client) applyValue(key Key, gen uint64, val any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key.String()]
	if !ok || e.generation != gen {
		c.log.Debug("discarding superseded response", slog.String("key", key.String()))
		return
	}

	e.value = val
	e.hasValue = true
	e.err = nil
	e.updatedAt = time.Now()
	e.invalidated = false
	e.provisional = false
	e.fetching = false
	c.notifyLocked(e)
}

// applyError records a failure. The previous value, if any, remains
// servable.
func (c *Client) applyError(key Key, gen uint64, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key.String()]
	if !ok || e.generation != gen {
		return
	}

	e.err = err
	e.fetching = false
	c.notifyLocked(e)
}

// janitor periodically evicts entries with no subscribers that have
// not been used within their gcTime.
func (c *Client) janitor() {
	ticker := time.NewTicker(c.opts.gcInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.collect()
		}
	}
}

func (c *Client) collect() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for ks, e := range c.entries {
		if len(e.subscribers) == 0 && !e.fetching && now.Sub(e.lastUsed) > e.gcTime {
			delete(c.entries, ks)
		}
	}
}
