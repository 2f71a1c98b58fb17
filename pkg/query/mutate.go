package query

import "context"

// Callbacks receive the outcome of a mutation. OnSuccess typically
// invalidates the affected cache prefixes; OnError surfaces the
// normalized error to the UI layer.
type Callbacks[T any] struct {
	OnSuccess func(T)
	OnError   func(error)
}

// Mutate executes a mutation. Mutations are never retried and never
// cached; their only interaction with the cache is whatever the
// OnSuccess callback chooses to invalidate.
func Mutate[T any](ctx context.Context, fn func(ctx context.Context) (T, error), cb Callbacks[T]) (T, error) {
	v, err := fn(ctx)
	if err != nil {
		if cb.OnError != nil {
			cb.OnError(err)
		}
		var zero T
		return zero, err
	}
	if cb.OnSuccess != nil {
		cb.OnSuccess(v)
	}
	return v, nil
}
