// Package query is a stale-while-revalidate cache for server data,
// keyed by ordered tuples of primitives.
//
// # Model
//
// Each key maps to one entry holding the last resolved value, a
// freshness timestamp, the last fetch error, and a fetching flag.
// [Fetch] serves a fresh value without touching the network; a stale or
// missing value triggers the fetch function, de-duplicated so that at
// most one request per key is ever in flight; concurrent callers
// attach to the same pending operation.
//
//	users, err := query.Fetch(ctx, c, query.K("users", page, limit),
//	    func(ctx context.Context) (*api.UserList, error) {
//	        return usersAPI.List(ctx, page, limit)
//	    })
//
// # Freshness and invalidation
//
// A value is fresh for its stale window (staleTime) after population.
// [Client.Invalidate] marks all entries under a key prefix stale,
// bumps their generation, and refetches the ones with subscribers.
// Responses whose originating request has been superseded by a newer
// generation are discarded, so completion order cannot resurrect old
// data. On fetch failure the previous value stays servable and the
// error is exposed alongside it.
//
// # Seeding
//
// [Seed] writes an optimistic value (e.g. the user returned by login)
// marked provisional; the next successful fetch is authoritative and
// clears the flag.
//
// # Lifecycle
//
// Entries with no subscribers are evicted after their gcTime by a
// background janitor. The client is an explicitly constructed,
// injected instance: process-wide for the session in production, one
// per test case in tests.
package query
