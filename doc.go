// Package siteclient is a typed Go client for the marketing-site admin
// backend.
//
// The backend wraps every success payload in a {"data": ...} envelope
// and reports failures as a status code plus a message string. This
// client normalizes both: pkg/apiclient unwraps exactly one envelope
// level and converts every failure, HTTP or network, into a single
// error shape.
//
// On top of the transport sit the domain API modules (pkg/api), a
// stale-while-revalidate query cache (pkg/query), the session resolver
// (pkg/session), a route guard (pkg/guard) and a typed projection of
// site settings (pkg/settings). The root Client composes all of them:
//
//	c, err := siteclient.New("https://api.example.com/api",
//		siteclient.WithTokenDir(dir),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer c.Close()
//
//	c.Resolve(ctx)
//	if c.Session().IsAdmin() {
//		articles, err := c.ListArticles(ctx)
//		...
//	}
//
// Reads are cached per key and deduplicated across concurrent callers;
// mutations invalidate the affected key prefixes so the next read
// refetches. See pkg/query for the caching semantics.
package siteclient
