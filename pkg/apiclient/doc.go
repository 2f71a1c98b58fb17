// Package apiclient is the HTTP transport for the SDK: one chokepoint
// through which every backend call flows.
//
// # Contract
//
// [Client.Request] and [Client.AuthRequest] return (*Response, error)
// where a non-nil error is always *[Error]:
//
//   - HTTP failures (non-2xx) carry the server status and the body's
//     "message" or "error" field, falling back to a generic string.
//   - Transport failures (DNS, refused connection, unparseable JSON)
//     carry status 500, a generic message, and wrap [ErrNetwork].
//
// # Envelope normalization
//
// Successful bodies shaped {"data": X} are unwrapped one level to X.
// Bodies without a "data" key pass through verbatim. The unwrap never
// recurses: {"data": {"data": X}} yields {"data": X}, which is exactly
// what the paginated users endpoint relies on.
//
// # Authentication
//
// AuthRequest reads the current token from the configured
// [tokenstore.Store] and injects "Authorization: Bearer <token>" when
// present. Per-request headers set via [WithHeader] take precedence
// over every default.
//
// Wire logging of request and response bodies happens only when the
// client is configured with the development environment.
package apiclient
