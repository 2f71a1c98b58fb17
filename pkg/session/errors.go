package session

import "errors"

// ErrInvalidResponse is returned when the backend reports success but
// the payload is missing the token or the user.
var ErrInvalidResponse = errors.New("session: invalid response from server")
