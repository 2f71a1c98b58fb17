package query

import (
	"fmt"
	"strings"
)

// Key identifies one cached server query: an ordered tuple of the
// resource name plus its parameters, e.g. ["users", "1", "10"].
type Key []string

// K builds a key from primitive parts. Non-string parts are formatted
// with their default representation.
func K(parts ...any) Key {
	key := make(Key, 0, len(parts))
	for _, p := range parts {
		switch v := p.(type) {
		case string:
			key = append(key, v)
		default:
			key = append(key, fmt.Sprint(v))
		}
	}
	return key
}

// String returns a stable string form used for map storage and
// in-flight de-duplication.
func (k Key) String() string {
	return strings.Join(k, "/")
}

// HasPrefix reports whether the key starts with the given prefix,
// element-wise. Every key has the empty prefix.
func (k Key) HasPrefix(prefix Key) bool {
	if len(prefix) > len(k) {
		return false
	}
	for i, p := range prefix {
		if k[i] != p {
			return false
		}
	}
	return true
}
