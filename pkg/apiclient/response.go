package apiclient

import (
	"encoding/json"
	"fmt"
)

// Response is a successful transport result: the HTTP status and the
// payload after envelope normalization.
type Response struct {
	// Data is the response body with exactly one level of a
	// {"data": ...} envelope removed. Bodies without a "data" key are
	// returned verbatim. The unwrap is intentionally non-recursive: a
	// doubly nested envelope keeps its inner wrapper, and downstream
	// pagination decoding depends on that shape surviving.
	Data json.RawMessage

	// Status is the HTTP status code.
	Status int
}

// Decode unmarshals the normalized payload into v.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Data, v); err != nil {
		return fmt.Errorf("apiclient: decode response: %w", err)
	}
	return nil
}

// Decode unmarshals a response payload into a value of type T.
func Decode[T any](r *Response) (T, error) {
	var v T
	if err := r.Decode(&v); err != nil {
		return v, err
	}
	return v, nil
}

// unwrapEnvelope removes one level of {"data": ...} wrapping. The check
// is on key presence, not null-ness, so {"data": null} unwraps to null.
func unwrapEnvelope(raw []byte) json.RawMessage {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return raw
	}
	if data, ok := probe["data"]; ok {
		return data
	}
	return raw
}
