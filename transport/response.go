package transport

import (
	"encoding/json"
	"fmt"
)

// Response is a decoded JSON object, keyed by field name. Values are left
// raw so callers can check for presence before decoding.
type Response map[string]json.RawMessage

// Has reports whether key is present in the response, even with a null value.
func (r Response) Has(key string) bool {
	_, ok := r[key]
	return ok
}

// Missing returns the keys, in the given order, that are absent from the response.
func (r Response) Missing(keys ...string) []string {
	var missing []string
	for _, k := range keys {
		if !r.Has(k) {
			missing = append(missing, k)
		}
	}
	return missing
}

// Decode unmarshals the whole response into v.
func (r Response) Decode(v any) error {
	data, err := json.Marshal(r)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Field unmarshals a single field into v.
func (r Response) Field(key string, v any) error {
	raw, ok := r[key]
	if !ok {
		return fmt.Errorf("field %q not present", key)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}
