package source

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Record is one normalized element of the record collection.
type Record map[string]interface{}

// Extract locates the record collection for queryName in payload:
//
//  1. payload[queryName][dataKey] when payload[queryName] is an object
//     holding dataKey,
//  2. payload[queryName] when present and not null,
//  3. nothing otherwise.
//
// An array collection yields its elements in order, an object is a single
// element, anything else is empty.
func Extract(payload map[string]interface{}, queryName, dataKey string) []interface{} {
	root, ok := payload[queryName]
	if !ok || root == nil {
		return nil
	}

	if obj, ok := root.(map[string]interface{}); ok {
		if v, ok := obj[dataKey]; ok {
			return elements(v)
		}
	}

	return elements(root)
}

func elements(v interface{}) []interface{} {
	switch v := v.(type) {
	case []interface{}:
		return v
	case map[string]interface{}:
		return []interface{}{v}
	default:
		return nil
	}
}

// Normalize turns v into a Record through a JSON round trip, so only maps,
// slices and JSON scalars remain. Numbers stay json.Number to keep integers
// above 2^53 intact. Normalizing a Record returns an equal Record.
func Normalize(v interface{}) (Record, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	var rec Record
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&rec); err != nil {
		return nil, fmt.Errorf("not an object: %w", err)
	}
	if rec == nil {
		return nil, fmt.Errorf("not an object: %s", b)
	}

	return rec, nil
}
