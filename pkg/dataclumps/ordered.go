package dataclumps

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"
)

// Ordered is a JSON object decoded with its keys kept in document order.
// Node and edge order of a built graph follows this order.
type Ordered[V any] struct {
	keys   []string
	values map[string]V
}

// Set inserts or replaces a value. A replaced key keeps its original position.
func (o *Ordered[V]) Set(key string, value V) {
	if o.values == nil {
		o.values = make(map[string]V)
	}
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// Get returns the value stored under key.
func (o *Ordered[V]) Get(key string) (V, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Len returns the number of entries.
func (o *Ordered[V]) Len() int {
	return len(o.keys)
}

// Keys returns the keys in document order.
func (o *Ordered[V]) Keys() []string {
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

// All iterates over entries in document order.
func (o *Ordered[V]) All() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		for _, k := range o.keys {
			if !yield(k, o.values[k]) {
				return
			}
		}
	}
}

// UnmarshalJSON decodes an object token by token so key order survives.
// A JSON null decodes to an empty dictionary.
func (o *Ordered[V]) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	*o = Ordered[V]{}
	if tok == nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected object, got %v", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", keyTok)
		}

		var value V
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("decoding entry %q: %w", key, err)
		}
		o.Set(key, value)
	}

	// closing brace
	_, err = dec.Token()
	return err
}

// MarshalJSON writes the entries back in document order.
func (o Ordered[V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(o.values[k])
		if err != nil {
			return nil, fmt.Errorf("encoding entry %q: %w", k, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
