package dataclumps

import (
	"bytes"
	"encoding/json"
)

// Text is a loosely typed identifier. Analyzers emit method keys as strings
// most of the time, but numbers and booleans show up too. Any JSON scalar is
// accepted and kept in its text form. Absent and null values are not present.
type Text struct {
	value   string
	present bool
}

// NewText returns a present Text holding s.
func NewText(s string) Text {
	return Text{value: s, present: true}
}

// String returns the text form, or "" when absent.
func (t Text) String() string {
	return t.value
}

// Present reports whether the field was set to a non-null value.
func (t Text) Present() bool {
	return t.present
}

func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = Text{}
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = NewText(s)
		return nil
	}

	// numbers, booleans and anything else keep their literal form
	var compact bytes.Buffer
	if err := json.Compact(&compact, data); err != nil {
		return err
	}
	*t = NewText(compact.String())
	return nil
}

func (t Text) MarshalJSON() ([]byte, error) {
	if !t.present {
		return []byte("null"), nil
	}
	return json.Marshal(t.value)
}
