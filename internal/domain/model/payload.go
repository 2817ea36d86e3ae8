package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Value is a single payload entry: either a string or none. JSON null decodes
// to none; JSON strings decode verbatim; any other JSON value decodes to its
// compact JSON text.
type Value struct {
	s     string
	valid bool
}

// StringValue returns a Value holding s.
func StringValue(s string) Value {
	return Value{s: s, valid: true}
}

// NoneValue returns the empty Value.
func NoneValue() Value {
	return Value{}
}

// Get returns the string and whether the value is present.
func (v Value) Get() (string, bool) {
	return v.s, v.valid
}

// IsNone reports whether the value is absent.
func (v Value) IsNone() bool {
	return !v.valid
}

// String returns the held string, or "" for none.
func (v Value) String() string {
	return v.s
}

// MarshalJSON encodes none as null and strings as JSON strings.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.valid {
		return []byte("null"), nil
	}
	return json.Marshal(v.s)
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*v = NoneValue()
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = StringValue(s)
		return nil
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return err
	}
	*v = StringValue(buf.String())
	return nil
}

// ErrPayloadNotObject is returned when a serialized payload is valid JSON but
// not a JSON object.
var ErrPayloadNotObject = errors.New("payload is not a JSON object")

// Payload maps field names to values and remembers insertion order, so that
// encoding and key listing follow the order fields were set or decoded.
// The zero value is an empty payload ready to use.
type Payload struct {
	keys   []string
	values map[string]Value
}

// Set stores v under key. A key keeps the position of its first insertion.
func (p *Payload) Set(key string, v Value) {
	if p.values == nil {
		p.values = make(map[string]Value)
	}
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = v
}

// Get returns the value stored under key.
func (p Payload) Get(key string) (Value, bool) {
	v, ok := p.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (p Payload) Keys() []string {
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

// Len returns the number of keys.
func (p Payload) Len() int {
	return len(p.keys)
}

// MarshalJSON encodes the payload as a JSON object in key order.
func (p Payload) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range p.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')

		val, err := p.values[key].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object keeping document key order. A JSON
// null decodes to an empty payload; any other non-object is rejected.
func (p *Payload) UnmarshalJSON(data []byte) error {
	*p = Payload{}

	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return ErrPayloadNotObject
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected object key %v", tok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("decode value for %q: %w", key, err)
		}

		var v Value
		if err := v.UnmarshalJSON(raw); err != nil {
			return fmt.Errorf("decode value for %q: %w", key, err)
		}
		p.Set(key, v)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}
