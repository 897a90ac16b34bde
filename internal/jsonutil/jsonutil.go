// Package jsonutil provides order-preserving JSON object helpers.
//
// Go's encoding/json sorts map keys alphabetically and discards member order
// when decoding into maps. HAL documents need both directions to keep the
// original member order, so _links/_embedded relations and domain attributes
// round-trip in the order the document declared them.
package jsonutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Member is one name/value member of a JSON object, in document order.
type Member struct {
	Name  string
	Value json.RawMessage
}

// DecodeObject parses data as a single JSON object and returns its members in
// document order. Values are kept raw for the caller to decode.
func DecodeObject(data []byte) ([]Member, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected JSON object, got %v", tok)
	}

	var members []Member
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected object member name, got %v", tok)
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		members = append(members, Member{Name: name, Value: value})
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after JSON object")
	}
	return members, nil
}

// IsArray reports whether raw holds a JSON array, judged by its first
// non-whitespace byte.
func IsArray(raw []byte) bool {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		case '[':
			return true
		default:
			return false
		}
	}
	return false
}

// ObjectWriter builds a JSON object with members in the order they are added.
type ObjectWriter struct {
	buf bytes.Buffer
	n   int
}

// Member marshals value and appends it under name.
func (w *ObjectWriter) Member(name string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	w.RawMember(name, raw)
	return nil
}

// RawMember appends an already-encoded value under name.
func (w *ObjectWriter) RawMember(name string, raw json.RawMessage) {
	if w.n == 0 {
		w.buf.WriteByte('{')
	} else {
		w.buf.WriteByte(',')
	}
	key, _ := json.Marshal(name)
	w.buf.Write(key)
	w.buf.WriteByte(':')
	w.buf.Write(raw)
	w.n++
}

// Len returns the number of members written so far.
func (w *ObjectWriter) Len() int {
	return w.n
}

// Bytes returns the encoded object. An empty writer encodes as {}.
func (w *ObjectWriter) Bytes() []byte {
	if w.n == 0 {
		return []byte("{}")
	}
	out := make([]byte, 0, w.buf.Len()+1)
	out = append(out, w.buf.Bytes()...)
	out = append(out, '}')
	return out
}
