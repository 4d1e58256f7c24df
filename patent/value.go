package patent

import (
	"bytes"
	"encoding/json"
)

// Value is one node of an extracted record. The concrete types are Text,
// Null, List and *Record; every Value serializes directly as JSON.
type Value interface {
	json.Marshaler
}

// Text is a scalar string value.
type Text string

func (t Text) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

// Null marks a property whose element produced no usable value.
type Null struct{}

func (Null) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

// List collects repeated occurrences of one property, in document order.
type List []Value

func (l List) MarshalJSON() ([]byte, error) {
	return json.Marshal([]Value(l))
}

// Record maps property names to values. Keys keep insertion order so that
// repeated parses of the same document serialize identically.
type Record struct {
	keys   []string
	fields map[string]Value
}

func NewRecord() *Record {
	return &Record{fields: make(map[string]Value)}
}

// Set stores v at key, overwriting any previous value. An overwritten key
// keeps its original position.
func (r *Record) Set(key string, v Value) {
	if _, ok := r.fields[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.fields[key] = v
}

// Append adds v to the list at key, creating the list on first use. If a
// non-list value already sits at the key it is discarded in favor of a fresh
// list holding v, and Append reports false.
func (r *Record) Append(key string, v Value) bool {
	existing, ok := r.fields[key]
	if !ok {
		r.Set(key, List{v})
		return true
	}
	l, ok := existing.(List)
	if !ok {
		r.fields[key] = List{v}
		return false
	}
	r.fields[key] = append(l, v)
	return true
}

func (r *Record) Get(key string) (Value, bool) {
	v, ok := r.fields[key]
	return v, ok
}

func (r *Record) Len() int {
	return len(r.keys)
}

// Keys returns the record's keys in insertion order.
func (r *Record) Keys() []string {
	keys := make([]string, len(r.keys))
	copy(keys, r.keys)
	return keys
}

func (r *Record) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, key := range r.keys {
		if i > 0 {
			b.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		b.Write(k)
		b.WriteByte(':')
		v, err := json.Marshal(r.fields[key])
		if err != nil {
			return nil, err
		}
		b.Write(v)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}
