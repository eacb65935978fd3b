package models

import (
	"bytes"
	"encoding/json"
)

// Row is a record whose keys keep insertion order. Table rows use the
// column order of the source table; documents use section order.
//
// Values are limited to JSON-friendly types: nil, bool, int, float64,
// string, []string, *Row, []*Row and []any.
type Row struct {
	keys []string
	vals map[string]any
}

// Document is the composed output of one page parse.
type Document = Row

// NewRow creates an empty Row.
func NewRow() *Row {
	return &Row{vals: make(map[string]any)}
}

// Set stores v under key. A new key is appended; an existing key keeps
// its position.
func (r *Row) Set(key string, v any) *Row {
	if r.vals == nil {
		r.vals = make(map[string]any)
	}
	if _, ok := r.vals[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.vals[key] = v
	return r
}

// Get returns the value for key and whether it exists.
func (r *Row) Get(key string) (any, bool) {
	if r == nil {
		return nil, false
	}
	v, ok := r.vals[key]
	return v, ok
}

// Value returns the value for key, or nil.
func (r *Row) Value(key string) any {
	v, _ := r.Get(key)
	return v
}

// String returns the value for key if it is a string.
func (r *Row) String(key string) string {
	s, _ := r.Value(key).(string)
	return s
}

// Int returns the value for key if it is an int.
func (r *Row) Int(key string) (int, bool) {
	i, ok := r.Value(key).(int)
	return i, ok
}

// Rows returns the value for key if it is a list of rows.
func (r *Row) Rows(key string) []*Row {
	rows, _ := r.Value(key).([]*Row)
	return rows
}

// Sub returns the value for key if it is a nested row.
func (r *Row) Sub(key string) *Row {
	sub, _ := r.Value(key).(*Row)
	return sub
}

// Has reports whether key is present.
func (r *Row) Has(key string) bool {
	_, ok := r.Get(key)
	return ok
}

// Delete removes key, keeping the order of the remaining keys.
func (r *Row) Delete(key string) {
	if !r.Has(key) {
		return
	}
	delete(r.vals, key)
	for i, k := range r.keys {
		if k == key {
			r.keys = append(r.keys[:i], r.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in order. The slice must not be modified.
func (r *Row) Keys() []string {
	if r == nil {
		return nil
	}
	return r.keys
}

// Len returns the number of keys.
func (r *Row) Len() int {
	if r == nil {
		return 0
	}
	return len(r.keys)
}

// Each calls fn for every key/value pair in order.
func (r *Row) Each(fn func(key string, v any)) {
	for _, k := range r.Keys() {
		fn(k, r.vals[k])
	}
}

// MarshalJSON encodes the row as a JSON object in key order.
func (r *Row) MarshalJSON() ([]byte, error) {
	if r == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(r.vals[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
