package jsontree

import (
	"iter"
	"strconv"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Value is a node of a decoded JSON tree.
type Value = any

// Object is a JSON object that keeps its keys in insertion order.
type Object struct {
	m *orderedmap.OrderedMap[string, Value]
}

// NewObject returns an empty Object.
func NewObject() *Object {
	return &Object{m: orderedmap.New[string, Value]()}
}

// Len returns the number of keys.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return o.m.Len()
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (Value, bool) {
	if o == nil {
		return nil, false
	}
	return o.m.Get(key)
}

// Set stores v under key. An existing key keeps its position.
func (o *Object) Set(key string, v Value) {
	o.m.Set(key, v)
}

// Keys returns the keys in order.
func (o *Object) Keys() []string {
	keys := make([]string, 0, o.Len())
	for k := range o.All() {
		keys = append(keys, k)
	}
	return keys
}

// All iterates over the key/value pairs in order.
func (o *Object) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		if o == nil {
			return
		}
		for p := o.m.Oldest(); p != nil; p = p.Next() {
			if !yield(p.Key, p.Value) {
				return
			}
		}
	}
}

// Path walks nested objects by key. A segment applied to an array is read as
// a zero-based index.
func (o *Object) Path(keys ...string) (Value, bool) {
	var cur Value = o
	for _, k := range keys {
		switch node := cur.(type) {
		case *Object:
			v, ok := node.Get(k)
			if !ok {
				return nil, false
			}
			cur = v
		case []any:
			i, err := strconv.Atoi(k)
			if err != nil || i < 0 || i >= len(node) {
				return nil, false
			}
			cur = node[i]
		default:
			return nil, false
		}
	}
	return cur, true
}

// String returns the string stored under key, or "" when the key is missing,
// null, or not a string.
func (o *Object) String(key string) string {
	v, _ := o.Get(key)
	s, _ := v.(string)
	return s
}

// MarshalJSON implements json.Marshaler. Keys are written in order.
func (o *Object) MarshalJSON() ([]byte, error) {
	if o == nil {
		return []byte("null"), nil
	}
	return o.m.MarshalJSON()
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *Object) UnmarshalJSON(data []byte) error {
	v, err := Decode(data)
	if err != nil {
		return err
	}
	obj, ok := v.(*Object)
	if !ok {
		return &TypeError{Want: "object", Got: kindOf(v)}
	}
	o.m = obj.m
	return nil
}
