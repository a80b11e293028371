package jsontree

import (
	"encoding/json"
	"strings"

	"github.com/stoewer/go-strcase"
)

// SnakeCase converts an identifier such as "accessToken" or "NBest" to
// "access_token" or "n_best". A digit followed by an upper case letter is a
// word boundary too ("version2Beta" becomes "version2_beta"). Identifiers
// already in snake_case are returned unchanged.
func SnakeCase(s string) string {
	return strcase.SnakeCase(splitDigitUpper(s))
}

// splitDigitUpper inserts '_' between an ASCII digit and an upper case
// letter, a boundary strcase.SnakeCase does not split on.
func splitDigitUpper(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	var prev rune
	for _, r := range s {
		if prev >= '0' && prev <= '9' && r >= 'A' && r <= 'Z' {
			b.WriteByte('_')
		}
		b.WriteRune(r)
		prev = r
	}
	return b.String()
}

// Underscore returns a copy of v with object keys converted to snake_case.
//
// Objects are rewritten recursively. For an array only the first element is
// rewritten, and only if it is an object; the remaining elements are kept
// with their original keys. The input is not modified.
func Underscore(v Value) Value {
	switch node := v.(type) {
	case *Object:
		out := NewObject()
		for key, val := range node.All() {
			out.Set(SnakeCase(key), Underscore(val))
		}
		return out
	case []any:
		if len(node) == 0 {
			return node
		}
		first, ok := node[0].(*Object)
		if !ok {
			return node
		}
		out := make([]any, len(node))
		copy(out, node)
		out[0] = Underscore(first)
		return out
	default:
		return v
	}
}

// Plain converts v into map[string]any, []any and scalar Go values. Integral
// numbers become int, other numbers float64. Key order is lost.
func Plain(v Value) any {
	switch node := v.(type) {
	case *Object:
		m := make(map[string]any, node.Len())
		for key, val := range node.All() {
			m[key] = Plain(val)
		}
		return m
	case []any:
		out := make([]any, len(node))
		for i, val := range node {
			out[i] = Plain(val)
		}
		return out
	case json.Number:
		if i, err := node.Int64(); err == nil {
			return int(i)
		}
		if f, err := node.Float64(); err == nil {
			return f
		}
		return node.String()
	default:
		return v
	}
}
