// Package jsontree decodes JSON documents into an order-preserving tree and
// rewrites object keys from camelCase to snake_case.
//
// A decoded Value is one of:
//
//	*Object        JSON object, keys kept in document order
//	[]any          JSON array
//	string
//	json.Number
//	bool
//	nil            JSON null
//
// Underscore applies the key normalization used for AT&T Speech API
// responses:
//
//	v, _ := jsontree.Decode([]byte(`{"accessToken":"X","nested":{"fooBar":1}}`))
//	n := jsontree.Underscore(v)
//	// {"access_token":"X","nested":{"foo_bar":1}}
//
// Arrays are only normalized through their first element, and only when that
// element is an object. Later elements keep their original keys. Existing
// consumers of the service responses depend on this, so it is kept as is.
package jsontree
