package jsontree

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDecode(t *testing.T, s string) Value {
	t.Helper()
	v, err := Decode([]byte(s))
	require.NoError(t, err)
	return v
}

func mustJSON(t *testing.T, v Value) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}

func TestDecode(t *testing.T) {
	t.Run("KeepsKeyOrder", func(t *testing.T) {
		v := mustDecode(t, `{"zeta":1,"alpha":2,"mid":{"b":true,"a":null}}`)
		obj, ok := v.(*Object)
		require.True(t, ok)
		assert.Equal(t, []string{"zeta", "alpha", "mid"}, obj.Keys())
		assert.Equal(t, `{"zeta":1,"alpha":2,"mid":{"b":true,"a":null}}`, mustJSON(t, obj))
	})

	t.Run("Scalars", func(t *testing.T) {
		obj, err := DecodeObject([]byte(`{"s":"x","n":1.5,"b":false,"z":null,"a":[1,"two"]}`))
		require.NoError(t, err)

		assert.Equal(t, "x", obj.String("s"))

		n, _ := obj.Get("n")
		assert.Equal(t, json.Number("1.5"), n)

		b, _ := obj.Get("b")
		assert.Equal(t, false, b)

		z, ok := obj.Get("z")
		assert.True(t, ok)
		assert.Nil(t, z)

		a, _ := obj.Get("a")
		assert.Equal(t, []any{json.Number("1"), "two"}, a)
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := Decode([]byte("  \n"))
		require.ErrorIs(t, err, ErrEmpty)
	})

	t.Run("Truncated", func(t *testing.T) {
		_, err := Decode([]byte(`{"a":1`))
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrEmpty)
	})

	t.Run("Malformed", func(t *testing.T) {
		_, err := Decode([]byte(`<html>oops</html>`))
		require.Error(t, err)
	})

	t.Run("TrailingData", func(t *testing.T) {
		_, err := Decode([]byte(`{} {}`))
		require.Error(t, err)
	})

	t.Run("NotAnObject", func(t *testing.T) {
		_, err := DecodeObject([]byte(`[1,2]`))
		var typeErr *TypeError
		require.ErrorAs(t, err, &typeErr)
		assert.Equal(t, "array", typeErr.Got)
	})
}

func TestSnakeCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"accessToken", "access_token"},
		{"refreshToken", "refresh_token"},
		{"fooBar", "foo_bar"},
		{"Recognition", "recognition"},
		{"ResponseId", "response_id"},
		{"NBest", "n_best"},
		{"WordScores", "word_scores"},
		{"access_token", "access_token"},
		{"error", "error"},
		{"version2Beta", "version2_beta"},
		{"utf8Value", "utf8_value"},
		{"Ab1C", "ab1_c"},
		{"MP3File", "mp3_file"},
		{"base64", "base64"},
		{"v2_beta", "v2_beta"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SnakeCase(tt.in))
		})
	}
}

func TestUnderscore(t *testing.T) {
	t.Run("Nested", func(t *testing.T) {
		v := mustDecode(t, `{"accessToken":"X","nested":{"fooBar":1}}`)
		assert.Equal(t, `{"access_token":"X","nested":{"foo_bar":1}}`, mustJSON(t, Underscore(v)))
	})

	t.Run("OnlyFirstArrayElement", func(t *testing.T) {
		v := mustDecode(t, `{"items":[{"fooBar":1},{"bazQux":2}]}`)
		assert.Equal(t, `{"items":[{"foo_bar":1},{"bazQux":2}]}`, mustJSON(t, Underscore(v)))
	})

	t.Run("FirstElementNotObject", func(t *testing.T) {
		v := mustDecode(t, `{"items":[1,{"bazQux":2}]}`)
		assert.Equal(t, `{"items":[1,{"bazQux":2}]}`, mustJSON(t, Underscore(v)))
	})

	t.Run("RecursesIntoFirstElement", func(t *testing.T) {
		v := mustDecode(t, `{"NBest":[{"WordScores":[{"wordScore":1}],"Hypothesis":"hi"}]}`)
		assert.Equal(t,
			`{"n_best":[{"word_scores":[{"word_score":1}],"hypothesis":"hi"}]}`,
			mustJSON(t, Underscore(v)))
	})

	t.Run("DoesNotModifyInput", func(t *testing.T) {
		v := mustDecode(t, `{"outerKey":[{"innerKey":1}]}`)
		before := mustJSON(t, v)
		_ = Underscore(v)
		assert.Equal(t, before, mustJSON(t, v))
	})

	t.Run("Scalar", func(t *testing.T) {
		assert.Equal(t, "camelCase", Underscore("camelCase"))
		assert.Nil(t, Underscore(nil))
	})
}

func TestObject_Path(t *testing.T) {
	obj, err := DecodeObject([]byte(`{"recognition":{"n_best":[{"hypothesis":"hello world"}],"status":"OK"}}`))
	require.NoError(t, err)

	v, ok := obj.Path("recognition", "n_best", "0", "hypothesis")
	require.True(t, ok)
	assert.Equal(t, "hello world", v)

	_, ok = obj.Path("recognition", "n_best", "1")
	assert.False(t, ok)

	_, ok = obj.Path("recognition", "status", "deeper")
	assert.False(t, ok)

	_, ok = obj.Path("missing")
	assert.False(t, ok)
}

func TestObject_Nil(t *testing.T) {
	var obj *Object
	assert.Zero(t, obj.Len())
	assert.Empty(t, obj.Keys())
	assert.Empty(t, obj.String("k"))

	data, err := obj.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}

func TestObject_UnmarshalJSON(t *testing.T) {
	var wrapper struct {
		Body *Object `json:"body"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"body":{"b":1,"a":2}}`), &wrapper))
	assert.Equal(t, []string{"b", "a"}, wrapper.Body.Keys())

	var obj Object
	require.Error(t, json.Unmarshal([]byte(`"str"`), &obj))
}

func TestPlain(t *testing.T) {
	v := mustDecode(t, `{"i":3,"f":0.5,"list":[{"k":"v"}],"nil":null}`)
	assert.Equal(t, map[string]any{
		"i":    3,
		"f":    0.5,
		"list": []any{map[string]any{"k": "v"}},
		"nil":  nil,
	}, Plain(v))
}
