package document

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJSONExtractPreservesKeyOrder(t *testing.T) {
	path := writeFixture(t, "profile.json", []byte(`{"b":2,"a":1}`))

	content, meta, err := jsonExtractor{}.Extract(path)
	require.NoError(t, err)
	require.Equal(t, "{\n  \"b\": 2,\n  \"a\": 1\n}", content)

	jm, ok := meta.(JSONMetadata)
	require.True(t, ok, "expected JSONMetadata, got %T", meta)
	require.Equal(t, []string{"b", "a"}, jm.Keys)
	require.Equal(t, "object", jm.Type)
	require.Equal(t, 2, jm.Size)
}

func TestJSONExtractNestedValues(t *testing.T) {
	src := `{"outer": {"inner": [1, 2, 3]}, "next": "value", "last": null}`
	path := writeFixture(t, "nested.json", []byte(src))

	_, meta, err := jsonExtractor{}.Extract(path)
	require.NoError(t, err)
	require.Equal(t, []string{"outer", "next", "last"}, meta.(JSONMetadata).Keys)
}

func TestJSONExtractArrayRoot(t *testing.T) {
	path := writeFixture(t, "list.json", []byte(`[1, 2, 3]`))

	_, meta, err := jsonExtractor{}.Extract(path)
	require.NoError(t, err)

	jm := meta.(JSONMetadata)
	require.Equal(t, []string{}, jm.Keys)
	require.Equal(t, "array", jm.Type)
	require.Equal(t, 3, jm.Size)
}

func TestJSONExtractScalarRoot(t *testing.T) {
	path := writeFixture(t, "scalar.json", []byte(`"hello"`))

	content, meta, err := jsonExtractor{}.Extract(path)
	require.NoError(t, err)
	require.Equal(t, `"hello"`, content)

	jm := meta.(JSONMetadata)
	require.Equal(t, "string", jm.Type)
	require.Equal(t, 1, jm.Size)
}

func TestJSONExtractParseFailure(t *testing.T) {
	path := writeFixture(t, "broken.json", []byte(`{"unclosed":`))

	_, _, err := jsonExtractor{}.Extract(path)
	var extraction *ExtractionError
	require.True(t, errors.As(err, &extraction))
	require.Equal(t, FileTypeJSON, extraction.FileType)
}

func TestJSONTypeNames(t *testing.T) {
	tests := []struct {
		value    any
		expected string
	}{
		{map[string]any{}, "object"},
		{[]any{}, "array"},
		{"s", "string"},
		{float64(1), "number"},
		{true, "boolean"},
		{nil, "null"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.expected, jsonTypeName(tt.value))
	}
}
