package reader_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haleyrc/jsonv/ast"
	"github.com/haleyrc/jsonv/reader"
)

func parseIdx(t *testing.T, src string) *ast.Index {
	t.Helper()
	idx, err := ast.Parse([]byte(src), ast.ParseOptions{})
	require.NoError(t, err)
	require.True(t, idx.Successful())
	return idx
}

func TestReaderPathProjectionOverObjectAndArray(t *testing.T) {
	t.Parallel()

	idx := parseIdx(t, `{"a": 1, "b": [2, 3]}`)
	r := reader.New(idx)

	var gotPaths []string
	for {
		n, err := r.Current()
		require.NoError(t, err)
		gotPaths = append(gotPaths, n.Type().String()+"@"+r.CurrentPath().String())
		if !r.NextToken() {
			break
		}
	}

	want := []string{
		"document_start@.",
		"object_begin@.",
		"key_canonical@.a",
		"integer@.a",
		"key_canonical@.b",
		"array_begin@.b",
		"integer@.b[0]",
		"integer@.b[1]",
		"array_end@.b",
		"object_end@.",
		"document_end@.",
	}
	assert.Equal(t, want, gotPaths)
}

func TestReaderNextStructureSkipsContainer(t *testing.T) {
	t.Parallel()

	idx := parseIdx(t, `[{"x": 1}, 2]`)
	r := reader.New(idx)

	require.True(t, r.NextToken()) // array_begin
	require.True(t, r.NextToken()) // object_begin (element 0)
	require.NoError(t, r.Expect(ast.ObjectBegin))
	assert.Equal(t, "[0]", r.CurrentPath().String())

	require.True(t, r.NextStructure()) // skip straight to element 1
	n, err := r.Current()
	require.NoError(t, err)
	assert.Equal(t, ast.IntegerNode, n.Type())
	assert.Equal(t, "[1]", r.CurrentPath().String())
}

func TestReaderNextKeySkipsValues(t *testing.T) {
	t.Parallel()

	idx := parseIdx(t, `{"a": [1, 2, 3], "b": 4}`)
	r := reader.New(idx)

	require.True(t, r.NextToken()) // object_begin
	require.True(t, r.NextToken()) // key "a"
	require.NoError(t, r.Expect(ast.KeyCanonical))

	require.True(t, r.NextKey())
	require.NoError(t, r.Expect(ast.KeyCanonical))
	assert.Equal(t, ".b", r.CurrentPath().String())
}

func TestReaderExpectMismatch(t *testing.T) {
	t.Parallel()

	idx := parseIdx(t, `1`)
	r := reader.New(idx)
	err := r.Expect(ast.ObjectBegin)
	var mismatch *reader.TypeMismatch
	assert.ErrorAs(t, err, &mismatch)
}

func TestReaderStaysOnDocumentEndAfterLastToken(t *testing.T) {
	t.Parallel()

	idx := parseIdx(t, `1`)
	r := reader.New(idx)
	for r.NextToken() {
	}
	assert.True(t, r.Good()) // still sitting on document_end
	assert.False(t, r.NextToken())
}
