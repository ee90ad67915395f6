package ast_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haleyrc/jsonv/ast"
)

func TestParseDumpMatchesGlyphsForScenarioOne(t *testing.T) {
	t.Parallel()

	src := []byte(`{ "a": 1, "b": [2, 3.5, "x"] }`)
	idx, err := ast.Parse(src, ast.ParseOptions{})
	require.NoError(t, err)
	require.True(t, idx.Successful())

	assert.Equal(t, "^{kik[ids]}$", idx.Dump())
}

func TestParseBalancedContainersProperty(t *testing.T) {
	t.Parallel()

	cases := []string{
		`{}`,
		`[]`,
		`{"a": [1, 2, {"b": []}]}`,
		`[[[[1]]]]`,
	}
	for _, src := range cases {
		idx, err := ast.Parse([]byte(src), ast.ParseOptions{})
		require.NoError(t, err, src)
		require.True(t, idx.Successful(), src)

		var depth int
		for _, n := range idx.Nodes {
			switch n.Type() {
			case ast.ObjectBegin, ast.ArrayBegin:
				depth++
			case ast.ObjectEnd, ast.ArrayEnd:
				depth--
				require.GreaterOrEqual(t, depth, 0, src)
			}
		}
		assert.Equal(t, 0, depth, src)
	}
}

func TestParseMatchIndexesAreMutuallyConsistent(t *testing.T) {
	t.Parallel()

	idx, err := ast.Parse([]byte(`{"a": [1, [2, 3], {}]}`), ast.ParseOptions{})
	require.NoError(t, err)

	for i, n := range idx.Nodes {
		switch n.Type() {
		case ast.ObjectBegin, ast.ArrayBegin:
			match := int(n.MatchIndex())
			assert.Contains(t, []ast.NodeType{ast.ObjectEnd, ast.ArrayEnd}, idx.Nodes[match].Type())
			assert.Equal(t, uint32(i), idx.Nodes[match].MatchIndex())
		}
	}
}

func TestParseRejectsTrailingData(t *testing.T) {
	t.Parallel()

	idx, err := ast.Parse([]byte(`1 2`), ast.ParseOptions{})
	assert.Error(t, err)
	assert.False(t, idx.Successful())
}

func TestParseDepthExceeded(t *testing.T) {
	t.Parallel()

	deep := ""
	for i := 0; i < 10; i++ {
		deep += "["
	}
	for i := 0; i < 10; i++ {
		deep += "]"
	}
	idx, err := ast.Parse([]byte(deep), ast.ParseOptions{MaxStructureDepth: 3})
	require.Error(t, err)
	require.False(t, idx.Successful())
	assert.Equal(t, ast.CodeDepthExceeded, idx.Errors[0].Code)
}

func TestParseDepthExceededLogsToOptionsLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := ast.Parse([]byte("[[[[]]]]"), ast.ParseOptions{MaxStructureDepth: 2, Logger: logger})
	require.Error(t, err)
	assert.Contains(t, buf.String(), "depth exceeded")
}

func TestParseCommentsTrailingCommaAndUnquotedKeys(t *testing.T) {
	t.Parallel()

	src := []byte(`{
		// a leading comment
		a: 1, /* trailing */
	}`)
	idx, err := ast.Parse(src, ast.ParseOptions{
		AllowComments:      true,
		AllowUnquotedKeys:  true,
		AllowTrailingComma: true,
	})
	require.NoError(t, err)
	require.True(t, idx.Successful())
}

func TestParseSpecialNumbers(t *testing.T) {
	t.Parallel()

	idx, err := ast.Parse([]byte(`[NaN, Infinity, -Infinity]`), ast.ParseOptions{Numbers: ast.NumbersDecimalNanInfAllowed})
	require.NoError(t, err)
	require.True(t, idx.Successful())

	tree, err := ast.ExtractTree(idx, ast.ExtractOptions{})
	require.NoError(t, err)
	arr, err := tree.AsArray()
	require.NoError(t, err)
	require.Equal(t, 3, arr.Len())

	nan, err := arr.At(0)
	require.NoError(t, err)
	assert.False(t, nan.IsFinite())
}

func TestParseIgnoreModeRecoversAndKeepsGoing(t *testing.T) {
	t.Parallel()

	idx, err := ast.Parse([]byte(`[1, @, 3]`), ast.ParseOptions{FailureMode: ast.Ignore})
	assert.NoError(t, err)
	assert.False(t, idx.Successful())
	assert.NotEmpty(t, idx.Errors)

	var sawError bool
	for _, n := range idx.Nodes {
		if n.Type() == ast.ErrorNode {
			sawError = true
		}
	}
	assert.True(t, sawError)
}

func TestParseUnterminatedStringReportsEOFInString(t *testing.T) {
	t.Parallel()

	idx, err := ast.Parse([]byte(`"unterminated`), ast.ParseOptions{})
	require.Error(t, err)
	require.False(t, idx.Successful())
	assert.Equal(t, ast.CodeEOFInString, idx.Errors[0].Code)
}

func TestParseUnicodeEscapeKeyAndStringDecode(t *testing.T) {
	t.Parallel()

	idx, err := ast.Parse([]byte("{\"\\u0061\": \"caf\\u00e9\"}"), ast.ParseOptions{})
	require.NoError(t, err)
	tree, err := ast.ExtractTree(idx, ast.ExtractOptions{})
	require.NoError(t, err)

	obj, err := tree.AsObject()
	require.NoError(t, err)
	v, err := obj.Get("a")
	require.NoError(t, err)
	s, err := v.AsString()
	require.NoError(t, err)
	assert.Equal(t, "café", s)
}
