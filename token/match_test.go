package token_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/haleyrc/jsonv/token"
)

func TestMatchStructuralTokens(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		in   string
		kind token.Kind
	}{
		"array begin": {in: "[", kind: token.ArrayBegin},
		"array end":   {in: "]", kind: token.ArrayEnd},
		"object begin": {in: "{", kind: token.ObjectBegin},
		"object end":   {in: "}", kind: token.ObjectEnd},
		"colon":       {in: ":", kind: token.KeyDelimiter},
		"comma":       {in: ",", kind: token.Separator},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			kind, length, _, _, result := token.Match([]byte(tc.in), false)
			assert.Equal(t, tc.kind, kind)
			assert.Equal(t, 1, length)
			assert.Equal(t, token.Complete, result)
		})
	}
}

func TestMatchLiteralPrefixIsIncompleteUntilExtended(t *testing.T) {
	t.Parallel()

	kind, length, _, _, result := token.Match([]byte("tru"), false)
	assert.Equal(t, token.Boolean, kind)
	assert.Equal(t, 3, length)
	assert.Equal(t, token.IncompleteEOF, result)

	kind, length, _, _, result = token.Match([]byte("true"), false)
	assert.Equal(t, token.Boolean, kind)
	assert.Equal(t, 4, length)
	assert.Equal(t, token.Complete, result)

	_, _, _, _, result = token.Match([]byte("true"), true)
	assert.Equal(t, token.CompleteEOF, result)
}

func TestMatchNumberGrammar(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		in        string
		atEOF     bool
		length    int
		isDecimal bool
		result    token.MatchResult
	}{
		"bare integer at eof":       {in: "1234567890", atEOF: true, length: 10, result: token.CompleteEOF},
		"integer mid buffer":        {in: "123,", atEOF: false, length: 3, result: token.Complete},
		"decimal":                   {in: "3.5]", atEOF: false, length: 3, isDecimal: true, result: token.Complete},
		"negative":                  {in: "-5,", atEOF: false, length: 2, result: token.Complete},
		"exponent":                  {in: "1e10,", atEOF: false, length: 4, isDecimal: true, result: token.Complete},
		"prefix needs more bytes":   {in: "12", atEOF: false, length: 2, result: token.IncompleteEOF},
		"dangling minus is invalid": {in: "-", atEOF: true, length: 1, result: token.IncompleteEOF},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, length, isDecimal, _, result := token.Match([]byte(tc.in), tc.atEOF)
			assert.Equal(t, tc.length, length)
			assert.Equal(t, tc.isDecimal, isDecimal)
			assert.Equal(t, tc.result, result)
		})
	}
}

func TestMatchStringCanonicalVsEscaped(t *testing.T) {
	t.Parallel()

	_, length, _, hasEscape, result := token.Match([]byte(`"hello"`), false)
	assert.Equal(t, 7, length)
	assert.False(t, hasEscape)
	assert.Equal(t, token.Complete, result)

	_, length, _, hasEscape, result = token.Match([]byte(`"a\nb"`), false)
	assert.Equal(t, 6, length)
	assert.True(t, hasEscape)
	assert.Equal(t, token.Complete, result)

	_, _, _, _, result = token.Match([]byte(`"unterminated`), false)
	assert.Equal(t, token.IncompleteEOF, result)

	_, _, _, _, result = token.Match([]byte(`"unterminated`), true)
	assert.Equal(t, token.IncompleteEOF, result, "unterminated at true EOF is still reported as incomplete; the Scanner promotes it to an error")
}

func TestMatchUnicodeEscape(t *testing.T) {
	t.Parallel()

	_, length, _, hasEscape, result := token.Match([]byte("\"\\u00e9\""), false)
	assert.Equal(t, 8, length)
	assert.True(t, hasEscape)
	assert.Equal(t, token.Complete, result)

	// Raw (unescaped) UTF-8 bytes in the string body are canonical, not
	// escaped.
	_, length, _, hasEscape, result = token.Match([]byte("\"\xc3\xa9\""), false)
	assert.Equal(t, 4, length)
	assert.False(t, hasEscape)
	assert.Equal(t, token.Complete, result)
}

func TestMatchUnmatchedByte(t *testing.T) {
	t.Parallel()

	kind, _, _, _, result := token.Match([]byte("@"), false)
	assert.Equal(t, token.Unmatched, result)
	assert.True(t, kind.Failed())
}

func TestMatchWhitespaceAndComments(t *testing.T) {
	t.Parallel()

	_, length, _, _, result := token.Match([]byte("   x"), false)
	assert.Equal(t, 3, length)
	assert.Equal(t, token.Complete, result)

	_, length, _, _, result = token.Match([]byte("// a comment\n"), false)
	assert.Equal(t, 12, length)
	assert.Equal(t, token.Complete, result)

	_, length, _, _, result = token.Match([]byte("/* block */x"), false)
	assert.Equal(t, 11, length)
	assert.Equal(t, token.Complete, result)
}
