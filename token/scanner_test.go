package token_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haleyrc/jsonv/token"
)

func TestScannerAccumulatesTokensAcrossFeeds(t *testing.T) {
	t.Parallel()

	s := token.NewScanner()
	s.Feed([]byte(`{"a":`))

	tok, ok, err := s.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, token.ObjectBegin, tok.Kind)

	tok, ok, err = s.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, token.String, tok.Kind)

	tok, ok, err = s.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, token.KeyDelimiter, tok.Kind)

	// No more complete tokens yet.
	_, ok, err = s.Next()
	require.NoError(t, err)
	require.False(t, ok)

	s.Feed([]byte(`1}`))
	tok, ok, err = s.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, token.Number, tok.Kind)

	tok, ok, err = s.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, token.ObjectEnd, tok.Kind)
}

func TestScannerPromotesIncompleteToErrorAtClose(t *testing.T) {
	t.Parallel()

	s := token.NewScanner()
	s.Feed([]byte("tru"))
	s.Close()

	_, ok, err := s.Next()
	require.False(t, ok)
	require.Error(t, err)

	var uerr *token.ErrUnterminatedToken
	require.ErrorAs(t, err, &uerr)
}

func TestScannerSkipsWhitespaceAndComments(t *testing.T) {
	t.Parallel()

	s := token.NewScanner()
	s.Feed([]byte("  // a comment\n 42"))
	s.Close()

	tok, ok, err := s.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, token.Number, tok.Kind)
}
