package ast

import "fmt"

// DecodeKey returns the decoded text of an object key node (KeyCanonical or
// KeyEscaped). It is exported for callers outside package ast, such as
// package reader, that need a key's text without building a full value
// tree via ExtractTree.
func DecodeKey(idx *Index, n Node) (string, error) {
	switch n.Type() {
	case KeyCanonical:
		return string(idx.Text(n)), nil
	case KeyEscaped:
		return decodeEscapes(idx.Text(n))
	default:
		return "", fmt.Errorf("%w: not a key node: %s", ErrParse, n.Type())
	}
}

// DecodeString returns the decoded text of a string value node
// (StringCanonical or StringEscaped).
func DecodeString(idx *Index, n Node) (string, error) {
	switch n.Type() {
	case StringCanonical:
		return string(idx.Text(n)), nil
	case StringEscaped:
		return decodeEscapes(idx.Text(n))
	default:
		return "", fmt.Errorf("%w: not a string node: %s", ErrParse, n.Type())
	}
}
