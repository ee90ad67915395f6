package ast

import (
	"github.com/haleyrc/jsonv/buffer"
)

// Index is a parsed document: an immutable source buffer plus the flat
// sequence of packed Nodes describing its structure. An Index is moved,
// not copied; it is traversed with a forward-only iterator (see package
// reader) rather than mutated in place.
type Index struct {
	Source buffer.Buffer
	Nodes  []Node
	Errors []*ParseError
}

// Successful reports whether the index contains no ErrorNode and the
// parser's container stack was empty at EOF (spec.md §4.2).
func (idx *Index) Successful() bool {
	return len(idx.Errors) == 0
}

// Len returns the number of packed nodes.
func (idx *Index) Len() int { return len(idx.Nodes) }

// Text returns the raw source bytes spanned by a leaf node. It does not
// decode escapes; see DecodeKey and DecodeString for that.
func (idx *Index) Text(n Node) []byte {
	return idx.Source.Get()[n.Offset() : n.Offset()+n.Length()]
}

// Dump renders the node sequence as the single-glyph-per-node debug form
// described in spec.md §6.3.
func (idx *Index) Dump() string {
	out := make([]byte, len(idx.Nodes))
	for i, n := range idx.Nodes {
		out[i] = glyph[n.Type()]
	}
	return string(out)
}
