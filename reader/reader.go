// Package reader implements a forward-only cursor over a parsed ast.Index,
// tracking the path.Path of the node currently under the cursor as
// described in spec.md §4.3.
package reader

import (
	"errors"
	"fmt"

	"github.com/haleyrc/jsonv/ast"
	"github.com/haleyrc/jsonv/path"
)

// ErrInvalidState is returned by Current/Expect when the cursor is not
// positioned on a valid node (Good() is false).
var ErrInvalidState = errors.New("jsonv: reader in invalid state")

// TypeMismatch reports that the node under the cursor did not have one of
// the expected types.
type TypeMismatch struct {
	Got      ast.NodeType
	Expected []ast.NodeType
}

func (e *TypeMismatch) Error() string {
	return fmt.Sprintf("jsonv: unexpected node type %s, expected one of %v", e.Got, e.Expected)
}

type frameKind int

const (
	frameObject frameKind = iota
	frameArray
)

type frame struct {
	kind     frameKind
	base     path.Path
	arrIndex int
}

// Reader is a forward-only cursor over an ast.Index.
type Reader struct {
	idx        *ast.Index
	pos        int
	stack      []frame
	curPath    path.Path
	pendingKey path.Path
	invalid    bool
}

// New returns a Reader positioned at idx's first node (document_start).
func New(idx *ast.Index) *Reader {
	r := &Reader{idx: idx}
	if idx.Len() == 0 {
		r.invalid = true
	}
	return r
}

// Good reports whether the cursor is at a valid node.
func (r *Reader) Good() bool {
	return !r.invalid && r.pos >= 0 && r.pos < r.idx.Len()
}

// Current returns the node under the cursor.
func (r *Reader) Current() (ast.Node, error) {
	if !r.Good() {
		return 0, ErrInvalidState
	}
	return r.idx.Nodes[r.pos], nil
}

// CurrentPath returns the path to the node under the cursor, per the
// projection rules in spec.md §4.3.
func (r *Reader) CurrentPath() path.Path {
	return r.curPath
}

// Expect checks that the current node's type is one of want, returning a
// *TypeMismatch otherwise.
func (r *Reader) Expect(want ...ast.NodeType) error {
	n, err := r.Current()
	if err != nil {
		return err
	}
	for _, t := range want {
		if n.Type() == t {
			return nil
		}
	}
	return &TypeMismatch{Got: n.Type(), Expected: want}
}

// NextToken advances the cursor by one node in document order (depth-first,
// pre/post order over structural markers and leaves), updating
// CurrentPath. It returns false when there is no next node.
func (r *Reader) NextToken() bool {
	if !r.Good() {
		return false
	}
	if r.pos+1 >= r.idx.Len() {
		return false
	}
	leaving := r.idx.Nodes[r.pos]
	r.pos++

	switch leaving.Type() {
	case ast.ObjectBegin, ast.ArrayBegin:
		kind := frameObject
		if leaving.Type() == ast.ArrayBegin {
			kind = frameArray
		}
		r.stack = append(r.stack, frame{kind: kind, base: r.curPath})
	case ast.ObjectEnd, ast.ArrayEnd:
		if len(r.stack) > 0 {
			r.stack = r.stack[:len(r.stack)-1]
		}
	}

	r.computeCurrentPath()
	return true
}

// computeCurrentPath derives curPath for the node now at r.pos, given the
// (already updated) frame stack.
func (r *Reader) computeCurrentPath() {
	n := r.idx.Nodes[r.pos]

	if len(r.stack) == 0 {
		r.curPath = path.Root()
		return
	}
	top := &r.stack[len(r.stack)-1]

	// An object_end/array_end marker points at the container itself, whose
	// frame is still on the stack (it is popped only when NextToken leaves
	// the end marker for a sibling).
	if n.Type() == ast.ObjectEnd || n.Type() == ast.ArrayEnd {
		r.curPath = top.base
		return
	}

	if top.kind == frameObject {
		switch n.Type() {
		case ast.KeyCanonical, ast.KeyEscaped:
			key, err := ast.DecodeKey(r.idx, n)
			if err != nil {
				key = string(r.idx.Text(n))
			}
			r.pendingKey = top.base.Key(key)
			r.curPath = r.pendingKey
		default:
			// A value following a key (including a nested container_begin)
			// keeps the key's path.
			r.curPath = r.pendingKey
		}
		return
	}

	// Array element: a leaf or a nested container_begin, both occupy the
	// next index slot.
	r.curPath = top.base.Index(top.arrIndex)
	top.arrIndex++
}

// NextStructure advances past the current node: if it is a *_begin marker,
// jumps to one past its matching *_end; otherwise behaves like NextToken.
func (r *Reader) NextStructure() bool {
	if !r.Good() {
		return false
	}
	n := r.idx.Nodes[r.pos]
	if n.Type() != ast.ObjectBegin && n.Type() != ast.ArrayBegin {
		return r.NextToken()
	}

	// Jump straight past the matching end marker. A frame for this
	// container was never pushed (NextToken only pushes when it actually
	// steps past a begin marker), so the stack is already in the state the
	// parent container expects; computeCurrentPath derives the next node's
	// path exactly as it would have after a sequence of NextToken calls.
	endIdx := int(n.MatchIndex())
	if endIdx+1 >= r.idx.Len() {
		return false
	}
	r.pos = endIdx + 1
	r.computeCurrentPath()
	return true
}

// NextKey is valid only when Current is a key; it advances to the next key
// at the same object depth, or to that object's object_end if there is no
// further key.
func (r *Reader) NextKey() bool {
	n, err := r.Current()
	if err != nil || (n.Type() != ast.KeyCanonical && n.Type() != ast.KeyEscaped) {
		return false
	}
	if !r.NextToken() { // move onto the key's value
		return false
	}
	val, err := r.Current()
	if err != nil {
		return false
	}
	if val.Type() == ast.ObjectBegin || val.Type() == ast.ArrayBegin {
		return r.NextStructure() // skip the whole container value
	}
	return r.NextToken() // skip the scalar value
}
