// Package buffer provides an immutable, reference-counted, cheaply
// sliceable byte buffer with explicit copy-on-write, the storage layer
// underneath a parsed document's AST index (see package ast).
package buffer

import (
	"sync/atomic"

	"github.com/zeebo/xxh3"
)

// Buffer is a view over a shared, reference-counted backing array. Multiple
// Buffers may share the same backing store; the garbage collector keeps the
// backing array alive for as long as any Buffer references it. The
// reference count only feeds IsUnique and never frees anything.
type Buffer struct {
	back  *backing
	start int
	end   int
}

type backing struct {
	data []byte
	refs atomic.Int64
}

// New allocates a Buffer of the given size with unspecified contents.
func New(size int) Buffer {
	return wrap(make([]byte, size))
}

// ZeroFilled allocates a Buffer of the given size, all bytes zero.
func ZeroFilled(size int) Buffer {
	return wrap(make([]byte, size))
}

// From creates a Buffer that copies b. The returned Buffer owns its storage
// independently of the caller's slice.
func From(b []byte) Buffer {
	cp := make([]byte, len(b))
	copy(cp, b)
	return wrap(cp)
}

// FromUnsafe wraps b directly without copying. The caller must not mutate b
// afterwards; any such mutation is visible to every Buffer sharing it and
// violates the immutability contract.
func FromUnsafe(b []byte) Buffer {
	return wrap(b)
}

func wrap(b []byte) Buffer {
	back := &backing{data: b}
	back.refs.Store(1)
	return Buffer{back: back, start: 0, end: len(b)}
}

// Size returns the number of bytes in the buffer's range.
func (b Buffer) Size() int {
	return b.end - b.start
}

// Get returns the buffer's bytes as a read-only slice. The slice aliases the
// backing store; do not mutate it.
func (b Buffer) Get() []byte {
	if b.back == nil {
		return nil
	}
	return b.back.data[b.start:b.end]
}

// Slice returns a new Buffer sharing this one's backing store, covering
// [start, end) relative to this buffer's own range.
func (b Buffer) Slice(start, end int) Buffer {
	if start < 0 || end > b.Size() || start > end {
		panic("buffer: slice out of range")
	}
	b.back.refs.Add(1)
	return Buffer{back: b.back, start: b.start + start, end: b.start + end}
}

// IsUnique reports whether no other Buffer shares this one's backing store,
// as tracked by the backing store's reference count, which Slice
// increments. The count is never decremented, so once a backing store has
// been sliced every Buffer over it reports false, even after the slices
// are gone.
func (b Buffer) IsUnique() bool {
	if b.back == nil {
		return true
	}
	return b.back.refs.Load() == 1
}

// MakeUnique returns a Buffer with the same contents and range, guaranteed
// not to share its backing store with any other live Buffer. If this Buffer
// is already unique, it is returned unchanged; otherwise its bytes are
// copied into a fresh backing store.
func (b Buffer) MakeUnique() Buffer {
	if b.IsUnique() {
		return b
	}
	cp := make([]byte, b.Size())
	copy(cp, b.Get())
	return wrap(cp)
}

// GetMut returns a mutable view of the buffer's bytes, forcing uniqueness
// first (copy-on-write). The receiver is replaced by the unique Buffer
// (whose backing may differ from before), so mutations through the
// returned slice are visible through the receiver afterwards.
func (b *Buffer) GetMut() []byte {
	*b = b.MakeUnique()
	return b.back.data[b.start:b.end]
}

// Equal reports whether a and b refer to the same backing store and the
// same byte range within it. It is an identity comparison, not a content
// comparison; see ContentsEqual.
func (a Buffer) Equal(b Buffer) bool {
	return a.back == b.back && a.start == b.start && a.end == b.end
}

// ContentsEqual reports whether a and b have byte-for-byte identical
// contents, regardless of backing identity. A cheap xxh3 digest of both
// ranges is compared first so that unequal buffers of equal length usually
// short-circuit without a full byte scan.
func (a Buffer) ContentsEqual(b Buffer) bool {
	if a.Size() != b.Size() {
		return false
	}
	if a.Equal(b) {
		return true
	}
	ag, bg := a.Get(), b.Get()
	if xxh3.Hash(ag) != xxh3.Hash(bg) {
		return false
	}
	for i := range ag {
		if ag[i] != bg[i] {
			return false
		}
	}
	return true
}
