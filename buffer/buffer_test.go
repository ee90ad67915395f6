package buffer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haleyrc/jsonv/buffer"
)

func TestSliceSizeAndContents(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		src        string
		start, end int
		want       string
	}{
		"full range":   {src: "hello world", start: 0, end: 11, want: "hello world"},
		"prefix":       {src: "hello world", start: 0, end: 5, want: "hello"},
		"middle":       {src: "hello world", start: 6, end: 11, want: "world"},
		"empty":        {src: "hello world", start: 2, end: 2, want: ""},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			b := buffer.From([]byte(tc.src))
			s := b.Slice(tc.start, tc.end)

			require.Equal(t, tc.end-tc.start, s.Size())
			assert.Equal(t, tc.want, string(s.Get()))
		})
	}
}

func TestSliceSharesBacking(t *testing.T) {
	t.Parallel()

	b := buffer.From([]byte("hello world"))
	assert.True(t, b.IsUnique())

	s := b.Slice(0, 5)
	assert.False(t, b.IsUnique())
	assert.False(t, s.IsUnique())
	assert.Equal(t, b.Get()[0:5], s.Get())
}

func TestMakeUniqueCopiesWhenShared(t *testing.T) {
	t.Parallel()

	b := buffer.From([]byte("hello"))
	s := b.Slice(0, 5)
	require.False(t, s.IsUnique())

	u := s.MakeUnique()
	assert.True(t, u.IsUnique())
	assert.Equal(t, s.Get(), u.Get())
	assert.False(t, u.Equal(s))
}

func TestGetMutForcesUniqueness(t *testing.T) {
	t.Parallel()

	b := buffer.From([]byte("hello"))
	s := b.Slice(0, 5)

	mut := s.GetMut()
	mut[0] = 'H'

	assert.Equal(t, "Hello", string(s.Get()))
	assert.Equal(t, "hello", string(b.Get()), "original backing must be untouched by copy-on-write")
}

func TestEqualVsContentsEqual(t *testing.T) {
	t.Parallel()

	a := buffer.From([]byte("same"))
	b := buffer.From([]byte("same"))

	assert.False(t, a.Equal(b), "distinct allocations are not identity-equal")
	assert.True(t, a.ContentsEqual(b))

	c := a.Slice(0, 4)
	assert.True(t, a.Equal(c))
	assert.True(t, a.ContentsEqual(c))
}
