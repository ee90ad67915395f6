package jsondiff_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haleyrc/jsonv/jsondiff"
	"github.com/haleyrc/jsonv/value"
)

func TestDiffScalarsEqualAndUnequal(t *testing.T) {
	t.Parallel()

	same, lo, ro := jsondiff.Diff(value.IntegerValue(1), value.IntegerValue(1))
	assert.True(t, same.Equal(value.IntegerValue(1)))
	assert.True(t, lo.IsNull())
	assert.True(t, ro.IsNull())

	same, lo, ro = jsondiff.Diff(value.IntegerValue(1), value.IntegerValue(2))
	assert.True(t, same.IsNull())
	i, err := lo.AsInteger()
	require.NoError(t, err)
	assert.Equal(t, int64(1), i)
	i, err = ro.AsInteger()
	require.NoError(t, err)
	assert.Equal(t, int64(2), i)
}

func TestDiffKindMismatchLandsWhole(t *testing.T) {
	t.Parallel()

	left := value.StringValue("x")
	right := value.IntegerValue(1)
	same, lo, ro := jsondiff.Diff(left, right)
	assert.True(t, same.IsNull())
	assert.True(t, lo.Equal(left))
	assert.True(t, ro.Equal(right))
}

func TestDiffArraysPairByIndexAndTailLandsInLongerSide(t *testing.T) {
	t.Parallel()

	left := value.ArrayValue(value.IntegerValue(1), value.IntegerValue(2), value.IntegerValue(99))
	right := value.ArrayValue(value.IntegerValue(1), value.IntegerValue(3))

	same, lo, ro := jsondiff.Diff(left, right)

	sameArr, err := same.AsArray()
	require.NoError(t, err)
	require.Equal(t, 2, sameArr.Len())
	v0, _ := sameArr.At(0)
	assert.True(t, v0.Equal(value.IntegerValue(1)))

	loArr, err := lo.AsArray()
	require.NoError(t, err)
	require.Equal(t, 2, loArr.Len()) // left value of the index-1 mismatch + tail element
	tail, _ := loArr.At(1)
	assert.True(t, tail.Equal(value.IntegerValue(99)))

	roArr, err := ro.AsArray()
	require.NoError(t, err)
	require.Equal(t, 1, roArr.Len())
}

func TestDiffObjectsUnionsSharedAndUniqueKeys(t *testing.T) {
	t.Parallel()

	left := value.ObjectValue(
		value.Pair{Key: "a", Val: value.IntegerValue(1)},
		value.Pair{Key: "shared", Val: value.IntegerValue(1)},
	)
	right := value.ObjectValue(
		value.Pair{Key: "b", Val: value.IntegerValue(2)},
		value.Pair{Key: "shared", Val: value.IntegerValue(2)},
	)

	same, lo, ro := jsondiff.Diff(left, right)

	sameObj, err := same.AsObject()
	require.NoError(t, err)
	assert.False(t, sameObj.Has("shared")) // diverging shared key lands only in leftOnly/rightOnly

	loObj, err := lo.AsObject()
	require.NoError(t, err)
	assert.True(t, loObj.Has("a"))
	v, err := loObj.Get("shared")
	require.NoError(t, err)
	i, err := v.AsInteger()
	require.NoError(t, err)
	assert.Equal(t, int64(1), i)

	roObj, err := ro.AsObject()
	require.NoError(t, err)
	assert.True(t, roObj.Has("b"))
}
