// Package jsondiff implements the structural algorithms over value.Value
// trees described in spec.md §4.6: diff, merge, validate, and traverse.
package jsondiff

import "github.com/haleyrc/jsonv/value"

// Diff recursively compares left and right, per spec.md §4.6.1. When kinds
// differ the whole of each value lands on its own side. For arrays, elements
// are paired by index over the common prefix: same always gets one entry per
// paired index (so its length tracks the common prefix), but leftOnly and
// rightOnly only gain an entry where that pair actually diverges; any tail of
// the longer array lands wholly in its side. For objects, a shared key that
// compares equal lands only in same; a shared key that diverges recurses and
// contributes only its leftOnly/rightOnly halves (same is not padded with a
// placeholder, since objects have no position to preserve); keys unique to
// one side land wholly in that side.
func Diff(left, right value.Value) (same, leftOnly, rightOnly value.Value) {
	if left.Kind() != right.Kind() {
		return value.NullValue(), left, right
	}
	switch left.Kind() {
	case value.Array:
		return diffArray(left, right)
	case value.Object:
		return diffObject(left, right)
	default:
		if left.Equal(right) {
			return left, value.NullValue(), value.NullValue()
		}
		return value.NullValue(), left, right
	}
}

func diffArray(left, right value.Value) (value.Value, value.Value, value.Value) {
	la, _ := left.AsArray()
	ra, _ := right.AsArray()

	n := la.Len()
	if ra.Len() < n {
		n = ra.Len()
	}

	same := value.NewArray()
	leftOnly := value.NewArray()
	rightOnly := value.NewArray()

	for i := 0; i < n; i++ {
		lv, _ := la.At(i)
		rv, _ := ra.At(i)
		s, lo, ro := Diff(lv, rv)
		same.PushBack(s)
		if lv.Equal(rv) {
			continue
		}
		leftOnly.PushBack(lo)
		rightOnly.PushBack(ro)
	}
	for i := n; i < la.Len(); i++ {
		v, _ := la.At(i)
		leftOnly.PushBack(v)
	}
	for i := n; i < ra.Len(); i++ {
		v, _ := ra.At(i)
		rightOnly.PushBack(v)
	}
	return value.WrapArray(same), value.WrapArray(leftOnly), value.WrapArray(rightOnly)
}

func diffObject(left, right value.Value) (value.Value, value.Value, value.Value) {
	lo, _ := left.AsObject()
	ro, _ := right.AsObject()

	same := value.NewObject()
	leftOnly := value.NewObject()
	rightOnly := value.NewObject()

	for _, p := range lo.Pairs() {
		if !ro.Has(p.Key) {
			leftOnly.Set(p.Key, p.Val)
			continue
		}
		rv, _ := ro.Get(p.Key)
		if p.Val.Equal(rv) {
			same.Set(p.Key, p.Val)
			continue
		}
		_, l, r := Diff(p.Val, rv)
		leftOnly.Set(p.Key, l)
		rightOnly.Set(p.Key, r)
	}
	for _, p := range ro.Pairs() {
		if !lo.Has(p.Key) {
			rightOnly.Set(p.Key, p.Val)
		}
	}
	return value.WrapObject(same), value.WrapObject(leftOnly), value.WrapObject(rightOnly)
}
