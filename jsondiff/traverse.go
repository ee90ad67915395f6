package jsondiff

import (
	"github.com/haleyrc/jsonv/path"
	"github.com/haleyrc/jsonv/value"
)

// Traverse walks v depth-first, pre-order, calling visit(path, value) for
// v itself and every nested element/pair. Traversal stops early if visit
// returns false for any node, including v itself.
func Traverse(v value.Value, visit func(p path.Path, node value.Value) bool) {
	traverseAt(path.Root(), v, visit)
}

func traverseAt(p path.Path, v value.Value, visit func(path.Path, value.Value) bool) bool {
	if !visit(p, v) {
		return false
	}
	switch v.Kind() {
	case value.Array:
		arr, _ := v.AsArray()
		cont := true
		arr.Each(func(i int, elem value.Value) bool {
			cont = traverseAt(p.Index(i), elem, visit)
			return cont
		})
		return cont
	case value.Object:
		obj, _ := v.AsObject()
		cont := true
		obj.Each(func(key string, val value.Value) bool {
			cont = traverseAt(p.Key(key), val, visit)
			return cont
		})
		return cont
	}
	return true
}
