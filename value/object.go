package value

import (
	"sort"
	"strconv"
	"strings"
)

// Pair is a single object key/value entry, used when constructing an Object
// or iterating one in order.
type Pair struct {
	Key string
	Val Value
}

// Object is an ordered mapping from string keys to Values, kept sorted by
// raw-byte key order at all times. Keys are unique. Lookup and insertion
// binary-search the sorted slice (O(log n) comparisons); insertion and
// erase additionally pay an O(n) slice shift, the usual cost of a sorted-
// slice map representation, the same tradeoff mcvoid-json's unsorted
// []pair makes for linear lookup instead.
type Object struct {
	pairs []Pair
}

// NewObject returns an empty Object.
func NewObject() *Object {
	return &Object{}
}

// Len returns the number of keys.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.pairs)
}

func (o *Object) search(key string) (int, bool) {
	i := sort.Search(len(o.pairs), func(i int) bool {
		return o.pairs[i].Key >= key
	})
	if i < len(o.pairs) && o.pairs[i].Key == key {
		return i, true
	}
	return i, false
}

// Get returns the value for key, or a *NoSuchElementError.
func (o *Object) Get(key string) (Value, error) {
	i, ok := o.search(key)
	if !ok {
		return Value{}, &NoSuchElementError{Key: key, HasKey: true}
	}
	return o.pairs[i].Val, nil
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.search(key)
	return ok
}

// Set inserts or overwrites key's value, maintaining sorted order.
func (o *Object) Set(key string, v Value) {
	i, ok := o.search(key)
	if ok {
		o.pairs[i].Val = v
		return
	}
	o.pairs = append(o.pairs, Pair{})
	copy(o.pairs[i+1:], o.pairs[i:])
	o.pairs[i] = Pair{Key: key, Val: v}
}

// Erase removes key, reporting whether it was present.
func (o *Object) Erase(key string) bool {
	i, ok := o.search(key)
	if !ok {
		return false
	}
	o.pairs = append(o.pairs[:i], o.pairs[i+1:]...)
	return true
}

// Keys returns the keys in sorted order. The slice is a fresh copy.
func (o *Object) Keys() []string {
	keys := make([]string, len(o.pairs))
	for i, p := range o.pairs {
		keys[i] = p.Key
	}
	return keys
}

// Pairs returns the key/value pairs in sorted order. The returned slice
// aliases Object's storage; callers must not retain it across mutation.
func (o *Object) Pairs() []Pair {
	if o == nil {
		return nil
	}
	return o.pairs
}

// Each iterates pairs in sorted key order.
func (o *Object) Each(fn func(key string, v Value) bool) {
	for _, p := range o.Pairs() {
		if !fn(p.Key, p.Val) {
			return
		}
	}
}

// DuplicateKeyAction controls how extract_tree handles a repeated object
// key in source text (spec.md §4.4).
type DuplicateKeyAction int

const (
	// DuplicateKeyReplace keeps the last value seen for a repeated key
	// (the default).
	DuplicateKeyReplace DuplicateKeyAction = iota
	// DuplicateKeyIgnore keeps the first value seen for a repeated key.
	DuplicateKeyIgnore
	// DuplicateKeyException fails extraction on any repeated key.
	DuplicateKeyException
)

func (o *Object) clone() *Object {
	out := make([]Pair, len(o.pairs))
	for i, p := range o.pairs {
		out[i] = Pair{Key: p.Key, Val: p.Val.Clone()}
	}
	return &Object{pairs: out}
}

func (o *Object) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, p := range o.pairs {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.Quote(p.Key))
		sb.WriteString(": ")
		sb.WriteString(p.Val.String())
	}
	sb.WriteByte('}')
	return sb.String()
}
