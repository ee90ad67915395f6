package value

import (
	"math"
	"strconv"
)

// Value is a JSON value: a tagged union over the seven Kinds. The zero
// Value is Null. A Value's Kind and its payload variant are always
// consistent; accessing a payload that does not match the Kind returns a
// *KindError.
type Value struct {
	kind Kind
	b    bool
	i    int64
	d    float64
	s    string
	arr  *Array
	obj  *Object
}

// NullValue returns a null Value.
func NullValue() Value { return Value{kind: Null} }

// BooleanValue returns a boolean Value.
func BooleanValue(b bool) Value { return Value{kind: Boolean, b: b} }

// IntegerValue returns a signed 64-bit integer Value.
func IntegerValue(i int64) Value { return Value{kind: Integer, i: i} }

// DecimalValue returns an IEEE-754 double Value.
func DecimalValue(d float64) Value { return Value{kind: Decimal, d: d} }

// StringValue returns a string Value. The string is copied into the Value;
// Go strings are already immutable so no further copy is needed on Clone.
func StringValue(s string) Value { return Value{kind: String, s: s} }

// ArrayValue returns an array Value wrapping the given elements directly
// (no copy); use Clone for a deep copy.
func ArrayValue(elems ...Value) Value {
	a := NewArray()
	for _, e := range elems {
		a.PushBack(e)
	}
	return Value{kind: Array, arr: a}
}

// ObjectValue returns an object Value built from the given key/value pairs,
// subject to the object's duplicate-key-replaces discipline.
func ObjectValue(pairs ...Pair) Value {
	o := NewObject()
	for _, p := range pairs {
		o.Set(p.Key, p.Val)
	}
	return Value{kind: Object, obj: o}
}

// WrapArray returns an array Value wrapping a already-built *Array, taking
// ownership of it without copying. Used by callers (e.g. package ast) that
// incrementally build an Array in place, such as a tree extractor.
func WrapArray(a *Array) Value { return Value{kind: Array, arr: a} }

// WrapObject returns an object Value wrapping an already-built *Object,
// taking ownership of it without copying. See WrapArray.
func WrapObject(o *Object) Value { return Value{kind: Object, obj: o} }

// Kind returns the value's kind.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the null value.
func (v Value) IsNull() bool { return v.kind == Null }

// AsBoolean extracts the boolean payload, or a *KindError.
func (v Value) AsBoolean() (bool, error) {
	if v.kind != Boolean {
		return false, &KindError{Want: Boolean, Got: v.kind}
	}
	return v.b, nil
}

// AsInteger extracts the integer payload. Unlike AsNumber it does not widen
// a Decimal; use AsNumber when either numeric kind is acceptable.
func (v Value) AsInteger() (int64, error) {
	if v.kind != Integer {
		return 0, &KindError{Want: Integer, Got: v.kind}
	}
	return v.i, nil
}

// AsNumber extracts the numeric payload as a float64, accepting either
// Integer or Decimal.
func (v Value) AsNumber() (float64, error) {
	switch v.kind {
	case Integer:
		return float64(v.i), nil
	case Decimal:
		return v.d, nil
	}
	return 0, &KindError{Want: Decimal, Got: v.kind}
}

// AsString extracts the string payload, or a *KindError.
func (v Value) AsString() (string, error) {
	if v.kind != String {
		return "", &KindError{Want: String, Got: v.kind}
	}
	return v.s, nil
}

// AsArray returns the underlying *Array, or a *KindError. The returned
// Array borrows v's storage; mutating it mutates v.
func (v Value) AsArray() (*Array, error) {
	if v.kind != Array {
		return nil, &KindError{Want: Array, Got: v.kind}
	}
	return v.arr, nil
}

// AsObject returns the underlying *Object, or a *KindError. The returned
// Object borrows v's storage; mutating it mutates v.
func (v Value) AsObject() (*Object, error) {
	if v.kind != Object {
		return nil, &KindError{Want: Object, Got: v.kind}
	}
	return v.obj, nil
}

// Clone returns a deep copy of v. Containers are recursively cloned;
// scalars are copied by value.
func (v Value) Clone() Value {
	switch v.kind {
	case Array:
		return Value{kind: Array, arr: v.arr.clone()}
	case Object:
		return Value{kind: Object, obj: v.obj.clone()}
	default:
		return v
	}
}

// Equal reports deep structural equality: kinds must match and payloads
// must be recursively equal. Object equality is order-independent over
// keys (keys are unique, so this reduces to pointwise equality once both
// sides are in canonical sorted order, which Object always maintains).
func (v Value) Equal(o Value) bool {
	return Compare(v, o) == 0
}

// Size returns the number of elements/pairs for Array and Object values, 0
// for scalars, per the convenience used throughout the algorithms.
func (v Value) Size() int {
	switch v.kind {
	case Array:
		return v.arr.Len()
	case Object:
		return v.obj.Len()
	}
	return 0
}

// IsFinite reports whether a Decimal value is neither NaN nor ±Inf. Always
// true for non-Decimal kinds.
func (v Value) IsFinite() bool {
	if v.kind != Decimal {
		return true
	}
	return !math.IsNaN(v.d) && !math.IsInf(v.d, 0)
}

// String renders a debug form of v. It is not guaranteed to be valid JSON
// text for non-finite decimals; use package encode for wire output.
func (v Value) String() string {
	switch v.kind {
	case Null:
		return "null"
	case Boolean:
		if v.b {
			return "true"
		}
		return "false"
	case Integer:
		return strconv.FormatInt(v.i, 10)
	case Decimal:
		return strconv.FormatFloat(v.d, 'g', -1, 64)
	case String:
		return strconv.Quote(v.s)
	case Array:
		return v.arr.String()
	case Object:
		return v.obj.String()
	}
	return "<unknown>"
}

// Coerce attempts a loose conversion of v to the target Kind: numeric
// widening/narrowing between Integer and Decimal, string parsing to a
// number or boolean, and the canonical string form of a scalar. It returns
// a *KindError if no coercion rule applies. Coerce is not used by any core
// algorithm; it exists for callers that want looser semantics than the
// default strict extraction rules.
func Coerce(v Value, to Kind) (Value, error) {
	if v.kind == to {
		return v, nil
	}
	switch to {
	case Boolean:
		switch v.kind {
		case String:
			b, err := strconv.ParseBool(v.s)
			if err != nil {
				return Value{}, &KindError{Want: Boolean, Got: v.kind}
			}
			return BooleanValue(b), nil
		case Integer:
			return BooleanValue(v.i != 0), nil
		case Decimal:
			return BooleanValue(v.d != 0), nil
		}
	case Integer:
		switch v.kind {
		case Decimal:
			return IntegerValue(int64(v.d)), nil
		case String:
			i, err := strconv.ParseInt(v.s, 10, 64)
			if err != nil {
				return Value{}, &KindError{Want: Integer, Got: v.kind}
			}
			return IntegerValue(i), nil
		case Boolean:
			if v.b {
				return IntegerValue(1), nil
			}
			return IntegerValue(0), nil
		}
	case Decimal:
		switch v.kind {
		case Integer:
			return DecimalValue(float64(v.i)), nil
		case String:
			d, err := strconv.ParseFloat(v.s, 64)
			if err != nil {
				return Value{}, &KindError{Want: Decimal, Got: v.kind}
			}
			return DecimalValue(d), nil
		}
	case String:
		switch v.kind {
		case Integer, Decimal, Boolean, Null:
			return StringValue(v.String()), nil
		}
	}
	return Value{}, &KindError{Want: to, Got: v.kind}
}
