package jsondiff

import (
	"fmt"
	"log/slog"

	"github.com/haleyrc/jsonv/path"
	"github.com/haleyrc/jsonv/value"
)

// Rules controls how Merge resolves a true type conflict (kinds differ and
// are not the integer/decimal near-conflict pair) and how it recurses into
// a shared object key, per spec.md §4.6.2.
type Rules interface {
	ResolveTypeConflict(p path.Path, left, right value.Value) (value.Value, error)
	ResolveSameKey(p path.Path, left, right value.Value) (value.Value, error)
}

// TypeConflictError reports a kind mismatch Merge could not resolve.
type TypeConflictError struct {
	Path        path.Path
	Left, Right value.Kind
}

func (e *TypeConflictError) Error() string {
	return fmt.Sprintf("jsonv: merge: type conflict at %s: %s vs %s", e.Path, e.Left, e.Right)
}

// Throwing is a Rules that fails merge on any type conflict.
type Throwing struct{}

func (t Throwing) ResolveTypeConflict(p path.Path, left, right value.Value) (value.Value, error) {
	return value.Value{}, &TypeConflictError{Path: p, Left: left.Kind(), Right: right.Kind()}
}

func (t Throwing) ResolveSameKey(p path.Path, left, right value.Value) (value.Value, error) {
	return mergeAt(t, p, left, right, slog.Default())
}

// Recursive is a Rules that resolves a type conflict by keeping the right
// side's value (last-writer-wins), while still recursing into shared
// object keys the same way Throwing does.
type Recursive struct{}

func (r Recursive) ResolveTypeConflict(p path.Path, left, right value.Value) (value.Value, error) {
	return right, nil
}

func (r Recursive) ResolveSameKey(p path.Path, left, right value.Value) (value.Value, error) {
	return mergeAt(r, p, left, right, slog.Default())
}

// Dynamic is a Rules that delegates type-conflict resolution to a
// caller-supplied function, for policies that can't be expressed as a
// fixed built-in (e.g. choosing by path, or consulting external state).
type Dynamic struct {
	Resolve func(p path.Path, left, right value.Value) (value.Value, error)
}

func (d Dynamic) ResolveTypeConflict(p path.Path, left, right value.Value) (value.Value, error) {
	return d.Resolve(p, left, right)
}

func (d Dynamic) ResolveSameKey(p path.Path, left, right value.Value) (value.Value, error) {
	return mergeAt(d, p, left, right, slog.Default())
}

// Merge combines a and b per spec.md §4.6.2, consulting rules whenever
// kinds conflict. logger receives a debug record when a and b themselves
// conflict; omit it (or pass nil) to use slog.Default(). Conflicts found
// under shared object keys are merged through rules.ResolveSameKey, and the
// built-in Rules log those to slog.Default(), not to logger.
func Merge(rules Rules, a, b value.Value, logger ...*slog.Logger) (value.Value, error) {
	return mergeAt(rules, path.Root(), a, b, pickLogger(logger))
}

// MergeAll folds values left-to-right through Merge under rules, per
// spec.md §8.1's merge identity laws: zero values yields the empty object,
// exactly one value is returned unchanged (neither copied nor validated
// against rules), and two or more fold pairwise the same way Merge(a, b)
// does.
func MergeAll(rules Rules, values ...value.Value) (value.Value, error) {
	if len(values) == 0 {
		return value.ObjectValue(), nil
	}
	acc := values[0]
	for _, v := range values[1:] {
		var err error
		acc, err = Merge(rules, acc, v)
		if err != nil {
			return value.Value{}, err
		}
	}
	return acc, nil
}

func mergeAt(rules Rules, p path.Path, a, b value.Value, log *slog.Logger) (value.Value, error) {
	if isNumeric(a.Kind()) && isNumeric(b.Kind()) && a.Kind() != b.Kind() {
		af, _ := a.AsNumber()
		bf, _ := b.AsNumber()
		return value.DecimalValue(af + bf), nil
	}
	if a.Kind() != b.Kind() {
		log.Debug("jsonv: merge type conflict", "path", p.String(), "left", a.Kind().String(), "right", b.Kind().String())
		return rules.ResolveTypeConflict(p, a, b)
	}

	switch a.Kind() {
	case value.Object:
		return mergeObject(rules, p, a, b)
	case value.Array:
		return mergeArray(a, b)
	case value.Boolean:
		av, _ := a.AsBoolean()
		bv, _ := b.AsBoolean()
		return value.BooleanValue(av || bv), nil
	case value.Integer:
		av, _ := a.AsInteger()
		bv, _ := b.AsInteger()
		return value.IntegerValue(av + bv), nil
	case value.Decimal:
		av, _ := a.AsNumber()
		bv, _ := b.AsNumber()
		return value.DecimalValue(av + bv), nil
	case value.String:
		av, _ := a.AsString()
		bv, _ := b.AsString()
		return value.StringValue(av + bv), nil
	case value.Null:
		return value.NullValue(), nil
	}
	return value.Value{}, fmt.Errorf("jsonv: merge: unsupported kind %s", a.Kind())
}

func isNumeric(k value.Kind) bool { return k == value.Integer || k == value.Decimal }

func mergeObject(rules Rules, p path.Path, a, b value.Value) (value.Value, error) {
	ao, _ := a.AsObject()
	bo, _ := b.AsObject()
	out := value.NewObject()

	for _, pr := range ao.Pairs() {
		if bo.Has(pr.Key) {
			bv, _ := bo.Get(pr.Key)
			mv, err := rules.ResolveSameKey(p.Key(pr.Key), pr.Val, bv)
			if err != nil {
				return value.Value{}, err
			}
			out.Set(pr.Key, mv)
		} else {
			out.Set(pr.Key, pr.Val)
		}
	}
	for _, pr := range bo.Pairs() {
		if !ao.Has(pr.Key) {
			out.Set(pr.Key, pr.Val)
		}
	}
	return value.WrapObject(out), nil
}

func mergeArray(a, b value.Value) (value.Value, error) {
	aa, _ := a.AsArray()
	ba, _ := b.AsArray()
	out := value.NewArray()
	aa.Each(func(_ int, v value.Value) bool { out.PushBack(v); return true })
	ba.Each(func(_ int, v value.Value) bool { out.PushBack(v); return true })
	return value.WrapArray(out), nil
}
