package ast

import (
	"fmt"
	"strconv"

	"github.com/haleyrc/jsonv/value"
)

// OverflowAction controls how ExtractTree handles an integer literal that
// does not fit in int64.
type OverflowAction int

const (
	// OverflowFail returns an error when an integer literal overflows.
	OverflowFail OverflowAction = iota
	// OverflowCoerceDecimal promotes an overflowing integer literal to a
	// Decimal, per spec.md §4.4's overflow policy.
	OverflowCoerceDecimal
)

// ExtractOptions configures ExtractTree.
type ExtractOptions struct {
	DuplicateKey value.DuplicateKeyAction
	Overflow     OverflowAction
	// StringEncoding controls how a string or key span containing invalid
	// UTF-8 is handled, per spec.md §4.2. The zero value, ReplaceInvalid,
	// sanitizes invalid bytes with U+FFFD.
	StringEncoding StringEncodingAction
}

// ExtractTree converts a successfully parsed Index into a value.Value tree,
// per spec.md §4.4 (parse_index::extract_tree). It requires idx.Successful()
// to be true; extracting a tree from a malformed index returns the index's
// first ParseError.
func ExtractTree(idx *Index, opts ExtractOptions) (value.Value, error) {
	if !idx.Successful() {
		return value.Value{}, idx.Errors[0]
	}
	if len(idx.Nodes) < 2 || idx.Nodes[0].Type() != DocumentStart {
		return value.Value{}, fmt.Errorf("%w: empty or malformed index", ErrParse)
	}
	val, _, err := buildValue(idx, 1, opts)
	if err != nil {
		return value.Value{}, err
	}
	return val, nil
}

// buildValue builds the value.Value rooted at idx.Nodes[pos], returning it
// along with the index of the node immediately following it.
func buildValue(idx *Index, pos int, opts ExtractOptions) (value.Value, int, error) {
	n := idx.Nodes[pos]
	switch n.Type() {
	case ObjectBegin:
		return buildObject(idx, pos, opts)
	case ArrayBegin:
		return buildArray(idx, pos, opts)
	case StringCanonical:
		s, err := sanitizeUTF8(idx, n, string(idx.Text(n)), opts.StringEncoding)
		if err != nil {
			return value.Value{}, 0, err
		}
		return value.StringValue(s), pos + 1, nil
	case StringEscaped:
		s, err := decodeEscapes(idx.Text(n))
		if err != nil {
			return value.Value{}, 0, err
		}
		s, err = sanitizeUTF8(idx, n, s, opts.StringEncoding)
		if err != nil {
			return value.Value{}, 0, err
		}
		return value.StringValue(s), pos + 1, nil
	case LiteralTrue:
		return value.BooleanValue(true), pos + 1, nil
	case LiteralFalse:
		return value.BooleanValue(false), pos + 1, nil
	case LiteralNull:
		return value.NullValue(), pos + 1, nil
	case IntegerNode:
		v, err := buildInteger(idx.Text(n), opts)
		if err != nil {
			return value.Value{}, 0, err
		}
		return v, pos + 1, nil
	case DecimalNode:
		d, err := strconv.ParseFloat(string(idx.Text(n)), 64)
		if err != nil {
			return value.Value{}, 0, fmt.Errorf("%w: %v", ErrParse, err)
		}
		return value.DecimalValue(d), pos + 1, nil
	default:
		return value.Value{}, 0, fmt.Errorf("%w: unexpected node %s in extract_tree", ErrParse, n.Type())
	}
}

func buildInteger(text []byte, opts ExtractOptions) (value.Value, error) {
	i, err := strconv.ParseInt(string(text), 10, 64)
	if err == nil {
		return value.IntegerValue(i), nil
	}
	if opts.Overflow != OverflowCoerceDecimal {
		return value.Value{}, fmt.Errorf("%w: integer literal out of range: %v", ErrParse, err)
	}
	d, derr := strconv.ParseFloat(string(text), 64)
	if derr != nil {
		return value.Value{}, fmt.Errorf("%w: integer literal out of range: %v", ErrParse, err)
	}
	return value.DecimalValue(d), nil
}

func buildObject(idx *Index, pos int, opts ExtractOptions) (value.Value, int, error) {
	begin := idx.Nodes[pos]
	end := int(begin.MatchIndex())
	obj := value.NewObject()

	i := pos + 1
	for i < end {
		keyNode := idx.Nodes[i]
		var key string
		var err error
		switch keyNode.Type() {
		case KeyCanonical:
			key = string(idx.Text(keyNode))
		case KeyEscaped:
			key, err = decodeEscapes(idx.Text(keyNode))
		default:
			err = fmt.Errorf("%w: expected an object key node, got %s", ErrParse, keyNode.Type())
		}
		if err != nil {
			return value.Value{}, 0, err
		}
		key, err = sanitizeUTF8(idx, keyNode, key, opts.StringEncoding)
		if err != nil {
			return value.Value{}, 0, err
		}
		i++

		val, next, err := buildValue(idx, i, opts)
		if err != nil {
			return value.Value{}, 0, err
		}
		i = next

		switch opts.DuplicateKey {
		case value.DuplicateKeyIgnore:
			if !obj.Has(key) {
				obj.Set(key, val)
			}
		case value.DuplicateKeyException:
			if obj.Has(key) {
				return value.Value{}, 0, fmt.Errorf("%w: duplicate object key %q", ErrParse, key)
			}
			obj.Set(key, val)
		default: // DuplicateKeyReplace
			obj.Set(key, val)
		}
	}
	return value.WrapObject(obj), end + 1, nil
}

func buildArray(idx *Index, pos int, opts ExtractOptions) (value.Value, int, error) {
	begin := idx.Nodes[pos]
	end := int(begin.MatchIndex())
	arr := value.NewArray()

	i := pos + 1
	for i < end {
		val, next, err := buildValue(idx, i, opts)
		if err != nil {
			return value.Value{}, 0, err
		}
		arr.PushBack(val)
		i = next
	}
	return value.WrapArray(arr), end + 1, nil
}
