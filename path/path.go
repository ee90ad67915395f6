// Package path implements Path: an ordered sequence of object keys and
// array indices, its textual grammar, and resolution against a value.Value
// tree.
package path

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/haleyrc/jsonv/value"
)

// ErrInvalidPath is the sentinel wrapped by path parse errors.
var ErrInvalidPath = errors.New("jsonv: invalid path")

// simpleIdent matches [A-Za-z_$][A-Za-z0-9_$]*.
func isSimpleIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isSimpleIdentCont(c byte) bool {
	return isSimpleIdentStart(c) || (c >= '0' && c <= '9')
}

func isSimpleIdent(s string) bool {
	if s == "" || !isSimpleIdentStart(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isSimpleIdentCont(s[i]) {
			return false
		}
	}
	return true
}

// Element is one step of a Path: either an object key (IsKey true) or an
// array index.
type Element struct {
	Key     string
	Index   int
	IsKey   bool
}

// Path is an ordered sequence of Elements. The zero Path is the root path.
type Path struct {
	elems []Element
}

// Root returns the empty path, denoting the document root.
func Root() Path { return Path{} }

// Key returns a copy of p with a trailing object-key element appended.
func (p Path) Key(key string) Path {
	out := make([]Element, len(p.elems)+1)
	copy(out, p.elems)
	out[len(p.elems)] = Element{Key: key, IsKey: true}
	return Path{elems: out}
}

// Index returns a copy of p with a trailing array-index element appended.
func (p Path) Index(i int) Path {
	out := make([]Element, len(p.elems)+1)
	copy(out, p.elems)
	out[len(p.elems)] = Element{Index: i}
	return Path{elems: out}
}

// Len returns the number of elements.
func (p Path) Len() int { return len(p.elems) }

// Elements returns the path's elements in order. The returned slice must
// not be mutated.
func (p Path) Elements() []Element { return p.elems }

// Concat returns a new Path consisting of p's elements followed by other's.
func (p Path) Concat(other Path) Path {
	out := make([]Element, 0, len(p.elems)+len(other.elems))
	out = append(out, p.elems...)
	out = append(out, other.elems...)
	return Path{elems: out}
}

// String renders the path's textual form (spec.md §6.2): "." for the root,
// ".ident" for keys matching the simple identifier grammar, and
// ["quoted"]/[N] otherwise.
func (p Path) String() string {
	if len(p.elems) == 0 {
		return "."
	}
	var sb strings.Builder
	for _, e := range p.elems {
		if e.IsKey {
			if isSimpleIdent(e.Key) {
				sb.WriteByte('.')
				sb.WriteString(e.Key)
			} else {
				sb.WriteByte('[')
				sb.WriteString(strconv.Quote(e.Key))
				sb.WriteByte(']')
			}
			continue
		}
		sb.WriteByte('[')
		sb.WriteString(strconv.Itoa(e.Index))
		sb.WriteByte(']')
	}
	return sb.String()
}

// Parse parses a path string in the grammar of spec.md §3.4. "." alone is
// the root.
func Parse(s string) (Path, error) {
	if s == "." {
		return Root(), nil
	}
	if s == "" || s[0] != '.' && s[0] != '[' {
		return Path{}, fmt.Errorf("%w: path must start with '.' or '[': %q", ErrInvalidPath, s)
	}

	var p Path
	i := 0
	for i < len(s) {
		switch s[i] {
		case '.':
			i++
			start := i
			for i < len(s) && isSimpleIdentCont(s[i]) {
				i++
			}
			if i == start {
				return Path{}, fmt.Errorf("%w: expected identifier after '.' at offset %d", ErrInvalidPath, start)
			}
			p = p.Key(s[start:i])
		case '[':
			i++
			if i >= len(s) {
				return Path{}, fmt.Errorf("%w: unterminated '[' at offset %d", ErrInvalidPath, i-1)
			}
			if s[i] == '"' {
				key, n, err := parseQuoted(s[i:])
				if err != nil {
					return Path{}, err
				}
				i += n
				if i >= len(s) || s[i] != ']' {
					return Path{}, fmt.Errorf("%w: expected ']' at offset %d", ErrInvalidPath, i)
				}
				i++
				p = p.Key(key)
				continue
			}
			start := i
			for i < len(s) && s[i] >= '0' && s[i] <= '9' {
				i++
			}
			if i == start {
				return Path{}, fmt.Errorf("%w: expected a quoted key or a decimal index at offset %d", ErrInvalidPath, start)
			}
			digits := s[start:i]
			if len(digits) > 1 && digits[0] == '0' {
				return Path{}, fmt.Errorf("%w: array index has a leading zero: %q", ErrInvalidPath, digits)
			}
			if i >= len(s) || s[i] != ']' {
				return Path{}, fmt.Errorf("%w: expected ']' at offset %d", ErrInvalidPath, i)
			}
			i++
			idx, err := strconv.Atoi(digits)
			if err != nil {
				return Path{}, fmt.Errorf("%w: %v", ErrInvalidPath, err)
			}
			p = p.Index(idx)
		default:
			return Path{}, fmt.Errorf("%w: unexpected character %q at offset %d", ErrInvalidPath, s[i], i)
		}
	}
	return p, nil
}

// parseQuoted decodes a JSON string literal (including escapes) starting at
// s[0] == '"'. It returns the decoded key and the number of bytes consumed
// from s, including both quotes.
func parseQuoted(s string) (string, int, error) {
	var sb strings.Builder
	i := 1
	for i < len(s) {
		c := s[i]
		if c == '"' {
			return sb.String(), i + 1, nil
		}
		if c != '\\' {
			sb.WriteByte(c)
			i++
			continue
		}
		if i+1 >= len(s) {
			break
		}
		switch s[i+1] {
		case '"':
			sb.WriteByte('"')
			i += 2
		case '\\':
			sb.WriteByte('\\')
			i += 2
		case '/':
			sb.WriteByte('/')
			i += 2
		case 'b':
			sb.WriteByte('\b')
			i += 2
		case 'f':
			sb.WriteByte('\f')
			i += 2
		case 'n':
			sb.WriteByte('\n')
			i += 2
		case 'r':
			sb.WriteByte('\r')
			i += 2
		case 't':
			sb.WriteByte('\t')
			i += 2
		case 'u':
			if i+6 > len(s) {
				return "", 0, fmt.Errorf("%w: truncated unicode escape", ErrInvalidPath)
			}
			r, err := strconv.ParseUint(s[i+2:i+6], 16, 32)
			if err != nil {
				return "", 0, fmt.Errorf("%w: invalid unicode escape", ErrInvalidPath)
			}
			sb.WriteRune(rune(r))
			i += 6
		default:
			return "", 0, fmt.Errorf("%w: invalid escape '\\%c'", ErrInvalidPath, s[i+1])
		}
	}
	return "", 0, fmt.Errorf("%w: unterminated quoted key", ErrInvalidPath)
}

// Resolve applies p to root, following keys and indices in order. It fails
// with a *value.KindError if a step expects the wrong container kind, or a
// *value.NoSuchElementError on a missing key or an out-of-range index.
func Resolve(root value.Value, p Path) (value.Value, error) {
	cur := root
	for _, e := range p.elems {
		if e.IsKey {
			obj, err := cur.AsObject()
			if err != nil {
				return value.Value{}, err
			}
			cur, err = obj.Get(e.Key)
			if err != nil {
				return value.Value{}, err
			}
			continue
		}
		arr, err := cur.AsArray()
		if err != nil {
			return value.Value{}, err
		}
		cur, err = arr.At(e.Index)
		if err != nil {
			return value.Value{}, &value.NoSuchElementError{Index: e.Index}
		}
	}
	return cur, nil
}
