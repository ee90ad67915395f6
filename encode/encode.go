// Package encode serializes a value.Value tree to JSON text, per
// spec.md §4.7: compact or pretty-printed, with configurable non-ASCII
// escaping and shortest-round-trip decimal formatting.
package encode

import (
	"bytes"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/haleyrc/jsonv/value"
)

// Escaping controls how string bytes outside the unescaped-ASCII range are
// emitted.
type Escaping int

const (
	// UTF8 leaves valid UTF-8 bytes intact, escaping only the characters
	// JSON requires (quote, backslash, and control characters).
	UTF8 Escaping = iota
	// AsciiOnly escapes every non-ASCII code point to \uXXXX, emitting a
	// UTF-16 surrogate pair for code points at or above U+10000.
	AsciiOnly
)

// Options configures an Encoder.
type Options struct {
	// Pretty, when true, inserts Indent and newlines between elements.
	// When false, output is fully compact (no whitespace).
	Pretty   bool
	Indent   string
	Escaping Escaping
}

// Marshal renders v to JSON text under opts.
func Marshal(v value.Value, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, v, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write streams v's JSON rendering to w under opts.
func Write(w io.Writer, v value.Value, opts Options) error {
	e := &encoder{w: w, opts: opts}
	e.writeValue(v, 0)
	return e.err
}

type encoder struct {
	w    io.Writer
	opts Options
	err  error
}

func (e *encoder) write(b []byte) {
	if e.err != nil {
		return
	}
	_, e.err = e.w.Write(b)
}

func (e *encoder) writeString(s string) { e.write([]byte(s)) }

func (e *encoder) newline(depth int) {
	if !e.opts.Pretty {
		return
	}
	e.writeString("\n")
	for i := 0; i < depth; i++ {
		e.writeString(e.opts.Indent)
	}
}

func (e *encoder) writeValue(v value.Value, depth int) {
	switch v.Kind() {
	case value.Null:
		e.writeString("null")
	case value.Boolean:
		b, _ := v.AsBoolean()
		if b {
			e.writeString("true")
		} else {
			e.writeString("false")
		}
	case value.Integer:
		i, _ := v.AsInteger()
		e.writeString(strconv.FormatInt(i, 10))
	case value.Decimal:
		d, _ := v.AsNumber()
		e.writeString(formatDecimal(d))
	case value.String:
		s, _ := v.AsString()
		e.writeQuoted(s)
	case value.Array:
		e.writeArray(v, depth)
	case value.Object:
		e.writeObject(v, depth)
	}
}

func (e *encoder) writeArray(v value.Value, depth int) {
	arr, _ := v.AsArray()
	e.writeString("[")
	n := arr.Len()
	if n == 0 {
		e.writeString("]")
		return
	}
	arr.Each(func(i int, elem value.Value) bool {
		if i > 0 {
			e.writeString(",")
		}
		e.newline(depth + 1)
		e.writeValue(elem, depth+1)
		return true
	})
	e.newline(depth)
	e.writeString("]")
}

func (e *encoder) writeObject(v value.Value, depth int) {
	obj, _ := v.AsObject()
	e.writeString("{")
	pairs := obj.Pairs()
	if len(pairs) == 0 {
		e.writeString("}")
		return
	}
	for i, p := range pairs {
		if i > 0 {
			e.writeString(",")
		}
		e.newline(depth + 1)
		e.writeQuoted(p.Key)
		e.writeString(":")
		if e.opts.Pretty {
			e.writeString(" ")
		}
		e.writeValue(p.Val, depth+1)
	}
	e.newline(depth)
	e.writeString("}")
}

// writeQuoted emits s as a JSON string literal, applying opts.Escaping.
func (e *encoder) writeQuoted(s string) {
	e.writeString(`"`)
	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case c == '"':
			e.writeString(`\"`)
			i++
		case c == '\\':
			e.writeString(`\\`)
			i++
		case c == '\n':
			e.writeString(`\n`)
			i++
		case c == '\r':
			e.writeString(`\r`)
			i++
		case c == '\t':
			e.writeString(`\t`)
			i++
		case c < 0x20:
			e.writeString(`\u00`)
			e.writeString(hexByte(c))
			i++
		case c < 0x80:
			e.write([]byte{c})
			i++
		default:
			r, size := utf8.DecodeRuneInString(s[i:])
			if e.opts.Escaping == AsciiOnly {
				e.writeEscapedRune(r)
			} else {
				e.write([]byte(s[i : i+size]))
			}
			i += size
		}
	}
	e.writeString(`"`)
}

func (e *encoder) writeEscapedRune(r rune) {
	if r <= 0xFFFF {
		e.writeString(`\u`)
		e.writeString(hex4(uint16(r)))
		return
	}
	r -= 0x10000
	hi := uint16(0xD800 + (r >> 10))
	lo := uint16(0xDC00 + (r & 0x3FF))
	e.writeString(`\u`)
	e.writeString(hex4(hi))
	e.writeString(`\u`)
	e.writeString(hex4(lo))
}

const hexDigits = "0123456789abcdef"

func hexByte(c byte) string {
	return string([]byte{hexDigits[c>>4], hexDigits[c&0xf]})
}

func hex4(v uint16) string {
	return string([]byte{
		hexDigits[(v>>12)&0xf],
		hexDigits[(v>>8)&0xf],
		hexDigits[(v>>4)&0xf],
		hexDigits[v&0xf],
	})
}

// formatDecimal renders d with enough digits to round-trip: Go's 'g' format
// with precision -1 picks the shortest representation that parses back to
// the same float64. Non-finite values have no digits to print and come out
// as strconv renders them ("NaN", "+Inf", "-Inf"), which is not JSON. A
// whole-valued Decimal (e.g. 5.0) formats to "5" with neither a '.' nor an
// exponent marker, which would re-tokenize as an IntegerNode and change
// Kind on re-parse; append ".0" in that case so the text always round-trips
// back to a Decimal.
func formatDecimal(d float64) string {
	if math.IsNaN(d) || math.IsInf(d, 0) {
		return strconv.FormatFloat(d, 'g', 17, 64)
	}
	s := strconv.FormatFloat(d, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
