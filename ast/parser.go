package ast

import (
	"bytes"

	"github.com/haleyrc/jsonv/buffer"
	"github.com/haleyrc/jsonv/token"
)

type frameKind int

const (
	frameArray frameKind = iota
	frameObject
)

type objState int

const (
	objExpectKey objState = iota
	objExpectColon
	objExpectValue
	objExpectCommaOrEnd
)

type arrState int

const (
	arrExpectValue arrState = iota
	arrExpectCommaOrEnd
)

type frame struct {
	kind       frameKind
	obj        objState
	arr        arrState
	beginIdx   int
	afterComma bool
}

// parser is the recursive-descent-over-an-explicit-stack parser described
// in spec.md §4.2: container nesting is tracked on parser.stack (heap
// memory), not the Go call stack, so pathological input depth cannot
// overflow it the way naive recursion would.
type parser struct {
	opts   ParseOptions
	src    []byte
	pos    int
	nodes  []Node
	errors []*ParseError
	stack  []frame
	halted bool
}

// Parse consumes src and produces an Index. A non-nil error is returned
// only when opts.FailureMode is FailImmediately and a malformed token was
// found; otherwise check Index.Successful() and Index.Errors.
func Parse(src []byte, opts ParseOptions) (*Index, error) {
	var buf buffer.Buffer
	if opts.BorrowSource {
		buf = buffer.FromUnsafe(src)
	} else {
		buf = buffer.From(src)
	}

	p := &parser{opts: opts, src: buf.Get()}
	p.emit(DocumentStart, 0, 0)
	p.run()

	if !p.halted {
		p.skipTrivia()
		if p.pos < len(p.src) {
			p.fail(CodeUnexpectedToken, "unexpected trailing data after document")
		}
	}
	p.emit(DocumentEnd, uint32(p.pos), 0)

	idx := &Index{Source: buf, Nodes: p.nodes, Errors: p.errors}
	if len(idx.Errors) > 0 && opts.FailureMode == FailImmediately {
		return idx, idx.Errors[0]
	}
	return idx, nil
}

func (p *parser) run() {
	if !p.parseOneValue() {
		return
	}
	// A failed step either halted the parse or (under Ignore) recovered to a
	// structural boundary, so the loop continues until the stack empties or
	// the parse halts.
	for len(p.stack) > 0 && !p.halted {
		p.stepTop()
	}
}

func (p *parser) emit(t NodeType, offset, second uint32) int {
	p.nodes = append(p.nodes, makeNode(t, offset, second))
	return len(p.nodes) - 1
}

func (p *parser) pushFrame(kind frameKind, delimOffset int) {
	if len(p.stack) >= p.opts.maxDepth() {
		p.fail(CodeDepthExceeded, "maximum nesting depth exceeded")
		return
	}
	f := frame{kind: kind}
	nt := ArrayBegin
	if kind == frameObject {
		nt = ObjectBegin
		f.obj = objExpectKey
	} else {
		f.arr = arrExpectValue
	}
	f.beginIdx = p.emit(nt, uint32(delimOffset), 0)
	p.stack = append(p.stack, f)
}

func (p *parser) closeFrame(endType NodeType) {
	n := len(p.stack)
	top := p.stack[n-1]
	p.stack = p.stack[:n-1]

	endIdx := p.emit(endType, uint32(p.pos), uint32(top.beginIdx))
	p.pos++

	begin := p.nodes[top.beginIdx]
	p.nodes[top.beginIdx] = makeNode(begin.Type(), begin.Offset(), uint32(endIdx))

	p.onValueCompleted()
}

func (p *parser) onValueCompleted() {
	if len(p.stack) == 0 {
		return
	}
	top := &p.stack[len(p.stack)-1]
	top.afterComma = false
	if top.kind == frameObject {
		top.obj = objExpectCommaOrEnd
	} else {
		top.arr = arrExpectCommaOrEnd
	}
}

func (p *parser) skipTrivia() {
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			_, length, _, _, _ := token.Match(p.src[p.pos:], true)
			if length == 0 {
				break
			}
			p.pos += length
			continue
		}
		if p.opts.AllowComments && c == '/' {
			kind, length, _, _, result := token.Match(p.src[p.pos:], true)
			if kind.Base() == token.Comment && (result == token.Complete || result == token.CompleteEOF) {
				p.pos += length
				continue
			}
		}
		break
	}
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentCont(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

func (p *parser) matchSpecialNumber() (bool, int) {
	rest := p.src[p.pos:]
	switch {
	case bytes.HasPrefix(rest, []byte("-Infinity")):
		return true, 9
	case bytes.HasPrefix(rest, []byte("Infinity")):
		return true, 8
	case bytes.HasPrefix(rest, []byte("NaN")):
		return true, 3
	}
	return false, 0
}

func classifyUnmatched(kind token.Kind) Code {
	switch kind.Base() {
	case token.String:
		return CodeBadEscape
	case token.Number:
		return CodeBadNumber
	default:
		return CodeUnexpectedToken
	}
}

func classifyIncomplete(kind token.Kind) Code {
	switch kind.Base() {
	case token.String:
		return CodeEOFInString
	case token.Boolean, token.Null:
		return CodeEOFInLiteral
	case token.Number:
		return CodeBadNumber
	default:
		return CodeUnexpectedToken
	}
}

func (p *parser) parseOneValue() bool {
	p.skipTrivia()
	if p.pos >= len(p.src) {
		p.fail(CodeUnexpectedToken, "unexpected end of input, expected a value")
		return false
	}

	if p.opts.Numbers == NumbersDecimalNanInfAllowed {
		if ok, length := p.matchSpecialNumber(); ok {
			p.emit(DecimalNode, uint32(p.pos), uint32(length))
			p.pos += length
			p.onValueCompleted()
			return true
		}
	}

	kind, length, isDecimal, hasEscape, result := token.Match(p.src[p.pos:], true)
	if result == token.Unmatched {
		p.fail(classifyUnmatched(kind), "unexpected token")
		return false
	}
	if result == token.IncompleteEOF {
		p.fail(classifyIncomplete(kind), "unexpected end of input")
		return false
	}

	start := p.pos
	switch kind.Base() {
	case token.ObjectBegin:
		p.pushFrame(frameObject, start)
		p.pos += length
	case token.ArrayBegin:
		p.pushFrame(frameArray, start)
		p.pos += length
	case token.String:
		nt := StringCanonical
		if hasEscape {
			nt = StringEscaped
		}
		p.emit(nt, uint32(start+1), uint32(length-2))
		p.pos += length
		p.onValueCompleted()
	case token.Number:
		nt := IntegerNode
		if isDecimal {
			nt = DecimalNode
		}
		p.emit(nt, uint32(start), uint32(length))
		p.pos += length
		p.onValueCompleted()
	case token.Boolean:
		if p.src[start] == 't' {
			p.emit(LiteralTrue, uint32(start), uint32(length))
		} else {
			p.emit(LiteralFalse, uint32(start), uint32(length))
		}
		p.pos += length
		p.onValueCompleted()
	case token.Null:
		p.emit(LiteralNull, uint32(start), uint32(length))
		p.pos += length
		p.onValueCompleted()
	default:
		p.fail(CodeUnexpectedToken, "unexpected token, expected a value")
		return false
	}
	return !p.halted
}

func (p *parser) parseKey() bool {
	p.skipTrivia()
	if p.pos >= len(p.src) {
		p.fail(CodeUnexpectedToken, "unexpected end of input, expected an object key")
		return false
	}
	c := p.src[p.pos]
	if c == '"' {
		kind, length, _, hasEscape, result := token.Match(p.src[p.pos:], true)
		if kind.Base() != token.String || (result != token.Complete && result != token.CompleteEOF) {
			p.fail(classifyIncomplete(kind), "unterminated object key")
			return false
		}
		nt := KeyCanonical
		if hasEscape {
			nt = KeyEscaped
		}
		p.emit(nt, uint32(p.pos+1), uint32(length-2))
		p.pos += length
		return true
	}
	if p.opts.AllowUnquotedKeys && isIdentStart(c) {
		start := p.pos
		p.pos++
		for p.pos < len(p.src) && isIdentCont(p.src[p.pos]) {
			p.pos++
		}
		p.emit(KeyCanonical, uint32(start), uint32(p.pos-start))
		return true
	}
	p.fail(CodeUnexpectedToken, "expected an object key")
	return false
}

func (p *parser) stepTop() bool {
	top := &p.stack[len(p.stack)-1]
	p.skipTrivia()
	if p.pos >= len(p.src) {
		p.fail(CodeUnexpectedToken, "unexpected end of input inside a container")
		return false
	}
	c := p.src[p.pos]

	if top.kind == frameObject {
		switch top.obj {
		case objExpectKey:
			if c == '}' && (!top.afterComma || p.opts.AllowTrailingComma) {
				p.closeFrame(ObjectEnd)
				return !p.halted
			}
			if !p.parseKey() {
				return false
			}
			top.obj = objExpectColon
			return true
		case objExpectColon:
			if c != ':' {
				p.fail(CodeUnexpectedToken, "expected ':' after object key")
				return false
			}
			p.pos++
			top.obj = objExpectValue
			return true
		case objExpectValue:
			return p.parseOneValue()
		case objExpectCommaOrEnd:
			if c == '}' {
				p.closeFrame(ObjectEnd)
				return !p.halted
			}
			if c == ',' {
				p.pos++
				top.obj = objExpectKey
				top.afterComma = true
				return true
			}
			p.fail(CodeUnexpectedToken, "expected ',' or '}'")
			return false
		}
	} else {
		switch top.arr {
		case arrExpectValue:
			if c == ']' && (!top.afterComma || p.opts.AllowTrailingComma) {
				p.closeFrame(ArrayEnd)
				return !p.halted
			}
			return p.parseOneValue()
		case arrExpectCommaOrEnd:
			if c == ']' {
				p.closeFrame(ArrayEnd)
				return !p.halted
			}
			if c == ',' {
				p.pos++
				top.arr = arrExpectValue
				top.afterComma = true
				return true
			}
			p.fail(CodeUnexpectedToken, "expected ',' or ']'")
			return false
		}
	}
	return false
}

// fail records a ParseError and an ErrorNode at the current position. Under
// FailImmediately it halts the parse. Under Ignore it attempts to resync by
// scanning ahead to the next plausible structural boundary (a ',' or the
// closing delimiter of the current container) at the current bracket
// depth, so the index can keep growing on a best-effort basis; if no
// progress can be made, the parse still halts to avoid looping forever on
// unrecoverable input.
func (p *parser) fail(code Code, msg string) {
	line, col := lineCol(p.src, p.pos)
	p.errors = append(p.errors, &ParseError{Offset: p.pos, Line: line, Column: col, Code: code, Message: msg})
	p.emit(ErrorNode, uint32(p.pos), 0)
	p.opts.logger().Debug("jsonv: parse error",
		"offset", p.pos, "line", line, "column", col, "code", code, "depth", len(p.stack))

	if code == CodeDepthExceeded {
		p.opts.logger().Debug("jsonv: depth exceeded, aborting", "offset", p.pos, "depth", len(p.stack))
	}

	if p.opts.FailureMode == FailImmediately {
		p.halted = true
		return
	}

	before := p.pos
	p.recover()
	if p.pos == before || p.pos >= len(p.src) {
		p.halted = true
		return
	}
	if len(p.stack) > 0 {
		top := &p.stack[len(p.stack)-1]
		if top.kind == frameObject {
			top.obj = objExpectCommaOrEnd
		} else {
			top.arr = arrExpectCommaOrEnd
		}
	}
}

func (p *parser) recover() {
	localDepth := 0
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch c {
		case '{', '[':
			localDepth++
			p.pos++
		case '}', ']':
			if localDepth == 0 {
				return
			}
			localDepth--
			p.pos++
		case ',':
			if localDepth == 0 {
				return
			}
			p.pos++
		case '"':
			_, length, _, _, _ := token.Match(p.src[p.pos:], true)
			if length == 0 {
				p.pos++
			} else {
				p.pos += length
			}
		default:
			p.pos++
		}
	}
}
