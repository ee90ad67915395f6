package ast

import (
	"errors"
	"fmt"
)

// ErrParse is the sentinel wrapped by every *ParseError.
var ErrParse = errors.New("jsonv: parse error")

// Code classifies why a ParseError was produced.
type Code int

const (
	CodeUnexpectedToken Code = iota
	CodeEOFInString
	CodeEOFInLiteral
	CodeBadEscape
	CodeBadNumber
	CodeDepthExceeded
	CodeDuplicateKey
	CodeInvalidUTF8
)

var codeNames = map[Code]string{
	CodeUnexpectedToken: "unexpected_token",
	CodeEOFInString:     "eof_in_string",
	CodeEOFInLiteral:    "eof_in_literal",
	CodeBadEscape:       "bad_escape",
	CodeBadNumber:       "bad_number",
	CodeDepthExceeded:   "depth_exceeded",
	CodeDuplicateKey:    "duplicate_key",
	CodeInvalidUTF8:     "invalid_utf8",
}

func (c Code) String() string {
	if s, ok := codeNames[c]; ok {
		return s
	}
	return "unknown"
}

// ParseError carries the source position and classification of a malformed
// input, per spec.md §7.
type ParseError struct {
	Offset  int
	Line    int
	Column  int
	Code    Code
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %d:%d (offset %d): %s [%s]", e.Line, e.Column, e.Offset, e.Message, e.Code)
}

func (e *ParseError) Unwrap() error { return ErrParse }

// lineCol computes the 1-based line and column of offset within src.
func lineCol(src []byte, offset int) (line, col int) {
	line, col = 1, 1
	if offset > len(src) {
		offset = len(src)
	}
	for i := 0; i < offset; i++ {
		if src[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}
