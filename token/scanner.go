package token

import "strconv"

// Token is one lexical token recognized by a Scanner, with the byte range
// it occupies in the cumulative input stream.
type Token struct {
	Kind      Kind
	Start     int
	Length    int
	IsDecimal bool
	HasEscape bool
}

// Scanner is the streaming state machine described in spec.md §4.1: per
// call to Feed, it consumes as many complete tokens as the accumulated
// buffer permits and retains any trailing partial token, to be completed
// once more bytes are fed.
type Scanner struct {
	buf    []byte
	base   int // stream offset of buf[0]
	closed bool
}

// NewScanner returns an empty Scanner.
func NewScanner() *Scanner {
	return &Scanner{}
}

// Feed appends more input bytes, available for the next Next calls.
func (s *Scanner) Feed(b []byte) {
	s.buf = append(s.buf, b...)
}

// Close marks the stream as ended: no further bytes will ever be fed. Once
// closed, a trailing IncompleteEOF token is treated by Next as an error.
func (s *Scanner) Close() {
	s.closed = true
}

// ErrUnterminatedToken is returned by Next when the stream closed while a
// token was still an incomplete prefix (spec.md §4.1: "incomplete_eof at
// true EOF promotes to error").
type ErrUnterminatedToken struct {
	Kind   Kind
	Offset int
}

func (e *ErrUnterminatedToken) Error() string {
	return "token: unterminated " + e.Kind.Base().String() + " at offset " + strconv.Itoa(e.Offset)
}

// Next returns the next token, or (Token{}, false, nil) if the buffered
// input is exhausted and more bytes are needed (and the stream isn't
// closed), or (Token{}, false, err) if the stream closed on an
// unterminated token or an invalid byte sequence was found.
func (s *Scanner) Next() (Token, bool, error) {
	for {
		if len(s.buf) == 0 {
			return Token{}, false, nil
		}
		kind, length, isDecimal, hasEscape, result := Match(s.buf, s.closed)
		switch result {
		case Complete, CompleteEOF:
			tok := Token{
				Kind:      kind,
				Start:     s.base,
				Length:    length,
				IsDecimal: isDecimal,
				HasEscape: hasEscape,
			}
			s.buf = s.buf[length:]
			s.base += length
			if tok.Kind == Whitespace || tok.Kind == Comment {
				continue
			}
			return tok, true, nil
		case IncompleteEOF:
			if s.closed {
				return Token{}, false, &ErrUnterminatedToken{Kind: kind, Offset: s.base}
			}
			return Token{}, false, nil
		case Unmatched:
			return Token{}, false, &ErrUnterminatedToken{Kind: kind, Offset: s.base + length}
		}
		return Token{}, false, nil
	}
}
