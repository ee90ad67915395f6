// Package token implements the incremental lexical recognizer: given a
// byte window and whether more input may still arrive, it classifies the
// next token and reports whether the match is complete, complete only
// because the input ended, a still-growing prefix, or invalid.
package token

// Kind is a recognized token kind. The sentinel ParseErrorIndicator bit may
// be OR-combined with a Kind to report which production was being attempted
// when an Unmatched result was produced (spec.md §4.1).
type Kind uint16

const (
	ArrayBegin Kind = iota
	ArrayEnd
	ObjectBegin
	ObjectEnd
	KeyDelimiter
	Separator
	Boolean
	Null
	Number
	String
	Whitespace
	Comment
	numKinds
)

// ParseErrorIndicator, OR-combined with a Kind, flags that the match
// attempt for that kind failed partway through.
const ParseErrorIndicator Kind = 1 << 15

// Base returns k with ParseErrorIndicator cleared.
func (k Kind) Base() Kind { return k &^ ParseErrorIndicator }

// Failed reports whether ParseErrorIndicator is set.
func (k Kind) Failed() bool { return k&ParseErrorIndicator != 0 }

var kindNames = [numKinds]string{
	ArrayBegin:   "array_begin",
	ArrayEnd:     "array_end",
	ObjectBegin:  "object_begin",
	ObjectEnd:    "object_end",
	KeyDelimiter: "object_key_delimiter",
	Separator:    "separator",
	Boolean:      "boolean",
	Null:         "null",
	Number:       "number",
	String:       "string",
	Whitespace:   "whitespace",
	Comment:      "comment",
}

func (k Kind) String() string {
	base := k.Base()
	if base < 0 || base >= numKinds {
		return "<unknown>"
	}
	if k.Failed() {
		return kindNames[base] + "(error)"
	}
	return kindNames[base]
}

// MatchResult reports how a Match call resolved against the given window.
type MatchResult int

const (
	// Complete means a delimiter (or self-terminating production) was seen
	// within the window. A self-terminating token (a structural byte, a
	// string, a block comment, or a full true/false/null literal) may end
	// exactly at the window's end; a number, a whitespace run, or a line
	// comment does not.
	Complete MatchResult = iota
	// CompleteEOF means the window ended exactly at a valid token
	// boundary with no further bytes available (atEOF was true).
	CompleteEOF
	// IncompleteEOF means a prefix of a valid token was seen but the
	// window ran out before the production could be confirmed complete.
	// If no further bytes will ever arrive (the caller's true EOF), this
	// promotes to a parse error; see Scanner.
	IncompleteEOF
	// Unmatched means no production applies to the input seen so far.
	Unmatched
)

func (r MatchResult) String() string {
	switch r {
	case Complete:
		return "complete"
	case CompleteEOF:
		return "complete_eof"
	case IncompleteEOF:
		return "incomplete_eof"
	case Unmatched:
		return "unmatched"
	}
	return "<unknown>"
}
