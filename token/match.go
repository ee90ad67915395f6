package token

// Match classifies the token beginning at window[0]. window holds every
// byte available so far; atEOF reports whether the caller guarantees no
// further bytes will ever arrive. It returns the token's Kind, its length
// in bytes (meaningful even on IncompleteEOF/Unmatched, where it is the
// number of bytes consumed before the match stalled), whether a Number
// carries a decimal point or exponent (isDecimal), whether a String body
// contained an escape sequence (hasEscape), and the MatchResult.
func Match(window []byte, atEOF bool) (kind Kind, length int, isDecimal, hasEscape bool, result MatchResult) {
	if len(window) == 0 {
		return 0, 0, false, false, IncompleteEOF
	}

	switch c := window[0]; c {
	case '{':
		return ObjectBegin, 1, false, false, Complete
	case '}':
		return ObjectEnd, 1, false, false, Complete
	case '[':
		return ArrayBegin, 1, false, false, Complete
	case ']':
		return ArrayEnd, 1, false, false, Complete
	case ':':
		return KeyDelimiter, 1, false, false, Complete
	case ',':
		return Separator, 1, false, false, Complete
	case ' ', '\t', '\n', '\r':
		return matchWhitespace(window, atEOF)
	case '"':
		return matchString(window, atEOF)
	case '/':
		return matchComment(window, atEOF)
	case 't':
		return matchLiteral(window, atEOF, "true", Boolean)
	case 'f':
		return matchLiteral(window, atEOF, "false", Boolean)
	case 'n':
		return matchLiteral(window, atEOF, "null", Null)
	case '-':
		return matchNumber(window, atEOF)
	default:
		if isDigit(c) {
			return matchNumber(window, atEOF)
		}
		return ParseErrorIndicator, 0, false, false, Unmatched
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func matchWhitespace(window []byte, atEOF bool) (Kind, int, bool, bool, MatchResult) {
	n := 0
	for n < len(window) && isWhitespace(window[n]) {
		n++
	}
	if n == len(window) {
		if atEOF {
			return Whitespace, n, false, false, CompleteEOF
		}
		return Whitespace, n, false, false, IncompleteEOF
	}
	return Whitespace, n, false, false, Complete
}

func matchLiteral(window []byte, atEOF bool, lit string, kind Kind) (Kind, int, bool, bool, MatchResult) {
	n := 0
	for n < len(window) && n < len(lit) && window[n] == lit[n] {
		n++
	}
	if n < len(lit) {
		if n < len(window) {
			// A byte diverged from the literal before it finished: no
			// production matches this input.
			return kind | ParseErrorIndicator, n, false, false, Unmatched
		}
		return kind, n, false, false, IncompleteEOF
	}
	if n == len(window) && atEOF {
		return kind, n, false, false, CompleteEOF
	}
	return kind, n, false, false, Complete
}

// numberState tracks where in the number grammar matchNumber currently is,
// distinguishing states where stopping here yields a valid number
// (terminal) from states that still need at least one more byte.
type numberState int

const (
	numStart numberState = iota
	numMinus
	numZero
	numInt
	numPointSeen
	numFrac
	numExpSeen
	numExpSign
	numExp
)

func numberTerminal(s numberState) bool {
	switch s {
	case numZero, numInt, numFrac, numExp:
		return true
	}
	return false
}

func matchNumber(window []byte, atEOF bool) (Kind, int, bool, bool, MatchResult) {
	i := 0
	isDecimal := false
	state := numStart

	if i < len(window) && window[i] == '-' {
		state = numMinus
		i++
	}

	for i < len(window) {
		c := window[i]
		switch state {
		case numMinus, numStart:
			if c == '0' {
				state = numZero
				i++
			} else if isDigit(c) {
				state = numInt
				i++
			} else {
				return Number | ParseErrorIndicator, i, isDecimal, false, Unmatched
			}
		case numZero, numInt:
			if isDigit(c) && state == numInt {
				i++
			} else if c == '.' {
				isDecimal = true
				state = numPointSeen
				i++
			} else if c == 'e' || c == 'E' {
				isDecimal = true
				state = numExpSeen
				i++
			} else {
				return Number, i, isDecimal, false, Complete
			}
		case numPointSeen:
			if isDigit(c) {
				state = numFrac
				i++
			} else {
				return Number | ParseErrorIndicator, i, isDecimal, false, Unmatched
			}
		case numFrac:
			if isDigit(c) {
				i++
			} else if c == 'e' || c == 'E' {
				state = numExpSeen
				i++
			} else {
				return Number, i, isDecimal, false, Complete
			}
		case numExpSeen:
			if c == '+' || c == '-' {
				state = numExpSign
				i++
			} else if isDigit(c) {
				state = numExp
				i++
			} else {
				return Number | ParseErrorIndicator, i, isDecimal, false, Unmatched
			}
		case numExpSign:
			if isDigit(c) {
				state = numExp
				i++
			} else {
				return Number | ParseErrorIndicator, i, isDecimal, false, Unmatched
			}
		case numExp:
			if isDigit(c) {
				i++
			} else {
				return Number, i, isDecimal, false, Complete
			}
		}
	}

	// Ran out of window bytes before a delimiter appeared.
	if atEOF {
		if numberTerminal(state) {
			return Number, i, isDecimal, false, CompleteEOF
		}
		return Number | ParseErrorIndicator, i, isDecimal, false, IncompleteEOF
	}
	return Number, i, isDecimal, false, IncompleteEOF
}

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func matchString(window []byte, atEOF bool) (Kind, int, bool, bool, MatchResult) {
	hasEscape := false
	i := 1 // skip opening quote
	for i < len(window) {
		c := window[i]
		switch {
		case c == '"':
			return String, i + 1, false, hasEscape, Complete
		case c == '\\':
			hasEscape = true
			if i+1 >= len(window) {
				if atEOF {
					return String | ParseErrorIndicator, i, false, hasEscape, IncompleteEOF
				}
				return String, i, false, hasEscape, IncompleteEOF
			}
			esc := window[i+1]
			switch esc {
			case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
				i += 2
			case 'u':
				if i+6 > len(window) {
					if atEOF {
						return String | ParseErrorIndicator, i, false, hasEscape, IncompleteEOF
					}
					return String, i, false, hasEscape, IncompleteEOF
				}
				for k := 0; k < 4; k++ {
					if !isHexDigit(window[i+2+k]) {
						return String | ParseErrorIndicator, i, false, hasEscape, Unmatched
					}
				}
				i += 6
			default:
				return String | ParseErrorIndicator, i, false, hasEscape, Unmatched
			}
		case c < 0x20:
			// Raw control bytes are not permitted in a string body.
			return String | ParseErrorIndicator, i, false, hasEscape, Unmatched
		default:
			i++
		}
	}
	if atEOF {
		return String | ParseErrorIndicator, i, false, hasEscape, IncompleteEOF
	}
	return String, i, false, hasEscape, IncompleteEOF
}

func matchComment(window []byte, atEOF bool) (Kind, int, bool, bool, MatchResult) {
	if len(window) < 2 {
		if atEOF {
			return Comment | ParseErrorIndicator, len(window), false, false, IncompleteEOF
		}
		return Comment, len(window), false, false, IncompleteEOF
	}
	switch window[1] {
	case '/':
		i := 2
		for i < len(window) && window[i] != '\n' {
			i++
		}
		if i == len(window) {
			if atEOF {
				return Comment, i, false, false, CompleteEOF
			}
			return Comment, i, false, false, IncompleteEOF
		}
		return Comment, i, false, false, Complete
	case '*':
		i := 2
		for i+1 < len(window) {
			if window[i] == '*' && window[i+1] == '/' {
				return Comment, i + 2, false, false, Complete
			}
			i++
		}
		if atEOF {
			return Comment | ParseErrorIndicator, len(window), false, false, IncompleteEOF
		}
		return Comment, len(window), false, false, IncompleteEOF
	default:
		return Comment | ParseErrorIndicator, 1, false, false, Unmatched
	}
}
