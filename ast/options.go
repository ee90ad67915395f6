package ast

import "log/slog"

// StringEncodingAction controls how a string payload with invalid UTF-8 is
// handled when ExtractTree decodes it. Parse itself accepts any bytes
// between quotes and does not read ParseOptions.StringEncoding; jsonv.Parse
// passes it on to ExtractTree.
type StringEncodingAction int

const (
	ReplaceInvalid StringEncodingAction = iota
	FailOnInvalid
)

// NumberMode controls whether NaN/Infinity decimal literals (outside
// strict JSON) are accepted.
type NumberMode int

const (
	NumbersStrict NumberMode = iota
	NumbersDecimalNanInfAllowed
)

// FailureMode controls what happens when a malformed token or structural
// error is encountered.
type FailureMode int

const (
	// FailImmediately aborts the parse at the first error, emitting a
	// single ErrorNode and returning a non-successful Index.
	FailImmediately FailureMode = iota
	// Ignore emits an ErrorNode and attempts to recover by scanning ahead
	// to the next plausible structural boundary at the current stack
	// depth, continuing the parse.
	Ignore
)

// ParseOptions configures the parser. The zero value is strict JSON with a
// default max depth.
type ParseOptions struct {
	StringEncoding      StringEncodingAction
	MaxStructureDepth   int
	AllowComments       bool
	AllowTrailingComma  bool
	AllowUnquotedKeys   bool
	Numbers             NumberMode
	FailureMode         FailureMode
	// BorrowSource, when true, avoids copying src into the Index's
	// buffer.Buffer; the caller must keep src alive and unmodified for the
	// Index's lifetime.
	BorrowSource bool
	// Logger receives debug-level records during error recovery and
	// depth-exceeded aborts. Nil defaults to slog.Default(); no call is
	// made on the successful-path hot loop.
	Logger *slog.Logger
}

func (o ParseOptions) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// DefaultMaxStructureDepth is used when ParseOptions.MaxStructureDepth is
// zero.
const DefaultMaxStructureDepth = 512

func (o ParseOptions) maxDepth() int {
	if o.MaxStructureDepth <= 0 {
		return DefaultMaxStructureDepth
	}
	return o.MaxStructureDepth
}
