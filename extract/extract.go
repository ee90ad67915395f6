// Package extract defines the contract surface for decoding a value.Value
// (or a reader.Reader cursor over a parsed ast.Index) into caller-defined
// Go types, per
// spec.md §4.8/§9. The extraction framework itself — registries,
// reflection-driven struct binding — is out of scope; only the contract
// types callers and a future collaborator framework would share are
// implemented here.
package extract

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/haleyrc/jsonv/path"
	"github.com/haleyrc/jsonv/reader"
)

// Context carries the ambient state an Extractor needs: the formats
// registry handle (opaque here; a concrete serialization layer would plug
// its own type in), a format version, and an opaque user value threaded
// through nested extraction calls.
type Context struct {
	Formats any
	Version int
	User    any
}

// Extractor decodes the node(s) under r's cursor into dest, a pointer to
// the caller's destination type.
type Extractor interface {
	Extract(ctx *Context, r *reader.Reader, dest any) error
}

// ExtractorFunc adapts a function to the Extractor interface.
type ExtractorFunc func(ctx *Context, r *reader.Reader, dest any) error

func (f ExtractorFunc) Extract(ctx *Context, r *reader.Reader, dest any) error {
	return f(ctx, r, dest)
}

// Problem is one failure encountered while decoding into a user type.
type Problem struct {
	Path    path.Path
	Message string
	Cause   error
}

func (p Problem) String() string {
	return fmt.Sprintf("%s: %s", p.Path, p.Message)
}

// ErrExtraction is the sentinel wrapped by every *ExtractionError.
var ErrExtraction = errors.New("jsonv: extraction error")

// ExtractionError aggregates one or more Problems encountered while
// decoding into user types, per spec.md §7/§6.4.
type ExtractionError struct {
	Problems []Problem
	// Truncated reports whether additional problems existed beyond
	// MaxFailures and were dropped.
	Truncated bool
}

func (e *ExtractionError) Error() string {
	if len(e.Problems) == 1 {
		return fmt.Sprintf("jsonv: extraction error: %s", e.Problems[0])
	}
	suffix := ""
	if e.Truncated {
		suffix = " (truncated)"
	}
	return fmt.Sprintf("jsonv: extraction error: %d problems%s", len(e.Problems), suffix)
}

func (e *ExtractionError) Unwrap() error { return ErrExtraction }

// ProblemList accumulates Problems up to a MaxFailures cap (default 10,
// per spec.md §7's "max_failures cap"), after which Add becomes a no-op
// that instead marks Truncated.
type ProblemList struct {
	MaxFailures int
	problems    []Problem
	truncated   bool
}

func defaultMaxFailures(max int) int {
	if max <= 0 {
		return 10
	}
	return max
}

// Add records a problem, dropping it (and setting Truncated) once the cap
// is reached.
func (l *ProblemList) Add(p path.Path, msg string, cause error) {
	if len(l.problems) >= defaultMaxFailures(l.MaxFailures) {
		l.truncated = true
		return
	}
	l.problems = append(l.problems, Problem{Path: p, Message: msg, Cause: cause})
}

// Len returns the number of recorded problems.
func (l *ProblemList) Len() int { return len(l.problems) }

// Err returns nil if no problems were recorded, else an *ExtractionError
// aggregating them.
func (l *ProblemList) Err() error {
	if len(l.problems) == 0 {
		return nil
	}
	out := make([]Problem, len(l.problems))
	copy(out, l.problems)
	return &ExtractionError{Problems: out, Truncated: l.truncated}
}

// TypeName renders a friendly name for v's type, passing it through the
// process-wide demangle hook so embedding serialization layers can
// customize it (see jsonv.SetDemangle). Extractor implementations call
// this when building Problem messages that need to reference a
// destination type.
func TypeName(v any) string {
	return demangle(reflect.TypeOf(v))
}

// demangle is overridden by jsonv.SetDemangle; the default simply renders
// the reflect.Type's String form, since Go has no mangled names to undo.
var demangle = func(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}

// SetDemangleHook installs fn as the process-wide type-name formatter used
// when constructing Problem messages that reference a destination type.
// It exists so the root jsonv package (spec.md §5's "global demangle
// hook") can thread a single hook through every package that renders type
// names, without extract importing jsonv (which would cycle).
func SetDemangleHook(fn func(reflect.Type) string) {
	if fn == nil {
		return
	}
	demangle = fn
}
