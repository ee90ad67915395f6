package jsondiff

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/haleyrc/jsonv/path"
	"github.com/haleyrc/jsonv/value"
)

// ErrValidation is the sentinel wrapped by every *ValidationError.
var ErrValidation = errors.New("jsonv: validation error")

// ValidationError reports that a value failed Validate.
type ValidationError struct {
	Code  string
	Path  path.Path
	Value value.Value
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("jsonv: validation error [%s] at %s", e.Code, e.Path)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NonFiniteNumber is the only validation failure code currently defined
// (spec.md §4.6.3).
const NonFiniteNumber = "non_finite_number"

// Validate traverses v and fails with a *ValidationError the first time it
// encounters a NaN or ±Inf decimal. logger receives a debug record at the
// failing path; omit it (or pass nil) to use slog.Default().
func Validate(v value.Value, logger ...*slog.Logger) error {
	log := pickLogger(logger)
	var bad *ValidationError
	Traverse(v, func(p path.Path, node value.Value) bool {
		if node.Kind() == value.Decimal && !node.IsFinite() {
			bad = &ValidationError{Code: NonFiniteNumber, Path: p, Value: node}
			return false
		}
		return true
	})
	if bad != nil {
		log.Debug("jsonv: validation failed", "code", bad.Code, "path", bad.Path.String())
		return bad
	}
	return nil
}

func pickLogger(loggers []*slog.Logger) *slog.Logger {
	for _, l := range loggers {
		if l != nil {
			return l
		}
	}
	return slog.Default()
}
