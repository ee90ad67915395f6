// Package jsonv is a packed-AST JSON library: tokenizer, parser, a
// tagged-union value tree, a structural diff/merge toolkit, and a
// streaming encoder, assembled from the lower-level ast/value/reader/
// path/jsondiff/encode packages.
//
// Parse, ParseReader, and ParseBytes build a value.Value tree directly;
// reach for package ast when a flat node index or an incremental
// reader.Reader cursor is needed instead.
package jsonv

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"sync"

	"github.com/haleyrc/jsonv/ast"
	"github.com/haleyrc/jsonv/encode"
	"github.com/haleyrc/jsonv/extract"
	"github.com/haleyrc/jsonv/value"
)

// extractSetDemangleHook threads jsonv's process-wide demangle hook
// through to package extract, which cannot import jsonv itself (jsonv
// already imports extract, and Go forbids import cycles).
func extractSetDemangleHook(fn func(reflect.Type) string) {
	extract.SetDemangleHook(fn)
}

// Re-exported sentinel errors, per spec.md §7.
var (
	ErrParse         = ast.ErrParse
	ErrKind          = value.ErrKind
	ErrNoSuchElement = value.ErrNoSuchElement
	ErrRange         = value.ErrRange
)

// Re-exported types callers commonly need without importing the
// lower-level packages directly.
type (
	Value        = value.Value
	Kind         = value.Kind
	ParseOptions = ast.ParseOptions
)

// Re-exported Kind constants.
const (
	KindNull    = value.Null
	KindBoolean = value.Boolean
	KindInteger = value.Integer
	KindDecimal = value.Decimal
	KindString  = value.String
	KindArray   = value.Array
	KindObject  = value.Object
)

// Parse parses src and extracts it into a value.Value tree in one step.
func Parse(src []byte, opts ParseOptions) (Value, error) {
	idx, err := ast.Parse(src, opts)
	if err != nil {
		return Value{}, err
	}
	if !idx.Successful() {
		return Value{}, idx.Errors[0]
	}
	return ast.ExtractTree(idx, ast.ExtractOptions{StringEncoding: opts.StringEncoding})
}

// ParseBytes is an alias for Parse, for callers used to the
// encoding/json-style naming.
func ParseBytes(src []byte, opts ParseOptions) (Value, error) {
	return Parse(src, opts)
}

// ParseReader reads all of r and parses it, per ParseBytes.
func ParseReader(r io.Reader, opts ParseOptions) (Value, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return Value{}, fmt.Errorf("jsonv: reading source: %w", err)
	}
	return Parse(src, opts)
}

// MustParse parses src and panics on any error. Intended for tests and
// package-init-time constants, not for handling untrusted input.
func MustParse(src []byte) Value {
	v, err := Parse(src, ParseOptions{})
	if err != nil {
		panic(err)
	}
	return v
}

// Marshal renders v to JSON text via the encode package's default
// (compact, UTF-8) options.
func Marshal(v Value) ([]byte, error) {
	return encode.Marshal(v, encode.Options{})
}

// demangleMu guards demangleHook, the process-wide type-name formatter
// used only for constructing error messages (spec.md §5), per
// src/jsonv/demangle.cpp in the original implementation. Go programs have
// no mangled symbol names to undo, so the default is simply
// reflect.Type.String; ResetDemangle restores that default.
var (
	demangleMu   sync.Mutex
	demangleHook = func(t reflect.Type) string {
		if t == nil {
			return "<nil>"
		}
		return t.String()
	}
)

// SetDemangle installs fn as the process-wide type-name formatter used
// when jsonv (and the extract package it configures) render a
// destination type in an error message. Passing a nil fn is a no-op.
func SetDemangle(fn func(reflect.Type) string) {
	if fn == nil {
		return
	}
	demangleMu.Lock()
	demangleHook = fn
	demangleMu.Unlock()
	extractSetDemangleHook(fn)
}

// ResetDemangle restores the default type-name formatter
// (reflect.Type.String).
func ResetDemangle() {
	SetDemangle(func(t reflect.Type) string {
		if t == nil {
			return "<nil>"
		}
		return t.String()
	})
}

// DemangledTypeName renders the name of v's type through the currently
// installed demangle hook.
func DemangledTypeName(v any) string {
	demangleMu.Lock()
	hook := demangleHook
	demangleMu.Unlock()
	return hook(reflect.TypeOf(v))
}

// ErrDuplicateType is returned by Formats.Register when a type is
// registered more than once against the same registry, per spec.md §7's
// duplicate-registration error kind.
var ErrDuplicateType = errors.New("jsonv: duplicate type registration")

// DuplicateTypeError reports which type was registered twice.
type DuplicateTypeError struct {
	Type string
}

func (e *DuplicateTypeError) Error() string {
	return fmt.Sprintf("jsonv: type %s already registered", e.Type)
}

func (e *DuplicateTypeError) Unwrap() error { return ErrDuplicateType }

// Formats is a registry mapping a Go type to an arbitrary handle (e.g. an
// extract.Extractor for that type). It exists as the "default formats
// handle" that spec.md §5 describes as process-wide state threaded
// through extract.Context; jsonv keeps exactly one such registry alive by
// default (DefaultFormats), but callers may construct private ones.
type Formats struct {
	mu    sync.RWMutex
	byKey map[string]any
}

// NewFormats returns an empty registry.
func NewFormats() *Formats {
	return &Formats{byKey: make(map[string]any)}
}

// Register associates handle with the Go type of sample. It fails with a
// *DuplicateTypeError if that type is already registered.
func (f *Formats) Register(sample any, handle any) error {
	key := DemangledTypeName(sample)
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byKey[key]; ok {
		return &DuplicateTypeError{Type: key}
	}
	f.byKey[key] = handle
	return nil
}

// Lookup returns the handle registered for the Go type of sample, and
// whether one was found.
func (f *Formats) Lookup(sample any) (any, bool) {
	key := DemangledTypeName(sample)
	f.mu.RLock()
	defer f.mu.RUnlock()
	h, ok := f.byKey[key]
	return h, ok
}

var defaultFormatsOnce sync.Once
var defaultFormats *Formats

// DefaultFormats returns the process-wide default Formats registry,
// initializing it on first use.
func DefaultFormats() *Formats {
	defaultFormatsOnce.Do(func() {
		defaultFormats = NewFormats()
	})
	return defaultFormats
}

// ResetDefaultFormats discards all registrations in the process-wide
// default registry. Intended for test isolation between packages that
// each register their own types against DefaultFormats.
func ResetDefaultFormats() {
	f := DefaultFormats()
	f.mu.Lock()
	f.byKey = make(map[string]any)
	f.mu.Unlock()
}
