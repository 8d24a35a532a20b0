package crumb

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrUnknownCase indicates a string or object key matched no declared union case.
	ErrUnknownCase = errors.New("unknown union case")

	// ErrMalformedUnion indicates an unexpected JSON shape for a union target.
	ErrMalformedUnion = errors.New("malformed union")

	// ErrMalformedTuple indicates an unexpected JSON shape for a tuple target.
	ErrMalformedTuple = errors.New("malformed tuple")

	// ErrMissingSomeAttribute indicates an option whose payload type is ambiguous
	// with the "Some" box was decoded without the box.
	ErrMissingSomeAttribute = errors.New("missing Some attribute")

	// ErrUnexpectedSomeAttribute indicates a "Some" box around a payload type
	// that is never boxed.
	ErrUnexpectedSomeAttribute = errors.New("unexpected Some attribute")

	// ErrArityMismatch indicates a tuple or case field count disagreement.
	ErrArityMismatch = errors.New("arity mismatch")

	// ErrMissingField indicates a legacy tuple object is missing an Item key.
	ErrMissingField = errors.New("missing field")

	// ErrNonSeekableSource indicates dual-format decoding was requested on a
	// source that cannot be rewound.
	ErrNonSeekableSource = errors.New("source is not seekable")

	// ErrNullResult indicates a decoder produced no value.
	ErrNullResult = errors.New("null result")

	// ErrInvalidUnion indicates a union registration was rejected.
	ErrInvalidUnion = errors.New("invalid union")

	// ErrInvalidCase indicates a union case type cannot be used.
	ErrInvalidCase = errors.New("invalid case")

	// ErrDuplicateCase indicates a case name or case type is registered twice.
	ErrDuplicateCase = errors.New("duplicate case")

	// ErrInvalidTarget indicates Unmarshal was given something other than a non-nil pointer.
	ErrInvalidTarget = errors.New("invalid unmarshal target")

	// ErrInvalidSettings indicates a settings file or value could not be used.
	ErrInvalidSettings = errors.New("invalid settings")
)

// DecodeError represents a decode-time failure local to one decode call.
// It wraps a sentinel error with the target type and a detail message.
type DecodeError struct {
	Err    error  // Underlying sentinel error (ErrUnknownCase, etc.)
	Type   string // Target Go type
	Detail string // What was found
}

func (e *DecodeError) Error() string {
	var b strings.Builder
	b.WriteString("decode")
	if e.Type != "" {
		b.WriteString(" ")
		b.WriteString(e.Type)
	}
	b.WriteString(": ")
	b.WriteString(e.Err.Error())
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	return b.String()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ShapeError represents a configuration error: a type that cannot be
// described or registered. It is never retried.
type ShapeError struct {
	Err    error  // Underlying sentinel error (ErrInvalidUnion, ErrInvalidCase, ErrDuplicateCase)
	Type   string // Offending Go type
	Detail string
}

func (e *ShapeError) Error() string {
	if e.Type != "" && e.Detail != "" {
		return fmt.Sprintf("%s %s: %s", e.Err.Error(), e.Type, e.Detail)
	}
	if e.Type != "" {
		return fmt.Sprintf("%s %s", e.Err.Error(), e.Type)
	}
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Detail)
	}
	return e.Err.Error()
}

func (e *ShapeError) Unwrap() error {
	return e.Err
}

// FallbackError is returned by dual-format decoding when both attempts fail.
// The compact failure is the primary cause and is unwrapped first.
type FallbackError struct {
	Compact error // First attempt
	Verbose error // Fallback attempt
}

func (e *FallbackError) Error() string {
	return fmt.Sprintf("compact decode failed: %v; verbose decode failed: %v", e.Compact, e.Verbose)
}

func (e *FallbackError) Unwrap() []error {
	return []error{e.Compact, e.Verbose}
}

// newDecodeError creates a DecodeError for the given target type.
func newDecodeError(sentinel error, typeName, format string, args ...any) error {
	return &DecodeError{
		Err:    sentinel,
		Type:   typeName,
		Detail: fmt.Sprintf(format, args...),
	}
}

// newShapeError creates a ShapeError for a registration failure.
func newShapeError(sentinel error, typeName, detail string) error {
	return &ShapeError{
		Err:    sentinel,
		Type:   typeName,
		Detail: detail,
	}
}
