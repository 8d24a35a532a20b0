package crumb

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"reflect"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"go.uber.org/zap"
)

// DecodeFunc reads one value from r.
type DecodeFunc[T any] func(r io.Reader) (T, error)

// DecodeEither decodes src with compact and, if that fails or yields a null
// value, rewinds src to where it started and decodes it with verbose.
//
// src must implement io.Seeker. Errors that are not decode failures (I/O
// errors, invalid targets, configuration errors) are returned without a
// second attempt. When both attempts fail the result is a *FallbackError.
func DecodeEither[T any](src io.Reader, compact, verbose DecodeFunc[T]) (T, error) {
	return decodeEither(src, reflect.TypeFor[T]().String(), compact, verbose)
}

// decodeEither is DecodeEither reporting under an explicit type name.
func decodeEither[T any](src io.Reader, name string, compact, verbose DecodeFunc[T]) (T, error) {
	var zero T

	seeker, ok := src.(io.ReadSeeker)
	if !ok {
		return zero, &DecodeError{Err: ErrNonSeekableSource, Type: fmt.Sprintf("%T", src)}
	}
	start, err := seeker.Seek(0, io.SeekCurrent)
	if err != nil {
		return zero, fmt.Errorf("%w: %w", ErrNonSeekableSource, err)
	}

	result, compactErr := compact(seeker)
	if compactErr == nil {
		if !isNull(result) {
			return result, nil
		}
		compactErr = &DecodeError{Err: ErrNullResult, Type: name, Detail: "compact decoder produced no value"}
	} else if !isDecodeFailure(compactErr) {
		return zero, compactErr
	}

	if _, err := seeker.Seek(start, io.SeekStart); err != nil {
		return zero, fmt.Errorf("rewind: %w", err)
	}

	emitDecodeFallback(name, compactErr)
	Logger().Debug("compact decode failed, retrying verbose",
		zap.String("type", name),
		zap.Error(compactErr),
	)

	result, verboseErr := verbose(seeker)
	if verboseErr != nil {
		return zero, &FallbackError{Compact: compactErr, Verbose: verboseErr}
	}
	return result, nil
}

// isDecodeFailure reports whether err means the input did not fit the
// grammar, as opposed to an I/O or configuration failure.
func isDecodeFailure(err error) bool {
	var (
		decodeErr   *DecodeError
		semanticErr *json.SemanticError
		syntaxErr   *jsontext.SyntacticError
	)
	switch {
	case errors.As(err, &decodeErr):
		return !errors.Is(err, ErrNonSeekableSource)
	case errors.As(err, &semanticErr), errors.As(err, &syntaxErr):
		return true
	case errors.Is(err, io.ErrUnexpectedEOF), errors.Is(err, io.EOF):
		return true
	}
	return false
}

// isNull reports whether v is nil or holds a nil reference.
func isNull(v any) bool {
	if v == nil {
		return true
	}
	return isNilValue(reflect.ValueOf(v))
}

// BackwardCompatible writes the compact grammar and reads either grammar.
// It is safe for concurrent use.
type BackwardCompatible struct {
	compact *Serializer
	verbose *Serializer
}

// NewBackwardCompatible returns a codec that writes compact JSON and accepts
// compact or verbose JSON on read. The options apply to both grammars.
func NewBackwardCompatible(opts ...SerializerOption) *BackwardCompatible {
	return &BackwardCompatible{
		compact: New(opts...),
		verbose: NewVerbose(opts...),
	}
}

// ContentType returns the MIME type for JSON.
func (b *BackwardCompatible) ContentType() string {
	return "application/json"
}

// Format returns FormatBackwardCompatible.
func (b *BackwardCompatible) Format() Format {
	return FormatBackwardCompatible
}

// Marshal encodes v in the compact grammar.
func (b *BackwardCompatible) Marshal(v any) ([]byte, error) {
	return b.compact.Marshal(v)
}

// Encode writes v to w in the compact grammar.
func (b *BackwardCompatible) Encode(w io.Writer, v any) error {
	return b.compact.Encode(w, v)
}

// Unmarshal decodes data in either grammar into v.
func (b *BackwardCompatible) Unmarshal(data []byte, v any) error {
	return b.Decode(bytes.NewReader(data), v)
}

// Decode reads one JSON value in either grammar from r into v. r must
// implement io.Seeker.
func (b *BackwardCompatible) Decode(r io.Reader, v any) error {
	if err := checkTarget(v); err != nil {
		return err
	}
	target := reflect.ValueOf(v).Elem()

	t := target.Type()
	out, err := decodeEither(r, t.String(), decodeWith(b.compact, t), decodeWith(b.verbose, t))
	if err != nil {
		return err
	}
	if out == nil {
		target.SetZero()
		return nil
	}
	target.Set(reflect.ValueOf(out))
	return nil
}

// decodeWith adapts a Serializer to a DecodeFunc producing values of type t.
func decodeWith(s *Serializer, t reflect.Type) DecodeFunc[any] {
	return func(r io.Reader) (any, error) {
		out := reflect.New(t)
		if err := s.Decode(r, out.Interface()); err != nil {
			return nil, err
		}
		return out.Elem().Interface(), nil
	}
}
