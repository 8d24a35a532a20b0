package crumb

import (
	"errors"
	"testing"
)

func TestDecodeError_Is(t *testing.T) {
	err := newDecodeError(ErrUnknownCase, "crumb.Figure", "%q", "Hexagon")

	if !errors.Is(err, ErrUnknownCase) {
		t.Error("DecodeError should unwrap to ErrUnknownCase")
	}

	if errors.Is(err, ErrMalformedUnion) {
		t.Error("DecodeError should not match ErrMalformedUnion")
	}
}

func TestDecodeError_Message(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "full context",
			err:  newDecodeError(ErrArityMismatch, "crumb.Tuple2[int,string]", "expected %d elements, got %d", 2, 1),
			want: "decode crumb.Tuple2[int,string]: arity mismatch: expected 2 elements, got 1",
		},
		{
			name: "type only",
			err:  &DecodeError{Err: ErrMalformedTuple, Type: "T"},
			want: "decode T: malformed tuple",
		},
		{
			name: "sentinel only",
			err:  &DecodeError{Err: ErrNonSeekableSource},
			want: "decode: source is not seekable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestShapeError_Message(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "full context",
			err:  newShapeError(ErrInvalidCase, "int", "case must be a struct or pointer to struct"),
			want: "invalid case int: case must be a struct or pointer to struct",
		},
		{
			name: "type only",
			err:  &ShapeError{Err: ErrInvalidUnion, Type: "crumb.Figure"},
			want: "invalid union crumb.Figure",
		},
		{
			name: "detail only",
			err:  &ShapeError{Err: ErrDuplicateCase, Detail: "Circle"},
			want: "duplicate case: Circle",
		},
		{
			name: "bare",
			err:  &ShapeError{Err: ErrInvalidUnion},
			want: "invalid union",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}

	if !errors.Is(newShapeError(ErrDuplicateCase, "", ""), ErrDuplicateCase) {
		t.Error("ShapeError should unwrap to its sentinel")
	}
}

func TestFallbackError(t *testing.T) {
	compact := newDecodeError(ErrUnknownCase, "T", "%q", "x")
	verbose := newDecodeError(ErrMalformedUnion, "T", "unexpected string")
	err := &FallbackError{Compact: compact, Verbose: verbose}

	want := "compact decode failed: decode T: unknown union case: \"x\"; verbose decode failed: decode T: malformed union: unexpected string"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	if !errors.Is(err, ErrUnknownCase) || !errors.Is(err, ErrMalformedUnion) {
		t.Error("FallbackError should unwrap to both attempts")
	}
}

func TestSentinelErrors_Distinct(t *testing.T) {
	sentinels := []error{
		ErrUnknownCase,
		ErrMalformedUnion,
		ErrMalformedTuple,
		ErrMissingSomeAttribute,
		ErrUnexpectedSomeAttribute,
		ErrArityMismatch,
		ErrMissingField,
		ErrNonSeekableSource,
		ErrNullResult,
		ErrInvalidUnion,
		ErrInvalidCase,
		ErrDuplicateCase,
		ErrInvalidTarget,
		ErrInvalidSettings,
	}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("%v should not match %v", a, b)
			}
		}
	}
}
