package crumb

import (
	"fmt"
	"io"
	"reflect"
	"time"

	"github.com/go-json-experiment/json"
)

// Serializer encodes and decodes Go values as JSON, writing unions, options
// and tuples in one grammar. Every other type is handled by the generic
// serializer, so struct tags and custom marshalers keep working.
//
// Serializers are immutable after construction and safe for concurrent use.
type Serializer struct {
	codec  *codec
	format Format
	tuples TupleEncoding
	naming Naming
	names  NameTransform
	extra  []json.Options
}

// SerializerOption configures a Serializer.
type SerializerOption func(*Serializer)

// WithTupleEncoding selects how tuples are written. Reads accept both.
func WithTupleEncoding(te TupleEncoding) SerializerOption {
	return func(s *Serializer) {
		s.tuples = te
	}
}

// WithNaming selects a predefined naming convention for case names and the
// "Some" key.
func WithNaming(n Naming) SerializerOption {
	return func(s *Serializer) {
		s.naming = n
		s.names = transformFor(n)
	}
}

// WithNameTransform installs a custom naming function.
func WithNameTransform(fn NameTransform) SerializerOption {
	return func(s *Serializer) {
		if fn == nil {
			fn = Identity
		}
		s.names = fn
	}
}

// WithJSONOptions passes options through to the generic serializer,
// e.g. json.Deterministic(true) or json.RejectUnknownMembers(true).
func WithJSONOptions(opts ...json.Options) SerializerOption {
	return func(s *Serializer) {
		s.extra = append(s.extra, opts...)
	}
}

// New returns a Serializer for the compact grammar.
func New(opts ...SerializerOption) *Serializer {
	return newSerializer(FormatCompact, opts)
}

// NewVerbose returns a Serializer for the verbose grammar.
func NewVerbose(opts ...SerializerOption) *Serializer {
	return newSerializer(FormatVerbose, opts)
}

func newSerializer(format Format, opts []SerializerOption) *Serializer {
	s := &Serializer{
		format: format,
		tuples: TupleArray,
		naming: NamingIdentity,
		names:  Identity,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.codec = newCodec(format, s.tuples, s.names, s.extra)

	emitSerializerCreated(format, s.tuples, s.naming)
	return s
}

// ContentType returns the MIME type for JSON.
func (s *Serializer) ContentType() string {
	return "application/json"
}

// Format returns the grammar this serializer writes.
func (s *Serializer) Format() Format {
	return s.format
}

// Marshal encodes v as JSON.
func (s *Serializer) Marshal(v any) ([]byte, error) {
	start := time.Now()
	data, err := json.Marshal(v, s.codec.opts)
	emitMarshalComplete(s.format, typeName(v), len(data), time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}
	return data, nil
}

// Unmarshal decodes JSON data into v, which must be a non-nil pointer.
func (s *Serializer) Unmarshal(data []byte, v any) error {
	if err := checkTarget(v); err != nil {
		return err
	}

	start := time.Now()
	err := json.Unmarshal(data, v, s.codec.opts)
	emitUnmarshalComplete(s.format, typeName(v), len(data), time.Since(start), err)
	if err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	return nil
}

// Encode writes the JSON encoding of v to w.
func (s *Serializer) Encode(w io.Writer, v any) error {
	start := time.Now()
	err := json.MarshalWrite(w, v, s.codec.opts)
	emitMarshalComplete(s.format, typeName(v), -1, time.Since(start), err)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	return nil
}

// Decode reads one JSON value from r into v, which must be a non-nil pointer.
// The whole of r is consumed.
func (s *Serializer) Decode(r io.Reader, v any) error {
	if err := checkTarget(v); err != nil {
		return err
	}

	start := time.Now()
	err := json.UnmarshalRead(r, v, s.codec.opts)
	emitUnmarshalComplete(s.format, typeName(v), -1, time.Since(start), err)
	if err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	return nil
}

// Serialize encodes v with s.
func Serialize[T any](s Codec, v T) ([]byte, error) {
	return s.Marshal(v)
}

// Deserialize decodes data into a new T with s.
func Deserialize[T any](s Codec, data []byte) (T, error) {
	var out T
	err := s.Unmarshal(data, &out)
	return out, err
}

func checkTarget(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("%w: %s", ErrInvalidTarget, typeName(v))
	}
	return nil
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}
