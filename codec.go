package crumb

import (
	"bytes"
	"io"
	"reflect"
	"strings"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Token kinds as reported by jsontext.Decoder.PeekKind.
const (
	kindNull        jsontext.Kind = 'n'
	kindString      jsontext.Kind = '"'
	kindBeginObject jsontext.Kind = '{'
	kindEndObject   jsontext.Kind = '}'
	kindBeginArray  jsontext.Kind = '['
	kindEndArray    jsontext.Kind = ']'
)

// codec plugs union, option and tuple handling into the generic JSON
// serializer. Every other type is passed through untouched.
type codec struct {
	format Format
	tuples TupleEncoding
	names  NameTransform
	shapes *ShapeCache
	opts   json.Options
}

func newCodec(format Format, tuples TupleEncoding, names NameTransform, extra []json.Options) *codec {
	c := &codec{
		format: format,
		tuples: tuples,
		names:  names,
		shapes: &shapes,
	}
	all := make([]json.Options, 0, len(extra)+2)
	all = append(all, extra...)
	all = append(all,
		json.WithMarshalers(json.MarshalToFunc(c.marshal)),
		json.WithUnmarshalers(json.UnmarshalFromFunc(c.unmarshal)),
	)
	c.opts = json.JoinOptions(all...)
	return c
}

func (c *codec) verbose() bool {
	return c.format == FormatVerbose
}

// marshal is called by the serializer for every value it writes. v is always
// a pointer to the value, so a registered pointer case arrives as **T.
func (c *codec) marshal(enc *jsontext.Encoder, v any) error {
	ptr := reflect.ValueOf(v)
	if ptr.Kind() != reflect.Pointer || ptr.IsNil() {
		return json.SkipFunc
	}
	rv := ptr.Elem()
	shape := c.shapes.Of(rv.Type())

	switch shape.Kind {
	case ShapeOption:
		o := rv.Interface().(optionValue)
		if c.verbose() {
			return c.writeVerboseOption(enc, o)
		}
		return c.writeOption(enc, shape, o)
	case ShapeTuple:
		return c.writeTuple(enc, shape, rv)
	case ShapeCase:
		if rv.Kind() == reflect.Pointer && rv.IsNil() {
			return enc.WriteToken(jsontext.Null)
		}
		cs := &shape.Union.Cases[shape.CaseIndex]
		if c.verbose() {
			return c.writeVerboseCase(enc, cs, rv)
		}
		return c.writeCase(enc, cs, rv)
	}
	return json.SkipFunc
}

// unmarshal is called by the serializer with a pointer to every value it reads.
func (c *codec) unmarshal(dec *jsontext.Decoder, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return json.SkipFunc
	}
	target := rv.Elem()
	shape := c.shapes.Of(target.Type())

	switch shape.Kind {
	case ShapeOption:
		if c.verbose() {
			return c.readVerboseOption(dec, shape, rv)
		}
		return c.readOption(dec, shape, rv)
	case ShapeTuple:
		return c.readTuple(dec, shape, target)
	case ShapeUnion:
		if c.verbose() {
			return c.readVerboseUnion(dec, shape, -1, target)
		}
		return c.readUnion(dec, shape, -1, target)
	case ShapeCase:
		if c.verbose() {
			return c.readVerboseUnion(dec, shape.Union, shape.CaseIndex, target)
		}
		return c.readUnion(dec, shape.Union, shape.CaseIndex, target)
	}
	return json.SkipFunc
}

// writeTuple writes a tuple as an array of its flattened items, or as an
// object keyed by slot name under the legacy encoding and the verbose grammar.
func (c *codec) writeTuple(enc *jsontext.Encoder, shape *Shape, rv reflect.Value) error {
	if c.verbose() || c.tuples == TupleLegacyObject {
		if err := enc.WriteToken(jsontext.BeginObject); err != nil {
			return err
		}
		for _, slot := range shape.Slots {
			if err := enc.WriteToken(jsontext.String(slot.Name)); err != nil {
				return err
			}
			if err := writeValue(enc, rv.FieldByIndex(slot.Index)); err != nil {
				return err
			}
		}
		return enc.WriteToken(jsontext.EndObject)
	}

	if err := enc.WriteToken(jsontext.BeginArray); err != nil {
		return err
	}
	for _, item := range shape.Items {
		if err := writeValue(enc, rv.FieldByIndex(item.Index)); err != nil {
			return err
		}
	}
	return enc.WriteToken(jsontext.EndArray)
}

// readTuple accepts the array and the legacy object encodings in any format.
func (c *codec) readTuple(dec *jsontext.Decoder, shape *Shape, target reflect.Value) error {
	kind, err := peek(dec)
	if err != nil {
		return err
	}

	switch kind {
	case kindNull:
		if _, err := dec.ReadToken(); err != nil {
			return err
		}
		target.SetZero()
		return nil

	case kindBeginObject:
		members, err := readMembers(dec)
		if err != nil {
			return err
		}
		for _, slot := range shape.Slots {
			raw, ok := lookupMember(members, slot.Name)
			if !ok {
				return newDecodeError(ErrMissingField, shape.Name, "legacy tuple object has no %s member", slot.Name)
			}
			if err := c.unmarshalRaw(raw, target.FieldByIndex(slot.Index)); err != nil {
				return err
			}
		}
		return nil

	case kindBeginArray:
		if _, err := dec.ReadToken(); err != nil {
			return err
		}
		for i, item := range shape.Items {
			next, err := peek(dec)
			if err != nil {
				return err
			}
			if next == kindEndArray {
				return newDecodeError(ErrArityMismatch, shape.Name, "expected %d elements, got %d", len(shape.Items), i)
			}
			if err := readValue(dec, target.FieldByIndex(item.Index)); err != nil {
				return err
			}
		}
		next, err := peek(dec)
		if err != nil {
			return err
		}
		if next != kindEndArray {
			return newDecodeError(ErrArityMismatch, shape.Name, "expected %d elements, got more", len(shape.Items))
		}
		_, err = dec.ReadToken()
		return err
	}

	return newDecodeError(ErrMalformedTuple, shape.Name, "unexpected %s", kindName(kind))
}

// unmarshalRaw decodes a buffered value into the addressable value v.
func (c *codec) unmarshalRaw(raw jsontext.Value, v reflect.Value) error {
	return json.Unmarshal(raw, v.Addr().Interface(), c.opts)
}

// unmarshalStrict is unmarshalRaw rejecting object members that v does not
// declare.
func (c *codec) unmarshalStrict(raw jsontext.Value, v reflect.Value) error {
	return json.Unmarshal(raw, v.Addr().Interface(), c.opts, json.RejectUnknownMembers(true))
}

// writeValue writes v with the encoder's options.
func writeValue(enc *jsontext.Encoder, v reflect.Value) error {
	return json.MarshalEncode(enc, v.Interface())
}

// readValue decodes the next value into the addressable value v.
func readValue(dec *jsontext.Decoder, v reflect.Value) error {
	return json.UnmarshalDecode(dec, v.Addr().Interface())
}

// peek returns the kind of the next token, surfacing the decoder error when
// there is none.
func peek(dec *jsontext.Decoder) (jsontext.Kind, error) {
	kind := dec.PeekKind()
	if kind != 0 {
		return kind, nil
	}
	_, err := dec.ReadToken()
	if err == nil || err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return 0, err
}

// readMembers buffers the next object and splits it into its members.
func readMembers(dec *jsontext.Decoder) (map[string]jsontext.Value, error) {
	raw, err := dec.ReadValue()
	if err != nil {
		return nil, err
	}
	return decodeMembers(raw)
}

// decodeMembers splits a buffered object into its members.
func decodeMembers(raw jsontext.Value) (map[string]jsontext.Value, error) {
	var members map[string]jsontext.Value
	if err := json.Unmarshal(raw, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// lookupMember finds a member by exact name, then ignoring case.
func lookupMember(members map[string]jsontext.Value, name string) (jsontext.Value, bool) {
	if raw, ok := members[name]; ok {
		return raw, true
	}
	for key, raw := range members {
		if strings.EqualFold(key, name) {
			return raw, true
		}
	}
	return nil, false
}

func isNullValue(raw jsontext.Value) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// isNilValue reports whether v is a nil pointer, interface, map, slice,
// func or chan.
func isNilValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return !v.IsValid()
}

func kindName(k jsontext.Kind) string {
	switch k {
	case kindNull:
		return "null"
	case kindString:
		return "string"
	case kindBeginObject:
		return "object"
	case kindBeginArray:
		return "array"
	case 't', 'f':
		return "boolean"
	case '0':
		return "number"
	}
	return "token " + k.String()
}
