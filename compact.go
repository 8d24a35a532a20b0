package crumb

import (
	"reflect"

	"github.com/go-json-experiment/json/jsontext"
)

// Compact grammar.
//
//	union case, no fields      "Dot"
//	union case, one field      {"Circle": 1.5}
//	union case, many fields    {"Rect": [2, 3]}
//	None                       null
//	Some(x)                    x, or {"Some": x} when x could be mistaken for the box
//	Some(nil)                  {"Some": null}
//	tuple                      [1, "a", true]

// writeOption writes an option, boxing the payload only when required.
func (c *codec) writeOption(enc *jsontext.Encoder, shape *Shape, o optionValue) error {
	payload, some := o.optionPayload()
	if !some {
		return enc.WriteToken(jsontext.Null)
	}
	if isNilValue(payload) {
		return c.writeBox(enc, func() error { return enc.WriteToken(jsontext.Null) })
	}
	if c.shapes.Of(shape.Elem).AmbiguousSome {
		return c.writeBox(enc, func() error { return writeValue(enc, payload) })
	}
	return writeValue(enc, payload)
}

// writeBox writes {"Some": <payload>}.
func (c *codec) writeBox(enc *jsontext.Encoder, payload func() error) error {
	if err := enc.WriteToken(jsontext.BeginObject); err != nil {
		return err
	}
	if err := enc.WriteToken(jsontext.String(c.names(someKey))); err != nil {
		return err
	}
	if err := payload(); err != nil {
		return err
	}
	return enc.WriteToken(jsontext.EndObject)
}

// readOption reads an option into ptr, a *Option[T].
func (c *codec) readOption(dec *jsontext.Decoder, shape *Shape, ptr reflect.Value) error {
	setter := ptr.Interface().(optionSetter)
	ambiguous := c.shapes.Of(shape.Elem).AmbiguousSome

	kind, err := peek(dec)
	if err != nil {
		return err
	}

	switch kind {
	case kindNull:
		if _, err := dec.ReadToken(); err != nil {
			return err
		}
		setter.optionClear()
		return nil

	case kindBeginObject:
		raw, err := dec.ReadValue()
		if err != nil {
			return err
		}
		raw = raw.Clone()

		members, err := decodeMembers(raw)
		if err != nil {
			return err
		}
		if boxed, ok := c.someMember(members); ok {
			if isNullValue(boxed) {
				setter.optionSet(reflect.Zero(shape.Elem))
				return nil
			}
			if !ambiguous {
				return newDecodeError(ErrUnexpectedSomeAttribute, shape.Name,
					"payload type %s is never boxed", shape.Elem)
			}
			return c.setPayload(setter, shape.Elem, func(v reflect.Value) error {
				return c.unmarshalRaw(boxed, v)
			})
		}
		if ambiguous {
			return newDecodeError(ErrMissingSomeAttribute, shape.Name,
				"payload type %s must be wrapped in a %s member", shape.Elem, c.names(someKey))
		}
		// A verbose {"Case":"Some","Fields":[...]} object must not pass for a
		// record payload, so unknown members are an error here.
		return c.setPayload(setter, shape.Elem, func(v reflect.Value) error {
			return c.unmarshalStrict(raw, v)
		})
	}

	if ambiguous {
		return newDecodeError(ErrMissingSomeAttribute, shape.Name,
			"payload type %s must be wrapped in a %s member, got %s", shape.Elem, c.names(someKey), kindName(kind))
	}
	return c.setPayload(setter, shape.Elem, func(v reflect.Value) error {
		return readValue(dec, v)
	})
}

// someMember returns the payload of an object whose only member is the
// (possibly transformed) "Some" key.
func (c *codec) someMember(members map[string]jsontext.Value) (jsontext.Value, bool) {
	if len(members) != 1 {
		return nil, false
	}
	return lookupMember(members, c.names(someKey))
}

// setPayload decodes into a fresh payload and stores it in the option.
func (c *codec) setPayload(setter optionSetter, elem reflect.Type, decode func(reflect.Value) error) error {
	payload := reflect.New(elem).Elem()
	if err := decode(payload); err != nil {
		return err
	}
	setter.optionSet(payload)
	return nil
}

// writeCase writes a union case in the compact grammar.
func (c *codec) writeCase(enc *jsontext.Encoder, cs *CaseShape, rv reflect.Value) error {
	sv := rv
	if cs.Pointer {
		sv = rv.Elem()
	}
	name := c.names(cs.Name)

	if len(cs.Fields) == 0 {
		return enc.WriteToken(jsontext.String(name))
	}

	if err := enc.WriteToken(jsontext.BeginObject); err != nil {
		return err
	}
	if err := enc.WriteToken(jsontext.String(name)); err != nil {
		return err
	}
	if len(cs.Fields) == 1 {
		if err := writeValue(enc, sv.FieldByIndex(cs.Fields[0].Index)); err != nil {
			return err
		}
	} else {
		if err := enc.WriteToken(jsontext.BeginArray); err != nil {
			return err
		}
		for _, f := range cs.Fields {
			if err := writeValue(enc, sv.FieldByIndex(f.Index)); err != nil {
				return err
			}
		}
		if err := enc.WriteToken(jsontext.EndArray); err != nil {
			return err
		}
	}
	return enc.WriteToken(jsontext.EndObject)
}

// readUnion reads a union value in the compact grammar. When want is a case
// index, the input must name that case.
func (c *codec) readUnion(dec *jsontext.Decoder, union *Shape, want int, target reflect.Value) error {
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

	case kindString:
		tok, err := dec.ReadToken()
		if err != nil {
			return err
		}
		idx, ok := union.caseByName(tok.String(), c.names)
		if !ok {
			return newDecodeError(ErrUnknownCase, union.Name, "%q", tok.String())
		}
		cs := &union.Cases[idx]
		if len(cs.Fields) > 0 {
			return newDecodeError(ErrArityMismatch, union.Name,
				"case %s has %d fields, got a bare name", cs.Name, len(cs.Fields))
		}
		return assignCase(union, idx, want, reflect.New(cs.Struct).Elem(), target)

	case kindBeginObject:
		if _, err := dec.ReadToken(); err != nil {
			return err
		}
		next, err := peek(dec)
		if err != nil {
			return err
		}
		if next == kindEndObject {
			return newDecodeError(ErrMalformedUnion, union.Name, "object has no members")
		}
		tok, err := dec.ReadToken()
		if err != nil {
			return err
		}
		idx, ok := union.caseByName(tok.String(), c.names)
		if !ok {
			return newDecodeError(ErrUnknownCase, union.Name, "%q", tok.String())
		}
		cs := &union.Cases[idx]
		value := reflect.New(cs.Struct).Elem()
		if err := c.readCaseFields(dec, union, cs, value); err != nil {
			return err
		}
		next, err = peek(dec)
		if err != nil {
			return err
		}
		if next != kindEndObject {
			return newDecodeError(ErrMalformedUnion, union.Name, "object must have exactly one member")
		}
		if _, err := dec.ReadToken(); err != nil {
			return err
		}
		return assignCase(union, idx, want, value, target)
	}

	return newDecodeError(ErrMalformedUnion, union.Name, "unexpected %s", kindName(kind))
}

// readCaseFields reads the member value of a single-member union object.
func (c *codec) readCaseFields(dec *jsontext.Decoder, union *Shape, cs *CaseShape, value reflect.Value) error {
	kind, err := peek(dec)
	if err != nil {
		return err
	}

	switch len(cs.Fields) {
	case 0:
		switch kind {
		case kindNull:
			_, err := dec.ReadToken()
			return err
		case kindBeginArray:
			if _, err := dec.ReadToken(); err != nil {
				return err
			}
			next, err := peek(dec)
			if err != nil {
				return err
			}
			if next != kindEndArray {
				return newDecodeError(ErrArityMismatch, union.Name, "case %s has no fields", cs.Name)
			}
			_, err = dec.ReadToken()
			return err
		}
		return newDecodeError(ErrArityMismatch, union.Name, "case %s has no fields, got %s", cs.Name, kindName(kind))

	case 1:
		return readValue(dec, value.FieldByIndex(cs.Fields[0].Index))
	}

	if kind != kindBeginArray {
		return newDecodeError(ErrMalformedUnion, union.Name,
			"case %s has %d fields, expected an array, got %s", cs.Name, len(cs.Fields), kindName(kind))
	}
	if _, err := dec.ReadToken(); err != nil {
		return err
	}
	for i, f := range cs.Fields {
		next, err := peek(dec)
		if err != nil {
			return err
		}
		if next == kindEndArray {
			return newDecodeError(ErrArityMismatch, union.Name,
				"case %s has %d fields, got %d", cs.Name, len(cs.Fields), i)
		}
		if err := readValue(dec, value.FieldByIndex(f.Index)); err != nil {
			return err
		}
	}
	next, err := peek(dec)
	if err != nil {
		return err
	}
	if next != kindEndArray {
		return newDecodeError(ErrArityMismatch, union.Name,
			"case %s has %d fields, got more", cs.Name, len(cs.Fields))
	}
	_, err = dec.ReadToken()
	return err
}

// assignCase stores a decoded case struct into target, taking its address
// for pointer cases.
func assignCase(union *Shape, idx, want int, value, target reflect.Value) error {
	cs := &union.Cases[idx]
	if want >= 0 && idx != want {
		return newDecodeError(ErrUnknownCase, cs.Type.String(),
			"expected case %s, got %s", union.Cases[want].Name, cs.Name)
	}
	if cs.Pointer {
		value = value.Addr()
	}
	target.Set(value)
	return nil
}
