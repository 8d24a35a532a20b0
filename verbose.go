package crumb

import (
	"reflect"
	"strings"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Verbose grammar. Case names are written as declared.
//
//	union case                 {"Case": "Rect", "Fields": [2, 3]}
//	field-less case            {"Case": "Dot"}
//	None                       null
//	Some(x)                    {"Case": "Some", "Fields": [x]}
//	tuple                      {"Item1": 1, "Item2": "a"}

const (
	verboseCaseKey   = "Case"
	verboseFieldsKey = "Fields"
	verboseNone      = "None"
)

// writeVerboseCase writes a union case as {"Case":...,"Fields":[...]}.
func (c *codec) writeVerboseCase(enc *jsontext.Encoder, cs *CaseShape, rv reflect.Value) error {
	sv := rv
	if cs.Pointer {
		sv = rv.Elem()
	}

	if err := enc.WriteToken(jsontext.BeginObject); err != nil {
		return err
	}
	if err := enc.WriteToken(jsontext.String(verboseCaseKey)); err != nil {
		return err
	}
	if err := enc.WriteToken(jsontext.String(cs.Name)); err != nil {
		return err
	}
	if len(cs.Fields) > 0 {
		if err := enc.WriteToken(jsontext.String(verboseFieldsKey)); err != nil {
			return err
		}
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

// writeVerboseOption writes None as null and Some(x) as a one-field case.
func (c *codec) writeVerboseOption(enc *jsontext.Encoder, o optionValue) error {
	payload, some := o.optionPayload()
	if !some {
		return enc.WriteToken(jsontext.Null)
	}
	for _, tok := range []jsontext.Token{
		jsontext.BeginObject,
		jsontext.String(verboseCaseKey),
		jsontext.String(someKey),
		jsontext.String(verboseFieldsKey),
		jsontext.BeginArray,
	} {
		if err := enc.WriteToken(tok); err != nil {
			return err
		}
	}
	if err := writeValue(enc, payload); err != nil {
		return err
	}
	if err := enc.WriteToken(jsontext.EndArray); err != nil {
		return err
	}
	return enc.WriteToken(jsontext.EndObject)
}

// readVerboseUnion reads a union value in the verbose grammar.
func (c *codec) readVerboseUnion(dec *jsontext.Decoder, union *Shape, want int, target reflect.Value) error {
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
		name, fields, err := readVerboseObject(dec, union.Name)
		if err != nil {
			return err
		}
		idx, ok := union.caseByName(name, Identity)
		if !ok {
			return newDecodeError(ErrUnknownCase, union.Name, "%q", name)
		}
		cs := &union.Cases[idx]
		if len(fields) != len(cs.Fields) {
			return newDecodeError(ErrArityMismatch, union.Name,
				"case %s has %d fields, got %d", cs.Name, len(cs.Fields), len(fields))
		}
		value := reflect.New(cs.Struct).Elem()
		for i, f := range cs.Fields {
			if err := c.unmarshalRaw(fields[i], value.FieldByIndex(f.Index)); err != nil {
				return err
			}
		}
		return assignCase(union, idx, want, value, target)
	}

	return newDecodeError(ErrMalformedUnion, union.Name, "unexpected %s", kindName(kind))
}

// readVerboseOption reads null, {"Case":"None"} or {"Case":"Some","Fields":[x]}.
func (c *codec) readVerboseOption(dec *jsontext.Decoder, shape *Shape, ptr reflect.Value) error {
	setter := ptr.Interface().(optionSetter)

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
		name, fields, err := readVerboseObject(dec, shape.Name)
		if err != nil {
			return err
		}
		switch {
		case strings.EqualFold(name, verboseNone):
			setter.optionClear()
			return nil
		case strings.EqualFold(name, someKey):
			if len(fields) != 1 {
				return newDecodeError(ErrArityMismatch, shape.Name, "Some has 1 field, got %d", len(fields))
			}
			return c.setPayload(setter, shape.Elem, func(v reflect.Value) error {
				return c.unmarshalRaw(fields[0], v)
			})
		}
		return newDecodeError(ErrUnknownCase, shape.Name, "%q", name)
	}

	return newDecodeError(ErrMalformedUnion, shape.Name, "unexpected %s", kindName(kind))
}

// readVerboseObject reads the Case name and the buffered Fields elements.
func readVerboseObject(dec *jsontext.Decoder, typeName string) (string, []jsontext.Value, error) {
	members, err := readMembers(dec)
	if err != nil {
		return "", nil, err
	}

	rawCase, ok := lookupMember(members, verboseCaseKey)
	if !ok {
		return "", nil, newDecodeError(ErrMalformedUnion, typeName, "object has no %s member", verboseCaseKey)
	}
	var name string
	if err := json.Unmarshal(rawCase, &name); err != nil {
		return "", nil, newDecodeError(ErrMalformedUnion, typeName, "%s must be a string", verboseCaseKey)
	}

	rawFields, ok := lookupMember(members, verboseFieldsKey)
	if !ok || isNullValue(rawFields) {
		return name, nil, nil
	}
	var fields []jsontext.Value
	if err := json.Unmarshal(rawFields, &fields); err != nil {
		return "", nil, newDecodeError(ErrMalformedUnion, typeName, "%s must be an array", verboseFieldsKey)
	}
	return name, fields, nil
}
