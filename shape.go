package crumb

import (
	"encoding/hex"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/zoobzio/sentinel"
	"golang.org/x/crypto/blake2b"
)

// someKey is the wrapper key used to box option payloads.
const someKey = "Some"

// restField is the Tuple8 slot holding the remaining elements.
const restField = "Rest"

// ShapeKind classifies how a Go type is encoded.
type ShapeKind uint8

const (
	// ShapeScalar types are delegated to the generic JSON serializer.
	ShapeScalar ShapeKind = iota
	// ShapeOption types are Option[T] instantiations.
	ShapeOption
	// ShapeTuple types are Tuple2..Tuple8 instantiations.
	ShapeTuple
	// ShapeUnion types are registered union interfaces.
	ShapeUnion
	// ShapeCase types are the concrete case types of a registered union.
	ShapeCase
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeOption:
		return "option"
	case ShapeTuple:
		return "tuple"
	case ShapeUnion:
		return "union"
	case ShapeCase:
		return "case"
	default:
		return "scalar"
	}
}

// FieldShape describes one exported struct field.
type FieldShape struct {
	Name     string       // Go field name
	JSONName string       // Name from the json tag, or Name
	Index    []int        // reflect.Value.FieldByIndex access path
	Type     reflect.Type // Declared field type
}

// CaseShape describes one union case.
type CaseShape struct {
	Name    string       // Declared case name, before any NameTransform
	Type    reflect.Type // Dynamic type stored in the union interface
	Struct  reflect.Type // Struct type carrying the fields
	Pointer bool         // Type is *Struct
	Fields  []FieldShape
}

// TupleSlot describes one tuple element.
type TupleSlot struct {
	Name  string // Item1..Item7 or Rest
	Index []int
	Type  reflect.Type
}

// Shape is the structural metadata for a Go type.
// Shapes are computed once per type and shared; treat them as read-only.
type Shape struct {
	Type reflect.Type
	Kind ShapeKind
	Name string

	// Elem is the payload type of an option.
	Elem reflect.Type

	// Cases lists the cases of a union in declaration order.
	Cases []CaseShape

	// Slots are the top-level tuple fields (legacy object keys).
	// Items are the tuple elements with Rest flattened (array positions).
	Slots []TupleSlot
	Items []TupleSlot

	// Union and CaseIndex locate a case type within its union.
	Union     *Shape
	CaseIndex int

	// AmbiguousSome is true when a value of this type could be mistaken for
	// the {"Some": ...} box, so it must always be boxed inside an option.
	AmbiguousSome bool

	// Fingerprint is a stable hash of the structural signature.
	Fingerprint string

	byType map[reflect.Type]int
}

// TagOf returns the case name of v for a union or case shape.
func (s *Shape) TagOf(v any) (string, bool) {
	if v == nil {
		return "", false
	}
	switch s.Kind {
	case ShapeUnion:
		i, ok := s.byType[reflect.TypeOf(v)]
		if !ok {
			return "", false
		}
		return s.Cases[i].Name, true
	case ShapeCase:
		return s.Union.TagOf(v)
	}
	return "", false
}

// caseByName finds a case whose raw or transformed name matches name,
// ignoring case.
func (s *Shape) caseByName(name string, names NameTransform) (int, bool) {
	for i := range s.Cases {
		declared := s.Cases[i].Name
		if strings.EqualFold(name, declared) || strings.EqualFold(name, names(declared)) {
			return i, true
		}
	}
	return 0, false
}

// ShapeCache memoizes Shape descriptors per reflect.Type.
// The zero value is ready to use and safe for concurrent use. Entries are
// never evicted: types do not change for the life of the process.
type ShapeCache struct {
	shapes sync.Map // reflect.Type -> *Shape
}

// shapes is the process-wide cache used by every Serializer.
var shapes ShapeCache

// ShapeOf returns the cached Shape for t.
func ShapeOf(t reflect.Type) *Shape {
	return shapes.Of(t)
}

// ShapeFor returns the cached Shape for T.
func ShapeFor[T any]() *Shape {
	return shapes.Of(reflect.TypeFor[T]())
}

// Of returns the Shape for t, computing it on first sight.
// Concurrent first calls may compute twice; one result wins and all callers
// observe it.
func (c *ShapeCache) Of(t reflect.Type) *Shape {
	if cached, ok := c.shapes.Load(t); ok {
		return cached.(*Shape)
	}

	s := c.build(t)

	actual, loaded := c.shapes.LoadOrStore(t, s)
	if !loaded {
		emitShapeComputed(s)
	}
	return actual.(*Shape)
}

// store installs a registered shape, replacing anything computed before
// registration.
func (c *ShapeCache) store(s *Shape) {
	c.shapes.Store(s.Type, s)
}

func (c *ShapeCache) build(t reflect.Type) *Shape {
	if s, ok := registeredShape(t); ok {
		return s
	}

	s := &Shape{Type: t, Name: t.String()}
	concrete := t.Kind() != reflect.Pointer && t.Kind() != reflect.Interface

	switch {
	case concrete && t.Implements(optionValueType):
		s.Kind = ShapeOption
		s.Elem = reflect.Zero(t).Interface().(optionValue).optionElem()
		s.AmbiguousSome = true
	case concrete && t.Kind() == reflect.Struct && t.Implements(tupleValueType):
		s.Kind = ShapeTuple
		s.Slots, s.Items = tupleSlots(t, nil)
	default:
		s.Kind = ShapeScalar
		s.AmbiguousSome = c.declaresSome(t)
	}

	s.Fingerprint = fingerprint(s)
	return s
}

// declaresSome reports whether a scalar type has a field literally named
// "Some". Pointers take the answer of their element.
func (c *ShapeCache) declaresSome(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer:
		return c.Of(t.Elem()).AmbiguousSome
	case reflect.Struct:
		return fieldsDeclareSome(scanFields(t))
	}
	return false
}

func fieldsDeclareSome(fields []FieldShape) bool {
	for _, f := range fields {
		if strings.EqualFold(f.Name, someKey) || strings.EqualFold(f.JSONName, someKey) {
			return true
		}
	}
	return false
}

// tupleSlots lists the fields of a tuple struct. Items flattens a Rest field
// that is itself a tuple.
func tupleSlots(t reflect.Type, prefix []int) (slots, items []TupleSlot) {
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		index := append(append([]int{}, prefix...), i)
		slot := TupleSlot{Name: sf.Name, Index: index, Type: sf.Type}
		slots = append(slots, slot)

		if sf.Name == restField && sf.Type.Kind() == reflect.Struct && sf.Type.Implements(tupleValueType) {
			_, nested := tupleSlots(sf.Type, index)
			items = append(items, nested...)
			continue
		}
		items = append(items, slot)
	}
	return slots, items
}

// scanFields lists the exported fields of a struct type, preferring metadata
// already scanned by sentinel.
func scanFields(rt reflect.Type) []FieldShape {
	if meta, ok := sentinel.Lookup(typeKey(rt)); ok && meta.ReflectType == rt {
		return fieldsFromMetadata(rt, meta)
	}

	fields := make([]FieldShape, 0, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		fields = append(fields, fieldShape(sf))
	}
	return fields
}

// fieldsFromMetadata converts sentinel field metadata into FieldShapes.
func fieldsFromMetadata(rt reflect.Type, meta sentinel.Metadata) []FieldShape {
	fields := make([]FieldShape, 0, len(meta.Fields))
	for _, fm := range meta.Fields {
		var (
			sf reflect.StructField
			ok bool
		)
		if len(fm.Index) > 0 && fm.Index[0] < rt.NumField() {
			sf, ok = rt.FieldByIndex(fm.Index), true
		} else {
			sf, ok = rt.FieldByName(fm.Name)
		}
		if !ok || !sf.IsExported() {
			continue
		}
		fields = append(fields, fieldShape(sf))
	}
	return fields
}

func fieldShape(sf reflect.StructField) FieldShape {
	return FieldShape{
		Name:     sf.Name,
		JSONName: jsonName(sf),
		Index:    sf.Index,
		Type:     sf.Type,
	}
}

// jsonName returns the member name the generic serializer uses for sf.
func jsonName(sf reflect.StructField) string {
	tag, ok := sf.Tag.Lookup("json")
	if !ok {
		return sf.Name
	}
	name, _, _ := strings.Cut(tag, ",")
	switch name {
	case "":
		return sf.Name
	case "-":
		return ""
	}
	return name
}

// fingerprint hashes the structural signature of s.
func fingerprint(s *Shape) string {
	var b strings.Builder
	b.WriteString(s.Kind.String())
	b.WriteByte(':')
	b.WriteString(typeKey(s.Type))
	if s.Elem != nil {
		b.WriteString("|elem=")
		b.WriteString(typeKey(s.Elem))
	}
	for _, cs := range s.Cases {
		b.WriteString("|case=")
		b.WriteString(cs.Name)
		b.WriteByte('(')
		for i, f := range cs.Fields {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(typeKey(f.Type))
		}
		b.WriteByte(')')
	}
	for _, item := range s.Items {
		b.WriteString("|item=")
		b.WriteString(typeKey(item.Type))
	}
	if s.Union != nil {
		b.WriteString("|union=")
		b.WriteString(s.Union.Fingerprint)
		b.WriteByte('#')
		b.WriteString(strconv.Itoa(s.CaseIndex))
	}

	sum := blake2b.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

func typeKey(t reflect.Type) string {
	if t.PkgPath() == "" {
		return t.String()
	}
	return t.PkgPath() + "." + t.Name()
}
