package crumb

import (
	"reflect"
	"strings"
	"sync"

	"github.com/zoobzio/sentinel"
	"go.uber.org/zap"
)

// A union is a Go interface whose implementations are the cases. Each case is
// a struct (or pointer to struct); its exported fields are the case fields in
// declaration order.
//
//	type Shape interface{ isShape() }
//	type Circle struct{ Radius float64 }
//	type Rect struct{ Width, Height float64 }
//	type Dot struct{}
//
//	crumb.MustRegisterUnion[Shape](
//		crumb.Case[Circle](),
//		crumb.Case[Rect](),
//		crumb.Case[Dot](),
//	)

var (
	unions     = make(map[reflect.Type]*Shape)
	caseShapes = make(map[reflect.Type]*Shape)
	unionsMu   sync.RWMutex
)

// CaseSpec declares one case of a union. Build it with Case or NamedCase.
type CaseSpec struct {
	name   string
	typ    reflect.Type
	fields []FieldShape
	err    error
}

// Case declares C as a union case named after its Go type.
func Case[C any]() CaseSpec {
	t := reflect.TypeFor[C]()
	name := t.Name()
	if t.Kind() == reflect.Pointer {
		name = t.Elem().Name()
	}
	return NamedCase[C](name)
}

// NamedCase declares C as a union case with an explicit case name.
func NamedCase[C any](name string) CaseSpec {
	t := reflect.TypeFor[C]()
	spec := CaseSpec{name: name, typ: t}

	switch {
	case t.Kind() == reflect.Struct:
		spec.fields = fieldsFromMetadata(t, sentinel.Scan[C]())
	case t.Kind() == reflect.Pointer && t.Elem().Kind() == reflect.Struct:
		spec.fields = scanFields(t.Elem())
	default:
		spec.err = newShapeError(ErrInvalidCase, t.String(), "case must be a struct or pointer to struct")
		return spec
	}

	if name == "" {
		spec.err = newShapeError(ErrInvalidCase, t.String(), "case name is empty")
	}
	return spec
}

// RegisterUnion registers the interface U as a union with the given cases.
// Case order is declaration order. A case whose value type does not implement
// U but whose pointer type does is stored and decoded as a pointer.
func RegisterUnion[U any](specs ...CaseSpec) (*Shape, error) {
	ut := reflect.TypeFor[U]()
	if ut.Kind() != reflect.Interface {
		return nil, newShapeError(ErrInvalidUnion, ut.String(), "union must be an interface type")
	}
	if len(specs) == 0 {
		return nil, newShapeError(ErrInvalidUnion, ut.String(), "union needs at least one case")
	}

	union := &Shape{
		Type:   ut,
		Kind:   ShapeUnion,
		Name:   ut.String(),
		Cases:  make([]CaseShape, 0, len(specs)),
		byType: make(map[reflect.Type]int, len(specs)),
	}

	for _, spec := range specs {
		if spec.err != nil {
			return nil, spec.err
		}
		cs, err := resolveCase(ut, spec)
		if err != nil {
			return nil, err
		}
		for _, prev := range union.Cases {
			if strings.EqualFold(prev.Name, cs.Name) {
				return nil, newShapeError(ErrDuplicateCase, ut.String(), "case name "+cs.Name+" declared twice")
			}
		}
		if _, dup := union.byType[cs.Type]; dup {
			return nil, newShapeError(ErrDuplicateCase, ut.String(), "case type "+cs.Type.String()+" declared twice")
		}

		union.byType[cs.Type] = len(union.Cases)
		union.Cases = append(union.Cases, cs)
		if strings.EqualFold(cs.Name, someKey) || fieldsDeclareSome(cs.Fields) {
			union.AmbiguousSome = true
		}
	}
	union.Fingerprint = fingerprint(union)

	members := make([]*Shape, len(union.Cases))
	for i, cs := range union.Cases {
		member := &Shape{
			Type:          cs.Type,
			Kind:          ShapeCase,
			Name:          cs.Type.String(),
			Union:         union,
			CaseIndex:     i,
			AmbiguousSome: union.AmbiguousSome,
		}
		member.Fingerprint = fingerprint(member)
		members[i] = member
	}

	unionsMu.Lock()
	if _, ok := unions[ut]; ok {
		unionsMu.Unlock()
		return nil, newShapeError(ErrInvalidUnion, ut.String(), "union already registered")
	}
	for _, m := range members {
		if owner, ok := caseShapes[m.Type]; ok {
			unionsMu.Unlock()
			return nil, newShapeError(ErrDuplicateCase, m.Type.String(), "already a case of "+owner.Union.Name)
		}
	}
	unions[ut] = union
	for _, m := range members {
		caseShapes[m.Type] = m
	}
	unionsMu.Unlock()

	shapes.store(union)
	for _, m := range members {
		shapes.store(m)
	}

	emitUnionRegistered(union)
	Logger().Debug("registered union",
		zap.String("union", union.Name),
		zap.Int("cases", len(union.Cases)),
		zap.String("fingerprint", union.Fingerprint),
	)
	return union, nil
}

// MustRegisterUnion is like RegisterUnion but panics on error.
// Intended for package-level var initialization.
func MustRegisterUnion[U any](specs ...CaseSpec) *Shape {
	union, err := RegisterUnion[U](specs...)
	if err != nil {
		panic(err)
	}
	return union
}

// resolveCase checks that spec implements ut and settles its dynamic type.
func resolveCase(ut reflect.Type, spec CaseSpec) (CaseShape, error) {
	cs := CaseShape{
		Name:    spec.name,
		Type:    spec.typ,
		Struct:  spec.typ,
		Pointer: spec.typ.Kind() == reflect.Pointer,
		Fields:  spec.fields,
	}
	if cs.Pointer {
		cs.Struct = spec.typ.Elem()
	}

	if !cs.Type.Implements(ut) {
		ptr := reflect.PointerTo(cs.Type)
		if cs.Pointer || !ptr.Implements(ut) {
			return CaseShape{}, newShapeError(ErrInvalidCase, cs.Type.String(), "does not implement "+ut.String())
		}
		cs.Type = ptr
		cs.Pointer = true
	}
	return cs, nil
}

// registeredShape returns the shape of a registered union or case type.
func registeredShape(t reflect.Type) (*Shape, bool) {
	unionsMu.RLock()
	defer unionsMu.RUnlock()
	if s, ok := unions[t]; ok {
		return s, true
	}
	if s, ok := caseShapes[t]; ok {
		return s, true
	}
	return nil, false
}
