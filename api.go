// Package crumb encodes algebraic data types as compact JSON.
//
// Go has no sum types, options or tuples, so crumb provides them and teaches
// the JSON serializer how to write them:
//
//   - unions: an interface registered with RegisterUnion, whose cases are
//     structs implementing it
//   - options: Option[T], holding None or Some(value)
//   - tuples: Tuple2 through Tuple8
//
// Every other type is handed to the generic serializer untouched.
//
// # Compact Grammar
//
// The compact grammar drops structure whenever it can be recovered from the
// target type:
//
//	Dot{}                   "Dot"
//	Circle{Radius: 1.5}     {"Circle":1.5}
//	Rect{2, 3}              {"Rect":[2,3]}
//	None[int]()             null
//	Some(42)                42
//	Some[*int](nil)         {"Some":null}
//	Pair(1, "a")            [1,"a"]
//
// An option payload that could itself be read as the {"Some": ...} box is
// always boxed. That covers nested options and any record or union with a
// field or case named "Some":
//
//	Some(Some(1))           {"Some":1}
//	Some(None[int]())       {"Some":null}
//
// # Verbose Grammar
//
// NewVerbose writes the older structural grammar:
//
//	Rect{2, 3}              {"Case":"Rect","Fields":[2,3]}
//	Some(42)                {"Case":"Some","Fields":[42]}
//	Pair(1, "a")            {"Item1":1,"Item2":"a"}
//
// # Reading Either Grammar
//
// NewBackwardCompatible writes compact JSON and reads both grammars. It tries
// the compact reader first and, if that fails or produces nothing, rewinds
// and tries the verbose reader. DecodeEither exposes the same strategy for
// arbitrary decode functions.
//
// # Basic Usage
//
//	type Shape interface{ isShape() }
//
//	type Circle struct{ Radius float64 }
//	type Rect struct{ Width, Height float64 }
//	type Dot struct{}
//
//	func (Circle) isShape() {}
//	func (Rect) isShape()   {}
//	func (Dot) isShape()    {}
//
//	var _ = crumb.MustRegisterUnion[Shape](
//	    crumb.Case[Circle](),
//	    crumb.Case[Rect](),
//	    crumb.Case[Dot](),
//	)
//
//	s := crumb.New()
//	data, _ := s.Marshal(Rect{Width: 2, Height: 3}) // {"Rect":[2,3]}
//
//	shape, _ := crumb.Deserialize[Shape](s, data)
//
// # Naming
//
// Case names and the "Some" key pass through a NameTransform on write.
// WithNaming(NamingCamelCase) writes {"circle":1.5} and {"some":null}. Reads
// match names ignoring case, against both the declared and transformed name.
//
// # Observability
//
// Serializers emit capitan signals (see signals.go) and log through the zap
// logger installed with SetLogger.
package crumb

// Codec provides content-type aware marshaling.
type Codec interface {
	// ContentType returns the MIME type for this codec (e.g., "application/json").
	ContentType() string

	// Marshal encodes v into bytes.
	Marshal(v any) ([]byte, error)

	// Unmarshal decodes data into v.
	Unmarshal(data []byte, v any) error
}

// Format-aware codecs.
var (
	_ Codec = (*Serializer)(nil)
	_ Codec = (*BackwardCompatible)(nil)
)
