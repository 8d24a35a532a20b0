package crumb

// Figure is a union with field-less, single-field and multi-field cases.
type Figure interface{ isFigure() }

type Circle struct{ Radius float64 }

type Rect struct{ Width, Height float64 }

type Dot struct{}

func (Circle) isFigure() {}
func (Rect) isFigure()   {}
func (Dot) isFigure()    {}

// Oompa has a case stored by pointer.
type Oompa interface{ isOompa() }

type Ompa struct{}

type Lompa struct{ Level int }

func (Ompa) isOompa()   {}
func (*Lompa) isOompa() {}

// Maybe has a case literally named Some.
type Maybe interface{ isMaybe() }

type SomeCase struct{ Value string }

type Nothing struct{}

func (SomeCase) isMaybe() {}
func (Nothing) isMaybe()  {}

// Wrapper is a record with a field named Some.
type Wrapper struct {
	Some  int
	Other string
}

// Tagged is a record whose json name collides with the box key.
type Tagged struct {
	Value int `json:"some"`
}

// Drawing nests every algebraic shape inside an ordinary struct.
type Drawing struct {
	Title  string                 `json:"title"`
	Main   Figure                 `json:"main"`
	Accent Option[Figure]         `json:"accent"`
	Layers []Figure               `json:"layers"`
	Anchor Tuple2[int, string]    `json:"anchor"`
	Note   Option[string]         `json:"note"`
	Meta   map[string]Option[int] `json:"meta,omitempty"`
}

var (
	figureShape = MustRegisterUnion[Figure](Case[Circle](), Case[Rect](), Case[Dot]())
	oompaShape  = MustRegisterUnion[Oompa](Case[Ompa](), Case[Lompa]())
	maybeShape  = MustRegisterUnion[Maybe](NamedCase[SomeCase]("Some"), Case[Nothing]())
)

func ptr[T any](v T) *T {
	return &v
}
