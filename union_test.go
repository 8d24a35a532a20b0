package crumb

import (
	"errors"
	"testing"
)

type Lonely interface{ isLonely() }

type Alone struct{}

func (Alone) isLonely() {}

type Twin interface{ isTwin() }

type TwinA struct{}

type TwinB struct{}

func (TwinA) isTwin() {}
func (TwinB) isTwin() {}

// Poser claims Circle, which already belongs to Figure.
type Poser interface{ isFigure() }

type Orphan interface{ isOrphan() }

type Stray struct{}

func (Stray) isOrphan() {}

func TestRegisterUnion_Errors(t *testing.T) {
	tests := []struct {
		name     string
		register func() (*Shape, error)
		want     error
	}{
		{
			name:     "not an interface",
			register: func() (*Shape, error) { return RegisterUnion[Alone](Case[Alone]()) },
			want:     ErrInvalidUnion,
		},
		{
			name:     "no cases",
			register: func() (*Shape, error) { return RegisterUnion[Lonely]() },
			want:     ErrInvalidUnion,
		},
		{
			name:     "case does not implement union",
			register: func() (*Shape, error) { return RegisterUnion[Lonely](Case[Circle]()) },
			want:     ErrInvalidCase,
		},
		{
			name:     "case is not a struct",
			register: func() (*Shape, error) { return RegisterUnion[Lonely](Case[int]()) },
			want:     ErrInvalidCase,
		},
		{
			name:     "empty case name",
			register: func() (*Shape, error) { return RegisterUnion[Lonely](NamedCase[Alone]("")) },
			want:     ErrInvalidCase,
		},
		{
			name: "case names collide ignoring case",
			register: func() (*Shape, error) {
				return RegisterUnion[Twin](NamedCase[TwinA]("Same"), NamedCase[TwinB]("same"))
			},
			want: ErrDuplicateCase,
		},
		{
			name:     "case type declared twice",
			register: func() (*Shape, error) { return RegisterUnion[Twin](Case[TwinA](), NamedCase[TwinA]("Other")) },
			want:     ErrDuplicateCase,
		},
		{
			name:     "case owned by another union",
			register: func() (*Shape, error) { return RegisterUnion[Poser](Case[Circle]()) },
			want:     ErrDuplicateCase,
		},
		{
			name:     "union registered twice",
			register: func() (*Shape, error) { return RegisterUnion[Figure](Case[Circle]()) },
			want:     ErrInvalidUnion,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shape, err := tt.register()
			if shape != nil {
				t.Error("rejected registration should not return a shape")
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
			var shapeErr *ShapeError
			if !errors.As(err, &shapeErr) {
				t.Errorf("error should be a *ShapeError, got %T", err)
			}
		})
	}

	if ShapeFor[Twin]().Kind != ShapeScalar {
		t.Error("a rejected union should not be registered")
	}
}

func TestRegisterUnion_Success(t *testing.T) {
	shape, err := RegisterUnion[Orphan](Case[Stray]())
	if err != nil {
		t.Fatalf("RegisterUnion() error: %v", err)
	}
	if shape.Kind != ShapeUnion || len(shape.Cases) != 1 {
		t.Errorf("shape = %+v", shape)
	}
	if ShapeFor[Orphan]() != shape {
		t.Error("registered shape should be cached")
	}
	if got := ShapeFor[Stray](); got.Kind != ShapeCase || got.Union != shape {
		t.Error("case shape should point at its union")
	}

	data, err := New().Marshal(Stray{})
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	if string(data) != `"Stray"` {
		t.Errorf("Marshal() = %s, want \"Stray\"", data)
	}
}

func TestMustRegisterUnion_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustRegisterUnion should panic on error")
		}
	}()
	MustRegisterUnion[Lonely]()
}
