package crumb

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVerbose_Marshal(t *testing.T) {
	s := NewVerbose()

	tests := []struct {
		name string
		in   any
		want string
	}{
		{"single field case", Circle{Radius: 1.5}, `{"Case":"Circle","Fields":[1.5]}`},
		{"multi field case", Rect{Width: 2, Height: 3}, `{"Case":"Rect","Fields":[2,3]}`},
		{"field-less case", Dot{}, `{"Case":"Dot"}`},
		{"pointer case", &Lompa{Level: 3}, `{"Case":"Lompa","Fields":[3]}`},
		{"none", None[int](), `null`},
		{"some", Some(42), `{"Case":"Some","Fields":[42]}`},
		{"some nil", Some[*int](nil), `{"Case":"Some","Fields":[null]}`},
		{"some of some", Some(Some(1)), `{"Case":"Some","Fields":[{"Case":"Some","Fields":[1]}]}`},
		{"tuple", Pair(1, "a"), `{"Item1":1,"Item2":"a"}`},
		{"some union", Some[Figure](Dot{}), `{"Case":"Some","Fields":[{"Case":"Dot"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Marshal(tt.in)
			if err != nil {
				t.Fatalf("Marshal() error: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Marshal() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestVerbose_IgnoresNaming(t *testing.T) {
	s := NewVerbose(WithNaming(NamingCamelCase))

	got, err := s.Marshal(Circle{Radius: 1})
	require.NoError(t, err)
	require.Equal(t, `{"Case":"Circle","Fields":[1]}`, string(got))
}

func TestVerbose_RoundTrip(t *testing.T) {
	s := NewVerbose()

	roundTrip(t, s, Figure(Circle{Radius: 1.5}))
	roundTrip(t, s, Figure(Rect{Width: 2, Height: 3}))
	roundTrip(t, s, Figure(Dot{}))
	roundTrip(t, s, Oompa(&Lompa{Level: 7}))
	roundTrip(t, s, Maybe(SomeCase{Value: "v"}))
	roundTrip(t, s, None[int]())
	roundTrip(t, s, Some(42))
	roundTrip(t, s, Some[*int](nil))
	roundTrip(t, s, Some(Some(1)))
	roundTrip(t, s, Some(None[int]()))
	roundTrip(t, s, Some(Wrapper{Some: 1, Other: "x"}))
	roundTrip(t, s, Pair(1, "a"))
	roundTrip(t, s, Tuple8[int, int, int, int, int, int, int, Tuple2[int, int]]{1, 2, 3, 4, 5, 6, 7, Pair(8, 9)})
	roundTrip(t, s, Drawing{
		Title:  "d",
		Main:   Circle{Radius: 1},
		Accent: Some[Figure](Dot{}),
		Layers: []Figure{Rect{Width: 1, Height: 2}},
		Anchor: Pair(1, "a"),
		Note:   None[string](),
	})
}

func TestVerbose_UnmarshalLenient(t *testing.T) {
	s := NewVerbose()

	t.Run("member and case names ignore case", func(t *testing.T) {
		got, err := Deserialize[Figure](s, []byte(`{"case":"rect","fields":[2,3]}`))
		require.NoError(t, err)
		require.Equal(t, Figure(Rect{Width: 2, Height: 3}), got)
	})

	t.Run("explicit None", func(t *testing.T) {
		got, err := Deserialize[Option[int]](s, []byte(`{"Case":"None"}`))
		require.NoError(t, err)
		require.Equal(t, None[int](), got)
	})

	t.Run("null Fields", func(t *testing.T) {
		got, err := Deserialize[Figure](s, []byte(`{"Case":"Dot","Fields":null}`))
		require.NoError(t, err)
		require.Equal(t, Figure(Dot{}), got)
	})

	t.Run("array tuple", func(t *testing.T) {
		got, err := Deserialize[Tuple2[int, string]](s, []byte(`[1,"a"]`))
		require.NoError(t, err)
		require.Equal(t, Pair(1, "a"), got)
	})
}

func TestVerbose_UnmarshalErrors(t *testing.T) {
	s := NewVerbose()

	tests := []struct {
		name   string
		input  string
		decode func([]byte) error
		want   error
	}{
		{"compact case", `{"Circle":1}`, decodeAs[Figure](s), ErrMalformedUnion},
		{"bare name", `"Dot"`, decodeAs[Figure](s), ErrMalformedUnion},
		{"unknown case", `{"Case":"Hexagon"}`, decodeAs[Figure](s), ErrUnknownCase},
		{"non-string case", `{"Case":1}`, decodeAs[Figure](s), ErrMalformedUnion},
		{"fields not array", `{"Case":"Circle","Fields":1}`, decodeAs[Figure](s), ErrMalformedUnion},
		{"too few fields", `{"Case":"Rect","Fields":[1]}`, decodeAs[Figure](s), ErrArityMismatch},
		{"missing fields", `{"Case":"Circle"}`, decodeAs[Figure](s), ErrArityMismatch},
		{"compact some", `42`, decodeAs[Option[int]](s), ErrMalformedUnion},
		{"unknown option case", `{"Case":"Maybe"}`, decodeAs[Option[int]](s), ErrUnknownCase},
		{"some without field", `{"Case":"Some"}`, decodeAs[Option[int]](s), ErrArityMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.decode([]byte(tt.input))
			if !errors.Is(err, tt.want) {
				t.Errorf("Unmarshal(%s) error = %v, want %v", tt.input, err, tt.want)
			}
		})
	}
}
