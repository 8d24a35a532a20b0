package crumb

import "reflect"

// Tuples are fixed-arity heterogeneous sequences. They are written as JSON
// arrays, or as objects keyed Item1..Item7 and Rest under TupleLegacyObject.
// Tuple8 carries its eighth and later elements in Rest, which should itself be
// a tuple; array encoding flattens Rest into the enclosing array.

// tupleValue marks the tuple types.
type tupleValue interface {
	tupleArity() int
}

var tupleValueType = reflect.TypeFor[tupleValue]()

// Tuple2 is a pair.
type Tuple2[T1, T2 any] struct {
	Item1 T1
	Item2 T2
}

// Tuple3 is a triple.
type Tuple3[T1, T2, T3 any] struct {
	Item1 T1
	Item2 T2
	Item3 T3
}

// Tuple4 is a 4-tuple.
type Tuple4[T1, T2, T3, T4 any] struct {
	Item1 T1
	Item2 T2
	Item3 T3
	Item4 T4
}

// Tuple5 is a 5-tuple.
type Tuple5[T1, T2, T3, T4, T5 any] struct {
	Item1 T1
	Item2 T2
	Item3 T3
	Item4 T4
	Item5 T5
}

// Tuple6 is a 6-tuple.
type Tuple6[T1, T2, T3, T4, T5, T6 any] struct {
	Item1 T1
	Item2 T2
	Item3 T3
	Item4 T4
	Item5 T5
	Item6 T6
}

// Tuple7 is a 7-tuple.
type Tuple7[T1, T2, T3, T4, T5, T6, T7 any] struct {
	Item1 T1
	Item2 T2
	Item3 T3
	Item4 T4
	Item5 T5
	Item6 T6
	Item7 T7
}

// Tuple8 is a 7-tuple followed by a Rest tuple.
type Tuple8[T1, T2, T3, T4, T5, T6, T7, TRest any] struct {
	Item1 T1
	Item2 T2
	Item3 T3
	Item4 T4
	Item5 T5
	Item6 T6
	Item7 T7
	Rest  TRest
}

// Pair returns a Tuple2.
func Pair[T1, T2 any](a T1, b T2) Tuple2[T1, T2] {
	return Tuple2[T1, T2]{Item1: a, Item2: b}
}

// Triple returns a Tuple3.
func Triple[T1, T2, T3 any](a T1, b T2, c T3) Tuple3[T1, T2, T3] {
	return Tuple3[T1, T2, T3]{Item1: a, Item2: b, Item3: c}
}

func (Tuple2[T1, T2]) tupleArity() int { return 2 }
func (Tuple3[T1, T2, T3]) tupleArity() int { return 3 }
func (Tuple4[T1, T2, T3, T4]) tupleArity() int { return 4 }
func (Tuple5[T1, T2, T3, T4, T5]) tupleArity() int { return 5 }
func (Tuple6[T1, T2, T3, T4, T5, T6]) tupleArity() int { return 6 }
func (Tuple7[T1, T2, T3, T4, T5, T6, T7]) tupleArity() int { return 7 }
func (Tuple8[T1, T2, T3, T4, T5, T6, T7, TRest]) tupleArity() int { return 8 }
