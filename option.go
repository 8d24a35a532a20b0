package crumb

import "reflect"

// Option holds either no value (None) or exactly one value (Some).
// The zero Option is None.
//
// Some(nil) is a distinct state for nullable T (pointers, interfaces, maps,
// slices) and survives a round trip: it is written as {"Some":null}.
type Option[T any] struct {
	value T
	some  bool
}

// Some returns an Option holding v.
func Some[T any](v T) Option[T] {
	return Option[T]{value: v, some: true}
}

// None returns an empty Option.
func None[T any]() Option[T] {
	return Option[T]{}
}

// Get returns the held value and whether there was one.
func (o Option[T]) Get() (T, bool) {
	return o.value, o.some
}

// IsSome reports whether o holds a value.
func (o Option[T]) IsSome() bool {
	return o.some
}

// IsNone reports whether o is empty.
func (o Option[T]) IsNone() bool {
	return !o.some
}

// OrElse returns the held value, or fallback when o is None.
func (o Option[T]) OrElse(fallback T) T {
	if o.some {
		return o.value
	}
	return fallback
}

// optionValue is implemented by every Option instantiation.
type optionValue interface {
	optionElem() reflect.Type
	optionPayload() (reflect.Value, bool)
}

// optionSetter is implemented by *Option[T].
type optionSetter interface {
	optionSet(v reflect.Value)
	optionClear()
}

var optionValueType = reflect.TypeFor[optionValue]()

func (o Option[T]) optionElem() reflect.Type {
	return reflect.TypeFor[T]()
}

func (o Option[T]) optionPayload() (reflect.Value, bool) {
	return reflect.ValueOf(&o.value).Elem(), o.some
}

func (o *Option[T]) optionSet(v reflect.Value) {
	reflect.ValueOf(&o.value).Elem().Set(v)
	o.some = true
}

func (o *Option[T]) optionClear() {
	var zero T
	o.value = zero
	o.some = false
}
