package crumb

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for serializer events.
var (
	SignalSerializerCreated = capitan.NewSignal("crumb.serializer.created", "Serializer instantiated")
	SignalUnionRegistered   = capitan.NewSignal("crumb.union.registered", "Union type registered")
	SignalShapeComputed     = capitan.NewSignal("crumb.shape.computed", "Shape descriptor computed and cached")
	SignalMarshalComplete   = capitan.NewSignal("crumb.marshal.complete", "Marshal operation finished")
	SignalUnmarshalComplete = capitan.NewSignal("crumb.unmarshal.complete", "Unmarshal operation finished")
	SignalDecodeFallback    = capitan.NewSignal("crumb.decode.fallback", "Compact decode failed, retrying verbose")
)

// Keys for typed event data.
var (
	KeyFormat        = capitan.NewStringKey("format")
	KeyTupleEncoding = capitan.NewStringKey("tuple_encoding")
	KeyNaming        = capitan.NewStringKey("naming")
	KeyTypeName      = capitan.NewStringKey("type_name")
	KeyShapeKind     = capitan.NewStringKey("shape_kind")
	KeyFingerprint   = capitan.NewStringKey("fingerprint")
	KeyCaseCount     = capitan.NewIntKey("case_count")
	KeySize          = capitan.NewIntKey("size")
	KeyDuration      = capitan.NewDurationKey("duration")
	KeyError         = capitan.NewErrorKey("error")
)

// emitSerializerCreated emits an event when a serializer is created.
func emitSerializerCreated(format Format, tuples TupleEncoding, naming Naming) {
	capitan.Emit(context.Background(), SignalSerializerCreated,
		KeyFormat.Field(string(format)),
		KeyTupleEncoding.Field(string(tuples)),
		KeyNaming.Field(string(naming)),
	)
}

// emitUnionRegistered emits an event when a union is registered.
func emitUnionRegistered(union *Shape) {
	capitan.Emit(context.Background(), SignalUnionRegistered,
		KeyTypeName.Field(union.Name),
		KeyCaseCount.Field(len(union.Cases)),
		KeyFingerprint.Field(union.Fingerprint),
	)
}

// emitShapeComputed emits an event the first time a shape is cached.
func emitShapeComputed(s *Shape) {
	capitan.Emit(context.Background(), SignalShapeComputed,
		KeyTypeName.Field(s.Name),
		KeyShapeKind.Field(s.Kind.String()),
		KeyFingerprint.Field(s.Fingerprint),
	)
}

// emitMarshalComplete emits an event when marshal finishes.
func emitMarshalComplete(format Format, typeName string, size int, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyFormat.Field(string(format)),
		KeyTypeName.Field(typeName),
		KeySize.Field(size),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(context.Background(), SignalMarshalComplete, fields...)
	} else {
		capitan.Emit(context.Background(), SignalMarshalComplete, fields...)
	}
}

// emitUnmarshalComplete emits an event when unmarshal finishes.
func emitUnmarshalComplete(format Format, typeName string, size int, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyFormat.Field(string(format)),
		KeyTypeName.Field(typeName),
		KeySize.Field(size),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(context.Background(), SignalUnmarshalComplete, fields...)
	} else {
		capitan.Emit(context.Background(), SignalUnmarshalComplete, fields...)
	}
}

// emitDecodeFallback emits an event when the compact attempt is abandoned.
func emitDecodeFallback(typeName string, cause error) {
	capitan.Emit(context.Background(), SignalDecodeFallback,
		KeyTypeName.Field(typeName),
		KeyError.Field(cause),
	)
}
