package codec

import (
	"reflect"
	"time"
)

// PrimitiveSerializerID is the stable serializer ID for PrimitiveCodec.
const PrimitiveSerializerID uint32 = 1

// PrimitiveCodec handles nil, bool, every integer/float/complex kind,
// time.Time, time.Duration, and the narrow PrimitiveFunc type, carrying
// the value inline in the header rather than as a buffer. It never
// needs deduplication: the driver only consults Context.Seen for types
// that have a Go-level identity (see IdentityOf), and none of these do.
type PrimitiveCodec struct{}

var _ Codec = PrimitiveCodec{}

func (PrimitiveCodec) SerializerID() uint32 { return PrimitiveSerializerID }

func (PrimitiveCodec) Serial(_ *Context, obj any) ([]any, []any, bool, error) {
	return []any{obj}, nil, true, nil
}

func (PrimitiveCodec) Deserial(_ *Context, tail []any, _ []any) (any, error) {
	if len(tail) != 1 {
		return nil, MalformedHeaderError
	}
	return tail[0], nil
}

// IsPrimitive reports whether v's runtime type is one PrimitiveCodec
// handles directly. Used by the collection rule (§4.C) to decide
// whether an element may be inlined rather than propagated.
func IsPrimitive(v any) bool {
	if v == nil {
		return true
	}
	switch v.(type) {
	case bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, uintptr,
		float32, float64,
		complex64, complex128,
		time.Time, time.Duration,
		PrimitiveFunc:
		return true
	}
	return false
}

// primitiveTypes returns the reflect.Type of every kind PrimitiveCodec
// binds to at bootstrap; see NewDefaultDispatcher.
func primitiveTypes() []reflect.Type {
	return []reflect.Type{
		reflect.TypeOf(false),
		reflect.TypeOf(int(0)), reflect.TypeOf(int8(0)), reflect.TypeOf(int16(0)), reflect.TypeOf(int32(0)), reflect.TypeOf(int64(0)),
		reflect.TypeOf(uint(0)), reflect.TypeOf(uint8(0)), reflect.TypeOf(uint16(0)), reflect.TypeOf(uint32(0)), reflect.TypeOf(uint64(0)), reflect.TypeOf(uintptr(0)),
		reflect.TypeOf(float32(0)), reflect.TypeOf(float64(0)),
		reflect.TypeOf(complex64(0)), reflect.TypeOf(complex128(0)),
		reflect.TypeOf(time.Time{}), reflect.TypeOf(time.Duration(0)),
		reflect.TypeOf(PrimitiveFunc(nil)),
	}
}
