package codec

import "reflect"

var (
	tupleType   = reflect.TypeOf((*Tuple)(nil))
	listType    = reflect.TypeOf((*List)(nil))
	mappingType = reflect.TypeOf((*Mapping)(nil))

	tupleLikeType   = reflect.TypeOf((*TupleLike)(nil)).Elem()
	listLikeType    = reflect.TypeOf((*ListLike)(nil)).Elem()
	mappingLikeType = reflect.TypeOf((*MappingLike)(nil)).Elem()
)

// NewDefaultDispatcher wires the eight built-in codecs (§4.F): opaque
// bound as the universal fallback, primitive bound to every concrete
// primitive type, bytes/text to []byte/string, and tuple/list/mapping
// to both their built-in pointer type and their respective *Like
// interface (so a registered subclass resolves to the same codec as
// the built-in container without an exact-type entry per subclass).
func NewDefaultDispatcher() *Dispatcher {
	d := NewDispatcher()

	opaque := NewOpaqueCodec()
	primitive := PrimitiveCodec{}
	bytesCodec := BytesCodec{}
	textCodec := TextCodec{}
	tuple := NewTupleCodec()
	list := NewListCodec()
	mapping := NewMappingCodec(opaque)
	placeholder := PlaceholderCodec{}

	d.RegisterFallback(opaque)

	for _, t := range primitiveTypes() {
		d.Register(t, primitive)
	}

	d.Register(reflect.TypeOf([]byte(nil)), bytesCodec)
	d.Register(reflect.TypeOf(""), textCodec)

	d.Register(tupleType, tuple)
	d.Register(listType, list)
	d.Register(mappingType, mapping)
	d.Register(reflect.TypeOf(Placeholder{}), placeholder)

	d.RegisterInterface(tupleLikeType, tuple)
	d.RegisterInterface(listLikeType, list)
	d.RegisterInterface(mappingLikeType, mapping)

	return d
}
