package codec

// BytesSerializerID is the stable serializer ID for BytesCodec.
const BytesSerializerID uint32 = 2

// InlineThreshold is the unit threshold under which a string or byte
// slice is inlined into a collection's residual header rather than
// propagated as its own child node, per the collection rule in
// spec.md §4.C.
const InlineThreshold = 1024

// BytesCodec carries a []byte as a single zero-copy buffer: the header
// is empty, and the buffer is the slice itself (a borrowed view, not a
// copy, into the caller's memory).
type BytesCodec struct{}

var _ Codec = BytesCodec{}

func (BytesCodec) SerializerID() uint32 { return BytesSerializerID }

func (BytesCodec) Serial(_ *Context, obj any) ([]any, []any, bool, error) {
	b, ok := obj.([]byte)
	if !ok {
		return nil, nil, false, MalformedHeaderError
	}
	return []any{}, []any{b}, true, nil
}

func (BytesCodec) Deserial(_ *Context, tail []any, subs []any) (any, error) {
	if len(tail) != 0 {
		return nil, MalformedHeaderError
	}
	if len(subs) != 1 {
		return nil, BufferCountMismatchError
	}
	buf, err := coerceBuffer(subs[0])
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// coerceBuffer accepts any of the buffer shapes spec.md §6 requires a
// deserializer to tolerate: []byte, or anything with a Bytes() []byte
// method (the idiomatic Go stand-in for "a memoryview or any object
// exposing a contiguous read-only buffer protocol").
func coerceBuffer(v any) ([]byte, error) {
	switch b := v.(type) {
	case []byte:
		return b, nil
	case interface{ Bytes() []byte }:
		return b.Bytes(), nil
	case string:
		return []byte(b), nil
	default:
		return nil, MalformedHeaderError
	}
}
