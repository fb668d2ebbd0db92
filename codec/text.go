package codec

// TextSerializerID is the stable serializer ID for TextCodec.
const TextSerializerID uint32 = 3

// TextCodec carries a string as a single UTF-8-encoded buffer, decoding
// back to a string on load.
type TextCodec struct{}

var _ Codec = TextCodec{}

func (TextCodec) SerializerID() uint32 { return TextSerializerID }

func (TextCodec) Serial(_ *Context, obj any) ([]any, []any, bool, error) {
	s, ok := obj.(string)
	if !ok {
		return nil, nil, false, MalformedHeaderError
	}
	return []any{}, []any{[]byte(s)}, true, nil
}

func (TextCodec) Deserial(_ *Context, tail []any, subs []any) (any, error) {
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
	return string(buf), nil
}
