package codec

// PlaceholderSerializerID is the stable serializer ID for
// PlaceholderCodec.
const PlaceholderSerializerID uint32 = 7

// PlaceholderCodec serializes/deserializes the Placeholder stand-in
// itself (§4.C codec 7). The driver, not this codec, decides when to
// emit a placeholder in the first place (see Context.Seen); this codec
// only needs to carry the referenced objID across the wire and, on
// load, resolve it against whatever has already materialized.
type PlaceholderCodec struct{}

var _ Codec = PlaceholderCodec{}

func (PlaceholderCodec) SerializerID() uint32 { return PlaceholderSerializerID }

func (PlaceholderCodec) Serial(_ *Context, obj any) ([]any, []any, bool, error) {
	ph, ok := obj.(Placeholder)
	if !ok {
		return nil, nil, false, MalformedHeaderError
	}
	return []any{ph.ID}, nil, true, nil
}

// Deserial returns the context's already-resolved value for id when one
// exists, otherwise a fresh Placeholder{ID: id} for the caller to patch
// up later through Context.AddFixup, per spec.md §4.C codec 7's note:
// "returns the context's value for id, or a fresh placeholder to be
// fixed up later."
func (PlaceholderCodec) Deserial(ctx *Context, tail []any, _ []any) (any, error) {
	if len(tail) != 1 {
		return nil, MalformedHeaderError
	}
	id, ok := toInt(tail[0])
	if !ok {
		return nil, MalformedHeaderError
	}
	objID := uint32(id)
	if real, ok := ctx.Value(objID); ok {
		return real, nil
	}
	return Placeholder{ID: objID}, nil
}
