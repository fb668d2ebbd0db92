package codec

// ListSerializerID is the stable serializer ID for ListCodec.
const ListSerializerID uint32 = 5

// ListCodec implements the collection rule (spec.md §4.C) for *List and
// for registered list-subclass types (anything implementing ListLike
// with a ListConstructor registered via RegisterListSubclass). Header
// shape mirrors TupleCodec's: (residual, propIdx, typeName).
type ListCodec struct {
	constructors map[string]ListConstructor
}

var _ Codec = (*ListCodec)(nil)

// NewListCodec returns a ListCodec with no subclass constructors
// registered; only *List is handled until RegisterListSubclass is
// called.
func NewListCodec() *ListCodec {
	return &ListCodec{constructors: make(map[string]ListConstructor)}
}

// RegisterListSubclass teaches the codec how to reconstruct a list
// subclass identified by name.
func (c *ListCodec) RegisterListSubclass(name string, ctor ListConstructor) {
	c.constructors[name] = ctor
}

func (c *ListCodec) SerializerID() uint32 { return ListSerializerID }

func (c *ListCodec) Serial(_ *Context, obj any) ([]any, []any, bool, error) {
	switch v := obj.(type) {
	case *List:
		residual, propIdx, children := partitionSequence(v.Items)
		return []any{residual, propIdx, ""}, children, false, nil
	case ListLike:
		residual, propIdx, children := partitionSequence(v.ListItems())
		return []any{residual, propIdx, v.ListTypeName()}, children, false, nil
	default:
		return nil, nil, false, MalformedHeaderError
	}
}

func (c *ListCodec) Deserial(ctx *Context, tail []any, subs []any) (any, error) {
	if len(tail) != 3 {
		return nil, MalformedHeaderError
	}
	residual, ok := tail[0].([]any)
	if !ok {
		return nil, MalformedHeaderError
	}
	propIdx, err := toIntSlice(tail[1])
	if err != nil {
		return nil, err
	}
	typeName, _ := tail[2].(string)

	items := make([]any, len(residual))
	// constructed is set once the final value exists; a fixup firing
	// before that point just writes into items (which *List keeps as
	// its own backing array, so that case needs nothing further), while
	// one firing after construction patches the constructed value
	// directly for subclasses that support it (see FieldPatcher).
	var constructed any
	if err := scatterChildren(ctx, residual, propIdx, subs, func(i int, v any) {
		items[i] = v
		if constructed != nil {
			if patcher, ok := constructed.(FieldPatcher); ok {
				patcher.PatchField(i, v)
			}
		}
	}); err != nil {
		return nil, err
	}

	if typeName == "" {
		result := &List{Items: items}
		constructed = result
		return result, nil
	}
	ctor, ok := c.constructors[typeName]
	if !ok {
		return nil, MalformedHeaderError
	}
	result, err := ctor(items)
	if err != nil {
		return nil, err
	}
	constructed = result
	return result, nil
}
