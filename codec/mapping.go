package codec

// MappingSerializerID is the stable serializer ID for MappingCodec.
const MappingSerializerID uint32 = 6

// MappingLike is implemented by registered mapping-subclass types.
type MappingLike interface {
	MappingPairs() (keys, values []any)
	MappingTypeName() string
}

// MappingCodec implements the mapping rule (spec.md §4.C rule 2/3) for
// *Mapping and registered MappingLike subclasses that have a
// MappingConstructor. A MappingLike type registered without a
// constructor is, by spec.md §4.C rule 1 / §9 Open Question (ii),
// "not safely reconstructable element-wise": MappingCodec degrades it
// to a single opaque node via the embedded OpaqueCodec, bypassing dedup
// for its contents. This is preserved behavior, not a bug.
type MappingCodec struct {
	constructors map[string]MappingConstructor
	opaque       *OpaqueCodec
	noCtor       map[string]bool // MappingLike type names registered with a nil constructor
}

var _ Codec = (*MappingCodec)(nil)

// NewMappingCodec returns a MappingCodec backed by opaque for the
// degenerate subclass path.
func NewMappingCodec(opaque *OpaqueCodec) *MappingCodec {
	return &MappingCodec{
		constructors: make(map[string]MappingConstructor),
		noCtor:       make(map[string]bool),
		opaque:       opaque,
	}
}

// RegisterMappingSubclass teaches the codec how to reconstruct a
// mapping subclass identified by name. Passing a nil ctor registers the
// type as present but not element-wise reconstructable, routing it
// through the opaque fallback per spec.md §4.C rule 1.
func (c *MappingCodec) RegisterMappingSubclass(name string, ctor MappingConstructor) {
	if ctor == nil {
		c.noCtor[name] = true
		return
	}
	c.constructors[name] = ctor
}

func (c *MappingCodec) SerializerID() uint32 { return MappingSerializerID }

func (c *MappingCodec) Serial(ctx *Context, obj any) ([]any, []any, bool, error) {
	switch v := obj.(type) {
	case *Mapping:
		return c.serialPairs(v.Keys, v.Values, "")
	case MappingLike:
		name := v.MappingTypeName()
		if c.noCtor[name] {
			header, subs, final, err := c.opaque.Serial(ctx, obj)
			if err != nil {
				return nil, nil, false, err
			}
			return append([]any{"opaque", name}, header...), subs, final, nil
		}
		keys, values := v.MappingPairs()
		return c.serialPairs(keys, values, name)
	default:
		return nil, nil, false, MalformedHeaderError
	}
}

func (c *MappingCodec) serialPairs(keys, values []any, typeName string) ([]any, []any, bool, error) {
	keyResidual, keyPropIdx, keyChildren := partitionSequence(keys)
	valResidual, valPropIdx, valChildren := partitionSequence(values)
	tail := []any{"pairs", keyResidual, keyPropIdx, valResidual, valPropIdx, typeName}
	children := append(append([]any{}, keyChildren...), valChildren...)
	return tail, children, false, nil
}

func (c *MappingCodec) Deserial(ctx *Context, tail []any, subs []any) (any, error) {
	if len(tail) < 1 {
		return nil, MalformedHeaderError
	}
	mode, ok := tail[0].(string)
	if !ok {
		return nil, MalformedHeaderError
	}

	switch mode {
	case "opaque":
		if len(tail) < 2 {
			return nil, MalformedHeaderError
		}
		opaqueTail := tail[2:]
		return c.opaque.Deserial(ctx, opaqueTail, subs)

	case "pairs":
		if len(tail) != 6 {
			return nil, MalformedHeaderError
		}
		keyResidual, ok1 := tail[1].([]any)
		valResidual, ok2 := tail[3].([]any)
		typeName, _ := tail[5].(string)
		if !ok1 || !ok2 {
			return nil, MalformedHeaderError
		}
		keyPropIdx, err := toIntSlice(tail[2])
		if err != nil {
			return nil, err
		}
		valPropIdx, err := toIntSlice(tail[4])
		if err != nil {
			return nil, err
		}

		if len(keyPropIdx)+len(valPropIdx) != len(subs) {
			return nil, BufferCountMismatchError
		}
		keyChildren := subs[:len(keyPropIdx)]
		valChildren := subs[len(keyPropIdx):]

		// constructed mirrors tuple.go/list.go's pattern: a fixup firing
		// before construction just writes into keys/values (which
		// *Mapping keeps as its own backing arrays), one firing after
		// patches the constructed value directly for subclasses that
		// implement MappingFieldPatcher.
		var constructed any
		keys := make([]any, len(keyResidual))
		if err := scatterChildren(ctx, keyResidual, keyPropIdx, keyChildren, func(i int, v any) {
			keys[i] = v
			if constructed != nil {
				if patcher, ok := constructed.(MappingFieldPatcher); ok {
					patcher.PatchKey(i, v)
				}
			}
		}); err != nil {
			return nil, err
		}
		values := make([]any, len(valResidual))
		if err := scatterChildren(ctx, valResidual, valPropIdx, valChildren, func(i int, v any) {
			values[i] = v
			if constructed != nil {
				if patcher, ok := constructed.(MappingFieldPatcher); ok {
					patcher.PatchValue(i, v)
				}
			}
		}); err != nil {
			return nil, err
		}

		if typeName == "" {
			result := &Mapping{Keys: keys, Values: values}
			constructed = result
			return result, nil
		}
		ctor, ok := c.constructors[typeName]
		if !ok {
			return nil, MalformedHeaderError
		}
		result, err := ctor(keys, values)
		if err != nil {
			return nil, err
		}
		constructed = result
		return result, nil

	default:
		return nil, MalformedHeaderError
	}
}
