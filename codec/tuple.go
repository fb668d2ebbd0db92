package codec

// TupleSerializerID is the stable serializer ID for TupleCodec.
const TupleSerializerID uint32 = 4

// TupleCodec implements the collection rule (spec.md §4.C) for *Tuple
// and for registered named-tuple-like types (anything implementing
// TupleLike with a TupleConstructor registered via
// RegisterNamedTuple). Header shape:
//
//	(residual []any, propIdx []int, typeName string)
//
// typeName is empty for the built-in *Tuple; non-empty names a
// registered named-tuple-like type, reconstructed through its
// constructor rather than by populating *Tuple directly.
type TupleCodec struct {
	constructors map[string]TupleConstructor
}

var _ Codec = (*TupleCodec)(nil)

// NewTupleCodec returns a TupleCodec with no named-tuple constructors
// registered; only *Tuple is handled until RegisterNamedTuple is called.
func NewTupleCodec() *TupleCodec {
	return &TupleCodec{constructors: make(map[string]TupleConstructor)}
}

// RegisterNamedTuple teaches the codec how to reconstruct a named-tuple-
// like type identified by name: elements are extracted via
// TupleLike.TupleValues() on serialize, and rebuilt via ctor on
// deserialize.
func (c *TupleCodec) RegisterNamedTuple(name string, ctor TupleConstructor) {
	c.constructors[name] = ctor
}

func (c *TupleCodec) SerializerID() uint32 { return TupleSerializerID }

func (c *TupleCodec) Serial(_ *Context, obj any) ([]any, []any, bool, error) {
	switch v := obj.(type) {
	case *Tuple:
		residual, propIdx, children := partitionSequence(v.Items)
		return []any{residual, propIdx, ""}, children, false, nil
	case TupleLike:
		items := v.TupleValues()
		residual, propIdx, children := partitionSequence(items)
		return []any{residual, propIdx, v.TupleTypeName()}, children, false, nil
	default:
		return nil, nil, false, MalformedHeaderError
	}
}

func (c *TupleCodec) Deserial(ctx *Context, tail []any, subs []any) (any, error) {
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

	if typeName == "" {
		items := make([]any, len(residual))
		result := &Tuple{Items: items}
		err := scatterChildren(ctx, residual, propIdx, subs, func(i int, v any) {
			result.Items[i] = v
		})
		return result, err
	}

	ctor, ok := c.constructors[typeName]
	if !ok {
		return nil, MalformedHeaderError
	}
	values := make([]any, len(residual))
	var constructed any
	if err := scatterChildren(ctx, residual, propIdx, subs, func(i int, v any) {
		values[i] = v
		// A fixup firing after ctor already ran (a forward reference or
		// cycle) can no longer reach the caller through values, which
		// ctor has already consumed; patch the constructed value
		// directly if it supports that.
		if constructed != nil {
			if patcher, ok := constructed.(FieldPatcher); ok {
				patcher.PatchField(i, v)
			}
		}
	}); err != nil {
		return nil, err
	}
	result, err := ctor(values)
	if err != nil {
		return nil, err
	}
	constructed = result
	return result, nil
}

func toIntSlice(v any) ([]int, error) {
	switch s := v.(type) {
	case nil:
		// A nil []int (no propagated children) decodes from msgpack as an
		// untyped nil rather than an empty array.
		return nil, nil
	case []int:
		return s, nil
	case []any:
		out := make([]int, len(s))
		for i, x := range s {
			n, ok := toInt(x)
			if !ok {
				return nil, MalformedHeaderError
			}
			out[i] = n
		}
		return out, nil
	default:
		return nil, MalformedHeaderError
	}
}

// toInt coerces any integer-shaped value to an int. Callers see values
// in two different shapes depending on whether a header crossed the
// wire: a live Go []any (Serialize feeding Deserialize directly within
// one process) carries the exact type a Serial implementation emitted
// (e.g. uint32 for a Placeholder.ID), while a msgpack-decoded header
// (transport/redisbuf's round trip) carries whatever integer width
// vmihailenco/msgpack chose to decode into (int8/uint8/.../uint64).
// Every width msgpack or Go itself can produce here is accepted.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		return int(n), true
	case float32:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}
