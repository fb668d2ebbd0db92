package codec

import (
	"github.com/cockroachdb/errors"
	"github.com/vmihailenco/msgpack/v5"
)

// OpaqueSerializerID is the stable serializer ID for OpaqueCodec.
const OpaqueSerializerID uint32 = 0

// OpaqueCodec is the universal root-type fallback (spec.md §4.C codec
// 0, §6's "opaque fallback contract"): it produces a single
// self-describing prefix buffer that round-trips an otherwise
// unregistered value. The teacher's JSONSerializer filled this role
// with canonical JSON driven by per-field StructMetadata, which cannot
// work for a value the registry has never seen the shape of; msgpack's
// reflection-based codec can encode and decode arbitrary Go values
// into `any` without that metadata, so it is used here instead (see
// DESIGN.md).
type OpaqueCodec struct {
	// targets holds the type-name constructors recorded by
	// RegisterTarget. Deserial does not consult it: the header carries
	// no type name, and Deserial always decodes into a generic any.
	targets map[string]func() any
}

var _ Codec = (*OpaqueCodec)(nil)

// NewOpaqueCodec returns an OpaqueCodec with no registered concrete
// target types. Deserial produces a generic any (a map[string]any for a
// struct value) whether or not RegisterTarget is used.
func NewOpaqueCodec() *OpaqueCodec {
	return &OpaqueCodec{targets: make(map[string]func() any)}
}

// RegisterTarget records new_ as the constructor for the type named
// name. Deserial does not use these records: it always decodes into a
// generic any (typically a map[string]any), which is sufficient for data
// passed through but not reflected back into a specific struct type. To
// decode into a concrete type, use DecodeInto.
func (c *OpaqueCodec) RegisterTarget(name string, new_ func() any) {
	c.targets[name] = new_
}

func (c *OpaqueCodec) SerializerID() uint32 { return OpaqueSerializerID }

func (c *OpaqueCodec) Serial(_ *Context, obj any) ([]any, []any, bool, error) {
	data, err := msgpack.Marshal(obj)
	if err != nil {
		return nil, nil, false, errors.Wrap(err, "codec: opaque encode")
	}
	return []any{}, []any{data}, true, nil
}

func (c *OpaqueCodec) Deserial(_ *Context, tail []any, subs []any) (any, error) {
	if len(tail) != 0 {
		return nil, MalformedHeaderError
	}
	if len(subs) == 0 {
		return nil, BufferCountMismatchError
	}
	buf, err := coerceBuffer(subs[0])
	if err != nil {
		return nil, err
	}

	var out any
	if err := msgpack.Unmarshal(buf, &out); err != nil {
		return nil, errors.Wrap(err, "codec: opaque decode")
	}
	return out, nil
}

// DecodeInto decodes an opaque-fallback buffer into a concrete target,
// bypassing the generic any path Deserial uses. Callers that know the
// expected Go type (e.g. a transport demo round-tripping a known
// struct) use this directly instead of going through the dispatcher.
func (c *OpaqueCodec) DecodeInto(buf []byte, target any) error {
	if err := msgpack.Unmarshal(buf, target); err != nil {
		return errors.Wrap(err, "codec: opaque decode into target")
	}
	return nil
}
