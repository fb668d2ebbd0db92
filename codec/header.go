package codec

import (
	"github.com/cockroachdb/errors"
	"github.com/vmihailenco/msgpack/v5"
)

// WireNode is one node of the header tree emitted by the engine's
// serialize driver, rendering spec.md §3's common node prefix
// `(serializer_id, obj_id, num_subs, final) ⊕ H ⊕ child_headers?`:
//
//   - SerializerID/ObjID/HasID/NumSubs/Final are the common prefix.
//     HasID is false for values IdentityOf reports no stable identity
//     for (by-value primitives, strings); ObjID is meaningless when
//     HasID is false.
//   - Tail is the codec-specific header portion H.
//   - Children holds NumSubs child nodes when !Final, in the same
//     order the codec's Serial returned them in subs; buffers are
//     carried out of band in the flat buffer list that accompanies
//     the header rather than embedded here, which is what keeps large
//     payloads zero-copy. A Final node has no Children; its NumSubs
//     buffers are the next NumSubs entries of that flat list, in
//     traversal order.
type WireNode struct {
	SerializerID uint32     `msgpack:"id"`
	ObjID        uint32     `msgpack:"obj_id,omitempty"`
	HasID        bool       `msgpack:"has_id,omitempty"`
	NumSubs      int        `msgpack:"num_subs"`
	Final        bool       `msgpack:"final"`
	Tail         []any      `msgpack:"tail"`
	Children     []WireNode `msgpack:"children,omitempty"`
}

// WireHeader is the top-level artifact engine.Serialize returns: the
// root node plus the total number of buffers its descendants
// collectively propagated, in traversal order, matching the flat
// buffer list engine.Serialize returns alongside it.
type WireHeader struct {
	Root        WireNode `msgpack:"root"`
	BufferCount int      `msgpack:"buffer_count"`
}

// EncodeWireHeader msgpack-encodes h, per §6's note that the header
// itself may be passed through the same opaque-fallback encoding used
// for unregistered values rather than a bespoke format.
func EncodeWireHeader(h WireHeader) ([]byte, error) {
	data, err := msgpack.Marshal(h)
	if err != nil {
		return nil, errors.Wrap(err, "codec: encode wire header")
	}
	return data, nil
}

// DecodeWireHeader reverses EncodeWireHeader.
func DecodeWireHeader(data []byte) (WireHeader, error) {
	var h WireHeader
	if err := msgpack.Unmarshal(data, &h); err != nil {
		return WireHeader{}, errors.Wrap(err, "codec: decode wire header")
	}
	return h, nil
}
