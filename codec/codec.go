// Package codec implements the type-dispatch registry, the built-in
// serializers, and the placeholder/dedup bookkeeping that the engine
// package's explicit-stack driver traverses.
package codec

import "hash/fnv"

// Codec is the protocol every serializer implements: a stateless,
// reversible mapping between a Go value and a (header, subcomponents,
// final) triple.
//
// Serial turns obj into a header and an ordered list of subcomponents.
// final reports whether subs holds raw buffers (true) or values that
// still require recursive serialization (false). The driver, not the
// codec, performs the identity-dedup check described in §4.D before
// calling Serial; a codec never needs to special-case re-occurring
// identities itself.
//
// Deserial rebuilds the object from the codec-specific header tail
// (the portion after the common four-field prefix) and the already
// resolved subcomponents (or raw buffers, when the node was final).
type Codec interface {
	SerializerID() uint32
	Serial(ctx *Context, obj any) (header []any, subs []any, final bool, err error)
	Deserial(ctx *Context, tail []any, subs []any) (any, error)
}

// DeriveSerializerID hashes a codec's fully-qualified name into a
// stable 31-bit serializer ID with FNV-1a. A codec that does not pin an
// explicit ID can return this from its own SerializerID method; the
// dispatcher never calls it and does not check for an ID inherited
// through an embedded codec.
func DeriveSerializerID(name string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	return h.Sum32() & 0x7fffffff
}

// Tuple is the built-in ordered, fixed-arity heterogeneous sequence.
// It is always handled through its pointer type so that identity-based
// dedup and cycle detection (§4.D) have something to key on; Go slices
// are copied by value when boxed into any and so cannot carry a stable
// identity on their own.
type Tuple struct {
	Items []any
}

// List is the built-in ordered, mutable sequence.
type List struct {
	Items []any
}

// Mapping is the built-in ordered key/value collection. Key/value order
// is insertion order, mirroring the host language's dict semantics that
// spec.md assumes; pairs are stored in two parallel slices rather than a
// native Go map so that serialization order is deterministic and
// placeholder fixups can target a pair by index.
type Mapping struct {
	Keys   []any
	Values []any
}

// Len reports the number of key/value pairs.
func (m *Mapping) Len() int { return len(m.Keys) }

// Placeholder stands in for the second and later occurrences of an
// object identity within one serialize call. ID is the truncated
// identity hash (§3's obj_id) of the object it stands in for.
type Placeholder struct {
	ID uint32
}

// PrimitiveFunc is a narrow, explicitly registered function type
// carried by PrimitiveCodec. spec.md §9 Open Question (iii) retains
// "primitives include builtin-functions" verbatim without generalizing
// it to arbitrary callables; PrimitiveFunc is the one function shape
// the primitive codec recognizes, and it is never matched structurally
// against other func types.
type PrimitiveFunc func() any

// MappingConstructor rebuilds a registered mapping subclass from its
// ordered key/value pairs. When a mapping type is registered with a nil
// constructor (RegisterMappingSubclass(name, nil)), MappingCodec falls
// back to the opaque codec for the whole value — spec.md §4.C rule 1 /
// §9 Open Question (ii), preserved here rather than fixed. A MappingLike
// type that was never registered is serialized pair-wise, and its
// deserialization fails with MalformedHeaderError.
type MappingConstructor func(keys, values []any) (any, error)

// TupleLike is implemented by named-tuple-like registered struct types
// so TupleCodec can decompose and, via a registered constructor,
// reconstruct them field by field instead of falling back to the
// opaque codec.
type TupleLike interface {
	TupleFields() []string
	TupleValues() []any
	TupleTypeName() string
}

// TupleConstructor rebuilds a registered named-tuple-like type from its
// field values, in the same order TupleLike.TupleValues returned them.
type TupleConstructor func(values []any) (any, error)

// ListLike is implemented by registered list-subclass types so
// ListCodec can decompose them with the same collection rule it uses
// for *List, then reconstruct them with a single-argument constructor
// (spec.md §4.C: "Subclass reconstructed via single-arg constructor").
type ListLike interface {
	ListItems() []any
	ListTypeName() string
}

// ListConstructor rebuilds a registered list-subclass type from its
// full, already-deserialized item slice.
type ListConstructor func(items []any) (any, error)

// FieldPatcher is an optional interface a registered tuple/list
// subclass's constructed value may implement to receive a forward
// reference or cycle's real value once it resolves *after* the
// constructor already ran. idx is the same element index
// TupleValues/ListItems reported on serialize. The built-in *Tuple/
// *List/*Mapping containers don't need this — they patch their own
// Items slice in place via their returned pointer — but an arbitrary
// subclass constructor may have copied values out of the slice it was
// given, so a late-resolving slot needs an explicit way back in. A
// subclass that doesn't implement FieldPatcher simply keeps whatever
// value (typically a Placeholder) occupied that slot at construction
// time, the same spirit as spec.md's mapping-subclass-without-
// constructor opaque degradation.
type FieldPatcher interface {
	PatchField(idx int, v any)
}

// MappingFieldPatcher is FieldPatcher's analogue for mapping subclasses,
// which need to distinguish a late-resolving key from a late-resolving
// value at the same index.
type MappingFieldPatcher interface {
	PatchKey(idx int, v any)
	PatchValue(idx int, v any)
}
