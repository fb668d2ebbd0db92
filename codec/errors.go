package codec

import "github.com/cockroachdb/errors"

// Input errors, surfaced to the caller verbatim per spec.md §7.
var (
	// NoHandlerError indicates the dispatcher has no codec registered
	// for a value's type, nor for any interface it implements, and no
	// fallback is bound. In practice this never fires once the opaque
	// codec is registered against the universal fallback slot.
	NoHandlerError = errors.New("codec: no handler registered for type")

	// UnknownSerializerIdError indicates a wire node names a
	// serializer ID that is not present in the deserializing process's
	// dispatcher. This is an internal invariant violation, not a
	// caller mistake, when both sides share a registry bootstrap.
	UnknownSerializerIdError = errors.New("codec: unknown serializer id")

	// MalformedHeaderError indicates a wire header's shape does not
	// match what its serializer ID's codec expects.
	MalformedHeaderError = errors.New("codec: malformed header")

	// BufferCountMismatchError indicates a final node's declared
	// subcomponent count does not match the number of buffers actually
	// available to satisfy it.
	BufferCountMismatchError = errors.New("codec: buffer count mismatch")
)

// ErrPlaceholder indicates a deserialized value resolved to an
// unreconstructed Placeholder with no pending fixup able to patch it
// in later — an internal invariant violation (§7: "placeholder with no
// callbacks but referenced"), not something a well-formed call ever
// produces. It is never returned by Serial or Deserial directly; the
// driver's dedup step substitutes a Placeholder value and re-dispatches
// on it through the ordinary PlaceholderCodec path instead of
// signalling through an error.
var ErrPlaceholder = errors.New("codec: placeholder left unresolved")
