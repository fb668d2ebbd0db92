package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/graphwire/graphwire/codec"
)

func freshDriver() *Driver {
	return NewDriver(codec.NewDefaultDispatcher(), nil)
}

func TestSerializeDeserializeRoundTripPrimitive(t *testing.T) {
	drv := freshDriver()
	header, buffers, err := drv.Serialize(nil, 42)
	require.NoError(t, err)

	got, err := drv.Deserialize(nil, header, buffers)
	require.NoError(t, err)
	require.Equal(t, 42, got)
}

func TestSerializeDeserializeRoundTripBytes(t *testing.T) {
	drv := freshDriver()
	src := []byte("hello, graphwire")
	header, buffers, err := drv.Serialize(nil, src)
	require.NoError(t, err)
	require.Equal(t, 1, header.BufferCount)

	got, err := drv.Deserialize(nil, header, buffers)
	require.NoError(t, err)
	require.Equal(t, src, got)
}

// Serializing the same flat list twice yields equal headers and equal
// buffer lists (determinism).
func TestSerializeIsDeterministic(t *testing.T) {
	drv := freshDriver()
	val := &codec.List{Items: []any{1, "two", []byte{3, 4}}}

	h1, b1, err := drv.Serialize(nil, val)
	require.NoError(t, err)
	h2, b2, err := drv.Serialize(nil, val)
	require.NoError(t, err)

	require.Equal(t, h1, h2)
	require.Equal(t, b1, b2)
}

// scenario 4: x=[1,2]; serialize([x,x]) — outer list has two children
// both placeholders after the first is expanded; deserialize yields
// y=[z,z'] with z is z' and z == [1,2].
func TestDedupSharedReference(t *testing.T) {
	drv := freshDriver()
	x := &codec.List{Items: []any{1, 2}}
	outer := &codec.List{Items: []any{x, x}}

	header, buffers, err := drv.Serialize(nil, outer)
	require.NoError(t, err)

	require.False(t, header.Root.Children[1].HasID)
	require.Equal(t, codec.PlaceholderSerializerID, header.Root.Children[1].SerializerID)

	got, err := drv.Deserialize(nil, header, buffers)
	require.NoError(t, err)

	y, ok := got.(*codec.List)
	require.True(t, ok)
	require.Len(t, y.Items, 2)

	z, ok := y.Items[0].(*codec.List)
	require.True(t, ok)
	zPrime, ok := y.Items[1].(*codec.List)
	require.True(t, ok)

	require.True(t, z == zPrime, "both occurrences must resolve to the identical pointer")
	require.Equal(t, []any{1, 2}, z.Items)
}

// scenario 5: a=[]; a.append(a); serialize(a) — one node with a
// placeholder child; deserialize yields b with b[0] is b.
func TestSerializeDeserializeSelfReferentialList(t *testing.T) {
	drv := freshDriver()
	a := &codec.List{Items: make([]any, 1)}
	a.Items[0] = a

	header, buffers, err := drv.Serialize(nil, a)
	require.NoError(t, err)
	require.False(t, header.Root.Final)
	require.Len(t, header.Root.Children, 1)
	require.Equal(t, codec.PlaceholderSerializerID, header.Root.Children[0].SerializerID)

	got, err := drv.Deserialize(nil, header, buffers)
	require.NoError(t, err)

	b, ok := got.(*codec.List)
	require.True(t, ok)
	require.Len(t, b.Items, 1)
	require.True(t, b.Items[0].(*codec.List) == b, "b[0] must be b itself")
}

// patchableBag is a registered list subclass whose constructor copies
// its items out of the slice it's handed, so a forward reference that
// only resolves after the constructor has already run can't be
// recovered by mutating that slice; it must come in through
// codec.FieldPatcher instead.
type patchableBag struct {
	items []any
}

func (p *patchableBag) ListItems() []any     { return p.items }
func (p *patchableBag) ListTypeName() string { return "patchableBag" }
func (p *patchableBag) PatchField(idx int, v any) {
	p.items[idx] = v
}

func TestSerializeDeserializeSelfReferentialListSubclass(t *testing.T) {
	dispatcher := codec.NewDefaultDispatcher()
	listCodec, err := dispatcher.ByID(codec.ListSerializerID)
	require.NoError(t, err)
	lc, ok := listCodec.(*codec.ListCodec)
	require.True(t, ok)
	lc.RegisterListSubclass("patchableBag", func(items []any) (any, error) {
		// Copy items out, the way a constructor that builds its own
		// backing storage would, so patching the original slice alone
		// would not be visible on the returned value.
		own := make([]any, len(items))
		copy(own, items)
		return &patchableBag{items: own}, nil
	})
	drv := NewDriver(dispatcher, nil)

	a := &patchableBag{items: make([]any, 1)}
	a.items[0] = a

	header, buffers, err := drv.Serialize(nil, a)
	require.NoError(t, err)

	got, err := drv.Deserialize(nil, header, buffers)
	require.NoError(t, err)

	b, ok := got.(*patchableBag)
	require.True(t, ok)
	require.Len(t, b.items, 1)
	require.True(t, b.items[0].(*patchableBag) == b, "b.items[0] must be b itself")
}

// Large-buffer passthrough: a 64 MiB byte string produces a header
// under 1 KiB (encoded) and exactly one buffer whose bytes equal the
// input without being copied into the header.
func TestLargeBufferPassthrough(t *testing.T) {
	drv := freshDriver()
	payload := make([]byte, 64<<20)
	for i := range payload {
		payload[i] = byte(i)
	}

	header, buffers, err := drv.Serialize(nil, payload)
	require.NoError(t, err)
	require.Equal(t, 1, header.BufferCount)

	encoded, err := codec.EncodeWireHeader(header)
	require.NoError(t, err)
	require.Less(t, len(encoded), 1024)

	require.Same(t, &payload[0], &(buffers[0].([]byte))[0])

	got, err := drv.Deserialize(nil, header, buffers)
	require.NoError(t, err)
	require.Equal(t, payload, got)
}

// Short-string inlining: a collection of 1000 short strings inlines
// every element into the residual header (no propagated children); a
// single string at or above the threshold is propagated instead.
func TestShortStringInliningThreshold(t *testing.T) {
	drv := freshDriver()

	items := make([]any, 1000)
	for i := range items {
		items[i] = "x"
	}
	shortList := &codec.List{Items: items}
	header, _, err := drv.Serialize(nil, shortList)
	require.NoError(t, err)
	require.Empty(t, header.Root.Children)

	longStr := strings.Repeat("y", codec.InlineThreshold)
	longList := &codec.List{Items: []any{longStr}}
	header2, _, err := drv.Serialize(nil, longList)
	require.NoError(t, err)
	require.Len(t, header2.Root.Children, 1)
}

// Opaque fallback invocation: an unregistered struct type round-trips
// through the opaque msgpack codec without any explicit registration.
type customPayload struct {
	Name  string
	Count int
}

func TestOpaqueFallbackRoundTrip(t *testing.T) {
	drv := freshDriver()
	val := customPayload{Name: "widget", Count: 7}

	header, buffers, err := drv.Serialize(nil, val)
	require.NoError(t, err)
	require.Equal(t, codec.OpaqueSerializerID, header.Root.SerializerID)

	got, err := drv.Deserialize(nil, header, buffers)
	require.NoError(t, err)

	m, ok := got.(map[string]any)
	require.True(t, ok)
	require.Equal(t, "widget", m["Name"])
}

func TestMappingRoundTrip(t *testing.T) {
	drv := freshDriver()
	m := &codec.Mapping{
		Keys:   []any{"a", "b"},
		Values: []any{1, 2},
	}

	header, buffers, err := drv.Serialize(nil, m)
	require.NoError(t, err)

	got, err := drv.Deserialize(nil, header, buffers)
	require.NoError(t, err)

	gotMapping, ok := got.(*codec.Mapping)
	require.True(t, ok)
	require.Equal(t, m.Keys, gotMapping.Keys)
	require.Equal(t, m.Values, gotMapping.Values)
}

func TestDeepNestingDoesNotOverflowHostStack(t *testing.T) {
	drv := freshDriver()

	var root *codec.List
	var leaf *codec.List
	for i := 0; i < 50000; i++ {
		n := &codec.List{Items: []any{nil}}
		if root == nil {
			root = n
			leaf = n
		} else {
			leaf.Items[0] = n
			leaf = n
		}
	}

	header, buffers, err := drv.Serialize(nil, root)
	require.NoError(t, err)

	_, err = drv.Deserialize(nil, header, buffers)
	require.NoError(t, err)
}
