package codec

import (
	"testing"
)

type namedBag struct {
	keys   []any
	values []any
}

func (b *namedBag) MappingPairs() (keys, values []any) { return b.keys, b.values }
func (b *namedBag) MappingTypeName() string            { return "namedBag" }

func TestMappingCodecBuiltinRoundTrip(t *testing.T) {
	opaque := NewOpaqueCodec()
	mc := NewMappingCodec(opaque)
	ctx := NewContext()

	m := &Mapping{Keys: []any{"a", "b"}, Values: []any{1, 2}}
	tail, subs, final, err := mc.Serial(ctx, m)
	if err != nil {
		t.Fatal(err)
	}
	if final {
		t.Fatal("pairs mode must not be final")
	}
	if len(subs) != 0 {
		t.Fatalf("no elements should propagate for short primitive keys/values, got %d", len(subs))
	}

	got, err := mc.Deserial(ctx, tail, subs)
	if err != nil {
		t.Fatal(err)
	}
	gotMapping, ok := got.(*Mapping)
	if !ok {
		t.Fatalf("expected *Mapping, got %T", got)
	}
	if len(gotMapping.Keys) != 2 || gotMapping.Keys[0] != "a" {
		t.Fatalf("unexpected keys: %v", gotMapping.Keys)
	}
}

func TestMappingCodecSubclassWithConstructor(t *testing.T) {
	opaque := NewOpaqueCodec()
	mc := NewMappingCodec(opaque)
	mc.RegisterMappingSubclass("namedBag", func(keys, values []any) (any, error) {
		return &namedBag{keys: keys, values: values}, nil
	})
	ctx := NewContext()

	src := &namedBag{keys: []any{"x"}, values: []any{10}}
	tail, subs, _, err := mc.Serial(ctx, src)
	if err != nil {
		t.Fatal(err)
	}

	got, err := mc.Deserial(ctx, tail, subs)
	if err != nil {
		t.Fatal(err)
	}
	bag, ok := got.(*namedBag)
	if !ok {
		t.Fatalf("expected *namedBag, got %T", got)
	}
	if bag.keys[0] != "x" || bag.values[0] != 10 {
		t.Fatalf("unexpected round-trip result: %+v", bag)
	}
}

// The mapping-subclass-with-no-constructor path degrades to the opaque
// codec wholesale (spec.md §4.C rule 1 / §9 Open Question ii) — this is
// preserved behavior, not a defect to fix.
func TestMappingCodecSubclassWithoutConstructorDegradesToOpaque(t *testing.T) {
	opaque := NewOpaqueCodec()
	mc := NewMappingCodec(opaque)
	mc.RegisterMappingSubclass("namedBag", nil)
	ctx := NewContext()

	src := &namedBag{keys: []any{"x"}, values: []any{10}}
	tail, subs, final, err := mc.Serial(ctx, src)
	if err != nil {
		t.Fatal(err)
	}
	if !final {
		t.Fatal("opaque-degraded mapping must be final")
	}
	if tail[0] != "opaque" || tail[1] != "namedBag" {
		t.Fatalf("expected opaque-mode tail prefix, got %v", tail)
	}

	got, err := mc.Deserial(ctx, tail, subs)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := got.(map[string]any); !ok {
		t.Fatalf("opaque decode should produce a generic map, got %T", got)
	}
}
