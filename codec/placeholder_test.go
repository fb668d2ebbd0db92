package codec

import "testing"

func TestPlaceholderCodecSerial(t *testing.T) {
	pc := PlaceholderCodec{}
	header, subs, final, err := pc.Serial(nil, Placeholder{ID: 99})
	if err != nil {
		t.Fatal(err)
	}
	if !final || len(subs) != 0 {
		t.Fatalf("placeholder must be final with no subs, got final=%v subs=%v", final, subs)
	}
	if header[0] != uint32(99) {
		t.Fatalf("expected id 99 in header, got %v", header)
	}
}

func TestPlaceholderCodecDeserialResolvedValue(t *testing.T) {
	pc := PlaceholderCodec{}
	ctx := NewContext()
	ctx.Resolve(5, "the real value")

	// uint32, matching what PlaceholderCodec.Serial actually emits for
	// ph.ID within a live (non-msgpack) []any tail.
	got, err := pc.Deserial(ctx, []any{uint32(5)}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got != "the real value" {
		t.Fatalf("expected the resolved value, got %v", got)
	}
}

func TestPlaceholderCodecDeserialUnresolvedReturnsFreshPlaceholder(t *testing.T) {
	pc := PlaceholderCodec{}
	ctx := NewContext()

	got, err := pc.Deserial(ctx, []any{uint32(7)}, nil)
	if err != nil {
		t.Fatal(err)
	}
	ph, ok := got.(Placeholder)
	if !ok || ph.ID != 7 {
		t.Fatalf("expected a fresh Placeholder{ID:7}, got %v", got)
	}
}
