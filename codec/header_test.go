package codec

import "testing"

func TestEncodeDecodeWireHeaderRoundTrip(t *testing.T) {
	h := WireHeader{
		Root: WireNode{
			SerializerID: ListSerializerID,
			NumSubs:      1,
			Tail:         []any{[]any{nil}, []any{0}, ""},
			Children: []WireNode{
				{SerializerID: PrimitiveSerializerID, Final: true, Tail: []any{int8(5)}},
			},
		},
		BufferCount: 0,
	}

	data, err := EncodeWireHeader(h)
	if err != nil {
		t.Fatal(err)
	}

	got, err := DecodeWireHeader(data)
	if err != nil {
		t.Fatal(err)
	}
	if got.Root.SerializerID != ListSerializerID {
		t.Fatalf("unexpected serializer id after round-trip: %d", got.Root.SerializerID)
	}
	if len(got.Root.Children) != 1 {
		t.Fatalf("expected one child, got %d", len(got.Root.Children))
	}
}
