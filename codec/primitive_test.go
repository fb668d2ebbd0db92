package codec

import (
	"testing"
	"time"
)

func TestPrimitiveCodecRoundTrip(t *testing.T) {
	pc := PrimitiveCodec{}
	ctx := NewContext()

	for _, v := range []any{nil, true, 42, 3.14, time.Second, time.Now()} {
		tail, subs, final, err := pc.Serial(ctx, v)
		if err != nil {
			t.Fatal(err)
		}
		if !final || len(subs) != 0 {
			t.Fatalf("primitive must be final with no subs, got final=%v subs=%v", final, subs)
		}
		got, err := pc.Deserial(ctx, tail, nil)
		if err != nil {
			t.Fatal(err)
		}
		if got != v {
			t.Fatalf("round-trip mismatch: want %v got %v", v, got)
		}
	}
}

func TestIsPrimitiveRejectsContainers(t *testing.T) {
	if IsPrimitive(&Tuple{}) {
		t.Fatal("*Tuple must not be a primitive")
	}
	if IsPrimitive([]byte("x")) {
		t.Fatal("[]byte must not be a primitive (handled by BytesCodec)")
	}
	if !IsPrimitive(PrimitiveFunc(func() any { return 1 })) {
		t.Fatal("PrimitiveFunc must be treated as a primitive")
	}
}
