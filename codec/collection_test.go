package codec

import (
	"reflect"
	"strings"
	"testing"
)

func TestPartitionSequenceInlinesPrimitivesAndShortBuffers(t *testing.T) {
	items := []any{1, "short", []byte{1, 2, 3}, nil}
	residual, propIdx, children := partitionSequence(items)

	if len(propIdx) != 0 || len(children) != 0 {
		t.Fatalf("expected nothing propagated, got propIdx=%v children=%v", propIdx, children)
	}
	if !reflect.DeepEqual(residual, items) {
		t.Fatalf("residual should equal input verbatim when everything inlines, got %v", residual)
	}
}

func TestPartitionSequencePropagatesLongStringsAndContainers(t *testing.T) {
	long := strings.Repeat("a", InlineThreshold)
	child := &List{Items: []any{1}}
	items := []any{1, long, child, "ok"}

	residual, propIdx, children := partitionSequence(items)

	if len(propIdx) != 2 {
		t.Fatalf("expected 2 propagated elements, got %d (%v)", len(propIdx), propIdx)
	}
	if residual[1] != nil || residual[2] != nil {
		t.Fatalf("propagated slots must be nil in residual, got %v", residual)
	}
	if residual[0] != 1 || residual[3] != "ok" {
		t.Fatalf("inlined slots must be untouched, got %v", residual)
	}
	if children[0] != long || children[1] != child {
		t.Fatalf("children must appear in index order, got %v", children)
	}
}

func TestScatterChildrenRegistersFixupForPlaceholder(t *testing.T) {
	ctx := NewContext()
	residual := []any{nil, "x"}
	propIdx := []int{0}
	children := []any{Placeholder{ID: 7}}

	out := make([]any, 2)
	err := scatterChildren(ctx, residual, propIdx, children, func(i int, v any) {
		out[i] = v
	})
	if err != nil {
		t.Fatal(err)
	}
	if out[1] != "x" {
		t.Fatalf("residual slot should be set directly, got %v", out[1])
	}
	if out[0] != nil {
		t.Fatalf("placeholder slot should stay unset until the fixup fires, got %v", out[0])
	}

	ctx.Resolve(7, "resolved")
	if out[0] != "resolved" {
		t.Fatalf("fixup should have patched the slot once resolved, got %v", out[0])
	}
}

func TestScatterChildrenRejectsLengthMismatch(t *testing.T) {
	ctx := NewContext()
	err := scatterChildren(ctx, []any{nil}, []int{0, 1}, []any{"a"}, func(int, any) {})
	if err == nil {
		t.Fatal("expected a length-mismatch error")
	}
}
