package benchmarks

import (
	"reflect"
	"testing"

	"github.com/graphwire/graphwire/codec"
	"github.com/graphwire/graphwire/engine"
)

// BenchmarkDispatcherResolveExact measures the hot path of resolving a
// concrete type that has an exact registration, with the dispatcher's
// resolution cache warm.
func BenchmarkDispatcherResolveExact(b *testing.B) {
	dispatcher := codec.NewDefaultDispatcher()
	typ := reflect.TypeOf("")
	if _, err := dispatcher.Get(typ); err != nil {
		b.Fatalf("warm cache: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := dispatcher.Get(typ); err != nil {
			b.Fatalf("resolve error: %v", err)
		}
	}
}

type benchListSubclass struct{ items []any }

func (s *benchListSubclass) ListItems() []any     { return s.items }
func (s *benchListSubclass) ListTypeName() string { return "benchListSubclass" }

// BenchmarkDispatcherResolveInterfaceFallback measures resolution for a
// type that only matches via a registered interface, not an exact
// registration, still expected to be cache-backed after the first call.
func BenchmarkDispatcherResolveInterfaceFallback(b *testing.B) {
	dispatcher := codec.NewDefaultDispatcher()
	listCodec, err := dispatcher.ByID(codec.ListSerializerID)
	if err != nil {
		b.Fatalf("lookup list codec: %v", err)
	}
	dispatcher.RegisterInterface(reflect.TypeOf((*codec.ListLike)(nil)).Elem(), listCodec)

	typ := reflect.TypeOf(&benchListSubclass{})
	if _, err := dispatcher.Get(typ); err != nil {
		b.Fatalf("warm cache: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := dispatcher.Get(typ); err != nil {
			b.Fatalf("resolve error: %v", err)
		}
	}
}

// BenchmarkDedupSharedReference measures the cost the driver's identity
// dedup adds when the same sub-object appears many times in a list,
// versus each occurrence being a distinct object.
func BenchmarkDedupSharedReference(b *testing.B) {
	driver := engine.NewDriver(codec.NewDefaultDispatcher(), nil)
	shared := &codec.List{Items: []any{"a", "b", "c"}}
	items := make([]any, 1000)
	for i := range items {
		items[i] = shared
	}
	root := &codec.List{Items: items}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := driver.Serialize(codec.NewContext(), root); err != nil {
			b.Fatalf("serialize error: %v", err)
		}
	}
}

func BenchmarkNoDedupDistinctObjects(b *testing.B) {
	driver := engine.NewDriver(codec.NewDefaultDispatcher(), nil)
	items := make([]any, 1000)
	for i := range items {
		items[i] = &codec.List{Items: []any{"a", "b", "c"}}
	}
	root := &codec.List{Items: items}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := driver.Serialize(codec.NewContext(), root); err != nil {
			b.Fatalf("serialize error: %v", err)
		}
	}
}

// BenchmarkPartitionSequenceAllInline measures the collection rule's
// partition step when every element inlines (primitives and short
// strings), the common case for flat lists of scalars.
func BenchmarkPartitionSequenceAllInline(b *testing.B) {
	driver := engine.NewDriver(codec.NewDefaultDispatcher(), nil)
	items := make([]any, 1000)
	for i := range items {
		items[i] = i
	}
	root := &codec.List{Items: items}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := driver.Serialize(codec.NewContext(), root); err != nil {
			b.Fatalf("serialize error: %v", err)
		}
	}
}

// BenchmarkPartitionSequenceAllContainers measures the partition step
// when every element is itself a container needing its own child node,
// the worst case for the partition/scatter machinery.
func BenchmarkPartitionSequenceAllContainers(b *testing.B) {
	driver := engine.NewDriver(codec.NewDefaultDispatcher(), nil)
	items := make([]any, 1000)
	for i := range items {
		items[i] = &codec.List{Items: []any{i}}
	}
	root := &codec.List{Items: items}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := driver.Serialize(codec.NewContext(), root); err != nil {
			b.Fatalf("serialize error: %v", err)
		}
	}
}
