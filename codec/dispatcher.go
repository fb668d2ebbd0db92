package codec

import (
	"reflect"
	"sync"
)

// Dispatcher maps a value's runtime type to its codec. It stands in for
// spec.md §4.A's ancestor-walking resolver: Go has no runtime class
// hierarchy to walk, so resolution instead tries, in order, an exact
// type match, then the first registered interface the value's type
// satisfies (in registration order), then the universal fallback codec.
//
// Lookups are cached per concrete reflect.Type in a sync.Map, the same
// caching strategy the teacher's StructMetadata registry uses for
// reflected struct layouts.
type Dispatcher struct {
	mu         sync.RWMutex
	byType     map[reflect.Type]Codec
	byID       map[uint32]Codec
	interfaces []ifaceEntry
	fallback   Codec
	cache      sync.Map // reflect.Type -> Codec
	log        Logger
}

type ifaceEntry struct {
	iface reflect.Type
	codec Codec
}

// NewDispatcher returns an empty dispatcher with no fallback. Most
// callers want NewDefaultDispatcher instead.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		byType: make(map[reflect.Type]Codec),
		byID:   make(map[uint32]Codec),
		log:    NoopLogger,
	}
}

// SetLogger swaps in log for subsequent dispatch traces; nil restores
// the no-op logger.
func (d *Dispatcher) SetLogger(log Logger) {
	if log == nil {
		log = NoopLogger
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.log = log
}

// Register binds codec to t for exact-type dispatch.
func (d *Dispatcher) Register(t reflect.Type, c Codec) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.byType[t] = c
	d.byID[c.SerializerID()] = c
	d.cache.Delete(t)
}

// RegisterInterface binds codec to any value whose type implements
// iface, consulted when no exact type match exists. Entries are tried
// in registration order; register more specific interfaces first.
func (d *Dispatcher) RegisterInterface(iface reflect.Type, c Codec) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.interfaces = append(d.interfaces, ifaceEntry{iface: iface, codec: c})
	d.byID[c.SerializerID()] = c
	d.cache.Range(func(k, _ any) bool {
		d.cache.Delete(k)
		return true
	})
}

// RegisterFallback binds codec as the universal root-type handler,
// used when no exact type or interface match is found.
func (d *Dispatcher) RegisterFallback(c Codec) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.fallback = c
	d.byID[c.SerializerID()] = c
}

// Unregister removes t's exact-type binding.
func (d *Dispatcher) Unregister(t reflect.Type) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.byType, t)
	d.cache.Delete(t)
}

// Get resolves the codec for t, using the cache when possible.
func (d *Dispatcher) Get(t reflect.Type) (Codec, error) {
	if d == nil {
		return nil, NoHandlerError
	}
	if t != nil {
		if c, ok := d.cache.Load(t); ok {
			return c.(Codec), nil
		}
	}

	d.mu.RLock()
	c, err := d.resolveLocked(t)
	d.mu.RUnlock()
	if err != nil {
		return nil, err
	}

	if t != nil {
		d.cache.Store(t, c)
	}
	return c, nil
}

func (d *Dispatcher) resolveLocked(t reflect.Type) (Codec, error) {
	if t != nil {
		if c, ok := d.byType[t]; ok {
			d.log.Debugf("codec: dispatch type=%s exact-match serializer=%d", t, c.SerializerID())
			return c, nil
		}
		for _, entry := range d.interfaces {
			if t.Implements(entry.iface) {
				d.log.Debugf("codec: dispatch type=%s interface=%s serializer=%d", t, entry.iface, entry.codec.SerializerID())
				return entry.codec, nil
			}
		}
	}
	if d.fallback != nil {
		d.log.Debugf("codec: dispatch type=%v fallback serializer=%d", t, d.fallback.SerializerID())
		return d.fallback, nil
	}
	return nil, NoHandlerError
}

// ByID resolves a codec by its serializer ID, used on the deserialize
// path where only the wire-level ID is known.
func (d *Dispatcher) ByID(id uint32) (Codec, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if c, ok := d.byID[id]; ok {
		return c, nil
	}
	return nil, UnknownSerializerIdError
}
