package codec

import "reflect"

// FixupFunc is invoked with the real, fully deserialized value once it
// becomes available for an objID that a placeholder previously stood
// in for. Parents that embedded a placeholder register one of these to
// patch their own already-constructed container in place.
type FixupFunc func(real any)

// Context is the per-call bookkeeping described in spec.md §4.D: during
// serialization it maps an objID to the first object seen with that
// identity (so later occurrences become placeholders); during
// deserialization it maps an objID to its reconstructed value, and
// queues fixup callbacks for objIDs that placeholders have referenced
// but that have not yet materialized.
//
// The shape mirrors the teacher's cache/runtime objectRegistry (an
// identity-keyed map guarding re-registration) and objectHandle's
// OnUpdate callback list (an accumulated, order-preserving set of
// callbacks fired once when the tracked value resolves).
type Context struct {
	seen   map[uint32]any
	values map[uint32]any
	fixups map[uint32][]FixupFunc
	log    Logger
}

// NewContext allocates an empty per-call Context with a no-op logger.
func NewContext() *Context {
	return &Context{
		seen:   make(map[uint32]any),
		values: make(map[uint32]any),
		fixups: make(map[uint32][]FixupFunc),
		log:    NoopLogger,
	}
}

// SetLogger swaps in log for subsequent debug traces; nil restores the
// no-op logger rather than leaving Context in a state that needs a nil
// check at every call site.
func (c *Context) SetLogger(log Logger) {
	if log == nil {
		log = NoopLogger
	}
	c.log = log
}

// IdentityOf computes the truncated identity hash spec.md §3 calls
// obj_id for values that have a stable Go-level identity: pointers,
// slices (by their backing array pointer), maps, and channels. Other
// values (ints, strings, structs passed by value, arrays) report
// ok=false, since Go affords them no identity independent of their
// contents — such values are never deduplicated or cycle-checked,
// only recursively re-serialized on each occurrence.
//
// As in spec.md, the truncation to 32 bits is accepted as a source of
// rare, unmitigated collisions: see DESIGN.md Open Question (1).
func IdentityOf(v any) (uint32, bool) {
	if v == nil {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Chan, reflect.UnsafePointer:
		if rv.IsNil() {
			return 0, false
		}
		return uint32(rv.Pointer()), true
	default:
		return 0, false
	}
}

// Observe records obj as the canonical in-flight value for id during
// serialization. Call this before descending into obj's subcomponents.
func (c *Context) Observe(id uint32, obj any) {
	c.log.Debugf("codec: observe objID=%d type=%T", id, obj)
	c.seen[id] = obj
}

// Seen reports whether id has already been observed during this
// serialize call, and the previously observed object.
func (c *Context) Seen(id uint32) (any, bool) {
	v, ok := c.seen[id]
	return v, ok
}

// Resolve records real as the reconstructed value for id during
// deserialization, then fires and clears any fixup callbacks that were
// queued against a prior placeholder for the same id — the deserialize
// side of the teacher's handle.notifyUpdate() callback drain.
func (c *Context) Resolve(id uint32, real any) {
	c.values[id] = real
	pending := c.fixups[id]
	delete(c.fixups, id)
	if len(pending) > 0 {
		c.log.Debugf("codec: resolve objID=%d firing %d fixup(s)", id, len(pending))
	}
	for _, fn := range pending {
		fn(real)
	}
}

// Value returns the already-reconstructed value for id, if any.
func (c *Context) Value(id uint32) (any, bool) {
	v, ok := c.values[id]
	return v, ok
}

// AddFixup queues fn to run against id's real value once Resolve(id, ...)
// is called. If id has already resolved, fn runs immediately instead of
// being queued — covering the case where a placeholder's target
// happened to finish deserializing before the parent got around to
// registering its fixup.
func (c *Context) AddFixup(id uint32, fn FixupFunc) {
	if real, ok := c.values[id]; ok {
		fn(real)
		return
	}
	c.fixups[id] = append(c.fixups[id], fn)
}
