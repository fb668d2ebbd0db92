// Package engine drives the codec package's dispatcher and built-in
// codecs through the explicit-stack traversal described in spec.md
// §4.E, turning an in-memory value into a (header, buffers) pair and
// back without ever recursing on the host call stack.
package engine

import (
	"reflect"
	"strconv"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/graphwire/graphwire/codec"
)

var (
	defaultDispatcher     *codec.Dispatcher
	defaultDispatcherOnce sync.Once
)

// DefaultDispatcher returns the package-level dispatcher built once via
// sync.Once, matching the teacher's "construct a default if the caller
// supplies none" pattern in runtime.NewManager.
func DefaultDispatcher() *codec.Dispatcher {
	defaultDispatcherOnce.Do(func() {
		defaultDispatcher = codec.NewDefaultDispatcher()
	})
	return defaultDispatcher
}

// Driver bundles the dispatcher and metrics collectors that Serialize
// and Deserialize consult. The zero Driver is not usable; construct one
// with NewDriver.
type Driver struct {
	Dispatcher *codec.Dispatcher
	Metrics    *Metrics
}

// NewDriver returns a Driver. A nil dispatcher falls back to
// DefaultDispatcher(); a nil metrics falls back to an unregistered
// no-op collector set, so tests that don't care about metrics never
// need to wire a prometheus.Registerer.
func NewDriver(dispatcher *codec.Dispatcher, metrics *Metrics) *Driver {
	if dispatcher == nil {
		dispatcher = DefaultDispatcher()
	}
	if metrics == nil {
		metrics = noopMetrics
	}
	return &Driver{Dispatcher: dispatcher, Metrics: metrics}
}

var defaultDriver = NewDriver(nil, nil)

// Serialize drives codec.NewDefaultDispatcher() (or whatever the
// caller previously registered against it) over obj using a fresh
// Context, or ctx if non-nil. It is a convenience wrapper around
// (*Driver)(nil)-equivalent defaults; callers that need a custom
// dispatcher or metrics should construct a Driver directly.
func Serialize(ctx *codec.Context, obj any) (codec.WireHeader, []any, error) {
	return defaultDriver.Serialize(ctx, obj)
}

// Deserialize is the Serialize-symmetric convenience wrapper.
func Deserialize(ctx *codec.Context, header codec.WireHeader, buffers []any) (any, error) {
	return defaultDriver.Deserialize(ctx, header, buffers)
}

// serializeFrame is one level of the explicit recursion-simulation
// stack Serialize uses. A frame starts unresolved (started=false);
// the first visit dispatches and calls Serial, then either finalizes
// immediately (final nodes) or fans out one child frame at a time,
// resuming only once each child frame has fully resolved into its slot
// in childNodes.
type serializeFrame struct {
	obj        any
	resultSlot *codec.WireNode

	started      bool
	final        bool
	serializerID uint32
	objID        uint32
	hasID        bool
	tail         []any
	subs         []any
	childNodes   []codec.WireNode
	nextChild    int
}

// Serialize turns obj into a header tree plus the flat, ordered buffer
// list its final nodes propagated, using an explicit frame stack
// instead of host recursion (spec.md §4.E) so arbitrarily deep input
// can't overflow the Go call stack. ctx is the per-call dedup/placeholder
// bookkeeping; a fresh one is allocated when ctx is nil.
func (d *Driver) Serialize(ctx *codec.Context, obj any) (codec.WireHeader, []any, error) {
	if ctx == nil {
		ctx = codec.NewContext()
	}

	var header codec.WireHeader
	var buffers []any
	nodes := 0

	stack := []*serializeFrame{{obj: obj, resultSlot: &header.Root}}

	for len(stack) > 0 {
		if len(stack) > MaxDepth {
			return codec.WireHeader{}, nil, errors.WithStack(RecursionDepthExceededError)
		}
		top := stack[len(stack)-1]

		if !top.started {
			effective := top.obj
			id, hasID := codec.IdentityOf(effective)
			if hasID {
				if _, seen := ctx.Seen(id); seen {
					effective = codec.Placeholder{ID: id}
					d.Metrics.PlaceholderHits.Inc()
				} else {
					ctx.Observe(id, effective)
				}
			}

			// reflect.TypeOf(nil) is nil, which Dispatcher.Get can only
			// resolve to the universal fallback; nil is a primitive
			// (§4.C codec 1), not an opaque value, so it is routed to
			// PrimitiveCodec directly by serializer ID instead.
			var c codec.Codec
			var err error
			if effective == nil {
				c, err = d.Dispatcher.ByID(codec.PrimitiveSerializerID)
			} else {
				c, err = d.Dispatcher.Get(reflect.TypeOf(effective))
			}
			if err != nil {
				return codec.WireHeader{}, nil, err
			}
			tail, subs, final, err := c.Serial(ctx, effective)
			if err != nil {
				return codec.WireHeader{}, nil, errors.Wrapf(err, "engine: serialize serializer_id=%d", c.SerializerID())
			}

			top.started = true
			top.serializerID = c.SerializerID()
			top.final = final
			top.tail = tail
			top.subs = subs
			_, isPlaceholder := effective.(codec.Placeholder)
			top.hasID = hasID && !isPlaceholder
			top.objID = id

			d.Metrics.DispatchTotal.WithLabelValues(strconv.FormatUint(uint64(c.SerializerID()), 10)).Inc()

			if final {
				for _, b := range subs {
					if raw, ok := b.([]byte); ok {
						d.Metrics.BufferBytes.Observe(float64(len(raw)))
					}
				}
				buffers = append(buffers, subs...)
				*top.resultSlot = codec.WireNode{
					SerializerID: top.serializerID,
					ObjID:        top.objID,
					HasID:        top.hasID,
					NumSubs:      len(subs),
					Final:        true,
					Tail:         top.tail,
				}
				nodes++
				stack = stack[:len(stack)-1]
				continue
			}

			top.childNodes = make([]codec.WireNode, len(subs))
		}

		if top.nextChild < len(top.subs) {
			idx := top.nextChild
			top.nextChild++
			stack = append(stack, &serializeFrame{
				obj:        top.subs[idx],
				resultSlot: &top.childNodes[idx],
			})
			continue
		}

		*top.resultSlot = codec.WireNode{
			SerializerID: top.serializerID,
			ObjID:        top.objID,
			HasID:        top.hasID,
			NumSubs:      len(top.subs),
			Final:        false,
			Tail:         top.tail,
			Children:     top.childNodes,
		}
		nodes++
		stack = stack[:len(stack)-1]
	}

	d.Metrics.NodesTraversed.Observe(float64(nodes))
	header.BufferCount = len(buffers)
	return header, buffers, nil
}

// deserializeFrame mirrors serializeFrame for the load direction: a
// node's children must all resolve to real values before the node's
// own Deserial can run, so a frame waits on childValues before it can
// finish.
type deserializeFrame struct {
	node       *codec.WireNode
	resultSlot *any

	childValues []any
	nextChild   int
}

// Deserialize reverses Serialize: it walks header's tree depth-first,
// left to right, consuming buffers from the front of the flat list
// exactly as Serialize produced them, and invoking each node's codec
// once all of its children (if any) have resolved. Every reconstructed
// value is recorded into ctx against its ObjID so that later Placeholder
// nodes referencing it resolve correctly, including forward references
// that only become valid once the driver unwinds back out to them.
func (d *Driver) Deserialize(ctx *codec.Context, header codec.WireHeader, buffers []any) (any, error) {
	if ctx == nil {
		ctx = codec.NewContext()
	}

	var result any
	cursor := 0
	nodes := 0

	stack := []*deserializeFrame{{node: &header.Root, resultSlot: &result}}

	for len(stack) > 0 {
		if len(stack) > MaxDepth {
			return nil, errors.WithStack(RecursionDepthExceededError)
		}
		top := stack[len(stack)-1]
		node := top.node

		if top.childValues == nil && !node.Final && len(node.Children) > 0 {
			top.childValues = make([]any, len(node.Children))
		}

		if !node.Final && top.nextChild < len(node.Children) {
			idx := top.nextChild
			top.nextChild++
			stack = append(stack, &deserializeFrame{
				node:       &node.Children[idx],
				resultSlot: &top.childValues[idx],
			})
			continue
		}

		c, err := d.Dispatcher.ByID(node.SerializerID)
		if err != nil {
			return nil, err
		}

		var subs []any
		if node.Final {
			if cursor+node.NumSubs > len(buffers) {
				return nil, codec.BufferCountMismatchError
			}
			subs = buffers[cursor : cursor+node.NumSubs]
			cursor += node.NumSubs
		} else {
			subs = top.childValues
		}

		value, err := c.Deserial(ctx, node.Tail, subs)
		if err != nil {
			return nil, errors.Wrapf(err, "engine: deserialize serializer_id=%d", node.SerializerID)
		}

		if node.HasID {
			ctx.Resolve(node.ObjID, value)
		}

		*top.resultSlot = value
		nodes++
		stack = stack[:len(stack)-1]
	}
	d.Metrics.NodesTraversed.Observe(float64(nodes))

	if ph, ok := result.(codec.Placeholder); ok {
		return nil, errors.Wrapf(codec.ErrPlaceholder, "obj_id=%d", ph.ID)
	}
	return result, nil
}
