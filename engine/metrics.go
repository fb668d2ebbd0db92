package engine

import "github.com/prometheus/client_golang/prometheus"

// Metrics wraps the Prometheus collectors the driver updates as it
// serializes and deserializes. Namespaced *Vec collectors registered
// at construction time, the same layout the teacher's pack-adjacent
// metrics package uses rather than package-level globals, so more than
// one engine instance (e.g. in tests) never double-registers a
// collector against the default registry.
type Metrics struct {
	DispatchTotal   *prometheus.CounterVec
	PlaceholderHits prometheus.Counter
	BufferBytes     prometheus.Histogram
	NodesTraversed  prometheus.Histogram
}

// NewMetrics constructs a Metrics instance and registers its
// collectors against reg. Passing prometheus.NewRegistry() isolates
// a test's metrics from the global default registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		DispatchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "graphwire",
			Subsystem: "engine",
			Name:      "dispatch_total",
			Help:      "Number of values dispatched to a codec, labeled by serializer_id.",
		}, []string{"serializer_id"}),
		PlaceholderHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "graphwire",
			Subsystem: "engine",
			Name:      "placeholder_hits_total",
			Help:      "Number of times an already-seen identity was replaced with a placeholder.",
		}),
		BufferBytes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "graphwire",
			Subsystem: "engine",
			Name:      "buffer_bytes",
			Help:      "Size in bytes of each buffer emitted by a Serialize call.",
			Buckets:   prometheus.ExponentialBuckets(64, 8, 8),
		}),
		NodesTraversed: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "graphwire",
			Subsystem: "engine",
			Name:      "nodes_traversed",
			Help:      "Number of header nodes visited by a single Serialize or Deserialize call.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		}),
	}

	reg.MustRegister(m.DispatchTotal, m.PlaceholderHits, m.BufferBytes, m.NodesTraversed)
	return m
}

// noopMetrics is used when the driver is not given a *Metrics, so call
// sites never need a nil check.
var noopMetrics = &Metrics{
	DispatchTotal:   prometheus.NewCounterVec(prometheus.CounterOpts{Name: "graphwire_noop_dispatch_total"}, []string{"serializer_id"}),
	PlaceholderHits: prometheus.NewCounter(prometheus.CounterOpts{Name: "graphwire_noop_placeholder_hits"}),
	BufferBytes:     prometheus.NewHistogram(prometheus.HistogramOpts{Name: "graphwire_noop_buffer_bytes"}),
	NodesTraversed:  prometheus.NewHistogram(prometheus.HistogramOpts{Name: "graphwire_noop_nodes_traversed"}),
}
