// Package metrics provides Prometheus instrumentation for streamio components.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metric instances for streamio components.
type Registry struct {
	StreamOperations   *prometheus.CounterVec
	StreamErrors       *prometheus.CounterVec
	StreamDuration     *prometheus.HistogramVec
	StreamBytesRead    *prometheus.CounterVec
	StreamBytesWritten *prometheus.CounterVec
	StreamLength       *prometheus.GaugeVec
	StreamPipes        *prometheus.CounterVec
	StreamCloses       *prometheus.CounterVec
}

// DefaultRegistry is the default metrics registry used by streamio components.
var DefaultRegistry *Registry

var (
	// shared maps a prometheus.Registerer to the Registry built on it.
	shared sync.Map
	// mu serializes registry creation in For.
	mu sync.Mutex
)

func init() {
	DefaultRegistry = NewRegistry(prometheus.DefaultRegisterer)
	shared.Store(prometheus.DefaultRegisterer, DefaultRegistry)
}

// For returns the Registry registered on reg, creating it on first use.
// Components sharing a registerer share its collectors. A nil reg selects
// DefaultRegistry.
func For(reg prometheus.Registerer) *Registry {
	if reg == nil {
		return DefaultRegistry
	}
	if r, ok := shared.Load(reg); ok {
		return r.(*Registry)
	}

	mu.Lock()
	defer mu.Unlock()
	if r, ok := shared.Load(reg); ok {
		return r.(*Registry)
	}
	r := NewRegistry(reg)
	shared.Store(reg, r)
	return r
}

// NewRegistry creates a new metrics registry with the given Prometheus registerer.
// It panics if reg already holds the collectors; use For to share them.
func NewRegistry(reg prometheus.Registerer) *Registry {
	factory := promauto.With(reg)

	return &Registry{
		StreamOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "streamio",
				Subsystem: "stream",
				Name:      "operations_total",
				Help:      "Total number of stream operations",
			},
			[]string{"operation", "stream_type", "stream_name"},
		),

		StreamErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "streamio",
				Subsystem: "stream",
				Name:      "errors_total",
				Help:      "Total number of failed stream operations",
			},
			[]string{"operation", "stream_type", "stream_name", "kind"},
		),

		StreamDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "streamio",
				Subsystem: "stream",
				Name:      "operation_duration_seconds",
				Help:      "Time spent in blocking stream operations",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation", "stream_type", "stream_name"},
		),

		StreamBytesRead: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "streamio",
				Subsystem: "stream",
				Name:      "bytes_read_total",
				Help:      "Total bytes consumed from streams",
			},
			[]string{"stream_type", "stream_name"},
		),

		StreamBytesWritten: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "streamio",
				Subsystem: "stream",
				Name:      "bytes_written_total",
				Help:      "Total bytes written to streams",
			},
			[]string{"stream_type", "stream_name"},
		),

		StreamLength: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "streamio",
				Subsystem: "stream",
				Name:      "length_bytes",
				Help:      "Last known stream length, when the stream reports one",
			},
			[]string{"stream_type", "stream_name"},
		),

		StreamPipes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "streamio",
				Subsystem: "stream",
				Name:      "pipes_total",
				Help:      "Total number of pipe operations started from a stream",
			},
			[]string{"stream_type", "stream_name"},
		),

		StreamCloses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "streamio",
				Subsystem: "stream",
				Name:      "closes_total",
				Help:      "Total number of close calls",
			},
			[]string{"stream_type", "stream_name"},
		),
	}
}
