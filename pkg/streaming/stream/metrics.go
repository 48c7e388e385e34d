package stream

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	gferrors "github.com/vnykmshr/streamio/pkg/common/errors"
	"github.com/vnykmshr/streamio/pkg/metrics"
)

// MetricsStream wraps a stream with Prometheus metrics collection. The
// wrapped stream may be Readable, Writable or both; operations the wrapped
// stream lacks fail with ErrUnsupported.
type MetricsStream struct {
	stream   Closer
	r        Readable
	w        Writable
	name     string
	kind     string
	registry *metrics.Registry
	enabled  bool
}

var _ metrics.Instrumentable = (*MetricsStream)(nil)

// NewWithMetrics wraps s with metrics enabled.
func NewWithMetrics(s Closer, name string) *MetricsStream {
	// Use a separate registry for each metrics-enabled stream to avoid conflicts
	return NewWithConfigAndMetrics(s, name, metrics.Config{
		Enabled:  true,
		Registry: prometheus.NewRegistry(),
	})
}

// NewWithConfigAndMetrics wraps s using the given metrics configuration.
// With metrics disabled the wrapper only forwards calls.
func NewWithConfigAndMetrics(s Closer, name string, metricsConfig metrics.Config) *MetricsStream {
	ms := &MetricsStream{
		stream:   s,
		name:     name,
		kind:     typeLabel(s),
		registry: registryFor(metricsConfig),
		enabled:  metricsConfig.Enabled,
	}
	ms.r, _ = s.(Readable)
	ms.w, _ = s.(Writable)
	return ms
}

// registryFor returns the collectors registered on config.Registry, so
// streams configured with the same registerer report side by side.
func registryFor(config metrics.Config) *metrics.Registry {
	return metrics.For(config.Registry)
}

func typeLabel(s Closer) string {
	switch s.(type) {
	case *BufferStream:
		return "buffer"
	case *PumpStream:
		return "pump"
	case *ResourceStream:
		return "resource"
	default:
		return fmt.Sprintf("%T", s)
	}
}

func errorKind(err error) string {
	switch {
	case gferrors.IsClosed(err):
		return "closed"
	case gferrors.IsUnsupported(err):
		return "unsupported"
	case gferrors.IsInvalidResource(err):
		return "invalid_resource"
	default:
		return "other"
	}
}

// Unwrap returns the wrapped stream.
func (ms *MetricsStream) Unwrap() Closer {
	return ms.stream
}

func (ms *MetricsStream) observe(operation string, start time.Time, err error) {
	if !ms.enabled {
		return
	}

	ms.registry.StreamOperations.WithLabelValues(operation, ms.kind, ms.name).Inc()
	if !start.IsZero() {
		ms.registry.StreamDuration.WithLabelValues(operation, ms.kind, ms.name).Observe(time.Since(start).Seconds())
	}
	if err != nil {
		ms.registry.StreamErrors.WithLabelValues(operation, ms.kind, ms.name, errorKind(err)).Inc()
	}
}

func (ms *MetricsStream) notReadable(operation string) error {
	err := unsupportedError("metrics", operation, fmt.Sprintf("%s stream is not readable", ms.kind))
	ms.observe(operation, time.Time{}, err)
	return err
}

// Read reads from the wrapped stream and counts the bytes returned.
func (ms *MetricsStream) Read(n int) ([]byte, error) {
	if ms.r == nil {
		return nil, ms.notReadable("read")
	}

	start := time.Now()
	p, err := ms.r.Read(n)
	ms.observe("read", start, err)

	if ms.enabled && len(p) > 0 {
		ms.registry.StreamBytesRead.WithLabelValues(ms.kind, ms.name).Add(float64(len(p)))
	}
	return p, err
}

// Peek peeks the wrapped stream. Peeked bytes are not counted as read.
func (ms *MetricsStream) Peek(n int) ([]byte, error) {
	if ms.r == nil {
		return nil, ms.notReadable("peek")
	}

	start := time.Now()
	p, err := ms.r.Peek(n)
	ms.observe("peek", start, err)
	return p, err
}

// Write writes to the wrapped stream and counts the bytes accepted.
func (ms *MetricsStream) Write(p []byte) error {
	if ms.w == nil {
		err := unsupportedError("metrics", "write", fmt.Sprintf("%s stream is not writable", ms.kind))
		ms.observe("write", time.Time{}, err)
		return err
	}

	start := time.Now()
	err := ms.w.Write(p)
	ms.observe("write", start, err)

	if ms.enabled && err == nil && len(p) > 0 {
		ms.registry.StreamBytesWritten.WithLabelValues(ms.kind, ms.name).Add(float64(len(p)))
	}
	return err
}

// Pipe pipes the wrapped stream into dst. dst is passed through unchanged, so
// a wrapped dst records the writes but disables the wrapped stream's fast path.
func (ms *MetricsStream) Pipe(dst Writable) error {
	if ms.r == nil {
		return ms.notReadable("pipe")
	}

	start := time.Now()
	err := ms.r.Pipe(dst)
	ms.observe("pipe", start, err)

	if ms.enabled {
		ms.registry.StreamPipes.WithLabelValues(ms.kind, ms.name).Inc()
	}
	return err
}

// Close closes the wrapped stream.
func (ms *MetricsStream) Close() error {
	err := ms.stream.Close()
	ms.observe("close", time.Time{}, err)

	if ms.enabled {
		ms.registry.StreamCloses.WithLabelValues(ms.kind, ms.name).Inc()
	}
	return err
}

// Length returns the wrapped stream's length and records it when known.
func (ms *MetricsStream) Length() (int64, bool) {
	if ms.r == nil {
		return 0, false
	}

	n, ok := ms.r.Length()
	if ms.enabled && ok {
		ms.registry.StreamLength.WithLabelValues(ms.kind, ms.name).Set(float64(n))
	}
	return n, ok
}

// EOF reports the wrapped stream's EOF. A write-only stream is always at EOF.
func (ms *MetricsStream) EOF() bool {
	if ms.r == nil {
		return true
	}
	return ms.r.EOF()
}

// Rewind rewinds the wrapped stream.
func (ms *MetricsStream) Rewind() error {
	if ms.r == nil {
		return ms.notReadable("rewind")
	}

	err := ms.r.Rewind()
	ms.observe("rewind", time.Time{}, err)
	return err
}

// Tell returns the wrapped stream's position.
func (ms *MetricsStream) Tell() (int64, bool, error) {
	if ms.r == nil {
		return 0, false, nil
	}

	pos, ok, err := ms.r.Tell()
	ms.observe("tell", time.Time{}, err)
	return pos, ok, err
}

// Seek seeks the wrapped stream.
func (ms *MetricsStream) Seek(offset int64, whence int) (bool, error) {
	if ms.r == nil {
		return false, nil
	}

	ok, err := ms.r.Seek(offset, whence)
	ms.observe("seek", time.Time{}, err)
	return ok, err
}

// IsReadable reports whether the wrapped stream is readable.
func (ms *MetricsStream) IsReadable() bool {
	return ms.r != nil && ms.r.IsReadable()
}

// IsWritable reports whether the wrapped stream is writable.
func (ms *MetricsStream) IsWritable() bool {
	return ms.w != nil && ms.w.IsWritable()
}

// EnableMetrics enables metrics collection.
func (ms *MetricsStream) EnableMetrics(config metrics.Config) error {
	ms.enabled = config.Enabled

	if config.Registry != nil {
		ms.registry = registryFor(config)
	}

	return nil
}

// DisableMetrics disables metrics collection.
func (ms *MetricsStream) DisableMetrics() {
	ms.enabled = false
}

// MetricsEnabled returns true if metrics are currently enabled.
func (ms *MetricsStream) MetricsEnabled() bool {
	return ms.enabled
}
