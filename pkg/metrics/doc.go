// Package metrics provides Prometheus instrumentation for streamio components.
//
// # Overview
//
// Streams are instrumented by wrapping them, the same way any other
// component would be: the concrete BufferStream, PumpStream and
// ResourceStream types stay free of metric bookkeeping and
// stream.NewWithMetrics returns a wrapper that records every call.
//
// # Quick Start
//
//	s, _ := stream.NewResource(file)
//	instrumented := stream.NewWithMetrics(s, "uploads")
//
// Then expose metrics via HTTP:
//
//	http.Handle("/metrics", promhttp.Handler())
//	log.Fatal(http.ListenAndServe(":8080", nil))
//
// # Custom Registry
//
// Use a custom Prometheus registry for isolation:
//
//	registry := prometheus.NewRegistry()
//	instrumented := stream.NewWithConfigAndMetrics(s, "uploads", metrics.Config{
//		Enabled:  true,
//		Registry: registry,
//	})
//
// # Available Metrics
//
//   - streamio_stream_operations_total: Total number of stream operations
//   - streamio_stream_errors_total: Failed operations, labelled by error kind
//     ("closed", "unsupported", "invalid_resource", "other")
//   - streamio_stream_operation_duration_seconds: Time spent in read, peek, write and pipe
//   - streamio_stream_bytes_read_total: Bytes consumed by Read
//   - streamio_stream_bytes_written_total: Bytes accepted by Write
//   - streamio_stream_length_bytes: Last reported Length, when known
//   - streamio_stream_pipes_total: Pipe calls
//   - streamio_stream_closes_total: Close calls
//
// # Labels
//
//   - operation: "read", "peek", "write", "seek", "tell", "rewind", "pipe", "close"
//   - stream_type: "buffer", "pump", "resource" or the Go type of a custom stream
//   - stream_name: User-provided name for the stream instance
//
// # Runtime Control
//
// Components implementing the Instrumentable interface support runtime control:
//
//	instrumented.DisableMetrics()
//	instrumented.EnableMetrics(config)
//	enabled := instrumented.MetricsEnabled()
package metrics
