/*
Package streamio provides a Go library for uniform byte-stream I/O over memory buffers,
lazy producers and externally opened handles.

Streaming (pkg/streaming):
  - stream: BufferStream, PumpStream and ResourceStream with peek, seek and pipe
  - handle: adapters turning files, sockets and io values into stream handles
  - source: ready-made producers for PumpStream
  - redislist: Redis list producer and writer

Support (pkg):
  - metrics: Prometheus instrumentation for streams
  - common/errors, common/validation: shared error types and config checks

Example usage:

	import (
		"github.com/vnykmshr/streamio/pkg/streaming/source"
		"github.com/vnykmshr/streamio/pkg/streaming/stream"
	)

	in, _ := stream.NewResource(os.Stdin)
	head, _ := in.Peek(16) // still readable afterwards

	out := stream.NewBuffer()
	_ = in.Pipe(out)

	p := stream.NewPump(source.String("hello", 2))
	data, _ := stream.ReadAll(p) // "hello"
*/
package streamio
