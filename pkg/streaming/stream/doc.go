/*
Package stream provides a uniform byte-stream abstraction over in-memory buffers, lazily
pumped producers and externally opened handles such as files, pipes and sockets.

Streams are described by small capability interfaces instead of a class hierarchy:

  - Readable: Read, Peek, EOF, Length, Rewind, Tell, Seek and Pipe
  - Writable: Write
  - Duplex: both

Every stream also implements Closer.

Stream Kinds:

BufferStream is an unbounded in-memory FIFO. Writes append and reads remove from the front.
Closing it discards the content but leaves it usable:

	b := stream.NewBuffer()
	_ = b.Write([]byte("foo"))
	data, _ := b.Read(10) // "foo"

PumpStream is read-only and is filled on demand by a Producer. Each call is asked for the
remaining shortfall; bytes beyond what the read asked for are kept for the next read:

	p := stream.NewPump(stream.ProducerFunc(func(n int) ([]byte, bool) {
		return []byte("abcdef"), true
	}))
	data, _ := p.Read(10) // "abcdefabcd", "ef" stays buffered

ResourceStream wraps an already open handle. Capabilities are read once, at construction.
Handles that cannot seek still support Peek through a read-ahead buffer:

	f, _ := os.Open("input.json")
	s, err := stream.NewResource(f)
	if err != nil {
		return err
	}
	defer s.Close()

	head, _ := s.Peek(2)

Unlike BufferStream, a closed ResourceStream fails every further operation with ErrClosed.

Reading Semantics:

Read never fails at end of data; it returns fewer bytes, possibly none. A failed read of the
underlying handle also returns whatever was collected, so callers tell exhaustion from
failure with EOF. Errors are reserved for misuse: a closed stream, an operation the stream's
mode does not allow, or an invalid construction argument.

Optional values such as an unknown length or position are returned with an ok flag and never
as a sentinel number.

Piping:

Pipe copies everything left in a source into a destination. The generic loop reads
DefaultChunkSize bytes at a time. BufferStream to BufferStream hands over the internal slice and
ResourceStream to ResourceStream copies handle to handle, which lets the runtime use
copy_file_range, splice or sendfile where available.

Adapters:

NewReader and NewWriter adapt streams to io.Reader and io.Writer, and ReadAll reads a stream to
its end.

Metrics:

NewWithMetrics wraps any stream in a MetricsStream that records operations, durations, bytes,
errors and pipes with Prometheus. See package metrics for the metric names.

Thread Safety:

Streams are not safe for concurrent use. Callers that share a stream across goroutines must
synchronize access themselves.
*/
package stream
