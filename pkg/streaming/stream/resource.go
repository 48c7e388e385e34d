package stream

import (
	"io"

	"github.com/valyala/bytebufferpool"
	"go.uber.org/zap"

	gferrors "github.com/vnykmshr/streamio/pkg/common/errors"
	"github.com/vnykmshr/streamio/pkg/common/validation"
	"github.com/vnykmshr/streamio/pkg/streaming/handle"
)

// maxConsecutiveEmptyReads bounds how often a handle may return (0, nil)
// before a pull gives up.
const maxConsecutiveEmptyReads = 100

// ResourceConfig holds configuration options for ResourceStream.
type ResourceConfig struct {
	// ChunkSize is the largest single read issued to the handle.
	// Zero selects DefaultChunkSize.
	ChunkSize int

	// Logger receives best-effort failures: a failed underlying read or a
	// failed close. Default: zap.NewNop()
	Logger *zap.Logger
}

// DefaultResourceConfig returns a default configuration.
func DefaultResourceConfig() ResourceConfig {
	return ResourceConfig{
		ChunkSize: DefaultChunkSize,
		Logger:    zap.NewNop(),
	}
}

// ResourceStream wraps an already-open handle: a file, pipe, socket or any
// value handle.From accepts. Capabilities are read from the handle once, at
// construction. Handles that cannot seek get peek support from a read-ahead
// buffer that Read drains first.
//
// Once closed, every operation except Close fails with ErrClosed.
type ResourceStream struct {
	handle handle.Handle
	buffer *BufferStream
	logger *zap.Logger
	chunk  int
	uri    string

	size      int64
	sizeKnown bool
	seekable  bool
	readable  bool
	writable  bool
	eof       bool
	closed    bool
}

// NewResource wraps h with the default configuration.
func NewResource(h any) (*ResourceStream, error) {
	return NewResourceWithConfig(h, DefaultResourceConfig())
}

// NewResourceWithConfig wraps h. It fails with an *errors.InvalidResourceError
// naming the received type when h is not stream-like.
func NewResourceWithConfig(h any, config ResourceConfig) (*ResourceStream, error) {
	if config.ChunkSize == 0 {
		config.ChunkSize = DefaultChunkSize
	}
	if err := validation.ValidatePositive("resource", "ChunkSize", config.ChunkSize); err != nil {
		return nil, err
	}
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}

	hd, err := handle.From(h)
	if err != nil {
		return nil, err
	}

	meta := hd.Meta()
	return &ResourceStream{
		handle:    hd,
		buffer:    NewBuffer(),
		logger:    config.Logger,
		chunk:     config.ChunkSize,
		uri:       meta.URI,
		size:      meta.Size,
		sizeKnown: meta.SizeKnown,
		seekable:  meta.Seekable,
		readable:  meta.Mode.CanRead(),
		writable:  meta.Mode.CanWrite(),
		eof:       hd.EOF(),
	}, nil
}

// Close closes the handle. Further calls return nil.
func (r *ResourceStream) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true

	if err := r.handle.Close(); err != nil {
		r.logger.Debug("closing handle failed", zap.String("uri", r.uri), zap.Error(err))
		return gferrors.NewOperationError("resource", "Close", err)
	}
	return nil
}

// Length returns the handle size measured at construction, when known.
func (r *ResourceStream) Length() (int64, bool) {
	return r.size, r.sizeKnown
}

// EOF reports whether the handle hit end of data and the read-ahead buffer is empty.
func (r *ResourceStream) EOF() bool {
	return r.buffer.EOF() && r.eof
}

// IsReadable reports whether the handle was opened for reading and the stream is open.
func (r *ResourceStream) IsReadable() bool {
	return r.readable && !r.closed
}

// IsWritable reports whether the handle was opened for writing and the stream is open.
func (r *ResourceStream) IsWritable() bool {
	return r.writable && !r.closed
}

// IsSeekable reports whether the handle supports native seeking.
func (r *ResourceStream) IsSeekable() bool {
	return r.seekable
}

func (r *ResourceStream) checkReadable(operation string) error {
	if r.closed {
		return closedError("resource", operation, "trying to read a closed stream")
	}
	if !r.readable {
		return unsupportedError("resource", operation, "trying to read from a write-only stream")
	}
	return nil
}

// Read returns up to n bytes: first from the read-ahead buffer, then from
// the handle in ChunkSize pulls until n bytes are collected or the handle
// reports end of data.
func (r *ResourceStream) Read(n int) ([]byte, error) {
	if err := r.checkReadable("Read"); err != nil {
		return nil, err
	}
	if n <= 0 {
		return nil, nil
	}

	buffered := r.buffer.buffered()
	if n <= buffered {
		return r.buffer.Read(n)
	}

	content := r.pull(n - buffered)
	head := r.buffer.drain()
	return append(head, content...), nil
}

// Peek returns up to n bytes without consuming them. Seekable handles read
// and seek back; other handles fill the read-ahead buffer.
func (r *ResourceStream) Peek(n int) ([]byte, error) {
	if err := r.checkReadable("Peek"); err != nil {
		return nil, err
	}
	if n <= 0 {
		return nil, nil
	}

	if r.seekable && r.buffer.EOF() {
		if pos, err := r.handle.Seek(0, io.SeekCurrent); err == nil {
			return r.peekAt(pos, n), nil
		}
	}

	if missing := n - r.buffer.buffered(); missing > 0 {
		_ = r.buffer.Write(r.pull(missing))
	}
	return r.buffer.Peek(n)
}

func (r *ResourceStream) peekAt(pos int64, n int) []byte {
	// A writable handle may have grown since the size was measured.
	if r.sizeKnown && !r.writable {
		if left := r.size - pos; int64(n) > left {
			n = int(left)
		}
	}
	if n <= 0 {
		return nil
	}

	eof := r.eof
	content := r.pull(n)
	if _, err := r.handle.Seek(pos, io.SeekStart); err != nil {
		r.logger.Debug("seek back after peek failed", zap.String("uri", r.uri), zap.Int64("position", pos), zap.Error(err))
	}
	r.eof = eof
	return content
}

// pull reads up to want bytes from the handle and refreshes the EOF flag
// after every read. A failed read ends the pull with what was collected.
func (r *ResourceStream) pull(want int) []byte {
	if want <= 0 || r.eof {
		return nil
	}

	bb := bytebufferpool.Get()
	defer bytebufferpool.Put(bb)

	chunk := make([]byte, min(want, r.chunk))
	empty := 0
	for want > 0 && !r.eof {
		n, err := r.handle.Read(chunk[:min(want, len(chunk))])
		r.eof = r.handle.EOF() || err == io.EOF
		if n > 0 {
			_, _ = bb.Write(chunk[:n])
			want -= n
			empty = 0
		}

		if err != nil {
			if err != io.EOF {
				r.logger.Debug("underlying read failed",
					zap.String("uri", r.uri),
					zap.Int("collected", bb.Len()),
					zap.Error(err))
			}
			break
		}
		if n == 0 {
			if empty++; empty >= maxConsecutiveEmptyReads {
				r.logger.Debug("underlying read made no progress", zap.String("uri", r.uri))
				break
			}
		}
	}

	if bb.Len() == 0 {
		return nil
	}
	return append([]byte(nil), bb.B...)
}

// Write passes p to the handle.
func (r *ResourceStream) Write(p []byte) error {
	if r.closed {
		return closedError("resource", "Write", "trying to write on a closed stream")
	}
	if !r.writable {
		return unsupportedError("resource", "Write", "trying to write to a read-only stream")
	}

	if _, err := r.handle.Write(p); err != nil {
		return gferrors.NewOperationError("resource", "Write", err)
	}
	r.eof = r.handle.EOF()
	return nil
}

// Rewind seeks a seekable handle back to 0 and drops the read-ahead buffer.
// It does nothing for handles that cannot seek.
func (r *ResourceStream) Rewind() error {
	if r.closed {
		return closedError("resource", "Rewind", "trying to seek a closed stream")
	}
	if !r.seekable {
		return nil
	}

	if _, err := r.handle.Seek(0, io.SeekStart); err != nil {
		return gferrors.NewOperationError("resource", "Rewind", err)
	}
	r.eof = r.handle.EOF()
	r.buffer = NewBuffer()
	return nil
}

// Tell returns the handle position. ok is false for handles that cannot seek.
func (r *ResourceStream) Tell() (int64, bool, error) {
	if r.closed {
		return 0, false, closedError("resource", "Tell", "trying to query a closed stream")
	}
	if !r.seekable {
		return 0, false, nil
	}

	pos, err := r.handle.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, false, nil
	}
	return pos, true, nil
}

// Seek moves the handle position. It reports false, without error, for
// handles that cannot seek and for moves that would end before position 0.
func (r *ResourceStream) Seek(offset int64, whence int) (bool, error) {
	if r.closed {
		return false, closedError("resource", "Seek", "trying to seek a closed stream")
	}
	if !r.seekable {
		return false, nil
	}

	switch whence {
	case io.SeekStart:
		if offset < 0 {
			return false, nil
		}
	case io.SeekCurrent:
		pos, ok, _ := r.Tell()
		if !ok || pos+offset < 0 {
			return false, nil
		}
	case io.SeekEnd:
		if r.sizeKnown && !r.writable && r.size+offset < 0 {
			return false, nil
		}
	default:
		return false, nil
	}

	if _, err := r.handle.Seek(offset, whence); err != nil {
		return false, nil
	}
	r.eof = r.handle.EOF()
	r.buffer = NewBuffer()
	return true, nil
}

// Pipe copies the rest of the stream into dst. Another ResourceStream gets a
// single handle-to-handle copy; anything else gets the chunked loop.
func (r *ResourceStream) Pipe(dst Writable) error {
	if err := r.checkReadable("Pipe"); err != nil {
		return err
	}

	d, ok := dst.(*ResourceStream)
	if !ok {
		return Pipe(r, dst)
	}

	if d.closed {
		return closedError("resource", "Pipe", "trying to write to a closed stream")
	}
	if !d.writable {
		return unsupportedError("resource", "Pipe", "trying to write to a read-only stream")
	}
	if d == r {
		return nil
	}

	if ahead := r.buffer.drain(); len(ahead) > 0 {
		if err := d.Write(ahead); err != nil {
			return err
		}
	}

	if _, err := handle.Copy(d.handle, r.handle); err != nil {
		return gferrors.NewOperationError("resource", "Pipe", err).WithContext("failed to copy stream")
	}
	r.eof = true
	d.eof = d.handle.EOF()
	return nil
}
