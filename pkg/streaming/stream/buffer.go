package stream

import "io"

// BufferStream is an in-memory FIFO: writes append, reads remove from the
// front. It is always readable and writable.
//
// Close empties the buffer but does not lock it; later writes repopulate it.
// That differs on purpose from ResourceStream, which has an external handle
// to protect.
type BufferStream struct {
	buf []byte
	// head counts bytes consumed from the front of buf's backing array.
	head int
}

// NewBuffer creates an empty BufferStream.
func NewBuffer() *BufferStream {
	return &BufferStream{}
}

// NewBufferFrom creates a BufferStream holding a copy of p.
func NewBufferFrom(p []byte) *BufferStream {
	return &BufferStream{buf: append([]byte(nil), p...)}
}

// Write appends p. There is no bound and no backpressure.
func (b *BufferStream) Write(p []byte) error {
	b.buf = append(b.buf, p...)
	return nil
}

// Read removes and returns up to n bytes from the front of the buffer.
func (b *BufferStream) Read(n int) ([]byte, error) {
	return b.take(n), nil
}

// Peek returns up to n bytes from the front of the buffer without removing them.
func (b *BufferStream) Peek(n int) ([]byte, error) {
	if n <= 0 || len(b.buf) == 0 {
		return nil, nil
	}
	if n > len(b.buf) {
		n = len(b.buf)
	}
	return append([]byte(nil), b.buf[:n]...), nil
}

func (b *BufferStream) take(n int) []byte {
	if n <= 0 || len(b.buf) == 0 {
		return nil
	}
	if n >= len(b.buf) {
		out := b.buf
		b.buf, b.head = nil, 0
		return out
	}

	out := append([]byte(nil), b.buf[:n]...)
	b.buf = b.buf[n:]
	b.head += n
	b.compact()
	return out
}

// compact copies the live bytes into a fresh slice once the consumed prefix
// outgrows the rest of the backing array.
func (b *BufferStream) compact() {
	if b.head < cap(b.buf) {
		return
	}
	b.buf = append([]byte(nil), b.buf...)
	b.head = 0
}

// drain hands over the whole buffer.
func (b *BufferStream) drain() []byte {
	return b.take(len(b.buf))
}

func (b *BufferStream) buffered() int {
	return len(b.buf)
}

// Length returns the number of buffered bytes. It is always known.
func (b *BufferStream) Length() (int64, bool) {
	return int64(len(b.buf)), true
}

// EOF reports whether the buffer is empty.
func (b *BufferStream) EOF() bool {
	return len(b.buf) == 0
}

// Close discards the buffered content.
func (b *BufferStream) Close() error {
	b.buf, b.head = nil, 0
	return nil
}

// Rewind always fails: consumed bytes are gone.
func (b *BufferStream) Rewind() error {
	return unsupportedError("buffer", "Rewind", "cannot rewind a buffer stream")
}

// Tell never knows a position.
func (b *BufferStream) Tell() (int64, bool, error) {
	return 0, false, nil
}

// Seek only supports io.SeekCurrent, discarding offset bytes when that many
// are buffered. Anything else reports false and leaves the buffer untouched.
func (b *BufferStream) Seek(offset int64, whence int) (bool, error) {
	if whence != io.SeekCurrent || offset < 0 || offset > int64(len(b.buf)) {
		return false, nil
	}
	b.take(int(offset))
	return true, nil
}

// IsReadable is always true.
func (b *BufferStream) IsReadable() bool { return true }

// IsWritable is always true.
func (b *BufferStream) IsWritable() bool { return true }

// Pipe moves the buffer into dst. Another BufferStream receives the internal
// slice directly instead of a chunked copy.
func (b *BufferStream) Pipe(dst Writable) error {
	d, ok := dst.(*BufferStream)
	if !ok {
		return Pipe(b, dst)
	}
	if d == b {
		return nil
	}

	if len(d.buf) == 0 {
		d.buf, d.head = b.buf, b.head
		b.buf, b.head = nil, 0
		return nil
	}
	d.buf = append(d.buf, b.buf...)
	b.buf, b.head = nil, 0
	return nil
}

// String drains the buffer and returns its content. Like Read, it consumes.
func (b *BufferStream) String() string {
	return string(b.drain())
}
