package testutil

import (
	"bytes"
	"errors"
	"io"
)

// ErrSimulated is returned by mocks configured to fail.
var ErrSimulated = errors.New("simulated error")

// MockWriter is a test writer that can simulate write failures and counts calls.
type MockWriter struct {
	buf         bytes.Buffer
	errorOnNth  int
	writeCount  int
	shouldError bool
	err         error
}

// NewMockWriter creates a new MockWriter.
func NewMockWriter() *MockWriter {
	return &MockWriter{}
}

// Write implements io.Writer interface with configurable behavior.
func (mw *MockWriter) Write(p []byte) (int, error) {
	mw.writeCount++

	if mw.shouldError {
		return 0, mw.err
	}
	if mw.errorOnNth > 0 && mw.writeCount == mw.errorOnNth {
		return 0, ErrSimulated
	}

	return mw.buf.Write(p)
}

// String returns the current buffer contents.
func (mw *MockWriter) String() string {
	return mw.buf.String()
}

// WriteCount returns the number of Write calls.
func (mw *MockWriter) WriteCount() int {
	return mw.writeCount
}

// SetErrorOnNth configures the writer to error on the nth write.
func (mw *MockWriter) SetErrorOnNth(n int) {
	mw.errorOnNth = n
}

// SetAlwaysError configures the writer to always return the given error.
func (mw *MockWriter) SetAlwaysError(err error) {
	mw.shouldError = true
	mw.err = err
}

// ChunkedReader behaves like a socket: it is not seekable and never returns
// more than Chunk bytes per Read, whatever the caller asks for.
type ChunkedReader struct {
	data  []byte
	pos   int
	Chunk int
	Calls int
}

// NewChunkedReader creates a ChunkedReader over data delivering at most chunk bytes per call.
func NewChunkedReader(data string, chunk int) *ChunkedReader {
	return &ChunkedReader{data: []byte(data), Chunk: chunk}
}

func (cr *ChunkedReader) Read(p []byte) (int, error) {
	cr.Calls++
	if cr.pos >= len(cr.data) {
		return 0, io.EOF
	}

	n := len(p)
	if n > cr.Chunk {
		n = cr.Chunk
	}
	n = copy(p[:n], cr.data[cr.pos:])
	cr.pos += n
	return n, nil
}

// Remaining reports how many bytes have not been handed out yet.
func (cr *ChunkedReader) Remaining() int {
	return len(cr.data) - cr.pos
}

// FailingReader returns its data and then a non-EOF error forever.
type FailingReader struct {
	data []byte
	Err  error
}

// NewFailingReader creates a FailingReader that fails after delivering data.
func NewFailingReader(data string) *FailingReader {
	return &FailingReader{data: []byte(data), Err: ErrSimulated}
}

func (fr *FailingReader) Read(p []byte) (int, error) {
	if len(fr.data) == 0 {
		return 0, fr.Err
	}
	n := copy(p, fr.data)
	fr.data = fr.data[n:]
	return n, nil
}

// CloseRecorder counts Close calls on an otherwise inert io.ReadWriteCloser.
type CloseRecorder struct {
	bytes.Buffer
	Closes int
}

func (cr *CloseRecorder) Close() error {
	cr.Closes++
	return nil
}
