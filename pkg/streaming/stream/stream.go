package stream

import (
	gferrors "github.com/vnykmshr/streamio/pkg/common/errors"
)

// DefaultChunkSize bounds each read of the generic pipe loop and each pull
// from an underlying handle.
const DefaultChunkSize = 4096

var (
	// ErrClosed is returned when operating on a closed ResourceStream.
	ErrClosed = gferrors.ErrClosed

	// ErrUnsupported is returned for operations the stream's kind or mode does not allow.
	ErrUnsupported = gferrors.ErrUnsupported

	// ErrInvalidResource is returned when a ResourceStream is built from a non-handle.
	ErrInvalidResource = gferrors.ErrInvalidResource
)

// Closer is the capability shared by every stream.
type Closer interface {
	// Close releases resources. Calling it more than once is harmless.
	Close() error
}

// Readable is a stream bytes can be pulled from.
type Readable interface {
	Closer

	// EOF reports whether the stream has been completely read.
	EOF() bool

	// Length returns the total length when known. ok is false when the
	// length is unknown, which is distinct from a zero length.
	Length() (n int64, ok bool)

	// Read returns up to n bytes, fewer at end of data. An empty result is
	// not an error: check EOF to tell exhaustion from a failed pull.
	Read(n int) ([]byte, error)

	// Peek returns up to n bytes without consuming them.
	Peek(n int) ([]byte, error)

	// Rewind resets the stream to its start, or fails with ErrUnsupported.
	Rewind() error

	// Tell returns the current position when the stream can report one.
	Tell() (pos int64, ok bool, err error)

	// Seek moves the position. whence is io.SeekStart, io.SeekCurrent or
	// io.SeekEnd. It reports false when the move is not possible.
	Seek(offset int64, whence int) (bool, error)

	// IsReadable reports whether Read is currently allowed.
	IsReadable() bool

	// Pipe copies everything left in the stream into dst.
	Pipe(dst Writable) error
}

// Writable is a stream bytes can be pushed into.
type Writable interface {
	Closer

	// Write appends p to the stream.
	Write(p []byte) error

	// IsWritable reports whether Write is currently allowed.
	IsWritable() bool
}

// Duplex is a stream that is both Readable and Writable.
type Duplex interface {
	Readable
	Writable
}

var (
	_ Duplex   = (*BufferStream)(nil)
	_ Readable = (*PumpStream)(nil)
	_ Duplex   = (*ResourceStream)(nil)
	_ Duplex   = (*MetricsStream)(nil)
)

// Pipe copies src into dst in DefaultChunkSize reads until src reports EOF.
// Errors from either side are returned unchanged. A read that yields nothing
// while src is not at EOF (a failed pull on a handle) ends the copy.
func Pipe(src Readable, dst Writable) error {
	for !src.EOF() {
		chunk, err := src.Read(DefaultChunkSize)
		if err != nil {
			return err
		}
		if len(chunk) == 0 {
			return nil
		}
		if err := dst.Write(chunk); err != nil {
			return err
		}
	}
	return nil
}

func closedError(module, operation, msg string) error {
	return gferrors.NewOperationError(module, operation, ErrClosed).WithContext(msg)
}

func unsupportedError(module, operation, msg string) error {
	return gferrors.NewOperationError(module, operation, ErrUnsupported).WithContext(msg)
}
