package handle

import (
	"errors"
	"fmt"
	"io"
	"net"
	"os"

	gferrors "github.com/vnykmshr/streamio/pkg/common/errors"
)

var (
	// ErrBadDirection is returned when reading a write-only handle or writing a read-only one.
	ErrBadDirection = errors.New("handle: operation not permitted by open mode")

	// ErrNotSeekable is returned by Seek on handles without native seek support.
	ErrNotSeekable = errors.New("handle: not seekable")
)

// Mode describes the directions a handle was opened for.
type Mode uint8

const (
	// ModeRead marks a handle that can be read.
	ModeRead Mode = 1 << iota
	// ModeWrite marks a handle that can be written.
	ModeWrite

	// ModeReadWrite marks a duplex handle.
	ModeReadWrite = ModeRead | ModeWrite
)

// CanRead reports whether the mode permits reads.
func (m Mode) CanRead() bool { return m&ModeRead != 0 }

// CanWrite reports whether the mode permits writes.
func (m Mode) CanWrite() bool { return m&ModeWrite != 0 }

func (m Mode) String() string {
	switch m {
	case ModeRead:
		return "r"
	case ModeWrite:
		return "w"
	case ModeReadWrite:
		return "r+"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// Meta is the metadata a stream caches when it adopts a handle.
type Meta struct {
	Seekable bool
	Mode     Mode
	URI      string

	// Size is only meaningful when SizeKnown is true. Pipes, sockets and
	// standard input never report a size.
	Size      int64
	SizeKnown bool
}

// Handle is an already-open byte stream owned by the caller until it is
// handed to a stream. Read reports end of data with io.EOF, which also sets
// the indicator returned by EOF; a successful Seek clears it.
type Handle interface {
	io.Reader
	io.Writer
	io.Seeker
	io.Closer

	// EOF reports whether the last read hit end of data.
	EOF() bool

	// Meta describes the handle. It is cheap and does not touch the OS.
	Meta() Meta
}

// From resolves v into a Handle. Supported values are Handle implementations,
// *os.File, net.Conn, io.ReadWriter, io.Reader and io.Writer. Anything else,
// including nil and closed files, yields an *errors.InvalidResourceError
// naming the received type.
func From(v any) (Handle, error) {
	switch h := v.(type) {
	case nil:
		return nil, gferrors.NewInvalidResourceError("nil")
	case Handle:
		return h, nil
	case *os.File:
		return FromFile(h)
	case net.Conn:
		return FromConn(h), nil
	case io.ReadWriter:
		return FromReadWriter(h), nil
	case io.Reader:
		return FromReader(h), nil
	case io.Writer:
		return FromWriter(h), nil
	default:
		return nil, gferrors.NewInvalidResourceError(fmt.Sprintf("%T", v))
	}
}

// FromFile adopts an open file. The open mode is read back from the
// descriptor, seekability is probed with a no-op seek and the size is only
// known for regular files.
func FromFile(f *os.File) (Handle, error) {
	if f == nil {
		return nil, gferrors.NewInvalidResourceError("nil *os.File")
	}

	mode, err := fileMode(f)
	if err != nil {
		return nil, gferrors.NewInvalidResourceError("closed *os.File")
	}

	meta := Meta{Mode: mode, URI: f.Name()}
	if _, err := f.Seek(0, io.SeekCurrent); err == nil {
		meta.Seekable = true
	}
	if fi, err := f.Stat(); err == nil && fi.Mode().IsRegular() {
		meta.Size = fi.Size()
		meta.SizeKnown = true
	}

	h := &wrapped{s: f, c: f, meta: meta}
	if mode.CanRead() {
		h.r = f
	}
	if mode.CanWrite() {
		h.w = f
	}
	return h, nil
}

// FromConn adopts a network connection: read-write, never seekable, size unknown.
func FromConn(c net.Conn) Handle {
	meta := Meta{Mode: ModeReadWrite}
	if addr := c.RemoteAddr(); addr != nil {
		meta.URI = addr.Network() + "://" + addr.String()
	}
	return &wrapped{r: c, w: c, c: c, meta: meta}
}

// FromReader adopts a read-only source.
func FromReader(r io.Reader) Handle {
	h := &wrapped{r: r, meta: Meta{Mode: ModeRead}}
	h.adopt(r)
	return h
}

// FromWriter adopts a write-only sink.
func FromWriter(w io.Writer) Handle {
	h := &wrapped{w: w, meta: Meta{Mode: ModeWrite}}
	h.adopt(w)
	return h
}

// FromReadWriter adopts a duplex value.
func FromReadWriter(rw io.ReadWriter) Handle {
	h := &wrapped{r: rw, w: rw, meta: Meta{Mode: ModeReadWrite}}
	h.adopt(rw)
	return h
}
