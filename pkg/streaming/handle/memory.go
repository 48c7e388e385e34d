package handle

import (
	"errors"
	"io"
	"os"
)

var errNegativePosition = errors.New("handle: negative position")

// Memory is a seekable in-memory handle, useful wherever a temporary file
// would do. Like a temp stream it does not report a size, since writes can
// grow it after a stream has cached its metadata.
type Memory struct {
	data   []byte
	pos    int64
	mode   Mode
	eof    bool
	closed bool
}

var _ Handle = (*Memory)(nil)

// NewMemory creates a memory handle holding a copy of data, positioned at 0.
func NewMemory(data []byte, mode Mode) *Memory {
	return &Memory{
		data: append([]byte(nil), data...),
		mode: mode,
	}
}

func (m *Memory) Read(p []byte) (int, error) {
	if m.closed {
		return 0, os.ErrClosed
	}
	if !m.mode.CanRead() {
		return 0, ErrBadDirection
	}
	if len(p) == 0 {
		return 0, nil
	}
	if m.pos >= int64(len(m.data)) {
		m.eof = true
		return 0, io.EOF
	}

	n := copy(p, m.data[m.pos:])
	m.pos += int64(n)
	return n, nil
}

func (m *Memory) Write(p []byte) (int, error) {
	if m.closed {
		return 0, os.ErrClosed
	}
	if !m.mode.CanWrite() {
		return 0, ErrBadDirection
	}

	end := m.pos + int64(len(p))
	if end > int64(len(m.data)) {
		grown := make([]byte, end)
		copy(grown, m.data)
		m.data = grown
	}
	copy(m.data[m.pos:], p)
	m.pos = end
	return len(p), nil
}

func (m *Memory) Seek(offset int64, whence int) (int64, error) {
	if m.closed {
		return 0, os.ErrClosed
	}

	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = m.pos + offset
	case io.SeekEnd:
		abs = int64(len(m.data)) + offset
	default:
		return 0, errors.New("handle: invalid whence")
	}
	if abs < 0 {
		return 0, errNegativePosition
	}

	m.pos = abs
	m.eof = false
	return abs, nil
}

func (m *Memory) Close() error {
	m.closed = true
	return nil
}

func (m *Memory) EOF() bool { return m.eof }

func (m *Memory) Meta() Meta {
	return Meta{Seekable: true, Mode: m.mode, URI: "memory"}
}

// Bytes returns a copy of the whole content regardless of the position.
func (m *Memory) Bytes() []byte {
	return append([]byte(nil), m.data...)
}
