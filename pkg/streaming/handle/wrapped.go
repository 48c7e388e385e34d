package handle

import (
	"io"
	"os"
)

type sizer interface {
	Size() int64
}

// wrapped adapts plain io values to Handle and tracks the EOF indicator.
type wrapped struct {
	r io.Reader
	w io.Writer
	s io.Seeker
	c io.Closer

	meta   Meta
	eof    bool
	closed bool
}

// adopt picks up the optional capabilities of v.
func (h *wrapped) adopt(v any) {
	if s, ok := v.(io.Seeker); ok {
		h.s = s
		h.meta.Seekable = true
	}
	if c, ok := v.(io.Closer); ok {
		h.c = c
	}
	if sz, ok := v.(sizer); ok {
		h.meta.Size = sz.Size()
		h.meta.SizeKnown = true
	}
}

func (h *wrapped) Read(p []byte) (int, error) {
	if h.closed {
		return 0, os.ErrClosed
	}
	if h.r == nil {
		return 0, ErrBadDirection
	}

	n, err := h.r.Read(p)
	if err == io.EOF {
		h.eof = true
	}
	return n, err
}

func (h *wrapped) Write(p []byte) (int, error) {
	if h.closed {
		return 0, os.ErrClosed
	}
	if h.w == nil {
		return 0, ErrBadDirection
	}
	return h.w.Write(p)
}

func (h *wrapped) Seek(offset int64, whence int) (int64, error) {
	if h.closed {
		return 0, os.ErrClosed
	}
	if h.s == nil || !h.meta.Seekable {
		return 0, ErrNotSeekable
	}

	pos, err := h.s.Seek(offset, whence)
	if err == nil {
		h.eof = false
	}
	return pos, err
}

func (h *wrapped) Close() error {
	if h.closed {
		return nil
	}
	h.closed = true
	if h.c == nil {
		return nil
	}
	return h.c.Close()
}

func (h *wrapped) EOF() bool { return h.eof }

func (h *wrapped) Meta() Meta { return h.meta }
