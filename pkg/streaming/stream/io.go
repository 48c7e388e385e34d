package stream

import "io"

// NewReader adapts s to io.Reader. It returns io.EOF once s reports EOF and
// io.ErrNoProgress when a read yields nothing while s is not at EOF.
func NewReader(s Readable) io.Reader {
	return &reader{s: s}
}

type reader struct {
	s Readable
}

func (r *reader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if r.s.EOF() {
		return 0, io.EOF
	}

	chunk, err := r.s.Read(len(p))
	if err != nil {
		return 0, err
	}
	if len(chunk) == 0 {
		if r.s.EOF() {
			return 0, io.EOF
		}
		return 0, io.ErrNoProgress
	}
	return copy(p, chunk), nil
}

// WriteTo pipes the rest of the stream into w.
func (r *reader) WriteTo(w io.Writer) (int64, error) {
	sink := &writerSink{w: w}
	err := r.s.Pipe(sink)
	return sink.n, err
}

// writerSink is the Writable end of WriteTo.
type writerSink struct {
	w io.Writer
	n int64
}

func (ws *writerSink) Write(p []byte) error {
	n, err := ws.w.Write(p)
	ws.n += int64(n)
	return err
}

func (ws *writerSink) IsWritable() bool { return true }

func (ws *writerSink) Close() error { return nil }

// NewWriter adapts s to io.Writer.
func NewWriter(s Writable) io.Writer {
	return &writer{s: s}
}

type writer struct {
	s Writable
}

func (w *writer) Write(p []byte) (int, error) {
	if err := w.s.Write(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// ReadAll reads s until EOF. It stops early, without error, when a read
// yields nothing while s is not at EOF.
func ReadAll(s Readable) ([]byte, error) {
	var out []byte
	for !s.EOF() {
		chunk, err := s.Read(DefaultChunkSize)
		if err != nil {
			return out, err
		}
		if len(chunk) == 0 {
			break
		}
		out = append(out, chunk...)
	}
	return out, nil
}
