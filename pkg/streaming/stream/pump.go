package stream

import (
	"io"

	"github.com/vnykmshr/streamio/pkg/common/validation"
)

// Producer is the source of a PumpStream.
type Producer interface {
	// Produce returns some bytes. n is how many the stream still needs; the
	// producer may return more or fewer. ok=false signals exhaustion and the
	// producer is never called again.
	Produce(n int) (p []byte, ok bool)
}

// ProducerFunc adapts a function to Producer.
type ProducerFunc func(n int) ([]byte, bool)

// Produce calls f(n).
func (f ProducerFunc) Produce(n int) ([]byte, bool) {
	return f(n)
}

// PumpStream is a read-only stream filled on demand by a Producer. Bytes the
// producer returns beyond what a read asked for are kept in an internal
// BufferStream until drained.
type PumpStream struct {
	source    Producer
	buffer    *BufferStream
	length    int64
	hasLength bool
}

// NewPump creates a PumpStream of unknown length. A nil producer yields an
// already exhausted stream.
func NewPump(p Producer) *PumpStream {
	return &PumpStream{
		source: p,
		buffer: NewBuffer(),
	}
}

// NewPumpWithLength creates a PumpStream that reports length from Length.
// The value is advisory and never checked against what the producer yields.
func NewPumpWithLength(p Producer, length int64) (*PumpStream, error) {
	if err := validation.ValidateNonNegative("pump", "length", length); err != nil {
		return nil, err
	}

	ps := NewPump(p)
	ps.length = length
	ps.hasLength = true
	return ps, nil
}

// Read returns up to n bytes, pumping the producer for whatever the buffer
// cannot cover. It returns fewer than n bytes only once the producer is
// exhausted.
func (p *PumpStream) Read(n int) ([]byte, error) {
	data, _ := p.buffer.Read(n)

	if remaining := n - len(data); remaining > 0 {
		p.pump(remaining)
		more, _ := p.buffer.Read(remaining)
		data = append(data, more...)
	}
	return data, nil
}

// Peek pumps like Read but leaves the bytes in the buffer.
func (p *PumpStream) Peek(n int) ([]byte, error) {
	data, _ := p.buffer.Peek(n)

	if remaining := n - len(data); remaining > 0 {
		p.pump(remaining)
		data, _ = p.buffer.Peek(n)
	}
	return data, nil
}

// pump calls the producer, asking for the remaining shortfall each time,
// until n bytes have been buffered or the producer is exhausted.
func (p *PumpStream) pump(n int) {
	for p.source != nil && n > 0 {
		chunk, ok := p.source.Produce(n)
		if !ok {
			p.source = nil
			return
		}

		_ = p.buffer.Write(chunk)
		n -= len(chunk)
	}
}

// EOF reports whether the producer is gone and every pumped byte was read.
func (p *PumpStream) EOF() bool {
	return p.source == nil && p.buffer.EOF()
}

// Length returns the declared length, if one was given.
func (p *PumpStream) Length() (int64, bool) {
	return p.length, p.hasLength
}

// Close drops the producer. Bytes already pumped stay readable.
func (p *PumpStream) Close() error {
	p.source = nil
	return nil
}

// Rewind always fails: a producer is not assumed to be replayable.
func (p *PumpStream) Rewind() error {
	return unsupportedError("pump", "Rewind", "cannot rewind a pump stream")
}

// Tell never knows a position.
func (p *PumpStream) Tell() (int64, bool, error) {
	return 0, false, nil
}

// Seek only supports io.SeekCurrent and reads offset bytes away.
func (p *PumpStream) Seek(offset int64, whence int) (bool, error) {
	if whence != io.SeekCurrent || offset < 0 {
		return false, nil
	}
	if _, err := p.Read(int(offset)); err != nil {
		return false, nil
	}
	return true, nil
}

// IsReadable is always true.
func (p *PumpStream) IsReadable() bool { return true }

// Pipe copies the stream into dst until the producer is exhausted.
func (p *PumpStream) Pipe(dst Writable) error {
	return Pipe(p, dst)
}

// String reads the stream to exhaustion. It never returns for a producer
// that is never exhausted.
func (p *PumpStream) String() string {
	var out []byte
	for !p.EOF() {
		chunk, _ := p.Read(1000000)
		out = append(out, chunk...)
	}
	return string(out)
}
