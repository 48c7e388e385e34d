package source

import (
	"context"
	"errors"
	"io"
	"sync/atomic"

	"github.com/vnykmshr/streamio/pkg/streaming/stream"
)

// maxConsecutiveEmptyReads bounds how often a reader may return (0, nil)
// before Reader treats it as exhausted.
const maxConsecutiveEmptyReads = 100

// Slice returns a producer that hands out chunks in order, one per call.
func Slice(chunks ...[]byte) stream.Producer {
	return &sliceSource{chunks: chunks}
}

// String returns a producer that hands out s in pieces of at most size
// bytes. A non-positive size hands out s in one piece.
func String(s string, size int) stream.Producer {
	if size <= 0 {
		size = len(s)
	}

	var chunks [][]byte
	for len(s) > 0 {
		n := min(size, len(s))
		chunks = append(chunks, []byte(s[:n]))
		s = s[n:]
	}
	return &sliceSource{chunks: chunks}
}

// sliceSource implements Slice and String.
type sliceSource struct {
	chunks [][]byte
	index  atomic.Int64
}

func (s *sliceSource) Produce(int) ([]byte, bool) {
	i := s.index.Add(1) - 1
	if i >= int64(len(s.chunks)) {
		return nil, false
	}
	return s.chunks[i], true
}

// Channel returns a producer that receives one chunk per call from ch. It is
// exhausted once ch is closed or ctx is done; a read then blocks no longer.
func Channel(ctx context.Context, ch <-chan []byte) stream.Producer {
	return &channelSource{ctx: ctx, ch: ch}
}

// channelSource implements Channel.
type channelSource struct {
	ctx context.Context
	ch  <-chan []byte
}

func (s *channelSource) Produce(int) ([]byte, bool) {
	select {
	case value, ok := <-s.ch:
		return value, ok
	case <-s.ctx.Done():
		return nil, false
	}
}

// Reader returns a producer that reads up to the requested number of bytes
// from r per call, at most DefaultChunkSize. It is exhausted by io.EOF, by any other error, or by a
// reader that keeps returning nothing. The producer has an Err() error method
// reporting why it stopped, nil for io.EOF.
func Reader(r io.Reader) stream.Producer {
	return &readerSource{r: r}
}

// readerSource implements Reader.
type readerSource struct {
	r    io.Reader
	done bool
	err  error
}

func (s *readerSource) Produce(n int) ([]byte, bool) {
	if s.done {
		return nil, false
	}
	if n <= 0 || n > stream.DefaultChunkSize {
		n = stream.DefaultChunkSize
	}

	p := make([]byte, n)
	for empty := 0; empty < maxConsecutiveEmptyReads; empty++ {
		read, err := s.r.Read(p)
		if err != nil {
			s.done = true
			if !errors.Is(err, io.EOF) {
				s.err = err
			}
		}
		if read > 0 {
			return p[:read], true
		}
		if s.done {
			return nil, false
		}
	}

	s.done = true
	s.err = io.ErrNoProgress
	return nil, false
}

// Err returns the first non-EOF error the reader returned, if any.
func (s *readerSource) Err() error {
	return s.err
}

// Generate returns a producer that calls fn once per call. A nil result
// signals exhaustion; otherwise the producer is infinite and should be read
// with a bound or wrapped in Limit.
func Generate(fn func() []byte) stream.Producer {
	return &generatorSource{generator: fn}
}

// generatorSource implements Generate.
type generatorSource struct {
	generator func() []byte
}

func (s *generatorSource) Produce(int) ([]byte, bool) {
	p := s.generator()
	if p == nil {
		return nil, false
	}
	return p, true
}

// Empty returns a producer that is exhausted from the start.
func Empty() stream.Producer {
	return emptySource{}
}

// emptySource implements Empty.
type emptySource struct{}

func (emptySource) Produce(int) ([]byte, bool) {
	return nil, false
}

// Limit returns a producer that passes through at most n bytes of p and is
// exhausted afterwards. The last chunk is truncated to fit.
func Limit(p stream.Producer, n int64) stream.Producer {
	return &limitSource{source: p, remaining: n}
}

// limitSource implements Limit.
type limitSource struct {
	source    stream.Producer
	remaining int64
}

func (s *limitSource) Produce(n int) ([]byte, bool) {
	if s.remaining <= 0 {
		return nil, false
	}
	if int64(n) > s.remaining {
		n = int(s.remaining)
	}

	p, ok := s.source.Produce(n)
	if !ok {
		s.remaining = 0
		return nil, false
	}
	if int64(len(p)) > s.remaining {
		p = p[:s.remaining]
	}
	s.remaining -= int64(len(p))
	return p, true
}

// Map returns a producer that passes every chunk of p through mapper.
func Map(p stream.Producer, mapper func([]byte) []byte) stream.Producer {
	return &mappingSource{originalSource: p, mapper: mapper}
}

// mappingSource implements Map.
type mappingSource struct {
	originalSource stream.Producer
	mapper         func([]byte) []byte
}

func (s *mappingSource) Produce(n int) ([]byte, bool) {
	p, ok := s.originalSource.Produce(n)
	if !ok {
		return nil, false
	}
	return s.mapper(p), true
}
