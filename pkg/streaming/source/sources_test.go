package source

import (
	"bytes"
	"context"
	"errors"
	"io"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/vnykmshr/streamio/internal/testutil"
	"github.com/vnykmshr/streamio/pkg/streaming/stream"
)

func readAll(t *testing.T, p stream.Producer) string {
	t.Helper()
	data, err := stream.ReadAll(stream.NewPump(p))
	testutil.AssertNoError(t, err)
	return string(data)
}

func TestSlice(t *testing.T) {
	p := Slice([]byte("foo"), []byte("bar"))

	chunk, ok := p.Produce(1)
	testutil.AssertEqual(t, ok, true)
	testutil.AssertBytes(t, chunk, "foo")

	chunk, ok = p.Produce(1)
	testutil.AssertEqual(t, ok, true)
	testutil.AssertBytes(t, chunk, "bar")

	_, ok = p.Produce(1)
	testutil.AssertEqual(t, ok, false)
	_, ok = p.Produce(1)
	testutil.AssertEqual(t, ok, false)
}

func TestSlice_ThroughPump(t *testing.T) {
	s := stream.NewPump(Slice([]byte("ab"), []byte("cdef"), []byte("g")))

	data, _ := s.Read(3)
	testutil.AssertBytes(t, data, "abc")
	data, _ = s.Read(10)
	testutil.AssertBytes(t, data, "defg")
	testutil.AssertEqual(t, s.EOF(), true)
}

func TestString(t *testing.T) {
	tests := []struct {
		name   string
		size   int
		chunks []string
	}{
		{"even", 2, []string{"fo", "ob", "ar"}},
		{"uneven", 4, []string{"foob", "ar"}},
		{"larger than input", 100, []string{"foobar"}},
		{"whole", 0, []string{"foobar"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := String("foobar", tt.size)
			for _, want := range tt.chunks {
				chunk, ok := p.Produce(1)
				testutil.AssertEqual(t, ok, true)
				testutil.AssertBytes(t, chunk, want)
			}
			_, ok := p.Produce(1)
			testutil.AssertEqual(t, ok, false)
		})
	}
}

func TestString_Empty(t *testing.T) {
	testutil.AssertEqual(t, readAll(t, String("", 3)), "")
}

func TestChannel(t *testing.T) {
	ch := make(chan []byte)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(ch)
		for _, s := range []string{"foo", "bar", "baz"} {
			ch <- []byte(s)
		}
	}()

	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	testutil.AssertEqual(t, readAll(t, Channel(ctx, ch)), "foobarbaz")
	wg.Wait()
}

func TestChannel_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := Channel(ctx, make(chan []byte))
	_, ok := p.Produce(1)
	testutil.AssertEqual(t, ok, false)
}

func TestReader(t *testing.T) {
	r := testutil.NewChunkedReader("hello world", 4)
	p := Reader(r)

	chunk, ok := p.Produce(100)
	testutil.AssertEqual(t, ok, true)
	testutil.AssertBytes(t, chunk, "hell")

	testutil.AssertEqual(t, readAll(t, p), "o world")
	testutil.AssertNoError(t, p.(interface{ Err() error }).Err())
}

func TestReader_RespectsRequestedSize(t *testing.T) {
	p := Reader(strings.NewReader("foobar"))

	chunk, ok := p.Produce(2)
	testutil.AssertEqual(t, ok, true)
	testutil.AssertBytes(t, chunk, "fo")

	chunk, ok = p.Produce(0)
	testutil.AssertEqual(t, ok, true)
	testutil.AssertBytes(t, chunk, "obar")
}

func TestReader_Error(t *testing.T) {
	p := Reader(testutil.NewFailingReader("abc"))

	testutil.AssertEqual(t, readAll(t, p), "abc")

	_, ok := p.Produce(1)
	testutil.AssertEqual(t, ok, false)
	testutil.AssertErrorIs(t, p.(interface{ Err() error }).Err(), testutil.ErrSimulated)
}

func TestReader_HugeRequest(t *testing.T) {
	s := stream.NewPump(Reader(strings.NewReader("abc")))

	data, err := s.Read(math.MaxInt)
	testutil.AssertNoError(t, err)
	testutil.AssertBytes(t, data, "abc")
	testutil.AssertEqual(t, s.EOF(), true)
}

func TestReader_ChunksLargeRequests(t *testing.T) {
	input := strings.Repeat("x", stream.DefaultChunkSize*2+1)
	p := Reader(strings.NewReader(input))

	chunk, ok := p.Produce(len(input))
	testutil.AssertEqual(t, ok, true)
	testutil.AssertEqual(t, len(chunk), stream.DefaultChunkSize)
	testutil.AssertEqual(t, readAll(t, p), input[stream.DefaultChunkSize:])
}

type stallingReader struct{ calls int }

func (r *stallingReader) Read([]byte) (int, error) {
	r.calls++
	return 0, nil
}

func TestReader_NoProgress(t *testing.T) {
	r := &stallingReader{}
	p := Reader(r)

	_, ok := p.Produce(8)
	testutil.AssertEqual(t, ok, false)
	testutil.AssertEqual(t, r.calls, maxConsecutiveEmptyReads)
	if err := p.(interface{ Err() error }).Err(); !errors.Is(err, io.ErrNoProgress) {
		t.Fatalf("got %v, want io.ErrNoProgress", err)
	}
}

func TestGenerate(t *testing.T) {
	n := 0
	p := Generate(func() []byte {
		n++
		if n > 3 {
			return nil
		}
		return bytes.Repeat([]byte{'x'}, n)
	})

	testutil.AssertEqual(t, readAll(t, p), "xxxxxx")
}

func TestEmpty(t *testing.T) {
	s := stream.NewPump(Empty())

	data, _ := s.Read(10)
	testutil.AssertEqual(t, len(data), 0)
	testutil.AssertEqual(t, s.EOF(), true)
}

func TestLimit(t *testing.T) {
	tick := Generate(func() []byte { return []byte("tick ") })

	testutil.AssertEqual(t, readAll(t, Limit(tick, 12)), "tick tick ti")
}

func TestLimit_AsksForRemainder(t *testing.T) {
	var asked []int
	p := Limit(stream.ProducerFunc(func(n int) ([]byte, bool) {
		asked = append(asked, n)
		return []byte("abc"), true
	}), 5)

	s := stream.NewPump(p)
	data, _ := s.Read(100)
	testutil.AssertBytes(t, data, "abcab")
	testutil.AssertEqual(t, len(asked), 2)
	testutil.AssertEqual(t, asked[0], 5)
	testutil.AssertEqual(t, asked[1], 2)
}

func TestLimit_SourceExhaustedFirst(t *testing.T) {
	testutil.AssertEqual(t, readAll(t, Limit(String("foo", 1), 10)), "foo")
}

func TestLimit_Zero(t *testing.T) {
	_, ok := Limit(String("foo", 1), 0).Produce(1)
	testutil.AssertEqual(t, ok, false)
}

func TestMap(t *testing.T) {
	p := Map(String("foobar", 3), bytes.ToUpper)

	testutil.AssertEqual(t, readAll(t, p), "FOOBAR")
}
