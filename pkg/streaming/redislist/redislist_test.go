package redislist

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	gferrors "github.com/vnykmshr/streamio/pkg/common/errors"
	"github.com/vnykmshr/streamio/pkg/streaming/source"
	"github.com/vnykmshr/streamio/pkg/streaming/stream"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestNewProducer_Validation(t *testing.T) {
	_, client := setupTestRedis(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		client redis.Cmdable
		key    string
		config Config
		field  string
	}{
		{"nil client", nil, "chunks", DefaultConfig(), "client"},
		{"typed nil client", (*redis.Client)(nil), "chunks", DefaultConfig(), "client"},
		{"typed nil cluster client", (*redis.ClusterClient)(nil), "chunks", DefaultConfig(), "client"},
		{"empty key", client, "", DefaultConfig(), "key"},
		{"negative max len", client, "chunks", Config{MaxLen: -1}, "MaxLen"},
		{"negative timeout", client, "chunks", Config{Timeout: -time.Second}, "Timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProducer(ctx, tt.client, tt.key, tt.config)
			require.Error(t, err)
			assert.True(t, gferrors.IsValidationError(err))
			assert.Contains(t, err.Error(), tt.field)

			_, err = NewWriter(ctx, tt.client, tt.key, tt.config)
			require.Error(t, err)
		})
	}
}

func TestProducer_PopsInOrder(t *testing.T) {
	mr, client := setupTestRedis(t)
	mr.RPush("chunks", "foo", "bar", "baz")

	p, err := NewProducer(context.Background(), client, "chunks", DefaultConfig())
	require.NoError(t, err)

	data, err := stream.ReadAll(stream.NewPump(p))
	require.NoError(t, err)
	assert.Equal(t, "foobarbaz", string(data))
	assert.NoError(t, p.Err())
	assert.False(t, mr.Exists("chunks"))
}

func TestProducer_MissingKey(t *testing.T) {
	_, client := setupTestRedis(t)

	p, err := NewProducer(context.Background(), client, "missing", Config{})
	require.NoError(t, err)

	_, ok := p.Produce(10)
	assert.False(t, ok)
	assert.NoError(t, p.Err())
}

func TestProducer_ExhaustionIsPermanent(t *testing.T) {
	mr, client := setupTestRedis(t)

	p, err := NewProducer(context.Background(), client, "chunks", DefaultConfig())
	require.NoError(t, err)

	_, ok := p.Produce(1)
	require.False(t, ok)

	mr.RPush("chunks", "late")
	_, ok = p.Produce(1)
	assert.False(t, ok)
}

func TestProducer_RedisFailure(t *testing.T) {
	mr, client := setupTestRedis(t)
	mr.RPush("chunks", "foo")
	mr.SetError("ERR simulated failure")

	core, logs := observer.New(zapcore.WarnLevel)
	config := DefaultConfig()
	config.Logger = zap.New(core)

	p, err := NewProducer(context.Background(), client, "chunks", config)
	require.NoError(t, err)

	_, ok := p.Produce(1)
	assert.False(t, ok)
	require.Error(t, p.Err())
	assert.Contains(t, p.Err().Error(), "redislist.Produce failed")
	assert.Equal(t, 1, logs.FilterMessage("redis list pop failed").Len())
}

func TestWriter_PipeIntoList(t *testing.T) {
	mr, client := setupTestRedis(t)

	w, err := NewWriter(context.Background(), client, "chunks", DefaultConfig())
	require.NoError(t, err)

	src := stream.NewPump(source.String(strings.Repeat("x", stream.DefaultChunkSize+10), 100))
	require.NoError(t, src.Pipe(w))

	items, err := mr.List("chunks")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Len(t, items[0], stream.DefaultChunkSize)
	assert.Len(t, items[1], 10)
}

func TestWriter_SkipsEmptyWrites(t *testing.T) {
	mr, client := setupTestRedis(t)

	w, err := NewWriter(context.Background(), client, "chunks", DefaultConfig())
	require.NoError(t, err)

	require.NoError(t, w.Write(nil))
	assert.False(t, mr.Exists("chunks"))
}

func TestWriter_MaxLenAndTTL(t *testing.T) {
	mr, client := setupTestRedis(t)

	config := DefaultConfig()
	config.MaxLen = 2
	config.TTL = time.Minute

	w, err := NewWriter(context.Background(), client, "chunks", config)
	require.NoError(t, err)

	for _, s := range []string{"a", "b", "c"} {
		require.NoError(t, w.Write([]byte(s)))
	}

	items, err := mr.List("chunks")
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c"}, items)
	assert.Equal(t, time.Minute, mr.TTL("chunks"))
}

func TestWriter_Close(t *testing.T) {
	_, client := setupTestRedis(t)

	w, err := NewWriter(context.Background(), client, "chunks", DefaultConfig())
	require.NoError(t, err)
	assert.True(t, w.IsWritable())

	require.NoError(t, w.Close())
	assert.False(t, w.IsWritable())

	err = w.Write([]byte("x"))
	assert.ErrorIs(t, err, stream.ErrClosed)
	assert.Contains(t, err.Error(), "trying to write on a closed stream")
}

func TestWriter_RedisFailure(t *testing.T) {
	mr, client := setupTestRedis(t)
	mr.SetError("ERR simulated failure")

	core, logs := observer.New(zapcore.WarnLevel)
	config := DefaultConfig()
	config.Logger = zap.New(core)

	w, err := NewWriter(context.Background(), client, "chunks", config)
	require.NoError(t, err)

	err = w.Write([]byte("x"))
	require.Error(t, err)

	var opErr *gferrors.OperationError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, "Write", opErr.Operation)
	assert.Equal(t, 1, logs.FilterMessage("redis list push failed").Len())
}

func TestRoundTrip(t *testing.T) {
	_, client := setupTestRedis(t)
	ctx := context.Background()

	w, err := NewWriter(ctx, client, "roundtrip", DefaultConfig())
	require.NoError(t, err)
	require.NoError(t, stream.NewBufferFrom([]byte("hello redis")).Pipe(w))

	p, err := NewProducer(ctx, client, "roundtrip", DefaultConfig())
	require.NoError(t, err)

	s := stream.NewPump(p)
	head, err := s.Peek(5)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(head))

	data, err := stream.ReadAll(s)
	require.NoError(t, err)
	assert.Equal(t, "hello redis", string(data))
}
