package redislist

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	gferrors "github.com/vnykmshr/streamio/pkg/common/errors"
	"github.com/vnykmshr/streamio/pkg/streaming/stream"
)

var (
	_ stream.Producer = (*Producer)(nil)
	_ stream.Writable = (*Writer)(nil)
)

// Producer pops chunks from the head of a Redis list. An empty or missing
// list exhausts it, as does any Redis failure; Err tells the two apart.
type Producer struct {
	ctx    context.Context
	client redis.Cmdable
	key    string
	config Config
	done   bool
	err    error
}

// NewProducer creates a producer reading the list at key.
func NewProducer(ctx context.Context, client redis.Cmdable, key string, config Config) (*Producer, error) {
	config, err := validateConfig(client, key, config)
	if err != nil {
		return nil, err
	}

	return &Producer{
		ctx:    ctx,
		client: client,
		key:    key,
		config: config,
	}, nil
}

// Produce pops one chunk with LPOP. The requested size is ignored: a chunk
// is returned whole and PumpStream buffers any excess.
func (p *Producer) Produce(int) ([]byte, bool) {
	if p.done {
		return nil, false
	}

	ctx, cancel := withTimeout(p.ctx, p.config)
	defer cancel()

	chunk, err := p.client.LPop(ctx, p.key).Bytes()
	if err != nil {
		p.done = true
		if !errors.Is(err, redis.Nil) {
			p.config.Logger.Warn("redis list pop failed", zap.String("key", p.key), zap.Error(err))
			p.err = gferrors.NewOperationError("redislist", "Produce", err)
		}
		return nil, false
	}
	return chunk, true
}

// Err returns the Redis failure that exhausted the producer, if any.
func (p *Producer) Err() error {
	return p.err
}

// Writer appends every written chunk to the tail of a Redis list.
type Writer struct {
	ctx    context.Context
	client redis.Cmdable
	key    string
	config Config
	closed bool
}

// NewWriter creates a writer appending to the list at key.
func NewWriter(ctx context.Context, client redis.Cmdable, key string, config Config) (*Writer, error) {
	config, err := validateConfig(client, key, config)
	if err != nil {
		return nil, err
	}

	return &Writer{
		ctx:    ctx,
		client: client,
		key:    key,
		config: config,
	}, nil
}

// Write pushes p as one list element with RPUSH, then applies MaxLen and TTL
// in the same transaction. Empty writes are skipped.
func (w *Writer) Write(p []byte) error {
	if w.closed {
		return gferrors.NewOperationError("redislist", "Write", gferrors.ErrClosed).
			WithContext("trying to write on a closed stream")
	}
	if len(p) == 0 {
		return nil
	}

	ctx, cancel := withTimeout(w.ctx, w.config)
	defer cancel()

	pipe := w.client.TxPipeline()
	pipe.RPush(ctx, w.key, p)
	if w.config.MaxLen > 0 {
		pipe.LTrim(ctx, w.key, -w.config.MaxLen, -1)
	}
	if w.config.TTL > 0 {
		pipe.Expire(ctx, w.key, w.config.TTL)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		w.config.Logger.Warn("redis list push failed",
			zap.String("key", w.key),
			zap.Int("bytes", len(p)),
			zap.Error(err))
		return gferrors.NewOperationError("redislist", "Write", err)
	}
	return nil
}

// IsWritable reports whether the writer is still open.
func (w *Writer) IsWritable() bool {
	return !w.closed
}

// Close stops the writer. The list and the client are left untouched.
func (w *Writer) Close() error {
	w.closed = true
	return nil
}

func withTimeout(ctx context.Context, config Config) (context.Context, context.CancelFunc) {
	if config.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, config.Timeout)
}
