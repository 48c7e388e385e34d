package redislist_test

import (
	"context"
	"fmt"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/vnykmshr/streamio/pkg/streaming/redislist"
	"github.com/vnykmshr/streamio/pkg/streaming/stream"
)

// Example demonstrates piping a stream through a Redis list.
func Example() {
	mr, err := miniredis.Run()
	if err != nil {
		fmt.Println(err)
		return
	}
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	ctx := context.Background()

	w, _ := redislist.NewWriter(ctx, client, "chunks", redislist.DefaultConfig())
	_ = stream.NewBufferFrom([]byte("first")).Pipe(w)
	_ = stream.NewBufferFrom([]byte(" second")).Pipe(w)

	p, _ := redislist.NewProducer(ctx, client, "chunks", redislist.DefaultConfig())
	data, _ := stream.ReadAll(stream.NewPump(p))
	fmt.Println(string(data))

	// Output:
	// first second
}
