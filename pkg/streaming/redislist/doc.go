/*
Package redislist connects streams to Redis lists.

A Producer pops chunks from the head of a list and feeds a stream.PumpStream. A Writer is a
stream.Writable that pushes each written chunk to the tail of a list, so any Readable can be
piped into Redis:

	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})

	w, err := redislist.NewWriter(ctx, client, "chunks", redislist.DefaultConfig())
	if err != nil {
		return err
	}
	if err := src.Pipe(w); err != nil {
		return err
	}

	p, _ := redislist.NewProducer(ctx, client, "chunks", redislist.DefaultConfig())
	data, _ := stream.ReadAll(stream.NewPump(p))

An empty list exhausts the producer. A Redis failure does too, after being logged; check Err
to tell the two apart.
*/
package redislist
