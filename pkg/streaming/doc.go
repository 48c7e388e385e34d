/*
Package streaming groups the stream I/O packages. It contains no code of its own.

  - stream: the stream kinds, their capability interfaces and io adapters
  - handle: the Handle contract and adapters for files, connections and io values
  - source: producers for PumpStream
  - redislist: Redis list producer and writer

Basic usage:

	f, err := os.Open("data.bin")
	if err != nil {
		return err
	}
	s, err := stream.NewResource(f)
	if err != nil {
		return err
	}
	defer s.Close()

	magic, _ := s.Peek(4)
	dst := stream.NewBuffer()
	err = s.Pipe(dst)
*/
package streaming
