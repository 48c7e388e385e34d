/*
Package handle defines the boundary between streams and the native I/O layer.

A Handle is an already-open byte stream: a file, a pipe, a socket or an
in-memory buffer. This package never opens anything itself; it adapts values
the caller already owns and reports what they can do.

# Adapting values

	h, err := handle.From(file)         // *os.File, mode read back from the descriptor
	h := handle.FromConn(conn)          // net.Conn, read-write, not seekable
	h := handle.FromReader(resp.Body)   // read-only
	h := handle.NewMemory(nil, handle.ModeReadWrite)

From rejects anything that is not stream-like with an
*errors.InvalidResourceError naming the received Go type.

# End of data

Read returns io.EOF at end of data and latches the EOF indicator, mirroring a
C stdio end-of-file flag: it is only set after a read hits the end, and a
successful Seek clears it.

# Bulk copy

Copy moves everything remaining in one handle into another and lets the Go
runtime pick kernel-level shortcuts where both sides are files or sockets.
*/
package handle
