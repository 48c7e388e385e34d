package handle

import "io"

// Copy transfers everything left in src to dst in one call. For adapted
// values the underlying reader and writer are used directly, so io.Copy can
// take the ReaderFrom/WriterTo shortcuts (copy_file_range, splice, sendfile).
// On success src is at end of data.
func Copy(dst, src Handle) (int64, error) {
	var r io.Reader = src
	if u, ok := src.(*wrapped); ok && u.r != nil && !u.closed {
		r = u.r
	}

	var w io.Writer = dst
	if u, ok := dst.(*wrapped); ok && u.w != nil && !u.closed {
		w = u.w
	}

	n, err := io.Copy(w, r)
	if err != nil {
		return n, err
	}

	if u, ok := src.(*wrapped); ok {
		u.eof = true
	}
	return n, nil
}
