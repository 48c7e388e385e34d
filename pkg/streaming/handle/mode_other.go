//go:build !unix

package handle

import "os"

// fileMode cannot query access flags here; every open file is treated as
// read-write and the OS rejects the wrong direction at call time.
func fileMode(f *os.File) (Mode, error) {
	rc, err := f.SyscallConn()
	if err != nil {
		return 0, err
	}
	if err := rc.Control(func(uintptr) {}); err != nil {
		return 0, err
	}
	return ModeReadWrite, nil
}
