//go:build unix

package handle

import (
	"os"

	"golang.org/x/sys/unix"
)

// fileMode reads the access mode the descriptor was opened with.
func fileMode(f *os.File) (Mode, error) {
	rc, err := f.SyscallConn()
	if err != nil {
		return 0, err
	}

	var flags int
	var ferr error
	if err := rc.Control(func(fd uintptr) {
		flags, ferr = unix.FcntlInt(fd, unix.F_GETFL, 0)
	}); err != nil {
		return 0, err
	}
	if ferr != nil {
		return 0, ferr
	}

	switch flags & unix.O_ACCMODE {
	case unix.O_RDONLY:
		return ModeRead, nil
	case unix.O_WRONLY:
		return ModeWrite, nil
	default:
		return ModeReadWrite, nil
	}
}
