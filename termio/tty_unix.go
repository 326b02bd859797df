//go:build !windows

package termio

import (
	"time"

	"golang.org/x/sys/unix"
)

// fdSource is the production ByteSource: a raw file descriptor polled with
// poll(2) and read one byte at a time, mirroring
// original_source/warawara/lib_tui.py's has_data()/read_one_byte() pair.
type fdSource struct {
	fd int
}

// NewFDSource wraps fd (typically a hijacked /dev/tty handle) as a
// ByteSource.
func NewFDSource(fd int) ByteSource { return &fdSource{fd: fd} }

func (s *fdSource) Ready(timeout time.Duration) (bool, error) {
	fds := []unix.PollFd{{Fd: int32(s.fd), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, int(timeout/time.Millisecond))
	if err != nil {
		if err == unix.EINTR {
			return false, nil
		}
		return false, err
	}
	return n > 0, nil
}

func (s *fdSource) ReadByte() (byte, error) {
	var buf [1]byte
	for {
		n, err := unix.Read(s.fd, buf[:])
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return 0, err
		}
		if n == 1 {
			return buf[0], nil
		}
	}
}
