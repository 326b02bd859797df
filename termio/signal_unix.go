//go:build !windows

package termio

import (
	"os"
	"syscall"
)

// raiseSignal delivers sig to the current process, the Go equivalent of the
// source library's os.kill(os.getpid(), sig) for an uncaptured control byte.
func raiseSignal(k signalKind) error {
	var sig syscall.Signal
	switch k {
	case sigInt:
		sig = syscall.SIGINT
	case sigTstp:
		sig = syscall.SIGTSTP
	case sigQuit:
		sig = syscall.SIGQUIT
	default:
		return nil
	}
	return syscall.Kill(os.Getpid(), sig)
}
