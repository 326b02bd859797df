//go:build windows

package termio

// raiseSignal has no terminal-control-byte-to-signal mapping on Windows;
// the uncaptured byte is simply not delivered as a process signal.
func raiseSignal(k signalKind) error {
	return nil
}
