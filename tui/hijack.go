package tui

import (
	"fmt"
	"os"
)

// HijackStdio swaps os.Stdin/os.Stdout/os.Stderr for the duration of fn,
// restoring the originals (and re-raising any panic from fn, after
// restoring) before returning. Grounded on
// original_source/warawara/lib_tui.py's HijackStdio/ExceptionSuppressor:
// callers that need a prompt to own the terminal even while the rest of
// the program has redirected its own stdio can run it under this wrapper.
func HijackStdio(path string, fn func() error) (err error) {
	f, openErr := os.OpenFile(path, os.O_RDWR, 0)
	if openErr != nil {
		return fmt.Errorf("tui: hijack %s: %w", path, openErr)
	}
	defer f.Close()

	origIn, origOut, origErr := os.Stdin, os.Stdout, os.Stderr
	os.Stdin, os.Stdout, os.Stderr = f, f, f
	defer func() {
		os.Stdin, os.Stdout, os.Stderr = origIn, origOut, origErr
		if r := recover(); r != nil {
			panic(r)
		}
	}()

	return fn()
}
