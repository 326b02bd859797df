package termio

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestEnterRawModeRejectsNonTTY exercises the real term.MakeRaw/Restore
// path against a file descriptor that definitely isn't a tty, the one
// outcome a test can assert on without a real pty.
func TestEnterRawModeRejectsNonTTY(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "rawmode")
	assert.NoError(t, err)
	defer f.Close()

	rm, err := EnterRawMode(int(f.Fd()))
	assert.Error(t, err)
	assert.Nil(t, rm)
}

func TestRawModeRestoreIsSafeOnNilState(t *testing.T) {
	var rm *RawMode
	assert.NoError(t, rm.Restore())
}
