package tui

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSpinnerStartRendersImmediately(t *testing.T) {
	var buf bytes.Buffer
	sp := NewSpinner(&buf, SpinnerOptions{Delay: time.Millisecond})
	sp.Start("working")
	time.Sleep(5 * time.Millisecond)
	sp.Stop("done", StatusSubmit)

	out := buf.String()
	assert.Contains(t, out, "working")
	assert.Contains(t, out, "done")
	assert.False(t, sp.Cancelled())
}

func TestSpinnerStopMarksCancelled(t *testing.T) {
	var buf bytes.Buffer
	sp := NewSpinner(&buf, SpinnerOptions{Delay: time.Millisecond})
	sp.Start("working")
	sp.Stop("", StatusCancel)
	assert.True(t, sp.Cancelled())
}

func TestSpinnerDoubleStartIsNoop(t *testing.T) {
	var buf bytes.Buffer
	sp := NewSpinner(&buf, SpinnerOptions{Delay: time.Millisecond})
	sp.Start("first")
	sp.Start("second")
	sp.Stop("", StatusSubmit)
}
