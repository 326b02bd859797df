package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoxRendersTitleInTopEdge(t *testing.T) {
	var buf bytes.Buffer
	Box(&buf, "hello", "title", BoxOptions{Width: 20})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.True(t, strings.Contains(lines[0], "title"))
	assert.True(t, strings.HasPrefix(lines[0], BarStart))
	assert.True(t, strings.HasSuffix(lines[len(lines)-1], "┘"))
}

func TestBoxRendersFrameForOverlongContent(t *testing.T) {
	var buf bytes.Buffer
	Box(&buf, strings.Repeat("x", 40), "", BoxOptions{Width: 10})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.GreaterOrEqual(t, len(lines), 3)
}

func TestMessagesEndToEnd(t *testing.T) {
	var buf bytes.Buffer
	Intro(&buf, "Starting")
	Message(&buf, "working", MessageOptions{Hint: "please wait"})
	Outro(&buf, "Done")

	out := buf.String()
	assert.Contains(t, out, "Starting")
	assert.Contains(t, out, "working")
	assert.Contains(t, out, "please wait")
	assert.Contains(t, out, "Done")
}

func TestCancelIncludesHint(t *testing.T) {
	var buf bytes.Buffer
	Cancel(&buf, "aborted", MessageOptions{Hint: "ctrl-c"})
	assert.Contains(t, buf.String(), "aborted")
	assert.Contains(t, buf.String(), "ctrl-c")
}
