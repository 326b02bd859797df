package tui

import (
	"fmt"
	"io"
)

// MessageOptions configures the one-line helpers below. A zero-value
// MessageOptions writes a bar with no hint.
type MessageOptions struct {
	Hint string
}

// Cancel prints a cancel-styled line: a closing bar followed by the
// message in red. Grounded on the teacher's Cancel(), trimmed to a single
// io.Writer rather than the session-resolved terminal.
func Cancel(w io.Writer, message string, opts ...MessageOptions) {
	hint := optHint(opts)
	fmt.Fprintf(w, "%s\n%s  %s\n", gray(BarV), gray(BarEnd), red(message))
	if hint != "" {
		fmt.Fprintf(w, "   %s\n", gray(hint))
	}
	fmt.Fprintln(w)
}

// Intro prints the opening bar and a bold title.
func Intro(w io.Writer, title string, opts ...MessageOptions) {
	hint := optHint(opts)
	fmt.Fprintf(w, "%s  %s\n", gray(BarStart), bold(title))
	if hint != "" {
		fmt.Fprintf(w, "%s  %s\n", gray(BarV), gray(hint))
	} else {
		fmt.Fprintf(w, "%s\n", gray(BarV))
	}
}

// Outro prints the closing bar and a bold message.
func Outro(w io.Writer, message string, opts ...MessageOptions) {
	hint := optHint(opts)
	fmt.Fprintf(w, "%s\n%s  %s\n", gray(BarV), gray(BarEnd), bold(message))
	if hint != "" {
		fmt.Fprintf(w, "   %s\n", gray(hint))
	}
	fmt.Fprintln(w)
}

// Message prints a submit-styled status line, optionally followed by a
// gray hint on the next line.
func Message(w io.Writer, message string, opts ...MessageOptions) {
	hint := optHint(opts)
	fmt.Fprintf(w, "%s\n", gray(BarV))
	fmt.Fprintf(w, "%s  %s\n", green(GlyphSubmit), bold(message))
	if hint != "" {
		fmt.Fprintf(w, "%s  %s\n", gray(BarV), gray(hint))
	} else {
		fmt.Fprintf(w, "%s\n", gray(BarV))
	}
}

func optHint(opts []MessageOptions) string {
	if len(opts) == 0 {
		return ""
	}
	return opts[0].Hint
}
