package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/kory-dev/tmenu/pager"
)

// Align controls how a box's title and content lines are justified within
// the frame width.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// BoxOptions configures Box. A zero-value BoxOptions renders an 80-column,
// square-cornered, left-aligned box with no padding inside the borders.
type BoxOptions struct {
	Width          int // frame width in columns; 0 defaults to 80
	ContentPadding int // spaces inside the side borders; negative clamped to 0
	TitleAlign     Align
	ContentAlign   Align
	Rounded        bool
	FormatBorder   func(string) string // e.g. gray, cyan; nil leaves borders unstyled
}

// Box renders message (split on "\n") framed by a border, with an optional
// title cut into the top edge. Adapted from the teacher's Box(), trimmed to
// the fixed-width case and rewired onto pager's width/decolor helpers
// instead of re-declaring them.
func Box(w io.Writer, message, title string, opts BoxOptions) {
	width := opts.Width
	if width <= 0 {
		width = 80
	}
	pad := opts.ContentPadding
	if pad < 0 {
		pad = 0
	}
	border := opts.FormatBorder
	if border == nil {
		border = func(s string) string { return s }
	}

	tl, tr, bl, br := BarStart, "┐", BarEnd, "┘"
	if opts.Rounded {
		tl, tr, bl, br = CornerTL, CornerTR, CornerBL, CornerBR
	}

	inner := width - 2
	if inner < 0 {
		inner = 0
	}

	fmt.Fprintln(w, border(tl)+topEdge(title, inner, opts.TitleAlign, border)+border(tr))

	for _, line := range strings.Split(message, "\n") {
		fmt.Fprintln(w, border(BarV)+contentLine(line, inner, pad, opts.ContentAlign)+border(BarV))
	}

	fmt.Fprintln(w, border(bl)+strings.Repeat(BarH, inner)+border(br))
}

func topEdge(title string, inner int, align Align, border func(string) string) string {
	if title == "" {
		return strings.Repeat(BarH, inner)
	}
	label := " " + title + " "
	w := pager.Strwidth(label)
	if w >= inner {
		return label[:inner]
	}
	rest := inner - w
	left, right := justify(rest, align)
	return strings.Repeat(BarH, left) + label + strings.Repeat(BarH, right)
}

func contentLine(line string, inner, pad int, align Align) string {
	padded := strings.Repeat(" ", pad) + line + strings.Repeat(" ", pad)
	w := pager.Strwidth(padded)
	if w >= inner {
		head, _, _ := pager.Wrap(padded, inner, "")
		return head
	}
	rest := inner - w
	left, right := justify(rest, align)
	return strings.Repeat(" ", left) + padded + strings.Repeat(" ", right)
}

func justify(space int, align Align) (left, right int) {
	switch align {
	case AlignCenter:
		left = space / 2
		right = space - left
	case AlignRight:
		left, right = space, 0
	default:
		left, right = 0, space
	}
	return left, right
}
