package pager

import (
	"io"
	"os"
	"strconv"

	"golang.org/x/term"
)

// section names a region of the pager.
type section int

const (
	sectionHeader section = iota
	sectionBody
	sectionPadding
	sectionFooter
)

func (s section) String() string {
	switch s {
	case sectionHeader:
		return "header"
	case sectionBody:
		return "body"
	case sectionPadding:
		return "padding"
	case sectionFooter:
		return "footer"
	}
	return "unknown"
}

// Pagee is one line in the pager along with its section tag and visibility,
// i.e. spec.md's PageLine.
type Pagee struct {
	Text    string
	Section string
	Offset  int
	Visible bool
}

// Subpager is an ordered sequence of raw line strings belonging to one
// section of a Pager (header, body, or footer). It offers the standard
// sequence operations spec.md's data model asks for.
type Subpager struct {
	lines []string
}

// Len returns the number of lines currently stored.
func (s *Subpager) Len() int { return len(s.lines) }

// Empty reports whether the subpager has no lines.
func (s *Subpager) Empty() bool { return len(s.lines) == 0 }

// Get returns the line at idx.
func (s *Subpager) Get(idx int) string { return s.lines[idx] }

// Set assigns line at idx, extending with empty lines if idx >= Len().
func (s *Subpager) Set(idx int, line string) {
	for i := s.Len(); i <= idx; i++ {
		s.Append("")
	}
	s.lines[idx] = line
}

// Append adds line to the end.
func (s *Subpager) Append(line string) { s.lines = append(s.lines, line) }

// Extend appends every line in lines, in order.
func (s *Subpager) Extend(lines []string) {
	for _, l := range lines {
		s.Append(l)
	}
}

// Insert inserts line at index, shifting later lines down.
func (s *Subpager) Insert(index int, line string) {
	s.lines = append(s.lines, "")
	copy(s.lines[index+1:], s.lines[index:])
	s.lines[index] = line
}

// Pop removes and returns the line at index (default: the last line, when
// index < 0).
func (s *Subpager) Pop(index int) string {
	if index < 0 {
		index = len(s.lines) - 1
	}
	v := s.lines[index]
	s.lines = append(s.lines[:index], s.lines[index+1:]...)
	return v
}

// Clear removes every line.
func (s *Subpager) Clear() { s.lines = nil }

// Lines returns a snapshot of the stored lines.
func (s *Subpager) Lines() []string { return append([]string(nil), s.lines...) }

// ScrollEnd is the sentinel accepted by SetScroll meaning "scroll to the
// bottom of the body".
const ScrollEnd = -1

// Options configures a new Pager.
type Options struct {
	MaxHeight int // 0 means "use terminal size"
	MaxWidth  int // 0 means "use terminal size"
	Flex      bool
	Output    io.Writer // defaults to os.Stdout
}

// Pager is a three-section, terminal-aware, differential renderer. It
// maintains a model of what is currently drawn (display) and emits the
// minimum escape-sequence stream to reconcile it with a new desired frame.
type Pager struct {
	header Subpager
	body   Subpager
	footer Subpager

	maxHeight int
	maxWidth  int
	flex      bool
	scroll    int

	display []*string // nil entries mean "not yet drawn"
	out     io.Writer

	termSize func() (cols, rows int)
}

// New constructs a Pager with the given options.
func New(opts Options) *Pager {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	return &Pager{
		maxHeight: max0(opts.MaxHeight),
		maxWidth:  max0(opts.MaxWidth),
		flex:      opts.Flex,
		out:       out,
		termSize:  defaultTermSize,
	}
}

func max0(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

func defaultTermSize() (cols, rows int) {
	cols, rows, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || cols <= 0 || rows <= 0 {
		return 80, 24
	}
	return cols, rows
}

// Header returns the header subpager.
func (p *Pager) Header() *Subpager { return &p.header }

// Body returns the body subpager.
func (p *Pager) Body() *Subpager { return &p.body }

// Footer returns the footer subpager.
func (p *Pager) Footer() *Subpager { return &p.footer }

// TermWidth returns the current terminal column count.
func (p *Pager) TermWidth() int { c, _ := p.termSize(); return c }

// TermHeight returns the current terminal row count.
func (p *Pager) TermHeight() int { _, r := p.termSize(); return r }

// MaxHeight returns the configured height cap (0 = unset).
func (p *Pager) MaxHeight() int { return p.maxHeight }

// SetMaxHeight sets the height cap; negative values clamp to 0.
func (p *Pager) SetMaxHeight(v int) { p.maxHeight = max0(v) }

// MaxWidth returns the configured width cap (0 = unset).
func (p *Pager) MaxWidth() int { return p.maxWidth }

// SetMaxWidth sets the width cap; negative values clamp to 0.
func (p *Pager) SetMaxWidth(v int) { p.maxWidth = max0(v) }

// Height is the effective frame height: min(maxHeight or termHeight,
// termHeight, total content height or maxHeight when flex).
func (p *Pager) Height() int {
	if p.flex {
		// max_height == 0 with flex is specified to reserve zero lines,
		// rather than silently falling back to content-driven sizing.
		if p.maxHeight == 0 {
			return 0
		}
		return min3(p.maxHeight, p.TermHeight(), p.maxHeight)
	}
	total := p.header.Len() + p.body.Len() + p.footer.Len()
	cap := p.maxHeight
	if cap == 0 {
		cap = p.TermHeight()
	}
	return min3(cap, p.TermHeight(), total)
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

// Width is the effective frame width: min(maxWidth or termWidth, termWidth).
func (p *Pager) Width() int {
	cap := p.maxWidth
	if cap == 0 {
		cap = p.TermWidth()
	}
	if p.TermWidth() < cap {
		return p.TermWidth()
	}
	return cap
}

// contentHeight is the budget left for the body after header/footer.
func (p *Pager) contentHeight() int {
	ch := p.Height() - p.header.Len() - p.footer.Len()
	if ch < 0 {
		return 0
	}
	return ch
}

// Scroll returns the current body-row offset, re-clamping first so a
// terminal resize or content-length change observed since the last mutation
// is reflected (spec.md's "re-entrant reads of scroll re-clamp").
func (p *Pager) Scroll() int {
	p.clampScroll()
	return p.scroll
}

// RefreshScroll re-clamps scroll without returning a value — the
// side-effect-only counterpart to Scroll() for observers that must not
// trigger a read with a write side effect (spec.md §9 Open Question).
func (p *Pager) RefreshScroll() { p.clampScroll() }

// SetScroll sets the body-row offset; pass ScrollEnd to scroll to the
// bottom. The value is clamped to [0, max(0, len(body)-contentHeight)].
func (p *Pager) SetScroll(v int) {
	if v == ScrollEnd {
		v = p.body.Len()
	}
	p.scroll = v
	p.clampScroll()
}

func (p *Pager) clampScroll() {
	maxScroll := p.body.Len() - p.contentHeight()
	if maxScroll < 0 {
		maxScroll = 0
	}
	if p.scroll < 0 {
		p.scroll = 0
	}
	if p.scroll > maxScroll {
		p.scroll = maxScroll
	}
}

// Get returns the Pagee describing body row idx (section "body").
func (p *Pager) Get(idx int) Pagee {
	ch := p.contentHeight()
	scroll := p.Scroll()
	return Pagee{
		Text:    p.body.Get(idx),
		Section: "body",
		Offset:  p.header.Len() - scroll + idx,
		Visible: scroll <= idx && idx <= scroll+ch-1,
	}
}

// Set assigns body row idx, extending with empty lines as needed.
func (p *Pager) Set(idx int, line string) { p.body.Set(idx, line) }

// Append appends a line to the body.
func (p *Pager) Append(line string) { p.body.Append(line) }

// Len returns the number of body lines.
func (p *Pager) Len() int { return p.body.Len() }

// Clear empties all three sections.
func (p *Pager) Clear() {
	p.header.Clear()
	p.body.Clear()
	p.footer.Clear()
}

type alloc struct{ header, body, padding, footer int }

func (a *alloc) get(s section) int {
	switch s {
	case sectionHeader:
		return a.header
	case sectionBody:
		return a.body
	case sectionPadding:
		return a.padding
	case sectionFooter:
		return a.footer
	}
	return 0
}

func (a *alloc) add(s section, n int) {
	switch s {
	case sectionHeader:
		a.header += n
	case sectionBody:
		a.body += n
	case sectionPadding:
		a.padding += n
	case sectionFooter:
		a.footer += n
	}
}

// allocate implements the deterministic height-allocation algorithm of
// spec.md §4.2: up to 1 line reserved for header then footer, then grow
// header then footer while room remains, then the rest to body (padding
// fills flex gaps).
func (p *Pager) allocate() alloc {
	var a alloc
	h := p.Height()
	for i := 0; i < h; i++ {
		var s section
		switch {
		case !p.header.Empty() && a.header == 0:
			s = sectionHeader
		case !p.footer.Empty() && a.footer == 0:
			s = sectionFooter
		case a.header < p.header.Len():
			s = sectionHeader
		case a.footer < p.footer.Len():
			s = sectionFooter
		case a.body < p.body.Len():
			s = sectionBody
		default:
			s = sectionPadding
		}
		a.add(s, 1)
	}
	return a
}

// Data yields every Pagee the pager currently knows about across all
// sections, in display order, annotating which are visible in the current
// frame.
func (p *Pager) Data() []Pagee {
	a := p.allocate()
	scroll := p.Scroll()

	type seg struct {
		name  string
		lines []string
		base  int
	}
	padding := make([]string, a.padding)
	segs := []seg{
		{"header", p.header.Lines(), 0},
		{"body", p.body.Lines(), p.header.Len() - scroll},
		{"padding", padding, a.header + a.body},
		{"footer", p.footer.Lines(), a.header + a.body + a.padding},
	}

	remaining := alloc{header: a.header, body: a.body, padding: a.padding, footer: a.footer}
	atLine := 0
	out := make([]Pagee, 0, p.header.Len()+p.body.Len()+len(padding)+p.footer.Len())

	sectionOf := map[string]section{"header": sectionHeader, "body": sectionBody, "padding": sectionPadding, "footer": sectionFooter}

	for _, sg := range segs {
		sc := sectionOf[sg.name]
		for idx, line := range sg.lines {
			offset := idx + sg.base
			visible := offset >= atLine && remaining.get(sc) > 0
			out = append(out, Pagee{Text: line, Section: sg.name, Offset: offset, Visible: visible})
			if visible {
				remaining.add(sc, -1)
				atLine++
			}
		}
	}
	return out
}

// Preview returns the text of every currently-visible Pagee, in order —
// exactly what the next Render call will draw.
func (p *Pager) Preview() []string {
	data := p.Data()
	out := make([]string, 0, len(data))
	for _, pg := range data {
		if pg.Visible {
			out = append(out, pg.Text)
		}
	}
	return out
}

// Display returns a snapshot of what render last drew to the screen.
func (p *Pager) Display() []string {
	out := make([]string, len(p.display))
	for i, s := range p.display {
		if s != nil {
			out[i] = *s
		}
	}
	return out
}

// Home is the index of the first body row.
func (p *Pager) Home() int { return 0 }

// End is the index of the last body row.
func (p *Pager) End() int { return p.body.Len() - 1 }

// Empty reports whether the pager has no content in any section.
func (p *Pager) Empty() bool {
	return p.header.Empty() && p.body.Empty() && p.footer.Empty()
}

func strp(s string) *string { return &s }

// Render reconciles the terminal with the pager's current desired frame,
// writing only the escape-sequence delta (per spec.md §4.2's differential
// render protocol) and returns the chunks it wrote, in order, for tests.
func (p *Pager) Render(force bool) []string {
	var chunks []string
	write := func(s string) {
		chunks = append(chunks, s)
		io.WriteString(p.out, s)
	}

	termHeight := p.TermHeight()
	if len(p.display) > termHeight {
		p.display = p.display[len(p.display)-termHeight:]
	}
	if len(p.display) == 0 {
		p.display = []*string{nil}
	}

	visible := p.Preview()
	cursor := len(p.display) - 1

	for i := cursor; i > len(visible)-1 && i >= 0; i-- {
		write("\r\x1b[K\x1b[A")
		p.display = p.display[:len(p.display)-1]
		cursor--
	}

	if len(visible) == 0 {
		write("\r\x1b[K")
		if len(p.display) > 0 {
			p.display = p.display[:len(p.display)-1]
		}
		return chunks
	}

	width := p.Width()
	for idx, line := range visible {
		isLast := idx == len(visible)-1

		for len(p.display) <= idx {
			p.display = append(p.display, nil)
		}

		if !force && !isLast && p.display[idx] != nil && *p.display[idx] == line {
			continue
		}

		if cursor != idx {
			dist := cursor - idx
			dir := "A"
			if dist < 0 {
				dist = -dist
				dir = "B"
			}
			if dist > len(p.display)-1 {
				dist = len(p.display) - 1
			}
			write("\r\x1b[" + distStr(dist) + dir)
		}

		wline, _, _ := Wrap(line, width, "")
		p.display[idx] = strp(wline)

		if isLast {
			write("\r" + wline + "\x1b[K")
		} else {
			write("\r" + wline + "\x1b[K\n")
		}

		if isLast {
			cursor = idx
		} else {
			cursor = idx + 1
		}
	}

	return chunks
}

func distStr(n int) string {
	return strconv.Itoa(n)
}
