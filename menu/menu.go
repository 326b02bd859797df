// Package menu implements the interactive, paged menu engine: key dispatch
// with bubbling, a wrapping/clamping cursor, rate-limited rendering, and the
// selection/teardown state machine built on top of package pager and
// package key.
package menu

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/kory-dev/tmenu/key"
	"github.com/kory-dev/tmenu/pager"
)

// BoxMode selects how a Menu tracks selection.
type BoxMode int

const (
	BoxNone BoxMode = iota
	BoxSingle
	BoxMulti
)

// ErrNotATTY is returned by Interact when the menu has no KeySource to read
// keys from. Interact does not itself check whether the output is a
// terminal.
var ErrNotATTY = errors.New("menu: output is not a tty")

// KeySource supplies the key sequence stream Interact reads from. Package
// termio's InputReader implements it; tests can substitute a fake.
type KeySource interface {
	ReadKey(ctx context.Context) (key.Key, error)
}

// FormatFunc renders one row. cursorGlyph is the cursor symbol when this row
// is under the cursor, or a same-width blank otherwise; checkGlyph is the
// check mark when the item is selected or is a meta row, or a same-width
// blank otherwise.
type FormatFunc func(m *Menu, cursorGlyph string, item *MenuItem, checkGlyph string, box [2]string) string

// Worker is a background goroutine spawned via Menu.Spawn; the menu joins
// every worker on teardown, mirroring the source library's MenuThread
// registry.
type Worker struct {
	done chan struct{}
}

// Join blocks until the worker's function returns.
func (w *Worker) Join() { <-w.done }

// Menu owns a list of items, a cursor, a pager, and the key-handler pair
// (item-level then menu-level) that FeedKey dispatches through. Grounded on
// original_source/warawara/lib_tui.py's Menu/MenuItem/MenuCursor/
// MenuKeyHandler.
type Menu struct {
	mu sync.Mutex

	Title   string
	Message string

	box       BoxMode
	checkChar string
	format    FormatFunc

	cursorSymbol string
	cursor       *Cursor
	items        []*MenuItem

	registry *key.Registry
	onkey    *KeyHandler

	pager      *pager.Pager
	throttler  *Throttler
	outcome    *LoopOutcome
	active     bool
	keySource  KeySource
	threads    []*Worker
	threadsMu  sync.Mutex
}

// Options configures a new Menu.
type Options struct {
	MaxHeight    int
	Wrap         bool
	Format       FormatFunc
	CursorSymbol string
	Box          BoxMode
	CheckChar    string
	Registry     *key.Registry
	KeySource    KeySource
}

// New builds a Menu titled title, seeded with one item per entry in items.
func New(title string, items []string, opts Options) *Menu {
	if opts.CursorSymbol == "" {
		opts.CursorSymbol = ">"
	}
	if opts.CheckChar == "" {
		opts.CheckChar = "*"
	}
	reg := opts.Registry
	if reg == nil {
		reg = key.Default
	}

	m := &Menu{
		Title:        title,
		box:          opts.Box,
		checkChar:    opts.CheckChar,
		cursorSymbol: opts.CursorSymbol,
		registry:     reg,
		pager:        pager.New(pager.Options{MaxHeight: opts.MaxHeight}),
		keySource:    opts.KeySource,
	}
	m.onkey = NewKeyHandler(reg)
	m.cursor = NewCursor(0)
	m.cursor.Wrap = opts.Wrap
	m.cursor.owner = m
	m.throttler = NewThrottler(func(args []any, kwargs map[string]any) {
		force, _ := kwargs["force"].(bool)
		m.doRender(force)
	}, time.Second/60)

	if opts.Format != nil {
		m.format = opts.Format
	} else if m.box != BoxNone {
		m.format = defaultBoxFormat
	} else {
		m.format = defaultPlainFormat
	}

	for _, text := range items {
		m.appendItem(text, false)
	}
	m.bindDefaults()
	return m
}

func defaultPlainFormat(m *Menu, cursorGlyph string, item *MenuItem, checkGlyph string, box [2]string) string {
	return fmt.Sprintf("%s %s", cursorGlyph, item.Text)
}

func defaultBoxFormat(m *Menu, cursorGlyph string, item *MenuItem, checkGlyph string, box [2]string) string {
	return fmt.Sprintf("%s %s%s%s %s", cursorGlyph, box[0], checkGlyph, box[1], item.Text)
}

// bindDefaults wires the navigation/commit/cancel keys any usable interactive
// menu needs; the source library leaves this to the application, but a
// complete rebuild of the toolkit ships usable defaults, overridable via
// Unbind/Bind.
func (m *Menu) bindDefaults() {
	m.Bind("up", func(ctx HandlerContext) any { m.MoveCursor(-1); return true })
	m.Bind("down", func(ctx HandlerContext) any { m.MoveCursor(1); return true })
	m.Bind("home", func(ctx HandlerContext) any { m.CursorTo(ByIndex(0)); return true })
	m.Bind("end", func(ctx HandlerContext) any { m.CursorTo(ByIndex(m.Len() - 1)); return true })
	m.Bind("escape", func(ctx HandlerContext) any { m.Quit(); return true })
	m.Bind("enter", func(ctx HandlerContext) any { m.Done(); return true })
	if m.box == BoxMulti {
		m.Bind("space", func(ctx HandlerContext) any {
			if it := m.CurrentItem(); it != nil {
				m.Toggle(it)
			}
			return true
		})
	}
}

// Bind is shorthand for the menu-level KeyHandler's Bind.
func (m *Menu) Bind(args ...any) *Menu {
	m.onkey.Bind(args...)
	return m
}

// Unbind is shorthand for the menu-level KeyHandler's Unbind.
func (m *Menu) Unbind(args ...any) {
	m.onkey.Unbind(args...)
}

// Len returns the number of items.
func (m *Menu) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// Item returns the item at idx.
func (m *Menu) Item(idx int) *MenuItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.items[idx]
}

// CurrentItem returns the item under the cursor, or nil if the menu is
// empty.
func (m *Menu) CurrentItem() *MenuItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentItemLocked()
}

func (m *Menu) currentItemLocked() *MenuItem {
	p := m.cursor.Pos()
	if p < 0 {
		return nil
	}
	return m.items[p]
}

// Cursor exposes the cursor for read access (position, length).
func (m *Menu) Cursor() *Cursor { return m.cursor }

func (m *Menu) appendItem(text string, meta bool) *MenuItem {
	it := newMenuItem(m, text)
	it.Meta = meta
	m.items = append(m.items, it)
	m.cursor.SetLen(len(m.items))
	return it
}

// Append adds a new item with the given text.
func (m *Menu) Append(text string) *MenuItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.appendItem(text, false)
}

// Insert adds a new item with the given text at index, shifting later items.
func (m *Menu) Insert(index int, text string) *MenuItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	it := newMenuItem(m, text)
	m.items = append(m.items, nil)
	copy(m.items[index+1:], m.items[index:])
	m.items[index] = it
	m.cursor.SetLen(len(m.items))
	return it
}

// Extend adds one item per entry in texts, in order.
func (m *Menu) Extend(texts []string) []*MenuItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*MenuItem, 0, len(texts))
	for _, t := range texts {
		out = append(out, m.appendItem(t, false))
	}
	return out
}

// Swap exchanges the positions of the items named by a and b.
func (m *Menu) Swap(a, b Selector) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ia, ib := a.resolve(m), b.resolve(m)
	if ia < 0 || ib < 0 {
		return
	}
	m.items[ia], m.items[ib] = m.items[ib], m.items[ia]
}

// MoveTo relocates item to index to, shifting the items between.
func (m *Menu) MoveTo(item Selector, to Selector) {
	m.mu.Lock()
	defer m.mu.Unlock()
	from := item.resolve(m)
	dst := to.resolve(m)
	if from < 0 || dst < 0 || from == dst {
		return
	}
	old := m.items
	var items []*MenuItem
	switch {
	case from < dst: // move down
		items = append(items, old[:from]...)
		items = append(items, old[from+1:dst]...)
		items = append(items, old[dst])
		items = append(items, old[from])
		items = append(items, old[dst+1:]...)
	default: // move up
		items = append(items, old[:dst]...)
		items = append(items, old[from])
		items = append(items, old[dst])
		items = append(items, old[dst+1:from]...)
		items = append(items, old[from+1:]...)
	}
	m.items = items
}

// Select marks item selected; for BoxSingle it first unselects every other
// item.
func (m *Menu) Select(sel Selector) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.selectLocked(sel)
}

func (m *Menu) selectLocked(sel Selector) {
	idx := sel.resolve(m)
	if idx < 0 {
		return
	}
	if m.box == BoxSingle {
		m.unselectAllLocked()
	}
	m.items[idx].selected = true
}

// Unselect clears item's selection flag.
func (m *Menu) Unselect(sel Selector) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.unselectLocked(sel)
}

func (m *Menu) unselectLocked(sel Selector) {
	if idx := sel.resolve(m); idx >= 0 {
		m.items[idx].selected = false
	}
}

// Toggle flips item's selection flag.
func (m *Menu) Toggle(it *MenuItem) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.toggleLocked(it)
}

func (m *Menu) toggleLocked(it *MenuItem) {
	if it.selected {
		it.selected = false
	} else {
		m.selectLocked(ByItem(it))
	}
}

// SelectAll selects every item; a no-op unless Box is BoxMulti.
func (m *Menu) SelectAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.selectAllLocked()
}

func (m *Menu) selectAllLocked() {
	if m.box != BoxMulti {
		return
	}
	for _, it := range m.items {
		it.selected = true
	}
}

// UnselectAll clears every item's selection flag.
func (m *Menu) UnselectAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.unselectAllLocked()
}

func (m *Menu) unselectAllLocked() {
	for _, it := range m.items {
		it.selected = false
	}
}

// Selected returns the current selection: a *MenuItem for BoxNone/BoxSingle
// (or nil), or a []*MenuItem for BoxMulti. Meta items never participate.
func (m *Menu) Selected() any {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.selectedLocked()
}

func (m *Menu) selectedLocked() any {
	var sel []*MenuItem
	for _, it := range m.items {
		if it.selected && !it.Meta {
			sel = append(sel, it)
		}
	}
	if m.box == BoxMulti {
		return sel
	}
	if len(sel) > 0 {
		return sel[0]
	}
	return (*MenuItem)(nil)
}

// MoveCursor shifts the cursor by delta, wrapping or clamping per the
// cursor's configuration, and pulls the pager's scroll to keep it visible.
func (m *Menu) MoveCursor(delta int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cursor.Move(delta)
	m.scrollToContain(m.cursor.Pos())
}

// CursorTo jumps the cursor to sel and scrolls it into view.
func (m *Menu) CursorTo(sel Selector) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cursorToLocked(sel)
}

func (m *Menu) cursorToLocked(sel Selector) {
	idx := sel.resolve(m)
	if idx < 0 {
		return
	}
	m.cursor.To(idx)
	m.scrollToContain(idx)
}

// scrollToContain scrolls the pager so body row idx becomes visible. It
// never moves the cursor: an idx at or beyond the pager's current body
// length (rows not rendered yet) is left as it is, with no scrolling and
// no pulling of the cursor back onto a visible row.
func (m *Menu) scrollToContain(idx int) {
	if idx < 0 || idx >= m.pager.Len() {
		return
	}
	if m.pager.Get(idx).Visible {
		return
	}
	if idx < m.pager.Scroll() {
		m.pager.SetScroll(idx)
		return
	}
	for i := idx; i > 0; i-- {
		if m.pager.Get(i).Visible {
			m.pager.SetScroll(m.pager.Scroll() + idx - i)
			break
		}
	}
}

// pullCursor brings the cursor back onto a visible row after the pager's
// viewport moved out from under it (e.g. an external Scroll call).
func (m *Menu) pullCursor() {
	idx := m.cursor.Pos()
	if idx < 0 || idx >= m.pager.Len() {
		return
	}
	if m.pager.Get(idx).Visible {
		return
	}
	if idx < m.pager.Scroll() {
		m.cursor.To(m.pager.Scroll())
		return
	}
	for i := idx; i > 0; i-- {
		if m.pager.Get(i).Visible {
			m.cursor.To(i)
			return
		}
	}
}

// Scroll shifts the body viewport by count rows and pulls the cursor back
// into view if it fell off screen.
func (m *Menu) Scroll(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pager.SetScroll(m.pager.Scroll() + count)
	m.pullCursor()
}

// Done commits the current selection and unwinds FeedKey with an outcome
// carrying Selected(). For a BoxNone menu, the row under the cursor is
// selected first.
func (m *Menu) Done() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.doneLocked()
}

func (m *Menu) doneLocked() {
	if m.box == BoxNone {
		m.selectLocked(ByIndex(m.cursor.Pos()))
	}
	o := LoopOutcome{kind: outcomeDone, selection: m.selectedLocked()}
	m.outcome = &o
}

// Quit abandons the interaction; Interact returns (nil, nil).
func (m *Menu) Quit() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quitLocked()
}

func (m *Menu) quitLocked() {
	o := LoopOutcome{kind: outcomeQuit}
	m.outcome = &o
}

// FeedKey dispatches k through the current item's handler, then (if
// unhandled) the menu-level handler, per spec.md §4.4's bubbling rule. It
// returns Continue() unless a callback called Done or Quit. The main lock is
// held only for FeedKey's own bookkeeping, not across Handle: handlers are
// arbitrary callbacks (bindDefaults' own included) that call back into
// Menu's public, individually-locking methods, and sync.Mutex isn't
// reentrant.
func (m *Menu) FeedKey(k key.Key) LoopOutcome {
	m.mu.Lock()
	m.outcome = nil
	it := m.currentItemLocked()
	m.mu.Unlock()

	if it != nil {
		if _, handled := it.OnKey().Handle(k, OwnerItem, m, it); handled {
			if o, ok := m.consumeOutcome(); ok {
				return o
			}
			return Continue()
		}
	}

	m.onkey.Handle(k, OwnerMenu, m, nil)
	if o, ok := m.consumeOutcome(); ok {
		return o
	}
	return Continue()
}

// consumeOutcome atomically reads and clears the outcome a Done/Quit
// callback set during the Handle call FeedKey just made.
func (m *Menu) consumeOutcome() (LoopOutcome, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.outcome == nil {
		return LoopOutcome{}, false
	}
	o := *m.outcome
	m.outcome = nil
	return o, true
}

func pad(s string) string {
	if s == "" {
		return ""
	}
	return strings.Repeat(" ", pager.Strwidth(s))
}

// doRender rebuilds the pager's frame from current state and draws it. It is
// a no-op when the menu is inactive unless force is set, matching the
// source's guard against rendering after teardown. Holds the main lock for
// its whole body so a background Spawn goroutine can't mutate m.items mid
// frame-build; FormatFunc implementations are assumed pure and must not
// call back into Menu's locking methods.
func (m *Menu) doRender(force bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.active && !force {
		return
	}

	m.pager.Clear()
	if m.Title != "" {
		for _, line := range strings.Split(m.Title, "\n") {
			m.pager.Header().Append(line)
		}
	}

	cursorPos := m.cursor.Pos()
	for idx, item := range m.items {
		cursorGlyph := pad(m.cursorSymbol)
		if idx == cursorPos {
			cursorGlyph = m.cursorSymbol
		}

		checkGlyph := m.checkChar
		if item.selected || item.Meta {
			// shown as-is
		} else {
			checkGlyph = pad(checkGlyph)
		}

		fmtFn := m.format
		if item.Format != nil {
			fmtFn = item.Format
		}
		m.pager.Set(idx, fmtFn(m, cursorGlyph, item, checkGlyph, boxGlyphs(m.box)))
	}

	m.pager.Footer().Append(m.Message)
	m.pager.Render(false)
}

func boxGlyphs(b BoxMode) [2]string {
	switch b {
	case BoxSingle:
		return [2]string{"(", ")"}
	case BoxMulti:
		return [2]string{"[", "]"}
	default:
		return [2]string{"", ""}
	}
}

// Refresh schedules a render. force=true renders synchronously, guaranteeing
// the frame is up to date when Refresh returns; force=false is rate-limited
// and may be dropped if the menu is already mid-render.
func (m *Menu) Refresh(force bool) {
	m.throttler.Call(force, nil, map[string]any{"force": force})
}

// Spawn starts fn in its own goroutine, passing the menu so fn may call
// Refresh from outside the interact loop. The worker is tracked and joined
// on teardown.
func (m *Menu) Spawn(fn func(*Menu)) *Worker {
	w := &Worker{done: make(chan struct{})}
	m.threadsMu.Lock()
	m.threads = append(m.threads, w)
	m.threadsMu.Unlock()

	go func() {
		defer close(w.done)
		fn(m)
	}()
	return w
}

func (m *Menu) joinWorkers() {
	m.threadsMu.Lock()
	workers := m.threads
	m.threads = nil
	m.threadsMu.Unlock()
	for _, w := range workers {
		w.Join()
	}
}

// Interact runs the interactive loop: render, read a key, dispatch, repeat,
// until Done or Quit (or ctx cancellation). It returns the committed
// selection (nil on Quit/cancel) or a non-nil error if reading failed.
func (m *Menu) Interact(ctx context.Context) (any, error) {
	if m.keySource == nil {
		return nil, ErrNotATTY
	}

	m.mu.Lock()
	m.active = true
	m.mu.Unlock()
	defer func() {
		m.mu.Lock()
		m.active = false
		m.mu.Unlock()
		m.Refresh(true)
		m.joinWorkers()
	}()

	for {
		m.Refresh(true)

		k, err := m.keySource.ReadKey(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, nil
			}
			return nil, err
		}

		outcome := m.FeedKey(k)
		switch {
		case outcome.IsQuit():
			return nil, nil
		case outcome.IsDone():
			return outcome.Selection(), nil
		}
	}
}
