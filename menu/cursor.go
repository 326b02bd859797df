package menu

// Cursor tracks the currently highlighted index into a list of n items, with
// wraparound or clamping movement depending on its Wrap setting.
// Grounded on original_source/warawara/lib_tui.py's MenuCursor.
type Cursor struct {
	pos   int
	n     int
	Wrap  bool
	owner *Menu // optional; set by Menu so Compare can resolve *MenuItem operands
}

// NewCursor builds a Cursor over n items, starting at position 0, with
// clamping (non-wrapping) movement by default.
func NewCursor(n int) *Cursor {
	return &Cursor{n: n}
}

// Pos returns the current index. -1 when there are no items.
func (c *Cursor) Pos() int {
	if c.n <= 0 {
		return -1
	}
	return c.pos
}

// Len returns the number of items the cursor moves across.
func (c *Cursor) Len() int { return c.n }

// SetLen updates the item count, clamping the current position into range.
func (c *Cursor) SetLen(n int) {
	c.n = n
	if c.n <= 0 {
		c.pos = 0
		return
	}
	c.pos = clamp(c.pos, 0, c.n-1)
}

// To jumps directly to idx: modular wraparound when Wrap is set, clamped to
// [0, n-1] otherwise, the same normalisation Move applies to relative moves.
func (c *Cursor) To(idx int) {
	if c.n <= 0 {
		return
	}
	if c.Wrap {
		c.pos = wrap(idx, c.n)
	} else {
		c.pos = clamp(idx, 0, c.n-1)
	}
}

// Move shifts the cursor by delta positions: modular wraparound when Wrap is
// set, clamped to [0, n-1] otherwise.
func (c *Cursor) Move(delta int) {
	if c.n <= 0 {
		return
	}
	if c.Wrap {
		c.pos = wrap(c.pos+delta, c.n)
	} else {
		c.pos = clamp(c.pos+delta, 0, c.n-1)
	}
}

// Up moves the cursor one position toward the start: it wraps from the top
// when Wrap is set and stays on the first item otherwise.
func (c *Cursor) Up() { c.Move(-1) }

// Down moves the cursor one position toward the end: it wraps from the
// bottom when Wrap is set and stays on the last item otherwise.
func (c *Cursor) Down() { c.Move(1) }

// Home moves the cursor to the first item.
func (c *Cursor) Home() { c.To(0) }

// End moves the cursor to the last item.
func (c *Cursor) End() { c.To(c.n - 1) }

// Compare does a three-way comparison of the cursor's position against
// other, which may be an int, another *Cursor, or a *MenuItem belonging to
// the menu that owns this cursor. It returns a negative number if the
// cursor precedes other, zero if they name the same position, and a
// positive number if it follows. Comparing against a *MenuItem from a
// different menu is an invariant violation and panics.
func (c *Cursor) Compare(other any) int {
	var b int
	switch v := other.(type) {
	case int:
		b = v
	case *Cursor:
		b = v.pos
	case *MenuItem:
		if c.owner == nil || v.menu != c.owner {
			panic("menu: cannot compare cursor to a MenuItem from a different menu")
		}
		b = -1
		for i, it := range c.owner.items {
			if it == v {
				b = i
				break
			}
		}
		if b < 0 {
			panic("menu: cannot compare cursor to a MenuItem not in its menu")
		}
	default:
		panic("menu: Cursor.Compare requires an int, *Cursor, or *MenuItem")
	}
	switch {
	case c.pos < b:
		return -1
	case c.pos > b:
		return 1
	default:
		return 0
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
