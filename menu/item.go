package menu

// MenuItem is one row owned by a Menu: display text, optional arbitrary
// payload, selection state, and its own key handler consulted before the
// menu-level one bubbles. Grounded on original_source/warawara/lib_tui.py's
// MenuItem/MenuItemRef.
type MenuItem struct {
	menu *Menu

	Text     string
	Data     any
	Meta     bool // meta rows never participate in Selected()
	selected bool

	// Format, if set, overrides the menu-wide row formatter for this item.
	Format FormatFunc

	onkey *KeyHandler
}

// newMenuItem builds an item owned by m.
func newMenuItem(m *Menu, text string) *MenuItem {
	return &MenuItem{menu: m, Text: text, onkey: NewKeyHandler(m.registry)}
}

// Menu returns the Menu that owns this item.
func (it *MenuItem) Menu() *Menu { return it.menu }

// Selected reports this item's selection flag.
func (it *MenuItem) Selected() bool { return it.selected }

// OnKey returns this item's own KeyHandler, consulted before the Menu's.
func (it *MenuItem) OnKey() *KeyHandler { return it.onkey }

// Bind is shorthand for it.OnKey().Bind(args...).
func (it *MenuItem) Bind(args ...any) *MenuItem {
	it.onkey.Bind(args...)
	return it
}
