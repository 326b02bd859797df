package key

// Canonical byte sequences, per spec.md §6. The exported Key values are
// standalone copies: Default stores its own copies of them, so registering
// or deregistering through Default does not change these values.
var (
	Escape    = New([]byte{0x1b}, "esc", "escape")
	Backspace = New([]byte{0x7f}, "backspace")
	Tab       = New([]byte{0x09}, "tab", "ctrl-i", "ctrl+i", "^I")
	Enter     = New([]byte{0x0d}, "enter", "ctrl-m", "ctrl+m", "^M")
	Space     = New([]byte{0x20}, "space")
	FS        = New([]byte{0x1c}, "fs", "ctrl-\\", "ctrl+\\", `^\`)

	Up    = New([]byte{0x1b, '[', 'A'}, "up")
	Down  = New([]byte{0x1b, '[', 'B'}, "down")
	Right = New([]byte{0x1b, '[', 'C'}, "right")
	Left  = New([]byte{0x1b, '[', 'D'}, "left")

	Home = New([]byte{0x1b, '[', '1', '~'}, "home")
	End  = New([]byte{0x1b, '[', '4', '~'}, "end")
	PgUp = New([]byte{0x1b, '[', '5', '~'}, "pgup", "pageup")
	PgDn = New([]byte{0x1b, '[', '6', '~'}, "pgdn", "pagedown")

	F1  = New([]byte{0x1b, 'O', 'P'}, "F1")
	F2  = New([]byte{0x1b, 'O', 'Q'}, "F2")
	F3  = New([]byte{0x1b, 'O', 'R'}, "F3")
	F4  = New([]byte{0x1b, 'O', 'S'}, "F4")
	F5  = New([]byte{0x1b, '[', '1', '5', '~'}, "F5")
	F6  = New([]byte{0x1b, '[', '1', '7', '~'}, "F6")
	F7  = New([]byte{0x1b, '[', '1', '8', '~'}, "F7")
	F8  = New([]byte{0x1b, '[', '1', '9', '~'}, "F8")
	F9  = New([]byte{0x1b, '[', '2', '0', '~'}, "F9")
	F10 = New([]byte{0x1b, '[', '2', '1', '~'}, "F10")
	F11 = New([]byte{0x1b, '[', '2', '3', '~'}, "F11")
	F12 = New([]byte{0x1b, '[', '2', '4', '~'}, "F12")
)

// ctrlAliased names ctrl-<letter> keys that double as another canonical key:
// ctrl-i is tab, ctrl-m is enter. Those two letters are excluded from the
// generated ctrl-a..ctrl-z set below (ctrl-\, not a letter, is fs).
var ctrlAliased = map[byte]bool{'i': true, 'm': true}

// ctrlKeys holds the generated ctrl-a..ctrl-z set (minus i/m, which alias
// Tab/Enter, and backslash which isn't a letter and aliases FS directly).
var ctrlKeys = generateCtrlKeys()

func generateCtrlKeys() map[byte]Key {
	out := make(map[byte]Key, 24)
	for c := byte('a'); c <= 'z'; c++ {
		if ctrlAliased[c] {
			continue
		}
		idx := c - 'a' + 1
		upper := c - 'a' + 'A'
		out[c] = New([]byte{idx}, "ctrl-"+string(c), "ctrl+"+string(c), "^"+string(upper))
	}
	return out
}

// Ctrl returns the canonical Key for ctrl-<c> where c is a lowercase ASCII
// letter, or the zero Key if c is out of range or aliased (i, m).
func Ctrl(c byte) Key {
	if k, ok := ctrlKeys[c]; ok {
		return k
	}
	return Key{}
}

// canonicalKeys lists every canonical Key in registration order, used to
// seed Default and any registry built via NewDefaultRegistry.
func canonicalKeys() []Key {
	keys := []Key{
		Escape, Backspace, Tab, Enter, Space, FS,
		Up, Down, Right, Left,
		Home, End, PgUp, PgDn,
		F1, F2, F3, F4, F5, F6, F7, F8, F9, F10, F11, F12,
	}
	for c := byte('a'); c <= 'z'; c++ {
		if k, ok := ctrlKeys[c]; ok {
			keys = append(keys, k)
		}
	}
	return keys
}

// NewDefaultRegistry returns a fresh registry seeded with the canonical set,
// independent of the process-wide Default.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	for _, k := range canonicalKeys() {
		r.Register(k)
	}
	return r
}

// Default is the process-wide registry, seeded at package init with the
// canonical set from spec.md §6. Applications register/deregister against
// it the way spec.md's KeyRegistry describes; tests prefer NewDefaultRegistry
// for isolation.
var Default = NewDefaultRegistry()
