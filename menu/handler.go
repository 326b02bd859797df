package menu

import (
	"reflect"

	"github.com/kory-dev/tmenu/key"
)

// HandlerOwner identifies which kind of object a KeyHandler belongs to, so
// Handle can decide which field of HandlerContext a callback cares about —
// the Go stand-in for the source's keyword-injection dispatch
// (menu=... / item=...).
type HandlerOwner int

const (
	OwnerNone HandlerOwner = iota
	OwnerMenu
	OwnerItem
)

// HandlerContext is passed to every bound Callback.
type HandlerContext struct {
	Key   key.Key
	Owner HandlerOwner
	Menu  *Menu
	Item  *MenuItem
}

// Callback is a dispatch target. A truthy return (see isTruthy) short
// circuits further dispatch and becomes the result.
type Callback func(ctx HandlerContext) any

// anyKey is the catch-all bucket name, equivalent to Python's None key.
const anyKey = "\x00any\x00"

// KeyHandler owns a mapping from normalized key alias (or the catch-all
// bucket) to an ordered, duplicate-free list of callbacks. Grounded on
// original_source/warawara/lib_tui.py's MenuKeyHandler.
type KeyHandler struct {
	registry  *key.Registry
	callbacks map[string][]Callback
}

// NewKeyHandler builds an empty KeyHandler resolving aliases through reg (or
// key.Default if reg is nil).
func NewKeyHandler(reg *key.Registry) *KeyHandler {
	if reg == nil {
		reg = key.Default
	}
	return &KeyHandler{registry: reg, callbacks: make(map[string][]Callback)}
}

// Bind partitions args into key names (strings, normalized via the handler's
// registry) and callbacks; every callback is bound under every key given, or
// under the catch-all bucket if no keys were given. Binding the same
// callback under the same key twice is a no-op.
func (h *KeyHandler) Bind(args ...any) *KeyHandler {
	keys, cbs := h.partition(args)
	if len(keys) == 0 {
		keys = []string{anyKey}
	}
	for _, k := range keys {
		for _, cb := range cbs {
			h.bindOne(k, cb)
		}
	}
	return h
}

func (h *KeyHandler) bindOne(bucket string, cb Callback) {
	list := h.callbacks[bucket]
	for _, existing := range list {
		if sameCallback(existing, cb) {
			return
		}
	}
	h.callbacks[bucket] = append(list, cb)
}

// Unbind removes callbacks from keys. Passing no callbacks for a key drops
// the entire bucket for that key.
func (h *KeyHandler) Unbind(args ...any) {
	keys, cbs := h.partition(args)
	if len(keys) == 0 {
		keys = []string{anyKey}
	}
	for _, k := range keys {
		if len(cbs) == 0 {
			delete(h.callbacks, k)
			continue
		}
		list := h.callbacks[k]
		for _, cb := range cbs {
			list = removeCallback(list, cb)
		}
		if len(list) == 0 {
			delete(h.callbacks, k)
		} else {
			h.callbacks[k] = list
		}
	}
}

func (h *KeyHandler) partition(args []any) (keys []string, cbs []Callback) {
	for _, a := range args {
		switch v := a.(type) {
		case Callback:
			cbs = append(cbs, v)
		case func(HandlerContext) any:
			cbs = append(cbs, v)
		case string:
			keys = append(keys, h.registry.Normalize(v))
		case key.Key:
			keys = append(keys, h.registry.Normalize(firstAlias(v)))
		}
	}
	return keys, cbs
}

func firstAlias(k key.Key) string {
	if as := k.Aliases(); len(as) > 0 {
		return as[0]
	}
	return string(k.Seq())
}

// Handle dispatches k: callbacks bound to k's normalized alias run first, in
// bind order, then the catch-all bucket. The first truthy result short
// circuits and is returned with handled=true.
func (h *KeyHandler) Handle(k key.Key, owner HandlerOwner, m *Menu, item *MenuItem) (result any, handled bool) {
	name := h.registry.Normalize(firstAlias(k))
	ctx := HandlerContext{Key: k, Owner: owner, Menu: m, Item: item}

	for _, cb := range h.callbacks[name] {
		if v := cb(ctx); isTruthy(v) {
			return v, true
		}
	}
	for _, cb := range h.callbacks[anyKey] {
		if v := cb(ctx); isTruthy(v) {
			return v, true
		}
	}
	return nil, false
}

// isTruthy mirrors Python truthiness for the result types this toolkit's
// callbacks return: nil, false, "", 0, a Continue outcome and an empty []any
// are falsy; every other value, including empty slices of other types, is
// truthy.
func isTruthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case int:
		return t != 0
	case LoopOutcome:
		return t.kind != outcomeNone
	case []any:
		return len(t) > 0
	default:
		return true
	}
}

func sameCallback(a, b Callback) bool {
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}

func removeCallback(list []Callback, cb Callback) []Callback {
	out := list[:0]
	for _, existing := range list {
		if !sameCallback(existing, cb) {
			out = append(out, existing)
		}
	}
	return out
}
