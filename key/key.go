// Package key provides a canonical, hashable token for every key this
// toolkit recognizes, plus a process-wide registry applications can extend
// with their own sequences and aliases.
package key

import (
	"fmt"
	"sync"
)

// Key is an immutable token identifying one key: a byte sequence and the
// human-readable aliases that refer to it ("up", "ctrl-c", "^C", ...).
type Key struct {
	seq     []byte
	aliases []string
}

// New builds a Key from a byte sequence (or a string, encoded as UTF-8) and
// zero or more aliases. seq must not be empty.
func New(seq any, aliases ...string) Key {
	b, err := toSeq(seq)
	if err != nil {
		panic(err)
	}
	if len(b) == 0 {
		panic("key: seq must not be empty")
	}

	k := Key{seq: append([]byte(nil), b...)}
	for _, a := range aliases {
		k.nameit(a)
	}
	return k
}

func toSeq(v any) ([]byte, error) {
	switch t := v.(type) {
	case []byte:
		return t, nil
	case string:
		return []byte(t), nil
	case Key:
		return t.seq, nil
	default:
		return nil, fmt.Errorf("key: unsupported seq type %T", v)
	}
}

func (k *Key) nameit(name string) {
	for _, a := range k.aliases {
		if a == name {
			return
		}
	}
	k.aliases = append(k.aliases, name)
}

// Seq returns the raw byte sequence identifying this key.
func (k Key) Seq() []byte { return append([]byte(nil), k.seq...) }

// Aliases returns the ordered list of names registered for this key.
func (k Key) Aliases() []string { return append([]string(nil), k.aliases...) }

// Valid reports whether k carries a non-empty sequence (the zero Key is
// invalid and never matches anything).
func (k Key) Valid() bool { return len(k.seq) > 0 }

// String renders the key the way the source library's repr does: the first
// alias if any, else the sequence as a Go-quoted string (%q), e.g. Key("测").
func (k Key) String() string {
	if len(k.aliases) > 0 {
		return fmt.Sprintf("Key(%s)", k.aliases[0])
	}
	return fmt.Sprintf("Key(%q)", k.seq)
}

// Equal implements the duck-typed equality spec.md describes: a Key equals
// another Key with the same seq, a []byte equal to seq, a string whose UTF-8
// encoding equals seq, or a string found among its aliases.
func (k Key) Equal(other any) bool {
	switch v := other.(type) {
	case Key:
		return string(k.seq) == string(v.seq)
	case []byte:
		return string(k.seq) == string(v)
	case string:
		if string(k.seq) == v {
			return true
		}
		for _, a := range k.aliases {
			if a == v {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// Registry maps byte sequences and aliases to Key tokens. The zero value is
// not usable; construct with NewRegistry or use Default.
type Registry struct {
	mu      sync.RWMutex
	bySeq   map[string]*Key
	byAlias map[string]*Key
}

// NewRegistry returns an empty, isolated registry (no canonical keys seeded)
// so tests can build a clean key space, per spec.md's Open Question about
// exposing an instance handle independent of the process-wide default.
func NewRegistry() *Registry {
	return &Registry{
		bySeq:   make(map[string]*Key),
		byAlias: make(map[string]*Key),
	}
}

// Register adds seqOrKey to the registry, or — if a Key with that sequence
// already exists — adds aliases to it. seqOrKey may be a Key, a []byte, or a
// string (encoded as UTF-8). It panics if the resulting sequence is empty.
func (r *Registry) Register(seqOrKey any, aliases ...string) *Key {
	var seq []byte
	var allAliases []string

	if k, ok := seqOrKey.(Key); ok {
		seq = k.seq
		allAliases = append(append([]string(nil), k.aliases...), aliases...)
	} else {
		b, err := toSeq(seqOrKey)
		if err != nil {
			panic(err)
		}
		seq = b
		allAliases = aliases
	}

	if len(seq) == 0 {
		panic("key: cannot register an empty sequence")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.bySeq[string(seq)]; ok {
		for _, a := range allAliases {
			existing.nameit(a)
			r.byAlias[a] = existing
		}
		return existing
	}

	nk := New(seq, allAliases...)
	r.bySeq[string(seq)] = &nk
	for _, a := range nk.aliases {
		r.byAlias[a] = &nk
	}
	return &nk
}

// Deregister removes seqOrKey from both indices and returns the removed Key,
// or nil if it wasn't present.
func (r *Registry) Deregister(seqOrKey any) *Key {
	seq, err := toSeq(seqOrKey)
	if err != nil {
		panic(err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	k, ok := r.bySeq[string(seq)]
	if !ok {
		return nil
	}
	delete(r.bySeq, string(seq))
	for _, a := range k.aliases {
		delete(r.byAlias, a)
	}
	return k
}

// LookupSeq returns the Key registered for seq, or nil.
func (r *Registry) LookupSeq(seq []byte) *Key {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.bySeq[string(seq)]
}

// LookupAlias returns the Key registered for alias, or nil.
func (r *Registry) LookupAlias(alias string) *Key {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byAlias[alias]
}

// Normalize resolves a key-or-alias value to the canonical bucket name a
// KeyHandler should dispatch under: if s names a registered Key, every
// alias of that Key collapses to its first alias (so binding "ctrl-c" and
// "^C" land in the same bucket); otherwise s passes through unchanged so
// caller-defined bucket names keep working.
func (r *Registry) Normalize(s string) string {
	if k := r.LookupAlias(s); k != nil && len(k.aliases) > 0 {
		return k.aliases[0]
	}
	return s
}

// Seqs returns every registered sequence, in no particular order; getch's
// candidate-prefix narrowing does not depend on the order.
func (r *Registry) Seqs() [][]byte {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([][]byte, 0, len(r.bySeq))
	for s := range r.bySeq {
		out = append(out, []byte(s))
	}
	return out
}
