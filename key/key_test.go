package key

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinKeyAliasesAndSeqs(t *testing.T) {
	assert.True(t, Escape.Equal([]byte{0x1b}))
	assert.True(t, Escape.Equal("esc"))
	assert.True(t, Escape.Equal("escape"))

	assert.True(t, Tab.Equal([]byte{0x09}))
	assert.True(t, Tab.Equal("tab"))
	assert.True(t, Tab.Equal("ctrl-i"))
	assert.True(t, Tab.Equal("^I"))

	assert.True(t, Enter.Equal([]byte{0x0d}))
	assert.True(t, Enter.Equal("ctrl-m"))
	assert.True(t, Enter.Equal("^M"))

	assert.True(t, Up.Equal([]byte{0x1b, '[', 'A'}))
	assert.True(t, Up.Equal("up"))

	assert.True(t, Home.Equal([]byte{0x1b, '[', '1', '~'}))
	assert.True(t, PgUp.Equal("pageup"))
	assert.True(t, F5.Equal([]byte{0x1b, '[', '1', '5', '~'}))

	for c := byte('a'); c <= 'z'; c++ {
		if ctrlAliased[c] {
			continue
		}
		k := Ctrl(c)
		require.True(t, k.Valid())
		assert.True(t, k.Equal([]byte{c - 'a' + 1}))
		assert.True(t, k.Equal("ctrl-"+string(c)))
		assert.True(t, k.Equal("^"+string(c-'a'+'A')))
	}
}

func TestKeyRoundTrip(t *testing.T) {
	r := NewDefaultRegistry()
	for _, k := range canonicalKeys() {
		for _, a := range k.Aliases() {
			found := r.LookupAlias(a)
			require.NotNil(t, found)
			assert.True(t, found.Equal(k))
		}
		found := r.LookupSeq(k.Seq())
		require.NotNil(t, found)
		assert.True(t, found.Equal(k))
	}
}

func TestRegisterEmptySeqPanics(t *testing.T) {
	r := NewRegistry()
	assert.Panics(t, func() { r.Register("") })
}

func TestRegisterAddsAliasesToExistingKey(t *testing.T) {
	r := NewRegistry()
	k1 := r.Register([]byte("x"), "a")
	k2 := r.Register([]byte("x"), "b")
	assert.Same(t, k1, k2)
	assert.True(t, k1.Equal("a"))
	assert.True(t, k1.Equal("b"))
}

func TestRegisterWithKeyObjectMergesAliases(t *testing.T) {
	r := NewRegistry()
	nk := New([]byte("\033[[[[[["), "wow")
	got := r.Register(nk, "wah", "haha")
	assert.Equal(t, nk.Seq(), got.Seq())
	assert.True(t, got.Equal("wow"))
	assert.True(t, got.Equal("wah"))
	assert.True(t, got.Equal("haha"))
}

func TestDeregisterRemovesFromBothIndices(t *testing.T) {
	r := NewRegistry()
	r.Register([]byte("测"), "TE")
	removed := r.Deregister([]byte("测"))
	require.NotNil(t, removed)
	assert.Nil(t, r.LookupSeq([]byte("测")))
	assert.Nil(t, r.LookupAlias("TE"))
}

func TestDeregisterMissingReturnsNil(t *testing.T) {
	r := NewRegistry()
	assert.Nil(t, r.Deregister([]byte("nope")))
}

func TestNormalizeCollapsesAliasesToFirstAlias(t *testing.T) {
	r := NewDefaultRegistry()
	assert.Equal(t, "up", r.Normalize("up"))
	assert.Equal(t, "esc", r.Normalize("escape"))
	assert.Equal(t, "unbound-name", r.Normalize("unbound-name"))
}

func TestKeyStringRepr(t *testing.T) {
	assert.Equal(t, "Key(up)", Up.String())
	k := New("测")
	assert.Equal(t, `Key("测")`, k.String())
}
