package menu

import (
	"testing"

	"github.com/kory-dev/tmenu/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindDispatchesByNormalizedAlias(t *testing.T) {
	h := NewKeyHandler(nil)
	var got string
	h.Bind("up", func(ctx HandlerContext) any { got = "up-fired"; return true })

	_, handled := h.Handle(key.Up, OwnerNone, nil, nil)
	require.True(t, handled)
	assert.Equal(t, "up-fired", got)
}

func TestBindSameCallbackTwiceStaysUnique(t *testing.T) {
	h := NewKeyHandler(nil)
	calls := 0
	cb := func(ctx HandlerContext) any { calls++; return true }
	h.Bind("a", cb)
	h.Bind("a", cb)

	h.Handle(key.New([]byte("a")), OwnerNone, nil, nil)
	assert.Equal(t, 1, calls)
}

func TestCatchAllBucketRunsAfterSpecificBucket(t *testing.T) {
	h := NewKeyHandler(nil)
	var order []string
	h.Bind(func(ctx HandlerContext) any { order = append(order, "any"); return false })
	h.Bind("a", func(ctx HandlerContext) any { order = append(order, "a"); return false })

	h.Handle(key.New([]byte("a")), OwnerNone, nil, nil)
	assert.Equal(t, []string{"a", "any"}, order)
}

func TestFirstTruthyCallbackShortCircuits(t *testing.T) {
	h := NewKeyHandler(nil)
	second := false
	h.Bind("a",
		func(ctx HandlerContext) any { return "stop" },
		func(ctx HandlerContext) any { second = true; return true },
	)
	result, handled := h.Handle(key.New([]byte("a")), OwnerNone, nil, nil)
	assert.True(t, handled)
	assert.Equal(t, "stop", result)
	assert.False(t, second)
}

func TestUnbindDropsWholeBucketWithNoCallbacks(t *testing.T) {
	h := NewKeyHandler(nil)
	h.Bind("a", func(ctx HandlerContext) any { return true })
	h.Unbind("a")
	_, handled := h.Handle(key.New([]byte("a")), OwnerNone, nil, nil)
	assert.False(t, handled)
}

func TestHandleInjectsOwnerKind(t *testing.T) {
	h := NewKeyHandler(nil)
	var seenOwner HandlerOwner
	h.Bind("a", func(ctx HandlerContext) any { seenOwner = ctx.Owner; return true })
	m := &Menu{}
	h.Handle(key.New([]byte("a")), OwnerMenu, m, nil)
	assert.Equal(t, OwnerMenu, seenOwner)
}
