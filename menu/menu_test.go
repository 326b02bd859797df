package menu

import (
	"context"
	"testing"

	"github.com/kory-dev/tmenu/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeKeySource struct {
	keys []key.Key
	i    int
}

func (f *fakeKeySource) ReadKey(ctx context.Context) (key.Key, error) {
	if f.i >= len(f.keys) {
		return key.Key{}, context.Canceled
	}
	k := f.keys[f.i]
	f.i++
	return k, nil
}

func TestMenuFeedKeyMovesCursor(t *testing.T) {
	m := New("pick one", []string{"a", "b", "c"}, Options{})
	assert.Equal(t, 0, m.Cursor().Pos())
	m.FeedKey(key.Down)
	assert.Equal(t, 1, m.Cursor().Pos())
	m.FeedKey(key.Up)
	assert.Equal(t, 0, m.Cursor().Pos())
}

func TestMenuDoneOnPlainMenuSelectsCursorRow(t *testing.T) {
	m := New("pick one", []string{"a", "b", "c"}, Options{})
	m.FeedKey(key.Down)
	outcome := m.FeedKey(key.Enter)
	require.True(t, outcome.IsDone())
	sel, ok := outcome.Selection().(*MenuItem)
	require.True(t, ok)
	require.NotNil(t, sel)
	assert.Equal(t, "b", sel.Text)
}

func TestMenuQuitReturnsQuitOutcome(t *testing.T) {
	m := New("pick one", []string{"a"}, Options{})
	outcome := m.FeedKey(key.Escape)
	assert.True(t, outcome.IsQuit())
}

func TestMenuSingleBoxSelectionReplacesPrevious(t *testing.T) {
	m := New("pick one", []string{"a", "b"}, Options{Box: BoxSingle})
	m.Select(ByIndex(0))
	m.Select(ByIndex(1))
	assert.False(t, m.Item(0).Selected())
	assert.True(t, m.Item(1).Selected())
}

func TestMenuMultiBoxSelectedReturnsSlice(t *testing.T) {
	m := New("pick", []string{"a", "b", "c"}, Options{Box: BoxMulti})
	m.Select(ByIndex(0))
	m.Select(ByIndex(2))
	sel, ok := m.Selected().([]*MenuItem)
	require.True(t, ok)
	require.Len(t, sel, 2)
	assert.Equal(t, "a", sel[0].Text)
	assert.Equal(t, "c", sel[1].Text)
}

func TestMenuMetaItemsExcludedFromSelected(t *testing.T) {
	m := New("pick", []string{"a"}, Options{Box: BoxSingle})
	meta := m.appendItem("header", true)
	meta.selected = true
	assert.Nil(t, m.Selected())
}

func TestMenuInteractReadsUntilDone(t *testing.T) {
	ks := &fakeKeySource{keys: []key.Key{key.Down, key.Down, key.Enter}}
	m := New("pick one", []string{"a", "b", "c"}, Options{KeySource: ks})

	result, err := m.Interact(context.Background())
	require.NoError(t, err)
	item, ok := result.(*MenuItem)
	require.True(t, ok)
	assert.Equal(t, "c", item.Text)
	assert.False(t, m.active)
}

func TestMenuInteractWithoutKeySourceErrors(t *testing.T) {
	m := New("pick", []string{"a"}, Options{})
	_, err := m.Interact(context.Background())
	assert.ErrorIs(t, err, ErrNotATTY)
}

func TestMenuMoveToRelocatesItem(t *testing.T) {
	m := New("pick", []string{"a", "b", "c"}, Options{})
	m.MoveTo(ByIndex(0), ByIndex(2))
	texts := []string{m.Item(0).Text, m.Item(1).Text, m.Item(2).Text}
	assert.Equal(t, []string{"b", "c", "a"}, texts)
}

func TestMenuSwapExchangesItems(t *testing.T) {
	m := New("pick", []string{"a", "b"}, Options{})
	m.Swap(ByIndex(0), ByIndex(1))
	assert.Equal(t, "b", m.Item(0).Text)
	assert.Equal(t, "a", m.Item(1).Text)
}
