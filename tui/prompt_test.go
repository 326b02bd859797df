package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserSelectionAbbreviationAndDefault(t *testing.T) {
	u := NewUserSelection([]string{"yes", "no"}, true, true, "")

	require.NoError(t, u.Select(""))
	got, ok := u.Selected()
	assert.True(t, ok)
	assert.Equal(t, "yes", got)

	require.NoError(t, u.Select("n"))
	got, _ = u.Selected()
	assert.Equal(t, "no", got)

	assert.Equal(t, " [(Y)es / (n)o]", u.PromptSuffix())
}

func TestUserSelectionRejectsUnknownOption(t *testing.T) {
	u := NewUserSelection([]string{"yes", "no"}, true, true, "")
	assert.Error(t, u.Select("maybe"))
}

func TestUserSelectionEmptyOptionsAcceptsAnything(t *testing.T) {
	u := NewUserSelection(nil, true, true, "")
	require.NoError(t, u.Select("anything"))
	got, ok := u.Selected()
	assert.True(t, ok)
	assert.Equal(t, "anything", got)
}

func TestPromptLoopsUntilValidAnswer(t *testing.T) {
	in := strings.NewReader("bogus\nn\n")
	var out bytes.Buffer

	answer, err := Prompt(in, &out, "Proceed?", PromptOptions{Options: []string{"yes", "no"}, Abbr: true})
	require.NoError(t, err)
	assert.Equal(t, "no", answer)
	assert.Contains(t, out.String(), "Proceed?")
}

func TestPromptReturnsEOFWhenInputExhausted(t *testing.T) {
	in := strings.NewReader("")
	var out bytes.Buffer

	_, err := Prompt(in, &out, "Proceed?", PromptOptions{Options: []string{"yes", "no"}})
	assert.Error(t, err)
}
