package tui

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// UserSelection tracks the set of valid answers to a Prompt: an optional
// empty-string default, optional first-letter abbreviations, and optional
// case folding. Grounded on
// original_source/warawara/lib_tui.py's UserSelection.
type UserSelection struct {
	options     []string
	acceptEmpty bool
	abbr        bool
	ignoreCase  bool
	sep         string

	mapping  map[string]string
	selected string
	has      bool
}

// NewUserSelection builds a UserSelection over options. An empty options
// list always accepts any typed answer verbatim.
func NewUserSelection(options []string, acceptEmpty, abbr bool, sep string) *UserSelection {
	if len(options) == 0 {
		acceptEmpty, abbr = true, false
	}
	if sep == "" {
		sep = " / "
	}

	u := &UserSelection{
		options:     append([]string(nil), options...),
		acceptEmpty: acceptEmpty,
		abbr:        abbr,
		ignoreCase:  abbr,
		sep:         sep,
		mapping:     make(map[string]string),
	}

	if len(u.options) > 0 {
		if u.acceptEmpty {
			u.mapping[""] = u.options[0]
		}
		for _, opt := range u.options {
			keys := []string{opt}
			if u.abbr {
				keys = append(keys, opt[:1])
			}
			for _, k := range keys {
				if u.ignoreCase {
					k = strings.ToLower(k)
				}
				u.mapping[k] = opt
			}
		}
	}

	return u
}

// Select validates and records o as the chosen answer. An empty options
// list accepts o verbatim; otherwise o (or its case-folded form) must
// resolve via the abbreviation/exact mapping.
func (u *UserSelection) Select(o string) error {
	key := o
	if u.ignoreCase {
		key = strings.ToLower(key)
	}

	if len(u.options) == 0 {
		u.selected, u.has = o, true
		return nil
	}

	resolved, ok := u.mapping[key]
	if !ok {
		return fmt.Errorf("tui: invalid option %q", o)
	}
	u.selected, u.has = resolved, true
	return nil
}

// Selected returns the resolved answer and whether Select has succeeded.
func (u *UserSelection) Selected() (string, bool) { return u.selected, u.has }

// PromptSuffix renders the bracketed option list appended to a question,
// e.g. " [(y)es / (n)o]", with the accept-empty default capitalized.
func (u *UserSelection) PromptSuffix() string {
	if len(u.options) == 0 {
		return ""
	}

	opts := append([]string(nil), u.options...)
	if u.acceptEmpty && u.ignoreCase && len(opts[0]) > 0 {
		opts[0] = strings.ToUpper(opts[0][:1]) + opts[0][1:]
	}

	rendered := opts
	if u.abbr {
		rendered = make([]string, len(opts))
		for i, o := range opts {
			if len(o) == 0 {
				rendered[i] = o
				continue
			}
			rendered[i] = "(" + o[:1] + ")" + o[1:]
		}
	}
	return " [" + strings.Join(rendered, u.sep) + "]"
}

// PromptOptions configures Prompt.
type PromptOptions struct {
	Options     []string
	AcceptEmpty bool
	Abbr        bool
	Sep         string
}

// Prompt asks question on w, reads lines from r until a valid answer to
// sel is typed, and returns the resolved answer. Grounded on
// original_source/warawara/lib_tui.py's prompt(): a non-raw-mode,
// line-buffered alternative to a full menu.Menu for confirmations and
// short option lists.
func Prompt(r io.Reader, w io.Writer, question string, opts PromptOptions) (string, error) {
	sel := NewUserSelection(opts.Options, opts.AcceptEmpty || len(opts.Options) == 0, opts.Abbr, opts.Sep)
	scanner := bufio.NewScanner(r)

	for {
		fmt.Fprint(w, question+sel.PromptSuffix()+" ")
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return "", err
			}
			return "", io.EOF
		}
		if err := sel.Select(strings.TrimSpace(scanner.Text())); err == nil {
			answer, _ := sel.Selected()
			return answer, nil
		}
	}
}
