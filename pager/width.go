// Package pager implements a segmented (header/body/footer), differential
// terminal renderer: it keeps a model of what's currently drawn and emits
// the minimum escape-sequence stream to reconcile it with a new frame.
package pager

import (
	"errors"
	"regexp"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// ansiRegexp strips SGR/CSI escape sequences for width calculations; an OSC
// sequence (ESC ] ... ST|BEL) is handled separately by Decolor since its
// terminator isn't a single final byte in @-~.
var ansiRegexp = regexp.MustCompile("\x1b\\[[0-9;?]*[\x20-\x2f]*[@-~]")

// Decolor strips ANSI SGR/CSI and OSC escape sequences from s, leaving only
// the printable content.
func Decolor(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); {
		if s[i] == '\x1b' {
			if loc := ansiRegexp.FindStringIndex(s[i:]); loc != nil && loc[0] == 0 {
				i += loc[1]
				continue
			}
			if i+1 < len(s) && s[i+1] == ']' {
				j := i + 2
				for j < len(s) {
					if s[j] == '\x1b' && j+1 < len(s) && s[j+1] == '\\' {
						j += 2
						break
					}
					if s[j] == '\a' {
						j++
						break
					}
					j++
				}
				i = j
				continue
			}
			i++
			continue
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		out = append(out, s[i:i+size]...)
		i += size
	}
	return string(out)
}

// Charwidth returns the display-cell width of a single rune: 1, or 2 for
// East-Asian wide/fullwidth characters.
func Charwidth(r rune) int {
	if runewidth.RuneWidth(r) == 2 {
		return 2
	}
	return 1
}

// Strwidth returns the display-cell width of s after stripping color
// escapes.
func Strwidth(s string) int {
	w := 0
	for _, r := range Decolor(s) {
		w += Charwidth(r)
	}
	return w
}

// ErrInvalidClip is returned by Wrap when clip is not a single display-width
// character.
var ErrInvalidClip = errors.New("pager: clip must be a single-width character")

// Wrap splits s into a (head, tail) pair such that Strwidth(head) <= width
// and, when clip is empty, head+tail == s. Escape sequences are width-free and are carried
// through to whichever side of the split they fall on, the same way
// Decolor's scan skips over them rather than counting them — a colored
// substring's width budget is spent on its printable runes only. If clip
// is non-empty, it must be a single display-cell rune; when s is clipped,
// clip is appended to head in place of the last character that would
// otherwise overflow, provided there's room for it.
func Wrap(s string, width int, clip string) (head, tail string, err error) {
	if clip != "" {
		r, size := utf8.DecodeRuneInString(clip)
		if size != len(clip) || Charwidth(r) != 1 {
			return "", "", ErrInvalidClip
		}
	}

	w := 0
	i := 0
	for i < len(s) {
		if s[i] == '\x1b' {
			if loc := ansiRegexp.FindStringIndex(s[i:]); loc != nil && loc[0] == 0 {
				i += loc[1]
				continue
			}
			if i+1 < len(s) && s[i+1] == ']' {
				j := i + 2
				for j < len(s) {
					if s[j] == '\x1b' && j+1 < len(s) && s[j+1] == '\\' {
						j += 2
						break
					}
					if s[j] == '\a' {
						j++
						break
					}
					j++
				}
				i = j
				continue
			}
			i++
			continue
		}

		r, size := utf8.DecodeRuneInString(s[i:])
		cw := Charwidth(r)
		if w+cw > width {
			head = s[:i]
			tail = s[i:]
			if clip != "" && w+1 <= width {
				head += clip
			}
			return head, tail, nil
		}
		w += cw
		i += size
	}
	return s, "", nil
}
