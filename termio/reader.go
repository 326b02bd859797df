// Package termio implements the raw-mode input pipeline: a byte-accumulating
// key decoder (getch), terminal-signal capture, and raw-mode entry/exit.
// Stdio hijacking lives in package tui. Grounded on original_source/warawara's
// lib_tui.py getch()/HijackStdio and the teacher's internal/terminal package
// for the Go-native raw-mode and tty-handle idiom.
package termio

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/kory-dev/tmenu/key"
)

// ByteSource is the low-level primitive InputReader reads from: a readable
// byte stream with a non-blocking-poll-with-timeout check, matching the
// select()+read() pair the source library's getch uses. Tests substitute a
// fake; the real implementation wraps a hijacked tty file descriptor.
type ByteSource interface {
	// Ready reports whether a byte is available within timeout (0 = poll
	// now, without blocking).
	Ready(timeout time.Duration) (bool, error)
	// ReadByte blocks until exactly one byte is available and returns it.
	ReadByte() (byte, error)
}

// ErrTimeout names a read that timed out. ReadKey itself does not return
// it: a deadline on ReadKey's context ends the read with the context's
// error (context.DeadlineExceeded).
var ErrTimeout = errors.New("termio: read timed out")

// ErrInterrupted is returned by ReadKey when an uncaptured control byte
// (ctrl-c/ctrl-z/ctrl-\) triggered signal delivery to the process, per
// spec.md §4.3: the read exits rather than returning a token.
var ErrInterrupted = errors.New("termio: interrupted by signal")

type captureEntry struct {
	name string
	byte byte
	kind signalKind
}

// InputReader decodes one key-token per ReadKey call from a ByteSource,
// against a key.Registry of recognized sequences. Grounded on
// original_source/warawara/lib_tui.py's getch().
type InputReader struct {
	src      ByteSource
	registry *key.Registry
	table    []captureEntry
	raise    func(signalKind) error
}

// Option configures a new InputReader.
type Option func(*InputReader)

// WithRegistry overrides the default key.Default registry used to recognize
// complete sequences.
func WithRegistry(r *key.Registry) Option {
	return func(ir *InputReader) { ir.registry = r }
}

// NewInputReader builds an InputReader over src. capture lists which of
// "ctrl-c", "ctrl-z", "fs" should be delivered to ReadKey's caller as
// ordinary keys rather than raised as OS signals. A nil or empty capture
// captures none of them, so all three are raised as signals; passing all
// three names leaves nothing uncaptured.
func NewInputReader(src ByteSource, capture []string, opts ...Option) *InputReader {
	ir := &InputReader{
		src:      src,
		registry: key.Default,
		raise:    raiseSignal,
	}
	for _, o := range opts {
		o(ir)
	}

	captured := make(map[string]bool, len(capture))
	for _, c := range capture {
		captured[c] = true
	}
	base := []captureEntry{
		{name: "ctrl-c", byte: 0x03, kind: sigInt},
		{name: "ctrl-z", byte: 0x1a, kind: sigTstp},
		{name: "fs", byte: 0x1c, kind: sigQuit},
	}
	for _, e := range base {
		if !captured[e.name] {
			ir.table = append(ir.table, e)
		}
	}
	return ir
}

// ReadKey delivers one token: a registered Key, a decoded rune wrapped as a
// Key, or — as a fallback — the raw bytes accumulated so far. It blocks
// until a key arrives, ctx is cancelled, or an uncaptured control byte
// triggers signal delivery.
func (r *InputReader) ReadKey(ctx context.Context) (key.Key, error) {
	if err := ctx.Err(); err != nil {
		return key.Key{}, err
	}
	if err := r.awaitReady(ctx); err != nil {
		return key.Key{}, err
	}

	var acc []byte
	for {
		b, err := r.src.ReadByte()
		if err != nil {
			return key.Key{}, err
		}
		acc = append(acc, b)

		if len(acc) > 0 {
			last := acc[len(acc)-1]
			for _, e := range r.table {
				if e.byte == last {
					if err := r.raise(e.kind); err != nil {
						return key.Key{}, err
					}
					return key.Key{}, ErrInterrupted
				}
			}
		}

		ready, err := r.src.Ready(0)
		if err != nil {
			return key.Key{}, err
		}

		if !ready {
			if k := r.registry.LookupSeq(acc); k != nil {
				return *k, nil
			}
			if rn, size := utf8.DecodeRune(acc); rn != utf8.RuneError && size == len(acc) {
				return key.New(string(rn)), nil
			}
			return key.New(append([]byte(nil), acc...)), nil
		}

		candidates := r.narrowCandidates(acc)
		if len(candidates) == 1 && string(candidates[0]) == string(acc) {
			return *r.registry.LookupSeq(acc), nil
		}
		if len(candidates) > 0 {
			continue
		}

		if rn, size := utf8.DecodeRune(acc); rn != utf8.RuneError && size == len(acc) {
			return key.New(string(rn)), nil
		}
	}
}

func (r *InputReader) narrowCandidates(acc []byte) [][]byte {
	var out [][]byte
	for _, seq := range r.registry.Seqs() {
		if len(seq) >= len(acc) && string(seq[:len(acc)]) == string(acc) {
			out = append(out, seq)
		}
	}
	return out
}

// awaitReady polls for readability in short slices so ctx cancellation is
// observed promptly even though ByteSource.Ready doesn't take a context.
func (r *InputReader) awaitReady(ctx context.Context) error {
	const slice = 20 * time.Millisecond
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		ready, err := r.src.Ready(slice)
		if err != nil {
			return err
		}
		if ready {
			return nil
		}
	}
}
