package tui

import (
	"context"
	"errors"
	"io"
	"os"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/kory-dev/tmenu/key"
	"github.com/kory-dev/tmenu/termio"
	"github.com/mattn/go-isatty"
	"github.com/mattn/go-tty"
)

// ErrNoTTY is returned when no controlling terminal is available to open
// or reuse as a Session.
var ErrNoTTY = errors.New("tui: no controlling terminal available")

// ttySource bridges go-tty's rune reader to termio.ByteSource: a goroutine
// pulls runes off the hijacked terminal and re-segments them into their
// UTF-8 bytes on a channel, which Ready/ReadByte poll with a one-byte
// lookahead. Grounded on the teacher's internal/terminal/terminal.go
// readKeys goroutine (tty.Open + t.ReadRune feeding a channel), adapted
// to produce raw bytes for termio's getch state machine instead of the
// teacher's own escape-parsing.
type ttySource struct {
	bytes   chan byte
	errs    chan error
	pending *byte
}

func newTTYSource(t *tty.TTY) *ttySource {
	s := &ttySource{bytes: make(chan byte, 64), errs: make(chan error, 1)}
	go s.pump(t)
	return s
}

func (s *ttySource) pump(t *tty.TTY) {
	for {
		r, err := t.ReadRune()
		if err != nil {
			s.errs <- err
			return
		}
		var buf [utf8.UTFMax]byte
		n := utf8.EncodeRune(buf[:], r)
		for _, b := range buf[:n] {
			s.bytes <- b
		}
	}
}

func (s *ttySource) Ready(timeout time.Duration) (bool, error) {
	if s.pending != nil {
		return true, nil
	}
	select {
	case b := <-s.bytes:
		s.pending = &b
		return true, nil
	case err := <-s.errs:
		return false, err
	case <-time.After(timeout):
		return false, nil
	}
}

func (s *ttySource) ReadByte() (byte, error) {
	if s.pending != nil {
		b := *s.pending
		s.pending = nil
		return b, nil
	}
	select {
	case b := <-s.bytes:
		return b, nil
	case err := <-s.errs:
		return 0, err
	}
}

// Session hijacks the controlling terminal for the lifetime of an
// interactive prompt or menu: raw key input independent of the process's
// own stdin, which may be redirected or piped. Grounded on
// session/session.go's lifecycle (New/Close, default-session singleton)
// and original_source/warawara/lib_tui.py's HijackStdio.
type Session struct {
	tty    *tty.TTY
	src    *ttySource
	reader *termio.InputReader
}

// SessionOptions configures session construction, following the teacher's
// ...Options struct convention rather than functional options.
type SessionOptions struct {
	Capture  []string // control bytes delivered as ordinary keys instead of signals
	Registry *key.Registry
	Debug    bool // reserved for future diagnostics; unused today
}

// IsTTY reports whether stdout is attached to a terminal, using go-isatty
// for a precise check rather than inspecting os.Stdout.Stat()'s mode bits
// directly.
func IsTTY() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// New opens the controlling terminal and wires a termio.InputReader over
// it so the Session satisfies menu.KeySource. Returns ErrNoTTY if stdout
// isn't attached to a terminal.
func New(opts SessionOptions) (*Session, error) {
	if !IsTTY() {
		return nil, ErrNoTTY
	}

	t, err := tty.Open()
	if err != nil {
		return nil, err
	}

	src := newTTYSource(t)
	var readerOpts []termio.Option
	if opts.Registry != nil {
		readerOpts = append(readerOpts, termio.WithRegistry(opts.Registry))
	}
	reader := termio.NewInputReader(src, opts.Capture, readerOpts...)

	return &Session{tty: t, src: src, reader: reader}, nil
}

// ReadKey implements menu.KeySource by delegating to the session's
// termio.InputReader.
func (s *Session) ReadKey(ctx context.Context) (key.Key, error) {
	return s.reader.ReadKey(ctx)
}

// Close releases the hijacked terminal handle. Safe to call more than
// once.
func (s *Session) Close() error {
	if s == nil || s.tty == nil {
		return nil
	}
	err := s.tty.Close()
	s.tty = nil
	return err
}

var (
	defaultMu      sync.Mutex
	defaultSession *Session
)

// Init returns the default session, opening it if one doesn't already
// exist.
func Init(opts SessionOptions) (*Session, error) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultSession != nil {
		return defaultSession, nil
	}
	s, err := New(opts)
	if err != nil {
		return nil, err
	}
	defaultSession = s
	return s, nil
}

// Current returns the existing default session, or nil if none is open.
func Current() *Session {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	return defaultSession
}

// CloseDefault closes and clears the default session, if any.
func CloseDefault() {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultSession != nil {
		_ = defaultSession.Close()
		defaultSession = nil
	}
}

// GetOrCreateDefault returns the default session, creating it if
// necessary, and reports whether this call created it.
func GetOrCreateDefault(opts SessionOptions) (s *Session, created bool) {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultSession != nil {
		return defaultSession, false
	}
	ns, err := New(opts)
	if err != nil {
		return nil, false
	}
	defaultSession = ns
	return ns, true
}

// RunWithDefault acquires the default session for the duration of fn and
// closes it afterwards if this call created it.
func RunWithDefault(opts SessionOptions, fn func(*Session) error) error {
	s, created := GetOrCreateDefault(opts)
	if s == nil {
		return ErrNoTTY
	}
	defer func() {
		if created {
			CloseDefault()
		}
	}()
	return fn(s)
}

var _ io.Closer = (*Session)(nil)
