package menu

import (
	"sync"
	"time"
)

// clock abstracts time.Now/time.AfterFunc so tests can drive Timer/Throttler
// through a scripted timeline instead of sleeping in real wall-clock time.
type clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) timerHandle
}

// timerHandle is the subset of *time.Timer Timer needs to cancel a pending
// callback.
type timerHandle interface {
	Stop() bool
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, f func()) timerHandle {
	return time.AfterFunc(d, f)
}

// Timer is a one-shot, cancellable scheduler. States: idle -> active ->
// (expired | canceled); terminal states accept no further transitions
// without an explicit Start. Built on time.AfterFunc rather than Python's
// threading.Timer/threading.Event, per SPEC_FULL.md's ambient-stack note.
type Timer struct {
	mu       sync.Mutex
	fn       func(args []any, kwargs map[string]any)
	interval time.Duration
	clk      clock

	timer    timerHandle
	expired  bool
	canceled bool
	args     []any
	kwargs   map[string]any
}

// NewTimer builds a Timer that calls fn after interval once started.
func NewTimer(fn func(args []any, kwargs map[string]any), interval time.Duration) *Timer {
	return &Timer{fn: fn, interval: interval, clk: realClock{}}
}

// Start arms the timer; a positive interval overrides the Timer's default
// interval, and args/kwargs are what the callback receives when it fires.
// Returns true if it moved idle->active, false if the timer was already
// active.
func (t *Timer) Start(interval time.Duration, args []any, kwargs map[string]any) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.timer != nil {
		return false
	}

	if interval <= 0 {
		interval = t.interval
	}

	t.expired = false
	t.canceled = false
	t.args = args
	t.kwargs = kwargs

	t.timer = t.clk.AfterFunc(interval, func() {
		t.mu.Lock()
		t.expired = true
		t.timer = nil
		fn := t.fn
		a, kw := t.args, t.kwargs
		t.mu.Unlock()
		fn(a, kw)
	})
	return true
}

// Redirect swaps the args/kwargs a pending timer will call its callback
// with, leaving the deadline untouched — a later, higher-priority caller
// displacing an earlier one's deferred run. Returns false if the timer
// isn't currently active.
func (t *Timer) Redirect(args []any, kwargs map[string]any) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer == nil {
		return false
	}
	t.args = args
	t.kwargs = kwargs
	return true
}

// Cancel stops a pending timer before it fires. Returns true if it moved
// active->canceled.
func (t *Timer) Cancel() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.timer == nil {
		return false
	}
	t.timer.Stop()
	t.timer = nil
	t.canceled = true
	return true
}

// Active reports whether the timer is currently armed.
func (t *Timer) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.timer != nil
}

// Expired reports whether the timer fired to completion.
func (t *Timer) Expired() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.expired
}

// Idle reports whether the timer is not active, or has already expired.
func (t *Timer) Idle() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.timer == nil || t.expired
}

// Canceled reports whether Cancel last stopped the timer.
func (t *Timer) Canceled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.canceled
}

// Throttler coalesces high-frequency, low-priority calls at a minimum
// interval, while allowing a high-priority caller to force an immediate,
// synchronous run that preempts any pending deferred call.
type Throttler struct {
	fn       func(args []any, kwargs map[string]any)
	interval time.Duration
	clk      clock

	mu        sync.Mutex
	timestamp time.Time
	timer     *Timer

	trtlLock trylock
	mainLock sync.Mutex
}

// NewThrottler builds a Throttler calling fn no more than once per interval
// via Lopri, or immediately via Hipri.
func NewThrottler(fn func(args []any, kwargs map[string]any), interval time.Duration) *Throttler {
	th := &Throttler{fn: fn, interval: interval, clk: realClock{}}
	th.timer = NewTimer(func(args []any, kwargs map[string]any) {
		th.lopri(args, kwargs)
	}, interval)
	th.timer.clk = th.clk
	return th
}

// setClock swaps in a test clock shared by the throttler and its internal
// timer; only called from tests in this package.
func (th *Throttler) setClock(c clock) {
	th.clk = c
	th.timer.clk = c
}

func (th *Throttler) callback(args []any, kwargs map[string]any) {
	th.fn(args, kwargs)
	th.mu.Lock()
	th.timestamp = th.clk.Now()
	th.mu.Unlock()
}

// lopri implements spec.md §4.6's lopri algorithm: drop if contended,
// displace a deferred run already pending with this call's args (spec.md
// §8 scenario 6's "c displaces b"), defer if called too soon after the
// last run, else run now.
func (th *Throttler) lopri(args []any, kwargs map[string]any) bool {
	if !th.trtlLock.TryLock() {
		return false
	}
	defer th.trtlLock.Unlock()

	if th.timer.Active() {
		return th.timer.Redirect(args, kwargs)
	}

	th.mu.Lock()
	delta := th.clk.Now().Sub(th.timestamp)
	th.mu.Unlock()

	if delta < th.interval {
		return th.timer.Start(th.interval-delta, args, kwargs)
	}

	if !th.mainLock.TryLock() {
		return false
	}
	defer th.mainLock.Unlock()

	th.callback(args, kwargs)
	return true
}

// Lopri is the non-blocking, rate-limited entry point Menu.Refresh uses for
// ordinary renders.
func (th *Throttler) Lopri(args []any, kwargs map[string]any) bool {
	return th.lopri(args, kwargs)
}

// Hipri blocks for the main lock, cancels any pending deferred run, and
// executes fn synchronously — the path used for the final, guaranteed
// render on teardown.
func (th *Throttler) Hipri(args []any, kwargs map[string]any) {
	th.mainLock.Lock()
	defer th.mainLock.Unlock()
	th.timer.Cancel()
	th.callback(args, kwargs)
}

// Call runs fn via Hipri when blocking is true, else via Lopri.
func (th *Throttler) Call(blocking bool, args []any, kwargs map[string]any) {
	if blocking {
		th.Hipri(args, kwargs)
	} else {
		th.Lopri(args, kwargs)
	}
}

// trylock is a non-blocking mutex wrapper (Go's sync.Mutex has no native
// TryLock in older toolchains; this mirrors the source's LockWrapper).
type trylock struct {
	ch chan struct{}
	mu sync.Mutex
}

func (l *trylock) TryLock() bool {
	l.mu.Lock()
	if l.ch == nil {
		l.ch = make(chan struct{}, 1)
	}
	ch := l.ch
	l.mu.Unlock()

	select {
	case ch <- struct{}{}:
		return true
	default:
		return false
	}
}

func (l *trylock) Unlock() {
	l.mu.Lock()
	ch := l.ch
	l.mu.Unlock()
	select {
	case <-ch:
	default:
	}
}
