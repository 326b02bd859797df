package menu

import (
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is an injectable clock.Now/clock.AfterFunc double: Advance
// moves a virtual timeline forward and synchronously fires any pending
// timers whose deadline falls at or before the new time, so a 1-second
// interval test runs in microseconds instead of a real wall-clock sleep.
type fakeClock struct {
	mu      sync.Mutex
	now     time.Time
	pending []*fakeTimer
}

type fakeTimer struct {
	at      time.Time
	f       func()
	fired   bool
	stopped bool
}

func newFakeClock() *fakeClock { return &fakeClock{now: time.Unix(0, 0)} }

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) timerHandle {
	c.mu.Lock()
	defer c.mu.Unlock()
	ft := &fakeTimer{at: c.now.Add(d), f: f}
	c.pending = append(c.pending, ft)
	return ft
}

// Advance moves the clock forward by d and runs, in deadline order, every
// pending timer whose deadline is now due.
func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	var due []*fakeTimer
	var remaining []*fakeTimer
	for _, ft := range c.pending {
		if !ft.stopped && !ft.fired && !ft.at.After(c.now) {
			due = append(due, ft)
		} else if !ft.fired {
			remaining = append(remaining, ft)
		}
	}
	c.pending = remaining
	c.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool { return due[i].at.Before(due[j].at) })

	for _, ft := range due {
		ft.fired = true
		ft.f()
	}
}

func (ft *fakeTimer) Stop() bool {
	already := ft.fired || ft.stopped
	ft.stopped = true
	return !already
}

func TestTimerStartTransitionsIdleToActive(t *testing.T) {
	fired := make(chan struct{})
	tm := NewTimer(func(args []any, kwargs map[string]any) { close(fired) }, 10*time.Millisecond)

	assert.True(t, tm.Idle())
	assert.True(t, tm.Start(0, nil, nil))
	assert.True(t, tm.Active())
	assert.False(t, tm.Start(0, nil, nil))

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("timer never fired")
	}
	assert.True(t, tm.Expired())
	assert.True(t, tm.Idle())
}

func TestTimerCancelPreventsFire(t *testing.T) {
	var fired int32
	tm := NewTimer(func(args []any, kwargs map[string]any) { atomic.AddInt32(&fired, 1) }, 20*time.Millisecond)
	tm.Start(0, nil, nil)
	require.True(t, tm.Cancel())
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&fired))
	assert.True(t, tm.Canceled())
	assert.True(t, tm.Idle())
}

func TestThrottlerLopriCoalescesBurst(t *testing.T) {
	var calls int32
	th := NewThrottler(func(args []any, kwargs map[string]any) { atomic.AddInt32(&calls, 1) }, 50*time.Millisecond)

	for i := 0; i < 5; i++ {
		th.Lopri(nil, nil)
	}

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

// TestThrottlerScenarioSixDisplacesDeferredRun reproduces spec.md §8
// scenario 6 verbatim on an injectable clock: interval 1.0s, lopri(a) at
// t=0 runs immediately, lopri(b) at t=0.2 is deferred, lopri(c) at t=0.5
// displaces b, and at t=1.0 a single run with c's args occurs — exactly
// two callback invocations total, with no real sleep involved.
func TestThrottlerScenarioSixDisplacesDeferredRun(t *testing.T) {
	clk := newFakeClock()
	var calls int32
	var lastArg atomic.Value
	th := NewThrottler(func(args []any, kwargs map[string]any) {
		atomic.AddInt32(&calls, 1)
		lastArg.Store(args[0])
	}, time.Second)
	th.setClock(clk)

	require.True(t, th.Lopri([]any{"a"}, nil))
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, "a", lastArg.Load())

	clk.Advance(200 * time.Millisecond)
	ok := th.Lopri([]any{"b"}, nil)
	assert.True(t, ok)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	clk.Advance(300 * time.Millisecond)
	ok = th.Lopri([]any{"c"}, nil)
	assert.True(t, ok)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	clk.Advance(500 * time.Millisecond)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	assert.Equal(t, "c", lastArg.Load())
}

func TestThrottlerHipriRunsImmediatelyAndCancelsPending(t *testing.T) {
	var calls int32
	th := NewThrottler(func(args []any, kwargs map[string]any) { atomic.AddInt32(&calls, 1) }, 50*time.Millisecond)

	th.Lopri(nil, nil)
	th.Lopri(nil, nil)
	require.Equal(t, int32(1), atomic.LoadInt32(&calls))

	th.Hipri(nil, nil)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}
