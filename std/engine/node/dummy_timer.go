package node

import (
	"sort"
	"sync"
	"time"
)

type dummyEvent struct {
	at time.Time
	fn func()
}

// DummyTimer is a virtual-clock ndn.Timer for tests: time
// only advances when the test calls MoveForward, so timeout and
// delayed-call behavior is deterministic.
type DummyTimer struct {
	mu     sync.Mutex
	now    time.Time
	events []*dummyEvent
	nonce  byte
}

// NewDummyTimer returns a DummyTimer starting at the Unix epoch.
func NewDummyTimer() *DummyTimer {
	return &DummyTimer{now: time.Unix(0, 0).UTC()}
}

func (tm *DummyTimer) Now() time.Time {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	return tm.now
}

// MoveForward advances the virtual clock by d and fires, in deadline
// order, every scheduled event whose deadline is now due.
func (tm *DummyTimer) MoveForward(d time.Duration) {
	tm.mu.Lock()
	tm.now = tm.now.Add(d)
	now := tm.now
	due := make([]*dummyEvent, 0, len(tm.events))
	remaining := tm.events[:0]
	for _, e := range tm.events {
		if e.fn != nil && !e.at.After(now) {
			due = append(due, e)
		} else if e.fn != nil {
			remaining = append(remaining, e)
		}
	}
	tm.events = remaining
	tm.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool { return due[i].at.Before(due[j].at) })
	for _, e := range due {
		e.fn()
	}
}

func (tm *DummyTimer) Schedule(d time.Duration, fn func()) (cancel func()) {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	e := &dummyEvent{at: tm.now.Add(d), fn: fn}
	tm.events = append(tm.events, e)
	return func() {
		tm.mu.Lock()
		defer tm.mu.Unlock()
		e.fn = nil
	}
}

// Nonce returns a deterministic, distinguishable-across-calls 4-byte
// value rather than real randomness, so tests can assert on it.
func (tm *DummyTimer) Nonce() []byte {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	tm.nonce++
	return []byte{tm.nonce, tm.nonce, tm.nonce, tm.nonce}
}
