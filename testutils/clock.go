// Package testutils provides helpers for testing pointer filters and sessions.
package testutils

import (
	"sort"
	"sync"
	"time"

	"github.com/edaniels/gopointer/pkg/input"
)

// A ManualClock only moves when told to. Timers fire synchronously from
// Advance, in deadline order, on the caller's goroutine.
type ManualClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*manualTimer
}

// NewManualClock returns a clock starting at an arbitrary fixed instant.
func NewManualClock() *ManualClock {
	return &ManualClock{now: time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC)}
}

// Now returns the current manual time.
func (mc *ManualClock) Now() time.Time {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	return mc.now
}

// AfterFunc schedules f to run once Advance passes now+d.
func (mc *ManualClock) AfterFunc(d time.Duration, f func()) input.Timer {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	t := &manualTimer{clock: mc, when: mc.now.Add(d), f: f}
	mc.timers = append(mc.timers, t)
	return t
}

// Pending returns how many timers are scheduled and not stopped.
func (mc *ManualClock) Pending() int {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	return len(mc.timers)
}

// Advance moves the clock forward by d, firing every timer that comes due.
// Timers scheduled by callbacks fire too if they fall within d.
func (mc *ManualClock) Advance(d time.Duration) {
	mc.mu.Lock()
	target := mc.now.Add(d)
	for {
		sort.SliceStable(mc.timers, func(i, j int) bool {
			return mc.timers[i].when.Before(mc.timers[j].when)
		})
		if len(mc.timers) == 0 || mc.timers[0].when.After(target) {
			break
		}
		next := mc.timers[0]
		mc.timers = mc.timers[1:]
		if next.when.After(mc.now) {
			mc.now = next.when
		}
		mc.mu.Unlock()
		next.f()
		mc.mu.Lock()
	}
	mc.now = target
	mc.mu.Unlock()
}

type manualTimer struct {
	clock *ManualClock
	when  time.Time
	f     func()
}

func (mt *manualTimer) Stop() bool {
	mt.clock.mu.Lock()
	defer mt.clock.mu.Unlock()
	for i, t := range mt.clock.timers {
		if t == mt {
			mt.clock.timers = append(mt.clock.timers[:i], mt.clock.timers[i+1:]...)
			return true
		}
	}
	return false
}
