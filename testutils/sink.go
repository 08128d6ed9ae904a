package testutils

import (
	"sync"
	"time"

	"github.com/edaniels/gopointer/pkg/input"
)

// A SinkCall is one recorded sink invocation.
type SinkCall struct {
	Move bool
	X, Y int
	Down bool
	Mask input.ButtonMask
}

// A RecordingSink records every call made to it. It is safe for concurrent use.
type RecordingSink struct {
	mu    sync.Mutex
	calls []SinkCall
}

// ButtonEvent records a button call.
func (rs *RecordingSink) ButtonEvent(x, y int, down bool, mask input.ButtonMask) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.calls = append(rs.calls, SinkCall{X: x, Y: y, Down: down, Mask: mask})
}

// MoveEvent records a move call.
func (rs *RecordingSink) MoveEvent(x, y int) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.calls = append(rs.calls, SinkCall{Move: true, X: x, Y: y})
}

// Calls returns a copy of the recorded calls.
func (rs *RecordingSink) Calls() []SinkCall {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return append([]SinkCall(nil), rs.calls...)
}

// CallCount returns how many calls were recorded.
func (rs *RecordingSink) CallCount() int {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return len(rs.calls)
}

// WaitForCalls polls until at least n calls are recorded or a few seconds
// pass, then returns what was recorded.
func (rs *RecordingSink) WaitForCalls(n int) []SinkCall {
	deadline := time.Now().Add(5 * time.Second)
	for rs.CallCount() < n && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	return rs.Calls()
}
