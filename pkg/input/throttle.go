package input

import (
	"time"

	"github.com/pkg/errors"
)

// ThrottleConfig tunes a MoveThrottler.
type ThrottleConfig struct {
	// Interval is the minimum spacing between delivered moves.
	Interval time.Duration
}

// DefaultThrottleConfig delivers at most one move per ~60Hz frame.
var DefaultThrottleConfig = ThrottleConfig{
	Interval: 17 * time.Millisecond,
}

// A MoveThrottler rate limits moves with a leading and a trailing edge: the
// first move of a burst goes out immediately and the last one goes out once
// the interval has passed. Moves in between are dropped.
type MoveThrottler struct {
	config ThrottleConfig
	clock  Clock
	sink   Sink

	sent     bool
	lastSent time.Time
	pending  *Position

	// timer is the only pending trailing flush.
	timer    Timer
	timerGen uint64
}

// NewMoveThrottler returns a throttler emitting into sink. A zero interval
// takes the DefaultThrottleConfig value. clock must deliver callbacks on
// the goroutine that calls Move; NewMoveThrottler panics if it is nil.
func NewMoveThrottler(config ThrottleConfig, clock Clock, sink Sink) *MoveThrottler {
	if config.Interval <= 0 {
		config.Interval = DefaultThrottleConfig.Interval
	}
	if clock == nil {
		panic(errors.New("move throttler requires a clock"))
	}
	return &MoveThrottler{
		config: config,
		clock:  clock,
		sink:   sink,
	}
}

// Pending returns the position waiting for the trailing flush, if any.
func (mt *MoveThrottler) Pending() (Position, bool) {
	if mt.pending == nil {
		return Position{}, false
	}
	return *mt.pending, true
}

// Move offers a new pointer position.
func (mt *MoveThrottler) Move(pos Position) {
	now := mt.clock.Now()
	if !mt.sent || now.Sub(mt.lastSent) >= mt.config.Interval {
		mt.cancelTimer()
		mt.pending = nil
		mt.send(pos, now)
		return
	}

	mt.pending = &pos
	if mt.timer != nil {
		return
	}
	gen := mt.timerGen
	mt.timer = mt.clock.AfterFunc(mt.lastSent.Add(mt.config.Interval).Sub(now), func() {
		if gen != mt.timerGen {
			return
		}
		mt.timer = nil
		mt.timerGen++
		mt.sendPending()
	})
}

// Flush sends the pending position now, if there is one.
func (mt *MoveThrottler) Flush() {
	mt.cancelTimer()
	mt.sendPending()
}

// Stop cancels the trailing flush and drops the pending position.
func (mt *MoveThrottler) Stop() {
	mt.cancelTimer()
	mt.pending = nil
}

func (mt *MoveThrottler) sendPending() {
	if mt.pending == nil {
		return
	}
	pos := *mt.pending
	mt.pending = nil
	mt.send(pos, mt.clock.Now())
}

func (mt *MoveThrottler) send(pos Position, now time.Time) {
	mt.sent = true
	mt.lastSent = now
	mt.sink.MoveEvent(pos.X, pos.Y)
}

func (mt *MoveThrottler) cancelTimer() {
	if mt.timer != nil {
		mt.timer.Stop()
		mt.timer = nil
	}
	mt.timerGen++
}
