package input

import (
	"math"
	"time"

	"github.com/pkg/errors"
)

// WheelConfig tunes a WheelAccumulator.
type WheelConfig struct {
	// Threshold is the accumulated delta that makes one click.
	Threshold float64
	// Timeout is the longest a non-zero accumulation is held before it is
	// flushed as a click regardless of magnitude.
	Timeout time.Duration
	// LineHeight scales DeltaLine deltas.
	LineHeight float64
	// PageHeight scales DeltaPage deltas.
	PageHeight float64
	// MaxStepsPerEvent caps clicks per axis for one wheel event; whole
	// thresholds beyond the cap are dropped. Zero means no cap.
	MaxStepsPerEvent int
}

// DefaultWheelConfig holds the standard wheel tuning.
var DefaultWheelConfig = WheelConfig{
	Threshold:        10,
	Timeout:          50 * time.Millisecond,
	LineHeight:       19,
	PageHeight:       400,
	MaxStepsPerEvent: 1,
}

func (wc WheelConfig) withDefaults() WheelConfig {
	if wc.Threshold <= 0 {
		wc.Threshold = DefaultWheelConfig.Threshold
	}
	if wc.Timeout <= 0 {
		wc.Timeout = DefaultWheelConfig.Timeout
	}
	if wc.LineHeight <= 0 {
		wc.LineHeight = DefaultWheelConfig.LineHeight
	}
	if wc.PageHeight <= 0 {
		wc.PageHeight = DefaultWheelConfig.PageHeight
	}
	if wc.MaxStepsPerEvent < 0 {
		wc.MaxStepsPerEvent = 0
	}
	return wc
}

// A WheelAccumulator converts continuous wheel deltas into clicks of the
// virtual wheel buttons. Each axis accumulates independently.
type WheelAccumulator struct {
	config WheelConfig
	clock  Clock
	sink   Sink

	accumulatedX float64
	accumulatedY float64
	lastFlush    time.Time
	lastPos      Position

	// timer is the only pending timeout flush. timerGen invalidates a
	// callback that was already queued when its timer got replaced.
	timer    Timer
	timerGen uint64
}

// NewWheelAccumulator returns an accumulator emitting clicks into sink.
// Zero fields of config take their DefaultWheelConfig values. clock must
// deliver callbacks on the goroutine that calls Wheel; NewWheelAccumulator
// panics if it is nil.
func NewWheelAccumulator(config WheelConfig, clock Clock, sink Sink) *WheelAccumulator {
	if clock == nil {
		panic(errors.New("wheel accumulator requires a clock"))
	}
	return &WheelAccumulator{
		config:    config.withDefaults(),
		clock:     clock,
		sink:      sink,
		lastFlush: clock.Now(),
	}
}

// Accumulated returns the pending delta per axis.
func (wa *WheelAccumulator) Accumulated() (float64, float64) {
	return wa.accumulatedX, wa.accumulatedY
}

// Wheel adds a wheel delta observed at pos.
func (wa *WheelAccumulator) Wheel(pos Position, dx, dy float64, mode DeltaMode) {
	scale := wa.scale(mode)
	dx *= scale
	dy *= scale
	// a zero delta must not push the pending timeout back
	if dx == 0 && dy == 0 {
		return
	}

	wa.cancelTimer()
	wa.lastPos = pos
	now := wa.clock.Now()
	if wa.empty() {
		wa.lastFlush = now
	}
	wa.accumulatedX += dx
	wa.accumulatedY += dy

	if now.Sub(wa.lastFlush) > wa.config.Timeout {
		wa.flush(now)
		return
	}

	var steppedX, steppedY bool
	wa.accumulatedX, steppedX = wa.step(wa.accumulatedX, ButtonWheelLeft, ButtonWheelRight)
	wa.accumulatedY, steppedY = wa.step(wa.accumulatedY, ButtonWheelUp, ButtonWheelDown)
	if steppedX || steppedY {
		wa.lastFlush = now
	}
	if !wa.empty() {
		wa.scheduleTimeout()
	}
}

// Flush emits one click per non-zero axis and zeroes both axes. Flushing
// an empty accumulator does nothing.
func (wa *WheelAccumulator) Flush() {
	wa.cancelTimer()
	if wa.empty() {
		return
	}
	wa.flush(wa.clock.Now())
}

// Reset drops any accumulated delta without emitting.
func (wa *WheelAccumulator) Reset() {
	wa.cancelTimer()
	wa.accumulatedX = 0
	wa.accumulatedY = 0
	wa.lastFlush = wa.clock.Now()
}

func (wa *WheelAccumulator) scale(mode DeltaMode) float64 {
	switch mode {
	case DeltaLine:
		return wa.config.LineHeight
	case DeltaPage:
		return wa.config.PageHeight
	default:
		return 1
	}
}

func (wa *WheelAccumulator) empty() bool {
	return wa.accumulatedX == 0 && wa.accumulatedY == 0
}

// step emits clicks while acc is at least one threshold and returns the
// remainder, always below the threshold in magnitude.
func (wa *WheelAccumulator) step(acc float64, negative, positive ButtonID) (float64, bool) {
	threshold := wa.config.Threshold
	steps := 0
	for math.Abs(acc) >= threshold {
		if wa.config.MaxStepsPerEvent > 0 && steps >= wa.config.MaxStepsPerEvent {
			// whole thresholds past the cap are dropped, only the remainder carries
			return math.Mod(acc, threshold), true
		}
		if acc < 0 {
			wa.click(negative)
			acc += threshold
		} else {
			wa.click(positive)
			acc -= threshold
		}
		steps++
	}
	return acc, steps > 0
}

func (wa *WheelAccumulator) flush(now time.Time) {
	switch {
	case wa.accumulatedX < 0:
		wa.click(ButtonWheelLeft)
	case wa.accumulatedX > 0:
		wa.click(ButtonWheelRight)
	}
	switch {
	case wa.accumulatedY < 0:
		wa.click(ButtonWheelUp)
	case wa.accumulatedY > 0:
		wa.click(ButtonWheelDown)
	}
	wa.accumulatedX = 0
	wa.accumulatedY = 0
	wa.lastFlush = now
}

func (wa *WheelAccumulator) click(id ButtonID) {
	mask := id.Mask()
	wa.sink.ButtonEvent(wa.lastPos.X, wa.lastPos.Y, true, mask)
	wa.sink.ButtonEvent(wa.lastPos.X, wa.lastPos.Y, false, mask)
}

func (wa *WheelAccumulator) scheduleTimeout() {
	gen := wa.timerGen
	wa.timer = wa.clock.AfterFunc(wa.config.Timeout, func() {
		if gen != wa.timerGen {
			return
		}
		wa.timer = nil
		wa.timerGen++
		if !wa.empty() {
			wa.flush(wa.clock.Now())
		}
	})
}

func (wa *WheelAccumulator) cancelTimer() {
	if wa.timer != nil {
		wa.timer.Stop()
		wa.timer = nil
	}
	wa.timerGen++
}
