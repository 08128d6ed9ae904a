// Package window turns per-frame pointer samples from a windowing library
// into raw pointer events.
package window

import (
	"github.com/edaniels/gopointer/pkg/input"
)

// Buttons a window reports, in Sample.Pressed order.
var sampledButtons = [...]input.ButtonID{
	input.ButtonLeft,
	input.ButtonMiddle,
	input.ButtonRight,
	input.ButtonBack,
	input.ButtonForward,
}

// NumButtons is the length of Sample.Pressed.
const NumButtons = len(sampledButtons)

// A Sample is the pointer state observed in one frame.
type Sample struct {
	// X and Y are in the same coordinate space as the surface in use.
	X, Y int
	// Pressed holds left, middle, right, back and forward.
	Pressed [NumButtons]bool
	// WheelX and WheelY are wheel notches since the last frame; positive
	// WheelY scrolls down.
	WheelX, WheelY float64
}

// A Poller diffs consecutive samples. Only changes become events, so a
// still pointer produces nothing.
type Poller struct {
	last Sample
	seen bool
}

// Convert returns the events that explain the change from the previous
// sample: motion, button edges, then wheel.
func (p *Poller) Convert(s Sample) []input.Event {
	x, y := float64(s.X), float64(s.Y)

	var events []input.Event
	if !p.seen || s.X != p.last.X || s.Y != p.last.Y {
		events = append(events, input.MoveEvent{X: x, Y: y})
	}
	for i, id := range sampledButtons {
		if p.seen && s.Pressed[i] == p.last.Pressed[i] {
			continue
		}
		if !p.seen && !s.Pressed[i] {
			continue
		}
		events = append(events, input.ButtonEvent{Button: id, Down: s.Pressed[i], X: x, Y: y})
	}
	if s.WheelX != 0 || s.WheelY != 0 {
		events = append(events, input.WheelEvent{X: x, Y: y, DeltaX: s.WheelX, DeltaY: s.WheelY, Mode: input.DeltaLine})
	}
	p.last = s
	p.seen = true
	return events
}
