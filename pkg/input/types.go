// Package input normalizes raw pointer input into a small stream of
// button and move events suitable for a remote framebuffer session.
//
// The filters in this package (Translator, ButtonDecoder, WheelAccumulator
// and MoveThrottler) are single-writer state machines. They are not safe for
// concurrent use: every call, including timer callbacks delivered through the
// Clock, must happen on the goroutine that owns them.
package input

import (
	"fmt"
)

// An Event is a raw pointer event coming from a surface. It is one of
// ButtonEvent, MoveEvent, WheelEvent or SurfaceEvent.
type Event interface {
	isEvent()
}

// A ButtonEvent reports a button edge at a raw (window/device) position.
type ButtonEvent struct {
	Button ButtonID
	Down   bool
	X, Y   float64
}

// A MoveEvent reports the pointer at a raw position.
type MoveEvent struct {
	X, Y float64
}

// A WheelEvent reports wheel rotation at a raw position.
type WheelEvent struct {
	X, Y           float64
	DeltaX, DeltaY float64
	Mode           DeltaMode
}

// A SurfaceEvent reports that a remote surface moved or was resized. Transports
// consume it to update a RemoteSurface; filters ignore it.
type SurfaceEvent struct {
	Left, Top, Width, Height int
}

func (ButtonEvent) isEvent()  {}
func (MoveEvent) isEvent()    {}
func (WheelEvent) isEvent()   {}
func (SurfaceEvent) isEvent() {}

// DeltaMode is the unit a wheel delta is reported in.
type DeltaMode int

// The known delta modes, numbered like DOM WheelEvent.deltaMode.
const (
	DeltaPixel DeltaMode = iota
	DeltaLine
	DeltaPage
)

// String returns a string representation of the mode.
func (m DeltaMode) String() string {
	switch m {
	case DeltaPixel:
		return "pixel"
	case DeltaLine:
		return "line"
	case DeltaPage:
		return "page"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Position is a surface-relative coordinate.
type Position struct {
	X int
	Y int
}

// A Sink receives normalized pointer events.
type Sink interface {
	// ButtonEvent reports a single button edge; mask has exactly the bit
	// of the button that changed.
	ButtonEvent(x, y int, down bool, mask ButtonMask)
	MoveEvent(x, y int)
}

// SinkFuncs adapts plain functions to a Sink. Nil funcs are skipped.
type SinkFuncs struct {
	OnButton func(x, y int, down bool, mask ButtonMask)
	OnMove   func(x, y int)
}

// ButtonEvent calls OnButton.
func (sf SinkFuncs) ButtonEvent(x, y int, down bool, mask ButtonMask) {
	if sf.OnButton != nil {
		sf.OnButton(x, y, down, mask)
	}
}

// MoveEvent calls OnMove.
func (sf SinkFuncs) MoveEvent(x, y int) {
	if sf.OnMove != nil {
		sf.OnMove(x, y)
	}
}

type multiSink []Sink

// MultiSink returns a Sink that delivers every event to each of sinks in order.
func MultiSink(sinks ...Sink) Sink {
	return multiSink(sinks)
}

func (ms multiSink) ButtonEvent(x, y int, down bool, mask ButtonMask) {
	for _, s := range ms {
		s.ButtonEvent(x, y, down, mask)
	}
}

func (ms multiSink) MoveEvent(x, y int) {
	for _, s := range ms {
		s.MoveEvent(x, y)
	}
}
