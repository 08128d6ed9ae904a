// Package terminal reads pointer input from a terminal's mouse reporting.
package terminal

import (
	"context"

	"github.com/edaniels/golog"
	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"go.viam.com/utils"

	"github.com/edaniels/gopointer/pkg/input"
)

// A Dispatcher accepts raw pointer events, e.g. a *gopointer.Session.
type Dispatcher interface {
	Dispatch(ctx context.Context, ev input.Event) error
}

var buttonMap = []struct {
	tcell tcell.ButtonMask
	id    input.ButtonID
}{
	{tcell.ButtonPrimary, input.ButtonLeft},
	{tcell.ButtonMiddle, input.ButtonMiddle},
	{tcell.ButtonSecondary, input.ButtonRight},
	{tcell.Button4, input.ButtonForward},
	{tcell.Button5, input.ButtonBack},
}

// A Converter turns terminal mouse reports into raw pointer events.
// Terminals report the full button state with every event, so the
// Converter diffs it against the previous report to find edges. Wheel
// notches become single line deltas.
type Converter struct {
	// CellWidth and CellHeight scale cell positions; zero means 1.
	CellWidth  int
	CellHeight int

	pressed tcell.ButtonMask
	x, y    float64
	seen    bool
}

// Convert returns the events for one mouse report in the order they
// should be dispatched: motion, button edges, then wheel.
func (c *Converter) Convert(ev *tcell.EventMouse) []input.Event {
	cx, cy := ev.Position()
	x, y := float64(cx*scale(c.CellWidth)), float64(cy*scale(c.CellHeight))

	var events []input.Event
	if !c.seen || x != c.x || y != c.y {
		events = append(events, input.MoveEvent{X: x, Y: y})
	}
	c.seen = true
	c.x, c.y = x, y

	btns := ev.Buttons()
	for _, b := range buttonMap {
		was, is := c.pressed&b.tcell != 0, btns&b.tcell != 0
		if was != is {
			events = append(events, input.ButtonEvent{Button: b.id, Down: is, X: x, Y: y})
		}
	}
	c.pressed = btns &^ (tcell.WheelUp | tcell.WheelDown | tcell.WheelLeft | tcell.WheelRight)

	var dx, dy float64
	switch {
	case btns&tcell.WheelUp != 0:
		dy = -1
	case btns&tcell.WheelDown != 0:
		dy = 1
	}
	switch {
	case btns&tcell.WheelLeft != 0:
		dx = -1
	case btns&tcell.WheelRight != 0:
		dx = 1
	}
	if dx != 0 || dy != 0 {
		events = append(events, input.WheelEvent{X: x, Y: y, DeltaX: dx, DeltaY: dy, Mode: input.DeltaLine})
	}
	return events
}

func scale(n int) int {
	if n <= 0 {
		return 1
	}
	return n
}

// Run reads mouse reports from screen, converts them with conv and
// dispatches them until escape or ctrl-c is pressed, the screen is
// finalized, or ctx is done. The screen must already be initialized; Run
// enables mouse reporting on it.
func Run(ctx context.Context, screen tcell.Screen, conv *Converter, dispatcher Dispatcher, logger golog.Logger) error {
	screen.EnableMouse()
	defer screen.DisableMouse()
	drawStatus(screen, "capturing pointer, esc to quit")

	done := make(chan struct{})
	defer close(done)
	utils.PanicCapturingGo(func() {
		select {
		case <-ctx.Done():
			if err := screen.PostEvent(tcell.NewEventInterrupt(nil)); err != nil {
				logger.Debugw("error interrupting screen", "error", err)
			}
		case <-done:
		}
	})

	for {
		switch ev := screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventInterrupt:
			return ctx.Err()
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
				return nil
			}
		case *tcell.EventMouse:
			for _, pev := range conv.Convert(ev) {
				if err := dispatcher.Dispatch(ctx, pev); err != nil {
					return errors.Wrap(err, "error dispatching pointer event")
				}
			}
		}
	}
}

func drawStatus(screen tcell.Screen, status string) {
	screen.Clear()
	style := tcell.StyleDefault.Reverse(true)
	for i, r := range status {
		screen.SetContent(i, 0, r, nil, style)
	}
	screen.Show()
}
