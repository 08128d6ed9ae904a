package terminal

import (
	"context"
	"testing"

	"github.com/edaniels/golog"
	"github.com/gdamore/tcell/v2"
	"go.viam.com/test"

	"github.com/edaniels/gopointer/pkg/input"
)

func TestConvertButtons(t *testing.T) {
	var conv Converter

	events := conv.Convert(tcell.NewEventMouse(3, 4, tcell.ButtonPrimary, tcell.ModNone))
	test.That(t, events, test.ShouldResemble, []input.Event{
		input.MoveEvent{X: 3, Y: 4},
		input.ButtonEvent{Button: input.ButtonLeft, Down: true, X: 3, Y: 4},
	})

	// same report again is a no-op
	events = conv.Convert(tcell.NewEventMouse(3, 4, tcell.ButtonPrimary, tcell.ModNone))
	test.That(t, events, test.ShouldBeEmpty)

	events = conv.Convert(tcell.NewEventMouse(3, 4, tcell.ButtonSecondary, tcell.ModNone))
	test.That(t, events, test.ShouldResemble, []input.Event{
		input.ButtonEvent{Button: input.ButtonLeft, Down: false, X: 3, Y: 4},
		input.ButtonEvent{Button: input.ButtonRight, Down: true, X: 3, Y: 4},
	})

	events = conv.Convert(tcell.NewEventMouse(5, 4, tcell.ButtonNone, tcell.ModNone))
	test.That(t, events, test.ShouldResemble, []input.Event{
		input.MoveEvent{X: 5, Y: 4},
		input.ButtonEvent{Button: input.ButtonRight, Down: false, X: 5, Y: 4},
	})

	events = conv.Convert(tcell.NewEventMouse(5, 4, tcell.ButtonMiddle|tcell.Button5, tcell.ModNone))
	test.That(t, events, test.ShouldResemble, []input.Event{
		input.ButtonEvent{Button: input.ButtonMiddle, Down: true, X: 5, Y: 4},
		input.ButtonEvent{Button: input.ButtonBack, Down: true, X: 5, Y: 4},
	})
}

func TestConvertWheel(t *testing.T) {
	conv := Converter{CellWidth: 8, CellHeight: 16}

	events := conv.Convert(tcell.NewEventMouse(2, 1, tcell.WheelDown, tcell.ModNone))
	test.That(t, events, test.ShouldResemble, []input.Event{
		input.MoveEvent{X: 16, Y: 16},
		input.WheelEvent{X: 16, Y: 16, DeltaY: 1, Mode: input.DeltaLine},
	})

	// wheel bits are never held
	events = conv.Convert(tcell.NewEventMouse(2, 1, tcell.WheelUp|tcell.WheelLeft, tcell.ModNone))
	test.That(t, events, test.ShouldResemble, []input.Event{
		input.WheelEvent{X: 16, Y: 16, DeltaX: -1, DeltaY: -1, Mode: input.DeltaLine},
	})
	events = conv.Convert(tcell.NewEventMouse(2, 1, tcell.ButtonNone, tcell.ModNone))
	test.That(t, events, test.ShouldBeEmpty)
}

type recordingDispatcher struct {
	events []input.Event
}

func (rd *recordingDispatcher) Dispatch(ctx context.Context, ev input.Event) error {
	rd.events = append(rd.events, ev)
	return nil
}

func TestRun(t *testing.T) {
	screen := tcell.NewSimulationScreen("")
	test.That(t, screen.Init(), test.ShouldBeNil)
	defer screen.Fini()

	screen.InjectMouse(1, 2, tcell.ButtonPrimary, tcell.ModNone)
	screen.InjectMouse(1, 2, tcell.ButtonNone, tcell.ModNone)
	screen.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)

	var dispatcher recordingDispatcher
	err := Run(context.Background(), screen, &Converter{}, &dispatcher, golog.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, dispatcher.events, test.ShouldResemble, []input.Event{
		input.MoveEvent{X: 1, Y: 2},
		input.ButtonEvent{Button: input.ButtonLeft, Down: true, X: 1, Y: 2},
		input.ButtonEvent{Button: input.ButtonLeft, Down: false, X: 1, Y: 2},
	})
}

func TestRunContextDone(t *testing.T) {
	screen := tcell.NewSimulationScreen("")
	test.That(t, screen.Init(), test.ShouldBeNil)
	defer screen.Fini()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Run(ctx, screen, &Converter{}, &recordingDispatcher{}, golog.NewTestLogger(t))
	test.That(t, err, test.ShouldEqual, context.Canceled)
}
