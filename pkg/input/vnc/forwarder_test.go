package vnc

import (
	"testing"

	"github.com/edaniels/golog"
	"github.com/mitchellh/go-vnc"
	"github.com/pkg/errors"
	"go.viam.com/test"

	"github.com/edaniels/gopointer/pkg/input"
)

type pointerEvent struct {
	mask vnc.ButtonMask
	x, y uint16
}

type fakeConn struct {
	events []pointerEvent
	err    error
}

func (fc *fakeConn) PointerEvent(mask vnc.ButtonMask, x, y uint16) error {
	fc.events = append(fc.events, pointerEvent{mask, x, y})
	return fc.err
}

func TestForwarderPressedSet(t *testing.T) {
	conn := &fakeConn{}
	f := NewForwarder(conn, 800, 600, golog.NewTestLogger(t))

	f.ButtonEvent(10, 20, true, input.ButtonLeft.Mask())
	f.MoveEvent(11, 21)
	f.ButtonEvent(11, 21, true, input.ButtonRight.Mask())
	f.ButtonEvent(11, 21, false, input.ButtonLeft.Mask())
	test.That(t, f.Pressed(), test.ShouldEqual, input.ButtonRight.Mask())
	f.ButtonEvent(11, 21, false, input.ButtonRight.Mask())

	test.That(t, conn.events, test.ShouldResemble, []pointerEvent{
		{vnc.ButtonLeft, 10, 20},
		{vnc.ButtonLeft, 11, 21},
		{vnc.ButtonLeft | vnc.ButtonRight, 11, 21},
		{vnc.ButtonRight, 11, 21},
		{0, 11, 21},
	})
}

func TestForwarderWheelClick(t *testing.T) {
	conn := &fakeConn{}
	f := NewForwarder(conn, 800, 600, golog.NewTestLogger(t))

	f.ButtonEvent(5, 5, true, input.ButtonWheelDown.Mask())
	f.ButtonEvent(5, 5, false, input.ButtonWheelDown.Mask())
	test.That(t, conn.events, test.ShouldResemble, []pointerEvent{
		{vnc.Button5, 5, 5},
		{0, 5, 5},
	})
}

func TestForwarderClamps(t *testing.T) {
	conn := &fakeConn{}
	f := NewForwarder(conn, 800, 600, golog.NewTestLogger(t))

	f.MoveEvent(-5, 700)
	f.MoveEvent(900, -1)
	f.Resize(0, 0)
	f.MoveEvent(70000, 3)
	test.That(t, conn.events, test.ShouldResemble, []pointerEvent{
		{0, 0, 599},
		{0, 799, 0},
		{0, 0xffff, 3},
	})
}

func TestForwarderDropsWideButtons(t *testing.T) {
	conn := &fakeConn{}
	f := NewForwarder(conn, 800, 600, golog.NewTestLogger(t))

	f.ButtonEvent(1, 1, true, input.ButtonForward.Mask())
	test.That(t, conn.events, test.ShouldBeEmpty)
	test.That(t, f.Pressed(), test.ShouldEqual, input.ButtonMask(0))
}

func TestForwarderSendError(t *testing.T) {
	conn := &fakeConn{err: errors.New("broken pipe")}
	f := NewForwarder(conn, 800, 600, golog.NewTestLogger(t))

	f.ButtonEvent(1, 1, true, input.ButtonMiddle.Mask())
	test.That(t, f.Pressed(), test.ShouldEqual, input.ButtonMiddle.Mask())
	test.That(t, conn.events, test.ShouldHaveLength, 1)
}
