package input_test

import (
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"

	"github.com/edaniels/gopointer/pkg/input"
)

func TestDecodeEvent(t *testing.T) {
	t.Run("button", func(t *testing.T) {
		ev, err := input.DecodeEvent([]byte(`{"type":"button","button":"0x2","down":true,"x":10.5,"y":4}`))
		test.That(t, err, test.ShouldBeNil)
		test.That(t, ev, test.ShouldResemble, input.ButtonEvent{Button: input.ButtonRight, Down: true, X: 10.5, Y: 4})

		ev, err = input.DecodeEvent([]byte(`{"type":"button","button":7}`))
		test.That(t, err, test.ShouldBeNil)
		test.That(t, ev, test.ShouldResemble, input.ButtonEvent{Button: input.ButtonBack})

		_, err = input.DecodeEvent([]byte(`{"type":"button","button":40}`))
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, err.Error(), test.ShouldContainSubstring, "out of range")
	})

	t.Run("move", func(t *testing.T) {
		ev, err := input.DecodeEvent([]byte(`{"type":"move","x":1,"y":2}`))
		test.That(t, err, test.ShouldBeNil)
		test.That(t, ev, test.ShouldResemble, input.MoveEvent{X: 1, Y: 2})
	})

	t.Run("wheel", func(t *testing.T) {
		ev, err := input.DecodeEvent([]byte(`{"type":"wheel","x":1,"y":2,"dx":-3,"dy":120,"mode":1}`))
		test.That(t, err, test.ShouldBeNil)
		test.That(t, ev, test.ShouldResemble, input.WheelEvent{X: 1, Y: 2, DeltaX: -3, DeltaY: 120, Mode: input.DeltaLine})

		_, err = input.DecodeEvent([]byte(`{"type":"wheel","mode":3}`))
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, err.Error(), test.ShouldContainSubstring, "delta mode")
	})

	t.Run("surface", func(t *testing.T) {
		ev, err := input.DecodeEvent([]byte(`{"type":"surface","left":8,"top":16,"width":640,"height":480}`))
		test.That(t, err, test.ShouldBeNil)
		test.That(t, ev, test.ShouldResemble, input.SurfaceEvent{Left: 8, Top: 16, Width: 640, Height: 480})
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := input.DecodeEvent([]byte(`{"type":"keyboard"}`))
		test.That(t, errors.Is(err, input.ErrUnknownEventType), test.ShouldBeTrue)

		_, err = input.DecodeEvent([]byte(`not json`))
		test.That(t, err, test.ShouldNotBeNil)
	})
}

func TestMouseEventRoundTrip(t *testing.T) {
	data, err := input.EncodeMouseEvent(12, 34, input.ButtonLeft.Mask()|input.ButtonRight.Mask())
	test.That(t, err, test.ShouldBeNil)

	ev, err := input.DecodeMouseEvent(data)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, ev.Type, test.ShouldEqual, input.MouseEventType)
	test.That(t, ev.X, test.ShouldEqual, 12)
	test.That(t, ev.Y, test.ShouldEqual, 34)
	test.That(t, ev.ButtonMask, test.ShouldEqual, 5)

	_, err = input.DecodeMouseEvent([]byte(`{"type":"move","x":1}`))
	test.That(t, errors.Is(err, input.ErrUnknownEventType), test.ShouldBeTrue)
}
