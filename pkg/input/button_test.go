package input_test

import (
	"testing"

	"go.viam.com/test"

	"github.com/edaniels/gopointer/pkg/input"
	"github.com/edaniels/gopointer/testutils"
)

func TestButtonDecoderDownUp(t *testing.T) {
	for n := input.ButtonID(0); n <= input.MaxButtonID; n++ {
		sink := &testutils.RecordingSink{}
		bd := input.NewButtonDecoder(sink)
		pos := input.Position{X: 3, Y: 4}
		bd.Button(pos, n, true)
		bd.Button(pos, n, false)

		calls := sink.Calls()
		test.That(t, calls, test.ShouldHaveLength, 2)
		test.That(t, calls[0], test.ShouldResemble, testutils.SinkCall{X: 3, Y: 4, Down: true, Mask: 1 << n})
		test.That(t, calls[1], test.ShouldResemble, testutils.SinkCall{X: 3, Y: 4, Down: false, Mask: 1 << n})
	}
}

func TestDecodeButton(t *testing.T) {
	mask, down := input.DecodeButton(input.ButtonRight, true)
	test.That(t, mask, test.ShouldEqual, input.ButtonMask(4))
	test.That(t, down, test.ShouldBeTrue)

	test.That(t, func() { input.ButtonID(32).Mask() }, test.ShouldPanic)
}

func TestParseButtonID(t *testing.T) {
	for _, s := range []string{"2", "0x2", "0X02", " 2 "} {
		id, err := input.ParseButtonID(s)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, id, test.ShouldEqual, input.ButtonRight)
	}

	id, err := input.ParseButtonID("0x1f")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, id, test.ShouldEqual, input.MaxButtonID)

	_, err = input.ParseButtonID("0x20")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "out of range")

	for _, s := range []string{"", "left", "-1", "0x", "256"} {
		_, err = input.ParseButtonID(s)
		test.That(t, err, test.ShouldNotBeNil)
	}
}

func TestButtonState(t *testing.T) {
	var bs input.ButtonState
	test.That(t, bs.Apply(true, input.ButtonLeft.Mask()), test.ShouldEqual, input.ButtonMask(1))
	test.That(t, bs.Apply(true, input.ButtonRight.Mask()), test.ShouldEqual, input.ButtonMask(5))
	test.That(t, bs.Apply(false, input.ButtonLeft.Mask()), test.ShouldEqual, input.ButtonMask(4))
	// releasing something not pressed is harmless
	test.That(t, bs.Apply(false, input.ButtonMiddle.Mask()), test.ShouldEqual, input.ButtonMask(4))
	test.That(t, bs.Pressed().Has(input.ButtonRight), test.ShouldBeTrue)
	test.That(t, bs.Pressed().Has(input.ButtonLeft), test.ShouldBeFalse)
}
