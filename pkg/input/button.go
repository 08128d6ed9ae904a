package input

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ButtonID is a 0-based pointer button number. Bit n of a ButtonMask is
// button n.
type ButtonID uint8

// MaxButtonID is the largest button that fits in a ButtonMask.
const MaxButtonID ButtonID = 31

// Buttons as numbered by RFB pointer events. The wheel buttons are virtual;
// WheelAccumulator pulses them.
const (
	ButtonLeft ButtonID = iota
	ButtonMiddle
	ButtonRight
	ButtonWheelUp
	ButtonWheelDown
	ButtonWheelLeft
	ButtonWheelRight
	ButtonBack
	ButtonForward
)

// Mask returns the single-bit mask for the button. It panics if the id is
// larger than MaxButtonID.
func (id ButtonID) Mask() ButtonMask {
	if id > MaxButtonID {
		panic(errors.Errorf("button %d out of range", id))
	}
	return 1 << id
}

// UnmarshalJSON accepts a JSON number or a decimal/hexadecimal string.
func (id *ButtonID) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			return errors.Wrap(err, "malformed button id")
		}
		s = unquoted
	}
	parsed, err := ParseButtonID(s)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// ParseButtonID parses a button identifier given either in decimal ("2") or
// hexadecimal ("0x2") form.
func ParseButtonID(s string) (ButtonID, error) {
	s = strings.TrimSpace(s)
	base := 10
	digits := s
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		base = 16
		digits = s[2:]
	}
	n, err := strconv.ParseUint(digits, base, 8)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid button id %q", s)
	}
	if ButtonID(n) > MaxButtonID {
		return 0, errors.Errorf("button id %q out of range", s)
	}
	return ButtonID(n), nil
}

// ButtonMask is a bitfield of pointer buttons.
type ButtonMask uint32

// Has reports whether the button's bit is set.
func (m ButtonMask) Has(id ButtonID) bool {
	return m&id.Mask() != 0
}

// DecodeButton maps a button edge to its mask and down flag.
func DecodeButton(id ButtonID, down bool) (ButtonMask, bool) {
	return id.Mask(), down
}

// A ButtonDecoder turns button edges into sink button events. It keeps no
// state: a click is two calls, one per edge.
type ButtonDecoder struct {
	sink Sink
}

// NewButtonDecoder returns a decoder emitting into sink.
func NewButtonDecoder(sink Sink) *ButtonDecoder {
	return &ButtonDecoder{sink: sink}
}

// Button emits the edge at pos.
func (bd *ButtonDecoder) Button(pos Position, id ButtonID, down bool) {
	mask, down := DecodeButton(id, down)
	bd.sink.ButtonEvent(pos.X, pos.Y, down, mask)
}

// ButtonState tracks the set of pressed buttons from single-edge events, the
// way an RFB client builds the mask of a PointerEvent. The zero value has
// nothing pressed. It is not safe for concurrent use.
type ButtonState struct {
	pressed ButtonMask
}

// Apply records an edge and returns the resulting pressed set.
func (bs *ButtonState) Apply(down bool, mask ButtonMask) ButtonMask {
	if down {
		bs.pressed |= mask
	} else {
		bs.pressed &^= mask
	}
	return bs.pressed
}

// Pressed returns the current pressed set.
func (bs *ButtonState) Pressed() ButtonMask {
	return bs.pressed
}
