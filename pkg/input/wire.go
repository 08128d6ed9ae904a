package input

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Wire message types.
const (
	ButtonEventType  = "button"
	MoveEventType    = "move"
	WheelEventType   = "wheel"
	SurfaceEventType = "surface"
	MouseEventType   = "mouse"
)

// RawEvent is the envelope shared by every wire message.
type RawEvent struct {
	Type string `json:"type"`
}

type wireButtonEvent struct {
	RawEvent
	Button ButtonID `json:"button"`
	Down   bool     `json:"down"`
	X      float64  `json:"x"`
	Y      float64  `json:"y"`
}

type wireMoveEvent struct {
	RawEvent
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type wireWheelEvent struct {
	RawEvent
	X      float64   `json:"x"`
	Y      float64   `json:"y"`
	DeltaX float64   `json:"dx"`
	DeltaY float64   `json:"dy"`
	Mode   DeltaMode `json:"mode"`
}

type wireSurfaceEvent struct {
	RawEvent
	Left   int `json:"left"`
	Top    int `json:"top"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ErrUnknownEventType happens when a wire message has a type this package
// does not decode.
var ErrUnknownEventType = errors.New("unknown event type")

// DecodeEvent decodes a raw wire message sent by a surface client.
func DecodeEvent(data []byte) (Event, error) {
	var raw RawEvent
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "malformed event")
	}

	switch raw.Type {
	case ButtonEventType:
		var ev wireButtonEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			return nil, errors.Wrap(err, "malformed button event")
		}
		return ButtonEvent{Button: ev.Button, Down: ev.Down, X: ev.X, Y: ev.Y}, nil
	case MoveEventType:
		var ev wireMoveEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			return nil, errors.Wrap(err, "malformed move event")
		}
		return MoveEvent{X: ev.X, Y: ev.Y}, nil
	case WheelEventType:
		var ev wireWheelEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			return nil, errors.Wrap(err, "malformed wheel event")
		}
		if ev.Mode < DeltaPixel || ev.Mode > DeltaPage {
			return nil, errors.Errorf("unknown delta mode %d", ev.Mode)
		}
		return WheelEvent{X: ev.X, Y: ev.Y, DeltaX: ev.DeltaX, DeltaY: ev.DeltaY, Mode: ev.Mode}, nil
	case SurfaceEventType:
		var ev wireSurfaceEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			return nil, errors.Wrap(err, "malformed surface event")
		}
		return SurfaceEvent{Left: ev.Left, Top: ev.Top, Width: ev.Width, Height: ev.Height}, nil
	default:
		return nil, errors.Wrapf(ErrUnknownEventType, "%q", raw.Type)
	}
}

// MouseEvent is an RFB style pointer update: a position plus the full set
// of pressed buttons.
type MouseEvent struct {
	RawEvent
	X          int `json:"x"`
	Y          int `json:"y"`
	ButtonMask int `json:"mask"`
}

// EncodeMouseEvent encodes a pointer update for a downstream consumer.
func EncodeMouseEvent(x, y int, pressed ButtonMask) ([]byte, error) {
	return json.Marshal(MouseEvent{
		RawEvent:   RawEvent{Type: MouseEventType},
		X:          x,
		Y:          y,
		ButtonMask: int(pressed),
	})
}

// DecodeMouseEvent decodes a pointer update produced by EncodeMouseEvent.
func DecodeMouseEvent(data []byte) (MouseEvent, error) {
	var ev MouseEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return MouseEvent{}, errors.Wrap(err, "malformed mouse event")
	}
	if ev.Type != MouseEventType {
		return MouseEvent{}, errors.Wrapf(ErrUnknownEventType, "%q", ev.Type)
	}
	return ev, nil
}
