package input

import (
	"sync"

	"github.com/edaniels/golog"
)

// A Sender delivers one encoded message, e.g. a WebRTC data channel.
type Sender interface {
	Send(data []byte) error
}

// A JSONSink forwards normalized events as MouseEvent messages, keeping the
// pressed-button set across edges. It is safe for concurrent use so several
// sessions may share one downstream.
type JSONSink struct {
	mu      sync.Mutex
	sender  Sender
	buttons ButtonState
	logger  golog.Logger
}

// NewJSONSink returns a sink writing to sender. Send failures are logged.
func NewJSONSink(sender Sender, logger golog.Logger) *JSONSink {
	if logger == nil {
		logger = golog.Global()
	}
	return &JSONSink{sender: sender, logger: logger}
}

// ButtonEvent applies the edge and sends the new pressed set.
func (js *JSONSink) ButtonEvent(x, y int, down bool, mask ButtonMask) {
	js.mu.Lock()
	defer js.mu.Unlock()
	js.send(x, y, js.buttons.Apply(down, mask))
}

// MoveEvent sends the position with the current pressed set.
func (js *JSONSink) MoveEvent(x, y int) {
	js.mu.Lock()
	defer js.mu.Unlock()
	js.send(x, y, js.buttons.Pressed())
}

func (js *JSONSink) send(x, y int, pressed ButtonMask) {
	data, err := EncodeMouseEvent(x, y, pressed)
	if err != nil {
		js.logger.Errorw("error encoding mouse event", "error", err)
		return
	}
	if err := js.sender.Send(data); err != nil {
		js.logger.Debugw("error sending mouse event", "error", err)
	}
}

// LoggerSink returns a Sink that logs every event at debug level.
func LoggerSink(logger golog.Logger) Sink {
	return SinkFuncs{
		OnButton: func(x, y int, down bool, mask ButtonMask) {
			logger.Debugw("button", "x", x, "y", y, "down", down, "mask", mask)
		},
		OnMove: func(x, y int) {
			logger.Debugw("move", "x", x, "y", y)
		},
	}
}
