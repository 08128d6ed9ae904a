// Package vnc forwards normalized pointer events to an RFB server.
package vnc

import (
	"sync"

	"github.com/edaniels/golog"
	"github.com/mitchellh/go-vnc"

	"github.com/edaniels/gopointer/pkg/input"
)

// A PointerConn sends RFB PointerEvent messages. *vnc.ClientConn is one.
type PointerConn interface {
	PointerEvent(mask vnc.ButtonMask, x, y uint16) error
}

// rfbButtons is the part of an input.ButtonMask a PointerEvent can carry.
const rfbButtons = input.ButtonMask(0xff)

// A Forwarder is an input.Sink writing RFB pointer events. RFB has no
// button edges, only the full pressed set, so the Forwarder keeps that set
// and sends it with every event. It is safe for concurrent use so several
// sessions can share one connection.
type Forwarder struct {
	mu      sync.Mutex
	conn    PointerConn
	width   int
	height  int
	buttons input.ButtonState
	logger  golog.Logger
}

// NewForwarder returns a Forwarder for a framebuffer of the given size.
// Coordinates are clamped into the framebuffer; a zero size disables
// clamping beyond the uint16 range.
func NewForwarder(conn PointerConn, width, height int, logger golog.Logger) *Forwarder {
	if logger == nil {
		logger = golog.Global()
	}
	return &Forwarder{conn: conn, width: width, height: height, logger: logger}
}

// Resize updates the framebuffer size used for clamping.
func (f *Forwarder) Resize(width, height int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.width = width
	f.height = height
}

// Pressed returns the buttons the server currently sees as held.
func (f *Forwarder) Pressed() input.ButtonMask {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.buttons.Pressed()
}

// ButtonEvent applies the edge and sends the new pressed set.
func (f *Forwarder) ButtonEvent(x, y int, down bool, mask input.ButtonMask) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if mask&^rfbButtons != 0 {
		f.logger.Debugw("dropping button outside of rfb range", "mask", mask)
		return
	}
	f.send(x, y, f.buttons.Apply(down, mask))
}

// MoveEvent sends the position with the current pressed set.
func (f *Forwarder) MoveEvent(x, y int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.send(x, y, f.buttons.Pressed())
}

func (f *Forwarder) send(x, y int, pressed input.ButtonMask) {
	px, py := clamp(x, f.width), clamp(y, f.height)
	if err := f.conn.PointerEvent(vnc.ButtonMask(pressed&rfbButtons), px, py); err != nil {
		f.logger.Errorw("error sending pointer event", "error", err)
	}
}

func clamp(v, size int) uint16 {
	limit := 0xffff
	if size > 0 {
		limit = size - 1
	}
	switch {
	case v < 0:
		return 0
	case v > limit:
		return uint16(limit)
	default:
		return uint16(v)
	}
}
