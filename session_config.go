package gopointer

import (
	"github.com/edaniels/golog"

	"github.com/edaniels/gopointer/pkg/input"
)

// DefaultSessionConfig holds the standard filter tuning. It is invalid by
// default; it requires a Sink to be set.
var DefaultSessionConfig = SessionConfig{
	Wheel:     input.DefaultWheelConfig,
	Move:      input.DefaultThrottleConfig,
	QueueSize: 64,
}

// A SessionConfig describes how a Session should be set up.
type SessionConfig struct {
	// Surface reports where the pointer surface is. A *input.RemoteSurface
	// is also updated by SurfaceEvents dispatched to the session.
	Surface input.Surface
	// Sink receives the normalized events.
	Sink input.Sink
	// Clock defaults to input.SystemClock.
	Clock input.Clock
	Wheel input.WheelConfig
	Move  input.ThrottleConfig
	// QueueSize is how many dispatched events may wait for the session loop.
	QueueSize int
	Logger    golog.Logger
}
