package gopointer

import (
	"context"
	"sync"
	"time"

	"github.com/edaniels/golog"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.viam.com/utils"

	"github.com/edaniels/gopointer/pkg/input"
)

// ErrSessionClosed happens when work is handed to a closed session.
var ErrSessionClosed = errors.New("session closed")

// A Session owns one set of pointer filters for a single surface. Events
// may be dispatched from any goroutine; they are applied in order by the
// session's loop, which is also where every filter timer fires.
type Session struct {
	id      string
	config  SessionConfig
	surface *input.RemoteSurface

	translator *input.Translator
	buttons    *input.ButtonDecoder
	wheel      *input.WheelAccumulator
	moves      *input.MoveThrottler

	work chan func()

	mu     sync.Mutex
	closed bool

	shutdownCtx             context.Context
	shutdownCtxCancel       func()
	activeBackgroundWorkers sync.WaitGroup
	logger                  golog.Logger
}

// NewSession returns a running session. Close must be called to release it.
func NewSession(config SessionConfig) (*Session, error) {
	if config.Sink == nil {
		return nil, errors.New("session sink must be set")
	}
	logger := config.Logger
	if logger == nil {
		logger = Logger
	}
	if config.Clock == nil {
		config.Clock = input.SystemClock()
	}
	if config.Wheel == (input.WheelConfig{}) {
		config.Wheel = DefaultSessionConfig.Wheel
	}
	if config.Move == (input.ThrottleConfig{}) {
		config.Move = DefaultSessionConfig.Move
	}
	if config.QueueSize <= 0 {
		config.QueueSize = DefaultSessionConfig.QueueSize
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	s := &Session{
		id:                uuid.NewString(),
		config:            config,
		work:              make(chan func(), config.QueueSize),
		shutdownCtx:       ctx,
		shutdownCtxCancel: cancelFunc,
	}
	s.logger = logger.With("session", s.id)
	if remote, ok := config.Surface.(*input.RemoteSurface); ok {
		s.surface = remote
	}

	clock := loopClock{session: s, clock: config.Clock}
	s.translator = input.NewTranslator(config.Surface)
	s.moves = input.NewMoveThrottler(config.Move, clock, config.Sink)
	ordered := orderedSink{moves: s.moves, sink: config.Sink}
	s.buttons = input.NewButtonDecoder(ordered)
	s.wheel = input.NewWheelAccumulator(config.Wheel, clock, ordered)

	s.activeBackgroundWorkers.Add(1)
	utils.ManagedGo(s.processWork, s.activeBackgroundWorkers.Done)
	return s, nil
}

// ID returns the unique id of the session.
func (s *Session) ID() string {
	return s.id
}

// Dispatch queues a raw event. It returns once the event is queued, not
// once it has been applied; use Sync for that.
func (s *Session) Dispatch(ctx context.Context, ev input.Event) error {
	if bev, ok := ev.(input.ButtonEvent); ok && bev.Button > input.MaxButtonID {
		return errors.Errorf("button %d out of range", bev.Button)
	}
	return s.post(ctx, func() {
		s.handle(ev)
	})
}

// HandleMessage decodes a wire message and dispatches it.
func (s *Session) HandleMessage(ctx context.Context, data []byte) error {
	ev, err := input.DecodeEvent(data)
	if err != nil {
		return err
	}
	return s.Dispatch(ctx, ev)
}

// Sync waits until every event dispatched before it has been applied.
func (s *Session) Sync(ctx context.Context) error {
	done := make(chan struct{})
	if err := s.post(ctx, func() { close(done) }); err != nil {
		return err
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-s.shutdownCtx.Done():
		return ErrSessionClosed
	}
}

// Close delivers any held wheel remainder and pending move, then stops the
// session. Events dispatched concurrently with Close may be dropped.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	done := make(chan struct{})
	flush := func() {
		defer close(done)
		s.wheel.Flush()
		s.moves.Flush()
	}
	select {
	case s.work <- flush:
		<-done
	case <-s.shutdownCtx.Done():
	}
	s.shutdownCtxCancel()
	s.activeBackgroundWorkers.Wait()
	s.logger.Debug("session closed")
	return nil
}

func (s *Session) post(ctx context.Context, fn func()) error {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return ErrSessionClosed
	}
	select {
	case s.work <- fn:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-s.shutdownCtx.Done():
		return ErrSessionClosed
	}
}

func (s *Session) processWork() {
	for {
		select {
		case <-s.shutdownCtx.Done():
			return
		default:
		}
		select {
		case <-s.shutdownCtx.Done():
			return
		case fn := <-s.work:
			fn()
		}
	}
}

func (s *Session) handle(ev input.Event) {
	switch ev := ev.(type) {
	case input.ButtonEvent:
		s.buttons.Button(s.translator.Translate(ev.X, ev.Y), ev.Button, ev.Down)
	case input.MoveEvent:
		s.moves.Move(s.translator.Translate(ev.X, ev.Y))
	case input.WheelEvent:
		s.wheel.Wheel(s.translator.Translate(ev.X, ev.Y), ev.DeltaX, ev.DeltaY, ev.Mode)
	case input.SurfaceEvent:
		if s.surface == nil {
			s.logger.Debugw("ignoring surface event for local surface", "event", ev)
			return
		}
		s.surface.Update(ev)
	default:
		s.logger.Debugw("ignoring unknown event", "event", ev)
	}
}

// orderedSink delivers a pending throttled move before any button edge so
// a click never lands ahead of the motion that led to it.
type orderedSink struct {
	moves *input.MoveThrottler
	sink  input.Sink
}

func (ps orderedSink) ButtonEvent(x, y int, down bool, mask input.ButtonMask) {
	ps.moves.Flush()
	ps.sink.ButtonEvent(x, y, down, mask)
}

func (ps orderedSink) MoveEvent(x, y int) {
	ps.sink.MoveEvent(x, y)
}

// loopClock runs timer callbacks on the session loop.
type loopClock struct {
	session *Session
	clock   input.Clock
}

func (lc loopClock) Now() time.Time {
	return lc.clock.Now()
}

func (lc loopClock) AfterFunc(d time.Duration, f func()) input.Timer {
	s := lc.session
	return lc.clock.AfterFunc(d, func() {
		select {
		case s.work <- f:
		case <-s.shutdownCtx.Done():
		}
	})
}
