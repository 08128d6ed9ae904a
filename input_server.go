package gopointer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/edaniels/golog"
	"github.com/gorilla/websocket"
	"github.com/pion/webrtc/v3"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.viam.com/utils"
	"goji.io"
	"goji.io/pat"

	"github.com/edaniels/gopointer/pkg/input"
	ourwebrtc "github.com/edaniels/gopointer/webrtc"
)

// An InputServer serves a pointer capture page and accepts raw pointer
// events from it over a websocket or a WebRTC data channel. Every
// connection gets its own Session; all sessions share the configured sink.
type InputServer interface {
	// Handler returns the server's routes.
	Handler() http.Handler
	// Start starts the server and waits for new connections.
	Start() error
	// Stop stops the server and closes every session.
	Stop(ctx context.Context) error
}

// An InputServerConfig describes how an InputServer should be set up.
type InputServerConfig struct {
	Port int
	// Session is the template for each connection's session. Its Surface
	// is replaced by one reported by the connection.
	Session      SessionConfig
	WebRTCConfig webrtc.Configuration
	Logger       golog.Logger
}

type inputServer struct {
	config     InputServerConfig
	mux        *goji.Mux
	upgrader   websocket.Upgrader
	httpServer *http.Server

	startedMu sync.Mutex
	started   bool

	sessionsMu sync.Mutex
	sessions   map[string]*Session

	shutdownCtx             context.Context
	shutdownCtxCancel       func()
	activeBackgroundWorkers sync.WaitGroup
	logger                  golog.Logger
}

// ErrServerAlreadyStarted happens when the server has already been started.
var ErrServerAlreadyStarted = errors.New("already started")

// NewInputServer returns a server for the given config. It does not listen
// until started.
func NewInputServer(config InputServerConfig) (InputServer, error) {
	if config.Session.Sink == nil {
		return nil, errors.New("session sink must be set")
	}
	logger := config.Logger
	if logger == nil {
		logger = Logger
	}
	if config.Session.Logger == nil {
		config.Session.Logger = logger
	}
	ctx, cancelFunc := context.WithCancel(context.Background())
	is := &inputServer{
		config:            config,
		sessions:          map[string]*Session{},
		shutdownCtx:       ctx,
		shutdownCtxCancel: cancelFunc,
		logger:            logger,
	}

	mux := goji.NewMux()
	mux.HandleFunc(pat.Get("/"), func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if _, err := io.WriteString(w, capturePageHTML); err != nil {
			is.logger.Debugw("error writing page", "error", err)
		}
	})
	mux.HandleFunc(pat.Get("/input"), is.handleWebsocket)
	mux.HandleFunc(pat.Post("/offer"), is.handleOffer)
	is.mux = mux
	return is, nil
}

func (is *inputServer) Handler() http.Handler {
	return is.mux
}

func (is *inputServer) Start() error {
	is.startedMu.Lock()
	defer is.startedMu.Unlock()
	if is.started {
		return ErrServerAlreadyStarted
	}
	is.started = true

	humanAddress := fmt.Sprintf("localhost:%d", is.config.Port)
	listener, secure, err := utils.NewPossiblySecureTCPListenerFromFile(humanAddress, "", "")
	if err != nil {
		return err
	}
	httpServer := &http.Server{
		Addr:           listener.Addr().String(),
		Handler:        is.mux,
		MaxHeaderBytes: 1 << 20,
	}
	is.httpServer = httpServer

	scheme := "http"
	if secure {
		scheme = "https"
	}
	is.activeBackgroundWorkers.Add(1)
	utils.PanicCapturingGo(func() {
		defer is.activeBackgroundWorkers.Done()
		is.logger.Infow("serving", "url", fmt.Sprintf("%s://%s", scheme, listener.Addr().String()))
		if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			is.logger.Errorw("error serving", "error", err)
		}
	})
	return nil
}

func (is *inputServer) Stop(ctx context.Context) (err error) {
	is.shutdownCtxCancel()
	defer is.activeBackgroundWorkers.Wait()
	is.startedMu.Lock()
	httpServer := is.httpServer
	is.startedMu.Unlock()
	if httpServer != nil {
		err = httpServer.Shutdown(ctx)
	}

	is.sessionsMu.Lock()
	sessions := make([]*Session, 0, len(is.sessions))
	for _, s := range is.sessions {
		sessions = append(sessions, s)
	}
	is.sessionsMu.Unlock()
	for _, s := range sessions {
		err = multierr.Combine(err, is.closeSession(s))
	}
	return err
}

func (is *inputServer) newSession() (*Session, error) {
	if is.shutdownCtx.Err() != nil {
		return nil, ErrSessionClosed
	}
	config := is.config.Session
	config.Surface = &input.RemoteSurface{}
	s, err := NewSession(config)
	if err != nil {
		return nil, err
	}
	is.sessionsMu.Lock()
	is.sessions[s.ID()] = s
	is.sessionsMu.Unlock()
	is.logger.Debugw("session started", "session", s.ID())
	return s, nil
}

func (is *inputServer) closeSession(s *Session) error {
	is.sessionsMu.Lock()
	delete(is.sessions, s.ID())
	is.sessionsMu.Unlock()
	return s.Close()
}

func (is *inputServer) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	conn, err := is.upgrader.Upgrade(w, r, nil)
	if err != nil {
		is.logger.Debugw("error upgrading connection", "error", err)
		return
	}
	defer func() {
		if err := conn.Close(); err != nil {
			is.logger.Debugw("error closing connection", "error", err)
		}
	}()

	s, err := is.newSession()
	if err != nil {
		is.logger.Debugw("error starting session", "error", err)
		return
	}
	defer func() {
		if err := is.closeSession(s); err != nil {
			is.logger.Debugw("error closing session", "error", err)
		}
	}()

	stopReading := make(chan struct{})
	defer close(stopReading)
	utils.PanicCapturingGo(func() {
		select {
		case <-is.shutdownCtx.Done():
			// unblocks ReadMessage
			if err := conn.Close(); err != nil {
				is.logger.Debugw("error closing connection", "error", err)
			}
		case <-stopReading:
		}
	})

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				is.logger.Debugw("error reading input", "error", err)
			}
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}
		if err := s.HandleMessage(r.Context(), data); err != nil {
			if errors.Is(err, ErrSessionClosed) {
				return
			}
			is.logger.Debugw("error handling input message", "error", err)
		}
	}
}

func (is *inputServer) handleOffer(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if err := r.Body.Close(); err != nil {
			is.logger.Debugw("error closing body", "error", err)
		}
	}()
	if err := is.answerOffer(w, r); err != nil {
		is.logger.Debugw("error handling offer", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		if _, err := w.Write([]byte(err.Error())); err != nil {
			is.logger.Error(err)
		}
	}
}

func (is *inputServer) answerOffer(w io.Writer, r *http.Request) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		return errors.Wrap(err, "error reading offer")
	}
	var offer webrtc.SessionDescription
	if err := ourwebrtc.DecodeSDP(strings.TrimSpace(string(body)), &offer); err != nil {
		return err
	}

	pc, err := ourwebrtc.NewPeerConnection(is.config.WebRTCConfig, is.logger)
	if err != nil {
		return err
	}
	s, err := is.newSession()
	if err != nil {
		return multierr.Combine(err, pc.Close())
	}
	var closeOnce sync.Once
	closeAll := func() {
		closeOnce.Do(func() {
			if err := multierr.Combine(is.closeSession(s), pc.Close()); err != nil {
				is.logger.Debugw("error closing peer", "error", err)
			}
		})
	}

	pc.OnICEConnectionStateChange(func(connectionState webrtc.ICEConnectionState) {
		is.logger.Debugw("connection state changed", "session", s.ID(), "conn_state", connectionState.String())
		switch connectionState {
		case webrtc.ICEConnectionStateDisconnected,
			webrtc.ICEConnectionStateFailed,
			webrtc.ICEConnectionStateClosed:
			utils.PanicCapturingGo(closeAll)
		}
	})

	if _, err := ourwebrtc.AttachInputChannel(is.shutdownCtx, pc, s, is.logger); err != nil {
		closeAll()
		return err
	}
	answer, err := ourwebrtc.Answer(r.Context(), pc, offer)
	if err != nil {
		closeAll()
		return err
	}
	encodedSDP, err := ourwebrtc.EncodeSDP(answer)
	if err != nil {
		closeAll()
		return err
	}
	_, err = w.Write([]byte(encodedSDP))
	return err
}
