package gopointer

import (
	"context"
	"sync"

	"github.com/edaniels/golog"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/edaniels/gopointer/pkg/input"
	"github.com/edaniels/gopointer/pkg/input/vnc"
)

// A DownstreamConfig names where normalized events go. VNCAddress wins over
// ForwardURL; with neither set events are only logged.
type DownstreamConfig struct {
	VNCAddress  string
	VNCPassword string
	// ForwardURL is a websocket URL that receives MouseEvent messages.
	ForwardURL string
}

// OpenDownstream connects the configured downstream and returns it as a
// sink along with a function that disconnects it.
func OpenDownstream(ctx context.Context, config DownstreamConfig, logger golog.Logger) (input.Sink, func() error, error) {
	if logger == nil {
		logger = Logger
	}
	switch {
	case config.VNCAddress != "":
		client, err := vnc.Dial(ctx, config.VNCAddress, config.VNCPassword, logger)
		if err != nil {
			return nil, nil, err
		}
		return client, client.Close, nil
	case config.ForwardURL != "":
		conn, resp, err := websocket.DefaultDialer.DialContext(ctx, config.ForwardURL, nil)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "error connecting to %q", config.ForwardURL)
		}
		if err := resp.Body.Close(); err != nil {
			logger.Debugw("error closing handshake body", "error", err)
		}
		logger.Infow("forwarding pointer events", "url", config.ForwardURL)
		return input.NewJSONSink(&websocketSender{conn: conn}, logger), conn.Close, nil
	default:
		logger.Info("no downstream configured; logging pointer events")
		return input.LoggerSink(logger), func() error { return nil }, nil
	}
}

type websocketSender struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (ws *websocketSender) Send(data []byte) error {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return ws.conn.WriteMessage(websocket.TextMessage, data)
}
