package vnc

import (
	"context"
	"net"
	"sync"

	"github.com/edaniels/golog"
	"github.com/mitchellh/go-vnc"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.viam.com/utils"
)

// A Client is a connection to an RFB server used only for pointer input.
type Client struct {
	*Forwarder
	conn     *vnc.ClientConn
	messages chan vnc.ServerMessage

	shutdownCtx             context.Context
	shutdownCtxCancel       func()
	activeBackgroundWorkers sync.WaitGroup
}

// Dial connects to the RFB server at address. An empty password uses no
// authentication.
func Dial(ctx context.Context, address, password string, logger golog.Logger) (*Client, error) {
	if logger == nil {
		logger = golog.Global()
	}
	var dialer net.Dialer
	nc, err := dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, errors.Wrapf(err, "error connecting to vnc server %q", address)
	}

	var auth vnc.ClientAuth
	if password != "" {
		auth = &vnc.PasswordAuth{Password: password}
	} else {
		auth = new(vnc.ClientAuthNone)
	}
	messages := make(chan vnc.ServerMessage, 16)
	conn, err := vnc.Client(nc, &vnc.ClientConfig{
		Auth:            []vnc.ClientAuth{auth},
		ServerMessageCh: messages,
	})
	if err != nil {
		return nil, multierr.Combine(errors.Wrap(err, "error handshaking with vnc server"), nc.Close())
	}
	logger.Infow("connected to vnc desktop",
		"name", conn.DesktopName,
		"width", conn.FrameBufferWidth,
		"height", conn.FrameBufferHeight,
	)

	cancelCtx, cancelFunc := context.WithCancel(context.Background())
	c := &Client{
		Forwarder:         NewForwarder(conn, int(conn.FrameBufferWidth), int(conn.FrameBufferHeight), logger),
		conn:              conn,
		messages:          messages,
		shutdownCtx:       cancelCtx,
		shutdownCtxCancel: cancelFunc,
	}
	c.activeBackgroundWorkers.Add(1)
	utils.ManagedGo(c.drainMessages, c.activeBackgroundWorkers.Done)
	return c, nil
}

// drainMessages keeps the client library's read loop from blocking on
// server messages nothing here uses.
func (c *Client) drainMessages() {
	for {
		select {
		case <-c.shutdownCtx.Done():
			return
		case msg, ok := <-c.messages:
			if !ok {
				return
			}
			c.logger.Debugw("ignoring server message", "type", msg.Type())
		}
	}
}

// Close closes the connection.
func (c *Client) Close() error {
	c.shutdownCtxCancel()
	err := c.conn.Close()
	c.activeBackgroundWorkers.Wait()
	return err
}
