package gopointer_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/edaniels/golog"
	"github.com/gorilla/websocket"
	"go.viam.com/test"

	"github.com/edaniels/gopointer"
	"github.com/edaniels/gopointer/pkg/input"
)

func TestOpenDownstreamLogging(t *testing.T) {
	sink, closeFn, err := gopointer.OpenDownstream(context.Background(), gopointer.DownstreamConfig{}, golog.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	sink.MoveEvent(1, 2)
	test.That(t, closeFn(), test.ShouldBeNil)
}

func TestOpenDownstreamForward(t *testing.T) {
	received := make(chan []byte, 2)
	var upgrader websocket.Upgrader
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				return
			}
			received <- data
		}
	}))
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http")
	sink, closeFn, err := gopointer.OpenDownstream(context.Background(),
		gopointer.DownstreamConfig{ForwardURL: url}, golog.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	defer func() {
		test.That(t, closeFn(), test.ShouldBeNil)
	}()

	sink.ButtonEvent(3, 4, true, input.ButtonLeft.Mask())
	ev, err := input.DecodeMouseEvent(<-received)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, ev.X, test.ShouldEqual, 3)
	test.That(t, ev.Y, test.ShouldEqual, 4)
	test.That(t, ev.ButtonMask, test.ShouldEqual, int(input.ButtonLeft.Mask()))
}

func TestOpenDownstreamBadVNC(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := gopointer.OpenDownstream(ctx, gopointer.DownstreamConfig{VNCAddress: "127.0.0.1:1"}, golog.NewTestLogger(t))
	test.That(t, err, test.ShouldNotBeNil)
}
