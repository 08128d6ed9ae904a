package webrtc

import (
	"context"
	"testing"
	"time"

	"github.com/edaniels/golog"
	"github.com/pion/webrtc/v3"
	"go.viam.com/test"
)

type chanHandler chan []byte

func (ch chanHandler) HandleMessage(ctx context.Context, data []byte) error {
	ch <- data
	return nil
}

func TestSDPEncoding(t *testing.T) {
	desc := webrtc.SessionDescription{Type: webrtc.SDPTypeOffer, SDP: "v=0"}
	encoded, err := EncodeSDP(&desc)
	test.That(t, err, test.ShouldBeNil)

	var decoded webrtc.SessionDescription
	test.That(t, DecodeSDP(encoded+"\n", &decoded), test.ShouldBeNil)
	test.That(t, decoded, test.ShouldResemble, desc)

	test.That(t, DecodeSDP("not base64!", &decoded), test.ShouldNotBeNil)
}

func TestInputChannel(t *testing.T) {
	logger := golog.NewDevelopmentLogger("webrtc_test")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	server, err := NewPeerConnection(webrtc.Configuration{}, logger)
	test.That(t, err, test.ShouldBeNil)
	defer server.Close()
	client, err := NewPeerConnection(webrtc.Configuration{}, logger)
	test.That(t, err, test.ShouldBeNil)
	defer client.Close()

	received := make(chanHandler, 1)
	_, err = AttachInputChannel(ctx, server, received, logger)
	test.That(t, err, test.ShouldBeNil)

	negotiated := true
	id := InputChannelID
	clientChannel, err := client.CreateDataChannel(InputChannelLabel, &webrtc.DataChannelInit{
		Negotiated: &negotiated,
		ID:         &id,
	})
	test.That(t, err, test.ShouldBeNil)
	clientChannel.OnOpen(func() {
		if err := clientChannel.SendText(`{"type":"move","x":1,"y":2}`); err != nil {
			logger.Error(err)
		}
	})

	offer, err := client.CreateOffer(nil)
	test.That(t, err, test.ShouldBeNil)
	gatherComplete := webrtc.GatheringCompletePromise(client)
	test.That(t, client.SetLocalDescription(offer), test.ShouldBeNil)
	<-gatherComplete

	answer, err := Answer(ctx, server, *client.LocalDescription())
	test.That(t, err, test.ShouldBeNil)
	test.That(t, client.SetRemoteDescription(*answer), test.ShouldBeNil)

	select {
	case <-ctx.Done():
		t.Fatal("timed out waiting for input message")
	case data := <-received:
		test.That(t, string(data), test.ShouldEqual, `{"type":"move","x":1,"y":2}`)
	}
}
