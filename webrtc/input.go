// Package webrtc carries pointer input over WebRTC data channels.
package webrtc

import (
	"context"

	"github.com/edaniels/golog"
	"github.com/pion/webrtc/v3"
	"github.com/pkg/errors"
)

// InputChannelLabel and InputChannelID identify the negotiated data channel
// carrying raw pointer events. Both sides create it out of band, so no
// data channel announcement is needed.
const (
	InputChannelLabel = "input"
	InputChannelID    = uint16(0)
)

// A MessageHandler consumes one wire message.
type MessageHandler interface {
	HandleMessage(ctx context.Context, data []byte) error
}

// NewPeerConnection returns a data channel only peer connection whose pion
// logs go to logger.
func NewPeerConnection(config webrtc.Configuration, logger golog.Logger) (*webrtc.PeerConnection, error) {
	settingEngine := webrtc.SettingEngine{
		LoggerFactory: LoggerFactory{logger},
	}
	api := webrtc.NewAPI(webrtc.WithSettingEngine(settingEngine))
	pc, err := api.NewPeerConnection(config)
	if err != nil {
		return nil, errors.Wrap(err, "error creating peer connection")
	}
	return pc, nil
}

// AttachInputChannel creates the negotiated input channel on pc and feeds
// every message to handler. Handler errors are logged; a bad message never
// closes the channel.
func AttachInputChannel(
	ctx context.Context,
	pc *webrtc.PeerConnection,
	handler MessageHandler,
	logger golog.Logger,
) (*webrtc.DataChannel, error) {
	ordered := true
	negotiated := true
	id := InputChannelID
	dc, err := pc.CreateDataChannel(InputChannelLabel, &webrtc.DataChannelInit{
		Ordered:    &ordered,
		Negotiated: &negotiated,
		ID:         &id,
	})
	if err != nil {
		return nil, errors.Wrap(err, "error creating input channel")
	}
	dc.OnMessage(func(msg webrtc.DataChannelMessage) {
		if err := handler.HandleMessage(ctx, msg.Data); err != nil {
			logger.Debugw("error handling input message", "error", err)
		}
	})
	return dc, nil
}

// Answer applies offer to pc and returns the local answer once ICE
// gathering completes, since only one signaling message is exchanged.
func Answer(ctx context.Context, pc *webrtc.PeerConnection, offer webrtc.SessionDescription) (*webrtc.SessionDescription, error) {
	if err := pc.SetRemoteDescription(offer); err != nil {
		return nil, errors.Wrap(err, "error setting remote description")
	}
	answer, err := pc.CreateAnswer(nil)
	if err != nil {
		return nil, errors.Wrap(err, "error creating answer")
	}
	gatherComplete := webrtc.GatheringCompletePromise(pc)
	if err := pc.SetLocalDescription(answer); err != nil {
		return nil, errors.Wrap(err, "error setting local description")
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-gatherComplete:
	}
	return pc.LocalDescription(), nil
}
