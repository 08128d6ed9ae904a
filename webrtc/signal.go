package webrtc

import (
	"encoding/base64"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/pion/webrtc/v3"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// EncodeSDP encodes the given SDP as base64 JSON, the form the capture page
// posts and expects back.
func EncodeSDP(sdp *webrtc.SessionDescription) (string, error) {
	b, err := json.Marshal(sdp)
	if err != nil {
		return "", errors.Wrap(err, "error encoding sdp")
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// DecodeSDP decodes base64 JSON into the given SDP. Surrounding whitespace
// is ignored.
func DecodeSDP(in string, sdp *webrtc.SessionDescription) error {
	b, err := base64.StdEncoding.DecodeString(strings.TrimSpace(in))
	if err != nil {
		return errors.Wrap(err, "malformed sdp encoding")
	}
	if err := json.Unmarshal(b, sdp); err != nil {
		return errors.Wrap(err, "malformed sdp")
	}
	return nil
}
