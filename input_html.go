package gopointer

// capturePageHTML is served at / by the InputServer. It reports raw pointer
// events on the capture surface and the surface's bounds whenever they
// change. The ?transport=webrtc query switches from the websocket to a
// negotiated WebRTC data channel.
var capturePageHTML = `
<!DOCTYPE html>
<html>
<head>
  <style>
    body { margin: 0; }
    #surface { position: absolute; left: 40px; top: 40px; right: 40px; bottom: 40px; background: #222; touch-action: none; }
  </style>
  <script type="text/javascript">
  // DOM button numbers to pointer button ids.
  const buttonIDs = [0, 1, 2, 7, 8];
  // DOM button numbers to their bit in event.buttons.
  const buttonBits = [1, 4, 2, 8, 16];

  const connect = (onOpen) => {
    const params = new URLSearchParams(window.location.search);
    if (params.get("transport") !== "webrtc") {
      const scheme = window.location.protocol === "https:" ? "wss:" : "ws:";
      const ws = new WebSocket(scheme + "//" + window.location.host + "/input");
      ws.onopen = () => onOpen(msg => ws.send(JSON.stringify(msg)));
      ws.onclose = () => console.log("input closed");
      return;
    }
    const peerConnection = new RTCPeerConnection({iceServers: []});
    const inputChannel = peerConnection.createDataChannel("input", {negotiated: true, id: 0, ordered: true});
    inputChannel.onopen = () => onOpen(msg => inputChannel.send(JSON.stringify(msg)));
    peerConnection.onicecandidate = event => {
      if (event.candidate !== null) {
        return;
      }
      fetch("/offer", {
        method: 'POST',
        body: btoa(JSON.stringify(peerConnection.localDescription))
      })
      .then(response => response.text())
      .then(text => peerConnection.setRemoteDescription(new RTCSessionDescription(JSON.parse(atob(text)))))
      .catch(console.log);
    }
    peerConnection.createOffer()
      .then(desc => peerConnection.setLocalDescription(desc))
      .catch(console.log);
  }

  window.onload = () => {
    const surface = document.getElementById("surface");
    connect(send => {
      const reportSurface = () => {
        const bounds = surface.getBoundingClientRect();
        send({type: "surface", left: Math.round(bounds.left), top: Math.round(bounds.top),
          width: Math.round(bounds.width), height: Math.round(bounds.height)});
      };
      reportSurface();
      new ResizeObserver(reportSurface).observe(surface);
      window.addEventListener("scroll", reportSurface);

      // Chorded presses and releases only fire pointermove, so every
      // pointer event diffs event.buttons against what was last sent.
      let pressedButtons = 0;
      const syncButtons = event => {
        for (let i = 0; i < buttonIDs.length; i++) {
          const bit = buttonBits[i];
          const down = (event.buttons & bit) !== 0;
          if (down !== ((pressedButtons & bit) !== 0)) {
            send({type: "button", button: buttonIDs[i], down: down, x: event.clientX, y: event.clientY});
          }
        }
        pressedButtons = event.buttons & 31;
      };
      surface.addEventListener("pointerdown", event => {
        event.preventDefault();
        surface.setPointerCapture(event.pointerId);
        syncButtons(event);
      });
      surface.addEventListener("pointerup", syncButtons);
      surface.addEventListener("pointercancel", syncButtons);
      surface.addEventListener("pointermove", event => {
        send({type: "move", x: event.clientX, y: event.clientY});
        syncButtons(event);
      });
      surface.addEventListener("wheel", event => {
        event.preventDefault();
        send({type: "wheel", x: event.clientX, y: event.clientY,
          dx: event.deltaX, dy: event.deltaY, mode: event.deltaMode});
      }, {passive: false});
      surface.addEventListener("contextmenu", event => event.preventDefault());
    });
  }
  </script>
</head>
<body>
<div id="surface"></div>
</body>
</html>
`
