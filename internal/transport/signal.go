// Package transport carries contact frames from clients to gesture surfaces
// and classified gesture events back, over WebSocket and WebRTC data channels.
package transport

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/pion/webrtc/v3"
	"github.com/sirupsen/logrus"
)

// SignalMessage is a websocket signaling payload.
type SignalMessage struct {
	T         string                   `json:"t"`
	SDP       string                   `json:"sdp,omitempty"`
	Candidate *webrtc.ICECandidateInit `json:"candidate,omitempty"`
}

// SignalServer negotiates WebRTC peers over websocket. Each connection gets
// its own peer; touch traffic then flows on the peer's data channel.
type SignalServer struct {
	peers    *Peers
	upgrader websocket.Upgrader
	log      logrus.FieldLogger
}

// NewSignalServer creates the signaling endpoint for the given peer manager.
func NewSignalServer(peers *Peers, allowAnyOrigin bool, log logrus.FieldLogger) *SignalServer {
	s := &SignalServer{
		peers: peers,
		log:   log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
	}
	if allowAnyOrigin {
		s.upgrader.CheckOrigin = func(*http.Request) bool { return true }
	}
	return s
}

// ServeHTTP upgrades the request and runs the signaling loop for one peer.
func (s *SignalServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	peer, err := s.peers.NewPeer()
	if err != nil {
		s.log.WithError(err).Error("peer setup failed")
		return
	}
	// A connected peer owns its lifecycle through the state handler; anything
	// less dies with its signaling socket.
	defer func() {
		if peer.ConnectionState() != webrtc.PeerConnectionStateConnected {
			s.peers.drop(peer)
		}
	}()

	var writeMu sync.Mutex
	send := func(msg SignalMessage) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		return conn.WriteJSON(msg)
	}

	peer.OnICECandidate(func(c *webrtc.ICECandidate) {
		if c == nil {
			return
		}
		candidate := c.ToJSON()
		_ = send(SignalMessage{T: "ice", Candidate: &candidate})
	})

	for {
		var msg SignalMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		if err := s.handleMessage(peer, send, msg); err != nil {
			s.log.WithError(err).Debug("signaling ended")
			return
		}
	}
}

// handleMessage dispatches signaling messages.
func (s *SignalServer) handleMessage(peer *webrtc.PeerConnection, send func(SignalMessage) error, msg SignalMessage) error {
	switch msg.T {
	case "offer":
		return s.handleOffer(peer, send, msg.SDP)
	case "ice":
		return s.handleICE(peer, msg.Candidate)
	default:
		return nil
	}
}

// handleOffer processes an SDP offer and replies with an answer.
func (s *SignalServer) handleOffer(peer *webrtc.PeerConnection, send func(SignalMessage) error, sdp string) error {
	if sdp == "" {
		return fmt.Errorf("empty offer")
	}
	if err := peer.SetRemoteDescription(webrtc.SessionDescription{
		Type: webrtc.SDPTypeOffer,
		SDP:  sdp,
	}); err != nil {
		return err
	}
	answer, err := peer.CreateAnswer(nil)
	if err != nil {
		return err
	}
	gatherComplete := webrtc.GatheringCompletePromise(peer)
	if err := peer.SetLocalDescription(answer); err != nil {
		return err
	}
	<-gatherComplete
	local := peer.LocalDescription()
	if local == nil {
		return fmt.Errorf("missing local description")
	}
	return send(SignalMessage{T: "answer", SDP: local.SDP})
}

// handleICE adds a remote ICE candidate.
func (s *SignalServer) handleICE(peer *webrtc.PeerConnection, candidate *webrtc.ICECandidateInit) error {
	if candidate == nil {
		return nil
	}
	return peer.AddICECandidate(*candidate)
}
