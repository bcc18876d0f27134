// Package transport carries contact frames from clients to gesture surfaces
// and classified gesture events back, over WebSocket and WebRTC data channels.
package transport

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/pion/webrtc/v3"
)

// Peers manages WebRTC peer connections whose touch data channel feeds a
// gesture surface, mirroring what the websocket endpoint does for sockets.
type Peers struct {
	host *Host

	mu    sync.Mutex
	peers map[*webrtc.PeerConnection]struct{}
}

// NewPeers prepares the WebRTC side of the touch transport.
func NewPeers(host *Host) *Peers {
	return &Peers{
		host:  host,
		peers: make(map[*webrtc.PeerConnection]struct{}),
	}
}

// NewPeer creates a peer connection that accepts the touch data channel.
func (p *Peers) NewPeer() (*webrtc.PeerConnection, error) {
	peer, err := webrtc.NewPeerConnection(webrtc.Configuration{})
	if err != nil {
		return nil, fmt.Errorf("new peer connection: %w", err)
	}

	peer.OnDataChannel(func(dc *webrtc.DataChannel) {
		if dc.Label() != DataChannelLabel {
			p.host.Log.WithField("label", dc.Label()).Debug("ignoring data channel")
			return
		}
		p.attachChannel(dc)
	})

	peer.OnConnectionStateChange(func(state webrtc.PeerConnectionState) {
		switch state {
		case webrtc.PeerConnectionStateFailed, webrtc.PeerConnectionStateClosed:
			p.drop(peer)
		}
	})

	p.mu.Lock()
	p.peers[peer] = struct{}{}
	p.mu.Unlock()
	return peer, nil
}

// attachChannel binds a touch data channel to its own gesture session.
func (p *Peers) attachChannel(dc *webrtc.DataChannel) {
	sess := newSession(p.host, func(v any) error {
		payload, err := json.Marshal(v)
		if err != nil {
			return err
		}
		return dc.SendText(string(payload))
	})

	dc.OnMessage(func(m webrtc.DataChannelMessage) {
		var msg Message
		if err := json.Unmarshal(m.Data, &msg); err != nil {
			p.host.Log.WithError(err).Debug("dropping malformed channel frame")
			return
		}
		if err := sess.handle(&msg); err != nil {
			p.host.Log.WithError(err).Debug("touch channel error")
		}
	})

	dc.OnClose(func() {
		sess.close()
	})
}

// drop closes and forgets a peer.
func (p *Peers) drop(peer *webrtc.PeerConnection) {
	p.mu.Lock()
	_, tracked := p.peers[peer]
	delete(p.peers, peer)
	p.mu.Unlock()
	if tracked {
		_ = peer.Close()
	}
}

// Close shuts down every active peer.
func (p *Peers) Close() {
	p.mu.Lock()
	peers := make([]*webrtc.PeerConnection, 0, len(p.peers))
	for peer := range p.peers {
		peers = append(peers, peer)
	}
	p.peers = make(map[*webrtc.PeerConnection]struct{})
	p.mu.Unlock()

	for _, peer := range peers {
		_ = peer.Close()
	}
}
