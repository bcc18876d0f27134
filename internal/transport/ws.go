// Package transport carries contact frames from clients to gesture surfaces
// and classified gesture events back, over WebSocket and WebRTC data channels.
package transport

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// Server terminates touch websockets, one gesture surface per connection.
type Server struct {
	host     *Host
	upgrader websocket.Upgrader
}

// NewServer creates the websocket touch endpoint. With allowAnyOrigin unset
// the upgrader keeps gorilla's same-origin check.
func NewServer(host *Host, allowAnyOrigin bool) *Server {
	s := &Server{
		host: host,
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

// ServeHTTP upgrades the request and pumps touch frames until the client
// leaves. The surface bound to the connection is released on exit.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	var writeMu sync.Mutex
	sess := newSession(s.host, func(v any) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		return conn.WriteJSON(v)
	})
	defer sess.close()

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		if err := sess.handle(&msg); err != nil {
			s.host.Log.WithError(err).Debug("touch connection closing")
			return
		}
	}
}
