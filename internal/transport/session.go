// Package transport carries contact frames from clients to gesture surfaces
// and classified gesture events back, over WebSocket and WebRTC data channels.
package transport

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/frudas24/touchwave/gesture"
	"github.com/frudas24/touchwave/internal/profile"
	"github.com/frudas24/touchwave/internal/surface"
	"github.com/frudas24/touchwave/internal/trace"
)

// Host bundles what every touch transport needs to serve a client.
type Host struct {
	Surfaces       *surface.Registry
	Profiles       profile.Set
	DefaultProfile string
	Traces         *trace.Store // nil disables recording
	Log            logrus.FieldLogger
}

// session binds one client connection to one gesture surface. The send
// callback is transport specific and must be safe for concurrent use.
type session struct {
	host *Host
	send func(v any) error

	mu          sync.Mutex
	surf        *surface.Surface
	profileName string
	normalized  bool
	width       float64
	height      float64
	lastTs      int64
}

// newSession prepares a session that writes replies through send.
func newSession(host *Host, send func(v any) error) *session {
	return &session{host: host, send: send}
}

// handle processes one inbound message. Unknown types are ignored so newer
// clients can talk to older servers.
func (s *session) handle(msg *Message) error {
	switch msg.T {
	case MsgHello:
		return s.handleHello(msg)
	case MsgBegin:
		s.dispatch(msg, trace.OpBegin)
	case MsgMove:
		s.dispatch(msg, trace.OpMove)
	case MsgEnd:
		s.dispatch(msg, trace.OpEnd)
	case MsgCancel:
		s.dispatch(msg, trace.OpCancel)
	default:
		s.host.Log.WithField("type", msg.T).Debug("ignoring unknown message")
	}
	return nil
}

// handleHello records the declared surface and acknowledges with its identity.
func (s *session) handleHello(msg *Message) error {
	s.mu.Lock()
	if msg.Profile != "" && s.surf == nil {
		s.profileName = msg.Profile
	}
	if msg.Width > 0 && msg.Height > 0 {
		s.width = msg.Width
		s.height = msg.Height
		s.normalized = msg.Normalized
	}
	surf := s.ensureSurfaceLocked()
	if s.width > 0 && s.height > 0 {
		surf.SetDimensions(s.width, s.height)
	}
	s.mu.Unlock()

	return s.send(Ready{T: MsgReady, Surface: surf.ID(), Profile: surf.Profile()})
}

// dispatch maps the frame onto the session surface and feeds the recognizer.
func (s *session) dispatch(msg *Message, op string) {
	s.mu.Lock()
	surf := s.ensureSurfaceLocked()
	pts := mapContacts(msg.Points, s.normalized, s.width, s.height)
	at := s.lastTs
	if len(pts) > 0 {
		at = pts[len(pts)-1].Timestamp
		s.lastTs = at
	}
	s.mu.Unlock()

	surf.NoteFrame()
	s.record(surf.ID(), trace.Frame{Op: op, At: at, Points: pts})

	r := surf.Recognizer()
	switch op {
	case trace.OpBegin:
		r.OnContactBegin(pts)
	case trace.OpMove:
		r.OnContactMove(pts)
	case trace.OpEnd:
		r.OnContactEnd()
	case trace.OpCancel:
		r.OnContactCancel()
	}
}

// ensureSurfaceLocked returns the session surface, creating one on first use
// and recreating it if the registry evicted it while the client was idle.
func (s *session) ensureSurfaceLocked() *surface.Surface {
	if s.surf != nil {
		if _, ok := s.host.Surfaces.Get(s.surf.ID()); ok {
			return s.surf
		}
		s.surf = nil
	}

	name := s.profileName
	if name == "" {
		name = s.host.DefaultProfile
	}
	cfg, ok := s.host.Profiles.Resolve(name)
	if !ok {
		s.host.Log.WithField("profile", name).Warn("unknown profile, using default thresholds")
	}

	surf := s.host.Surfaces.Create(name, cfg)
	if s.width > 0 && s.height > 0 {
		surf.SetDimensions(s.width, s.height)
	}
	for _, kind := range gesture.Kinds() {
		surf.Recognizer().Subscribe(kind, s.forward)
	}
	s.surf = surf
	return surf
}

// forward pushes a classified gesture back to the client.
func (s *session) forward(ev gesture.Event) {
	if err := s.send(EncodeEvent(ev)); err != nil {
		s.host.Log.WithError(err).Debug("gesture push failed")
	}
}

// record appends the frame to the trace store when recording is enabled.
func (s *session) record(id string, f trace.Frame) {
	if s.host.Traces == nil {
		return
	}
	if err := s.host.Traces.Append(id, f); err != nil {
		s.host.Log.WithError(err).Warn("trace append failed")
	}
}

// close releases the surface tied to this session.
func (s *session) close() {
	s.mu.Lock()
	surf := s.surf
	s.surf = nil
	s.mu.Unlock()
	if surf != nil {
		s.host.Surfaces.Remove(surf.ID())
	}
}
