// Package surface tracks the live touch surfaces owned by transport
// connections.
package surface

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/frudas24/touchwave/gesture"
)

// Info is a read-only view of one live surface, served by the status API.
type Info struct {
	ID       string    `json:"id"`
	Profile  string    `json:"profile"`
	Width    float64   `json:"width,omitempty"`
	Height   float64   `json:"height,omitempty"`
	Frames   int64     `json:"frames"`
	Gestures int64     `json:"gestures"`
	LastSeen time.Time `json:"last_seen"`
}

// Surface owns the recognizer for one connected touch source and the
// bookkeeping around it.
type Surface struct {
	id         string
	profile    string
	recognizer *gesture.Recognizer

	mu       sync.RWMutex
	width    float64
	height   float64
	frames   int64
	gestures int64
	lastSeen time.Time
}

// New builds a surface with its own recognizer configured by cfg. The
// surface counts every classified gesture through its own subscription.
func New(id, profileName string, cfg gesture.Config, log logrus.FieldLogger) *Surface {
	s := &Surface{
		id:         id,
		profile:    profileName,
		recognizer: gesture.New(cfg),
		lastSeen:   time.Now(),
	}
	if log != nil {
		s.recognizer.SetLogger(log)
	}
	for _, kind := range gesture.Kinds() {
		s.recognizer.Subscribe(kind, func(gesture.Event) { s.noteGesture() })
	}
	return s
}

// ID returns the surface identifier.
func (s *Surface) ID() string { return s.id }

// Profile returns the name of the threshold profile the surface runs.
func (s *Surface) Profile() string { return s.profile }

// Recognizer returns the surface's gesture recognizer.
func (s *Surface) Recognizer() *gesture.Recognizer { return s.recognizer }

// SetDimensions records the client-declared surface size used to map
// normalized coordinates.
func (s *Surface) SetDimensions(width, height float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

// Dimensions returns the declared surface size; zeros mean undeclared.
func (s *Surface) Dimensions() (float64, float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height
}

// NoteFrame records one inbound contact frame.
func (s *Surface) NoteFrame() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames++
	s.lastSeen = time.Now()
}

// noteGesture records one classified gesture.
func (s *Surface) noteGesture() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gestures++
}

// Teardown releases the recognizer so no further events can fire.
func (s *Surface) Teardown() {
	s.recognizer.Teardown()
}

// Snapshot returns a copy of the surface state.
func (s *Surface) Snapshot() Info {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Info{
		ID:       s.id,
		Profile:  s.profile,
		Width:    s.width,
		Height:   s.height,
		Frames:   s.frames,
		Gestures: s.gestures,
		LastSeen: s.lastSeen,
	}
}
