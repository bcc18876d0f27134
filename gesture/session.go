// Package gesture classifies raw touch contacts into discrete gesture events.
package gesture

// session tracks the contacts of one physical interaction, from the first
// contact landing to the last one lifting. At most one session is live per
// recognizer.
type session struct {
	start   ContactPoint
	current ContactPoint

	longPress Timer
	spent     bool

	pinch        bool
	pinchStopped bool
	pinchInitial float64
	pinchScale   float64
	lastReported float64
}

// newSession starts tracking an interaction at its first contact point.
func newSession(p ContactPoint) *session {
	return &session{
		start:        p,
		current:      p,
		pinchScale:   1.0,
		lastReported: 1.0,
	}
}

// stopLongPress cancels the pending hold timer if one is armed.
func (s *session) stopLongPress() {
	if s.longPress != nil {
		s.longPress.Stop()
		s.longPress = nil
	}
}

// moved reports whether the contact strayed farther than tol from its start.
func (s *session) moved(tol float64) bool {
	return Distance(s.start, s.current) > tol
}

// setPinchBaseline records the two-contact grip distance the pinch scale is
// measured against. It reports false for a degenerate zero-distance grip.
func (s *session) setPinchBaseline(a, b ContactPoint) bool {
	d := Distance(a, b)
	if d <= 0 {
		return false
	}
	s.pinchInitial = d
	s.pinchScale = 1.0
	s.lastReported = 1.0
	return true
}

// updatePinchScale recomputes the scale from the current grip distance. It
// reports false when the session has no usable baseline or pinch reporting
// already stopped.
func (s *session) updatePinchScale(a, b ContactPoint) (float64, bool) {
	if !s.pinch || s.pinchStopped || s.pinchInitial <= 0 {
		return 0, false
	}
	s.pinchScale = Distance(a, b) / s.pinchInitial
	return s.pinchScale, true
}
