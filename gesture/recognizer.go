// Package gesture classifies raw touch contacts into discrete gesture events.
package gesture

import (
	"math"
	"sync"

	"github.com/sirupsen/logrus"
)

// Recognizer turns raw contact notifications for a single touch surface
// into classified gesture events. Feed it OnContactBegin, OnContactMove,
// OnContactEnd and OnContactCancel in arrival order; it emits at most one
// of tap, double-tap, long-press or swipe per interaction, plus streaming
// pinch reports for two-contact interactions. Two Recognizer instances
// share no state.
//
// Handlers run synchronously on whichever goroutine triggered the
// classification: the contact-event caller, or a timer goroutine for the
// long-press and deferred-tap emissions.
type Recognizer struct {
	mu    sync.Mutex
	cfg   Config
	clock Clock
	log   logrus.FieldLogger

	sess *session

	// Deferred taps bridge interactions: each armed tap keeps its own
	// timer, keyed by generation, so an unrelated later tap cannot
	// swallow an earlier one that already earned its emission.
	tapGen     int
	lastTap    *ContactPoint
	lastTapGen int
	pending    map[int]Timer

	reg registry
}

// New returns a Recognizer using cfg, the system clock and the standard
// logger. Zero cfg fields fall back to the documented defaults.
func New(cfg Config) *Recognizer {
	return &Recognizer{
		cfg:     cfg.withDefaults(),
		clock:   SystemClock(),
		log:     logrus.StandardLogger(),
		pending: make(map[int]Timer),
	}
}

// SetClock overrides the timer source. Call it before feeding contacts;
// nil is ignored.
func (r *Recognizer) SetClock(c Clock) {
	if c == nil {
		return
	}
	r.mu.Lock()
	r.clock = c
	r.mu.Unlock()
}

// SetLogger overrides the logger used for dropped frames and handler
// panics; nil is ignored.
func (r *Recognizer) SetLogger(log logrus.FieldLogger) {
	if log == nil {
		return
	}
	r.mu.Lock()
	r.log = log
	r.mu.Unlock()
}

// Config returns the thresholds the recognizer classifies with.
func (r *Recognizer) Config() Config {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cfg
}

// Subscribe registers fn for every future event of kind. Handlers for the
// same kind run in registration order; a nil fn is ignored.
func (r *Recognizer) Subscribe(kind Kind, fn func(Event)) *Subscription {
	if fn == nil {
		return nil
	}
	return r.reg.add(kind, fn)
}

// Unsubscribe removes the handler identified by sub; nil and already
// removed handles are ignored.
func (r *Recognizer) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}
	r.reg.remove(sub)
}

// UnsubscribeAll removes every handler registered for kind.
func (r *Recognizer) UnsubscribeAll(kind Kind) {
	r.reg.removeAll(kind)
}

// Teardown cancels every pending timer, discards the session and removes
// all subscriptions, so a detached surface can never receive another event.
func (r *Recognizer) Teardown() {
	r.mu.Lock()
	if r.sess != nil {
		r.sess.stopLongPress()
		r.sess = nil
	}
	for gen, t := range r.pending {
		t.Stop()
		delete(r.pending, gen)
	}
	r.lastTap = nil
	r.mu.Unlock()
	r.reg.clear()
}

// OnContactBegin records the first contact of an interaction, or the
// arrival of a second contact on the active one.
func (r *Recognizer) OnContactBegin(points []ContactPoint) {
	r.mu.Lock()
	r.beginLocked(points)
	r.mu.Unlock()
}

// OnContactMove updates the tracked contact and streams pinch scale
// changes for two-contact interactions.
func (r *Recognizer) OnContactMove(points []ContactPoint) {
	r.mu.Lock()
	evs := r.moveLocked(points)
	log := r.log
	r.mu.Unlock()
	for _, ev := range evs {
		r.reg.dispatch(ev, log)
	}
}

// OnContactEnd finalizes the interaction and emits its terminal gesture,
// if the decision rules produce one.
func (r *Recognizer) OnContactEnd() {
	r.mu.Lock()
	evs := r.endLocked()
	log := r.log
	r.mu.Unlock()
	for _, ev := range evs {
		r.reg.dispatch(ev, log)
	}
}

// OnContactCancel discards the interaction without emitting anything.
func (r *Recognizer) OnContactCancel() {
	r.mu.Lock()
	if r.sess == nil {
		r.log.Debug("gesture: contact cancel without a session dropped")
	} else {
		r.sess.stopLongPress()
		r.sess = nil
	}
	r.mu.Unlock()
}

// beginLocked starts a session, or upgrades the active one to pinch
// tracking when a second contact lands.
func (r *Recognizer) beginLocked(points []ContactPoint) {
	if len(points) == 0 {
		r.log.Debug("gesture: contact begin without points dropped")
		return
	}
	if r.sess == nil {
		s := newSession(points[0])
		r.sess = s
		if len(points) >= 2 {
			r.enterPinchLocked(points[0], points[1])
			return
		}
		s.longPress = r.clock.AfterFunc(r.cfg.LongPressDuration, func() {
			r.fireLongPress(s)
		})
		return
	}
	if len(points) >= 2 {
		r.enterPinchLocked(points[0], points[1])
		return
	}
	r.log.Debug("gesture: repeated single-contact begin dropped")
}

// enterPinchLocked switches the session into two-contact tracking. A pinch
// session never downgrades: tap, swipe and long-press are off the table
// for it even if a contact lifts later.
func (r *Recognizer) enterPinchLocked(a, b ContactPoint) {
	s := r.sess
	s.stopLongPress()
	s.pinch = true
	if s.pinchStopped || s.pinchInitial > 0 {
		return
	}
	if !s.setPinchBaseline(a, b) {
		r.log.Debug("gesture: degenerate pinch baseline dropped")
	}
}

// moveLocked applies a contact-move frame and returns any pinch events due.
func (r *Recognizer) moveLocked(points []ContactPoint) []Event {
	if r.sess == nil {
		r.log.Debug("gesture: contact move without a session dropped")
		return nil
	}
	if len(points) == 0 {
		r.log.Debug("gesture: contact move without points dropped")
		return nil
	}
	s := r.sess
	s.current = points[0]

	if !s.pinch && s.longPress != nil && s.moved(r.cfg.LongPressMoveTolerance) {
		s.stopLongPress()
	}
	if len(points) >= 2 {
		return r.pinchMoveLocked(points[0], points[1])
	}
	if s.pinch {
		// Arity dropped back to one contact: pinch reporting is over
		// for good, and the session stays ineligible for the
		// single-contact gestures.
		s.pinchStopped = true
	}
	return nil
}

// pinchMoveLocked recomputes the pinch scale and reports it once it drifts
// past the reporting delta.
func (r *Recognizer) pinchMoveLocked(a, b ContactPoint) []Event {
	s := r.sess
	if !s.pinch {
		r.log.Debug("gesture: two-point move without a pinch baseline dropped")
		return nil
	}
	scale, ok := s.updatePinchScale(a, b)
	if !ok {
		return nil
	}
	if math.Abs(scale-s.lastReported) < r.cfg.PinchMinScaleDelta {
		return nil
	}
	s.lastReported = scale
	return []Event{Pinch{Scale: scale, Center: Midpoint(a, b)}}
}

// endLocked finalizes the session and classifies its terminal gesture.
func (r *Recognizer) endLocked() []Event {
	s := r.sess
	if s == nil {
		r.log.Debug("gesture: contact end without a session dropped")
		return nil
	}
	r.sess = nil
	s.stopLongPress()
	if s.spent || s.pinch {
		return nil
	}
	return r.classifyEndLocked(s)
}

// classifyEndLocked applies the terminal decision rules to a finished
// single-contact session: swipe first, then the tap class, and nothing for
// the ambiguous range in between.
func (r *Recognizer) classifyEndLocked(s *session) []Event {
	dx := s.current.X - s.start.X
	dy := s.current.Y - s.start.Y
	distance := math.Hypot(dx, dy)
	duration := s.current.Timestamp - s.start.Timestamp
	velocity := distance / float64(max(duration, 1))

	if distance >= r.cfg.SwipeMinDistance && velocity >= r.cfg.SwipeMinVelocity {
		dir := classifyDirection(dx, dy)
		if !axisAllows(r.cfg.SwipeAxis, dir) {
			return nil
		}
		return []Event{Swipe{Direction: dir, Distance: distance, Velocity: velocity}}
	}

	if distance < r.cfg.DoubleTapMoveTolerance {
		return r.tapEndLocked(s)
	}

	// Between the tap tolerance and the swipe minimum: ambiguous, and
	// deliberately not a gesture.
	return nil
}

// tapEndLocked resolves a tap-class end into an immediate DoubleTap or a
// deferred Tap.
func (r *Recognizer) tapEndLocked(s *session) []Event {
	windowMs := r.cfg.DoubleTapWindow.Milliseconds()
	if r.lastTap != nil &&
		s.current.Timestamp-r.lastTap.Timestamp <= windowMs &&
		Distance(*r.lastTap, s.start) <= r.cfg.DoubleTapMoveTolerance {
		if t, ok := r.pending[r.lastTapGen]; ok {
			t.Stop()
			delete(r.pending, r.lastTapGen)
		}
		r.lastTap = nil
		return []Event{DoubleTap{Center: s.start.Point()}}
	}

	tap := s.start
	r.tapGen++
	gen := r.tapGen
	r.lastTap = &tap
	r.lastTapGen = gen
	r.pending[gen] = r.clock.AfterFunc(r.cfg.DoubleTapWindow, func() {
		r.finalizeTap(gen, tap)
	})
	return nil
}

// finalizeTap emits the deferred Tap unless a qualifying double-tap or a
// teardown claimed it first. The pending entry is the emission ticket: a
// timer that lost it stays silent even if it already fired.
func (r *Recognizer) finalizeTap(gen int, p ContactPoint) {
	r.mu.Lock()
	if _, ok := r.pending[gen]; !ok {
		r.mu.Unlock()
		return
	}
	delete(r.pending, gen)
	if r.lastTapGen == gen {
		r.lastTap = nil
	}
	log := r.log
	r.mu.Unlock()
	r.reg.dispatch(Tap{Center: p.Point()}, log)
}

// fireLongPress emits LongPress when the hold timer outlives every
// cancellation path, and marks the session spent so its end classifies
// nothing further.
func (r *Recognizer) fireLongPress(s *session) {
	r.mu.Lock()
	if r.sess != s || s.longPress == nil || s.spent || s.pinch {
		r.mu.Unlock()
		return
	}
	s.longPress = nil
	s.spent = true
	center := s.start.Point()
	log := r.log
	r.mu.Unlock()
	r.reg.dispatch(LongPress{Center: center}, log)
}

// classifyDirection picks the dominant axis of the end vector, breaking
// ties toward horizontal.
func classifyDirection(dx, dy float64) Direction {
	if math.Abs(dx) >= math.Abs(dy) {
		if dx < 0 {
			return DirLeft
		}
		return DirRight
	}
	if dy < 0 {
		return DirUp
	}
	return DirDown
}

// axisAllows reports whether axis permits swipes in dir.
func axisAllows(axis Axis, dir Direction) bool {
	switch axis {
	case AxisHorizontal:
		return dir == DirLeft || dir == DirRight
	case AxisVertical:
		return dir == DirUp || dir == DirDown
	default:
		return true
	}
}
