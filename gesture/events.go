// Package gesture classifies raw touch contacts into discrete gesture events.
package gesture

// Kind identifies a gesture variant.
type Kind string

const (
	// KindTap is a short touch that stayed near its start point.
	KindTap Kind = "tap"
	// KindDoubleTap is two qualifying taps inside the double-tap window.
	KindDoubleTap Kind = "double_tap"
	// KindLongPress is a touch held in place past the long-press duration.
	KindLongPress Kind = "long_press"
	// KindSwipe is a fast directional movement.
	KindSwipe Kind = "swipe"
	// KindPinch is a two-contact scale change.
	KindPinch Kind = "pinch"
)

// Kinds lists every gesture kind, for consumers that subscribe to all of
// them.
func Kinds() []Kind {
	return []Kind{KindTap, KindDoubleTap, KindLongPress, KindSwipe, KindPinch}
}

// Direction is the dominant axis of a swipe.
type Direction string

const (
	// DirLeft is a swipe toward negative X.
	DirLeft Direction = "left"
	// DirRight is a swipe toward positive X.
	DirRight Direction = "right"
	// DirUp is a swipe toward negative Y.
	DirUp Direction = "up"
	// DirDown is a swipe toward positive Y.
	DirDown Direction = "down"
)

// Event is a classified gesture. Exactly one concrete variant is emitted
// per classification, so consumers can switch on the concrete type or on
// Kind without runtime guessing.
type Event interface {
	// Kind reports which gesture variant the event is.
	Kind() Kind
}

// Tap is a completed short touch, finalized after the double-tap window
// closed without a second qualifying tap.
type Tap struct {
	Center Point
}

// Kind reports the gesture variant.
func (Tap) Kind() Kind { return KindTap }

// DoubleTap is a second qualifying tap landing inside the double-tap window.
type DoubleTap struct {
	Center Point
}

// Kind reports the gesture variant.
func (DoubleTap) Kind() Kind { return KindDoubleTap }

// LongPress is a contact held within the move tolerance for the full
// long-press duration.
type LongPress struct {
	Center Point
}

// Kind reports the gesture variant.
func (LongPress) Kind() Kind { return KindLongPress }

// Swipe is a contact that travelled far and fast enough before lifting.
type Swipe struct {
	Direction Direction
	Distance  float64
	Velocity  float64 // surface units per millisecond
}

// Kind reports the gesture variant.
func (Swipe) Kind() Kind { return KindSwipe }

// Pinch reports the current two-contact scale relative to the initial grip.
// Unlike the terminal gestures it streams: one session may emit many.
type Pinch struct {
	Scale  float64
	Center Point
}

// Kind reports the gesture variant.
func (Pinch) Kind() Kind { return KindPinch }
