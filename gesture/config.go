// Package gesture classifies raw touch contacts into discrete gesture events.
package gesture

import "time"

// Axis restricts which swipe directions a recognizer reports.
type Axis string

const (
	// AxisAny permits all four swipe directions.
	AxisAny Axis = "any"
	// AxisHorizontal permits left and right swipes only.
	AxisHorizontal Axis = "horizontal"
	// AxisVertical permits up and down swipes only.
	AxisVertical Axis = "vertical"
)

const (
	defaultSwipeMinDistance       = 50.0
	defaultSwipeMinVelocity       = 0.3
	defaultLongPressDuration      = 500 * time.Millisecond
	defaultLongPressMoveTolerance = 10.0
	defaultDoubleTapWindow        = 300 * time.Millisecond
	defaultDoubleTapMoveTolerance = 20.0
	defaultPinchMinScaleDelta     = 0.1
)

// Config holds the classification thresholds. Every field is optional:
// zero values fall back to the defaults, so a partially filled Config is
// valid.
type Config struct {
	// SwipeMinDistance is the minimum travel, in surface units, for a
	// swipe.
	SwipeMinDistance float64
	// SwipeMinVelocity is the minimum speed, in surface units per
	// millisecond, for a swipe.
	SwipeMinVelocity float64
	// SwipeAxis limits which swipe directions are reported.
	SwipeAxis Axis
	// LongPressDuration is how long a contact must hold still before a
	// long-press fires.
	LongPressDuration time.Duration
	// LongPressMoveTolerance is how far the contact may stray from its
	// start before the long-press is cancelled.
	LongPressMoveTolerance float64
	// DoubleTapWindow is how long after a tap a second tap still counts
	// as a double-tap; it also delays plain tap finalization.
	DoubleTapWindow time.Duration
	// DoubleTapMoveTolerance bounds both the travel of a tap and the
	// distance between two taps of a double-tap.
	DoubleTapMoveTolerance float64
	// PinchMinScaleDelta is the minimum scale change between consecutive
	// pinch reports.
	PinchMinScaleDelta float64
}

// DefaultConfig returns the stock thresholds.
func DefaultConfig() Config {
	return Config{
		SwipeMinDistance:       defaultSwipeMinDistance,
		SwipeMinVelocity:       defaultSwipeMinVelocity,
		SwipeAxis:              AxisAny,
		LongPressDuration:      defaultLongPressDuration,
		LongPressMoveTolerance: defaultLongPressMoveTolerance,
		DoubleTapWindow:        defaultDoubleTapWindow,
		DoubleTapMoveTolerance: defaultDoubleTapMoveTolerance,
		PinchMinScaleDelta:     defaultPinchMinScaleDelta,
	}
}

// withDefaults fills unset or nonsensical fields with the defaults.
func (c Config) withDefaults() Config {
	if c.SwipeMinDistance <= 0 {
		c.SwipeMinDistance = defaultSwipeMinDistance
	}
	if c.SwipeMinVelocity <= 0 {
		c.SwipeMinVelocity = defaultSwipeMinVelocity
	}
	switch c.SwipeAxis {
	case AxisHorizontal, AxisVertical:
	default:
		c.SwipeAxis = AxisAny
	}
	if c.LongPressDuration <= 0 {
		c.LongPressDuration = defaultLongPressDuration
	}
	if c.LongPressMoveTolerance <= 0 {
		c.LongPressMoveTolerance = defaultLongPressMoveTolerance
	}
	if c.DoubleTapWindow <= 0 {
		c.DoubleTapWindow = defaultDoubleTapWindow
	}
	if c.DoubleTapMoveTolerance <= 0 {
		c.DoubleTapMoveTolerance = defaultDoubleTapMoveTolerance
	}
	if c.PinchMinScaleDelta <= 0 {
		c.PinchMinScaleDelta = defaultPinchMinScaleDelta
	}
	return c
}
