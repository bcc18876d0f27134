// Package profile stores named threshold presets for the gesture engine.
package profile

import (
	"sort"
	"time"

	"github.com/frudas24/touchwave/gesture"
)

// DefaultName is the profile used when no name is configured.
const DefaultName = "default"

// Thresholds mirrors gesture.Config with wire-friendly fields; durations
// are plain milliseconds. Zero fields inherit the engine defaults.
type Thresholds struct {
	SwipeMinDistance       float64 `yaml:"swipe_min_distance,omitempty" json:"swipeMinDistance,omitempty"`
	SwipeMinVelocity       float64 `yaml:"swipe_min_velocity,omitempty" json:"swipeMinVelocity,omitempty"`
	SwipeAxis              string  `yaml:"swipe_axis,omitempty" json:"swipeAxis,omitempty"`
	LongPressDurationMs    int     `yaml:"long_press_duration_ms,omitempty" json:"longPressDurationMs,omitempty"`
	LongPressMoveTolerance float64 `yaml:"long_press_move_tolerance,omitempty" json:"longPressMoveTolerance,omitempty"`
	DoubleTapWindowMs      int     `yaml:"double_tap_window_ms,omitempty" json:"doubleTapWindowMs,omitempty"`
	DoubleTapMoveTolerance float64 `yaml:"double_tap_move_tolerance,omitempty" json:"doubleTapMoveTolerance,omitempty"`
	PinchMinScaleDelta     float64 `yaml:"pinch_min_scale_delta,omitempty" json:"pinchMinScaleDelta,omitempty"`
}

// Config converts the stored thresholds into a recognizer config.
func (th Thresholds) Config() gesture.Config {
	return gesture.Config{
		SwipeMinDistance:       th.SwipeMinDistance,
		SwipeMinVelocity:       th.SwipeMinVelocity,
		SwipeAxis:              gesture.Axis(th.SwipeAxis),
		LongPressDuration:      time.Duration(th.LongPressDurationMs) * time.Millisecond,
		LongPressMoveTolerance: th.LongPressMoveTolerance,
		DoubleTapWindow:        time.Duration(th.DoubleTapWindowMs) * time.Millisecond,
		DoubleTapMoveTolerance: th.DoubleTapMoveTolerance,
		PinchMinScaleDelta:     th.PinchMinScaleDelta,
	}
}

// FromConfig converts a recognizer config into storable thresholds.
func FromConfig(cfg gesture.Config) Thresholds {
	return Thresholds{
		SwipeMinDistance:       cfg.SwipeMinDistance,
		SwipeMinVelocity:       cfg.SwipeMinVelocity,
		SwipeAxis:              string(cfg.SwipeAxis),
		LongPressDurationMs:    int(cfg.LongPressDuration / time.Millisecond),
		LongPressMoveTolerance: cfg.LongPressMoveTolerance,
		DoubleTapWindowMs:      int(cfg.DoubleTapWindow / time.Millisecond),
		DoubleTapMoveTolerance: cfg.DoubleTapMoveTolerance,
		PinchMinScaleDelta:     cfg.PinchMinScaleDelta,
	}
}

// Set is a collection of named threshold profiles.
type Set struct {
	Profiles map[string]Thresholds `yaml:"profiles"`
}

// Builtin returns the presets shipped with the daemon: the engine defaults,
// a slower accessibility-oriented preset, and a horizontal pager preset.
func Builtin() Set {
	return Set{Profiles: map[string]Thresholds{
		DefaultName: {},
		"deliberate": {
			LongPressDurationMs:    800,
			LongPressMoveTolerance: 16,
			DoubleTapWindowMs:      450,
			DoubleTapMoveTolerance: 32,
		},
		"pager": {
			SwipeAxis:        string(gesture.AxisHorizontal),
			SwipeMinDistance: 80,
		},
	}}
}

// Resolve returns the recognizer config for name, defaulting the empty
// name to DefaultName. Unknown names report false and the stock config.
func (s Set) Resolve(name string) (gesture.Config, bool) {
	if name == "" {
		name = DefaultName
	}
	th, ok := s.Profiles[name]
	if !ok {
		return gesture.DefaultConfig(), false
	}
	return th.Config(), true
}

// Names lists the profile names in sorted order.
func (s Set) Names() []string {
	names := make([]string, 0, len(s.Profiles))
	for name := range s.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
