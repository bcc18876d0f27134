// Package trace records contact frames to disk and replays them through
// the gesture engine for deterministic threshold tuning.
package trace

import (
	"time"

	"github.com/frudas24/touchwave/gesture"
)

// Replay feeds a recorded trace through a fresh recognizer configured by
// cfg and returns the classified events in emission order. A manual clock
// driven by the frame timeline stands in for real time, so deferred taps
// and long-presses land exactly where they did live.
func Replay(frames []Frame, cfg gesture.Config) []gesture.Event {
	r := gesture.New(cfg)

	var start int64
	if len(frames) > 0 {
		start = frames[0].At
	}
	clk := gesture.NewManualClock(time.UnixMilli(start))
	r.SetClock(clk)

	var out []gesture.Event
	for _, kind := range gesture.Kinds() {
		r.Subscribe(kind, func(ev gesture.Event) { out = append(out, ev) })
	}

	for _, f := range frames {
		clk.AdvanceTo(time.UnixMilli(f.At))
		switch f.Op {
		case OpBegin:
			r.OnContactBegin(f.Points)
		case OpMove:
			r.OnContactMove(f.Points)
		case OpEnd:
			r.OnContactEnd()
		case OpCancel:
			r.OnContactCancel()
		}
	}

	// Run out whatever timer is still pending past the last frame.
	flush := r.Config().DoubleTapWindow
	if hold := r.Config().LongPressDuration; hold > flush {
		flush = hold
	}
	clk.Advance(flush + time.Millisecond)
	r.Teardown()
	return out
}
