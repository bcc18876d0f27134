// Package input bridges local pointer events into a gesture recognizer.
package input

import (
	"context"

	hook "github.com/robotn/gohook"
	"github.com/sirupsen/logrus"

	"github.com/frudas24/touchwave/gesture"
)

// leftButton is gohook's identifier for the primary mouse button.
const leftButton = 1

// Bridge feeds operating system pointer events into a recognizer so local
// mouse input can drive gesture handlers. A mouse offers a single contact,
// which covers every gesture except pinch.
type Bridge struct {
	rec    *gesture.Recognizer
	log    logrus.FieldLogger
	down   bool
	button uint16
}

// NewBridge wraps a recognizer for local pointer capture.
func NewBridge(rec *gesture.Recognizer, log logrus.FieldLogger) *Bridge {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Bridge{rec: rec, log: log}
}

// Run pumps hook events into the recognizer until ctx is done or the hook
// channel closes. It owns the global hook, so only one bridge may run per
// process.
func (b *Bridge) Run(ctx context.Context) error {
	events := hook.Start()
	defer hook.End()

	b.log.Info("capturing pointer input")
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			b.handle(ev)
		}
	}
}

// handle converts one hook event into a contact operation.
func (b *Bridge) handle(ev hook.Event) {
	switch ev.Kind {
	case hook.MouseDown:
		if b.down || ev.Button != leftButton {
			return
		}
		b.down = true
		b.button = ev.Button
		b.rec.OnContactBegin(contact(ev))
	case hook.MouseDrag:
		if !b.down {
			return
		}
		b.rec.OnContactMove(contact(ev))
	case hook.MouseUp:
		if !b.down || ev.Button != b.button {
			return
		}
		b.down = false
		b.rec.OnContactEnd()
	}
}

// contact converts the event position into a single-point contact frame.
func contact(ev hook.Event) []gesture.ContactPoint {
	return []gesture.ContactPoint{{
		X:         float64(ev.X),
		Y:         float64(ev.Y),
		Timestamp: ev.When.UnixMilli(),
	}}
}
