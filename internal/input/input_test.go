package input

import (
	"io"
	"testing"
	"time"

	hook "github.com/robotn/gohook"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frudas24/touchwave/gesture"
)

// newTestBridge wires a bridge to a recognizer that records swipes.
func newTestBridge(t *testing.T) (*Bridge, *[]gesture.Swipe) {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	rec := gesture.New(gesture.Config{})
	rec.SetLogger(log)
	t.Cleanup(rec.Teardown)

	var swipes []gesture.Swipe
	rec.Subscribe(gesture.KindSwipe, func(ev gesture.Event) {
		swipes = append(swipes, ev.(gesture.Swipe))
	})
	return NewBridge(rec, log), &swipes
}

// ev builds a synthetic hook event at the given position and time.
func ev(kind uint8, button uint16, x, y int16, atMs int64) hook.Event {
	return hook.Event{
		Kind:   kind,
		Button: button,
		X:      x,
		Y:      y,
		When:   time.UnixMilli(atMs),
	}
}

func TestBridgeClassifiesDragAsSwipe(t *testing.T) {
	b, swipes := newTestBridge(t)

	b.handle(ev(hook.MouseDown, leftButton, 0, 0, 1000))
	b.handle(ev(hook.MouseDrag, leftButton, 200, 0, 1100))
	b.handle(ev(hook.MouseUp, leftButton, 200, 0, 1100))

	require.Len(t, *swipes, 1)
	got := (*swipes)[0]
	assert.Equal(t, gesture.DirRight, got.Direction)
	assert.InDelta(t, 200, got.Distance, 1e-9)
	assert.InDelta(t, 2.0, got.Velocity, 1e-9)
}

func TestBridgeIgnoresSecondaryButtons(t *testing.T) {
	b, swipes := newTestBridge(t)

	b.handle(ev(hook.MouseDown, 2, 0, 0, 0))
	b.handle(ev(hook.MouseDrag, 2, 200, 0, 100))
	b.handle(ev(hook.MouseUp, 2, 200, 0, 100))

	assert.Empty(t, *swipes)
}

func TestBridgeIgnoresStrayRelease(t *testing.T) {
	b, swipes := newTestBridge(t)

	// Release and drag without a press must not reach the recognizer.
	b.handle(ev(hook.MouseUp, leftButton, 10, 10, 0))
	b.handle(ev(hook.MouseDrag, leftButton, 50, 50, 10))
	assert.Empty(t, *swipes)

	// The next full press still works.
	b.handle(ev(hook.MouseDown, leftButton, 0, 0, 1000))
	b.handle(ev(hook.MouseDrag, leftButton, 150, 0, 1100))
	b.handle(ev(hook.MouseUp, leftButton, 150, 0, 1100))
	require.Len(t, *swipes, 1)
}

func TestBridgeKeepsGestureAcrossOtherButtonRelease(t *testing.T) {
	b, swipes := newTestBridge(t)

	b.handle(ev(hook.MouseDown, leftButton, 0, 0, 0))
	// A stray right-button release mid drag must not end the contact.
	b.handle(ev(hook.MouseUp, 2, 50, 0, 50))
	b.handle(ev(hook.MouseDrag, leftButton, 200, 0, 100))
	b.handle(ev(hook.MouseUp, leftButton, 200, 0, 100))

	require.Len(t, *swipes, 1)
	assert.Equal(t, gesture.DirRight, (*swipes)[0].Direction)
}
