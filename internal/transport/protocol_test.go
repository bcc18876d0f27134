package transport

import (
	"encoding/json"
	"testing"

	"github.com/frudas24/touchwave/gesture"
)

// TestProtocol_Hello verifies decoding a hello message.
func TestProtocol_Hello(t *testing.T) {
	var msg Message
	payload := `{"t":"hello","width":800,"height":600,"normalized":true,"profile":"pager"}`
	if err := json.Unmarshal([]byte(payload), &msg); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if msg.T != MsgHello || msg.Width != 800 || msg.Height != 600 || !msg.Normalized || msg.Profile != "pager" {
		t.Fatalf("unexpected message: %+v", msg)
	}
}

// TestProtocol_Begin verifies decoding a contact frame with points.
func TestProtocol_Begin(t *testing.T) {
	var msg Message
	payload := `{"t":"begin","points":[{"x":10,"y":20,"ts":1500},{"x":30,"y":40,"ts":1500}]}`
	if err := json.Unmarshal([]byte(payload), &msg); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if msg.T != MsgBegin || len(msg.Points) != 2 {
		t.Fatalf("unexpected message: %+v", msg)
	}
	if msg.Points[1] != (WirePoint{X: 30, Y: 40, Ts: 1500}) {
		t.Fatalf("unexpected point: %+v", msg.Points[1])
	}
}

// TestEncodeEvent verifies every gesture variant maps onto the wire shape.
func TestEncodeEvent(t *testing.T) {
	cases := []struct {
		name string
		ev   gesture.Event
		want GestureMessage
	}{
		{
			name: "tap",
			ev:   gesture.Tap{Center: gesture.Point{X: 3, Y: 4}},
			want: GestureMessage{T: MsgGesture, Gesture: "tap", X: 3, Y: 4},
		},
		{
			name: "double tap",
			ev:   gesture.DoubleTap{Center: gesture.Point{X: 1, Y: 2}},
			want: GestureMessage{T: MsgGesture, Gesture: "double_tap", X: 1, Y: 2},
		},
		{
			name: "long press",
			ev:   gesture.LongPress{Center: gesture.Point{X: 5, Y: 6}},
			want: GestureMessage{T: MsgGesture, Gesture: "long_press", X: 5, Y: 6},
		},
		{
			name: "swipe",
			ev:   gesture.Swipe{Direction: gesture.DirLeft, Distance: 120, Velocity: 0.8},
			want: GestureMessage{T: MsgGesture, Gesture: "swipe", Direction: "left", Distance: 120, Velocity: 0.8},
		},
		{
			name: "pinch",
			ev:   gesture.Pinch{Scale: 1.5, Center: gesture.Point{X: 50, Y: 60}},
			want: GestureMessage{T: MsgGesture, Gesture: "pinch", X: 50, Y: 60, Scale: 1.5},
		},
	}
	for _, tc := range cases {
		if got := EncodeEvent(tc.ev); got != tc.want {
			t.Fatalf("%s: expected %+v, got %+v", tc.name, tc.want, got)
		}
	}
}

// TestMapContacts verifies normalized coordinates scale and clamp onto the
// declared surface while absolute coordinates pass through.
func TestMapContacts(t *testing.T) {
	pts := []WirePoint{{X: 0.5, Y: 0.25, Ts: 10}, {X: 1.5, Y: -0.5, Ts: 10}}

	scaled := mapContacts(pts, true, 1000, 400)
	if len(scaled) != 2 {
		t.Fatalf("expected 2 contacts, got %d", len(scaled))
	}
	if scaled[0] != (gesture.ContactPoint{X: 500, Y: 100, Timestamp: 10}) {
		t.Fatalf("unexpected scaled contact: %+v", scaled[0])
	}
	if scaled[1] != (gesture.ContactPoint{X: 1000, Y: 0, Timestamp: 10}) {
		t.Fatalf("expected clamped contact, got %+v", scaled[1])
	}

	raw := mapContacts(pts, false, 1000, 400)
	if raw[0] != (gesture.ContactPoint{X: 0.5, Y: 0.25, Timestamp: 10}) {
		t.Fatalf("unexpected raw contact: %+v", raw[0])
	}

	if got := mapContacts(nil, true, 1000, 400); got != nil {
		t.Fatalf("expected nil for empty input, got %#v", got)
	}
}
