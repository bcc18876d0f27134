// Package transport carries contact frames from clients to gesture surfaces
// and classified gesture events back, over WebSocket and WebRTC data channels.
package transport

import (
	"github.com/frudas24/touchwave/gesture"
)

// Inbound message types.
const (
	MsgHello  = "hello"
	MsgBegin  = "begin"
	MsgMove   = "move"
	MsgEnd    = "end"
	MsgCancel = "cancel"
)

// Outbound message types.
const (
	MsgReady   = "ready"
	MsgGesture = "gesture"
)

// DataChannelLabel is the WebRTC data channel that carries touch traffic.
const DataChannelLabel = "touch"

// WirePoint is one contact position on the wire. Ts is in milliseconds.
type WirePoint struct {
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	Ts int64   `json:"ts"`
}

// Message is an inbound payload from a touch client. Hello frames declare the
// client surface; begin/move/end/cancel frames carry the contact stream.
type Message struct {
	T      string      `json:"t"`
	Points []WirePoint `json:"points,omitempty"`

	// hello fields
	Width      float64 `json:"width,omitempty"`
	Height     float64 `json:"height,omitempty"`
	Normalized bool    `json:"normalized,omitempty"`
	Profile    string  `json:"profile,omitempty"`
}

// Ready acknowledges a hello with the surface assigned to the connection.
type Ready struct {
	T       string `json:"t"`
	Surface string `json:"surface"`
	Profile string `json:"profile"`
}

// GestureMessage is an outbound classified gesture.
type GestureMessage struct {
	T         string  `json:"t"`
	Gesture   string  `json:"gesture"`
	X         float64 `json:"x,omitempty"`
	Y         float64 `json:"y,omitempty"`
	Direction string  `json:"direction,omitempty"`
	Distance  float64 `json:"distance,omitempty"`
	Velocity  float64 `json:"velocity,omitempty"`
	Scale     float64 `json:"scale,omitempty"`
}

// EncodeEvent renders a gesture event as its outbound wire message.
func EncodeEvent(ev gesture.Event) GestureMessage {
	msg := GestureMessage{T: MsgGesture, Gesture: string(ev.Kind())}
	switch g := ev.(type) {
	case gesture.Tap:
		msg.X, msg.Y = g.Center.X, g.Center.Y
	case gesture.DoubleTap:
		msg.X, msg.Y = g.Center.X, g.Center.Y
	case gesture.LongPress:
		msg.X, msg.Y = g.Center.X, g.Center.Y
	case gesture.Swipe:
		msg.Direction = string(g.Direction)
		msg.Distance = g.Distance
		msg.Velocity = g.Velocity
	case gesture.Pinch:
		msg.X, msg.Y = g.Center.X, g.Center.Y
		msg.Scale = g.Scale
	}
	return msg
}
