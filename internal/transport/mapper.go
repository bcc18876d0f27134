// Package transport carries contact frames from clients to gesture surfaces
// and classified gesture events back, over WebSocket and WebRTC data channels.
package transport

import "github.com/frudas24/touchwave/gesture"

// clamp01 clamps a normalized coordinate into [0, 1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// mapContacts converts wire points into engine contacts. When the client
// declared a normalized surface, coordinates are scaled onto its dimensions
// so thresholds operate in surface units.
func mapContacts(points []WirePoint, normalized bool, width, height float64) []gesture.ContactPoint {
	if len(points) == 0 {
		return nil
	}
	out := make([]gesture.ContactPoint, 0, len(points))
	for _, p := range points {
		x, y := p.X, p.Y
		if normalized && width > 0 && height > 0 {
			x = clamp01(x) * width
			y = clamp01(y) * height
		}
		out = append(out, gesture.ContactPoint{X: x, Y: y, Timestamp: p.Ts})
	}
	return out
}
