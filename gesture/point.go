// Package gesture classifies raw touch contacts into discrete gesture events.
package gesture

import "math"

// ContactPoint is an immutable snapshot of one touch contact.
type ContactPoint struct {
	X         float64
	Y         float64
	Timestamp int64 // milliseconds
}

// Point is a position on the touch surface.
type Point struct {
	X float64
	Y float64
}

// Point returns the position of the contact without its timestamp.
func (p ContactPoint) Point() Point {
	return Point{X: p.X, Y: p.Y}
}

// Distance returns the Euclidean distance between two contact points.
func Distance(a, b ContactPoint) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// Midpoint returns the position halfway between two contact points.
func Midpoint(a, b ContactPoint) Point {
	return Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}
