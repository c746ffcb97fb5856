package object

import "github.com/tomz197/spacecleanup/internal/physics"

// Rect is an axis-aligned rectangle in logical coordinates.
type Rect struct {
	X, Y, W, H float64
}

// Overlaps reports whether r and other overlap (touching edges count).
func (r Rect) Overlaps(other Rect) bool {
	return physics.RectsOverlap(r.X, r.Y, r.W, r.H, other.X, other.Y, other.W, other.H)
}

// Center returns the rectangle center.
func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}
