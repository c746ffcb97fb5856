// Package physics provides collision detection and range utilities.
package physics

// RectsOverlap reports whether two axis-aligned rectangles overlap.
// Touching edges count as overlap.
func RectsOverlap(ax, ay, aw, ah, bx, by, bw, bh float64) bool {
	return ax <= bx+bw && ax+aw >= bx && ay <= by+bh && ay+ah >= by
}

// Clamp limits v to [lo, hi]. If hi < lo, lo wins.
func Clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
