// Package geometry provides the planar math used to turn hand landmarks into gesture features.
package geometry

import "math"

// SpreadScale is the upper bound of the rescaled distance range.
const SpreadScale = 1000.0

// Point is a 2D point in normalized frame coordinates.
type Point struct {
	X float64
	Y float64
}

// Angle returns the angle in degrees at vertex b between the rays b->a and b->c.
// The result is normalized into [0, 360). Coincident points are not special-cased;
// a NaN input propagates to the result.
func Angle(a, b, c Point) float64 {
	first := math.Atan2(a.Y-b.Y, a.X-b.X)
	second := math.Atan2(c.Y-b.Y, c.X-b.X)

	deg := (first - second) * 180 / math.Pi
	if deg < 0 {
		deg += 360
		// A difference of a few ulps below zero rounds up to exactly 360.
		if deg >= 360 {
			deg = 0
		}
	}
	return deg
}

// Distance returns the Euclidean distance between p and q remapped from [0, 1]
// onto [0, SpreadScale]. Distances beyond 1 clamp to SpreadScale.
func Distance(p, q Point) float64 {
	d := math.Hypot(q.X-p.X, q.Y-p.Y)
	return Interp(d, 0, 1, 0, SpreadScale)
}

// Interp linearly maps x from [x0, x1] onto [y0, y1].
// Values outside [x0, x1] clamp to the nearest endpoint of the output range.
func Interp(x, x0, x1, y0, y1 float64) float64 {
	if x1 == x0 {
		return y0
	}
	if x <= x0 {
		return y0
	}
	if x >= x1 {
		return y1
	}
	return y0 + (x-x0)*(y1-y0)/(x1-x0)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
