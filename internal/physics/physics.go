// Package physics provides the overlap tests used to detect catches.
package physics

import "math"

// Box is an axis-aligned rectangle given by its centre and full size.
type Box struct {
	X, Y          float64 // Centre
	Width, Height float64
}

// BoxesOverlap checks if two boxes overlap. Touching edges do not count.
func BoxesOverlap(a, b Box) bool {
	return math.Abs(a.X-b.X)*2 < a.Width+b.Width &&
		math.Abs(a.Y-b.Y)*2 < a.Height+b.Height
}

// PointInBox checks if a point lies inside a box (edges included).
func PointInBox(px, py float64, b Box) bool {
	return math.Abs(px-b.X)*2 <= b.Width && math.Abs(py-b.Y)*2 <= b.Height
}
