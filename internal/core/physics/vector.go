package physics

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Small helpers over cp.Vector shared by entities and components.

// Vec builds a vector from a two element array, the shape used in config files.
func Vec(v [2]float64) cp.Vector { return cp.Vector{X: v[0], Y: v[1]} }

// Rotate turns v by angle radians counter-clockwise.
func Rotate(v cp.Vector, angle float64) cp.Vector {
	return v.Rotate(cp.ForAngle(angle))
}

// Heading is the unit vector a body with the given angle points along.
// Local +Y is forward, so heading is the angle plus a quarter turn.
func Heading(angle float64) cp.Vector {
	return cp.ForAngle(angle + math.Pi/2)
}

// Distance computes the Euclidean distance between two points.
func Distance(a, b cp.Vector) float64 { return math.Hypot(b.X-a.X, b.Y-a.Y) }

// NearlyEqual compares two vectors within eps on each axis.
func NearlyEqual(a, b cp.Vector, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps
}
