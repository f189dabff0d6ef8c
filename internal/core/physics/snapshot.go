package physics

import "github.com/jakecoffman/cp"

// ShapeSnapshot is the render-facing view of one registered shape.
type ShapeSnapshot struct {
	Radius   float64
	Offset   cp.Vector
	Angle    float64
	Material string
}

// BodySnapshot is a copy of a body's pose and geometry. It shares nothing
// with the live body.
type BodySnapshot struct {
	Position        cp.Vector
	Angle           float64
	Velocity        cp.Vector
	AngularVelocity float64
	Shapes          []ShapeSnapshot
}
