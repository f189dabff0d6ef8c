package physics

import "github.com/jakecoffman/cp"

// ShapeService is the collision geometry binding of one rigid body. Shapes are
// registered at a local offset and angle relative to the body origin; when the
// body lives in a Space the engine sees the change on its next step.
type ShapeService interface {
	// AddShape registers shape at the given local placement. It reports false
	// if the shape was already registered, leaving the existing placement.
	AddShape(shape *Shape, offset cp.Vector, angle float64) bool
	// RemoveShape unregisters shape. Unknown shapes are ignored and reported
	// as false.
	RemoveShape(shape *Shape) bool
	// HasShape reports whether shape is currently registered.
	HasShape(shape *Shape) bool
	// Shapes lists current placements in registration order.
	Shapes() []Placement
}

// Transform is the read-only pose of a body.
type Transform interface {
	Position() cp.Vector
	Angle() float64
}

// Placement is one registered shape with its local offset and angle.
type Placement struct {
	Shape  *Shape
	Offset cp.Vector
	Angle  float64
}
