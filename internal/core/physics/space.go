package physics

import (
	"github.com/jakecoffman/cp"
)

// Space wraps the physics engine world. Gravity is zero: this is open space.
type Space struct {
	space  *cp.Space
	bodies map[*Body]struct{}
}

func NewSpace() *Space {
	space := cp.NewSpace()
	space.SetGravity(cp.Vector{X: 0, Y: 0})
	return &Space{
		space:  space,
		bodies: make(map[*Body]struct{}),
	}
}

// Add attaches body and all of its registered shapes. Adding a body twice is a no-op.
func (s *Space) Add(body *Body) {
	if body.space == s {
		return
	}
	if body.space != nil {
		body.space.Remove(body)
	}
	s.space.AddBody(body.body)
	for _, p := range body.placements {
		s.space.AddShape(p.engine)
	}
	body.space = s
	s.bodies[body] = struct{}{}
}

// Remove detaches body and its shapes. The body keeps its shape list.
func (s *Space) Remove(body *Body) {
	if body.space != s {
		return
	}
	for _, p := range body.placements {
		s.space.RemoveShape(p.engine)
	}
	s.space.RemoveBody(body.body)
	body.space = nil
	delete(s.bodies, body)
}

func (s *Space) Contains(body *Body) bool {
	_, ok := s.bodies[body]
	return ok
}

// ContainsShape reports whether the engine currently collides shape as part of body.
func (s *Space) ContainsShape(body *Body, shape *Shape) bool {
	if body.space != s {
		return false
	}
	i := body.indexOf(shape)
	if i < 0 {
		return false
	}
	return s.space.ContainsShape(body.placements[i].engine)
}

// Len is the number of attached bodies.
func (s *Space) Len() int { return len(s.bodies) }

// Step advances the simulation by dt seconds.
func (s *Space) Step(dt float64) {
	s.space.Step(dt)
}

// Engine exposes the underlying cp space.
func (s *Space) Engine() *cp.Space { return s.space }
