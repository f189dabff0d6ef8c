package systems

import (
	"time"

	"github.com/EngoEngine/ecs"

	"github.com/zeusync/skirmish/internal/core/entity"
	"github.com/zeusync/skirmish/internal/core/physics"
)

// PhysicsSystem owns the physics space. Each update damps every body, steps
// the engine and then advances the world clock.
type PhysicsSystem struct {
	space   *physics.Space
	bodies  []*entity.PhysicalEntity
	advance func(dt float64)
	metrics Metrics
}

var (
	_ ecs.System      = (*PhysicsSystem)(nil)
	_ ecs.Prioritizer = (*PhysicsSystem)(nil)
)

// NewPhysicsSystem steps space; advance is called with the elapsed time once
// the step is done.
func NewPhysicsSystem(space *physics.Space, advance func(dt float64)) *PhysicsSystem {
	return &PhysicsSystem{space: space, advance: advance}
}

func (s *PhysicsSystem) Add(e entity.Physical) {
	p := e.Physical()
	s.space.Add(p.Body)
	s.bodies = append(s.bodies, p)
}

func (s *PhysicsSystem) Remove(basic ecs.BasicEntity) {
	var removed *entity.PhysicalEntity
	for _, p := range s.bodies {
		if p.ID() == basic.ID() {
			removed = p
			break
		}
	}
	if removed == nil {
		return
	}
	s.space.Remove(removed.Body)
	s.bodies, _ = removeByID(s.bodies, basic.ID(), func(p *entity.PhysicalEntity) uint64 { return p.ID() })
}

func (s *PhysicsSystem) Update(dt float32) {
	start := time.Now()
	step := float64(dt)
	for _, p := range s.bodies {
		p.Integrate(step)
	}
	s.space.Step(step)
	if s.advance != nil {
		s.advance(step)
	}
	s.metrics.observe(start, len(s.bodies))
}

func (s *PhysicsSystem) Priority() int { return int(PriorityPhysics) }

func (s *PhysicsSystem) Space() *physics.Space { return s.space }

func (s *PhysicsSystem) Len() int { return len(s.bodies) }

func (s *PhysicsSystem) GetMetrics() Metrics { return s.metrics }
