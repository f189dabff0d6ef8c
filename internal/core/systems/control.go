package systems

import (
	"time"

	"github.com/EngoEngine/ecs"

	"github.com/zeusync/skirmish/internal/core/entity"
)

// Pilot drives a ship. Sample is called once per tick before thrust is
// applied; it may set controls and pull the trigger any number of times.
type Pilot interface {
	Sample(ship *entity.Ship, now float64)
}

// PilotFunc adapts a function to Pilot.
type PilotFunc func(ship *entity.Ship, now float64)

func (f PilotFunc) Sample(ship *entity.Ship, now float64) { f(ship, now) }

type piloted struct {
	ship  *entity.Ship
	pilot Pilot
}

// ControlSystem samples pilots and turns their controls into forces.
type ControlSystem struct {
	clock   Clock
	ships   []piloted
	metrics Metrics
}

var (
	_ ecs.System      = (*ControlSystem)(nil)
	_ ecs.Prioritizer = (*ControlSystem)(nil)
)

func NewControlSystem(clock Clock) *ControlSystem {
	return &ControlSystem{clock: clock}
}

// Add registers ship. A nil pilot leaves the controls to the caller.
func (s *ControlSystem) Add(ship *entity.Ship, pilot Pilot) {
	s.ships = append(s.ships, piloted{ship: ship, pilot: pilot})
}

func (s *ControlSystem) Remove(basic ecs.BasicEntity) {
	s.ships, _ = removeByID(s.ships, basic.ID(), func(p piloted) uint64 { return p.ship.ID() })
}

func (s *ControlSystem) Update(dt float32) {
	start := time.Now()
	now := s.clock.Now()
	// a pilot may spawn or remove entities; iterate a stable view
	ships := append([]piloted(nil), s.ships...)
	for _, p := range ships {
		if p.pilot != nil {
			p.pilot.Sample(p.ship, now)
		}
		p.ship.Thrust.Apply(float64(dt))
	}
	s.metrics.observe(start, len(ships))
}

func (s *ControlSystem) Priority() int { return int(PriorityControl) }

func (s *ControlSystem) GetMetrics() Metrics { return s.metrics }
