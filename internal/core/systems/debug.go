package systems

import (
	"github.com/EngoEngine/ecs"

	"github.com/zeusync/skirmish/internal/core/entity"
)

type traced struct {
	id    uint64
	debug *entity.Debug
}

// DebugSystem traces enabled debug modules at most once per Interval seconds.
type DebugSystem struct {
	Interval float64

	clock   Clock
	entries []traced
	last    float64
	started bool
}

var (
	_ ecs.System      = (*DebugSystem)(nil)
	_ ecs.Prioritizer = (*DebugSystem)(nil)
)

func NewDebugSystem(clock Clock, interval float64) *DebugSystem {
	return &DebugSystem{clock: clock, Interval: interval}
}

func (s *DebugSystem) Add(id uint64, d *entity.Debug) {
	s.entries = append(s.entries, traced{id: id, debug: d})
}

func (s *DebugSystem) Remove(basic ecs.BasicEntity) {
	s.entries, _ = removeByID(s.entries, basic.ID(), func(t traced) uint64 { return t.id })
}

func (s *DebugSystem) Update(float32) {
	now := s.clock.Now()
	if s.started && now-s.last < s.Interval {
		return
	}
	s.started = true
	s.last = now
	for _, t := range s.entries {
		t.debug.Trace()
	}
}

func (s *DebugSystem) Priority() int { return int(PriorityDebug) }
