package systems

import (
	"time"

	"github.com/EngoEngine/ecs"

	"github.com/zeusync/skirmish/internal/core/entity"
)

// ProjectileSystem removes bullets once their lifetime is over.
type ProjectileSystem struct {
	clock   Clock
	remove  Remover
	bullets []*entity.Bullet
	expired uint64
	metrics Metrics
}

var (
	_ ecs.System      = (*ProjectileSystem)(nil)
	_ ecs.Prioritizer = (*ProjectileSystem)(nil)
)

func NewProjectileSystem(clock Clock, remove Remover) *ProjectileSystem {
	return &ProjectileSystem{clock: clock, remove: remove}
}

func (s *ProjectileSystem) Add(b *entity.Bullet) {
	s.bullets = append(s.bullets, b)
}

func (s *ProjectileSystem) Remove(basic ecs.BasicEntity) {
	s.bullets, _ = removeByID(s.bullets, basic.ID(), func(b *entity.Bullet) uint64 { return b.ID() })
}

func (s *ProjectileSystem) Update(float32) {
	start := time.Now()
	now := s.clock.Now()
	var done []*entity.Bullet
	for _, b := range s.bullets {
		if b.Expired(now) {
			done = append(done, b)
		}
	}
	processed := len(s.bullets)
	for _, b := range done {
		s.remove(b.BasicEntity)
		s.expired++
	}
	s.metrics.observe(start, processed)
}

func (s *ProjectileSystem) Priority() int { return int(PriorityProjectile) }

// Live is the number of bullets in flight.
func (s *ProjectileSystem) Live() int { return len(s.bullets) }

// Expired counts bullets removed for age.
func (s *ProjectileSystem) Expired() uint64 { return s.expired }

func (s *ProjectileSystem) GetMetrics() Metrics { return s.metrics }
