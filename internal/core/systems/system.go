package systems

import (
	"time"

	"github.com/EngoEngine/ecs"
)

// Priority defines execution order within a tick. Higher runs first.
type Priority int

// The tick runs pilot input and thrust, then the physics step, then
// projectile expiry, then read-only instrumentation.
const (
	PriorityControl    Priority = 1300
	PriorityPhysics    Priority = 1000
	PriorityProjectile Priority = 600
	PriorityDebug      Priority = 200
)

// Clock supplies the current world time in seconds.
type Clock interface {
	Now() float64
}

// Remover takes an entity out of the world and every system.
type Remover func(basic ecs.BasicEntity)

// Metrics provides runtime metrics for a system
type Metrics struct {
	ExecutionCount     uint64
	TotalExecutionTime time.Duration
	MaxExecutionTime   time.Duration
	EntitiesProcessed  uint64
}

func (m *Metrics) observe(start time.Time, entities int) {
	elapsed := time.Since(start)
	m.ExecutionCount++
	m.TotalExecutionTime += elapsed
	if elapsed > m.MaxExecutionTime {
		m.MaxExecutionTime = elapsed
	}
	m.EntitiesProcessed += uint64(entities)
}

// AverageExecutionTime over all recorded updates.
func (m Metrics) AverageExecutionTime() time.Duration {
	if m.ExecutionCount == 0 {
		return 0
	}
	return m.TotalExecutionTime / time.Duration(m.ExecutionCount)
}

// removeByID drops the first element whose id matches, preserving order.
func removeByID[T any](items []T, id uint64, idOf func(T) uint64) ([]T, bool) {
	for i, it := range items {
		if idOf(it) == id {
			return append(items[:i], items[i+1:]...), true
		}
	}
	return items, false
}
