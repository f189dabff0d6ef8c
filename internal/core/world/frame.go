package world

import "github.com/zeusync/skirmish/internal/core/physics"

// Frame is a read-only copy of the world after a tick, for renderers.
type Frame struct {
	Time     float64
	Entities []EntityFrame
}

type EntityFrame struct {
	ID   uint64
	Name string
	physics.BodySnapshot
}

// Frame snapshots every live entity in insertion order.
func (w *World) Frame() Frame {
	f := Frame{Time: w.time, Entities: make([]EntityFrame, 0, len(w.entities))}
	for _, e := range w.entities {
		p := e.Physical()
		f.Entities = append(f.Entities, EntityFrame{
			ID:           p.ID(),
			Name:         p.Name,
			BodySnapshot: p.Snapshot(),
		})
	}
	return f
}
