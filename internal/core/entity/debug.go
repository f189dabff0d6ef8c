package entity

import (
	"github.com/zeusync/skirmish/internal/core/observability/log"
)

// Debug is inert instrumentation. It only reads its target.
type Debug struct {
	Enabled bool
	// Shapes includes per shape geometry in traces.
	Shapes bool

	target *PhysicalEntity
	logger log.Log
}

func NewDebug(target *PhysicalEntity) *Debug {
	return &Debug{
		target: target,
		logger: target.Logger().Named("debug"),
	}
}

// Trace logs the current body state when enabled.
func (d *Debug) Trace() {
	if !d.Enabled || !d.logger.Enabled(log.LevelDebug) {
		return
	}
	snap := d.target.Snapshot()
	fields := []log.Field{
		log.String("name", d.target.Name),
		log.Vec("position", snap.Position.X, snap.Position.Y),
		log.Float64("angle", snap.Angle),
		log.Vec("velocity", snap.Velocity.X, snap.Velocity.Y),
		log.Float64("angular_velocity", snap.AngularVelocity),
		log.Int("shapes", len(snap.Shapes)),
	}
	if d.Shapes {
		fields = append(fields, log.Any("geometry", snap.Shapes))
	}
	d.logger.Debug("trace", fields...)
}
