package world

import (
	"fmt"
	"math/rand/v2"

	"github.com/cespare/xxhash/v2"
	"github.com/jakecoffman/cp"

	"github.com/zeusync/skirmish/internal/core/entity"
	"github.com/zeusync/skirmish/internal/core/materials"
	"github.com/zeusync/skirmish/internal/core/observability/log"
)

type DebrisOptions struct {
	Min       int     `yaml:"min"`
	Max       int     `yaml:"max"`
	MinRadius float64 `yaml:"min_radius"`
	MaxRadius float64 `yaml:"max_radius"`
	Material  string  `yaml:"material"`
	// Composite adds the three circle rock at the origin.
	Composite bool `yaml:"composite"`
	// Trace turns on debug tracing for every rock.
	Trace bool `yaml:"trace"`
}

// DefaultDebris is a field of 10 to 20 rocks of radius 5 to 20.
func DefaultDebris() DebrisOptions {
	return DebrisOptions{
		Min:       10,
		Max:       20,
		MinRadius: 5,
		MaxRadius: 20,
		Material:  materials.Default,
		Composite: true,
		Trace:     true,
	}
}

// rng derives a reproducible stream from the world seed and a name, so that
// separate generators do not share state.
func (w *World) rng(name string) *rand.Rand {
	hi := xxhash.Sum64String(w.opts.Seed + "/" + name)
	lo := xxhash.Sum64String(name + "/" + w.opts.Seed)
	return rand.New(rand.NewPCG(hi, lo))
}

// SpawnDebris scatters rocks inside a square of half side count*100 and
// returns them.
func (w *World) SpawnDebris() ([]*entity.PhysicalEntity, error) {
	opts := w.opts.Debris
	if opts.Max < opts.Min || opts.Min < 0 {
		return nil, fmt.Errorf("debris count range [%d, %d] is invalid", opts.Min, opts.Max)
	}
	if opts.MaxRadius < opts.MinRadius || opts.MinRadius <= 0 {
		return nil, fmt.Errorf("debris radius range [%g, %g] is invalid", opts.MinRadius, opts.MaxRadius)
	}
	material, err := w.materials.Lookup(opts.Material)
	if err != nil {
		return nil, fmt.Errorf("debris: %w", err)
	}

	rng := w.rng("debris")
	count := opts.Min + rng.IntN(opts.Max-opts.Min+1)
	bound := count * 100

	rocks := make([]*entity.PhysicalEntity, 0, count+1)
	for range count {
		pos := cp.Vector{
			X: float64(rng.IntN(2*bound+1) - bound),
			Y: float64(rng.IntN(2*bound+1) - bound),
		}
		radius := opts.MinRadius + rng.Float64()*(opts.MaxRadius-opts.MinRadius)
		rocks = append(rocks, entity.NewDebris(pos, radius, material, w.logger))
	}
	if opts.Composite {
		rocks = append(rocks, entity.NewCompositeDebris(cp.Vector{}, material, w.logger))
	}

	for _, r := range rocks {
		w.Add(r)
		if opts.Trace {
			d := entity.NewDebug(r)
			d.Enabled = true
			w.Trace(r.ID(), d)
		}
	}
	w.logger.Info("debris spawned", log.Int("count", len(rocks)), log.Int("bound", bound))
	return rocks, nil
}
