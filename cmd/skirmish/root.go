package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/zeusync/skirmish/internal/config"
	"github.com/zeusync/skirmish/internal/core/events/bus"
	"github.com/zeusync/skirmish/internal/core/loadout"
	"github.com/zeusync/skirmish/internal/core/observability/log"
	"github.com/zeusync/skirmish/internal/injector"
)

var errStopped = errors.New("stopped by signal")

func newRootCmd() *cobra.Command {
	var (
		configPath string
		logLevel   string
		duration   time.Duration
	)
	cmd := &cobra.Command{
		Use:           "skirmish",
		Short:         "Run the skirmish simulation headless",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Default()
			if configPath != "" {
				loaded, err := config.Load(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			if cmd.Flags().Changed("log-level") {
				cfg.Log.Level = logLevel
			}
			if cmd.Flags().Changed("duration") {
				cfg.World.Duration = duration
			}
			return run(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")
	cmd.Flags().DurationVar(&duration, "duration", 0, "stop after this long; zero runs until interrupted")
	return cmd
}

func run(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	app, err := injector.InitializeApp(cfg)
	if err != nil {
		return fmt.Errorf("initialize world: %w", err)
	}
	w := app.World
	defer w.Close()

	logger := app.Logger.Named("skirmish")
	defer logger.Sync()

	if _, err := w.SpawnDebris(); err != nil {
		return err
	}
	pilot := newScriptedPilot(cfg.Pilot)
	for _, spec := range cfg.Ships {
		ship, err := loadout.Build(spec, loadout.Deps{
			Materials: w.Materials(),
			Clock:     w.Clock(),
			Events:    w.Events(),
			Logger:    logger,
		})
		if err != nil {
			return fmt.Errorf("ship %q: %w", spec.Name, err)
		}
		w.AddShip(ship, pilot)
	}

	if cfg.World.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.World.Duration)
		defer cancel()
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return tick(ctx, app, cfg, logger)
	})
	g.Go(func() error {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(stop)
		select {
		case sig := <-stop:
			logger.Info("signal received", log.String("signal", sig.String()))
			return errStopped
		case <-ctx.Done():
			return nil
		}
	})

	err = g.Wait()
	report(logger, app)
	if errors.Is(err, errStopped) {
		return nil
	}
	return err
}

// tick advances the world at a fixed step until ctx ends. Wall time only
// paces the loop; the simulation always sees the same dt.
func tick(ctx context.Context, app *injector.App, cfg *config.Config, logger log.Log) error {
	w := app.World
	interval := cfg.TickInterval()
	dt := 1 / float64(cfg.World.TickRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Info("simulation started",
		log.Int("tick_rate", cfg.World.TickRate),
		log.Int("entities", w.Len()),
		log.Duration("duration", cfg.World.Duration),
	)

	var lastReport time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			step(app, dt)
			if cfg.World.ReportEvery > 0 && now.Sub(lastReport) >= cfg.World.ReportEvery {
				lastReport = now
				report(logger, app)
			}
		}
	}
}

// step advances the world once and records how long the update itself took.
func step(app *injector.App, dt float64) {
	start := time.Now()
	app.World.Update(dt)
	app.Metrics.MeasureSince(start, "tick")
}

func report(logger log.Log, app *injector.App) {
	w, m := app.World, app.Metrics
	frame := w.Frame()
	m.SetGauge(float32(len(frame.Entities)), "entities")
	m.SetGauge(float32(w.Bullets()), "bullets")

	fields := []log.Field{
		log.Float64("time", frame.Time),
		log.Int("entities", len(frame.Entities)),
		log.Int("bullets", w.Bullets()),
	}
	if phys, ok := w.Metrics()["physics"]; ok {
		fields = append(fields, log.Duration("physics_avg", phys.AverageExecutionTime()))
	}
	counters := m.Counters()
	for _, typ := range []string{bus.WeaponFired, bus.ProjectileLaunched, bus.EntityRemoved} {
		fields = append(fields, log.Int(typ, int(counters[m.Key("events", typ)])))
	}
	logger.Info("frame", fields...)
}
