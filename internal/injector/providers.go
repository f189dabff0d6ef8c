package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/skirmish/internal/config"
	"github.com/zeusync/skirmish/internal/core/events/bus"
	"github.com/zeusync/skirmish/internal/core/materials"
	"github.com/zeusync/skirmish/internal/core/observability/log"
	"github.com/zeusync/skirmish/internal/core/observability/metrics"
	"github.com/zeusync/skirmish/internal/core/world"
)

// App is everything the runner needs: the world and its instrumentation.
type App struct {
	World   *world.World
	Metrics *metrics.Collector
	Logger  *log.Logger
}

// ProviderSet assembles an App from a loaded config.
var ProviderSet = wire.NewSet(
	ProvideLogger,
	wire.Bind(new(log.Log), new(*log.Logger)),
	ProvideMetrics,
	ProvideBus,
	ProvideRegistry,
	ProvideWorld,
	wire.Struct(new(App), "*"),
)

func ProvideLogger(cfg *config.Config) *log.Logger {
	return log.New(log.ParseLevel(cfg.Log.Level))
}

func ProvideMetrics(cfg *config.Config) (*metrics.Collector, error) {
	return metrics.New("skirmish", cfg.MetricsInterval())
}

// ProvideBus returns an event bus observed by the collector.
func ProvideBus(collector *metrics.Collector) bus.EventBus {
	b := bus.New()
	b.AddObserver(collector)
	return b
}

func ProvideRegistry(cfg *config.Config) (*materials.Registry, error) {
	return cfg.Registry()
}

func ProvideWorld(cfg *config.Config, reg *materials.Registry, events bus.EventBus, logger log.Log) (*world.World, error) {
	return world.New(cfg.WorldOptions(), reg, events, logger)
}
