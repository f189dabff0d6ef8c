package injector

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zeusync/skirmish/internal/config"
	"github.com/zeusync/skirmish/internal/core/events/bus"
	"github.com/zeusync/skirmish/internal/core/materials"
)

func TestInitializeApp(t *testing.T) {
	cfg := config.Default()
	cfg.Log.Level = "error"
	cfg.Materials = []materials.Material{{Name: "ice", Density: 0.9}}

	app, err := InitializeApp(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, app.World.Close()) })

	w := app.World
	require.True(t, w.Materials().Sealed())
	_, ok := w.Materials().Get("ice")
	require.True(t, ok)
	require.NotNil(t, app.Logger)

	require.NoError(t, w.Events().Publish(bus.NewEvent(bus.EntityRemoved, 0, 0, nil)))
	require.Equal(t, 1.0, app.Metrics.Counters()[app.Metrics.Key("events", bus.EntityRemoved)],
		"the bus reports to the collector")
}

func TestInitializeApp_BadMaterial(t *testing.T) {
	cfg := config.Default()
	cfg.Materials = []materials.Material{{Density: 1}}

	_, err := InitializeApp(cfg)
	require.ErrorIs(t, err, materials.ErrInvalidMaterial)
}
