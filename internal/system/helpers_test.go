package system

import (
	"math/rand"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/lumenfield/litcollect/internal/component"
	"github.com/lumenfield/litcollect/internal/config"
	"github.com/lumenfield/litcollect/internal/core/event"
	"github.com/lumenfield/litcollect/internal/item"
	"github.com/lumenfield/litcollect/internal/physics"
	"github.com/lumenfield/litcollect/internal/world"
)

type harness struct {
	cfg     *config.Config
	world   *world.State
	bus     *event.Bus
	spawner *SpawnSystem
	score   *ScoreSystem
	cleanup *CleanupSystem
	spawned int
}

func scenarioConfig() *config.Config {
	cfg := config.Defaults()
	cfg.Spawn.InitialCount = 3
	cfg.Trickle.MaxPopulation = 5
	cfg.Trickle.Interval = time.Second
	cfg.Timing.StartDelay = 500 * time.Millisecond
	return cfg
}

func newHarness(t *testing.T, cfg *config.Config) *harness {
	t.Helper()
	log := zaptest.NewLogger(t)
	ws := world.NewState()
	bus := event.NewBus()
	rng := rand.New(rand.NewSource(7))
	factory := &item.Factory{
		Bus:    bus,
		Rand:   rng,
		Caster: physics.NewSpace(ws),
		Settings: item.Settings{
			RotationSpeed: cfg.Item.RotationSpeed,
			SpinJitter:    cfg.Item.SpinJitter,
			CastDistance:  cfg.Item.LightCastDistance,
			CastRadius:    cfg.Item.LightCastRadius,
		},
	}
	h := &harness{
		cfg:     cfg,
		world:   ws,
		bus:     bus,
		spawner: NewSpawnSystem(cfg, ws, bus, factory, world.LightPair{}, rng, log),
		score:   NewScoreSystem(bus, log),
		cleanup: NewCleanupSystem(ws, log),
	}
	event.Subscribe(bus, func(event.ItemSpawned) { h.spawned++ })
	h.spawner.Enable()
	h.score.Enable()
	return h
}

// tick runs one frame of the spawn and cleanup systems.
func (h *harness) tick(dt time.Duration) {
	h.spawner.Update(dt)
	h.cleanup.Update(dt)
}

func (h *harness) items() []*item.Item {
	var out []*item.Item
	h.spawner.Each(func(c component.Collectible) {
		out = append(out, c.(*item.Item))
	})
	return out
}
