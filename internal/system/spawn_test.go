package system

import (
	"testing"
	"time"

	"github.com/pixil98/go-testutil"

	"github.com/lumenfield/litcollect/internal/core/event"
)

func TestSpawnSystem_Scenario(t *testing.T) {
	h := newHarness(t, scenarioConfig())
	h.spawner.Start()

	testutil.AssertEqual(t, "state before delay", h.spawner.State(), SpawnWaiting)
	h.tick(200 * time.Millisecond)
	testutil.AssertEqual(t, "population during delay", h.spawner.Count(), 0)

	h.tick(300 * time.Millisecond)
	testutil.AssertEqual(t, "after delay", h.spawner.Count(), 3)
	testutil.AssertEqual(t, "state", h.spawner.State(), SpawnTrickling)

	h.tick(time.Second)
	h.tick(time.Second)
	testutil.AssertEqual(t, "after two trickles", h.spawner.Count(), 5)

	h.tick(time.Second)
	testutil.AssertEqual(t, "third trickle skipped", h.spawner.Count(), 5)

	h.items()[0].Collect(0)
	testutil.AssertEqual(t, "after collect", h.spawner.Count(), 4)

	h.tick(time.Second)
	testutil.AssertEqual(t, "slot refilled", h.spawner.Count(), 5)
	testutil.AssertEqual(t, "spawn events", h.spawned, 6)
}

func TestSpawnSystem_NoSpawnBeforeStart(t *testing.T) {
	h := newHarness(t, scenarioConfig())
	h.tick(10 * time.Second)

	testutil.AssertEqual(t, "population", h.spawner.Count(), 0)
	testutil.AssertEqual(t, "state", h.spawner.State(), SpawnIdle)
}

func TestSpawnSystem_SpawnVolumes(t *testing.T) {
	cfg := scenarioConfig()
	cfg.Spawn.InitialCount = 40
	cfg.Trickle.MaxPopulation = 60
	h := newHarness(t, cfg)
	h.spawner.Start()
	h.tick(cfg.Timing.StartDelay)

	for _, it := range h.items() {
		tr := h.world.Transform(it.EntityID())
		p := tr.Position
		if p.X < -cfg.Spawn.Radius || p.X > cfg.Spawn.Radius || p.Z < -cfg.Spawn.Radius || p.Z > cfg.Spawn.Radius {
			t.Errorf("burst x/z %v outside radius", p)
		}
		if p.Y < cfg.Spawn.HeightMin || p.Y > cfg.Spawn.HeightMax {
			t.Errorf("burst y %v outside band", p.Y)
		}
		if tr.Scale < cfg.Spawn.ScaleMin || tr.Scale > cfg.Spawn.ScaleMax {
			t.Errorf("burst scale %v outside band", tr.Scale)
		}
	}

	burst := make(map[uint64]bool)
	for _, it := range h.items() {
		burst[uint64(it.EntityID())] = true
	}
	for i := 0; i < 10; i++ {
		h.tick(cfg.Trickle.Interval)
	}
	trickled := 0
	for _, it := range h.items() {
		if burst[uint64(it.EntityID())] {
			continue
		}
		trickled++
		tr := h.world.Transform(it.EntityID())
		p := tr.Position
		if p.X < cfg.Trickle.RangeMin || p.X > cfg.Trickle.RangeMax || p.Z < cfg.Trickle.RangeMin || p.Z > cfg.Trickle.RangeMax {
			t.Errorf("trickle x/z %v outside range", p)
		}
		if p.Y < cfg.Trickle.HeightMin || p.Y > cfg.Trickle.HeightMax {
			t.Errorf("trickle y %v outside band", p.Y)
		}
		testutil.AssertEqual(t, "trickle scale", tr.Scale, 1.0)
	}
	testutil.AssertEqual(t, "trickled", trickled, 10)
}

func TestSpawnSystem_CapacityBelowInitial(t *testing.T) {
	cfg := scenarioConfig()
	cfg.Spawn.InitialCount = 6
	cfg.Trickle.MaxPopulation = 4
	h := newHarness(t, cfg)
	h.spawner.Start()

	h.tick(cfg.Timing.StartDelay)
	testutil.AssertEqual(t, "burst ignores cap", h.spawner.Count(), 6)

	for i := 0; i < 5; i++ {
		h.tick(time.Second)
	}
	testutil.AssertEqual(t, "trickle idle", h.spawner.Count(), 6)

	h.items()[0].Collect(0)
	h.items()[0].Collect(0)
	h.items()[0].Collect(0)
	h.tick(time.Second)
	testutil.AssertEqual(t, "still at cap", h.spawner.Count(), 3+1)
}

func TestSpawnSystem_LongFrameDropsMissedAttempts(t *testing.T) {
	cfg := scenarioConfig()
	cfg.Trickle.MaxPopulation = 50
	h := newHarness(t, cfg)
	h.spawner.Start()
	h.tick(cfg.Timing.StartDelay)

	h.tick(3500 * time.Millisecond)
	testutil.AssertEqual(t, "one attempt per frame", h.spawner.Count(), 4)

	h.tick(500 * time.Millisecond)
	testutil.AssertEqual(t, "remainder carried", h.spawner.Count(), 5)
}

func TestSpawnSystem_Reset(t *testing.T) {
	h := newHarness(t, scenarioConfig())
	h.spawner.Start()
	h.tick(500 * time.Millisecond)
	h.tick(time.Second)
	h.items()[0].Collect(0)

	old := h.items()
	event.Publish(h.bus, event.GameReset{})

	testutil.AssertEqual(t, "population cleared", h.spawner.Count(), 0)
	testutil.AssertEqual(t, "state", h.spawner.State(), SpawnWaiting)
	testutil.AssertEqual(t, "score cleared", h.score.Total(), 0)

	h.tick(500 * time.Millisecond)
	testutil.AssertEqual(t, "rebuilt", h.spawner.Count(), 3)
	for _, it := range old {
		if h.world.ECS.Alive(it.EntityID()) {
			t.Errorf("entity %d survived reset", it.EntityID())
		}
	}
}

func TestSpawnSystem_Disable(t *testing.T) {
	h := newHarness(t, scenarioConfig())
	h.spawner.Start()
	h.tick(500 * time.Millisecond)

	h.spawner.Disable()
	h.tick(5 * time.Second)
	testutil.AssertEqual(t, "population kept", h.spawner.Count(), 3)
	testutil.AssertEqual(t, "state", h.spawner.State(), SpawnIdle)

	event.Publish(h.bus, event.GameReset{})
	testutil.AssertEqual(t, "reset ignored while disabled", h.spawner.Count(), 3)

	h.spawner.Enable()
	h.spawner.Enable()
	event.Publish(h.bus, event.GameReset{})
	testutil.AssertEqual(t, "reset after enable", h.spawner.Count(), 0)
}

func TestSpawnSystem_DespawnUnknown(t *testing.T) {
	h := newHarness(t, scenarioConfig())
	h.spawner.Start()
	h.tick(500 * time.Millisecond)

	h.spawner.Despawn(12345)
	testutil.AssertEqual(t, "population", h.spawner.Count(), 3)

	for _, it := range h.items() {
		c, ok := h.spawner.Lookup(it.EntityID())
		testutil.AssertEqual(t, "lookup", ok, true)
		testutil.AssertEqual(t, "same item", c.EntityID(), it.EntityID())
	}
}
