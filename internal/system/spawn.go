package system

import (
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/lumenfield/litcollect/internal/component"
	"github.com/lumenfield/litcollect/internal/config"
	"github.com/lumenfield/litcollect/internal/core/ecs"
	"github.com/lumenfield/litcollect/internal/core/event"
	coresys "github.com/lumenfield/litcollect/internal/core/system"
	"github.com/lumenfield/litcollect/internal/geom"
	"github.com/lumenfield/litcollect/internal/world"
)

// SpawnState is the scheduler's position in its start-up/trickle cycle.
type SpawnState int

const (
	SpawnIdle         SpawnState = iota // not started, or disabled
	SpawnWaiting                        // counting down the start delay
	SpawnInitialBurst                   // emitting the initial population
	SpawnTrickling                      // periodic capacity-gated spawns
)

func (s SpawnState) String() string {
	switch s {
	case SpawnWaiting:
		return "waiting"
	case SpawnInitialBurst:
		return "initial-burst"
	case SpawnTrickling:
		return "trickling"
	}
	return "idle"
}

// Factory builds a collectible for a freshly created entity.
type Factory interface {
	Build(id ecs.EntityID, tr *component.Transform, owner component.Owner) component.Collectible
}

// Illuminated is implemented by collectibles that read the shared light rig.
type Illuminated interface {
	SetIlluminationSources(lights world.LightPair)
}

// SpawnSystem owns the item population. After the start delay it spawns the
// initial burst, then attempts one trickle spawn per interval while the
// population is below the cap. A reset tears the population down and starts
// the cycle over. Phase 1 (Update).
type SpawnSystem struct {
	spawn          config.SpawnConfig
	trickle        config.TrickleConfig
	startDelay     time.Duration
	colliderRadius float64

	world   *world.State
	bus     *event.Bus
	factory Factory
	lights  world.LightPair
	rng     *rand.Rand
	log     *zap.Logger

	population []component.Collectible
	index      map[ecs.EntityID]int

	state          SpawnState
	delayLeft      time.Duration
	trickleElapsed time.Duration

	subs event.Subscriptions
}

func NewSpawnSystem(cfg *config.Config, ws *world.State, bus *event.Bus, factory Factory, lights world.LightPair, rng *rand.Rand, log *zap.Logger) *SpawnSystem {
	if w := cfg.CapacityWarning(); w != "" {
		log.Warn("spawn capacity misconfigured", zap.String("detail", w))
	}
	return &SpawnSystem{
		spawn:          cfg.Spawn,
		trickle:        cfg.Trickle,
		startDelay:     cfg.Timing.StartDelay,
		colliderRadius: cfg.Item.ColliderRadius,
		world:          ws,
		bus:            bus,
		factory:        factory,
		lights:         lights,
		rng:            rng,
		log:            log,
		population:     make([]component.Collectible, 0, cfg.Trickle.MaxPopulation),
		index:          make(map[ecs.EntityID]int, cfg.Trickle.MaxPopulation),
	}
}

func (s *SpawnSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

// Enable subscribes to reset signals.
func (s *SpawnSystem) Enable() {
	if s.subs.Active() {
		return
	}
	s.subs.Add(event.Subscribe(s.bus, func(event.GameReset) { s.onReset() }))
}

// Disable releases subscriptions and cancels any pending delay or trickle.
// Existing items are kept.
func (s *SpawnSystem) Disable() {
	s.subs.ReleaseAll()
	s.state = SpawnIdle
}

// Start arms the start delay; the initial burst follows once it elapses.
func (s *SpawnSystem) Start() {
	s.arm()
}

func (s *SpawnSystem) arm() {
	s.state = SpawnWaiting
	s.delayLeft = s.startDelay
	s.trickleElapsed = 0
}

func (s *SpawnSystem) Update(dt time.Duration) {
	switch s.state {
	case SpawnWaiting:
		s.delayLeft -= dt
		if s.delayLeft > 0 {
			return
		}
		s.spawnInitial()
		s.state = SpawnTrickling
		s.trickleElapsed = 0
	case SpawnTrickling:
		s.trickleElapsed += dt
		if s.trickleElapsed < s.trickle.Interval {
			return
		}
		// One attempt per tick; intervals missed by a long frame are dropped.
		s.trickleElapsed = (s.trickleElapsed - s.trickle.Interval) % s.trickle.Interval
		s.trickleOnce()
	}
}

func (s *SpawnSystem) spawnInitial() {
	s.state = SpawnInitialBurst
	c := s.spawn
	for i := 0; i < c.InitialCount; i++ {
		pos := geom.V(
			s.uniform(-c.Radius, c.Radius),
			s.uniform(c.HeightMin, c.HeightMax),
			s.uniform(-c.Radius, c.Radius),
		)
		s.spawnAt(pos, s.uniform(c.ScaleMin, c.ScaleMax))
	}
	s.log.Info("initial burst spawned", zap.Int("count", c.InitialCount), zap.Int("population", len(s.population)))
}

func (s *SpawnSystem) trickleOnce() {
	if len(s.population) >= s.trickle.MaxPopulation {
		s.log.Debug("trickle spawn skipped at capacity", zap.Int("population", len(s.population)))
		return
	}
	c := s.trickle
	pos := geom.V(
		s.uniform(c.RangeMin, c.RangeMax),
		s.uniform(c.HeightMin, c.HeightMax),
		s.uniform(c.RangeMin, c.RangeMax),
	)
	s.spawnAt(pos, 1)
}

func (s *SpawnSystem) spawnAt(pos geom.Vec3, scale float64) {
	id, tr := s.world.Spawn(
		component.Transform{Position: pos, Scale: scale},
		component.Collider{Radius: s.colliderRadius, Tag: component.TagItem},
	)
	c := s.factory.Build(id, tr, s)
	if il, ok := c.(Illuminated); ok {
		il.SetIlluminationSources(s.lights)
	}
	s.index[id] = len(s.population)
	s.population = append(s.population, c)
	event.Publish(s.bus, event.ItemSpawned{Item: c})
}

func (s *SpawnSystem) uniform(lo, hi float64) float64 {
	return lo + s.rng.Float64()*(hi-lo)
}

// Despawn removes id from the population and queues its entity for
// destruction at the end of the tick. Unknown handles are ignored.
func (s *SpawnSystem) Despawn(id ecs.EntityID) {
	i, ok := s.index[id]
	if !ok {
		return
	}
	last := len(s.population) - 1
	if i != last {
		moved := s.population[last]
		s.population[i] = moved
		s.index[moved.EntityID()] = i
	}
	s.population[last] = nil
	s.population = s.population[:last]
	delete(s.index, id)
	s.world.ECS.MarkForDestruction(id)
}

func (s *SpawnSystem) onReset() {
	n := len(s.population)
	for _, c := range s.population {
		s.world.ECS.MarkForDestruction(c.EntityID())
	}
	clear(s.population)
	s.population = s.population[:0]
	clear(s.index)
	s.arm()
	s.log.Info("population reset", zap.Int("destroyed", n))
}

// Count returns the current population size.
func (s *SpawnSystem) Count() int { return len(s.population) }

// State returns the scheduler state.
func (s *SpawnSystem) State() SpawnState { return s.state }

// Each visits every live collectible. fn must not despawn.
func (s *SpawnSystem) Each(fn func(component.Collectible)) {
	for _, c := range s.population {
		fn(c)
	}
}

// Lookup returns the collectible for id if it is part of the population.
func (s *SpawnSystem) Lookup(id ecs.EntityID) (component.Collectible, bool) {
	i, ok := s.index[id]
	if !ok {
		return nil, false
	}
	return s.population[i], true
}
