package game

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lumenfield/litcollect/internal/component"
	"github.com/lumenfield/litcollect/internal/config"
	"github.com/lumenfield/litcollect/internal/core/event"
	coresys "github.com/lumenfield/litcollect/internal/core/system"
	"github.com/lumenfield/litcollect/internal/geom"
	"github.com/lumenfield/litcollect/internal/item"
	"github.com/lumenfield/litcollect/internal/physics"
	"github.com/lumenfield/litcollect/internal/system"
	"github.com/lumenfield/litcollect/internal/world"
)

// maxCommandsPerTick bounds how much queued front-end input one frame drains.
const maxCommandsPerTick = 32

// Deps is everything the controller needs from the outside. Only Config and
// Log are required.
type Deps struct {
	Config   *config.Config
	Log      *zap.Logger
	Lights   world.LightPair
	Roller   item.ValueRoller // nil = built-in roll
	Rand     *rand.Rand       // nil = time-seeded
	Sink     system.Sink      // nil = stats rendered but not shown
	Commands <-chan system.Command
	Trigger  system.Trigger
}

// Controller is the composition root of one game session. It owns the bus,
// the scene and every system, and drives them one frame per Tick. All
// methods must be called from the game loop goroutine.
type Controller struct {
	cfg *config.Config
	log *zap.Logger

	bus    *event.Bus
	world  *world.State
	space  *physics.Space
	runner *coresys.Runner
	player *world.Player
	lights world.LightPair

	spawner *system.SpawnSystem
	score   *system.ScoreSystem
	stats   *system.StatsSystem

	round   uuid.UUID
	started bool
	closed  bool
}

func New(d Deps) (*Controller, error) {
	if d.Config == nil {
		return nil, errors.New("game: nil config")
	}
	if d.Log == nil {
		return nil, errors.New("game: nil logger")
	}
	cfg := d.Config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("game: invalid config: %w", err)
	}
	rng := d.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	c := &Controller{
		cfg:    cfg,
		log:    d.Log,
		bus:    event.NewBus(),
		world:  world.NewState(),
		runner: coresys.NewRunner(),
		lights: d.Lights,
		round:  uuid.New(),
	}
	c.space = physics.NewSpace(c.world)
	start := cfg.Player.Start
	c.player = world.NewPlayer(c.world, geom.V(start[0], start[1], start[2]), cfg.Player.Radius)
	c.lights.Follow(c.player.Position())

	factory := &item.Factory{
		Bus:    c.bus,
		Rand:   rng,
		Roller: d.Roller,
		Caster: c.space,
		Settings: item.Settings{
			RotationSpeed: cfg.Item.RotationSpeed,
			SpinJitter:    cfg.Item.SpinJitter,
			CastDistance:  cfg.Item.LightCastDistance,
			CastRadius:    cfg.Item.LightCastRadius,
		},
	}
	c.spawner = system.NewSpawnSystem(cfg, c.world, c.bus, factory, c.lights, rng, c.log)
	c.score = system.NewScoreSystem(c.bus, c.log)
	c.stats = system.NewStatsSystem(c.bus, c.world, c.spawner, c.player, d.Sink, cfg.Display.MaxItems)

	c.runner.Register(system.NewInputSystem(d.Commands, d.Trigger, maxCommandsPerTick, c.player, cfg.Player.Speed, c.lights, c.Reset, c.log))
	c.runner.Register(c.spawner)
	c.runner.Register(system.NewItemSystem(c.spawner))
	c.runner.Register(system.NewContactSystem(c.space, c.world, c.spawner, c.player.EntityID()))
	c.runner.Register(c.stats)
	c.runner.Register(system.NewCleanupSystem(c.world, c.log))

	c.spawner.Enable()
	c.score.Enable()
	c.stats.Enable()
	return c, nil
}

// Start arms the spawn cycle. Later calls are ignored; use Reset to restart.
func (c *Controller) Start() {
	if c.started || c.closed {
		return
	}
	c.started = true
	c.spawner.Start()
	c.log.Info("round started", zap.String("round", c.round.String()))
}

// Tick advances the simulation by dt.
func (c *Controller) Tick(dt time.Duration) {
	if c.closed {
		return
	}
	c.runner.Tick(dt)
}

// Reset clears the population and the score and restarts the spawn cycle
// with a fresh round id.
func (c *Controller) Reset() {
	if c.closed {
		return
	}
	prev := c.round
	c.round = uuid.New()
	c.started = true
	event.Publish(c.bus, event.GameReset{})
	c.log.Info("round reset",
		zap.String("previous", prev.String()),
		zap.String("round", c.round.String()),
	)
}

// Close detaches every subscriber. The controller is inert afterwards.
func (c *Controller) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.spawner.Disable()
	c.score.Disable()
	c.stats.Disable()
	c.bus.ClearAll()
	c.log.Info("controller closed",
		zap.String("round", c.round.String()),
		zap.Int("score", c.score.Total()),
	)
}

// Bus exposes the event bus so front ends can subscribe to game signals.
func (c *Controller) Bus() *event.Bus { return c.bus }

func (c *Controller) Score() int                    { return c.score.Total() }
func (c *Controller) Population() int               { return c.spawner.Count() }
func (c *Controller) SpawnState() system.SpawnState { return c.spawner.State() }
func (c *Controller) StatsLine() string             { return c.stats.Last() }
func (c *Controller) Round() uuid.UUID              { return c.round }
func (c *Controller) Player() *world.Player         { return c.player }
func (c *Controller) Lights() world.LightPair       { return c.lights }

// EachItem visits every live collectible.
func (c *Controller) EachItem(fn func(component.Collectible)) {
	c.spawner.Each(fn)
}
