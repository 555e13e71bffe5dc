package system

import (
	"fmt"
	"time"

	"github.com/lumenfield/litcollect/internal/component"
	"github.com/lumenfield/litcollect/internal/core/event"
	coresys "github.com/lumenfield/litcollect/internal/core/system"
	"github.com/lumenfield/litcollect/internal/geom"
	"github.com/lumenfield/litcollect/internal/world"
)

const statsFormat = "Collected:%d/%d Avg:%.1f"

// Sink is the text surface the stats line is written to.
type Sink interface {
	SetText(text string)
}

// PositionProvider exposes the player's current world position.
type PositionProvider interface {
	Position() geom.Vec3
}

type collectedReporter interface {
	Collected() bool
}

// StatsSystem renders the status line every tick. The mean distance is pulled
// live from the population; the total is cached from CountChanged.
// Phase 3 (Output).
type StatsSystem struct {
	bus      *event.Bus
	world    *world.State
	spawner  *SpawnSystem
	player   PositionProvider
	sink     Sink
	maxItems int

	total int
	last  string
	subs  event.Subscriptions
}

func NewStatsSystem(bus *event.Bus, ws *world.State, spawner *SpawnSystem, player PositionProvider, sink Sink, maxItems int) *StatsSystem {
	return &StatsSystem{
		bus:      bus,
		world:    ws,
		spawner:  spawner,
		player:   player,
		sink:     sink,
		maxItems: maxItems,
	}
}

func (s *StatsSystem) Phase() coresys.Phase { return coresys.PhaseOutput }

func (s *StatsSystem) Enable() {
	if s.subs.Active() {
		return
	}
	s.subs.Add(event.Subscribe(s.bus, func(e event.CountChanged) {
		s.total = e.Total
		s.render()
	}))
}

func (s *StatsSystem) Disable() {
	s.subs.ReleaseAll()
}

func (s *StatsSystem) Update(_ time.Duration) {
	s.render()
}

// Last returns the most recently rendered line.
func (s *StatsSystem) Last() string { return s.last }

// MeanDistance is the average distance from the player to every active item,
// or 0 when there are none.
func (s *StatsSystem) MeanDistance() float64 {
	if s.player == nil {
		return 0
	}
	origin := s.player.Position()
	sum := 0.0
	n := 0
	s.spawner.Each(func(c component.Collectible) {
		if r, ok := c.(collectedReporter); ok && r.Collected() {
			return
		}
		id := c.EntityID()
		if s.world.ECS.PendingDestruction(id) {
			return
		}
		tr := s.world.Transform(id)
		if tr == nil {
			return
		}
		sum += origin.Dist(tr.Position)
		n++
	})
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func (s *StatsSystem) render() {
	s.last = fmt.Sprintf(statsFormat, s.total, s.maxItems, s.MeanDistance())
	if s.sink != nil {
		s.sink.SetText(s.last)
	}
}
