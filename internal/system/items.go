package system

import (
	"time"

	"github.com/lumenfield/litcollect/internal/component"
	coresys "github.com/lumenfield/litcollect/internal/core/system"
)

// Ticker is implemented by collectibles with per-frame behaviour.
type Ticker interface {
	Tick(dt time.Duration)
}

// ItemSystem advances every live collectible by one frame.
// Phase 1 (Update), registered after SpawnSystem.
type ItemSystem struct {
	spawner *SpawnSystem
}

func NewItemSystem(spawner *SpawnSystem) *ItemSystem {
	return &ItemSystem{spawner: spawner}
}

func (s *ItemSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *ItemSystem) Update(dt time.Duration) {
	s.spawner.Each(func(c component.Collectible) {
		if t, ok := c.(Ticker); ok {
			t.Tick(dt)
		}
	})
}
