package item

import (
	"math/rand"

	"github.com/lumenfield/litcollect/internal/component"
	"github.com/lumenfield/litcollect/internal/core/ecs"
	"github.com/lumenfield/litcollect/internal/core/event"
)

// Factory builds initialized items for the spawn system.
type Factory struct {
	Bus      *event.Bus
	Rand     *rand.Rand
	Roller   ValueRoller
	Caster   Caster
	Settings Settings
}

// Build creates the item for entity id, rolls its value and returns it.
func (f *Factory) Build(id ecs.EntityID, tr *component.Transform, owner component.Owner) component.Collectible {
	it := &Item{
		id:       id,
		tr:       tr,
		bus:      f.Bus,
		rng:      f.Rand,
		roller:   f.Roller,
		caster:   f.Caster,
		owner:    owner,
		settings: f.Settings,
	}
	it.Initialize()
	return it
}
