package system

import (
	"time"

	"github.com/lumenfield/litcollect/internal/component"
	"github.com/lumenfield/litcollect/internal/core/ecs"
	coresys "github.com/lumenfield/litcollect/internal/core/system"
	"github.com/lumenfield/litcollect/internal/physics"
	"github.com/lumenfield/litcollect/internal/world"
)

// Contactable receives contact-enter notifications.
type Contactable interface {
	OnContact(other component.Contact)
}

// ContactSystem reports overlap-enter events between a moving actor and the
// population. Only the actor moves, so only its overlaps are tested.
// Phase 2 (PostUpdate).
type ContactSystem struct {
	space    *physics.Space
	world    *world.State
	spawner  *SpawnSystem
	actor    ecs.EntityID
	touching map[ecs.EntityID]struct{}
}

func NewContactSystem(space *physics.Space, ws *world.State, spawner *SpawnSystem, actor ecs.EntityID) *ContactSystem {
	return &ContactSystem{
		space:    space,
		world:    ws,
		spawner:  spawner,
		actor:    actor,
		touching: make(map[ecs.EntityID]struct{}),
	}
}

func (s *ContactSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *ContactSystem) Update(_ time.Duration) {
	overlaps := s.space.Overlapping(s.actor)
	self := component.Contact{ID: s.actor, Tag: s.world.Tag(s.actor)}

	current := make(map[ecs.EntityID]struct{}, len(overlaps))
	for _, id := range overlaps {
		current[id] = struct{}{}
		if _, already := s.touching[id]; already {
			continue
		}
		c, ok := s.spawner.Lookup(id)
		if !ok {
			continue
		}
		if ct, ok := c.(Contactable); ok {
			ct.OnContact(self)
		}
	}
	s.touching = current
}
