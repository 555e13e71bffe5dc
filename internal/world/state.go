package world

import (
	"github.com/lumenfield/litcollect/internal/component"
	"github.com/lumenfield/litcollect/internal/core/ecs"
)

// State is the scene: the ECS world plus the component stores every system
// reads. Accessed only from the game loop goroutine; no locks.
type State struct {
	ECS        *ecs.World
	Transforms *ecs.PtrComponentStore[component.Transform]
	Colliders  *ecs.PtrComponentStore[component.Collider]
}

func NewState() *State {
	s := &State{
		ECS:        ecs.NewWorld(),
		Transforms: ecs.NewPtrComponentStore[component.Transform](),
		Colliders:  ecs.NewPtrComponentStore[component.Collider](),
	}
	s.ECS.Registry().Register(s.Transforms)
	s.ECS.Registry().Register(s.Colliders)
	return s
}

// Spawn creates an entity with a transform and a collider and returns its
// handle together with the stored transform.
func (s *State) Spawn(tr component.Transform, col component.Collider) (ecs.EntityID, *component.Transform) {
	id := s.ECS.CreateEntity()
	s.Colliders.Put(id, col)
	return id, s.Transforms.Put(id, tr)
}

// Transform returns the transform of id, or nil when id has none.
func (s *State) Transform(id ecs.EntityID) *component.Transform {
	tr, _ := s.Transforms.Get(id)
	return tr
}

// Tag returns the collider tag of id, or TagNone.
func (s *State) Tag(id ecs.EntityID) component.Tag {
	if c, ok := s.Colliders.Get(id); ok {
		return c.Tag
	}
	return component.TagNone
}
