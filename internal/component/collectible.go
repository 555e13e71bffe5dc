package component

import "github.com/lumenfield/litcollect/internal/core/ecs"

// Collectible is the capability shared by every pickup variant. The spawn and
// score systems depend only on this interface.
type Collectible interface {
	EntityID() ecs.EntityID
	// CollectValue is the signed score awarded on collection. Fixed at
	// Initialize and never mutated afterwards.
	CollectValue() int
	// Collect performs the one-shot collect transition. Repeat calls are no-ops.
	Collect(collector ecs.EntityID)
	Initialize()
}

// Owner is the component allowed to destroy a collectible. A collectible
// asks its owner to despawn it after the collect transition.
type Owner interface {
	Despawn(id ecs.EntityID)
}
