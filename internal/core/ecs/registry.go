package ecs

// Registry lists the stores an entity's components can live in. World
// consults it when flushing the destroy queue.
type Registry struct {
	stores []Store
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds store. Registering the same store twice keeps one entry, so
// a destroyed entity is never stripped from a store more than once.
func (r *Registry) Register(store Store) {
	for _, s := range r.stores {
		if s == store {
			return
		}
	}
	r.stores = append(r.stores, store)
}

// RemoveAll strips id from every store and returns how many held it.
func (r *Registry) RemoveAll(id EntityID) int {
	n := 0
	for _, s := range r.stores {
		if s.Remove(id) {
			n++
		}
	}
	return n
}

// Holding returns how many registered stores have a component for id.
func (r *Registry) Holding(id EntityID) int {
	n := 0
	for _, s := range r.stores {
		if s.Has(id) {
			n++
		}
	}
	return n
}

func (r *Registry) Len() int { return len(r.stores) }
