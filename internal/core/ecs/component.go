package ecs

// Store is the type-erased side of a component store. The Registry uses it to
// strip a destroyed entity out of every store it was registered with.
type Store interface {
	Remove(id EntityID) bool
	Has(id EntityID) bool
}

// PtrComponentStore keeps one *T per entity. A stored pointer stays valid
// until the component is removed, so an item may keep its own Transform.
type PtrComponentStore[T any] struct {
	data map[EntityID]*T
}

func NewPtrComponentStore[T any]() *PtrComponentStore[T] {
	return &PtrComponentStore[T]{data: make(map[EntityID]*T)}
}

// Put stores a copy of v for id and returns the stored pointer.
func (s *PtrComponentStore[T]) Put(id EntityID, v T) *T {
	p := &v
	s.data[id] = p
	return p
}

func (s *PtrComponentStore[T]) Set(id EntityID, c *T) { s.data[id] = c }

func (s *PtrComponentStore[T]) Get(id EntityID) (*T, bool) {
	c, ok := s.data[id]
	return c, ok
}

func (s *PtrComponentStore[T]) Has(id EntityID) bool {
	_, ok := s.data[id]
	return ok
}

// Remove drops id's component and reports whether there was one.
func (s *PtrComponentStore[T]) Remove(id EntityID) bool {
	if _, ok := s.data[id]; !ok {
		return false
	}
	delete(s.data, id)
	return true
}

func (s *PtrComponentStore[T]) Len() int { return len(s.data) }

// Each visits every component. Iteration order is unspecified.
func (s *PtrComponentStore[T]) Each(fn func(EntityID, *T)) {
	for id, c := range s.data {
		fn(id, c)
	}
}
