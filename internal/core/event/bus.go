package event

import "reflect"

// Bus is a synchronous typed publish/subscribe channel. Publish invokes every
// handler subscribed to the event's type, in subscription order, before it
// returns. A handler may publish further events; those are delivered
// depth-first. Accessed only from the game loop goroutine; no locks.
//
// A Bus is owned by whoever created it. ClearAll is reserved for that owner.
type Bus struct {
	handlers map[reflect.Type][]*Subscription
}

func NewBus() *Bus {
	return &Bus{
		handlers: make(map[reflect.Type][]*Subscription),
	}
}

// Subscription is the handle returned by Subscribe. Releasing it removes the
// handler from the bus.
type Subscription struct {
	bus      *Bus
	typ      reflect.Type
	fn       any
	released bool
}

// Subscribe registers a typed handler for events of type T.
func Subscribe[T any](b *Bus, fn func(T)) *Subscription {
	t := reflect.TypeFor[T]()
	s := &Subscription{bus: b, typ: t, fn: fn}
	b.handlers[t] = append(b.handlers[t], s)
	return s
}

// Publish delivers event to every current subscriber of T. Handlers added
// while a publish is in flight are not called for that event; handlers
// released in flight are skipped if they have not run yet.
func Publish[T any](b *Bus, event T) {
	hs := b.handlers[reflect.TypeFor[T]()]
	for _, s := range hs {
		if s.released {
			continue
		}
		s.fn.(func(T))(event)
	}
}

// Release unsubscribes the handler. Safe to call more than once.
func (s *Subscription) Release() {
	if s == nil || s.released {
		return
	}
	s.released = true
	hs := s.bus.handlers[s.typ]
	// Copy-on-write so an in-flight Publish keeps iterating its own slice.
	kept := make([]*Subscription, 0, len(hs))
	for _, h := range hs {
		if h != s {
			kept = append(kept, h)
		}
	}
	if len(kept) == 0 {
		delete(s.bus.handlers, s.typ)
		return
	}
	s.bus.handlers[s.typ] = kept
}

// Released reports whether the subscription is no longer active.
func (s *Subscription) Released() bool { return s.released }

// ClearAll releases every subscription for every event type.
func (b *Bus) ClearAll() {
	for _, hs := range b.handlers {
		for _, s := range hs {
			s.released = true
		}
	}
	b.handlers = make(map[reflect.Type][]*Subscription)
}

// HandlerCount returns the number of live subscriptions across all types.
func (b *Bus) HandlerCount() int {
	n := 0
	for _, hs := range b.handlers {
		n += len(hs)
	}
	return n
}

// Subscriptions groups the handles a component acquires so they can be
// released together when the component is disabled.
type Subscriptions struct {
	subs []*Subscription
}

func (g *Subscriptions) Add(s ...*Subscription) {
	g.subs = append(g.subs, s...)
}

// Active reports whether the group holds any handles.
func (g *Subscriptions) Active() bool { return len(g.subs) > 0 }

// ReleaseAll releases and forgets every handle in the group.
func (g *Subscriptions) ReleaseAll() {
	for _, s := range g.subs {
		s.Release()
	}
	g.subs = g.subs[:0]
}
