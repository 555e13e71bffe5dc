package event

import "github.com/lumenfield/litcollect/internal/component"

// CountChanged carries the new running total after every change.
type CountChanged struct {
	Total int
}

// GameReset asks every component to return to its start-of-round state.
type GameReset struct{}

// ItemCollected is published once per collectible, on its collect transition.
type ItemCollected struct {
	Item component.Collectible
}

// ItemSpawned is published for every spawn, burst or trickle.
type ItemSpawned struct {
	Item component.Collectible
}
