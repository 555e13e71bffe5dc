package world

import "github.com/lumenfield/litcollect/internal/geom"

// Light is a directional cast source: a position and the direction it faces.
// An anchored light keeps Offset relative to whatever it follows.
type Light struct {
	Name     string
	Position geom.Vec3
	Forward  geom.Vec3
	Offset   geom.Vec3
	Anchored bool
}

// LightPair is the shared illumination rig handed to every item at spawn.
// Items only read it; either slot may be nil.
type LightPair [2]*Light

// NewLight builds a fixed light with a normalized forward vector.
func NewLight(name string, pos, forward geom.Vec3) *Light {
	return &Light{Name: name, Position: pos, Forward: forward.Normalize()}
}

// Follow moves every anchored light to anchor plus its offset.
func (p LightPair) Follow(anchor geom.Vec3) {
	for _, l := range p {
		if l != nil && l.Anchored {
			l.Position = anchor.Add(l.Offset)
		}
	}
}
