package world

import (
	"github.com/lumenfield/litcollect/internal/component"
	"github.com/lumenfield/litcollect/internal/core/ecs"
	"github.com/lumenfield/litcollect/internal/geom"
)

// Player is the actor that collects items on contact. Locomotion is driven
// from outside the core; the core only reads Position.
type Player struct {
	id ecs.EntityID
	tr *component.Transform
}

// NewPlayer places the player in the scene with a sphere collider.
func NewPlayer(s *State, pos geom.Vec3, radius float64) *Player {
	id, tr := s.Spawn(
		component.Transform{Position: pos, Scale: 1},
		component.Collider{Radius: radius, Tag: component.TagPlayer},
	)
	return &Player{id: id, tr: tr}
}

func (p *Player) EntityID() ecs.EntityID { return p.id }
func (p *Player) Position() geom.Vec3    { return p.tr.Position }

func (p *Player) SetPosition(pos geom.Vec3) { p.tr.Position = pos }

// Move translates the player by delta.
func (p *Player) Move(delta geom.Vec3) { p.tr.Position = p.tr.Position.Add(delta) }
