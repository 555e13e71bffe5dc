package component

import (
	"github.com/lumenfield/litcollect/internal/core/ecs"
	"github.com/lumenfield/litcollect/internal/geom"
)

// Transform is the world placement of an entity. Yaw is in degrees about the
// up axis. Scale is uniform.
type Transform struct {
	Position geom.Vec3
	Yaw      float64
	Scale    float64
}

// Tag classifies what a collider belongs to.
type Tag uint8

const (
	TagNone Tag = iota
	TagPlayer
	TagItem
)

func (t Tag) String() string {
	switch t {
	case TagPlayer:
		return "player"
	case TagItem:
		return "item"
	}
	return "none"
}

// Collider is a sphere of Radius at unit scale, centred on the Transform.
type Collider struct {
	Radius float64
	Tag    Tag
}

// WorldRadius returns the collider radius after applying the transform's scale.
func (c *Collider) WorldRadius(tr *Transform) float64 {
	if tr == nil || tr.Scale == 0 {
		return c.Radius
	}
	return c.Radius * tr.Scale
}

// Contact describes the other party of a physical overlap.
type Contact struct {
	ID  ecs.EntityID
	Tag Tag
}
