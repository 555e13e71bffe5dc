package physics

import (
	"math"
	"sort"

	"github.com/lumenfield/litcollect/internal/component"
	"github.com/lumenfield/litcollect/internal/core/ecs"
	"github.com/lumenfield/litcollect/internal/geom"
	"github.com/lumenfield/litcollect/internal/world"
)

// Space answers geometry queries against every sphere collider in the scene.
type Space struct {
	state *world.State
}

func NewSpace(state *world.State) *Space {
	return &Space{state: state}
}

// Hit is the first collider struck by a cast.
type Hit struct {
	ID       ecs.EntityID
	Distance float64
	Point    geom.Vec3
}

// SphereCast sweeps a sphere of radius from origin along dir for at most
// maxDist and returns the first collider it touches. Colliders already
// overlapping the sphere at the origin are ignored.
func (s *Space) SphereCast(origin, dir geom.Vec3, radius, maxDist float64) (Hit, bool) {
	d := dir.Normalize()
	if d.IsZero() || maxDist <= 0 {
		return Hit{}, false
	}

	best := Hit{Distance: math.Inf(1)}
	found := false
	ecs.Each2(s.state.Transforms, s.state.Colliders, func(id ecs.EntityID, tr *component.Transform, col *component.Collider) {
		if s.state.ECS.PendingDestruction(id) {
			return
		}
		r := col.WorldRadius(tr) + radius
		oc := origin.Sub(tr.Position)
		b := oc.Dot(d)
		c := oc.Dot(oc) - r*r
		if c <= 0 {
			return // starts inside
		}
		disc := b*b - c
		if disc < 0 {
			return
		}
		t := -b - math.Sqrt(disc)
		if t < 0 || t > maxDist {
			return
		}
		if t < best.Distance || (t == best.Distance && id < best.ID) {
			best = Hit{ID: id, Distance: t, Point: origin.Add(d.Scale(t))}
			found = true
		}
	})
	return best, found
}

// Overlapping returns every collider intersecting id's collider, sorted by
// handle. An entity without a collider overlaps nothing.
func (s *Space) Overlapping(id ecs.EntityID) []ecs.EntityID {
	selfTr, ok := s.state.Transforms.Get(id)
	if !ok {
		return nil
	}
	selfCol, ok := s.state.Colliders.Get(id)
	if !ok {
		return nil
	}
	selfR := selfCol.WorldRadius(selfTr)

	var out []ecs.EntityID
	ecs.Each2(s.state.Transforms, s.state.Colliders, func(other ecs.EntityID, tr *component.Transform, col *component.Collider) {
		if other == id || s.state.ECS.PendingDestruction(other) {
			return
		}
		r := selfR + col.WorldRadius(tr)
		if selfTr.Position.DistSq(tr.Position) < r*r {
			out = append(out, other)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
