package item

import (
	"math/rand"
	"time"

	"github.com/lumenfield/litcollect/internal/component"
	"github.com/lumenfield/litcollect/internal/core/ecs"
	"github.com/lumenfield/litcollect/internal/core/event"
	"github.com/lumenfield/litcollect/internal/geom"
	"github.com/lumenfield/litcollect/internal/physics"
	"github.com/lumenfield/litcollect/internal/world"
)

// Spin bounds in degrees per second. The rate is redrawn every tick.
const (
	MinSpin = 10.0
	MaxSpin = 360.0
)

// Caster runs the illumination sphere cast. physics.Space implements it.
type Caster interface {
	SphereCast(origin, dir geom.Vec3, radius, maxDist float64) (physics.Hit, bool)
}

// Settings are the per-item tunables taken from config.
type Settings struct {
	RotationSpeed float64 // deg/s, used when SpinJitter is off
	SpinJitter    bool
	CastDistance  float64
	CastRadius    float64
}

// Item is a collectible pickup with a hidden value revealed under light.
type Item struct {
	id       ecs.EntityID
	tr       *component.Transform
	bus      *event.Bus
	rng      *rand.Rand
	roller   ValueRoller
	caster   Caster
	owner    component.Owner
	settings Settings
	lights   world.LightPair

	value       int
	class       Class
	initialized bool
	collected   bool
	lit         bool
}

var _ component.Collectible = (*Item)(nil)

func (it *Item) EntityID() ecs.EntityID { return it.id }
func (it *Item) CollectValue() int      { return it.value }
func (it *Item) Class() Class           { return it.class }
func (it *Item) Collected() bool        { return it.collected }
func (it *Item) Lit() bool              { return it.lit }
func (it *Item) Position() geom.Vec3    { return it.tr.Position }
func (it *Item) Yaw() float64           { return it.tr.Yaw }

// Color is the class color while lit, white otherwise.
func (it *Item) Color() Color {
	if it.lit {
		return it.class.Color()
	}
	return ColorWhite
}

// Initialize rolls the item's value. Only the first call has an effect.
func (it *Item) Initialize() {
	if it.initialized {
		return
	}
	it.initialized = true
	roller := it.roller
	if roller == nil {
		roller = RollFunc(DefaultRoll)
	}
	it.value, it.class = roller.Roll(it.rng.Float64())
	it.collected = false
	it.lit = false
}

// SetIlluminationSources stores the shared light rig. The item never owns it.
func (it *Item) SetIlluminationSources(lights world.LightPair) {
	it.lights = lights
}

// Tick spins the item and re-evaluates whether either light reveals it.
func (it *Item) Tick(dt time.Duration) {
	if it.collected {
		return
	}
	speed := it.settings.RotationSpeed
	if it.settings.SpinJitter {
		speed = MinSpin + it.rng.Float64()*(MaxSpin-MinSpin)
	}
	it.tr.Yaw = geom.WrapDegrees(it.tr.Yaw + speed*dt.Seconds())
	it.lit = it.litBy(it.lights[0]) || it.litBy(it.lights[1])
}

// litBy reports whether a sphere cast from l hits this item before any other
// collider. Missing lights or a missing caster read as unlit.
func (it *Item) litBy(l *world.Light) bool {
	if l == nil || it.caster == nil {
		return false
	}
	hit, ok := it.caster.SphereCast(l.Position, l.Forward, it.settings.CastRadius, it.settings.CastDistance)
	return ok && hit.ID == it.id
}

// OnContact collects the item when the player touches it.
func (it *Item) OnContact(other component.Contact) {
	if other.Tag != component.TagPlayer {
		return
	}
	it.Collect(other.ID)
}

// Collect marks the item collected, announces it and hands it back to its
// owner for destruction. Subsequent calls do nothing.
func (it *Item) Collect(_ ecs.EntityID) {
	if it.collected {
		return
	}
	it.collected = true
	it.lit = false
	if it.bus != nil {
		event.Publish(it.bus, event.ItemCollected{Item: it})
	}
	if it.owner != nil {
		it.owner.Despawn(it.id)
	}
}
