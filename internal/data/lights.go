package data

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lumenfield/litcollect/internal/geom"
	"github.com/lumenfield/litcollect/internal/world"
)

// LightEntry defines one scene light. With follow_player set, position is an
// offset from the player rather than a world position.
type LightEntry struct {
	Name         string     `yaml:"name"`
	Position     [3]float64 `yaml:"position"`
	Forward      [3]float64 `yaml:"forward"`
	FollowPlayer bool       `yaml:"follow_player"`
	Note         string     `yaml:"note"`
}

// LightRig is the ordered pair of illumination sources shared by all items.
type LightRig struct {
	entries []LightEntry
	pair    world.LightPair
}

// LoadLightRig loads lights.yaml. The file must name one or two lights; a
// missing second light leaves that slot empty.
func LoadLightRig(path string) (*LightRig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read light rig: %w", err)
	}
	var entries []LightEntry
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse light rig: %w", err)
	}
	return NewLightRig(entries)
}

// NewLightRig validates entries and builds the shared light pair.
func NewLightRig(entries []LightEntry) (*LightRig, error) {
	if len(entries) == 0 {
		return nil, errors.New("light rig: no lights defined")
	}
	if len(entries) > len(world.LightPair{}) {
		return nil, fmt.Errorf("light rig: %d lights defined, at most 2 supported", len(entries))
	}
	r := &LightRig{entries: entries}
	for i := range entries {
		e := &entries[i]
		fwd := vec(e.Forward)
		if fwd.IsZero() {
			return nil, fmt.Errorf("light rig: light %q has zero forward vector", e.Name)
		}
		l := world.NewLight(e.Name, vec(e.Position), fwd)
		if e.FollowPlayer {
			l.Offset = l.Position
			l.Anchored = true
		}
		r.pair[i] = l
	}
	return r, nil
}

// Pair returns the shared lights. Every call returns the same pointers.
func (r *LightRig) Pair() world.LightPair { return r.pair }

// Count returns the number of lights loaded.
func (r *LightRig) Count() int { return len(r.entries) }

func vec(a [3]float64) geom.Vec3 { return geom.V(a[0], a[1], a[2]) }
