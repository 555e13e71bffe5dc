package system

import (
	"time"

	"go.uber.org/zap"

	coresys "github.com/lumenfield/litcollect/internal/core/system"
	"github.com/lumenfield/litcollect/internal/geom"
	"github.com/lumenfield/litcollect/internal/world"
)

// CommandKind identifies a queued player command.
type CommandKind uint8

const (
	CmdMove CommandKind = iota + 1
	CmdReset
)

// Command is one unit of front-end input. Dir is a unit-ish direction on the
// ground plane; the input system scales it by player speed and frame time.
type Command struct {
	Kind CommandKind
	Dir  geom.Vec3
}

// Trigger is a polled reset control. Pressed reports true once per press.
type Trigger interface {
	Pressed() bool
}

// Edge turns a level-sensitive control into a Trigger that fires only on the
// transition from released to held.
type Edge struct {
	level func() bool
	held  bool
}

func NewEdge(level func() bool) *Edge {
	return &Edge{level: level}
}

func (e *Edge) Pressed() bool {
	down := e.level()
	fired := down && !e.held
	e.held = down
	return fired
}

// InputSystem drains the front-end command queue and polls the reset trigger.
// Anchored lights are moved to the player afterwards so the illumination
// cast sees this frame's position. Phase 0 (Input).
type InputSystem struct {
	commands   <-chan Command
	trigger    Trigger
	maxPerTick int
	player     *world.Player
	speed      float64
	lights     world.LightPair
	reset      func()
	log        *zap.Logger
}

func NewInputSystem(
	commands <-chan Command,
	trigger Trigger,
	maxPerTick int,
	player *world.Player,
	speed float64,
	lights world.LightPair,
	reset func(),
	log *zap.Logger,
) *InputSystem {
	return &InputSystem{
		commands:   commands,
		trigger:    trigger,
		maxPerTick: maxPerTick,
		player:     player,
		speed:      speed,
		lights:     lights,
		reset:      reset,
		log:        log,
	}
}

func (s *InputSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *InputSystem) Update(dt time.Duration) {
	resetRequested := false

drain:
	for i := 0; i < s.maxPerTick; i++ {
		select {
		case cmd, ok := <-s.commands:
			if !ok {
				s.commands = nil
				break drain
			}
			switch cmd.Kind {
			case CmdMove:
				if s.player != nil {
					s.player.Move(cmd.Dir.Scale(s.speed * dt.Seconds()))
				}
			case CmdReset:
				resetRequested = true
			default:
				s.log.Debug("unknown input command", zap.Uint8("kind", uint8(cmd.Kind)))
			}
		default:
			break drain
		}
	}

	if s.trigger != nil && s.trigger.Pressed() {
		resetRequested = true
	}
	if resetRequested && s.reset != nil {
		s.reset()
	}

	if s.player != nil {
		s.lights.Follow(s.player.Position())
	}
}
