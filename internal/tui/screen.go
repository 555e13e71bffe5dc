package tui

import (
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lumenfield/litcollect/internal/component"
	"github.com/lumenfield/litcollect/internal/geom"
	"github.com/lumenfield/litcollect/internal/item"
	"github.com/lumenfield/litcollect/internal/system"
	"github.com/lumenfield/litcollect/internal/world"
)

const (
	itemGlyph   = '●'
	playerGlyph = '@'
	lightGlyph  = '*'
	statusRow   = 0
	helpText    = "arrows/wasd move  space reset  esc quit"

	// DefaultResetRelease outlasts the usual terminal autorepeat delay
	// (250-500ms) so a held key reads as one continuous press.
	DefaultResetRelease = 600 * time.Millisecond
)

// View is the read side of a running game the screen can draw.
type View interface {
	EachItem(fn func(component.Collectible))
	Player() *world.Player
	Lights() world.LightPair
}

type plotted interface {
	Position() geom.Vec3
	Color() item.Color
}

// Screen is the terminal front end: a top-down plot of the arena with the
// stats line on the first row. It is the stats sink and the source of player
// commands. Draw and Handle run on the game loop goroutine.
type Screen struct {
	screen   tcell.Screen
	commands chan<- system.Command
	extent   float64
	now      func() time.Time

	// ResetRelease is how long after the last reset key event the key still
	// counts as held. Terminals report no key-up, only autorepeat.
	ResetRelease time.Duration

	status    string
	lastReset time.Time
	dropped   int
}

// New wraps an initialized tcell screen. extent is the half-width of the
// arena in world units; everything within ±extent on x and z is plotted.
func New(screen tcell.Screen, commands chan<- system.Command, extent float64) *Screen {
	if extent <= 0 {
		extent = 1
	}
	return &Screen{
		screen:       screen,
		commands:     commands,
		extent:       extent,
		now:          time.Now,
		ResetRelease: DefaultResetRelease,
	}
}

// SetText replaces the status line. It is drawn on the next Draw.
func (s *Screen) SetText(text string) { s.status = text }

// Status returns the last status line received.
func (s *Screen) Status() string { return s.status }

// ResetHeld reports whether the reset key is down: a reset key event arrived
// within the last ResetRelease. Wrap it in system.NewEdge so a held key,
// autorepeat included, resets only once.
func (s *Screen) ResetHeld() bool {
	if s.lastReset.IsZero() {
		return false
	}
	return s.now().Sub(s.lastReset) < s.ResetRelease
}

// Dropped returns how many move commands were discarded on a full queue.
func (s *Screen) Dropped() int { return s.dropped }

// Events pumps PollEvent into a channel until the screen is finalized.
func (s *Screen) Events() <-chan tcell.Event {
	ch := make(chan tcell.Event, 100)
	go func() {
		defer close(ch)
		for {
			ev := s.screen.PollEvent()
			if ev == nil {
				return
			}
			ch <- ev
		}
	}()
	return ch
}

// Handle applies one terminal event. It returns false when the user asked
// to quit.
func (s *Screen) Handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyUp:
			s.send(geom.V(0, 0, 1))
		case tcell.KeyDown:
			s.send(geom.V(0, 0, -1))
		case tcell.KeyLeft:
			s.send(geom.V(-1, 0, 0))
		case tcell.KeyRight:
			s.send(geom.V(1, 0, 0))
		case tcell.KeyRune:
			switch ev.Rune() {
			case ' ':
				s.lastReset = s.now()
			case 'w', 'W':
				s.send(geom.V(0, 0, 1))
			case 's', 'S':
				s.send(geom.V(0, 0, -1))
			case 'a', 'A':
				s.send(geom.V(-1, 0, 0))
			case 'd', 'D':
				s.send(geom.V(1, 0, 0))
			case 'q':
				return false
			}
		}
	case *tcell.EventResize:
		s.screen.Sync()
	}
	return true
}

// send queues a move without blocking the game loop; a full queue drops it.
func (s *Screen) send(dir geom.Vec3) {
	select {
	case s.commands <- system.Command{Kind: system.CmdMove, Dir: dir}:
	default:
		s.dropped++
	}
}

// Draw renders one frame.
func (s *Screen) Draw(v View) {
	s.screen.Clear()
	w, h := s.screen.Size()

	s.text(0, statusRow, s.status, tcell.StyleDefault.Foreground(tcell.ColorYellow))
	if h > 2 {
		s.text(0, h-1, helpText, tcell.StyleDefault.Foreground(tcell.ColorGray))
	}

	v.EachItem(func(c component.Collectible) {
		p, ok := c.(plotted)
		if !ok {
			return
		}
		if x, y, ok := s.cell(p.Position(), w, h); ok {
			s.screen.SetContent(x, y, itemGlyph, nil, tcell.StyleDefault.Foreground(cellColor(p.Color())))
		}
	})
	for _, l := range v.Lights() {
		if l == nil {
			continue
		}
		if x, y, ok := s.cell(l.Position, w, h); ok {
			s.screen.SetContent(x, y, lightGlyph, nil, tcell.StyleDefault.Foreground(tcell.ColorAqua))
		}
	}
	if pl := v.Player(); pl != nil {
		if x, y, ok := s.cell(pl.Position(), w, h); ok {
			s.screen.SetContent(x, y, playerGlyph, nil, tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true))
		}
	}

	s.screen.Show()
}

// cell maps a world position to a screen cell inside the arena rows, which
// exclude the status row and the help row. +z is up.
func (s *Screen) cell(p geom.Vec3, w, h int) (int, int, bool) {
	top, bottom := statusRow+1, h-2
	if w <= 0 || bottom < top {
		return 0, 0, false
	}
	if math.Abs(p.X) > s.extent || math.Abs(p.Z) > s.extent {
		return 0, 0, false
	}
	fx := (p.X + s.extent) / (2 * s.extent)
	fz := (s.extent - p.Z) / (2 * s.extent)
	x := int(math.Round(fx * float64(w-1)))
	y := top + int(math.Round(fz*float64(bottom-top)))
	return x, y, true
}

func (s *Screen) text(x, y int, str string, style tcell.Style) {
	for _, r := range str {
		s.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func cellColor(c item.Color) tcell.Color {
	switch c {
	case item.ColorGreen:
		return tcell.ColorGreen
	case item.ColorRed:
		return tcell.ColorRed
	}
	return tcell.ColorWhite
}
