package audio

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"

	"github.com/lumenfield/litcollect/internal/core/event"
)

const sampleRate = beep.SampleRate(44100)

// Tone is one sine beep.
type Tone struct {
	Freq     float64
	Duration time.Duration
}

var (
	PositiveTone = Tone{Freq: 880, Duration: 60 * time.Millisecond}
	NegativeTone = Tone{Freq: 220, Duration: 120 * time.Millisecond}
)

// Chime plays a short tone on every collection: high for a gain, low for a
// loss. It is purely a listener and never affects game state.
type Chime struct {
	bus      *event.Bus
	rate     beep.SampleRate
	play     func(beep.Streamer)
	log      *zap.Logger
	speaker  bool
	subs     event.Subscriptions
	played   int
	failures int
}

// Open initializes the speaker and returns a chime bound to bus. A speaker
// failure is not fatal: the chime stays silent and the error is logged.
func Open(bus *event.Bus, log *zap.Logger) *Chime {
	c := newChime(bus, sampleRate, nil, log)
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		log.Warn("audio disabled", zap.Error(err))
		return c
	}
	c.speaker = true
	c.play = func(s beep.Streamer) { speaker.Play(s) }
	return c
}

// Silent returns a chime that subscribes but never produces sound.
func Silent(bus *event.Bus, log *zap.Logger) *Chime {
	return newChime(bus, sampleRate, nil, log)
}

func newChime(bus *event.Bus, rate beep.SampleRate, play func(beep.Streamer), log *zap.Logger) *Chime {
	return &Chime{bus: bus, rate: rate, play: play, log: log}
}

func (c *Chime) Enable() {
	if c.subs.Active() {
		return
	}
	c.subs.Add(event.Subscribe(c.bus, c.onItemCollected))
}

func (c *Chime) Disable() {
	c.subs.ReleaseAll()
}

// Close detaches from the bus and shuts the speaker down if Open started it.
func (c *Chime) Close() {
	c.Disable()
	if c.speaker {
		speaker.Close()
		c.speaker = false
	}
}

// Played returns the number of tones handed to the output.
func (c *Chime) Played() int { return c.played }

func (c *Chime) onItemCollected(e event.ItemCollected) {
	if e.Item == nil || c.play == nil {
		return
	}
	tone := PositiveTone
	if e.Item.CollectValue() < 0 {
		tone = NegativeTone
	}
	s, err := c.streamer(tone)
	if err != nil {
		c.failures++
		if c.failures == 1 {
			c.log.Warn("chime tone unavailable", zap.Error(err))
		}
		return
	}
	c.play(s)
	c.played++
}

func (c *Chime) streamer(t Tone) (beep.Streamer, error) {
	sine, err := generators.SineTone(c.rate, t.Freq)
	if err != nil {
		return nil, fmt.Errorf("sine %.0fHz: %w", t.Freq, err)
	}
	return beep.Take(c.rate.N(t.Duration), sine), nil
}
