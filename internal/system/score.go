package system

import (
	"go.uber.org/zap"

	"github.com/lumenfield/litcollect/internal/core/event"
)

// ScoreSystem keeps the running total of collected values. The total is not
// clamped and may go negative.
type ScoreSystem struct {
	bus   *event.Bus
	log   *zap.Logger
	total int
	subs  event.Subscriptions
}

func NewScoreSystem(bus *event.Bus, log *zap.Logger) *ScoreSystem {
	return &ScoreSystem{bus: bus, log: log}
}

func (s *ScoreSystem) Enable() {
	if s.subs.Active() {
		return
	}
	s.subs.Add(
		event.Subscribe(s.bus, s.onItemCollected),
		event.Subscribe(s.bus, func(event.GameReset) { s.onReset() }),
	)
}

func (s *ScoreSystem) Disable() {
	s.subs.ReleaseAll()
}

// Total returns the running total.
func (s *ScoreSystem) Total() int { return s.total }

func (s *ScoreSystem) onItemCollected(e event.ItemCollected) {
	if e.Item == nil {
		return
	}
	s.total += e.Item.CollectValue()
	s.log.Debug("item collected",
		zap.Uint64("entity", uint64(e.Item.EntityID())),
		zap.Int("value", e.Item.CollectValue()),
		zap.Int("total", s.total),
	)
	event.Publish(s.bus, event.CountChanged{Total: s.total})
}

func (s *ScoreSystem) onReset() {
	s.total = 0
	event.Publish(s.bus, event.CountChanged{Total: 0})
}
