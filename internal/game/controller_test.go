package game

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/pixil98/go-testutil"
	"go.uber.org/zap/zaptest"

	"github.com/lumenfield/litcollect/internal/component"
	"github.com/lumenfield/litcollect/internal/config"
	"github.com/lumenfield/litcollect/internal/core/event"
	"github.com/lumenfield/litcollect/internal/geom"
	"github.com/lumenfield/litcollect/internal/system"
)

type lineSink struct {
	last  string
	count int
}

func (s *lineSink) SetText(text string) {
	s.last = text
	s.count++
}

type flagTrigger struct {
	fire bool
}

func (f *flagTrigger) Pressed() bool {
	p := f.fire
	f.fire = false
	return p
}

func testConfig() *config.Config {
	cfg := config.Defaults()
	cfg.Spawn.InitialCount = 3
	cfg.Trickle.MaxPopulation = 5
	cfg.Trickle.Interval = time.Second
	cfg.Timing.StartDelay = 500 * time.Millisecond
	return cfg
}

type fixture struct {
	ctrl     *Controller
	sink     *lineSink
	trigger  *flagTrigger
	commands chan system.Command
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		sink:     &lineSink{},
		trigger:  &flagTrigger{},
		commands: make(chan system.Command, 8),
	}
	ctrl, err := New(Deps{
		Config:   testConfig(),
		Log:      zaptest.NewLogger(t),
		Rand:     rand.New(rand.NewSource(11)),
		Sink:     f.sink,
		Commands: f.commands,
		Trigger:  f.trigger,
	})
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	f.ctrl = ctrl
	return f
}

func TestNew_Errors(t *testing.T) {
	zeroInterval := testConfig()
	zeroInterval.Trickle.Interval = 0

	tests := map[string]struct {
		deps   Deps
		expErr string
	}{
		"nil config": {deps: Deps{Log: zaptest.NewLogger(t)}, expErr: "nil config"},
		"nil logger": {deps: Deps{Config: config.Defaults()}, expErr: "nil logger"},
		"zero trickle interval": {
			deps:   Deps{Config: zeroInterval, Log: zaptest.NewLogger(t)},
			expErr: "trickle.interval",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := New(tt.deps)
			testutil.AssertErrorContains(t, err, tt.expErr)
		})
	}
}

func TestController_StartAndReset(t *testing.T) {
	f := newFixture(t)
	c := f.ctrl

	c.Tick(time.Second)
	testutil.AssertEqual(t, "no spawn before start", c.Population(), 0)

	c.Start()
	c.Start()
	c.Tick(500 * time.Millisecond)
	testutil.AssertEqual(t, "initial burst", c.Population(), 3)
	testutil.AssertEqual(t, "state", c.SpawnState(), system.SpawnTrickling)
	testutil.AssertEqual(t, "sink updated", f.sink.last, c.StatsLine())
	testutil.AssertEqual(t, "line prefix", strings.HasPrefix(c.StatsLine(), "Collected:0/50 Avg:"), true)

	first := c.Round()
	f.trigger.fire = true
	c.Tick(10 * time.Millisecond)
	testutil.AssertEqual(t, "population cleared", c.Population(), 0)
	testutil.AssertEqual(t, "score cleared", c.Score(), 0)
	testutil.AssertEqual(t, "new round", c.Round() != first, true)
	testutil.AssertEqual(t, "waiting", c.SpawnState(), system.SpawnWaiting)

	c.Tick(490 * time.Millisecond)
	testutil.AssertEqual(t, "burst after reset", c.Population(), 3)
}

func TestController_CollectOnContact(t *testing.T) {
	f := newFixture(t)
	c := f.ctrl

	var collected []component.Collectible
	event.Subscribe(c.Bus(), func(e event.ItemCollected) { collected = append(collected, e.Item) })

	c.Start()
	c.Tick(500 * time.Millisecond)

	var target component.Collectible
	c.EachItem(func(it component.Collectible) {
		if target == nil {
			target = it
		}
	})
	pos := c.world.Transform(target.EntityID()).Position
	c.Player().SetPosition(pos)
	c.Tick(10 * time.Millisecond)

	if len(collected) == 0 {
		t.Fatal("expected at least one collection")
	}
	want := 0
	for _, it := range collected {
		want += it.CollectValue()
	}
	testutil.AssertEqual(t, "score", c.Score(), want)
	testutil.AssertEqual(t, "population", c.Population(), 3-len(collected))
	testutil.AssertEqual(t, "line", strings.HasPrefix(c.StatsLine(), "Collected:"), true)
	testutil.AssertEqual(t, "entity destroyed", c.world.ECS.Alive(target.EntityID()), false)
}

func TestController_MoveCommand(t *testing.T) {
	f := newFixture(t)
	c := f.ctrl
	before := c.Player().Position()

	f.commands <- system.Command{Kind: system.CmdMove, Dir: geom.V(1, 0, 0)}
	c.Tick(time.Second)

	testutil.AssertEqual(t, "moved", c.Player().Position().X, before.X+c.cfg.Player.Speed)
}

func TestController_Close(t *testing.T) {
	f := newFixture(t)
	c := f.ctrl
	c.Start()
	c.Tick(500 * time.Millisecond)

	c.Close()
	c.Close()
	testutil.AssertEqual(t, "handlers", c.Bus().HandlerCount(), 0)

	c.Reset()
	c.Tick(5 * time.Second)
	testutil.AssertEqual(t, "frozen population", c.Population(), 3)
}
