package event

import (
	"testing"

	"github.com/pixil98/go-testutil"
)

type ping struct{ n int }
type pong struct{ n int }

func TestPublish_NoSubscribers(t *testing.T) {
	b := NewBus()
	Publish(b, ping{n: 1})
	testutil.AssertEqual(t, "handlers", b.HandlerCount(), 0)
}

func TestPublish_SubscriptionOrder(t *testing.T) {
	b := NewBus()
	var order []string
	Subscribe(b, func(ping) { order = append(order, "a") })
	Subscribe(b, func(ping) { order = append(order, "b") })
	Subscribe(b, func(ping) { order = append(order, "c") })
	Subscribe(b, func(pong) { order = append(order, "other") })

	Publish(b, ping{})

	testutil.AssertEqual(t, "calls", len(order), 3)
	testutil.AssertEqual(t, "order", order[0]+order[1]+order[2], "abc")
}

func TestPublish_DepthFirst(t *testing.T) {
	b := NewBus()
	var order []string
	Subscribe(b, func(p ping) {
		order = append(order, "ping1")
		Publish(b, pong{n: p.n})
	})
	Subscribe(b, func(ping) { order = append(order, "ping2") })
	Subscribe(b, func(pong) { order = append(order, "pong") })

	Publish(b, ping{n: 3})

	testutil.AssertEqual(t, "sequence", len(order), 3)
	testutil.AssertEqual(t, "first", order[0], "ping1")
	testutil.AssertEqual(t, "nested", order[1], "pong")
	testutil.AssertEqual(t, "last", order[2], "ping2")
}

func TestRelease(t *testing.T) {
	tests := map[string]struct {
		releaseDuring bool
		expCalls      int
	}{
		"released before publish":     {releaseDuring: false, expCalls: 1},
		"released by earlier handler": {releaseDuring: true, expCalls: 1},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			b := NewBus()
			calls := 0
			var second *Subscription
			Subscribe(b, func(ping) {
				calls++
				if tt.releaseDuring {
					second.Release()
				}
			})
			second = Subscribe(b, func(ping) { calls++ })
			if !tt.releaseDuring {
				second.Release()
			}

			Publish(b, ping{})

			testutil.AssertEqual(t, "calls", calls, tt.expCalls)
			testutil.AssertEqual(t, "released", second.Released(), true)
			testutil.AssertEqual(t, "handlers", b.HandlerCount(), 1)
		})
	}
}

func TestRelease_Idempotent(t *testing.T) {
	b := NewBus()
	s := Subscribe(b, func(ping) {})
	s.Release()
	s.Release()
	var nilSub *Subscription
	nilSub.Release()
	testutil.AssertEqual(t, "handlers", b.HandlerCount(), 0)
}

func TestSubscribeDuringPublish(t *testing.T) {
	b := NewBus()
	late := 0
	Subscribe(b, func(ping) {
		Subscribe(b, func(ping) { late++ })
	})

	Publish(b, ping{})
	testutil.AssertEqual(t, "late after first", late, 0)

	Publish(b, ping{})
	testutil.AssertEqual(t, "late after second", late, 1)
}

func TestClearAll(t *testing.T) {
	b := NewBus()
	calls := 0
	s1 := Subscribe(b, func(ping) { calls++ })
	Subscribe(b, func(pong) { calls++ })

	b.ClearAll()
	Publish(b, ping{})
	Publish(b, pong{})

	testutil.AssertEqual(t, "calls", calls, 0)
	testutil.AssertEqual(t, "handlers", b.HandlerCount(), 0)
	testutil.AssertEqual(t, "s1 released", s1.Released(), true)

	// late release from a component's own teardown is harmless
	s1.Release()
}

func TestSubscriptions_ReleaseAll(t *testing.T) {
	b := NewBus()
	var g Subscriptions
	g.Add(
		Subscribe(b, func(ping) {}),
		Subscribe(b, func(pong) {}),
	)
	testutil.AssertEqual(t, "active", g.Active(), true)

	g.ReleaseAll()

	testutil.AssertEqual(t, "active after", g.Active(), false)
	testutil.AssertEqual(t, "handlers", b.HandlerCount(), 0)
}
