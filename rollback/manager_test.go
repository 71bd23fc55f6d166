package rollback

import (
	"reflect"
	"testing"

	"github.com/automoto/duelrang/sim"
)

func newTestManager(cfg Config, role Role, send func(InputMessage)) *Manager {
	return NewManager(cfg, role, sim.NewState(sim.DefaultLoadout, sim.DefaultLoadout), send)
}

func TestStartupHoldsForInputDelayTicks(t *testing.T) {
	cfg := DefaultConfig()
	m := newTestManager(cfg, RoleHost, nil)

	for i := 0; i < cfg.InputDelay; i++ {
		if _, ok := m.Tick(sim.Neutral); ok {
			t.Fatalf("call %d advanced during startup", i+1)
		}
		if m.CurrentTick() != 0 {
			t.Fatalf("current tick moved during startup")
		}
	}

	st, ok := m.Tick(sim.Neutral)
	if !ok {
		t.Fatalf("first post-startup call did not advance")
	}
	if m.CurrentTick() != 1 || st.Tick != 1 {
		t.Fatalf("current = %d, state tick = %d, want 1/1", m.CurrentTick(), st.Tick)
	}
}

func TestLocalInputAppliesAfterDelay(t *testing.T) {
	cfg := DefaultConfig()
	m := newTestManager(cfg, RoleHost, nil)
	startX := m.State().Players[0].X

	// Only the very first captured input moves; it feeds tick 0, which is
	// simulated input-delay calls later.
	m.Tick(sim.Input{Right: true})
	for i := 0; i < cfg.InputDelay-1; i++ {
		m.Tick(sim.Neutral)
		if m.State().Players[0].X != startX {
			t.Fatalf("input applied before its delay elapsed")
		}
	}

	st, ok := m.Tick(sim.Neutral)
	if !ok {
		t.Fatalf("expected the first simulated tick")
	}
	if st.Players[0].X != startX+sim.WalkSpeed {
		t.Fatalf("tick 0 X = %f, want %f", st.Players[0].X, startX+sim.WalkSpeed)
	}
}

func TestBroadcastSendsRedundantWindowNewestFirst(t *testing.T) {
	cfg := DefaultConfig()
	var last InputMessage
	m := newTestManager(cfg, RoleHost, func(msg InputMessage) { last = msg })

	for i := 1; i <= 10; i++ {
		in := sim.Neutral
		if i == 3 {
			in = sim.Input{Right: true}
		}
		m.Tick(in)
	}

	if last.StartTick != 9 {
		t.Fatalf("StartTick = %d, want 9", last.StartTick)
	}
	if len(last.Inputs) != cfg.RedundantWindow {
		t.Fatalf("window length = %d, want %d", len(last.Inputs), cfg.RedundantWindow)
	}
	// Newest first: tick 2 (captured on call 3) sits at offset 9-2.
	for k, in := range last.Inputs {
		want := k == 7
		if in.Right != want {
			t.Fatalf("window offset %d = %+v", k, in)
		}
	}
}

func TestLateConfirmationRollsBackToTrueTimeline(t *testing.T) {
	cfg := DefaultConfig()
	m := newTestManager(cfg, RoleHost, nil)

	for m.CurrentTick() < 110 {
		m.Tick(sim.Neutral)
	}

	// Tick 100 was simulated with a predicted neutral; the peer now reports
	// they actually pressed right.
	m.HandleInput(InputMessage{StartTick: 100, Inputs: []sim.Input{{Right: true}}})
	if m.pendingRollback != 100 {
		t.Fatalf("pendingRollback = %d, want 100", m.pendingRollback)
	}
	if _, ok := m.Tick(sim.Neutral); !ok {
		t.Fatalf("tick after confirmation did not advance")
	}

	stats := m.Stats()
	if stats.Rollbacks != 1 || stats.LastDepth != 10 {
		t.Fatalf("stats = %+v, want one rollback of depth 10", stats)
	}

	// Prediction repeats the last confirmed input, so from tick 100 on the
	// remote player is simulated as holding right.
	want := sim.NewState(sim.DefaultLoadout, sim.DefaultLoadout)
	for tick := 0; tick < 111; tick++ {
		remote := sim.Neutral
		if tick >= 100 {
			remote = sim.Input{Right: true}
		}
		want = sim.Step(want, sim.Neutral, remote)
	}
	if !reflect.DeepEqual(m.State(), want) {
		t.Fatalf("post-rollback state diverged from the true timeline:\n%+v\nwant\n%+v", m.State(), want)
	}
}

func TestEarliestMispredictionWins(t *testing.T) {
	m := newTestManager(DefaultConfig(), RoleHost, nil)
	for m.CurrentTick() < 20 {
		m.Tick(sim.Neutral)
	}

	// Window covering ticks 10..15, newest first, with mispredictions at
	// ticks 14 and 12.
	msg := InputMessage{StartTick: 15, Inputs: []sim.Input{
		{}, {Right: true}, {}, {Left: true}, {}, {},
	}}
	m.HandleInput(msg)
	if m.pendingRollback != 12 {
		t.Fatalf("pendingRollback = %d, want the earliest misprediction 12", m.pendingRollback)
	}

	m.Tick(sim.Neutral)
	if stats := m.Stats(); stats.Rollbacks != 1 || stats.LastDepth != 8 {
		t.Fatalf("stats = %+v, want one rollback of depth 8", stats)
	}

	// Re-ingesting the same message is a no-op: every tick is already
	// confirmed, so nothing new can contradict the replayed timeline.
	m.HandleInput(msg)
	if m.pendingRollback != -1 {
		t.Fatalf("duplicate ingest flagged a rollback")
	}
	m.Tick(sim.Neutral)
	if stats := m.Stats(); stats.Rollbacks != 1 {
		t.Fatalf("duplicate ingest caused another rollback: %+v", stats)
	}
}

func TestMalformedMessagesAreDiscarded(t *testing.T) {
	m := newTestManager(DefaultConfig(), RoleHost, nil)
	for m.CurrentTick() < 10 {
		m.Tick(sim.Neutral)
	}

	m.HandleInput(InputMessage{StartTick: -1, Inputs: []sim.Input{{Right: true}}})
	m.HandleInput(InputMessage{StartTick: 5})
	m.HandleInput(InputMessage{StartTick: 200, Inputs: make([]sim.Input, maxMessageWindow+1)})

	if m.confirmedTick != -1 || m.pendingRollback != -1 {
		t.Fatalf("malformed message changed manager state: confirmed %d pending %d",
			m.confirmedTick, m.pendingRollback)
	}
}

func TestRollbackClampsToRetainedHistory(t *testing.T) {
	cfg := Config{InputDelay: 3, RedundantWindow: 8, MaxRollback: 5}
	m := newTestManager(cfg, RoleHost, nil)
	for m.CurrentTick() < 30 {
		m.Tick(sim.Neutral)
	}

	// A divergence deeper than the retained window: replay starts from the
	// oldest snapshot still held instead of failing.
	m.pendingRollback = 2
	if _, ok := m.Tick(sim.Neutral); !ok {
		t.Fatalf("clamped rollback stalled the tick")
	}

	stats := m.Stats()
	if stats.Rollbacks != 1 || stats.LastDepth != cfg.MaxRollback {
		t.Fatalf("stats = %+v, want depth clamped to %d", stats, cfg.MaxRollback)
	}
	if stats.HistoryMisses != 0 {
		t.Fatalf("clamped target should still have a snapshot")
	}
}

func TestTerminalGraceStopsTicking(t *testing.T) {
	cfg := DefaultConfig()
	m := newTestManager(cfg, RoleHost, nil)
	for m.CurrentTick() < 10 {
		m.Tick(sim.Neutral)
	}

	m.state.Outcome = sim.OutcomeDraw
	advances := 0
	for i := 0; i < 30; i++ {
		if _, ok := m.Tick(sim.Neutral); ok {
			advances++
		}
	}
	// Enough trailing ticks for the peer to stop predicting against
	// silence, then a hard stop.
	if want := cfg.InputDelay + cfg.RedundantWindow; advances != want {
		t.Fatalf("advanced %d times after the outcome, want %d", advances, want)
	}
}

func TestStatsTrackPredictionDebt(t *testing.T) {
	m := newTestManager(DefaultConfig(), RoleHost, nil)
	for m.CurrentTick() < 10 {
		m.Tick(sim.Neutral)
	}
	if got := m.Stats().PredictedTicks; got != 10 {
		t.Fatalf("PredictedTicks = %d, want 10", got)
	}

	m.HandleInput(InputMessage{StartTick: 9, Inputs: make([]sim.Input, 10)})
	if got := m.Stats().PredictedTicks; got != 0 {
		t.Fatalf("PredictedTicks = %d after full confirmation, want 0", got)
	}
}

func TestRedundantWindowHealsDroppedMessages(t *testing.T) {
	cfg := DefaultConfig()
	var hostMsg, guestMsg InputMessage
	host := newTestManager(cfg, RoleHost, func(m InputMessage) { hostMsg = m })
	guest := newTestManager(cfg, RoleGuest, func(m InputMessage) { guestMsg = m })

	hostIn := func(i int) sim.Input { return sim.Input{Right: (i/4)%2 == 0} }
	guestIn := func(i int) sim.Input { return sim.Input{Left: (i/6)%2 == 0} }

	// Deliver only every 7th and 5th message; the 8-wide redundant window
	// keeps the input streams gap-free regardless.
	for i := 1; i <= 120; i++ {
		host.Tick(hostIn(i))
		guest.Tick(guestIn(i))
		if i%7 == 0 {
			guest.HandleInput(hostMsg)
		}
		if i%5 == 0 {
			host.HandleInput(guestMsg)
		}
	}

	// Flush both directions and let each side repair its timeline.
	for i := 121; i <= 123; i++ {
		guest.HandleInput(hostMsg)
		host.HandleInput(guestMsg)
		host.Tick(hostIn(i))
		guest.Tick(guestIn(i))
	}

	if host.Stats().Rollbacks == 0 && guest.Stats().Rollbacks == 0 {
		t.Fatalf("expected at least one misprediction under message loss")
	}
	if host.CurrentTick() != guest.CurrentTick() {
		t.Fatalf("peers at different ticks: %d vs %d", host.CurrentTick(), guest.CurrentTick())
	}
	if !reflect.DeepEqual(host.State(), guest.State()) {
		t.Fatalf("peers diverged:\n%+v\nvs\n%+v", host.State(), guest.State())
	}
}
