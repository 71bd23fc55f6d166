package rollback

import (
	"testing"

	"github.com/automoto/duelrang/sim"
)

func TestInputHistoryStoreFetch(t *testing.T) {
	h := NewInputHistory(8)
	in := sim.Input{Right: true}
	h.Store(5, in)

	got, ok := h.Fetch(5)
	if !ok || got != in {
		t.Fatalf("Fetch(5) = %+v %v, want stored input", got, ok)
	}
	if _, ok := h.Fetch(4); ok {
		t.Fatalf("Fetch(4) reported a tick that was never stored")
	}
	if _, ok := h.Fetch(-1); ok {
		t.Fatalf("Fetch(-1) reported present")
	}
}

func TestInputHistoryOverwriteInvalidatesOldTick(t *testing.T) {
	h := NewInputHistory(8)
	h.Store(1, sim.Input{Left: true})
	h.Store(9, sim.Input{Right: true}) // same slot

	if _, ok := h.Fetch(1); ok {
		t.Fatalf("overwritten tick still reads as present")
	}
	got, ok := h.Fetch(9)
	if !ok || !got.Right {
		t.Fatalf("Fetch(9) = %+v %v", got, ok)
	}
}

func TestLatestBeforePrefersMostRecent(t *testing.T) {
	h := NewInputHistory(16)
	h.Store(5, sim.Input{Right: true})
	h.Store(7, sim.Input{Left: true})

	if got := h.LatestBefore(9); !got.Left {
		t.Fatalf("LatestBefore(9) = %+v, want tick 7's input", got)
	}
	if got := h.LatestBefore(6); !got.Right {
		t.Fatalf("LatestBefore(6) = %+v, want tick 5's input", got)
	}
	if got := h.LatestBefore(3); got != sim.Neutral {
		t.Fatalf("LatestBefore(3) = %+v, want neutral", got)
	}
}

func TestStateHistorySnapshotsNeverAlias(t *testing.T) {
	h := NewStateHistory(4)
	st := sim.NewState(sim.DefaultLoadout, sim.DefaultLoadout)
	st.Projectiles = []sim.Projectile{{Kind: sim.KindKnife, X: 50, Active: true}}

	h.Save(3, st)
	st.Projectiles[0].X = 999

	loaded, ok := h.Load(3)
	if !ok {
		t.Fatalf("Load(3) missed")
	}
	if loaded.Projectiles[0].X != 50 {
		t.Fatalf("saved snapshot aliases the live state: X = %f", loaded.Projectiles[0].X)
	}

	loaded.Projectiles[0].X = 111
	again, _ := h.Load(3)
	if again.Projectiles[0].X != 50 {
		t.Fatalf("loaded snapshot aliases the stored one: X = %f", again.Projectiles[0].X)
	}
}

func TestStateHistoryCapacityEvictsOldTicks(t *testing.T) {
	h := NewStateHistory(4)
	for tick := 0; tick <= 5; tick++ {
		st := sim.NewState(sim.DefaultLoadout, sim.DefaultLoadout)
		st.Tick = tick
		h.Save(tick, st)
	}

	if _, ok := h.Load(1); ok {
		t.Fatalf("evicted tick still loads")
	}
	st, ok := h.Load(5)
	if !ok || st.Tick != 5 {
		t.Fatalf("Load(5) = %+v %v", st.Tick, ok)
	}
}
