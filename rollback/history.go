package rollback

import "github.com/automoto/duelrang/sim"

// InputHistory is a fixed-capacity ring buffer of input snapshots keyed by
// tick. A slot only counts as present when its stored tick matches the
// requested one, so overwritten slots read as absent.
type InputHistory struct {
	slots []inputSlot
}

type inputSlot struct {
	tick  int
	input sim.Input
	valid bool
}

func NewInputHistory(capacity int) *InputHistory {
	return &InputHistory{slots: make([]inputSlot, capacity)}
}

func (h *InputHistory) Store(tick int, in sim.Input) {
	h.slots[tick%len(h.slots)] = inputSlot{tick: tick, input: in, valid: true}
}

// Fetch returns the input stored for tick, if it is still retained.
func (h *InputHistory) Fetch(tick int) (sim.Input, bool) {
	if tick < 0 {
		return sim.Neutral, false
	}
	s := h.slots[tick%len(h.slots)]
	if !s.valid || s.tick != tick {
		return sim.Neutral, false
	}
	return s.input, true
}

// LatestBefore returns the most recent stored input at or before tick,
// falling back to the neutral snapshot when the buffer holds nothing that
// old. Used only for prediction, never as a tick's confirmed value.
func (h *InputHistory) LatestBefore(tick int) sim.Input {
	oldest := tick - len(h.slots) + 1
	if oldest < 0 {
		oldest = 0
	}
	for t := tick; t >= oldest; t-- {
		if in, ok := h.Fetch(t); ok {
			return in
		}
	}
	return sim.Neutral
}

// StateHistory is a fixed-capacity ring buffer of full simulation
// snapshots. States are cloned on save and on load so a retained snapshot
// can never alias the live state. Capacity bounds the maximum rollback
// depth; older ticks are silently unrecoverable.
type StateHistory struct {
	slots []stateSlot
}

type stateSlot struct {
	tick  int
	state sim.State
	valid bool
}

func NewStateHistory(capacity int) *StateHistory {
	return &StateHistory{slots: make([]stateSlot, capacity)}
}

func (h *StateHistory) Save(tick int, st sim.State) {
	h.slots[tick%len(h.slots)] = stateSlot{tick: tick, state: st.Clone(), valid: true}
}

func (h *StateHistory) Load(tick int) (sim.State, bool) {
	if tick < 0 {
		return sim.State{}, false
	}
	s := h.slots[tick%len(h.slots)]
	if !s.valid || s.tick != tick {
		return sim.State{}, false
	}
	return s.state.Clone(), true
}
