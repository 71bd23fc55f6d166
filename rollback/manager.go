package rollback

import (
	"log"

	"github.com/automoto/duelrang/sim"
)

// Role decides which input slot a participant's inputs occupy in the step.
// The host's input is always player 0 (the left fighter) on both peers.
type Role uint8

const (
	RoleHost Role = iota
	RoleGuest
)

// Config holds the netcode tunables. Both peers must run identical values
// or their simulations will diverge.
type Config struct {
	InputDelay      int // ticks between capturing a local input and simulating it
	RedundantWindow int // inputs carried per outgoing message
	MaxRollback     int // deepest supported rewind, also the state history capacity
}

func DefaultConfig() Config {
	return Config{
		InputDelay:      3,
		RedundantWindow: 8,
		MaxRollback:     30,
	}
}

// InputMessage is the redundant input window exchanged between peers:
// the sender's last inputs ending at StartTick, newest first. Redundancy
// lets occasional dropped or reordered messages heal without retransmission.
type InputMessage struct {
	StartTick int
	Inputs    []sim.Input
}

// maxMessageWindow bounds accepted message sizes; larger ones are malformed.
const maxMessageWindow = 64

// Stats exposes rollback diagnostics for the HUD.
type Stats struct {
	Rollbacks      int
	LastDepth      int
	MaxDepth       int
	HistoryMisses  int // rollbacks that outran retained history
	PredictedTicks int // simulated ticks currently ahead of confirmed remote input
}

// Manager hides network latency behind prediction: it advances the
// simulation every tick using the best available remote input, and repairs
// the past by rewind-and-replay when a confirmed input disproves a guess.
//
// The manager is not safe for concurrent use. HandleInput must run on the
// same goroutine as Tick (or be externally synchronized), and before the
// Tick that should observe the ingested data.
type Manager struct {
	cfg  Config
	role Role
	send func(InputMessage)

	state   sim.State
	current int // next tick to simulate

	localCursor int // next tick to record a fresh local input at
	local       *InputHistory
	remote      *InputHistory
	states      *StateHistory

	predicted       map[int]sim.Input // tick -> remote input guessed for it
	confirmedTick   int               // highest tick with a confirmed remote input
	pendingRollback int               // earliest flagged misprediction, -1 when none

	terminalGrace int
	stats         Stats
}

// NewManager creates a manager for one match. send is invoked once per Tick
// with the outgoing redundant input window; a nil send drops the messages
// (useful in tests that wire peers by hand).
func NewManager(cfg Config, role Role, initial sim.State, send func(InputMessage)) *Manager {
	historyLen := cfg.MaxRollback + cfg.InputDelay + cfg.RedundantWindow + 2
	return &Manager{
		cfg:             cfg,
		role:            role,
		send:            send,
		state:           initial.Clone(),
		local:           NewInputHistory(historyLen),
		remote:          NewInputHistory(historyLen),
		states:          NewStateHistory(cfg.MaxRollback + 2),
		predicted:       make(map[int]sim.Input),
		confirmedTick:   -1,
		pendingRollback: -1,
		terminalGrace:   cfg.InputDelay + cfg.RedundantWindow,
	}
}

// Tick records the caller's fresh local input, exchanges the redundant
// window, and advances the simulation one tick. It returns the state to
// present and whether an advance happened. False means either Startup (the
// delayed local input for the current tick does not exist yet) or that the
// match ended and the post-outcome grace ticks are spent. Tick never
// blocks: a missing remote input is predicted, not waited for.
func (m *Manager) Tick(localInput sim.Input) (sim.State, bool) {
	// The fresh input lands input-delay ticks ahead of the tick being
	// simulated. During Startup the simulation holds at tick 0 while the
	// first inputs fill ticks 0..delay-1.
	m.local.Store(m.localCursor, localInput)
	m.localCursor++

	m.broadcast()

	// Not ready until the input recorded for the current tick is a full
	// input-delay old; this is what actually spaces capture from use.
	if m.localCursor <= m.current+m.cfg.InputDelay {
		return m.state, false
	}

	if m.state.Outcome != sim.OutcomeNone {
		// Keep advancing briefly so the peer gets our trailing inputs and
		// is not left predicting against silence, then stop for good.
		if m.terminalGrace <= 0 {
			return m.state, false
		}
		m.terminalGrace--
	}

	if m.pendingRollback >= 0 && m.pendingRollback < m.current {
		m.rollback()
	}
	m.pendingRollback = -1

	remoteIn, confirmed := m.remote.Fetch(m.current)
	if confirmed {
		delete(m.predicted, m.current)
	} else {
		remoteIn = m.remote.LatestBefore(m.current)
		m.predicted[m.current] = remoteIn
	}

	m.states.Save(m.current, m.state)
	m.state = m.step(m.current, remoteIn)
	m.current++

	m.prunePredictions()
	return m.state, true
}

// HandleInput ingests a remote redundant-input message. Confirmed ticks are
// first-writer-wins: a value already stored is never overwritten, which
// also makes re-ingesting a duplicate message a no-op. A newly confirmed
// tick that was already simulated with a different guess flags a
// misprediction; the earliest such tick wins, since replay must start from
// the first divergence. Malformed messages are discarded without effect.
func (m *Manager) HandleInput(msg InputMessage) {
	if msg.StartTick < 0 || len(msg.Inputs) == 0 || len(msg.Inputs) > maxMessageWindow {
		return
	}
	for k, in := range msg.Inputs {
		t := msg.StartTick - k
		if t < 0 {
			continue
		}
		if _, ok := m.remote.Fetch(t); ok {
			continue
		}
		m.remote.Store(t, in)
		if t > m.confirmedTick {
			m.confirmedTick = t
		}
		if t < m.current {
			if guess, ok := m.predicted[t]; ok && guess != in {
				if m.pendingRollback < 0 || t < m.pendingRollback {
					m.pendingRollback = t
				}
			}
		}
	}
}

// rollback rewinds to the flagged tick's snapshot and replays forward to
// the present with the best input now known per tick. If even the clamped
// target predates retained history the manager continues without rewinding:
// a bounded, logged divergence beats a hard failure here.
func (m *Manager) rollback() {
	target := m.pendingRollback
	if floor := m.current - m.cfg.MaxRollback; target < floor {
		target = floor
	}

	snap, ok := m.states.Load(target)
	if !ok {
		m.stats.HistoryMisses++
		log.Printf("[rollback] no snapshot retained for tick %d (current %d), continuing without rewind", target, m.current)
		return
	}

	depth := m.current - target
	m.stats.Rollbacks++
	m.stats.LastDepth = depth
	if depth > m.stats.MaxDepth {
		m.stats.MaxDepth = depth
	}

	m.state = snap
	for t := target; t < m.current; t++ {
		remoteIn, confirmed := m.remote.Fetch(t)
		if confirmed {
			delete(m.predicted, t)
		} else {
			remoteIn = m.remote.LatestBefore(t)
			m.predicted[t] = remoteIn
		}
		m.states.Save(t, m.state)
		m.state = m.step(t, remoteIn)
	}
}

// step runs one simulation tick with the inputs in host/guest slot order.
func (m *Manager) step(tick int, remoteIn sim.Input) sim.State {
	localIn, _ := m.local.Fetch(tick)
	if m.role == RoleHost {
		return sim.Step(m.state, localIn, remoteIn)
	}
	return sim.Step(m.state, remoteIn, localIn)
}

// broadcast emits the redundant window of the most recent local inputs,
// newest first, ending at the latest recorded (delayed) tick.
func (m *Manager) broadcast() {
	if m.send == nil {
		return
	}
	newest := m.localCursor - 1
	n := m.cfg.RedundantWindow
	if n > m.localCursor {
		n = m.localCursor
	}
	inputs := make([]sim.Input, 0, n)
	for t := newest; t > newest-n; t-- {
		in, ok := m.local.Fetch(t)
		if !ok {
			break
		}
		inputs = append(inputs, in)
	}
	m.send(InputMessage{StartTick: newest, Inputs: inputs})
}

func (m *Manager) prunePredictions() {
	floor := m.current - m.cfg.MaxRollback
	for t := range m.predicted {
		if t < floor {
			delete(m.predicted, t)
		}
	}
}

// State returns the state to present for the current tick.
func (m *Manager) State() sim.State { return m.state }

// CurrentTick is the next tick the manager will simulate.
func (m *Manager) CurrentTick() int { return m.current }

// Stats returns rollback diagnostics for display.
func (m *Manager) Stats() Stats {
	s := m.stats
	if ahead := m.current - 1 - m.confirmedTick; ahead > 0 {
		s.PredictedTicks = ahead
	}
	return s
}
