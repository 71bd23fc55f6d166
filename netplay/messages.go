package netplay

import (
	"github.com/automoto/duelrang/rollback"
	"github.com/automoto/duelrang/sim"
)

// MessageType tags every wire message.
type MessageType uint8

const (
	MsgInput MessageType = iota + 1
	MsgWeapons
	MsgReady
	MsgRematch
	MsgReselect
)

// Message is the single envelope exchanged between peers. Only the payload
// matching Type is set; the rest stay nil and are omitted on the wire.
type Message struct {
	Type    MessageType     `codec:"t"`
	Input   *InputPayload   `codec:"in,omitempty"`
	Weapons *WeaponsPayload `codec:"wp,omitempty"`
}

// InputPayload carries a redundant window of input snapshots, newest first,
// each packed into one byte.
type InputPayload struct {
	StartTick int     `codec:"s"`
	Inputs    []uint8 `codec:"i"`
}

// WeaponsPayload announces the sender's chosen loadout.
type WeaponsPayload struct {
	Weapons [3]uint8 `codec:"w"`
}

const (
	bitLeft = 1 << iota
	bitRight
	bitCrouch
	bitAttack1
	bitAttack2
	bitAttack3
)

func packInput(in sim.Input) uint8 {
	var b uint8
	if in.Left {
		b |= bitLeft
	}
	if in.Right {
		b |= bitRight
	}
	if in.Crouch {
		b |= bitCrouch
	}
	if in.Attack1 {
		b |= bitAttack1
	}
	if in.Attack2 {
		b |= bitAttack2
	}
	if in.Attack3 {
		b |= bitAttack3
	}
	return b
}

func unpackInput(b uint8) sim.Input {
	return sim.Input{
		Left:    b&bitLeft != 0,
		Right:   b&bitRight != 0,
		Crouch:  b&bitCrouch != 0,
		Attack1: b&bitAttack1 != 0,
		Attack2: b&bitAttack2 != 0,
		Attack3: b&bitAttack3 != 0,
	}
}

// NewInputMessage wraps a rollback input window for the wire.
func NewInputMessage(msg rollback.InputMessage) Message {
	packed := make([]uint8, len(msg.Inputs))
	for i, in := range msg.Inputs {
		packed[i] = packInput(in)
	}
	return Message{
		Type:  MsgInput,
		Input: &InputPayload{StartTick: msg.StartTick, Inputs: packed},
	}
}

// InputWindow unpacks a received input message for the rollback manager.
func (p *InputPayload) InputWindow() rollback.InputMessage {
	inputs := make([]sim.Input, len(p.Inputs))
	for i, b := range p.Inputs {
		inputs[i] = unpackInput(b)
	}
	return rollback.InputMessage{StartTick: p.StartTick, Inputs: inputs}
}

// NewWeaponsMessage wraps a loadout announcement.
func NewWeaponsMessage(loadout [3]sim.WeaponID) Message {
	var w [3]uint8
	for i, id := range loadout {
		w[i] = uint8(id)
	}
	return Message{Type: MsgWeapons, Weapons: &WeaponsPayload{Weapons: w}}
}

// Loadout converts a weapons payload back to weapon IDs. Out-of-range
// values collapse to WeaponNone rather than failing.
func (p *WeaponsPayload) Loadout() [3]sim.WeaponID {
	var out [3]sim.WeaponID
	for i, w := range p.Weapons {
		id := sim.WeaponID(w)
		if sim.Spec(id).Name == "none" {
			id = sim.WeaponNone
		}
		out[i] = id
	}
	return out
}
