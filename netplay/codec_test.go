package netplay

import (
	"reflect"
	"testing"

	"github.com/automoto/duelrang/rollback"
	"github.com/automoto/duelrang/sim"
)

func TestInputPackingRoundTrips(t *testing.T) {
	for b := uint8(0); b < 1<<6; b++ {
		if got := packInput(unpackInput(b)); got != b {
			t.Fatalf("pack(unpack(%06b)) = %06b", b, got)
		}
	}

	in := sim.Input{Left: true, Crouch: true, Attack3: true}
	if got := unpackInput(packInput(in)); got != in {
		t.Fatalf("unpack(pack(%+v)) = %+v", in, got)
	}
}

func TestInputMessageRoundTrips(t *testing.T) {
	window := rollback.InputMessage{
		StartTick: 42,
		Inputs: []sim.Input{
			{Right: true},
			{Left: true, Attack2: true},
			{},
			{Crouch: true, Attack1: true, Attack3: true},
		},
	}

	data, err := Encode(NewInputMessage(window))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	msg, err := Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if msg.Type != MsgInput {
		t.Fatalf("type = %d, want input", msg.Type)
	}
	if got := msg.Input.InputWindow(); !reflect.DeepEqual(got, window) {
		t.Fatalf("window = %+v, want %+v", got, window)
	}
}

func TestWeaponsMessageRoundTrips(t *testing.T) {
	loadout := [3]sim.WeaponID{sim.WeaponSpear, sim.WeaponBoomerang, sim.WeaponNone}
	data, err := Encode(NewWeaponsMessage(loadout))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	msg, err := Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := msg.Weapons.Loadout(); got != loadout {
		t.Fatalf("loadout = %v, want %v", got, loadout)
	}
}

func TestLoadoutRejectsUnknownWeapons(t *testing.T) {
	p := WeaponsPayload{Weapons: [3]uint8{200, uint8(sim.WeaponSword), 99}}
	got := p.Loadout()
	want := [3]sim.WeaponID{sim.WeaponNone, sim.WeaponSword, sim.WeaponNone}
	if got != want {
		t.Fatalf("loadout = %v, want %v", got, want)
	}
}

func TestControlMessagesRoundTrip(t *testing.T) {
	for _, typ := range []MessageType{MsgReady, MsgRematch, MsgReselect} {
		data, err := Encode(Message{Type: typ})
		if err != nil {
			t.Fatalf("encode %d: %v", typ, err)
		}
		msg, err := Decode(data)
		if err != nil {
			t.Fatalf("decode %d: %v", typ, err)
		}
		if msg.Type != typ {
			t.Fatalf("type = %d, want %d", msg.Type, typ)
		}
	}
}

func TestDecodeRejectsMalformedFrames(t *testing.T) {
	if _, err := Decode(nil); err == nil {
		t.Fatalf("empty frame decoded")
	}
	if _, err := Decode([]byte{0xc1, 0x00, 0xff}); err == nil {
		t.Fatalf("garbage frame decoded")
	}

	data, err := Encode(Message{Type: 99})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := Decode(data); err == nil {
		t.Fatalf("unknown message type decoded")
	}

	data, err = Encode(Message{Type: MsgInput})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := Decode(data); err == nil {
		t.Fatalf("input message without payload decoded")
	}
}
