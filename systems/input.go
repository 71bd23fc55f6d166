package systems

import (
	cfg "github.com/automoto/duelrang/config"
	"github.com/automoto/duelrang/sim"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// CaptureInput polls the keyboard once and builds the input snapshot for
// the given control scheme. Called exactly once per tick per local player;
// the snapshot is the only path from hardware into the simulation.
func CaptureInput(scheme cfg.ControlScheme) sim.Input {
	bindings := cfg.ControlSchemeBindings[scheme]
	return sim.Input{
		Left:    anyKeyPressed(bindings[cfg.ActionMoveLeft]),
		Right:   anyKeyPressed(bindings[cfg.ActionMoveRight]),
		Crouch:  anyKeyPressed(bindings[cfg.ActionCrouch]),
		Attack1: anyKeyPressed(bindings[cfg.ActionWeapon1]),
		Attack2: anyKeyPressed(bindings[cfg.ActionWeapon2]),
		Attack3: anyKeyPressed(bindings[cfg.ActionWeapon3]),
	}
}

// PausePressed reports whether a pause key went down this frame. Edge
// triggered so holding the key does not fire every tick.
func PausePressed() bool {
	for _, scheme := range []cfg.ControlScheme{cfg.ControlSchemeA, cfg.ControlSchemeB} {
		for _, k := range cfg.ControlSchemeBindings[scheme][cfg.ActionPause] {
			if inpututil.IsKeyJustPressed(k) {
				return true
			}
		}
	}
	return false
}

func anyKeyPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}
