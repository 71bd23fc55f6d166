package config

import "github.com/hajimehoshi/ebiten/v2"

// ActionID represents a logical game action.
type ActionID int

const (
	ActionNone ActionID = iota
	ActionMoveLeft
	ActionMoveRight
	ActionCrouch
	ActionWeapon1
	ActionWeapon2
	ActionWeapon3
	ActionPause
	ActionCount // must be last, used for array sizing
)

// ControlScheme selects one of the fixed keyboard layouts. Online play and
// local player one use scheme A; local player two uses scheme B.
type ControlScheme int

const (
	ControlSchemeA ControlScheme = iota
	ControlSchemeB
)

// ControlSchemeBindings maps each scheme's actions to keys.
var ControlSchemeBindings = map[ControlScheme]map[ActionID][]ebiten.Key{
	ControlSchemeA: {
		ActionMoveLeft:  {ebiten.KeyA},
		ActionMoveRight: {ebiten.KeyD},
		ActionCrouch:    {ebiten.KeyS},
		ActionWeapon1:   {ebiten.KeyJ},
		ActionWeapon2:   {ebiten.KeyK},
		ActionWeapon3:   {ebiten.KeyL},
		ActionPause:     {ebiten.KeyEscape},
	},
	ControlSchemeB: {
		ActionMoveLeft:  {ebiten.KeyLeft},
		ActionMoveRight: {ebiten.KeyRight},
		ActionCrouch:    {ebiten.KeyDown},
		ActionWeapon1:   {ebiten.KeyComma},
		ActionWeapon2:   {ebiten.KeyPeriod},
		ActionWeapon3:   {ebiten.KeySlash},
		ActionPause:     {ebiten.KeyEscape},
	},
}
