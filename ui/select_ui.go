package ui

import (
	"fmt"
	"image/color"

	"github.com/automoto/duelrang/sim"
	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
)

// SelectUI is the loadout picker: three slot buttons cycling through the
// weapon catalog plus a ready button. One panel per local player.
type SelectUI struct {
	UI *ebitenui.UI

	Loadout [3]sim.WeaponID
	Ready   bool

	OnReady func()
	OnBack  func()

	slotButtons [3]*widget.Button
	readyButton *widget.Button
	statusLabel *widget.Label

	faces *Faces
}

// NewSelectUI builds the picker. title distinguishes the two local panels
// ("PLAYER 1") or names the online side ("YOUR LOADOUT").
func NewSelectUI(title string, faces *Faces, onReady, onBack func()) *SelectUI {
	sui := &SelectUI{
		Loadout: sim.DefaultLoadout,
		OnReady: onReady,
		OnBack:  onBack,
		faces:   faces,
	}
	sui.build(title)
	return sui
}

func (sui *SelectUI) build(title string) {
	root, content := Root(color.RGBA{20, 20, 30, 255})

	content.AddChild(Label(title, sui.faces.Title, color.RGBA{255, 255, 255, 255}))

	for i := 0; i < 3; i++ {
		slot := i
		btn := TextButton(sui.slotLabel(slot), sui.faces.Normal, 180, 24, func() {
			if sui.Ready {
				return
			}
			sui.cycleSlot(slot)
		})
		sui.slotButtons[slot] = btn
		content.AddChild(btn)
	}

	sui.readyButton = TextButton("READY", sui.faces.Normal, 180, 26, func() {
		if sui.Ready {
			return
		}
		sui.Ready = true
		sui.refresh()
		if sui.OnReady != nil {
			sui.OnReady()
		}
	})
	content.AddChild(sui.readyButton)

	content.AddChild(TextButton("BACK", sui.faces.Small, 180, 20, func() {
		if sui.OnBack != nil {
			sui.OnBack()
		}
	}))

	sui.statusLabel = Label("", sui.faces.Small, color.RGBA{180, 180, 180, 255})
	content.AddChild(sui.statusLabel)

	sui.UI = &ebitenui.UI{Container: root}
}

func (sui *SelectUI) slotLabel(slot int) string {
	return fmt.Sprintf("slot %d: %s", slot+1, sim.Spec(sui.Loadout[slot]).Name)
}

// cycleSlot advances a slot through the selectable weapons.
func (sui *SelectUI) cycleSlot(slot int) {
	cur := sui.Loadout[slot]
	next := 0
	for i, id := range sim.SelectableWeapons {
		if id == cur {
			next = (i + 1) % len(sim.SelectableWeapons)
			break
		}
	}
	sui.Loadout[slot] = sim.SelectableWeapons[next]
	sui.refresh()
}

// SetStatus updates the footer line ("waiting for opponent...").
func (sui *SelectUI) SetStatus(status string) {
	sui.statusLabel.Label = status
}

func (sui *SelectUI) refresh() {
	for i, btn := range sui.slotButtons {
		btn.Text().Label = sui.slotLabel(i)
	}
	if sui.Ready {
		sui.readyButton.Text().Label = "WAITING"
	} else {
		sui.readyButton.Text().Label = "READY"
	}
}

func (sui *SelectUI) Update() {
	sui.UI.Update()
}
