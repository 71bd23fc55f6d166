package scenes

import (
	"log"

	"github.com/automoto/duelrang/netplay"
	"github.com/automoto/duelrang/rollback"
	"github.com/automoto/duelrang/sim"
	"github.com/automoto/duelrang/ui"
	"github.com/hajimehoshi/ebiten/v2"
)

// SelectScene is the loadout picker. Offline the two players pick in turn
// on the same panel; online each peer picks their own side, exchanges
// weapons and ready messages, and the match starts when both are ready.
type SelectScene struct {
	sceneChanger SceneChanger
	faces        *ui.Faces

	peer *netplay.Peer // nil for local versus
	role rollback.Role

	panel *ui.SelectUI

	// local flow
	pickingSecond bool
	firstLoadout  [3]sim.WeaponID

	// online flow
	localReady    bool
	localLoadout  [3]sim.WeaponID
	remoteLoadout [3]sim.WeaponID
	remoteArmed   bool // weapons received
	remoteReady   bool
}

func NewSelectScene(sc SceneChanger, faces *ui.Faces, peer *netplay.Peer, role rollback.Role) *SelectScene {
	ss := &SelectScene{
		sceneChanger: sc,
		faces:        faces,
		peer:         peer,
		role:         role,
	}
	title := "PLAYER 1 LOADOUT"
	if peer != nil {
		title = "YOUR LOADOUT"
	}
	ss.panel = ui.NewSelectUI(title, faces, ss.onReady, ss.onBack)
	return ss
}

func (ss *SelectScene) onReady() {
	if ss.peer == nil {
		if !ss.pickingSecond {
			// First player locked in; rebuild the panel for player two.
			ss.firstLoadout = ss.panel.Loadout
			ss.pickingSecond = true
			ss.panel = ui.NewSelectUI("PLAYER 2 LOADOUT", ss.faces, ss.onReady, ss.onBack)
			return
		}
		loadouts := [2][3]sim.WeaponID{ss.firstLoadout, ss.panel.Loadout}
		ss.sceneChanger.ChangeScene(NewDuelScene(ss.sceneChanger, ss.faces, nil, 0, loadouts))
		return
	}

	ss.localLoadout = ss.panel.Loadout
	ss.localReady = true
	if err := ss.peer.Send(netplay.NewWeaponsMessage(ss.localLoadout)); err != nil {
		log.Printf("[select] send weapons: %v", err)
	}
	if err := ss.peer.Send(netplay.Message{Type: netplay.MsgReady}); err != nil {
		log.Printf("[select] send ready: %v", err)
	}
	ss.panel.SetStatus("waiting for opponent...")
}

func (ss *SelectScene) onBack() {
	if ss.peer != nil {
		ss.peer.Close()
	}
	ss.sceneChanger.ChangeScene(NewMenuScene(ss.sceneChanger))
}

func (ss *SelectScene) Update() {
	ss.panel.Update()

	if ss.peer == nil {
		return
	}

	if ss.peer.State() == netplay.StateDisconnected {
		log.Printf("[select] opponent left: %v", ss.peer.Err())
		ss.onBack()
		return
	}

	for _, msg := range ss.peer.Poll() {
		switch msg.Type {
		case netplay.MsgWeapons:
			ss.remoteLoadout = msg.Weapons.Loadout()
			ss.remoteArmed = true
		case netplay.MsgReady:
			ss.remoteReady = true
		}
	}

	if ss.localReady && ss.remoteReady && ss.remoteArmed {
		// The host's loadout always sits in the left (player 0) slot so
		// both peers build the identical initial state.
		var loadouts [2][3]sim.WeaponID
		if ss.role == rollback.RoleHost {
			loadouts = [2][3]sim.WeaponID{ss.localLoadout, ss.remoteLoadout}
		} else {
			loadouts = [2][3]sim.WeaponID{ss.remoteLoadout, ss.localLoadout}
		}
		ss.sceneChanger.ChangeScene(NewDuelScene(ss.sceneChanger, ss.faces, ss.peer, ss.role, loadouts))
	}
}

func (ss *SelectScene) Draw(screen *ebiten.Image) {
	ss.panel.UI.Draw(screen)
}
