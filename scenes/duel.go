package scenes

import (
	"image/color"
	"log"

	cfg "github.com/automoto/duelrang/config"
	"github.com/automoto/duelrang/netplay"
	"github.com/automoto/duelrang/rollback"
	"github.com/automoto/duelrang/sim"
	"github.com/automoto/duelrang/systems"
	"github.com/automoto/duelrang/ui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// DuelScene runs a match. Online it drives the rollback manager: drain the
// peer's messages, capture one local input, tick. Offline it steps the
// simulation directly with both keyboards. Presentation (render, HUD,
// effects) is shared between the two modes.
type DuelScene struct {
	sceneChanger SceneChanger
	faces        *ui.Faces

	peer *netplay.Peer // nil for local versus
	role rollback.Role

	loadouts [2][3]sim.WeaponID

	mgr        *rollback.Manager
	localState sim.State // local-versus only
	presented  sim.State // last state shown, effects diff baseline
	stats      rollback.Stats

	effects *ecs.ECS

	localRematch  bool
	remoteRematch bool
}

func NewDuelScene(sc SceneChanger, faces *ui.Faces, peer *netplay.Peer, role rollback.Role, loadouts [2][3]sim.WeaponID) *DuelScene {
	ds := &DuelScene{
		sceneChanger: sc,
		faces:        faces,
		peer:         peer,
		role:         role,
		loadouts:     loadouts,
		effects:      ecs.NewECS(donburi.NewWorld()),
	}
	ds.reset()
	return ds
}

// reset starts a fresh round with the same loadouts. Online both peers
// reset only once both have requested a rematch, so the fresh managers
// agree on tick zero.
func (ds *DuelScene) reset() {
	initial := sim.NewState(ds.loadouts[0], ds.loadouts[1])
	ds.presented = initial
	ds.localRematch = false
	ds.remoteRematch = false

	if ds.peer == nil {
		ds.localState = initial
		ds.mgr = nil
		return
	}

	netCfg := rollback.Config{
		InputDelay:      cfg.Net.InputDelay,
		RedundantWindow: cfg.Net.RedundantWindow,
		MaxRollback:     cfg.Net.MaxRollback,
	}
	peer := ds.peer
	ds.mgr = rollback.NewManager(netCfg, ds.role, initial, func(msg rollback.InputMessage) {
		if err := peer.Send(netplay.NewInputMessage(msg)); err != nil {
			log.Printf("[duel] send input: %v", err)
		}
	})
}

func (ds *DuelScene) Update() {
	if ds.peer != nil {
		ds.updateOnline()
	} else {
		ds.updateLocal()
	}

	systems.UpdateEffects(ds.effects)
	ds.handleMatchKeys()
}

func (ds *DuelScene) updateOnline() {
	if ds.peer.State() == netplay.StateDisconnected {
		log.Printf("[duel] opponent left: %v", ds.peer.Err())
		ds.leave()
		return
	}

	// Ingest everything that arrived since last tick before consuming
	// inputs, so a confirmation never races the tick that needs it.
	for _, msg := range ds.peer.Poll() {
		switch msg.Type {
		case netplay.MsgInput:
			ds.mgr.HandleInput(msg.Input.InputWindow())
		case netplay.MsgRematch:
			ds.remoteRematch = true
			ds.maybeRematch()
		case netplay.MsgReselect:
			ds.sceneChanger.ChangeScene(NewSelectScene(ds.sceneChanger, ds.faces, ds.peer, ds.role))
			return
		}
	}

	in := systems.CaptureInput(cfg.ControlSchemeA)
	st, advanced := ds.mgr.Tick(in)
	ds.stats = ds.mgr.Stats()
	if advanced {
		ds.present(st)
	}
}

func (ds *DuelScene) updateLocal() {
	if ds.localState.Outcome != sim.OutcomeNone {
		return
	}
	st := sim.Step(ds.localState,
		systems.CaptureInput(cfg.ControlSchemeA),
		systems.CaptureInput(cfg.ControlSchemeB))
	ds.localState = st
	ds.present(st)
}

// present publishes a state to the renderer and fires transition effects.
func (ds *DuelScene) present(st sim.State) {
	systems.SpawnTransitionEffects(ds.effects, &ds.presented, &st)
	ds.presented = st
}

func (ds *DuelScene) handleMatchKeys() {
	if systems.PausePressed() {
		ds.leave()
		return
	}

	if ds.presented.Outcome == sim.OutcomeNone {
		return
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if ds.peer == nil {
			ds.reset()
			return
		}
		if !ds.localRematch {
			ds.localRematch = true
			if err := ds.peer.Send(netplay.Message{Type: netplay.MsgRematch}); err != nil {
				log.Printf("[duel] send rematch: %v", err)
			}
			ds.maybeRematch()
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		if ds.peer != nil {
			if err := ds.peer.Send(netplay.Message{Type: netplay.MsgReselect}); err != nil {
				log.Printf("[duel] send reselect: %v", err)
			}
		}
		ds.sceneChanger.ChangeScene(NewSelectScene(ds.sceneChanger, ds.faces, ds.peer, ds.role))
	}
}

func (ds *DuelScene) maybeRematch() {
	if ds.localRematch && ds.remoteRematch {
		ds.reset()
	}
}

func (ds *DuelScene) leave() {
	if ds.peer != nil {
		ds.peer.Close()
	}
	ds.sceneChanger.ChangeScene(NewMenuScene(ds.sceneChanger))
}

func (ds *DuelScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{22, 22, 32, 255})

	opts := systems.DrawOptions{
		OffsetX: systems.ShakeOffset(ds.effects),
		Flash:   systems.FlashFrames(ds.effects),
	}
	systems.DrawState(screen, &ds.presented, opts)

	var stats *rollback.Stats
	if ds.peer != nil {
		s := ds.stats
		stats = &s
	}
	systems.DrawHUD(screen, &ds.presented, stats)

	systems.DrawEffects(ds.effects, screen)
}
