package scenes

import (
	"context"
	"fmt"
	"image/color"
	"log"

	cfg "github.com/automoto/duelrang/config"
	"github.com/automoto/duelrang/fonts"
	"github.com/automoto/duelrang/netplay"
	"github.com/automoto/duelrang/rollback"
	"github.com/automoto/duelrang/ui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
)

type connectResult struct {
	peer *netplay.Peer
	err  error
}

// ConnectScene waits for the peer connection to come up. Hosting listens
// for the opponent; joining dials them. Esc cancels either.
type ConnectScene struct {
	sceneChanger SceneChanger
	faces        *ui.Faces

	hosting bool
	addr    string

	cancel   context.CancelFunc
	resultCh chan connectResult
	err      error
}

func NewConnectScene(sc SceneChanger, faces *ui.Faces, hosting bool, addr string) *ConnectScene {
	ctx, cancel := context.WithCancel(context.Background())
	cs := &ConnectScene{
		sceneChanger: sc,
		faces:        faces,
		hosting:      hosting,
		addr:         addr,
		cancel:       cancel,
		resultCh:     make(chan connectResult, 1),
	}

	go func() {
		var peer *netplay.Peer
		var err error
		if hosting {
			peer, err = netplay.Host(ctx, addr)
		} else {
			peer, err = netplay.Join(ctx, "ws://"+addr)
		}
		cs.resultCh <- connectResult{peer: peer, err: err}
	}()

	return cs
}

func (cs *ConnectScene) Update() {
	select {
	case res := <-cs.resultCh:
		if res.err != nil {
			log.Printf("[connect] failed: %v", res.err)
			cs.err = res.err
			return
		}
		role := rollback.RoleGuest
		if cs.hosting {
			role = rollback.RoleHost
		}
		cs.sceneChanger.ChangeScene(NewSelectScene(cs.sceneChanger, cs.faces, res.peer, role))
	default:
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		cs.cancel()
		cs.sceneChanger.ChangeScene(NewMenuScene(cs.sceneChanger))
	}
}

func (cs *ConnectScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{15, 15, 25, 255})

	var msg string
	switch {
	case cs.err != nil:
		msg = fmt.Sprintf("connection failed: %v  (ESC for menu)", cs.err)
	case cs.hosting:
		msg = fmt.Sprintf("hosting on %s - waiting for opponent...", cs.addr)
	default:
		msg = fmt.Sprintf("joining %s...", cs.addr)
	}
	face := fonts.Duel.Get()
	bounds := text.BoundString(face, msg)
	text.Draw(screen, msg, face, (cfg.C.Width-bounds.Dx())/2, cfg.C.Height/2, color.White)
}
