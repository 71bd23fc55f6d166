package systems

import (
	"fmt"

	cfg "github.com/automoto/duelrang/config"
	"github.com/automoto/duelrang/fonts"
	"github.com/automoto/duelrang/rollback"
	"github.com/automoto/duelrang/sim"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// DrawHUD renders both players' health bars and ammo pips, the outcome
// banner, and (when enabled) the netcode diagnostics line.
func DrawHUD(screen *ebiten.Image, s *sim.State, stats *rollback.Stats) {
	m := float32(cfg.HUD.Margin)
	w := float32(cfg.HUD.BarWidth)
	h := float32(cfg.HUD.BarHeight)

	drawHealthBar(screen, &s.Players[0], m, m, w, h, false)
	drawHealthBar(screen, &s.Players[1], float32(cfg.C.Width)-m-w, m, w, h, true)

	if s.Outcome != sim.OutcomeNone {
		drawBanner(screen, s.Outcome)
	}

	if stats != nil && cfg.Net.ShowDiagnostics {
		line := fmt.Sprintf("pred %d  rb %d  depth %d/%d",
			stats.PredictedTicks, stats.Rollbacks, stats.LastDepth, stats.MaxDepth)
		text.Draw(screen, line, fonts.DuelSmall.Get(),
			int(m), cfg.C.Height-8, cfg.HUD.DiagColor)
	}
}

// drawHealthBar draws one player's bar; mirrored bars deplete toward the
// screen edge.
func drawHealthBar(screen *ebiten.Image, p *sim.Player, x, y, w, h float32, mirrored bool) {
	vector.DrawFilledRect(screen, x, y, w, h, cfg.HUD.BarBgColor, false)

	ratio := float32(p.HP) / float32(sim.MaxHP)
	fw := w * ratio
	fx := x
	if mirrored {
		fx = x + w - fw
	}
	vector.DrawFilledRect(screen, fx, y, fw, h, cfg.HUD.BarFgColor, false)

	drawAmmoPips(screen, p, x, y+h+4, mirrored)
}

// drawAmmoPips shows boomerang ammo under the bar, only when the loadout
// carries one.
func drawAmmoPips(screen *ebiten.Image, p *sim.Player, x, y float32, mirrored bool) {
	hasBoomerang := false
	for _, id := range p.Loadout {
		if sim.Spec(id).Class == sim.ClassBoomerang {
			hasBoomerang = true
			break
		}
	}
	if !hasBoomerang {
		return
	}
	for i := 0; i < p.Ammo; i++ {
		px := x + float32(i)*10
		if mirrored {
			px = x + float32(cfg.HUD.BarWidth) - 8 - float32(i)*10
		}
		vector.DrawFilledRect(screen, px, y, 8, 8, cfg.HUD.AmmoPipColor, false)
	}
}

func drawBanner(screen *ebiten.Image, outcome sim.Outcome) {
	var msg string
	switch outcome {
	case sim.OutcomeLeftWins:
		msg = "PLAYER 1 WINS"
	case sim.OutcomeRightWins:
		msg = "PLAYER 2 WINS"
	case sim.OutcomeDraw:
		msg = "DRAW"
	}
	face := fonts.DuelTitle.Get()
	bounds := text.BoundString(face, msg)
	x := (cfg.C.Width - bounds.Dx()) / 2
	text.Draw(screen, msg, face, x, cfg.C.Height/2-30, cfg.HUD.BannerColor)

	hint := "R rematch   T reselect   ESC menu"
	hf := fonts.Duel.Get()
	hb := text.BoundString(hf, hint)
	text.Draw(screen, hint, hf, (cfg.C.Width-hb.Dx())/2, cfg.C.Height/2, cfg.HUD.DiagColor)
}
