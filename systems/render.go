package systems

import (
	"image/color"

	cfg "github.com/automoto/duelrang/config"
	"github.com/automoto/duelrang/sim"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// DrawOptions carries presentation-only modifiers from the effects layer.
type DrawOptions struct {
	OffsetX float64 // screen shake
	Flash   [2]int  // per-player white-flash frames remaining
}

// DrawState renders one simulation state. Everything here is read-only
// over the state; fighters are vector silhouettes, weapons are reach bars,
// projectiles are pips on their height lane.
func DrawState(screen *ebiten.Image, s *sim.State, opts DrawOptions) {
	ox := float32(opts.OffsetX)

	// Arena floor and walls.
	vector.DrawFilledRect(screen,
		ox, float32(cfg.Arena.GroundY),
		float32(cfg.C.Width), 3, cfg.HUD.GroundColor, false)
	vector.DrawFilledRect(screen,
		ox+float32(sim.ArenaMinX-sim.PlayerWidth/2)-3, float32(cfg.Arena.GroundY-60),
		3, 60, cfg.HUD.GroundColor, false)
	vector.DrawFilledRect(screen,
		ox+float32(sim.ArenaMaxX+sim.PlayerWidth/2), float32(cfg.Arena.GroundY-60),
		3, 60, cfg.HUD.GroundColor, false)

	for i := range s.Players {
		drawPlayer(screen, &s.Players[i], playerColor(i), opts.Flash[i], ox)
	}
	for i := range s.Projectiles {
		drawProjectile(screen, &s.Projectiles[i], ox)
	}
}

func playerColor(i int) color.RGBA {
	if i == 0 {
		return cfg.HUD.LeftColor
	}
	return cfg.HUD.RightColor
}

func drawPlayer(screen *ebiten.Image, p *sim.Player, col color.RGBA, flash int, ox float32) {
	h := cfg.Arena.StandHeight
	if p.Stance == sim.Crouching {
		h = cfg.Arena.CrouchHeight
	}
	x := float32(p.X-sim.PlayerWidth/2) + ox
	y := float32(cfg.Arena.GroundY - h)

	body := col
	switch {
	case flash > 0:
		body = cfg.HUD.HitColor
	case p.Action == sim.ActionHitstun:
		body = color.RGBA{col.R, col.G / 2, col.B / 2, 255}
	case p.Action == sim.ActionBlockstun:
		body = cfg.HUD.BlockColor
	}
	vector.DrawFilledRect(screen, x, y, float32(sim.PlayerWidth), float32(h), body, false)

	// Facing notch at head height.
	notchX := float32(p.X) + float32(p.Facing)*float32(sim.PlayerWidth/2) + ox
	if p.Facing > 0 {
		vector.DrawFilledRect(screen, notchX, y+4, 5, 5, cfg.HUD.HitColor, false)
	} else {
		vector.DrawFilledRect(screen, notchX-5, y+4, 5, 5, cfg.HUD.HitColor, false)
	}

	// Melee reach bar while an attack is live.
	if p.Action == sim.ActionAttacking {
		w := sim.Spec(p.ActiveWeapon)
		if w.Class == sim.ClassMelee {
			elapsed := w.TotalFrames - p.ActionTimer
			progress := float64(elapsed) / float64(w.ActiveFrame)
			if progress > 1 {
				progress = 1
			}
			reach := w.Range * progress
			armY := cfg.Arena.GroundY - cfg.Arena.StandHeight + 14
			if p.AttackStance == sim.Crouching {
				armY = cfg.Arena.GroundY - 10
			}
			start := p.X + float64(p.Facing)*sim.PlayerWidth/2
			if p.Facing > 0 {
				vector.DrawFilledRect(screen, float32(start)+ox, float32(armY), float32(reach), 4, col, false)
			} else {
				vector.DrawFilledRect(screen, float32(start-reach)+ox, float32(armY), float32(reach), 4, col, false)
			}
		}
	}
}

func drawProjectile(screen *ebiten.Image, pr *sim.Projectile, ox float32) {
	if !pr.Active {
		return
	}
	var y float64
	switch pr.Height {
	case sim.HeightHead:
		y = cfg.Arena.HeadY
	case sim.HeightAnkle:
		y = cfg.Arena.AnkleY
	default:
		// Arcing segment rides the sine bump above head height.
		y = cfg.Arena.HeadY - pr.ArcOffset()
	}

	col := cfg.HUD.AmmoPipColor
	if pr.Kind == sim.KindKnife {
		col = cfg.HUD.BannerColor
	}
	vector.DrawFilledRect(screen,
		float32(pr.X-sim.ProjectileHalfWidth)+ox, float32(y-4),
		float32(sim.ProjectileHalfWidth*2), 8, col, false)
}
