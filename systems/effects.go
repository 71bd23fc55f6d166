package systems

import (
	"fmt"
	"image/color"

	"github.com/automoto/duelrang/components"
	cfg "github.com/automoto/duelrang/config"
	"github.com/automoto/duelrang/fonts"
	"github.com/automoto/duelrang/sim"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

const (
	hitFlashFrames  = 8
	effectTickDelta = 1.0 / float32(sim.TicksPerSecond)
)

// SpawnTransitionEffects compares two successively presented states and
// spawns the matching effect entities. It reads the states only; after a
// rollback the same transition can present twice and re-fire an effect,
// which is cosmetic and accepted.
func SpawnTransitionEffects(e *ecs.ECS, prev, cur *sim.State) {
	for i := range cur.Players {
		pp := &prev.Players[i]
		cp := &cur.Players[i]

		if cp.HP < pp.HP {
			spawnFlash(e, i)
			spawnShake(e, 5)
			spawnFloatingText(e, fmt.Sprintf("-%d", pp.HP-cp.HP), cp.X)
		} else if cp.Action == sim.ActionBlockstun && pp.Action != sim.ActionBlockstun {
			spawnShake(e, 2)
			spawnFloatingText(e, "block", cp.X)
		}
	}
}

func spawnFlash(e *ecs.ECS, playerIndex int) {
	entry := e.World.Entry(e.World.Create(components.Flash))
	components.Flash.Set(entry, &components.FlashData{
		PlayerIndex: playerIndex,
		Frames:      hitFlashFrames,
	})
}

func spawnShake(e *ecs.ECS, magnitude float32) {
	entry := e.World.Entry(e.World.Create(components.Shake))
	components.Shake.Set(entry, &components.ShakeData{
		Magnitude: gween.New(magnitude, 0, 0.25, ease.OutQuad),
	})
}

func spawnFloatingText(e *ecs.ECS, label string, x float64) {
	entry := e.World.Entry(e.World.Create(components.FloatingText))
	components.FloatingText.Set(entry, &components.FloatingTextData{
		Text:  label,
		X:     x,
		BaseY: cfg.Arena.GroundY - cfg.Arena.StandHeight - 12,
		Rise:  gween.New(0, 26, 0.6, ease.OutQuad),
	})
}

// UpdateEffects advances every effect entity and removes the finished ones.
func UpdateEffects(e *ecs.ECS) {
	var toRemove []*donburi.Entry

	components.Flash.Each(e.World, func(entry *donburi.Entry) {
		f := components.Flash.Get(entry)
		f.Frames--
		if f.Frames <= 0 {
			toRemove = append(toRemove, entry)
		}
	})

	components.Shake.Each(e.World, func(entry *donburi.Entry) {
		s := components.Shake.Get(entry)
		s.Phase++
		if _, finished := s.Magnitude.Update(effectTickDelta); finished {
			toRemove = append(toRemove, entry)
		}
	})

	components.FloatingText.Each(e.World, func(entry *donburi.Entry) {
		ft := components.FloatingText.Get(entry)
		if ft.Done {
			toRemove = append(toRemove, entry)
			return
		}
		if _, finished := ft.Rise.Update(effectTickDelta); finished {
			ft.Done = true
		}
	})

	for _, entry := range toRemove {
		entry.Remove()
	}
}

// ShakeOffset sums the live shakes into a horizontal screen offset.
func ShakeOffset(e *ecs.ECS) float64 {
	var offset float64
	components.Shake.Each(e.World, func(entry *donburi.Entry) {
		s := components.Shake.Get(entry)
		mag, _ := s.Magnitude.Update(0)
		if s.Phase%2 == 0 {
			offset += float64(mag)
		} else {
			offset -= float64(mag)
		}
	})
	return offset
}

// FlashFrames collects the per-player flash countdowns for the renderer.
func FlashFrames(e *ecs.ECS) [2]int {
	var frames [2]int
	components.Flash.Each(e.World, func(entry *donburi.Entry) {
		f := components.Flash.Get(entry)
		if f.PlayerIndex >= 0 && f.PlayerIndex < 2 && f.Frames > frames[f.PlayerIndex] {
			frames[f.PlayerIndex] = f.Frames
		}
	})
	return frames
}

// DrawEffects renders the floating labels.
func DrawEffects(e *ecs.ECS, screen *ebiten.Image) {
	face := fonts.Duel.Get()
	components.FloatingText.Each(e.World, func(entry *donburi.Entry) {
		ft := components.FloatingText.Get(entry)
		rise, _ := ft.Rise.Update(0)
		text.Draw(screen, ft.Text, face,
			int(ft.X)-8, int(ft.BaseY-float64(rise)),
			color.RGBA{255, 240, 200, 255})
	})
}
