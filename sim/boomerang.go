package sim

import "math"

// Boomerangs fly one of four fixed paths. Crouch throws alternate paths 1
// and 2, stand throws alternate 3 and 4. Paths 1 and 4 arc over the arena
// while outbound (no collision) and become hazards only on the return leg;
// paths 2 and 3 are hazards outbound and switch height when they turn.
//
//	path 1: crouch, outbound arc   -> returns at ankle height
//	path 2: crouch, outbound ankle -> returns at head height
//	path 3: stand,  outbound head  -> returns at ankle height
//	path 4: stand,  outbound arc   -> returns at head height

// nextBoomerangPath picks the flight path for a throw and advances the
// thrower's per-stance alternation counter.
func nextBoomerangPath(p *Player) uint8 {
	if p.AttackStance == Crouching {
		path := uint8(1 + p.CrouchThrows%2)
		p.CrouchThrows++
		return path
	}
	path := uint8(3 + p.StandThrows%2)
	p.StandThrows++
	return path
}

func outboundHeight(path uint8) Height {
	switch path {
	case 2:
		return HeightAnkle
	case 3:
		return HeightHead
	default: // 1 and 4 arc outbound
		return HeightNone
	}
}

func returnHeight(path uint8) Height {
	switch path {
	case 2, 4:
		return HeightHead
	default: // 1 and 3
		return HeightAnkle
	}
}

// advanceBoomerang moves a boomerang one tick. Outbound it travels straight
// until its range is spent, then turns and homes on its owner; the owner
// catches it within the catch radius, restoring one unit of ammo.
func advanceBoomerang(pr *Projectile, owner *Player) {
	switch pr.Phase {
	case PhaseOutbound:
		pr.X += float64(pr.Dir) * pr.Speed
		pr.Traveled += pr.Speed
		if pr.X < OffscreenMinX || pr.X > OffscreenMaxX {
			pr.Active = false
			return
		}
		if pr.Traveled >= BoomerangRange {
			pr.Phase = PhaseReturning
			pr.Height = returnHeight(pr.Path)
		}
	case PhaseReturning:
		d := owner.X - pr.X
		step := pr.Speed
		if d < 0 {
			pr.Dir = -1
			if -d < step {
				step = -d
			}
		} else {
			pr.Dir = 1
			if d < step {
				step = d
			}
		}
		pr.X += float64(pr.Dir) * step
		pr.Traveled += step

		if math.Abs(owner.X-pr.X) <= BoomerangCatchRadius {
			pr.Active = false
			owner.Ammo++
			if owner.Ammo > BoomerangMaxAmmo {
				owner.Ammo = BoomerangMaxAmmo
			}
		}
	}
}

// ArcOffset is the cosmetic vertical offset of an arcing boomerang, a sine
// bump over the outbound distance fraction. Zero on colliding segments.
func (pr Projectile) ArcOffset() float64 {
	if pr.Kind != KindBoomerang || pr.Phase != PhaseOutbound || pr.Height != HeightNone {
		return 0
	}
	frac := pr.Traveled / BoomerangRange
	if frac > 1 {
		frac = 1
	}
	return math.Sin(math.Pi*frac) * BoomerangArcHeight
}
