package sim

// Step advances the simulation by one tick. It is a pure function of its
// three arguments: no clocks, no randomness, no retained references. The
// rollback layer relies on calling it many times per real frame during
// resimulation and getting identical results every time.
func Step(s State, left, right Input) State {
	next := s.Clone()
	inputs := [2]Input{left, right}

	if next.Outcome != OutcomeNone {
		return next
	}

	// Hitstop freezes gameplay but not the clock.
	if next.Hitstop > 0 {
		next.Hitstop--
		next.Tick++
		return next
	}

	for i := range next.Players {
		stepPlayer(&next, i, inputs[i])
	}

	resolveBodyOverlap(&next)
	advanceProjectiles(&next)
	resolveMelee(&next)
	resolveProjectileHits(&next)
	checkOutcome(&next)

	next.Projectiles = pruneProjectiles(next.Projectiles)
	next.PrevInputs = inputs
	next.Tick++
	return next
}

// stepPlayer runs timers, stance, movement, and attack starts for one player.
func stepPlayer(s *State, i int, in Input) {
	p := &s.Players[i]

	if p.Action != ActionIdle {
		p.ActionTimer--
		if p.ActionTimer <= 0 {
			p.Action = ActionIdle
			p.ActionTimer = 0
			p.ActiveWeapon = WeaponNone
			p.Spawned = false
		}
	}

	if p.Action == ActionHitstun || p.Action == ActionBlockstun {
		return
	}

	// Stance and facing are mutable only while idle; an attack keeps both
	// frozen for its whole duration.
	if p.Action == ActionIdle {
		if in.Crouch {
			p.Stance = Crouching
		} else {
			p.Stance = Standing
		}
	}

	dx := 0.0
	if in.Left {
		dx -= WalkSpeed
	}
	if in.Right {
		dx += WalkSpeed
	}
	if p.Action == ActionIdle && dx != 0 {
		if dx > 0 {
			p.Facing = 1
		} else {
			p.Facing = -1
		}
	}
	// Crouching forbids horizontal movement.
	if p.Stance == Standing && dx != 0 {
		p.X = clamp(p.X+dx, ArenaMinX, ArenaMaxX)
	}

	if p.Action == ActionIdle {
		tryStartAttack(p, in, s.PrevInputs[i])
	}

	if p.Action == ActionAttacking {
		w := Spec(p.ActiveWeapon)
		if (w.Class == ClassKnife || w.Class == ClassBoomerang) && !p.Spawned {
			elapsed := w.TotalFrames - p.ActionTimer
			if elapsed >= w.SpawnFrame {
				spawnProjectile(s, int8(i), p, w)
				p.Spawned = true
			}
		}
	}
}

// tryStartAttack starts an attack on the first weapon slot whose trigger
// rose this tick. A boomerang slot with no ammo does not match; later
// triggered slots still get their chance.
func tryStartAttack(p *Player, in, prev Input) {
	triggers := [3]bool{
		in.Attack1 && !prev.Attack1,
		in.Attack2 && !prev.Attack2,
		in.Attack3 && !prev.Attack3,
	}
	for slot, fired := range triggers {
		if !fired {
			continue
		}
		id := p.Loadout[slot]
		if id == WeaponNone {
			continue
		}
		w := Spec(id)
		if w.Class == ClassBoomerang && p.Ammo <= 0 {
			continue
		}
		p.Action = ActionAttacking
		p.ActionTimer = w.TotalFrames
		p.ActiveWeapon = id
		p.AttackStance = p.Stance
		p.Spawned = false
		return
	}
}

// spawnProjectile appends the projectile for an in-progress throw.
func spawnProjectile(s *State, owner int8, p *Player, w WeaponSpec) {
	pr := Projectile{
		Owner:  owner,
		X:      p.X + float64(p.Facing)*(PlayerWidth/2),
		Dir:    p.Facing,
		Speed:  w.Speed,
		Damage: w.Damage,
		Active: true,
	}
	switch w.Class {
	case ClassKnife:
		pr.Kind = KindKnife
		// Knives fly flat at the height they were thrown from.
		if p.AttackStance == Crouching {
			pr.Height = HeightAnkle
		} else {
			pr.Height = HeightHead
		}
	case ClassBoomerang:
		pr.Kind = KindBoomerang
		pr.Path = nextBoomerangPath(p)
		pr.Height = outboundHeight(pr.Path)
		p.Ammo--
	}
	s.Projectiles = append(s.Projectiles, pr)
}

// resolveBodyOverlap pushes intersecting players apart symmetrically and
// transfers wall-induced corrections so total separation is preserved.
func resolveBodyOverlap(s *State) {
	a := &s.Players[0]
	b := &s.Players[1]
	d := b.X - a.X
	if d < 0 {
		d = -d
	}
	if d >= PlayerWidth {
		return
	}
	push := (PlayerWidth - d) / 2

	lo, hi := a, b
	if b.X < a.X {
		lo, hi = b, a
	} else if a.X == b.X {
		// Exact overlap: the player facing right yields the left side.
		if b.Facing > a.Facing {
			lo, hi = b, a
		}
	}
	lo.X -= push
	hi.X += push

	if lo.X < ArenaMinX {
		hi.X += ArenaMinX - lo.X
		lo.X = ArenaMinX
	}
	if hi.X > ArenaMaxX {
		lo.X -= hi.X - ArenaMaxX
		hi.X = ArenaMaxX
	}
	lo.X = clamp(lo.X, ArenaMinX, ArenaMaxX)
	hi.X = clamp(hi.X, ArenaMinX, ArenaMaxX)
}

// advanceProjectiles moves every active projectile one tick.
func advanceProjectiles(s *State) {
	for i := range s.Projectiles {
		pr := &s.Projectiles[i]
		if !pr.Active {
			continue
		}
		switch pr.Kind {
		case KindKnife:
			pr.X += float64(pr.Dir) * pr.Speed
			pr.Traveled += pr.Speed
			if pr.X < OffscreenMinX || pr.X > OffscreenMaxX {
				pr.Active = false
			}
		case KindBoomerang:
			advanceBoomerang(pr, &s.Players[pr.Owner])
		}
	}
}

// resolveMelee lands melee attacks on the exact frame the active window
// opens, which also guarantees a swing can never hit twice.
func resolveMelee(s *State) {
	for i := range s.Players {
		atk := &s.Players[i]
		def := &s.Players[1-i]

		if atk.Action != ActionAttacking {
			continue
		}
		w := Spec(atk.ActiveWeapon)
		if w.Class != ClassMelee {
			continue
		}
		if w.TotalFrames-atk.ActionTimer != w.ActiveFrame {
			continue
		}
		if def.Action == ActionHitstun {
			continue
		}

		// Front hits only: the defender must be on the attacker's facing side.
		toward := float64(atk.Facing) * (def.X - atk.X)
		if toward < 0 {
			continue
		}
		// Front edge of the attacker to the near edge of the defender.
		if toward-PlayerWidth > w.Range {
			continue
		}

		applyHit(s, def, atk.X, attackHeight(atk.AttackStance), w.Damage, false)
	}
}

// resolveProjectileHits checks active projectiles against the opposing
// player. The no-collision arcing segment (HeightNone) never connects, and
// head-height projectiles pass clean over a crouching player.
func resolveProjectileHits(s *State) {
	for i := range s.Projectiles {
		pr := &s.Projectiles[i]
		if !pr.Active || pr.Height == HeightNone {
			continue
		}
		def := &s.Players[1-pr.Owner]
		if def.Action == ActionHitstun {
			continue
		}
		d := pr.X - def.X
		if d < 0 {
			d = -d
		}
		if d >= PlayerWidth/2+ProjectileHalfWidth {
			continue
		}
		if pr.Height == HeightHead && def.Stance == Crouching {
			continue
		}
		applyHit(s, def, pr.X, pr.Height, pr.Damage, true)
		pr.Active = false
	}
}

// applyHit applies the shared blocking rule: a hit is blocked iff the
// defender faces the attack's origin and their shield height matches the
// attack height. An attack on the defender's back always connects. The
// shield stops any matched projectile, but against melee it only stops
// low strikes; a standing swing comes down over a raised shield.
func applyHit(s *State, def *Player, originX float64, height Height, damage int, projectile bool) {
	facingOrigin := true
	if originX < def.X && def.Facing > 0 {
		facingOrigin = false
	}
	if originX > def.X && def.Facing < 0 {
		facingOrigin = false
	}

	blockable := projectile || height == HeightAnkle
	if facingOrigin && blockable && shieldHeight(def.Stance) == height {
		def.Action = ActionBlockstun
		def.ActionTimer = BlockstunFrames
		def.ActiveWeapon = WeaponNone
		def.Spawned = false
		if s.Hitstop < HitstopBlock {
			s.Hitstop = HitstopBlock
		}
		return
	}

	def.HP -= damage
	if def.HP < 0 {
		def.HP = 0
	}
	def.Action = ActionHitstun
	def.ActionTimer = HitstunFrames
	def.ActiveWeapon = WeaponNone
	def.Spawned = false
	if s.Hitstop < HitstopHit {
		s.Hitstop = HitstopHit
	}
}

func checkOutcome(s *State) {
	leftDead := s.Players[0].HP == 0
	rightDead := s.Players[1].HP == 0
	switch {
	case leftDead && rightDead:
		s.Outcome = OutcomeDraw
	case leftDead:
		s.Outcome = OutcomeRightWins
	case rightDead:
		s.Outcome = OutcomeLeftWins
	}
}

// pruneProjectiles drops inactive projectiles, in place on the clone.
func pruneProjectiles(prs []Projectile) []Projectile {
	out := prs[:0]
	for _, pr := range prs {
		if pr.Active {
			out = append(out, pr)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
