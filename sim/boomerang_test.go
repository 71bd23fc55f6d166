package sim

import "testing"

func boomerangDuel() State {
	s := NewState(
		[3]WeaponID{WeaponBoomerang, WeaponNone, WeaponNone},
		DefaultLoadout,
	)
	s.Players[0].X = 100
	s.Players[1].X = 600
	return s
}

// throwAndSpawn declares a throw for player 0 and runs until the boomerang
// is in the air.
func throwAndSpawn(t *testing.T, s State, hold Input) State {
	t.Helper()
	declare := hold
	declare.Attack1 = true
	s = Step(s, declare, Neutral)
	s = run(s, Spec(WeaponBoomerang).SpawnFrame, hold, Neutral)
	if len(s.Projectiles) != 1 {
		t.Fatalf("expected one boomerang in flight, got %d", len(s.Projectiles))
	}
	return s
}

// flyOut runs until player 0's boomerang resolves (caught or gone).
func flyOut(t *testing.T, s State, hold Input) State {
	t.Helper()
	for i := 0; i < 300; i++ {
		if len(s.Projectiles) == 0 {
			return s
		}
		checkConservation(t, &s, 0)
		s = Step(s, hold, Neutral)
	}
	t.Fatalf("boomerang never resolved")
	return s
}

func checkConservation(t *testing.T, s *State, owner int8) {
	t.Helper()
	p := s.Players[owner]
	if p.Ammo < 0 {
		t.Fatalf("ammo went negative: %d", p.Ammo)
	}
	inFlight := 0
	for _, pr := range s.Projectiles {
		if pr.Kind == KindBoomerang && pr.Owner == owner && pr.Active {
			inFlight++
		}
	}
	if p.Ammo+inFlight > BoomerangMaxAmmo {
		t.Fatalf("ammo %d + in flight %d exceeds max %d", p.Ammo, inFlight, BoomerangMaxAmmo)
	}
}

func TestCrouchThrowsAlternatePathsAndRestoreAmmo(t *testing.T) {
	crouch := Input{Crouch: true}
	s := boomerangDuel()

	s = throwAndSpawn(t, s, crouch)
	pr := s.Projectiles[0]
	if pr.Path != 1 || pr.Height != HeightNone {
		t.Fatalf("first crouch throw path %d height %d, want path 1 arcing", pr.Path, pr.Height)
	}
	if s.Players[0].Ammo != BoomerangMaxAmmo-1 {
		t.Fatalf("ammo = %d after throw, want %d", s.Players[0].Ammo, BoomerangMaxAmmo-1)
	}

	s = flyOut(t, s, crouch)
	if s.Players[0].Ammo != BoomerangMaxAmmo {
		t.Fatalf("ammo = %d after catch, want %d", s.Players[0].Ammo, BoomerangMaxAmmo)
	}

	s = throwAndSpawn(t, s, crouch)
	pr = s.Projectiles[0]
	if pr.Path != 2 || pr.Height != HeightAnkle {
		t.Fatalf("second crouch throw path %d height %d, want path 2 at ankle", pr.Path, pr.Height)
	}

	s = flyOut(t, s, crouch)
	if s.Players[0].Ammo != BoomerangMaxAmmo {
		t.Fatalf("ammo = %d after second catch, want %d", s.Players[0].Ammo, BoomerangMaxAmmo)
	}
}

func TestStandThrowsAlternatePaths(t *testing.T) {
	s := boomerangDuel()

	s = throwAndSpawn(t, s, Neutral)
	pr := s.Projectiles[0]
	if pr.Path != 3 || pr.Height != HeightHead {
		t.Fatalf("first stand throw path %d height %d, want path 3 at head", pr.Path, pr.Height)
	}

	s = flyOut(t, s, Neutral)
	s = throwAndSpawn(t, s, Neutral)
	pr = s.Projectiles[0]
	if pr.Path != 4 || pr.Height != HeightNone {
		t.Fatalf("second stand throw path %d height %d, want path 4 arcing", pr.Path, pr.Height)
	}
}

func TestBoomerangTurnsAtRangeAndSwitchesHeight(t *testing.T) {
	s := boomerangDuel()
	s = throwAndSpawn(t, s, Neutral) // path 3: head out, ankle back

	for i := 0; i < 300 && s.Projectiles[0].Phase == PhaseOutbound; i++ {
		s = Step(s, Neutral, Neutral)
	}
	pr := s.Projectiles[0]
	if pr.Phase != PhaseReturning {
		t.Fatalf("boomerang never turned")
	}
	if pr.Traveled < BoomerangRange {
		t.Fatalf("turned early at %f", pr.Traveled)
	}
	if pr.Height != HeightAnkle {
		t.Fatalf("return height = %d, want ankle", pr.Height)
	}
}

func TestReturnLegHitsStandingDefender(t *testing.T) {
	s := boomerangDuel()
	s.Players[1].X = 300

	// Path 3 flies out at head height; the defender ducks under it, then
	// stands back up into the ankle-high return leg.
	declare := Input{Attack1: true}
	s = Step(s, declare, Input{Crouch: true})
	for i := 0; i < 300; i++ {
		if s.Players[1].Action == ActionHitstun {
			break
		}
		duck := Neutral
		if len(s.Projectiles) == 0 || s.Projectiles[0].Phase == PhaseOutbound {
			duck = Input{Crouch: true}
		}
		s = Step(s, Neutral, duck)
	}

	def := s.Players[1]
	if def.Action != ActionHitstun {
		t.Fatalf("return leg never connected: %+v", def)
	}
	if def.HP != MaxHP-1 {
		t.Fatalf("defender HP = %d, want %d", def.HP, MaxHP-1)
	}
}

func TestAmmoRunsOutAndRecovers(t *testing.T) {
	crouch := Input{Crouch: true}
	s := boomerangDuel()

	// Two quick throws empty the clip.
	s = throwAndSpawn(t, s, crouch)
	s = run(s, Spec(WeaponBoomerang).TotalFrames, crouch, Neutral)
	s = throwAndSpawn(t, s, crouch)
	if s.Players[0].Ammo != 0 {
		t.Fatalf("ammo = %d after two throws, want 0", s.Players[0].Ammo)
	}

	// A third trigger with nothing to throw is a no-op.
	declare := crouch
	declare.Attack1 = true
	probe := Step(s, declare, Neutral)
	if probe.Players[0].Action == ActionAttacking {
		t.Fatalf("attack started with no ammo")
	}

	for i := 0; i < 400 && len(s.Projectiles) > 0; i++ {
		checkConservation(t, &s, 0)
		s = Step(s, crouch, Neutral)
	}
	if s.Players[0].Ammo != BoomerangMaxAmmo {
		t.Fatalf("ammo = %d after both catches, want %d", s.Players[0].Ammo, BoomerangMaxAmmo)
	}
}
