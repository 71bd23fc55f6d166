package sim

// Stance is a player's current posture.
type Stance uint8

const (
	Standing Stance = iota
	Crouching
)

// Action is a player's current action state.
type Action uint8

const (
	ActionIdle Action = iota
	ActionAttacking
	ActionHitstun
	ActionBlockstun
)

// Height is a hit-detection height. HeightNone marks projectiles that are
// arcing and cannot collide.
type Height uint8

const (
	HeightNone Height = iota
	HeightHead
	HeightAnkle
)

// Outcome is the match result.
type Outcome uint8

const (
	OutcomeNone Outcome = iota
	OutcomeLeftWins
	OutcomeRightWins
	OutcomeDraw
)

// Player is the full simulated state of one fighter.
type Player struct {
	X      float64
	Facing int8 // +1 right, -1 left
	Stance Stance
	HP     int

	Loadout [3]WeaponID

	Action       Action
	ActionTimer  int      // remaining frames of the current action
	ActiveWeapon WeaponID // weapon of the attack in progress
	AttackStance Stance   // stance locked in when the attack was declared
	Spawned      bool     // projectile already spawned during this attack

	Ammo         int // boomerang ammo
	CrouchThrows uint8
	StandThrows  uint8
}

// ProjectileKind distinguishes projectile behavior.
type ProjectileKind uint8

const (
	KindKnife ProjectileKind = iota
	KindBoomerang
)

// Phase is a boomerang's flight leg.
type Phase uint8

const (
	PhaseOutbound Phase = iota
	PhaseReturning
)

// Projectile is one in-flight projectile.
type Projectile struct {
	Kind     ProjectileKind
	Owner    int8 // player index 0 or 1
	X        float64
	Dir      int8 // current travel direction, +1 or -1
	Speed    float64
	Damage   int
	Height   Height // current hit-detection height
	Path     uint8  // boomerang flight path 1..4
	Phase    Phase
	Traveled float64
	Active   bool
}

// State is the whole simulation state for one tick. It is treated as a
// value: Step never mutates its argument, and Clone produces a snapshot
// that shares nothing with the original.
type State struct {
	Tick        int
	Players     [2]Player
	Projectiles []Projectile
	Outcome     Outcome
	Hitstop     int
	PrevInputs  [2]Input // previous tick's inputs, for edge-triggered attacks
}

// NewState builds the initial state for a match with the given loadouts.
// Player 0 spawns on the left facing right, player 1 mirrored.
func NewState(left, right [3]WeaponID) State {
	return State{
		Players: [2]Player{
			{X: SpawnXLeft, Facing: 1, HP: MaxHP, Loadout: left, Ammo: BoomerangMaxAmmo},
			{X: SpawnXRight, Facing: -1, HP: MaxHP, Loadout: right, Ammo: BoomerangMaxAmmo},
		},
	}
}

// Clone returns a deep copy. Only the projectile slice needs copying; all
// other fields are plain values.
func (s State) Clone() State {
	c := s
	if len(s.Projectiles) > 0 {
		c.Projectiles = make([]Projectile, len(s.Projectiles))
		copy(c.Projectiles, s.Projectiles)
	} else {
		c.Projectiles = nil
	}
	return c
}

// shieldHeight is the height a player's shield covers in their stance.
func shieldHeight(st Stance) Height {
	if st == Crouching {
		return HeightAnkle
	}
	return HeightHead
}

// attackHeight is the height of a melee attack declared from a stance.
func attackHeight(st Stance) Height {
	if st == Crouching {
		return HeightAnkle
	}
	return HeightHead
}
