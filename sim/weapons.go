package sim

// WeaponID identifies an equippable weapon.
type WeaponID uint8

const (
	WeaponNone WeaponID = iota
	WeaponSword
	WeaponSpear
	WeaponKnife
	WeaponBoomerang
	weaponCount
)

// WeaponClass groups weapons by how their attacks resolve.
type WeaponClass uint8

const (
	ClassMelee WeaponClass = iota
	ClassKnife
	ClassBoomerang
)

// WeaponSpec describes a weapon's timing and reach.
type WeaponSpec struct {
	Name        string
	Class       WeaponClass
	Damage      int
	Range       float64 // melee reach, attacker front edge to defender near edge
	TotalFrames int     // full attack duration
	ActiveFrame int     // melee: the single frame the hit window opens
	SpawnFrame  int     // projectile classes: frame the projectile appears
	Speed       float64 // projectile travel speed per tick
}

var weaponSpecs = [weaponCount]WeaponSpec{
	WeaponNone: {Name: "none"},
	WeaponSword: {
		Name:        "sword",
		Class:       ClassMelee,
		Damage:      1,
		Range:       60,
		TotalFrames: 30,
		ActiveFrame: 10,
	},
	WeaponSpear: {
		Name:        "spear",
		Class:       ClassMelee,
		Damage:      1,
		Range:       95,
		TotalFrames: 44,
		ActiveFrame: 18,
	},
	WeaponKnife: {
		Name:        "knife",
		Class:       ClassKnife,
		Damage:      1,
		TotalFrames: 26,
		SpawnFrame:  8,
		Speed:       8,
	},
	WeaponBoomerang: {
		Name:        "boomerang",
		Class:       ClassBoomerang,
		Damage:      1,
		TotalFrames: 30,
		SpawnFrame:  10,
		Speed:       6,
	},
}

// Spec returns the spec for a weapon. Unknown IDs map to WeaponNone.
func Spec(id WeaponID) WeaponSpec {
	if id >= weaponCount {
		return weaponSpecs[WeaponNone]
	}
	return weaponSpecs[id]
}

// SelectableWeapons lists the weapons offered on the loadout screen.
var SelectableWeapons = []WeaponID{WeaponSword, WeaponSpear, WeaponKnife, WeaponBoomerang}

// DefaultLoadout is used until a player picks their own.
var DefaultLoadout = [3]WeaponID{WeaponSword, WeaponKnife, WeaponBoomerang}
