package sim

// Gameplay constants. Everything in this file feeds the deterministic step,
// so both peers must be built from identical values; keep presentation-only
// tuning in config/ instead.
const (
	TicksPerSecond = 60

	ArenaMinX   = 20.0
	ArenaMaxX   = 620.0
	PlayerWidth = 24.0

	// Off-screen bounds for projectile pruning, slightly outside the arena
	// so projectiles visibly leave before despawning.
	OffscreenMinX = -40.0
	OffscreenMaxX = 680.0

	SpawnXLeft  = 220.0
	SpawnXRight = 420.0

	WalkSpeed = 2.5
	MaxHP     = 3

	HitstunFrames   = 20
	BlockstunFrames = 12
	HitstopHit      = 8
	HitstopBlock    = 4

	ProjectileHalfWidth = 6.0

	BoomerangMaxAmmo     = 2
	BoomerangRange       = 260.0
	BoomerangCatchRadius = 14.0
	BoomerangArcHeight   = 40.0
)
