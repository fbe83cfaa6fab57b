package config

import "time"

// Playfield dimensions in logical pixels.
// Rendering scales these to whatever the terminal offers.
const (
	FieldWidth  = 640
	FieldHeight = 480
)

// Simulation timing
const (
	TickRate         = 60
	TickTime         = time.Second / TickRate
	SurvivalDuration = 60 * time.Second // Playing ends in a win once this has elapsed
)

// Player
const (
	PlayerWidth          = 48
	PlayerHeight         = 32
	PlayerSpeed          = 5
	PlayerBounceInterval = 24  // Pixels of travel per bob step
	PlayerGunOffset      = -11 // Multiplied by facing, relative to center x
)

// Enemies
const (
	EnemyWidth     = 48
	EnemyHeight    = 32
	EnemyASpeed    = 1
	EnemyBSpeed    = 2
	EnemyCSpeed    = 2
	EnemyGunOffset = 11
	EnemySpawnMaxX = 550 // Spawn x is drawn from [0, EnemySpawnMaxX]
)

// Projectiles
const (
	PlayerProjectileSpeed  = 11
	PlayerProjectileWidth  = 6
	PlayerProjectileHeight = 14
	EnemyProjectileSpeed   = 1
	EnemyProjectileWidth   = 6
	EnemyProjectileHeight  = 10
)

// Effects
const (
	ExplosionSize     = 48
	ExplosionLifetime = 1 // Ticks
)

// Scoring
const (
	ScorePerKill = 1
)

// Client rendering
const (
	MaxTermWidth  = 160 // Columns beyond this are left as border
	MaxTermHeight = 50
)
