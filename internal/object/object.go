// Package object defines the simulated entities of the playfield and the
// rules that move and spawn them.
package object

import (
	"fmt"

	"github.com/tomz197/spacepirate/internal/config"
	"github.com/tomz197/spacepirate/internal/physics"
)

// ID identifies an entity for the lifetime of a game.
type ID uint64

// Kind tags the variant an Entity represents.
type Kind int

const (
	KindPlayer Kind = iota
	KindEnemyA
	KindEnemyB
	KindEnemyC
	KindProjectile
	KindExplosion
	kindCount
)

var kindNames = [kindCount]string{
	KindPlayer:     "player",
	KindEnemyA:     "enemy-a",
	KindEnemyB:     "enemy-b",
	KindEnemyC:     "enemy-c",
	KindProjectile: "projectile",
	KindExplosion:  "explosion",
}

func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// IsEnemy reports whether k is one of the three enemy archetypes.
func (k Kind) IsEnemy() bool {
	return k == KindEnemyA || k == KindEnemyB || k == KindEnemyC
}

// Faction identifies who fired a projectile.
type Faction int

const (
	FactionPlayer Faction = iota
	FactionEnemy
)

// Entity is any simulated object on the playfield.
// Fields that only apply to some kinds are zero for the others.
type Entity struct {
	ID    ID
	Kind  Kind
	Box   physics.Rect
	Alive bool

	VX, VY float64 // Per-tick velocity (enemies, projectiles)

	Facing  int         // Player: -1 left, +1 right
	Faction Faction     // Projectile: shooter side
	Color   WeaponColor // Projectile: weapon that fired it (player faction only)

	ShotCounter int // EnemyA/EnemyC: ticks since the last bomb
	Lifetime    int // Explosion: ticks left on screen

	originTop float64 // Player: resting top edge the bob is measured from
}

// Field returns the playfield rectangle.
func Field() physics.Rect {
	return physics.NewRect(0, 0, config.FieldWidth, config.FieldHeight)
}

// NewPlayer places the player ship at the bottom center of the field, facing left.
func NewPlayer(id ID, field physics.Rect) *Entity {
	box := physics.MidBottomAt(field.X+field.W/2, field.Bottom(), config.PlayerWidth, config.PlayerHeight)
	return &Entity{
		ID:        id,
		Kind:      KindPlayer,
		Box:       box,
		Alive:     true,
		Facing:    -1,
		originTop: box.Y,
	}
}

// NewEnemy creates an enemy of the given kind with its top-left corner at (x, 0).
func NewEnemy(id ID, kind EnemyKind, x float64) *Entity {
	e := &Entity{
		ID:    id,
		Kind:  kind.Kind(),
		Box:   physics.NewRect(x, 0, config.EnemyWidth, config.EnemyHeight),
		Alive: true,
	}
	switch kind {
	case EnemyA:
		e.VX = config.EnemyASpeed
	case EnemyB:
		e.VY = config.EnemyBSpeed
	case EnemyC:
		e.VX = config.EnemyCSpeed
		e.VY = config.EnemyCSpeed
	}
	return e
}

// NewPlayerProjectile creates a shot of the given color whose bottom edge
// midpoint sits at the gun position (x, y).
func NewPlayerProjectile(id ID, color WeaponColor, x, y float64) *Entity {
	return &Entity{
		ID:      id,
		Kind:    KindProjectile,
		Box:     physics.MidBottomAt(x, y, config.PlayerProjectileWidth, config.PlayerProjectileHeight),
		Alive:   true,
		VY:      -config.PlayerProjectileSpeed,
		Faction: FactionPlayer,
		Color:   color,
	}
}

// NewEnemyProjectile creates a bomb dropped from the gun position (x, y).
func NewEnemyProjectile(id ID, x, y float64) *Entity {
	return &Entity{
		ID:      id,
		Kind:    KindProjectile,
		Box:     physics.MidBottomAt(x, y, config.EnemyProjectileWidth, config.EnemyProjectileHeight),
		Alive:   true,
		VY:      config.EnemyProjectileSpeed,
		Faction: FactionEnemy,
	}
}

// NewExplosion creates a transient explosion centered on the given box.
func NewExplosion(id ID, at physics.Rect) *Entity {
	cx, cy := at.Center()
	return &Entity{
		ID:       id,
		Kind:     KindExplosion,
		Box:      physics.CenteredAt(cx, cy, config.ExplosionSize, config.ExplosionSize),
		Alive:    true,
		Lifetime: config.ExplosionLifetime,
	}
}

// GunPosition returns where shots leave the entity: the top edge offset
// against the facing for the player, the bottom edge for enemies.
func (e *Entity) GunPosition() (float64, float64) {
	cx, _ := e.Box.Center()
	if e.Kind == KindPlayer {
		return cx + float64(e.Facing*config.PlayerGunOffset), e.Box.Y
	}
	return cx + config.EnemyGunOffset, e.Box.Bottom()
}

// Destroy marks the entity dead. It reports false if it already was.
func (e *Entity) Destroy() bool {
	if !e.Alive {
		return false
	}
	e.Alive = false
	return true
}

// IsPlayerShot reports whether e is a projectile fired by the player.
func (e *Entity) IsPlayerShot() bool {
	return e.Kind == KindProjectile && e.Faction == FactionPlayer
}

// IsBomb reports whether e is a projectile fired by an enemy.
func (e *Entity) IsBomb() bool {
	return e.Kind == KindProjectile && e.Faction == FactionEnemy
}
