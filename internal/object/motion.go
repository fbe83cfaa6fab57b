package object

import (
	"github.com/tomz197/spacepirate/internal/config"
	"github.com/tomz197/spacepirate/internal/physics"
)

// MotionContext is what a motion policy may read during a tick.
type MotionContext struct {
	Field     physics.Rect
	Direction int // Player movement intent: -1, 0 or +1
}

// MotionPolicy advances one entity by a tick.
// It returns true if the entity left the playfield and should be removed.
type MotionPolicy func(e *Entity, ctx MotionContext) (remove bool)

// motionPolicies dispatches on entity kind.
var motionPolicies = [kindCount]MotionPolicy{
	KindPlayer:     movePlayer,
	KindEnemyA:     moveEnemyA,
	KindEnemyB:     moveEnemyB,
	KindEnemyC:     moveEnemyC,
	KindProjectile: moveProjectile,
	KindExplosion:  ageExplosion,
}

// Update advances the entity by one tick using the policy for its kind.
// Dead entities do not move.
func (e *Entity) Update(ctx MotionContext) (remove bool) {
	if !e.Alive {
		return true
	}
	return motionPolicies[e.Kind](e, ctx)
}

// movePlayer slides the ship horizontally, clamps it to the field and
// applies the cosmetic bob.
func movePlayer(e *Entity, ctx MotionContext) bool {
	dir := ctx.Direction
	switch {
	case dir < 0:
		dir = -1
	case dir > 0:
		dir = 1
	}
	if dir != 0 {
		e.Facing = dir
	}

	box := e.Box.Moved(float64(dir*config.PlayerSpeed), 0).ClampInto(ctx.Field)
	// Bob by one pixel on alternating bounce intervals
	box.Y = e.originTop - float64(int(box.X-ctx.Field.X)/config.PlayerBounceInterval%2)
	e.Box = box
	return false
}

// moveEnemyA patrols horizontally, reflecting off the side edges.
func moveEnemyA(e *Entity, ctx MotionContext) bool {
	next := e.Box.Moved(e.VX, 0)
	if next.OutsideX(ctx.Field) {
		e.VX = -e.VX
		next = e.Box.Moved(e.VX, 0)
	}
	e.Box = next
	return false
}

// moveEnemyB patrols vertically, reflecting off the top and bottom edges.
func moveEnemyB(e *Entity, ctx MotionContext) bool {
	next := e.Box.Moved(0, e.VY)
	if next.OutsideY(ctx.Field) {
		e.VY = -e.VY
		next = e.Box.Moved(0, e.VY)
	}
	e.Box = next
	return false
}

// moveEnemyC descends, turns diagonal below the upper third, climbs back
// once it reaches the lower third and bounces off every edge.
func moveEnemyC(e *Entity, ctx MotionContext) bool {
	f := ctx.Field
	third := f.H / 3

	dx, dy := 0.0, e.VY
	if e.Box.Bottom() > f.Y+third {
		dx, dy = e.VX, e.VY/2
	}
	if e.Box.Bottom() > f.Bottom()-third {
		e.VY = -e.VY
		dx, dy = 0, e.VY
	}

	next := e.Box.Moved(dx, dy)
	if next.OutsideX(f) {
		e.VX = -e.VX
		next = e.Box.Moved(e.VX, 0)
	}
	if next.OutsideY(f) {
		e.VY = -e.VY
		next = e.Box.Moved(0, 2*e.VY)
	}
	e.Box = next
	return false
}

// moveProjectile flies straight along VY and is removed on reaching the
// edge it travels toward: the top for player shots, the bottom for bombs.
func moveProjectile(e *Entity, ctx MotionContext) bool {
	e.Box = e.Box.Moved(0, e.VY)
	switch {
	case e.VY < 0:
		return e.Box.Y <= ctx.Field.Y
	case e.VY > 0:
		return e.Box.Bottom() >= ctx.Field.Bottom()
	}
	return false
}

// ageExplosion removes the explosion once its lifetime has run out.
func ageExplosion(e *Entity, _ MotionContext) bool {
	e.Lifetime--
	return e.Lifetime <= 0
}
