package loop

import (
	"github.com/tomz197/spacepirate/internal/audio"
	"github.com/tomz197/spacepirate/internal/config"
	"github.com/tomz197/spacepirate/internal/object"
	"github.com/tomz197/spacepirate/internal/physics"
)

// gridCellSize must cover the largest center distance at which two boxes
// can overlap (player or enemy against an enemy: 48 across, 32 down).
const gridCellSize = 64

// CollisionResult summarizes what one resolution pass did.
type CollisionResult struct {
	Kills        int         // Enemies destroyed by matching shots
	PlayerKilled bool        // Category 4 or 5 fired
	PlayerKiller object.Kind // KindEnemyB or KindProjectile when PlayerKilled
}

// Resolver runs the per-tick collision categories in their fixed order:
// green shots against A, red against B, yellow against C, the player
// against B, then the player against bombs.
type Resolver struct {
	grid *physics.SpatialGrid

	// Reusable buffers
	shots   []*object.Entity
	bombs   []*object.Entity
	enemies []*object.Entity // Indexed by grid item index, in spawn order
}

// NewResolver creates a resolver for a playfield of the given size.
func NewResolver(field physics.Rect) *Resolver {
	return &Resolver{
		grid: physics.NewSpatialGrid(field.W, field.H, gridCellSize),
	}
}

// collectCollidables sorts the alive entities into the resolver's buffers
// and loads the enemies into the grid.
func (r *Resolver) collectCollidables(entities []*object.Entity) {
	r.shots = r.shots[:0]
	r.bombs = r.bombs[:0]
	r.enemies = r.enemies[:0]
	r.grid.Clear()

	for _, e := range entities {
		if !e.Alive {
			continue
		}
		switch {
		case e.IsPlayerShot():
			r.shots = append(r.shots, e)
		case e.IsBomb():
			r.bombs = append(r.bombs, e)
		case e.Kind.IsEnemy():
			r.grid.Insert(e.Box, len(r.enemies))
			r.enemies = append(r.enemies, e)
		}
	}
}

// Resolve applies every collision for this tick to w. Destroyed entities
// stay in the entity list marked dead until the next compaction; explosions
// are queued and flushed before returning. Cues are appended to cues.
func (r *Resolver) Resolve(w *World, cues *[]audio.Cue) CollisionResult {
	var res CollisionResult
	r.collectCollidables(w.Entities)

	// Categories 1 to 3: shots against the archetype their color destroys
	for _, color := range object.WeaponColors {
		target := color.Target().Kind()
		for _, shot := range r.shots {
			if shot.Color != color || !shot.Alive {
				continue
			}
			enemy := r.firstOverlapping(shot.Box, target)
			if enemy == nil {
				continue
			}
			w.Kill(shot)
			w.Kill(enemy)
			w.Spawn(object.NewExplosion(w.NewID(), enemy.Box))
			*cues = append(*cues, audio.CueExplosion)
			res.Kills++
		}
	}

	player := w.Player
	if player.Alive {
		// Category 4: ramming by B
		if enemy := r.firstOverlapping(player.Box, object.KindEnemyB); enemy != nil {
			w.Kill(enemy)
			r.killPlayer(w, object.KindEnemyB, &res, cues)
		}
	}
	if player.Alive {
		// Category 5: bombs
		for _, bomb := range r.bombs {
			if bomb.Alive && bomb.Box.Overlaps(player.Box) {
				w.Kill(bomb)
				r.killPlayer(w, object.KindProjectile, &res, cues)
				break
			}
		}
	}

	w.FlushSpawned()
	return res
}

func (r *Resolver) killPlayer(w *World, killer object.Kind, res *CollisionResult, cues *[]audio.Cue) {
	w.Kill(w.Player)
	w.Spawn(object.NewExplosion(w.NewID(), w.Player.Box))
	*cues = append(*cues, audio.CueExplosion)
	res.PlayerKilled = true
	res.PlayerKiller = killer
}

// firstOverlapping returns the earliest spawned alive enemy of the given
// kind whose box overlaps box, or nil.
func (r *Resolver) firstOverlapping(box physics.Rect, kind object.Kind) *object.Entity {
	best := -1
	r.grid.QueryAround(box, func(i int) bool {
		e := r.enemies[i]
		if e.Kind != kind || !e.Alive || (best >= 0 && i > best) {
			return false
		}
		if e.Box.Overlaps(box) {
			best = i
		}
		return false
	})
	if best < 0 {
		return nil
	}
	return r.enemies[best]
}

// scoreFor returns the points awarded for kills matching shots this tick.
func scoreFor(res CollisionResult) int {
	return res.Kills * config.ScorePerKill
}
