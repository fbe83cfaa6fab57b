package loop

import (
	"github.com/tomz197/spacepirate/internal/config"
	"github.com/tomz197/spacepirate/internal/object"
	"github.com/tomz197/spacepirate/internal/physics"
)

// World holds the simulated entities of one game and the spawn pacing state.
// It is owned by a single goroutine.
type World struct {
	Entities []*object.Entity // Spawn order
	Player   *object.Entity
	Field    physics.Rect
	Pacing   object.SpawnState

	toSpawn []*object.Entity // Entities to add after the current stage
	nextID  object.ID
}

// NewWorld creates a world holding only the player ship.
func NewWorld(rules config.Rules) *World {
	w := &World{
		Field:  object.Field(),
		Pacing: object.NewSpawnState(rules),
	}
	w.Player = object.NewPlayer(w.NewID(), w.Field)
	w.Entities = append(w.Entities, w.Player)
	return w
}

// NewID returns the next unused entity ID.
func (w *World) NewID() object.ID {
	w.nextID++
	return w.nextID
}

// Spawn queues an entity to be added after the current stage.
// Enemies count as active from the moment they are queued.
func (w *World) Spawn(e *object.Entity) {
	if e.Kind.IsEnemy() {
		w.Pacing.ActiveEnemies++
	}
	w.toSpawn = append(w.toSpawn, e)
}

// FlushSpawned adds all queued entities and clears the queue.
func (w *World) FlushSpawned() {
	w.Entities = append(w.Entities, w.toSpawn...)
	clear(w.toSpawn)
	w.toSpawn = w.toSpawn[:0]
}

// SpawnEnemy queues an enemy of the given kind with its top-left corner at (x, 0).
func (w *World) SpawnEnemy(kind object.EnemyKind, x float64) *object.Entity {
	e := object.NewEnemy(w.NewID(), kind, x)
	w.Spawn(e)
	return e
}

// Kill destroys e, keeping the active enemy count in step.
// It reports false if e was already dead.
func (w *World) Kill(e *object.Entity) bool {
	if !e.Destroy() {
		return false
	}
	if e.Kind.IsEnemy() {
		w.Pacing.ActiveEnemies--
	}
	return true
}

// AliveEnemies counts alive enemies by walking the entity list.
func (w *World) AliveEnemies() int {
	n := 0
	for _, e := range w.Entities {
		if e.Alive && e.Kind.IsEnemy() {
			n++
		}
	}
	for _, e := range w.toSpawn {
		if e.Alive && e.Kind.IsEnemy() {
			n++
		}
	}
	return n
}

// placeInitialWave queues the enemies that are on the field when play starts.
func (w *World) placeInitialWave(kinds []object.EnemyKind, s *object.Spawner) {
	for _, k := range kinds {
		w.SpawnEnemy(k, s.SpawnX())
	}
	w.FlushSpawned()
}
