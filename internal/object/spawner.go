package object

import (
	"math/rand"

	"github.com/tomz197/spacepirate/internal/config"
)

// SpawnState is the pacing state of the enemy spawner.
// ActiveEnemies is maintained by whoever adds and destroys enemies; the
// spawner only reads it.
type SpawnState struct {
	TicksSinceLastAttempt int
	Threshold             int  // Ticks that must pass before the next attempt
	ActiveEnemies         int  // Alive enemies on the field
	Target                int  // Population above which pressure eases
	Plateaued             bool // Threshold has left its initial value
}

// NewSpawnState returns the pacing state at the start of play.
func NewSpawnState(rules config.Rules) SpawnState {
	return SpawnState{
		Threshold: rules.InitialThreshold,
		Target:    rules.DynamicTarget,
	}
}

// Spawner decides when enemies appear and when armed enemies drop bombs.
// While the field is under-populated it spawns batches and shortens the
// threshold; once saturated it spawns singly and lengthens it, which makes
// difficulty rise in bursts.
type Spawner struct {
	rules config.Rules
	rng   *rand.Rand
}

// NewSpawner creates a spawner driven by rng.
func NewSpawner(rules config.Rules, rng *rand.Rand) *Spawner {
	return &Spawner{rules: rules, rng: rng}
}

// Update advances st by one tick and returns the kinds of enemies to create
// this tick, in order. Most ticks return nil.
func (s *Spawner) Update(st *SpawnState) []EnemyKind {
	st.TicksSinceLastAttempt++
	if st.TicksSinceLastAttempt <= st.Threshold {
		return nil
	}
	st.TicksSinceLastAttempt = 0

	if st.ActiveEnemies < st.Target {
		n := s.rules.BatchMin + s.rng.Intn(s.rules.BatchMax-s.rules.BatchMin+1)
		kinds := make([]EnemyKind, n)
		for i := range kinds {
			kinds[i] = s.randomKind()
		}
		if !st.Plateaued {
			st.Threshold = s.rules.PlateauThreshold
			st.Plateaued = true
		} else {
			st.Threshold -= s.rng.Intn(s.rules.ThresholdDecreaseMax + 1)
		}
		return kinds
	}

	st.Threshold += s.rng.Intn(s.rules.ThresholdIncreaseMax + 1)
	return []EnemyKind{s.randomKind()}
}

// SpawnX returns a random left edge for a new enemy.
func (s *Spawner) SpawnX() float64 {
	return float64(s.rng.Intn(config.EnemySpawnMaxX + 1))
}

// Reload advances an armed enemy's shot counter and reports whether it
// drops a bomb this tick. The counter resets when it does.
// Only EnemyA and EnemyC are armed.
func (s *Spawner) Reload(e *Entity) bool {
	if !e.Alive || (e.Kind != KindEnemyA && e.Kind != KindEnemyC) {
		return false
	}
	e.ShotCounter++
	jitter := 1 + s.rng.Intn(s.rules.BombJitter)
	if e.ShotCounter > s.rules.BombThreshold+jitter {
		e.ShotCounter = 0
		return true
	}
	return false
}

func (s *Spawner) randomKind() EnemyKind {
	return EnemyKinds[s.rng.Intn(len(EnemyKinds))]
}
