package loop

import (
	"testing"

	"github.com/tomz197/spacepirate/internal/audio"
	"github.com/tomz197/spacepirate/internal/config"
	"github.com/tomz197/spacepirate/internal/object"
	"github.com/tomz197/spacepirate/internal/physics"
)

func newTestWorld() *World {
	return NewWorld(config.DefaultRules())
}

func (w *World) add(e *object.Entity) *object.Entity {
	w.Spawn(e)
	w.FlushSpawned()
	return e
}

func enemyAt(w *World, kind object.EnemyKind, x, y float64) *object.Entity {
	e := w.add(object.NewEnemy(w.NewID(), kind, x))
	e.Box.Y = y
	return e
}

func shotAt(w *World, color object.WeaponColor, box physics.Rect) *object.Entity {
	s := w.add(object.NewPlayerProjectile(w.NewID(), color, 0, 0))
	s.Box = box
	return s
}

func TestTouchingBoxesDoNotCollide(t *testing.T) {
	w := newTestWorld()
	p := w.Player.Box

	// B sitting exactly on top of the player
	enemyAt(w, object.EnemyB, p.X, p.Y-config.EnemyHeight)
	// Bomb touching the player's right edge
	bomb := w.add(object.NewEnemyProjectile(w.NewID(), 0, 0))
	bomb.Box = physics.NewRect(p.Right(), p.Y, config.EnemyProjectileWidth, config.EnemyProjectileHeight)
	// Green shot touching A's bottom edge
	a := enemyAt(w, object.EnemyA, 100, 100)
	shotAt(w, object.Green, physics.NewRect(110, a.Box.Bottom(), 6, 14))

	var cues []audio.Cue
	res := NewResolver(w.Field).Resolve(w, &cues)

	if res.Kills != 0 || res.PlayerKilled || len(cues) != 0 {
		t.Errorf("edge contact collided: %+v cues %v", res, cues)
	}
	if w.Pacing.ActiveEnemies != 2 {
		t.Errorf("active enemies = %d, want 2", w.Pacing.ActiveEnemies)
	}
}

func TestShotDestroysEarliestSpawnedEnemy(t *testing.T) {
	w := newTestWorld()
	first := enemyAt(w, object.EnemyA, 100, 100)
	second := enemyAt(w, object.EnemyA, 110, 100)
	shotAt(w, object.Green, physics.NewRect(130, 110, 6, 14))

	var cues []audio.Cue
	res := NewResolver(w.Field).Resolve(w, &cues)

	if res.Kills != 1 {
		t.Fatalf("kills = %d, want 1", res.Kills)
	}
	if first.Alive || !second.Alive {
		t.Errorf("first alive = %v second alive = %v, want the first destroyed", first.Alive, second.Alive)
	}
}

func TestEnemyAbsorbsOnlyOneShot(t *testing.T) {
	w := newTestWorld()
	a := enemyAt(w, object.EnemyA, 100, 100)
	s1 := shotAt(w, object.Green, physics.NewRect(110, 110, 6, 14))
	s2 := shotAt(w, object.Green, physics.NewRect(120, 110, 6, 14))

	var cues []audio.Cue
	res := NewResolver(w.Field).Resolve(w, &cues)

	if res.Kills != 1 || a.Alive {
		t.Fatalf("kills = %d, enemy alive = %v", res.Kills, a.Alive)
	}
	if s1.Alive || !s2.Alive {
		t.Errorf("shot 1 alive = %v shot 2 alive = %v, want only the first consumed", s1.Alive, s2.Alive)
	}
}

func TestEveryColorPairing(t *testing.T) {
	for _, color := range object.WeaponColors {
		for _, kind := range []object.EnemyKind{object.EnemyA, object.EnemyB, object.EnemyC} {
			w := newTestWorld()
			e := enemyAt(w, kind, 200, 100)
			shotAt(w, color, physics.NewRect(220, 110, 6, 14))

			var cues []audio.Cue
			res := NewResolver(w.Field).Resolve(w, &cues)

			want := object.Destroys(color, kind)
			if got := res.Kills == 1; got != want {
				t.Errorf("%s shot vs %s: destroyed = %v, want %v", color, kind, got, want)
			}
			if e.Alive == want {
				t.Errorf("%s shot vs %s: enemy alive = %v", color, kind, e.Alive)
			}
			if want && (w.Pacing.ActiveEnemies != 0 || len(cues) != 1) {
				t.Errorf("%s shot vs %s: active %d cues %v", color, kind, w.Pacing.ActiveEnemies, cues)
			}
		}
	}
}

func TestOnlyBRamsThePlayer(t *testing.T) {
	for _, kind := range []object.EnemyKind{object.EnemyA, object.EnemyC} {
		w := newTestWorld()
		p := w.Player.Box
		enemyAt(w, kind, p.X, p.Y)

		var cues []audio.Cue
		if res := NewResolver(w.Field).Resolve(w, &cues); res.PlayerKilled {
			t.Errorf("%s overlapping the player destroyed it", kind)
		}
	}
}

func TestKillKeepsCountInStep(t *testing.T) {
	w := newTestWorld()
	e := enemyAt(w, object.EnemyC, 0, 0)
	if w.Pacing.ActiveEnemies != 1 {
		t.Fatalf("active = %d after spawn", w.Pacing.ActiveEnemies)
	}
	if !w.Kill(e) {
		t.Fatal("first kill reported no change")
	}
	if w.Kill(e) {
		t.Error("second kill reported a change")
	}
	if w.Pacing.ActiveEnemies != 0 {
		t.Errorf("active = %d, want 0", w.Pacing.ActiveEnemies)
	}

	bomb := w.add(object.NewEnemyProjectile(w.NewID(), 0, 0))
	w.Kill(bomb)
	if w.Pacing.ActiveEnemies != 0 {
		t.Errorf("killing a bomb changed the count to %d", w.Pacing.ActiveEnemies)
	}
}

func TestQueuedEnemiesCountAsAlive(t *testing.T) {
	w := newTestWorld()
	w.SpawnEnemy(object.EnemyA, 10)
	if w.AliveEnemies() != 1 || w.Pacing.ActiveEnemies != 1 {
		t.Errorf("queued enemy: alive %d active %d", w.AliveEnemies(), w.Pacing.ActiveEnemies)
	}
	w.FlushSpawned()
	if len(w.Entities) != 2 {
		t.Errorf("entities = %d after flush, want 2", len(w.Entities))
	}
}
