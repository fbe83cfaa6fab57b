package loop

import (
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/tomz197/spacepirate/internal/audio"
	"github.com/tomz197/spacepirate/internal/config"
	"github.com/tomz197/spacepirate/internal/object"
)

// Phase is the game flow state.
type Phase int

const (
	PhaseTitle    Phase = iota // Waiting for start
	PhasePlaying               // Tick pipeline running
	PhaseGameOver              // Terminal until exit
)

func (p Phase) String() string {
	switch p {
	case PhaseTitle:
		return "title"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// Outcome records how a game ended.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeDestroyed
	OutcomeSurvived
)

func (o Outcome) String() string {
	switch o {
	case OutcomeDestroyed:
		return "destroyed"
	case OutcomeSurvived:
		return "survived"
	default:
		return "none"
	}
}

// Intents is the input snapshot for one tick.
type Intents struct {
	Direction    int                // -1, 0 or +1
	Fire         bool               // Fire key currently held
	SelectWeapon bool               // Weapon holds a new selection
	Weapon       object.WeaponColor // Valid if SelectWeapon
	Start        bool
	Exit         bool
}

// Game is one player's session: the flow state machine wrapped around a
// World. It is not safe for concurrent use.
type Game struct {
	rules    config.Rules
	initial  []object.EnemyKind
	log      *zap.Logger
	spawner  *object.Spawner
	resolver *Resolver

	phase     Phase
	outcome   Outcome
	killedBy  object.Kind
	score     int
	weapon    object.WeaponColor
	world     *World
	startedAt time.Time
	elapsed   time.Duration
	fireHeld  bool // Fire was held on the previous tick
	endedNow  bool // This step moved the game to GameOver
	quit      bool

	// Per-step output buffers
	cues    []audio.Cue
	sprites []Sprite
}

// NewGame creates a game in the title phase. rules must be valid.
func NewGame(rules config.Rules, rng *rand.Rand, log *zap.Logger) *Game {
	initial := make([]object.EnemyKind, 0, len(rules.InitialWave))
	for _, s := range rules.InitialWave {
		// Validated by config.Rules.Validate
		if k, err := object.ParseEnemyKind(s); err == nil {
			initial = append(initial, k)
		}
	}
	world := NewWorld(rules)
	return &Game{
		rules:    rules,
		initial:  initial,
		log:      log,
		spawner:  object.NewSpawner(rules, rng),
		resolver: NewResolver(world.Field),
		world:    world,
		phase:    PhaseTitle,
		weapon:   object.Green,
	}
}

// Phase returns the current flow state.
func (g *Game) Phase() Phase { return g.phase }

// Outcome returns how the game ended, or OutcomeNone while it runs.
func (g *Game) Outcome() Outcome { return g.outcome }

// Score returns the number of enemies destroyed with matching weapons.
func (g *Game) Score() int { return g.score }

// Weapon returns the equipped weapon color.
func (g *Game) Weapon() object.WeaponColor { return g.weapon }

// World returns the simulated world.
func (g *Game) World() *World { return g.world }

// Quit reports whether an exit intent has been received.
func (g *Game) Quit() bool { return g.quit }

// Step advances the game by one tick using the intents sampled for it and
// the tick's clock reading. Intents that do not apply to the current phase
// are ignored.
func (g *Game) Step(in Intents, now time.Time) Frame {
	g.cues = g.cues[:0]
	g.endedNow = false

	if in.Exit && !g.quit {
		g.quit = true
		g.log.Info("exit requested", zap.Stringer("phase", g.phase), zap.Int("score", g.score))
	}

	switch g.phase {
	case PhaseTitle:
		if in.Start && !g.quit {
			g.start(now)
		}
	case PhasePlaying:
		if !g.quit {
			g.updatePlaying(in, now)
		}
	case PhaseGameOver:
		// Terminal
	}

	g.fireHeld = in.Fire
	return g.frame(now)
}

// start leaves the title screen and places the initial wave.
func (g *Game) start(now time.Time) {
	g.world.placeInitialWave(g.initial, g.spawner)
	g.startedAt = now
	g.elapsed = 0
	g.phase = PhasePlaying
	g.log.Info("game started", zap.Int("initial_enemies", len(g.initial)))
}

// finish moves to the terminal phase.
func (g *Game) finish(outcome Outcome) {
	g.phase = PhaseGameOver
	g.outcome = outcome
	g.endedNow = true
	fields := []zap.Field{
		zap.Stringer("outcome", outcome),
		zap.Int("score", g.score),
		zap.Duration("elapsed", g.elapsed),
	}
	if outcome == OutcomeDestroyed {
		fields = append(fields, zap.Stringer("killed_by", g.killedBy))
	}
	g.log.Info("game over", fields...)
}

// updatePlaying runs one tick of the pipeline: intents, motion, spawning,
// collision and the flow check.
func (g *Game) updatePlaying(in Intents, now time.Time) {
	g.elapsed = now.Sub(g.startedAt)
	if g.elapsed >= config.SurvivalDuration {
		g.finish(OutcomeSurvived)
		return
	}

	w := g.world
	if in.SelectWeapon {
		g.weapon = in.Weapon
	}

	// The ship moves first so a new shot leaves from where the cannon is
	// drawn this frame.
	ctx := object.MotionContext{Field: w.Field, Direction: in.Direction}
	w.Player.Update(ctx)
	if in.Fire && !g.fireHeld && w.Player.Alive {
		x, y := w.Player.GunPosition()
		w.Spawn(object.NewPlayerProjectile(w.NewID(), g.weapon, x, y))
		w.FlushSpawned()
		g.cues = append(g.cues, audio.CueShotFired)
	}

	g.updateEntities(ctx)
	g.spawnEntities()

	res := g.resolver.Resolve(w, &g.cues)
	g.score += scoreFor(res)
	if res.Kills > 0 {
		g.log.Debug("enemies destroyed", zap.Int("kills", res.Kills), zap.Int("score", g.score))
	}

	checkInvariants(g)

	if res.PlayerKilled {
		g.killedBy = res.PlayerKiller
		g.finish(OutcomeDestroyed)
	}
}

// updateEntities moves every entity except the already moved player and
// compacts the list, dropping the dead and those that left the playfield.
func (g *Game) updateEntities(ctx object.MotionContext) {
	w := g.world

	kept := w.Entities[:0] // reuse backing array
	for _, e := range w.Entities {
		if e == w.Player || !e.Update(ctx) {
			kept = append(kept, e)
		}
	}
	clear(w.Entities[len(kept):])
	w.Entities = kept
}

// spawnEntities runs the spawn controller, then lets armed enemies drop bombs.
func (g *Game) spawnEntities() {
	w := g.world
	for _, kind := range g.spawner.Update(&w.Pacing) {
		w.SpawnEnemy(kind, g.spawner.SpawnX())
	}
	if n := len(w.toSpawn); n > 0 {
		g.log.Debug("enemies spawned",
			zap.Int("count", n),
			zap.Int("active", w.Pacing.ActiveEnemies),
			zap.Int("threshold", w.Pacing.Threshold))
	}

	for _, e := range w.Entities {
		if g.spawner.Reload(e) {
			x, y := e.GunPosition()
			w.Spawn(object.NewEnemyProjectile(w.NewID(), x, y))
		}
	}
	w.FlushSpawned()
}
