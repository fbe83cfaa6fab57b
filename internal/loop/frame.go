package loop

import (
	"time"

	"github.com/tomz197/spacepirate/internal/audio"
	"github.com/tomz197/spacepirate/internal/config"
	"github.com/tomz197/spacepirate/internal/object"
	"github.com/tomz197/spacepirate/internal/physics"
)

// Sprite is one entity as the renderer sees it.
type Sprite struct {
	ID      object.ID
	Kind    object.Kind
	Faction object.Faction
	Color   object.WeaponColor
	Facing  int
	Box     physics.Rect
}

// HUD is the overlay state drawn on top of the playfield.
type HUD struct {
	Phase     Phase
	Outcome   Outcome
	Score     int
	Weapon    object.WeaponColor
	Remaining time.Duration // Time left to survive
}

// Frame is the render request produced by one tick.
// Sprites are in spawn order; Cues are the sounds the tick produced.
type Frame struct {
	Sprites []Sprite
	HUD     HUD
	Cues    []audio.Cue
	Quit    bool
}

// frame builds the render request for the current state. The returned
// slices are only valid until the next Step.
func (g *Game) frame(now time.Time) Frame {
	f := Frame{
		HUD: HUD{
			Phase:   g.phase,
			Outcome: g.outcome,
			Score:   g.score,
			Weapon:  g.weapon,
		},
		Cues: g.cues,
		Quit: g.quit,
	}

	switch g.phase {
	case PhaseTitle:
		f.HUD.Remaining = config.SurvivalDuration
	case PhasePlaying:
		f.HUD.Remaining = max(config.SurvivalDuration-now.Sub(g.startedAt), 0)
	}

	// The playfield is shown while playing and on the frame that ends the
	// game; the GameOver screen after it is text only.
	if g.phase == PhaseTitle || (g.phase == PhaseGameOver && !g.endedNow) {
		return f
	}
	g.sprites = g.sprites[:0]
	for _, e := range g.world.Entities {
		if !e.Alive {
			continue
		}
		g.sprites = append(g.sprites, Sprite{
			ID:      e.ID,
			Kind:    e.Kind,
			Faction: e.Faction,
			Color:   e.Color,
			Facing:  e.Facing,
			Box:     e.Box,
		})
	}
	f.Sprites = g.sprites
	return f
}
