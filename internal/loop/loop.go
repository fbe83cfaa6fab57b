// Package loop runs the game: the per-player flow state machine, the tick
// pipeline over the world, collision resolution and the real-time driver
// that connects them to a terminal.
package loop

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/tomz197/spacepirate/internal/audio"
	"github.com/tomz197/spacepirate/internal/config"
	"github.com/tomz197/spacepirate/internal/draw"
	"github.com/tomz197/spacepirate/internal/input"
	"github.com/tomz197/spacepirate/internal/object"
)

// Options configures Run. Zero fields get working defaults.
type Options struct {
	Rules    config.Rules
	Logger   *zap.Logger
	Audio    audio.Player
	TermSize draw.TermSizeFunc
	Clock    Clock
}

func (o Options) withDefaults() Options {
	if o.Rules.IsZero() {
		o.Rules = config.DefaultRules()
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.Audio == nil {
		o.Audio = audio.Silent{}
	}
	if o.TermSize == nil {
		o.TermSize = draw.DefaultTermSizeFunc
	}
	if o.Clock == nil {
		o.Clock = SystemClock{}
	}
	return o
}

// Run plays one game on a terminal with the standard Input → Update → Draw
// cycle at a fixed tick rate. It returns nil when the player exits, the
// input stream ends or ctx is canceled, and an error wrapping
// config.ErrInvalidRules if the rules cannot drive the spawner.
func Run(ctx context.Context, r *bufio.Reader, w io.Writer, opts Options) error {
	opts = opts.withDefaults()
	if err := opts.Rules.Validate(); err != nil {
		return fmt.Errorf("start game: %w", err)
	}

	seed := opts.Rules.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	game := NewGame(opts.Rules, rand.New(rand.NewSource(seed)), opts.Logger)
	stream := input.StartStream(r)
	scr := newScreen(w, opts.TermSize, seed)

	if err := draw.HideCursor(w); err != nil {
		return fmt.Errorf("prepare terminal: %w", err)
	}
	defer draw.ShowCursor(w)
	draw.ClearScreen(w)

	for {
		frameStart := opts.Clock.Now()

		// ===== INPUT PHASE =====
		inp := input.ReadInput(stream)
		in := intentsFromInput(inp)
		if ctx.Err() != nil {
			in.Exit = true
		}

		// ===== UPDATE PHASE =====
		frame := game.Step(in, frameStart)
		for _, cue := range frame.Cues {
			opts.Audio.Play(cue)
		}
		if frame.Quit {
			break
		}

		// ===== DRAW PHASE =====
		if err := scr.draw(frame); err != nil {
			return fmt.Errorf("draw frame: %w", err)
		}

		// ===== FRAME TIMING =====
		elapsed := opts.Clock.Now().Sub(frameStart)
		if elapsed < config.TickTime {
			sleep(ctx, config.TickTime-elapsed)
		}
	}

	draw.ClearScreen(w)
	return nil
}

// sleep waits for d or until ctx is canceled.
func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// intentsFromInput maps raw key state to game intents.
func intentsFromInput(inp input.Input) Intents {
	in := Intents{
		Fire:  inp.Space,
		Start: inp.Enter,
		Exit:  inp.Quit || inp.Escape || inp.Closed,
	}
	if inp.Left {
		in.Direction--
	}
	if inp.Right {
		in.Direction++
	}
	if inp.Number >= 1 && inp.Number <= len(object.WeaponColors) {
		in.SelectWeapon = true
		in.Weapon = object.WeaponColors[inp.Number-1]
	}
	return in
}
