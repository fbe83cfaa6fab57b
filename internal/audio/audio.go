// Package audio plays the game's sound cues.
//
// Playback is fire-and-forget: a Player never reports failure to the game.
// When no audio device is available the game runs silently.
package audio

import (
	"fmt"
	"io"
	"sync"
)

// Cue is a sound event emitted by the simulation.
type Cue int

const (
	CueShotFired Cue = iota
	CueExplosion
)

func (c Cue) String() string {
	switch c {
	case CueShotFired:
		return "shot"
	case CueExplosion:
		return "explosion"
	default:
		return fmt.Sprintf("cue(%d)", int(c))
	}
}

// Player turns cues into sound.
type Player interface {
	Play(c Cue)
	Close()
}

// Silent discards every cue.
type Silent struct{}

func (Silent) Play(Cue) {}
func (Silent) Close()   {}

// Bell rings the terminal bell on explosions. It is meant for remote
// sessions where the host's speaker is out of reach.
type Bell struct {
	mu sync.Mutex
	w  io.Writer
}

// NewBell creates a Bell that writes to w.
func NewBell(w io.Writer) *Bell {
	return &Bell{w: w}
}

func (b *Bell) Play(c Cue) {
	if c != CueExplosion {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	// Write errors surface on the next frame render
	_, _ = io.WriteString(b.w, "\a")
}

func (b *Bell) Close() {}
