package audio

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"
)

const sampleRate = beep.SampleRate(44100)

const (
	shotDuration      = 60 * time.Millisecond
	shotFrequency     = 660
	explosionDuration = 350 * time.Millisecond
)

// Synth synthesizes cue sounds on the local speaker.
type Synth struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	rng         *rand.Rand
	initialized bool
}

// NewSynth creates a synthesizer. Call Initialize before playing.
func NewSynth() *Synth {
	return &Synth{
		mixer: &beep.Mixer{},
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Initialize opens the speaker.
func (s *Synth) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return err
	}
	speaker.Play(s.mixer)
	s.initialized = true
	return nil
}

// Play mixes in the sound for c. It does nothing before Initialize.
func (s *Synth) Play(c Cue) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	streamer := s.streamerFor(c)
	if streamer == nil {
		return
	}
	speaker.Lock()
	s.mixer.Add(streamer)
	speaker.Unlock()
}

// Close stops all sounds and releases the speaker.
func (s *Synth) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	s.initialized = false
}

func (s *Synth) streamerFor(c Cue) beep.Streamer {
	switch c {
	case CueShotFired:
		sine, err := generators.SineTone(sampleRate, shotFrequency)
		if err != nil {
			return nil
		}
		return beep.Take(sampleRate.N(shotDuration), &gain{Streamer: sine, level: 0.25})
	case CueExplosion:
		return beep.Take(sampleRate.N(explosionDuration), NewBoomGenerator(sampleRate, explosionDuration, s.rng.Int63()))
	}
	return nil
}

// Open returns a Synth if the speaker can be initialized and Silent
// otherwise.
func Open(log *zap.Logger) Player {
	s := NewSynth()
	if err := s.Initialize(); err != nil {
		log.Warn("audio unavailable, continuing silently", zap.Error(err))
		return Silent{}
	}
	return s
}

// gain scales a streamer's amplitude.
type gain struct {
	beep.Streamer
	level float64
}

func (g *gain) Stream(samples [][2]float64) (int, bool) {
	n, ok := g.Streamer.Stream(samples)
	for i := range samples[:n] {
		samples[i][0] *= g.level
		samples[i][1] *= g.level
	}
	return n, ok
}

// BoomGenerator produces decaying low-passed noise.
type BoomGenerator struct {
	sr    beep.SampleRate
	pos   int
	total int
	rng   *rand.Rand
	last  float64
}

// NewBoomGenerator creates an explosion generator that fades out over d.
func NewBoomGenerator(sr beep.SampleRate, d time.Duration, seed int64) *BoomGenerator {
	return &BoomGenerator{
		sr:    sr,
		total: max(sr.N(d), 1),
		rng:   rand.New(rand.NewSource(seed)),
	}
}

func (g *BoomGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		progress := math.Min(float64(g.pos)/float64(g.total), 1)
		envelope := math.Pow(1-progress, 2)

		noise := g.rng.Float64()*2 - 1
		// One-pole low-pass keeps the rumble
		g.last += 0.15 * (noise - g.last)
		sample := 0.6 * envelope * g.last

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *BoomGenerator) Err() error {
	return nil
}
