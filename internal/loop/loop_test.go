package loop

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/tomz197/spacepirate/internal/audio"
	"github.com/tomz197/spacepirate/internal/config"
	"github.com/tomz197/spacepirate/internal/input"
	"github.com/tomz197/spacepirate/internal/object"
)

func fixedTermSize(w, h int) func() (int, int, error) {
	return func() (int, int, error) { return w, h, nil }
}

func TestIntentsFromInput(t *testing.T) {
	tests := []struct {
		name string
		in   input.Input
		want Intents
	}{
		{"idle", input.Input{Number: -1}, Intents{}},
		{"left", input.Input{Left: true, Number: -1}, Intents{Direction: -1}},
		{"right", input.Input{Right: true, Number: -1}, Intents{Direction: 1}},
		{"both cancel", input.Input{Left: true, Right: true, Number: -1}, Intents{}},
		{"fire", input.Input{Space: true, Number: -1}, Intents{Fire: true}},
		{"start", input.Input{Enter: true, Number: -1}, Intents{Start: true}},
		{"quit", input.Input{Quit: true, Number: -1}, Intents{Exit: true}},
		{"escape", input.Input{Escape: true, Number: -1}, Intents{Exit: true}},
		{"closed", input.Input{Closed: true, Number: -1}, Intents{Exit: true}},
		{"weapon 1", input.Input{Number: 1}, Intents{SelectWeapon: true, Weapon: object.Green}},
		{"weapon 2", input.Input{Number: 2}, Intents{SelectWeapon: true, Weapon: object.Red}},
		{"weapon 3", input.Input{Number: 3}, Intents{SelectWeapon: true, Weapon: object.Yellow}},
		{"digit 4 ignored", input.Input{Number: 4}, Intents{}},
		{"digit 0 ignored", input.Input{Number: 0}, Intents{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := intentsFromInput(tc.in); got != tc.want {
				t.Errorf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestClampTermSize(t *testing.T) {
	tests := []struct {
		termW, termH               int
		w, h, offsetCol, offsetRow int
	}{
		{80, 24, 64, 24, 8, 0},
		{160, 50, 133, 50, 13, 0},
		{200, 60, 133, 50, 33, 5},
		{40, 100, 40, 15, 0, 42},
	}
	for _, tc := range tests {
		w, h, oc, or := clampTermSize(tc.termW, tc.termH)
		if w != tc.w || h != tc.h || oc != tc.offsetCol || or != tc.offsetRow {
			t.Errorf("clampTermSize(%d, %d) = %d, %d, %d, %d; want %d, %d, %d, %d",
				tc.termW, tc.termH, w, h, oc, or, tc.w, tc.h, tc.offsetCol, tc.offsetRow)
		}
	}
}

type recordingPlayer struct {
	cues []audio.Cue
}

func (p *recordingPlayer) Play(c audio.Cue) { p.cues = append(p.cues, c) }
func (p *recordingPlayer) Close()           {}

func runWithTimeout(t *testing.T, ctx context.Context, r io.Reader, opts Options) string {
	t.Helper()
	var out bytes.Buffer
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, bufio.NewReader(r), &out, opts)
	}()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
	}
	return out.String()
}

func TestRunExitsOnQuitKey(t *testing.T) {
	opts := Options{
		Rules:    config.DefaultRules(),
		Logger:   zaptest.NewLogger(t),
		TermSize: fixedTermSize(80, 24),
	}
	out := runWithTimeout(t, context.Background(), strings.NewReader("q"), opts)

	if !strings.HasPrefix(out, "\033[?25l") {
		t.Errorf("output does not start by hiding the cursor: %q", out[:min(len(out), 16)])
	}
	if !strings.HasSuffix(out, "\033[0m\033[?25h") {
		t.Errorf("output does not end by restoring the cursor")
	}
}

func TestRunExitsWhenCanceled(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rules := config.DefaultRules()
	rules.Seed = 7
	runWithTimeout(t, ctx, pr, Options{
		Rules:    rules,
		TermSize: fixedTermSize(100, 40),
	})
}

func TestRunPlaysCues(t *testing.T) {
	pr, pw := io.Pipe()
	player := &recordingPlayer{}

	go func() {
		// Start, wait past the fire key's hold window, then fire and leave.
		pw.Write([]byte("\r"))
		time.Sleep(200 * time.Millisecond)
		pw.Write([]byte(" "))
		time.Sleep(200 * time.Millisecond)
		pw.Write([]byte("q"))
		pw.Close()
	}()

	runWithTimeout(t, context.Background(), pr, Options{
		Rules:    config.DefaultRules(),
		Audio:    player,
		TermSize: fixedTermSize(80, 24),
	})

	if len(player.cues) == 0 || player.cues[0] != audio.CueShotFired {
		t.Errorf("cues = %v, want a shot first", player.cues)
	}
}

func TestRunWithZeroRulesUsesDefaults(t *testing.T) {
	pr, pw := io.Pipe()
	go func() {
		pw.Write([]byte("\r"))
		time.Sleep(150 * time.Millisecond)
		pw.Write([]byte("q"))
		pw.Close()
	}()

	runWithTimeout(t, context.Background(), pr, Options{TermSize: fixedTermSize(80, 24)})
}

func TestRunRejectsInvalidRules(t *testing.T) {
	rules := config.DefaultRules()
	rules.BombJitter = 0

	var out bytes.Buffer
	err := Run(context.Background(), bufio.NewReader(strings.NewReader("")), &out, Options{
		Rules:    rules,
		TermSize: fixedTermSize(80, 24),
	})
	if !errors.Is(err, config.ErrInvalidRules) {
		t.Fatalf("err = %v, want ErrInvalidRules", err)
	}
	if out.Len() != 0 {
		t.Errorf("terminal written before rules were checked: %q", out.String())
	}
}
