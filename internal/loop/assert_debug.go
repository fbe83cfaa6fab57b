//go:build debug

package loop

import "fmt"

// checkInvariants panics if the incremental bookkeeping has drifted from
// the entity list. Built with -tags debug.
func checkInvariants(g *Game) {
	w := g.world
	if got, want := w.Pacing.ActiveEnemies, w.AliveEnemies(); got != want {
		panic(fmt.Sprintf("active enemy count %d, alive enemies %d", got, want))
	}
	if w.Pacing.ActiveEnemies < 0 {
		panic(fmt.Sprintf("negative active enemy count %d", w.Pacing.ActiveEnemies))
	}
	if g.phase != PhasePlaying {
		panic(fmt.Sprintf("pipeline ran in phase %s", g.phase))
	}
	seen := make(map[uint64]bool, len(w.Entities))
	for _, e := range w.Entities {
		if seen[uint64(e.ID)] {
			panic(fmt.Sprintf("duplicate entity id %d", e.ID))
		}
		seen[uint64(e.ID)] = true
	}
}
