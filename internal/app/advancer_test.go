package app

import (
	"testing"
	"time"

	"terrain-ca/internal/core"
	"terrain-ca/pkg/terrain"
)

func seededTerrain(t *testing.T) *terrain.Terrain {
	t.Helper()
	tr, err := terrain.NewSeeded(16, 0.4, core.NewRNG(3), terrain.DefaultRule())
	if err != nil {
		t.Fatal(err)
	}
	return tr
}

func waitForProgress(t *testing.T, tr *terrain.Terrain, from uint64) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for tr.Generation() <= from {
		if time.Now().After(deadline) {
			t.Fatalf("advancer made no progress past generation %d", from)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestAdvancerStartStop(t *testing.T) {
	tr := seededTerrain(t)
	adv := NewAdvancer(tr, 0) // unthrottled

	if adv.Running() {
		t.Fatal("advancer running before Start")
	}

	adv.Start()
	if !adv.Running() {
		t.Fatal("advancer not running after Start")
	}
	waitForProgress(t, tr, 0)

	adv.Stop()
	if adv.Running() {
		t.Fatal("advancer still running after Stop")
	}

	// Stop waited out the in-flight generation, so the counter must be
	// frozen now.
	gen := tr.Generation()
	time.Sleep(20 * time.Millisecond)
	if got := tr.Generation(); got != gen {
		t.Fatalf("generation advanced from %d to %d after Stop", gen, got)
	}
}

func TestAdvancerRestarts(t *testing.T) {
	tr := seededTerrain(t)
	adv := NewAdvancer(tr, 0)

	adv.Start()
	waitForProgress(t, tr, 0)
	adv.Stop()

	gen := tr.Generation()
	adv.Start()
	waitForProgress(t, tr, gen)
	adv.Stop()
}

func TestAdvancerIdempotentControls(t *testing.T) {
	tr := seededTerrain(t)
	adv := NewAdvancer(tr, 0)

	adv.Stop() // stop before any start is a no-op
	adv.Start()
	adv.Start() // second start is a no-op
	waitForProgress(t, tr, 0)
	adv.Stop()
	adv.Stop() // second stop is a no-op
}

func TestAdvancerThrottles(t *testing.T) {
	tr := seededTerrain(t)
	adv := NewAdvancer(tr, 50)

	adv.Start()
	time.Sleep(100 * time.Millisecond)
	adv.Stop()

	// 100ms at 50 generations per second leaves generous headroom below the
	// unthrottled rate.
	if gen := tr.Generation(); gen > 20 {
		t.Fatalf("throttled advancer ran %d generations in 100ms", gen)
	}
}
