package app

import (
	"sync/atomic"
	"time"

	"terrain-ca/pkg/terrain"
)

// Advancer owns the goroutine that steps a terrain. The loop is driven by a
// running flag cleared between iterations; an in-flight generation always
// completes before the flag is re-checked, so stopping never tears a step.
type Advancer struct {
	terrain  *terrain.Terrain
	interval time.Duration

	running atomic.Bool
	quit    chan struct{}
	done    chan struct{}
}

// NewAdvancer prepares an advancer stepping t at the given generations per
// second. A non-positive tps means unthrottled.
func NewAdvancer(t *terrain.Terrain, tps int) *Advancer {
	a := &Advancer{terrain: t}
	if tps > 0 {
		a.interval = time.Second / time.Duration(tps)
	}
	return a
}

// Running reports whether the advancing goroutine is active.
func (a *Advancer) Running() bool { return a.running.Load() }

// Start launches the advancing goroutine. Starting while running is a no-op.
func (a *Advancer) Start() {
	if !a.running.CompareAndSwap(false, true) {
		return
	}
	a.quit = make(chan struct{})
	a.done = make(chan struct{})
	go a.loop()
}

// Stop clears the running flag and waits until the goroutine has finished its
// current generation and exited. Stopping while stopped is a no-op.
func (a *Advancer) Stop() {
	if !a.running.CompareAndSwap(true, false) {
		return
	}
	close(a.quit)
	<-a.done
}

func (a *Advancer) loop() {
	defer close(a.done)
	var tick <-chan time.Time
	if a.interval > 0 {
		ticker := time.NewTicker(a.interval)
		defer ticker.Stop()
		tick = ticker.C
	}
	for a.running.Load() {
		a.terrain.Iterate()
		if tick == nil {
			continue
		}
		select {
		case <-tick:
		case <-a.quit:
		}
	}
}
