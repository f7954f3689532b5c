// Package terrain implements Conway's Game of Life on a fixed-size toroidal
// grid. Cells carry an age rather than a plain boolean: a positive age counts
// the consecutive generations a cell has been active (clipped at Rule.MaxAge),
// zero or below means inactive. The engine tracks population and generation
// counters plus a CRC-32 fingerprint of the active-cell bitmap, and supports
// one advancing goroutine running Iterate concurrently with any number of
// observers reading consistent snapshots.
package terrain

import (
	"fmt"
	"math/rand/v2"
	"sync"
)

// Terrain is the simulation engine. It owns a pair of same-shaped age
// buffers; a role index selects the current one and flips on every iteration,
// so neighbor counts always read the previous generation. The mutex guards
// exactly the swap-and-publish step and the snapshot reads; the per-cell scan
// runs outside it.
type Terrain struct {
	size int
	rule Rule

	mu   sync.Mutex
	bufs [2][]int8
	cur  int

	generation  uint64
	population  int
	fingerprint uint32

	// scratch for fingerprint accumulation; touched only by the single
	// advancer and by the constructors.
	fp *fingerprinter
}

// Stats is one generation's bookkeeping, published atomically with the
// buffer swap.
type Stats struct {
	Generation  uint64
	Population  int
	Fingerprint uint32
}

// New returns an empty size×size toroidal terrain (all ages zero) governed by
// the given rule.
func New(size int, rule Rule) (*Terrain, error) {
	if size <= 0 {
		return nil, fmt.Errorf("grid size %d: %w", size, ErrInvalidConfiguration)
	}
	if err := rule.validate(); err != nil {
		return nil, err
	}
	t := &Terrain{size: size, rule: rule, fp: newFingerprinter(size)}
	t.bufs[0] = make([]int8, size*size)
	t.bufs[1] = make([]int8, size*size)
	t.fingerprint = t.digest()
	return t, nil
}

// NewSeeded returns a terrain with each cell independently activated at age 1
// with probability density, drawn from rng. The generation-0 fingerprint is
// computed from the seeded pattern.
func NewSeeded(size int, density float64, rng *rand.Rand, rule Rule) (*Terrain, error) {
	if density < 0 || density > 1 {
		return nil, fmt.Errorf("density %v outside [0, 1]: %w", density, ErrInvalidConfiguration)
	}
	if rng == nil {
		return nil, fmt.Errorf("nil random source: %w", ErrInvalidConfiguration)
	}
	t, err := New(size, rule)
	if err != nil {
		return nil, err
	}
	cells := t.bufs[t.cur]
	for i := range cells {
		if rng.Float64() < density {
			cells[i] = 1
			t.population++
		}
	}
	t.fingerprint = t.digest()
	return t, nil
}

// Size returns the grid's height and width (both periodic).
func (t *Terrain) Size() int { return t.size }

// Rule returns the thresholds the engine was constructed with.
func (t *Terrain) Rule() Rule { return t.rule }

// Age reports the age of the cell at (row, col) in the current generation.
// Direct access does not wrap: indices outside [0, size) fail with
// ErrOutOfBounds.
func (t *Terrain) Age(row, col int) (int8, error) {
	if err := t.check(row, col); err != nil {
		return 0, err
	}
	t.mu.Lock()
	age := t.bufs[t.cur][row*t.size+col]
	t.mu.Unlock()
	return age, nil
}

// Set writes a cell's age directly into the current buffer and adjusts the
// population by the activation delta. The fingerprint is not recomputed: it
// keeps the value published by the last iteration (or construction) until the
// next Iterate. Set shares the engine's critical section, but the advancer
// must be paused before editing cells, because an iteration scan already in
// flight reads the current buffer outside the lock.
func (t *Terrain) Set(row, col int, age int8) error {
	if err := t.check(row, col); err != nil {
		return err
	}
	t.mu.Lock()
	cells := t.bufs[t.cur]
	idx := row*t.size + col
	prev := cells[idx]
	cells[idx] = age
	if prev <= 0 && age > 0 {
		t.population++
	} else if prev > 0 && age <= 0 {
		t.population--
	}
	t.mu.Unlock()
	return nil
}

// Iterate advances the automaton by exactly one generation. The scan reads
// the current buffer and writes only the scratch buffer, without holding the
// lock; a single critical section then flips the buffer roles and publishes
// the population, fingerprint and generation together. Observers therefore
// see either the previous generation or the new one in full, never a mix.
// Only one goroutine may call Iterate.
func (t *Terrain) Iterate() {
	t.mu.Lock()
	src := t.bufs[t.cur]
	dst := t.bufs[t.cur^1]
	t.mu.Unlock()

	size := t.size
	t.fp.reset()
	population := 0
	for row := 0; row < size; row++ {
		t.fp.beginRow()
		base := row * size
		for col := 0; col < size; col++ {
			age := t.rule.NextAge(src[base+col], countNeighbors(src, size, row, col))
			dst[base+col] = age
			if age > 0 {
				population++
				t.fp.mark(col)
			}
		}
		t.fp.endRow()
	}
	sum := t.fp.value()

	t.mu.Lock()
	t.cur ^= 1
	t.population = population
	t.fingerprint = sum
	t.generation++
	t.mu.Unlock()
}

// Population returns the number of currently active cells.
func (t *Terrain) Population() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.population
}

// Generation returns the number of completed iterations.
func (t *Terrain) Generation() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.generation
}

// Fingerprint returns the CRC-32 digest of the current generation's
// active-cell bitmap. Comparing fingerprints across generations detects
// still lifes and oscillators; the engine itself never stops on a repeat.
func (t *Terrain) Fingerprint() uint32 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.fingerprint
}

// Stats returns the generation, population and fingerprint as one consistent
// triple.
func (t *Terrain) Stats() Stats {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stats()
}

func (t *Terrain) stats() Stats {
	return Stats{
		Generation:  t.generation,
		Population:  t.population,
		Fingerprint: t.fingerprint,
	}
}

// CopyInto copies the current buffer into dst, which must hold exactly
// size×size cells; anything else fails with ErrShapeMismatch. The copy runs
// under the same critical section as the buffer swap, so it always reflects
// one complete generation even while Iterate is in flight elsewhere.
func (t *Terrain) CopyInto(dst []int8) error {
	if len(dst) != t.size*t.size {
		return fmt.Errorf("destination length %d, need %d: %w", len(dst), t.size*t.size, ErrShapeMismatch)
	}
	t.mu.Lock()
	copy(dst, t.bufs[t.cur])
	t.mu.Unlock()
	return nil
}

// Snapshot copies the current buffer into dst and returns the counters that
// belong to it, all under one critical section. Use this instead of CopyInto
// plus separate getters when the copied grid and the counters must agree.
func (t *Terrain) Snapshot(dst []int8) (Stats, error) {
	if len(dst) != t.size*t.size {
		return Stats{}, fmt.Errorf("destination length %d, need %d: %w", len(dst), t.size*t.size, ErrShapeMismatch)
	}
	t.mu.Lock()
	copy(dst, t.bufs[t.cur])
	s := t.stats()
	t.mu.Unlock()
	return s, nil
}

func (t *Terrain) check(row, col int) error {
	if row < 0 || row >= t.size || col < 0 || col >= t.size {
		return fmt.Errorf("cell (%d, %d) outside %dx%d grid: %w", row, col, t.size, t.size, ErrOutOfBounds)
	}
	return nil
}

// digest recomputes the fingerprint of the current buffer from scratch. Only
// the constructors use it; Iterate accumulates the digest during its scan.
func (t *Terrain) digest() uint32 {
	t.fp.reset()
	cells := t.bufs[t.cur]
	for row := 0; row < t.size; row++ {
		t.fp.beginRow()
		base := row * t.size
		for col := 0; col < t.size; col++ {
			if cells[base+col] > 0 {
				t.fp.mark(col)
			}
		}
		t.fp.endRow()
	}
	return t.fp.value()
}

// countNeighbors counts the active cells in the Moore neighborhood of
// (row, col), wrapping both axes modulo size.
func countNeighbors(cells []int8, size, row, col int) int {
	count := 0
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			r := (row + dr + size) % size
			c := (col + dc + size) % size
			if cells[r*size+c] > 0 {
				count++
			}
		}
	}
	return count
}
