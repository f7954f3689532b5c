package terrain

import (
	"errors"
	"math/rand/v2"
	"slices"
	"testing"
)

func newRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), 0))
}

func mustNew(t *testing.T, size int) *Terrain {
	t.Helper()
	tr, err := New(size, DefaultRule())
	if err != nil {
		t.Fatalf("New(%d): %v", size, err)
	}
	return tr
}

func setCells(t *testing.T, tr *Terrain, cells [][2]int) {
	t.Helper()
	for _, c := range cells {
		if err := tr.Set(c[0], c[1], 1); err != nil {
			t.Fatalf("Set(%d, %d): %v", c[0], c[1], err)
		}
	}
}

func TestConstructionErrors(t *testing.T) {
	for _, size := range []int{0, -3} {
		if _, err := New(size, DefaultRule()); !errors.Is(err, ErrInvalidConfiguration) {
			t.Fatalf("New(%d) err = %v, want ErrInvalidConfiguration", size, err)
		}
	}
	if _, err := NewSeeded(8, 1.5, newRNG(1), DefaultRule()); !errors.Is(err, ErrInvalidConfiguration) {
		t.Fatal("NewSeeded accepted density above 1")
	}
	if _, err := NewSeeded(8, -0.1, newRNG(1), DefaultRule()); !errors.Is(err, ErrInvalidConfiguration) {
		t.Fatal("NewSeeded accepted negative density")
	}
	if _, err := NewSeeded(8, 0.5, nil, DefaultRule()); !errors.Is(err, ErrInvalidConfiguration) {
		t.Fatal("NewSeeded accepted nil random source")
	}
}

func TestBoundsChecking(t *testing.T) {
	tr := mustNew(t, 5)

	badCells := [][2]int{{-1, 0}, {5, 0}, {0, -1}, {0, 5}}
	for _, c := range badCells {
		if _, err := tr.Age(c[0], c[1]); !errors.Is(err, ErrOutOfBounds) {
			t.Fatalf("Age(%d, %d) err = %v, want ErrOutOfBounds", c[0], c[1], err)
		}
		if err := tr.Set(c[0], c[1], 1); !errors.Is(err, ErrOutOfBounds) {
			t.Fatalf("Set(%d, %d) err = %v, want ErrOutOfBounds", c[0], c[1], err)
		}
	}

	if err := tr.CopyInto(make([]int8, 24)); !errors.Is(err, ErrShapeMismatch) {
		t.Fatal("CopyInto accepted a short destination")
	}
	if _, err := tr.Snapshot(make([]int8, 26)); !errors.Is(err, ErrShapeMismatch) {
		t.Fatal("Snapshot accepted a long destination")
	}
}

func TestSetPopulationDeltas(t *testing.T) {
	tr := mustNew(t, 4)

	steps := []struct {
		age  int8
		want int
	}{
		{5, 1},  // inactive -> active
		{3, 1},  // active -> active
		{0, 0},  // active -> inactive
		{-2, 0}, // inactive -> inactive
		{1, 1},  // inactive -> active again
	}
	for i, s := range steps {
		if err := tr.Set(1, 1, s.age); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if got := tr.Population(); got != s.want {
			t.Fatalf("step %d: population = %d, want %d", i, got, s.want)
		}
	}

	if got := tr.Generation(); got != 0 {
		t.Fatalf("direct writes bumped the generation to %d", got)
	}
}

func TestToroidalCornerAdjacency(t *testing.T) {
	cells := make([]int8, 25)
	cells[0] = 1 // (0, 0)
	if got := countNeighbors(cells, 5, 4, 4); got != 1 {
		t.Fatalf("corner (4,4) counted %d neighbors, want 1", got)
	}
	cells[0] = 0
	cells[4*5+4] = 1 // (4, 4)
	if got := countNeighbors(cells, 5, 0, 0); got != 1 {
		t.Fatalf("corner (0,0) counted %d neighbors, want 1", got)
	}
}

func TestBirthAcrossTheSeam(t *testing.T) {
	tr := mustNew(t, 5)
	// All three are Moore neighbors of (4,4) through the wrap.
	setCells(t, tr, [][2]int{{0, 0}, {0, 4}, {4, 0}})

	tr.Iterate()

	age, err := tr.Age(4, 4)
	if err != nil {
		t.Fatal(err)
	}
	if age != 1 {
		t.Fatalf("corner cell age = %d, want 1 (birth through the wrap)", age)
	}
}

func TestBlinkerOscillation(t *testing.T) {
	tr := mustNew(t, 5)
	setCells(t, tr, [][2]int{{2, 1}, {2, 2}, {2, 3}})

	tr.Iterate()

	vertical := map[[2]int]bool{{1, 2}: true, {2, 2}: true, {3, 2}: true}
	for row := 0; row < 5; row++ {
		for col := 0; col < 5; col++ {
			age, err := tr.Age(row, col)
			if err != nil {
				t.Fatal(err)
			}
			if alive := age > 0; alive != vertical[[2]int{row, col}] {
				t.Fatalf("cell (%d,%d) alive=%v, expected %v", row, col, alive, vertical[[2]int{row, col}])
			}
		}
	}

	tr.Iterate()

	horizontal := map[[2]int]bool{{2, 1}: true, {2, 2}: true, {2, 3}: true}
	for row := 0; row < 5; row++ {
		for col := 0; col < 5; col++ {
			age, err := tr.Age(row, col)
			if err != nil {
				t.Fatal(err)
			}
			if alive := age > 0; alive != horizontal[[2]int{row, col}] {
				t.Fatalf("after second step cell (%d,%d) alive=%v, expected %v", row, col, alive, horizontal[[2]int{row, col}])
			}
		}
	}

	if got := tr.Generation(); got != 2 {
		t.Fatalf("generation = %d, want 2", got)
	}
}

func TestBlockStillLifeAndAging(t *testing.T) {
	tr := mustNew(t, 5)
	block := [][2]int{{1, 1}, {1, 2}, {2, 1}, {2, 2}}
	setCells(t, tr, block)

	for i := 1; i <= 3; i++ {
		tr.Iterate()
		if got := tr.Population(); got != 4 {
			t.Fatalf("iteration %d: population = %d, want 4", i, got)
		}
		for _, c := range block {
			age, err := tr.Age(c[0], c[1])
			if err != nil {
				t.Fatal(err)
			}
			if int(age) != i+1 {
				t.Fatalf("iteration %d: cell (%d,%d) age = %d, want %d", i, c[0], c[1], age, i+1)
			}
		}
	}
}

func TestAgeClipsAtMax(t *testing.T) {
	tr := mustNew(t, 5)
	block := [][2]int{{1, 1}, {1, 2}, {2, 1}, {2, 2}}
	for _, c := range block {
		if err := tr.Set(c[0], c[1], 126); err != nil {
			t.Fatal(err)
		}
	}

	tr.Iterate()
	tr.Iterate()

	for _, c := range block {
		age, err := tr.Age(c[0], c[1])
		if err != nil {
			t.Fatal(err)
		}
		if age != 127 {
			t.Fatalf("cell (%d,%d) age = %d, want clipped 127", c[0], c[1], age)
		}
	}
}

func TestPopulationMatchesScan(t *testing.T) {
	tr, err := NewSeeded(32, 0.4, newRNG(7), DefaultRule())
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 5; i++ {
		active := 0
		for row := 0; row < 32; row++ {
			for col := 0; col < 32; col++ {
				age, err := tr.Age(row, col)
				if err != nil {
					t.Fatal(err)
				}
				if age > 0 {
					active++
				}
			}
		}
		if got := tr.Population(); got != active {
			t.Fatalf("iteration %d: population = %d, scan found %d", i, got, active)
		}
		tr.Iterate()
	}
}

func TestSeededDeterminism(t *testing.T) {
	a, err := NewSeeded(24, 0.3, newRNG(99), DefaultRule())
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewSeeded(24, 0.3, newRNG(99), DefaultRule())
	if err != nil {
		t.Fatal(err)
	}

	if a.Fingerprint() != b.Fingerprint() {
		t.Fatal("equal seeds produced different generation-0 fingerprints")
	}
	if a.Population() != b.Population() {
		t.Fatal("equal seeds produced different populations")
	}

	for i := 0; i < 10; i++ {
		a.Iterate()
		b.Iterate()
	}

	bufA := make([]int8, 24*24)
	bufB := make([]int8, 24*24)
	if err := a.CopyInto(bufA); err != nil {
		t.Fatal(err)
	}
	if err := b.CopyInto(bufB); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(bufA, bufB) {
		t.Fatal("equal seeds diverged after ten iterations")
	}
	if a.Stats() != b.Stats() {
		t.Fatalf("stats diverged: %+v vs %+v", a.Stats(), b.Stats())
	}
}

func TestSeedingDensityExtremes(t *testing.T) {
	empty, err := NewSeeded(16, 0, newRNG(1), DefaultRule())
	if err != nil {
		t.Fatal(err)
	}
	if got := empty.Population(); got != 0 {
		t.Fatalf("density 0 population = %d", got)
	}

	full, err := NewSeeded(16, 1, newRNG(1), DefaultRule())
	if err != nil {
		t.Fatal(err)
	}
	if got := full.Population(); got != 16*16 {
		t.Fatalf("density 1 population = %d, want %d", got, 16*16)
	}
}
