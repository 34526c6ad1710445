package life

import (
	"slices"
	"testing"
)

func TestBlinkerOscillation(t *testing.T) {
	life := New(5, 5)
	w := life.Size().W
	set := func(x, y int) { life.Cells()[y*w+x] = 1 }
	set(2, 1)
	set(2, 2)
	set(2, 3)

	life.Step()
	assertAlive(t, life, "first step", map[[2]int]bool{
		{1, 2}: true,
		{2, 2}: true,
		{3, 2}: true,
	})

	life.Step()
	assertAlive(t, life, "second step", map[[2]int]bool{
		{2, 1}: true,
		{2, 2}: true,
		{2, 3}: true,
	})
}

func TestBlinkerAcrossSeam(t *testing.T) {
	life := New(5, 5)
	w := life.Size().W
	// Vertical blinker straddling the top/bottom edge.
	for _, y := range []int{4, 0, 1} {
		life.Cells()[y*w+0] = 1
	}

	life.Step()
	assertAlive(t, life, "after wrap step", map[[2]int]bool{
		{4, 0}: true,
		{0, 0}: true,
		{1, 0}: true,
	})
}

func TestBlockIsStillLife(t *testing.T) {
	life := New(4, 4)
	w := life.Size().W
	for _, p := range [][2]int{{1, 1}, {2, 1}, {1, 2}, {2, 2}} {
		life.Cells()[p[1]*w+p[0]] = 1
	}
	before := append([]uint8(nil), life.Cells()...)
	life.Step()
	if !slices.Equal(before, life.Cells()) {
		t.Fatalf("block changed: %v -> %v", before, life.Cells())
	}
	if got := life.Population(); got != 0.25 {
		t.Fatalf("population = %v, expected 0.25", got)
	}
}

func TestResetDeterministic(t *testing.T) {
	a := New(16, 8)
	b := New(16, 8)
	a.Reset(21)
	b.Reset(21)
	if !slices.Equal(a.Cells(), b.Cells()) {
		t.Fatal("Reset with equal seeds produced different boards")
	}
	if p := a.Population(); p <= 0 || p >= 1 {
		t.Fatalf("random board population %v outside (0,1)", p)
	}
}

func TestFromMap(t *testing.T) {
	c := FromMap(map[string]string{"w": "12", "h": "bad"})
	if c.Width != 12 || c.Height != DefaultConfig().Height {
		t.Fatalf("unexpected config %+v", c)
	}
}

func assertAlive(t *testing.T, life *Life, stage string, expects map[[2]int]bool) {
	t.Helper()
	size := life.Size()
	cells := life.Cells()
	for y := 0; y < size.H; y++ {
		for x := 0; x < size.W; x++ {
			alive := cells[y*size.W+x] == 1
			_, shouldBeAlive := expects[[2]int{x, y}]
			if shouldBeAlive != alive {
				t.Fatalf("%s: cell (%d,%d) alive=%v, expected %v", stage, x, y, alive, shouldBeAlive)
			}
		}
	}
}
