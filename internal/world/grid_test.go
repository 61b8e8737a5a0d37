package world

import (
	"errors"
	"testing"
)

func TestNewGridIsAllWalls(t *testing.T) {
	g := NewGrid(4, 3)

	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			tile, err := g.At(x, y)
			if err != nil {
				t.Fatalf("At(%d,%d): %v", x, y, err)
			}
			if tile != Wall() {
				t.Errorf("tile (%d,%d) = %+v, want wall", x, y, tile)
			}
		}
	}
}

func TestGridOutOfBounds(t *testing.T) {
	g := NewGrid(4, 3)

	for _, p := range [][2]int{{-1, 0}, {0, -1}, {4, 0}, {0, 3}} {
		if _, err := g.At(p[0], p[1]); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("At(%d,%d) error = %v, want ErrOutOfBounds", p[0], p[1], err)
		}
		if err := g.Set(p[0], p[1], Floor()); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("Set(%d,%d) error = %v, want ErrOutOfBounds", p[0], p[1], err)
		}
		if !g.IsBlocked(p[0], p[1]) {
			t.Errorf("IsBlocked(%d,%d) = false outside the grid", p[0], p[1])
		}
	}
}

func TestGridCarve(t *testing.T) {
	g := NewGrid(10, 10)
	g.markExplored(3, 3)

	if err := g.Carve(NewRoom(2, 2, 3, 3)); err != nil {
		t.Fatalf("Carve: %v", err)
	}

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			inside := x >= 2 && x < 5 && y >= 2 && y < 5
			if g.IsBlocked(x, y) == inside {
				t.Errorf("IsBlocked(%d,%d) = %v, inside = %v", x, y, g.IsBlocked(x, y), inside)
			}
		}
	}

	tile, _ := g.At(3, 3)
	if !tile.Explored {
		t.Error("Carve should keep the explored flag")
	}
	if tile.BlocksSight {
		t.Error("carved tile should not block sight")
	}
}

func TestGridCarveOutside(t *testing.T) {
	g := NewGrid(5, 5)

	if err := g.Carve(NewRoom(3, 3, 4, 4)); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Carve error = %v, want ErrOutOfBounds", err)
	}
}
