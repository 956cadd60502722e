package life

import (
	"github.com/pkg/errors"

	"lifepanel/pkg/core"
)

// ErrOutOfBounds is returned when a caller addresses a cell outside the grid.
var ErrOutOfBounds = errors.New("life: coordinates out of bounds")

// Grid is one generation of cells stored row-major as 0 (dead) or 1 (alive).
// A Grid is never modified after construction; operations that change cells
// return a new Grid.
type Grid struct {
	size  core.Size
	cells []uint8
}

// NewGrid allocates an empty grid with the given dimensions.
func NewGrid(w, h int) *Grid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &Grid{size: core.Size{W: w, H: h}, cells: make([]uint8, w*h)}
}

// FromCells builds a grid from a row-major buffer. Any non-zero value is
// treated as alive. The buffer is copied.
func FromCells(w, h int, cells []uint8) (*Grid, error) {
	if w <= 0 || h <= 0 {
		return nil, errors.Errorf("life: invalid grid size %dx%d", w, h)
	}
	if len(cells) != w*h {
		return nil, errors.Errorf("life: got %d cells for a %dx%d grid", len(cells), w, h)
	}
	g := NewGrid(w, h)
	for i, c := range cells {
		if c != 0 {
			g.cells[i] = 1
		}
	}
	return g, nil
}

// Size returns the grid dimensions.
func (g *Grid) Size() core.Size { return g.size }

// Alive reports whether the cell at (x, y) is alive. Coordinates outside the
// grid are dead.
func (g *Grid) Alive(x, y int) bool {
	if !g.size.Contains(x, y) {
		return false
	}
	return g.cells[g.size.Index(x, y)] == 1
}

// Cells exposes the row-major cell buffer. Callers must not modify it.
func (g *Grid) Cells() []uint8 { return g.cells }

// Population returns the number of live cells.
func (g *Grid) Population() int {
	n := 0
	for _, c := range g.cells {
		n += int(c)
	}
	return n
}

// Equal reports whether both grids have the same size and cell states.
func (g *Grid) Equal(o *Grid) bool {
	if g == nil || o == nil {
		return g == o
	}
	if g.size != o.size {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

func (g *Grid) clone() *Grid {
	c := &Grid{size: g.size, cells: make([]uint8, len(g.cells))}
	copy(c.cells, g.cells)
	return c
}

// Toggle returns a copy of g with the cell at (x, y) flipped.
func Toggle(g *Grid, x, y int) (*Grid, error) {
	if !g.size.Contains(x, y) {
		return nil, errors.Wrapf(ErrOutOfBounds, "toggle (%d,%d) on %dx%d grid", x, y, g.size.W, g.size.H)
	}
	next := g.clone()
	idx := g.size.Index(x, y)
	next.cells[idx] ^= 1
	return next, nil
}
