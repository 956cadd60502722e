package life

import (
	"golang.org/x/sync/errgroup"

	"lifepanel/pkg/core"
)

// Engine produces randomized generations and steps grids under Conway's rule.
// The grid edges are hard: positions outside the grid count as dead.
//
// Randomize draws from the engine's RNG and is not safe for concurrent use.
// Step is safe for concurrent use.
type Engine struct {
	cfg Config
	rng *core.RNG
}

// New returns an engine for the provided configuration seeded with seed.
func New(cfg Config, seed int64) *Engine {
	if cfg.Width <= 0 {
		cfg.Width = Width
	}
	if cfg.Height <= 0 {
		cfg.Height = Height
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	return &Engine{cfg: cfg, rng: core.NewRNG(seed)}
}

// Config returns the engine configuration.
func (e *Engine) Config() Config { return e.cfg }

// Size returns the dimensions of grids produced by the engine.
func (e *Engine) Size() core.Size { return core.Size{W: e.cfg.Width, H: e.cfg.Height} }

// Empty returns a grid with every cell dead.
func (e *Engine) Empty() *Grid { return NewGrid(e.cfg.Width, e.cfg.Height) }

// Randomize returns a new grid where each cell is independently alive with
// the configured probability.
func (e *Engine) Randomize() *Grid {
	g := e.Empty()
	core.FillChance(e.rng, g.cells, e.cfg.LiveChance)
	return g
}

// Step advances g by one generation, splitting rows across the configured
// number of workers.
func (e *Engine) Step(g *Grid) *Grid {
	workers := e.cfg.Workers
	if workers <= 1 || g.size.H < 2 {
		return Step(g)
	}
	if workers > g.size.H {
		workers = g.size.H
	}

	next := &Grid{size: g.size, cells: make([]uint8, len(g.cells))}
	rows := (g.size.H + workers - 1) / workers

	var eg errgroup.Group
	for start := 0; start < g.size.H; start += rows {
		end := min(start+rows, g.size.H)
		eg.Go(func() error {
			stepRows(g, next, start, end)
			return nil
		})
	}
	// Workers never fail.
	_ = eg.Wait()
	return next
}

// CountLivingNeighbors returns how many of the 8 cells surrounding (x, y) are
// alive. The cell itself is not counted.
func CountLivingNeighbors(g *Grid, x, y int) int {
	n := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if g.Alive(x+dx, y+dy) {
				n++
			}
		}
	}
	return n
}

// Step returns the next generation of g. g is not modified.
func Step(g *Grid) *Grid {
	next := &Grid{size: g.size, cells: make([]uint8, len(g.cells))}
	stepRows(g, next, 0, g.size.H)
	return next
}

func stepRows(cur, next *Grid, y0, y1 int) {
	w := cur.size.W
	for y := y0; y < y1; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			neighbors := CountLivingNeighbors(cur, x, y)
			alive := cur.cells[idx] == 1
			next.cells[idx] = 0
			if (alive && (neighbors == 2 || neighbors == 3)) || (!alive && neighbors == 3) {
				next.cells[idx] = 1
			}
		}
	}
}
