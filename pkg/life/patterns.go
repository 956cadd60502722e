package life

import (
	"sort"
	"sync"
)

var (
	patternsMu sync.RWMutex
	patterns   = map[string]*Grid{}
)

// RegisterPattern adds a named pattern to the registry. Empty names and nil
// grids are ignored.
func RegisterPattern(name string, g *Grid) {
	if name == "" || g == nil {
		return
	}
	patternsMu.Lock()
	defer patternsMu.Unlock()
	patterns[name] = g
}

// LookupPattern returns the pattern registered under name.
func LookupPattern(name string) (*Grid, bool) {
	patternsMu.RLock()
	defer patternsMu.RUnlock()
	g, ok := patterns[name]
	return g, ok
}

// Patterns returns the registered pattern names in sorted order.
func Patterns() []string {
	patternsMu.RLock()
	defer patternsMu.RUnlock()
	names := make([]string, 0, len(patterns))
	for name := range patterns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Stamp returns a copy of dst with every live cell of p placed at offset
// (x, y). Cells that fall outside dst are dropped.
func Stamp(dst, p *Grid, x, y int) *Grid {
	next := dst.clone()
	for py := 0; py < p.size.H; py++ {
		for px := 0; px < p.size.W; px++ {
			if p.cells[py*p.size.W+px] == 0 {
				continue
			}
			tx, ty := x+px, y+py
			if !next.size.Contains(tx, ty) {
				continue
			}
			next.cells[next.size.Index(tx, ty)] = 1
		}
	}
	return next
}

// Centered places p in the middle of an empty w x h grid.
func Centered(p *Grid, w, h int) *Grid {
	g := NewGrid(w, h)
	return Stamp(g, p, (g.size.W-p.size.W)/2, (g.size.H-p.size.H)/2)
}

func mustParse(s string) *Grid {
	g, err := ParseString(s)
	if err != nil {
		panic(err)
	}
	return g
}

func init() {
	RegisterPattern("block", mustParse("OO\nOO\n"))
	RegisterPattern("blinker", mustParse("OOO\n"))
	RegisterPattern("toad", mustParse(".OOO\nOOO.\n"))
	RegisterPattern("beacon", mustParse("OO..\nOO..\n..OO\n..OO\n"))
	RegisterPattern("glider", mustParse(".O.\n..O\nOOO\n"))
}
