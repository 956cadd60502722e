package core

// Size describes the dimensions of a grid.
type Size struct {
	W int
	H int
}

// Area returns the number of cells covered by the size.
func (s Size) Area() int { return s.W * s.H }

// Contains reports whether (x, y) lies inside [0,W) x [0,H).
func (s Size) Contains(x, y int) bool {
	return x >= 0 && x < s.W && y >= 0 && y < s.H
}

// Index returns the row-major index for in-bounds coordinates.
func (s Size) Index(x, y int) int { return y*s.W + x }
