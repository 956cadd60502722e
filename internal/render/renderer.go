//go:build ebiten

package render

import (
	"github.com/hajimehoshi/ebiten/v2"

	"lifepanel/pkg/life"
)

// GridPainter uploads a grid into a single image, one pixel per cell, and
// draws it scaled.
type GridPainter struct {
	w, h    int
	img     *ebiten.Image
	buf     []byte
	palette Palette
}

// NewGridPainter allocates a painter for a grid of size w*h.
func NewGridPainter(w, h int, p Palette) *GridPainter {
	gp := &GridPainter{w: w, h: h, buf: make([]byte, 4*w*h), palette: p}
	gp.img = ebiten.NewImage(w, h)
	return gp
}

// Blit uploads g into the painter image and draws it at scale.
func (gp *GridPainter) Blit(dst *ebiten.Image, g *life.Grid, scale int) {
	cells := g.Cells()
	if len(cells) != gp.w*gp.h {
		return
	}
	fillBinaryRGBA(gp.buf, cells, gp.palette)
	gp.img.WritePixels(gp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}
