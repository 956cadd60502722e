package render

import (
	"image"
	"image/color"

	"lifepanel/pkg/life"
)

// Palette colours live and dead cells.
type Palette struct {
	Alive color.RGBA
	Dead  color.RGBA
}

// DefaultPalette is white cells on black.
var DefaultPalette = Palette{
	Alive: color.RGBA{R: 255, G: 255, B: 255, A: 255},
	Dead:  color.RGBA{A: 255},
}

// fillBinaryRGBA converts binary cell data (0/1) into RGBA pixels in buf.
func fillBinaryRGBA(buf []byte, cells []uint8, p Palette) {
	for i, c := range cells {
		col := p.Dead
		if c != 0 {
			col = p.Alive
		}
		base := i * 4
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

// Image renders g at scale pixels per cell.
func Image(g *life.Grid, p Palette, scale int) *image.RGBA {
	if scale < 1 {
		scale = 1
	}
	size := g.Size()
	cells := image.NewRGBA(image.Rect(0, 0, size.W, size.H))
	fillBinaryRGBA(cells.Pix, g.Cells(), p)
	if scale == 1 {
		return cells
	}
	out := image.NewRGBA(image.Rect(0, 0, size.W*scale, size.H*scale))
	for y := 0; y < size.H*scale; y++ {
		for x := 0; x < size.W*scale; x++ {
			src := cells.PixOffset(x/scale, y/scale)
			dst := out.PixOffset(x, y)
			copy(out.Pix[dst:dst+4], cells.Pix[src:src+4])
		}
	}
	return out
}
