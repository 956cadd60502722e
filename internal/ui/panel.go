//go:build ebiten

package ui

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"lifepanel/internal/session"
)

// Panel renders the control strip below the board and reports clicks on its
// buttons.
type Panel struct {
	width int
	panel *ebiten.Image
	pixel *ebiten.Image

	buttons []Button
	status  string
}

// NewPanel constructs a panel of the given width.
func NewPanel(width int) *Panel {
	if width < PanelWidth() {
		width = PanelWidth()
	}
	p := &Panel{width: width}
	p.pixel = ebiten.NewImage(1, 1)
	p.pixel.Fill(color.White)
	p.buttons = Buttons(false)
	return p
}

// Update refreshes the buttons for snap and returns the action clicked this
// frame, if any. offsetY is the panel's top edge in screen coordinates.
func (p *Panel) Update(snap session.Snapshot, offsetY int) Action {
	if p == nil {
		return ActionNone
	}
	p.buttons = Buttons(snap.State == session.Running)
	p.status = fmt.Sprintf("gen %d  pop %d", snap.Generation, snap.Grid.Population())
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return ActionNone
	}
	mx, my := ebiten.CursorPosition()
	if a, ok := HitButton(p.buttons, mx, my-offsetY); ok {
		return a
	}
	return ActionNone
}

// Draw paints the panel with its top edge at offsetY.
func (p *Panel) Draw(screen *ebiten.Image, offsetY int) {
	if p == nil {
		return
	}
	if p.panel == nil {
		p.panel = ebiten.NewImage(p.width, PanelHeight)
	}
	p.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})
	for _, b := range p.buttons {
		p.drawButton(b.Rect, b.Label)
	}
	face := basicfont.Face7x13
	bounds := text.BoundString(face, p.status)
	x := p.width - panelPadding - bounds.Dx()
	y := (PanelHeight + bounds.Dy()) / 2
	text.Draw(p.panel, p.status, face, x, y, color.RGBA{R: 160, G: 160, B: 170, A: 255})

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(0, float64(offsetY))
	screen.DrawImage(p.panel, op)
}

func (p *Panel) drawButton(rect image.Rectangle, label string) {
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(bg)
	p.panel.DrawImage(p.pixel, op)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(p.panel, label, face, x, y, fg)
}
