//go:build ebiten

package app

import (
	"context"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"lifepanel/internal/logging"
	"lifepanel/internal/render"
	"lifepanel/internal/session"
	"lifepanel/internal/ui"
)

// Game adapts a board controller to the ebiten.Game interface. The board
// steps on its own ticker; Game only reads snapshots and forwards input.
type Game struct {
	ctx     context.Context
	ctrl    *session.Controller
	painter *render.GridPainter
	panel   *ui.Panel
	log     *slog.Logger

	scale int
}

// New constructs a Game for the provided controller. Running periods started
// from the window end when ctx is cancelled.
func New(ctx context.Context, ctrl *session.Controller, scale int, log *slog.Logger) *Game {
	if log == nil {
		log = logging.NewNop()
	}
	if scale < 1 {
		scale = 1
	}
	size := ctrl.Grid().Size()
	return &Game{
		ctx:     ctx,
		ctrl:    ctrl,
		painter: render.NewGridPainter(size.W, size.H, render.DefaultPalette),
		panel:   ui.NewPanel(size.W * scale),
		log:     log,
		scale:   scale,
	}
}

// WindowSize returns the window size that fits the board and the panel.
func (g *Game) WindowSize() (int, int) {
	return g.Layout(0, 0)
}

// Update handles input for the frame.
func (g *Game) Update() error {
	action := ui.ActionNone
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyQ), inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		action = ui.ActionToggleRun
	case inpututil.IsKeyJustPressed(ebiten.KeyG):
		action = ui.ActionGenerate
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		action = ui.ActionStep
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		action = ui.ActionClear
	}

	snap := g.ctrl.Snapshot()
	boardH := snap.Grid.Size().H * g.scale
	if a := g.panel.Update(snap, boardH); a != ui.ActionNone {
		action = a
	}
	if action != ui.ActionNone {
		if err := ui.Dispatch(g.ctx, g.ctrl, action); err != nil {
			g.log.Debug("action rejected", "action", action.String(), "error", err)
		}
		return nil
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		if x, y, ok := ui.CellAt(mx, my, g.scale, snap.Grid.Size()); ok {
			if err := g.ctrl.Toggle(x, y); err != nil {
				g.log.Debug("toggle rejected", "x", x, "y", y, "error", err)
			}
		}
	}
	return nil
}

// Draw renders the current generation and the control panel.
func (g *Game) Draw(screen *ebiten.Image) {
	grid := g.ctrl.Grid()
	g.painter.Blit(screen, grid, g.scale)
	g.panel.Draw(screen, grid.Size().H*g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.ctrl.Grid().Size()
	w := s.W * g.scale
	if pw := ui.PanelWidth(); w < pw {
		w = pw
	}
	return w, s.H*g.scale + ui.PanelHeight
}
