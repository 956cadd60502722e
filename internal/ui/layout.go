package ui

import (
	"image"

	"lifepanel/pkg/core"
)

// PanelHeight is the height in pixels of the control panel drawn below the board.
const PanelHeight = 44

const (
	panelPadding = 10
	buttonHeight = 24
	buttonGap    = 8
	charWidth    = 7
)

// Button is a clickable panel control in panel-local coordinates.
type Button struct {
	Action Action
	Label  string
	Rect   image.Rectangle
}

// Buttons lays out the panel controls for the given run state. A running
// board only offers Pause; a paused board offers Generate Placements and Start.
func Buttons(running bool) []Button {
	var buttons []Button
	if running {
		buttons = []Button{{Action: ActionPause, Label: "Pause"}}
	} else {
		buttons = []Button{
			{Action: ActionGenerate, Label: "Generate Placements"},
			{Action: ActionStart, Label: "Start"},
		}
	}
	x := panelPadding
	y := (PanelHeight - buttonHeight) / 2
	for i := range buttons {
		w := len(buttons[i].Label)*charWidth + 2*panelPadding
		buttons[i].Rect = image.Rect(x, y, x+w, y+buttonHeight)
		x += w + buttonGap
	}
	return buttons
}

// HitButton returns the action of the button under (x, y).
func HitButton(buttons []Button, x, y int) (Action, bool) {
	for _, b := range buttons {
		if pointInRect(x, y, b.Rect) {
			return b.Action, true
		}
	}
	return ActionNone, false
}

// CellAt maps a cursor position on the board view to a cell coordinate.
func CellAt(mx, my, scale int, size core.Size) (int, int, bool) {
	if scale <= 0 || mx < 0 || my < 0 {
		return 0, 0, false
	}
	x, y := mx/scale, my/scale
	if !size.Contains(x, y) {
		return 0, 0, false
	}
	return x, y, true
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return x >= rect.Min.X && x < rect.Max.X && y >= rect.Min.Y && y < rect.Max.Y
}

// PanelWidth is the narrowest panel that fits the controls of either state.
func PanelWidth() int {
	w := 0
	for _, running := range []bool{false, true} {
		bs := Buttons(running)
		if right := bs[len(bs)-1].Rect.Max.X + panelPadding; right > w {
			w = right
		}
	}
	return w
}
