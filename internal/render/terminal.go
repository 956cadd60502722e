package render

import (
	"strings"

	"github.com/muesli/termenv"

	"lifepanel/pkg/life"
)

// Terminal formats grids as coloured text frames.
type Terminal struct {
	profile termenv.Profile
	alive   string
	dead    string
	// Newline terminates each line. Raw-mode terminals need "\r\n".
	Newline string
}

// NewTerminal creates a frame renderer for the given colour profile. The Ascii
// profile produces plain text.
func NewTerminal(p termenv.Profile) *Terminal {
	t := &Terminal{profile: p, Newline: "\n"}
	if p == termenv.Ascii {
		t.alive, t.dead = "O", "."
		return t
	}
	t.alive = p.String("██").Foreground(p.Color("#e5e7eb")).String()
	t.dead = p.String("··").Foreground(p.Color("#374151")).String()
	return t
}

// Frame renders g followed by a status line.
func (t *Terminal) Frame(g *life.Grid, status string) string {
	size := g.Size()
	var b strings.Builder
	for y := 0; y < size.H; y++ {
		for x := 0; x < size.W; x++ {
			if g.Alive(x, y) {
				b.WriteString(t.alive)
			} else {
				b.WriteString(t.dead)
			}
		}
		b.WriteString(t.Newline)
	}
	if status != "" {
		b.WriteString(t.profile.String(status).Bold().String())
		b.WriteString(t.Newline)
	}
	return b.String()
}
