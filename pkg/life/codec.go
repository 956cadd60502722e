package life

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// Plaintext cell glyphs.
const (
	glyphDead  = '.'
	glyphAlive = 'O'
)

// Parse reads a grid in plaintext (.cells) form. Lines starting with '!' are
// comments. '.' is dead, 'O' or '*' is alive. Rows shorter than the longest
// row are padded with dead cells.
func Parse(r io.Reader) (*Grid, error) {
	var rows []string
	width := 0
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimRight(sc.Text(), " \t\r")
		if strings.HasPrefix(text, "!") {
			continue
		}
		for col, ch := range text {
			switch ch {
			case glyphDead, glyphAlive, '*':
			default:
				return nil, errors.Errorf("life: line %d col %d: unexpected %q", line, col+1, ch)
			}
		}
		rows = append(rows, text)
		if len(text) > width {
			width = len(text)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "life: read pattern")
	}
	if width == 0 {
		return nil, errors.New("life: pattern has no cells")
	}

	cells := make([]uint8, width*len(rows))
	for y, row := range rows {
		for x, ch := range row {
			if ch != glyphDead {
				cells[y*width+x] = 1
			}
		}
	}
	return FromCells(width, len(rows), cells)
}

// ParseString is Parse over a string.
func ParseString(s string) (*Grid, error) {
	return Parse(strings.NewReader(s))
}

// Format writes g in plaintext form. A non-empty name is written as a
// "!Name:" comment header.
func Format(w io.Writer, g *Grid, name string) error {
	bw := bufio.NewWriter(w)
	if name != "" {
		fmt.Fprintf(bw, "!Name: %s\n", name)
	}
	bw.WriteString(g.String())
	return errors.Wrap(bw.Flush(), "life: write pattern")
}

// String renders the grid in plaintext form, one row per line.
func (g *Grid) String() string {
	var b strings.Builder
	b.Grow((g.size.W + 1) * g.size.H)
	for _, row := range g.Rows() {
		b.WriteString(row)
		b.WriteByte('\n')
	}
	return b.String()
}

// Rows renders each row of the grid in plaintext form.
func (g *Grid) Rows() []string {
	rows := make([]string, g.size.H)
	buf := make([]byte, g.size.W)
	for y := 0; y < g.size.H; y++ {
		for x := 0; x < g.size.W; x++ {
			buf[x] = glyphDead
			if g.cells[y*g.size.W+x] == 1 {
				buf[x] = glyphAlive
			}
		}
		rows[y] = string(buf)
	}
	return rows
}
