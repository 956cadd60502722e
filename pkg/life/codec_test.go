package life

import (
	"bytes"
	"strings"
	"testing"
)

func TestParsePlaintext(t *testing.T) {
	src := "!Name: glider\n!\n.O\n..O\n*OO\n"
	g, err := ParseString(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if s := g.Size(); s.W != 3 || s.H != 3 {
		t.Fatalf("size = %+v, want 3x3", s)
	}
	expectCells(t, g, map[[2]int]bool{
		{1, 0}: true,
		{2, 1}: true,
		{0, 2}: true,
		{1, 2}: true,
		{2, 2}: true,
	}, "parsed")
	for i, c := range g.Cells() {
		if c > 1 {
			t.Fatalf("cell %d = %d, want 0 or 1", i, c)
		}
	}
}

func TestParseRejectsUnknownGlyph(t *testing.T) {
	_, err := ParseString("..X\n")
	if err == nil || !strings.Contains(err.Error(), "line 1 col 3") {
		t.Fatalf("expected positioned error, got %v", err)
	}
}

func TestParseRejectsEmpty(t *testing.T) {
	if _, err := ParseString("!only a comment\n"); err == nil {
		t.Fatal("expected error for pattern without cells")
	}
}

func TestFormatRoundTrip(t *testing.T) {
	g := New(DefaultConfig(), 5).Randomize()
	var buf bytes.Buffer
	if err := Format(&buf, g, "snapshot"); err != nil {
		t.Fatalf("format: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "!Name: snapshot\n") {
		t.Fatalf("missing header in %q", buf.String())
	}
	back, err := Parse(&buf)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !back.Equal(g) {
		t.Fatal("round trip changed the grid")
	}
}

func TestFormatKeepsEmptyRows(t *testing.T) {
	g := NewGrid(4, 3)
	back, err := ParseString(g.String())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if back.Size() != g.Size() {
		t.Fatalf("size = %+v, want %+v", back.Size(), g.Size())
	}
}
