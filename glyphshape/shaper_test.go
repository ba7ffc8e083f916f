package glyphshape

import (
	"testing"

	"github.com/haldane/glterm/screen"
)

func TestIdentityShaperOneGlyphPerCell(t *testing.T) {
	row := screen.Row{Cells: []screen.Cell{{Char: 'H'}, {Char: 'i'}}}
	runs := IdentityShaper{}.ShapeRow(row)
	if len(runs) != 1 {
		t.Fatalf("len(runs) = %d, want 1", len(runs))
	}
	if len(runs[0].Glyphs) != 2 {
		t.Fatalf("len(glyphs) = %d, want 2", len(runs[0].Glyphs))
	}
	if runs[0].Glyphs[0].Col != 0 || runs[0].Glyphs[1].Col != 1 {
		t.Errorf("glyph columns = %d, %d, want 0, 1", runs[0].Glyphs[0].Col, runs[0].Glyphs[1].Col)
	}
}

func TestIdentityShaperEmptyRow(t *testing.T) {
	runs := IdentityShaper{}.ShapeRow(screen.Row{})
	if runs != nil {
		t.Errorf("ShapeRow(empty) = %v, want nil", runs)
	}
}

func TestCombiningMarkCount(t *testing.T) {
	if n := CombiningMarkCount(screen.Cell{}); n != 0 {
		t.Errorf("CombiningMarkCount(no combining) = %d, want 0", n)
	}
	cell := screen.Cell{Char: 'e', Combining: "́"} // acute accent
	if n := CombiningMarkCount(cell); n != 1 {
		t.Errorf("CombiningMarkCount(one mark) = %d, want 1", n)
	}
}

func TestIsEmojiPresentation(t *testing.T) {
	if !isEmojiPresentation(0x1F600) {
		t.Errorf("grinning face should be emoji presentation")
	}
	if isEmojiPresentation('A') {
		t.Errorf("'A' should not be emoji presentation")
	}
}
