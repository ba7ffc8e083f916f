// Package glyphshape defines the two boundaries CellRebuilder reaches
// across for font shaping and glyph rasterization — both explicitly out of
// scope — plus one reference implementation of each so the
// rebuilder can be exercised without a real font stack.
package glyphshape

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/haldane/glterm/screen"
)

// ShapedGlyph is one glyph produced by a shaper run: a resolved font/glyph
// pair for a single grid column, plus the combining text it carries.
type ShapedGlyph struct {
	Col        int
	Cell       screen.Cell
	FontIndex  int
	GlyphIndex int
	Emoji      bool // presentation requires the color atlas
}

// Run is a maximal sub-row the shaper hands back as a unit: same font,
// same direction.
type Run struct {
	Glyphs []ShapedGlyph
}

// FontShaper turns one row's cells into shaped glyph runs.
type FontShaper interface {
	ShapeRow(row screen.Row) []Run
}

// IdentityShaper is the reference FontShaper: it does not do real text
// shaping (ligatures, RTL reordering) — that lives in the out-of-scope font
// stack. It emits one glyph per cell in a single run, with GlyphIndex taken
// from the cell's base rune and width from go-runewidth; a cell's Combining
// marks travel along in the glyph's Cell but are not segmented or shaped
// here.
type IdentityShaper struct {
	// FontIndex is returned for every glyph; a real shaper resolves this
	// per matched font (regular/bold/italic/fallback).
	FontIndex int
}

// ShapeRow implements FontShaper.
func (s IdentityShaper) ShapeRow(row screen.Row) []Run {
	if len(row.Cells) == 0 {
		return nil
	}
	run := Run{Glyphs: make([]ShapedGlyph, 0, len(row.Cells))}
	col := 0
	for col < len(row.Cells) {
		cell := row.Cells[col]
		col++
		wide := cell.Wide || runewidth.RuneWidth(cell.Char) == 2
		glyph := ShapedGlyph{
			Col:        col - 1,
			Cell:       cell,
			FontIndex:  s.FontIndex,
			GlyphIndex: int(cell.Char),
			Emoji:      isEmojiPresentation(cell.Char),
		}
		glyph.Cell.Wide = wide
		run.Glyphs = append(run.Glyphs, glyph)
	}
	return []Run{run}
}

// CombiningMarkCount reports how many uniseg grapheme clusters a cell's
// Combining text segments into: 0 when it is empty, 1 when it holds only
// marks (any number of marks extend a single cluster), more when it also
// holds another base character. The rebuilder never advances a column for
// Combining; this is exposed so callers constructing a screen.Row can
// sanity-check that Combining holds marks and not, say, a second base
// character that should have its own cell.
func CombiningMarkCount(cell screen.Cell) int {
	if cell.Combining == "" {
		return 0
	}
	n := 0
	for gr := uniseg.NewGraphemes(cell.Combining); gr.Next(); {
		n++
	}
	return n
}

func isEmojiPresentation(r rune) bool {
	switch {
	case r >= 0x1F300 && r <= 0x1FAFF:
		return true
	case r >= 0x2600 && r <= 0x27BF:
		return true
	default:
		return false
	}
}
