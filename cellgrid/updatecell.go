package cellgrid

import (
	"log"

	"github.com/haldane/glterm/glyphshape"
	"github.com/haldane/glterm/screen"
	"github.com/haldane/glterm/termcolor"
)

// spriteFontIndex is a reserved atlas font slot for underline sprites
// rather than rasterized glyphs, keeping the single Lookup method on
// GlyphAtlas serving both without a second interface method.
const spriteFontIndex = -1

// faintAlpha and opaqueAlpha are the two alpha values a cell's color can
// carry.
const (
	faintAlpha  = 175
	opaqueAlpha = 255
)

// pushBG appends to CellsBG if capacity allows, reporting false otherwise
// so Rebuild can grow and retry the whole pass.
func (r *Rebuilder) pushBG(c GPUCell) bool {
	if len(r.CellsBG)+1 > cap(r.CellsBG) {
		return false
	}
	r.CellsBG = append(r.CellsBG, c)
	return true
}

// pushFG appends to Cells if capacity allows, reporting false otherwise.
func (r *Rebuilder) pushFG(c GPUCell) bool {
	if len(r.Cells)+1 > cap(r.Cells) {
		return false
	}
	r.Cells = append(r.Cells, c)
	return true
}

// updateCell resolves colors for one shaped glyph and appends up to four
// GPUCells (background, glyph, underline, strikethrough).
func (r *Rebuilder) updateCell(sel *screen.Selection, x, screenY, gridY int, glyph glyphshape.ShapedGlyph) bool {
	cell := glyph.Cell

	var bg, fg termcolor.Color
	haveBG := false
	switch {
	case sel != nil && sel.Contains(x, screenY):
		haveBG = true
		if sel.Background != nil {
			bg = *sel.Background
		} else {
			bg = termcolor.DefaultForeground
		}
		if sel.Foreground != nil {
			fg = *sel.Foreground
		} else {
			fg = termcolor.DefaultBackground
		}
	case cell.Inverse:
		haveBG = true
		if cell.HasFG {
			bg = cell.FG
		} else {
			bg = termcolor.DefaultForeground
		}
		if cell.HasBG {
			fg = cell.BG
		} else {
			fg = termcolor.DefaultBackground
		}
	default:
		if cell.HasBG {
			haveBG = true
			bg = cell.BG
		}
		if cell.HasFG {
			fg = cell.FG
		} else {
			fg = termcolor.DefaultForeground
		}
	}

	alpha := uint8(opaqueAlpha)
	if cell.Faint {
		alpha = faintAlpha
	}

	bgNeeded := 0
	if haveBG {
		bgNeeded = 1
	}
	fgNeeded := 0
	hasGlyph := cell.Char > 0
	if hasGlyph {
		fgNeeded++
	}
	hasUnderline := cell.Underline != screen.UnderlineNone
	if hasUnderline {
		fgNeeded++
	}
	if cell.Strikethrough {
		fgNeeded++
	}
	if len(r.CellsBG)+bgNeeded > cap(r.CellsBG) || len(r.Cells)+fgNeeded > cap(r.Cells) {
		return false
	}

	gridWidth := uint8(1)
	if cell.Wide {
		gridWidth = 2
	}
	base := GPUCell{
		GridCol:   uint16(x),
		GridRow:   uint16(gridY),
		GridWidth: gridWidth,
	}

	if haveBG {
		bgCell := base
		bgCell.Mode = uint8(ModeBG)
		bgCell.BgR, bgCell.BgG, bgCell.BgB, bgCell.BgA = bg.R, bg.G, bg.B, opaqueAlpha
		if !r.pushBG(bgCell) {
			return false
		}
	}

	if hasGlyph {
		region, err := r.Atlas.Lookup(glyph.FontIndex, glyph.GlyphIndex, r.cellHeight())
		if err != nil {
			if r.logVerbose {
				log.Printf("cellgrid: glyph lookup failed for %q: %v", cell.Char, err)
			}
		} else {
			glyphCell := base
			if glyph.Emoji {
				glyphCell.Mode = uint8(ModeFGColor)
			} else {
				glyphCell.Mode = uint8(ModeFG)
			}
			glyphCell.FgR, glyphCell.FgG, glyphCell.FgB, glyphCell.FgA = fg.R, fg.G, fg.B, alpha
			glyphCell.GlyphX, glyphCell.GlyphY = region.X, region.Y
			glyphCell.GlyphWidth, glyphCell.GlyphHeight = region.Width, region.Height
			glyphCell.GlyphOffsetX, glyphCell.GlyphOffsetY = region.OffsetX, region.OffsetY
			if !r.pushFG(glyphCell) {
				return false
			}
		}
	}

	if hasUnderline {
		region, err := r.Atlas.Lookup(spriteFontIndex, int(cell.Underline), r.cellHeight())
		if err != nil {
			if r.logVerbose {
				log.Printf("cellgrid: underline sprite lookup failed: %v", err)
			}
		} else {
			underlineColor := fg
			if cell.HasUnderlineColor {
				underlineColor = cell.UnderlineColor
			}
			ulCell := base
			ulCell.Mode = uint8(ModeFG)
			ulCell.FgR, ulCell.FgG, ulCell.FgB, ulCell.FgA = underlineColor.R, underlineColor.G, underlineColor.B, alpha
			ulCell.GlyphX, ulCell.GlyphY = region.X, region.Y
			ulCell.GlyphWidth, ulCell.GlyphHeight = region.Width, region.Height
			ulCell.GlyphOffsetX, ulCell.GlyphOffsetY = region.OffsetX, region.OffsetY
			if !r.pushFG(ulCell) {
				return false
			}
		}
	}

	if cell.Strikethrough {
		stCell := base
		stCell.Mode = uint8(ModeStrikethrough)
		stCell.FgR, stCell.FgG, stCell.FgB, stCell.FgA = fg.R, fg.G, fg.B, alpha
		if !r.pushFG(stCell) {
			return false
		}
	}

	return true
}

// appendCursorCell appends the cursor rectangle/bar to the foreground
// array.
func (r *Rebuilder) appendCursorCell(snap *screen.Snapshot) bool {
	if !snap.CursorVisible {
		return true
	}
	var mode CellMode
	switch snap.CursorStyle {
	case screen.CursorBox:
		mode = ModeCursorRect
	case screen.CursorBoxHollow:
		mode = ModeCursorRectHollow
	case screen.CursorBar:
		mode = ModeCursorBar
	default:
		mode = ModeCursorRect
	}

	gridWidth := uint8(1)
	if snap.CursorY >= 0 && snap.CursorY < len(snap.RowsInViewportOrder) {
		row := snap.RowsInViewportOrder[snap.CursorY]
		if snap.CursorX >= 0 && snap.CursorX < len(row.Cells) && row.Cells[snap.CursorX].Wide {
			gridWidth = 2
		}
	}

	cursor := GPUCell{
		GridCol:   uint16(snap.CursorX),
		GridRow:   uint16(snap.CursorY),
		GridWidth: gridWidth,
		Mode:      uint8(mode),
		BgR:       r.CursorColor.R,
		BgG:       r.CursorColor.G,
		BgB:       r.CursorColor.B,
		BgA:       opaqueAlpha,
		FgA:       0,
	}
	return r.pushFG(cursor)
}

// cellHeight reports the atlas's current cell height, used for every
// glyph/sprite lookup in a pass.
func (r *Rebuilder) cellHeight() int {
	_, h := r.Atlas.Metrics()
	return h
}
