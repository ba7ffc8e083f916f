package cellgrid

import (
	"github.com/haldane/glterm/config"
	"github.com/haldane/glterm/glyphshape"
	"github.com/haldane/glterm/screen"
	"github.com/haldane/glterm/termcolor"
)

// maxCapacityDoublings bounds the capacity-exceeded retry loop: grow and
// redo the pass. Five doublings of a rows*cols-sized starting reservation
// covers any realistic screen long before it could legitimately be
// reached, so hitting the bound means a caller has handed Rebuild
// something pathological.
const maxCapacityDoublings = 5

// Rebuilder holds the row LRU, the two growing cell arrays, and the
// GPU-upload cursor state. It is not safe for concurrent
// use — like a terminal library's Buffer type, it is owned by a single render
// thread and documented as such rather than enforced with a mutex.
type Rebuilder struct {
	Shaper glyphshape.FontShaper
	Atlas  glyphshape.GlyphAtlas

	CursorColor termcolor.Color

	cache *rowCache

	// rowCacheCapacity and logVerbose mirror config.Config, carried here so
	// ResetCache can re-derive the cache at the same override the
	// constructor was given.
	rowCacheCapacity int
	logVerbose       bool

	CellsBG []GPUCell
	Cells   []GPUCell

	bgCap, fgCap int

	// GPU upload protocol state.
	GLCellsSizeBG, GLCellsSizeFG       int
	GLCellsWrittenBG, GLCellsWrittenFG int

	// lastCellWidth/lastCellHeight back ResetFontMetrics' change detection.
	lastCellWidth, lastCellHeight int
}

// NewRebuilder constructs a Rebuilder sized for a grid of the given
// dimensions, with default tuning (see NewRebuilderWithConfig).
func NewRebuilder(rows, cols int, shaper glyphshape.FontShaper, atlas glyphshape.GlyphAtlas) *Rebuilder {
	return NewRebuilderWithConfig(rows, cols, shaper, atlas, config.Default())
}

// NewRebuilderWithConfig constructs a Rebuilder the way NewRebuilder does,
// but honors cfg's row-cache capacity override and log verbosity instead of
// always taking the defaults.
func NewRebuilderWithConfig(rows, cols int, shaper glyphshape.FontShaper, atlas glyphshape.GlyphAtlas, cfg config.Config) *Rebuilder {
	return &Rebuilder{
		Shaper:           shaper,
		Atlas:            atlas,
		CursorColor:      termcolor.RGB(255, 255, 255),
		cache:            newRowCache(rows, cfg.RowCacheCapacity),
		bgCap:            rows * cols,
		fgCap:            rows*cols*2 + 1,
		rowCacheCapacity: cfg.RowCacheCapacity,
		logVerbose:       cfg.LogVerbose,
	}
}

// ResetCache clears the row LRU, needed after a font-size change since
// cached cells reference stale atlas positions. Reuses the capacity override
// the Rebuilder was constructed with.
func (r *Rebuilder) ResetCache(rows int) {
	r.cache = newRowCache(rows, r.rowCacheCapacity)
}

// Rebuild populates CellsBG and Cells from scratch.
func (r *Rebuilder) Rebuild(active screen.ScreenTag, sel *screen.Selection, snap *screen.Snapshot, drawCursor bool) error {
	for attempt := 0; ; attempt++ {
		ok := r.rebuildOnce(active, sel, snap, drawCursor)
		if ok {
			return nil
		}
		if attempt >= maxCapacityDoublings {
			return errCapacityExhausted
		}
		r.bgCap *= 2
		r.fgCap *= 2
	}
}

// rebuildOnce runs one pass of the algorithm; it returns false if a
// capacity check failed partway through, in which case the caller should
// grow the reserved capacity and retry the whole pass (fixing up a partial
// pass in place is not worth the complexity Go's automatic slice growth
// already makes unnecessary for correctness — only the bookkeeping that
// mirrors the fixed-capacity language needs the retry at all).
func (r *Rebuilder) rebuildOnce(active screen.ScreenTag, sel *screen.Selection, snap *screen.Snapshot, drawCursor bool) bool {
	// Reset output arrays, retaining capacity: only reallocate when the
	// current backing array is too small for this attempt's reserved
	// capacity (i.e. after a capacity-growth retry), not on every frame.
	if cap(r.CellsBG) >= r.bgCap {
		r.CellsBG = r.CellsBG[:0]
	} else {
		r.CellsBG = make([]GPUCell, 0, r.bgCap)
	}
	if cap(r.Cells) >= r.fgCap {
		r.Cells = r.Cells[:0]
	} else {
		r.Cells = make([]GPUCell, 0, r.fgCap)
	}
	r.GLCellsWrittenBG = 0
	r.GLCellsWrittenFG = 0

	cursorCellIdx := -1

	for y := 0; y < len(snap.RowsInViewportOrder); y++ {
		row := &snap.RowsInViewportOrder[y]
		_, screenY := snap.ViewportToScreen(0, y)
		selKey := keyForSelection(sel, screenY)
		key := rowCacheKey{sel: selKey, screen: active, rowID: row.ID}

		startIndex := len(r.Cells)

		cached, hit := false, false
		if !row.Dirty {
			var cells []GPUCell
			cells, hit = r.cache.get(key)
			if hit {
				for _, c := range cells {
					c.GridRow = uint16(y)
					r.Cells = append(r.Cells, c)
				}
				cached = true
			}
		}
		if !cached {
			if ok := r.shapeRow(sel, snap, active, *row, y); !ok {
				return false
			}
			r.cache.put(key, r.Cells[startIndex:])
		}

		if drawCursor && snap.CursorVisible && snap.CursorStyle == screen.CursorBox &&
			snap.ViewportAtBottom && y == snap.CursorY {
			for i := startIndex; i < len(r.Cells); i++ {
				if int(r.Cells[i].GridCol) == snap.CursorX && r.Cells[i].Mode == uint8(ModeFG) {
					cursorCellIdx = i
					break
				}
			}
		}
		row.Dirty = false
	}

	if drawCursor {
		if ok := r.appendCursorCell(snap); !ok {
			return false
		}
	}

	if cursorCellIdx >= 0 {
		overlay := r.Cells[cursorCellIdx]
		overlay.FgR, overlay.FgG, overlay.FgB, overlay.FgA = 0, 0, 0, 255
		if !r.pushFG(overlay) {
			return false
		}
	}

	return true
}

// shapeRow shapes and emits cells for one row via the font shaper,
// appending to r.Cells (and r.CellsBG for background cells).
func (r *Rebuilder) shapeRow(sel *screen.Selection, snap *screen.Snapshot, active screen.ScreenTag, row screen.Row, y int) bool {
	for _, run := range r.Shaper.ShapeRow(row) {
		for _, glyph := range run.Glyphs {
			_, screenY := snap.ViewportToScreen(glyph.Col, y)
			if !r.updateCell(sel, glyph.Col, screenY, y, glyph) {
				return false
			}
		}
	}
	return true
}

var errCapacityExhausted = capacityError{}

type capacityError struct{}

func (capacityError) Error() string {
	return "cellgrid: reserved cell capacity exhausted after maximum growth attempts"
}
