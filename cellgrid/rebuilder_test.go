package cellgrid

import (
	"testing"

	"github.com/haldane/glterm/config"
	"github.com/haldane/glterm/glyphshape"
	"github.com/haldane/glterm/screen"
)

func twoColRow(id screen.RowID) screen.Row {
	return screen.Row{
		ID: id,
		Cells: []screen.Cell{
			{Char: 'A'},
			{Char: 'B'},
		},
	}
}

func newTestRebuilder(rows, cols int) *Rebuilder {
	return NewRebuilder(rows, cols, glyphshape.IdentityShaper{}, glyphshape.NewFakeAtlas(8, 16))
}

func TestNewRebuilderWithConfigHonorsRowCacheCapacity(t *testing.T) {
	r := NewRebuilderWithConfig(1, 2, glyphshape.IdentityShaper{}, glyphshape.NewFakeAtlas(8, 16), config.Config{RowCacheCapacity: 3})
	if r.cache.capacity != 3 {
		t.Fatalf("cache.capacity = %d, want 3", r.cache.capacity)
	}

	// ResetCache must re-derive the cache at the same override, not fall
	// back to the rows*10 default.
	r.ResetCache(5)
	if r.cache.capacity != 3 {
		t.Errorf("after ResetCache, cache.capacity = %d, want 3", r.cache.capacity)
	}
}

func oneRowSnapshot(row screen.Row) *screen.Snapshot {
	return &screen.Snapshot{
		Cols: 2, Rows: 1,
		ViewportAtBottom:    true,
		RowsInViewportOrder: []screen.Row{row},
	}
}

// TestRebuildSelectionOrdering: a one-row
// screen "AB" with selection covering "A" should emit, in order, a
// selection-background cell for col 0, a selection-foreground glyph for
// 'A', no background cell for col 1 (cell.bg unset), then a glyph for 'B'.
func TestRebuildSelectionOrdering(t *testing.T) {
	r := newTestRebuilder(1, 2)
	sel := &screen.Selection{StartX: 0, StartY: 0, EndX: 0, EndY: 0}
	snap := oneRowSnapshot(twoColRow(1))

	if err := r.Rebuild(screen.Primary, sel, snap, false); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}

	if len(r.CellsBG) != 1 {
		t.Fatalf("len(CellsBG) = %d, want 1", len(r.CellsBG))
	}
	if r.CellsBG[0].GridCol != 0 || r.CellsBG[0].Mode != uint8(ModeBG) {
		t.Errorf("CellsBG[0] = %+v, want col 0 mode bg", r.CellsBG[0])
	}

	if len(r.Cells) != 2 {
		t.Fatalf("len(Cells) = %d, want 2", len(r.Cells))
	}
	if r.Cells[0].GridCol != 0 || r.Cells[1].GridCol != 1 {
		t.Errorf("Cells grid cols = %d, %d, want 0, 1", r.Cells[0].GridCol, r.Cells[1].GridCol)
	}
}

// TestCacheHitMatchesMiss covers the universal property: re-running with
// identical inputs on a non-dirty row must produce an identical foreground
// array, modulo grid_row.
func TestCacheHitMatchesMiss(t *testing.T) {
	r := newTestRebuilder(1, 2)
	snap := oneRowSnapshot(twoColRow(7))
	snap.RowsInViewportOrder[0].Dirty = true

	if err := r.Rebuild(screen.Primary, nil, snap, false); err != nil {
		t.Fatalf("first Rebuild: %v", err)
	}
	miss := append([]GPUCell(nil), r.Cells...)

	// Row is no longer dirty (cleared by the first pass); the cache
	// should now serve row 7 without re-shaping.
	if err := r.Rebuild(screen.Primary, nil, snap, false); err != nil {
		t.Fatalf("second Rebuild: %v", err)
	}
	hit := append([]GPUCell(nil), r.Cells...)

	if len(miss) != len(hit) {
		t.Fatalf("len(miss)=%d, len(hit)=%d", len(miss), len(hit))
	}
	for i := range miss {
		m, h := miss[i], hit[i]
		m.GridRow, h.GridRow = 0, 0
		if m != h {
			t.Errorf("cell %d differs: miss=%+v hit=%+v", i, miss[i], hit[i])
		}
	}
}

// TestBGArrayHoldsOnlyBackgroundMode covers the universal property that
// the background array contains only mode=bg cells and the foreground
// array contains none.
func TestBGArrayHoldsOnlyBackgroundMode(t *testing.T) {
	r := newTestRebuilder(1, 2)
	row := twoColRow(1)
	row.Cells[0].HasBG = true
	snap := oneRowSnapshot(row)

	if err := r.Rebuild(screen.Primary, nil, snap, false); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}
	for i, c := range r.CellsBG {
		if c.Mode != uint8(ModeBG) {
			t.Errorf("CellsBG[%d].Mode = %d, want ModeBG", i, c.Mode)
		}
	}
	for i, c := range r.Cells {
		if c.Mode == uint8(ModeBG) {
			t.Errorf("Cells[%d].Mode = ModeBG, want none", i)
		}
	}
}

// TestCursorOverlayAppearsOnce checks that the inverted-cursor overlay
// appears at most once per frame, after the cursor cell.
func TestCursorOverlayAppearsOnce(t *testing.T) {
	r := newTestRebuilder(1, 2)
	snap := oneRowSnapshot(twoColRow(1))
	snap.CursorVisible = true
	snap.CursorStyle = screen.CursorBox
	snap.CursorX, snap.CursorY = 0, 0

	if err := r.Rebuild(screen.Primary, nil, snap, true); err != nil {
		t.Fatalf("Rebuild: %v", err)
	}

	overlays := 0
	cursorIdx := -1
	for i, c := range r.Cells {
		if c.Mode == uint8(ModeCursorRect) {
			cursorIdx = i
		}
	}
	for i, c := range r.Cells {
		if i > cursorIdx && c.GridCol == 0 && c.Mode == uint8(ModeFG) && c.FgA == 255 && c.FgR == 0 {
			overlays++
		}
	}
	if cursorIdx < 0 {
		t.Fatalf("no cursor cell emitted")
	}
	if overlays != 1 {
		t.Errorf("overlays = %d, want 1", overlays)
	}
}

func TestResetFontMetricsPostsOnChange(t *testing.T) {
	var posted bool
	r := newTestRebuilder(4, 4)
	r.ResetFontMetrics(4, mailboxFunc(func(w, h int) { posted = true }))
	if !posted {
		t.Errorf("expected a cell_size message on first reset")
	}
	posted = false
	r.ResetFontMetrics(4, mailboxFunc(func(w, h int) { posted = true }))
	if posted {
		t.Errorf("expected no cell_size message when metrics are unchanged")
	}
}

type mailboxFunc func(w, h int)

func (f mailboxFunc) CellSizeChanged(w, h int) { f(w, h) }
