package glyphshape

// AtlasRegion is the rasterized-glyph metadata CellRebuilder copies
// straight into a GPUCell: where in the atlas texture the glyph lives and
// where to place it relative to the cell origin.
type AtlasRegion struct {
	X, Y          uint32
	Width, Height uint32
	OffsetX, OffsetY int32
}

// GlyphAtlas resolves a shaped glyph to its rasterized location. Populating
// the atlas (rasterizing glyphs, growing the backing texture) is out of
// scope; this interface is the boundary CellRebuilder calls
// across to reach it.
type GlyphAtlas interface {
	Lookup(fontIndex, glyphIndex int, cellHeight int) (AtlasRegion, error)
	// Metrics returns the regular-weight ASCII 'M' metrics used for the
	// font-metric reset.
	Metrics() (width, height int)
	// FlushState reports whether atlas unit 0 (greyscale) or 1 (color) has
	// changed since the last call for that unit, and whether the change
	// was a resize rather than an in-place update. Calling it clears both
	// flags for that unit.
	FlushState(unit int) (modified, resized bool)
}

// FakeAtlas is a deterministic stand-in GlyphAtlas for tests: every glyph gets a distinct, predictable texel rectangle instead
// of a real rasterized bitmap.
type FakeAtlas struct {
	CellWidth, CellHeight int

	// ModifiedGreyscale/ResizedGreyscale and ModifiedColor/ResizedColor
	// are exported so tests can stage an atlas flush directly, instead of
	// driving it indirectly through glyph rasterization this fake doesn't
	// do.
	ModifiedGreyscale, ResizedGreyscale bool
	ModifiedColor, ResizedColor         bool
}

// NewFakeAtlas builds a FakeAtlas sized for the given cell metrics.
func NewFakeAtlas(cellWidth, cellHeight int) *FakeAtlas {
	if cellWidth <= 0 {
		cellWidth = 8
	}
	if cellHeight <= 0 {
		cellHeight = 16
	}
	return &FakeAtlas{CellWidth: cellWidth, CellHeight: cellHeight}
}

// Lookup implements GlyphAtlas by packing glyphs left to right: one row per
// fontIndex, column glyphIndex modulo 4096.
func (a *FakeAtlas) Lookup(fontIndex, glyphIndex int, cellHeight int) (AtlasRegion, error) {
	col := uint32(glyphIndex % 4096)
	row := uint32(fontIndex)
	return AtlasRegion{
		X:       col * uint32(a.CellWidth),
		Y:       row * uint32(a.CellHeight),
		Width:   uint32(a.CellWidth),
		Height:  uint32(cellHeight),
		OffsetX: 0,
		OffsetY: 0,
	}, nil
}

// Metrics implements GlyphAtlas.
func (a *FakeAtlas) Metrics() (int, int) {
	return a.CellWidth, a.CellHeight
}

// FlushState implements GlyphAtlas by reporting and clearing whichever
// unit's staged flags were set.
func (a *FakeAtlas) FlushState(unit int) (modified, resized bool) {
	switch unit {
	case 0:
		modified, resized = a.ModifiedGreyscale, a.ResizedGreyscale
		a.ModifiedGreyscale, a.ResizedGreyscale = false, false
	case 1:
		modified, resized = a.ModifiedColor, a.ResizedColor
		a.ModifiedColor, a.ResizedColor = false, false
	}
	return modified, resized
}
