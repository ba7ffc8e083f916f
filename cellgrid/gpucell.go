// Package cellgrid implements the CellRebuilder: it turns a screen.Snapshot
// into flat GPUCell arrays ready for an instanced draw call, backed by a
// row-granularity LRU so unchanged rows are never re-shaped.
package cellgrid

// CellMode discriminates what a GPUCell represents; the shader branches on
// it. Values are deliberately sparse (not a tight enum) so mask bits can be
// OR'd onto a base value in the future without colliding — unused today.
type CellMode uint8

const (
	ModeBG               CellMode = 1
	ModeFG               CellMode = 2
	ModeCursorRect       CellMode = 3
	ModeCursorRectHollow CellMode = 4
	ModeCursorBar        CellMode = 5
	ModeFGColor          CellMode = 7
	ModeStrikethrough    CellMode = 8
)

// GPUCell is the packed per-instance vertex attribute record. Field order
// is observable to the shader (vertex attributes 0..7 bind in declaration
// order) and must never be reordered.
type GPUCell struct {
	GridCol, GridRow           uint16
	GlyphX, GlyphY             uint32
	GlyphWidth, GlyphHeight    uint32
	GlyphOffsetX, GlyphOffsetY int32
	FgR, FgG, FgB, FgA         uint8
	BgR, BgG, BgB, BgA         uint8
	Mode                      uint8
	GridWidth                 uint8
}
