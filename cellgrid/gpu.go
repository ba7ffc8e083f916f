package cellgrid

import "unsafe"

// GPUContext is the OpenGL resource/window boundary Rebuilder
// calls across to reallocate and upload its two instance buffers and
// issue the instanced draw. A real implementation binds a VAO/VBO pair;
// tests use a fake that just records calls.
type GPUContext interface {
	// ReallocateBuffer grows (or shrinks) the named buffer's backing
	// store to byteSize bytes, discarding its previous contents.
	ReallocateBuffer(buffer BufferSlot, byteSize int)
	// UploadSub writes data starting at byteOffset into buffer; the
	// buffer must already be large enough.
	UploadSub(buffer BufferSlot, byteOffset int, data []byte)
	// DrawInstanced issues the instanced unit-quad draw call: element
	// buffer [0,1,3,1,2,3], instance count instances.
	DrawInstanced(buffer BufferSlot, instances int)
	// FlushAtlas reuploads the atlas texture bound at the given unit: the
	// whole image if it was resized, a subImage2D of the modified region
	// otherwise. Rebuilder calls it only for a unit whose
	// GlyphAtlas.FlushState reported modified; FlushState, not this
	// method, clears the atlas's flags.
	FlushAtlas(unit int, modified, resized bool)
}

// BufferSlot names one of the two instance buffers a Rebuilder owns.
type BufferSlot int

const (
	BufferBG BufferSlot = iota
	BufferFG
)

// Uniforms is the per-font-metric draw state uploaded on a font-metric
// reset.
type Uniforms struct {
	CellWidth, CellHeight  float32
	StrikethroughPosition  float32
	StrikethroughThickness float32
}

// atlasUnitGreyscale and atlasUnitColor are the two texture units a draw
// flushes against: unit 0 holds the single-channel text atlas, unit 1 the
// BGRA color (emoji) atlas.
const (
	atlasUnitGreyscale = 0
	atlasUnitColor     = 1
)

// Upload runs the GPU upload protocol for both cell arrays. Per a
// documented quirk, GLCellsWritten is reset to 0 at the top of every
// call, which degenerates the "only upload the suffix" optimization into
// a full re-upload every frame; this is carried forward unchanged, not
// fixed.
func (r *Rebuilder) Upload(gpu GPUContext) {
	r.uploadOne(gpu, BufferBG, r.CellsBG, &r.GLCellsSizeBG, &r.GLCellsWrittenBG)
	r.uploadOne(gpu, BufferFG, r.Cells, &r.GLCellsSizeFG, &r.GLCellsWrittenFG)
}

func (r *Rebuilder) uploadOne(gpu GPUContext, slot BufferSlot, cells []GPUCell, glSize, glWritten *int) {
	*glWritten = 0

	wantSize := cap(cells) * int(unsafe.Sizeof(GPUCell{}))
	if *glSize < wantSize {
		gpu.ReallocateBuffer(slot, wantSize)
		*glSize = wantSize
		*glWritten = 0
	}

	if *glWritten < len(cells) {
		suffix := cells[*glWritten:]
		gpu.UploadSub(slot, *glWritten*int(unsafe.Sizeof(GPUCell{})), gpuCellBytes(suffix))
		*glWritten = len(cells)
	}

	r.flushAtlases(gpu)
	gpu.DrawInstanced(slot, len(cells))
}

// flushAtlases implements the "before each draw" atlas flush: for each of
// the greyscale and color atlas units, only call through to the GPU if
// that unit actually changed since its last flush.
func (r *Rebuilder) flushAtlases(gpu GPUContext) {
	for _, unit := range [...]int{atlasUnitGreyscale, atlasUnitColor} {
		if modified, resized := r.Atlas.FlushState(unit); modified {
			gpu.FlushAtlas(unit, modified, resized)
		}
	}
}

// gpuCellBytes reinterprets a GPUCell slice as raw bytes for upload. This
// relies on GPUCell's field order and sizes staying exactly as declared
// (see the comment on GPUCell).
func gpuCellBytes(cells []GPUCell) []byte {
	if len(cells) == 0 {
		return nil
	}
	size := int(unsafe.Sizeof(GPUCell{}))
	return unsafe.Slice((*byte)(unsafe.Pointer(&cells[0])), len(cells)*size)
}
