package cellgrid

// Mailbox receives window-level messages posted by the rebuilder; the
// window/runtime loop that owns layout reflow lives outside this
// package, so this is the seam it is reached across.
type Mailbox interface {
	CellSizeChanged(width, height int)
}

// ResetFontMetrics queries the atlas for the regular-weight ASCII 'M'
// metrics, rebuilds Uniforms,
// clears the row cache (cached cells reference stale atlas positions at
// the old size), and if the cell size actually changed, posts a
// cell_size message so the window can reflow layout.
func (r *Rebuilder) ResetFontMetrics(rows int, mailbox Mailbox) Uniforms {
	width, height := r.Atlas.Metrics()

	changed := width != r.lastCellWidth || height != r.lastCellHeight
	r.lastCellWidth, r.lastCellHeight = width, height

	u := Uniforms{
		CellWidth:              float32(width),
		CellHeight:             float32(height),
		StrikethroughThickness: 2,
		StrikethroughPosition:  float32(height) * 0.7,
	}

	r.ResetCache(rows)

	if changed && mailbox != nil {
		mailbox.CellSizeChanged(width, height)
	}

	return u
}
