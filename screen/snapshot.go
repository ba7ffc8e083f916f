// Package screen defines the thin vocabulary CellRebuilder consumes: a
// cloned, already-laid-out view of the terminal grid. The real terminal
// parser and scrollback buffer are out of scope and live
// outside this module; this package is the seam they hand a Snapshot
// across.
package screen

import "github.com/haldane/glterm/termcolor"

// ScreenTag distinguishes the primary screen from the alternate screen,
// part of the row-cache key (a cursor position on the alt screen must not
// collide with the same row id on the primary screen).
type ScreenTag uint8

const (
	Primary ScreenTag = iota
	Alternate
)

// UnderlineStyle mirrors the sprite choices the cell rebuilder renders.
type UnderlineStyle uint8

const (
	UnderlineNone UnderlineStyle = iota
	UnderlineSingle
	UnderlineDouble
	UnderlineCurly
	UnderlineDotted
	UnderlineDashed
)

// CursorStyle selects which GPUCell mode a drawn cursor produces.
type CursorStyle uint8

const (
	CursorBox CursorStyle = iota
	CursorBoxHollow
	CursorBar
)

// RowID is a stable identifier attached to a row that survives scrolling;
// it is the third component of the row-cache key (see GLOSSARY "Row id").
type RowID uint64

// Cell is one grid position's content and attributes, already shaped by
// whatever's upstream of this module (a font shaper resolves FontIndex/
// GlyphIndex into atlas coordinates; this package does not do that).
type Cell struct {
	Char      rune
	Combining string // combining marks (diacritics, vowel points) trailing Char
	Wide      bool

	HasFG, HasBG bool
	FG, BG       termcolor.Color

	Inverse bool
	Faint   bool

	Underline         UnderlineStyle
	HasUnderlineColor bool
	UnderlineColor    termcolor.Color

	Strikethrough bool
}

// Row is one line of the grid in viewport order.
type Row struct {
	ID    RowID
	Dirty bool
	Cells []Cell
}

// Selection is a screen-coordinate text selection, normalized so
// (StartY,StartX) <= (EndY,EndX). Background/Foreground are nil when the
// selection uses the default inverse-video treatment.
type Selection struct {
	StartX, StartY int
	EndX, EndY     int
	Background     *termcolor.Color
	Foreground     *termcolor.Color
}

// ContainsRow reports whether screen row y falls within the selection.
func (s *Selection) ContainsRow(y int) bool {
	if s == nil {
		return false
	}
	return y >= s.StartY && y <= s.EndY
}

// Contains reports whether the screen point (x,y) falls within the
// selection.
func (s *Selection) Contains(x, y int) bool {
	if s == nil {
		return false
	}
	if y < s.StartY || y > s.EndY {
		return false
	}
	if y == s.StartY && x < s.StartX {
		return false
	}
	if y == s.EndY && x > s.EndX {
		return false
	}
	return true
}

// Snapshot is a cloned, renderer-owned view of the grid for one frame.
type Snapshot struct {
	Cols, Rows int
	Active     ScreenTag

	CursorX, CursorY int
	CursorVisible    bool
	CursorStyle      CursorStyle

	ViewportAtBottom bool

	// RowsInViewportOrder has length Rows; index y is the row drawn at
	// viewport row y.
	RowsInViewportOrder []Row
}

// ViewportToScreen maps a viewport-relative coordinate to a screen
// coordinate. The out-of-scope scrollback buffer usually owns a non-trivial
// version of this; a Snapshot that is always handed to CellRebuilder
// already in viewport order only needs the identity mapping.
func (s *Snapshot) ViewportToScreen(x, y int) (int, int) {
	return x, y
}
