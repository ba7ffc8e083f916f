// Package termcolor holds the color vocabulary shared by the screen
// snapshot and the cell rebuilder. It keeps the spirit of a terminal library's
// color model (a color remembers how it was specified, not just its
// resolved RGB) without the ANSI/SGR serialization that belonged to the
// out-of-scope terminal parser.
package termcolor

import "github.com/lucasb-eyer/go-colorful"

// Kind records how a Color was specified.
type Kind uint8

const (
	KindDefault   Kind = iota // terminal default fg/bg
	KindStandard              // standard 16 ANSI colors (0-15)
	KindPalette               // 256-color palette (0-255)
	KindTrueColor             // 24-bit RGB
)

// Color is a resolved RGB triple tagged with how it was specified.
type Color struct {
	Kind    Kind
	Index   uint8
	R, G, B uint8
}

// Default foreground/background, matching a terminal library's chosen palette.
var (
	DefaultForeground = Color{Kind: KindDefault, R: 212, G: 212, B: 212}
	DefaultBackground = Color{Kind: KindDefault, R: 30, G: 30, B: 30}
)

// RGB constructs a 24-bit true color.
func RGB(r, g, b uint8) Color {
	return Color{Kind: KindTrueColor, R: r, G: g, B: b}
}

// IsDefault reports whether c is the unset terminal default.
func (c Color) IsDefault() bool {
	return c.Kind == KindDefault
}

func (c Color) toColorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// Blend linearly interpolates between c and other in RGB, t in [0,1]; the
// result is always a true color. cellgrid.updateCell does not call it:
// faint text lowers alpha instead of mixing RGB.
func (c Color) Blend(other Color, t float64) Color {
	mixed := c.toColorful().BlendRgb(other.toColorful(), t)
	r, g, b := mixed.Clamped().RGB255()
	return Color{Kind: KindTrueColor, R: r, G: g, B: b}
}
