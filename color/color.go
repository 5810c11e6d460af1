// Package color implements the world's 32-bit RGBA color value: packed,
// RGB-triple, and HSLuv constructors, and the ANSI truecolor escape
// sequences a downstream terminal compositor writes to paint a cell's
// foreground and background. Grounded in the teacher repo's RGB blend type
// (core/color.go) and ANSI fragment table (terminal/ansi.go), combined
// with real HSLuv math from go-colorful rather than the teacher's
// tcell-backed color handling (out of scope here — see DESIGN.md).
package color

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGBA is a 32-bit color: 8 bits per channel plus alpha.
type RGBA struct {
	R, G, B, A uint8
}

// Opaque constructs a fully-opaque RGBA from 8-bit channels.
func Opaque(r, g, b uint8) RGBA {
	return RGBA{R: r, G: g, B: b, A: 255}
}

// FromRGB is an alias of Opaque kept for call-site clarity where the
// spec's "RGB triple" constructor is referenced directly.
func FromRGB(r, g, b uint8) RGBA {
	return Opaque(r, g, b)
}

// FromPacked constructs an RGBA from a packed 0xRRGGBBAA or 0xRRGGBB value.
// When the high byte is zero (the value fits in 24 bits), it is read as
// 0xRRGGBB and the color is treated as opaque; a 0xRRGGBBAA value whose
// red channel is zero is therefore also read as 0xRRGGBB.
func FromPacked(v uint32) RGBA {
	if v <= 0xFFFFFF {
		return RGBA{
			R: uint8(v >> 16),
			G: uint8(v >> 8),
			B: uint8(v),
			A: 255,
		}
	}
	return RGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}
}

// FromHSLuv constructs an opaque RGBA from an HSLuv triple: h in [0,360),
// s and l in [0,100]. HSLuv (https://www.hsluv.org/) is perceptually
// uniform, which is what lets the map generator (plane package) pick room
// colors by sampling hue/saturation/lightness intervals directly without
// producing washed-out or overly-dark rooms the way naive HSL would.
func FromHSLuv(h, s, l float64) RGBA {
	c := colorful.Hsluv(h, s, l)
	r, g, b := c.RGB255()
	return Opaque(r, g, b)
}

// FromHSLuvA is FromHSLuv with an explicit alpha channel.
func FromHSLuvA(h, s, l float64, a uint8) RGBA {
	rgb := FromHSLuv(h, s, l)
	rgb.A = a
	return rgb
}

// HSLuv returns the color's hue, saturation, and lightness in HSLuv space.
func (c RGBA) HSLuv() (h, s, l float64) {
	cf := colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
	return cf.Hsluv()
}

// Packed returns the color as a single 0xRRGGBBAA value.
func (c RGBA) Packed() uint32 {
	return uint32(c.R)<<24 | uint32(c.G)<<16 | uint32(c.B)<<8 | uint32(c.A)
}

// String renders the color as "rgba(r,g,b,a)" for debug output.
func (c RGBA) String() string {
	return fmt.Sprintf("rgba(%d,%d,%d,%d)", c.R, c.G, c.B, c.A)
}

// Foreground and background prefixes for 24-bit ANSI truecolor escape
// sequences. These are the literal byte sequences a downstream terminal
// compositor (out of scope for this module) emits immediately before the
// glyph; composing the trailing reset sequence is that compositor's job.
const (
	fgPrefix = "\x1b[38;2;"
	bgPrefix = "\x1b[48;2;"
	seqEnd   = "m"
)

// Foreground returns the ANSI truecolor escape sequence that sets this
// color as the foreground: "\x1b[38;2;R;G;Bm".
func (c RGBA) Foreground() string {
	return fgPrefix + decimalTriple(c) + seqEnd
}

// Background returns the ANSI truecolor escape sequence that sets this
// color as the background: "\x1b[48;2;R;G;Bm".
func (c RGBA) Background() string {
	return bgPrefix + decimalTriple(c) + seqEnd
}

func decimalTriple(c RGBA) string {
	return fmt.Sprintf("%d;%d;%d", c.R, c.G, c.B)
}
