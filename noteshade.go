package noteshade

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Color represents an RGBA color. Components are nominally in [0, 1] but are
// not clamped: shaded colors may exceed 1 and are passed through unchanged
// unless the Style asks for clamping. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is an opaque white.
var ColorWhite = Color{1, 1, 1, 1}

// ColorBlack is an opaque black.
var ColorBlack = Color{0, 0, 0, 1}

// Scale multiplies the RGB components by s. Alpha is left alone.
func (c Color) Scale(s float64) Color {
	return Color{c.R * s, c.G * s, c.B * s, c.A}
}

// Clamp returns c with every component limited to [0, 1].
func (c Color) Clamp() Color {
	return Color{clamp01(c.R), clamp01(c.G), clamp01(c.B), clamp01(c.A)}
}

// NRGBA converts c to an 8-bit straight-alpha color, clamping out-of-range
// components.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: to8(c.R),
		G: to8(c.G),
		B: to8(c.B),
		A: to8(c.A),
	}
}

func to8(v float64) uint8 {
	return uint8(clamp01(v)*255 + 0.5)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ParseHexColor parses "#rrggbb", "rrggbb", "#rgb" or "#rrggbbaa" into an
// opaque (or explicit-alpha) Color.
func ParseHexColor(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(h) {
	case 3:
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	case 6, 8:
	default:
		return Color{}, fmt.Errorf("parse color %q: want 3, 6 or 8 hex digits", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	if len(h) == 6 {
		v = v<<8 | 0xff
	}
	return Color{
		R: float64(v>>24&0xff) / 255,
		G: float64(v>>16&0xff) / 255,
		B: float64(v>>8&0xff) / 255,
		A: float64(v&0xff) / 255,
	}, nil
}

// Hex formats the RGB components of c as "#rrggbb".
func (c Color) Hex() string {
	n := c.NRGBA()
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
}

// Vec2 is a 2D vector used for UV coordinates, note sizes and window sizes.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle in pixels. The origin is the top-left,
// with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies in the half-open rectangle
// [X, X+Width) x [Y, Y+Height). A pixel is covered by a note when its center
// is contained, so notes sharing an edge never both claim a pixel.
func (r Rect) Contains(x, y float64) bool {
	return r.X <= x && x < r.X+r.Width &&
		r.Y <= y && y < r.Y+r.Height
}

// UV maps the pixel-space point (x, y) into the rectangle's local [0,1]
// space. Points outside the rectangle map outside [0,1].
func (r Rect) UV(x, y float64) Vec2 {
	return Vec2{(x - r.X) / r.Width, (y - r.Y) / r.Height}
}

// Note is a rectangle to be shaded with the note shader.
type Note struct {
	Bounds Rect
	Color  Color
}

// NoteSizeNDC converts a pixel-space rectangle into the note size expressed
// in normalized device units for a window of the given pixel dimensions. A
// note covering the whole window has size (2, 2).
func NoteSizeNDC(r Rect, windowW, windowH float64) Vec2 {
	return Vec2{2 * r.Width / windowW, 2 * r.Height / windowH}
}
