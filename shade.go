package noteshade

import "math"

const (
	// BorderPixels is the screen-space thickness of a note's border.
	BorderPixels = 2.0
	// BorderTint scales the base color inside the border.
	BorderTint = 0.034
)

// Style holds the tunable parameters of the note shader. The zero value is
// not useful; start from DefaultStyle.
type Style struct {
	// BorderPixels is the border thickness in window pixels.
	BorderPixels float64
	// BorderTint is multiplied into the base color for border pixels.
	BorderTint float64
	// Clamp limits the shaded body color to [0, 1]. When false the additive
	// blend may leave the unit range and clamping is left to whatever
	// consumes the color (an 8-bit render target does it implicitly).
	Clamp bool
}

// DefaultStyle is a 2-pixel, near-black border with unclamped output.
var DefaultStyle = Style{
	BorderPixels: BorderPixels,
	BorderTint:   BorderTint,
}

// Shade computes the displayed color of one note pixel with DefaultStyle.
//
// base is the interpolated note color (alpha ignored), uv the position inside
// the note in [0,1]x[0,1], noteSize the note extent in normalized device
// units and windowSize the window extent in pixels. The result always has
// alpha 1.
func Shade(base Color, uv, noteSize, windowSize Vec2) Color {
	return DefaultStyle.Shade(base, uv, noteSize, windowSize)
}

// Shade computes the displayed color of one note pixel using s.
func (s Style) Shade(base Color, uv, noteSize, windowSize Vec2) Color {
	margins := BorderMargins(noteSize, windowSize, s.BorderPixels)
	if uv.InBorder(margins) {
		c := base.Scale(s.BorderTint)
		c.A = 1
		return c
	}
	c := Body(base, uv.X)
	if s.Clamp {
		c = c.Clamp()
	}
	c.A = 1
	return c
}

// Gradient is the horizontal shading factor cos(u+1). It runs from cos(1)
// at the left edge down to cos(2) at the right edge.
func Gradient(u float64) float64 {
	return math.Cos(u + 1)
}

// Body returns the interior color of a note at horizontal position u: the
// base color screen-blended against the gradient, modulated by the base
// color, plus a gradient-tinted copy of the base color. The result is not
// clamped. Alpha is copied from base.
func Body(base Color, u float64) Color {
	g := Gradient(u)
	return Color{
		R: bodyChannel(base.R, g),
		G: bodyChannel(base.G, g),
		B: bodyChannel(base.B, g),
		A: base.A,
	}
}

func bodyChannel(c, g float64) float64 {
	desaturated := 1 - (1-c)*(1-g)
	return c*desaturated + g*c
}

// BorderMargins converts a border thickness in pixels into per-axis UV
// margins for a note of the given NDC size in a window of the given pixel
// size. The pixel extent used is half the NDC size times the window size,
// which is the note's full width in pixels since NDC spans 2 units.
//
// An axis whose pixel extent is not strictly positive yields an infinite
// margin, so every point of a degenerate note is border.
func BorderMargins(noteSize, windowSize Vec2, borderPixels float64) Vec2 {
	return Vec2{
		X: axisMargin(noteSize.X, windowSize.X, borderPixels),
		Y: axisMargin(noteSize.Y, windowSize.Y, borderPixels),
	}
}

func axisMargin(ndc, window, borderPixels float64) float64 {
	px := ndc / 2 * window
	// !(px > 0) also catches NaN.
	if !(px > 0) {
		return math.Inf(1)
	}
	return borderPixels / px
}

// InBorder reports whether the UV point lies within margins of any of the
// four edges. Points exactly on a threshold are not border; points beyond
// [0,1] are.
func (uv Vec2) InBorder(margins Vec2) bool {
	return uv.X < margins.X || uv.X > 1-margins.X ||
		uv.Y < margins.Y || uv.Y > 1-margins.Y
}
