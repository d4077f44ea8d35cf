package noteshade

import (
	"errors"
	"image"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ErrNilImage is returned when a render target is nil.
var ErrNilImage = errors.New("noteshade: nil image")

// RenderNotes shades notes into dst on the CPU, pixel by pixel, using the
// same math as the Kage shader. The window size is dst's bounds; note bounds
// are in dst's pixel space. Notes are drawn in order, later ones on top.
//
// Rows are shaded concurrently. Each row task walks the whole note list, so
// overlap resolves exactly as in a serial pass.
func RenderNotes(dst *image.NRGBA, notes []Note, style Style) error {
	if dst == nil {
		return ErrNilImage
	}
	b := dst.Bounds()
	if b.Empty() || len(notes) == 0 {
		return nil
	}
	window := Vec2{float64(b.Dx()), float64(b.Dy())}

	spans := make([]noteSpan, len(notes))
	for i := range notes {
		spans[i] = newNoteSpan(notes[i], b, window)
	}

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		g.Go(func() error {
			shadeRow(dst, y, spans, window, style)
			return nil
		})
	}
	return g.Wait()
}

// RenderNote shades a single note into dst on the CPU.
func RenderNote(dst *image.NRGBA, n Note, style Style) error {
	return RenderNotes(dst, []Note{n}, style)
}

// noteSpan is a note with its NDC size and covered pixel range precomputed.
type noteSpan struct {
	note   Note
	size   Vec2
	pixels image.Rectangle
}

func newNoteSpan(n Note, bounds image.Rectangle, window Vec2) noteSpan {
	return noteSpan{
		note:   n,
		size:   NoteSizeNDC(n.Bounds, window.X, window.Y),
		pixels: coveredPixels(n.Bounds, bounds),
	}
}

// coveredPixels returns the pixels whose centers fall inside r, clipped to
// bounds. Pixel (x, y) has its center at (x+0.5, y+0.5). Edges are clipped
// in float64 before conversion, so rectangles far larger than the canvas
// still cover it.
func coveredPixels(r Rect, bounds image.Rectangle) image.Rectangle {
	if !(r.Width > 0) || !(r.Height > 0) {
		return image.Rectangle{}
	}
	x0, x1, ok := coveredSpan(r.X, r.X+r.Width, bounds.Min.X, bounds.Max.X)
	if !ok {
		return image.Rectangle{}
	}
	y0, y1, ok := coveredSpan(r.Y, r.Y+r.Height, bounds.Min.Y, bounds.Max.Y)
	if !ok {
		return image.Rectangle{}
	}
	return image.Rect(x0, y0, x1, y1)
}

// coveredSpan returns the pixel range [lo, hi) whose centers lie in
// [start, end), limited to [minPx, maxPx).
func coveredSpan(start, end float64, minPx, maxPx int) (lo, hi int, ok bool) {
	first := math.Max(math.Ceil(start-0.5), float64(minPx))
	last := math.Min(math.Ceil(end-0.5), float64(maxPx))
	if math.IsNaN(first) || math.IsNaN(last) || !(last > first) {
		return 0, 0, false
	}
	return int(first), int(last), true
}

func shadeRow(dst *image.NRGBA, y int, spans []noteSpan, window Vec2, style Style) {
	py := float64(y) + 0.5
	for i := range spans {
		sp := &spans[i]
		if y < sp.pixels.Min.Y || y >= sp.pixels.Max.Y {
			continue
		}
		off := dst.PixOffset(sp.pixels.Min.X, y)
		for x := sp.pixels.Min.X; x < sp.pixels.Max.X; x++ {
			uv := sp.note.Bounds.UV(float64(x)+0.5, py)
			c := style.Shade(sp.note.Color, uv, sp.size, window).NRGBA()
			dst.Pix[off+0] = c.R
			dst.Pix[off+1] = c.G
			dst.Pix[off+2] = c.B
			dst.Pix[off+3] = c.A
			off += 4
		}
	}
}

// Fill sets every pixel inside dst's bounds to c.
func Fill(dst *image.NRGBA, c Color) {
	n := c.NRGBA()
	b := dst.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		off := dst.PixOffset(b.Min.X, y)
		for x := b.Min.X; x < b.Max.X; x++ {
			dst.Pix[off+0] = n.R
			dst.Pix[off+1] = n.G
			dst.Pix[off+2] = n.B
			dst.Pix[off+3] = n.A
			off += 4
		}
	}
}
