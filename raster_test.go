package noteshade

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"
)

func newCanvas(w, h int, bg Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	Fill(img, bg)
	return img
}

// expectedPixel shades pixel (x, y) of n serially, without the rasterizer.
func expectedPixel(n Note, x, y int, w, h int, style Style) color.NRGBA {
	uv := n.Bounds.UV(float64(x)+0.5, float64(y)+0.5)
	size := NoteSizeNDC(n.Bounds, float64(w), float64(h))
	return style.Shade(n.Color, uv, size, Vec2{float64(w), float64(h)}).NRGBA()
}

// --- coveredPixels ---

func TestCoveredPixels(t *testing.T) {
	bounds := image.Rect(0, 0, 40, 20)
	tests := []struct {
		name string
		r    Rect
		want image.Rectangle
	}{
		{"aligned", Rect{10, 5, 20, 10}, image.Rect(10, 5, 30, 15)},
		{"half pixel offset", Rect{10.5, 5.5, 4, 4}, image.Rect(10, 5, 14, 9)},
		{"clipped left", Rect{-5, 0, 10, 5}, image.Rect(0, 0, 5, 5)},
		{"clipped right", Rect{35, 15, 10, 10}, image.Rect(35, 15, 40, 20)},
		{"fully outside", Rect{100, 100, 5, 5}, image.Rectangle{}},
		{"zero width", Rect{10, 5, 0, 10}, image.Rectangle{}},
		{"negative height", Rect{10, 5, 10, -3}, image.Rectangle{}},
		{"huge", Rect{-1e30, -1e30, 2e30, 2e30}, bounds},
		{"infinite width", Rect{5, 0, math.Inf(1), 5}, image.Rect(5, 0, 40, 5)},
		{"far left", Rect{-1e30, 0, 10, 5}, image.Rectangle{}},
		{"NaN origin", Rect{math.NaN(), 0, 10, 5}, image.Rectangle{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := coveredPixels(tt.r, bounds)
			if !got.Eq(tt.want) {
				t.Errorf("coveredPixels(%v) = %v, want %v", tt.r, got, tt.want)
			}
		})
	}
}

// --- RenderNotes ---

func TestRenderNoteMatchesShade(t *testing.T) {
	bg := Color{0.1, 0.1, 0.1, 1}
	img := newCanvas(40, 20, bg)
	n := Note{Bounds: Rect{10, 5, 20, 10}, Color: Color{0.5, 0.5, 1, 1}}
	if err := RenderNote(img, n, DefaultStyle); err != nil {
		t.Fatalf("RenderNote: %v", err)
	}
	for y := 0; y < 20; y++ {
		for x := 0; x < 40; x++ {
			got := img.NRGBAAt(x, y)
			want := bg.NRGBA()
			if x >= 10 && x < 30 && y >= 5 && y < 15 {
				want = expectedPixel(n, x, y, 40, 20, DefaultStyle)
			}
			if got != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestRenderNoteBorderIsTwoPixels(t *testing.T) {
	base := Color{1, 1, 1, 1}
	borderPx := base.Scale(BorderTint).NRGBA()
	borderPx.A = 255
	for _, width := range []int{8, 20, 37, 100} {
		img := newCanvas(120, 40, ColorBlack)
		n := Note{Bounds: Rect{5, 5, float64(width), 30}, Color: base}
		if err := RenderNote(img, n, DefaultStyle); err != nil {
			t.Fatalf("width %d: RenderNote: %v", width, err)
		}
		y := 20
		for k := 0; k < width; k++ {
			isBorder := img.NRGBAAt(5+k, y) == borderPx
			wantBorder := k < 2 || k >= width-2
			if isBorder != wantBorder {
				t.Errorf("width %d: column %d border = %v, want %v", width, k, isBorder, wantBorder)
			}
		}
		x := 5 + width/2
		for k := 0; k < 30; k++ {
			isBorder := img.NRGBAAt(x, 5+k) == borderPx
			wantBorder := k < 2 || k >= 28
			if isBorder != wantBorder {
				t.Errorf("width %d: row %d border = %v, want %v", width, k, isBorder, wantBorder)
			}
		}
	}
}

func TestRenderNotesOverlapLaterWins(t *testing.T) {
	img := newCanvas(64, 64, ColorBlack)
	notes := []Note{
		{Bounds: Rect{0, 0, 40, 40}, Color: Color{1, 0, 0, 1}},
		{Bounds: Rect{20, 20, 40, 40}, Color: Color{0, 0, 1, 1}},
	}
	if err := RenderNotes(img, notes, DefaultStyle); err != nil {
		t.Fatalf("RenderNotes: %v", err)
	}
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			want := ColorBlack.NRGBA()
			for _, n := range notes {
				if n.Bounds.Contains(float64(x)+0.5, float64(y)+0.5) {
					want = expectedPixel(n, x, y, 64, 64, DefaultStyle)
				}
			}
			if got := img.NRGBAAt(x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestRenderNotesHugeNoteCoversCanvas(t *testing.T) {
	img := newCanvas(8, 8, Color{})
	n := Note{Bounds: Rect{-1e30, -1e30, 2e30, 2e30}, Color: Color{0.5, 0.5, 0.5, 1}}
	if err := RenderNotes(img, []Note{n}, DefaultStyle); err != nil {
		t.Fatalf("RenderNotes: %v", err)
	}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if got, want := img.NRGBAAt(x, y), expectedPixel(n, x, y, 8, 8, DefaultStyle); got != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
	if got := img.NRGBAAt(4, 4); got.A != 255 {
		t.Errorf("pixel (4,4) alpha = %d, want 255", got.A)
	}
}

func TestRenderNotesClipsOffscreen(t *testing.T) {
	img := newCanvas(16, 16, ColorBlack)
	notes := []Note{
		{Bounds: Rect{-8, -8, 16, 16}, Color: ColorWhite},
		{Bounds: Rect{100, 100, 16, 16}, Color: ColorWhite},
		{Bounds: Rect{4, 4, 0, 0}, Color: ColorWhite},
	}
	if err := RenderNotes(img, notes, DefaultStyle); err != nil {
		t.Fatalf("RenderNotes: %v", err)
	}
	if got := img.NRGBAAt(15, 15); got != ColorBlack.NRGBA() {
		t.Errorf("untouched pixel = %v, want background", got)
	}
	if got := img.NRGBAAt(0, 0); got == ColorBlack.NRGBA() {
		t.Error("pixel (0,0) should be covered by the clipped note")
	}
}

func TestRenderNotesNilImage(t *testing.T) {
	err := RenderNotes(nil, []Note{{Bounds: Rect{0, 0, 4, 4}}}, DefaultStyle)
	if !errors.Is(err, ErrNilImage) {
		t.Errorf("err = %v, want ErrNilImage", err)
	}
}

func TestRenderNotesEmpty(t *testing.T) {
	img := newCanvas(4, 4, ColorWhite)
	if err := RenderNotes(img, nil, DefaultStyle); err != nil {
		t.Fatalf("RenderNotes: %v", err)
	}
	if got := img.NRGBAAt(2, 2); got != ColorWhite.NRGBA() {
		t.Errorf("pixel = %v, want white", got)
	}
}

// --- Fill ---

func TestFillSubImage(t *testing.T) {
	img := newCanvas(8, 8, ColorBlack)
	sub := img.SubImage(image.Rect(2, 2, 4, 4)).(*image.NRGBA)
	Fill(sub, ColorWhite)
	if got := img.NRGBAAt(3, 3); got != ColorWhite.NRGBA() {
		t.Errorf("inside = %v, want white", got)
	}
	if got := img.NRGBAAt(5, 3); got != ColorBlack.NRGBA() {
		t.Errorf("outside = %v, want black", got)
	}
}

func BenchmarkRenderNotes(b *testing.B) {
	img := image.NewNRGBA(image.Rect(0, 0, 640, 480))
	notes := make([]Note, 64)
	for i := range notes {
		notes[i] = Note{
			Bounds: Rect{float64(i * 10), float64(i * 7), 40, 120},
			Color:  Color{0.57, 0, 0, 1},
		}
	}
	b.ReportAllocs()
	for b.Loop() {
		_ = RenderNotes(img, notes, DefaultStyle)
	}
}
