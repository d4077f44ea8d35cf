package noteshade

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/nfnt/resize"
)

// Snapshot reads back an Ebitengine image as a straight-alpha NRGBA image.
// It must be called from Draw, after the game loop has started.
func Snapshot(src *ebiten.Image) *image.NRGBA {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pixels := make([]byte, 4*w*h)
	src.ReadPixels(pixels)
	return unpremultiply(pixels, w, h)
}

// unpremultiply wraps the premultiplied RGBA bytes read back from the GPU
// and converts them to straight alpha through image/draw.
func unpremultiply(pixels []byte, w, h int) *image.NRGBA {
	bounds := image.Rect(0, 0, w, h)
	src := &image.RGBA{Pix: pixels, Stride: 4 * w, Rect: bounds}
	dst := image.NewNRGBA(bounds)
	draw.Draw(dst, bounds, src, image.Point{}, draw.Src)
	return dst
}

// Zoom scales img up by an integer factor with nearest-neighbour sampling so
// individual border pixels stay crisp. A factor of 1 or less returns img.
func Zoom(img image.Image, factor int) image.Image {
	if factor <= 1 {
		return img
	}
	b := img.Bounds()
	return resize.Resize(uint(b.Dx()*factor), uint(b.Dy()*factor), img, resize.NearestNeighbor)
}

// snapshotEncoder favors speed; snapshots are taken from inside Draw.
var snapshotEncoder = png.Encoder{CompressionLevel: png.BestSpeed}

// WritePNG encodes img as a PNG file at path, replacing any existing file.
func WritePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("write png: %w", cerr)
		}
	}()
	if err := snapshotEncoder.Encode(f, img); err != nil {
		return fmt.Errorf("write png %s: %w", path, err)
	}
	return nil
}

// NoteLabel describes a note by its rounded pixel size, e.g. "note 120x40",
// for use as a snapshot label.
func NoteLabel(r Rect) string {
	return fmt.Sprintf("note %.0fx%.0f", r.Width, r.Height)
}

// SnapshotPath returns a timestamped PNG path inside dir for the given
// label, e.g. "shots/20260102_150405_note_120x40.png".
func SnapshotPath(dir, label string, now time.Time) string {
	return filepath.Join(dir, now.Format("20060102_150405")+"_"+sanitizeLabel(label)+".png")
}

// sanitizeLabel keeps ASCII letters, digits, '-' and '.', mapping every
// other rune to '_'. A blank label becomes "unlabeled".
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	return strings.Map(fileSafeRune, label)
}

func fileSafeRune(r rune) rune {
	if r < utf8.RuneSelf && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '.') {
		return r
	}
	return '_'
}
