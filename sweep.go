package noteshade

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Sweep resizes a note rectangle back and forth about its center, keeping
// its aspect ratio, so the fixed-pixel border can be checked at every size.
// Create one with NewSweep and call Update(dt) each frame. It never finishes.
type Sweep struct {
	seq    *gween.Sequence
	target *Rect
	cx, cy float64
	aspect float64 // height / width of the original rectangle
}

// NewSweep creates a Sweep that grows target's width from minWidth to
// maxWidth and back over 2*duration seconds using the easing function. The
// target's current center and aspect ratio are preserved.
func NewSweep(target *Rect, minWidth, maxWidth float64, duration float32, fn ease.TweenFunc) *Sweep {
	aspect := 1.0
	if target.Width != 0 {
		aspect = target.Height / target.Width
	}
	seq := gween.NewSequence(gween.New(float32(minWidth), float32(maxWidth), duration, fn))
	seq.SetYoyo(true)
	seq.SetLoop(-1)
	s := &Sweep{
		seq:    seq,
		target: target,
		cx:     target.X + target.Width/2,
		cy:     target.Y + target.Height/2,
		aspect: aspect,
	}
	s.apply(minWidth)
	return s
}

// Update advances the sweep by dt seconds and writes the new size to the
// target rectangle.
func (s *Sweep) Update(dt float32) {
	w, _, _ := s.seq.Update(dt)
	s.apply(float64(w))
}

func (s *Sweep) apply(w float64) {
	h := w * s.aspect
	s.target.Width = w
	s.target.Height = h
	s.target.X = s.cx - w/2
	s.target.Y = s.cy - h/2
}
