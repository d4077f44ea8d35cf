package noteshade

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// noteShaderSrc is the GPU form of Style.Shade. The base color arrives as the
// vertex color and the note-local UV as the vertex source position; no source
// images are bound, so the source position is passed through untouched.
const noteShaderSrc = `//kage:unit pixels
package main

var NoteSize vec2
var WindowSize vec2
var BorderPixels float
var BorderTint float
var ClampOutput float

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	base := color.rgb
	gradient := cos(src.x + 1)
	colorGrad := gradient * base
	desaturated := 1 - (1-base)*(1-gradient)
	c := base*desaturated + colorGrad
	if ClampOutput > 0 {
		c = clamp(c, vec3(0), vec3(1))
	}

	extent := NoteSize / 2 * WindowSize
	if !(extent.x > 0) || !(extent.y > 0) {
		return vec4(base*BorderTint, 1)
	}
	margin := BorderPixels / extent
	if src.x < margin.x || src.x > 1-margin.x || src.y < margin.y || src.y > 1-margin.y {
		c = base * BorderTint
	}
	return vec4(c, 1)
}
`

// --- Lazy shader compilation (draw calls happen on the Ebitengine goroutine) ---

var noteShader *ebiten.Shader

// CompileNoteShader compiles the note Kage shader. Most callers should use a
// NoteShader, which compiles once on first draw.
func CompileNoteShader() (*ebiten.Shader, error) {
	s, err := ebiten.NewShader([]byte(noteShaderSrc))
	if err != nil {
		return nil, fmt.Errorf("compile note shader: %w", err)
	}
	return s, nil
}

func ensureNoteShader() *ebiten.Shader {
	if noteShader == nil {
		s, err := CompileNoteShader()
		if err != nil {
			panic("noteshade: " + err.Error())
		}
		noteShader = s
	}
	return noteShader
}

// --- NoteShader ---

// NoteShader draws notes onto Ebitengine images with the note Kage shader.
// It keeps its uniform map, vertex and option buffers between calls so
// per-frame drawing does not allocate.
type NoteShader struct {
	Style Style

	uniforms     map[string]any
	noteSizeF32  [2]float32
	windowF32    [2]float32
	noteSizeArgs []float32 // slice header into noteSizeF32
	windowArgs   []float32 // slice header into windowF32
	vertices     [4]ebiten.Vertex
	shaderOp     ebiten.DrawTrianglesShaderOptions
}

var quadIndices = []uint16{0, 1, 2, 1, 3, 2}

// NewNoteShader creates a NoteShader drawing with the given style.
func NewNoteShader(style Style) *NoteShader {
	ns := &NoteShader{
		Style:    style,
		uniforms: make(map[string]any, 5),
	}
	ns.noteSizeArgs = ns.noteSizeF32[:]
	ns.windowArgs = ns.windowF32[:]
	ns.uniforms["NoteSize"] = ns.noteSizeArgs
	ns.uniforms["WindowSize"] = ns.windowArgs
	return ns
}

// DrawNote shades n onto dst. The window size is taken from dst's bounds.
func (ns *NoteShader) DrawNote(dst *ebiten.Image, n Note) {
	b := dst.Bounds()
	ns.prepare(n, float64(b.Dx()), float64(b.Dy()))
	dst.DrawTrianglesShader(ns.vertices[:], quadIndices, ensureNoteShader(), &ns.shaderOp)
}

// DrawNotes shades every note onto dst in order; later notes draw over
// earlier ones.
func (ns *NoteShader) DrawNotes(dst *ebiten.Image, notes []Note) {
	for i := range notes {
		ns.DrawNote(dst, notes[i])
	}
}

// prepare fills the vertex buffer and uniforms for one note.
func (ns *NoteShader) prepare(n Note, windowW, windowH float64) {
	size := NoteSizeNDC(n.Bounds, windowW, windowH)
	ns.noteSizeF32[0] = float32(size.X)
	ns.noteSizeF32[1] = float32(size.Y)
	ns.windowF32[0] = float32(windowW)
	ns.windowF32[1] = float32(windowH)
	// Scalar float32 boxing is unavoidable with Ebitengine's uniform API.
	ns.uniforms["BorderPixels"] = float32(ns.Style.BorderPixels)
	ns.uniforms["BorderTint"] = float32(ns.Style.BorderTint)
	clampOutput := float32(0)
	if ns.Style.Clamp {
		clampOutput = 1
	}
	ns.uniforms["ClampOutput"] = clampOutput
	ns.shaderOp.Uniforms = ns.uniforms

	noteVertices(&ns.vertices, n)
}

// noteVertices writes the four corners of n's bounds: top-left, top-right,
// bottom-left, bottom-right. Source coordinates carry the note-local UV.
func noteVertices(v *[4]ebiten.Vertex, n Note) {
	r := n.Bounds
	x0, y0 := float32(r.X), float32(r.Y)
	x1, y1 := float32(r.X+r.Width), float32(r.Y+r.Height)
	cr, cg, cb := float32(n.Color.R), float32(n.Color.G), float32(n.Color.B)

	corners := [4][4]float32{
		{x0, y0, 0, 0},
		{x1, y0, 1, 0},
		{x0, y1, 0, 1},
		{x1, y1, 1, 1},
	}
	for i, c := range corners {
		v[i] = ebiten.Vertex{
			DstX:   c[0],
			DstY:   c[1],
			SrcX:   c[2],
			SrcY:   c[3],
			ColorR: cr,
			ColorG: cg,
			ColorB: cb,
			ColorA: 1,
		}
	}
}
