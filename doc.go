// Package noteshade shades rectangular "notes" for [Ebitengine]: a
// horizontal cosine gradient screen-blended into the note color, framed by a
// near-black border that is exactly two window pixels thick regardless of
// the note's size.
//
// The same math is available in three forms:
//
//   - [Shade] and [Style.Shade], a pure per-pixel function usable from any
//     goroutine;
//   - [NoteShader], which draws notes onto an [ebiten.Image] with a Kage
//     shader;
//   - [RenderNotes], a CPU rasterizer for headless rendering and golden
//     images.
//
// # Shading
//
// For a base color c and note-local UV (u, v):
//
//	g     = cos(u + 1)
//	body  = c * (1 - (1-c)*(1-g)) + g*c
//	color = c * 0.034            if (u, v) is within the border margin
//	        body                 otherwise
//
// The border margin on each axis is BorderPixels divided by the note's
// extent in pixels on that axis. Note sizes are given in normalized device
// units (a note filling the window is 2 units wide), so the pixel extent is
// noteSize/2 * windowSize. A note with no positive extent is all border.
//
// The body color is not clamped and may exceed 1; set [Style.Clamp] to clamp
// it before output. Alpha is always 1.
//
// # Drawing with Ebitengine
//
//	ns := noteshade.NewNoteShader(noteshade.DefaultStyle)
//
//	func (g *Game) Draw(screen *ebiten.Image) {
//		ns.DrawNotes(screen, g.notes)
//	}
//
// Note bounds are in the destination image's pixel space; the window size
// passed to the shader is the destination's size.
//
// [Ebitengine]: https://ebitengine.org
package noteshade
