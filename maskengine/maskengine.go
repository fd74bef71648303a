// Package maskengine implements spec §4.4: apply_mask, applied after
// clip and before the final blit of an isolated group (compositor
// §4.2 step vi).
//
// Grounded on the same pixmap.Blit/blend.Get primitives as clipengine:
// "canvas.α ← canvas.α · M.α, canvas.rgb preserved" is exactly
// blend.DestinationIn, so Destination-In compositing is reused rather
// than hand-rolled per-pixel alpha arithmetic.
package maskengine

import (
	"github.com/gogpu/svgraster/blend"
	"github.com/gogpu/svgraster/colorspace"
	"github.com/gogpu/svgraster/geom"
	"github.com/gogpu/svgraster/pixmap"
	"github.com/gogpu/svgraster/tree"
)

// Apply multiplies canvas's alpha by the scalar field derived from
// rendering mask's sub-Group (spec §4.4). canvasTransform is T∘G.t,
// the transform already in effect for canvas; render recurses into
// the compositor to draw the mask's content.
func Apply(mask *tree.Mask, objectBBox geom.Rect, canvasTransform geom.Transform, canvas *pixmap.Pixmap, render tree.GroupRenderer) {
	if mask == nil {
		return
	}

	if mask.Units == tree.ObjectBoundingBox && objectBBox.IsEmpty() {
		canvas.Fill(colorspace.Transparent)
		return
	}

	rect := mask.Rect
	if mask.Units == tree.ObjectBoundingBox {
		m := geom.FromBBox(objectBBox)
		origin := m.TransformPoint(geom.Pt(rect.X, rect.Y))
		rect = geom.Rect{X: origin.X, Y: origin.Y, W: rect.W * objectBBox.W, H: rect.H * objectBBox.H}
	}
	deviceRect := rect.Transform(canvasTransform)

	contentTransform := canvasTransform
	if mask.ContentUnits == tree.ObjectBoundingBox && !objectBBox.IsEmpty() {
		contentTransform = canvasTransform.Multiply(geom.FromBBox(objectBBox))
	}

	w, h := canvas.Width(), canvas.Height()
	var scratch *pixmap.Pixmap
	if mask.Content != nil {
		scratch = render(mask.Content, contentTransform, w, h)
	} else {
		scratch = pixmap.New(w, h)
	}
	clipToRect(scratch, deviceRect)

	field := toAlphaField(scratch, mask.Type)

	if mask.Parent != nil {
		Apply(mask.Parent, objectBBox, canvasTransform, field, render)
	}

	canvas.Blit(field, 0, 0, blend.DestinationIn, 1)
}

// clipToRect zeroes every pixel of m outside rect (the rectangular
// sub-clip to the mask's own rect, spec §4.4 step 2).
func clipToRect(m *pixmap.Pixmap, rect geom.Rect) {
	if rect.IsEmpty() {
		m.Clear()
		return
	}
	x0, y0 := int(rect.X), int(rect.Y)
	x1, y1 := int(rect.Right()+0.999999), int(rect.Bottom()+0.999999)
	for y := 0; y < m.Height(); y++ {
		inY := y >= y0 && y < y1
		for x := 0; x < m.Width(); x++ {
			if inY && x >= x0 && x < x1 {
				continue
			}
			m.SetPremultiplied(x, y, 0, 0, 0, 0)
		}
	}
}

// toAlphaField converts m into a new pixmap whose RGB is cleared and
// whose alpha channel carries the mask field (spec §4.4 step 4):
// Luminance derives alpha from premultiplied RGB directly, which is
// mathematically the "demultiply, compute luma, re-apply alpha"
// construction the spec describes collapsed into one multiply-free
// pass. Alpha masks pass the channel through unchanged.
func toAlphaField(m *pixmap.Pixmap, kind tree.MaskType) *pixmap.Pixmap {
	out := pixmap.New(m.Width(), m.Height())
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			r, g, b, a := m.PremultipliedAt(x, y)
			var alpha uint8
			if kind == tree.MaskAlpha {
				alpha = a
			} else {
				luma := colorspace.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}.Luma()
				alpha = clampByte(luma * 255)
			}
			out.SetPremultiplied(x, y, 0, 0, 0, alpha)
		}
	}
	return out
}

func clampByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
