// Package clipengine implements spec §4.3: apply_clip, the alpha-
// intersection clip operator applied after a group's filters and
// before its mask (compositor §4.2 step v).
//
// Grounded on the compositor's own blit primitive (pixmap.Blit) and
// the Porter-Duff table in blend/mode.go: the "opaque black, punched
// with Clear, then inverted" construction the spec calls for reduces
// to two existing blend.Func calls (Clear while painting the clip
// shapes, DestinationOut to fold the result into the canvas) rather
// than any bespoke alpha arithmetic, so this package is mostly
// orchestration around raster.Fill and pixmap.Blit.
package clipengine

import (
	"github.com/gogpu/svgraster/blend"
	"github.com/gogpu/svgraster/colorspace"
	"github.com/gogpu/svgraster/geom"
	"github.com/gogpu/svgraster/paintserver"
	"github.com/gogpu/svgraster/pathdata"
	"github.com/gogpu/svgraster/pixmap"
	"github.com/gogpu/svgraster/raster"
	"github.com/gogpu/svgraster/tree"
)

// opaqueBlack is the shader used to paint clip shapes; Clear blend
// ignores its color entirely, so any opaque shader would do.
var opaqueBlack = paintserver.Solid{Color: colorspace.Color{A: 1}, Opacity: 1}

// Apply modifies canvas in place so every pixel outside clip's shape
// union becomes transparent and every pixel inside retains its
// original color and alpha (spec §4.3). canvasTransform is the
// transform already in effect for canvas (T∘G.t from the compositor);
// render recurses into the compositor for nested clipped groups.
func Apply(clip *tree.ClipPath, objectBBox geom.Rect, canvasTransform geom.Transform, canvas *pixmap.Pixmap, render tree.GroupRenderer) {
	if clip == nil {
		return
	}

	kTransform := canvasTransform.Multiply(clip.Transform)
	if clip.Units == tree.ObjectBoundingBox {
		if objectBBox.IsEmpty() {
			// I4-adjacent: an object-bbox clip against a zero-area
			// shape clips out everything, per spec §4.3 step 2.
			canvas.Clear()
			return
		}
		kTransform = canvasTransform.Multiply(geom.FromBBox(objectBBox)).Multiply(clip.Transform)
	}

	w, h := canvas.Width(), canvas.Height()
	k := pixmap.New(w, h)
	k.Fill(colorspace.Color{A: 1})

	if clip.Content != nil {
		paintClipShapes(k, clip.Content, kTransform, render)
	}

	if clip.Parent != nil {
		Apply(clip.Parent, objectBBox, canvasTransform, k, render)
	}

	canvas.Blit(k, 0, 0, blend.DestinationOut, 1)
}

// paintClipShapes walks g's children, punching Clear-mode holes into k
// for every Path, and recursing through plain sub-groups under their
// own transform. A child Group that itself carries a clip path is
// rendered into a private scratch pixmap, clipped recursively, then
// folded into k with Xor (spec §4.3 step 3).
func paintClipShapes(k *pixmap.Pixmap, g *tree.Group, transform geom.Transform, render tree.GroupRenderer) {
	for _, child := range g.Children {
		switch n := child.(type) {
		case *tree.Path:
			rule := pathdata.NonZero
			if n.Fill != nil {
				rule = n.Fill.Rule
			}
			raster.Fill(k, n.Data, rule, transform.Multiply(n.AbsTransform), opaqueBlack, blend.Clear, 1)
		case *tree.Group:
			if n.Clip != nil {
				w, h := k.Width(), k.Height()
				scratch := render(n, transform, w, h)
				nodeTransform := transform.Multiply(n.AbsTransform)
				Apply(n.Clip, n.Bounds.Object, nodeTransform, scratch, render)
				k.Blit(scratch, 0, 0, blend.Xor, 1)
				continue
			}
			paintClipShapes(k, n, transform, render)
		}
	}
}
