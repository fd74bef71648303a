// Package filter implements spec §4.6's filter pipeline: a linear DAG
// of named primitives evaluated over premultiplied pixmaps, covering
// the seventeen primitive kinds of tree.PrimitiveKind.
//
// Grounded on gogpu-gg's scene/filter.go for the shape of a named-
// result pipeline evaluator; the per-primitive pixel math has no
// teacher analogue (the teacher has no SVG filter primitives at all)
// and is built from the W3C Filter Effects formulas SPEC_FULL.md §4.6
// names, reusing github.com/anthonynsimon/bild only for isotropic
// Gaussian blur; convolution and the other primitives are hand-written.
package filter

import (
	"github.com/gogpu/svgraster/geom"
	"github.com/gogpu/svgraster/tree"
)

// resolveRegion maps a filter or primitive region rect into device
// space, placing it into objectBBox first when units are object-bbox
// (spec §4.6 "Regions").
func resolveRegion(rect geom.Rect, units tree.Units, objectBBox geom.Rect, absTransform geom.Transform) geom.Rect {
	r := rect
	if units == tree.ObjectBoundingBox {
		m := geom.FromBBox(objectBBox)
		origin := m.TransformPoint(geom.Pt(r.X, r.Y))
		r = geom.Rect{X: origin.X, Y: origin.Y, W: r.W * objectBBox.W, H: r.H * objectBBox.H}
	}
	return r.Transform(absTransform)
}

func clampRegionToCanvas(r geom.Rect, canvasW, canvasH int) geom.Rect {
	canvas := geom.Rect{X: 0, Y: 0, W: float64(canvasW), H: float64(canvasH)}
	return r.Intersect(canvas)
}

func deviceRect(r geom.Rect) (x0, y0, x1, y1 int) {
	x0 = int(r.X)
	y0 = int(r.Y)
	x1 = int(r.Right() + 0.999999)
	y1 = int(r.Bottom() + 0.999999)
	return
}
