package pathdata

import (
	"math"
	"sort"

	"github.com/gogpu/svgraster/geom"
)

// Bounds computes the tight axis-aligned bounding box of the path:
// for curve segments this includes the curve's extrema, not just its
// control points, satisfying I2 (bbox = tight_bounds(data)).
// Grounded on gogpu-gg's curve.go QuadBez/CubicBez.BoundingBox, adapted
// to fold points directly into a running accumulator as the element
// stream is walked, rather than building per-segment Rect values (a
// single-point or zero-width segment bbox would otherwise be
// indistinguishable from geom.Rect's empty-identity sentinel).
func (p Path) Bounds() geom.Rect {
	bounds := geom.EmptyRect()
	var cur geom.Point
	for _, e := range p.Elements {
		switch v := e.(type) {
		case MoveTo:
			bounds = unionPoint(bounds, v.Point)
			cur = v.Point
		case LineTo:
			bounds = unionPoint(bounds, v.Point)
			cur = v.Point
		case QuadTo:
			bounds = unionPoint(bounds, v.Point)
			for _, t := range quadExtrema(cur, v.Control, v.Point) {
				bounds = unionPoint(bounds, quadEval(cur, v.Control, v.Point, t))
			}
			cur = v.Point
		case CubicTo:
			bounds = unionPoint(bounds, v.Point)
			for _, t := range cubicExtrema(cur, v.Control1, v.Control2, v.Point) {
				bounds = unionPoint(bounds, cubicEval(cur, v.Control1, v.Control2, v.Point, t))
			}
			cur = v.Point
		case Close:
			// Close draws back to the subpath start; the start point
			// is already included in bounds from its MoveTo.
		}
	}
	return bounds
}

// StrokeBounds returns the path's tight bounds expanded by the
// stroke's outset, satisfying I2 (stroke_bbox ⊇ bbox, with equality
// iff there is no stroke).
func (p Path) StrokeBounds(s Stroke) geom.Rect {
	bounds := p.Bounds()
	if bounds.IsEmpty() {
		return bounds
	}
	outset := s.StrokeOutset()
	if outset <= 0 {
		return bounds
	}
	return bounds.Inset(-outset)
}

// unionPoint expands bounds to include p.
func unionPoint(bounds geom.Rect, p geom.Point) geom.Rect {
	if math.IsInf(bounds.X, 1) {
		return geom.Rect{X: p.X, Y: p.Y}
	}
	return geom.RectFromMinMax(
		math.Min(bounds.X, p.X), math.Min(bounds.Y, p.Y),
		math.Max(bounds.Right(), p.X), math.Max(bounds.Bottom(), p.Y),
	)
}

func quadEval(p0, p1, p2 geom.Point, t float64) geom.Point {
	u := 1 - t
	x := u*u*p0.X + 2*u*t*p1.X + t*t*p2.X
	y := u*u*p0.Y + 2*u*t*p1.Y + t*t*p2.Y
	return geom.Point{X: x, Y: y}
}

// quadExtrema returns the interior parameter values where the
// derivative of a quadratic Bezier vanishes on each axis. The
// derivative is linear, so there is at most one root per axis.
func quadExtrema(p0, p1, p2 geom.Point) []float64 {
	var out []float64
	d0x, d1x := p1.X-p0.X, p2.X-p1.X
	if ddx := d1x - d0x; ddx != 0 {
		if t := -d0x / ddx; t > 0 && t < 1 {
			out = append(out, t)
		}
	}
	d0y, d1y := p1.Y-p0.Y, p2.Y-p1.Y
	if ddy := d1y - d0y; ddy != 0 {
		if t := -d0y / ddy; t > 0 && t < 1 {
			out = append(out, t)
		}
	}
	return out
}

func cubicEval(p0, p1, p2, p3 geom.Point, t float64) geom.Point {
	u := 1 - t
	uu, tt := u*u, t*t
	uuu, ttt := uu*u, tt*t
	x := uuu*p0.X + 3*uu*t*p1.X + 3*u*tt*p2.X + ttt*p3.X
	y := uuu*p0.Y + 3*uu*t*p1.Y + 3*u*tt*p2.Y + ttt*p3.Y
	return geom.Point{X: x, Y: y}
}

// cubicExtrema returns up to two interior roots per axis (four total)
// of the cubic's quadratic derivative, mirroring gogpu-gg's
// CubicBez.Extrema but solving each axis with a plain quadratic
// formula rather than the shared general-purpose cubic solver.
func cubicExtrema(p0, p1, p2, p3 geom.Point) []float64 {
	d0 := geom.Point{X: p1.X - p0.X, Y: p1.Y - p0.Y}
	d1 := geom.Point{X: p2.X - p1.X, Y: p2.Y - p1.Y}
	d2 := geom.Point{X: p3.X - p2.X, Y: p3.Y - p2.Y}

	out := solveUnitQuadratic(d0.X-2*d1.X+d2.X, 2*(d1.X-d0.X), d0.X)
	out = append(out, solveUnitQuadratic(d0.Y-2*d1.Y+d2.Y, 2*(d1.Y-d0.Y), d0.Y)...)
	sort.Float64s(out)
	return out
}

// solveUnitQuadratic returns the roots of a*t^2+b*t+c=0 lying in (0,1).
func solveUnitQuadratic(a, b, c float64) []float64 {
	const eps = 1e-12
	var out []float64
	if math.Abs(a) < eps {
		if math.Abs(b) < eps {
			return nil
		}
		t := -c / b
		if t > 0 && t < 1 {
			out = append(out, t)
		}
		return out
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		return nil
	}
	sq := math.Sqrt(disc)
	for _, t := range [2]float64{(-b + sq) / (2 * a), (-b - sq) / (2 * a)} {
		if t > 0 && t < 1 {
			out = append(out, t)
		}
	}
	return out
}
