// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"math"

	"github.com/gogpu/svgraster/geom"
	"github.com/gogpu/svgraster/pathdata"
)

const strokeFlattenTolerance = 0.1

// StrokeToFillPath expands path into the filled outline a stroke of the
// given style produces: one closed polygon per dash-on run, each built
// from a ribbon of per-segment quads plus join and cap geometry. The
// result is always filled with the non-zero rule.
func StrokeToFillPath(path pathdata.Path, stroke pathdata.Stroke) pathdata.Path {
	halfWidth := stroke.Width / 2
	if halfWidth <= 0 {
		return pathdata.Path{}
	}

	b := pathdata.NewBuilder()
	for _, contour := range polylinesF64(path) {
		runs := [][]geom.Point{contour}
		if stroke.Dash.IsDashed() {
			runs = splitDash(contour, stroke.Dash)
		}
		for _, run := range runs {
			outlineRun(b, run, stroke, halfWidth)
		}
	}
	return b.Build()
}

// outlineRun appends the filled ribbon for a single open polyline to b.
func outlineRun(b *pathdata.Builder, pts []geom.Point, stroke pathdata.Stroke, half float64) {
	pts = dedupe(pts)
	if len(pts) < 2 {
		return
	}

	left := make([]geom.Point, 0, len(pts)*2)
	right := make([]geom.Point, 0, len(pts)*2)
	var prevDx, prevDy float64

	for i := 0; i < len(pts)-1; i++ {
		p0, p1 := pts[i], pts[i+1]
		dx, dy := dir(p0, p1)
		nx, ny := -dy*half, dx*half
		left = append(left, geom.Pt(p0.X+nx, p0.Y+ny), geom.Pt(p1.X+nx, p1.Y+ny))
		right = append(right, geom.Pt(p0.X-nx, p0.Y-ny), geom.Pt(p1.X-nx, p1.Y-ny))

		if i > 0 {
			joinAt(&left, pts[i], prevDx, prevDy, dx, dy, stroke.Join, stroke.MiterLimit, half)
			joinAt(&right, pts[i], prevDx, prevDy, dx, dy, stroke.Join, stroke.MiterLimit, half)
		}
		prevDx, prevDy = dx, dy
	}

	loop := make([]geom.Point, 0, len(left)+len(right)+4)
	loop = append(loop, left...)
	appendCap(&loop, pts[len(pts)-1], pts[len(pts)-2], stroke.Cap, half)
	for i := len(right) - 1; i >= 0; i-- {
		loop = append(loop, right[i])
	}
	appendCap(&loop, pts[0], pts[1], stroke.Cap, half)

	emitLoop(b, loop)
}

// joinAt inserts a join patch at a shared vertex; for the straightforward
// ribbon built above (each segment's two offset points appended in
// order) a round join inserts an arc fan and a miter join inserts the
// offset-line intersection, falling back to the existing bevel corner
// when the miter limit is exceeded.
func joinAt(side *[]geom.Point, center geom.Point, prevDx, prevDy, curDx, curDy float64, join pathdata.LineJoin, miterLimit, half float64) {
	n := len(*side)
	if n < 4 {
		return
	}
	// The last three points appended are [end(prev seg), start(this seg),
	// end(this seg)]; the shared vertex sits between the first two.
	prevEnd := (*side)[n-3]
	nextStart := (*side)[n-2]
	switch join {
	case pathdata.JoinRound:
		arc := arcBetween(center, prevEnd, nextStart, half)
		tail := append([]geom.Point{}, (*side)[:n-2]...)
		tail = append(tail, arc...)
		tail = append(tail, (*side)[n-2:]...)
		*side = tail
	case pathdata.JoinMiter:
		m, ok := lineIntersect(prevEnd, geom.Pt(prevDx, prevDy), nextStart, geom.Pt(curDx, curDy))
		if ok && dist(m, center) <= miterLimit*half {
			tail := append([]geom.Point{}, (*side)[:n-3]...)
			tail = append(tail, m)
			tail = append(tail, (*side)[n-1:]...)
			*side = tail
		}
		// else leave the implicit bevel corner already present.
	}
}

func lineIntersect(p1, d1, p2, d2 geom.Point) (geom.Point, bool) {
	denom := d1.X*d2.Y - d1.Y*d2.X
	if math.Abs(denom) < 1e-9 {
		return geom.Point{}, false
	}
	t := ((p2.X-p1.X)*d2.Y - (p2.Y-p1.Y)*d2.X) / denom
	return geom.Pt(p1.X+d1.X*t, p1.Y+d1.Y*t), true
}

func arcBetween(center, from, to geom.Point, radius float64) []geom.Point {
	a0 := math.Atan2(from.Y-center.Y, from.X-center.X)
	a1 := math.Atan2(to.Y-center.Y, to.X-center.X)
	for a1-a0 > math.Pi {
		a1 -= 2 * math.Pi
	}
	for a1-a0 < -math.Pi {
		a1 += 2 * math.Pi
	}
	const steps = 8
	pts := make([]geom.Point, 0, steps-1)
	for i := 1; i < steps; i++ {
		t := float64(i) / steps
		a := a0 + (a1-a0)*t
		pts = append(pts, geom.Pt(center.X+radius*math.Cos(a), center.Y+radius*math.Sin(a)))
	}
	return pts
}

func appendCap(loop *[]geom.Point, end, from geom.Point, cap pathdata.LineCap, half float64) {
	switch cap {
	case pathdata.CapSquare:
		dx, dy := dir(from, end)
		ext := geom.Pt(end.X+dx*half, end.Y+dy*half)
		nx, ny := -dy*half, dx*half
		*loop = append(*loop,
			geom.Pt(ext.X+nx, ext.Y+ny),
			geom.Pt(ext.X-nx, ext.Y-ny),
		)
	case pathdata.CapRound:
		dx, dy := dir(from, end)
		nx, ny := -dy*half, dx*half
		p0 := geom.Pt(end.X+nx, end.Y+ny)
		p1 := geom.Pt(end.X-nx, end.Y-ny)
		*loop = append(*loop, p0)
		*loop = append(*loop, arcBetween(end, p0, p1, half)...)
		*loop = append(*loop, p1)
	default: // CapButt: the two offset endpoints already meet at end.
	}
}

func emitLoop(b *pathdata.Builder, loop []geom.Point) {
	if len(loop) < 3 {
		return
	}
	b.MoveTo(loop[0].X, loop[0].Y)
	for _, p := range loop[1:] {
		b.LineTo(p.X, p.Y)
	}
	b.Close()
}

func dir(p0, p1 geom.Point) (dx, dy float64) {
	ddx, ddy := p1.X-p0.X, p1.Y-p0.Y
	l := math.Hypot(ddx, ddy)
	if l < 1e-9 {
		return 0, 0
	}
	return ddx / l, ddy / l
}

func dist(a, b geom.Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

func dedupe(pts []geom.Point) []geom.Point {
	out := pts[:0:0]
	for i, p := range pts {
		if i == 0 || dist(p, pts[i-1]) > 1e-9 {
			out = append(out, p)
		}
	}
	return out
}

// splitDash walks pts accumulating arc length and returns the polyline
// fragments that fall within "on" intervals of stroke's dash pattern.
func splitDash(pts []geom.Point, dash *pathdata.Dash) [][]geom.Point {
	pattern := dash.Pattern
	if len(pattern)%2 == 1 {
		// SVG dasharray with an odd count repeats itself once so the
		// on/off phase stays consistent across wraps.
		pattern = append(append([]float64{}, pattern...), pattern...)
	}
	total := 0.0
	for _, l := range pattern {
		total += l
	}
	if total <= 0 {
		return [][]geom.Point{pts}
	}

	pos := math.Mod(dash.Offset, total)
	if pos < 0 {
		pos += total
	}
	idx := 0
	on := true
	for pos >= pattern[idx] {
		pos -= pattern[idx]
		idx = (idx + 1) % len(pattern)
		on = !on
	}
	remaining := pattern[idx] - pos

	var runs [][]geom.Point
	var cur []geom.Point
	if on {
		cur = append(cur, pts[0])
	}

	for i := 0; i < len(pts)-1; i++ {
		p0, p1 := pts[i], pts[i+1]
		segLen := dist(p0, p1)
		walked := 0.0
		for segLen-walked > remaining {
			walked += remaining
			t := walked / segLen
			split := geom.Pt(p0.X+(p1.X-p0.X)*t, p0.Y+(p1.Y-p0.Y)*t)
			if on {
				cur = append(cur, split)
				runs = append(runs, cur)
				cur = nil
			} else {
				cur = []geom.Point{split}
			}
			on = !on
			idx = (idx + 1) % len(pattern)
			remaining = pattern[idx]
		}
		remaining -= segLen - walked
		if on {
			cur = append(cur, p1)
		}
	}
	if on && len(cur) >= 2 {
		runs = append(runs, cur)
	}
	return runs
}

// polylinesF64 flattens path into full-precision polylines without any
// device transform, for stroke outline construction.
func polylinesF64(path pathdata.Path) [][]geom.Point {
	var contours [][]geom.Point
	var current []geom.Point
	var currentPoint, subpathStart geom.Point
	have := false

	flush := func() {
		if len(current) >= 2 {
			contours = append(contours, current)
		}
		current = nil
	}

	for _, el := range path.Elements {
		switch v := el.(type) {
		case pathdata.MoveTo:
			flush()
			currentPoint, subpathStart = v.Point, v.Point
			current = append(current, v.Point)
			have = true
		case pathdata.LineTo:
			if !have {
				currentPoint, subpathStart = v.Point, v.Point
				current = append(current, v.Point)
				have = true
				continue
			}
			current = append(current, v.Point)
			currentPoint = v.Point
		case pathdata.QuadTo:
			if !have {
				continue
			}
			flattenQuadF64(currentPoint, v.Control, v.Point, &current, 0)
			currentPoint = v.Point
		case pathdata.CubicTo:
			if !have {
				continue
			}
			flattenCubicF64(currentPoint, v.Control1, v.Control2, v.Point, &current, 0)
			currentPoint = v.Point
		case pathdata.Close:
			if have {
				current = append(current, subpathStart)
			}
			currentPoint = subpathStart
		}
	}
	flush()
	return contours
}

func flattenQuadF64(p0, p1, p2 geom.Point, out *[]geom.Point, depth int) {
	if depth >= maxFlattenDepth || flatEnoughF64(p1, p0, p2) {
		*out = append(*out, p2)
		return
	}
	p01 := midF64(p0, p1)
	p12 := midF64(p1, p2)
	mid := midF64(p01, p12)
	flattenQuadF64(p0, p01, mid, out, depth+1)
	flattenQuadF64(mid, p12, p2, out, depth+1)
}

func flattenCubicF64(p0, p1, p2, p3 geom.Point, out *[]geom.Point, depth int) {
	if depth >= maxFlattenDepth || (flatEnoughF64(p1, p0, p3) && flatEnoughF64(p2, p0, p3)) {
		*out = append(*out, p3)
		return
	}
	p01 := midF64(p0, p1)
	p12 := midF64(p1, p2)
	p23 := midF64(p2, p3)
	p012 := midF64(p01, p12)
	p123 := midF64(p12, p23)
	mid := midF64(p012, p123)
	flattenCubicF64(p0, p01, p012, mid, out, depth+1)
	flattenCubicF64(mid, p123, p23, p3, out, depth+1)
}

func midF64(a, b geom.Point) geom.Point {
	return geom.Pt((a.X+b.X)/2, (a.Y+b.Y)/2)
}

func flatEnoughF64(p, a, b geom.Point) bool {
	dx, dy := b.X-a.X, b.Y-a.Y
	lenSq := dx*dx + dy*dy
	if lenSq < 1e-12 {
		return math.Hypot(p.X-a.X, p.Y-a.Y) <= strokeFlattenTolerance
	}
	cross := (p.X-a.X)*dy - (p.Y-a.Y)*dx
	return math.Abs(cross)/math.Sqrt(lenSq) <= strokeFlattenTolerance
}
