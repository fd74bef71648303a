// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"math"

	"github.com/gogpu/svgraster/geom"
	"github.com/gogpu/svgraster/pathdata"
)

const flattenTolerance = 0.25

// flattenPath transforms path into device space and reduces every curve
// to line segments, returning one polyline per subpath. Each polyline is
// implicitly closed by the caller; MoveTo starts a new one and Close
// appends the subpath's start point, which changes nothing for fills
// since they treat every subpath as closed.
func flattenPath(path pathdata.Path, transform geom.Transform) [][]point32 {
	var contours [][]point32
	var current []point32
	var currentPoint, subpathStart geom.Point
	have := false

	flush := func() {
		if len(current) >= 2 {
			contours = append(contours, current)
		}
		current = nil
	}

	tp := func(p geom.Point) point32 {
		d := transform.TransformPoint(p)
		return point32{X: float32(d.X), Y: float32(d.Y)}
	}

	for _, el := range path.Elements {
		switch v := el.(type) {
		case pathdata.MoveTo:
			flush()
			currentPoint = v.Point
			subpathStart = v.Point
			current = append(current, tp(v.Point))
			have = true
		case pathdata.LineTo:
			if !have {
				currentPoint = v.Point
				subpathStart = v.Point
				current = append(current, tp(v.Point))
				have = true
				continue
			}
			current = append(current, tp(v.Point))
			currentPoint = v.Point
		case pathdata.QuadTo:
			if !have {
				continue
			}
			p0 := tp(currentPoint)
			p1 := tp(v.Control)
			p2 := tp(v.Point)
			for _, mono := range chopQuadAtYExtrema(p0, p1, p2) {
				flattenQuad(mono[0], mono[1], mono[2], &current, 0)
			}
			currentPoint = v.Point
		case pathdata.CubicTo:
			if !have {
				continue
			}
			p0 := tp(currentPoint)
			p1 := tp(v.Control1)
			p2 := tp(v.Control2)
			p3 := tp(v.Point)
			for _, mono := range chopCubicAtYExtrema(p0, p1, p2, p3) {
				flattenCubic(mono[0], mono[1], mono[2], mono[3], &current, 0)
			}
			currentPoint = v.Point
		case pathdata.Close:
			if have {
				current = append(current, tp(subpathStart))
			}
			currentPoint = subpathStart
		}
	}
	flush()
	return contours
}

const maxFlattenDepth = 24

func flattenQuad(p0, p1, p2 point32, out *[]point32, depth int) {
	if depth >= maxFlattenDepth || quadFlatEnough(p0, p1, p2) {
		*out = append(*out, p2)
		return
	}
	p01 := midPoint32(p0, p1)
	p12 := midPoint32(p1, p2)
	mid := midPoint32(p01, p12)
	flattenQuad(p0, p01, mid, out, depth+1)
	flattenQuad(mid, p12, p2, out, depth+1)
}

func flattenCubic(p0, p1, p2, p3 point32, out *[]point32, depth int) {
	if depth >= maxFlattenDepth || cubicFlatEnough(p0, p1, p2, p3) {
		*out = append(*out, p3)
		return
	}
	p01 := midPoint32(p0, p1)
	p12 := midPoint32(p1, p2)
	p23 := midPoint32(p2, p3)
	p012 := midPoint32(p01, p12)
	p123 := midPoint32(p12, p23)
	mid := midPoint32(p012, p123)
	flattenCubic(p0, p01, p012, mid, out, depth+1)
	flattenCubic(mid, p123, p23, p3, out, depth+1)
}

func midPoint32(a, b point32) point32 {
	return point32{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

// quadFlatEnough measures the control point's distance from the chord.
func quadFlatEnough(p0, p1, p2 point32) bool {
	return pointLineDistance(p1, p0, p2) <= flattenTolerance
}

func cubicFlatEnough(p0, p1, p2, p3 point32) bool {
	return pointLineDistance(p1, p0, p3) <= flattenTolerance &&
		pointLineDistance(p2, p0, p3) <= flattenTolerance
}

// pointLineDistance returns the perpendicular distance from p to the
// line through a and b (or the distance to a if a and b coincide).
func pointLineDistance(p, a, b point32) float32 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	lenSq := dx*dx + dy*dy
	if lenSq < 1e-12 {
		ex := p.X - a.X
		ey := p.Y - a.Y
		return sqrtF32(ex*ex + ey*ey)
	}
	cross := (p.X-a.X)*dy - (p.Y-a.Y)*dx
	return absF32(cross) / sqrtF32(lenSq)
}

func sqrtF32(v float32) float32 {
	return float32(math.Sqrt(float64(v)))
}
