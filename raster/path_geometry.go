// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import "math"

// Y-monotonic curve splitting.
//
// Scanline rasterization walks edges top to bottom; an edge whose X-at-Y
// function is well defined needs a curve segment that never reverses
// direction in Y. Quadratics have at most one Y extremum and cubics at
// most two, so each curve is chopped at those parameter values before
// flattening, producing pieces that are safe to treat as ordinary
// monotonic edges.

type point32 struct {
	X, Y float32
}

// chopQuadAtYExtrema splits a quadratic at its Y extremum, if any, and
// returns the one or two monotonic quadratics it produces.
func chopQuadAtYExtrema(p0, p1, p2 point32) [][3]point32 {
	a, b, c := p0.Y, p1.Y, p2.Y
	if !isNotMonotonic(a, b, c) {
		return [][3]point32{{p0, p1, p2}}
	}

	t := validUnitDivide(a-b, a-2*b+c)
	if t <= 0 || t >= 1 {
		// Can't find a usable split point; nudge the control point onto
		// the chord so the single piece stays monotonic.
		if absF32(a-b) < absF32(b-c) {
			b = a
		} else {
			b = c
		}
		return [][3]point32{{p0, point32{p1.X, b}, p2}}
	}

	ab := lerpPoint32(p0, p1, t)
	bc := lerpPoint32(p1, p2, t)
	mid := lerpPoint32(ab, bc, t)

	clampY(&ab.Y, p0.Y, mid.Y)
	clampY(&bc.Y, mid.Y, p2.Y)

	return [][3]point32{{p0, ab, mid}, {mid, bc, p2}}
}

// chopCubicAtYExtrema splits a cubic at its (up to two) Y extrema and
// returns the monotonic cubics it produces.
func chopCubicAtYExtrema(p0, p1, p2, p3 point32) [][4]point32 {
	ts := findCubicExtrema(p0.Y, p1.Y, p2.Y, p3.Y)
	pieces := chopCubicAt([4]point32{p0, p1, p2, p3}, ts)
	for i := range pieces {
		clampY(&pieces[i][1].Y, pieces[i][0].Y, pieces[i][3].Y)
		clampY(&pieces[i][2].Y, pieces[i][0].Y, pieces[i][3].Y)
	}
	return pieces
}

func clampY(y *float32, a, b float32) {
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}
	if *y < lo {
		*y = lo
	} else if *y > hi {
		*y = hi
	}
}

// isNotMonotonic reports whether a, b, c do not form a non-decreasing or
// non-increasing sequence. It also reports true whenever a == b, even
// for a flat or monotonic sequence such as (50, 50, 50) or (0, 0, 100).
func isNotMonotonic(a, b, c float32) bool {
	ab := a - b
	bc := b - c
	if ab < 0 {
		bc = -bc
	}
	return ab == 0 || bc < 0
}

// validUnitDivide returns numer/denom if it falls strictly inside (0, 1),
// and 0 otherwise.
func validUnitDivide(numer, denom float32) float32 {
	if denom == 0 {
		return 0
	}
	t := numer / denom
	if t > 0 && t < 1 {
		if math.IsNaN(float64(t)) || math.IsInf(float64(t), 0) {
			return 0
		}
		return t
	}
	return 0
}

// findCubicExtrema returns the t values in (0,1), sorted, where dy/dt = 0
// for the cubic with Y coordinates a, b, c, d.
func findCubicExtrema(a, b, c, d float32) []float32 {
	na := d - a + 3*(b-c)
	nb := 2 * (a - 2*b + c)
	nc := b - a
	return findUnitQuadRoots(na, nb, nc)
}

// findUnitQuadRoots returns the roots of at^2+bt+c=0 that lie in (0,1).
func findUnitQuadRoots(a, b, c float32) []float32 {
	const epsilon = 1e-7

	if absF32(a) < epsilon {
		if absF32(b) < epsilon {
			return nil
		}
		t := -c / b
		if t > 0 && t < 1 {
			return []float32{t}
		}
		return nil
	}

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return nil
	}
	sqrtD := float32(math.Sqrt(float64(discriminant)))
	inv2a := 1.0 / (2 * a)

	t1 := (-b - sqrtD) * inv2a
	t2 := (-b + sqrtD) * inv2a
	if t1 > t2 {
		t1, t2 = t2, t1
	}

	var roots []float32
	if t1 > epsilon && t1 < 1-epsilon {
		roots = append(roots, t1)
	}
	if t2 > epsilon && t2 < 1-epsilon && absF32(t2-t1) > epsilon {
		roots = append(roots, t2)
	}
	return roots
}

// chopCubicAt splits src at each parameter in ts (sorted, each in (0,1))
// using repeated De Casteljau subdivision.
func chopCubicAt(src [4]point32, ts []float32) [][4]point32 {
	if len(ts) == 0 {
		return [][4]point32{src}
	}

	var out [][4]point32
	remaining := src
	prevT := float32(0)
	for _, t := range ts {
		localT := validUnitDivide(t-prevT, 1-prevT)
		if localT <= 0 {
			continue
		}
		first, second := splitCubic(remaining, localT)
		out = append(out, first)
		remaining = second
		prevT = t
	}
	out = append(out, remaining)
	return out
}

func splitCubic(src [4]point32, t float32) (first, second [4]point32) {
	ab := lerpPoint32(src[0], src[1], t)
	bc := lerpPoint32(src[1], src[2], t)
	cd := lerpPoint32(src[2], src[3], t)
	abbc := lerpPoint32(ab, bc, t)
	bccd := lerpPoint32(bc, cd, t)
	mid := lerpPoint32(abbc, bccd, t)

	first = [4]point32{src[0], ab, abbc, mid}
	second = [4]point32{mid, bccd, cd, src[3]}
	return first, second
}

func lerpPoint32(a, b point32, t float32) point32 {
	return point32{
		X: a.X + t*(b.X-a.X),
		Y: a.Y + t*(b.Y-a.Y),
	}
}

func absF32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
