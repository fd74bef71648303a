// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"math"

	"github.com/gogpu/svgraster/geom"
	"github.com/gogpu/svgraster/pathdata"
)

// ySubsamples is the vertical supersampling factor; horizontal coverage
// is computed exactly from span boundaries instead of supersampling,
// following the same supersample-scanline shape as gogpu-gg's
// internal/raster SuperBlitter but with analytic X coverage in place of
// a second supersampling axis.
const ySubsamples = 4

// scanlineFiller is the default Filler: flatten curves to line segments
// (chopped Y-monotonic first, per path_geometry.go), build an Active
// Edge Table (edge.go) per scanline, and accumulate fractional coverage.
type scanlineFiller struct{}

func (scanlineFiller) FillCoverage(path pathdata.Path, rule pathdata.FillRule, transform geom.Transform, width, height int, callback func(x, y int, coverage uint8)) {
	contours := flattenPath(path, transform)
	if len(contours) == 0 {
		return
	}

	el := NewEdgeList()
	minX, minY := float32(math.MaxFloat32), float32(math.MaxFloat32)
	maxX, maxY := float32(-math.MaxFloat32), float32(-math.MaxFloat32)
	for _, contour := range contours {
		n := len(contour)
		for i := 0; i < n; i++ {
			p0 := contour[i]
			p1 := contour[(i+1)%n]
			el.AddLine(p0.X, p0.Y, p1.X, p1.Y)
			for _, p := range [2]point32{p0, p1} {
				if p.X < minX {
					minX = p.X
				}
				if p.X > maxX {
					maxX = p.X
				}
				if p.Y < minY {
					minY = p.Y
				}
				if p.Y > maxY {
					maxY = p.Y
				}
			}
		}
	}
	if el.Len() == 0 {
		return
	}

	y0 := clampInt(int(math.Floor(float64(minY))), 0, height)
	y1 := clampInt(int(math.Ceil(float64(maxY))), 0, height)
	x0 := clampInt(int(math.Floor(float64(minX))), 0, width)
	x1 := clampInt(int(math.Ceil(float64(maxX))), 0, width)
	if y0 >= y1 || x0 >= x1 {
		return
	}

	acc := make([]float32, x1-x0)
	aet := NewSimpleAET()
	edges := el.Edges()

	for y := y0; y < y1; y++ {
		for i := range acc {
			acc[i] = 0
		}
		for s := 0; s < ySubsamples; s++ {
			scanY := float32(y) + (float32(s)+0.5)/float32(ySubsamples)
			aet.Reset()
			for i := range edges {
				e := &edges[i]
				if e.IsActiveAt(scanY) {
					aet.InsertEdge(e, scanY)
				}
			}
			if aet.Len() == 0 {
				continue
			}
			aet.SortByX()
			accumulateSpans(acc, aet.Active(), rule, x0, x1, 1.0/float32(ySubsamples))
		}
		for i, v := range acc {
			if v <= 0 {
				continue
			}
			if v > 1 {
				v = 1
			}
			callback(x0+i, y, uint8(v*255+0.5))
		}
	}
}

func accumulateSpans(acc []float32, active []ActiveEdge, rule pathdata.FillRule, x0, x1 int, weight float32) {
	if rule == pathdata.NonZero {
		winding := 0
		var spanStart float32
		for _, ae := range active {
			if winding == 0 {
				spanStart = ae.X
			}
			winding += int(ae.Edge.Winding)
			if winding == 0 {
				addSpan(acc, spanStart, ae.X, weight, x0, x1)
			}
		}
		return
	}
	for i := 0; i+1 < len(active); i += 2 {
		addSpan(acc, active[i].X, active[i+1].X, weight, x0, x1)
	}
}

// addSpan accumulates weight into acc for the horizontal span [x1, x2),
// in raster (not acc-local) coordinates, splitting fractional pixel
// coverage at both ends exactly.
func addSpan(acc []float32, x1, x2 float32, weight float32, x0, x1Bound int) {
	if x2 < x1 {
		x1, x2 = x2, x1
	}
	lo, hi := float32(x0), float32(x1Bound)
	if x1 < lo {
		x1 = lo
	}
	if x2 > hi {
		x2 = hi
	}
	if x1 >= x2 {
		return
	}

	i1 := int(math.Floor(float64(x1)))
	i2 := int(math.Floor(float64(x2)))

	if i1 == i2 {
		acc[i1-x0] += (x2 - x1) * weight
		return
	}
	acc[i1-x0] += (float32(i1+1) - x1) * weight
	for i := i1 + 1; i < i2; i++ {
		acc[i-x0] += weight
	}
	if i2-x0 < len(acc) {
		acc[i2-x0] += (x2 - float32(i2)) * weight
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
