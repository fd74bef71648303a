// Package raster is the path rasterizer boundary: a pluggable coverage
// filler behind a small interface, exactly the shape of gogpu-gg's
// CoverageFiller/RegisterCoverageFiller plugin (coverage_filler.go),
// generalized from that GPU-accelerator hook into the CPU scanline
// default this module ships and an extension point a faster or
// GPU-backed filler could still register itself into.
package raster

import (
	"sync"

	"github.com/gogpu/svgraster/blend"
	"github.com/gogpu/svgraster/colorspace"
	"github.com/gogpu/svgraster/geom"
	"github.com/gogpu/svgraster/paintserver"
	"github.com/gogpu/svgraster/pathdata"
	"github.com/gogpu/svgraster/pixmap"
)

// Filler computes per-pixel coverage for path, already expressed in the
// coordinate space transform maps into, over a width x height raster.
// callback is invoked once per pixel with non-zero coverage; coverage 255
// means fully inside.
type Filler interface {
	FillCoverage(path pathdata.Path, rule pathdata.FillRule, transform geom.Transform, width, height int, callback func(x, y int, coverage uint8))
}

var (
	fillerMu     sync.RWMutex
	activeFiller Filler = &scanlineFiller{}
)

// Register installs f as the active coverage filler for every
// subsequent Fill/Stroke call. Passing nil restores the built-in
// scanline filler.
func Register(f Filler) {
	fillerMu.Lock()
	defer fillerMu.Unlock()
	if f == nil {
		f = &scanlineFiller{}
	}
	activeFiller = f
}

// Active returns the currently installed filler.
func Active() Filler {
	fillerMu.RLock()
	defer fillerMu.RUnlock()
	return activeFiller
}

// Fill rasterizes path against dst, sampling shader at each covered
// pixel (inverting transform back to the space shader's own geometry
// was resolved in) and compositing through mode at opacity.
func Fill(dst *pixmap.Pixmap, path pathdata.Path, rule pathdata.FillRule, transform geom.Transform, shader paintserver.Shader, mode blend.Mode, opacity float64) {
	fillWith(Active(), dst, path, rule, transform, shader, mode, opacity)
}

// FillForced is Fill with spec §6.6's "anti-alias override" applied:
// aa == nil uses the node's own per-call hint (the process-wide
// Active filler), aa == false coarsens coverage to a hard 0/255 edge
// via thresholdFiller, aa == true uses Active unmodified (this
// module's default scanline filler already anti-aliases; there is no
// stronger mode to force it into).
func FillForced(dst *pixmap.Pixmap, path pathdata.Path, rule pathdata.FillRule, transform geom.Transform, shader paintserver.Shader, mode blend.Mode, opacity float64, aa *bool) {
	f := Active()
	if aa != nil && !*aa {
		f = thresholdFiller{inner: f}
	}
	fillWith(f, dst, path, rule, transform, shader, mode, opacity)
}

func fillWith(f Filler, dst *pixmap.Pixmap, path pathdata.Path, rule pathdata.FillRule, transform geom.Transform, shader paintserver.Shader, mode blend.Mode, opacity float64) {
	if shader == nil || dst == nil {
		return
	}
	inv := transform.Invert()
	fn := blend.Get(mode)
	op := opacity
	if op < 0 {
		op = 0
	} else if op > 1 {
		op = 1
	}

	f.FillCoverage(path, rule, transform, dst.Width(), dst.Height(), func(x, y int, coverage uint8) {
		if coverage == 0 {
			return
		}
		up := inv.TransformPoint(geom.Pt(float64(x)+0.5, float64(y)+0.5))
		c := shader.ColorAt(up.X, up.Y)
		alpha := c.A * op * (float64(coverage) / 255)
		if alpha <= 0 {
			return
		}
		src := colorspace.Color{R: c.R, G: c.G, B: c.B, A: alpha}.Premultiply()
		sr, sg, sb, sa := to8(src.R), to8(src.G), to8(src.B), to8(src.A)
		dr, dg, db, da := dst.PremultipliedAt(x, y)
		r, g, b, a := fn(sr, sg, sb, sa, dr, dg, db, da)
		dst.SetPremultiplied(x, y, r, g, b, a)
	})
}

// Stroke expands path per stroke into a fill outline and rasterizes
// that with the non-zero rule, per spec's "stroking is fill of the
// expanded outline" model.
func Stroke(dst *pixmap.Pixmap, path pathdata.Path, stroke pathdata.Stroke, transform geom.Transform, shader paintserver.Shader, mode blend.Mode, opacity float64) {
	outline := StrokeToFillPath(path, stroke)
	Fill(dst, outline, pathdata.NonZero, transform, shader, mode, opacity*stroke.Opacity)
}

// StrokeForced is Stroke with the anti-alias override applied; see FillForced.
func StrokeForced(dst *pixmap.Pixmap, path pathdata.Path, stroke pathdata.Stroke, transform geom.Transform, shader paintserver.Shader, mode blend.Mode, opacity float64, aa *bool) {
	outline := StrokeToFillPath(path, stroke)
	FillForced(dst, outline, pathdata.NonZero, transform, shader, mode, opacity*stroke.Opacity, aa)
}

// thresholdFiller wraps another Filler and snaps its coverage output
// to a hard 0/255 edge at the 50% midpoint, the "force anti-alias
// off" shape spec §6.6 names without needing a second geometry
// rasterization path.
type thresholdFiller struct{ inner Filler }

func (t thresholdFiller) FillCoverage(path pathdata.Path, rule pathdata.FillRule, transform geom.Transform, width, height int, callback func(x, y int, coverage uint8)) {
	t.inner.FillCoverage(path, rule, transform, width, height, func(x, y int, coverage uint8) {
		if coverage >= 128 {
			callback(x, y, 255)
		}
	})
}

func to8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
