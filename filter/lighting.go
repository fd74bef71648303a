package filter

import (
	"math"

	gg "github.com/gogpu/svgraster"
	"github.com/gogpu/svgraster/colorspace"
	"github.com/gogpu/svgraster/geom"
	"github.com/gogpu/svgraster/pixmap"
	"github.com/gogpu/svgraster/tree"
)

// evalLighting implements feDiffuseLighting / feSpecularLighting: the
// input's alpha channel is interpreted as a height map and lit with a
// distant, point, or spot light (spec §4.6). A spot light is lit like a
// point light at its Location: PointsAt, its SpecularExp and
// LimitingAngle are not applied, so there is no cone. Surface normals
// are estimated with a standard Sobel-like kernel over the height map.
func evalLighting(in *pixmap.Pixmap, p tree.LightingParams) *pixmap.Pixmap {
	if in == nil {
		return nil
	}
	if p.Specular && (p.SpecularExp < 1 || p.SpecularExp > 128) {
		// Spec §4.6 failure semantics: out-of-range exponent skips
		// the primitive as a fully transparent flood.
		var d gg.Diagnostics
		d.Add(&gg.RenderWarning{PrimitiveName: "feSpecularLighting", Reason: "specularExponent out of [1,128] range, primitive skipped"})
		return transparentFlood(float64(in.Width()), float64(in.Height()))
	}

	w, h := in.Width(), in.Height()
	out := pixmap.New(w, h)
	height := func(x, y int) float64 {
		if x < 0 {
			x = 0
		}
		if x >= w {
			x = w - 1
		}
		if y < 0 {
			y = 0
		}
		if y >= h {
			y = h - 1
		}
		return in.ColorAt(x, y).A
	}

	forEachPixel(w, h, func(x, y int) {
		nx := -p.SurfaceScale * ((height(x+1, y-1) + 2*height(x+1, y) + height(x+1, y+1)) -
			(height(x-1, y-1) + 2*height(x-1, y) + height(x-1, y+1))) / 4
		ny := -p.SurfaceScale * ((height(x-1, y+1) + 2*height(x, y+1) + height(x+1, y+1)) -
			(height(x-1, y-1) + 2*height(x, y-1) + height(x+1, y-1))) / 4
		nz := 1.0
		nlen := math.Sqrt(nx*nx + ny*ny + nz*nz)
		nx, ny, nz = nx/nlen, ny/nlen, nz/nlen

		lx, ly, lz := lightVector(p.Light, x, y, height(x, y)*p.SurfaceScale)

		if p.Specular {
			hx, hy, hz := lx, ly, lz+1
			hlen := math.Sqrt(hx*hx + hy*hy + hz*hz)
			hx, hy, hz = hx/hlen, hy/hlen, hz/hlen
			dot := nx*hx + ny*hy + nz*hz
			if dot < 0 {
				dot = 0
			}
			specular := p.SpecularConst * math.Pow(dot, p.SpecularExp)
			c := colorspace.Color{
				R: colorspace.Clamp01(specular * p.LightColor.R),
				G: colorspace.Clamp01(specular * p.LightColor.G),
				B: colorspace.Clamp01(specular * p.LightColor.B),
			}
			c.A = math.Max(c.R, math.Max(c.G, c.B))
			out.SetColor(x, y, c)
			return
		}

		dot := nx*lx + ny*ly + nz*lz
		if dot < 0 {
			dot = 0
		}
		diffuse := p.DiffuseConst * dot
		out.SetColor(x, y, colorspace.Color{
			R: colorspace.Clamp01(diffuse * p.LightColor.R),
			G: colorspace.Clamp01(diffuse * p.LightColor.G),
			B: colorspace.Clamp01(diffuse * p.LightColor.B),
			A: 1,
		})
	})
	return out
}

func lightVector(l tree.LightSource, x, y int, z float64) (lx, ly, lz float64) {
	switch l.Kind {
	case "point":
		lx, ly, lz = l.Location.X-float64(x), l.Location.Y-float64(y), l.Location.Z-z
	case "spot":
		lx, ly, lz = l.Location.X-float64(x), l.Location.Y-float64(y), l.Location.Z-z
	default: // distant
		az, el := l.Azimuth*math.Pi/180, l.Elevation*math.Pi/180
		lx = math.Cos(az) * math.Cos(el)
		ly = math.Sin(az) * math.Cos(el)
		lz = math.Sin(el)
		return
	}
	n := math.Sqrt(lx*lx + ly*ly + lz*lz)
	if n == 0 {
		return 0, 0, 1
	}
	return lx / n, ly / n, lz / n
}

// evalDropShadow implements feDropShadow as the fused composition the
// spec describes: Gaussian blur of SourceAlpha, offset, flood+In,
// merge with the original input on top.
func evalDropShadow(in *pixmap.Pixmap, p tree.DropShadowParams) *pixmap.Pixmap {
	if in == nil {
		return nil
	}
	alpha := in.ExtractAlpha()
	blurred := evalGaussianBlur(alpha, tree.GaussianBlurParams{StdDevX: p.StdDeviation, StdDevY: p.StdDeviation})
	offset := evalOffset(blurred, tree.OffsetParams{DX: p.DX, DY: p.DY})
	flood := evalFlood(rectOf(offset), tree.FloodParams{Color: p.FloodColor, Opacity: p.FloodOpacity})
	shadow := evalComposite([]*pixmap.Pixmap{flood, offset}, tree.CompositeParams{Operator: tree.CompositeIn})
	return evalMerge([]*pixmap.Pixmap{shadow, in})
}

func rectOf(p *pixmap.Pixmap) geom.Rect {
	return geom.Rect{W: float64(p.Width()), H: float64(p.Height())}
}
