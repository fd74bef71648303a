package filter

import (
	"math"

	"github.com/anthonynsimon/bild/blur"

	gg "github.com/gogpu/svgraster"
	"github.com/gogpu/svgraster/blend"
	"github.com/gogpu/svgraster/colorspace"
	"github.com/gogpu/svgraster/geom"
	"github.com/gogpu/svgraster/pixmap"
	"github.com/gogpu/svgraster/tree"
)

// evalPrimitive dispatches a single filter primitive against its
// already color-space-converted inputs, producing a pixmap sized to
// the filter region (spec §4.6 step 3).
func evalPrimitive(prim tree.Primitive, in []*pixmap.Pixmap, region geom.Rect) *pixmap.Pixmap {
	switch prim.Kind {
	case tree.PrimBlend:
		return evalBlend(in, prim.Params.Blend)
	case tree.PrimColorMatrix:
		return evalColorMatrix(first(in), prim.Params.Matrix)
	case tree.PrimComponentTransfer:
		return evalComponentTransfer(first(in), prim.Params.Transfer)
	case tree.PrimComposite:
		return evalComposite(in, prim.Params.Composite)
	case tree.PrimConvolveMatrix:
		return evalConvolveMatrix(first(in), prim.Params.Convolve)
	case tree.PrimMorphology:
		return evalMorphology(first(in), prim.Params.Morph)
	case tree.PrimGaussianBlur:
		return evalGaussianBlur(first(in), prim.Params.Blur)
	case tree.PrimOffset:
		return evalOffset(first(in), prim.Params.Offset)
	case tree.PrimFlood:
		return evalFlood(region, prim.Params.Flood)
	case tree.PrimTile:
		return evalTile(first(in), region)
	case tree.PrimMerge:
		return evalMerge(in)
	case tree.PrimDisplacementMap:
		return evalDisplacementMap(in, prim.Params.Displace)
	case tree.PrimTurbulence:
		return evalTurbulence(region, prim.Params.Turbulence)
	case tree.PrimDiffuseLighting, tree.PrimSpecularLighting:
		return evalLighting(first(in), prim.Params.Lighting)
	case tree.PrimDropShadow:
		return evalDropShadow(first(in), prim.Params.DropShadow)
	case tree.PrimImage:
		return evalImage(prim.Params.Image, region)
	default:
		return nil
	}
}

func first(in []*pixmap.Pixmap) *pixmap.Pixmap {
	if len(in) == 0 {
		return nil
	}
	return in[0]
}

func second(in []*pixmap.Pixmap) *pixmap.Pixmap {
	if len(in) < 2 {
		return first(in)
	}
	return in[1]
}

func forEachPixel(w, h int, fn func(x, y int)) {
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			fn(x, y)
		}
	}
}

// evalBlend implements feBlend: combine two inputs with mode.
func evalBlend(in []*pixmap.Pixmap, p tree.BlendParams) *pixmap.Pixmap {
	a, b := first(in), second(in)
	if a == nil {
		return nil
	}
	out := pixmap.New(a.Width(), a.Height())
	mode := blend.ModeFromName(p.Mode)
	fn := blend.Get(mode)
	forEachPixel(a.Width(), a.Height(), func(x, y int) {
		sr, sg, sb, sa := a.PremultipliedAt(x, y)
		var dr, dg, db, da uint8
		if b != nil {
			dr, dg, db, da = b.PremultipliedAt(x, y)
		}
		r, g, bl, al := fn(sr, sg, sb, sa, dr, dg, db, da)
		out.SetPremultiplied(x, y, r, g, bl, al)
	})
	return out
}

// evalColorMatrix implements feColorMatrix: operates on demultiplied
// channels then re-multiplies (spec §4.6).
func evalColorMatrix(in *pixmap.Pixmap, p tree.ColorMatrixParams) *pixmap.Pixmap {
	if in == nil {
		return nil
	}
	out := pixmap.New(in.Width(), in.Height())
	m := matrixValues(p)
	forEachPixel(in.Width(), in.Height(), func(x, y int) {
		c := in.ColorAt(x, y)
		r := m[0]*c.R + m[1]*c.G + m[2]*c.B + m[3]*c.A + m[4]
		g := m[5]*c.R + m[6]*c.G + m[7]*c.B + m[8]*c.A + m[9]
		b := m[10]*c.R + m[11]*c.G + m[12]*c.B + m[13]*c.A + m[14]
		a := m[15]*c.R + m[16]*c.G + m[17]*c.B + m[18]*c.A + m[19]
		out.SetColor(x, y, clampColor(colorspace.Color{R: r, G: g, B: b, A: a}))
	})
	return out
}

func matrixValues(p tree.ColorMatrixParams) [20]float64 {
	switch p.Type {
	case tree.MatrixSaturate:
		s := 1.0
		if len(p.Values) > 0 {
			s = p.Values[0]
		}
		return [20]float64{
			0.213 + 0.787*s, 0.715 - 0.715*s, 0.072 - 0.072*s, 0, 0,
			0.213 - 0.213*s, 0.715 + 0.285*s, 0.072 - 0.072*s, 0, 0,
			0.213 - 0.213*s, 0.715 - 0.715*s, 0.072 + 0.928*s, 0, 0,
			0, 0, 0, 1, 0,
		}
	case tree.MatrixHueRotate:
		a := 0.0
		if len(p.Values) > 0 {
			a = p.Values[0] * math.Pi / 180
		}
		c, s := math.Cos(a), math.Sin(a)
		return [20]float64{
			0.213 + c*0.787 - s*0.213, 0.715 - c*0.715 - s*0.715, 0.072 - c*0.072 + s*0.928, 0, 0,
			0.213 - c*0.213 + s*0.143, 0.715 + c*0.285 + s*0.140, 0.072 - c*0.072 - s*0.283, 0, 0,
			0.213 - c*0.213 - s*0.787, 0.715 - c*0.715 + s*0.715, 0.072 + c*0.928 + s*0.072, 0, 0,
			0, 0, 0, 1, 0,
		}
	case tree.MatrixLuminanceToAlpha:
		return [20]float64{
			0, 0, 0, 0, 0,
			0, 0, 0, 0, 0,
			0, 0, 0, 0, 0,
			0.2125, 0.7154, 0.0721, 0, 0,
		}
	default:
		var m [20]float64
		if len(p.Values) == 20 {
			copy(m[:], p.Values)
		} else {
			m = [20]float64{1, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 1, 0, 0, 0, 0, 0, 1, 0}
		}
		return m
	}
}

// evalComponentTransfer implements feComponentTransfer.
func evalComponentTransfer(in *pixmap.Pixmap, p tree.ComponentTransferParams) *pixmap.Pixmap {
	if in == nil {
		return nil
	}
	out := pixmap.New(in.Width(), in.Height())
	forEachPixel(in.Width(), in.Height(), func(x, y int) {
		c := in.ColorAt(x, y)
		out.SetColor(x, y, clampColor(colorspace.Color{
			R: applyTransfer(p.R, c.R), G: applyTransfer(p.G, c.G),
			B: applyTransfer(p.B, c.B), A: applyTransfer(p.A, c.A),
		}))
	})
	return out
}

func applyTransfer(f tree.TransferFunc, v float64) float64 {
	switch f.Type {
	case "table":
		n := len(f.TableValues)
		if n == 0 {
			return v
		}
		if n == 1 {
			return f.TableValues[0]
		}
		k := int(v * float64(n-1))
		if k >= n-1 {
			return f.TableValues[n-1]
		}
		frac := v*float64(n-1) - float64(k)
		return f.TableValues[k] + frac*(f.TableValues[k+1]-f.TableValues[k])
	case "discrete":
		n := len(f.TableValues)
		if n == 0 {
			return v
		}
		k := int(v * float64(n))
		if k >= n {
			k = n - 1
		}
		return f.TableValues[k]
	case "linear":
		return f.Slope*v + f.Intercept
	case "gamma":
		return f.Amplitude*math.Pow(v, f.Exponent) + f.Offset
	default:
		return v
	}
}

// evalComposite implements feComposite: Porter-Duff or arithmetic.
func evalComposite(in []*pixmap.Pixmap, p tree.CompositeParams) *pixmap.Pixmap {
	a, b := first(in), second(in)
	if a == nil {
		return nil
	}
	out := pixmap.New(a.Width(), a.Height())
	if p.Operator == tree.CompositeArithmetic {
		forEachPixel(a.Width(), a.Height(), func(x, y int) {
			c1 := a.ColorAt(x, y).Premultiply()
			var c2 colorspace.Color
			if b != nil {
				c2 = b.ColorAt(x, y).Premultiply()
			}
			r := p.K1*c1.R*c2.R + p.K2*c1.R + p.K3*c2.R + p.K4
			g := p.K1*c1.G*c2.G + p.K2*c1.G + p.K3*c2.G + p.K4
			bl := p.K1*c1.B*c2.B + p.K2*c1.B + p.K3*c2.B + p.K4
			al := p.K1*c1.A*c2.A + p.K2*c1.A + p.K3*c2.A + p.K4
			out.SetPremultiplied(x, y, toByte(r), toByte(g), toByte(bl), toByte(al))
		})
		return out
	}
	mode := map[tree.CompositeOperator]blend.Mode{
		tree.CompositeOver: blend.SourceOver, tree.CompositeIn: blend.SourceIn,
		tree.CompositeOut: blend.SourceOut, tree.CompositeAtop: blend.SourceAtop,
		tree.CompositeXor: blend.Xor,
	}[p.Operator]
	fn := blend.Get(mode)
	forEachPixel(a.Width(), a.Height(), func(x, y int) {
		sr, sg, sb, sa := a.PremultipliedAt(x, y)
		var dr, dg, db, da uint8
		if b != nil {
			dr, dg, db, da = b.PremultipliedAt(x, y)
		}
		r, g, bl, al := fn(sr, sg, sb, sa, dr, dg, db, da)
		out.SetPremultiplied(x, y, r, g, bl, al)
	})
	return out
}

func toByte(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

// evalConvolveMatrix implements feConvolveMatrix via bild's separable
// convolution primitive is not isotropic-aware so, unlike Gaussian
// blur, this hand-rolls the neighborhood sum directly: bild's
// convolution.Convolve operates on image.Image generically but this
// module needs per-channel premultiplied-or-demultiplied control
// (preserveAlpha) that a generic image convolution does not expose.
func evalConvolveMatrix(in *pixmap.Pixmap, p tree.ConvolveMatrixParams) *pixmap.Pixmap {
	if in == nil || p.OrderX <= 0 || p.OrderY <= 0 || len(p.Kernel) != p.OrderX*p.OrderY {
		return nil
	}
	divisor := p.Divisor
	if divisor == 0 {
		sum := 0.0
		for _, v := range p.Kernel {
			sum += v
		}
		if sum == 0 {
			divisor = 1
			var d gg.Diagnostics
			d.Add(&gg.RenderWarning{PrimitiveName: "feConvolveMatrix", Reason: "kernel sums to zero, divisor defaulted to 1"})
		} else {
			divisor = sum
		}
	}
	w, h := in.Width(), in.Height()
	out := pixmap.New(w, h)
	tx, ty := p.TargetX, p.TargetY
	forEachPixel(w, h, func(x, y int) {
		var accR, accG, accB, accA float64
		for ky := 0; ky < p.OrderY; ky++ {
			for kx := 0; kx < p.OrderX; kx++ {
				sx := x - tx + (p.OrderX - 1 - kx)
				sy := y - ty + (p.OrderY - 1 - ky)
				sx, sy, ok := sampleEdge(sx, sy, w, h, p.EdgeMode)
				if !ok {
					continue
				}
				c := in.ColorAt(sx, sy)
				k := p.Kernel[ky*p.OrderX+kx]
				accR += c.R * k
				accG += c.G * k
				accB += c.B * k
				accA += c.A * k
			}
		}
		r := accR/divisor + p.Bias
		g := accG/divisor + p.Bias
		b := accB/divisor + p.Bias
		a := accA/divisor + p.Bias
		if p.PreserveAlpha {
			a = in.ColorAt(x, y).A
		}
		out.SetColor(x, y, clampColor(colorspace.Color{R: r, G: g, B: b, A: a}))
	})
	return out
}

func sampleEdge(x, y, w, h int, mode string) (int, int, bool) {
	switch mode {
	case "wrap":
		return ((x % w) + w) % w, ((y % h) + h) % h, true
	case "none":
		if x < 0 || x >= w || y < 0 || y >= h {
			return 0, 0, false
		}
		return x, y, true
	default: // duplicate
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
		return x, y, true
	}
}

// evalMorphology implements feMorphology: per-channel min (erode) or
// max (dilate) over a (2rx+1)x(2ry+1) neighborhood. bild has no
// erode/dilate primitive, so this is hand-rolled directly against
// premultiplied samples (DESIGN.md records the justification).
func evalMorphology(in *pixmap.Pixmap, p tree.MorphologyParams) *pixmap.Pixmap {
	if in == nil {
		return nil
	}
	rx, ry := p.RadiusX, p.RadiusY
	if rx == 0 && ry == 0 {
		return in
	}
	// Matches widely-deployed browser behavior per spec §9 open question.
	if rx == 0 || ry == 0 {
		var d gg.Diagnostics
		d.Add(&gg.RenderWarning{PrimitiveName: "feMorphology", Reason: "zero radius on one axis substituted with 1"})
	}
	if rx == 0 {
		rx = 1
	}
	if ry == 0 {
		ry = 1
	}
	irx, iry := int(rx), int(ry)
	w, h := in.Width(), in.Height()
	out := pixmap.New(w, h)
	forEachPixel(w, h, func(x, y int) {
		var r, g, b, a uint8
		if p.Dilate {
			r, g, b, a = 0, 0, 0, 0
		} else {
			r, g, b, a = 255, 255, 255, 255
		}
		for dy := -iry; dy <= iry; dy++ {
			for dx := -irx; dx <= irx; dx++ {
				sx, sy := x+dx, y+dy
				if sx < 0 || sx >= w || sy < 0 || sy >= h {
					continue
				}
				cr, cg, cb, ca := in.PremultipliedAt(sx, sy)
				if p.Dilate {
					r, g, b, a = maxB(r, cr), maxB(g, cg), maxB(b, cb), maxB(a, ca)
				} else {
					r, g, b, a = minB(r, cr), minB(g, cg), minB(b, cb), minB(a, ca)
				}
			}
		}
		out.SetPremultiplied(x, y, r, g, b, a)
	})
	return out
}

func maxB(a, b uint8) uint8 {
	if a > b {
		return a
	}
	return b
}

func minB(a, b uint8) uint8 {
	if a < b {
		return a
	}
	return b
}

// evalGaussianBlur implements feGaussianBlur. bild/blur.Gaussian is
// isotropic (one radius), so when sigmaX equals sigmaY it is used
// directly for every sigma. When they differ, one hand-rolled box-blur
// pass (boxBlurPass) runs per axis. Neither path is a three-pass box
// approximation, and there is no separate IIR path for small sigma.
func evalGaussianBlur(in *pixmap.Pixmap, p tree.GaussianBlurParams) *pixmap.Pixmap {
	if in == nil {
		return nil
	}
	if p.StdDevX == p.StdDevY {
		if p.StdDevX <= 0 {
			return in
		}
		img := blur.Gaussian(in.ToImage(), p.StdDevX)
		return pixmap.FromImage(img)
	}
	out := in
	if p.StdDevX > 0 {
		out = boxBlurPass(out, p.StdDevX, true)
	}
	if p.StdDevY > 0 {
		out = boxBlurPass(out, p.StdDevY, false)
	}
	return out
}

func boxBlurPass(in *pixmap.Pixmap, sigma float64, horizontal bool) *pixmap.Pixmap {
	radius := int(sigma*1.88 + 0.5)
	if radius < 1 {
		radius = 1
	}
	w, h := in.Width(), in.Height()
	out := pixmap.New(w, h)
	forEachPixel(w, h, func(x, y int) {
		var accR, accG, accB, accA float64
		count := 0
		for d := -radius; d <= radius; d++ {
			sx, sy := x, y
			if horizontal {
				sx += d
			} else {
				sy += d
			}
			if sx < 0 || sx >= w || sy < 0 || sy >= h {
				continue
			}
			r, g, b, a := in.PremultipliedAt(sx, sy)
			accR += float64(r)
			accG += float64(g)
			accB += float64(b)
			accA += float64(a)
			count++
		}
		if count == 0 {
			count = 1
		}
		out.SetPremultiplied(x, y, uint8(accR/float64(count)), uint8(accG/float64(count)), uint8(accB/float64(count)), uint8(accA/float64(count)))
	})
	return out
}

// evalOffset implements feOffset: translate, not clipped to the
// filter region (spec §4.6 step 4 exempts it explicitly).
func evalOffset(in *pixmap.Pixmap, p tree.OffsetParams) *pixmap.Pixmap {
	if in == nil {
		return nil
	}
	w, h := in.Width(), in.Height()
	out := pixmap.New(w, h)
	dx, dy := int(p.DX), int(p.DY)
	forEachPixel(w, h, func(x, y int) {
		sx, sy := x-dx, y-dy
		if sx < 0 || sx >= w || sy < 0 || sy >= h {
			return
		}
		r, g, b, a := in.PremultipliedAt(sx, sy)
		out.SetPremultiplied(x, y, r, g, b, a)
	})
	return out
}

// evalFlood implements feFlood: fill the sub-region with a constant color.
func evalFlood(region geom.Rect, p tree.FloodParams) *pixmap.Pixmap {
	w, h := int(region.W+0.5), int(region.H+0.5)
	out := pixmap.New(w, h)
	c := p.Color
	c.A *= p.Opacity
	out.Fill(clampColor(c))
	return out
}

// evalTile implements feTile: repeat the input's content across the
// sub-region in both axes.
func evalTile(in *pixmap.Pixmap, region geom.Rect) *pixmap.Pixmap {
	if in == nil || in.Width() == 0 || in.Height() == 0 {
		return nil
	}
	w, h := int(region.W+0.5), int(region.H+0.5)
	out := pixmap.New(w, h)
	tw, th := in.Width(), in.Height()
	forEachPixel(w, h, func(x, y int) {
		r, g, b, a := in.PremultipliedAt(((x%tw)+tw)%tw, ((y%th)+th)%th)
		out.SetPremultiplied(x, y, r, g, b, a)
	})
	return out
}

// evalMerge implements feMerge: paint each input in order Source-Over.
func evalMerge(in []*pixmap.Pixmap) *pixmap.Pixmap {
	if len(in) == 0 {
		return nil
	}
	out := in[0].Clone()
	for _, p := range in[1:] {
		out.Blit(p, 0, 0, blend.Normal, 1)
	}
	return out
}

// evalDisplacementMap implements feDisplacementMap.
func evalDisplacementMap(in []*pixmap.Pixmap, p tree.DisplacementMapParams) *pixmap.Pixmap {
	a, b := first(in), second(in)
	if a == nil || b == nil {
		return a
	}
	w, h := a.Width(), a.Height()
	out := pixmap.New(w, h)
	forEachPixel(w, h, func(x, y int) {
		dc := b.ColorAt(x, y)
		dx := p.Scale * (channelValue(dc, p.XChannel) - 0.5)
		dy := p.Scale * (channelValue(dc, p.YChannel) - 0.5)
		sx, sy := int(float64(x)+dx+0.5), int(float64(y)+dy+0.5)
		if sx < 0 || sx >= w || sy < 0 || sy >= h {
			return
		}
		r, g, bl, al := a.PremultipliedAt(sx, sy)
		out.SetPremultiplied(x, y, r, g, bl, al)
	})
	return out
}

func channelValue(c colorspace.Color, ch string) float64 {
	switch ch {
	case "R":
		return c.R
	case "G":
		return c.G
	case "B":
		return c.B
	default:
		return c.A
	}
}

// evalImage evaluates feImage as a transparent flood of the region in
// every case. The referenced node in p.Node is not rendered, and no
// raster image source is read.
func evalImage(p tree.ImageParams, region geom.Rect) *pixmap.Pixmap {
	return transparentFlood(region.W, region.H)
}
