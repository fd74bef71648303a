package filter

import (
	gg "github.com/gogpu/svgraster"
	"github.com/gogpu/svgraster/blend"
	"github.com/gogpu/svgraster/colorspace"
	"github.com/gogpu/svgraster/geom"
	"github.com/gogpu/svgraster/pixmap"
	"github.com/gogpu/svgraster/tree"
)

// Apply evaluates f's primitive pipeline against source (the group's
// already-rendered content, canvas-sized) and returns a new pixmap of
// the same size with the filter's output composited over source at
// the filter region's origin (spec §4.6): "replacing the source
// region contents entirely", everything outside the region passes
// through unchanged.
func Apply(f *tree.Filter, objectBBox geom.Rect, absTransform geom.Transform, source *pixmap.Pixmap) *pixmap.Pixmap {
	w, h := source.Width(), source.Height()
	if f == nil || len(f.Primitives) == 0 {
		return source
	}

	region := resolveRegion(f.Region, f.Units, objectBBox, absTransform)
	region = clampRegionToCanvas(region, w, h)
	if region.IsEmpty() {
		// I5 / spec §4.6: an empty filter region skips the filter.
		return source
	}

	sourceGraphic := cropTo(source, region)
	sourceAlpha := sourceGraphic.ExtractAlpha()

	results := map[string]*pixmap.Pixmap{
		string(tree.SourceGraphic): sourceGraphic,
		string(tree.SourceAlpha):   sourceAlpha,
	}
	var lastResult *pixmap.Pixmap

	for _, prim := range f.Primitives {
		primRegion := prim.Region
		if primRegion.IsEmpty() {
			primRegion = region
		} else {
			primRegion = resolveRegion(primRegion, f.PrimUnits, objectBBox, absTransform)
			primRegion = clampRegionToCanvas(primRegion, w, h)
		}

		inputs := make([]*pixmap.Pixmap, len(prim.Inputs))
		if len(prim.Inputs) == 0 {
			inputs = []*pixmap.Pixmap{resolveFallback(lastResult, sourceGraphic)}
		}
		for i, name := range prim.Inputs {
			inputs[i] = resolveInput(name, results, lastResult, sourceGraphic)
		}
		for i, in := range inputs {
			inputs[i] = toColorSpace(in, prim.ColorSpace)
		}

		out := evalPrimitive(prim, inputs, region)
		if out == nil {
			out = transparentFlood(region.W, region.H)
		}
		out = fromColorSpace(out, prim.ColorSpace)

		if prim.Kind != tree.PrimOffset && primRegion != region {
			out = clipOutput(out, region, primRegion)
		}

		if prim.Result != "" {
			results[prim.Result] = out
		}
		lastResult = out
	}

	if lastResult == nil {
		return source
	}
	return compositeBack(source, lastResult, region)
}

func resolveFallback(last, sourceGraphic *pixmap.Pixmap) *pixmap.Pixmap {
	if last != nil {
		return last
	}
	return sourceGraphic
}

// resolveInput implements spec §4.6 step 1's reference fallback: an
// unknown name falls back to the immediately previous result, or
// SourceGraphic if there is none yet.
func resolveInput(name tree.PrimitiveInput, results map[string]*pixmap.Pixmap, last, sourceGraphic *pixmap.Pixmap) *pixmap.Pixmap {
	switch name {
	case tree.BackgroundImage, "BackgroundAlpha", tree.FillPaint, tree.StrokePaint:
		// Legacy inputs (spec §9 open question): substitute
		// SourceGraphic with a warning rather than track a backdrop.
		var d gg.Diagnostics
		d.Add(&gg.RenderWarning{PrimitiveName: string(name), Reason: "legacy filter input substituted with SourceGraphic"})
		return sourceGraphic
	}
	if p, ok := results[string(name)]; ok {
		return p
	}
	return resolveFallback(last, sourceGraphic)
}

func cropTo(src *pixmap.Pixmap, region geom.Rect) *pixmap.Pixmap {
	x0, y0, x1, y1 := deviceRect(region)
	out := pixmap.New(x1-x0, y1-y0)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			r, g, b, a := src.PremultipliedAt(x, y)
			out.SetPremultiplied(x-x0, y-y0, r, g, b, a)
		}
	}
	return out
}

func clipOutput(out *pixmap.Pixmap, filterRegion, primRegion geom.Rect) *pixmap.Pixmap {
	fx0, fy0, _, _ := deviceRect(filterRegion)
	px0, py0, px1, py1 := deviceRect(primRegion)
	clipped := pixmap.New(out.Width(), out.Height())
	for y := 0; y < out.Height(); y++ {
		for x := 0; x < out.Width(); x++ {
			dx, dy := x+fx0, y+fy0
			if dx < px0 || dx >= px1 || dy < py0 || dy >= py1 {
				continue
			}
			r, g, b, a := out.PremultipliedAt(x, y)
			clipped.SetPremultiplied(x, y, r, g, b, a)
		}
	}
	return clipped
}

func compositeBack(source, result *pixmap.Pixmap, region geom.Rect) *pixmap.Pixmap {
	out := source.Clone()
	x0, y0, x1, y1 := deviceRect(region)
	// Replace the region's contents entirely before compositing
	// Source-Over, per spec §4.6: "replacing the source region
	// contents entirely".
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			out.SetPremultiplied(x, y, 0, 0, 0, 0)
		}
	}
	out.Blit(result, x0, y0, blend.Normal, 1)
	return out
}

func transparentFlood(w, h float64) *pixmap.Pixmap {
	return pixmap.New(int(w+0.5), int(h+0.5))
}

func toColorSpace(p *pixmap.Pixmap, cs tree.ColorSpace) *pixmap.Pixmap {
	if cs != tree.ColorSpaceLinearRGB {
		return p
	}
	out := pixmap.New(p.Width(), p.Height())
	for y := 0; y < p.Height(); y++ {
		for x := 0; x < p.Width(); x++ {
			out.SetColor(x, y, p.ColorAt(x, y).ToLinear())
		}
	}
	return out
}

func fromColorSpace(p *pixmap.Pixmap, cs tree.ColorSpace) *pixmap.Pixmap {
	if cs != tree.ColorSpaceLinearRGB {
		return p
	}
	out := pixmap.New(p.Width(), p.Height())
	for y := 0; y < p.Height(); y++ {
		for x := 0; x < p.Width(); x++ {
			out.SetColor(x, y, p.ColorAt(x, y).ToSRGB())
		}
	}
	return out
}

func clampColor(c colorspace.Color) colorspace.Color {
	return colorspace.Color{
		R: colorspace.Clamp01(c.R), G: colorspace.Clamp01(c.G),
		B: colorspace.Clamp01(c.B), A: colorspace.Clamp01(c.A),
	}
}
