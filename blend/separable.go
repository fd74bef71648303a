package blend

import "math"

// The separable blend modes combine premultiplied source and
// destination channels with the standard Porter-Duff source-over
// alpha handling, substituting the W3C blend formula for the simple
// "source" term. Formulas operate on un-premultiplied channel values
// in [0,1] and re-premultiply on the way out, matching
// gogpu-gg's internal/blend/advanced.go.

func separableBlend(blendFn func(cs, cb float64) float64, sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	if sa == 0 {
		return dr, dg, db, da
	}

	fsa := float64(sa) / 255
	fda := float64(da) / 255

	// Un-premultiply to get plain color channels in [0,1].
	csr, csg, csb := unpremulF(sr, sa), unpremulF(sg, sa), unpremulF(sb, sa)
	cbr, cbg, cbb := unpremulF(dr, da), unpremulF(dg, da), unpremulF(db, da)

	br := blendFn(csr, cbr)
	bg := blendFn(csg, cbg)
	bb := blendFn(csb, cbb)

	// Composite per the W3C formula:
	// Co = (1 - ab/as) * Cs + ab/as * ((1-as) * Cb + as * B(Cb, Cs))
	// simplifies, when expressed in terms of the result alpha, to the
	// standard source-over mix of (blended color) and destination.
	ra := fsa + fda*(1-fsa)
	if ra <= 0 {
		return 0, 0, 0, 0
	}

	mix := func(cb, cs, b float64) float64 {
		return (1-fda)*fsa*cs + fda*fsa*b + (1-fsa)*fda*cb
	}

	outR := clampF(mix(cbr, csr, br) / ra)
	outG := clampF(mix(cbg, csg, bg) / ra)
	outB := clampF(mix(cbb, csb, bb) / ra)

	return premulF(outR, ra), premulF(outG, ra), premulF(outB, ra), byte(clampF(ra)*255 + 0.5)
}

func unpremulF(c, a byte) float64 {
	if a == 0 {
		return 0
	}
	return float64(c) / float64(a)
}

func premulF(c, a float64) byte {
	v := c * a * 255
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v + 0.5)
}

func clampF(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func blendMultiply(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separableBlend(func(cs, cb float64) float64 { return cs * cb }, sr, sg, sb, sa, dr, dg, db, da)
}

func blendScreen(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separableBlend(func(cs, cb float64) float64 { return cs + cb - cs*cb }, sr, sg, sb, sa, dr, dg, db, da)
}

func blendOverlay(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separableBlend(func(cs, cb float64) float64 { return hardLightF(cs, cb) }, sr, sg, sb, sa, dr, dg, db, da)
}

func blendDarken(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separableBlend(func(cs, cb float64) float64 { return minF(cs, cb) }, sr, sg, sb, sa, dr, dg, db, da)
}

func blendLighten(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separableBlend(func(cs, cb float64) float64 { return maxF(cs, cb) }, sr, sg, sb, sa, dr, dg, db, da)
}

func blendColorDodge(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separableBlend(colorDodgeF, sr, sg, sb, sa, dr, dg, db, da)
}

func colorDodgeF(cs, cb float64) float64 {
	if cb == 0 {
		return 0
	}
	if cs == 1 {
		return 1
	}
	return minF(1, cb/(1-cs))
}

func blendColorBurn(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separableBlend(colorBurnF, sr, sg, sb, sa, dr, dg, db, da)
}

func colorBurnF(cs, cb float64) float64 {
	if cb == 1 {
		return 1
	}
	if cs == 0 {
		return 0
	}
	return 1 - minF(1, (1-cb)/cs)
}

func blendHardLight(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separableBlend(func(cs, cb float64) float64 { return hardLightF(cb, cs) }, sr, sg, sb, sa, dr, dg, db, da)
}

func hardLightF(cb, cs float64) float64 {
	if cs <= 0.5 {
		return 2 * cs * cb
	}
	return 1 - 2*(1-cs)*(1-cb)
}

func blendSoftLight(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separableBlend(softLightF, sr, sg, sb, sa, dr, dg, db, da)
}

func softLightF(cs, cb float64) float64 {
	if cs <= 0.5 {
		return cb - (1-2*cs)*cb*(1-cb)
	}
	var d float64
	if cb <= 0.25 {
		d = ((16*cb-12)*cb + 4) * cb
	} else {
		d = math.Sqrt(cb)
	}
	return cb + (2*cs-1)*(d-cb)
}

func blendDifference(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separableBlend(func(cs, cb float64) float64 { return absF(cb - cs) }, sr, sg, sb, sa, dr, dg, db, da)
}

func blendExclusion(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return separableBlend(func(cs, cb float64) float64 { return cs + cb - 2*cs*cb }, sr, sg, sb, sa, dr, dg, db, da)
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func absF(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
