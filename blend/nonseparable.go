package blend

import "math"

// The non-separable modes (Hue, Saturation, Color, Luminosity) mix
// whole colors rather than per-channel values, following the
// Lum/Sat/ClipColor/SetLum/SetSat construction from the W3C
// Compositing and Blending spec. Grounded on gogpu-gg's
// internal/blend/hsl.go.

type rgbF struct{ r, g, b float64 }

func lumF(c rgbF) float64 {
	return 0.3*c.r + 0.59*c.g + 0.11*c.b
}

func satF(c rgbF) float64 {
	return maxF(c.r, maxF(c.g, c.b)) - minF(c.r, minF(c.g, c.b))
}

func clipColorF(c rgbF) rgbF {
	l := lumF(c)
	n := minF(c.r, minF(c.g, c.b))
	x := maxF(c.r, maxF(c.g, c.b))
	if n < 0 {
		c.r = l + (c.r-l)*l/(l-n)
		c.g = l + (c.g-l)*l/(l-n)
		c.b = l + (c.b-l)*l/(l-n)
	}
	if x > 1 {
		c.r = l + (c.r-l)*(1-l)/(x-l)
		c.g = l + (c.g-l)*(1-l)/(x-l)
		c.b = l + (c.b-l)*(1-l)/(x-l)
	}
	return c
}

func setLumF(c rgbF, l float64) rgbF {
	d := l - lumF(c)
	c.r += d
	c.g += d
	c.b += d
	return clipColorF(c)
}

func setSatF(c rgbF, s float64) rgbF {
	lo, mid, hi := sortChannels(&c)
	if *hi > *lo {
		*mid = (*mid - *lo) * s / (*hi - *lo)
		*hi = s
	} else {
		*mid, *hi = 0, 0
	}
	*lo = 0
	return c
}

// sortChannels returns pointers to c's three channels ordered
// min, mid, max so setSatF can rewrite them in place.
func sortChannels(c *rgbF) (lo, mid, hi *float64) {
	ptrs := [3]*float64{&c.r, &c.g, &c.b}
	if *ptrs[0] > *ptrs[1] {
		ptrs[0], ptrs[1] = ptrs[1], ptrs[0]
	}
	if *ptrs[1] > *ptrs[2] {
		ptrs[1], ptrs[2] = ptrs[2], ptrs[1]
	}
	if *ptrs[0] > *ptrs[1] {
		ptrs[0], ptrs[1] = ptrs[1], ptrs[0]
	}
	return ptrs[0], ptrs[1], ptrs[2]
}

func nonSeparableBlend(fn func(cs, cb rgbF) rgbF, sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	if sa == 0 {
		return dr, dg, db, da
	}
	fsa := float64(sa) / 255
	fda := float64(da) / 255

	cs := rgbF{unpremulF(sr, sa), unpremulF(sg, sa), unpremulF(sb, sa)}
	cb := rgbF{unpremulF(dr, da), unpremulF(dg, da), unpremulF(db, da)}
	blended := fn(cs, cb)

	ra := fsa + fda*(1-fsa)
	if ra <= 0 {
		return 0, 0, 0, 0
	}

	outR := clampF(((1-fda)*fsa*cs.r + fda*fsa*blended.r + (1-fsa)*fda*cb.r) / ra)
	outG := clampF(((1-fda)*fsa*cs.g + fda*fsa*blended.g + (1-fsa)*fda*cb.g) / ra)
	outB := clampF(((1-fda)*fsa*cs.b + fda*fsa*blended.b + (1-fsa)*fda*cb.b) / ra)

	return premulF(outR, ra), premulF(outG, ra), premulF(outB, ra), byte(math.Round(ra * 255))
}

func blendHue(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return nonSeparableBlend(func(cs, cb rgbF) rgbF {
		return setLumF(setSatF(cs, satF(cb)), lumF(cb))
	}, sr, sg, sb, sa, dr, dg, db, da)
}

func blendSaturation(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return nonSeparableBlend(func(cs, cb rgbF) rgbF {
		return setLumF(setSatF(cb, satF(cs)), lumF(cb))
	}, sr, sg, sb, sa, dr, dg, db, da)
}

func blendColor(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return nonSeparableBlend(func(cs, cb rgbF) rgbF {
		return setLumF(cs, lumF(cb))
	}, sr, sg, sb, sa, dr, dg, db, da)
}

func blendLuminosity(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return nonSeparableBlend(func(cs, cb rgbF) rgbF {
		return setLumF(cb, lumF(cs))
	}, sr, sg, sb, sa, dr, dg, db, da)
}
