// Package colorspace provides the unpremultiplied sRGB color type used
// at interface boundaries, premultiply/unpremultiply conversions, and
// the sRGB<->linearRGB transfer functions the filter pipeline needs
// for its per-primitive working color space (spec §4.6).
package colorspace

import "math"

// Color is an unpremultiplied sRGB color with components in [0,1].
// This is the interface-level color type named in spec §3 ("All
// colors are unpremultiplied 8-bit sRGB at the interface level").
type Color struct {
	R, G, B, A float64
}

// Transparent is fully transparent black.
var Transparent = Color{}

// Premultiply scales RGB by alpha.
func (c Color) Premultiply() Color {
	return Color{R: c.R * c.A, G: c.G * c.A, B: c.B * c.A, A: c.A}
}

// Unpremultiply divides RGB by alpha, returning transparent black for
// a zero-alpha input.
func (c Color) Unpremultiply() Color {
	if c.A <= 0 {
		return Color{}
	}
	return Color{R: c.R / c.A, G: c.G / c.A, B: c.B / c.A, A: c.A}
}

// Lerp linearly interpolates between c and other at t in [0,1],
// operating directly on the stored (sRGB, non-linear) components.
// Gradient stop interpolation additionally linearizes first; see
// paintserver.ColorAtOffset.
func (c Color) Lerp(other Color, t float64) Color {
	return Color{
		R: c.R + (other.R-c.R)*t,
		G: c.G + (other.G-c.G)*t,
		B: c.B + (other.B-c.B)*t,
		A: c.A + (other.A-c.A)*t,
	}
}

// SRGBToLinear converts a single sRGB component to linear light.
func SRGBToLinear(s float64) float64 {
	if s <= 0.04045 {
		return s / 12.92
	}
	return math.Pow((s+0.055)/1.055, 2.4)
}

// LinearToSRGB converts a single linear-light component to sRGB.
func LinearToSRGB(l float64) float64 {
	if l <= 0.0031308 {
		return l * 12.92
	}
	return 1.055*math.Pow(l, 1.0/2.4) - 0.055
}

// ToLinear converts a color's RGB channels to linear light; alpha is
// never gamma-encoded and passes through unchanged.
func (c Color) ToLinear() Color {
	return Color{R: SRGBToLinear(c.R), G: SRGBToLinear(c.G), B: SRGBToLinear(c.B), A: c.A}
}

// ToSRGB converts a color's RGB channels from linear light back to sRGB.
func (c Color) ToSRGB() Color {
	return Color{R: LinearToSRGB(c.R), G: LinearToSRGB(c.G), B: LinearToSRGB(c.B), A: c.A}
}

// Clamp01 clamps a single component to [0,1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Luma returns the SVG luminance-mask weighting 0.2125*R+0.7154*G+0.0721*B
// (spec §3 Mask entity), applied to unpremultiplied components.
func (c Color) Luma() float64 {
	return 0.2125*c.R + 0.7154*c.G + 0.0721*c.B
}
