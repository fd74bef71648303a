// Package blend implements Porter-Duff compositing and the CSS/SVG
// blend modes used by isolated groups and the feBlend filter
// primitive. All operations work on premultiplied 8-bit channels,
// matching the pixmap's wire format.
//
// Grounded on gogpu-gg's internal/blend package; the Porter-Duff table
// and separable/non-separable formulas are carried over near verbatim
// since they implement the same W3C Compositing and Blending spec
// this module's Group.BlendMode needs.
package blend

// Mode identifies a compositing operator. The Porter-Duff operators
// (Clear..Xor) are used internally by the clip engine; SVG groups use
// Normal plus the separable and non-separable modes.
type Mode uint8

const (
	Clear Mode = iota
	Source
	Destination
	SourceOver // Normal
	DestinationOver
	SourceIn
	DestinationIn
	SourceOut
	DestinationOut
	SourceAtop
	DestinationAtop
	Xor

	Multiply
	Screen
	Overlay
	Darken
	Lighten
	ColorDodge
	ColorBurn
	HardLight
	SoftLight
	Difference
	Exclusion

	Hue
	Saturation
	Color
	Luminosity
)

// Normal is the default SVG/CSS blend mode, source-over compositing.
const Normal = SourceOver

// Func composites a source pixel over a destination pixel. All eight
// parameters and both return values are premultiplied 8-bit channels.
type Func func(sr, sg, sb, sa, dr, dg, db, da byte) (r, g, b, a byte)

// Get returns the blend function for mode, defaulting to SourceOver
// for unrecognized values.
func Get(mode Mode) Func {
	switch mode {
	case Clear:
		return blendClear
	case Source:
		return blendSource
	case Destination:
		return blendDestination
	case SourceOver:
		return blendSourceOver
	case DestinationOver:
		return blendDestinationOver
	case SourceIn:
		return blendSourceIn
	case DestinationIn:
		return blendDestinationIn
	case SourceOut:
		return blendSourceOut
	case DestinationOut:
		return blendDestinationOut
	case SourceAtop:
		return blendSourceAtop
	case DestinationAtop:
		return blendDestinationAtop
	case Xor:
		return blendXor
	case Multiply:
		return blendMultiply
	case Screen:
		return blendScreen
	case Overlay:
		return blendOverlay
	case Darken:
		return blendDarken
	case Lighten:
		return blendLighten
	case ColorDodge:
		return blendColorDodge
	case ColorBurn:
		return blendColorBurn
	case HardLight:
		return blendHardLight
	case SoftLight:
		return blendSoftLight
	case Difference:
		return blendDifference
	case Exclusion:
		return blendExclusion
	case Hue:
		return blendHue
	case Saturation:
		return blendSaturation
	case Color:
		return blendColor
	case Luminosity:
		return blendLuminosity
	default:
		return blendSourceOver
	}
}

func blendClear(_, _, _, _, _, _, _, _ byte) (byte, byte, byte, byte) { return 0, 0, 0, 0 }

func blendSource(sr, sg, sb, sa, _, _, _, _ byte) (byte, byte, byte, byte) { return sr, sg, sb, sa }

func blendDestination(_, _, _, _, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return dr, dg, db, da
}

func blendSourceOver(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	invSa := 255 - sa
	return addDiv255(sr, mulDiv255(dr, invSa)),
		addDiv255(sg, mulDiv255(dg, invSa)),
		addDiv255(sb, mulDiv255(db, invSa)),
		addDiv255(sa, mulDiv255(da, invSa))
}

func blendDestinationOver(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	invDa := 255 - da
	return addDiv255(mulDiv255(sr, invDa), dr),
		addDiv255(mulDiv255(sg, invDa), dg),
		addDiv255(mulDiv255(sb, invDa), db),
		addDiv255(mulDiv255(sa, invDa), da)
}

func blendSourceIn(sr, sg, sb, sa, _, _, _, da byte) (byte, byte, byte, byte) {
	return mulDiv255(sr, da), mulDiv255(sg, da), mulDiv255(sb, da), mulDiv255(sa, da)
}

func blendDestinationIn(_, _, _, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	return mulDiv255(dr, sa), mulDiv255(dg, sa), mulDiv255(db, sa), mulDiv255(da, sa)
}

func blendSourceOut(sr, sg, sb, sa, _, _, _, da byte) (byte, byte, byte, byte) {
	invDa := 255 - da
	return mulDiv255(sr, invDa), mulDiv255(sg, invDa), mulDiv255(sb, invDa), mulDiv255(sa, invDa)
}

func blendDestinationOut(_, _, _, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	invSa := 255 - sa
	return mulDiv255(dr, invSa), mulDiv255(dg, invSa), mulDiv255(db, invSa), mulDiv255(da, invSa)
}

func blendSourceAtop(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	invSa := 255 - sa
	return addDiv255(mulDiv255(sr, da), mulDiv255(dr, invSa)),
		addDiv255(mulDiv255(sg, da), mulDiv255(dg, invSa)),
		addDiv255(mulDiv255(sb, da), mulDiv255(db, invSa)),
		da
}

func blendDestinationAtop(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	invDa := 255 - da
	return addDiv255(mulDiv255(sr, invDa), mulDiv255(dr, sa)),
		addDiv255(mulDiv255(sg, invDa), mulDiv255(dg, sa)),
		addDiv255(mulDiv255(sb, invDa), mulDiv255(db, sa)),
		sa
}

func blendXor(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	invDa := 255 - da
	invSa := 255 - sa
	return addDiv255(mulDiv255(sr, invDa), mulDiv255(dr, invSa)),
		addDiv255(mulDiv255(sg, invDa), mulDiv255(dg, invSa)),
		addDiv255(mulDiv255(sb, invDa), mulDiv255(db, invSa)),
		addDiv255(mulDiv255(sa, invDa), mulDiv255(da, invSa))
}

// mulDiv255 multiplies two byte values and divides by 255 with rounding.
func mulDiv255(a, b byte) byte {
	return byte((uint16(a)*uint16(b) + 127) / 255)
}

// addDiv255 adds two byte values, clamping to 255.
func addDiv255(a, b byte) byte {
	sum := uint16(a) + uint16(b)
	if sum > 255 {
		return 255
	}
	return byte(sum)
}
