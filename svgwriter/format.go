package svgwriter

import (
	"strconv"
	"strings"

	"github.com/gogpu/svgraster/blend"
	"github.com/gogpu/svgraster/colorspace"
	"github.com/gogpu/svgraster/geom"
	"github.com/gogpu/svgraster/paintserver"
	"github.com/gogpu/svgraster/pathdata"
	"github.com/gogpu/svgraster/tree"
)

// formatNum renders v with precision digits after the decimal point,
// trimming trailing zeros (spec §4.7: "configurable numeric
// precision").
func formatNum(v float64, precision int) string {
	s := strconv.FormatFloat(v, 'f', precision, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "" || s == "-0" {
		return "0"
	}
	return s
}

func (e *encoder) num(v float64) string {
	return formatNum(v, e.opts.CoordPrecision)
}

// formatTransform renders m as matrix(sx ky kx sy tx ty) per spec
// §6.5, or "" for the identity transform (the attribute is then
// omitted entirely).
func (e *encoder) formatTransform(m geom.Transform) string {
	if m.IsIdentity() {
		return ""
	}
	p := e.opts.TransformPrecision
	return "matrix(" + formatNum(m.SX, p) + " " + formatNum(m.KY, p) + " " +
		formatNum(m.KX, p) + " " + formatNum(m.SY, p) + " " +
		formatNum(m.TX, p) + " " + formatNum(m.TY, p) + ")"
}

// colorHex renders c's RGB channels as lowercase #rrggbb (spec §6.5)
// and returns its alpha separately for a stop-opacity/fill-opacity
// attribute.
func colorHex(c colorspace.Color) (hex string, alpha float64) {
	r := clampByte(c.R)
	g := clampByte(c.G)
	b := clampByte(c.B)
	return "#" + hexByte(r) + hexByte(g) + hexByte(b), c.A
}

func clampByte(v float64) int {
	n := int(v*255 + 0.5)
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return n
}

const hexDigits = "0123456789abcdef"

func hexByte(n int) string {
	return string([]byte{hexDigits[(n>>4)&0xf], hexDigits[n&0xf]})
}

func fillRuleName(r pathdata.FillRule) string {
	if r == pathdata.EvenOdd {
		return "evenodd"
	}
	return "nonzero"
}

func lineCapName(c pathdata.LineCap) string {
	switch c {
	case pathdata.CapRound:
		return "round"
	case pathdata.CapSquare:
		return "square"
	default:
		return "butt"
	}
}

func lineJoinName(j pathdata.LineJoin) string {
	switch j {
	case pathdata.JoinRound:
		return "round"
	case pathdata.JoinBevel:
		return "bevel"
	default:
		return "miter"
	}
}

func unitsName(u tree.Units) string {
	if u == tree.ObjectBoundingBox {
		return "objectBoundingBox"
	}
	return "userSpaceOnUse"
}

func spreadName(s paintserver.Spread) string {
	switch s {
	case paintserver.Reflect:
		return "reflect"
	case paintserver.Repeat:
		return "repeat"
	default:
		return "pad"
	}
}

func blendModeName(m blend.Mode) string {
	return m.Name()
}

func colorSpaceName(cs tree.ColorSpace) string {
	if cs == tree.ColorSpaceLinearRGB {
		return "linearRGB"
	}
	return "sRGB"
}

func formatAspectRatio(ar geom.AspectRatio) string {
	if ar.Align == geom.AlignNone {
		return "none"
	}
	align := alignName(ar.Align)
	var sb strings.Builder
	if ar.Defer {
		sb.WriteString("defer ")
	}
	sb.WriteString(align)
	if ar.Slice == geom.Slice {
		sb.WriteString(" slice")
	}
	return sb.String()
}

func alignName(a geom.Align) string {
	switch a {
	case geom.AlignXMinYMin:
		return "xMinYMin"
	case geom.AlignXMidYMin:
		return "xMidYMin"
	case geom.AlignXMaxYMin:
		return "xMaxYMin"
	case geom.AlignXMinYMid:
		return "xMinYMid"
	case geom.AlignXMidYMid:
		return "xMidYMid"
	case geom.AlignXMaxYMid:
		return "xMaxYMid"
	case geom.AlignXMinYMax:
		return "xMinYMax"
	case geom.AlignXMidYMax:
		return "xMidYMax"
	case geom.AlignXMaxYMax:
		return "xMaxYMax"
	default:
		return "none"
	}
}

// escapeText escapes & per spec §6.5 ("Escapes & in text content as
// &amp;"); < and > are escaped too since this package only ever emits
// attribute values and PCDATA, never raw markup.
func escapeText(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

func escapeAttr(s string) string {
	s = escapeText(s)
	s = strings.ReplaceAll(s, `"`, "&quot;")
	return s
}
