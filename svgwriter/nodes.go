package svgwriter

import (
	"fmt"
	"strings"

	"github.com/gogpu/svgraster/blend"
	"github.com/gogpu/svgraster/geom"
	"github.com/gogpu/svgraster/pathdata"
	"github.com/gogpu/svgraster/tree"
)

// writeGroupChildren emits g's children directly into the parent
// element under base, the accumulated absolute transform of g itself
// (Identity for the document root). Used both for the root <svg> and
// any nested <g>, so the root carries its top-level content with no
// redundant wrapping group.
func (e *encoder) writeGroupChildren(out *strings.Builder, g *tree.Group, base geom.Transform) {
	for _, child := range g.Children {
		e.writeNode(out, child, base)
	}
}

func (e *encoder) writeNode(out *strings.Builder, n tree.Node, base geom.Transform) {
	switch v := n.(type) {
	case *tree.Group:
		e.writeGroup(out, v, base)
	case *tree.Path:
		e.writePath(out, v, base)
	case *tree.Image:
		e.writeImage(out, v, base)
	}
}

func (e *encoder) writeGroup(out *strings.Builder, g *tree.Group, base geom.Transform) {
	out.WriteString("<g")
	e.writeStyleAttrs(out, g.Transform, g.Opacity, g.BlendMode, g.Clip, g.Mask, g.Filters)
	if g.Isolate {
		out.WriteString(` isolation="isolate"`)
	}
	out.WriteString(">")
	e.writeGroupChildren(out, g, g.AbsTransform)
	out.WriteString("</g>")
}

// writeStyleAttrs emits the transform/opacity/blend-mode/clip/mask/
// filter attributes spec §4.7 requires on every group and path node.
func (e *encoder) writeStyleAttrs(out *strings.Builder, transform geom.Transform, opacity float64, mode blend.Mode, clip *tree.ClipPath, mask *tree.Mask, filters []*tree.Filter) {
	if t := e.formatTransform(transform); t != "" {
		fmt.Fprintf(out, ` transform="%s"`, t)
	}
	if opacity < 1 {
		fmt.Fprintf(out, ` opacity="%s"`, formatNum(opacity, e.opts.CoordPrecision))
	}
	if mode != blend.Normal {
		fmt.Fprintf(out, ` style="mix-blend-mode:%s"`, blendModeName(mode))
	}
	if clip != nil {
		fmt.Fprintf(out, ` clip-path="url(#%s)"`, e.clipID[clip])
	}
	if mask != nil {
		fmt.Fprintf(out, ` mask="url(#%s)"`, e.maskID[mask])
	}
	if len(filters) > 0 {
		var ids []string
		for _, f := range filters {
			ids = append(ids, fmt.Sprintf("url(#%s)", e.filterID[f]))
		}
		fmt.Fprintf(out, ` filter="%s"`, strings.Join(ids, " "))
	}
}

// relativeTransform recovers the transform a leaf node (Path/Image,
// which store only an absolute AbsTransform) would carry as its own
// "transform" attribute nested under a parent whose accumulated
// transform is base: relative = base^-1 . absolute, the inverse of
// how builder computes AbsTransform = parentAbs.Multiply(relative).
func relativeTransform(base, abs geom.Transform) geom.Transform {
	if base.IsIdentity() {
		return abs
	}
	return base.Invert().Multiply(abs)
}

func (e *encoder) writePath(out *strings.Builder, p *tree.Path, base geom.Transform) {
	if !p.Visible {
		return
	}
	out.WriteString("<path")
	e.writeStyleAttrs(out, relativeTransform(base, p.AbsTransform), 1, blend.Normal, nil, nil, nil)
	fmt.Fprintf(out, ` d="%s"`, e.pathData(p.Data))
	if p.Fill != nil {
		e.writePaintAttrs(out, "fill", p.Fill.Paint, p.Fill.Opacity)
		fmt.Fprintf(out, ` fill-rule="%s"`, fillRuleName(p.Fill.Rule))
	} else {
		out.WriteString(` fill="none"`)
	}
	if p.Stroke != nil {
		e.writePaintAttrs(out, "stroke", p.Stroke.Paint, p.Stroke.Stroke.Opacity)
		s := p.Stroke.Stroke
		fmt.Fprintf(out, ` stroke-width="%s" stroke-linecap="%s" stroke-linejoin="%s" stroke-miterlimit="%s"`,
			e.num(s.Width), lineCapName(s.Cap), lineJoinName(s.Join), e.num(s.MiterLimit))
		if s.Dash != nil && s.Dash.IsDashed() {
			parts := make([]string, len(s.Dash.Pattern))
			for i, v := range s.Dash.Pattern {
				parts[i] = e.num(v)
			}
			fmt.Fprintf(out, ` stroke-dasharray="%s" stroke-dashoffset="%s"`, strings.Join(parts, " "), e.num(s.Dash.Offset))
		}
	}
	if p.Order == tree.StrokeThenFill {
		out.WriteString(` paint-order="stroke fill"`)
	}
	out.WriteString("/>")
}

func (e *encoder) writePaintAttrs(out *strings.Builder, prop string, paint tree.Paint, opacity float64) {
	switch {
	case paint.Solid != nil:
		hex, alpha := colorHex(paint.Solid.Color)
		fmt.Fprintf(out, ` %s="%s"`, prop, hex)
		if alpha < 1 || opacity < 1 {
			fmt.Fprintf(out, ` %s-opacity="%s"`, prop, e.num(alpha*opacity))
		}
	case paint.Linear != nil:
		fmt.Fprintf(out, ` %s="url(#%s)"`, prop, e.linearID[paint.Linear])
		if opacity < 1 {
			fmt.Fprintf(out, ` %s-opacity="%s"`, prop, e.num(opacity))
		}
	case paint.Radial != nil:
		fmt.Fprintf(out, ` %s="url(#%s)"`, prop, e.radialID[paint.Radial])
		if opacity < 1 {
			fmt.Fprintf(out, ` %s-opacity="%s"`, prop, e.num(opacity))
		}
	case paint.Pattern != nil:
		fmt.Fprintf(out, ` %s="url(#%s)"`, prop, e.patternID[paint.Pattern])
		if opacity < 1 {
			fmt.Fprintf(out, ` %s-opacity="%s"`, prop, e.num(opacity))
		}
	default:
		fmt.Fprintf(out, ` %s="none"`, prop)
	}
}

// pathData renders p as compact M/L/Q/C/Z commands (spec §4.7, §6.4:
// all coordinates are absolute).
func (e *encoder) pathData(p pathdata.Path) string {
	var sb strings.Builder
	for _, el := range p.Elements {
		switch v := el.(type) {
		case pathdata.MoveTo:
			fmt.Fprintf(&sb, "M%s,%s ", e.num(v.Point.X), e.num(v.Point.Y))
		case pathdata.LineTo:
			fmt.Fprintf(&sb, "L%s,%s ", e.num(v.Point.X), e.num(v.Point.Y))
		case pathdata.QuadTo:
			fmt.Fprintf(&sb, "Q%s,%s %s,%s ", e.num(v.Control.X), e.num(v.Control.Y), e.num(v.Point.X), e.num(v.Point.Y))
		case pathdata.CubicTo:
			fmt.Fprintf(&sb, "C%s,%s %s,%s %s,%s ", e.num(v.Control1.X), e.num(v.Control1.Y),
				e.num(v.Control2.X), e.num(v.Control2.Y), e.num(v.Point.X), e.num(v.Point.Y))
		case pathdata.Close:
			sb.WriteString("Z ")
		}
	}
	return strings.TrimSpace(sb.String())
}

func (e *encoder) writeImage(out *strings.Builder, img *tree.Image, base geom.Transform) {
	switch img.Kind {
	case tree.ImageRaster:
		if img.Raster == nil {
			return
		}
		uri, err := rasterDataURI(img.Raster)
		if err != nil {
			return
		}
		e.writeImageElement(out, img, base, uri)
	case tree.ImageSubTree:
		if img.SubTree == nil {
			return
		}
		svg, err := WriteString(img.SubTree, e.opts)
		if err != nil {
			return
		}
		uri := "data:image/svg+xml;base64," + base64Encode([]byte(svg))
		e.writeImageElement(out, img, base, uri)
	case tree.ImageForeignNode:
		// feImage-only: the node is already resolved in-tree, not an
		// external reference, so it is inlined directly rather than
		// wrapped in an <image> element (no SVG element represents an
		// already-rasterized foreign-object reference).
		if img.ForeignNode != nil {
			e.writeNode(out, img.ForeignNode, base)
		}
	}
}

func (e *encoder) writeImageElement(out *strings.Builder, img *tree.Image, base geom.Transform, href string) {
	e.usesXlink = true
	fmt.Fprintf(out, `<image xlink:href="%s" x="%s" y="%s" width="%s" height="%s" preserveAspectRatio="%s"`,
		escapeAttr(href), e.num(img.Rect.X), e.num(img.Rect.Y), e.num(img.Rect.W), e.num(img.Rect.H),
		formatAspectRatio(img.AspectRatio))
	e.writeStyleAttrs(out, relativeTransform(base, img.AbsTransform), 1, blend.Normal, nil, nil, nil)
	out.WriteString("/>")
}
