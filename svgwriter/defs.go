package svgwriter

import (
	"fmt"
	"strings"

	"github.com/gogpu/svgraster/paintserver"
	"github.com/gogpu/svgraster/tree"
)

// writeDefs emits every deduplicated paint server, pattern, clip path,
// mask, and filter registered on t into a single defs section (spec
// §4.7), using the stable generated IDs assignIDs already handed out.
func (e *encoder) writeDefs(out *strings.Builder, t *tree.Tree) {
	for _, g := range t.LinearGrads {
		e.writeLinearGradient(out, g)
	}
	for _, g := range t.RadialGrads {
		e.writeRadialGradient(out, g)
	}
	for _, p := range t.Patterns {
		e.writePattern(out, p)
	}
	for _, c := range t.ClipPaths {
		e.writeClipPath(out, c)
	}
	for _, m := range t.Masks {
		e.writeMask(out, m)
	}
	for _, f := range t.Filters {
		e.writeFilter(out, f)
	}
}

func (e *encoder) writeLinearGradient(out *strings.Builder, g *tree.LinearGradient) {
	fmt.Fprintf(out, `<linearGradient id="%s" gradientUnits="%s" x1="%s" y1="%s" x2="%s" y2="%s" spreadMethod="%s"`,
		e.linearID[g], unitsName(g.Units),
		e.num(g.Grad.Start.X), e.num(g.Grad.Start.Y), e.num(g.Grad.End.X), e.num(g.Grad.End.Y),
		spreadName(g.Grad.Spread))
	if t := e.formatTransform(g.Grad.Transform); t != "" {
		fmt.Fprintf(out, ` gradientTransform="%s"`, t)
	}
	out.WriteString(">")
	e.writeStops(out, g.Grad.Stops)
	out.WriteString("</linearGradient>")
}

func (e *encoder) writeRadialGradient(out *strings.Builder, g *tree.RadialGradient) {
	fmt.Fprintf(out, `<radialGradient id="%s" gradientUnits="%s" cx="%s" cy="%s" r="%s" fx="%s" fy="%s" fr="%s" spreadMethod="%s"`,
		e.radialID[g], unitsName(g.Units),
		e.num(g.Grad.Center.X), e.num(g.Grad.Center.Y), e.num(g.Grad.Radius),
		e.num(g.Grad.Focus.X), e.num(g.Grad.Focus.Y), e.num(g.Grad.StartRadius),
		spreadName(g.Grad.Spread))
	if t := e.formatTransform(g.Grad.Transform); t != "" {
		fmt.Fprintf(out, ` gradientTransform="%s"`, t)
	}
	out.WriteString(">")
	e.writeStops(out, g.Grad.Stops)
	out.WriteString("</radialGradient>")
}

func (e *encoder) writeStops(out *strings.Builder, stops []paintserver.Stop) {
	for _, s := range stops {
		hex, alpha := colorHex(s.Color)
		fmt.Fprintf(out, `<stop offset="%s" stop-color="%s"`, e.num(s.Offset), hex)
		if alpha < 1 {
			fmt.Fprintf(out, ` stop-opacity="%s"`, e.num(alpha))
		}
		out.WriteString("/>")
	}
}

func (e *encoder) writePattern(out *strings.Builder, p *tree.Pattern) {
	fmt.Fprintf(out, `<pattern id="%s" patternUnits="%s" patternContentUnits="%s" x="%s" y="%s" width="%s" height="%s"`,
		e.patternID[p], unitsName(p.Units), unitsName(p.ContentUnits),
		e.num(p.Rect.X), e.num(p.Rect.Y), e.num(p.Rect.W), e.num(p.Rect.H))
	if p.ViewBox != nil {
		fmt.Fprintf(out, ` viewBox="%s %s %s %s"`, e.num(p.ViewBox.X), e.num(p.ViewBox.Y), e.num(p.ViewBox.W), e.num(p.ViewBox.H))
	}
	if t := e.formatTransform(p.Transform); t != "" {
		fmt.Fprintf(out, ` patternTransform="%s"`, t)
	}
	out.WriteString(">")
	if p.Content != nil {
		e.writeGroupChildren(out, p.Content, p.Content.AbsTransform)
	}
	out.WriteString("</pattern>")
}

func (e *encoder) writeClipPath(out *strings.Builder, c *tree.ClipPath) {
	fmt.Fprintf(out, `<clipPath id="%s" clipPathUnits="%s"`, e.clipID[c], unitsName(c.Units))
	if t := e.formatTransform(c.Transform); t != "" {
		fmt.Fprintf(out, ` transform="%s"`, t)
	}
	if c.Parent != nil {
		fmt.Fprintf(out, ` clip-path="url(#%s)"`, e.clipID[c.Parent])
	}
	out.WriteString(">")
	if c.Content != nil {
		e.writeGroupChildren(out, c.Content, c.Content.AbsTransform)
	}
	out.WriteString("</clipPath>")
}

func (e *encoder) writeMask(out *strings.Builder, m *tree.Mask) {
	fmt.Fprintf(out, `<mask id="%s" maskUnits="%s" maskContentUnits="%s" x="%s" y="%s" width="%s" height="%s"`,
		e.maskID[m], unitsName(m.Units), unitsName(m.ContentUnits),
		e.num(m.Rect.X), e.num(m.Rect.Y), e.num(m.Rect.W), e.num(m.Rect.H))
	if m.Type == tree.MaskAlpha {
		fmt.Fprintf(out, ` mask-type="alpha"`)
	}
	if m.Parent != nil {
		fmt.Fprintf(out, ` mask="url(#%s)"`, e.maskID[m.Parent])
	}
	out.WriteString(">")
	if m.Content != nil {
		e.writeGroupChildren(out, m.Content, m.Content.AbsTransform)
	}
	out.WriteString("</mask>")
}
