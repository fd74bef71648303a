// Package pathdata implements the immutable vector path type shared
// by every Path node in the render tree: the five-command element
// sequence, tight and stroked bounding-box computation, and the fill
// rule used by the rasterizer boundary.
//
// Grounded on gogpu-gg's path.go, generalized from a mutable
// builder-only type into the immutable, shareable value the tree
// package's reference-counted Path entities need (spec §3, §6.4).
package pathdata

import "github.com/gogpu/svgraster/geom"

// Element is one command in a path: MoveTo, LineTo, QuadTo, CubicTo,
// or Close, exactly the five commands the render tree allows.
type Element interface {
	isElement()
}

// MoveTo starts a new subpath at Point without drawing.
type MoveTo struct{ Point geom.Point }

func (MoveTo) isElement() {}

// LineTo draws a straight line to Point.
type LineTo struct{ Point geom.Point }

func (LineTo) isElement() {}

// QuadTo draws a quadratic Bezier curve through Control to Point.
type QuadTo struct{ Control, Point geom.Point }

func (QuadTo) isElement() {}

// CubicTo draws a cubic Bezier curve through Control1 and Control2 to Point.
type CubicTo struct{ Control1, Control2, Point geom.Point }

func (CubicTo) isElement() {}

// Close closes the current subpath with a straight line back to its
// starting MoveTo.
type Close struct{}

func (Close) isElement() {}

// FillRule selects how self-intersecting or nested subpaths resolve
// to an inside/outside test.
type FillRule uint8

const (
	NonZero FillRule = iota
	EvenOdd
)

// Path is an immutable sequence of path elements. All coordinates are
// absolute, matching spec §6.4. A zero-value Path (nil Elements) is
// the legal empty path that draws nothing.
type Path struct {
	Elements []Element
}

// Builder accumulates elements before the path is frozen into an
// immutable Path, mirroring the teacher's mutable Path type.
type Builder struct {
	elements []Element
	start    geom.Point
	current  geom.Point
	started  bool
}

// NewBuilder returns an empty path builder.
func NewBuilder() *Builder {
	return &Builder{elements: make([]Element, 0, 16)}
}

func (b *Builder) MoveTo(x, y float64) *Builder {
	pt := geom.Pt(x, y)
	b.elements = append(b.elements, MoveTo{Point: pt})
	b.start, b.current, b.started = pt, pt, true
	return b
}

func (b *Builder) LineTo(x, y float64) *Builder {
	pt := geom.Pt(x, y)
	b.elements = append(b.elements, LineTo{Point: pt})
	b.current = pt
	return b
}

func (b *Builder) QuadTo(cx, cy, x, y float64) *Builder {
	ctrl, pt := geom.Pt(cx, cy), geom.Pt(x, y)
	b.elements = append(b.elements, QuadTo{Control: ctrl, Point: pt})
	b.current = pt
	return b
}

func (b *Builder) CubicTo(c1x, c1y, c2x, c2y, x, y float64) *Builder {
	c1, c2, pt := geom.Pt(c1x, c1y), geom.Pt(c2x, c2y), geom.Pt(x, y)
	b.elements = append(b.elements, CubicTo{Control1: c1, Control2: c2, Point: pt})
	b.current = pt
	return b
}

func (b *Builder) Close() *Builder {
	b.elements = append(b.elements, Close{})
	b.current = b.start
	return b
}

// CurrentPoint returns the pen position after the last element added.
func (b *Builder) CurrentPoint() geom.Point { return b.current }

// HasCurrentPoint reports whether any element has been added yet.
func (b *Builder) HasCurrentPoint() bool { return b.started }

// Build freezes the builder into an immutable Path. The builder must
// not be reused afterward.
func (b *Builder) Build() Path {
	return Path{Elements: b.elements}
}

// Rectangle appends a closed rectangle subpath.
func (b *Builder) Rectangle(x, y, w, h float64) *Builder {
	return b.MoveTo(x, y).LineTo(x+w, y).LineTo(x+w, y+h).LineTo(x, y+h).Close()
}

// circleBezierK is the control-point offset ratio for approximating
// a quarter circle with a cubic Bezier (4/3 * (sqrt(2) - 1)).
const circleBezierK = 0.5522847498307936

// Ellipse appends a closed ellipse subpath built from four cubic arcs.
func (b *Builder) Ellipse(cx, cy, rx, ry float64) *Builder {
	ox, oy := rx*circleBezierK, ry*circleBezierK
	return b.MoveTo(cx+rx, cy).
		CubicTo(cx+rx, cy+oy, cx+ox, cy+ry, cx, cy+ry).
		CubicTo(cx-ox, cy+ry, cx-rx, cy+oy, cx-rx, cy).
		CubicTo(cx-rx, cy-oy, cx-ox, cy-ry, cx, cy-ry).
		CubicTo(cx+ox, cy-ry, cx+rx, cy-oy, cx+rx, cy).
		Close()
}

// Circle appends a closed circle subpath.
func (b *Builder) Circle(cx, cy, r float64) *Builder {
	return b.Ellipse(cx, cy, r, r)
}

// Transform returns a new Path with m applied to every coordinate.
func (p Path) Transform(m geom.Transform) Path {
	out := make([]Element, len(p.Elements))
	for i, e := range p.Elements {
		switch v := e.(type) {
		case MoveTo:
			out[i] = MoveTo{Point: m.TransformPoint(v.Point)}
		case LineTo:
			out[i] = LineTo{Point: m.TransformPoint(v.Point)}
		case QuadTo:
			out[i] = QuadTo{Control: m.TransformPoint(v.Control), Point: m.TransformPoint(v.Point)}
		case CubicTo:
			out[i] = CubicTo{
				Control1: m.TransformPoint(v.Control1),
				Control2: m.TransformPoint(v.Control2),
				Point:    m.TransformPoint(v.Point),
			}
		case Close:
			out[i] = Close{}
		}
	}
	return Path{Elements: out}
}

// IsEmpty reports whether the path has no elements.
func (p Path) IsEmpty() bool {
	return len(p.Elements) == 0
}
