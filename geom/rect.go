package geom

import "math"

// Rect is an axis-aligned rectangle in user space.
type Rect struct {
	X, Y, W, H float64
}

// EmptyRect is the canonical empty rectangle, the identity element
// for Union.
func EmptyRect() Rect {
	return Rect{X: math.Inf(1), Y: math.Inf(1), W: math.Inf(-1), H: math.Inf(-1)}
}

// RectFromMinMax builds a rectangle from its corner coordinates.
func RectFromMinMax(minX, minY, maxX, maxY float64) Rect {
	if maxX < minX || maxY < minY {
		return EmptyRect()
	}
	return Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// IsEmpty reports whether the rectangle has non-positive area.
func (r Rect) IsEmpty() bool {
	return r.W <= 0 || r.H <= 0
}

// Right returns the maximum X coordinate.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the maximum Y coordinate.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Union returns the smallest rectangle containing both r and o.
// Union with an empty rectangle returns the other operand unchanged,
// so EmptyRect is safe to use as a fold accumulator.
func (r Rect) Union(o Rect) Rect {
	if r.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return r
	}
	return RectFromMinMax(
		math.Min(r.X, o.X), math.Min(r.Y, o.Y),
		math.Max(r.Right(), o.Right()), math.Max(r.Bottom(), o.Bottom()),
	)
}

// Intersect returns the overlapping region of r and o, or EmptyRect
// if they do not overlap.
func (r Rect) Intersect(o Rect) Rect {
	minX, minY := math.Max(r.X, o.X), math.Max(r.Y, o.Y)
	maxX, maxY := math.Min(r.Right(), o.Right()), math.Min(r.Bottom(), o.Bottom())
	return RectFromMinMax(minX, minY, maxX, maxY)
}

// Intersects reports whether r and o share any area.
func (r Rect) Intersects(o Rect) bool {
	return !r.Intersect(o).IsEmpty()
}

// Inset expands (for negative d) or shrinks (for positive d) the
// rectangle by d on every side.
func (r Rect) Inset(d float64) Rect {
	return RectFromMinMax(r.X+d, r.Y+d, r.Right()-d, r.Bottom()-d)
}

// Transform maps the rectangle's four corners through m and returns
// their axis-aligned bounding box.
func (r Rect) Transform(m Transform) Rect {
	corners := [4]Point{
		{X: r.X, Y: r.Y}, {X: r.Right(), Y: r.Y},
		{X: r.X, Y: r.Bottom()}, {X: r.Right(), Y: r.Bottom()},
	}
	out := EmptyRect()
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range corners {
		p := m.TransformPoint(c)
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	out = RectFromMinMax(minX, minY, maxX, maxY)
	return out
}

// ContainsPoint reports whether p lies within the rectangle (inclusive of edges).
func (r Rect) ContainsPoint(p Point) bool {
	return p.X >= r.X && p.X <= r.Right() && p.Y >= r.Y && p.Y <= r.Bottom()
}
