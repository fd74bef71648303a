package geom

import "math"

// Transform is a 2D affine transformation matrix expressed as the
// 2x3 row-major form required by the render tree's wire format (spec
// §6.1): x' = sx*x + kx*y + tx ; y' = ky*x + sy*y + ty.
type Transform struct {
	SX, KX, TX float64
	KY, SY, TY float64
}

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{SX: 1, SY: 1}
}

// Translate returns a translation transform.
func Translate(x, y float64) Transform {
	return Transform{SX: 1, SY: 1, TX: x, TY: y}
}

// Scale returns a scaling transform.
func Scale(x, y float64) Transform {
	return Transform{SX: x, SY: y}
}

// Rotate returns a rotation transform (angle in radians).
func Rotate(angle float64) Transform {
	c, s := math.Cos(angle), math.Sin(angle)
	return Transform{SX: c, KX: -s, KY: s, SY: c}
}

// Multiply returns m composed with other, applying other first then m
// (i.e. the result maps a point the way other().then(m) would).
// For a Group G with child C, C.AbsTransform = G.AbsTransform.Multiply(C.Transform).
func (m Transform) Multiply(other Transform) Transform {
	return Transform{
		SX: m.SX*other.SX + m.KX*other.KY,
		KX: m.SX*other.KX + m.KX*other.SY,
		TX: m.SX*other.TX + m.KX*other.TY + m.TX,
		KY: m.KY*other.SX + m.SY*other.KY,
		SY: m.KY*other.KX + m.SY*other.SY,
		TY: m.KY*other.TX + m.SY*other.TY + m.TY,
	}
}

// TransformPoint maps a point through the transform.
func (m Transform) TransformPoint(p Point) Point {
	return Point{
		X: m.SX*p.X + m.KX*p.Y + m.TX,
		Y: m.KY*p.X + m.SY*p.Y + m.TY,
	}
}

// TransformVector maps a vector (ignoring translation) through the transform.
func (m Transform) TransformVector(p Point) Point {
	return Point{X: m.SX*p.X + m.KX*p.Y, Y: m.KY*p.X + m.SY*p.Y}
}

// Invert returns the inverse transform, or Identity if not invertible.
func (m Transform) Invert() Transform {
	det := m.SX*m.SY - m.KX*m.KY
	if math.Abs(det) < 1e-12 {
		return Identity()
	}
	inv := 1 / det
	return Transform{
		SX: m.SY * inv,
		KX: -m.KX * inv,
		TX: (m.KX*m.TY - m.TX*m.SY) * inv,
		KY: -m.KY * inv,
		SY: m.SX * inv,
		TY: (m.TX*m.KY - m.SX*m.TY) * inv,
	}
}

// IsIdentity reports whether the transform is the identity.
func (m Transform) IsIdentity() bool {
	return m.SX == 1 && m.KX == 0 && m.TX == 0 && m.KY == 0 && m.SY == 1 && m.TY == 0
}

// ScaleFactors returns the approximate (sx, sy) scale magnitudes of the
// transform, used by the pattern paint server to size tile pixmaps (§4.5).
func (m Transform) ScaleFactors() (sx, sy float64) {
	sx = math.Hypot(m.SX, m.KY)
	sy = math.Hypot(m.KX, m.SY)
	return
}

// FromBBox returns the transform that maps the unit square [0,1]x[0,1]
// into the given bounding box, used to resolve objectBoundingBox units
// (paint servers, clip/mask/filter regions) into user space.
func FromBBox(b Rect) Transform {
	return Transform{SX: b.W, SY: b.H, TX: b.X, TY: b.Y}
}
