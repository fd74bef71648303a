package pathdata

// LineCap is the shape of a stroke's line endpoints.
type LineCap uint8

const (
	CapButt LineCap = iota
	CapRound
	CapSquare
)

// LineJoin is the shape of a stroke's line joins.
type LineJoin uint8

const (
	JoinMiter LineJoin = iota
	JoinRound
	JoinBevel
)

// Dash is a dash-array pattern applied to a stroked path: alternating
// on/off run lengths starting at Offset along the path.
type Dash struct {
	Pattern []float64
	Offset  float64
}

// IsDashed reports whether the pattern produces any gaps: an empty or
// all-zero pattern strokes as a solid line.
func (d *Dash) IsDashed() bool {
	if d == nil || len(d.Pattern) == 0 {
		return false
	}
	for _, v := range d.Pattern {
		if v > 0 {
			return true
		}
	}
	return false
}

// Stroke is the stroke style of a Path node (spec §3, Path.stroke).
type Stroke struct {
	Width      float64
	Cap        LineCap
	Join       LineJoin
	MiterLimit float64
	Dash       *Dash
	Opacity    float64
}

// DefaultStroke returns the SVG default stroke style: a solid
// 1-unit-wide line with butt caps, miter joins, miter limit 4, full
// opacity.
func DefaultStroke() Stroke {
	return Stroke{Width: 1, Cap: CapButt, Join: JoinMiter, MiterLimit: 4, Opacity: 1}
}

// StrokeOutset returns the extra radius a stroke of this style can
// add beyond the fill outline, used to inflate a tight fill bbox into
// a stroke bbox (I2: stroke_bbox ⊇ bbox). Miter joins can extend the
// outline by up to MiterLimit times the half-width; round and bevel
// joins, and all caps, are bounded by the half-width itself.
func (s Stroke) StrokeOutset() float64 {
	if s.Width <= 0 {
		return 0
	}
	half := s.Width / 2
	if s.Join == JoinMiter && s.MiterLimit > 1 {
		return half * s.MiterLimit
	}
	return half
}
