package geom

// Align selects the alignment keyword of a preserveAspectRatio value,
// the ten SVG alignment keywords crossed with Meet/Slice (spec §6.2).
type Align uint8

const (
	AlignNone Align = iota
	AlignXMinYMin
	AlignXMidYMin
	AlignXMaxYMin
	AlignXMinYMid
	AlignXMidYMid
	AlignXMaxYMid
	AlignXMinYMax
	AlignXMidYMax
	AlignXMaxYMax
)

// MeetOrSlice selects whether the fitted content is scaled to fit
// entirely inside the viewport (Meet) or to cover it entirely,
// cropping overflow (Slice).
type MeetOrSlice uint8

const (
	Meet MeetOrSlice = iota
	Slice
)

// AspectRatio is a resolved preserveAspectRatio value.
type AspectRatio struct {
	Align Align
	Slice MeetOrSlice
	// Defer is parsed for round-trip fidelity but has no effect on
	// rasterization (it only matters when an outer <image> overrides
	// an inner document's own preserveAspectRatio).
	Defer bool
}

// DefaultAspectRatio is "xMidYMid meet", the SVG default.
func DefaultAspectRatio() AspectRatio {
	return AspectRatio{Align: AlignXMidYMid, Slice: Meet}
}

// FitTransform computes the transform that maps a source rectangle
// (a view box or an image's intrinsic size) into a destination
// rectangle under the given aspect-ratio policy.
func (ar AspectRatio) FitTransform(src, dst Rect) Transform {
	if src.IsEmpty() || dst.IsEmpty() {
		return Identity()
	}

	sx := dst.W / src.W
	sy := dst.H / src.H

	if ar.Align != AlignNone {
		if ar.Slice == Meet {
			s := minF(sx, sy)
			sx, sy = s, s
		} else {
			s := maxF(sx, sy)
			sx, sy = s, s
		}
	}

	tx := dst.X - src.X*sx
	ty := dst.Y - src.Y*sy

	extraX := dst.W - src.W*sx
	extraY := dst.H - src.H*sy

	switch ar.Align {
	case AlignXMidYMin, AlignXMidYMid, AlignXMidYMax:
		tx += extraX / 2
	case AlignXMaxYMin, AlignXMaxYMid, AlignXMaxYMax:
		tx += extraX
	}
	switch ar.Align {
	case AlignXMinYMid, AlignXMidYMid, AlignXMaxYMid:
		ty += extraY / 2
	case AlignXMinYMax, AlignXMidYMax, AlignXMaxYMax:
		ty += extraY
	}

	return Transform{SX: sx, SY: sy, TX: tx, TY: ty}
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
