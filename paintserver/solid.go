package paintserver

import "github.com/gogpu/svgraster/colorspace"

// Solid is a constant-color shader: "multiplies the color's alpha by
// the owning opacity, then returns a constant shader" (spec §4.5).
type Solid struct {
	Color   colorspace.Color
	Opacity float64
}

func (s Solid) ColorAt(x, y float64) colorspace.Color {
	return scaleOpacity(s.Color, s.Opacity)
}
