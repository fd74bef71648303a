package paintserver

import (
	"math"

	"github.com/gogpu/svgraster/colorspace"
	"github.com/gogpu/svgraster/geom"
	"github.com/gogpu/svgraster/pixmap"
)

// TileRenderer renders a pattern's sub-Group content into a tile
// pixmap of the requested size under the given content transform.
// The compositor supplies the concrete implementation at resolve
// time (patterns recurse back into node rendering, which paintserver
// cannot import directly without a dependency cycle).
type TileRenderer func(tileWidth, tileHeight int, contentTransform geom.Transform) *pixmap.Pixmap

// Pattern tiles a once-rendered pixmap across the plane with Repeat
// spread and bicubic resampling, per spec §4.5: "rendered once into a
// tile pixmap sized ceil(pattern.rect.w*sx) x ceil(pattern.rect.h*sy)
// ... tiles this pixmap with Repeat spread and bicubic filtering".
type Pattern struct {
	Rect      geom.Rect
	ViewBox   *geom.Rect
	Transform geom.Transform
	Opacity   float64
	Render    TileRenderer
}

// Resolve renders the pattern's tile pixmap at the given composite
// scale factors and returns a Shader sampling it with Repeat spread.
func (p *Pattern) Resolve(sx, sy float64) Shader {
	tileW := int(math.Ceil(p.Rect.W * sx))
	tileH := int(math.Ceil(p.Rect.H * sy))
	if tileW < 1 {
		tileW = 1
	}
	if tileH < 1 {
		tileH = 1
	}

	content := geom.Scale(float64(tileW)/p.Rect.W, float64(tileH)/p.Rect.H)
	if p.ViewBox != nil {
		fit := geom.DefaultAspectRatio().FitTransform(*p.ViewBox, geom.Rect{W: p.Rect.W, H: p.Rect.H})
		content = geom.Scale(float64(tileW)/p.Rect.W, float64(tileH)/p.Rect.H).Multiply(fit)
	}

	tile := p.Render(tileW, tileH, content)
	return &tileShader{
		tile:      tile,
		rect:      p.Rect,
		transform: p.Transform,
		opacity:   p.Opacity,
	}
}

type tileShader struct {
	tile      *pixmap.Pixmap
	rect      geom.Rect
	transform geom.Transform
	opacity   float64
}

func (s *tileShader) ColorAt(x, y float64) colorspace.Color {
	p := s.transform.Invert().TransformPoint(geom.Pt(x, y))

	// Map into [0, rect.w) x [0, rect.h) with Repeat spread, then
	// into tile pixel coordinates.
	u := wrap(p.X-s.rect.X, s.rect.W) / s.rect.W
	v := wrap(p.Y-s.rect.Y, s.rect.H) / s.rect.H

	tx := u * float64(s.tile.Width())
	ty := v * float64(s.tile.Height())
	c := bicubicSample(s.tile, tx, ty)
	c.A *= s.opacity
	return c
}

func wrap(v, period float64) float64 {
	if period <= 0 {
		return 0
	}
	m := math.Mod(v, period)
	if m < 0 {
		m += period
	}
	return m
}

// bicubicSample samples tile at (fx, fy) using a Catmull-Rom cubic
// convolution, matching the resampling quality xdraw.CatmullRom
// produces when the tile is scaled; patterns sample point-wise rather
// than through a bulk Scale call since coordinates wrap per pixel.
func bicubicSample(tile *pixmap.Pixmap, fx, fy float64) colorspace.Color {
	x0 := int(math.Floor(fx)) - 1
	y0 := int(math.Floor(fy)) - 1

	var r, g, b, a, wsum float64
	for j := 0; j < 4; j++ {
		sy := y0 + j
		wy := catmullRomWeight(fy - float64(sy))
		for i := 0; i < 4; i++ {
			sx := x0 + i
			wx := catmullRomWeight(fx - float64(sx))
			w := wx * wy
			if w == 0 {
				continue
			}
			c := tile.ColorAt(wrapIndex(sx, tile.Width()), wrapIndex(sy, tile.Height()))
			r += c.R * w
			g += c.G * w
			b += c.B * w
			a += c.A * w
			wsum += w
		}
	}
	if wsum == 0 {
		return colorspace.Transparent
	}
	return colorspace.Color{
		R: colorspace.Clamp01(r / wsum),
		G: colorspace.Clamp01(g / wsum),
		B: colorspace.Clamp01(b / wsum),
		A: colorspace.Clamp01(a / wsum),
	}
}

func wrapIndex(v, n int) int {
	if n <= 0 {
		return 0
	}
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

// catmullRomWeight is the Catmull-Rom cubic convolution kernel at
// distance d from the sample center.
func catmullRomWeight(d float64) float64 {
	d = math.Abs(d)
	switch {
	case d < 1:
		return 1.5*d*d*d - 2.5*d*d + 1
	case d < 2:
		return -0.5*d*d*d + 2.5*d*d - 4*d + 2
	default:
		return 0
	}
}
