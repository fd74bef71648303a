package paintserver

import (
	"testing"

	"github.com/gogpu/svgraster/colorspace"
	"github.com/gogpu/svgraster/geom"
	"github.com/gogpu/svgraster/pixmap"
)

func solidTile(n int, c colorspace.Color) *pixmap.Pixmap {
	p := pixmap.New(n, n)
	p.Fill(c)
	return p
}

func TestPatternResolveCallsRendererWithCeiledTileSize(t *testing.T) {
	var gotW, gotH int
	p := &Pattern{
		Rect:      geom.Rect{X: 0, Y: 0, W: 10, H: 10},
		Transform: geom.Identity(),
		Opacity:   1,
		Render: func(w, h int, _ geom.Transform) *pixmap.Pixmap {
			gotW, gotH = w, h
			return solidTile(w, colorspace.Color{R: 1, A: 1})
		},
	}
	p.Resolve(1.5, 1.5)
	if gotW != 15 || gotH != 15 {
		t.Errorf("tile size = (%d,%d), want ceil(10*1.5)=15", gotW, gotH)
	}
}

func TestPatternShaderTilesAcrossPlane(t *testing.T) {
	p := &Pattern{
		Rect:      geom.Rect{X: 0, Y: 0, W: 10, H: 10},
		Transform: geom.Identity(),
		Opacity:   1,
		Render: func(w, h int, _ geom.Transform) *pixmap.Pixmap {
			return solidTile(w, colorspace.Color{R: 1, A: 1})
		},
	}
	shader := p.Resolve(1, 1)
	inside := shader.ColorAt(5, 5)
	tiledOnce := shader.ColorAt(15, 5) // one rect-width to the right: same tile content
	if inside.R < 0.9 || tiledOnce.R < 0.9 {
		t.Errorf("solid-color tile should sample red everywhere, got %+v and %+v", inside, tiledOnce)
	}
}

func TestWrapIndexHandlesNegatives(t *testing.T) {
	if got := wrapIndex(-1, 10); got != 9 {
		t.Errorf("wrapIndex(-1, 10) = %d, want 9", got)
	}
	if got := wrapIndex(10, 10); got != 0 {
		t.Errorf("wrapIndex(10, 10) = %d, want 0", got)
	}
}

func TestCatmullRomWeightIsZeroBeyondSupport(t *testing.T) {
	if w := catmullRomWeight(2.5); w != 0 {
		t.Errorf("catmullRomWeight(2.5) = %v, want 0", w)
	}
	if w := catmullRomWeight(0); w != 1 {
		t.Errorf("catmullRomWeight(0) = %v, want 1", w)
	}
}
