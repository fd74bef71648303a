package filter

import (
	"testing"

	"github.com/gogpu/svgraster/colorspace"
	"github.com/gogpu/svgraster/geom"
	"github.com/gogpu/svgraster/pixmap"
	"github.com/gogpu/svgraster/tree"
)

func solidSource(w, h int, c colorspace.Color) *pixmap.Pixmap {
	p := pixmap.New(w, h)
	p.Fill(c)
	return p
}

func TestApplyNilFilterReturnsSourceUnchanged(t *testing.T) {
	src := solidSource(4, 4, colorspace.Color{R: 1, A: 1})
	out := Apply(nil, geom.Rect{W: 4, H: 4}, geom.Identity(), src)
	if out != src {
		t.Errorf("Apply with a nil filter should return source unchanged")
	}
}

func TestApplyOffsetShiftsContent(t *testing.T) {
	src := pixmap.New(10, 10)
	src.SetColor(1, 1, colorspace.Color{R: 1, A: 1})

	f := &tree.Filter{
		Region: geom.Rect{W: 10, H: 10},
		Primitives: []tree.Primitive{
			{
				Kind:   tree.PrimOffset,
				Inputs: []tree.PrimitiveInput{tree.SourceGraphic},
				Params: tree.PrimitiveParams{Offset: tree.OffsetParams{DX: 2, DY: 0}},
			},
		},
	}
	out := Apply(f, geom.Rect{W: 10, H: 10}, geom.Identity(), src)
	if out.ColorAt(3, 1).A == 0 {
		t.Errorf("expected offset content to land at (3,1), got transparent")
	}
}

func TestApplyEmptyRegionSkipsFilter(t *testing.T) {
	src := solidSource(4, 4, colorspace.Color{R: 1, A: 1})
	f := &tree.Filter{
		Region: geom.Rect{},
		Primitives: []tree.Primitive{
			{Kind: tree.PrimOffset, Params: tree.PrimitiveParams{Offset: tree.OffsetParams{DX: 1}}},
		},
	}
	out := Apply(f, geom.Rect{W: 4, H: 4}, geom.Identity(), src)
	if out != src {
		t.Errorf("an empty (I5) filter region should skip the filter and return source unchanged")
	}
}

func TestApplyFloodFillsRegion(t *testing.T) {
	src := pixmap.New(4, 4)
	f := &tree.Filter{
		Region: geom.Rect{W: 4, H: 4},
		Primitives: []tree.Primitive{
			{
				Kind:   tree.PrimFlood,
				Params: tree.PrimitiveParams{Flood: tree.FloodParams{Color: colorspace.Color{G: 1, A: 1}, Opacity: 1}},
			},
		},
	}
	out := Apply(f, geom.Rect{W: 4, H: 4}, geom.Identity(), src)
	if out.ColorAt(2, 2).A == 0 {
		t.Errorf("feFlood should fill the filter region with an opaque color")
	}
}
