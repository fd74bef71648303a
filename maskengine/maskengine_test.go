package maskengine

import (
	"testing"

	"github.com/gogpu/svgraster/colorspace"
	"github.com/gogpu/svgraster/geom"
	"github.com/gogpu/svgraster/pixmap"
	"github.com/gogpu/svgraster/tree"
)

func whiteRenderer(content *tree.Group, transform geom.Transform, w, h int) *pixmap.Pixmap {
	p := pixmap.New(w, h)
	p.Fill(colorspace.Color{R: 1, G: 1, B: 1, A: 1})
	return p
}

func TestApplyLuminanceMaskScalesAlphaByLuma(t *testing.T) {
	canvas := pixmap.New(4, 4)
	canvas.Fill(colorspace.Color{R: 1, A: 1})

	mask := &tree.Mask{
		Rect:    geom.Rect{W: 4, H: 4},
		Type:    tree.MaskLuminance,
		Content: &tree.Group{},
	}
	Apply(mask, geom.Rect{W: 4, H: 4}, geom.Identity(), canvas, whiteRenderer)

	got := canvas.ColorAt(1, 1)
	if got.A < 0.9 {
		t.Errorf("a pure-white mask should leave alpha near 1, got %v", got.A)
	}
}

func TestApplyMaskClipsToRect(t *testing.T) {
	canvas := pixmap.New(10, 10)
	canvas.Fill(colorspace.Color{R: 1, A: 1})

	mask := &tree.Mask{
		Rect:    geom.Rect{W: 4, H: 4},
		Type:    tree.MaskAlpha,
		Content: &tree.Group{},
	}
	opaqueRenderer := func(content *tree.Group, transform geom.Transform, w, h int) *pixmap.Pixmap {
		p := pixmap.New(w, h)
		p.Fill(colorspace.Color{A: 1})
		return p
	}
	Apply(mask, geom.Rect{W: 10, H: 10}, geom.Identity(), canvas, opaqueRenderer)

	if canvas.ColorAt(1, 1).A == 0 {
		t.Errorf("pixel inside the mask's rect should keep its alpha-mask contribution")
	}
	if canvas.ColorAt(8, 8).A != 0 {
		t.Errorf("pixel outside the mask's rect should be clipped to transparent")
	}
}

func TestApplyObjectBBoxMaskAgainstEmptyBBoxClearsCanvas(t *testing.T) {
	canvas := pixmap.New(2, 2)
	canvas.Fill(colorspace.Color{R: 1, A: 1})

	mask := &tree.Mask{Units: tree.ObjectBoundingBox}
	Apply(mask, geom.Rect{}, geom.Identity(), canvas, whiteRenderer)

	if canvas.ColorAt(0, 0).A != 0 {
		t.Errorf("object-bbox mask against a zero-area shape should clear the canvas")
	}
}

func TestApplyNilMaskIsNoop(t *testing.T) {
	canvas := pixmap.New(2, 2)
	canvas.Fill(colorspace.Color{R: 1, A: 1})
	Apply(nil, geom.Rect{W: 2, H: 2}, geom.Identity(), canvas, whiteRenderer)
	if canvas.ColorAt(0, 0).A != 1 {
		t.Errorf("a nil Mask must leave the canvas untouched")
	}
}
