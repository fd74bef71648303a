package clipengine

import (
	"testing"

	"github.com/gogpu/svgraster/colorspace"
	"github.com/gogpu/svgraster/geom"
	"github.com/gogpu/svgraster/pathdata"
	"github.com/gogpu/svgraster/pixmap"
	"github.com/gogpu/svgraster/tree"
)

func rectPath(x, y, w, h float64) pathdata.Path {
	return pathdata.NewBuilder().Rectangle(x, y, w, h).Build()
}

func TestApplyClipKeepsInsideDropsOutside(t *testing.T) {
	canvas := pixmap.New(10, 10)
	canvas.Fill(colorspace.Color{R: 1, A: 1})

	clip := &tree.ClipPath{
		Transform: geom.Identity(),
		Content: &tree.Group{
			Children: []tree.Node{
				&tree.Path{Data: rectPath(0, 0, 5, 5), Visible: true, AbsTransform: geom.Identity()},
			},
		},
	}

	Apply(clip, geom.Rect{W: 10, H: 10}, geom.Identity(), canvas, nil)

	inside := canvas.ColorAt(2, 2)
	outside := canvas.ColorAt(8, 8)
	if inside.A == 0 {
		t.Errorf("pixel inside the clip shape should remain opaque, got alpha %v", inside.A)
	}
	if outside.A != 0 {
		t.Errorf("pixel outside the clip shape should become transparent, got alpha %v", outside.A)
	}
}

func TestApplyObjectBBoxClipAgainstEmptyBBoxClearsCanvas(t *testing.T) {
	canvas := pixmap.New(4, 4)
	canvas.Fill(colorspace.Color{R: 1, A: 1})

	clip := &tree.ClipPath{Units: tree.ObjectBoundingBox}
	Apply(clip, geom.Rect{}, geom.Identity(), canvas, nil)

	if canvas.ColorAt(1, 1).A != 0 {
		t.Errorf("object-bbox clip against a zero-area shape should clear the whole canvas (I4-adjacent)")
	}
}

func TestApplyNilClipIsNoop(t *testing.T) {
	canvas := pixmap.New(2, 2)
	canvas.Fill(colorspace.Color{R: 1, A: 1})
	Apply(nil, geom.Rect{W: 2, H: 2}, geom.Identity(), canvas, nil)
	if canvas.ColorAt(0, 0).A != 1 {
		t.Errorf("a nil ClipPath must leave the canvas untouched")
	}
}
