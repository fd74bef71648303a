package compositor

import (
	"testing"

	svgraster "github.com/gogpu/svgraster"
	"github.com/gogpu/svgraster/blend"
	"github.com/gogpu/svgraster/colorspace"
	"github.com/gogpu/svgraster/geom"
	"github.com/gogpu/svgraster/paintserver"
	"github.com/gogpu/svgraster/pathdata"
	"github.com/gogpu/svgraster/pixmap"
	"github.com/gogpu/svgraster/tree"
)

func rectPath(x, y, w, h float64) pathdata.Path {
	return pathdata.NewBuilder().Rectangle(x, y, w, h).Build()
}

func solidFill(c colorspace.Color) *tree.Fill {
	return &tree.Fill{
		Paint:   tree.Paint{Solid: &paintserver.Solid{Color: c}},
		Opacity: 1,
		Rule:    pathdata.NonZero,
	}
}

func TestRenderDrawsFilledPathIntoPixmap(t *testing.T) {
	path := &tree.Path{
		Data:         rectPath(2, 2, 6, 6),
		Visible:      true,
		AbsTransform: geom.Identity(),
		Fill:         solidFill(colorspace.Color{R: 1, A: 1}),
	}
	root := &tree.Group{
		Opacity:      1,
		BlendMode:    blend.Normal,
		AbsTransform: geom.Identity(),
		Children:     []tree.Node{path},
	}
	tr := &tree.Tree{
		Size:        geom.Rect{W: 10, H: 10},
		ViewBox:     geom.Rect{W: 10, H: 10},
		AspectRatio: geom.DefaultAspectRatio(),
		Root:        root,
	}
	dst := pixmap.New(10, 10)
	Render(tr, dst)

	if dst.ColorAt(5, 5).A == 0 {
		t.Errorf("expected filled pixel at (5,5), got transparent")
	}
	if dst.ColorAt(0, 0).A != 0 {
		t.Errorf("expected untouched pixel at (0,0) to remain transparent")
	}
}

func TestRenderNilTreeIsNoop(t *testing.T) {
	dst := pixmap.New(4, 4)
	Render(nil, dst)
	if dst.ColorAt(0, 0).A != 0 {
		t.Errorf("Render(nil, ...) must not touch dst")
	}
}

func TestRenderAppliesGroupOpacity(t *testing.T) {
	path := &tree.Path{
		Data:         rectPath(0, 0, 10, 10),
		Visible:      true,
		AbsTransform: geom.Identity(),
		Fill:         solidFill(colorspace.Color{R: 1, A: 1}),
	}
	inner := &tree.Group{
		Opacity:      0.5,
		BlendMode:    blend.Normal,
		AbsTransform: geom.Identity(),
		Children:     []tree.Node{path},
	}
	root := &tree.Group{
		Opacity:      1,
		BlendMode:    blend.Normal,
		AbsTransform: geom.Identity(),
		Children:     []tree.Node{inner},
	}
	tr := &tree.Tree{
		Size:        geom.Rect{W: 4, H: 4},
		ViewBox:     geom.Rect{W: 4, H: 4},
		AspectRatio: geom.DefaultAspectRatio(),
		Root:        root,
	}
	dst := pixmap.New(4, 4)
	Render(tr, dst)

	got := dst.ColorAt(2, 2)
	if got.A < 0.4 || got.A > 0.6 {
		t.Errorf("expected ~0.5 alpha from a 0.5-opacity group, got %v", got.A)
	}
}

func TestRenderWithFitSizeUsesOverrideNotDstSize(t *testing.T) {
	path := &tree.Path{
		Data:         rectPath(0, 0, 10, 10),
		Visible:      true,
		AbsTransform: geom.Identity(),
		Fill:         solidFill(colorspace.Color{R: 1, A: 1}),
	}
	root := &tree.Group{
		Opacity:      1,
		BlendMode:    blend.Normal,
		AbsTransform: geom.Identity(),
		Children:     []tree.Node{path},
	}
	tr := &tree.Tree{
		Size:        geom.Rect{W: 10, H: 10},
		ViewBox:     geom.Rect{W: 10, H: 10},
		AspectRatio: geom.DefaultAspectRatio(),
		Root:        root,
	}
	dst := pixmap.New(20, 20)
	Render(tr, dst, svgraster.WithFitSize(10, 10))

	// fitting against a 10x10 rect instead of dst's actual 20x20 means
	// content should land near the top-left quadrant, not be scaled up
	// to fill the whole 20x20 buffer.
	if dst.ColorAt(5, 5).A == 0 {
		t.Errorf("expected fitted content near (5,5)")
	}
	if dst.ColorAt(18, 18).A != 0 {
		t.Errorf("expected no content drawn at (18,18) once fit to a 10x10 rect")
	}
}
