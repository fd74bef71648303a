package imageengine

import (
	"testing"

	"github.com/gogpu/svgraster/colorspace"
	"github.com/gogpu/svgraster/geom"
	"github.com/gogpu/svgraster/pixmap"
	"github.com/gogpu/svgraster/tree"
)

func TestPlacementTransformComposesAbsAndFit(t *testing.T) {
	img := &tree.Image{
		Rect:         geom.Rect{X: 10, Y: 10, W: 20, H: 20},
		AspectRatio:  geom.DefaultAspectRatio(),
		AbsTransform: geom.Translate(100, 0),
	}
	intrinsic := geom.Rect{W: 20, H: 20}
	got := PlacementTransform(img, intrinsic)

	// a 20x20 intrinsic rect placed into a 20x20 rect at (10,10) under
	// the default (meet, xMidYMid) policy is just a translate to (10,10);
	// composed in front of AbsTransform's translate(100,0).
	p := got.TransformPoint(geom.Point{X: 0, Y: 0})
	if p.X != 110 || p.Y != 10 {
		t.Errorf("PlacementTransform origin = (%v,%v), want (110,10)", p.X, p.Y)
	}
}

func TestScalerSelectsByQuality(t *testing.T) {
	cases := map[tree.ImageQuality]bool{
		tree.ImageQualityNearest:       true,
		tree.ImageQualityOptimizeSpeed: true,
		tree.ImageQualityBilinear:      true,
		tree.ImageQualityCatmullRom:    true,
		tree.ImageQualityAuto:          true,
	}
	for q := range cases {
		if Scaler(q) == nil {
			t.Errorf("Scaler(%v) returned nil", q)
		}
	}
}

func TestDrawRasterPlacesContentAtOffset(t *testing.T) {
	src := pixmap.New(2, 2)
	src.Fill(colorspace.Color{R: 1, A: 1})

	dst := pixmap.New(10, 10)
	DrawRaster(dst, src, geom.Translate(4, 4), tree.ImageQualityNearest)

	if dst.ColorAt(5, 5).A == 0 {
		t.Errorf("expected drawn content at (5,5), got transparent")
	}
	if dst.ColorAt(0, 0).A != 0 {
		t.Errorf("expected untouched pixel at (0,0) to remain transparent")
	}
}

func TestDrawRasterEmptyPlacementIsNoop(t *testing.T) {
	src := pixmap.New(2, 2)
	src.Fill(colorspace.Color{R: 1, A: 1})
	dst := pixmap.New(4, 4)

	// a degenerate (zero-scale) placement should not panic or draw anything.
	DrawRaster(dst, src, geom.Transform{SX: 0, SY: 0, TX: 1, TY: 1}, tree.ImageQualityNearest)

	if dst.ColorAt(1, 1).A != 0 {
		t.Errorf("degenerate placement should not draw, got alpha %v", dst.ColorAt(1, 1).A)
	}
}
