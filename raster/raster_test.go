package raster

import (
	"testing"

	"github.com/gogpu/svgraster/blend"
	"github.com/gogpu/svgraster/colorspace"
	"github.com/gogpu/svgraster/geom"
	"github.com/gogpu/svgraster/paintserver"
	"github.com/gogpu/svgraster/pathdata"
	"github.com/gogpu/svgraster/pixmap"
)

func TestFillSolidColorOpaqueInterior(t *testing.T) {
	dst := pixmap.New(30, 30)
	path := pathdata.NewBuilder().Rectangle(5, 5, 20, 20).Build()
	shader := paintserver.Solid{Color: colorspace.Color{R: 1, A: 1}, Opacity: 1}

	Fill(dst, path, pathdata.NonZero, geom.Identity(), shader, blend.Normal, 1)

	c := dst.ColorAt(15, 15)
	if c.A < 0.99 || c.R < 0.99 {
		t.Errorf("fill interior = %+v, want opaque red", c)
	}
	if a := dst.ColorAt(1, 1).A; a != 0 {
		t.Errorf("fill exterior alpha = %v, want 0", a)
	}
}

func TestFillRespectsOpacity(t *testing.T) {
	dst := pixmap.New(10, 10)
	path := pathdata.NewBuilder().Rectangle(0, 0, 10, 10).Build()
	shader := paintserver.Solid{Color: colorspace.Color{R: 1, A: 1}, Opacity: 1}

	Fill(dst, path, pathdata.NonZero, geom.Identity(), shader, blend.Normal, 0.5)

	if a := dst.ColorAt(5, 5).A; a < 0.45 || a > 0.55 {
		t.Errorf("fill alpha with opacity 0.5 = %v, want ~0.5", a)
	}
}

func TestStrokeWidensALine(t *testing.T) {
	dst := pixmap.New(20, 20)
	path := pathdata.NewBuilder().MoveTo(2, 10).LineTo(18, 10).Build()
	stroke := pathdata.DefaultStroke()
	stroke.Width = 6
	stroke.Opacity = 1
	shader := paintserver.Solid{Color: colorspace.Color{A: 1}, Opacity: 1}

	Stroke(dst, path, stroke, geom.Identity(), shader, blend.Normal, 1)

	if a := dst.ColorAt(10, 10).A; a < 0.99 {
		t.Errorf("stroke centerline alpha = %v, want opaque", a)
	}
	if a := dst.ColorAt(10, 2).A; a != 0 {
		t.Errorf("stroke should not reach 8px away from a 6px-wide centerline, got alpha %v", a)
	}
}

func TestRegisterAndActiveRoundTrip(t *testing.T) {
	defer Register(nil)

	var called bool
	Register(fillerFunc(func(pathdata.Path, pathdata.FillRule, geom.Transform, int, int, func(int, int, uint8)) {
		called = true
	}))
	Active().FillCoverage(pathdata.Path{}, pathdata.NonZero, geom.Identity(), 1, 1, func(int, int, uint8) {})
	if !called {
		t.Error("Register did not install the custom filler")
	}
}

type fillerFunc func(pathdata.Path, pathdata.FillRule, geom.Transform, int, int, func(int, int, uint8))

func (f fillerFunc) FillCoverage(path pathdata.Path, rule pathdata.FillRule, transform geom.Transform, w, h int, cb func(int, int, uint8)) {
	f(path, rule, transform, w, h, cb)
}
