package paintserver

import (
	"testing"

	"github.com/gogpu/svgraster/colorspace"
	"github.com/gogpu/svgraster/geom"
)

func TestColorAtOffsetSingleStop(t *testing.T) {
	stops := []Stop{{Offset: 0.5, Color: colorspace.Color{R: 1, A: 1}}}
	got := ColorAtOffset(stops, 0.9, Pad)
	if got.R != 1 {
		t.Errorf("single-stop gradient should return that stop everywhere, got %+v", got)
	}
}

func TestColorAtOffsetPadClampsOutOfRange(t *testing.T) {
	stops := []Stop{
		{Offset: 0, Color: colorspace.Color{R: 1, A: 1}},
		{Offset: 1, Color: colorspace.Color{B: 1, A: 1}},
	}
	below := ColorAtOffset(stops, -0.5, Pad)
	above := ColorAtOffset(stops, 1.5, Pad)
	if below.R < 0.99 {
		t.Errorf("pad below 0 should clamp to first stop, got %+v", below)
	}
	if above.B < 0.99 {
		t.Errorf("pad above 1 should clamp to last stop, got %+v", above)
	}
}

func TestColorAtOffsetRepeatWraps(t *testing.T) {
	stops := []Stop{
		{Offset: 0, Color: colorspace.Color{R: 1, A: 1}},
		{Offset: 1, Color: colorspace.Color{B: 1, A: 1}},
	}
	at0 := ColorAtOffset(stops, 0, Repeat)
	at1 := ColorAtOffset(stops, 1.0, Repeat)
	if at0.R < 0.99 {
		t.Errorf("repeat at t=0 should be first stop, got %+v", at0)
	}
	if at1.R < 0.99 {
		t.Errorf("repeat at t=1 should wrap back to the first stop, got %+v", at1)
	}
}

func TestColorAtOffsetReflectMirrors(t *testing.T) {
	stops := []Stop{
		{Offset: 0, Color: colorspace.Color{R: 1, A: 1}},
		{Offset: 1, Color: colorspace.Color{B: 1, A: 1}},
	}
	// t=1.5 reflects to 0.5; t=2.5 reflects back to 0.5 too (period 2).
	a := ColorAtOffset(stops, 1.5, Reflect)
	b := ColorAtOffset(stops, 2.5, Reflect)
	if a.R != b.R || a.B != b.B {
		t.Errorf("reflect should be periodic with period 2: %+v vs %+v", a, b)
	}
}

func TestLinearGradientEndpointsMatchStops(t *testing.T) {
	g := &LinearGradient{
		Start: geom.Pt(0, 0), End: geom.Pt(100, 0),
		Stops: []Stop{
			{Offset: 0, Color: colorspace.Color{R: 1, A: 1}},
			{Offset: 1, Color: colorspace.Color{G: 1, A: 1}},
		},
		Spread: Pad, Transform: geom.Identity(), Opacity: 1,
	}
	start := g.ColorAt(0, 0)
	end := g.ColorAt(100, 0)
	if start.R < 0.99 {
		t.Errorf("gradient at start = %+v, want red", start)
	}
	if end.G < 0.99 {
		t.Errorf("gradient at end = %+v, want green", end)
	}
}

func TestLinearGradientDegenerateReturnsFirstStop(t *testing.T) {
	g := &LinearGradient{
		Start: geom.Pt(5, 5), End: geom.Pt(5, 5),
		Stops:     []Stop{{Offset: 0, Color: colorspace.Color{R: 1, A: 1}}},
		Transform: geom.Identity(), Opacity: 1,
	}
	got := g.ColorAt(5, 5)
	if got.R < 0.99 {
		t.Errorf("degenerate gradient should fall back to first stop, got %+v", got)
	}
}

func TestSolidMultipliesOpacity(t *testing.T) {
	s := Solid{Color: colorspace.Color{R: 1, A: 1}, Opacity: 0.5}
	got := s.ColorAt(0, 0)
	if got.A < 0.49 || got.A > 0.51 {
		t.Errorf("solid opacity = %v, want 0.5", got.A)
	}
}

func TestRadialGradientCenterIsFirstStop(t *testing.T) {
	g := &RadialGradient{
		Center: geom.Pt(50, 50), Focus: geom.Pt(50, 50),
		StartRadius: 0, Radius: 50,
		Stops: []Stop{
			{Offset: 0, Color: colorspace.Color{R: 1, A: 1}},
			{Offset: 1, Color: colorspace.Color{A: 1}},
		},
		Spread: Pad, Transform: geom.Identity(), Opacity: 1,
	}
	center := g.ColorAt(50, 50)
	edge := g.ColorAt(100, 50)
	if center.R < 0.99 {
		t.Errorf("radial gradient center = %+v, want red", center)
	}
	if edge.R > 0.01 {
		t.Errorf("radial gradient edge = %+v, want the opaque black last stop", edge)
	}
}

func TestResolveTransformObjectBoundingBox(t *testing.T) {
	bbox := geom.Rect{X: 10, Y: 20, W: 5, H: 8}
	tr := ResolveTransform(ObjectBoundingBox, bbox, geom.Identity())
	got := tr.TransformPoint(geom.Pt(1, 1))
	want := geom.Pt(15, 28)
	if got != want {
		t.Errorf("ResolveTransform(objectBoundingBox) unit-square corner = %+v, want %+v", got, want)
	}
}

func TestResolveTransformUserSpaceIgnoresBBox(t *testing.T) {
	local := geom.Translate(3, 4)
	tr := ResolveTransform(UserSpaceOnUse, geom.Rect{X: 100, Y: 100, W: 1, H: 1}, local)
	if tr != local {
		t.Errorf("ResolveTransform(userSpaceOnUse) should return local unchanged, got %+v", tr)
	}
}
