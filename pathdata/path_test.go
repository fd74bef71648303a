package pathdata

import (
	"math"
	"testing"

	"github.com/gogpu/svgraster/geom"
)

func TestBuilderRectangleElementCount(t *testing.T) {
	p := NewBuilder().Rectangle(0, 0, 100, 50).Build()
	if len(p.Elements) != 5 { // MoveTo, 3x LineTo, Close
		t.Fatalf("expected 5 elements, got %d", len(p.Elements))
	}
}

func TestEmptyPathDrawsNothing(t *testing.T) {
	p := Path{}
	if !p.IsEmpty() {
		t.Fatal("zero-value path should be empty")
	}
	if !p.Bounds().IsEmpty() {
		t.Fatal("empty path should have empty bounds")
	}
}

func TestRectangleBoundsIsExact(t *testing.T) {
	p := NewBuilder().Rectangle(10, 20, 30, 40).Build()
	b := p.Bounds()
	want := geom.Rect{X: 10, Y: 20, W: 30, H: 40}
	if b != want {
		t.Errorf("bounds = %+v, want %+v", b, want)
	}
}

func TestCircleBoundsIncludesExtrema(t *testing.T) {
	// A circle's control polygon overshoots its radius, so the tight
	// bbox must come from the curve's extrema, not just its endpoints
	// and control points.
	p := NewBuilder().Circle(50, 50, 25).Build()
	b := p.Bounds()
	const eps = 1e-6
	if math.Abs(b.X-25) > eps || math.Abs(b.Y-25) > eps {
		t.Errorf("circle bbox origin = (%v,%v), want (25,25)", b.X, b.Y)
	}
	if math.Abs(b.W-50) > eps || math.Abs(b.H-50) > eps {
		t.Errorf("circle bbox size = (%v,%v), want (50,50)", b.W, b.H)
	}
}

func TestTransformAppliesToAllPoints(t *testing.T) {
	p := NewBuilder().Rectangle(0, 0, 10, 10).Build()
	moved := p.Transform(geom.Translate(5, 5))
	b := moved.Bounds()
	want := geom.Rect{X: 5, Y: 5, W: 10, H: 10}
	if b != want {
		t.Errorf("translated bounds = %+v, want %+v", b, want)
	}
}

func TestStrokeBoundsEqualsFillBoundsWithNoStroke(t *testing.T) {
	p := NewBuilder().Rectangle(0, 0, 10, 10).Build()
	fill := p.Bounds()
	stroke := p.StrokeBounds(Stroke{}) // zero-width: no stroke
	if fill != stroke {
		t.Errorf("stroke bounds with zero width = %+v, want %+v", stroke, fill)
	}
}

func TestStrokeBoundsExpandsForWideStroke(t *testing.T) {
	p := NewBuilder().Rectangle(0, 0, 10, 10).Build()
	fill := p.Bounds()
	s := DefaultStroke()
	s.Width = 4
	stroke := p.StrokeBounds(s)
	if !(stroke.X < fill.X && stroke.Y < fill.Y && stroke.W > fill.W && stroke.H > fill.H) {
		t.Errorf("stroke bounds %+v should strictly contain fill bounds %+v", stroke, fill)
	}
}

func TestDashIsDashedDetection(t *testing.T) {
	if (&Dash{}).IsDashed() {
		t.Error("empty dash pattern should not be dashed")
	}
	if (&Dash{Pattern: []float64{0, 0}}).IsDashed() {
		t.Error("all-zero dash pattern should not be dashed")
	}
	if !(&Dash{Pattern: []float64{5, 3}}).IsDashed() {
		t.Error("non-zero dash pattern should be dashed")
	}
}
