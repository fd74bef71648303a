package geom

import (
	"math"
	"testing"
)

func TestTransformMultiplyComposition(t *testing.T) {
	tests := []struct {
		name   string
		parent Transform
		child  Transform
		point  Point
	}{
		{"identity both", Identity(), Identity(), Pt(5, 7)},
		{"translate then scale", Translate(10, 20), Scale(2, 3), Pt(1, 1)},
		{"rotate then translate", Rotate(math.Pi / 2), Translate(5, 0), Pt(1, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			combined := tt.parent.Multiply(tt.child)
			got := combined.TransformPoint(tt.point)
			want := tt.parent.TransformPoint(tt.child.TransformPoint(tt.point))
			if math.Abs(got.X-want.X) > 1e-9 || math.Abs(got.Y-want.Y) > 1e-9 {
				t.Errorf("combined transform = %+v, want %+v", got, want)
			}
		})
	}
}

func TestTransformInvertRoundTrip(t *testing.T) {
	ms := []Transform{
		Identity(),
		Translate(3, -4),
		Scale(2, 0.5),
		Rotate(1.2),
		Scale(2, 3).Multiply(Translate(5, 6)),
	}
	p := Pt(11, -3)
	for _, m := range ms {
		inv := m.Invert()
		got := inv.TransformPoint(m.TransformPoint(p))
		if math.Abs(got.X-p.X) > 1e-7 || math.Abs(got.Y-p.Y) > 1e-7 {
			t.Errorf("Invert round trip: got %+v, want %+v", got, p)
		}
	}
}

func TestRectUnionWithEmpty(t *testing.T) {
	r := Rect{X: 1, Y: 2, W: 3, H: 4}
	if got := r.Union(EmptyRect()); got != r {
		t.Errorf("Union(Empty) = %+v, want %+v", got, r)
	}
	if got := EmptyRect().Union(r); got != r {
		t.Errorf("Empty.Union(r) = %+v, want %+v", got, r)
	}
}

func TestFitTransformMeetVsSlice(t *testing.T) {
	src := Rect{X: 0, Y: 0, W: 100, H: 50}
	dst := Rect{X: 0, Y: 0, W: 100, H: 100}

	meet := AspectRatio{Align: AlignXMidYMid, Slice: Meet}.FitTransform(src, dst)
	if meet.SX != 1 || meet.SY != 1 {
		t.Errorf("meet scale = (%v,%v), want (1,1)", meet.SX, meet.SY)
	}
	if meet.TY != 25 {
		t.Errorf("meet centers vertically: TY = %v, want 25", meet.TY)
	}

	slice := AspectRatio{Align: AlignXMidYMid, Slice: Slice}.FitTransform(src, dst)
	if slice.SX != 2 || slice.SY != 2 {
		t.Errorf("slice scale = (%v,%v), want (2,2)", slice.SX, slice.SY)
	}
}

func TestFromBBoxMapsUnitSquare(t *testing.T) {
	b := Rect{X: 10, Y: 20, W: 5, H: 8}
	m := FromBBox(b)
	if got := m.TransformPoint(Pt(0, 0)); got != (Point{X: 10, Y: 20}) {
		t.Errorf("origin = %+v, want (10,20)", got)
	}
	if got := m.TransformPoint(Pt(1, 1)); got != (Point{X: 15, Y: 28}) {
		t.Errorf("(1,1) = %+v, want (15,28)", got)
	}
}
