package tree

import (
	"testing"

	"github.com/gogpu/svgraster/blend"
	"github.com/gogpu/svgraster/geom"
)

func TestGroupTrivialDefault(t *testing.T) {
	g := &Group{Opacity: 1, BlendMode: blend.Normal}
	if !g.Trivial() {
		t.Errorf("default group (opacity 1, Normal, no clip/mask/filter) should be trivial")
	}
}

func TestGroupTrivialFalseOnOpacity(t *testing.T) {
	g := &Group{Opacity: 0.5, BlendMode: blend.Normal}
	if g.Trivial() {
		t.Errorf("opacity < 1 must not be trivial")
	}
}

func TestGroupTrivialFalseOnBlendMode(t *testing.T) {
	g := &Group{Opacity: 1, BlendMode: blend.Multiply}
	if g.Trivial() {
		t.Errorf("non-Normal blend mode must not be trivial")
	}
}

func TestGroupTrivialFalseOnIsolateClipMaskFilter(t *testing.T) {
	base := Group{Opacity: 1, BlendMode: blend.Normal}

	isolated := base
	isolated.Isolate = true
	if isolated.Trivial() {
		t.Errorf("isolated group must not be trivial")
	}

	clipped := base
	clipped.Clip = &ClipPath{}
	if clipped.Trivial() {
		t.Errorf("clipped group must not be trivial")
	}

	masked := base
	masked.Mask = &Mask{}
	if masked.Trivial() {
		t.Errorf("masked group must not be trivial")
	}

	filtered := base
	filtered.Filters = []*Filter{{}}
	if filtered.Trivial() {
		t.Errorf("filtered group must not be trivial")
	}
}

func TestPaintShaderDefaultsToTransparentSolid(t *testing.T) {
	var p Paint
	shader := p.Shader(geom.Rect{W: 10, H: 10}, nil)
	c := shader.ColorAt(0, 0)
	if c.A != 0 {
		t.Errorf("an empty Paint variant should resolve to a fully transparent solid, got alpha %v", c.A)
	}
}

func TestUnitsPaintUnitsMapping(t *testing.T) {
	if UserSpaceOnUse.paintUnits() != ObjectBoundingBox.paintUnits() {
		return
	}
	t.Errorf("UserSpaceOnUse and ObjectBoundingBox must map to distinct paintserver.Units")
}
