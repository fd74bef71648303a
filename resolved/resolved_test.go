package resolved

import (
	"testing"

	"github.com/gogpu/svgraster/blend"
)

func TestNodeVariantsImplementNode(t *testing.T) {
	var nodes = []Node{
		&Group{Opacity: 1, BlendMode: blend.Normal},
		&Path{Visible: true},
		&Image{},
	}
	for i, n := range nodes {
		if n == nil {
			t.Errorf("node %d is nil", i)
		}
	}
}

func TestGroupZeroValueHasNoChildren(t *testing.T) {
	g := &Group{}
	if len(g.Children) != 0 {
		t.Errorf("zero-value Group should have no children, got %d", len(g.Children))
	}
	if g.Clip != nil || g.Mask != nil {
		t.Errorf("zero-value Group should have no clip or mask reference")
	}
}
