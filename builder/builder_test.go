package builder

import (
	"testing"

	"github.com/gogpu/svgraster/blend"
	"github.com/gogpu/svgraster/geom"
	"github.com/gogpu/svgraster/pathdata"
	"github.com/gogpu/svgraster/resolved"
	"github.com/gogpu/svgraster/tree"
)

func rectPath(x, y, w, h float64) pathdata.Path {
	return pathdata.NewBuilder().Rectangle(x, y, w, h).Build()
}

func TestBuildComputesAbsoluteTransform(t *testing.T) {
	root := &resolved.Tree{
		ViewBox: geom.Rect{W: 100, H: 100},
		Root: &resolved.Group{
			Transform: geom.Translate(10, 20),
			Opacity:   1,
			BlendMode: blend.Normal,
			Children: []resolved.Node{
				&resolved.Path{
					Data:      rectPath(0, 0, 10, 10),
					Visible:   true,
					Fill:      &tree.Fill{Paint: tree.Paint{Solid: nil}},
					Transform: geom.Translate(5, 5),
				},
			},
		},
	}
	out := Build(root, geom.Rect{W: 100, H: 100})
	if out.Root == nil {
		t.Fatalf("expected a non-nil root group")
	}
	if len(out.Root.Children) != 1 {
		t.Fatalf("expected 1 child, got %d", len(out.Root.Children))
	}
	p, ok := out.Root.Children[0].(*tree.Path)
	if !ok {
		t.Fatalf("expected *tree.Path child")
	}
	want := geom.Translate(10, 20).Multiply(geom.Translate(5, 5))
	if p.AbsTransform != want {
		t.Errorf("AbsTransform = %+v, want %+v", p.AbsTransform, want)
	}
}

func TestBuildElidesEmptyChildGroup(t *testing.T) {
	root := &resolved.Tree{
		Root: &resolved.Group{
			Opacity:   1,
			BlendMode: blend.Normal,
			Children: []resolved.Node{
				&resolved.Group{Opacity: 1, BlendMode: blend.Normal},
			},
		},
	}
	out := Build(root, geom.Rect{W: 10, H: 10})
	if len(out.Root.Children) != 0 {
		t.Errorf("an empty child group with no filter region should be elided, got %d children", len(out.Root.Children))
	}
}

func TestBuildDedupsSharedClipPathByIdentity(t *testing.T) {
	shared := &tree.ClipPath{}
	root := &resolved.Tree{
		Root: &resolved.Group{
			Opacity:   1,
			BlendMode: blend.Normal,
			Children: []resolved.Node{
				&resolved.Path{Data: rectPath(0, 0, 10, 10), Visible: true},
				&resolved.Group{
					Opacity:   1,
					BlendMode: blend.Normal,
					Clip:      shared,
					Children:  []resolved.Node{&resolved.Path{Data: rectPath(0, 0, 10, 10), Visible: true}},
				},
				&resolved.Group{
					Opacity:   1,
					BlendMode: blend.Normal,
					Clip:      shared,
					Children:  []resolved.Node{&resolved.Path{Data: rectPath(0, 0, 10, 10), Visible: true}},
				},
			},
		},
	}
	out := Build(root, geom.Rect{W: 10, H: 10})
	if len(out.ClipPaths) != 1 {
		t.Errorf("two groups sharing one ClipPath by identity should register exactly once, got %d", len(out.ClipPaths))
	}
}

func TestBuildBreaksClipCycle(t *testing.T) {
	a := &tree.ClipPath{}
	bClip := &tree.ClipPath{Parent: a}
	a.Parent = bClip // cyclic parent chain

	root := &resolved.Tree{
		Root: &resolved.Group{
			Opacity:   1,
			BlendMode: blend.Normal,
			Clip:      a,
			Children:  []resolved.Node{&resolved.Path{Data: rectPath(0, 0, 10, 10), Visible: true}},
		},
	}
	out := Build(root, geom.Rect{W: 10, H: 10})
	seen := map[*tree.ClipPath]bool{}
	for cur := out.Root.Clip; cur != nil; cur = cur.Parent {
		if seen[cur] {
			t.Fatalf("clip parent chain still cyclic after Build")
		}
		seen[cur] = true
	}
}

func TestBuildInvisiblePathKeptAsNodeAndContributesBounds(t *testing.T) {
	root := &resolved.Tree{
		Root: &resolved.Group{
			Opacity:   1,
			BlendMode: blend.Normal,
			Children: []resolved.Node{
				&resolved.Path{Data: rectPath(0, 0, 20, 20), Visible: false, Transform: geom.Identity()},
			},
		},
	}
	out := Build(root, geom.Rect{W: 10, H: 10})
	if len(out.Root.Children) != 1 {
		t.Fatalf("invisible path should still be kept as a node for bbox purposes, got %d children", len(out.Root.Children))
	}
	p := out.Root.Children[0].(*tree.Path)
	if p.Visible {
		t.Errorf("path should remain marked invisible")
	}
	if out.Root.Bounds.Object.IsEmpty() {
		t.Errorf("group bounds should include the invisible path's bbox")
	}
}
