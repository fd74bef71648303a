// Package resolved models spec §6.1's input render tree: the
// external collaborator's output. Stage 1 (the DOM parser, CSS
// cascade, and text shaper) is explicitly out of scope (spec §1); this
// package only names the shape that stage is expected to hand the
// builder — lengths already in user-space floats, text already
// flattened to paths, and paint-server/clip/mask/filter references
// already resolved to the shared tree.* handle types.
//
// No teacher grounding: gogpu-gg has no DOM-resolution stage of its
// own (its Context API draws immediately rather than building a tree
// to resolve first). Field shapes mirror tree.Group/Path/Image minus
// the builder-computed AbsTransform/Bounds, which is exactly what §4.1
// says the builder adds.
package resolved

import (
	"github.com/gogpu/svgraster/blend"
	"github.com/gogpu/svgraster/geom"
	"github.com/gogpu/svgraster/pathdata"
	"github.com/gogpu/svgraster/pixmap"
	"github.com/gogpu/svgraster/tree"
)

// Node is the resolved-DOM counterpart of tree.Node: a shape the
// builder has not yet assigned an absolute transform or bounding
// boxes to.
type Node interface {
	isNode()
}

// Tree is a resolved document (or a resolved pattern/clip/mask
// sub-content group, or a nested SVG document) ready for Build.
type Tree struct {
	ViewBox     geom.Rect
	AspectRatio geom.AspectRatio
	Root        *Group
}

// Group mirrors tree.Group before AbsTransform/Bounds exist.
type Group struct {
	Transform geom.Transform
	Opacity   float64
	BlendMode blend.Mode
	Isolate   bool
	Clip      *tree.ClipPath
	Mask      *tree.Mask
	Filters   []*tree.Filter
	Children  []Node
}

func (*Group) isNode() {}

// Path mirrors tree.Path before AbsTransform/Bounds exist. Visible
// tracks display:none / visibility:hidden from the cascade: the
// builder keeps an invisible path as a tree.Path with Visible false so
// it still counts for bbox purposes, and the compositor does not draw
// it.
type Path struct {
	Data           pathdata.Path
	Fill           *tree.Fill
	Stroke         *tree.PathStroke
	Order          tree.PaintOrder
	ShapeRendering tree.ShapeRendering
	Visible        bool
	Transform      geom.Transform
}

func (*Path) isNode() {}

// Image mirrors tree.Image before AbsTransform/Bounds exist.
type Image struct {
	Rect        geom.Rect
	AspectRatio geom.AspectRatio
	Quality     tree.ImageQuality
	Kind        tree.ImageKind
	Raster      *pixmap.Pixmap
	SubTree     *Tree
	ForeignNode Node
	Transform   geom.Transform
}

func (*Image) isNode() {}
