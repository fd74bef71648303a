// Package tree implements the render tree described in spec §3: the
// immutable, reference-counted intermediate form the builder produces
// from a resolved DOM and the compositor walks to rasterize a pixmap.
//
// Grounded on gogpu-gg's scene package (scene/scene.go, scene/layer.go),
// generalized from its immediate-mode push/pop layer-stack encoding
// into a retained, fully-built tree: this module's builder constructs
// the whole tree once up front (spec §4.1) rather than recording
// drawing calls incrementally, so the compositor can recurse over it
// as plain data instead of replaying an encoding.
package tree

import (
	"github.com/gogpu/svgraster/blend"
	"github.com/gogpu/svgraster/geom"
	"github.com/gogpu/svgraster/paintserver"
	"github.com/gogpu/svgraster/pathdata"
	"github.com/gogpu/svgraster/pixmap"
)

// Node is the tagged four-case variant named in spec §3.
type Node interface {
	isNode()
}

// GroupRenderer recurses into the compositor to render a Group's
// children into a freshly allocated pixmap of the given size under
// transform, the same dependency-inversion shape as
// paintserver.TileRenderer: clipengine and maskengine need the full
// compositor recursion for nested clip groups and mask sub-groups but
// cannot import the compositor package without a cycle.
type GroupRenderer func(g *Group, transform geom.Transform, width, height int) *pixmap.Pixmap

// Bounds is the three-box set the builder computes for every node
// (spec §4.1): Object is tight shape bounds, TObject is Object after
// the node's own transform, Layer additionally includes stroke width
// and filter regions.
type Bounds struct {
	Object  geom.Rect
	TObject geom.Rect
	Layer   geom.Rect
}

// Tree is the root container (spec §3 Tree entity).
type Tree struct {
	Size          geom.Rect // target image width/height, X=Y=0
	ViewBox       geom.Rect
	AspectRatio   geom.AspectRatio
	Root          *Group
	LinearGrads   []*LinearGradient
	RadialGrads   []*RadialGradient
	Patterns      []*Pattern
	ClipPaths     []*ClipPath
	Masks         []*Mask
	Filters       []*Filter
}

// Group is a compositing container (spec §3 Group entity).
type Group struct {
	Transform    geom.Transform // relative to parent
	AbsTransform geom.Transform // I1: composition of all ancestor transforms
	Opacity      float64
	BlendMode    blend.Mode
	Isolate      bool
	Clip         *ClipPath
	Mask         *Mask
	Filters      []*Filter
	Bounds       Bounds
	Children     []Node
}

func (*Group) isNode() {}

// Trivial reports whether the group emits no layer (spec §3: "a group
// is trivial iff opacity=1 ∧ blend=Normal ∧ ¬isolate ∧ no clip ∧ no
// mask ∧ no filters").
func (g *Group) Trivial() bool {
	return g.Opacity >= 1 && g.BlendMode == blend.Normal && !g.Isolate &&
		g.Clip == nil && g.Mask == nil && len(g.Filters) == 0
}

// PaintOrder selects whether a Path's fill draws before its stroke.
type PaintOrder uint8

const (
	FillThenStroke PaintOrder = iota
	StrokeThenFill
)

// Fill is a Path node's optional fill paint.
type Fill struct {
	Paint   Paint
	Opacity float64
	Rule    pathdata.FillRule
}

// PathStroke is a Path node's optional stroke paint, pairing a paint
// server with the rasterizer's stroke style.
type PathStroke struct {
	Paint  Paint
	Stroke pathdata.Stroke
}

// ShapeRendering is the anti-aliasing hint carried per Path (spec §4.2
// step 1, "honoring ... the shape-rendering (anti-aliasing) hint").
type ShapeRendering uint8

const (
	ShapeRenderingAuto ShapeRendering = iota
	ShapeRenderingCrispEdges
	ShapeRenderingOptimizeSpeed
	ShapeRenderingGeometricPrecision
)

// Path is a filled and/or stroked geometric path (spec §3 Path entity).
type Path struct {
	Data           pathdata.Path
	Fill           *Fill
	Stroke         *PathStroke
	Order          PaintOrder
	ShapeRendering ShapeRendering
	Visible        bool
	AbsTransform   geom.Transform
	Bounds         Bounds // Object/TObject tight, Layer includes stroke outset
}

func (*Path) isNode() {}

// ImageKind selects what an Image node places into its rectangle.
type ImageKind uint8

const (
	ImageRaster ImageKind = iota
	ImageSubTree
	ImageForeignNode // feImage-only externally parsed sub-node
)

// ImageQuality is the rendering-quality hint of an Image node.
type ImageQuality uint8

const (
	ImageQualityAuto ImageQuality = iota
	ImageQualityOptimizeSpeed
	ImageQualityNearest
	ImageQualityBilinear
	ImageQualityCatmullRom
)

// Image places a raster or vector image in a rectangle (spec §3 Image
// entity).
type Image struct {
	Rect         geom.Rect
	AspectRatio  geom.AspectRatio
	Quality      ImageQuality
	Kind         ImageKind
	Raster       *pixmap.Pixmap
	SubTree      *Tree
	ForeignNode  Node
	AbsTransform geom.Transform
	Bounds       Bounds
}

func (*Image) isNode() {}

// Paint is the variant resolved by the paint server (spec §3 Paint
// entity): solid color, linear/radial gradient, or pattern.
type Paint struct {
	Solid   *paintserver.Solid
	Linear  *LinearGradient
	Radial  *RadialGradient
	Pattern *Pattern
}

// Shader resolves the paint variant into a paintserver.Shader ready
// for the rasterizer, given the owning shape's object bbox (I4: the
// caller must first confirm objectBBox is non-empty for object-bbox
// units paints).
func (p Paint) Shader(objectBBox geom.Rect, render paintserver.TileRenderer) paintserver.Shader {
	switch {
	case p.Solid != nil:
		return *p.Solid
	case p.Linear != nil:
		return p.Linear.Resolve(objectBBox)
	case p.Radial != nil:
		return p.Radial.Resolve(objectBBox)
	case p.Pattern != nil:
		return p.Pattern.ResolveWith(objectBBox, render)
	default:
		return paintserver.Solid{}
	}
}

// LinearGradient wraps paintserver.LinearGradient with the unit
// system and identity-handle bookkeeping the tree's registry needs
// (spec §3 Paint: "Gradients and patterns are shared via reference
// counting").
type LinearGradient struct {
	Units Units
	Grad  paintserver.LinearGradient
}

// RadialGradient mirrors LinearGradient for radial gradients.
type RadialGradient struct {
	Units Units
	Grad  paintserver.RadialGradient
}

// Pattern mirrors paintserver.Pattern plus its unit system and
// content sub-Group, resolved through an injected TileRenderer at
// draw time (see paintserver/pattern.go's dependency-inversion note).
type Pattern struct {
	Units        Units
	ContentUnits Units
	Rect         geom.Rect
	ViewBox      *geom.Rect
	Transform    geom.Transform
	Content      *Group
}

// Units mirrors paintserver.Units at the tree layer so clip/mask/
// filter/paint-server regions all share one unit-resolution vocabulary.
type Units uint8

const (
	UserSpaceOnUse Units = iota
	ObjectBoundingBox
)

func (u Units) paintUnits() paintserver.Units {
	if u == ObjectBoundingBox {
		return paintserver.ObjectBoundingBox
	}
	return paintserver.UserSpaceOnUse
}

// Resolve converts the gradient's local transform into user space per
// its unit system (I4), mirroring paintserver.ResolveTransform.
func (g *LinearGradient) Resolve(objectBBox geom.Rect) paintserver.Shader {
	grad := g.Grad
	grad.Transform = paintserver.ResolveTransform(g.Units.paintUnits(), objectBBox, grad.Transform)
	return &grad
}

func (g *RadialGradient) Resolve(objectBBox geom.Rect) paintserver.Shader {
	grad := g.Grad
	grad.Transform = paintserver.ResolveTransform(g.Units.paintUnits(), objectBBox, grad.Transform)
	return &grad
}

// ResolveWith resolves the pattern's rect/transform against the
// owning object bbox and binds render as the tile renderer, returning
// a paintserver.Shader.
func (p *Pattern) ResolveWith(objectBBox geom.Rect, render paintserver.TileRenderer) paintserver.Shader {
	rect := p.Rect
	if p.Units == ObjectBoundingBox {
		m := geom.FromBBox(objectBBox)
		rect = geom.Rect{
			X: m.TransformPoint(geom.Pt(rect.X, rect.Y)).X,
			Y: m.TransformPoint(geom.Pt(rect.X, rect.Y)).Y,
			W: rect.W * objectBBox.W,
			H: rect.H * objectBBox.H,
		}
	}
	sx, sy := p.Transform.ScaleFactors()
	ps := &paintserver.Pattern{
		Rect:      rect,
		ViewBox:   p.ViewBox,
		Transform: p.Transform,
		Opacity:   1,
		Render:    render,
	}
	return ps.Resolve(sx, sy)
}

// ClipPath is spec §3's ClipPath entity: a local transform, an
// optional chained parent clip, and a sub-Group of clipping shapes.
type ClipPath struct {
	Units     Units
	Transform geom.Transform
	Parent    *ClipPath
	Content   *Group
}

// MaskType selects how Mask derives its alpha field (spec §3 Mask).
type MaskType uint8

const (
	MaskLuminance MaskType = iota
	MaskAlpha
)

// Mask is spec §3's Mask entity.
type Mask struct {
	Rect         geom.Rect
	Units        Units
	ContentUnits Units
	Type         MaskType
	Parent       *Mask
	Content      *Group
}

// PrimitiveInput names either a source token or a preceding
// primitive's result (spec §3 Filter entity, I3).
type PrimitiveInput string

const (
	SourceGraphic   PrimitiveInput = "SourceGraphic"
	SourceAlpha     PrimitiveInput = "SourceAlpha"
	BackgroundImage PrimitiveInput = "BackgroundImage"
	FillPaint       PrimitiveInput = "FillPaint"
	StrokePaint     PrimitiveInput = "StrokePaint"
)

// Primitive is one operation in a Filter's ordered pipeline (spec §3).
type Primitive struct {
	Region     geom.Rect
	ColorSpace ColorSpace
	Result     string
	Kind       PrimitiveKind
	Inputs     []PrimitiveInput
	Params     PrimitiveParams
}

// ColorSpace selects the working color space a filter primitive
// operates in (spec §3: "sRGB | linearRGB").
type ColorSpace uint8

const (
	ColorSpaceSRGB ColorSpace = iota
	ColorSpaceLinearRGB
)

// Filter is spec §3's Filter entity: a region and an ordered list of
// primitives.
type Filter struct {
	Region     geom.Rect
	Units      Units
	PrimUnits  Units
	Primitives []Primitive
}
