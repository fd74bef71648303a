// Package builder implements spec §4.1: translating a resolved DOM
// (package resolved) into the render tree (package tree), computing
// absolute transforms, the three-box bounding-box set, paint-server/
// clip/mask/filter dedup registries, and empty-group elision.
//
// Grounded on gogpu-gg's scene package for the general shape of
// "walk a tree once, accumulate transform state, produce a flat
// structure the renderer consumes" (scene/scene.go's LayerStack is the
// closest analogue, generalized here from an explicit push/pop API
// into a single recursive pass since the whole input is available up
// front rather than arriving as a stream of draw calls).
package builder

import (
	gg "github.com/gogpu/svgraster"
	"github.com/gogpu/svgraster/geom"
	"github.com/gogpu/svgraster/resolved"
	"github.com/gogpu/svgraster/tree"
)

type builder struct {
	seenLinear  map[*tree.LinearGradient]bool
	seenRadial  map[*tree.RadialGradient]bool
	seenPattern map[*tree.Pattern]bool
	seenClip    map[*tree.ClipPath]bool
	seenMask    map[*tree.Mask]bool
	seenFilter  map[*tree.Filter]bool

	linears  []*tree.LinearGradient
	radials  []*tree.RadialGradient
	patterns []*tree.Pattern
	clips    []*tree.ClipPath
	masks    []*tree.Mask
	filters  []*tree.Filter

	brokenClip map[*tree.ClipPath]*tree.ClipPath
	brokenMask map[*tree.Mask]*tree.Mask
}

func newBuilder() *builder {
	return &builder{
		seenLinear:  map[*tree.LinearGradient]bool{},
		seenRadial:  map[*tree.RadialGradient]bool{},
		seenPattern: map[*tree.Pattern]bool{},
		seenClip:    map[*tree.ClipPath]bool{},
		seenMask:    map[*tree.Mask]bool{},
		seenFilter:  map[*tree.Filter]bool{},
		brokenClip:  map[*tree.ClipPath]*tree.ClipPath{},
		brokenMask:  map[*tree.Mask]*tree.Mask{},
	}
}

// Build implements the build(resolved_root, target_size) → Tree
// public contract.
func Build(root *resolved.Tree, targetSize geom.Rect) *tree.Tree {
	out := &tree.Tree{
		Size:        targetSize,
		ViewBox:     root.ViewBox,
		AspectRatio: root.AspectRatio,
	}
	if root.Root == nil {
		return out
	}
	b := newBuilder()
	g, _ := b.buildGroup(root.Root, geom.Identity())
	out.Root = g
	out.LinearGrads = b.linears
	out.RadialGrads = b.radials
	out.Patterns = b.patterns
	out.ClipPaths = b.clips
	out.Masks = b.masks
	out.Filters = b.filters
	return out
}

// BuildSubTree is the entry point for an Image node's nested sub-Tree
// (spec §3 Image: "raster, a nested sub-Tree, ..."); each sub-Tree
// gets its own fresh dedup registries since its paint servers and
// clip/mask/filter handles belong to a distinct document.
func BuildSubTree(root *resolved.Tree) *tree.Tree {
	return Build(root, geom.Rect{W: root.ViewBox.W, H: root.ViewBox.H})
}

// buildGroup returns the built Group and its bounds in the *parent's*
// local content space (i.e. after this group's own relative transform
// has been applied, spec §4.1: "Group bounding boxes are the union of
// child boxes, then transformed by the group's own transform").
func (b *builder) buildGroup(rg *resolved.Group, parentAbs geom.Transform) (*tree.Group, tree.Bounds) {
	absTransform := parentAbs.Multiply(rg.Transform)
	g := &tree.Group{
		Transform:    rg.Transform,
		AbsTransform: absTransform,
		Opacity:      rg.Opacity,
		BlendMode:    rg.BlendMode,
		Isolate:      rg.Isolate,
		Clip:         b.registerClip(rg.Clip),
		Mask:         b.registerMask(rg.Mask),
		Filters:      b.registerFilters(rg.Filters),
	}

	objectUnion := geom.EmptyRect()
	layerUnion := geom.EmptyRect()
	for _, child := range rg.Children {
		node, bounds := b.buildNode(child, absTransform)
		if node == nil {
			continue
		}
		g.Children = append(g.Children, node)
		objectUnion = objectUnion.Union(bounds.TObject)
		layerUnion = layerUnion.Union(bounds.Layer)
	}
	for _, f := range g.Filters {
		if !f.Region.IsEmpty() {
			layerUnion = layerUnion.Union(f.Region)
		}
	}

	g.Bounds = tree.Bounds{
		Object: objectUnion,
		TObject: objectUnion.Transform(rg.Transform),
		Layer:   layerUnion.Transform(rg.Transform),
	}
	return g, g.Bounds
}

// buildNode dispatches on the resolved.Node variant. Returns (nil,
// zero) to elide the node entirely for an empty child Group with no
// filter defining a non-empty region (spec §4.1). An invisible Path is
// not elided: it is kept as a tree.Path with Visible false, its bbox
// still contributes to the parent's bounds, and the compositor skips
// it when drawing.
func (b *builder) buildNode(n resolved.Node, parentAbs geom.Transform) (tree.Node, tree.Bounds) {
	switch v := n.(type) {
	case *resolved.Group:
		g, bounds := b.buildGroup(v, parentAbs)
		if bounds.Object.IsEmpty() && !groupHasNonEmptyFilterRegion(g) {
			return nil, tree.Bounds{}
		}
		return g, bounds
	case *resolved.Path:
		return b.buildPath(v, parentAbs)
	case *resolved.Image:
		return b.buildImage(v, parentAbs)
	}
	return nil, tree.Bounds{}
}

func groupHasNonEmptyFilterRegion(g *tree.Group) bool {
	for _, f := range g.Filters {
		if !f.Region.IsEmpty() {
			return true
		}
	}
	return false
}

func (b *builder) buildPath(rp *resolved.Path, parentAbs geom.Transform) (tree.Node, tree.Bounds) {
	absTransform := parentAbs.Multiply(rp.Transform)
	object := rp.Data.Bounds() // I2: bbox = tight_bounds(data), untransformed
	tObject := object.Transform(rp.Transform)
	layer := tObject
	if rp.Stroke != nil {
		layer = rp.Data.StrokeBounds(rp.Stroke.Stroke).Transform(rp.Transform)
	}
	bounds := tree.Bounds{Object: object, TObject: tObject, Layer: layer}

	fill := rp.Fill
	if fill != nil {
		b.registerPaint(fill.Paint)
	}
	if rp.Stroke != nil {
		b.registerPaint(rp.Stroke.Paint)
	}

	p := &tree.Path{
		Data:           rp.Data,
		Fill:           fill,
		Stroke:         rp.Stroke,
		Order:          rp.Order,
		ShapeRendering: rp.ShapeRendering,
		Visible:        rp.Visible,
		AbsTransform:   absTransform,
		Bounds:         bounds,
	}
	if !rp.Visible {
		// Tracked for bbox purposes only; drawPath skips it at render
		// time (p.Visible == false), so it is safe to keep the node
		// in the tree rather than inventing a bbox-only placeholder.
		return p, bounds
	}
	return p, bounds
}

func (b *builder) buildImage(ri *resolved.Image, parentAbs geom.Transform) (tree.Node, tree.Bounds) {
	absTransform := parentAbs.Multiply(ri.Transform)
	object := ri.Rect
	tObject := object.Transform(ri.Transform)
	bounds := tree.Bounds{Object: object, TObject: tObject, Layer: tObject}

	var subTree *tree.Tree
	if ri.SubTree != nil {
		subTree = BuildSubTree(ri.SubTree)
	}
	var foreign tree.Node
	if ri.ForeignNode != nil {
		foreign, _ = b.buildNode(ri.ForeignNode, absTransform)
	}

	img := &tree.Image{
		Rect:         ri.Rect,
		AspectRatio:  ri.AspectRatio,
		Quality:      ri.Quality,
		Kind:         ri.Kind,
		Raster:       ri.Raster,
		SubTree:      subTree,
		ForeignNode:  foreign,
		AbsTransform: absTransform,
		Bounds:       bounds,
	}
	return img, bounds
}

// registerPaint dedupes the shared paint-server handles a Fill/Stroke
// references into the tree's registries (spec §4.1: "deduplicated by
// identity... and added to the tree's registries").
func (b *builder) registerPaint(p tree.Paint) {
	switch {
	case p.Linear != nil:
		if !b.seenLinear[p.Linear] {
			b.seenLinear[p.Linear] = true
			b.linears = append(b.linears, p.Linear)
		}
	case p.Radial != nil:
		if !b.seenRadial[p.Radial] {
			b.seenRadial[p.Radial] = true
			b.radials = append(b.radials, p.Radial)
		}
	case p.Pattern != nil:
		if !b.seenPattern[p.Pattern] {
			b.seenPattern[p.Pattern] = true
			b.patterns = append(b.patterns, p.Pattern)
		}
	}
}

func (b *builder) registerFilters(fs []*tree.Filter) []*tree.Filter {
	if len(fs) == 0 {
		return nil
	}
	out := make([]*tree.Filter, len(fs))
	for i, f := range fs {
		if !b.seenFilter[f] {
			b.seenFilter[f] = true
			b.filters = append(b.filters, f)
		}
		out[i] = f
	}
	return out
}

// registerClip dedupes clip into the tree's registry and, per I6,
// detects and breaks cycles in its parent chain before first use.
func (b *builder) registerClip(c *tree.ClipPath) *tree.ClipPath {
	if c == nil {
		return nil
	}
	c = b.breakClipCycle(c)
	if !b.seenClip[c] {
		b.seenClip[c] = true
		b.clips = append(b.clips, c)
	}
	return c
}

func (b *builder) registerMask(m *tree.Mask) *tree.Mask {
	if m == nil {
		return nil
	}
	m = b.breakMaskCycle(m)
	if !b.seenMask[m] {
		b.seenMask[m] = true
		b.masks = append(b.masks, m)
	}
	return m
}

// breakClipCycle walks c's parent chain, memoized by root handle, and
// rebuilds it severing the link that would otherwise close a cycle
// (I6). The input chain is immutable per the Lifecycle invariant, so
// a cyclic chain is replaced wholesale with a fresh acyclic copy
// rather than mutated in place.
func (b *builder) breakClipCycle(c *tree.ClipPath) *tree.ClipPath {
	if fixed, ok := b.brokenClip[c]; ok {
		return fixed
	}
	var chain []*tree.ClipPath
	visited := map[*tree.ClipPath]bool{}
	cycle := false
	for cur := c; cur != nil; cur = cur.Parent {
		if visited[cur] {
			cycle = true
			break
		}
		visited[cur] = true
		chain = append(chain, cur)
	}
	if cycle {
		var d gg.Diagnostics
		d.Add(&gg.BuildError{NodePath: "clip-path", Reason: "cyclic parent chain broken at builder time (I6)"})
	}
	var rebuilt *tree.ClipPath
	for i := len(chain) - 1; i >= 0; i-- {
		copyNode := *chain[i]
		copyNode.Parent = rebuilt
		rebuilt = &copyNode
	}
	b.brokenClip[c] = rebuilt
	return rebuilt
}

func (b *builder) breakMaskCycle(m *tree.Mask) *tree.Mask {
	if fixed, ok := b.brokenMask[m]; ok {
		return fixed
	}
	var chain []*tree.Mask
	visited := map[*tree.Mask]bool{}
	cycle := false
	for cur := m; cur != nil; cur = cur.Parent {
		if visited[cur] {
			cycle = true
			break
		}
		visited[cur] = true
		chain = append(chain, cur)
	}
	if cycle {
		var d gg.Diagnostics
		d.Add(&gg.BuildError{NodePath: "mask", Reason: "cyclic parent chain broken at builder time (I6)"})
	}
	var rebuilt *tree.Mask
	for i := len(chain) - 1; i >= 0; i-- {
		copyNode := *chain[i]
		copyNode.Parent = rebuilt
		rebuilt = &copyNode
	}
	b.brokenMask[m] = rebuilt
	return rebuilt
}
