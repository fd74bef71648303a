// Package compositor implements spec §4.2: the public render/
// render_node contract and the recursive per-node drawing algorithm
// that is this module's central entry point.
//
// Grounded on gogpu-gg's scene/renderer.go and render/renderer.go for
// the shape of a recursive tree-walking renderer driving a rasterizer
// boundary, generalized from the teacher's immediate-mode Scene/
// Encoding replay into recursion over the retained tree package, with
// the group-isolation, clip, mask, and filter pipeline spec §4.2
// requires that the teacher's renderer has no equivalent of.
//
// Every node's AbsTransform field is resolved by the builder to be
// absolute within its own local tree (the document root for the main
// tree, or the referencing element's content origin for clip-path,
// mask, and pattern sub-groups). The compositor never re-accumulates
// transforms through recursion: at each node it composes the caller-
// supplied base transform with that node's own AbsTransform once.
package compositor

import (
	svgraster "github.com/gogpu/svgraster"
	// the root package's Go package name is "gg"; aliased to svgraster
	// here only to read clearly next to the sibling subpackage imports.
	"github.com/gogpu/svgraster/blend"
	"github.com/gogpu/svgraster/clipengine"
	"github.com/gogpu/svgraster/filter"
	"github.com/gogpu/svgraster/geom"
	"github.com/gogpu/svgraster/imageengine"
	"github.com/gogpu/svgraster/maskengine"
	"github.com/gogpu/svgraster/paintserver"
	"github.com/gogpu/svgraster/pixmap"
	"github.com/gogpu/svgraster/raster"
	"github.com/gogpu/svgraster/tree"
)

// state threads the render-call-scoped flags the recursive algorithm
// needs (spec §5: "the compositor allocates all its scratch state per
// call"); state is never shared across Render calls.
type state struct {
	tree *tree.Tree
	opts svgraster.RenderOptions
	// backgroundFinished models spec §4.2 step iii's "BackgroundFinished"
	// render state. It is never set true by this implementation: the
	// only producer of that state would be a live BackgroundImage
	// filter input, which spec §9 treats as legacy (substitute
	// SourceGraphic with a warning) rather than actually compositing
	// a backdrop snapshot, so filters always run. The field is kept so
	// the branch below documents the gap rather than hiding it.
	backgroundFinished bool
}

// Render implements the public render(tree, fit_policy, pixmap_out)
// contract: the fit policy is the tree's own ViewBox/AspectRatio
// against dst's actual pixel size (or opts.FitWidth/FitHeight when
// set), and the view-box→pixmap transform is the base transform for
// the whole walk.
func Render(t *tree.Tree, dst *pixmap.Pixmap, opts ...svgraster.RenderOption) {
	if t == nil || t.Root == nil {
		return
	}
	o := svgraster.ResolveRenderOptions(opts...)
	view := t.AspectRatio.FitTransform(t.ViewBox, fitRect(o, dst))
	s := &state{tree: t, opts: o}
	s.drawGroup(t.Root, dst, view)
}

// RenderNode renders a single node in isolation at its own absolute
// transform composed with the view fit, spec §4.2's render_node
// contract. Useful for thumbnailing or isolated re-renders of one
// sub-element without re-walking the whole tree.
func RenderNode(t *tree.Tree, node tree.Node, dst *pixmap.Pixmap, opts ...svgraster.RenderOption) {
	if t == nil || node == nil {
		return
	}
	o := svgraster.ResolveRenderOptions(opts...)
	view := t.AspectRatio.FitTransform(t.ViewBox, fitRect(o, dst))
	s := &state{tree: t, opts: o}
	s.drawNode(node, dst, view)
}

// fitRect resolves the rectangle the view-box fit is computed
// against: opts.FitWidth/FitHeight when set (spec §6.6's "output
// size / fit" override), else dst's own pixel size.
func fitRect(o svgraster.RenderOptions, dst *pixmap.Pixmap) geom.Rect {
	w, h := float64(dst.Width()), float64(dst.Height())
	if o.FitWidth > 0 {
		w = float64(o.FitWidth)
	}
	if o.FitHeight > 0 {
		h = float64(o.FitHeight)
	}
	return geom.Rect{W: w, H: h}
}

// imageQuality resolves an Image node's effective sampling quality:
// the call-wide override in opts.ImageQuality when set (spec §6.6's
// "image filter quality" knob), else the node's own hint.
func (s *state) imageQuality(node tree.ImageQuality) tree.ImageQuality {
	if s.opts.ImageQuality != 0 {
		return s.opts.ImageQuality
	}
	return node
}

// drawNode dispatches on the four-case Node variant (spec §4.2),
// composing base with the node's own absolute transform.
func (s *state) drawNode(n tree.Node, dst *pixmap.Pixmap, base geom.Transform) {
	switch v := n.(type) {
	case *tree.Path:
		s.drawPath(v, dst, base)
	case *tree.Image:
		s.drawImage(v, dst, base)
	case *tree.Group:
		s.drawGroup(v, dst, base)
	}
}

// drawPath implements spec §4.2 step 1: rasterize fill and/or stroke
// against the current paint, in the node's resolved paint order.
func (s *state) drawPath(p *tree.Path, dst *pixmap.Pixmap, base geom.Transform) {
	if !p.Visible || (p.Fill == nil && p.Stroke == nil) {
		return
	}
	transform := base.Multiply(p.AbsTransform)
	objectBBox := p.Data.Bounds()

	drawFill := func() {
		if p.Fill == nil {
			return
		}
		// I4: object-bbox paints must not apply to a zero-area shape.
		if objectBBox.IsEmpty() && paintNeedsBBox(p.Fill.Paint) {
			return
		}
		shader := p.Fill.Paint.Shader(objectBBox, s.tileRendererFor(p.Fill.Paint.Pattern))
		raster.FillForced(dst, p.Data, p.Fill.Rule, transform, shader, blend.Normal, p.Fill.Opacity, s.opts.AntiAlias)
	}
	drawStroke := func() {
		if p.Stroke == nil {
			return
		}
		if objectBBox.IsEmpty() && paintNeedsBBox(p.Stroke.Paint) {
			return
		}
		shader := p.Stroke.Paint.Shader(objectBBox, s.tileRendererFor(p.Stroke.Paint.Pattern))
		raster.StrokeForced(dst, p.Data, p.Stroke.Stroke, transform, shader, blend.Normal, 1, s.opts.AntiAlias)
	}

	if p.Order == tree.StrokeThenFill {
		drawStroke()
		drawFill()
	} else {
		drawFill()
		drawStroke()
	}
}

func paintNeedsBBox(p tree.Paint) bool {
	isObjectUnits := func(u tree.Units) bool { return u == tree.ObjectBoundingBox }
	switch {
	case p.Linear != nil:
		return isObjectUnits(p.Linear.Units)
	case p.Radial != nil:
		return isObjectUnits(p.Radial.Units)
	case p.Pattern != nil:
		return isObjectUnits(p.Pattern.Units) || isObjectUnits(p.Pattern.ContentUnits)
	default:
		return false
	}
}

// tileRendererFor binds a pattern's content group to a TileRenderer,
// satisfying paintserver's dependency-inversion contract (the
// compositor supplies the concrete renderer since paintserver cannot
// import tree/compositor without a cycle).
func (s *state) tileRendererFor(pat *tree.Pattern) paintserver.TileRenderer {
	return func(tileW, tileH int, contentTransform geom.Transform) *pixmap.Pixmap {
		tile := pixmap.New(tileW, tileH)
		if pat == nil || pat.Content == nil {
			return tile
		}
		inner := &state{tree: s.tree, opts: s.opts}
		inner.drawGroup(pat.Content, tile, contentTransform)
		return tile
	}
}

// groupRenderer binds this state's tree to the tree.GroupRenderer
// contract clipengine/maskengine use to recurse into compositor
// rendering for nested clipped or masked content without an import
// cycle (the same dependency-inversion idiom as TileRenderer).
func (s *state) groupRenderer() tree.GroupRenderer {
	return func(g *tree.Group, transform geom.Transform, width, height int) *pixmap.Pixmap {
		scratch := pixmap.New(width, height)
		inner := &state{tree: s.tree, opts: s.opts}
		inner.drawGroup(g, scratch, transform)
		return scratch
	}
}

// drawImage implements spec §4.2 step 2.
func (s *state) drawImage(img *tree.Image, dst *pixmap.Pixmap, base geom.Transform) {
	switch img.Kind {
	case tree.ImageRaster:
		if img.Raster == nil {
			return
		}
		intrinsic := geom.Rect{W: float64(img.Raster.Width()), H: float64(img.Raster.Height())}
		placement := base.Multiply(imageengine.PlacementTransform(img, intrinsic))
		imageengine.DrawRaster(dst, img.Raster, placement, s.imageQuality(img.Quality))
	case tree.ImageSubTree:
		if img.SubTree == nil || img.SubTree.Root == nil {
			return
		}
		scratch := pixmap.New(dst.Width(), dst.Height())
		sub := &state{tree: img.SubTree, opts: s.opts}
		placement := base.Multiply(imageengine.PlacementTransform(img, img.SubTree.ViewBox))
		sub.drawGroup(img.SubTree.Root, scratch, placement)
		dst.Blit(scratch, 0, 0, blend.Normal, 1)
	case tree.ImageForeignNode:
		if img.ForeignNode == nil {
			return
		}
		s.drawNode(img.ForeignNode, dst, base)
	}
}

// drawGroup implements spec §4.2 step 3: a trivial group (I1/I2's
// opacity=1, Normal blend, no isolation/clip/mask/filters) paints
// straight into dst; anything else renders to a private pixmap first
// and folds filter, clip, mask, then blend+opacity back in, matching
// the composition order in spec §4.2 steps i-vii.
func (s *state) drawGroup(g *tree.Group, dst *pixmap.Pixmap, base geom.Transform) {
	if len(g.Children) == 0 {
		return
	}
	if g.Trivial() {
		for _, child := range g.Children {
			s.drawNode(child, dst, base)
		}
		return
	}

	transform := base.Multiply(g.AbsTransform)
	w, h := dst.Width(), dst.Height()
	scratch := pixmap.New(w, h)
	for _, child := range g.Children {
		s.drawNode(child, scratch, base)
	}

	if !s.backgroundFinished {
		for _, f := range g.Filters {
			scratch = filter.Apply(f, g.Bounds.Object, transform, scratch)
		}
	}
	if g.Clip != nil {
		clipengine.Apply(g.Clip, g.Bounds.Object, transform, scratch, s.groupRenderer())
	}
	if g.Mask != nil {
		maskengine.Apply(g.Mask, g.Bounds.Object, transform, scratch, s.groupRenderer())
	}

	dst.Blit(scratch, 0, 0, g.BlendMode, g.Opacity)
}
