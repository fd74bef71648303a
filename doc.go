// Package gg implements the render-tree stage of an SVG rendering
// pipeline: taking an already-parsed, already-styled document (the
// resolved tree, see the resolved package) and rendering it to a
// pixel buffer.
//
// # Pipeline
//
// The pipeline has three stages; this module covers the last two:
//
//	Stage 1 (external): parse          -> resolved tree
//	Stage 2 (builder):   resolved tree -> render tree
//	Stage 3 (compositor): render tree  -> pixmap
//
// builder.Build flattens a resolved.Tree into a tree.Tree: absolute
// transforms, bounding-box propagation, empty-group elision, and
// clip/mask cycle breaking. compositor.Render then walks the render
// tree, delegating to clipengine, maskengine, filter, imageengine and
// paintserver for the operations each node requires, and rasterizing
// paths through the raster package's pluggable Filler.
//
// # Configuration
//
// RenderOption values (WithFitSize, WithAntiAlias, WithImageQuality,
// WithCoordPrecision, WithPreserveText) configure a single Render or
// RenderNode call; none of it is global state.
//
// # Diagnostics
//
// Malformed sub-trees and non-fatal filter conditions do not abort a
// build or render and are not returned as errors. The builder and the
// filter package record them in a local Diagnostics value, whose Add
// logs each one through Logger(). No Diagnostics or Status value is
// handed back to the caller: builder.Build returns only the tree, and
// compositor.Render and compositor.RenderNode return nothing. See
// BuildError, RenderWarning, ResourceError and Status.
package gg
