package gg

import "github.com/gogpu/svgraster/tree"

// RenderOption configures a render call, the same functional-options
// idiom ContextOption uses in options.go, generalized to the knobs
// spec §6.6's configuration table names for the tree/compositor/
// svgwriter pipeline rather than Context construction.
//
// Example:
//
//	compositor.Render(t, dst, gg.WithImageQuality(tree.ImageQualityBilinear))
type RenderOption func(*RenderOptions)

// RenderOptions holds spec §6.6's recognized rendering knobs. The
// zero value means "use the tree's own per-node hints", matching the
// table's stated defaults.
type RenderOptions struct {
	// FitWidth/FitHeight override the destination pixmap's own
	// dimensions when computing the view-box fit transform. Zero
	// means "use the destination pixmap's actual size" (default).
	FitWidth, FitHeight int

	// AntiAlias, when non-nil, forces shape-rendering on or off for
	// every path in the call, overriding each node's own hint.
	AntiAlias *bool

	// ImageQuality, when non-zero, forces raster image sampling
	// quality for every Image node, overriding each node's own
	// Quality field.
	ImageQuality tree.ImageQuality

	// CoordPrecision is forwarded to svgwriter.Options when a render
	// call also serializes back to SVG (0 means svgwriter's own
	// default of 8).
	CoordPrecision int

	// PreserveText is forwarded to svgwriter.Options (spec §6.6:
	// "preserve_text (writer)"). Has no effect on compositor.Render,
	// which never receives text nodes (spec §6.1's pre-flattened
	// contract).
	PreserveText bool
}

// WithFitSize overrides the target pixel size the view-box fit is
// computed against, independent of the destination pixmap's actual
// dimensions (useful for rendering at one size and downsampling, or
// rendering into a sub-region of a larger canvas).
func WithFitSize(w, h int) RenderOption {
	return func(o *RenderOptions) {
		o.FitWidth, o.FitHeight = w, h
	}
}

// WithAntiAlias forces shape-rendering on or off for every path,
// overriding the tree's own per-node hints.
func WithAntiAlias(enabled bool) RenderOption {
	return func(o *RenderOptions) {
		o.AntiAlias = &enabled
	}
}

// WithImageQuality forces raster image sampling quality for every
// Image node in the call.
func WithImageQuality(q tree.ImageQuality) RenderOption {
	return func(o *RenderOptions) {
		o.ImageQuality = q
	}
}

// WithCoordPrecision sets the serializer's coordinate/transform digit
// count for a paired svgwriter call.
func WithCoordPrecision(digits int) RenderOption {
	return func(o *RenderOptions) {
		o.CoordPrecision = digits
	}
}

// WithPreserveText requests text nodes be kept rather than flattened
// in a paired svgwriter call.
func WithPreserveText(preserve bool) RenderOption {
	return func(o *RenderOptions) {
		o.PreserveText = preserve
	}
}

// ResolveRenderOptions applies opts over the zero-value default,
// mirroring defaultOptions/ContextOption's apply pattern in
// options.go.
func ResolveRenderOptions(opts ...RenderOption) RenderOptions {
	var o RenderOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
