package tree

import "github.com/gogpu/svgraster/colorspace"

// PrimitiveKind identifies which filter operator a Primitive performs.
// The seventeen kinds mirror the SVG Filter Effects primitives of
// spec §4.6.
type PrimitiveKind uint8

const (
	PrimBlend PrimitiveKind = iota
	PrimColorMatrix
	PrimComponentTransfer
	PrimComposite
	PrimConvolveMatrix
	PrimMorphology
	PrimGaussianBlur
	PrimOffset
	PrimFlood
	PrimTile
	PrimImage
	PrimMerge
	PrimDisplacementMap
	PrimTurbulence
	PrimDiffuseLighting
	PrimSpecularLighting
	PrimDropShadow
)

// PrimitiveParams is a variant struct carrying the one parameter set
// relevant to a Primitive's Kind; exactly one field group is
// populated per primitive. A single struct (rather than a Kind-keyed
// interface) keeps Primitive a plain value the builder can construct
// without per-kind constructors.
type PrimitiveParams struct {
	Blend     BlendParams
	Matrix    ColorMatrixParams
	Transfer  ComponentTransferParams
	Composite CompositeParams
	Convolve  ConvolveMatrixParams
	Morph     MorphologyParams
	Blur      GaussianBlurParams
	Offset    OffsetParams
	Flood     FloodParams
	Tile      TileParams
	Image     ImageParams
	Merge     MergeParams
	Displace  DisplacementMapParams
	Turbulence TurbulenceParams
	Lighting  LightingParams
	DropShadow DropShadowParams
}

type BlendParams struct {
	Mode string // feBlend mode keyword, e.g. "multiply", "screen"
}

// ColorMatrixType selects feColorMatrix's type attribute.
type ColorMatrixType uint8

const (
	MatrixNone ColorMatrixType = iota
	MatrixSaturate
	MatrixHueRotate
	MatrixLuminanceToAlpha
)

type ColorMatrixParams struct {
	Type   ColorMatrixType
	Values []float64 // 20 values for MatrixNone, 1 for Saturate/HueRotate
}

// TransferFunc selects one feComponentTransfer channel's function type.
type TransferFunc struct {
	Type       string // "identity", "table", "discrete", "linear", "gamma"
	TableValues []float64
	Slope      float64
	Intercept  float64
	Amplitude  float64
	Exponent   float64
	Offset     float64
}

type ComponentTransferParams struct {
	R, G, B, A TransferFunc
}

// CompositeOperator selects feComposite's operator attribute.
type CompositeOperator uint8

const (
	CompositeOver CompositeOperator = iota
	CompositeIn
	CompositeOut
	CompositeAtop
	CompositeXor
	CompositeArithmetic
)

type CompositeParams struct {
	Operator       CompositeOperator
	K1, K2, K3, K4 float64 // arithmetic operator coefficients
}

type ConvolveMatrixParams struct {
	OrderX, OrderY int
	Kernel         []float64
	Divisor        float64
	Bias           float64
	TargetX, TargetY int
	EdgeMode       string // "duplicate", "wrap", "none"
	PreserveAlpha  bool
}

type MorphologyParams struct {
	Dilate bool // false = erode
	RadiusX, RadiusY float64
}

type GaussianBlurParams struct {
	StdDevX, StdDevY float64
	EdgeMode         string
}

type OffsetParams struct {
	DX, DY float64
}

type FloodParams struct {
	Color   colorspace.Color
	Opacity float64
}

type TileParams struct{}

type ImageParams struct {
	// Node is the local sub-element a PrimImage references, resolved at
	// build time. There is no field for an external raster.
	Node Node
}

type MergeParams struct {
	// Inputs beyond the shared Primitive.Inputs slice are not needed:
	// every feMergeNode's in is just another entry there, in order.
}

type DisplacementMapParams struct {
	Scale                float64
	XChannel, YChannel   string // "R", "G", "B", or "A"
}

type TurbulenceParams struct {
	BaseFreqX, BaseFreqY float64
	NumOctaves           int
	Seed                 int64
	Fractal              bool // true = fractalNoise, false = turbulence
	Stitch               bool
}

type LightLocation struct {
	X, Y, Z float64
}

// LightSource discriminates feDiffuse/feSpecularLighting's light
// child element.
type LightSource struct {
	Kind          string // "distant", "point", "spot"
	Azimuth       float64
	Elevation     float64
	Location      LightLocation
	PointsAt      LightLocation
	SpecularExp   float64
	LimitingAngle float64
	HasLimit      bool
}

type LightingParams struct {
	Specular       bool // false = diffuse
	SurfaceScale   float64
	DiffuseConst   float64
	SpecularConst  float64
	SpecularExp    float64
	LightColor     colorspace.Color
	Light          LightSource
}

type DropShadowParams struct {
	DX, DY           float64
	StdDeviation     float64
	FloodColor       colorspace.Color
	FloodOpacity     float64
}
