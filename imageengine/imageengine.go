// Package imageengine implements spec §4.2 step 2's Image-node
// placement: computing the view-box/aspect-ratio fit transform for a
// raster or recursive sub-Tree image, and the x/image/draw resampling
// wired to the rendering-quality hint (spec §6.2, §6.6).
//
// Grounded on gogpu-gg's text/draw_emoji.go for the CatmullRom resize
// idiom (golang.org/x/image/draw); the bilinear/nearest-neighbor
// branches use the same package's other scalers so all three of the
// module's supported quality hints share one call site.
package imageengine

import (
	"image"

	"github.com/gogpu/svgraster/geom"
	"github.com/gogpu/svgraster/pixmap"
	"github.com/gogpu/svgraster/tree"
	"golang.org/x/image/draw"
)

// PlacementTransform computes the transform that maps an Image node's
// intrinsic content (its decoded raster's pixel rect, or a sub-Tree's
// ViewBox) into its placement rectangle under the node's aspect-
// ratio policy, then composes the node's own absolute transform in
// front (spec §4.2 step 2).
func PlacementTransform(img *tree.Image, intrinsic geom.Rect) geom.Transform {
	fit := img.AspectRatio.FitTransform(intrinsic, img.Rect)
	return img.AbsTransform.Multiply(fit)
}

// Scaler resolves an Image node's quality hint into an x/image/draw
// Scaler, the wiring point SPEC_FULL.md's domain-stack expansion
// gives golang.org/x/image/draw's resamplers (separate from
// paintserver/pattern.go's hand-written toroidal Catmull-Rom, which
// cannot use a fixed-destination bulk Scale call).
func Scaler(quality tree.ImageQuality) draw.Scaler {
	switch quality {
	case tree.ImageQualityNearest, tree.ImageQualityOptimizeSpeed:
		return draw.NearestNeighbor
	case tree.ImageQualityBilinear:
		return draw.BiLinear
	default:
		return draw.CatmullRom
	}
}

// DrawRaster resamples src into dst's device-space placement rect
// using the quality-selected scaler, matching the premultiplied
// convention both pixmap.Pixmap and image.RGBA share.
func DrawRaster(dst *pixmap.Pixmap, src *pixmap.Pixmap, placement geom.Transform, quality tree.ImageQuality) {
	destRect := geom.Rect{W: float64(src.Width()), H: float64(src.Height())}.Transform(placement)
	x0, y0 := int(destRect.X), int(destRect.Y)
	x1, y1 := int(destRect.Right()+0.5), int(destRect.Bottom()+0.5)
	if x1 <= x0 || y1 <= y0 {
		return
	}
	scaler := Scaler(quality)
	scaler.Scale(dst.ToImage(), image.Rect(x0, y0, x1, y1), src.ToImage(), src.ToImage().Bounds(), draw.Over, nil)
}
