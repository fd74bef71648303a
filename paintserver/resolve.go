package paintserver

import "github.com/gogpu/svgraster/geom"

// Units selects whether a paint server's geometry (gradient points and
// radii, pattern rect) is expressed in the owning shape's bounding box
// (objectBoundingBox, normalized [0,1]) or directly in user space
// (userSpaceOnUse).
type Units uint8

const (
	UserSpaceOnUse Units = iota
	ObjectBoundingBox
)

// ResolveTransform returns the transform a paint server combines with
// its own local Transform to reach user space: Transform.from_bbox(
// object_bbox) composed in front when units are object-bbox, the
// identity otherwise (spec §4.5, I4).
//
// I4 requires the caller to have already confirmed objectBBox is
// non-empty before calling this with ObjectBoundingBox units; an
// empty object bbox means the paint server must not be applied at
// all, not merely that this transform degenerates.
func ResolveTransform(units Units, objectBBox geom.Rect, local geom.Transform) geom.Transform {
	if units == ObjectBoundingBox {
		return geom.FromBBox(objectBBox).Multiply(local)
	}
	return local
}
