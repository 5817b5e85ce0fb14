// Package distort computes the edge distortion applied to springboard items.
//
// Items that approach the viewport boundary shrink toward a floor scale and are
// nudged inward, producing a fisheye/dock-magnification look. Items safely
// inside the viewport get the identity transform. The effect is continuous: at
// the distortion threshold the produced transform equals the identity.
//
// [Compute] is a pure function of one item's viewport-space center and the
// current viewport state passed in [Params]; it never looks at other items.
package distort

import (
	"math"

	"github.com/matzehuels/springboard/pkg/geom"
)

// DefaultReferenceSize is the viewport side length the threshold is tuned for.
const DefaultReferenceSize = 320.0

// clampDiameters is how far past the threshold (in item diameters) an item
// may travel before it snaps to the floor transform.
const clampDiameters = 2.5

// Offset factors applied to the accumulated edge direction, per axis.
const (
	offsetFactorX = 0.8
	offsetFactorY = 0.5
)

// Params is the viewport state a transform is computed against.
type Params struct {
	Viewport           geom.Size
	Insets             geom.Insets
	ZoomScale          float64
	Diameter           float64
	MinimumItemScaling float64

	// TransformFactor fades the effect: 1 is fully enabled, 0 disabled.
	TransformFactor float64

	// ReferenceSize defaults to DefaultReferenceSize when zero.
	ReferenceSize float64
}

// Result is the transform of one item.
type Result struct {
	Transform geom.Transform

	// Scale is the item's effective on-screen scale: transform scale times
	// zoom scale.
	Scale float64
}

// Threshold returns the edge distance, in viewport space, within which
// distortion begins. Zero means the geometry is degenerate.
func Threshold(p Params) float64 {
	ref := p.ReferenceSize
	if ref <= 0 {
		ref = DefaultReferenceSize
	}
	t := p.Diameter * p.ZoomScale * (p.Viewport.Min() / ref)
	if !geom.IsFinite(t) || t <= 0 {
		return 0
	}
	return t
}

// FloorScale returns the transform scale used for items far past the edge,
// already blended by the transform factor.
func FloorScale(p Params) float64 {
	f := p.TransformFactor
	return math.Min(p.MinimumItemScaling*f+(1-f), 1)
}

// Compute returns the transform for an item whose center, in viewport space,
// is center.
func Compute(center geom.Point, p Params) Result {
	threshold := Threshold(p)
	if threshold == 0 || p.Diameter <= 0 || !geom.IsFinite(center.X) || !geom.IsFinite(center.Y) {
		return identity(p.ZoomScale)
	}

	r := p.Diameter * p.ZoomScale / 2
	in := p.Insets
	vp := p.Viewport

	distanceToBorder := math.Inf(1)
	var xOffset, yOffset float64

	if left := center.X - r - in.Left; left < threshold {
		distanceToBorder = math.Min(distanceToBorder, left)
		xOffset = edgeOffset(left, threshold)
	}
	if top := center.Y - r - in.Top; top < threshold {
		distanceToBorder = math.Min(distanceToBorder, top)
		yOffset = edgeOffset(top, threshold)
	}
	if right := vp.W - r - center.X - in.Right; right < threshold {
		distanceToBorder = math.Min(distanceToBorder, right)
		xOffset = -edgeOffset(right, threshold)
	}
	if bottom := vp.H - r - center.Y - in.Bottom; bottom < threshold {
		distanceToBorder = math.Min(distanceToBorder, bottom)
		yOffset = -edgeOffset(bottom, threshold)
	}

	distanceToBorder *= 2
	if distanceToBorder >= threshold*2 {
		return identity(p.ZoomScale)
	}

	if distanceToBorder < -(p.Diameter * clampDiameters) {
		s := FloorScale(p)
		return Result{Transform: geom.ScaleTransform(s), Scale: s * p.ZoomScale}
	}

	raw := geom.Clamp(distanceToBorder/(threshold*2), 0, 1)
	raw = 1 - (1-raw)*(1-raw)
	scale := raw*(1-p.MinimumItemScaling) + p.MinimumItemScaling

	xOffset = p.Diameter * offsetFactorX * (1 - raw) * xOffset
	yOffset = p.Diameter * offsetFactorY * (1 - raw) * yOffset

	modifier := math.Min(distanceToBorder/p.Diameter+clampDiameters, 1)

	f := p.TransformFactor
	scale = geom.Clamp(scale*f+(1-f), 0, 1)
	modifier = math.Min(modifier*f, 1)

	return Result{
		Transform: geom.Transform{
			Scale: scale,
			TX:    xOffset * modifier * scale,
			TY:    yOffset * modifier * scale,
		},
		Scale: scale * p.ZoomScale,
	}
}

// edgeOffset is the inward push for an edge at distance dist, in [0, 1].
func edgeOffset(dist, threshold float64) float64 {
	return geom.Clamp(1-dist/threshold, 0, 1)
}

func identity(zoom float64) Result {
	if !geom.IsFinite(zoom) || zoom <= 0 {
		zoom = 1
	}
	return Result{Transform: geom.Identity, Scale: zoom}
}
