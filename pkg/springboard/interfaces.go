package springboard

import "github.com/matzehuels/springboard/pkg/geom"

// Viewport is the scrollable, zoomable surface that hosts a springboard.
//
// Offsets and rects passed to ScrollRectToVisible are in viewport space,
// measured from the scaled content origin. Rects passed to ZoomToRect and the
// content size are in content space.
type Viewport interface {
	// Size is the size of the visible bounds.
	Size() geom.Size
	ContentInset() geom.Insets
	ContentOffset() geom.Point

	ZoomScale() float64
	SetZoomScale(scale float64, animated bool)
	MinimumZoomScale() float64
	SetMinimumZoomScale(scale float64)

	// SetContentSize sets the unscaled content size.
	SetContentSize(size geom.Size)

	IsDragging() bool
	IsZooming() bool

	ScrollRectToVisible(r geom.Rect, animated bool)
	ZoomToRect(r geom.Rect, animated bool)
}

// EventHandler receives gesture notifications from a Viewport. Calls are
// synchronous and happen on the viewport's event loop.
type EventHandler interface {
	WillBeginDragging()

	// WillEndDragging is called when the finger lifts. target is where
	// momentum would settle the content offset; the returned offset replaces
	// it.
	WillEndDragging(velocity, target geom.Point) geom.Point

	DidEndDragging(willDecelerate bool)
	DidEndDecelerating()

	WillBeginZooming()
	DidZoom(scale float64)
	DidEndZooming(scale float64)

	// DoubleTapped reports a double tap at p, in the coordinates of the
	// visible viewport bounds.
	DoubleTapped(p geom.Point)
}

// ItemView is a displayable item placed by the springboard. The springboard
// only sets geometry; what the item shows is up to the implementation.
type ItemView interface {
	// Center is the unscaled center in content space.
	Center() geom.Point
	SetCenter(c geom.Point)

	Bounds() geom.Size
	SetBounds(s geom.Size)

	Transform() geom.Transform
	SetTransform(t geom.Transform)

	Alpha() float64
	SetAlpha(a float64)

	// InteractionScale is the item's effective on-screen scale.
	InteractionScale() float64
	SetInteractionScale(scale float64, animated bool)
}

var _ EventHandler = (*Springboard)(nil)
