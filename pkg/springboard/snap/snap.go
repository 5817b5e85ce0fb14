// Package snap implements the zoom/scroll snapping logic of the springboard.
//
// After a drag, fling or zoom gesture the viewport settles on the item nearest
// its center. [Controller] tracks the gesture phase and decides when a snap is
// due; [Focus] performs the actual viewport move; [NearestIndex] ranks items.
//
// The drag phase is a small state machine:
//
//	Idle -> Dragging -> Decelerating -> Idle
//	              \----------------------^   (drag ended without momentum)
//
// Zooming is tracked independently. Exactly one of the drag-end and
// decelerate-end snaps fires per gesture.
package snap

import (
	"fmt"
	"math"

	"github.com/matzehuels/springboard/pkg/geom"
)

// Phase is the drag gesture phase.
type Phase int

const (
	Idle Phase = iota
	Dragging
	Decelerating
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Decelerating:
		return "decelerating"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Correction describes how WillEndDrag treated the inertial target.
type Correction int

const (
	// NoCorrection leaves the predicted target unchanged.
	NoCorrection Correction = iota
	// HardSnap replaces the target with the ideal centered offset.
	HardSnap
	// SoftSnap blends the target toward the ideal offset and defers a snap to
	// the end of deceleration.
	SoftSnap
)

// String returns the correction name.
func (c Correction) String() string {
	switch c {
	case NoCorrection:
		return "none"
	case HardSnap:
		return "hard"
	case SoftSnap:
		return "soft"
	default:
		return fmt.Sprintf("correction(%d)", int(c))
	}
}

// softPriority is the weight of the ideal offset in a soft correction.
const softPriority = 0.8

// zoomEpsilon is the tolerance for treating two zoom scales as equal.
const zoomEpsilon = 1e-9

// Viewport is the part of the scrollable viewport that snapping drives.
type Viewport interface {
	Size() geom.Size
	ZoomScale() float64
	ScrollRectToVisible(r geom.Rect, animated bool)
	ZoomToRect(r geom.Rect, animated bool)
}

// NearestIndex returns the index of the center closest to p. Ties resolve to
// the lowest index. It returns -1 when centers is empty or p is not finite;
// callers must guard against that case.
func NearestIndex(centers []geom.Point, p geom.Point) int {
	best := -1
	bestDist := math.Inf(1)
	for i, c := range centers {
		if d := geom.Distance(c, p); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// Focus moves v so that center (content space) sits at the viewport center at
// the given zoom scale. When the zoom already matches, it scrolls; otherwise a
// single zoom-to-rect both changes the zoom and centers the item.
func Focus(v Viewport, center geom.Point, zoom float64, animated bool) {
	size := v.Size()
	if math.Abs(zoom-v.ZoomScale()) < zoomEpsilon {
		c := geom.ToViewportSpace(center, zoom)
		v.ScrollRectToVisible(geom.RectWithCenter(c, size), animated)
		return
	}
	if zoom <= 0 || !geom.IsFinite(zoom) {
		return
	}
	v.ZoomToRect(geom.RectWithCenter(center, geom.SizeToContentSpace(size, zoom)), animated)
}

// Controller tracks gesture phases and pending snap intent.
type Controller struct {
	phase            Phase
	zooming          bool
	zoomCache        float64
	lastFocused      int
	snapOnDecelerate bool
}

// NewController returns a controller in the idle phase with zoom cache 1.
func NewController() *Controller {
	return &Controller{zoomCache: 1}
}

// Phase returns the current drag phase.
func (c *Controller) Phase() Phase { return c.phase }

// Zooming reports whether a zoom gesture is active.
func (c *Controller) Zooming() bool { return c.zooming }

// ZoomCache returns the last committed zoom scale.
func (c *Controller) ZoomCache() float64 { return c.zoomCache }

// LastFocused returns the snap target index.
func (c *Controller) LastFocused() int { return c.lastFocused }

// SetLastFocused records i as the snap target.
func (c *Controller) SetLastFocused(i int) { c.lastFocused = i }

// ClampLastFocused keeps the snap target inside [0, n).
func (c *Controller) ClampLastFocused(n int) {
	switch {
	case n <= 0 || c.lastFocused < 0:
		c.lastFocused = 0
	case c.lastFocused >= n:
		c.lastFocused = n - 1
	}
}

// PendingDecelerateSnap reports whether a soft correction is waiting for the
// end of deceleration.
func (c *Controller) PendingDecelerateSnap() bool { return c.snapOnDecelerate }

// BeginDrag enters the dragging phase. Any pending decelerate snap from a
// previous gesture is discarded.
func (c *Controller) BeginDrag() {
	c.phase = Dragging
	c.snapOnDecelerate = false
}

// WillEndDragInput is the state needed to reclassify an inertial target.
type WillEndDragInput struct {
	// Centers are the item centers in content space.
	Centers []geom.Point

	// Grid is the content-space rectangle holding items (no extra margin).
	Grid geom.Rect

	ViewportSize geom.Size
	ZoomScale    float64

	// CurrentOffset is the content offset when the finger lifts.
	CurrentOffset geom.Point

	// PredictedOffset is where momentum would settle.
	PredictedOffset geom.Point

	Velocity geom.Point
}

// WillEndDrag returns the corrected target offset for a drag about to end and
// how it was corrected. The item nearest the predicted settle point becomes
// the snap target.
func (c *Controller) WillEndDrag(in WillEndDragInput) (geom.Point, Correction) {
	if len(in.Centers) == 0 || in.ZoomScale <= 0 {
		return in.PredictedOffset, NoCorrection
	}

	half := geom.Point{X: in.ViewportSize.W / 2, Y: in.ViewportSize.H / 2}
	predictedCenter := geom.ToContentSpace(in.PredictedOffset.Add(half), in.ZoomScale)
	currentCenter := geom.ToContentSpace(in.CurrentOffset.Add(half), in.ZoomScale)

	i := NearestIndex(in.Centers, predictedCenter)
	if i < 0 {
		return in.PredictedOffset, NoCorrection
	}
	c.lastFocused = i
	ideal := geom.ToViewportSpace(in.Centers[i], in.ZoomScale).Sub(half)

	switch {
	case in.Grid.Contains(predictedCenter):
		return ideal, HardSnap
	case in.Grid.Contains(currentCenter):
		c.snapOnDecelerate = true
		return geom.Point{
			X: in.PredictedOffset.X*(1-softPriority) + ideal.X*softPriority,
			Y: in.PredictedOffset.Y*(1-softPriority) + ideal.Y*softPriority,
		}, SoftSnap
	default:
		return in.PredictedOffset, NoCorrection
	}
}

// DragEnd leaves the dragging phase. It reports whether the caller should snap
// to LastFocused now, which is the case exactly when no deceleration follows.
func (c *Controller) DragEnd(willDecelerate bool) bool {
	if willDecelerate {
		c.phase = Decelerating
		return false
	}
	c.phase = Idle
	c.snapOnDecelerate = false
	return true
}

// DecelerateEnd leaves the decelerating phase. It reports whether a soft
// correction left a snap pending.
func (c *Controller) DecelerateEnd() bool {
	c.phase = Idle
	pending := c.snapOnDecelerate
	c.snapOnDecelerate = false
	return pending
}

// BeginZoom marks a zoom gesture as active.
func (c *Controller) BeginZoom() { c.zooming = true }

// ZoomChanged caches the current zoom scale.
func (c *Controller) ZoomChanged(scale float64) {
	if geom.IsFinite(scale) && scale > 0 {
		c.zoomCache = scale
	}
}

// EndZoom marks the zoom gesture as finished and caches the final scale.
func (c *Controller) EndZoom(scale float64) {
	c.zooming = false
	c.ZoomChanged(scale)
}
