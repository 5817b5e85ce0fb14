// Package viewport provides a simulated scroll/zoom viewport that hosts a
// springboard without a windowing system.
//
// A [Scroller] keeps a content offset and zoom scale, accepts drag, pinch and
// double-tap gestures and reports them to a [springboard.EventHandler].
// Animated moves (flings, snaps, zoom-to-rect) are driven by critically damped
// harmonica springs and advance only when [Scroller.Tick] is called, so the
// owner controls time.
package viewport

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"

	"github.com/matzehuels/springboard/pkg/geom"
	"github.com/matzehuels/springboard/pkg/springboard"
)

// Defaults for a Scroller.
const (
	// DefaultDecelerationRate is the fraction of fling velocity kept per
	// millisecond.
	DefaultDecelerationRate = 0.99
	DefaultFPS              = 60
	DefaultFrequency        = 7.0
	DefaultDamping          = 1.0
	DefaultMaximumZoomScale = 1.0

	// minFlingSpeed is the release speed, in points per second, below which a
	// drag ends without momentum.
	minFlingSpeed = 50.0

	// settleEpsilon is how close a spring must be to its target, in points and
	// zoom units, to count as at rest.
	settleEpsilon = 0.01

	// overscroll is how far past the content edge a drag may pull, as a
	// fraction of the viewport size.
	overscroll = 0.25
)

// Scroller is a headless scroll/zoom viewport. It is not safe for concurrent
// use.
type Scroller struct {
	size        geom.Size
	insets      geom.Insets
	offset      geom.Point
	contentSize geom.Size

	zoom    float64
	minZoom float64
	maxZoom float64

	dragging     bool
	zooming      bool
	decelerating bool

	decelerationRate float64
	fps              int
	frequency        float64
	damping          float64
	spring           harmonica.Spring

	motion  *motion
	pending time.Duration

	handler springboard.EventHandler
}

// Option configures a Scroller.
type Option func(*Scroller)

// WithInsets sets the content insets.
func WithInsets(in geom.Insets) Option {
	return func(s *Scroller) { s.insets = in }
}

// WithDecelerationRate sets the per-millisecond velocity retention used to
// predict where a fling settles.
func WithDecelerationRate(r float64) Option {
	return func(s *Scroller) {
		if r > 0 && r < 1 {
			s.decelerationRate = r
		}
	}
}

// WithFrameRate sets the simulation frame rate.
func WithFrameRate(fps int) Option {
	return func(s *Scroller) {
		if fps > 0 {
			s.fps = fps
		}
	}
}

// WithSpring sets the angular frequency and damping ratio of animated moves.
func WithSpring(frequency, damping float64) Option {
	return func(s *Scroller) {
		if frequency > 0 && damping > 0 {
			s.frequency, s.damping = frequency, damping
		}
	}
}

// WithMaximumZoomScale sets the largest allowed zoom scale.
func WithMaximumZoomScale(z float64) Option {
	return func(s *Scroller) {
		if z > 0 {
			s.maxZoom = z
		}
	}
}

// New creates a scroller with the given visible size at zoom 1.
func New(size geom.Size, opts ...Option) *Scroller {
	s := &Scroller{
		size:             size,
		zoom:             1,
		minZoom:          1,
		maxZoom:          DefaultMaximumZoomScale,
		decelerationRate: DefaultDecelerationRate,
		fps:              DefaultFPS,
		frequency:        DefaultFrequency,
		damping:          DefaultDamping,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.spring = harmonica.NewSpring(harmonica.FPS(s.fps), s.frequency, s.damping)
	return s
}

// SetHandler sets the receiver of gesture events.
func (s *Scroller) SetHandler(h springboard.EventHandler) { s.handler = h }

// Resize changes the visible size.
func (s *Scroller) Resize(size geom.Size) { s.size = size }

func (s *Scroller) Size() geom.Size           { return s.size }
func (s *Scroller) ContentInset() geom.Insets { return s.insets }
func (s *Scroller) ContentOffset() geom.Point { return s.offset }
func (s *Scroller) ZoomScale() float64        { return s.zoom }
func (s *Scroller) MinimumZoomScale() float64 { return s.minZoom }
func (s *Scroller) MaximumZoomScale() float64 { return s.maxZoom }
func (s *Scroller) IsDragging() bool          { return s.dragging }
func (s *Scroller) IsZooming() bool           { return s.zooming }
func (s *Scroller) IsDecelerating() bool      { return s.decelerating }

// ContentSize returns the unscaled content size.
func (s *Scroller) ContentSize() geom.Size { return s.contentSize }

// SetContentSize sets the unscaled content size.
func (s *Scroller) SetContentSize(size geom.Size) { s.contentSize = size }

// SetMinimumZoomScale sets the smallest allowed zoom scale. The maximum is
// raised to match when needed.
func (s *Scroller) SetMinimumZoomScale(z float64) {
	if !geom.IsFinite(z) || z <= 0 {
		return
	}
	s.minZoom = z
	if s.maxZoom < z {
		s.maxZoom = z
	}
}

// Animating reports whether an animated move is in flight.
func (s *Scroller) Animating() bool { return s.motion != nil }

// SetContentOffset moves the content. A non-animated move cancels any
// animation in flight.
func (s *Scroller) SetContentOffset(p geom.Point, animated bool) {
	center := geom.ToContentSpace(p.Add(s.halfSize()), s.zoom)
	s.moveTo(center, s.zoom, animated, false)
}

// SetZoomScale zooms around the viewport center.
func (s *Scroller) SetZoomScale(z float64, animated bool) {
	if !geom.IsFinite(z) || z <= 0 {
		return
	}
	s.moveTo(s.visibleCenter(), s.clampZoom(z), animated, false)
}

// ScrollRectToVisible scrolls the least distance that brings r, in viewport
// space, into view.
func (s *Scroller) ScrollRectToVisible(r geom.Rect, animated bool) {
	off := s.offset
	off.X = scrollAxis(off.X, s.size.W, r.X, r.W)
	off.Y = scrollAxis(off.Y, s.size.H, r.Y, r.H)
	s.SetContentOffset(off, animated)
}

func scrollAxis(off, visible, start, length float64) float64 {
	switch {
	case start < off:
		return start
	case start+length > off+visible:
		return start + length - visible
	default:
		return off
	}
}

// ZoomToRect zooms so that r, in content space, fills the viewport and is
// centered in it.
func (s *Scroller) ZoomToRect(r geom.Rect, animated bool) {
	if r.W <= 0 || r.H <= 0 {
		return
	}
	z := s.clampZoom(math.Min(s.size.W/r.W, s.size.H/r.H))
	s.moveTo(geom.RectCenter(r), z, animated, false)
}

// BeginDrag starts a drag gesture. A deceleration in flight stops where it
// is.
func (s *Scroller) BeginDrag() {
	s.stop()
	s.dragging = true
	if s.handler != nil {
		s.handler.WillBeginDragging()
	}
}

// DragBy moves the content with the finger by delta, in viewport points.
func (s *Scroller) DragBy(delta geom.Point) {
	if !s.dragging {
		return
	}
	s.offset = s.clampOffset(s.offset.Sub(delta), overscroll)
}

// EndDrag lifts the finger. velocity is the rate of change of the content
// offset, in points per second.
func (s *Scroller) EndDrag(velocity geom.Point) {
	if !s.dragging {
		return
	}
	predicted := s.clampOffset(s.offset.Add(velocity.Mul(s.flingDistance())), 0)
	target := predicted
	if s.handler != nil {
		target = s.handler.WillEndDragging(velocity, predicted)
	}
	s.dragging = false

	speed := math.Hypot(velocity.X, velocity.Y)
	willDecelerate := speed >= minFlingSpeed && target != s.offset
	if willDecelerate {
		s.decelerating = true
		center := geom.ToContentSpace(target.Add(s.halfSize()), s.zoom)
		s.moveTo(center, s.zoom, true, true)
		s.motion.vel = geom.ToContentSpace(velocity, s.zoom)
	}
	if s.handler != nil {
		s.handler.DidEndDragging(willDecelerate)
	}
}

// flingDistance converts a velocity in points per second into the distance
// momentum carries the content.
func (s *Scroller) flingDistance() float64 {
	r := s.decelerationRate
	return r / (1 - r) / 1000
}

// BeginZoom starts a pinch gesture.
func (s *Scroller) BeginZoom() {
	s.stop()
	s.zooming = true
	if s.handler != nil {
		s.handler.WillBeginZooming()
	}
}

// ZoomBy scales by factor around anchor, a point in the visible bounds that
// stays fixed under the fingers.
func (s *Scroller) ZoomBy(factor float64, anchor geom.Point) {
	if !s.zooming || !geom.IsFinite(factor) || factor <= 0 {
		return
	}
	pinned := geom.ToContentSpace(s.offset.Add(anchor), s.zoom)
	z := geom.Clamp(s.zoom*factor, s.minZoom*(1-overscroll), s.maxZoom*(1+overscroll))
	s.zoom = z
	s.offset = geom.ToViewportSpace(pinned, z).Sub(anchor)
	if s.handler != nil {
		s.handler.DidZoom(z)
	}
}

// EndZoom ends a pinch gesture. A zoom pulled past its bounds returns to the
// nearest bound.
func (s *Scroller) EndZoom() {
	if !s.zooming {
		return
	}
	s.zooming = false
	if z := s.clampZoom(s.zoom); z != s.zoom {
		s.moveTo(s.visibleCenter(), z, false, false)
	}
	if s.handler != nil {
		s.handler.DidEndZooming(s.zoom)
	}
}

// DoubleTap reports a double tap at p in the visible bounds.
func (s *Scroller) DoubleTap(p geom.Point) {
	if s.handler != nil {
		s.handler.DoubleTapped(p)
	}
}

// Tick advances animations by dt in whole frames. Leftover time carries over
// to the next call.
func (s *Scroller) Tick(dt time.Duration) {
	frame := time.Second / time.Duration(s.fps)
	s.pending += dt
	for s.pending >= frame {
		s.pending -= frame
		s.step()
	}
}

// Settle runs frames until no animation is in flight or limit frames have
// passed. It returns the number of frames run.
func (s *Scroller) Settle(limit int) int {
	n := 0
	for s.motion != nil && n < limit {
		s.step()
		n++
	}
	return n
}

func (s *Scroller) halfSize() geom.Point {
	return geom.Pt(s.size.W/2, s.size.H/2)
}

// visibleCenter is the content-space point under the viewport center.
func (s *Scroller) visibleCenter() geom.Point {
	return geom.ToContentSpace(s.offset.Add(s.halfSize()), s.zoom)
}

func (s *Scroller) clampZoom(z float64) float64 {
	return geom.Clamp(z, s.minZoom, s.maxZoom)
}

// clampOffset limits p to the scrollable range, widened by slack times the
// viewport size.
func (s *Scroller) clampOffset(p geom.Point, slack float64) geom.Point {
	scaled := geom.SizeToViewportSpace(s.contentSize, s.zoom)
	return geom.Point{
		X: clampAxis(p.X, -s.insets.Left, scaled.W-s.size.W+s.insets.Right, s.size.W*slack),
		Y: clampAxis(p.Y, -s.insets.Top, scaled.H-s.size.H+s.insets.Bottom, s.size.H*slack),
	}
}

func clampAxis(v, lo, hi, slack float64) float64 {
	if hi < lo {
		mid := (lo + hi) / 2
		lo, hi = mid, mid
	}
	return geom.Clamp(v, lo-slack, hi+slack)
}

// stop drops the animation in flight. No completion event is sent.
func (s *Scroller) stop() {
	s.motion = nil
	s.decelerating = false
}

// place jumps to the given visible center and zoom.
func (s *Scroller) place(center geom.Point, zoom float64) {
	changed := zoom != s.zoom
	s.zoom = zoom
	s.offset = geom.ToViewportSpace(center, zoom).Sub(s.halfSize())
	if changed && s.handler != nil {
		s.handler.DidZoom(zoom)
	}
}
