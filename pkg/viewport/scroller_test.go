package viewport

import (
	"math"
	"testing"
	"time"

	"github.com/matzehuels/springboard/pkg/geom"
)

type recorder struct {
	events       []string
	decelerate   []bool
	retarget     func(geom.Point) geom.Point
	lastZoom     float64
	endZoomScale float64
	tapped       geom.Point
}

func (r *recorder) WillBeginDragging() { r.events = append(r.events, "begin-drag") }
func (r *recorder) WillEndDragging(_, target geom.Point) geom.Point {
	r.events = append(r.events, "will-end-drag")
	if r.retarget != nil {
		return r.retarget(target)
	}
	return target
}
func (r *recorder) DidEndDragging(d bool) {
	r.events = append(r.events, "end-drag")
	r.decelerate = append(r.decelerate, d)
}
func (r *recorder) DidEndDecelerating() { r.events = append(r.events, "end-decelerate") }
func (r *recorder) WillBeginZooming()   { r.events = append(r.events, "begin-zoom") }
func (r *recorder) DidZoom(s float64)   { r.lastZoom = s }
func (r *recorder) DidEndZooming(s float64) {
	r.events = append(r.events, "end-zoom")
	r.endZoomScale = s
}
func (r *recorder) DoubleTapped(p geom.Point) {
	r.events = append(r.events, "double-tap")
	r.tapped = p
}

func (r *recorder) count(event string) int {
	n := 0
	for _, e := range r.events {
		if e == event {
			n++
		}
	}
	return n
}

func newScroller() (*Scroller, *recorder) {
	s := New(geom.Sz(320, 320))
	s.SetContentSize(geom.Sz(2000, 2000))
	s.SetMinimumZoomScale(0.25)
	r := &recorder{}
	s.SetHandler(r)
	return s, r
}

func near(a, b geom.Point) bool {
	return math.Abs(a.X-b.X) < 0.05 && math.Abs(a.Y-b.Y) < 0.05
}

func TestZoomToRectImmediate(t *testing.T) {
	s, r := newScroller()
	s.ZoomToRect(geom.Rect{X: 400, Y: 400, W: 640, H: 640}, false)

	if s.ZoomScale() != 0.5 {
		t.Fatalf("ZoomScale = %v, want 0.5", s.ZoomScale())
	}
	// rect center (720,720) at zoom 0.5 is 360 viewport points, minus half
	// the viewport
	if got := s.ContentOffset(); got != geom.Pt(200, 200) {
		t.Errorf("ContentOffset = %v, want (200,200)", got)
	}
	if r.lastZoom != 0.5 {
		t.Errorf("DidZoom reported %v, want 0.5", r.lastZoom)
	}
}

func TestZoomToRectClampsZoom(t *testing.T) {
	s, _ := newScroller()
	s.ZoomToRect(geom.Rect{W: 10, H: 10}, false)
	if s.ZoomScale() != s.MaximumZoomScale() {
		t.Errorf("ZoomScale = %v, want max %v", s.ZoomScale(), s.MaximumZoomScale())
	}
	s.ZoomToRect(geom.Rect{W: 100000, H: 100000}, false)
	if s.ZoomScale() != 0.25 {
		t.Errorf("ZoomScale = %v, want min 0.25", s.ZoomScale())
	}
}

func TestScrollRectToVisible(t *testing.T) {
	tests := []struct {
		name string
		r    geom.Rect
		want geom.Point
	}{
		{"viewport sized", geom.Rect{X: 500, Y: 300, W: 320, H: 320}, geom.Pt(500, 300)},
		{"already visible", geom.Rect{X: 10, Y: 10, W: 50, H: 50}, geom.Pt(0, 0)},
		{"below right", geom.Rect{X: 400, Y: 400, W: 50, H: 50}, geom.Pt(130, 130)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newScroller()
			s.ScrollRectToVisible(tt.r, false)
			if got := s.ContentOffset(); got != tt.want {
				t.Errorf("ContentOffset = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAnimatedMoveSettles(t *testing.T) {
	s, r := newScroller()
	s.SetContentOffset(geom.Pt(300, 100), true)

	if !s.Animating() {
		t.Fatal("animated move should be in flight")
	}
	if s.ContentOffset() != (geom.Point{}) {
		t.Error("animated move should not jump")
	}
	if n := s.Settle(2000); n == 0 || s.Animating() {
		t.Fatalf("Settle ran %d frames, animating=%v", n, s.Animating())
	}
	if got := s.ContentOffset(); !near(got, geom.Pt(300, 100)) {
		t.Errorf("ContentOffset = %v, want (300,100)", got)
	}
	if r.count("end-decelerate") != 0 {
		t.Error("programmatic scroll should not report deceleration")
	}
}

func TestNewAnimationSupersedes(t *testing.T) {
	s, _ := newScroller()
	s.SetContentOffset(geom.Pt(300, 100), true)
	s.Tick(100 * time.Millisecond)
	s.SetContentOffset(geom.Pt(50, 50), true)
	s.Settle(2000)
	if got := s.ContentOffset(); !near(got, geom.Pt(50, 50)) {
		t.Errorf("ContentOffset = %v, want the second target (50,50)", got)
	}
}

func TestSlowDragEndsWithoutMomentum(t *testing.T) {
	s, r := newScroller()
	s.BeginDrag()
	if !s.IsDragging() {
		t.Fatal("IsDragging should be true")
	}
	s.DragBy(geom.Pt(-40, -20))
	if got := s.ContentOffset(); got != geom.Pt(40, 20) {
		t.Errorf("ContentOffset = %v, want (40,20)", got)
	}
	s.EndDrag(geom.Pt(1, 0))

	if len(r.decelerate) != 1 || r.decelerate[0] {
		t.Errorf("DidEndDragging calls = %v, want [false]", r.decelerate)
	}
	if s.IsDragging() || s.IsDecelerating() {
		t.Error("scroller should be idle")
	}
}

func TestFlingDecelerates(t *testing.T) {
	s, r := newScroller()
	s.BeginDrag()
	s.DragBy(geom.Pt(-100, 0))
	s.EndDrag(geom.Pt(1000, 0))

	if len(r.decelerate) != 1 || !r.decelerate[0] {
		t.Fatalf("DidEndDragging calls = %v, want [true]", r.decelerate)
	}
	if !s.IsDecelerating() {
		t.Fatal("IsDecelerating should be true")
	}
	s.Settle(2000)

	// 1000 pt/s at a 0.99 rate carries the content 99 points further
	if got := s.ContentOffset(); !near(got, geom.Pt(199, 0)) {
		t.Errorf("ContentOffset = %v, want (199,0)", got)
	}
	if r.count("end-decelerate") != 1 {
		t.Errorf("DidEndDecelerating fired %d times, want 1", r.count("end-decelerate"))
	}
}

func TestFlingUsesRetargetedOffset(t *testing.T) {
	s, r := newScroller()
	r.retarget = func(geom.Point) geom.Point { return geom.Pt(500, 500) }
	s.BeginDrag()
	s.EndDrag(geom.Pt(800, 800))
	s.Settle(2000)

	if got := s.ContentOffset(); !near(got, geom.Pt(500, 500)) {
		t.Errorf("ContentOffset = %v, want retargeted (500,500)", got)
	}
}

func TestBeginDragStopsDeceleration(t *testing.T) {
	s, r := newScroller()
	s.BeginDrag()
	s.EndDrag(geom.Pt(1000, 0))
	s.Tick(50 * time.Millisecond)

	s.BeginDrag()
	if s.IsDecelerating() || s.Animating() {
		t.Error("a new drag should stop the deceleration")
	}
	if r.count("end-decelerate") != 0 {
		t.Error("an interrupted deceleration should not report its end")
	}
}

func TestDragClampsToContent(t *testing.T) {
	s, _ := newScroller()
	s.BeginDrag()
	s.DragBy(geom.Pt(1000, 1000))
	got := s.ContentOffset()
	if got.X < -80-1e-9 || got.Y < -80-1e-9 {
		t.Errorf("ContentOffset = %v, want at most a quarter viewport of overscroll", got)
	}
}

func TestPinchKeepsAnchor(t *testing.T) {
	s, r := newScroller()
	s.SetContentOffset(geom.Pt(200, 200), false)
	anchor := geom.Pt(100, 50)
	before := geom.ToContentSpace(s.ContentOffset().Add(anchor), s.ZoomScale())

	s.BeginZoom()
	if !s.IsZooming() {
		t.Fatal("IsZooming should be true")
	}
	s.ZoomBy(0.5, anchor)
	after := geom.ToContentSpace(s.ContentOffset().Add(anchor), s.ZoomScale())

	if !near(before, after) {
		t.Errorf("anchor moved from %v to %v", before, after)
	}
	if r.lastZoom != 0.5 {
		t.Errorf("DidZoom reported %v, want 0.5", r.lastZoom)
	}
	s.EndZoom()
	if r.endZoomScale != 0.5 || s.IsZooming() {
		t.Errorf("DidEndZooming(%v), zooming=%v", r.endZoomScale, s.IsZooming())
	}
}

func TestEndZoomReturnsToBounds(t *testing.T) {
	s, r := newScroller()
	s.BeginZoom()
	s.ZoomBy(1.2, geom.Pt(160, 160))
	if s.ZoomScale() <= 1 {
		t.Fatalf("pinch should overshoot the maximum, got %v", s.ZoomScale())
	}
	s.EndZoom()
	if s.ZoomScale() != 1 {
		t.Errorf("ZoomScale = %v, want 1", s.ZoomScale())
	}
	if r.endZoomScale != 1 {
		t.Errorf("DidEndZooming(%v), want 1", r.endZoomScale)
	}
}

func TestDoubleTap(t *testing.T) {
	s, r := newScroller()
	s.DoubleTap(geom.Pt(12, 34))
	if r.count("double-tap") != 1 || r.tapped != geom.Pt(12, 34) {
		t.Errorf("DoubleTapped not delivered: %v %v", r.events, r.tapped)
	}
}

func TestTickCarriesRemainder(t *testing.T) {
	s, _ := newScroller()
	s.SetContentOffset(geom.Pt(300, 0), true)

	s.Tick(10 * time.Millisecond)
	if s.ContentOffset() != (geom.Point{}) {
		t.Fatal("less than a frame should not step")
	}
	s.Tick(10 * time.Millisecond)
	if s.ContentOffset().X <= 0 {
		t.Error("accumulated time should step one frame")
	}
}

func TestMinimumZoomRaisesMaximum(t *testing.T) {
	s, _ := newScroller()
	s.SetMinimumZoomScale(1.5)
	if s.MaximumZoomScale() != 1.5 {
		t.Errorf("MaximumZoomScale = %v, want 1.5", s.MaximumZoomScale())
	}
}
