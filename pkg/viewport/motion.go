package viewport

import (
	"math"

	"github.com/matzehuels/springboard/pkg/geom"
)

// motion is an animated move of the visible center and zoom scale. Each
// component follows its own spring toward the target.
type motion struct {
	center geom.Point
	vel    geom.Point
	zoom   float64
	zvel   float64

	target     geom.Point
	targetZoom float64

	decelerate bool
}

// moveTo moves the visible center to center (content space) at zoom. A new
// animated move supersedes the one in flight, keeping its velocity.
func (s *Scroller) moveTo(center geom.Point, zoom float64, animated, decelerate bool) {
	if !animated {
		s.stop()
		s.place(center, zoom)
		return
	}

	m := &motion{
		center:     s.visibleCenter(),
		zoom:       s.zoom,
		target:     center,
		targetZoom: zoom,
		decelerate: decelerate,
	}
	if prev := s.motion; prev != nil {
		m.vel, m.zvel = prev.vel, prev.zvel
	}
	if s.decelerating && !decelerate {
		s.decelerating = false
	}
	s.motion = m
}

// step advances the motion by one frame.
func (s *Scroller) step() {
	m := s.motion
	if m == nil {
		return
	}

	m.center.X, m.vel.X = s.spring.Update(m.center.X, m.vel.X, m.target.X)
	m.center.Y, m.vel.Y = s.spring.Update(m.center.Y, m.vel.Y, m.target.Y)
	m.zoom, m.zvel = s.spring.Update(m.zoom, m.zvel, m.targetZoom)

	if m.atRest() {
		s.motion = nil
		s.place(m.target, m.targetZoom)
		if m.decelerate && s.decelerating {
			s.decelerating = false
			if s.handler != nil {
				s.handler.DidEndDecelerating()
			}
		}
		return
	}
	s.place(m.center, m.zoom)
}

func (m *motion) atRest() bool {
	near := func(a, b float64) bool { return math.Abs(a-b) < settleEpsilon }
	return near(m.center.X, m.target.X) && near(m.center.Y, m.target.Y) &&
		near(m.zoom, m.targetZoom) &&
		near(m.vel.X, 0) && near(m.vel.Y, 0) && near(m.zvel, 0)
}
