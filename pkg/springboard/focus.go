package springboard

import (
	"math"
	"time"

	"github.com/matzehuels/springboard/pkg/anim"
	"github.com/matzehuels/springboard/pkg/errors"
	"github.com/matzehuels/springboard/pkg/geom"
	"github.com/matzehuels/springboard/pkg/observability"
	"github.com/matzehuels/springboard/pkg/springboard/snap"
)

// Intro animation constants.
const (
	introDuration  = 500 * time.Millisecond
	introMinScale  = 0.5
	introTranslate = -0.9
)

// FocusOn centers the item at index in the viewport at the given zoom scale.
// It runs a pending layout pass first so the item's position is current.
func (sb *Springboard) FocusOn(index int, zoom float64, animated bool) error {
	if sb.layoutDirty {
		sb.Layout()
	}
	if len(sb.centers) == 0 {
		return errors.New(errors.ErrCodeInvalidArgument, "cannot focus: springboard has no items")
	}
	if index < 0 || index >= len(sb.centers) {
		return errors.New(errors.ErrCodeInvalidArgument, "item index %d out of range [0, %d)", index, len(sb.centers))
	}
	if !geom.IsFinite(zoom) || zoom <= 0 {
		return errors.New(errors.ErrCodeInvalidArgument, "invalid zoom scale %g", zoom)
	}
	sb.focus(index, zoom, animated, "focus")
	return nil
}

func (sb *Springboard) focus(index int, zoom float64, animated bool, reason string) {
	sb.snap.SetLastFocused(index)
	snap.Focus(sb.viewport, sb.centers[index], zoom, animated)
	sb.logger.Debug("snap", "index", index, "zoom", zoom, "animated", animated, "reason", reason)
	observability.Engine().OnSnap(index, reason)
}

// NearestIndexTo returns the index of the item closest to p (content space),
// or -1 when there are no items.
func (sb *Springboard) NearestIndexTo(p geom.Point) int {
	return snap.NearestIndex(sb.centers, p)
}

// viewportCenter returns the content-space point under the viewport center.
func (sb *Springboard) viewportCenter() geom.Point {
	size := sb.viewport.Size()
	c := sb.viewport.ContentOffset().Add(geom.Pt(size.W/2, size.H/2))
	return geom.ToContentSpace(c, sb.viewport.ZoomScale())
}

// CenterOnClosest snaps to the item nearest the viewport center at the
// current zoom scale.
func (sb *Springboard) CenterOnClosest(animated bool) {
	i := sb.NearestIndexTo(sb.viewportCenter())
	if i < 0 {
		return
	}
	sb.focus(i, sb.viewport.ZoomScale(), animated, "closest")
}

// ShowAllContent zooms out so the whole grid fits the viewport. The item
// nearest the grid's center becomes the snap target.
func (sb *Springboard) ShowAllContent(animated bool) {
	if len(sb.centers) == 0 {
		return
	}
	grid := sb.geometry.GridRect()
	i := sb.NearestIndexTo(geom.RectCenter(grid))
	sb.snap.SetLastFocused(i)
	sb.viewport.ZoomToRect(grid, animated)
	sb.logger.Debug("show all", "index", i, "animated", animated)
	observability.Engine().OnSnap(i, "show-all")
}

type intro struct {
	from     []geom.Transform
	progress float64
}

type introKey struct{ sb *Springboard }

// PlayIntroAnimation scatters every item outward from the focused item at a
// reduced scale and zero opacity, then animates them into place.
func (sb *Springboard) PlayIntroAnimation() {
	sb.Layout()
	if len(sb.centers) == 0 {
		return
	}

	size := sb.viewport.Size()
	origin := sb.centers[sb.snap.LastFocused()]
	from := make([]geom.Transform, len(sb.centers))
	for i, c := range sb.centers {
		dx, dy := c.X-origin.X, c.Y-origin.Y
		s := introMinScale * (introFactor(size.Max(), dx*dx-dy*dy)*0.8 + 0.2)
		from[i] = geom.Transform{Scale: s, TX: dx * introTranslate, TY: dy * introTranslate}
	}

	in := &intro{from: from}
	sb.intro = in
	for _, it := range sb.items {
		it.SetAlpha(0)
	}
	sb.applyTransforms()

	sb.animator.Animate(introKey{sb}, 0, 1, introDuration, anim.EaseOut,
		func(v float64) {
			if sb.intro != in {
				return
			}
			in.progress = v
			for _, it := range sb.items {
				it.SetAlpha(v)
			}
			sb.applyTransforms()
		},
		func() {
			if sb.intro == in {
				sb.intro = nil
				sb.applyTransforms()
			}
		})
}

// introFactor weights the scatter scale by how far an item is from the
// focused one. The divisor is dx²-dy², not a distance.
func introFactor(extent, divisor float64) float64 {
	f := extent / divisor
	if math.IsNaN(f) {
		return 1
	}
	return geom.Clamp(f, 0, 1)
}

// IntroActive reports whether the intro animation is running.
func (sb *Springboard) IntroActive() bool { return sb.intro != nil }
