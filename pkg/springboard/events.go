package springboard

import (
	"github.com/matzehuels/springboard/pkg/geom"
	"github.com/matzehuels/springboard/pkg/springboard/snap"
)

// WillBeginDragging implements EventHandler.
func (sb *Springboard) WillBeginDragging() {
	sb.snap.BeginDrag()
}

// WillEndDragging implements EventHandler. It retargets the fling so the
// viewport comes to rest centered on an item.
func (sb *Springboard) WillEndDragging(velocity, target geom.Point) geom.Point {
	if len(sb.centers) == 0 {
		return target
	}
	out, corr := sb.snap.WillEndDrag(snap.WillEndDragInput{
		Centers:         sb.centers,
		Grid:            sb.geometry.GridRect(),
		ViewportSize:    sb.viewport.Size(),
		ZoomScale:       sb.viewport.ZoomScale(),
		CurrentOffset:   sb.viewport.ContentOffset(),
		PredictedOffset: target,
		Velocity:        velocity,
	})
	sb.logger.Debug("drag ending",
		"correction", corr,
		"index", sb.snap.LastFocused(),
		"predicted", target,
		"target", out)
	return out
}

// DidEndDragging implements EventHandler.
func (sb *Springboard) DidEndDragging(willDecelerate bool) {
	if sb.snap.DragEnd(willDecelerate) {
		sb.snapToLastFocused("drag")
	}
}

// DidEndDecelerating implements EventHandler.
func (sb *Springboard) DidEndDecelerating() {
	if sb.snap.DecelerateEnd() {
		sb.snapToLastFocused("decelerate")
	}
}

// WillBeginZooming implements EventHandler.
func (sb *Springboard) WillBeginZooming() {
	sb.snap.BeginZoom()
}

// DidZoom implements EventHandler.
func (sb *Springboard) DidZoom(scale float64) {
	sb.snap.ZoomChanged(scale)
}

// DidEndZooming implements EventHandler. The viewport settles on the item
// nearest its center at the final zoom scale.
func (sb *Springboard) DidEndZooming(scale float64) {
	sb.snap.EndZoom(scale)
	sb.CenterOnClosest(true)
}

// DoubleTapped implements EventHandler. Below the interaction zoom level the
// whole grid is shown; otherwise the tapped item is brought to full size.
func (sb *Springboard) DoubleTapped(p geom.Point) {
	if len(sb.centers) == 0 {
		return
	}
	zoom := sb.viewport.ZoomScale()
	if zoom < sb.minZoomInteraction {
		sb.ShowAllContent(true)
		return
	}
	tapped := geom.ToContentSpace(sb.viewport.ContentOffset().Add(p), zoom)
	i := sb.NearestIndexTo(tapped)
	if i < 0 {
		return
	}
	sb.focus(i, 1, true, "double-tap")
}

func (sb *Springboard) snapToLastFocused(reason string) {
	if len(sb.centers) == 0 {
		return
	}
	sb.snap.ClampLastFocused(len(sb.centers))
	sb.focus(sb.snap.LastFocused(), sb.viewport.ZoomScale(), true, reason)
}
