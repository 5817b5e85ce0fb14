package springboard

import (
	"math"
	"time"

	"github.com/matzehuels/springboard/pkg/geom"
	"github.com/matzehuels/springboard/pkg/observability"
	"github.com/matzehuels/springboard/pkg/springboard/distort"
	"github.com/matzehuels/springboard/pkg/springboard/layout"
)

// Layout runs a layout pass. Calls made while a pass is running are ignored;
// whatever they invalidated is handled by the next pass.
func (sb *Springboard) Layout() {
	if sb.inPass {
		return
	}
	sb.inPass = true
	defer func() { sb.inPass = false }()

	start := time.Now()
	sb.Resize(sb.viewport.Size())

	relaid := sb.layoutDirty
	if sb.layoutDirty {
		sb.layoutDirty = false
		sb.relayout()
	}
	if sb.zoomBoundsDirty {
		sb.zoomBoundsDirty = false
		sb.updateZoomBounds()
	}
	sb.applyTransforms()

	observability.Engine().OnLayoutPass(len(sb.items), relaid, time.Since(start))
}

func (sb *Springboard) relayout() {
	g, centers := layout.Compute(layout.Params{
		ItemCount: len(sb.items),
		Diameter:  sb.diameter,
		Padding:   sb.padding,
		Viewport:  sb.size,
		Insets:    sb.viewport.ContentInset(),
	})
	sb.geometry = g
	sb.centers = centers

	sb.viewport.SetContentSize(g.ContentSize)
	bounds := geom.Sz(sb.diameter, sb.diameter)
	for i, it := range sb.items {
		it.SetBounds(bounds)
		it.SetCenter(centers[i])
	}
	sb.snap.ClampLastFocused(len(sb.items))

	sb.logger.Debug("grid laid out",
		"items", len(sb.items),
		"per_line", g.ItemsPerLine,
		"lines", g.Lines,
		"min_zoom", g.MinZoomScale,
		"content", g.ContentSize)
}

func (sb *Springboard) updateZoomBounds() {
	minZoom := sb.geometry.MinZoomScale
	sb.viewport.SetMinimumZoomScale(minZoom)

	zoom := math.Max(sb.viewport.ZoomScale(), minZoom)
	sb.viewport.SetZoomScale(zoom, false)
	sb.snap.ZoomChanged(sb.viewport.ZoomScale())

	if len(sb.centers) > 0 {
		sb.focus(sb.snap.LastFocused(), sb.snap.ZoomCache(), false, "bounds")
	}
}

// applyTransforms runs the edge distortion over every item using the live
// scroll offset and the zoom scale last reported through DidZoom.
func (sb *Springboard) applyTransforms() {
	p := sb.distortParams()
	offset := sb.viewport.ContentOffset()
	animated := sb.viewport.IsDragging() || sb.viewport.IsZooming()

	n := min(len(sb.items), len(sb.centers))
	for i := 0; i < n; i++ {
		c := geom.ToViewportSpace(sb.centers[i], p.ZoomScale).Sub(offset)
		r := distort.Compute(c, p)

		t := r.Transform
		if sb.intro != nil && i < len(sb.intro.from) {
			t = sb.intro.from[i].Lerp(t, sb.intro.progress)
		}
		sb.items[i].SetTransform(t)
		sb.items[i].SetInteractionScale(r.Scale, animated)
	}
}
