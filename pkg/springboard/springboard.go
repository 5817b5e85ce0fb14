package springboard

import (
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/springboard/pkg/anim"
	"github.com/matzehuels/springboard/pkg/geom"
	"github.com/matzehuels/springboard/pkg/springboard/distort"
	"github.com/matzehuels/springboard/pkg/springboard/layout"
	"github.com/matzehuels/springboard/pkg/springboard/snap"
)

// Defaults for a watch-sized springboard.
const (
	DefaultItemDiameter                = 68.0
	DefaultItemPadding                 = 48.0
	DefaultMinimumItemScaling          = 0.5
	DefaultMinimumZoomLevelInteraction = 0.4
	DefaultTransformFactor             = 1.0
)

// Springboard lays out items on a viewport and keeps them distorted and
// snapped as the viewport moves. It is not safe for concurrent use.
type Springboard struct {
	viewport Viewport
	animator anim.Animator
	logger   *log.Logger

	items    []ItemView
	centers  []geom.Point
	geometry layout.Geometry
	size     geom.Size

	diameter           float64
	padding            float64
	minItemScaling     float64
	minZoomInteraction float64
	transformFactor    float64
	referenceSize      float64

	layoutDirty     bool
	zoomBoundsDirty bool
	inPass          bool

	snap  *snap.Controller
	intro *intro
}

// Option configures a Springboard.
type Option func(*Springboard)

// WithItemDiameter sets the unscaled item diameter.
func WithItemDiameter(d float64) Option {
	return func(sb *Springboard) { sb.diameter = math.Max(0, d) }
}

// WithItemPadding sets the unscaled spacing between items.
func WithItemPadding(p float64) Option {
	return func(sb *Springboard) { sb.padding = math.Max(0, p) }
}

// WithMinimumItemScaling sets the floor scale items shrink to at the edges.
func WithMinimumItemScaling(s float64) Option {
	return func(sb *Springboard) { sb.minItemScaling = geom.Clamp(s, 0, 1) }
}

// WithMinimumZoomLevelInteraction sets the zoom scale below which a double
// tap zooms out to show all content.
func WithMinimumZoomLevelInteraction(z float64) Option {
	return func(sb *Springboard) { sb.minZoomInteraction = z }
}

// WithTransformFactor sets the strength of the edge distortion in [0, 1].
func WithTransformFactor(f float64) Option {
	return func(sb *Springboard) { sb.transformFactor = geom.Clamp(f, 0, 1) }
}

// WithReferenceSize sets the viewport side length the distortion threshold
// is tuned for.
func WithReferenceSize(s float64) Option {
	return func(sb *Springboard) { sb.referenceSize = s }
}

// WithAnimator sets the animation service. Without one, every animation
// completes immediately.
func WithAnimator(a anim.Animator) Option {
	return func(sb *Springboard) {
		if a != nil {
			sb.animator = a
		}
	}
}

// WithLogger sets the logger used for debug output of layout passes and
// snaps.
func WithLogger(l *log.Logger) Option {
	return func(sb *Springboard) {
		if l != nil {
			sb.logger = l
		}
	}
}

// New creates a springboard on v. Both dirty flags start set, so the first
// Layout call computes the grid.
func New(v Viewport, opts ...Option) *Springboard {
	sb := &Springboard{
		viewport:           v,
		animator:           anim.Immediate{},
		logger:             log.New(io.Discard),
		diameter:           DefaultItemDiameter,
		padding:            DefaultItemPadding,
		minItemScaling:     DefaultMinimumItemScaling,
		minZoomInteraction: DefaultMinimumZoomLevelInteraction,
		transformFactor:    DefaultTransformFactor,
		referenceSize:      distort.DefaultReferenceSize,
		layoutDirty:        true,
		zoomBoundsDirty:    true,
		snap:               snap.NewController(),
	}
	for _, opt := range opts {
		opt(sb)
	}
	if v != nil {
		sb.snap.ZoomChanged(v.ZoomScale())
	}
	return sb
}

// SetItems replaces the item collection. Previous items are detached and no
// longer referenced.
func (sb *Springboard) SetItems(items []ItemView) {
	for _, it := range sb.items {
		if a, ok := it.(attachable); ok {
			a.detach()
		}
	}
	sb.items = append([]ItemView(nil), items...)
	for _, it := range sb.items {
		if a, ok := it.(attachable); ok {
			a.attach(sb.animator)
		}
	}
	sb.intro = nil
	sb.invalidate()
}

// Items returns the current items.
func (sb *Springboard) Items() []ItemView { return sb.items }

// ItemCount returns the number of items.
func (sb *Springboard) ItemCount() int { return len(sb.items) }

// Viewport returns the hosting viewport.
func (sb *Springboard) Viewport() Viewport { return sb.viewport }

// ItemDiameter returns the unscaled item diameter.
func (sb *Springboard) ItemDiameter() float64 { return sb.diameter }

// SetItemDiameter changes the item diameter and invalidates the layout.
func (sb *Springboard) SetItemDiameter(d float64) {
	sb.diameter = math.Max(0, d)
	sb.invalidate()
}

// ItemPadding returns the unscaled spacing between items.
func (sb *Springboard) ItemPadding() float64 { return sb.padding }

// SetItemPadding changes the item padding and invalidates the layout.
func (sb *Springboard) SetItemPadding(p float64) {
	sb.padding = math.Max(0, p)
	sb.invalidate()
}

// MinimumItemScaling returns the floor scale of the edge distortion.
func (sb *Springboard) MinimumItemScaling() float64 { return sb.minItemScaling }

// SetMinimumItemScaling changes the floor scale. It takes effect on the next
// layout pass; the grid is not recomputed.
func (sb *Springboard) SetMinimumItemScaling(s float64) {
	sb.minItemScaling = geom.Clamp(s, 0, 1)
}

// TransformFactor returns the strength of the edge distortion.
func (sb *Springboard) TransformFactor() float64 { return sb.transformFactor }

// SetTransformFactor changes the strength of the edge distortion. It takes
// effect on the next layout pass.
func (sb *Springboard) SetTransformFactor(f float64) {
	sb.transformFactor = geom.Clamp(f, 0, 1)
}

// MinimumZoomLevelInteraction returns the double-tap zoom-out threshold.
func (sb *Springboard) MinimumZoomLevelInteraction() float64 { return sb.minZoomInteraction }

// SetMinimumZoomLevelInteraction changes the double-tap zoom-out threshold.
func (sb *Springboard) SetMinimumZoomLevelInteraction(z float64) {
	sb.minZoomInteraction = z
}

// Resize records a new viewport size. The layout is invalidated only when the
// size actually changed.
func (sb *Springboard) Resize(size geom.Size) {
	if size == sb.size {
		return
	}
	sb.size = size
	sb.invalidate()
}

// NeedsLayout reports whether a dirty flag is set.
func (sb *Springboard) NeedsLayout() bool {
	return sb.layoutDirty || sb.zoomBoundsDirty
}

// Geometry returns the grid geometry of the last layout pass.
func (sb *Springboard) Geometry() layout.Geometry { return sb.geometry }

// ItemCenter returns the content-space center of item i as of the last
// layout pass.
func (sb *Springboard) ItemCenter(i int) (geom.Point, bool) {
	if i < 0 || i >= len(sb.centers) {
		return geom.Point{}, false
	}
	return sb.centers[i], true
}

// LastFocusedIndex returns the current snap target.
func (sb *Springboard) LastFocusedIndex() int { return sb.snap.LastFocused() }

// GesturePhase returns the drag phase tracked by the snap controller.
func (sb *Springboard) GesturePhase() snap.Phase { return sb.snap.Phase() }

func (sb *Springboard) invalidate() {
	sb.layoutDirty = true
	sb.zoomBoundsDirty = true
}

func (sb *Springboard) distortParams() distort.Params {
	return distort.Params{
		Viewport:           sb.viewport.Size(),
		Insets:             sb.viewport.ContentInset(),
		ZoomScale:          sb.snap.ZoomCache(),
		Diameter:           sb.diameter,
		MinimumItemScaling: sb.minItemScaling,
		TransformFactor:    sb.transformFactor,
		ReferenceSize:      sb.referenceSize,
	}
}
