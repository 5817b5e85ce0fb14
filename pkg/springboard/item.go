package springboard

import (
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/springboard/pkg/anim"
	"github.com/matzehuels/springboard/pkg/geom"
)

// SmallScaleThreshold is the interaction scale below which an item hides its
// label.
const SmallScaleThreshold = 0.75

const labelFadeDuration = 300 * time.Millisecond

// Item is the default ItemView: an icon with a title label.
type Item struct {
	ID    uuid.UUID
	Title string

	center     geom.Point
	bounds     geom.Size
	transform  geom.Transform
	alpha      float64
	scale      float64
	labelAlpha float64

	animator anim.Animator
}

// NewItem creates a visible item with a fresh identifier.
func NewItem(title string) *Item {
	return &Item{
		ID:         uuid.New(),
		Title:      title,
		transform:  geom.Identity,
		alpha:      1,
		scale:      1,
		labelAlpha: 1,
	}
}

// NewItems creates n items titled by title(i).
func NewItems(n int, title func(i int) string) []ItemView {
	items := make([]ItemView, n)
	for i := range items {
		items[i] = NewItem(title(i))
	}
	return items
}

func (it *Item) Center() geom.Point            { return it.center }
func (it *Item) SetCenter(c geom.Point)        { it.center = c }
func (it *Item) Bounds() geom.Size             { return it.bounds }
func (it *Item) SetBounds(s geom.Size)         { it.bounds = s }
func (it *Item) Transform() geom.Transform     { return it.transform }
func (it *Item) SetTransform(t geom.Transform) { it.transform = t }
func (it *Item) Alpha() float64                { return it.alpha }
func (it *Item) SetAlpha(a float64)            { it.alpha = a }
func (it *Item) InteractionScale() float64     { return it.scale }

// LabelAlpha is the opacity of the title label.
func (it *Item) LabelAlpha() float64 { return it.labelAlpha }

// SetInteractionScale stores the effective scale. Crossing
// SmallScaleThreshold shows or hides the label, fading it when animated.
func (it *Item) SetInteractionScale(scale float64, animated bool) {
	if scale == it.scale {
		return
	}
	wasSmall := it.scale < SmallScaleThreshold
	it.scale = scale
	isSmall := scale < SmallScaleThreshold
	if isSmall == wasSmall {
		return
	}

	target := 1.0
	if isSmall {
		target = 0
	}
	if it.animator == nil {
		it.labelAlpha = target
		return
	}
	d := time.Duration(0)
	if animated {
		d = labelFadeDuration
	}
	// A zero duration still goes through the animator so it supersedes a
	// running fade.
	it.animator.Animate(labelKey{it}, it.labelAlpha, target, d, anim.EaseInOut,
		func(v float64) { it.labelAlpha = v }, nil)
}

type labelKey struct{ item *Item }

func (it *Item) attach(a anim.Animator) { it.animator = a }
func (it *Item) detach()                { it.animator = nil }

// attachable is implemented by items that take part in the springboard's
// animations.
type attachable interface {
	attach(anim.Animator)
	detach()
}

var _ ItemView = (*Item)(nil)
