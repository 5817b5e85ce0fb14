package render

import (
	"math"

	"github.com/matzehuels/springboard/pkg/geom"
	"github.com/matzehuels/springboard/pkg/springboard"
)

// Frame is a viewport-space snapshot of a springboard.
type Frame struct {
	Width    float64    `json:"width"`
	Height   float64    `json:"height"`
	Offset   geom.Point `json:"offset"`
	Zoom     float64    `json:"zoom"`
	MinZoom  float64    `json:"min_zoom"`
	Diameter float64    `json:"diameter"`
	Focused  int        `json:"focused"`
	Items    []Item     `json:"items"`
}

// Item is one item as it appears on screen.
type Item struct {
	Index      int            `json:"index"`
	ID         string         `json:"id,omitempty"`
	Title      string         `json:"title,omitempty"`
	Center     geom.Point     `json:"center"`
	Radius     float64        `json:"radius"`
	Transform  geom.Transform `json:"transform"`
	Alpha      float64        `json:"alpha"`
	LabelAlpha float64        `json:"label_alpha"`
	Scale      float64        `json:"scale"`
}

// labeled is implemented by item views with a fading title label.
type labeled interface {
	LabelAlpha() float64
}

// Capture runs a layout pass on sb and snapshots every item.
func Capture(sb *springboard.Springboard) Frame {
	sb.Layout()

	v := sb.Viewport()
	size := v.Size()
	zoom := v.ZoomScale()
	offset := v.ContentOffset()

	f := Frame{
		Width:    size.W,
		Height:   size.H,
		Offset:   offset,
		Zoom:     zoom,
		MinZoom:  v.MinimumZoomScale(),
		Diameter: sb.ItemDiameter(),
		Focused:  sb.LastFocusedIndex(),
		Items:    make([]Item, 0, sb.ItemCount()),
	}
	if sb.ItemCount() == 0 {
		f.Focused = -1
	}

	for i, it := range sb.Items() {
		t := it.Transform()
		moved := geom.Pt(it.Center().X+t.TX, it.Center().Y+t.TY)
		item := Item{
			Index:      i,
			Center:     geom.ToViewportSpace(moved, zoom).Sub(offset),
			Radius:     it.Bounds().W / 2 * zoom * t.Scale,
			Transform:  t,
			Alpha:      it.Alpha(),
			LabelAlpha: 1,
			Scale:      it.InteractionScale(),
		}
		if l, ok := it.(labeled); ok {
			item.LabelAlpha = l.LabelAlpha()
		}
		if si, ok := it.(*springboard.Item); ok {
			item.ID = si.ID.String()
			item.Title = si.Title
		}
		f.Items = append(f.Items, item)
	}
	return f
}

// Visible reports whether any part of it lies inside the frame and it is not
// fully transparent.
func (f Frame) Visible(it Item) bool {
	if it.Alpha <= 0 || it.Radius <= 0 {
		return false
	}
	c := it.Center
	return c.X+it.Radius >= 0 && c.X-it.Radius <= f.Width &&
		c.Y+it.Radius >= 0 && c.Y-it.Radius <= f.Height
}

// VisibleItems returns the items that Visible accepts, in index order.
func (f Frame) VisibleItems() []Item {
	out := make([]Item, 0, len(f.Items))
	for _, it := range f.Items {
		if f.Visible(it) {
			out = append(out, it)
		}
	}
	return out
}

// Nearest returns the index of the item whose on-screen center is closest to
// p, or -1 for an empty frame.
func (f Frame) Nearest(p geom.Point) int {
	best, bestD := -1, math.Inf(1)
	for _, it := range f.Items {
		if d := geom.SquaredDistance(it.Center, p); d < bestD {
			best, bestD = it.Index, d
		}
	}
	return best
}
