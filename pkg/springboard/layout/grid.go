package layout

import (
	"math"

	"github.com/matzehuels/springboard/pkg/geom"
)

// Params are the inputs of a layout computation.
type Params struct {
	ItemCount int
	Diameter  float64
	Padding   float64
	Viewport  geom.Size
	Insets    geom.Insets
}

// Geometry is the derived grid geometry. It is recomputed whenever the item
// count, diameter, padding or viewport size changes.
type Geometry struct {
	// ContentSize is the unscaled content size including Extra.
	ContentSize geom.Size `json:"content_size"`

	// Extra is the margin added around the grid, split evenly on both sides.
	Extra geom.Size `json:"extra"`

	ItemsPerLine int     `json:"items_per_line"`
	Lines        int     `json:"lines"`
	MinZoomScale float64 `json:"min_zoom_scale"`
}

// GridSize returns the content size without the extra margin.
func (g Geometry) GridSize() geom.Size {
	return geom.Size{W: g.ContentSize.W - g.Extra.W, H: g.ContentSize.H - g.Extra.H}
}

// GridRect returns the grid rectangle in content space: the region that holds
// items, excluding the extra margin.
func (g Geometry) GridRect() geom.Rect {
	s := g.GridSize()
	return geom.Rect{X: g.Extra.W * 0.5, Y: g.Extra.H * 0.5, W: s.W, H: s.H}
}

// Slot identifies a grid position by line and column.
type Slot struct {
	Line, Column int
}

// ItemsPerLine returns how many items each line holds for n items in the
// given viewport: ceil(sqrt(n) * aspect) where aspect = min/max side, bumped
// to the next odd number. The result is always odd and at least 1.
func ItemsPerLine(n int, viewport geom.Size) int {
	ratio := 1.0
	if hi := viewport.Max(); hi > 0 && viewport.Min() > 0 {
		ratio = viewport.Min() / hi
	}
	perLine := int(math.Ceil(math.Sqrt(float64(n)) * ratio))
	if perLine < 1 {
		perLine = 1
	}
	if perLine%2 == 0 {
		perLine++
	}
	return perLine
}

// CenterSlot returns the slot reserved for the anchor item.
func CenterSlot(n, perLine int) Slot {
	return Slot{
		Line:   int(float64(n) / float64(perLine) / 2),
		Column: perLine / 2,
	}
}

// SlotFor returns the slot of item i, applying the anchor swap: item 0 takes
// the center slot and the item that naturally owns the center slot takes
// item 0's slot.
func SlotFor(i, n, perLine int) Slot {
	center := CenterSlot(n, perLine)
	if i == 0 {
		return center
	}
	s := Slot{Line: i / perLine, Column: i % perLine}
	if s == center {
		return Slot{}
	}
	return s
}

// Compute lays out p.ItemCount items and returns the grid geometry and the
// content-space center of each item, indexed like the items.
func Compute(p Params) (Geometry, []geom.Point) {
	if p.ItemCount <= 0 {
		return Geometry{ContentSize: p.Viewport, MinZoomScale: 1}, nil
	}

	d, pad := p.Diameter, p.Padding
	perLine := ItemsPerLine(p.ItemCount, p.Viewport)
	lines := int(math.Ceil(float64(p.ItemCount) / float64(perLine)))

	grid := geom.Size{
		W: float64(perLine)*d + float64(perLine+1)*pad + (d+pad)/2,
		H: float64(lines)*d + 2*pad,
	}

	// The margin lets an edge item reach the viewport center. It is widened
	// where needed so the content still fills the viewport at minimum zoom.
	minZoom := minZoomScale(grid, p.Viewport, p.Insets)
	extra := geom.Size{
		W: math.Max(0, math.Max((p.Viewport.W-d*0.5)/minZoom, p.Viewport.W/minZoom-grid.W)),
		H: math.Max(0, math.Max((p.Viewport.H-d*0.5)/minZoom, p.Viewport.H/minZoom-grid.H)),
	}

	g := Geometry{
		ContentSize:  geom.Size{W: grid.W + extra.W, H: grid.H + extra.H},
		Extra:        extra,
		ItemsPerLine: perLine,
		Lines:        lines,
		MinZoomScale: minZoom,
	}
	return g, placeItems(p, g)
}

// minZoomScale returns the zoom at which the grid fits inside the viewport
// minus its insets. Degenerate results fall back to 1.
func minZoomScale(grid, viewport geom.Size, insets geom.Insets) float64 {
	if grid.IsEmpty() {
		return 1
	}
	z := math.Min(
		(viewport.W-insets.Horizontal())/grid.W,
		(viewport.H-insets.Vertical())/grid.H,
	)
	if !geom.IsFinite(z) || z <= 0 {
		return 1
	}
	return z
}

func placeItems(p Params, g Geometry) []geom.Point {
	d, pad := p.Diameter, p.Padding
	centers := make([]geom.Point, p.ItemCount)
	for i := range centers {
		s := SlotFor(i, p.ItemCount, g.ItemsPerLine)

		var lineOffset float64
		if s.Line%2 == 1 {
			lineOffset = (d + pad) / 2
		}

		centers[i] = geom.Point{
			X: g.Extra.W*0.5 + pad + lineOffset + float64(s.Column)*(d+pad) + d/2,
			Y: g.Extra.H*0.5 + pad + float64(s.Line)*d + d/2,
		}
	}
	return centers
}
