package geom

import "math"

// Point is a position in either content or viewport space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Mul scales both coordinates by k.
func (p Point) Mul(k float64) Point { return Point{p.X * k, p.Y * k} }

// Size is a width/height pair.
type Size struct {
	W float64 `json:"width"`
	H float64 `json:"height"`
}

// Sz is shorthand for Size{W: w, H: h}.
func Sz(w, h float64) Size { return Size{W: w, H: h} }

// Min returns the smaller dimension.
func (s Size) Min() float64 { return math.Min(s.W, s.H) }

// Max returns the larger dimension.
func (s Size) Max() float64 { return math.Max(s.W, s.H) }

// Mul scales both dimensions by k.
func (s Size) Mul(k float64) Size { return Size{s.W * k, s.H * k} }

// IsEmpty reports whether either dimension is zero or negative.
func (s Size) IsEmpty() bool { return s.W <= 0 || s.H <= 0 }

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"width"`
	H float64 `json:"height"`
}

// Origin returns the top-left corner.
func (r Rect) Origin() Point { return Point{r.X, r.Y} }

// Size returns the rectangle's dimensions.
func (r Rect) Size() Size { return Size{r.W, r.H} }

// Contains reports whether p lies inside r. The left and top edges are
// inclusive, the right and bottom edges exclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Insets are distances inset from each edge of a rectangle.
type Insets struct {
	Top    float64 `json:"top" toml:"top"`
	Left   float64 `json:"left" toml:"left"`
	Bottom float64 `json:"bottom" toml:"bottom"`
	Right  float64 `json:"right" toml:"right"`
}

// Horizontal returns Left+Right.
func (in Insets) Horizontal() float64 { return in.Left + in.Right }

// Vertical returns Top+Bottom.
func (in Insets) Vertical() float64 { return in.Top + in.Bottom }

// RectCenter returns the center point of r.
func RectCenter(r Rect) Point {
	return Point{r.X + r.W*0.5, r.Y + r.H*0.5}
}

// RectWithCenter returns the rectangle of size s centered on c.
func RectWithCenter(c Point, s Size) Rect {
	return Rect{X: c.X - s.W*0.5, Y: c.Y - s.H*0.5, W: s.W, H: s.H}
}

// ToContentSpace converts a viewport-space point to content space.
// A zero zoom scale leaves p unchanged.
func ToContentSpace(p Point, zoom float64) Point {
	if zoom == 0 {
		return p
	}
	return Point{p.X / zoom, p.Y / zoom}
}

// ToViewportSpace converts a content-space point to viewport space.
func ToViewportSpace(p Point, zoom float64) Point {
	return Point{p.X * zoom, p.Y * zoom}
}

// SizeToContentSpace converts a viewport-space size to content space.
// A zero zoom scale leaves s unchanged.
func SizeToContentSpace(s Size, zoom float64) Size {
	if zoom == 0 {
		return s
	}
	return Size{s.W / zoom, s.H / zoom}
}

// SizeToViewportSpace converts a content-space size to viewport space.
func SizeToViewportSpace(s Size, zoom float64) Size {
	return Size{s.W * zoom, s.H * zoom}
}

// SquaredDistance returns the squared Euclidean distance between a and b.
func SquaredDistance(a, b Point) float64 {
	dx, dy := a.X-b.X, a.Y-b.Y
	return dx*dx + dy*dy
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return math.Sqrt(SquaredDistance(a, b))
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

// Lerp interpolates linearly from a to b by t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
