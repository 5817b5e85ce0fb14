package geom

// Transform is a uniform scale followed by a translation, applied around the
// item's own center. TX and TY are expressed in the item's parent (content)
// space and already include the scale.
type Transform struct {
	Scale float64 `json:"scale"`
	TX    float64 `json:"tx"`
	TY    float64 `json:"ty"`
}

// Identity is the transform that leaves an item untouched.
var Identity = Transform{Scale: 1}

// ScaleTransform returns a pure scale transform.
func ScaleTransform(s float64) Transform { return Transform{Scale: s} }

// IsIdentity reports whether t leaves an item untouched.
func (t Transform) IsIdentity() bool {
	return t.Scale == 1 && t.TX == 0 && t.TY == 0
}

// Apply maps an offset relative to the item's center through t.
func (t Transform) Apply(p Point) Point {
	return Point{p.X*t.Scale + t.TX, p.Y*t.Scale + t.TY}
}

// Lerp interpolates every component from t to u by k.
func (t Transform) Lerp(u Transform, k float64) Transform {
	return Transform{
		Scale: Lerp(t.Scale, u.Scale, k),
		TX:    Lerp(t.TX, u.TX, k),
		TY:    Lerp(t.TY, u.TY, k),
	}
}
