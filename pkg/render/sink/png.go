package sink

import (
	"bytes"
	"fmt"
	"math"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/matzehuels/springboard/pkg/render"
)

// PNGOption configures PNG rendering via [RenderPNG].
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale      float64
	background string
	labels     bool
}

// WithScale sets the pixel density (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// WithPNGBackground sets the background color as "#rrggbb".
func WithPNGBackground(c string) PNGOption { return func(r *pngRenderer) { r.background = c } }

// WithoutPNGLabels omits item titles.
func WithoutPNGLabels() PNGOption { return func(r *pngRenderer) { r.labels = false } }

var monoFont = sync.OnceValues(func() (*truetype.Font, error) {
	return truetype.Parse(gomono.TTF)
})

// RenderPNG rasterizes the visible items of f.
func RenderPNG(f render.Frame, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 2.0, background: defaultBackground, labels: true}
	for _, opt := range opts {
		opt(&r)
	}

	w := int(math.Ceil(f.Width * r.scale))
	h := int(math.Ceil(f.Height * r.scale))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("empty frame %gx%g", f.Width, f.Height)
	}

	ttf, err := monoFont()
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}

	dc := gg.NewContext(w, h)
	dc.SetColor(parseHex(r.background))
	dc.Clear()

	faces := map[float64]font.Face{}
	for _, it := range f.VisibleItems() {
		c := itemColor(it.Index)
		dc.SetRGBA255(int(c.R), int(c.G), int(c.B), int(255*it.Alpha))
		cx, cy := it.Center.X*r.scale, it.Center.Y*r.scale
		dc.DrawCircle(cx, cy, it.Radius*r.scale)
		dc.Fill()

		if !r.labels || it.LabelAlpha <= 0 || it.Title == "" {
			continue
		}
		text := it.Title
		if it.Radius < labelThreshold {
			text = initial(text)
		}
		size := math.Round(fontSize(it.Radius) * r.scale)
		face, ok := faces[size]
		if !ok {
			face = truetype.NewFace(ttf, &truetype.Options{
				Size:    size,
				DPI:     72,
				Hinting: font.HintingFull,
			})
			faces[size] = face
		}
		dc.SetFontFace(face)
		dc.SetRGBA(1, 1, 1, it.Alpha*it.LabelAlpha)
		dc.DrawStringAnchored(text, cx, cy, 0.5, 0.5)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
