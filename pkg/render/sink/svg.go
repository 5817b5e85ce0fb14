package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/matzehuels/springboard/pkg/render"
)

const fontFamily = `ui-monospace, "Go Mono", monospace`

// labelThreshold is the radius, in points, below which only the title's
// first letter fits.
const labelThreshold = 22.0

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	background string
	labels     bool
	focusRing  bool
}

// WithBackground sets the background color as "#rrggbb".
func WithBackground(c string) SVGOption { return func(r *svgRenderer) { r.background = c } }

// WithoutLabels omits item titles.
func WithoutLabels() SVGOption { return func(r *svgRenderer) { r.labels = false } }

// WithFocusRing outlines the focused item.
func WithFocusRing() SVGOption { return func(r *svgRenderer) { r.focusRing = true } }

// RenderSVG renders the visible items of f as SVG.
func RenderSVG(f render.Frame, opts ...SVGOption) []byte {
	r := svgRenderer{background: defaultBackground, labels: true}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		f.Width, f.Height, f.Width, f.Height)
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", r.background)

	for _, it := range f.VisibleItems() {
		r.renderItem(&buf, f, it)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) renderItem(buf *bytes.Buffer, f render.Frame, it render.Item) {
	fmt.Fprintf(buf, `  <g id="item-%d" opacity="%.3f">`+"\n", it.Index, it.Alpha)
	fmt.Fprintf(buf, `    <circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s"/>`+"\n",
		it.Center.X, it.Center.Y, it.Radius, hex(itemColor(it.Index)))

	if r.focusRing && it.Index == f.Focused {
		fmt.Fprintf(buf, `    <circle cx="%.2f" cy="%.2f" r="%.2f" fill="none" stroke="%s" stroke-width="2"/>`+"\n",
			it.Center.X, it.Center.Y, it.Radius+3, defaultLabelColor)
	}

	if r.labels && it.LabelAlpha > 0 && it.Title != "" {
		text := it.Title
		if it.Radius < labelThreshold {
			text = initial(text)
		}
		fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" font-family='%s' font-size="%.1f" fill="%s" opacity="%.3f" text-anchor="middle" dominant-baseline="central">%s</text>`+"\n",
			it.Center.X, it.Center.Y, fontFamily, fontSize(it.Radius), defaultLabelColor, it.LabelAlpha, escapeXML(text))
	}
	buf.WriteString("  </g>\n")
}

// fontSize scales labels with the item radius.
func fontSize(radius float64) float64 {
	return max(radius*0.35, 6)
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
