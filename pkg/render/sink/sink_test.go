package sink

import (
	"bytes"
	"encoding/json"
	"image/png"
	"strings"
	"testing"

	"github.com/matzehuels/springboard/pkg/geom"
	"github.com/matzehuels/springboard/pkg/render"
)

func testFrame() render.Frame {
	return render.Frame{
		Width:    100,
		Height:   80,
		Zoom:     1,
		Diameter: 40,
		Focused:  1,
		Items: []render.Item{
			{Index: 0, Title: "Mail", Center: geom.Pt(30, 40), Radius: 20, Alpha: 1, LabelAlpha: 1},
			{Index: 1, Title: "Maps & Co", Center: geom.Pt(70, 40), Radius: 10, Alpha: 0.5, LabelAlpha: 1},
			{Index: 2, Title: "Hidden", Center: geom.Pt(300, 40), Radius: 20, Alpha: 1, LabelAlpha: 1},
			{Index: 3, Title: "Faded", Center: geom.Pt(50, 20), Radius: 20, Alpha: 1, LabelAlpha: 0},
		},
	}
}

func TestRenderSVG(t *testing.T) {
	svg := string(RenderSVG(testFrame(), WithFocusRing()))

	if !strings.HasPrefix(svg, "<svg") || !strings.HasSuffix(svg, "</svg>\n") {
		t.Fatalf("not an svg document:\n%s", svg)
	}
	if !strings.Contains(svg, `viewBox="0 0 100.0 80.0"`) {
		t.Error("missing viewBox")
	}
	if strings.Count(svg, `<g id="item-`) != 3 {
		t.Errorf("expected 3 visible items:\n%s", svg)
	}
	if strings.Contains(svg, "item-2") {
		t.Error("off-screen item should be skipped")
	}
	if !strings.Contains(svg, ">Mail</text>") {
		t.Error("missing full label")
	}
	// radius 10 is below the label threshold, so only the initial is drawn
	if !strings.Contains(svg, ">M</text>") || strings.Contains(svg, "Maps &amp; Co") {
		t.Error("small item should show only its initial")
	}
	if strings.Contains(svg, ">Faded</text>") {
		t.Error("label with zero opacity should not be drawn")
	}
	if strings.Count(svg, `fill="none"`) != 1 {
		t.Error("focus ring should be drawn once")
	}
}

func TestRenderSVGEscapes(t *testing.T) {
	f := testFrame()
	f.Items = f.Items[:1]
	f.Items[0].Title = "A&B <x>"
	svg := string(RenderSVG(f))
	if !strings.Contains(svg, "A&amp;B &lt;x&gt;") {
		t.Errorf("title not escaped:\n%s", svg)
	}
}

func TestRenderSVGWithoutLabels(t *testing.T) {
	svg := string(RenderSVG(testFrame(), WithoutLabels(), WithBackground("#112233")))
	if strings.Contains(svg, "<text") {
		t.Error("labels should be omitted")
	}
	if !strings.Contains(svg, `fill="#112233"`) {
		t.Error("background color not applied")
	}
}

func TestRenderPNG(t *testing.T) {
	data, err := RenderPNG(testFrame(), WithScale(1))
	if err != nil {
		t.Fatalf("RenderPNG() error: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode() error: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 100 || b.Dy() != 80 {
		t.Errorf("image size = %dx%d, want 100x80", b.Dx(), b.Dy())
	}

	// the center of item 0 is painted in its palette color
	r, g, b, _ := img.At(30, 52).RGBA()
	want := itemColor(0)
	if uint8(r>>8) != want.R || uint8(g>>8) != want.G || uint8(b>>8) != want.B {
		t.Errorf("pixel = %d,%d,%d, want %v", r>>8, g>>8, b>>8, want)
	}
}

func TestRenderPNGScale(t *testing.T) {
	data, err := RenderPNG(testFrame())
	if err != nil {
		t.Fatalf("RenderPNG() error: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode() error: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 160 {
		t.Errorf("image size = %dx%d, want 200x160", b.Dx(), b.Dy())
	}
}

func TestRenderPNGEmptyFrame(t *testing.T) {
	if _, err := RenderPNG(render.Frame{}); err == nil {
		t.Error("expected error for empty frame")
	}
}

func TestRenderJSON(t *testing.T) {
	data, err := RenderJSON(testFrame(), WithJSONVisibleOnly())
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}
	var out render.Frame
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if out.Width != 100 || out.Focused != 1 {
		t.Errorf("frame = %+v", out)
	}
	if len(out.Items) != 3 {
		t.Errorf("len(Items) = %d, want 3 visible", len(out.Items))
	}

	compact, err := RenderJSON(testFrame(), WithJSONCompact())
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}
	if bytes.Contains(compact, []byte("\n")) {
		t.Error("compact output should be one line")
	}
}

func TestRenderTerminal(t *testing.T) {
	out := RenderTerminal(testFrame(), WithCells(10, 8))
	lines := strings.Split(out, "\n")
	if len(lines) != 8 {
		t.Fatalf("got %d rows, want 8", len(lines))
	}
	if !strings.Contains(out, glyphLarge) {
		t.Error("full-size item should use the large glyph")
	}
	if !strings.Contains(out, glyphSmall) {
		t.Error("half-size item should use the small glyph")
	}

	bordered := RenderTerminal(testFrame(), WithCells(10, 8), WithBorder())
	if n := len(strings.Split(bordered, "\n")); n != 10 {
		t.Errorf("bordered rows = %d, want 10", n)
	}
}

func TestGlyph(t *testing.T) {
	tests := []struct {
		radius, full float64
		want         string
	}{
		{20, 20, glyphLarge},
		{15, 20, glyphLarge},
		{10, 20, glyphSmall},
		{5, 20, glyphTiny},
		{5, 0, glyphLarge},
	}
	for _, tt := range tests {
		if got := glyph(tt.radius, tt.full); got != tt.want {
			t.Errorf("glyph(%v, %v) = %q, want %q", tt.radius, tt.full, got, tt.want)
		}
	}
}

func TestParseHex(t *testing.T) {
	if c := parseHex("#ff8000"); c.R != 0xff || c.G != 0x80 || c.B != 0 {
		t.Errorf("parseHex = %v", c)
	}
	if c := parseHex("nope"); c.R != 0 || c.A != 0xff {
		t.Errorf("parseHex(invalid) = %v, want opaque black", c)
	}
}
