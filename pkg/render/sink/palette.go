package sink

import (
	"fmt"
	"image/color"
)

var palette = []color.RGBA{
	{R: 0xff, G: 0x45, B: 0x3a, A: 0xff},
	{R: 0xff, G: 0x9f, B: 0x0a, A: 0xff},
	{R: 0xff, G: 0xd6, B: 0x0a, A: 0xff},
	{R: 0x30, G: 0xd1, B: 0x58, A: 0xff},
	{R: 0x64, G: 0xd2, B: 0xff, A: 0xff},
	{R: 0x0a, G: 0x84, B: 0xff, A: 0xff},
	{R: 0x5e, G: 0x5c, B: 0xe6, A: 0xff},
	{R: 0xbf, G: 0x5a, B: 0xf2, A: 0xff},
	{R: 0xff, G: 0x37, B: 0x5f, A: 0xff},
}

const (
	defaultBackground = "#000000"
	defaultLabelColor = "#ffffff"
)

func itemColor(i int) color.RGBA {
	if i < 0 {
		i = -i
	}
	return palette[i%len(palette)]
}

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// parseHex parses "#rrggbb". Anything else yields black.
func parseHex(s string) color.RGBA {
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{A: 0xff}
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// initial is the label drawn when an item is too small for its title.
func initial(title string) string {
	for _, r := range title {
		return string(r)
	}
	return ""
}
