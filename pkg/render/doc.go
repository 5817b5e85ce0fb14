// Package render captures the visible state of a springboard as a [Frame].
//
// # Overview
//
// A frame is a flat, viewport-space snapshot: for every item it records the
// on-screen center and radius after zoom, scroll and edge distortion, plus the
// item's opacity and label opacity. Frames carry no references back into the
// engine, so they can be cached, serialized and drawn later.
//
//	sb.Layout()
//	f := render.Capture(sb)
//	svg := sink.RenderSVG(f)
//
// Output formats live in the [sink] subpackage:
//
//   - SVG: vector output with one circle and label per item
//   - PNG: raster output drawn with fogleman/gg
//   - JSON: the frame itself, for external tools
//   - Terminal: a lipgloss-styled character grid
//
// [sink]: github.com/matzehuels/springboard/pkg/render/sink
package render
