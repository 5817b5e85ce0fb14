// Package sink renders a [render.Frame] to output formats.
//
// # Overview
//
// Each sink takes a captured frame and functional options:
//
//   - [RenderSVG]: one circle and centered label per visible item
//   - [RenderPNG]: the same drawing rasterized with fogleman/gg, labels set in
//     Go Mono via golang/freetype
//   - [RenderJSON]: the frame as JSON
//   - [RenderTerminal]: a character grid styled with lipgloss, used by the TUI
//
// Items are colored from a fixed palette by index, so the same item keeps its
// color across frames. Item opacity and label opacity come straight from the
// frame; a label whose opacity is zero is not drawn.
//
//	f := render.Capture(sb)
//	svg := sink.RenderSVG(f, sink.WithBackground("#000000"))
//	png, err := sink.RenderPNG(f, sink.WithScale(2))
//
// [render.Frame]: github.com/matzehuels/springboard/pkg/render.Frame
package sink
