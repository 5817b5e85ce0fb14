package sink

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/springboard/pkg/render"
)

// Default terminal grid size in cells.
const (
	DefaultColumns = 48
	DefaultRows    = 24
)

// Glyphs by on-screen size.
const (
	glyphLarge = "●"
	glyphSmall = "•"
	glyphTiny  = "·"
	glyphEmpty = " "
)

// TerminalOption configures terminal rendering via [RenderTerminal].
type TerminalOption func(*terminalRenderer)

type terminalRenderer struct {
	cols, rows int
	border     bool
}

// WithCells sets the grid size in terminal cells.
func WithCells(cols, rows int) TerminalOption {
	return func(r *terminalRenderer) {
		if cols > 0 && rows > 0 {
			r.cols, r.rows = cols, rows
		}
	}
}

// WithBorder draws a rounded border around the grid.
func WithBorder() TerminalOption { return func(r *terminalRenderer) { r.border = true } }

var focusStyle = lipgloss.NewStyle().Bold(true).Reverse(true)

// RenderTerminal draws f as a character grid. Each visible item becomes one
// glyph at its center cell, colored from the palette; the focused item is
// shown reversed.
func RenderTerminal(f render.Frame, opts ...TerminalOption) string {
	r := terminalRenderer{cols: DefaultColumns, rows: DefaultRows}
	for _, opt := range opts {
		opt(&r)
	}

	cells := make([][]string, r.rows)
	for y := range cells {
		cells[y] = make([]string, r.cols)
		for x := range cells[y] {
			cells[y][x] = glyphEmpty
		}
	}

	if f.Width > 0 && f.Height > 0 {
		sx := float64(r.cols) / f.Width
		sy := float64(r.rows) / f.Height
		for _, it := range f.VisibleItems() {
			x := int(math.Floor(it.Center.X * sx))
			y := int(math.Floor(it.Center.Y * sy))
			if x < 0 || x >= r.cols || y < 0 || y >= r.rows {
				continue
			}
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(hex(itemColor(it.Index))))
			if it.Index == f.Focused {
				style = focusStyle.Foreground(lipgloss.Color(hex(itemColor(it.Index))))
			}
			cells[y][x] = style.Render(glyph(it.Radius, f.Diameter*f.Zoom/2))
		}
	}

	lines := make([]string, r.rows)
	for y, row := range cells {
		lines[y] = strings.Join(row, "")
	}
	out := strings.Join(lines, "\n")
	if r.border {
		out = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Render(out)
	}
	return out
}

// glyph picks a glyph by how much of its undistorted radius an item keeps.
func glyph(radius, full float64) string {
	if full <= 0 {
		return glyphLarge
	}
	switch k := radius / full; {
	case k >= 0.75:
		return glyphLarge
	case k >= 0.5:
		return glyphSmall
	default:
		return glyphTiny
	}
}
