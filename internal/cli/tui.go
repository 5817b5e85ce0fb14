package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/springboard/pkg/geom"
	"github.com/matzehuels/springboard/pkg/render/sink"
	"github.com/matzehuels/springboard/pkg/script"
)

// Board styles
var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	boardLabelStyle = lipgloss.NewStyle().Foreground(colorWhite)
	boardDimStyle   = lipgloss.NewStyle().Foreground(colorDim)
)

// Gesture sizes for key presses.
const (
	keyZoomStep      = 1.25
	keyFlingVelocity = 900.0 // points per second
	flingTravel      = 50 * time.Millisecond
)

// tuiCommand creates the interactive tui command.
func (c *CLI) tuiCommand() *cobra.Command {
	var board boardFlags

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Browse a springboard interactively in the terminal",
		Long: `Open an interactive springboard. Arrow keys drag by one item, shift+arrow
flings, + and - pinch, space double-taps the center, a shows all items, i plays
the intro and q quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := board.load(cmd, c.Logger)
			if err != nil {
				return err
			}
			// engine debug logs would tear the alternate screen
			c.SetLogLevel(LogInfo)
			m := NewBoardModel(script.NewScene(cfg, c.Logger))
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	board.register(cmd)
	return cmd
}

// =============================================================================
// BoardModel - Interactive springboard
// =============================================================================

type tickMsg time.Time

// BoardModel is the bubbletea model driving a springboard scene.
type BoardModel struct {
	Scene  *script.Scene
	Cols   int
	Rows   int
	status string
}

// NewBoardModel creates a board model for sc.
func NewBoardModel(sc *script.Scene) BoardModel {
	return BoardModel{Scene: sc, Cols: sink.DefaultColumns, Rows: sink.DefaultRows}
}

func (m BoardModel) tick() tea.Cmd {
	return tea.Tick(m.Scene.FrameDuration(), func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m BoardModel) Init() tea.Cmd {
	return m.tick()
}

func (m BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.Scene.Tick(m.Scene.FrameDuration())
		return m, m.tick()

	case tea.WindowSizeMsg:
		// two columns per row keep circles round in most terminal fonts
		rows := msg.Height - 5
		cols := msg.Width - 2
		if rows*2 < cols {
			cols = rows * 2
		} else {
			rows = cols / 2
		}
		if rows > 0 && cols > 0 {
			m.Cols, m.Rows = cols, rows
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.drag(geom.Pt(0, 1))
		case "down", "j":
			m.drag(geom.Pt(0, -1))
		case "left", "h":
			m.drag(geom.Pt(1, 0))
		case "right", "l":
			m.drag(geom.Pt(-1, 0))
		case "shift+up":
			m.fling(geom.Pt(0, 1))
		case "shift+down":
			m.fling(geom.Pt(0, -1))
		case "shift+left":
			m.fling(geom.Pt(1, 0))
		case "shift+right":
			m.fling(geom.Pt(-1, 0))
		case "+", "=":
			m.pinch(keyZoomStep)
		case "-", "_":
			m.pinch(1 / keyZoomStep)
		case " ", "enter":
			m.Scene.Viewport.DoubleTap(m.center())
			m.status = "double tap"
		case "a":
			m.Scene.Board.ShowAllContent(true)
			m.status = "show all"
		case "i":
			m.Scene.Board.PlayIntroAnimation()
			m.status = "intro"
		}
		return m, nil
	}
	return m, nil
}

// center returns the middle of the viewport in visible-bounds points.
func (m *BoardModel) center() geom.Point {
	size := m.Scene.Viewport.Size()
	return geom.Pt(size.W/2, size.H/2)
}

// drag moves the finger one item step in dir and lifts it without momentum.
func (m *BoardModel) drag(dir geom.Point) {
	vp := m.Scene.Viewport
	step := (m.Scene.Board.ItemDiameter() + m.Scene.Board.ItemPadding()) * vp.ZoomScale()
	vp.BeginDrag()
	vp.DragBy(dir.Mul(step))
	vp.EndDrag(geom.Point{})
	m.status = "drag"
}

// fling lifts the finger while it still moves in dir.
func (m *BoardModel) fling(dir geom.Point) {
	vp := m.Scene.Viewport
	finger := dir.Mul(keyFlingVelocity)
	vp.BeginDrag()
	vp.DragBy(finger.Mul(flingTravel.Seconds()))
	vp.EndDrag(finger.Mul(-1))
	m.status = "fling"
}

// pinch zooms by factor around the viewport center.
func (m *BoardModel) pinch(factor float64) {
	vp := m.Scene.Viewport
	vp.BeginZoom()
	vp.ZoomBy(factor, m.center())
	vp.EndZoom()
	m.status = "pinch"
}

func (m BoardModel) View() string {
	var b strings.Builder

	f := m.Scene.Capture()
	b.WriteString(boardTitleStyle.Render(appName))
	b.WriteString("  ")
	b.WriteString(boardDimStyle.Render(fmt.Sprintf("%d items · zoom %.2f", len(f.Items), f.Zoom)))
	if m.status != "" {
		b.WriteString(boardDimStyle.Render(" · " + m.status))
	}
	b.WriteString("\n")

	b.WriteString(sink.RenderTerminal(f, sink.WithCells(m.Cols, m.Rows), sink.WithBorder()))
	b.WriteString("\n")

	label := ""
	if f.Focused >= 0 && f.Focused < len(f.Items) {
		label = f.Items[f.Focused].Title
	}
	b.WriteString(boardLabelStyle.Render(label))
	b.WriteString("\n")
	b.WriteString(boardDimStyle.Render("←↑↓→ drag · shift fling · +/- zoom · space tap · a all · i intro · q quit"))
	return b.String()
}
