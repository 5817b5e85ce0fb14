package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/springboard/pkg/config"
	"github.com/matzehuels/springboard/pkg/geom"
	"github.com/matzehuels/springboard/pkg/springboard/distort"
	"github.com/matzehuels/springboard/pkg/springboard/layout"
)

// layoutOpts holds the flags of the layout command.
type layoutOpts struct {
	board   boardFlags
	json    bool
	centers bool
}

// layoutReport is the JSON form of the layout command's output.
type layoutReport struct {
	Items        int          `json:"items"`
	ItemsPerLine int          `json:"items_per_line"`
	Lines        int          `json:"lines"`
	ContentSize  geom.Size    `json:"content_size"`
	Extra        geom.Size    `json:"extra"`
	GridRect     geom.Rect    `json:"grid_rect"`
	MinZoomScale float64      `json:"min_zoom_scale"`
	Threshold    float64      `json:"distortion_threshold"`
	Centers      []geom.Point `json:"centers,omitempty"`
}

// layoutCommand creates the layout command.
func (c *CLI) layoutCommand() *cobra.Command {
	var opts layoutOpts

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Print the grid geometry of a board",
		Long: `Compute the grid for a board and print its geometry: items per line,
line count, content size, minimum zoom scale and distortion threshold.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.board.load(cmd, c.Logger)
			if err != nil {
				return err
			}
			report := computeLayout(cfg, opts.centers)
			if opts.json {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			printLayout(report)
			return nil
		},
	}

	opts.board.register(cmd)
	cmd.Flags().BoolVar(&opts.json, "json", false, "print JSON instead of a table")
	cmd.Flags().BoolVar(&opts.centers, "centers", false, "include every item center")

	return cmd
}

func computeLayout(cfg config.Config, withCenters bool) layoutReport {
	g, centers := layout.Compute(layout.Params{
		ItemCount: cfg.Grid.Items,
		Diameter:  cfg.Grid.Diameter,
		Padding:   cfg.Grid.Padding,
		Viewport:  cfg.ViewportSize(),
		Insets:    cfg.Viewport.Insets,
	})
	r := layoutReport{
		Items:        cfg.Grid.Items,
		ItemsPerLine: g.ItemsPerLine,
		Lines:        g.Lines,
		ContentSize:  g.ContentSize,
		Extra:        g.Extra,
		GridRect:     g.GridRect(),
		MinZoomScale: g.MinZoomScale,
		Threshold: distort.Threshold(distort.Params{
			Viewport:      cfg.ViewportSize(),
			ZoomScale:     1,
			Diameter:      cfg.Grid.Diameter,
			ReferenceSize: cfg.Effect.ReferenceSize,
		}),
	}
	if withCenters {
		r.Centers = centers
	}
	return r
}

func printLayout(r layoutReport) {
	fmt.Println(StyleTitle.Render("Layout"))
	printKeyValue("items", StyleNumber.Render(fmt.Sprint(r.Items)))
	printKeyValue("per line", StyleNumber.Render(fmt.Sprint(r.ItemsPerLine)))
	printKeyValue("lines", StyleNumber.Render(fmt.Sprint(r.Lines)))
	printKeyValue("content", fmt.Sprintf("%.1f × %.1f", r.ContentSize.W, r.ContentSize.H))
	printKeyValue("grid", fmt.Sprintf("%.1f × %.1f at (%.1f, %.1f)", r.GridRect.W, r.GridRect.H, r.GridRect.X, r.GridRect.Y))
	printKeyValue("min zoom", fmt.Sprintf("%.4f", r.MinZoomScale))
	printKeyValue("threshold", fmt.Sprintf("%.1f pt at zoom 1", r.Threshold))

	if len(r.Centers) == 0 {
		return
	}
	printNewline()
	rows := make([][]string, len(r.Centers))
	for i, c := range r.Centers {
		slot := layout.SlotFor(i, r.Items, r.ItemsPerLine)
		rows[i] = []string{fmt.Sprint(i), fmt.Sprint(slot.Line), fmt.Sprint(slot.Column), fmt.Sprintf("%.1f", c.X), fmt.Sprintf("%.1f", c.Y)}
	}
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("item", "line", "column", "x", "y").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	fmt.Println(t)
}
