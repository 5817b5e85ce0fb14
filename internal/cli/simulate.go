package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/springboard/pkg/script"
)

// simulateOpts holds the flags of the simulate command.
type simulateOpts struct {
	board boardFlags
	limit time.Duration
	json  bool
}

// simulateStep is the JSON form of one replayed step.
type simulateStep struct {
	Step    int     `json:"step"`
	Action  string  `json:"action"`
	Focused int     `json:"focused"`
	OffsetX float64 `json:"offset_x"`
	OffsetY float64 `json:"offset_y"`
	Zoom    float64 `json:"zoom"`
	Elapsed string  `json:"elapsed"`
}

// simulateCommand creates the simulate command.
func (c *CLI) simulateCommand() *cobra.Command {
	opts := simulateOpts{limit: script.DefaultSettleLimit}

	cmd := &cobra.Command{
		Use:   "simulate [script.toml]",
		Short: "Replay a gesture script and report where each step comes to rest",
		Long: `Replay a TOML gesture script against a simulated board. After every step the
scene settles and the focused item, content offset and zoom scale are printed.`,
		Example: `  springboard simulate tour.toml
  springboard simulate tour.toml --items 120 --json`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeScriptArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.board.load(cmd, c.Logger)
			if err != nil {
				return err
			}
			s, err := script.Load(args[0])
			if err != nil {
				return err
			}
			c.Logger.Infof("Replaying %s (%d steps)", args[0], len(s.Steps))

			prog := newProgress(c.Logger)
			sc := script.NewScene(cfg, c.Logger)
			var steps []simulateStep
			err = script.NewRunner(sc, opts.limit).Run(cmd.Context(), s, func(r script.Result) {
				steps = append(steps, simulateStep{
					Step:    r.Step,
					Action:  r.Action,
					Focused: r.Focused,
					OffsetX: r.Offset.X,
					OffsetY: r.Offset.Y,
					Zoom:    r.Zoom,
					Elapsed: r.Elapsed.String(),
				})
			})
			if err != nil {
				return err
			}

			if opts.json {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(steps)
			}
			printSimulation(s.Name, steps)
			printBoard(cfg)
			prog.done("Simulation complete")
			return nil
		},
	}

	opts.board.register(cmd)
	cmd.Flags().DurationVar(&opts.limit, "settle-limit", opts.limit, "simulated time each step may take to settle")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print JSON instead of a table")

	return cmd
}

func printSimulation(name string, steps []simulateStep) {
	if name != "" {
		fmt.Println(StyleTitle.Render(name))
	}
	rows := make([][]string, len(steps))
	for i, s := range steps {
		rows[i] = []string{
			fmt.Sprint(s.Step),
			s.Action,
			fmt.Sprint(s.Focused),
			fmt.Sprintf("%.1f, %.1f", s.OffsetX, s.OffsetY),
			fmt.Sprintf("%.3f", s.Zoom),
			s.Elapsed,
		}
	}
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "action", "focused", "offset", "zoom", "settled in").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 2:
				return StyleHighlight.Padding(0, 1)
			default:
				return lipgloss.NewStyle().Padding(0, 1)
			}
		})
	fmt.Println(t)
}
