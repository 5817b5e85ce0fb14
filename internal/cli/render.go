package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/springboard/pkg/config"
	"github.com/matzehuels/springboard/pkg/errors"
)

const (
	defaultOutput = "springboard" // base name when -o is not given
	defaultScale  = 2.0           // PNG pixels per point
)

// validFormats is the set of supported output formats.
var validFormats = map[string]bool{formatSVG: true, formatPNG: true, formatJSON: true}

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	board      boardFlags
	output     string   // output file path (or base path for multiple outputs)
	formats    []string // output formats: "svg", "png", "json"
	focus      int      // item to center, -1 keeps the initial item
	zoom       float64  // zoom scale, 0 keeps the current zoom
	showAll    bool     // zoom out to show the whole grid
	intro      bool     // play the intro animation before capture
	at         time.Duration
	scriptPath string
	scale      float64
	noLabels   bool
	background string
	noCache    bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{focus: -1, scale: defaultScale}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a springboard frame to SVG, PNG or JSON",
		Long: `Build a board, drive it into the requested state and write the frame.

The state is applied in order: the gesture script (--script), then --focus and
--zoom or --show-all, then --intro. The frame is captured once everything has
settled, or after --at of simulated time.`,
		Example: `  springboard render -f svg,png --focus 12 --zoom 0.8
  springboard render --show-all -o overview.svg
  springboard render --intro --at 150ms -f png
  springboard render --script tour.toml -f json -o -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			if opts.zoom < 0 {
				return errors.New(errors.ErrCodeInvalidArgument, "zoom must be positive, got %g", opts.zoom)
			}
			if err := errors.ValidatePositive("scale", opts.scale); err != nil {
				return err
			}
			cfg, err := opts.board.load(cmd, c.Logger)
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), cfg, &opts)
		},
	}

	opts.board.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple), - for stdout")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, json (comma-separated)")
	cmd.Flags().IntVar(&opts.focus, "focus", opts.focus, "item index to center")
	cmd.Flags().Float64Var(&opts.zoom, "zoom", 0, "zoom scale")
	cmd.Flags().BoolVar(&opts.showAll, "show-all", false, "zoom out to show all items")
	cmd.Flags().BoolVar(&opts.intro, "intro", false, "play the intro animation")
	cmd.Flags().DurationVar(&opts.at, "at", 0, "capture after this much simulated time instead of at rest")
	cmd.Flags().StringVar(&opts.scriptPath, "script", "", "gesture script to replay first")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG pixels per point")
	cmd.Flags().BoolVar(&opts.noLabels, "no-labels", false, "omit item labels")
	cmd.Flags().StringVar(&opts.background, "background", "", "background color (#rrggbb)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)
	_ = cmd.RegisterFlagCompletionFunc("script", completeTOML)
	_ = cmd.RegisterFlagCompletionFunc("background", completeBackground)

	return cmd
}

// validateFormats checks that all requested formats are supported.
func validateFormats(formats []string) error {
	for _, f := range formats {
		if !validFormats[f] {
			return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %s (must be 'svg', 'png' or 'json')", f)
		}
	}
	return nil
}

// basePath derives the base output path. Known format extensions are
// stripped so "out.svg" with -f svg,png yields out.svg and out.png.
func basePath(output string) string {
	if output == "" {
		return defaultOutput
	}
	ext := filepath.Ext(output)
	if validFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPath returns where the artifact of format goes. A single format
// written to an explicit path keeps that path as given.
func outputPath(output, format string, single bool) string {
	if output == "-" {
		return ""
	}
	if single && output != "" {
		return output
	}
	return basePath(output) + "." + format
}

func (c *CLI) runRender(ctx context.Context, cfg config.Config, opts *renderOpts) error {
	logger := c.Logger
	prog := newProgress(logger)

	req := frameRequest{
		focus:   opts.focus,
		zoom:    opts.zoom,
		showAll: opts.showAll,
		intro:   opts.intro,
		elapsed: opts.at,
	}
	if err := req.loadScript(opts.scriptPath); err != nil {
		return err
	}
	if opts.output == "-" && len(opts.formats) > 1 {
		return errors.New(errors.ErrCodeInvalidArgument, "stdout output takes a single format")
	}

	arts := make([]artifactRequest, len(opts.formats))
	for i, f := range opts.formats {
		arts[i] = artifactRequest{format: f, scale: opts.scale, labels: !opts.noLabels, background: opts.background}
	}

	store := newCache(ctx, cfg, opts.noCache, logger)
	defer store.Close()

	toStdout := opts.output == "-"
	var spinner *Spinner
	if !toStdout {
		spinner = newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %d items...", cfg.Grid.Items))
		spinner.Start()
	}
	results, frame, err := newFrameRenderer(cfg, store, logger).render(ctx, req, arts)
	if spinner != nil {
		if err != nil {
			spinner.StopWithError("Render failed")
		} else {
			spinner.Stop()
		}
	}
	if err != nil {
		return err
	}

	cached := true
	for _, a := range results {
		path := outputPath(opts.output, a.format, len(results) == 1)
		if err := writeOutput(path, a.data); err != nil {
			return err
		}
		cached = cached && a.cached
		if path != "" {
			logger.Debugf("Wrote %s (%d bytes)", path, len(a.data))
		}
	}
	if toStdout {
		return nil
	}

	printSuccess("Rendered %d %s", len(results), plural(len(results), "file", "files"))
	for _, a := range results {
		printFile(outputPath(opts.output, a.format, len(results) == 1))
	}
	printBoard(cfg)
	if frame != nil {
		printFrameStats(len(frame.Items), len(frame.VisibleItems()), frame.Zoom, cached)
	} else {
		printDetail("all artifacts served from cache")
	}
	prog.done("Render complete")
	return nil
}

// writeOutput writes data to path, or to stdout when path is empty.
func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
