package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/springboard/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Springboard lays out a zoomable watch-face app grid",
		Long: `Springboard is a geometry engine for a zoomable, pannable grid of circular
app icons with edge distortion and snapping. The CLI computes layouts, renders
frames to SVG, PNG or JSON, replays gesture scripts, runs an interactive
terminal preview and serves frames over HTTP.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPostRun: func(*cobra.Command, []string) {
			c.reportEngineStats()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.simulateCommand())
	root.AddCommand(c.tuiCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}
