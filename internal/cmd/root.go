package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for organizer
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "organizer <source> <output>",
		Short: "Sort files into folders by extension",
		Long: `Organizer prepares a source and an output directory, seeds the source
with placeholder files, scans it recursively, and copies every file with an
allowed extension into <output>/<extension>/ using a bounded pool of workers.

Per-file failures are logged and reported; they never stop the run.

Configuration is loaded from .organizer/config.yaml (or config.toml) if
present. CLI flags override configuration file settings.

Examples:
  organizer ./source ./output
  organizer --workers 4 --log-dir ./logs ./source ./output
  organizer --keep-source --report run.yaml ~/Downloads ./sorted`,
		Version: Version,
		Args:    cobra.ExactArgs(2),
		RunE:    runOrganize,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
		// main prints the returned error once
		SilenceErrors: true,
	}

	addOrganizeFlags(cmd)

	cmd.AddCommand(NewScanCommand())
	cmd.AddCommand(NewVersionCommand())

	return cmd
}
