package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harrison/organizer/internal/fileutil"
	"github.com/harrison/organizer/internal/organizer"
)

// NewScanCommand creates the scan command
func NewScanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan <directory>",
		Short: "List the files an organize pass would see",
		Long: `List files under a directory with the extension folder each would be
copied to. Without filters every regular file is listed, hidden and
symlinked directories included, matching what an organize pass scans.

Examples:
  organizer scan ./source
  organizer scan ./source --ext png,jpg
  organizer scan ./source --pattern '^file_\d+$' --max-depth 2`,
		Args: cobra.ExactArgs(1),
		RunE: runScan,
	}

	cmd.Flags().StringSlice("ext", nil, "Only list files with these extensions")
	cmd.Flags().String("pattern", "", "Regex matched against file names without extension")
	cmd.Flags().Int("max-depth", 0, "Maximum directory depth (0 = unlimited, 1 = top level only)")
	cmd.Flags().StringSlice("exclude", nil, "Directory names to skip")

	return cmd
}

func runScan(cmd *cobra.Command, args []string) error {
	exts, _ := cmd.Flags().GetStringSlice("ext")
	pattern, _ := cmd.Flags().GetString("pattern")
	maxDepth, _ := cmd.Flags().GetInt("max-depth")
	exclude, _ := cmd.Flags().GetStringSlice("exclude")

	if maxDepth < 0 {
		return fmt.Errorf("max-depth must be >= 0, got %d", maxDepth)
	}

	result, err := fileutil.ScanDirectory(args[0], fileutil.ScanOptions{
		Pattern:        pattern,
		Extensions:     exts,
		Recursive:      true,
		ExcludeDirs:    exclude,
		MaxDepth:       maxDepth,
		IncludeHidden:  true,
		FollowSymlinks: true,
		RegularOnly:    true,
	})
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	out := cmd.OutOrStdout()
	for _, f := range result.Files {
		fmt.Fprintf(out, "%-12s %s\n", organizer.ExtensionOf(f), f)
	}
	for _, err := range result.Errors {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
	}
	fmt.Fprintf(out, "%d file(s)\n", len(result.Files))

	return nil
}
