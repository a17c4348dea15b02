package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tinytask-cli/tinytask/internal/timeline"
	"github.com/tinytask-cli/tinytask/models"
)

var timelineOutput string

// timelineCmd represents the timeline command
var timelineCmd = &cobra.Command{
	Use:   "timeline <projected_date>",
	Short: "Render a PNG timeline for a projected completion date",
	Long: `Render a small PNG chart comparing a projected completion date against
the end-of-January target of that year. The bar is green while the
projection is on track and gains a red overshoot segment past the target.

Examples:
  tinytask timeline 2026-01-25
  tinytask timeline 2026-03-15 --output progress.png`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		projected, err := time.Parse(models.DateLayout, args[0])
		if err != nil {
			return fmt.Errorf("invalid projected date %q: expected YYYY-MM-DD", args[0])
		}

		path := timelineOutput
		if path == "" {
			path = "timeline.png"
		}
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		defer func() { _ = f.Close() }()

		if err := timeline.Generate(projected, f); err != nil {
			return err
		}

		if isJSON() {
			return printJSON(map[string]any{"file": path})
		}
		if !isQuiet() {
			fmt.Printf("Wrote %s\n", path)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(timelineCmd)

	timelineCmd.Flags().StringVarP(&timelineOutput, "output", "o", "", "output PNG path (default timeline.png)")
}
