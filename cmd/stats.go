package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/tinytask-cli/tinytask/internal/ui"
	"github.com/tinytask-cli/tinytask/models"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show task statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := GetStore()
		if err != nil {
			return err
		}
		defer func() { _ = s.Close() }()

		tasks, err := s.All()
		if err != nil {
			return fmt.Errorf("failed to load tasks: %w", err)
		}

		stats := ui.Stats{
			Total:             len(tasks),
			PendingByPriority: map[models.Priority]int{},
		}
		tagSet := map[string]struct{}{}
		for _, t := range tasks {
			if t.Done {
				stats.Done++
			} else {
				stats.PendingByPriority[t.Priority]++
			}
			for _, tag := range t.Tags {
				tagSet[tag] = struct{}{}
			}
		}
		for tag := range tagSet {
			stats.Tags = append(stats.Tags, tag)
		}
		sort.Strings(stats.Tags)

		if isJSON() {
			return printJSON(map[string]any{
				"total":               stats.Total,
				"done":                stats.Done,
				"pending":             stats.Total - stats.Done,
				"pending_by_priority": stats.PendingByPriority,
				"tags":                stats.Tags,
			})
		}
		fmt.Println(ui.RenderStats(stats))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
