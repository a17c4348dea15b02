package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tinytask-cli/tinytask/store"
)

// tagCmd represents the tag command
var tagCmd = &cobra.Command{
	Use:   "tag <task_id> [tags...]",
	Short: "Replace a task's tags",
	Long: `Replace the full tag list of a task. Passing no tags clears them.

Examples:
  tinytask tag 3 work urgent
  tinytask tag 3`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseTaskID(args[0])
		if err != nil {
			return err
		}
		tags := args[1:]

		s, err := GetStore()
		if err != nil {
			return err
		}
		defer func() { _ = s.Close() }()

		if err := requireEnabled(s); err != nil {
			return err
		}

		task, err := s.UpdateTags(id, tags)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("no task with id %d", id)
			}
			return fmt.Errorf("failed to update tags on task %d: %w", id, err)
		}

		if isJSON() {
			return printJSON(task)
		}
		if !isQuiet() {
			if len(task.Tags) == 0 {
				fmt.Printf("Cleared tags on task %d.\n", task.ID)
			} else {
				fmt.Printf("Tagged task %d: %v\n", task.ID, task.Tags)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tagCmd)
}
