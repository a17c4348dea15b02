package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tinytask-cli/tinytask/store"
)

// undoneCmd represents the undone command
var undoneCmd = &cobra.Command{
	Use:   "undone <task_id>",
	Short: "Reopen a completed task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseTaskID(args[0])
		if err != nil {
			return err
		}

		s, err := GetStore()
		if err != nil {
			return err
		}
		defer func() { _ = s.Close() }()

		if err := requireEnabled(s); err != nil {
			return err
		}

		task, err := s.MarkUndone(id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("no task with id %d", id)
			}
			return fmt.Errorf("failed to reopen task %d: %w", id, err)
		}

		if isJSON() {
			return printJSON(task)
		}
		if !isQuiet() {
			fmt.Printf("○ Reopened: %s\n", task.Title)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(undoneCmd)
}
