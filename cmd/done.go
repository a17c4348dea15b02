package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tinytask-cli/tinytask/store"
)

// doneCmd represents the done command
var doneCmd = &cobra.Command{
	Use:   "done <task_id>",
	Short: "Mark a task as completed",
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

		task, err := s.MarkDone(id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("no task with id %d", id)
			}
			return fmt.Errorf("failed to complete task %d: %w", id, err)
		}

		if isJSON() {
			return printJSON(task)
		}
		if !isQuiet() {
			fmt.Printf("✓ Done: %s\n", task.Title)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doneCmd)
}
