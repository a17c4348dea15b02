package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tinytask-cli/tinytask/store"
)

var deleteForce bool

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete <task_id>",
	Short: "Delete a task",
	Long:  `Delete a task by its ID. A confirmation prompt is displayed unless --force is given.`,
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

		task, err := s.Get(id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("no task with id %d", id)
			}
			return fmt.Errorf("failed to retrieve task %d: %w", id, err)
		}

		if !deleteForce && !confirm(fmt.Sprintf("Delete task %d (%s)", task.ID, task.Title)) {
			return nil
		}

		if err := s.Delete(id); err != nil {
			return fmt.Errorf("failed to delete task %d: %w", id, err)
		}

		if isJSON() {
			return printJSON(map[string]any{"deleted": id})
		}
		if !isQuiet() {
			fmt.Printf("Deleted task %d: %s\n", task.ID, task.Title)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)

	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "delete without confirmation")
}
