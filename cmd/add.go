package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tinytask-cli/tinytask/models"
)

var (
	addTags     []string
	addPriority string
	addDue      string
	addNote     string
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a new task",
	Long: `Add a new task to the tracker.

Examples:
  tinytask add "Buy milk"
  tinytask add "File taxes" --priority high --due 2026-04-15 --tag finance
  tinytask add "Call dentist" --note "ask about the Thursday slot"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringArrayVarP(&addTags, "tag", "t", nil, "tag to attach (repeatable)")
	addCmd.Flags().StringVarP(&addPriority, "priority", "p", "", "task priority (low, medium, high)")
	addCmd.Flags().StringVarP(&addDue, "due", "d", "", "due date (YYYY-MM-DD)")
	addCmd.Flags().StringVarP(&addNote, "note", "n", "", "free-form note")
}

func runAdd(cmd *cobra.Command, args []string) error {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		return fmt.Errorf("title cannot be empty")
	}

	// Validate inputs before touching the store.
	var priority models.Priority
	if addPriority != "" {
		p, err := models.ParsePriority(addPriority)
		if err != nil {
			return err
		}
		priority = p
	}
	if addDue != "" {
		if _, err := time.Parse(models.DateLayout, addDue); err != nil {
			return fmt.Errorf("invalid due date %q: expected YYYY-MM-DD", addDue)
		}
	}

	s, err := GetStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if err := requireEnabled(s); err != nil {
		return err
	}

	task, err := s.Add(title, addTags, priority, addDue, addNote)
	if err != nil {
		return fmt.Errorf("failed to add task: %w", err)
	}

	if isJSON() {
		return printJSON(task)
	}
	if !isQuiet() {
		fmt.Printf("✓ Added task %d: %s\n", task.ID, task.Title)
	}
	return nil
}
