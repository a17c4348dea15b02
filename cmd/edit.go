package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tinytask-cli/tinytask/internal/ui"
	"github.com/tinytask-cli/tinytask/models"
	"github.com/tinytask-cli/tinytask/store"
)

var (
	editTitle    string
	editPriority string
	editDue      string
	editNote     string
	editTags     []string
)

// editCmd represents the edit command
var editCmd = &cobra.Command{
	Use:   "edit <task_id>",
	Short: "Edit fields of a task",
	Long: `Edit one or more fields of a task. Only flags you pass are changed;
everything else keeps its value. Pass an empty string to clear a field.

Examples:
  tinytask edit 3 --title "Buy oat milk"
  tinytask edit 3 --due 2026-09-01 --priority high
  tinytask edit 3 --note ""`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)

	editCmd.Flags().StringVar(&editTitle, "title", "", "new title")
	editCmd.Flags().StringVarP(&editPriority, "priority", "p", "", "new priority (low, medium, high)")
	editCmd.Flags().StringVarP(&editDue, "due", "d", "", "new due date (YYYY-MM-DD, empty clears)")
	editCmd.Flags().StringVarP(&editNote, "note", "n", "", "new note (empty clears)")
	editCmd.Flags().StringArrayVarP(&editTags, "tag", "t", nil, "new tag list (repeatable, replaces existing)")
}

func runEdit(cmd *cobra.Command, args []string) error {
	id, err := parseTaskID(args[0])
	if err != nil {
		return err
	}

	var update models.TaskUpdate
	if cmd.Flags().Changed("title") {
		title := strings.TrimSpace(editTitle)
		if title == "" {
			return fmt.Errorf("title cannot be empty")
		}
		update.Title = &title
	}
	if cmd.Flags().Changed("priority") {
		p, err := models.ParsePriority(editPriority)
		if err != nil {
			return err
		}
		update.Priority = &p
	}
	if cmd.Flags().Changed("due") {
		if editDue != "" {
			if _, err := time.Parse(models.DateLayout, editDue); err != nil {
				return fmt.Errorf("invalid due date %q: expected YYYY-MM-DD", editDue)
			}
		}
		update.DueDate = &editDue
	}
	if cmd.Flags().Changed("note") {
		update.Note = &editNote
	}
	if cmd.Flags().Changed("tag") {
		update.Tags = &editTags
	}

	if update == (models.TaskUpdate{}) {
		return fmt.Errorf("nothing to change: pass at least one of --title, --priority, --due, --note, --tag")
	}

	s, err := GetStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if err := requireEnabled(s); err != nil {
		return err
	}

	task, err := s.Edit(id, update)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("no task with id %d", id)
		}
		return fmt.Errorf("failed to edit task %d: %w", id, err)
	}

	if isJSON() {
		return printJSON(task)
	}
	if !isQuiet() {
		fmt.Println(ui.RenderTask(task))
	}
	return nil
}
