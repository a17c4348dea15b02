package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tinytask-cli/tinytask/internal/ui"
	"github.com/tinytask-cli/tinytask/models"
	"github.com/tinytask-cli/tinytask/store"
)

var (
	listAll      bool
	listTag      string
	listPriority string
	listDue      string
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Long: `List pending tasks, most urgent first. Overdue tasks sort to the top,
then tasks by due date and priority.

Examples:
  tinytask list
  tinytask list --all
  tinytask list --tag work --priority high
  tinytask list --due overdue`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().BoolVarP(&listAll, "all", "a", false, "include completed tasks")
	listCmd.Flags().StringVarP(&listTag, "tag", "t", "", "only tasks carrying this tag")
	listCmd.Flags().StringVarP(&listPriority, "priority", "p", "", "only tasks with this priority (low, medium, high)")
	listCmd.Flags().StringVarP(&listDue, "due", "d", "", "only tasks due in this window (overdue, today, upcoming)")
}

func runList(cmd *cobra.Command, args []string) error {
	filter := store.ListFilter{ShowDone: listAll, Tag: listTag, Now: time.Now()}

	if listPriority != "" {
		p, err := models.ParsePriority(listPriority)
		if err != nil {
			return err
		}
		filter.Priority = p
	}
	if listDue != "" {
		d, err := models.ParseDueFilter(listDue)
		if err != nil {
			return err
		}
		filter.Due = d
	}

	s, err := GetStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	tasks, err := s.List(filter)
	if err != nil {
		return fmt.Errorf("failed to list tasks: %w", err)
	}
	tasks = models.SortForDisplay(tasks, filter.Now)

	if isJSON() {
		return printJSON(tasks)
	}
	if len(tasks) == 0 {
		if !isQuiet() {
			fmt.Println("No tasks found.")
		}
		return nil
	}

	fmt.Println(ui.RenderTaskList(tasks))
	if listAll && !isQuiet() {
		done := 0
		for _, t := range tasks {
			if t.Done {
				done++
			}
		}
		fmt.Println(ui.StyleSubtle.Render(fmt.Sprintf("%d tasks, %d done", len(tasks), done)))
	}
	return nil
}
