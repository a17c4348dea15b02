package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tinytask-cli/tinytask/internal/ui"
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search tasks by title and note",
	Long:  `Case-insensitive substring search. Title matches are listed before note matches.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")

		s, err := GetStore()
		if err != nil {
			return err
		}
		defer func() { _ = s.Close() }()

		tasks, err := s.Search(query)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}

		if isJSON() {
			return printJSON(tasks)
		}
		if len(tasks) == 0 {
			if !isQuiet() {
				fmt.Printf("No tasks match %q.\n", query)
			}
			return nil
		}
		fmt.Println(ui.RenderTaskList(tasks))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
