package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var archiveList bool

// archiveCmd represents the archive command
var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Move completed tasks to the archive",
	Long: `Move every completed task out of the live list and into the archive
document. Use --list to show what has been archived so far.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := GetStore()
		if err != nil {
			return err
		}
		defer func() { _ = s.Close() }()

		if archiveList {
			archived, err := s.Archived()
			if err != nil {
				return fmt.Errorf("failed to read archive: %w", err)
			}
			if isJSON() {
				return printJSON(archived)
			}
			if len(archived) == 0 {
				fmt.Println("Archive is empty.")
				return nil
			}
			for _, a := range archived {
				fmt.Printf("%4d  %s  (archived %s)\n", a.ID, a.Title, a.ArchivedAt.Format("2006-01-02"))
			}
			return nil
		}

		if err := requireEnabled(s); err != nil {
			return err
		}

		moved, err := s.ArchiveCompleted()
		if err != nil {
			return fmt.Errorf("failed to archive completed tasks: %w", err)
		}

		if isJSON() {
			return printJSON(map[string]any{"archived": moved})
		}
		if !isQuiet() {
			switch moved {
			case 0:
				fmt.Println("Nothing to archive.")
			case 1:
				fmt.Println("Archived 1 task.")
			default:
				fmt.Printf("Archived %d tasks.\n", moved)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(archiveCmd)

	archiveCmd.Flags().BoolVarP(&archiveList, "list", "l", false, "list archived tasks instead of archiving")
}
