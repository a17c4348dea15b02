package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tinytask-cli/tinytask/internal/schema"
	"github.com/tinytask-cli/tinytask/internal/ui"
)

// doctorCmd represents the doctor command
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the data files for problems",
	Long: `Validate the task and archive documents against their schema. Useful
after hand-editing the files, since unreadable documents are otherwise
silently treated as empty.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := GetStore()
		if err != nil {
			return err
		}
		defer func() { _ = s.Close() }()

		type fileReport struct {
			File   string   `json:"file"`
			Issues []string `json:"issues"`
		}
		var reports []fileReport
		total := 0

		for _, path := range []string{s.TasksPath(), s.ArchivePath()} {
			issues, err := schema.ValidateFile(path)
			if err != nil {
				return fmt.Errorf("doctor check failed: %w", err)
			}
			report := fileReport{File: path, Issues: []string{}}
			for _, issue := range issues {
				report.Issues = append(report.Issues, issue.String())
			}
			total += len(issues)
			reports = append(reports, report)
		}

		if isJSON() {
			return printJSON(map[string]any{"issues": total, "files": reports})
		}

		for _, r := range reports {
			if len(r.Issues) == 0 {
				fmt.Println(ui.StyleSuccess.Render("✓ ") + r.File)
				continue
			}
			fmt.Println(ui.StyleError.Render("✗ ") + r.File)
			for _, issue := range r.Issues {
				fmt.Println("    " + issue)
			}
		}
		if total > 0 {
			return fmt.Errorf("%d schema issues found", total)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
