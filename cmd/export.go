package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tinytask-cli/tinytask/internal/export"
)

var (
	exportFormat string
	exportOutput string
	exportAll    bool
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export tasks to a file",
	Long: `Export tasks to JSON, CSV, YAML or TOML. The output file name defaults
to a timestamped name in the current directory; use - to write to stdout.

Examples:
  tinytask export
  tinytask export --format csv --all
  tinytask export --format yaml --output tasks.yaml
  tinytask export --output -`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "output format (json, csv, yaml, toml)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (- for stdout)")
	exportCmd.Flags().BoolVarP(&exportAll, "all", "a", false, "include completed tasks")
}

func runExport(cmd *cobra.Command, args []string) error {
	name := exportFormat
	if name == "" {
		name = GetConfig().Export.Format
	}
	format, err := export.ParseFormat(name)
	if err != nil {
		return err
	}

	s, err := GetStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	list, err := s.All()
	if err != nil {
		return fmt.Errorf("failed to load tasks: %w", err)
	}
	if !exportAll {
		pending := list[:0]
		for _, t := range list {
			if !t.Done {
				pending = append(pending, t)
			}
		}
		list = pending
	}

	if exportOutput == "-" {
		return export.Write(os.Stdout, format, list)
	}

	path := exportOutput
	if path == "" {
		path = export.DefaultFileName(format, time.Now())
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	if err := export.Write(f, format, list); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	if isJSON() {
		return printJSON(map[string]any{"exported": len(list), "file": path})
	}
	if !isQuiet() {
		fmt.Printf("Exported %d tasks to %s\n", len(list), path)
	}
	return nil
}
