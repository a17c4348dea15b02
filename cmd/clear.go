package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	clearDone  bool
	clearForce bool
)

// clearCmd represents the clear command
var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Bulk-delete tasks",
	Long: `Delete every task, or only completed ones with --done. A confirmation
prompt is displayed unless --force is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := GetStore()
		if err != nil {
			return err
		}
		defer func() { _ = s.Close() }()

		if err := requireEnabled(s); err != nil {
			return err
		}

		label := "Delete ALL tasks"
		if clearDone {
			label = "Delete all completed tasks"
		}
		if !clearForce && !confirm(label) {
			return nil
		}

		removed, err := s.Clear(clearDone)
		if err != nil {
			return fmt.Errorf("failed to clear tasks: %w", err)
		}

		if isJSON() {
			return printJSON(map[string]any{"removed": removed})
		}
		if !isQuiet() {
			fmt.Printf("Removed %d tasks.\n", removed)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(clearCmd)

	clearCmd.Flags().BoolVar(&clearDone, "done", false, "only delete completed tasks")
	clearCmd.Flags().BoolVarP(&clearForce, "force", "f", false, "clear without confirmation")
}
