package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var disableReason string

// disableCmd represents the disable command
var disableCmd = &cobra.Command{
	Use:   "disable",
	Short: "Disable the tracker",
	Long: `Put the tracker into a disabled state. Mutating commands refuse to run
until it is enabled again; reading commands keep working.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := GetStore()
		if err != nil {
			return err
		}
		defer func() { _ = s.Close() }()

		if err := s.Disable(disableReason); err != nil {
			return fmt.Errorf("failed to disable: %w", err)
		}

		if isJSON() {
			return printJSON(map[string]any{"disabled": true})
		}
		if !isQuiet() {
			fmt.Println("tinytask is now disabled.")
		}
		return nil
	},
}

// enableCmd represents the enable command
var enableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Re-enable a disabled tracker",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := GetStore()
		if err != nil {
			return err
		}
		defer func() { _ = s.Close() }()

		s.Enable()

		if isJSON() {
			return printJSON(map[string]any{"disabled": false})
		}
		if !isQuiet() {
			fmt.Println("tinytask is enabled.")
		}
		return nil
	},
}

var uninstallForce bool

// uninstallCmd represents the uninstall command
var uninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Remove all stored data",
	Long:  `Delete the entire storage directory, including the archive. This cannot be undone.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := GetStore()
		if err != nil {
			return err
		}
		defer func() { _ = s.Close() }()

		if !uninstallForce && !confirm(fmt.Sprintf("Delete all data under %s", s.Dir())) {
			return nil
		}

		ok := s.Uninstall()
		if isJSON() {
			return printJSON(map[string]any{"removed": ok})
		}
		if ok {
			if !isQuiet() {
				fmt.Println("All data removed.")
			}
			return nil
		}
		return fmt.Errorf("could not fully remove %s", s.Dir())
	},
}

func init() {
	rootCmd.AddCommand(disableCmd)
	rootCmd.AddCommand(enableCmd)
	rootCmd.AddCommand(uninstallCmd)

	disableCmd.Flags().StringVarP(&disableReason, "reason", "r", "", "why the tracker is being disabled")
	uninstallCmd.Flags().BoolVarP(&uninstallForce, "force", "f", false, "remove without confirmation")
}
