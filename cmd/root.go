package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tinytask-cli/tinytask/store"
)

var (
	// cfgFile is the path to the configuration file.
	cfgFile string
	// verbose enables verbose output.
	verbose bool
	// jsonOutput switches command output to machine-readable JSON.
	jsonOutput bool
	// quiet suppresses non-essential output.
	quiet bool
	// version is the application version.
	version = "0.3.0"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tinytask",
	Short: "tinytask is a small personal task tracker.",
	Long: `tinytask keeps your tasks in plain JSON files on disk.
Add, list, filter, complete, archive and export tasks from the command line.`,
	Version:      version,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(InitConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is $HOME/.tinytask.yaml or ./.tinytask.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output machine-readable JSON")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
}

// GetDataDir returns the directory holding the task documents.
func GetDataDir() string {
	return GetConfig().Data.Dir
}

// GetStore initializes and returns the task store backed by the configured
// data directory.
func GetStore() (*store.FileStore, error) {
	dir := GetDataDir()
	s, err := store.NewFileStore(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store at %s: %w", dir, err)
	}
	return s, nil
}

// requireEnabled blocks mutating commands while the tracker is disabled.
func requireEnabled(s *store.FileStore) error {
	if s.IsDisabled() {
		return fmt.Errorf("tinytask is disabled; run 'tinytask enable' first")
	}
	return nil
}
