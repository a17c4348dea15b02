package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	configName = ".tinytask"
	envPrefix  = "TINYTASK"
)

// AppConfig is the unified application configuration populated from the
// config file, environment variables and flags.
type AppConfig struct {
	Verbose bool `mapstructure:"verbose"`
	JSON    bool `mapstructure:"json"`
	Quiet   bool `mapstructure:"quiet"`

	Data   DataConfig   `mapstructure:"data"`
	Export ExportConfig `mapstructure:"export"`
}

// DataConfig locates the on-disk task documents.
type DataConfig struct {
	Dir string `mapstructure:"dir" validate:"required"`
}

// ExportConfig holds export defaults.
type ExportConfig struct {
	Format string `mapstructure:"format" validate:"omitempty,oneof=json csv yaml toml"`
}

// globalAppConfig holds the global application configuration instance.
var globalAppConfig AppConfig

// validate is a single validator instance, it caches struct info.
var validate = validator.New()

// InitConfig reads in config file and ENV variables if set.
func InitConfig() {
	// Load .env file first if present. It's okay if it doesn't exist.
	_ = godotenv.Load()

	// Environment variable handling must be set up before reading the
	// config file so env vars can influence config loading.
	viper.SetEnvPrefix(envPrefix) // e.g., TINYTASK_VERBOSE
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfgFileFlag := viper.GetString("config")

	if cfgFileFlag != "" {
		viper.SetConfigFile(cfgFileFlag)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)
		viper.AddConfigPath(home)       // $HOME/.tinytask.yaml
		viper.AddConfigPath(".")        // ./.tinytask.yaml
		viper.SetConfigName(configName)
	}

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	} else {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if cfgFileFlag != "" {
				fmt.Fprintln(os.Stderr, "Error: Specified config file not found:", cfgFileFlag)
			} else if viper.GetBool("verbose") {
				fmt.Fprintln(os.Stderr, "No config file found. Using defaults and environment variables.")
			}
		} else {
			fmt.Fprintln(os.Stderr, "Error reading config file:", viper.ConfigFileUsed(), "-", err)
		}
	}

	viper.SetDefault("data.dir", defaultDataDir())
	viper.SetDefault("export.format", "json")

	if err := viper.Unmarshal(&globalAppConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Error unmarshaling config: %s\n", err)
		os.Exit(1)
	}
	if globalAppConfig.Data.Dir == "" {
		globalAppConfig.Data.Dir = viper.GetString("data.dir")
	}

	if err := validate.Struct(&globalAppConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration validation error: %s\n", err)
		os.Exit(1)
	}
}

// GetConfig returns a pointer to the global AppConfig instance.
func GetConfig() *AppConfig {
	return &globalAppConfig
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tinytask"
	}
	return filepath.Join(home, ".tinytask")
}
