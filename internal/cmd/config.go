package cmd

import (
	"fmt"

	"github.com/harrison/bzharness/internal/config"
	"github.com/harrison/bzharness/internal/fixture"
	"github.com/spf13/cobra"
)

// addConfigFlags registers the flags shared by run and list.
func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "Path to config file (default: .bzharness/config.yaml)")
	cmd.Flags().String("compiler", "", "Path to the compiler binary (default: ./bin/linux-debug/bozon)")
	cmd.Flags().String("tests-dir", "", "Directory holding success/, warning/ and error/ (default: tests)")
	cmd.Flags().StringSlice("tests", nil, "Categories to run, comma separated (success,warning,error)")
}

// loadConfig reads the config file and applies every flag that was set
// explicitly on the command line, then validates the result.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")

	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
	} else {
		cfg, err = config.LoadConfigFromDir(".")
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	var o config.Overrides
	if cmd.Flags().Changed("compiler") {
		v, _ := cmd.Flags().GetString("compiler")
		o.Compiler = &v
	}
	if cmd.Flags().Changed("tests-dir") {
		v, _ := cmd.Flags().GetString("tests-dir")
		o.TestsDir = &v
	}
	if cmd.Flags().Changed("tests") {
		v, _ := cmd.Flags().GetStringSlice("tests")
		o.Categories = &v
	}
	if f := cmd.Flags().Lookup("concurrency"); f != nil && f.Changed {
		v, _ := cmd.Flags().GetInt("concurrency")
		o.Concurrency = &v
	}
	if f := cmd.Flags().Lookup("color"); f != nil && f.Changed {
		v, _ := cmd.Flags().GetString("color")
		o.Color = &v
	}
	if f := cmd.Flags().Lookup("log-level"); f != nil && f.Changed {
		v, _ := cmd.Flags().GetString("log-level")
		o.LogLevel = &v
	}
	if f := cmd.Flags().Lookup("log-dir"); f != nil && f.Changed {
		v, _ := cmd.Flags().GetString("log-dir")
		o.LogDir = &v
	}
	cfg.MergeWithFlags(o)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// discover finds the fixtures of every selected category.
func discover(cfg *config.Config) (*fixture.Set, error) {
	categories, err := cfg.SelectedCategories()
	if err != nil {
		return nil, err
	}
	set, err := fixture.DiscoverAll(cfg.TestsDir, cfg.Extension, categories)
	if err != nil {
		return nil, fmt.Errorf("failed to discover fixtures: %w", err)
	}
	return set, nil
}
