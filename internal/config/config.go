// Package config loads the harness configuration from .bzharness/config.yaml
// and merges command line overrides into it.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/harrison/bzharness/internal/models"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config represents harness configuration options
type Config struct {
	// Compiler is the path of the compiler binary under test
	Compiler string `yaml:"compiler"`

	// StdlibDir is passed to the compiler as --stdlib-dir
	StdlibDir string `yaml:"stdlib_dir"`

	// ImportDir is passed to the compiler as -I<dir>
	ImportDir string `yaml:"import_dir"`

	// ExtraFlags are appended after the fixed flags
	ExtraFlags []string `yaml:"extra_flags"`

	// NoEmitFlag stops the compiler from writing output files
	NoEmitFlag string `yaml:"no_emit_flag"`

	// WarningsFlag enables every warning
	WarningsFlag string `yaml:"warnings_flag"`

	// ForceSuccessFlag makes the compiler exit 0 despite errors; used for error fixture reruns
	ForceSuccessFlag string `yaml:"force_success_flag"`

	// TestsDir holds the success/, warning/ and error/ fixture directories
	TestsDir string `yaml:"tests_dir"`

	// Extension is the file extension of fixtures
	Extension string `yaml:"extension"`

	// Categories selects which phases run, in order
	Categories []string `yaml:"categories"`

	// Concurrency is the maximum number of compiler processes (0 = one per CPU)
	Concurrency int `yaml:"concurrency"`

	// LogLevel sets the console logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogDir enables run logs in this directory when set
	LogDir string `yaml:"log_dir"`

	// Color is auto, always or never
	Color string `yaml:"color"`
}

// DefaultCompiler returns the debug build location of the compiler for the host OS.
func DefaultCompiler() string {
	if runtime.GOOS == "windows" {
		return `bin\windows-debug\bozon.exe`
	}
	return "./bin/linux-debug/bozon"
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	categories := make([]string, 0, 3)
	for _, c := range models.AllCategories() {
		categories = append(categories, string(c))
	}

	return &Config{
		Compiler:         DefaultCompiler(),
		StdlibDir:        "bozon-stdlib",
		ImportDir:        "tests/import",
		NoEmitFlag:       "--emit=null",
		WarningsFlag:     "-Wall",
		ForceSuccessFlag: "--return-zero-on-error",
		TestsDir:         "tests",
		Extension:        ".bz",
		Categories:       categories,
		Concurrency:      0, // One per CPU
		LogLevel:         "warn",
		Color:            "auto",
	}
}

// LoadConfig loads configuration from the specified file path
// If the file doesn't exist, returns default configuration without error
// If the file exists but is malformed, returns an error
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Keys missing from the file keep their defaults; keys present but
	// empty clear them, which is how a fixed flag is switched off.
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// LoadConfigFromDir loads configuration from .bzharness/config.yaml in the specified directory
// If the directory or file doesn't exist, returns default configuration without error
func LoadConfigFromDir(dir string) (*Config, error) {
	return LoadConfig(filepath.Join(dir, ".bzharness", "config.yaml"))
}

// Overrides carries command line flags. Nil fields were not given on the
// command line and leave the configuration untouched.
type Overrides struct {
	Compiler    *string
	TestsDir    *string
	Categories  *[]string
	Concurrency *int
	Color       *string
	LogLevel    *string
	LogDir      *string
}

// MergeWithFlags merges CLI flags into the configuration
// Non-nil flag values override configuration values
// This allows CLI flags to take precedence over config file settings
func (c *Config) MergeWithFlags(o Overrides) {
	if o.Compiler != nil {
		c.Compiler = *o.Compiler
	}
	if o.TestsDir != nil {
		c.TestsDir = *o.TestsDir
	}
	if o.Categories != nil {
		c.Categories = append([]string(nil), (*o.Categories)...)
	}
	if o.Concurrency != nil {
		c.Concurrency = *o.Concurrency
	}
	if o.Color != nil {
		c.Color = *o.Color
	}
	if o.LogLevel != nil {
		c.LogLevel = *o.LogLevel
	}
	if o.LogDir != nil {
		c.LogDir = *o.LogDir
	}
}

// Validate validates the configuration values
// Returns an error wrapping ErrInvalid if any values are invalid
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Compiler) == "" {
		return fmt.Errorf("%w: compiler cannot be empty", ErrInvalid)
	}
	if strings.TrimSpace(c.TestsDir) == "" {
		return fmt.Errorf("%w: tests_dir cannot be empty", ErrInvalid)
	}
	if !strings.HasPrefix(c.Extension, ".") || len(c.Extension) < 2 {
		return fmt.Errorf("%w: extension must look like \".bz\", got %q", ErrInvalid, c.Extension)
	}

	if c.Concurrency < 0 {
		return fmt.Errorf("%w: concurrency must be >= 0, got %d", ErrInvalid, c.Concurrency)
	}

	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("%w: invalid log_level %q, must be one of: trace, debug, info, warn, error", ErrInvalid, c.LogLevel)
	}

	switch c.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("%w: invalid color %q, must be one of: auto, always, never", ErrInvalid, c.Color)
	}

	categories, err := c.SelectedCategories()
	if err != nil {
		return err
	}
	for _, cat := range categories {
		if cat == models.CategoryError && strings.TrimSpace(c.ForceSuccessFlag) == "" {
			return fmt.Errorf("%w: force_success_flag cannot be empty when error fixtures run", ErrInvalid)
		}
	}

	return nil
}

// SelectedCategories parses Categories, dropping duplicates and keeping the
// success, warning, error phase order regardless of how they were listed.
func (c *Config) SelectedCategories() ([]models.Category, error) {
	if len(c.Categories) == 0 {
		return nil, fmt.Errorf("%w: at least one category must be selected", ErrInvalid)
	}

	selected := make(map[models.Category]bool, len(c.Categories))
	for _, name := range c.Categories {
		cat, err := models.ParseCategory(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
		}
		selected[cat] = true
	}

	var categories []models.Category
	for _, cat := range models.AllCategories() {
		if selected[cat] {
			categories = append(categories, cat)
		}
	}
	return categories, nil
}

// FixedFlags returns the flags every compiler invocation starts with:
// the standard library location, warnings, no output and the import path,
// then any extra flags. Empty settings are left out.
func (c *Config) FixedFlags() []string {
	var flags []string
	if c.StdlibDir != "" {
		flags = append(flags, "--stdlib-dir", c.StdlibDir)
	}
	if c.WarningsFlag != "" {
		flags = append(flags, c.WarningsFlag)
	}
	if c.NoEmitFlag != "" {
		flags = append(flags, c.NoEmitFlag)
	}
	if c.ImportDir != "" {
		flags = append(flags, "-I"+c.ImportDir)
	}
	return append(flags, c.ExtraFlags...)
}
