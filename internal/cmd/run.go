package cmd

import (
	"errors"
	"fmt"

	"github.com/harrison/bzharness/internal/display"
	"github.com/harrison/bzharness/internal/logger"
	"github.com/harrison/bzharness/internal/verdict"
	"github.com/spf13/cobra"
)

// ErrFixturesFailed is returned by run when at least one fixture failed.
// The report has already been printed; main exits with status 1.
var ErrFixturesFailed = errors.New("fixtures failed")

// NewRunCommand creates the run command
func NewRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the compiler over every fixture",
		Long: `Run the compiler over the fixtures of each selected category and report
a verdict per fixture.

Phases run in the order success, warning, error. Within a phase up to
--concurrency compilers run at once; results are always reported in
fixture order. Failed fixtures are described inline and again at the end.

Configuration is loaded from .bzharness/config.yaml if present.
CLI flags override configuration file settings.

Exit status is 0 when every fixture passed, 1 when any failed and 2 when
the harness itself could not run (for example a missing compiler).

Examples:
  bzharness run
  bzharness run --tests=error -j 8
  bzharness run --compiler ./bin/linux-release/bozon --color never
  bzharness run --verbose --log-dir .bzharness/logs`,
		Args: cobra.NoArgs,
		RunE: runCommand,
	}

	addConfigFlags(cmd)
	cmd.Flags().IntP("concurrency", "j", 0, "Maximum number of compiler processes (0 = one per CPU)")
	cmd.Flags().String("color", "auto", "Colorize output: auto, always or never")
	cmd.Flags().String("log-level", "warn", "Console log level: trace, debug, info, warn, error")
	cmd.Flags().Bool("verbose", false, "Log phases and launched commands (same as --log-level debug)")
	cmd.Flags().String("log-dir", "", "Write a run log into this directory")

	return cmd
}

// runCommand implements the run command logic
func runCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	set, err := discover(cfg)
	if err != nil {
		return err
	}

	// Determine log level: verbose flag overrides config
	logLevel := cfg.LogLevel
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logLevel = "debug"
	}

	loggers := []logger.HarnessLogger{logger.NewConsoleLogger(cmd.ErrOrStderr(), logLevel)}
	if cfg.LogDir != "" {
		fileLog, err := logger.NewFileLogger(cfg.LogDir, logLevel)
		if err != nil {
			return fmt.Errorf("failed to create file logger: %w", err)
		}
		defer fileLog.Close()
		fmt.Fprintf(cmd.ErrOrStderr(), "Run log: %s (run %s)\n", fileLog.RunFile(), fileLog.RunID())
		loggers = append(loggers, fileLog)
	}

	out := cmd.OutOrStdout()
	renderer := display.NewRenderer(display.ColorEnabled(cfg.Color, out))

	engine := verdict.NewEngine(verdict.Config{
		Compiler:    cfg.Compiler,
		Flags:       cfg.FixedFlags(),
		ForceFlag:   cfg.ForceSuccessFlag,
		Concurrency: cfg.Concurrency,
		TestsDir:    cfg.TestsDir,
		Out:         out,
		Warnings:    cmd.ErrOrStderr(),
		Renderer:    renderer,
		Logger:      logger.NewMultiLogger(loggers...),
	}, set)

	summary, err := engine.Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("run aborted: %w", err)
	}

	verdict.Report(out, renderer, summary)

	if verdict.ExitCode(summary) != 0 {
		return fmt.Errorf("%d of %d: %w", summary.Failed(), summary.Total, ErrFixturesFailed)
	}
	return nil
}
