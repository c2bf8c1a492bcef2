package verdict

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/harrison/bzharness/internal/diagnostic"
	"github.com/harrison/bzharness/internal/display"
	"github.com/harrison/bzharness/internal/executor"
	"github.com/harrison/bzharness/internal/fixture"
	"github.com/harrison/bzharness/internal/logger"
	"github.com/harrison/bzharness/internal/models"
)

// Logger receives phase progress, failures and the final summary.
type Logger interface {
	LogDebug(message string)
	LogError(message string)
	LogPhaseStart(category models.Category, fixtures, commands, concurrency int)
	LogPhaseComplete(summary models.CategorySummary, duration time.Duration)
	LogFailure(record models.FailureRecord)
	LogSummary(summary models.Summary)
}

// Config describes how the compiler is invoked and where the report goes.
type Config struct {
	Compiler    string
	Flags       []string // Fixed flags placed before every fixture path
	ForceFlag   string   // Added to the rerun of every error fixture
	Concurrency int      // Zero or less means one process per CPU
	TestsDir    string   // Shown in section headings
	Out         io.Writer
	Warnings    io.Writer // Fixture warnings; defaults to Out
	Renderer    *display.Renderer
	Logger      Logger
}

// Engine runs the selected categories one after another, each through its
// own process pool, and judges every fixture as its result arrives.
type Engine struct {
	cfg      Config
	set      *fixture.Set
	progress *display.Progress
}

// NewEngine creates an engine for the fixtures in set.
func NewEngine(cfg Config, set *fixture.Set) *Engine {
	if set == nil {
		panic("fixture set cannot be nil")
	}
	if cfg.Out == nil {
		cfg.Out = io.Discard
	}
	if cfg.Warnings == nil {
		cfg.Warnings = cfg.Out
	}
	if cfg.Renderer == nil {
		cfg.Renderer = display.NewRenderer(false)
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.NewNoOpLogger()
	}

	return &Engine{
		cfg:      cfg,
		set:      set,
		progress: display.NewProgress(cfg.Out, display.ColumnWidth(set.Paths()), cfg.Renderer),
	}
}

// Run judges every fixture. Fixture failures are recorded in the summary;
// the returned error is reserved for conditions that make the run itself
// meaningless, such as a compiler that cannot be started.
func (e *Engine) Run(ctx context.Context) (models.Summary, error) {
	start := time.Now()
	var summary models.Summary

	if e.set.Total() == 0 {
		fmt.Fprintln(e.cfg.Out, "no fixtures found")
		return summary, nil
	}

	for _, c := range e.set.Categories {
		fixtures := e.set.Of(c)
		if len(fixtures) == 0 {
			continue
		}

		phaseStart := time.Now()
		phase, failures, err := e.runPhase(ctx, c, fixtures)
		summary.Failures = append(summary.Failures, failures...)
		if err != nil {
			e.progress.Abort()
			if executor.IsFatal(err) {
				e.cfg.Logger.LogError(fmt.Sprintf("%s phase aborted after %d of %d fixtures: %v",
					c, phase.Passed+len(failures), len(fixtures), err))
			} else {
				e.cfg.Logger.LogError(fmt.Sprintf("%s phase: unexpected pool error: %v", c, err))
			}
			summary.Duration = time.Since(start)
			return summary, fmt.Errorf("%s phase: %w", c, err)
		}

		summary.Categories = append(summary.Categories, phase)
		summary.Passed += phase.Passed
		summary.Total += phase.Total
		e.progress.Tally(phase.Passed, phase.Total)
		e.cfg.Logger.LogPhaseComplete(phase, time.Since(phaseStart))
	}

	summary.Duration = time.Since(start)
	e.cfg.Logger.LogSummary(summary)
	return summary, nil
}

// runPhase runs one category. Results are consumed in the order the
// fixtures were submitted, so result i always belongs to fixtures[i].
func (e *Engine) runPhase(ctx context.Context, c models.Category, fixtures []models.Fixture) (models.CategorySummary, []models.FailureRecord, error) {
	phase := models.CategorySummary{Category: c, Total: len(fixtures)}
	var failures []models.FailureRecord

	e.progress.Section(path.Join(e.cfg.TestsDir, string(c)))

	var next func(f models.Fixture) (models.Verdict, models.FailureRecord, error)
	if c == models.CategoryError {
		e.warnUnannotated(fixtures)

		pool := executor.NewPairedPool(ctx, executor.BuildPairs(e.cfg.Compiler, e.cfg.Flags, e.cfg.ForceFlag, fixtures), e.cfg.Concurrency)
		defer pool.Close()
		pool.Pool().SetLogger(e.cfg.Logger)
		e.cfg.Logger.LogPhaseStart(c, pool.Len(), pool.Pool().Len(), pool.Pool().Concurrency())

		next = func(f models.Fixture) (models.Verdict, models.FailureRecord, error) {
			pair, err := pool.NextPair()
			if err != nil {
				return models.Fail, models.FailureRecord{}, err
			}
			v, reasons := JudgeError(f.Expected, pair)
			rerun := pair.Rerun
			return v, models.FailureRecord{
				Fixture:  f,
				Result:   pair.Primary,
				Rerun:    &rerun,
				Expected: f.Expected,
				Actual:   diagnostic.Extract(pair.Primary.Stderr),
				Reasons:  reasons,
			}, nil
		}
	} else {
		judge := JudgeSuccess
		if c == models.CategoryWarning {
			judge = JudgeWarning
		}

		pool := executor.NewPool(ctx, executor.BuildCommands(e.cfg.Compiler, e.cfg.Flags, fixtures), e.cfg.Concurrency)
		defer pool.Close()
		pool.SetLogger(e.cfg.Logger)
		e.cfg.Logger.LogPhaseStart(c, len(fixtures), pool.Len(), pool.Concurrency())

		next = func(f models.Fixture) (models.Verdict, models.FailureRecord, error) {
			r, err := pool.Next()
			if err != nil {
				return models.Fail, models.FailureRecord{}, err
			}
			v, reasons := judge(r)
			return v, models.FailureRecord{Fixture: f, Result: r, Reasons: reasons}, nil
		}
	}

	for _, f := range fixtures {
		e.progress.Begin(f.Path)
		v, record, err := next(f)
		if err != nil {
			return phase, failures, err
		}

		if v == models.Pass {
			e.progress.Pass()
			phase.Passed++
			continue
		}

		e.progress.Fail()
		fmt.Fprint(e.cfg.Out, record.Details())
		failures = append(failures, record)
		e.cfg.Logger.LogFailure(record)
	}

	return phase, failures, nil
}

func (e *Engine) warnUnannotated(fixtures []models.Fixture) {
	var files []string
	for _, f := range fixtures {
		if !f.HasAnnotations() {
			files = append(files, f.Path)
		}
	}
	if len(files) > 0 {
		display.WarnUnannotated(files).Display(e.cfg.Warnings, e.cfg.Renderer)
	}
}
