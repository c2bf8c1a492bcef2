package logger

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/harrison/bzharness/internal/filelock"
	"github.com/harrison/bzharness/internal/models"
)

// LatestLogName is the pointer to the most recent run log inside the log directory.
const LatestLogName = "latest.log"

// FileLogger logs harness events to a timestamped per-run file and keeps
// latest.log pointing at it. Failure records are written in full.
// The log directory is locked for the lifetime of the logger so two
// concurrent runs never interleave their logs.
type FileLogger struct {
	logDir   string
	runLog   *os.File
	runFile  string
	runID    string
	logLevel string
	lock     *filelock.FileLock
	mu       sync.Mutex
}

// NewFileLogger creates a FileLogger writing into logDir at the given level.
// It creates logDir if needed, takes its lock, creates a new
// run-YYYYMMDD-HHMMSS.log and updates latest.log.
func NewFileLogger(logDir string, logLevel string) (*FileLogger, error) {
	lock, err := filelock.LockDir(logDir)
	if err != nil {
		return nil, fmt.Errorf("failed to lock log directory: %w", err)
	}

	started := time.Now()
	file, runFile, err := createRunFile(logDir, started)
	if err != nil {
		lock.Unlock()
		return nil, err
	}

	if err := pointLatest(logDir, runFile); err != nil {
		file.Close()
		lock.Unlock()
		return nil, err
	}

	fl := &FileLogger{
		logDir:   logDir,
		runLog:   file,
		runFile:  runFile,
		runID:    uuid.NewString(),
		logLevel: normalizeLogLevel(logLevel),
		lock:     lock,
	}

	fl.writeRunLog("=== bzharness Run Log ===\n")
	fl.writeRunLog(fmt.Sprintf("Run ID: %s\n", fl.runID))
	fl.writeRunLog(fmt.Sprintf("Started at: %s\n\n", started.Format(time.RFC3339)))

	return fl, nil
}

// maxRunFileAttempts bounds the suffixes tried for runs started in the same second.
const maxRunFileAttempts = 100

// createRunFile creates a fresh run-YYYYMMDD-HHMMSS.log for started. When a
// run in the same second already owns that name, run-YYYYMMDD-HHMMSS-2.log,
// -3 and so on are tried. An existing log is never reopened.
func createRunFile(logDir string, started time.Time) (*os.File, string, error) {
	stamp := started.Format("20060102-150405")
	for n := 1; n <= maxRunFileAttempts; n++ {
		name := fmt.Sprintf("run-%s.log", stamp)
		if n > 1 {
			name = fmt.Sprintf("run-%s-%d.log", stamp, n)
		}
		runFile := filepath.Join(logDir, name)

		file, err := os.OpenFile(runFile, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
		if err == nil {
			return file, runFile, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, "", fmt.Errorf("failed to create run log file: %w", err)
		}
	}
	return nil, "", fmt.Errorf("failed to create run log file: %d logs already exist for %s", maxRunFileAttempts, stamp)
}

// pointLatest replaces latest.log with a symlink to runFile. Where symlinks
// are unavailable the pointer becomes a plain file holding the run log name.
func pointLatest(logDir, runFile string) error {
	latest := filepath.Join(logDir, LatestLogName)

	if _, err := os.Lstat(latest); err == nil {
		if err := os.Remove(latest); err != nil {
			return fmt.Errorf("failed to remove old %s: %w", LatestLogName, err)
		}
	}

	if err := os.Symlink(filepath.Base(runFile), latest); err == nil {
		return nil
	}
	if err := filelock.AtomicWrite(latest, []byte(filepath.Base(runFile)+"\n")); err != nil {
		return fmt.Errorf("failed to write %s: %w", LatestLogName, err)
	}
	return nil
}

// RunID returns the unique id recorded in the run log header.
func (fl *FileLogger) RunID() string {
	return fl.runID
}

// RunFile returns the path of this run's log file.
func (fl *FileLogger) RunFile() string {
	return fl.runFile
}

// shouldLog checks if a message at the given level should be logged.
func (fl *FileLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(fl.logLevel)
}

// LogDebug logs a debug-level message.
func (fl *FileLogger) LogDebug(message string) {
	fl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
func (fl *FileLogger) LogInfo(message string) {
	fl.logWithLevel("INFO", message)
}

// LogError logs an error-level message.
func (fl *FileLogger) LogError(message string) {
	fl.logWithLevel("ERROR", message)
}

func (fl *FileLogger) logWithLevel(level string, message string) {
	if !fl.shouldLog(strings.ToLower(level)) {
		return
	}
	fl.writeRunLog(fmt.Sprintf("[%s] [%s] %s\n", timestamp(), level, message))
}

// LogPhaseStart logs the start of a category phase at INFO level.
func (fl *FileLogger) LogPhaseStart(category models.Category, fixtures, commands, concurrency int) {
	fl.LogInfo(fmt.Sprintf("Starting %s phase: %d %s, %d commands, concurrency %d",
		category, fixtures, plural(fixtures, "fixture"), commands, concurrency))
}

// LogPhaseComplete logs the end of a category phase at INFO level.
func (fl *FileLogger) LogPhaseComplete(summary models.CategorySummary, duration time.Duration) {
	fl.LogInfo(fmt.Sprintf("%s phase complete: %d/%d passed (%.2f%%) in %s",
		summary.Category, summary.Passed, summary.Total, summary.Percentage(), formatDuration(duration)))
}

// LogFailure writes the complete failure record at ERROR level.
func (fl *FileLogger) LogFailure(record models.FailureRecord) {
	if !fl.shouldLog("error") {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("[%s] [ERROR] FAILED %s (%s)\n", timestamp(), record.Fixture.Path, record.Fixture.Category))
	for _, line := range strings.Split(strings.TrimRight(record.Details(), "\n"), "\n") {
		sb.WriteString("    ")
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	fl.writeRunLog(sb.String())
}

// LogSummary logs the per-category and overall totals at INFO level.
func (fl *FileLogger) LogSummary(summary models.Summary) {
	if !fl.shouldLog("info") {
		return
	}

	var sb strings.Builder
	sb.WriteString("\n=== Run Summary ===\n")
	for _, c := range summary.Categories {
		sb.WriteString(fmt.Sprintf("%s: %d/%d (%.2f%%)\n", c.Category, c.Passed, c.Total, c.Percentage()))
	}
	sb.WriteString(fmt.Sprintf("Total: %d/%d (%.2f%%)\n", summary.Passed, summary.Total, summary.Percentage()))
	sb.WriteString(fmt.Sprintf("Failed: %d\n", summary.Failed()))
	sb.WriteString(fmt.Sprintf("Duration: %s\n", formatDuration(summary.Duration)))
	for _, f := range summary.Failures {
		sb.WriteString(fmt.Sprintf("FAILED: %s\n", f.Fixture.Path))
	}
	fl.writeRunLog(sb.String())
}

// writeRunLog writes a message to the run log file with thread safety.
func (fl *FileLogger) writeRunLog(message string) {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog != nil {
		fl.runLog.WriteString(message)
	}
}

// Close closes the run log and releases the directory lock.
// It is safe to call Close more than once.
func (fl *FileLogger) Close() error {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	var firstErr error
	if fl.runLog != nil {
		if err := fl.runLog.Close(); err != nil {
			firstErr = fmt.Errorf("failed to close run log: %w", err)
		}
		fl.runLog = nil
	}
	if fl.lock != nil {
		if err := fl.lock.Unlock(); err != nil && firstErr == nil {
			firstErr = err
		}
		fl.lock = nil
	}
	return firstErr
}
