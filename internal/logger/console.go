// Package logger provides logging implementations for harness runs.
//
// Loggers record phase progress, launched commands, failures and the final
// summary. Implementations are thread-safe and support various output
// destinations (console, file). They complement, and never replace, the
// progress report the verdict engine prints on stdout.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/harrison/bzharness/internal/models"
)

// Log level constants for filtering
const (
	levelTrace int = 0
	levelDebug int = 1
	levelInfo  int = 2
	levelWarn  int = 3
	levelError int = 4
)

// ConsoleLogger logs harness events to a writer with timestamps and thread safety.
// All output is prefixed with [HH:MM:SS] timestamps.
// It supports log level filtering to control message verbosity.
// Color output is automatically enabled for terminal output (os.Stdout/os.Stderr).
type ConsoleLogger struct {
	writer      io.Writer
	logLevel    string
	mutex       sync.Mutex
	colorOutput bool
	scheme      *colorScheme
}

// NewConsoleLogger creates a ConsoleLogger that writes to the provided io.Writer.
// If writer is nil, messages are silently discarded.
// Valid levels: trace, debug, info, warn, error (case-insensitive).
// If logLevel is empty or invalid, defaults to "info".
func NewConsoleLogger(writer io.Writer, logLevel string) *ConsoleLogger {
	useColor := isTerminal(writer)
	return &ConsoleLogger{
		writer:      writer,
		logLevel:    normalizeLogLevel(logLevel),
		colorOutput: useColor,
		scheme:      newColorScheme(useColor),
	}
}

// isTerminal checks if the writer is a terminal that supports colors.
func isTerminal(w io.Writer) bool {
	if w == nil {
		return false
	}
	if w == os.Stdout || w == os.Stderr {
		// fatih/color already checked for a TTY and NO_COLOR
		return !color.NoColor
	}
	return false
}

// normalizeLogLevel converts a log level string to lowercase and validates it.
// Returns "info" as default for empty or invalid levels.
func normalizeLogLevel(level string) string {
	normalized := strings.ToLower(strings.TrimSpace(level))
	if IsValidLevel(normalized) {
		return normalized
	}
	return "info"
}

// IsValidLevel reports whether level names one of the supported log levels.
func IsValidLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "error":
		return true
	}
	return false
}

// logLevelToInt converts a log level string to its numeric value.
func logLevelToInt(level string) int {
	switch level {
	case "trace":
		return levelTrace
	case "debug":
		return levelDebug
	case "info":
		return levelInfo
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

// shouldLog checks if a message at the given level should be logged.
func (cl *ConsoleLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(cl.logLevel)
}

// LogDebug logs a debug-level message.
func (cl *ConsoleLogger) LogDebug(message string) {
	cl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
func (cl *ConsoleLogger) LogInfo(message string) {
	cl.logWithLevel("INFO", message)
}

// LogError logs an error-level message.
func (cl *ConsoleLogger) LogError(message string) {
	cl.logWithLevel("ERROR", message)
}

// logWithLevel formats and writes one line if the level passes the filter.
func (cl *ConsoleLogger) logWithLevel(level string, message string) {
	if cl.writer == nil || !cl.shouldLog(strings.ToLower(level)) {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	fmt.Fprintf(cl.writer, "[%s] [%s] %s\n", timestamp(), cl.scheme.level(level), message)
}

// LogPhaseStart logs the start of a category phase at DEBUG level.
// Format: "[HH:MM:SS] [DEBUG] Starting error phase: 3 fixtures, 6 commands, concurrency 4"
func (cl *ConsoleLogger) LogPhaseStart(category models.Category, fixtures, commands, concurrency int) {
	cl.LogDebug(fmt.Sprintf("Starting %s phase: %d %s, %d commands, concurrency %d",
		cl.scheme.label.Sprint(string(category)), fixtures, plural(fixtures, "fixture"), commands, concurrency))
}

// LogPhaseComplete logs the end of a category phase at INFO level.
// Format: "[HH:MM:SS] [INFO] success phase complete: [==========] 100% (5/5 passed) in 2s"
func (cl *ConsoleLogger) LogPhaseComplete(summary models.CategorySummary, duration time.Duration) {
	if cl.writer == nil || !cl.shouldLog("info") {
		return
	}

	bar := NewProgressBar(summary.Total, 10, cl.colorOutput)
	bar.Update(summary.Passed)

	counts := fmt.Sprintf("(%d/%d passed)", summary.Passed, summary.Total)
	if summary.Passed == summary.Total {
		counts = cl.scheme.success.Sprint(counts)
	} else {
		counts = cl.scheme.fail.Sprint(counts)
	}

	cl.LogInfo(fmt.Sprintf("%s phase complete: %s %s in %s",
		cl.scheme.label.Sprint(string(summary.Category)), bar.Render(), counts, formatDuration(duration)))
}

// LogFailure logs a failed fixture at DEBUG level. The full record is printed
// by the report; the console only notes which fixture failed and why.
func (cl *ConsoleLogger) LogFailure(record models.FailureRecord) {
	reason := "no reason recorded"
	if len(record.Reasons) > 0 {
		reason = strings.Join(record.Reasons, "; ")
	}
	cl.LogDebug(fmt.Sprintf("%s %s: %s", cl.scheme.fail.Sprint("FAILED"), record.Fixture.Path, reason))
}

// LogSummary logs the run totals at INFO level.
func (cl *ConsoleLogger) LogSummary(summary models.Summary) {
	if cl.writer == nil || !cl.shouldLog("info") {
		return
	}

	failed := fmt.Sprintf("Failed: %d", summary.Failed())
	if summary.Failed() > 0 {
		failed = cl.scheme.fail.Sprint(failed)
	}
	cl.LogInfo(fmt.Sprintf("=== Run Summary === Total: %d, %s, %s, Duration: %s",
		summary.Total,
		cl.scheme.success.Sprintf("Passed: %d", summary.Passed),
		failed,
		formatDuration(summary.Duration)))
}

// timestamp returns the current time formatted as "15:04:05" (HH:MM:SS).
func timestamp() string {
	return time.Now().Format("15:04:05")
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

// formatDuration converts a time.Duration to a human-readable string.
// Examples: "850ms", "5s", "1m30s", "2h15m"
func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Hour:
		hours := d / time.Hour
		minutes := (d % time.Hour) / time.Minute
		if minutes == 0 {
			return fmt.Sprintf("%dh", hours)
		}
		return fmt.Sprintf("%dh%dm", hours, minutes)
	case d >= time.Minute:
		minutes := d / time.Minute
		seconds := (d % time.Minute) / time.Second
		if seconds == 0 {
			return fmt.Sprintf("%dm", minutes)
		}
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	case d >= time.Second:
		return fmt.Sprintf("%ds", int64(d.Seconds()))
	default:
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
}
