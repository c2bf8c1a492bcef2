package logger

import (
	"time"

	"github.com/harrison/bzharness/internal/models"
)

// HarnessLogger is implemented by every logger in this package.
type HarnessLogger interface {
	LogDebug(message string)
	LogError(message string)
	LogPhaseStart(category models.Category, fixtures, commands, concurrency int)
	LogPhaseComplete(summary models.CategorySummary, duration time.Duration)
	LogFailure(record models.FailureRecord)
	LogSummary(summary models.Summary)
}

// MultiLogger forwards every event to several loggers.
type MultiLogger struct {
	loggers []HarnessLogger
}

// NewMultiLogger combines loggers; nil entries are skipped.
func NewMultiLogger(loggers ...HarnessLogger) *MultiLogger {
	ml := &MultiLogger{}
	for _, l := range loggers {
		if l != nil {
			ml.loggers = append(ml.loggers, l)
		}
	}
	return ml
}

// LogDebug forwards to all loggers
func (ml *MultiLogger) LogDebug(message string) {
	for _, l := range ml.loggers {
		l.LogDebug(message)
	}
}

// LogError forwards to all loggers
func (ml *MultiLogger) LogError(message string) {
	for _, l := range ml.loggers {
		l.LogError(message)
	}
}

// LogPhaseStart forwards to all loggers
func (ml *MultiLogger) LogPhaseStart(category models.Category, fixtures, commands, concurrency int) {
	for _, l := range ml.loggers {
		l.LogPhaseStart(category, fixtures, commands, concurrency)
	}
}

// LogPhaseComplete forwards to all loggers
func (ml *MultiLogger) LogPhaseComplete(summary models.CategorySummary, duration time.Duration) {
	for _, l := range ml.loggers {
		l.LogPhaseComplete(summary, duration)
	}
}

// LogFailure forwards to all loggers
func (ml *MultiLogger) LogFailure(record models.FailureRecord) {
	for _, l := range ml.loggers {
		l.LogFailure(record)
	}
}

// LogSummary forwards to all loggers
func (ml *MultiLogger) LogSummary(summary models.Summary) {
	for _, l := range ml.loggers {
		l.LogSummary(summary)
	}
}

// NoOpLogger is a logger that discards all events.
// Useful for testing or when logging is disabled.
type NoOpLogger struct{}

// NewNoOpLogger creates a NoOpLogger instance.
func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}

// LogDebug is a no-op implementation.
func (n *NoOpLogger) LogDebug(message string) {}

// LogError is a no-op implementation.
func (n *NoOpLogger) LogError(message string) {}

// LogPhaseStart is a no-op implementation.
func (n *NoOpLogger) LogPhaseStart(category models.Category, fixtures, commands, concurrency int) {}

// LogPhaseComplete is a no-op implementation.
func (n *NoOpLogger) LogPhaseComplete(summary models.CategorySummary, duration time.Duration) {}

// LogFailure is a no-op implementation.
func (n *NoOpLogger) LogFailure(record models.FailureRecord) {}

// LogSummary is a no-op implementation.
func (n *NoOpLogger) LogSummary(summary models.Summary) {}
