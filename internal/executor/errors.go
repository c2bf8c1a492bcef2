package executor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/harrison/bzharness/internal/models"
)

var (
	// ErrSpawn indicates a child process could not be started at all.
	// It is harness-fatal: no fixture can be judged without the compiler.
	ErrSpawn = errors.New("failed to spawn process")

	// ErrExhausted is returned by Next once every submitted result was delivered.
	ErrExhausted = errors.New("no results left in pool")

	// ErrInterrupted indicates the pool was stopped by its context.
	ErrInterrupted = errors.New("process pool interrupted")
)

// ProcessError reports a failure to start or reap a child process.
// It wraps ErrSpawn or ErrInterrupted together with the underlying cause.
type ProcessError struct {
	Command models.Command // Command that could not be run
	Kind    error          // ErrSpawn or ErrInterrupted
	Err     error          // Underlying error (optional)
}

// Error implements the error interface for ProcessError.
func (e *ProcessError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%v: %s", e.Kind, e.Command.String()))
	if e.Err != nil {
		sb.WriteString(fmt.Sprintf(": %v", e.Err))
	}
	return sb.String()
}

// Unwrap exposes both the error kind and the cause to errors.Is and errors.As.
func (e *ProcessError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// IsFatal reports whether err must abort the whole harness run.
func IsFatal(err error) bool {
	return errors.Is(err, ErrSpawn) || errors.Is(err, ErrInterrupted)
}
