package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFailureRecordDetailsSuccess(t *testing.T) {
	rec := FailureRecord{
		Fixture: Fixture{Path: "tests/success/a.bz", Category: CategorySuccess},
		Result: ProcessResult{
			Command:  NewCommand("bozon", "-Wall", "tests/success/a.bz"),
			Stderr:   "a.bz:1:1: warning: unused",
			ExitCode: 0,
		},
		Reasons: []string{"stderr is not empty"},
	}

	want := "bozon -Wall tests/success/a.bz\n" +
		"stderr:\na.bz:1:1: warning: unused\n" +
		"exit code: 0\n" +
		"reasons:\n  stderr is not empty\n"
	assert.Equal(t, want, rec.Details())
}

func TestFailureRecordDetailsError(t *testing.T) {
	rerun := ProcessResult{Command: NewCommand("bozon", "--return-zero-on-error", "e.bz"), ExitCode: 1}
	rec := FailureRecord{
		Fixture:  Fixture{Path: "e.bz", Category: CategoryError},
		Result:   ProcessResult{Command: NewCommand("bozon", "e.bz"), ExitCode: 3},
		Rerun:    &rerun,
		Expected: []string{"error: A"},
	}

	want := "bozon e.bz\n" +
		"bozon --return-zero-on-error e.bz\n" +
		"exit code: 3\n" +
		"rerun exit code: 1\n" +
		"wanted diagnostics:\n  error: A\n" +
		"actual diagnostics:\n  (none)\n"
	assert.Equal(t, want, rec.Details())
}
