// Package models defines the data shared across the harness: fixtures,
// commands, process results and the records the verdict engine reports.
package models

import (
	"fmt"
	"strings"
)

// Category is the expected-outcome class of a fixture.
type Category string

// Fixture categories, in the order their phases run
const (
	CategorySuccess Category = "success" // Compiles with no output at all
	CategoryWarning Category = "warning" // Compiles, but emits some output
	CategoryError   Category = "error"   // Fails with the annotated diagnostics
)

// AllCategories returns every category in phase order.
func AllCategories() []Category {
	return []Category{CategorySuccess, CategoryWarning, CategoryError}
}

// ParseCategory converts a user supplied name into a Category.
func ParseCategory(name string) (Category, error) {
	switch c := Category(strings.ToLower(strings.TrimSpace(name))); c {
	case CategorySuccess, CategoryWarning, CategoryError:
		return c, nil
	default:
		return "", fmt.Errorf("unknown fixture category %q (want success, warning or error)", name)
	}
}

// Fixture is a single source file with a declared expected outcome.
type Fixture struct {
	Path     string   // Path as it is passed to the compiler
	Category Category // Expected outcome class
	Expected []string // Annotated diagnostics, in order (error fixtures only)
}

// HasAnnotations reports whether the fixture declares at least one expected diagnostic.
func (f Fixture) HasAnnotations() bool {
	return len(f.Expected) > 0
}
