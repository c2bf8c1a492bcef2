// Package fixture discovers compiler test fixtures and reads the expected
// diagnostics annotated at the top of error fixtures.
package fixture

import (
	"fmt"
	"path/filepath"

	"github.com/harrison/bzharness/internal/fileutil"
	"github.com/harrison/bzharness/internal/models"
)

// DefaultExtension is the file extension of fixture sources.
const DefaultExtension = ".bz"

// Set holds the discovered fixtures of one run, keyed by category.
type Set struct {
	Categories []models.Category
	Fixtures   map[models.Category][]models.Fixture
}

// Of returns the fixtures of a category, in discovery order.
func (s *Set) Of(c models.Category) []models.Fixture {
	return s.Fixtures[c]
}

// Total returns the number of fixtures across all categories.
func (s *Set) Total() int {
	n := 0
	for _, c := range s.Categories {
		n += len(s.Fixtures[c])
	}
	return n
}

// Paths returns every fixture path in phase order.
func (s *Set) Paths() []string {
	paths := make([]string, 0, s.Total())
	for _, c := range s.Categories {
		for _, f := range s.Fixtures[c] {
			paths = append(paths, f.Path)
		}
	}
	return paths
}

// Discover finds every fixture of a category under root/<category>.
// A missing category directory yields no fixtures. Error fixtures have
// their annotations read; an unreadable fixture is returned as an error.
func Discover(root string, category models.Category, ext string) ([]models.Fixture, error) {
	if ext == "" {
		ext = DefaultExtension
	}

	dir := filepath.Join(root, string(category))
	result, err := fileutil.ScanDirectory(dir, fileutil.ScanOptions{
		Extensions:   []string{ext},
		Recursive:    true,
		AllowMissing: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s fixtures: %w", category, err)
	}
	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("failed to scan %s fixtures: %w", category, result.Errors[0])
	}

	fixtures := make([]models.Fixture, 0, len(result.Files))
	for _, path := range result.Files {
		f := models.Fixture{
			Path:     filepath.ToSlash(path),
			Category: category,
		}
		if category == models.CategoryError {
			expected, err := ReadExpected(path)
			if err != nil {
				return nil, err
			}
			f.Expected = expected
		}
		fixtures = append(fixtures, f)
	}

	return fixtures, nil
}

// DiscoverAll discovers the fixtures of every given category under root.
func DiscoverAll(root, ext string, categories []models.Category) (*Set, error) {
	set := &Set{
		Categories: categories,
		Fixtures:   make(map[models.Category][]models.Fixture, len(categories)),
	}
	for _, c := range categories {
		fixtures, err := Discover(root, c, ext)
		if err != nil {
			return nil, err
		}
		set.Fixtures[c] = fixtures
	}
	return set, nil
}
