package fileutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(root, f)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("test content"), 0644))
	}
}

func TestScanDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir,
		"b.bz",
		"a.bz",
		"notes.txt",
		"UPPER.BZ",
		"sub/z.bz",
		"sub/deeper/c.bz",
		"aaa/y.bz",
		".hidden/h.bz",
		"skipme/s.bz",
	)

	t.Run("recursive with extension filter", func(t *testing.T) {
		result, err := ScanDirectory(tmpDir, ScanOptions{
			Extensions:  []string{"bz"},
			Recursive:   true,
			ExcludeDirs: []string{"skipme"},
		})
		require.NoError(t, err)
		assert.Empty(t, result.Errors)

		var rel []string
		for _, f := range result.Files {
			r, err := filepath.Rel(tmpDir, f)
			require.NoError(t, err)
			rel = append(rel, filepath.ToSlash(r))
		}
		assert.Equal(t, []string{
			"a.bz",
			"b.bz",
			"aaa/y.bz",
			"sub/z.bz",
			"sub/deeper/c.bz",
		}, rel)
	})

	t.Run("non recursive", func(t *testing.T) {
		result, err := ScanDirectory(tmpDir, ScanOptions{Extensions: []string{".bz"}})
		require.NoError(t, err)
		assert.Len(t, result.Files, 2)
	})

	t.Run("no extension filter", func(t *testing.T) {
		result, err := ScanDirectory(tmpDir, ScanOptions{})
		require.NoError(t, err)
		assert.Len(t, result.Files, 4)
	})
}

func TestScanDirectoryMissingRoot(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does-not-exist")

	_, err := ScanDirectory(missing, ScanOptions{})
	assert.Error(t, err)

	result, err := ScanDirectory(missing, ScanOptions{AllowMissing: true})
	require.NoError(t, err)
	assert.Empty(t, result.Files)
}

func TestScanDirectoryRootIsFile(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, "file.bz")

	_, err := ScanDirectory(filepath.Join(tmpDir, "file.bz"), ScanOptions{AllowMissing: true})
	assert.ErrorContains(t, err, "not a directory")
}

func TestScanDirectoryKeepsRelativeForm(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, "error/x.bz")
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmpDir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	result, err := ScanDirectory("error", ScanOptions{Extensions: []string{".bz"}, Recursive: true})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join("error", "x.bz")}, result.Files)
}

func TestScanDirectoryExtensionIsCaseSensitive(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, "lower.bz", "UPPER.BZ", "Mixed.Bz")

	result, err := ScanDirectory(tmpDir, ScanOptions{Extensions: []string{".bz"}})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(tmpDir, "lower.bz")}, result.Files)
}

func TestScanDirectoryFollowsFileSymlinks(t *testing.T) {
	tmpDir := t.TempDir()
	outside := t.TempDir()
	writeTree(t, outside, "shared.bz", "dir/inner.bz")
	writeTree(t, tmpDir, "plain.bz")

	if err := os.Symlink(filepath.Join(outside, "shared.bz"), filepath.Join(tmpDir, "linked.bz")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	require.NoError(t, os.Symlink(filepath.Join(outside, "missing.bz"), filepath.Join(tmpDir, "dangling.bz")))
	require.NoError(t, os.Symlink(filepath.Join(outside, "dir"), filepath.Join(tmpDir, "dirlink.bz")))

	result, err := ScanDirectory(tmpDir, ScanOptions{Extensions: []string{".bz"}, Recursive: true})
	require.NoError(t, err)
	assert.Empty(t, result.Errors)
	assert.Equal(t, []string{
		filepath.Join(tmpDir, "linked.bz"),
		filepath.Join(tmpDir, "plain.bz"),
	}, result.Files)
}
