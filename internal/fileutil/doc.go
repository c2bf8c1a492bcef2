// Package fileutil provides the directory scanning used to discover fixtures.
//
// ScanDirectory walks a directory tree and returns the regular files whose
// extension matches one of ScanOptions.Extensions. Hidden directories and any
// directory named in ScanOptions.ExcludeDirs are skipped. Non-fatal walk
// errors (for example a subdirectory without read permission) are collected in
// ScanResult.Errors and the walk continues; only a root that cannot be
// accessed fails the scan, and even that is tolerated when AllowMissing is set.
//
// Results are deterministic: files directly under the root come first, deeper
// files after, and files at the same depth are sorted lexically.
//
//	result, err := fileutil.ScanDirectory("tests/error", fileutil.ScanOptions{
//	    Extensions:   []string{".bz"},
//	    Recursive:    true,
//	    AllowMissing: true,
//	})
package fileutil
