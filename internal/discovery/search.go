package discovery

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// MaxSearchDepth bounds every recursive search this package performs, so
// worst-case traversal cost stays bounded on large monorepos.
const MaxSearchDepth = 5

// skipDirs are directories that never contain the project being analyzed:
// dependency caches, build output, and version control metadata.
var skipDirs = map[string]bool{
	"Pods":         true,
	"Carthage":     true,
	"node_modules": true,
	"DerivedData":  true,
	"build":        true,
	".build":       true,
	".swiftpm":     true,
	".git":         true,
	".svn":         true,
	".hg":          true,
}

// ShouldSkipDir reports whether a directory with the given base name should
// be excluded from recursive searches.
func ShouldSkipDir(name string) bool {
	return skipDirs[name]
}

// findAll walks root up to MaxSearchDepth levels deep and returns every
// path whose base name satisfies match, shallowest first. Bundle
// directories such as .xcodeproj are matched but not descended into.
func findAll(root string, match func(name string, entry fs.DirEntry) bool) []string {
	var found []string

	_ = filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // unreadable entries are skipped, not fatal
		}

		if path == root {
			return nil
		}

		if entry.IsDir() && ShouldSkipDir(entry.Name()) {
			return filepath.SkipDir
		}

		if depth(root, path) > MaxSearchDepth {
			if entry.IsDir() {
				return filepath.SkipDir
			}

			return nil
		}

		if match(entry.Name(), entry) {
			found = append(found, path)
			if entry.IsDir() {
				return filepath.SkipDir
			}
		}

		return nil
	})

	sort.SliceStable(found, func(i, j int) bool {
		return depth(root, found[i]) < depth(root, found[j])
	})

	return found
}

// WalkFiles calls visit for every regular file under root, honoring the
// same depth bound and skip list as project discovery. Fallback searches in
// other packages use it so no walk in the analyzer is unbounded.
func WalkFiles(root string, visit func(path string, entry fs.DirEntry)) {
	_ = filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr
		}

		if entry.IsDir() && ShouldSkipDir(entry.Name()) {
			return filepath.SkipDir
		}

		if depth(root, path) > MaxSearchDepth {
			if entry.IsDir() {
				return filepath.SkipDir
			}

			return nil
		}

		if !entry.IsDir() {
			visit(path, entry)
		}

		return nil
	})
}

// findShallowest returns the shallowest match under root, or "".
func findShallowest(root string, match func(name string, entry fs.DirEntry) bool) string {
	found := findAll(root, match)
	if len(found) == 0 {
		return ""
	}

	return found[0]
}

func depth(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return MaxSearchDepth + 1
	}

	return strings.Count(rel, string(filepath.Separator)) + 1
}

func isDir(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.IsDir()
}

func isFile(path string) bool {
	info, err := os.Stat(path)

	return err == nil && !info.IsDir()
}
