// Package dependencies loads the project's declared dependencies from
// dependency-manager lock and resolution files.
//
// When a specific project has been identified, only a fixed set of
// candidate locations is checked. Scanning AppB must never ingest AppA's
// lock file merely because both live under a common ancestor, so the
// broader recursive search is reserved for unscoped scans.
package dependencies

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/apptriage/apptriage/internal/discovery"
)

// Source identifies which dependency manager declared a dependency.
type Source string

const (
	SourceCocoaPods Source = "cocoapods"
	SourceSPM       Source = "spm"
	SourceCarthage  Source = "carthage"
	SourceManual    Source = "manual"
)

// Dependency is one resolved package. Identity for deduplication is
// name@version. A subspec such as Firebase/Analytics is recorded in
// addition to its base package, never instead of it, since rules match on
// either granularity.
type Dependency struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
	Source  Source `json:"source"`
}

// Load returns the deduplicated dependencies of the located project.
// Missing or malformed files contribute nothing; a dependency-less project
// is a valid outcome, not an error.
func Load(proj *discovery.Project) []Dependency {
	var deps []Dependency

	for _, path := range candidatePodfileLocks(proj) {
		deps = append(deps, parsePodfileLock(path)...)
	}

	for _, path := range candidatePackageResolved(proj) {
		deps = append(deps, parsePackageResolved(path)...)
	}

	for _, path := range candidateCartfiles(proj) {
		deps = append(deps, parseCartfileResolved(path)...)
	}

	return dedupe(deps)
}

// candidatePodfileLocks lists the explicit locations a Podfile.lock may
// live: the scope directory, and its parent (the workspace-root
// convention). Unscoped scans fall back to a bounded recursive search.
func candidatePodfileLocks(proj *discovery.Project) []string {
	if !proj.Scoped {
		return searchFor(proj.ScopeDir, "Podfile.lock")
	}

	return existingFiles(
		filepath.Join(proj.ScopeDir, "Podfile.lock"),
		filepath.Join(filepath.Dir(proj.ScopeDir), "Podfile.lock"),
	)
}

func candidatePackageResolved(proj *discovery.Project) []string {
	if !proj.Scoped {
		return searchFor(proj.ScopeDir, "Package.resolved")
	}

	candidates := []string{
		filepath.Join(proj.ScopeDir, "Package.resolved"),
	}

	if proj.Path != "" {
		// SPM resolution nested inside the .xcodeproj bundle's shared
		// workspace data, where Xcode-managed package references land.
		candidates = append(candidates, filepath.Join(
			proj.Path, "project.xcworkspace", "xcshareddata", "swiftpm", "Package.resolved",
		))
	}

	return existingFiles(candidates...)
}

func candidateCartfiles(proj *discovery.Project) []string {
	if !proj.Scoped {
		return searchFor(proj.ScopeDir, "Cartfile.resolved")
	}

	return existingFiles(
		filepath.Join(proj.ScopeDir, "Cartfile.resolved"),
		filepath.Join(filepath.Dir(proj.ScopeDir), "Cartfile.resolved"),
	)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)

	return err == nil && !info.IsDir()
}

func existingFiles(paths ...string) []string {
	var found []string
	for _, path := range paths {
		if fileExists(path) {
			found = append(found, path)
		}
	}

	return found
}

func searchFor(root, filename string) []string {
	var found []string

	discovery.WalkFiles(root, func(path string, entry fs.DirEntry) {
		if entry.Name() == filename {
			found = append(found, path)
		}
	})

	return found
}

func dedupe(deps []Dependency) []Dependency {
	seen := make(map[string]bool, len(deps))
	out := make([]Dependency, 0, len(deps))

	for _, dep := range deps {
		key := dep.Name + "@" + dep.Version
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, dep)
	}

	return out
}
