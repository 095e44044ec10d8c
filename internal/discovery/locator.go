// Package discovery locates the canonical Xcode project for a scan and
// resolves its configuration artifacts.
//
// Real repositories are irregular: nested .xcodeproj bundles, CocoaPods
// sub-projects, monorepos holding several independent apps. The locator's
// job is to pick one project and a scope directory that bounds every later
// search, so that sibling projects never bleed into each other's results.
package discovery

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/apptriage/apptriage/internal/cmdlogger"
	"github.com/apptriage/apptriage/internal/pbxproj"
	"github.com/apptriage/apptriage/internal/xcworkspace"
)

// ErrIPANotSupported is returned for .ipa inputs. Inspecting compiled
// archives is an explicit non-goal, surfaced as a hard error rather than a
// soft warning so callers do not mistake an empty result for a clean scan.
var ErrIPANotSupported = errors.New("scanning .ipa archives is not supported; point apptriage at the Xcode project or workspace instead")

// ErrNoProjectFound is returned when no .xcodeproj, .xcworkspace, or
// project.pbxproj could be located under the input path.
var ErrNoProjectFound = errors.New("no Xcode project found")

// Project is the outcome of locating a project, fixed for the rest of the
// scan.
type Project struct {
	// Path is the canonical project or workspace path the scan is about.
	Path string

	// ScopeDir bounds all subsequent filesystem searches. It is the most
	// specific directory containing the selected project, and an
	// ancestor-or-equal of every resolved artifact path.
	ScopeDir string

	PbxprojPath      string
	InfoPlistPath    string
	EntitlementsPath string

	IsWorkspace       bool
	WorkspaceProjects []xcworkspace.ProjectRef

	// Scoped reports whether the locator pinned the scan to a single
	// project. When false the dependency loader is allowed its broader
	// recursive search.
	Scoped bool

	// Pbx is the parsed project description, nil when no project.pbxproj
	// was readable. Parsed once here and shared so later stages do not
	// re-read the file.
	Pbx *pbxproj.File
}

// Locate determines the canonical project for the given input path, which
// may be a .xcodeproj, a .xcworkspace, a directory, or an .ipa (rejected).
func Locate(inputPath string) (*Project, error) {
	abs, err := filepath.Abs(inputPath)
	if err != nil {
		return nil, fmt.Errorf("resolving input path: %w", err)
	}

	switch {
	case strings.HasSuffix(abs, ".ipa"):
		return nil, ErrIPANotSupported
	case strings.HasSuffix(abs, ".xcodeproj"):
		return locateXcodeproj(abs, true)
	case strings.HasSuffix(abs, ".xcworkspace"):
		return locateWorkspace(abs)
	case isDir(abs):
		return locateInDirectory(abs)
	case isFile(abs) && filepath.Base(abs) == "project.pbxproj":
		return locateXcodeproj(filepath.Dir(abs), true)
	default:
		return nil, fmt.Errorf("%w at %s", ErrNoProjectFound, inputPath)
	}
}

func locateXcodeproj(projectPath string, scoped bool) (*Project, error) {
	if !isDir(projectPath) {
		return nil, fmt.Errorf("%w: %s does not exist", ErrNoProjectFound, projectPath)
	}

	proj := &Project{
		Path:     projectPath,
		ScopeDir: filepath.Dir(projectPath),
		Scoped:   scoped,
	}

	pbxPath := filepath.Join(projectPath, "project.pbxproj")
	if isFile(pbxPath) {
		proj.PbxprojPath = pbxPath
	}

	resolveArtifacts(proj)

	return proj, nil
}

func locateWorkspace(workspacePath string) (*Project, error) {
	refs, err := xcworkspace.Parse(workspacePath)
	if err != nil {
		cmdlogger.Warnf("Failed to parse workspace %s: %v", workspacePath, err)
	}

	candidates := xcworkspace.MainRefs(refs)
	if len(candidates) == 0 {
		// Degenerate workspaces (e.g. Pods-only) still resolve to their
		// first member rather than failing.
		candidates = refs
	}

	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: workspace %s references no projects", ErrNoProjectFound, workspacePath)
	}

	proj, err := locateXcodeproj(candidates[0].ProjectPath, true)
	if err != nil {
		return nil, err
	}

	proj.IsWorkspace = true
	proj.WorkspaceProjects = refs

	return proj, nil
}

func locateInDirectory(dir string) (*Project, error) {
	// A single top-level .xcodeproj scopes the scan immediately and avoids
	// walking unrelated siblings.
	var topLevelProjects []string
	for _, p := range findAll(dir, func(name string, entry fs.DirEntry) bool {
		return entry.IsDir() && strings.HasSuffix(name, ".xcodeproj")
	}) {
		if filepath.Dir(p) == dir {
			topLevelProjects = append(topLevelProjects, p)
		}
	}

	if len(topLevelProjects) == 1 {
		return locateXcodeproj(topLevelProjects[0], true)
	}

	if ws := findShallowest(dir, func(name string, entry fs.DirEntry) bool {
		return entry.IsDir() && strings.HasSuffix(name, ".xcworkspace")
	}); ws != "" {
		return locateWorkspace(ws)
	}

	if proj := findShallowest(dir, func(name string, entry fs.DirEntry) bool {
		return entry.IsDir() && strings.HasSuffix(name, ".xcodeproj")
	}); proj != "" {
		return locateXcodeproj(proj, false)
	}

	if pbx := findShallowest(dir, func(name string, entry fs.DirEntry) bool {
		return !entry.IsDir() && name == "project.pbxproj"
	}); pbx != "" {
		proj, err := locateXcodeproj(filepath.Dir(pbx), false)
		if err != nil {
			return nil, err
		}

		return proj, nil
	}

	return nil, fmt.Errorf("%w under %s", ErrNoProjectFound, dir)
}

// resolveArtifacts fills in InfoPlistPath and EntitlementsPath using the
// precedence: explicit build settings, then a literally named file directly
// inside the scope directory, then the shallowest bounded-search match.
// Build settings win because directory search alone has matched decoy files
// in monorepos. Absence of either artifact is not an error; rules treat a
// missing plist as "key not present", which is itself informative.
func resolveArtifacts(proj *Project) {
	if proj.PbxprojPath != "" {
		pbx, err := pbxproj.Parse(proj.PbxprojPath, proj.ScopeDir)
		if err != nil {
			cmdlogger.Warnf("Failed to parse %s: %v", proj.PbxprojPath, err)
		} else {
			proj.Pbx = pbx
			proj.InfoPlistPath = pbx.InfoPlistPath
			proj.EntitlementsPath = pbx.EntitlementsPath
		}
	}

	if proj.InfoPlistPath == "" {
		if direct := filepath.Join(proj.ScopeDir, "Info.plist"); isFile(direct) {
			proj.InfoPlistPath = direct
		} else {
			proj.InfoPlistPath = findShallowest(proj.ScopeDir, func(name string, entry fs.DirEntry) bool {
				return !entry.IsDir() && name == "Info.plist"
			})
		}
	}

	if proj.EntitlementsPath == "" {
		proj.EntitlementsPath = findShallowest(proj.ScopeDir, func(name string, entry fs.DirEntry) bool {
			return !entry.IsDir() && strings.HasSuffix(name, ".entitlements")
		})
	}
}
