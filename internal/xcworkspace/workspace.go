// Package xcworkspace parses .xcworkspace file-reference markup into the
// list of member projects.
package xcworkspace

import (
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"
)

type LocationType string

const (
	LocationGroup     LocationType = "group"
	LocationAbsolute  LocationType = "absolute"
	LocationContainer LocationType = "container"
	LocationSelf      LocationType = "self"
	LocationUnknown   LocationType = "unknown"
)

// ProjectRef is one .xcodeproj member of a workspace.
type ProjectRef struct {
	// RawLocation is the location attribute as written, e.g.
	// "group:App/App.xcodeproj".
	RawLocation  string
	LocationType LocationType

	// ProjectPath is the resolved absolute path of the .xcodeproj bundle.
	ProjectPath string

	// IsPods marks projects owned by a dependency manager, recognized by a
	// path segment literally named Pods.
	IsPods bool

	// IsTestOrExample marks projects whose name follows test, demo, or
	// example naming conventions.
	IsTestOrExample bool
}

var testOrExampleMarkers = []string{"test", "example", "demo", "sample", "playground"}

type xmlFileRef struct {
	Location string `xml:"location,attr"`
}

type xmlGroup struct {
	Location string       `xml:"location,attr"`
	FileRefs []xmlFileRef `xml:"FileRef"`
	Groups   []xmlGroup   `xml:"Group"`
}

type xmlWorkspace struct {
	FileRefs []xmlFileRef `xml:"FileRef"`
	Groups   []xmlGroup   `xml:"Group"`
}

// Parse reads the contents.xcworkspacedata inside workspacePath and returns
// the referenced .xcodeproj projects. References whose target does not
// exist on disk are dropped silently: workspaces routinely point at
// optional or not-yet-fetched projects, and that must not fail a scan.
func Parse(workspacePath string) ([]ProjectRef, error) {
	data, err := os.ReadFile(filepath.Join(workspacePath, "contents.xcworkspacedata"))
	if err != nil {
		return nil, err
	}

	var ws xmlWorkspace
	if err := xml.Unmarshal(data, &ws); err != nil {
		return nil, err
	}

	baseDir := filepath.Dir(workspacePath)

	var refs []ProjectRef
	collect(&refs, ws.FileRefs, ws.Groups, baseDir, "")

	return refs, nil
}

func collect(refs *[]ProjectRef, fileRefs []xmlFileRef, groups []xmlGroup, baseDir, groupPath string) {
	for _, fr := range fileRefs {
		if ref, ok := resolve(fr.Location, baseDir, groupPath); ok {
			*refs = append(*refs, ref)
		}
	}

	for _, g := range groups {
		_, rel := splitLocation(g.Location)
		collect(refs, g.FileRefs, g.Groups, baseDir, filepath.Join(groupPath, filepath.FromSlash(rel)))
	}
}

func splitLocation(location string) (LocationType, string) {
	kind, rest, found := strings.Cut(location, ":")
	if !found {
		return LocationUnknown, location
	}

	switch kind {
	case "group":
		return LocationGroup, rest
	case "absolute":
		return LocationAbsolute, rest
	case "container":
		return LocationContainer, rest
	case "self":
		return LocationSelf, rest
	default:
		return LocationUnknown, rest
	}
}

func resolve(location, baseDir, groupPath string) (ProjectRef, bool) {
	kind, rel := splitLocation(location)

	if !strings.HasSuffix(rel, ".xcodeproj") {
		return ProjectRef{}, false
	}

	var path string
	switch kind {
	case LocationAbsolute:
		path = filepath.FromSlash(rel)
	default:
		// group and container references are both relative to the
		// workspace's parent directory for our purposes.
		path = filepath.Join(baseDir, groupPath, filepath.FromSlash(rel))
	}

	if info, err := os.Stat(path); err != nil || !info.IsDir() {
		return ProjectRef{}, false
	}

	return ProjectRef{
		RawLocation:     location,
		LocationType:    kind,
		ProjectPath:     path,
		IsPods:          hasPodsSegment(rel),
		IsTestOrExample: looksLikeTestOrExample(filepath.Base(rel)),
	}, true
}

func hasPodsSegment(rel string) bool {
	for _, segment := range strings.Split(filepath.ToSlash(rel), "/") {
		if segment == "Pods" || segment == "Pods.xcodeproj" {
			return true
		}
	}

	return false
}

func looksLikeTestOrExample(name string) bool {
	name = strings.ToLower(strings.TrimSuffix(name, ".xcodeproj"))
	for _, marker := range testOrExampleMarkers {
		if strings.Contains(name, marker) {
			return true
		}
	}

	return false
}

// MainRefs filters refs down to projects that are neither dependency-manager
// owned nor test/example projects. Callers fall back to the full list when
// the result is empty, so a Pods-only workspace still resolves to something.
func MainRefs(refs []ProjectRef) []ProjectRef {
	var main []ProjectRef
	for _, ref := range refs {
		if !ref.IsPods && !ref.IsTestOrExample {
			main = append(main, ref)
		}
	}

	return main
}
