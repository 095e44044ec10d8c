package dependencies

import (
	"bufio"
	"os"
	"strings"

	"github.com/apptriage/apptriage/internal/cachedregexp"
	"github.com/apptriage/apptriage/internal/cmdlogger"
)

// podEntryRe matches a top-level entry in the PODS: section, e.g.
//
//	- Firebase/Analytics (10.18.0):
//
// Deeper-indented lines are transitive version constraints, not resolved
// pods, and are skipped.
const podEntryRe = `^ {2}- "?([^" (]+)"? \(([^)]+)\)`

// parsePodfileLock extracts dependencies from a CocoaPods Podfile.lock.
// The format is line oriented; only the PODS: section is read.
func parsePodfileLock(path string) []Dependency {
	file, err := os.Open(path)
	if err != nil {
		cmdlogger.Warnf("Failed to read %s: %v", path, err)
		return nil
	}
	defer file.Close()

	re := cachedregexp.MustCompile(podEntryRe)

	var deps []Dependency
	inPods := false

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()

		if !strings.HasPrefix(line, " ") && strings.TrimSpace(line) != "" {
			inPods = strings.HasPrefix(line, "PODS:")
			continue
		}

		if !inPods {
			continue
		}

		m := re.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		name, version := m[1], m[2]

		deps = append(deps, Dependency{Name: name, Version: version, Source: SourceCocoaPods})

		// A subspec also declares its base pod at the same version.
		if base, _, isSubspec := strings.Cut(name, "/"); isSubspec {
			deps = append(deps, Dependency{Name: base, Version: version, Source: SourceCocoaPods})
		}
	}

	if err := scanner.Err(); err != nil {
		cmdlogger.Warnf("Failed while reading %s: %v", path, err)
	}

	return deps
}
