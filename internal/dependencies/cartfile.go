package dependencies

import (
	"bufio"
	"os"
	"strings"

	"github.com/apptriage/apptriage/internal/cachedregexp"
	"github.com/apptriage/apptriage/internal/cmdlogger"
)

// cartfileEntryRe matches a Cartfile.resolved line, e.g.
//
//	github "Alamofire/Alamofire" "5.8.1"
//	binary "https://example.com/Framework.json" "2.0.0"
const cartfileEntryRe = `^(github|git|binary) "([^"]+)" "([^"]+)"`

// parseCartfileResolved extracts dependencies from a Carthage
// Cartfile.resolved. The dependency name is the final path component of
// the origin, which is how Carthage names the built framework.
func parseCartfileResolved(path string) []Dependency {
	file, err := os.Open(path)
	if err != nil {
		cmdlogger.Warnf("Failed to read %s: %v", path, err)
		return nil
	}
	defer file.Close()

	re := cachedregexp.MustCompile(cartfileEntryRe)

	var deps []Dependency

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		m := re.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}

		origin := m[2]
		name := origin
		if idx := strings.LastIndex(origin, "/"); idx != -1 {
			name = origin[idx+1:]
		}
		name = strings.TrimSuffix(name, ".git")
		name = strings.TrimSuffix(name, ".json")

		deps = append(deps, Dependency{Name: name, Version: m[3], Source: SourceCarthage})
	}

	if err := scanner.Err(); err != nil {
		cmdlogger.Warnf("Failed while reading %s: %v", path, err)
	}

	return deps
}
