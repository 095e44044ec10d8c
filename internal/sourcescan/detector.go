// Package sourcescan gathers API-level usage evidence from project sources.
//
// Framework linkage alone is a weak signal: AVFoundation is linked for
// audio playback as often as for camera capture. Scanning the sources for
// the specific classes in use lets rules escalate confident findings and
// suppress framework-only false positives.
package sourcescan

import (
	"bufio"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/apptriage/apptriage/internal/discovery"
)

var sourceExtensions = map[string]bool{
	".swift": true,
	".m":     true,
	".mm":    true,
	".h":     true,
}

// Evidence is the per-scan result of source detection, read-only once
// returned.
type Evidence struct {
	identifiers  map[Capability]map[string]bool
	imports      map[string]bool
	filesScanned int
}

// FilesScanned reports how many source files were inspected. Zero means
// usage could not be determined at all, which rules treat differently from
// "scanned and found nothing".
func (e *Evidence) FilesScanned() int { return e.filesScanned }

// Has reports whether any identifier evidence exists for the capability.
func (e *Evidence) Has(c Capability) bool { return len(e.identifiers[c]) > 0 }

// Identifiers returns the matched identifiers for a capability, sorted.
func (e *Evidence) Identifiers(c Capability) []string {
	ids := make([]string, 0, len(e.identifiers[c]))
	for id := range e.identifiers[c] {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids
}

// Imports reports whether any source file imports the named framework.
func (e *Evidence) Imports(framework string) bool { return e.imports[framework] }

func newEvidence() *Evidence {
	return &Evidence{
		identifiers: map[Capability]map[string]bool{},
		imports:     map[string]bool{},
	}
}

func (e *Evidence) add(c Capability, identifier string) {
	if e.identifiers[c] == nil {
		e.identifiers[c] = map[string]bool{}
	}
	e.identifiers[c][identifier] = true
}

// Detect walks the source files under scopeDir and collects capability
// evidence. Comments are stripped before matching so that commented-out
// capture code does not count. The walk shares discovery's depth bound and
// skip list.
func Detect(scopeDir string) *Evidence {
	evidence := newEvidence()

	discovery.WalkFiles(scopeDir, func(path string, entry fs.DirEntry) {
		if sourceExtensions[filepath.Ext(entry.Name())] {
			scanFile(path, evidence)
		}
	})

	return evidence
}

func scanFile(path string, evidence *Evidence) {
	file, err := os.Open(path)
	if err != nil {
		return
	}
	defer file.Close()

	var content strings.Builder

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	inBlockComment := false
	for scanner.Scan() {
		line, stillInBlock := stripComments(scanner.Text(), inBlockComment)
		inBlockComment = stillInBlock
		content.WriteString(line)
		content.WriteByte('\n')
	}

	if scanner.Err() != nil {
		return
	}

	evidence.filesScanned++

	text := content.String()

	for capability, identifiers := range identifierPatterns {
		for _, id := range identifiers {
			if strings.Contains(text, id) {
				evidence.add(capability, id)
			}
		}
	}

	for _, cp := range contextualPatterns {
		if !strings.Contains(text, cp.identifier) {
			continue
		}
		for _, ctx := range cp.context {
			if strings.Contains(text, ctx) {
				evidence.add(cp.capability, cp.identifier)
				break
			}
		}
	}

	for _, framework := range frameworkImports {
		if hasImport(text, framework) {
			evidence.imports[framework] = true
		}
	}
}

func hasImport(text, framework string) bool {
	return strings.Contains(text, "import "+framework) ||
		strings.Contains(text, "@import "+framework) ||
		strings.Contains(text, "<"+framework+"/")
}

// stripComments removes // line comments and /* */ block comments from a
// single line, tracking block state across lines. String literals are not
// tracked; a URL inside a string costing us the rest of a line is an
// acceptable loss for evidence gathering.
func stripComments(line string, inBlock bool) (string, bool) {
	var out strings.Builder

	for i := 0; i < len(line); {
		if inBlock {
			if idx := strings.Index(line[i:], "*/"); idx != -1 {
				i += idx + 2
				inBlock = false
				continue
			}

			return out.String(), true
		}

		if strings.HasPrefix(line[i:], "//") {
			return out.String(), false
		}

		if strings.HasPrefix(line[i:], "/*") {
			inBlock = true
			i += 2

			continue
		}

		out.WriteByte(line[i])
		i++
	}

	return out.String(), inBlock
}
