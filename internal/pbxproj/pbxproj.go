// Package pbxproj pulls named build settings and linked framework names out
// of Xcode project.pbxproj files.
//
// The pbxproj format is a legacy OpenStep plist with no published grammar,
// so this is deliberately targeted regex extraction of the handful of
// settings the analyzer cares about rather than a full parser. Precision on
// those settings has held up better in practice than attempts to parse the
// whole file.
package pbxproj

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/apptriage/apptriage/internal/cachedregexp"
)

// File holds the settings extracted from a single project.pbxproj.
type File struct {
	// BuildSettings is the flat map from the first buildSettings block
	// encountered, in file order. Debug and Release nearly always agree on
	// the settings read here.
	BuildSettings map[string]string

	// InfoPlistKeys maps INFOPLIST_KEY_-prefixed settings (prefix stripped)
	// collected from the whole file. Only meaningful when
	// GeneratesInfoPlist is true.
	InfoPlistKeys map[string]string

	// GeneratesInfoPlist reports whether GENERATE_INFOPLIST_FILE = YES
	// appears anywhere in the project, meaning the Info.plist is synthesized
	// at build time and may not exist on disk at all.
	GeneratesInfoPlist bool

	ProductType string

	// LinkedFrameworks lists every *.framework name referenced by the
	// project, deduplicated, without the extension.
	LinkedFrameworks []string

	// InfoPlistPath and EntitlementsPath are the build-setting-declared
	// artifact paths resolved against the scope directory. Empty when the
	// setting is missing or the resolved file does not exist; a stale
	// setting must never surface as a finding location.
	InfoPlistPath    string
	EntitlementsPath string
}

var (
	settingRe      = `(?m)^\s*%s\s*=\s*("([^"]+)"|([^;]+));`
	infoPlistKeyRe = `(?m)^\s*INFOPLIST_KEY_([A-Za-z0-9_]+)\s*=\s*("([^"]*)"|([^;]+));`
	frameworkRe    = `([A-Za-z][A-Za-z0-9_+.-]*)\.framework`
)

// Parse extracts settings from the pbxproj at path. Relative artifact paths
// are resolved against scopeDir.
func Parse(path, scopeDir string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	content := string(data)

	f := &File{
		BuildSettings: extractFirstSettingsBlock(content),
		InfoPlistKeys: map[string]string{},
	}

	f.GeneratesInfoPlist = settingHasValue(content, "GENERATE_INFOPLIST_FILE", "YES")
	f.ProductType = extractSetting(content, "productType")
	if f.ProductType == "" {
		f.ProductType = extractSetting(content, "PRODUCT_TYPE")
	}

	for _, m := range cachedregexp.MustCompile(infoPlistKeyRe).FindAllStringSubmatch(content, -1) {
		value := m[3]
		if value == "" {
			value = strings.TrimSpace(m[4])
		}
		f.InfoPlistKeys[m[1]] = value
	}

	f.InfoPlistPath = resolveSettingPath(content, "INFOPLIST_FILE", scopeDir)
	f.EntitlementsPath = resolveSettingPath(content, "CODE_SIGN_ENTITLEMENTS", scopeDir)

	seen := map[string]bool{}
	for _, m := range cachedregexp.MustCompile(frameworkRe).FindAllStringSubmatch(content, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			f.LinkedFrameworks = append(f.LinkedFrameworks, m[1])
		}
	}

	return f, nil
}

// extractSetting returns the value of the first occurrence of name,
// unquoted, or "" when the setting is not present.
func extractSetting(content, name string) string {
	re := cachedregexp.MustCompile(strings.Replace(settingRe, "%s", name, 1))

	m := re.FindStringSubmatch(content)
	if m == nil {
		return ""
	}

	if m[2] != "" {
		return m[2]
	}

	return strings.TrimSpace(m[3])
}

// settingHasValue reports whether any occurrence of the setting carries the
// given value. A Pods-side or per-configuration block saying NO must not
// mask an app target that says YES.
func settingHasValue(content, name, want string) bool {
	re := cachedregexp.MustCompile(strings.Replace(settingRe, "%s", name, 1))

	for _, m := range re.FindAllStringSubmatch(content, -1) {
		value := m[2]
		if value == "" {
			value = strings.TrimSpace(m[3])
		}
		if value == want {
			return true
		}
	}

	return false
}

// resolveSettingPath resolves a path-valued setting against scopeDir,
// stripping a leading $(SRCROOT)/ token, and drops it when the resolved
// file does not exist on disk.
func resolveSettingPath(content, name, scopeDir string) string {
	value := extractSetting(content, name)
	if value == "" {
		return ""
	}

	value = strings.TrimPrefix(value, "$(SRCROOT)/")
	value = strings.TrimPrefix(value, "$(SRCROOT)")
	value = strings.TrimPrefix(value, "/")

	resolved := filepath.Join(scopeDir, filepath.FromSlash(value))
	if info, err := os.Stat(resolved); err != nil || info.IsDir() {
		return ""
	}

	return resolved
}

// extractFirstSettingsBlock scans for the first `buildSettings = {` block
// and collects its KEY = value; pairs until the closing brace.
func extractFirstSettingsBlock(content string) map[string]string {
	settings := map[string]string{}

	scanner := bufio.NewScanner(strings.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	pairRe := cachedregexp.MustCompile(`^\s*([A-Za-z_][A-Za-z0-9_]*)\s*=\s*("([^"]*)"|([^;]+));`)

	inBlock := false
	depth := 0
	for scanner.Scan() {
		line := scanner.Text()

		if !inBlock {
			if strings.Contains(line, "buildSettings") && strings.Contains(line, "{") {
				inBlock = true
				depth = 1
			}

			continue
		}

		depth += strings.Count(line, "{") - strings.Count(line, "}")
		if depth <= 0 {
			break
		}

		if m := pairRe.FindStringSubmatch(line); m != nil {
			value := m[3]
			if value == "" {
				value = strings.TrimSpace(m[4])
			}
			settings[m[1]] = value
		}
	}

	return settings
}
