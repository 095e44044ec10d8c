package rules_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/apptriage/apptriage/internal/dependencies"
	"github.com/apptriage/apptriage/internal/discovery"
	"github.com/apptriage/apptriage/internal/pbxproj"
	"github.com/apptriage/apptriage/internal/rules"
	"github.com/apptriage/apptriage/internal/scancontext"
	"github.com/apptriage/apptriage/internal/sourcescan"
)

// projectFixture assembles a scan context from declarative parts, writing
// real files into a temp directory so the source detector and plist loader
// run for real.
type projectFixture struct {
	infoPlist    map[string]string
	plistArrays  map[string][]string
	entitlements []string
	frameworks   []string
	deps         []dependencies.Dependency
	sources      map[string]string
	productType  string
}

func (f projectFixture) build(t *testing.T) *scancontext.Context {
	t.Helper()

	dir := t.TempDir()

	proj := &discovery.Project{
		Path:     filepath.Join(dir, "App.xcodeproj"),
		ScopeDir: dir,
		Scoped:   true,
		Pbx: &pbxproj.File{
			LinkedFrameworks: f.frameworks,
			ProductType:      f.productType,
		},
	}

	if f.infoPlist != nil || f.plistArrays != nil {
		proj.InfoPlistPath = filepath.Join(dir, "Info.plist")
		writeFile(t, proj.InfoPlistPath, renderPlist(f.infoPlist, f.plistArrays))
	}

	if f.entitlements != nil {
		entries := map[string]string{}
		for _, key := range f.entitlements {
			entries[key] = "true"
		}
		proj.EntitlementsPath = filepath.Join(dir, "App.entitlements")
		writeFile(t, proj.EntitlementsPath, renderPlist(entries, nil))
	}

	for name, content := range f.sources {
		writeFile(t, filepath.Join(dir, filepath.FromSlash(name)), content)
	}

	return scancontext.Build(proj, f.deps, sourcescan.Detect(dir))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
}

// renderPlist emits an XML plist from string and string-array entries.
// "true" and "false" become booleans, matching how entitlements and flag
// keys are written in practice.
func renderPlist(strs map[string]string, arrays map[string][]string) string {
	var b strings.Builder

	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
`)

	for key, value := range strs {
		b.WriteString("\t<key>" + key + "</key>\n")
		switch value {
		case "true":
			b.WriteString("\t<true/>\n")
		case "false":
			b.WriteString("\t<false/>\n")
		default:
			b.WriteString("\t<string>" + value + "</string>\n")
		}
	}

	for key, items := range arrays {
		b.WriteString("\t<key>" + key + "</key>\n\t<array>\n")
		for _, item := range items {
			b.WriteString("\t\t<string>" + item + "</string>\n")
		}
		b.WriteString("\t</array>\n")
	}

	b.WriteString("</dict>\n</plist>\n")

	return b.String()
}

func evaluate(t *testing.T, ruleID string, fixture projectFixture) []rules.Finding {
	t.Helper()

	rule, ok := rules.NewRegistry().Lookup(ruleID)
	if !ok {
		t.Fatalf("rule %q is not registered", ruleID)
	}

	return rule.Evaluate(fixture.build(t))
}

func expectNoFindings(t *testing.T, findings []rules.Finding) {
	t.Helper()

	if len(findings) != 0 {
		t.Errorf("expected no findings, got %+v", findings)
	}
}

func expectOneFinding(t *testing.T, findings []rules.Finding, severity rules.Severity, confidence rules.Confidence) rules.Finding {
	t.Helper()

	if len(findings) != 1 {
		t.Fatalf("expected exactly one finding, got %+v", findings)
	}

	finding := findings[0]
	if finding.Severity != severity {
		t.Errorf("Severity = %s, want %s", finding.Severity, severity)
	}
	if finding.Confidence != confidence {
		t.Errorf("Confidence = %s, want %s", finding.Confidence, confidence)
	}

	return finding
}
