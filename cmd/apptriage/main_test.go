// main cannot be accessed directly, so cannot use main_test
package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/apptriage/apptriage/cmd/apptriage/internal/cmd"
	"github.com/apptriage/apptriage/cmd/apptriage/rules"
	"github.com/apptriage/apptriage/cmd/apptriage/scan"
)

type cliTestCase struct {
	name string
	args []string
	exit int
}

func runCli(t *testing.T, tc cliTestCase) (string, string) {
	t.Helper()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	exit := cmd.Run(tc.args, stdout, stderr, []cmd.CommandBuilder{
		scan.Command,
		rules.Command,
	})

	if exit != tc.exit {
		t.Errorf("%s: cli exited with code %d, not %d\nstdout:\n%s\nstderr:\n%s",
			tc.name, exit, tc.exit, stdout.String(), stderr.String())
	}

	return stdout.String(), stderr.String()
}

const testPbxproj = `// !$*UTF8*$!
{
	objects = {
		AA11BB /* Debug */ = {
			isa = XCBuildConfiguration;
			buildSettings = {
				INFOPLIST_FILE = App/Info.plist;
			};
		};
	};
}
`

const cleanInfoPlist = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>CFBundleName</key>
	<string>CleanApp</string>
	<key>UILaunchStoryboardName</key>
	<string>LaunchScreen</string>
	<key>ITSAppUsesNonExemptEncryption</key>
	<false/>
	<key>UISupportedInterfaceOrientations</key>
	<array>
		<string>UIInterfaceOrientationPortrait</string>
	</array>
</dict>
</plist>`

const sparseInfoPlist = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>CFBundleName</key>
	<string>SparseApp</string>
</dict>
</plist>`

func writeProject(t *testing.T, infoPlist string) string {
	t.Helper()

	root := t.TempDir()

	files := map[string]string{
		"App.xcodeproj/project.pbxproj": testPbxproj,
		"App/Info.plist":                infoPlist,
	}

	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatal(err)
		}
	}

	return root
}

func TestRun_CleanProject(t *testing.T) {
	cleanDir := writeProject(t, cleanInfoPlist)

	stdout, _ := runCli(t, cliTestCase{
		name: "clean project exits zero",
		args: []string{"", "scan", cleanDir},
		exit: 0,
	})

	if !strings.Contains(stdout, "No issues found") {
		t.Errorf("stdout = %q, want the no-issues line", stdout)
	}
}

func TestRun_DebugVerbosity(t *testing.T) {
	cleanDir := writeProject(t, cleanInfoPlist)

	stdout, _ := runCli(t, cliTestCase{
		name: "debug verbosity surfaces scan progress",
		args: []string{"", "scan", "--verbosity", "debug", cleanDir},
		exit: 0,
	})

	if !strings.Contains(stdout, "Scanning ") {
		t.Errorf("stdout = %q, want the scan progress line", stdout)
	}
}

func TestRun_FailOnThreshold(t *testing.T) {
	sparseDir := writeProject(t, sparseInfoPlist)

	// The sparse project produces metadata findings of at most medium
	// severity, below the default high threshold.
	runCli(t, cliTestCase{
		name: "findings below the default threshold",
		args: []string{"", "scan", sparseDir},
		exit: 0,
	})

	runCli(t, cliTestCase{
		name: "findings at the lowered threshold",
		args: []string{"", "scan", "--fail-on", "medium", sparseDir},
		exit: 1,
	})
}

func TestRun_InvalidRules(t *testing.T) {
	dir := writeProject(t, cleanInfoPlist)

	_, stderr := runCli(t, cliTestCase{
		name: "unknown rule ID",
		args: []string{"", "scan", "--rules", "typo-id", dir},
		exit: 2,
	})

	if !strings.Contains(stderr, "typo-id") {
		t.Errorf("stderr = %q, want the unknown ID named", stderr)
	}

	runCli(t, cliTestCase{
		name: "selection excludes everything",
		args: []string{"", "scan", "--rules", "launch-screen", "--exclude", "launch-screen", dir},
		exit: 2,
	})
}

func TestRun_NoProject(t *testing.T) {
	runCli(t, cliTestCase{
		name: "empty directory",
		args: []string{"", "scan", t.TempDir()},
		exit: 3,
	})

	runCli(t, cliTestCase{
		name: "ipa archives are rejected",
		args: []string{"", "scan", filepath.Join(t.TempDir(), "App.ipa")},
		exit: 3,
	})
}

func TestRun_DefaultCommand(t *testing.T) {
	cleanDir := writeProject(t, cleanInfoPlist)

	// a bare path implies `scan`
	runCli(t, cliTestCase{
		name: "path without a command",
		args: []string{"", cleanDir},
		exit: 0,
	})
}

func TestRun_InvalidFormat(t *testing.T) {
	dir := writeProject(t, cleanInfoPlist)

	runCli(t, cliTestCase{
		name: "unsupported format",
		args: []string{"", "scan", "--format", "yaml", dir},
		exit: 127,
	})
}

func TestRun_JSONGoesToStdoutOnly(t *testing.T) {
	dir := writeProject(t, sparseInfoPlist)

	stdout, _ := runCli(t, cliTestCase{
		name: "json output",
		args: []string{"", "scan", "--format", "json", dir},
		exit: 0,
	})

	if !strings.HasPrefix(strings.TrimSpace(stdout), "{") {
		t.Errorf("stdout should contain only JSON, got %q", stdout)
	}
}

func TestRun_RulesCommand(t *testing.T) {
	stdout, _ := runCli(t, cliTestCase{
		name: "rules listing",
		args: []string{"", "rules"},
		exit: 0,
	})

	for _, id := range []string{"camera-usage-description", "sign-in-with-apple", "launch-screen"} {
		if !strings.Contains(stdout, id) {
			t.Errorf("rules output is missing %q", id)
		}
	}
}

func TestRun_RulesExplain(t *testing.T) {
	stdout, _ := runCli(t, cliTestCase{
		name: "explain a rule",
		args: []string{"", "rules", "--explain", "sign-in-with-apple"},
		exit: 0,
	})

	if !strings.Contains(stdout, "Guideline:  4.8") {
		t.Errorf("explain output = %q, want the guideline", stdout)
	}

	stdout, _ = runCli(t, cliTestCase{
		name: "explain an unknown rule",
		args: []string{"", "rules", "--explain", "no-such-rule"},
		exit: 0,
	})

	if !strings.Contains(stdout, "not found") {
		t.Errorf("explain output = %q, want a not-found message", stdout)
	}
}

func TestRun_Version(t *testing.T) {
	stdout, _ := runCli(t, cliTestCase{
		name: "version flag",
		args: []string{"", "--version"},
		exit: 0,
	})

	if !strings.Contains(stdout, "apptriage version:") {
		t.Errorf("stdout = %q, want the version line", stdout)
	}
}
