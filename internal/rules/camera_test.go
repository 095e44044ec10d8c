package rules_test

import (
	"strings"
	"testing"

	"github.com/apptriage/apptriage/internal/rules"
)

const captureSource = `import AVFoundation

final class Scanner {
	let session = AVCaptureSession()
}
`

const playbackSource = `import AVFoundation

final class Player {
	let player = AVPlayer(url: url)
}
`

func TestCameraRule_CaptureWithoutDescription(t *testing.T) {
	t.Parallel()

	findings := evaluate(t, "camera-usage-description", projectFixture{
		infoPlist:  map[string]string{"CFBundleName": "App"},
		frameworks: []string{"AVFoundation"},
		sources:    map[string]string{"Scanner.swift": captureSource},
	})

	finding := expectOneFinding(t, findings, rules.SeverityCritical, rules.ConfidenceHigh)
	if !strings.Contains(finding.Title, "Missing NSCameraUsageDescription") {
		t.Errorf("Title = %q", finding.Title)
	}
}

// Playback-only use of the umbrella framework is counter-evidence: no
// missing-key finding at all.
func TestCameraRule_PlaybackOnlySuppresses(t *testing.T) {
	t.Parallel()

	findings := evaluate(t, "camera-usage-description", projectFixture{
		infoPlist:  map[string]string{"CFBundleName": "App"},
		frameworks: []string{"AVFoundation"},
		sources:    map[string]string{"Player.swift": playbackSource},
	})

	expectNoFindings(t, findings)
}

// Framework linked but no source files at all: the finding survives at
// reduced severity and confidence rather than being suppressed.
func TestCameraRule_NoSourcesDowngrades(t *testing.T) {
	t.Parallel()

	findings := evaluate(t, "camera-usage-description", projectFixture{
		infoPlist:  map[string]string{"CFBundleName": "App"},
		frameworks: []string{"AVFoundation"},
	})

	expectOneFinding(t, findings, rules.SeverityMedium, rules.ConfidenceMedium)
}

func TestCameraRule_NotTriggeredWithoutFramework(t *testing.T) {
	t.Parallel()

	findings := evaluate(t, "camera-usage-description", projectFixture{
		infoPlist: map[string]string{"CFBundleName": "App"},
	})

	expectNoFindings(t, findings)
}

func TestCameraRule_DescriptionPresent(t *testing.T) {
	t.Parallel()

	findings := evaluate(t, "camera-usage-description", projectFixture{
		infoPlist: map[string]string{
			"NSCameraUsageDescription": "We scan receipts with the camera for expense reports.",
		},
		frameworks: []string{"AVFoundation"},
		sources:    map[string]string{"Scanner.swift": captureSource},
	})

	expectNoFindings(t, findings)
}

// A present-but-empty value is reported even when nothing triggers the
// capability, and exactly one finding is emitted.
func TestCameraRule_EmptyDescription(t *testing.T) {
	t.Parallel()

	findings := evaluate(t, "camera-usage-description", projectFixture{
		infoPlist: map[string]string{"NSCameraUsageDescription": ""},
	})

	finding := expectOneFinding(t, findings, rules.SeverityCritical, rules.ConfidenceHigh)
	if !strings.Contains(finding.Title, "Empty") {
		t.Errorf("Title = %q, want an empty-value finding", finding.Title)
	}
}

// Placeholder text outranks emptiness: one placeholder finding, not two.
func TestCameraRule_PlaceholderDescription(t *testing.T) {
	t.Parallel()

	findings := evaluate(t, "camera-usage-description", projectFixture{
		infoPlist: map[string]string{"NSCameraUsageDescription": "TODO: explain camera use"},
		sources:   map[string]string{"Scanner.swift": captureSource},
	})

	finding := expectOneFinding(t, findings, rules.SeverityCritical, rules.ConfidenceHigh)
	if !strings.Contains(finding.Title, "Placeholder") {
		t.Errorf("Title = %q, want a placeholder finding", finding.Title)
	}
}
