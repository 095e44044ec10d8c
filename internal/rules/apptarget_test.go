package rules_test

import (
	"testing"

	"github.com/apptriage/apptriage/internal/rules"
)

const extensionProductType = "com.apple.product-type.app-extension"

func TestLaunchScreenRule(t *testing.T) {
	t.Parallel()

	missing := evaluate(t, "launch-screen", projectFixture{
		infoPlist: map[string]string{"CFBundleName": "App"},
	})
	expectOneFinding(t, missing, rules.SeverityMedium, rules.ConfidenceHigh)

	storyboard := evaluate(t, "launch-screen", projectFixture{
		infoPlist: map[string]string{"UILaunchStoryboardName": "LaunchScreen"},
	})
	expectNoFindings(t, storyboard)

	// Extensions have no launch screen of their own.
	extension := evaluate(t, "launch-screen", projectFixture{
		infoPlist:   map[string]string{"CFBundleName": "Widget"},
		productType: extensionProductType,
	})
	expectNoFindings(t, extension)
}

func TestEncryptionRule(t *testing.T) {
	t.Parallel()

	missing := evaluate(t, "encryption-compliance", projectFixture{
		infoPlist: map[string]string{"CFBundleName": "App"},
	})
	expectOneFinding(t, missing, rules.SeverityMedium, rules.ConfidenceHigh)

	// Either declared value satisfies the check.
	declaredFalse := evaluate(t, "encryption-compliance", projectFixture{
		infoPlist: map[string]string{"ITSAppUsesNonExemptEncryption": "false"},
	})
	expectNoFindings(t, declaredFalse)

	declaredTrue := evaluate(t, "encryption-compliance", projectFixture{
		infoPlist: map[string]string{"ITSAppUsesNonExemptEncryption": "true"},
	})
	expectNoFindings(t, declaredTrue)

	extension := evaluate(t, "encryption-compliance", projectFixture{
		infoPlist:   map[string]string{"CFBundleName": "Widget"},
		productType: extensionProductType,
	})
	expectNoFindings(t, extension)
}

func TestOrientationRule(t *testing.T) {
	t.Parallel()

	missing := evaluate(t, "orientation-support", projectFixture{
		infoPlist: map[string]string{"CFBundleName": "App"},
	})
	expectOneFinding(t, missing, rules.SeverityLow, rules.ConfidenceMedium)

	empty := evaluate(t, "orientation-support", projectFixture{
		infoPlist:   map[string]string{"CFBundleName": "App"},
		plistArrays: map[string][]string{"UISupportedInterfaceOrientations": {}},
	})
	expectOneFinding(t, empty, rules.SeverityLow, rules.ConfidenceMedium)

	declared := evaluate(t, "orientation-support", projectFixture{
		plistArrays: map[string][]string{
			"UISupportedInterfaceOrientations": {"UIInterfaceOrientationPortrait"},
		},
	})
	expectNoFindings(t, declared)
}

func TestBackgroundModesRule(t *testing.T) {
	t.Parallel()

	locationMode := evaluate(t, "background-modes-justification", projectFixture{
		plistArrays: map[string][]string{"UIBackgroundModes": {"location"}},
	})
	expectOneFinding(t, locationMode, rules.SeverityMedium, rules.ConfidenceMedium)

	justified := evaluate(t, "background-modes-justification", projectFixture{
		infoPlist: map[string]string{
			"NSLocationWhenInUseUsageDescription": "Your location tracks your hike route in the background.",
		},
		plistArrays: map[string][]string{"UIBackgroundModes": {"location"}},
	})
	expectNoFindings(t, justified)

	audioUnused := evaluate(t, "background-modes-justification", projectFixture{
		plistArrays: map[string][]string{"UIBackgroundModes": {"audio"}},
		sources:     map[string]string{"Main.swift": "let name = \"app\"\n"},
	})
	expectOneFinding(t, audioUnused, rules.SeverityMedium, rules.ConfidenceMedium)

	audioUsed := evaluate(t, "background-modes-justification", projectFixture{
		plistArrays: map[string][]string{"UIBackgroundModes": {"audio"}},
		sources:     map[string]string{"Player.swift": playbackSource},
	})
	expectNoFindings(t, audioUsed)

	// Without source files the audio mode cannot be judged either way.
	audioNoSources := evaluate(t, "background-modes-justification", projectFixture{
		plistArrays: map[string][]string{"UIBackgroundModes": {"audio"}},
	})
	expectNoFindings(t, audioNoSources)

	noModes := evaluate(t, "background-modes-justification", projectFixture{
		infoPlist: map[string]string{"CFBundleName": "App"},
	})
	expectNoFindings(t, noModes)
}
