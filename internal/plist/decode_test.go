package plist_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/apptriage/apptriage/internal/plist"
)

const xmlInfoPlist = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>CFBundleName</key>
	<string>MyApp</string>
	<key>ITSAppUsesNonExemptEncryption</key>
	<false/>
	<key>CFBundleVersion</key>
	<integer>42</integer>
	<key>UISupportedInterfaceOrientations</key>
	<array>
		<string>UIInterfaceOrientationPortrait</string>
		<string>UIInterfaceOrientationLandscapeLeft</string>
	</array>
	<key>NSExtension</key>
	<dict>
		<key>NSExtensionPointIdentifier</key>
		<string>com.apple.share-services</string>
	</dict>
</dict>
</plist>`

func TestParse_XMLPlist(t *testing.T) {
	t.Parallel()

	root, err := plist.Parse([]byte(xmlInfoPlist))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if name, ok := root.Get("CFBundleName").AsString(); !ok || name != "MyApp" {
		t.Errorf("CFBundleName = %q, %v, want \"MyApp\", true", name, ok)
	}

	if b, ok := root.Get("ITSAppUsesNonExemptEncryption").AsBool(); !ok || b {
		t.Errorf("ITSAppUsesNonExemptEncryption = %v, %v, want false, true", b, ok)
	}

	if n, ok := root.Get("CFBundleVersion").AsNumber(); !ok || n != 42 {
		t.Errorf("CFBundleVersion = %v, %v, want 42, true", n, ok)
	}

	arr, ok := root.Get("UISupportedInterfaceOrientations").AsArray()
	if !ok || len(arr) != 2 {
		t.Fatalf("UISupportedInterfaceOrientations = %v, %v, want 2 entries", arr, ok)
	}
	if s, _ := arr[0].AsString(); s != "UIInterfaceOrientationPortrait" {
		t.Errorf("first orientation = %q", s)
	}

	nested := root.Get("NSExtension").Get("NSExtensionPointIdentifier")
	if s, _ := nested.AsString(); s != "com.apple.share-services" {
		t.Errorf("nested lookup = %q", s)
	}
}

func TestParse_Malformed(t *testing.T) {
	t.Parallel()

	if _, err := plist.Parse([]byte(`<?xml version="1.0"?><plist><dict><key>truncated`)); err == nil {
		t.Error("expected malformed input to be an error")
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "Info.plist")
	if err := os.WriteFile(path, []byte(xmlInfoPlist), 0600); err != nil {
		t.Fatal(err)
	}

	root, err := plist.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !root.Get("CFBundleName").Present() {
		t.Error("expected CFBundleName to be present")
	}
}

func TestLoad_FileDoesNotExist(t *testing.T) {
	t.Parallel()

	if _, err := plist.Load(filepath.Join(t.TempDir(), "does-not-exist.plist")); err == nil {
		t.Error("expected missing file to be an error")
	}
}
