package xcworkspace_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/apptriage/apptriage/internal/xcworkspace"
)

func writeWorkspace(t *testing.T, root, name, contents string, projects ...string) string {
	t.Helper()

	for _, proj := range projects {
		if err := os.MkdirAll(filepath.Join(root, filepath.FromSlash(proj)), 0755); err != nil {
			t.Fatal(err)
		}
	}

	wsPath := filepath.Join(root, name)
	if err := os.MkdirAll(wsPath, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(wsPath, "contents.xcworkspacedata"), []byte(contents), 0600); err != nil {
		t.Fatal(err)
	}

	return wsPath
}

func TestParse(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	wsPath := writeWorkspace(t, root, "MyApp.xcworkspace", `<?xml version="1.0" encoding="UTF-8"?>
<Workspace version="1.0">
   <FileRef location="group:MyApp.xcodeproj"></FileRef>
   <FileRef location="container:Modules/Networking.xcodeproj"></FileRef>
   <FileRef location="group:Pods/Pods.xcodeproj"></FileRef>
   <FileRef location="group:Examples/DemoApp.xcodeproj"></FileRef>
   <FileRef location="group:Missing.xcodeproj"></FileRef>
</Workspace>`,
		"MyApp.xcodeproj",
		"Modules/Networking.xcodeproj",
		"Pods/Pods.xcodeproj",
		"Examples/DemoApp.xcodeproj",
	)

	refs, err := xcworkspace.Parse(wsPath)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	// Missing.xcodeproj does not exist on disk and is dropped.
	if len(refs) != 4 {
		t.Fatalf("got %d refs, want 4: %+v", len(refs), refs)
	}

	byPath := map[string]xcworkspace.ProjectRef{}
	for _, ref := range refs {
		rel, err := filepath.Rel(root, ref.ProjectPath)
		if err != nil {
			t.Fatal(err)
		}
		byPath[filepath.ToSlash(rel)] = ref
	}

	main, ok := byPath["MyApp.xcodeproj"]
	if !ok {
		t.Fatal("MyApp.xcodeproj not found in refs")
	}
	if main.IsPods || main.IsTestOrExample {
		t.Errorf("MyApp.xcodeproj misclassified: %+v", main)
	}
	if main.LocationType != xcworkspace.LocationGroup {
		t.Errorf("LocationType = %q, want group", main.LocationType)
	}

	if ref := byPath["Modules/Networking.xcodeproj"]; ref.LocationType != xcworkspace.LocationContainer {
		t.Errorf("container ref LocationType = %q", ref.LocationType)
	}

	if ref := byPath["Pods/Pods.xcodeproj"]; !ref.IsPods {
		t.Error("Pods project should be flagged IsPods")
	}

	if ref := byPath["Examples/DemoApp.xcodeproj"]; !ref.IsTestOrExample {
		t.Error("DemoApp should be flagged IsTestOrExample")
	}
}

func TestParse_NestedGroups(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	wsPath := writeWorkspace(t, root, "MyApp.xcworkspace", `<?xml version="1.0" encoding="UTF-8"?>
<Workspace version="1.0">
   <Group location="group:Apps" name="Apps">
      <FileRef location="group:Main/Main.xcodeproj"></FileRef>
   </Group>
</Workspace>`,
		"Apps/Main/Main.xcodeproj",
	)

	refs, err := xcworkspace.Parse(wsPath)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(refs) != 1 {
		t.Fatalf("got %d refs, want 1", len(refs))
	}

	want := filepath.Join(root, "Apps", "Main", "Main.xcodeproj")
	if refs[0].ProjectPath != want {
		t.Errorf("ProjectPath = %q, want %q", refs[0].ProjectPath, want)
	}
}

func TestParse_MissingContents(t *testing.T) {
	t.Parallel()

	if _, err := xcworkspace.Parse(filepath.Join(t.TempDir(), "Nope.xcworkspace")); err == nil {
		t.Error("expected missing workspace to be an error")
	}
}

func TestMainRefs(t *testing.T) {
	t.Parallel()

	refs := []xcworkspace.ProjectRef{
		{ProjectPath: "a", IsPods: true},
		{ProjectPath: "b", IsTestOrExample: true},
		{ProjectPath: "c"},
	}

	main := xcworkspace.MainRefs(refs)
	if len(main) != 1 || main[0].ProjectPath != "c" {
		t.Errorf("MainRefs() = %+v, want only c", main)
	}

	// A Pods-only workspace filters to nothing; callers fall back to the
	// full list.
	if got := xcworkspace.MainRefs(refs[:2]); got != nil {
		t.Errorf("MainRefs() of only filtered refs = %+v, want nil", got)
	}
}
