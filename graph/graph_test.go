package graph

import (
	"testing"

	"github.com/engindearing/pbxgraph/ir"
)

func testDoc(t *testing.T) *Document {
	t.Helper()
	d := NewDocument()

	fileRef := NewRecord("AAAAAAAAAAAAAAAAAAAAAAA1", KindFileReference).
		Set("path", ir.FromString("Sources/Foo.swift")).
		Set("sourceTree", ir.FromString("<group>"))
	buildFile := NewRecord("AAAAAAAAAAAAAAAAAAAAAAA2", KindBuildFile).
		Set("fileRef", ir.FromRef(fileRef.ID))
	phase := NewRecord("AAAAAAAAAAAAAAAAAAAAAAA3", KindSourcesBuildPhase).
		Set("buildActionMask", ir.FromInt(2147483647)).
		Set("files", ir.FromSlice([]*ir.Node{ir.FromRef(buildFile.ID)})).
		Set("runOnlyForDeploymentPostprocessing", ir.FromInt(0))
	project := NewRecord("AAAAAAAAAAAAAAAAAAAAAAA4", KindProject).
		Set("mainGroup", ir.FromRef("AAAAAAAAAAAAAAAAAAAAAAA5"))
	group := NewRecord("AAAAAAAAAAAAAAAAAAAAAAA5", KindGroup).
		Set("children", ir.FromSlice([]*ir.Node{ir.FromRef(fileRef.ID)})).
		Set("sourceTree", ir.FromString("<group>"))

	for _, rec := range []*Record{fileRef, buildFile, phase, project, group} {
		if err := d.AddRecord(rec); err != nil {
			t.Fatal(err)
		}
	}
	d.RootObject = project.ID
	return d
}

func TestAddRecordDuplicate(t *testing.T) {
	d := testDoc(t)
	err := d.AddRecord(NewRecord("AAAAAAAAAAAAAAAAAAAAAAA1", KindGroup))
	if err != ErrDuplicateID {
		t.Errorf("got %v, want ErrDuplicateID", err)
	}
}

func TestRemoveRecord(t *testing.T) {
	d := testDoc(t)
	if !d.RemoveRecord("AAAAAAAAAAAAAAAAAAAAAAA1") {
		t.Fatal("RemoveRecord returned false")
	}
	if d.Record("AAAAAAAAAAAAAAAAAAAAAAA1") != nil {
		t.Error("record still resolvable after removal")
	}
	if d.Registry().Contains("AAAAAAAAAAAAAAAAAAAAAAA1") {
		t.Error("registry still holds removed id")
	}
	// the build file's fileRef now dangles
	var found bool
	for _, e := range d.Dangling() {
		if e.To == "AAAAAAAAAAAAAAAAAAAAAAA1" && e.Field == "fileRef" {
			found = true
		}
	}
	if !found {
		t.Error("dangling fileRef not reported after removal")
	}
}

func TestLabelOf(t *testing.T) {
	d := testDoc(t)
	if got := d.LabelOf("AAAAAAAAAAAAAAAAAAAAAAA1"); got != "Foo.swift" {
		t.Errorf("file reference label = %q, want Foo.swift", got)
	}
	if got := d.LabelOf("AAAAAAAAAAAAAAAAAAAAAAA2"); got != "Foo.swift in Sources" {
		t.Errorf("build file label = %q, want \"Foo.swift in Sources\"", got)
	}
	if got := d.LabelOf("AAAAAAAAAAAAAAAAAAAAAAA4"); got != "Project object" {
		t.Errorf("project label = %q", got)
	}
	// labels track live state after a rename
	d.Record("AAAAAAAAAAAAAAAAAAAAAAA1").Set("path", ir.FromString("Sources/Renamed.swift"))
	if got := d.LabelOf("AAAAAAAAAAAAAAAAAAAAAAA2"); got != "Renamed.swift in Sources" {
		t.Errorf("build file label after rename = %q", got)
	}
}

func TestPhaseOfFallsBackToHint(t *testing.T) {
	d := NewDocument()
	bf := NewRecord("BBBBBBBBBBBBBBBBBBBBBBB1", KindBuildFile)
	bf.PhaseHint = "Resources"
	if err := d.AddRecord(bf); err != nil {
		t.Fatal(err)
	}
	if got := d.PhaseOf(bf.ID); got != "Resources" {
		t.Errorf("PhaseOf = %q, want hint Resources", got)
	}
}

func TestPhaseOfMultipleMemberships(t *testing.T) {
	// a build file listed by two phases must resolve to the same phase on
	// every call, in canonical section order
	d := NewDocument()
	bf := NewRecord("DDDDDDDDDDDDDDDDDDDDDDD1", KindBuildFile)
	sources := NewRecord("DDDDDDDDDDDDDDDDDDDDDDD2", KindSourcesBuildPhase).
		Set("files", ir.FromSlice([]*ir.Node{ir.FromRef(bf.ID)}))
	resources := NewRecord("DDDDDDDDDDDDDDDDDDDDDDD3", KindResourcesBuildPhase).
		Set("files", ir.FromSlice([]*ir.Node{ir.FromRef(bf.ID)}))
	for _, rec := range []*Record{bf, sources, resources} {
		if err := d.AddRecord(rec); err != nil {
			t.Fatal(err)
		}
	}
	for i := 0; i < 50; i++ {
		if got := d.PhaseOf(bf.ID); got != "Resources" {
			t.Fatalf("call %d: PhaseOf = %q, want Resources", i, got)
		}
	}
}

func TestDanglingRoot(t *testing.T) {
	d := NewDocument()
	d.RootObject = "FFFFFFFFFFFFFFFFFFFFFFFF"
	errs := d.Dangling()
	if len(errs) != 1 || errs[0].To != d.RootObject || errs[0].From != "" {
		t.Errorf("Dangling = %v, want root reference error", errs)
	}
}

func TestFindByPath(t *testing.T) {
	d := testDoc(t)
	if rec := d.FindByPath("Sources/Foo.swift"); rec == nil {
		t.Error("FindByPath missed existing path")
	}
	if rec := d.FindByPath("nope"); rec != nil {
		t.Error("FindByPath invented a record")
	}
}

func TestSectionRank(t *testing.T) {
	r1, _ := SectionRank(KindBuildFile)
	r2, _ := SectionRank(KindConfigurationList)
	if r1 >= r2 {
		t.Error("canonical order violated")
	}
	ru, name := SectionRank("PBXShellScriptBuildPhase")
	if ru != len(SectionOrder) || name != "PBXShellScriptBuildPhase" {
		t.Error("unknown kinds must sort after known kinds")
	}
}
