package ir

import "testing"

func TestObjectFieldOrder(t *testing.T) {
	obj := NewObject().
		Set("isa", FromString("PBXFileReference")).
		Set("path", FromString("Foo.swift")).
		Set("sourceTree", FromString("<group>"))
	want := []string{"isa", "path", "sourceTree"}
	for i, f := range obj.Fields {
		if f != want[i] {
			t.Errorf("field %d: got %q, want %q", i, f, want[i])
		}
	}
	obj.Set("path", FromString("Bar.swift"))
	if len(obj.Fields) != 3 {
		t.Errorf("Set on existing field grew the object: %v", obj.Fields)
	}
	if obj.Get("path").String != "Bar.swift" {
		t.Errorf("Set did not replace value")
	}
}

func TestDelete(t *testing.T) {
	obj := NewObject().
		Set("a", FromInt(1)).
		Set("b", FromInt(2))
	if !obj.Delete("a") {
		t.Fatal("Delete(a) = false")
	}
	if obj.Delete("a") {
		t.Fatal("second Delete(a) = true")
	}
	if obj.Get("b") == nil {
		t.Fatal("Delete removed the wrong field")
	}
}

func TestEqualIgnoresLabels(t *testing.T) {
	a := FromRef("AB12").WithLabel("Foo.swift")
	b := FromRef("AB12").WithLabel("stale name")
	if !Equal(a, b) {
		t.Error("labels should not affect equality")
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		a, b *Node
		want bool
	}{
		{FromString("x"), FromString("x"), true},
		{FromString("x"), FromString("y"), false},
		{FromInt(3), FromInt(3), true},
		{FromBool(true), FromBool(false), false},
		{FromString("1"), FromInt(1), false},
		{
			FromSlice([]*Node{FromRef("A"), FromRef("B")}),
			FromSlice([]*Node{FromRef("A"), FromRef("B")}),
			true,
		},
		{
			FromSlice([]*Node{FromRef("A")}),
			FromSlice([]*Node{FromRef("B")}),
			false,
		},
		{
			NewObject().Set("k", FromString("v")),
			NewObject().Set("k", FromString("v")),
			true,
		},
		{
			NewObject().Set("k", FromString("v")),
			NewObject().Set("k2", FromString("v")),
			false,
		},
	}
	for i, tst := range tests {
		if got := Equal(tst.a, tst.b); got != tst.want {
			t.Errorf("case %d: Equal = %v, want %v", i, got, tst.want)
		}
	}
}

func TestCloneIsDeep(t *testing.T) {
	orig := NewObject().Set("children", FromSlice([]*Node{FromRef("A")}))
	cp := orig.Clone()
	cp.Get("children").Append(FromRef("B"))
	if len(orig.Get("children").Values) != 1 {
		t.Error("Clone shares array storage with original")
	}
}

func TestRefs(t *testing.T) {
	obj := NewObject().
		Set("fileRef", FromRef("AAA")).
		Set("children", FromSlice([]*Node{FromRef("BBB"), FromString("not-a-ref")})).
		Set("settings", NewObject().Set("other", FromRef("CCC")))
	got := obj.Refs()
	want := []string{"AAA", "BBB", "CCC"}
	if len(got) != len(want) {
		t.Fatalf("Refs = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Refs[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
