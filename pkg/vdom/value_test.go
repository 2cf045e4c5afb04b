package vdom

import "testing"

func TestValueKinds(t *testing.T) {
	h := testHandle("pkga/static/x.css")

	s := Str("x.css")
	if got, ok := s.AsString(); !ok || got != "x.css" {
		t.Errorf("AsString() = %q, %v", got, ok)
	}
	if _, _, ok := s.Resource(); ok {
		t.Error("string value should not be a resource")
	}

	r := Res(h, "#top")
	if !r.IsResource() || r.Kind() != ValueResource {
		t.Errorf("Kind() = %v, want Resource", r.Kind())
	}
	gotH, suffix, ok := r.Resource()
	if !ok || gotH != h || suffix != "#top" {
		t.Errorf("Resource() = %v, %q, %v", gotH, suffix, ok)
	}
	if _, ok := r.AsString(); ok {
		t.Error("resource value should not be a string")
	}
	if r.String() != "<resource pkga/static/x.css#top>" {
		t.Errorf("String() = %q", r.String())
	}

	var zero Value
	if !zero.IsNull() || zero != Null {
		t.Error("zero Value should be Null")
	}
	if Null.Kind().String() != "Null" {
		t.Errorf("Null kind = %q", Null.Kind().String())
	}
}

func TestAttrsHelpers(t *testing.T) {
	attrs := Attrs{"rel": Str("stylesheet"), "href": Str("x.css")}

	keys := attrs.Keys()
	if len(keys) != 2 || keys[0] != "href" || keys[1] != "rel" {
		t.Errorf("Keys() = %v, want [href rel]", keys)
	}
	if attrs.HasResources() {
		t.Error("HasResources() = true for string-only attrs")
	}

	clone := attrs.Clone()
	clone["href"] = Res(testHandle("a/x.css"), "")
	if attrs.HasResources() {
		t.Error("Clone() shares storage with the original")
	}
	if !clone.HasResources() {
		t.Error("HasResources() = false after adding a resource")
	}
}
