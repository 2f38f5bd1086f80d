package bib

import (
	"strings"
	"testing"
)

func TestLibraryAppendOrder(t *testing.T) {
	lib := NewLibrary()
	for _, key := range []string{"c", "a", "b"} {
		lib.Append(NewEntry("misc", key))
	}

	if lib.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", lib.Len())
	}
	if lib.Last().Key != "b" {
		t.Errorf("Last() = %q, want last appended", lib.Last().Key)
	}

	var keys []string
	for _, e := range lib.Entries() {
		keys = append(keys, e.Key)
	}
	if strings.Join(keys, ",") != "c,a,b" {
		t.Errorf("Entries() order = %v, want insertion order", keys)
	}
}

func TestLibraryByKey(t *testing.T) {
	lib := NewLibrary()
	lib.Append(NewEntry("article", "doe2020"))

	if e := lib.ByKey("doe2020"); e == nil {
		t.Error("ByKey() should find existing key")
	}
	if e := lib.ByKey("absent"); e != nil {
		t.Error("ByKey() should return nil for absent key")
	}
	if lib.Keys()["doe2020"] != true {
		t.Error("Keys() should contain doe2020")
	}
}

func TestLibraryCheckDuplicateKeys(t *testing.T) {
	lib := NewLibrary()
	lib.Append(NewEntry("misc", "doe2020"))
	lib.Append(NewEntry("misc", "doe2020"))
	lib.Append(NewEntry("misc", "smith2019"))

	diags := lib.Check()

	var dup int
	for _, d := range diags {
		if strings.Contains(d.Message, "duplicate key") {
			dup++
			if d.Severity != SeverityWarning {
				t.Errorf("duplicate key severity = %v, want advisory warning", d.Severity)
			}
		}
	}
	if dup != 1 {
		t.Errorf("Check() reported %d duplicate key diagnostics, want 1", dup)
	}
}

func TestLibraryRemove(t *testing.T) {
	lib := NewLibrary()
	lib.Append(NewEntry("misc", "a"))
	lib.Append(NewEntry("misc", "b"))
	lib.Remove(0)

	if lib.Len() != 1 || lib.Entries()[0].Key != "b" {
		t.Errorf("Remove(0) left %d entries, first %q", lib.Len(), lib.Entries()[0].Key)
	}
}
