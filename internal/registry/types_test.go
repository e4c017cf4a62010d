package registry

import (
	"slices"
	"testing"
)

func TestIndexAddRegistersAltName(t *testing.T) {
	ix := NewIndex()
	ix.Add(Record{Name: "pkg", Version: "1.0.0", Description: "d", AltName: "alt-name"})

	pkg, ok := ix.Lookup("pkg")
	if !ok {
		t.Fatal("pkg missing")
	}
	alt, ok := ix.Lookup("alt-name")
	if !ok {
		t.Fatal("alt-name missing")
	}
	if pkg.Version != alt.Version || pkg.Description != alt.Description {
		t.Errorf("pkg %+v and alt %+v differ", pkg, alt)
	}
}

func TestIndexLookupMiss(t *testing.T) {
	if _, ok := NewIndex().Lookup("absent"); ok {
		t.Error("Lookup on empty index returned ok")
	}
}

func TestIndexMergeLaterWins(t *testing.T) {
	first := NewIndex()
	first.Add(Record{Name: "tool", Version: "1.0.0", Description: "old"})
	first.Add(Record{Name: "only-first", Version: "0.1.0", Description: "x"})

	second := NewIndex()
	second.Add(Record{Name: "tool", Version: "1.1.0", Description: "new"})

	first.Merge(second)

	rec, _ := first.Lookup("tool")
	if rec.Version != "1.1.0" || rec.Description != "new" {
		t.Errorf("tool = %+v, want version from merged index", rec)
	}
	if _, ok := first.Lookup("only-first"); !ok {
		t.Error("merge dropped an existing key")
	}
	if got := first.Versions("tool"); !slices.Equal(got, []string{"1.0.0", "1.1.0"}) {
		t.Errorf("Versions = %v", got)
	}
}

func TestIndexVersionsSemverOrder(t *testing.T) {
	ix := NewIndex()
	for _, v := range []string{"1.10.0", "1.9.0", "1.9.0", "2.0.0-rc.1", "2.0.0", "0.1.0"} {
		ix.Add(Record{Name: "tool", Version: v})
	}

	want := []string{"0.1.0", "1.9.0", "1.10.0", "2.0.0-rc.1", "2.0.0"}
	if got := ix.Versions("tool"); !slices.Equal(got, want) {
		t.Errorf("Versions = %v, want %v", got, want)
	}
}

func TestCompareVersionsUnparseableLast(t *testing.T) {
	got := []string{"not-a-version", "1.0.0", "also-bad"}
	slices.SortFunc(got, compareVersions)
	want := []string{"1.0.0", "also-bad", "not-a-version"}
	if !slices.Equal(got, want) {
		t.Errorf("sorted = %v, want %v", got, want)
	}
}

func TestIndexNamesSorted(t *testing.T) {
	ix := NewIndex()
	ix.Add(Record{Name: "zeta", Version: "1.0.0"})
	ix.Add(Record{Name: "alpha", Version: "1.0.0", AltName: "mid"})

	if got := ix.Names(); !slices.Equal(got, []string{"alpha", "mid", "zeta"}) {
		t.Errorf("Names = %v", got)
	}
}
