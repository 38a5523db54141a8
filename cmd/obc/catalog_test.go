package main

import (
	"strings"
	"testing"

	"obc/catalog"
	"obc/common"
)

func testCatalog() *catalog.Catalog {
	v := &catalog.Volume{ID: "v1", Title: "Volume One", Number: "01", Order: 1, Part: common.ScopePartOne}
	v.Units = []*catalog.Unit{
		{Name: "Prologue", Class: common.ClassificationStory,
			Early:     catalog.Placement{SortKey: "0101"},
			Fragments: []catalog.Fragment{{File: "p1"}, {File: "p2"}}},
		{Name: "Side Story", Class: common.ClassificationBonus,
			Early: catalog.Placement{SortKey: "0102"},
			Late:  &catalog.Placement{SortKey: "019601"}},
	}
	return &catalog.Catalog{
		Series:  catalog.SeriesInfo{Title: "Sample", Language: "en"},
		Volumes: []*catalog.Volume{v, {ID: "v2", Title: "Volume Two", Number: "02", Order: 2, Part: common.ScopePartOne, Source: "vol2"}},
	}
}

func TestVolumeTable(t *testing.T) {
	s := volumeTable(testCatalog())

	for _, want := range []string{"Volume One", "partOne", "vol2"} {
		if !strings.Contains(s, want) {
			t.Errorf("table does not contain %q:\n%s", want, s)
		}
	}
	if !strings.Contains(s, "│ v1 │     01 │") {
		t.Errorf("unexpected first row:\n%s", s)
	}
}

func TestUnitTable(t *testing.T) {
	s := unitTable(testCatalog().Volumes[0])

	lines := strings.Split(s, "\n")
	if len(lines) != 6 {
		t.Fatalf("expected 6 lines, got %d:\n%s", len(lines), s)
	}
	if !strings.Contains(lines[3], "Prologue") || !strings.Contains(lines[3], "│         2 │") {
		t.Errorf("unexpected prologue row %q", lines[3])
	}
	if !strings.Contains(lines[4], "019601") || !strings.Contains(lines[4], "bonus") {
		t.Errorf("unexpected side story row %q", lines[4])
	}
}

func TestUnitTable_Nested(t *testing.T) {
	vol := testCatalog().Volumes[0]
	parent := vol.Units[0]
	parent.Units = []*catalog.Unit{{Name: "Interlude", Class: common.ClassificationStory,
		Early: catalog.Placement{SortKey: "010101"}, Volume: vol, Parent: parent}}

	lines := strings.Split(unitTable(vol), "\n")
	if len(lines) != 7 {
		t.Fatalf("expected 7 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[4], "010101") || !strings.Contains(lines[4], "│   Interlude ") {
		t.Errorf("unexpected nested row %q", lines[4])
	}
}
