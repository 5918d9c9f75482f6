package domain

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/language"
)

func ids(apps []App) []string {
	out := make([]string, len(apps))
	for i, a := range apps {
		out[i] = a.ID
	}
	return out
}

func TestSortPinned(t *testing.T) {
	apps := []App{
		{ID: "A", Name: "B", IsPinned: false},
		{ID: "B", Name: "A", IsPinned: true},
		{ID: "C", Name: "C", IsPinned: true},
	}

	got := Query(apps, Filter{}, SortPinned, language.English)
	if diff := cmp.Diff([]string{"B", "C", "A"}, ids(got)); diff != "" {
		t.Errorf("pinned order mismatch (-want +got):\n%s", diff)
	}
	// input untouched
	if diff := cmp.Diff([]string{"A", "B", "C"}, ids(apps)); diff != "" {
		t.Errorf("Query() mutated input (-want +got):\n%s", diff)
	}
}

func TestSortNameLocaleAware(t *testing.T) {
	apps := []App{
		{ID: "1", Name: "zulu"},
		{ID: "2", Name: "Éclair"},
		{ID: "3", Name: "alpha"},
		{ID: "4", Name: "Delta"},
	}

	SortApps(apps, SortName, language.English)
	// Collation ignores case and accents at the primary level, unlike byte order.
	if diff := cmp.Diff([]string{"3", "4", "2", "1"}, ids(apps)); diff != "" {
		t.Errorf("name order mismatch (-want +got):\n%s", diff)
	}
}

func TestSortStableOnTies(t *testing.T) {
	apps := []App{
		{ID: "first", Name: "same"},
		{ID: "second", Name: "same"},
		{ID: "third", Name: "same"},
	}

	SortApps(apps, SortName, language.English)
	if diff := cmp.Diff([]string{"first", "second", "third"}, ids(apps)); diff != "" {
		t.Errorf("ties reordered (-want +got):\n%s", diff)
	}
}

func TestSortUpdatedNewestFirst(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	apps := []App{
		{ID: "old", UpdatedAt: base},
		{ID: "new", UpdatedAt: base.Add(2 * time.Hour)},
		{ID: "mid", UpdatedAt: base.Add(time.Hour)},
		{ID: "mid2", UpdatedAt: base.Add(time.Hour)},
	}

	SortApps(apps, SortUpdated, language.English)
	if diff := cmp.Diff([]string{"new", "mid", "mid2", "old"}, ids(apps)); diff != "" {
		t.Errorf("updated order mismatch (-want +got):\n%s", diff)
	}
}

func TestSortNoneKeepsInsertionOrder(t *testing.T) {
	apps := []App{{ID: "b", Name: "b"}, {ID: "a", Name: "a"}}
	SortApps(apps, SortNone, language.English)
	if diff := cmp.Diff([]string{"b", "a"}, ids(apps)); diff != "" {
		t.Errorf("order changed (-want +got):\n%s", diff)
	}
}

func TestFilters(t *testing.T) {
	apps := []App{
		{ID: "1", Name: "ABC dev", URL: "http://localhost:3000", Type: TypeLocal, IsPinned: true, Tags: []string{"dev"}},
		{ID: "2", Name: "abc docs", URL: "https://abc.example", Type: TypeWeb, IsPinned: true, Tags: []string{"docs"}},
		{ID: "3", Name: "other", URL: "http://localhost:4000", Type: TypeLocal, Description: "has abc inside"},
		{ID: "4", Name: "tagged", URL: "https://t.example", Type: TypeWeb, Tags: []string{"xabcx", "media"}},
		{ID: "5", Name: "nothing", URL: "https://n.example", Type: TypeWeb},
	}

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"no filter", Filter{}, []string{"1", "2", "3", "4", "5"}},
		{"text matches name url description tags", Filter{Text: "AbC"}, []string{"1", "2", "3", "4"}},
		{"type local", Filter{Type: TypeFilterLocal}, []string{"1", "3"}},
		{"type all", Filter{Type: TypeFilterAll}, []string{"1", "2", "3", "4", "5"}},
		{"tags are OR", Filter{Tags: []string{"dev", "media"}}, []string{"1", "4"}},
		{"pinned only", Filter{PinnedOnly: true}, []string{"1", "2"}},
		{"text AND local AND pinned", Filter{Text: "abc", Type: TypeFilterLocal, PinnedOnly: true}, []string{"1"}},
		{"no match", Filter{Text: "zzz"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Query(apps, tt.filter, SortNone, language.English)
			if diff := cmp.Diff(tt.want, ids(got)); diff != "" {
				t.Errorf("filter mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseSortOrderAndTypeFilter(t *testing.T) {
	if o, ok := ParseSortOrder("Pinned"); !ok || o != SortPinned {
		t.Errorf("ParseSortOrder(Pinned) = (%q, %v)", o, ok)
	}
	if _, ok := ParseSortOrder("random"); ok {
		t.Error("ParseSortOrder(random) should fail")
	}
	if f, ok := ParseTypeFilter(""); !ok || f != TypeFilterAll {
		t.Errorf("ParseTypeFilter(\"\") = (%q, %v)", f, ok)
	}
	if _, ok := ParseTypeFilter("desktop"); ok {
		t.Error("ParseTypeFilter(desktop) should fail")
	}
}
