package domain

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// TypeFilter restricts a listing by app type; TypeFilterAll passes everything.
type TypeFilter string

const (
	TypeFilterAll   TypeFilter = "all"
	TypeFilterWeb   TypeFilter = TypeFilter(TypeWeb)
	TypeFilterLocal TypeFilter = TypeFilter(TypeLocal)
)

// ParseTypeFilter maps a wire value to a TypeFilter; empty means all.
func ParseTypeFilter(s string) (TypeFilter, bool) {
	switch TypeFilter(strings.ToLower(strings.TrimSpace(s))) {
	case "", TypeFilterAll:
		return TypeFilterAll, true
	case TypeFilterWeb:
		return TypeFilterWeb, true
	case TypeFilterLocal:
		return TypeFilterLocal, true
	default:
		return "", false
	}
}

// SortOrder selects how a listing is ordered.
type SortOrder string

const (
	// SortNone keeps the stored insertion order.
	SortNone SortOrder = ""
	// SortPinned puts pinned apps first, each group by ascending name.
	SortPinned SortOrder = "pinned"
	// SortName orders by ascending name.
	SortName SortOrder = "name"
	// SortUpdated orders by most recently modified first.
	SortUpdated SortOrder = "updated"
)

// ParseSortOrder maps a wire value to a SortOrder.
func ParseSortOrder(s string) (SortOrder, bool) {
	switch o := SortOrder(strings.ToLower(strings.TrimSpace(s))); o {
	case SortNone, SortPinned, SortName, SortUpdated:
		return o, true
	default:
		return "", false
	}
}

// Filter holds the optional listing filters. Supplied filters compose by AND.
type Filter struct {
	// Text is matched case-insensitively against name, url, description and tags.
	Text string
	// Type keeps only apps of one type unless it is TypeFilterAll or empty.
	Type TypeFilter
	// Tags keeps apps carrying at least one of these tags (OR).
	Tags []string
	// PinnedOnly keeps only pinned apps.
	PinnedOnly bool
}

// Match reports whether a satisfies every supplied filter.
func (f Filter) Match(a App) bool {
	if f.Text != "" && !matchText(a, strings.ToLower(f.Text)) {
		return false
	}
	if f.Type != "" && f.Type != TypeFilterAll && string(a.Type) != string(f.Type) {
		return false
	}
	if len(f.Tags) > 0 && !slices.ContainsFunc(f.Tags, func(t string) bool { return slices.Contains(a.Tags, t) }) {
		return false
	}
	if f.PinnedOnly && !a.IsPinned {
		return false
	}
	return true
}

func matchText(a App, q string) bool {
	if strings.Contains(strings.ToLower(a.Name), q) ||
		strings.Contains(strings.ToLower(a.URL), q) ||
		strings.Contains(strings.ToLower(a.Description), q) {
		return true
	}
	for _, tag := range a.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// Query filters a snapshot and orders the result. The input slice is not modified.
func Query(apps []App, f Filter, order SortOrder, locale language.Tag) []App {
	out := make([]App, 0, len(apps))
	for _, a := range apps {
		if f.Match(a) {
			out = append(out, a)
		}
	}
	SortApps(out, order, locale)
	return out
}

// SortApps orders apps in place. The sort is stable: equal keys keep their
// original relative order. Names are compared with the locale's collation.
func SortApps(apps []App, order SortOrder, locale language.Tag) {
	if order == SortNone {
		return
	}

	// collate.Collator is not safe for concurrent use; build one per call.
	col := collate.New(locale)
	byName := func(a, b App) int { return col.CompareString(a.Name, b.Name) }

	switch order {
	case SortPinned:
		slices.SortStableFunc(apps, func(a, b App) int {
			if a.IsPinned != b.IsPinned {
				if a.IsPinned {
					return -1
				}
				return 1
			}
			return byName(a, b)
		})
	case SortName:
		slices.SortStableFunc(apps, byName)
	case SortUpdated:
		slices.SortStableFunc(apps, func(a, b App) int {
			return b.UpdatedAt.Compare(a.UpdatedAt)
		})
	}
}
