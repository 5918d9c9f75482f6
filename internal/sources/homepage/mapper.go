package homepage

import (
	"slices"
	"strings"

	"github.com/MrSnakeDoc/appdeck/internal/domain"
)

// MapServices converts services into create inputs tagged with their
// lowercased group name. Entries that would not pass validation (no href,
// template-only href) are dropped, and over-long fields are clipped.
func MapServices(cfg ServicesConfig) []domain.CreateInput {
	var out []domain.CreateInput

	for _, group := range cfg {
		for _, groupName := range sortedKeys(group) {
			tag := groupTag(groupName)
			for _, entry := range group[groupName] {
				for _, name := range sortedKeys(entry) {
					props := entry[name]
					in := domain.CreateInput{
						Name:        clip(name, domain.MaxNameLen),
						URL:         strings.TrimSpace(props.Href),
						Tags:        tag,
						Description: clip(props.Description, domain.MaxDescriptionLen),
						Icon:        iconOrEmpty(props.Icon),
					}
					if in.Validate() != nil {
						continue
					}
					out = append(out, in)
				}
			}
		}
	}

	return out
}

// MapBookmarks converts bookmarks into create inputs tagged with their
// lowercased category name.
func MapBookmarks(cfg BookmarksConfig) []domain.CreateInput {
	var out []domain.CreateInput

	for _, category := range cfg {
		for _, categoryName := range sortedKeys(category) {
			tag := groupTag(categoryName)
			for _, bookmark := range category[categoryName] {
				for _, name := range sortedKeys(bookmark) {
					entries := bookmark[name]
					if len(entries) == 0 {
						continue
					}
					entry := entries[0]

					icon := iconOrEmpty(entry.Icon)
					if icon == "" {
						icon = iconOrEmpty(entry.Abbr)
					}
					in := domain.CreateInput{
						Name:        clip(name, domain.MaxNameLen),
						URL:         strings.TrimSpace(entry.Href),
						Tags:        tag,
						Description: clip(entry.Description, domain.MaxDescriptionLen),
						Icon:        icon,
					}
					if in.Validate() != nil {
						continue
					}
					out = append(out, in)
				}
			}
		}
	}

	return out
}

func groupTag(name string) []string {
	tag := strings.ToLower(strings.TrimSpace(name))
	if tag == "" {
		return []string{}
	}
	return []string{tag}
}

// iconOrEmpty drops icon references too long to store; a truncated
// file name or URL would be useless.
func iconOrEmpty(icon string) string {
	icon = strings.TrimSpace(icon)
	if len([]rune(icon)) > domain.MaxIconLen {
		return ""
	}
	return icon
}

func clip(s string, n int) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// sortedKeys gives map-backed YAML sections a stable order.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
