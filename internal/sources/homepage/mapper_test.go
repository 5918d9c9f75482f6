package homepage

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/MrSnakeDoc/appdeck/internal/domain"
)

func TestMapServices(t *testing.T) {
	cfg := ServicesConfig{
		{
			"Infrastructure": []map[string]ServiceProps{
				{
					"AdGuard Home": {
						Icon:        "adguard-home.svg",
						Href:        "https://adguard.domain.ext",
						Description: "Network-wide ads blocking",
					},
				},
				{
					"Traefik": {
						Icon: "traefik.svg",
						Href: "https://traefik.domain.ext",
					},
				},
			},
		},
	}

	want := []domain.CreateInput{
		{
			Name:        "AdGuard Home",
			URL:         "https://adguard.domain.ext",
			Tags:        []string{"infrastructure"},
			Description: "Network-wide ads blocking",
			Icon:        "adguard-home.svg",
		},
		{
			Name: "Traefik",
			URL:  "https://traefik.domain.ext",
			Tags: []string{"infrastructure"},
			Icon: "traefik.svg",
		},
	}

	if diff := cmp.Diff(want, MapServices(cfg)); diff != "" {
		t.Errorf("MapServices() mismatch (-want +got):\n%s", diff)
	}
}

func TestMapServicesSkipsUnusable(t *testing.T) {
	cfg := ServicesConfig{
		{
			"Misc": []map[string]ServiceProps{
				{"No href": {}},
				{"Templated": {Href: ""}},
				{"Relative": {Href: "/just/a/path"}},
				{"Good": {Href: "http://localhost:8096", Icon: strings.Repeat("x", domain.MaxIconLen+1)}},
			},
		},
	}

	got := MapServices(cfg)
	if len(got) != 1 {
		t.Fatalf("MapServices() returned %d, want 1: %+v", len(got), got)
	}
	if got[0].Icon != "" {
		t.Errorf("over-long icon kept: %q", got[0].Icon)
	}
}

func TestMapServicesEmptyConfig(t *testing.T) {
	if got := MapServices(ServicesConfig{}); len(got) != 0 {
		t.Errorf("MapServices(empty) = %+v, want none", got)
	}
}

func TestMapBookmarks(t *testing.T) {
	cfg := BookmarksConfig{
		{
			"Developer": []map[string][]BookmarkEntry{
				{"Github": {{Abbr: "GH", Href: "https://github.com/"}}},
				{"Docs": {{Icon: "mdi-book", Href: "https://go.dev/doc"}}},
				{"Empty": {}},
			},
		},
	}

	want := []domain.CreateInput{
		{Name: "Github", URL: "https://github.com/", Tags: []string{"developer"}, Icon: "GH"},
		{Name: "Docs", URL: "https://go.dev/doc", Tags: []string{"developer"}, Icon: "mdi-book"},
	}

	if diff := cmp.Diff(want, MapBookmarks(cfg)); diff != "" {
		t.Errorf("MapBookmarks() mismatch (-want +got):\n%s", diff)
	}
}

func TestClip(t *testing.T) {
	if got := clip("  héllo  ", 3); got != "hél" {
		t.Errorf("clip() = %q, want hél", got)
	}
	if got := clip("ok", 10); got != "ok" {
		t.Errorf("clip() = %q, want ok", got)
	}
}
