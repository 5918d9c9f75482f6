package homepage

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/MrSnakeDoc/appdeck/internal/domain"
)

// templateVar matches Homepage substitutions such as {{HOMEPAGE_VAR_URL}}.
var templateVar = regexp.MustCompile(`\{\{[^}]+\}\}`)

// Source reads app candidates from a Homepage configuration directory.
// Either file may be empty, which disables it.
type Source struct {
	ServicesFile  string
	BookmarksFile string
}

// Enabled reports whether at least one file is configured.
func (s Source) Enabled() bool {
	return s.ServicesFile != "" || s.BookmarksFile != ""
}

// Candidates loads every configured file and maps its entries to create
// inputs, services first. A file that cannot be read or parsed fails the
// whole call so a half-read configuration is never imported.
func (s Source) Candidates() ([]domain.CreateInput, error) {
	var out []domain.CreateInput

	if s.ServicesFile != "" {
		cfg, err := LoadServices(s.ServicesFile)
		if err != nil {
			return nil, err
		}
		out = append(out, MapServices(cfg)...)
	}

	if s.BookmarksFile != "" {
		cfg, err := LoadBookmarks(s.BookmarksFile)
		if err != nil {
			return nil, err
		}
		out = append(out, MapBookmarks(cfg)...)
	}

	return out, nil
}

// LoadServices reads and parses a services.yaml file.
func LoadServices(path string) (ServicesConfig, error) {
	var cfg ServicesConfig
	if err := readYAML(path, &cfg); err != nil {
		return nil, fmt.Errorf("services file: %w", err)
	}
	return cfg, nil
}

// LoadBookmarks reads and parses a bookmarks.yaml file.
func LoadBookmarks(path string) (BookmarksConfig, error) {
	var cfg BookmarksConfig
	if err := readYAML(path, &cfg); err != nil {
		return nil, fmt.Errorf("bookmarks file: %w", err)
	}
	return cfg, nil
}

func readYAML(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(stripTemplateVariables(data), out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// stripTemplateVariables removes Homepage template variables. A bare
// variable leaves an empty value, which decodes as "".
// Example: href: {{HOMEPAGE_VAR_URL}} -> href:
func stripTemplateVariables(data []byte) []byte {
	return templateVar.ReplaceAll(data, nil)
}
