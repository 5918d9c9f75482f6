package homepage

// ServicesConfig is the root of a Homepage services.yaml.
// Groups and services are keyed by their display names:
//
//	- Media:
//	    - Jellyfin:
//	        href: https://jellyfin.lan
type ServicesConfig []map[string][]map[string]ServiceProps

// ServiceProps holds the service fields appdeck imports. Widgets and
// monitors are ignored.
type ServiceProps struct {
	Href        string `yaml:"href"`
	Icon        string `yaml:"icon,omitempty"`
	Description string `yaml:"description,omitempty"`
}

// BookmarksConfig is the root of a Homepage bookmarks.yaml:
//
//	- Developer:
//	    - Github:
//	        - abbr: GH
//	          href: https://github.com/
type BookmarksConfig []map[string][]map[string][]BookmarkEntry

// BookmarkEntry is a single bookmark. Homepage wraps it in a one-element list.
type BookmarkEntry struct {
	Icon        string `yaml:"icon,omitempty"`
	Abbr        string `yaml:"abbr,omitempty"`
	Href        string `yaml:"href"`
	Description string `yaml:"description,omitempty"`
}
