package domain

import "time"

// Type classifies an App as a public web bookmark or a locally served app.
type Type string

const (
	TypeWeb   Type = "web"
	TypeLocal Type = "local"
)

// App represents a single dashboard entry.
//
// An App is uniquely identified by its ID. Its Type is never set directly:
// it is always InferType(URL) for the current URL.
type App struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is the opaque unique identifier assigned at creation.
	ID string `json:"id"`

	// ─────────────────────────────
	// User-settable description
	// ─────────────────────────────

	// Name is the display name (1-100 chars).
	Name string `json:"name"`

	// URL is the absolute URL the dashboard opens.
	// Example: http://localhost:3000
	URL string `json:"url"`

	// Type is derived from URL, see InferType.
	Type Type `json:"type"`

	// Tags are free-form lowercase labels, kept in the caller's order.
	Tags []string `json:"tags"`

	// Description is optional free text (<= 500 chars).
	Description string `json:"description"`

	// Icon is an emoji or icon-name token (<= 50 chars).
	Icon string `json:"icon"`

	// IsPinned sorts the app to the front of pinned listings.
	IsPinned bool `json:"isPinned"`

	// StartCommand is a path to a script that starts a local server.
	// It is only meaningful for local apps and is never executed by the store.
	StartCommand string `json:"startCommand"`

	// ─────────────────────────────
	// Metadata
	// ─────────────────────────────

	// CreatedAt is set once, when the store creates the record.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is refreshed on every mutation.
	UpdatedAt time.Time `json:"updatedAt"`
}

// Clone returns a deep copy of a, so callers never share the Tags backing array
// with the store's working document. Tags is never nil in the copy.
func (a App) Clone() App {
	a.Tags = append(make([]string, 0, len(a.Tags)), a.Tags...)
	return a
}

// Document is the persisted shape: one structured document holding every app.
type Document struct {
	Apps []App `json:"apps"`
}

// NewDocument returns an empty collection.
func NewDocument() *Document {
	return &Document{Apps: []App{}}
}
