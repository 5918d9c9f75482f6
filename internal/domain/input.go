package domain

import (
	"bytes"
	"encoding/json"
)

// CreateInput carries every user-settable field of an App.
// ID, Type and timestamps are assigned by the store.
type CreateInput struct {
	Name         string   `json:"name"`
	URL          string   `json:"url"`
	Tags         []string `json:"tags,omitempty"`
	Description  string   `json:"description,omitempty"`
	Icon         string   `json:"icon,omitempty"`
	IsPinned     bool     `json:"isPinned,omitempty"`
	StartCommand string   `json:"startCommand,omitempty"`
}

// Optional marks whether a field was present in a partial update.
// A present field holding the zero value means "explicitly cleared".
type Optional[T any] struct {
	Set   bool
	Value T
}

// Some returns a present Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: v}
}

// UnmarshalJSON marks the field present. It is only invoked when the key
// exists in the JSON object; a JSON null clears the value.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		o.Value = zero
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

// MarshalJSON encodes the value; absent fields are dropped via omitzero.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.Value)
}

// IsZero reports absence, so `omitzero` skips unset fields.
func (o Optional[T]) IsZero() bool {
	return !o.Set
}

// UpdateInput is a shallow partial update: only present fields are applied.
type UpdateInput struct {
	Name         Optional[string]   `json:"name,omitzero"`
	URL          Optional[string]   `json:"url,omitzero"`
	Tags         Optional[[]string] `json:"tags,omitzero"`
	Description  Optional[string]   `json:"description,omitzero"`
	Icon         Optional[string]   `json:"icon,omitzero"`
	IsPinned     Optional[bool]     `json:"isPinned,omitzero"`
	StartCommand Optional[string]   `json:"startCommand,omitzero"`
}

// Empty reports whether no field is present.
func (in UpdateInput) Empty() bool {
	return !in.Name.Set && !in.URL.Set && !in.Tags.Set && !in.Description.Set &&
		!in.Icon.Set && !in.IsPinned.Set && !in.StartCommand.Set
}

// Strategy selects how an import treats candidates whose URL already exists.
type Strategy string

const (
	StrategySkip    Strategy = "skip"
	StrategyReplace Strategy = "replace"
)

// ParseStrategy maps the wire value to a Strategy; empty defaults to skip.
func ParseStrategy(s string) (Strategy, bool) {
	switch Strategy(s) {
	case "", StrategySkip:
		return StrategySkip, true
	case StrategyReplace:
		return StrategyReplace, true
	default:
		return "", false
	}
}

// ImportResult reports how many candidates were written and discarded.
type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}
