package file

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
	"github.com/tailscale/hujson"

	"github.com/MrSnakeDoc/appdeck/internal/domain"
	"github.com/MrSnakeDoc/appdeck/internal/store"
)

const (
	dirPerms  = 0o755
	filePerms = 0o644
)

// Backend persists the document as a single pretty-printed JSON file.
// Writes go to a temporary file in the same directory and are renamed over
// the target, so a reader never observes a truncated document.
type Backend struct {
	path string
}

// New creates a file backend writing to path.
func New(path string) *Backend {
	return &Backend{path: path}
}

// Name implements store.Backend.
func (b *Backend) Name() string { return "file" }

// Load implements store.Backend. The file may be hand-edited, so comments
// and trailing commas are accepted.
func (b *Backend) Load(_ context.Context) (*domain.Document, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, store.ErrDocumentMissing
		}
		return nil, fmt.Errorf("failed to read %s: %w", b.path, err)
	}

	return Decode(data)
}

// Decode parses a JSON (or JSONC) document.
func Decode(data []byte) (*domain.Document, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid JSONC: %w", store.ErrDocumentCorrupt, err)
	}

	var doc domain.Document
	if err := json.Unmarshal(standardized, &doc); err != nil {
		return nil, fmt.Errorf("%w: invalid JSON: %w", store.ErrDocumentCorrupt, err)
	}
	return &doc, nil
}

// Encode renders doc the way it is written to disk.
func Encode(doc *domain.Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}
	return append(data, '\n'), nil
}

// Save implements store.Backend.
func (b *Backend) Save(_ context.Context, doc *domain.Document) error {
	data, err := Encode(doc)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(b.path), dirPerms); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	if err := atomic.WriteFile(b.path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write %s: %w", b.path, err)
	}

	// atomic.WriteFile keeps the temp file's mode for new files
	if err := os.Chmod(b.path, filePerms); err != nil {
		return fmt.Errorf("failed to set file permissions: %w", err)
	}
	return nil
}
