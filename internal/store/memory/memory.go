package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/MrSnakeDoc/appdeck/internal/domain"
	"github.com/MrSnakeDoc/appdeck/internal/store"
)

// Backend keeps the encoded document in memory. Load and Save exchange
// decoded copies, so no caller ever holds a reference into the stored state.
// The mutex only guards the byte slice; it does not serialize read-modify-write cycles.
type Backend struct {
	mu        sync.RWMutex
	data      []byte    // nil until the first Save
	lastFlush time.Time // timestamp of the last Save
}

// New creates an empty in-memory backend.
func New() *Backend {
	return &Backend{}
}

// Name implements store.Backend.
func (b *Backend) Name() string { return "memory" }

// Load implements store.Backend.
func (b *Backend) Load(_ context.Context) (*domain.Document, error) {
	b.mu.RLock()
	data := b.data
	b.mu.RUnlock()

	if data == nil {
		return nil, store.ErrDocumentMissing
	}

	var doc domain.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrDocumentCorrupt, err)
	}
	return &doc, nil
}

// Save implements store.Backend.
func (b *Backend) Save(_ context.Context, doc *domain.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.data = data
	b.lastFlush = time.Now()
	return nil
}

// Raw returns a copy of the stored bytes (nil if never saved).
func (b *Backend) Raw() []byte {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.data == nil {
		return nil
	}
	return append([]byte(nil), b.data...)
}

// SetRaw replaces the stored bytes verbatim, bypassing encoding.
func (b *Backend) SetRaw(data []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.data = append([]byte(nil), data...)
}

// GetLastFlush returns when the document was last saved.
func (b *Backend) GetLastFlush() time.Time {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return b.lastFlush
}
