package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/appdeck/internal/domain"
	"github.com/MrSnakeDoc/appdeck/internal/store"
)

// Backend stores the whole app document as one JSON value under a single key.
// SET replaces the value atomically, so readers never see a partial document.
type Backend struct {
	client *redis.Client
	key    string
}

// NewBackend creates a Redis backend. An empty prefix uses DefaultKeyPrefix.
func NewBackend(client *redis.Client, prefix string) *Backend {
	return &Backend{
		client: client,
		key:    DocumentKey(prefix),
	}
}

// Name implements store.Backend.
func (b *Backend) Name() string { return "redis" }

// Key returns the document key.
func (b *Backend) Key() string { return b.key }

// Load implements store.Backend.
func (b *Backend) Load(ctx context.Context) (*domain.Document, error) {
	data, err := b.client.Get(ctx, b.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, store.ErrDocumentMissing
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	var doc domain.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal document: %w", store.ErrDocumentCorrupt, err)
	}

	return &doc, nil
}

// Save implements store.Backend.
func (b *Backend) Save(ctx context.Context, doc *domain.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	// No TTL: the document is the source of truth
	if err := b.client.Set(ctx, b.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}

	return nil
}

