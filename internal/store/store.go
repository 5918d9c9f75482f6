// Package store is the record store: every operation is a read-modify-write
// of the whole document through an injected Backend.
//
// There is no locking. Two overlapping mutations race and the later writer's
// full document wins, discarding the other's changes.
package store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/appdeck/internal/domain"
	"github.com/MrSnakeDoc/appdeck/internal/logger"
)

var (
	// ErrDocumentMissing is returned by a Backend when nothing has been saved yet.
	ErrDocumentMissing = errors.New("document does not exist")

	// ErrDocumentCorrupt is returned by a Backend when the stored bytes cannot be decoded.
	ErrDocumentCorrupt = errors.New("document is corrupt")
)

// Backend loads and saves the whole document. Save must be atomic from the
// reader's point of view: a concurrent Load sees either the old or the new
// document, never a truncated one.
type Backend interface {
	Name() string
	Load(ctx context.Context) (*domain.Document, error)
	Save(ctx context.Context, doc *domain.Document) error
}

// Option customizes a Store.
type Option func(*Store)

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides uuid.NewString, for tests.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// Store owns the persisted document. Callers only ever receive copies.
type Store struct {
	backend Backend
	logger  logger.Logger
	now     func() time.Time
	newID   func() string
}

// New creates a store over backend.
func New(backend Backend, log logger.Logger, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		logger:  log,
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BackendName reports which backend persists the document.
func (s *Store) BackendName() string {
	return s.backend.Name()
}

// List returns every app in insertion order.
func (s *Store) List(ctx context.Context) ([]domain.App, error) {
	doc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return cloneAll(doc.Apps), nil
}

// Export is List under the name of the public export surface.
func (s *Store) Export(ctx context.Context) ([]domain.App, error) {
	return s.List(ctx)
}

// Get returns the app with id, or domain.ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (domain.App, error) {
	doc, err := s.load(ctx)
	if err != nil {
		return domain.App{}, err
	}
	idx := indexOf(doc.Apps, id)
	if idx < 0 {
		return domain.App{}, fmt.Errorf("%w: %s", domain.ErrNotFound, id)
	}
	return doc.Apps[idx].Clone(), nil
}

// Create validates in, assigns id, type and timestamps, appends and persists.
func (s *Store) Create(ctx context.Context, in domain.CreateInput) (domain.App, error) {
	if err := in.Validate(); err != nil {
		return domain.App{}, err
	}

	doc, err := s.load(ctx)
	if err != nil {
		return domain.App{}, err
	}

	app := s.newApp(in, s.timestamp())
	doc.Apps = append(doc.Apps, app)

	if err := s.save(ctx, doc); err != nil {
		return domain.App{}, err
	}

	s.logger.Info("app created",
		logger.String("id", app.ID),
		logger.String("name", app.Name),
		logger.String("type", string(app.Type)))
	return app.Clone(), nil
}

// Update applies the present fields of in over the app with id. The type is
// recomputed when the URL is present and updatedAt is always refreshed.
func (s *Store) Update(ctx context.Context, id string, in domain.UpdateInput) (domain.App, error) {
	if err := in.Validate(); err != nil {
		return domain.App{}, err
	}

	doc, err := s.load(ctx)
	if err != nil {
		return domain.App{}, err
	}

	idx := indexOf(doc.Apps, id)
	if idx < 0 {
		return domain.App{}, fmt.Errorf("%w: %s", domain.ErrNotFound, id)
	}

	app := doc.Apps[idx]
	if in.Name.Set {
		app.Name = in.Name.Value
	}
	if in.URL.Set {
		app.URL = in.URL.Value
		app.Type = domain.InferType(app.URL)
	}
	if in.Tags.Set {
		app.Tags = normalizeTags(in.Tags.Value)
	}
	if in.Description.Set {
		app.Description = in.Description.Value
	}
	if in.Icon.Set {
		app.Icon = in.Icon.Value
	}
	if in.IsPinned.Set {
		app.IsPinned = in.IsPinned.Value
	}
	if in.StartCommand.Set {
		app.StartCommand = in.StartCommand.Value
	}
	app.UpdatedAt = s.touch(app.CreatedAt)
	doc.Apps[idx] = app

	if err := s.save(ctx, doc); err != nil {
		return domain.App{}, err
	}

	s.logger.Debug("app updated", logger.String("id", id))
	return app.Clone(), nil
}

// Delete removes the app with id. It reports whether a record was removed and
// writes only in that case.
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	doc, err := s.load(ctx)
	if err != nil {
		return false, err
	}

	idx := indexOf(doc.Apps, id)
	if idx < 0 {
		return false, nil
	}
	doc.Apps = slices.Delete(doc.Apps, idx, idx+1)

	if err := s.save(ctx, doc); err != nil {
		return false, err
	}

	s.logger.Info("app deleted", logger.String("id", id))
	return true, nil
}

// Tags returns the union of all tags, deduplicated, in ascending lexical order.
func (s *Store) Tags(ctx context.Context) ([]string, error) {
	doc, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	tags := make([]string, 0)
	for _, app := range doc.Apps {
		for _, tag := range app.Tags {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}
	sort.Strings(tags)
	return tags, nil
}

// Check loads the document once, for readiness probes.
func (s *Store) Check(ctx context.Context) error {
	_, err := s.load(ctx)
	return err
}

// load reads the document. A missing document is initialized to an empty
// collection; a corrupt one is logged and treated as empty.
func (s *Store) load(ctx context.Context) (*domain.Document, error) {
	doc, err := s.backend.Load(ctx)
	switch {
	case err == nil:
		if doc.Apps == nil {
			doc.Apps = []domain.App{}
		}
		return doc, nil

	case errors.Is(err, ErrDocumentMissing):
		s.logger.Info("no app document yet, initializing empty collection",
			logger.String("backend", s.backend.Name()))
		doc = domain.NewDocument()
		if err := s.save(ctx, doc); err != nil {
			return nil, err
		}
		return doc, nil

	case errors.Is(err, ErrDocumentCorrupt):
		s.logger.Warn("app document is corrupt, treating as empty",
			logger.String("backend", s.backend.Name()),
			logger.Error(err))
		return domain.NewDocument(), nil

	default:
		return nil, fmt.Errorf("%w: load from %s: %w", domain.ErrStorage, s.backend.Name(), err)
	}
}

func (s *Store) save(ctx context.Context, doc *domain.Document) error {
	if err := s.backend.Save(ctx, doc); err != nil {
		return fmt.Errorf("%w: save to %s: %w", domain.ErrStorage, s.backend.Name(), err)
	}
	return nil
}

func (s *Store) newApp(in domain.CreateInput, now time.Time) domain.App {
	return domain.App{
		ID:           s.newID(),
		Name:         in.Name,
		URL:          in.URL,
		Type:         domain.InferType(in.URL),
		Tags:         normalizeTags(in.Tags),
		Description:  in.Description,
		Icon:         in.Icon,
		IsPinned:     in.IsPinned,
		StartCommand: in.StartCommand,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// timestamp is the store clock in UTC at millisecond precision, matching ISO-8601 output.
func (s *Store) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

// touch returns a fresh updatedAt that never precedes createdAt.
func (s *Store) touch(createdAt time.Time) time.Time {
	now := s.timestamp()
	if now.Before(createdAt) {
		return createdAt
	}
	return now
}

func indexOf(apps []domain.App, id string) int {
	return slices.IndexFunc(apps, func(a domain.App) bool { return a.ID == id })
}

// normalizeTags copies tags so the document never aliases caller memory, and
// turns nil into an empty list.
func normalizeTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return slices.Clone(tags)
}

func cloneAll(apps []domain.App) []domain.App {
	out := make([]domain.App, len(apps))
	for i, a := range apps {
		out[i] = a.Clone()
	}
	return out
}
