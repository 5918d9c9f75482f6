package store_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/MrSnakeDoc/appdeck/internal/domain"
	"github.com/MrSnakeDoc/appdeck/internal/logger"
	"github.com/MrSnakeDoc/appdeck/internal/store"
	"github.com/MrSnakeDoc/appdeck/internal/store/memory"
)

// countingBackend counts Save calls.
type countingBackend struct {
	*memory.Backend
	saves int
}

func (c *countingBackend) Save(ctx context.Context, doc *domain.Document) error {
	c.saves++
	return c.Backend.Save(ctx, doc)
}

func TestImportSkipLeavesExistingUnchanged(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	orig := mustCreate(t, s, domain.CreateInput{Name: "Grafana", URL: "https://grafana.example", Tags: []string{"ops"}})

	res, err := s.Import(ctx, []domain.CreateInput{
		{Name: "Other name", URL: "HTTPS://GRAFANA.EXAMPLE", Tags: []string{"new"}},
	}, domain.StrategySkip)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if diff := cmp.Diff(domain.ImportResult{Imported: 0, Skipped: 1}, res); diff != "" {
		t.Errorf("result mismatch (-want +got):\n%s", diff)
	}

	got, _ := s.Get(ctx, orig.ID)
	if diff := cmp.Diff(orig, got); diff != "" {
		t.Errorf("existing app changed (-want +got):\n%s", diff)
	}
}

func TestImportReplaceKeepsIdentity(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	orig := mustCreate(t, s, domain.CreateInput{
		Name:         "Old",
		URL:          "http://localhost:3000",
		Tags:         []string{"old"},
		StartCommand: "/opt/start.sh",
	})

	res, err := s.Import(ctx, []domain.CreateInput{{
		Name:        "New",
		URL:         "http://LOCALHOST:3000",
		Tags:        []string{"new"},
		Description: "replaced",
		Icon:        "🔥",
		IsPinned:    true,
	}}, domain.StrategyReplace)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if res.Imported != 1 || res.Skipped != 0 {
		t.Errorf("result = %+v, want 1 imported", res)
	}

	got, err := s.Get(ctx, orig.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	want := orig
	want.Name = "New"
	want.Tags = []string{"new"}
	want.Description = "replaced"
	want.Icon = "🔥"
	want.IsPinned = true
	want.Type = domain.TypeLocal
	want.UpdatedAt = got.UpdatedAt
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("replaced app mismatch (-want +got):\n%s", diff)
	}
	if !got.UpdatedAt.After(orig.UpdatedAt) {
		t.Error("updatedAt not refreshed on replace")
	}

	all, _ := s.List(ctx)
	if len(all) != 1 {
		t.Errorf("replace created a new record: %d apps", len(all))
	}
}

func TestImportReplaceTouchesOnlyFirstMatch(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	first := mustCreate(t, s, domain.CreateInput{Name: "first", URL: "https://dup.example"})
	second := mustCreate(t, s, domain.CreateInput{Name: "second", URL: "https://dup.example"})

	if _, err := s.Import(ctx, []domain.CreateInput{{Name: "replaced", URL: "https://dup.example"}}, domain.StrategyReplace); err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	if got, _ := s.Get(ctx, first.ID); got.Name != "replaced" {
		t.Errorf("first match name = %q, want replaced", got.Name)
	}
	if got, _ := s.Get(ctx, second.ID); got.Name != "second" {
		t.Errorf("second match name = %q, want untouched", got.Name)
	}
}

func TestImportDuplicatesWithinBatch(t *testing.T) {
	for _, strategy := range []domain.Strategy{domain.StrategySkip, domain.StrategyReplace} {
		t.Run(string(strategy), func(t *testing.T) {
			s, _ := newTestStore(t)
			ctx := context.Background()

			res, err := s.Import(ctx, []domain.CreateInput{
				{Name: "one", URL: "https://same.example"},
				{Name: "two", URL: "https://SAME.example"},
				{Name: "three", URL: "https://other.example"},
			}, strategy)
			if err != nil {
				t.Fatalf("Import() error = %v", err)
			}
			if diff := cmp.Diff(domain.ImportResult{Imported: 2, Skipped: 1}, res); diff != "" {
				t.Errorf("result mismatch (-want +got):\n%s", diff)
			}

			apps, _ := s.List(ctx)
			if len(apps) != 2 {
				t.Fatalf("got %d apps, want 2", len(apps))
			}
			if apps[0].Name != "one" {
				t.Errorf("surviving record = %q, want first candidate", apps[0].Name)
			}
		})
	}
}

func TestImportReplaceStoredThenDuplicate(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	orig := mustCreate(t, s, domain.CreateInput{Name: "old", URL: "https://dup.example"})

	res, err := s.Import(ctx, []domain.CreateInput{
		{Name: "first", URL: "https://dup.example"},
		{Name: "second", URL: "https://DUP.example"},
	}, domain.StrategyReplace)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	// both candidates target a stored app, so both replace it in order
	if diff := cmp.Diff(domain.ImportResult{Imported: 2}, res); diff != "" {
		t.Errorf("result mismatch (-want +got):\n%s", diff)
	}
	if got, _ := s.Get(ctx, orig.ID); got.Name != "second" {
		t.Errorf("name = %q, want last replacement", got.Name)
	}
}

func TestImportWritesOnce(t *testing.T) {
	backend := &countingBackend{Backend: memory.New()}
	s := store.New(backend, logger.Nop())
	ctx := context.Background()
	if _, err := s.List(ctx); err != nil { // initializes the document
		t.Fatalf("List() error = %v", err)
	}
	backend.saves = 0

	batch := make([]domain.CreateInput, 0, 10)
	for i := range 10 {
		batch = append(batch, domain.CreateInput{Name: "app", URL: "https://app.example/" + string(rune('a'+i))})
	}
	if _, err := s.Import(ctx, batch, domain.StrategySkip); err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if backend.saves != 1 {
		t.Errorf("Save called %d times, want 1", backend.saves)
	}
}

func TestImportRejectsInvalidBatchBeforeMutation(t *testing.T) {
	s, backend := newTestStore(t)
	mustCreate(t, s, domain.CreateInput{Name: "keep", URL: "https://keep.example"})
	before := backend.Raw()

	_, err := s.Import(context.Background(), []domain.CreateInput{
		{Name: "fine", URL: "https://fine.example"},
		{Name: "", URL: "bad"},
	}, domain.StrategySkip)
	if !domain.IsValidation(err) {
		t.Fatalf("Import() error = %v, want validation error", err)
	}
	if string(before) != string(backend.Raw()) {
		t.Error("document changed after rejected batch")
	}
}

func TestImportUnknownStrategy(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.Import(context.Background(), nil, domain.Strategy("merge"))
	if !domain.IsValidation(err) {
		t.Errorf("Import() error = %v, want validation error", err)
	}
}
