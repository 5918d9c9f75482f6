package scheduler

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/MrSnakeDoc/appdeck/internal/domain"
	"github.com/MrSnakeDoc/appdeck/internal/logger"
	"github.com/MrSnakeDoc/appdeck/internal/sources/homepage"
)

type fakeImporter struct {
	mu       sync.Mutex
	calls    int
	strategy domain.Strategy
	batch    []domain.CreateInput
	err      error
}

func (f *fakeImporter) Import(_ context.Context, candidates []domain.CreateInput, strategy domain.Strategy) (domain.ImportResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.strategy = strategy
	f.batch = candidates
	if f.err != nil {
		return domain.ImportResult{}, f.err
	}
	return domain.ImportResult{Imported: len(candidates)}, nil
}

func (f *fakeImporter) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func servicesFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "services.yaml")
	content := `---
- Media:
    - Jellyfin:
        href: https://jellyfin.lan
    - Sonarr:
        href: http://localhost:8989
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunImportsWithSkip(t *testing.T) {
	imp := &fakeImporter{}
	hi := NewHomepageImporter(homepage.Source{ServicesFile: servicesFile(t)}, imp, logger.Nop(), time.Hour, nil)

	if hi.LastRun() != nil {
		t.Fatal("LastRun() set before any run")
	}
	if err := hi.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if imp.strategy != domain.StrategySkip {
		t.Errorf("strategy = %q, want skip", imp.strategy)
	}
	if len(imp.batch) != 2 {
		t.Errorf("batch size = %d, want 2", len(imp.batch))
	}
	last := hi.LastRun()
	if last == nil || last.Result.Imported != 2 || last.Error != "" {
		t.Errorf("LastRun() = %+v", last)
	}
}

func TestRunRecordsFailure(t *testing.T) {
	imp := &fakeImporter{err: errors.New("disk full")}
	hi := NewHomepageImporter(homepage.Source{ServicesFile: servicesFile(t)}, imp, logger.Nop(), time.Hour, nil)

	if err := hi.Run(context.Background()); err == nil {
		t.Fatal("Run() error = nil, want failure")
	}
	if last := hi.LastRun(); last == nil || last.Error == "" {
		t.Errorf("LastRun() = %+v, want recorded error", last)
	}
}

func TestRunMissingFile(t *testing.T) {
	imp := &fakeImporter{}
	hi := NewHomepageImporter(homepage.Source{ServicesFile: "/nonexistent/services.yaml"}, imp, logger.Nop(), time.Hour, nil)

	if err := hi.Run(context.Background()); err == nil {
		t.Error("Run() error = nil, want read failure")
	}
	if imp.Calls() != 0 {
		t.Error("Import called despite unreadable config")
	}
}

func TestManualTrigger(t *testing.T) {
	imp := &fakeImporter{}
	trigger := make(chan struct{}, 1)
	hi := NewHomepageImporter(homepage.Source{ServicesFile: servicesFile(t)}, imp, logger.Nop(), time.Hour, trigger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	hi.Start(ctx)
	defer hi.Stop()

	if imp.Calls() != 1 {
		t.Fatalf("calls after Start = %d, want 1", imp.Calls())
	}

	trigger <- struct{}{}
	deadline := time.Now().Add(2 * time.Second)
	for imp.Calls() < 2 {
		if time.Now().After(deadline) {
			t.Fatal("manual trigger did not run an import")
		}
		time.Sleep(10 * time.Millisecond)
	}

	hi.Stop() // second Stop must not panic
}

func TestWatchFilesImportsOnChange(t *testing.T) {
	imp := &fakeImporter{}
	path := servicesFile(t)
	hi := NewHomepageImporter(homepage.Source{ServicesFile: path}, imp, logger.Nop(), time.Hour, nil).
		WatchFiles(20 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	hi.Start(ctx)
	defer hi.Stop()

	// unrelated files in the same directory are ignored
	if err := os.WriteFile(filepath.Join(filepath.Dir(path), "widgets.yaml"), []byte("[]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	time.Sleep(200 * time.Millisecond)
	if imp.Calls() != 1 {
		t.Fatalf("calls after unrelated write = %d, want 1", imp.Calls())
	}

	content := "---\n- Media:\n    - Plex:\n        href: https://plex.lan\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	deadline := time.Now().Add(2 * time.Second)
	for imp.Calls() < 2 {
		if time.Now().After(deadline) {
			t.Fatal("file change did not run an import")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestWatchFilesMissingDirectory(t *testing.T) {
	_, err := watchFiles(context.Background(), []string{"/nonexistent/dir/services.yaml"}, time.Millisecond, logger.Nop())
	if err == nil {
		t.Error("watchFiles() error = nil for a missing directory")
	}
}
