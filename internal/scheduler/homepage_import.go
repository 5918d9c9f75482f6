package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MrSnakeDoc/appdeck/internal/domain"
	"github.com/MrSnakeDoc/appdeck/internal/logger"
	"github.com/MrSnakeDoc/appdeck/internal/sources/homepage"
)

// Importer merges candidates into the app collection.
type Importer interface {
	Import(ctx context.Context, candidates []domain.CreateInput, strategy domain.Strategy) (domain.ImportResult, error)
}

// RunStatus describes the last homepage import.
type RunStatus struct {
	At     time.Time           `json:"at"`
	Result domain.ImportResult `json:"result"`
	Error  string              `json:"error,omitempty"`
}

// HomepageImporter periodically imports Homepage services and bookmarks.
// Existing apps are never overwritten: the import always uses the skip
// strategy, so edits made in the dashboard survive.
type HomepageImporter struct {
	source        homepage.Source
	importer      Importer
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	stopOnce      sync.Once
	manualTrigger chan struct{}
	watchDebounce time.Duration

	mu   sync.RWMutex
	last *RunStatus
}

// NewHomepageImporter creates a new homepage importer. manualTrigger may be
// nil when reloads are only periodic.
func NewHomepageImporter(
	source homepage.Source,
	importer Importer,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *HomepageImporter {
	return &HomepageImporter{
		source:        source,
		importer:      importer,
		logger:        log.Named("homepage"),
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// WatchFiles makes Start also import whenever a configured file changes.
// Bursts of writes closer than debounce count as one change.
func (hi *HomepageImporter) WatchFiles(debounce time.Duration) *HomepageImporter {
	hi.watchDebounce = debounce
	return hi
}

// Start runs a first import synchronously, then keeps importing on every
// tick, manual trigger or watched file change until Stop is called or ctx is
// done. A failed first import or watcher setup is logged, not returned: the
// dashboard stays usable.
func (hi *HomepageImporter) Start(ctx context.Context) {
	if err := hi.Run(ctx); err != nil {
		hi.logger.Warn("initial homepage import failed", logger.Error(err))
	}

	loopCtx, cancel := context.WithCancel(ctx)
	var changes <-chan struct{}
	if hi.watchDebounce > 0 {
		ch, err := watchFiles(loopCtx, []string{hi.source.ServicesFile, hi.source.BookmarksFile}, hi.watchDebounce, hi.logger)
		if err != nil {
			hi.logger.Warn("homepage file watch disabled", logger.Error(err))
		} else {
			changes = ch
		}
	}

	ticker := time.NewTicker(hi.interval)
	go func() {
		defer cancel()
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				hi.runLogged(loopCtx)
			case <-hi.manualTrigger:
				hi.logger.Info("manual homepage import triggered")
				hi.runLogged(loopCtx)
			case <-changes:
				hi.logger.Info("homepage config changed, importing")
				hi.runLogged(loopCtx)
			case <-hi.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the periodic import. It is safe to call more than once.
func (hi *HomepageImporter) Stop() {
	hi.stopOnce.Do(func() { close(hi.stopCh) })
}

func (hi *HomepageImporter) runLogged(ctx context.Context) {
	if err := hi.Run(ctx); err != nil {
		hi.logger.Error("homepage import failed", logger.Error(err))
	}
}

// Run performs one import and records its outcome.
func (hi *HomepageImporter) Run(ctx context.Context) error {
	status := RunStatus{At: time.Now().UTC()}
	res, err := hi.run(ctx)
	status.Result = res
	if err != nil {
		status.Error = err.Error()
	}

	hi.mu.Lock()
	hi.last = &status
	hi.mu.Unlock()

	return err
}

func (hi *HomepageImporter) run(ctx context.Context) (domain.ImportResult, error) {
	candidates, err := hi.source.Candidates()
	if err != nil {
		return domain.ImportResult{}, fmt.Errorf("failed to read homepage config: %w", err)
	}

	hi.logger.Info("loaded homepage entries", logger.Int("count", len(candidates)))
	if len(candidates) == 0 {
		return domain.ImportResult{}, nil
	}

	res, err := hi.importer.Import(ctx, candidates, domain.StrategySkip)
	if err != nil {
		return domain.ImportResult{}, fmt.Errorf("failed to import homepage entries: %w", err)
	}

	hi.logger.Info("homepage import done",
		logger.Int("imported", res.Imported),
		logger.Int("skipped", res.Skipped))
	return res, nil
}

// LastRun returns the outcome of the latest import, or nil before the first one.
func (hi *HomepageImporter) LastRun() *RunStatus {
	hi.mu.RLock()
	defer hi.mu.RUnlock()

	if hi.last == nil {
		return nil
	}
	cp := *hi.last
	return &cp
}
