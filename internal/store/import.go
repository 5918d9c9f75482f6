package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/MrSnakeDoc/appdeck/internal/domain"
	"github.com/MrSnakeDoc/appdeck/internal/logger"
)

// Import merges candidates into the collection, matching on URL
// case-insensitively. Only apps stored before the call can be replaced: a
// candidate repeating a URL introduced earlier in the same batch is always
// skipped. The batch is written once at the end.
func (s *Store) Import(ctx context.Context, candidates []domain.CreateInput, strategy domain.Strategy) (domain.ImportResult, error) {
	var res domain.ImportResult

	if strategy != domain.StrategySkip && strategy != domain.StrategyReplace {
		return res, &domain.ValidationError{Issues: []domain.Issue{{Field: "strategy", Message: fmt.Sprintf("unknown strategy %q", strategy)}}}
	}
	if err := domain.ValidateBatch(candidates); err != nil {
		return res, err
	}

	doc, err := s.load(ctx)
	if err != nil {
		return res, err
	}

	stored := make(map[string]struct{}, len(doc.Apps))
	for _, app := range doc.Apps {
		stored[strings.ToLower(app.URL)] = struct{}{}
	}
	added := make(map[string]struct{}, len(candidates))

	now := s.timestamp()
	for _, in := range candidates {
		key := strings.ToLower(in.URL)
		if _, dup := added[key]; dup {
			res.Skipped++
			continue
		}
		if _, dup := stored[key]; !dup {
			doc.Apps = append(doc.Apps, s.newApp(in, now))
			added[key] = struct{}{}
			res.Imported++
			continue
		}

		if strategy == domain.StrategySkip {
			res.Skipped++
			continue
		}

		// replace: only the first record carrying the URL is touched
		for i := range doc.Apps {
			if strings.ToLower(doc.Apps[i].URL) != key {
				continue
			}
			app := &doc.Apps[i]
			app.Name = in.Name
			app.Tags = normalizeTags(in.Tags)
			app.Description = in.Description
			app.Icon = in.Icon
			app.IsPinned = in.IsPinned
			app.Type = domain.InferType(in.URL)
			app.UpdatedAt = s.touch(app.CreatedAt)
			res.Imported++
			break
		}
	}

	if err := s.save(ctx, doc); err != nil {
		return domain.ImportResult{}, err
	}

	s.logger.Info("import completed",
		logger.String("strategy", string(strategy)),
		logger.Int("candidates", len(candidates)),
		logger.Int("imported", res.Imported),
		logger.Int("skipped", res.Skipped))
	return res, nil
}
