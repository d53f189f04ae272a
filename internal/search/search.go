package search

import (
	"context"
	"log/slog"
	"time"

	"github.com/stefanclaw/infofetch/internal/info"
)

// DefaultTimeout bounds a single filter run.
const DefaultTimeout = 5 * time.Second

// Engine maps a filter's ranked titles back onto stored items.
type Engine struct {
	filter  Filter
	timeout time.Duration
	logger  *slog.Logger
}

// NewEngine creates an engine around filter. A non-positive timeout falls back
// to DefaultTimeout; a nil logger discards output.
func NewEngine(filter Filter, timeout time.Duration, logger *slog.Logger) *Engine {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{filter: filter, timeout: timeout, logger: logger}
}

// Search returns up to maxResults items whose titles match query, in the
// filter's order. It returns nil when there is nothing to search, when the
// filter fails, or when nothing matches. maxResults <= 0 means no limit.
func (e *Engine) Search(ctx context.Context, query string, items []info.Item, maxResults int) []info.Item {
	if len(items) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	titles, err := e.filter.Filter(ctx, info.Titles(items), query)
	if err != nil {
		e.logger.Debug("fuzzy filter failed", "query", query, "err", err)
		return nil
	}
	if len(titles) == 0 {
		return nil
	}

	return pick(items, titles, maxResults)
}

// pick resolves each ranked title to the first stored item with that title.
// Repeated titles and titles with no stored item are skipped.
func pick(items []info.Item, ranked []string, maxResults int) []info.Item {
	byTitle := make(map[string]info.Item, len(items))
	for _, it := range items {
		if _, ok := byTitle[it.Title]; !ok {
			byTitle[it.Title] = it
		}
	}

	seen := make(map[string]bool, len(ranked))
	var out []info.Item
	for _, title := range ranked {
		if maxResults > 0 && len(out) >= maxResults {
			break
		}
		if seen[title] {
			continue
		}
		it, ok := byTitle[title]
		if !ok {
			continue
		}
		seen[title] = true
		out = append(out, it)
	}
	return out
}
