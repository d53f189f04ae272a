package search

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Filter ranks titles against a query and returns the matching titles,
// best match first.
type Filter interface {
	Filter(ctx context.Context, titles []string, query string) ([]string, error)
}

// Filter kinds accepted by NewFilter.
const (
	KindAuto  = "auto"
	KindFzf   = "fzf"
	KindFuzzy = "fuzzy"
)

// NewFilter builds the filter named by kind. "auto" uses fzf when fzfPath
// resolves to an executable and the built-in matcher otherwise.
func NewFilter(kind, fzfPath string) (Filter, error) {
	if fzfPath == "" {
		fzfPath = "fzf"
	}
	switch strings.ToLower(kind) {
	case "", KindAuto:
		if path, err := exec.LookPath(fzfPath); err == nil {
			return &Fzf{Path: path}, nil
		}
		return Fuzzy{}, nil
	case KindFzf:
		return &Fzf{Path: fzfPath}, nil
	case KindFuzzy:
		return Fuzzy{}, nil
	}
	return nil, fmt.Errorf("unknown search filter %q (want auto, fzf or fuzzy)", kind)
}

// Fzf delegates ranking to `fzf --filter`.
type Fzf struct {
	Path string
}

// Filter pipes the titles into fzf and returns its output lines. fzf exits
// non-zero when nothing matches; that is reported as an error like any other
// failure.
func (f *Fzf) Filter(ctx context.Context, titles []string, query string) ([]string, error) {
	cmd := exec.CommandContext(ctx, f.Path, "--filter", query)
	cmd.Stdin = strings.NewReader(strings.Join(titles, "\n"))

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("running %s: %w: %s", f.Path, err, msg)
		}
		return nil, fmt.Errorf("running %s: %w", f.Path, err)
	}

	var lines []string
	for _, line := range strings.Split(strings.TrimRight(string(out), "\n"), "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}

// Fuzzy ranks titles in-process. An empty query keeps every title in storage
// order, the same thing `fzf --filter ""` does.
type Fuzzy struct{}

func (Fuzzy) Filter(_ context.Context, titles []string, query string) ([]string, error) {
	if query == "" {
		return append([]string(nil), titles...), nil
	}

	matches := fuzzy.Find(query, titles)
	ranked := make([]string, 0, len(matches))
	for _, m := range matches {
		ranked = append(ranked, m.Str)
	}
	return ranked, nil
}
