// Package controller turns launcher events into responses. It owns the add
// flow's pending title and a cached copy of the info list; it is not safe for
// concurrent use, hosts deliver one event at a time.
package controller

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/stefanclaw/infofetch/internal/config"
	"github.com/stefanclaw/infofetch/internal/info"
	"github.com/stefanclaw/infofetch/internal/result"
)

// User-facing messages.
const (
	msgFetchPrompt    = "Search for info to fetch to the clipboard..."
	msgAddPrompt      = "Add a new info item to the list..."
	msgRemovePrompt   = "Search for an info item to remove..."
	msgNoResults      = "No info items with that title found..."
	msgTitleExists    = "There's already an item with this title..."
	msgContentExists  = "There's already an item with this content..."
	msgResetTitleHint = "Or just press Enter to reset the title"
)

// State is the add flow's progress.
type State int

const (
	// Idle: no add flow in progress.
	Idle State = iota
	// AwaitingTitle: the add keyword was used, no title committed yet.
	AwaitingTitle
	// AwaitingContent: a title is pending and needs its content.
	AwaitingContent
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case AwaitingTitle:
		return "awaiting-title"
	case AwaitingContent:
		return "awaiting-content"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Store is the persistence the controller needs.
type Store interface {
	Load() ([]info.Item, error)
	Add(item info.Item) error
	Remove(item info.Item) error
}

// Searcher ranks items against a query.
type Searcher interface {
	Search(ctx context.Context, query string, items []info.Item, maxResults int) []info.Item
}

// Options configures a Controller.
type Options struct {
	Store      Store
	Searcher   Searcher
	Keywords   config.KeywordsConfig
	MaxResults int
	Logger     *slog.Logger
}

// Controller interprets keyword and item-enter events.
type Controller struct {
	store      Store
	searcher   Searcher
	keywords   config.KeywordsConfig
	maxResults int
	logger     *slog.Logger

	state        State
	pendingTitle string

	items  []info.Item
	loaded bool
}

// New creates a controller in the Idle state with an unloaded cache.
func New(opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Controller{
		store:      opts.Store,
		searcher:   opts.Searcher,
		keywords:   opts.Keywords,
		maxResults: opts.MaxResults,
		logger:     logger,
	}
}

// State returns the add flow's current state.
func (c *Controller) State() State {
	return c.state
}

// PendingTitle returns the title waiting for its content, if any.
func (c *Controller) PendingTitle() string {
	return c.pendingTitle
}

// Keywords returns the configured command keywords.
func (c *Controller) Keywords() config.KeywordsConfig {
	return c.keywords
}

// Invalidate drops the cached info list; the next event reloads it.
func (c *Controller) Invalidate() {
	c.loaded = false
}

// refresh loads the info list if it is not cached yet, or always when force
// is set.
func (c *Controller) refresh(force bool) error {
	if c.loaded && !force {
		return nil
	}
	items, err := c.store.Load()
	if err != nil {
		return fmt.Errorf("loading info list: %w", err)
	}
	c.items = items
	c.loaded = true
	c.logger.Debug("info list loaded", "items", len(items))
	return nil
}

// HandleKeyword answers a query typed after one of the configured keywords.
// It returns a nil response for keywords it does not own. The info list is
// loaded on the first event that needs it; empty-query prompts never touch the
// store or the searcher.
func (c *Controller) HandleKeyword(ctx context.Context, keyword, query string) (*result.Response, error) {
	query = strings.TrimSpace(query)
	switch keyword {
	case c.keywords.Fetch:
		return c.fetch(ctx, query)
	case c.keywords.Add:
		if c.pendingTitle == "" {
			c.state = AwaitingTitle
			return c.addTitle(query)
		}
		return c.addContent(query)
	case c.keywords.Remove:
		return c.remove(ctx, query)
	}
	return nil, nil
}

// HandleEnter runs the follow-up for an activated custom entry.
func (c *Controller) HandleEnter(ctx context.Context, data result.CustomData) (*result.Response, error) {
	switch data.Option {
	case result.OptionAddTitle:
		if strings.TrimSpace(data.Item.Title) == "" {
			return nil, fmt.Errorf("option %q needs a title", data.Option)
		}
		c.pendingTitle = data.Item.Title
		c.state = AwaitingContent
		c.logger.Debug("title pending", "title", data.Item.Title)
		return result.UserQuery(c.keywords.Add + " "), nil

	case result.OptionResetTitle:
		c.pendingTitle = ""
		c.state = AwaitingTitle
		return c.addTitle("")

	case result.OptionAddContent:
		if err := c.store.Add(data.Item); err != nil {
			return nil, fmt.Errorf("adding %q: %w", data.Item.Title, err)
		}
		c.pendingTitle = ""
		c.state = Idle
		c.logger.Info("info item added", "title", data.Item.Title)

	case result.OptionRemove:
		if err := c.store.Remove(data.Item); err != nil {
			return nil, fmt.Errorf("removing %q: %w", data.Item.Title, err)
		}
		c.logger.Info("info item removed", "title", data.Item.Title)

	default:
		return nil, fmt.Errorf("unknown option %q", data.Option)
	}

	if err := c.refresh(true); err != nil {
		return nil, err
	}
	return result.List(result.HideEntry()), nil
}

func (c *Controller) fetch(ctx context.Context, query string) (*result.Response, error) {
	if query == "" {
		return message(msgFetchPrompt, ""), nil
	}
	return c.searchInto(ctx, query, result.CopyEntry)
}

func (c *Controller) addTitle(query string) (*result.Response, error) {
	if query == "" {
		return message(msgAddPrompt, ""), nil
	}
	if err := c.refresh(false); err != nil {
		return nil, err
	}
	if info.HasTitle(c.items, query) {
		return message(msgTitleExists, ""), nil
	}
	return result.List(result.AddTitleEntry(query)), nil
}

func (c *Controller) addContent(query string) (*result.Response, error) {
	if query == "" {
		return result.List(result.ActionableMessage(
			fmt.Sprintf(`Now, add the content for "%s"`, c.pendingTitle),
			msgResetTitleHint,
		)), nil
	}
	if err := c.refresh(false); err != nil {
		return nil, err
	}
	if info.HasContent(c.items, query) {
		return message(msgContentExists, ""), nil
	}
	return result.List(result.AddContentEntry(query, c.pendingTitle)), nil
}

func (c *Controller) remove(ctx context.Context, query string) (*result.Response, error) {
	if query == "" {
		return message(msgRemovePrompt, ""), nil
	}
	return c.searchInto(ctx, query, result.RemoveEntry)
}

func (c *Controller) searchInto(ctx context.Context, query string, entry func(info.Item) result.Entry) (*result.Response, error) {
	if err := c.refresh(false); err != nil {
		return nil, err
	}
	found := c.searcher.Search(ctx, query, c.items, c.maxResults)
	if len(found) == 0 {
		return message(msgNoResults, ""), nil
	}
	entries := make([]result.Entry, 0, len(found))
	for _, it := range found {
		entries = append(entries, entry(it))
	}
	return result.List(entries...), nil
}

func message(title, description string) *result.Response {
	return result.List(result.Message(title, description))
}
