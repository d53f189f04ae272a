// Package host speaks a JSON-lines protocol on a reader/writer pair so an
// external launcher can drive the controller. Each input line is one event and
// gets exactly one reply line.
package host

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/stefanclaw/infofetch/internal/channel"
	"github.com/stefanclaw/infofetch/internal/result"
)

// Event names accepted on input.
const (
	EventKeyword   = "keyword"
	EventItemEnter = "item_enter"
)

const maxLine = 1 << 20

// Handler answers launcher events. *controller.Controller satisfies it.
type Handler interface {
	HandleKeyword(ctx context.Context, keyword, query string) (*result.Response, error)
	HandleEnter(ctx context.Context, data result.CustomData) (*result.Response, error)
}

// Event is one input line.
type Event struct {
	Event    string             `json:"event"`
	Keyword  string             `json:"keyword,omitempty"`
	Argument string             `json:"argument,omitempty"`
	Data     *result.CustomData `json:"data,omitempty"`
}

type errorReply struct {
	Error string `json:"error"`
}

type noneReply struct {
	Kind string `json:"kind"`
}

// Host serves events from in and writes replies to out.
type Host struct {
	handler Handler
	in      io.Reader
	out     io.Writer
	logger  *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
}

var _ channel.Channel = (*Host)(nil)

// New creates a host. A nil logger discards output.
func New(handler Handler, in io.Reader, out io.Writer, logger *slog.Logger) *Host {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Host{handler: handler, in: in, out: out, logger: logger}
}

func (h *Host) Name() string { return "stdio" }

// Start processes events until the input ends, ctx is cancelled, or Stop is
// called. Events are handled one at a time, in order.
func (h *Host) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	h.mu.Lock()
	h.cancel = cancel
	h.mu.Unlock()
	defer cancel()

	lines := make(chan []byte)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(h.in)
		sc.Buffer(make([]byte, 0, 64*1024), maxLine)
		for sc.Scan() {
			line := append([]byte(nil), sc.Bytes()...)
			select {
			case lines <- line:
			case <-ctx.Done():
				return
			}
		}
		scanErr <- sc.Err()
	}()

	enc := json.NewEncoder(h.out)
	enc.SetEscapeHTML(false)
	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					if err != nil {
						return fmt.Errorf("reading events: %w", err)
					}
				default:
				}
				return nil
			}
			if len(bytes.TrimSpace(line)) == 0 {
				continue
			}
			if err := enc.Encode(h.handle(ctx, line)); err != nil {
				return fmt.Errorf("writing reply: %w", err)
			}
		}
	}
}

// Stop ends a running Start.
func (h *Host) Stop() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cancel != nil {
		h.cancel()
	}
	return nil
}

// handle turns one input line into its reply.
func (h *Host) handle(ctx context.Context, line []byte) any {
	var ev Event
	if err := json.Unmarshal(line, &ev); err != nil {
		h.logger.Warn("malformed event", "err", err)
		return errorReply{Error: fmt.Sprintf("malformed event: %v", err)}
	}

	var (
		resp *result.Response
		err  error
	)
	switch ev.Event {
	case EventKeyword:
		h.logger.Debug("keyword event", "keyword", ev.Keyword, "argument", ev.Argument)
		resp, err = h.handler.HandleKeyword(ctx, ev.Keyword, ev.Argument)
	case EventItemEnter:
		if ev.Data == nil {
			return errorReply{Error: "item_enter event without data"}
		}
		h.logger.Debug("item enter event", "option", ev.Data.Option)
		resp, err = h.handler.HandleEnter(ctx, *ev.Data)
	default:
		return errorReply{Error: fmt.Sprintf("unknown event %q", ev.Event)}
	}

	if err != nil {
		h.logger.Error("event failed", "event", ev.Event, "err", err)
		return errorReply{Error: err.Error()}
	}
	if resp == nil {
		return noneReply{Kind: "none"}
	}
	return resp
}
