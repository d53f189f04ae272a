package host

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stefanclaw/infofetch/internal/config"
	"github.com/stefanclaw/infofetch/internal/controller"
	"github.com/stefanclaw/infofetch/internal/info"
	"github.com/stefanclaw/infofetch/internal/result"
	"github.com/stefanclaw/infofetch/internal/search"
)

type reply struct {
	Kind    string         `json:"kind"`
	Entries []result.Entry `json:"entries"`
	Query   string         `json:"query"`
	Error   string         `json:"error"`
}

func serve(t *testing.T, h Handler, input string) []reply {
	t.Helper()
	var out bytes.Buffer
	if err := New(h, strings.NewReader(input), &out, nil).Start(context.Background()); err != nil {
		t.Fatalf("Start() error: %v", err)
	}

	var replies []reply
	sc := bufio.NewScanner(&out)
	for sc.Scan() {
		var r reply
		if err := json.Unmarshal(sc.Bytes(), &r); err != nil {
			t.Fatalf("reply %q is not JSON: %v", sc.Text(), err)
		}
		replies = append(replies, r)
	}
	return replies
}

func newController(t *testing.T) (*controller.Controller, *info.Store) {
	t.Helper()
	store := info.NewStore(filepath.Join(t.TempDir(), info.FileName))
	return controller.New(controller.Options{
		Store:      store,
		Searcher:   search.NewEngine(search.Fuzzy{}, time.Second, nil),
		Keywords:   config.Defaults().Keywords,
		MaxResults: 8,
	}), store
}

func TestRoundTrip(t *testing.T) {
	c, store := newController(t)

	input := strings.Join([]string{
		`{"event":"keyword","keyword":"fa","argument":"Work email"}`,
		`{"event":"item_enter","data":{"option":"add_title","item":{"title":"Work email","content":""}}}`,
		`{"event":"keyword","keyword":"fa","argument":"me@work.com"}`,
		`{"event":"item_enter","data":{"option":"add_content","item":{"title":"Work email","content":"me@work.com"}}}`,
		`{"event":"keyword","keyword":"fi","argument":"work"}`,
	}, "\n")

	replies := serve(t, c, input)
	if len(replies) != 5 {
		t.Fatalf("got %d replies, want 5", len(replies))
	}

	if r := replies[0]; r.Kind != "render_list" || r.Entries[0].Kind != result.KindAddTitle {
		t.Errorf("reply[0] = %+v, want add-title list", r)
	}
	if r := replies[1]; r.Kind != "set_query" || r.Query != "fa " {
		t.Errorf("reply[1] = %+v, want set_query \"fa \"", r)
	}
	if r := replies[2]; r.Entries[0].Kind != result.KindAddContent {
		t.Errorf("reply[2] = %+v, want add-content entry", r)
	}
	if r := replies[3]; r.Entries[0].Kind != result.KindHide {
		t.Errorf("reply[3] = %+v, want hide entry", r)
	}
	r := replies[4]
	if len(r.Entries) != 1 || r.Entries[0].OnEnter.Text != "me@work.com" || r.Entries[0].Icon != result.IconEmail {
		t.Errorf("reply[4] = %+v, want copy of me@work.com", r)
	}

	items, err := store.Load()
	if err != nil || len(items) != 1 {
		t.Errorf("stored items = %+v (err %v), want one", items, err)
	}
}

func TestUnknownKeywordAnswersNone(t *testing.T) {
	c, _ := newController(t)
	replies := serve(t, c, `{"event":"keyword","keyword":"zz","argument":"x"}`+"\n")
	if len(replies) != 1 || replies[0].Kind != "none" {
		t.Errorf("replies = %+v, want one none reply", replies)
	}
}

func TestBadInput(t *testing.T) {
	c, _ := newController(t)
	input := strings.Join([]string{
		`not json`,
		``,
		`{"event":"explode"}`,
		`{"event":"item_enter"}`,
		`{"event":"keyword","keyword":"fi","argument":""}`,
	}, "\n")

	replies := serve(t, c, input)
	if len(replies) != 4 {
		t.Fatalf("got %d replies, want 4 (blank lines are skipped)", len(replies))
	}
	for i := 0; i < 3; i++ {
		if replies[i].Error == "" {
			t.Errorf("reply[%d] = %+v, want error", i, replies[i])
		}
	}
	if replies[3].Entries[0].Name != "Search for info to fetch to the clipboard..." {
		t.Errorf("reply[3] = %+v, want fetch prompt", replies[3])
	}
}

type failingHandler struct{}

func (failingHandler) HandleKeyword(context.Context, string, string) (*result.Response, error) {
	return nil, errors.New("disk on fire")
}

func (failingHandler) HandleEnter(context.Context, result.CustomData) (*result.Response, error) {
	return nil, errors.New("disk on fire")
}

func TestHandlerErrorReply(t *testing.T) {
	replies := serve(t, failingHandler{}, `{"event":"keyword","keyword":"fi","argument":"a"}`+"\n")
	if len(replies) != 1 || replies[0].Error != "disk on fire" {
		t.Errorf("replies = %+v, want disk on fire error", replies)
	}
}

func TestStop(t *testing.T) {
	c, _ := newController(t)
	pr, pw := io.Pipe()
	defer pw.Close()

	h := New(c, pr, io.Discard, nil)
	done := make(chan error, 1)
	go func() { done <- h.Start(context.Background()) }()

	// Wait until Start has installed its cancel func.
	for i := 0; i < 100; i++ {
		h.mu.Lock()
		ready := h.cancel != nil
		h.mu.Unlock()
		if ready {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	h.Stop()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Start() error = %v, want nil", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not return after Stop")
	}
}

func TestName(t *testing.T) {
	if got := New(nil, nil, nil, nil).Name(); got != "stdio" {
		t.Errorf("Name() = %q, want stdio", got)
	}
}
