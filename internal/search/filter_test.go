package search

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestFuzzy_RanksMatches(t *testing.T) {
	titles := []string{"Work email", "Phone", "Home email", "Passport"}

	got, err := Fuzzy{}.Filter(context.Background(), titles, "email")
	if err != nil {
		t.Fatalf("Filter() error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %v, want the two email titles", got)
	}
	for _, title := range got {
		if !strings.Contains(title, "email") {
			t.Errorf("unexpected match %q", title)
		}
	}
}

func TestFuzzy_NoMatch(t *testing.T) {
	got, err := Fuzzy{}.Filter(context.Background(), []string{"Alice", "Bob"}, "zzz")
	if err != nil {
		t.Fatalf("Filter() error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %v, want no matches", got)
	}
}

func TestFuzzy_EmptyQueryKeepsEverything(t *testing.T) {
	titles := []string{"Carol", "Alice", "Bob"}

	got, err := Fuzzy{}.Filter(context.Background(), titles, "")
	if err != nil {
		t.Fatalf("Filter() error: %v", err)
	}
	if strings.Join(got, ",") != "Carol,Alice,Bob" {
		t.Errorf("got %v, want storage order", got)
	}
}

// writeStub creates an executable shell script standing in for fzf.
func writeStub(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs need a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "fzf")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFzf_ReadsOutputLines(t *testing.T) {
	// Echo the arguments, then reverse the input: proves the query is passed
	// through --filter and the corpus arrives on stdin.
	stub := writeStub(t, `echo "$1=$2"; sort -r`)

	f := &Fzf{Path: stub}
	got, err := f.Filter(context.Background(), []string{"Alice", "Bob", "Carol"}, "al")
	if err != nil {
		t.Fatalf("Filter() error: %v", err)
	}
	want := []string{"--filter=al", "Carol", "Bob", "Alice"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("Filter() = %v, want %v", got, want)
	}
}

func TestFzf_NonZeroExitIsError(t *testing.T) {
	stub := writeStub(t, `exit 1`)

	f := &Fzf{Path: stub}
	if _, err := f.Filter(context.Background(), []string{"Alice"}, "zzz"); err == nil {
		t.Error("Filter() should fail when fzf exits non-zero")
	}
}

func TestFzf_MissingBinary(t *testing.T) {
	f := &Fzf{Path: filepath.Join(t.TempDir(), "no-such-fzf")}
	if _, err := f.Filter(context.Background(), []string{"Alice"}, "a"); err == nil {
		t.Error("Filter() should fail when the binary is missing")
	}
}

func TestNewFilter(t *testing.T) {
	f, err := NewFilter(KindFuzzy, "")
	if err != nil {
		t.Fatalf("NewFilter(fuzzy) error: %v", err)
	}
	if _, ok := f.(Fuzzy); !ok {
		t.Errorf("NewFilter(fuzzy) = %T, want Fuzzy", f)
	}

	f, err = NewFilter(KindFzf, "/opt/fzf")
	if err != nil {
		t.Fatalf("NewFilter(fzf) error: %v", err)
	}
	if fz, ok := f.(*Fzf); !ok || fz.Path != "/opt/fzf" {
		t.Errorf("NewFilter(fzf) = %#v, want *Fzf with path /opt/fzf", f)
	}

	f, err = NewFilter(KindAuto, filepath.Join(t.TempDir(), "missing-fzf"))
	if err != nil {
		t.Fatalf("NewFilter(auto) error: %v", err)
	}
	if _, ok := f.(Fuzzy); !ok {
		t.Errorf("NewFilter(auto) without fzf = %T, want Fuzzy", f)
	}

	if _, err := NewFilter("grep", ""); err == nil {
		t.Error("NewFilter(grep) should fail")
	}
}
