// Package onboard runs the first-run setup that writes the config file.
package onboard

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/stefanclaw/infofetch/internal/config"
)

// Result holds the outcome of the onboarding flow.
type Result struct {
	Config config.Config
	// FzfFound reports whether the fzf binary resolved on PATH.
	FzfFound bool
}

// Runner encapsulates onboarding dependencies for testability.
type Runner struct {
	Stdin    io.Reader
	Stdout   io.Writer
	LookPath func(file string) (string, error)
}

// NewRunner creates a Runner with default stdin/stdout.
func NewRunner() *Runner {
	return &Runner{
		Stdin:    os.Stdin,
		Stdout:   os.Stdout,
		LookPath: exec.LookPath,
	}
}

// Run executes the first-run onboarding flow.
func (r *Runner) Run() (*Result, error) {
	w := r.Stdout
	scanner := bufio.NewScanner(r.Stdin)
	ask := func(question, def string) string {
		fmt.Fprintf(w, "  %s [%s] ", question, def)
		if scanner.Scan() {
			if answer := strings.TrimSpace(scanner.Text()); answer != "" {
				return answer
			}
		}
		return def
	}

	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  Welcome to infofetch!")
	fmt.Fprintln(w, "  Keep short bits of info at hand and copy them by title.")
	fmt.Fprintln(w, "")

	cfg := config.Defaults()

	// Step 1: Check fzf
	fmt.Fprint(w, "  Checking for fzf... ")
	lookPath := r.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	path, err := lookPath(cfg.Search.FzfPath)
	fzfFound := err == nil
	if fzfFound {
		fmt.Fprintf(w, "found at %s.\n", path)
	} else {
		fmt.Fprintln(w, "not found.")
		fmt.Fprintln(w, "  Titles will be matched with the built-in fuzzy filter.")
		fmt.Fprintln(w, "  Install fzf later and infofetch will pick it up.")
	}
	fmt.Fprintln(w, "")

	// Step 2: Keywords
	fmt.Fprintln(w, "  Pick the keywords you type before a query.")
	cfg.Keywords.Fetch = ask("Keyword to fetch info?", cfg.Keywords.Fetch)
	cfg.Keywords.Add = ask("Keyword to add info?", cfg.Keywords.Add)
	cfg.Keywords.Remove = ask("Keyword to remove info?", cfg.Keywords.Remove)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid keywords: %w", err)
	}

	// Step 3: Result count
	maxResults := ask("How many results to show?", strconv.Itoa(cfg.Search.MaxResults))
	n, err := strconv.Atoi(maxResults)
	if err != nil || n <= 0 {
		return nil, fmt.Errorf("invalid result count %q", maxResults)
	}
	cfg.Search.MaxResults = n

	// Step 4: Data file
	if dataFile := ask("Where should the info list live?", cfg.DataFile()); dataFile != cfg.DataFile() {
		cfg.Store.Path = dataFile
	}

	// Step 5: Save config
	fmt.Fprint(w, "  Saving config... ")
	if err := config.Save(cfg); err != nil {
		fmt.Fprintln(w, "failed.")
		return nil, fmt.Errorf("saving config: %w", err)
	}
	fmt.Fprintln(w, "done.")
	fmt.Fprintf(w, "  Config: %s\n", config.ConfigFile())
	fmt.Fprintln(w, "")
	fmt.Fprintf(w, "  Setup complete! Type %q followed by a title to add your first item.\n", cfg.Keywords.Add)

	return &Result{Config: cfg, FzfFound: fzfFound}, nil
}
