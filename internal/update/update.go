// Package update checks GitHub releases for a newer infofetch and replaces the
// running binary on request.
package update

import (
	"context"
	"fmt"
	"runtime"

	"github.com/Masterminds/semver/v3"
	"github.com/creativeprojects/go-selfupdate"
)

// Repo is the GitHub slug releases are published under.
const Repo = "stefanclaw/infofetch"

// Result holds the outcome of an update check or apply.
type Result struct {
	CurrentVersion  string
	LatestVersion   string
	UpdateAvailable bool
	Applied         bool
}

func (r *Result) String() string {
	switch {
	case r.Applied:
		return fmt.Sprintf("updated %s -> %s", r.CurrentVersion, r.LatestVersion)
	case r.UpdateAvailable:
		return fmt.Sprintf("update available: %s -> %s", r.CurrentVersion, r.LatestVersion)
	}
	return fmt.Sprintf("%s is the latest version", r.CurrentVersion)
}

func newUpdater() (*selfupdate.Updater, error) {
	source, err := selfupdate.NewGitHubSource(selfupdate.GitHubConfig{})
	if err != nil {
		return nil, fmt.Errorf("creating github source: %w", err)
	}
	updater, err := selfupdate.NewUpdater(selfupdate.Config{
		Source: source,
		OS:     runtime.GOOS,
		Arch:   runtime.GOARCH,
	})
	if err != nil {
		return nil, fmt.Errorf("creating updater: %w", err)
	}
	return updater, nil
}

// Newer reports whether latest should replace current. A current version that
// is not semver (such as "dev") is always replaced.
func Newer(latest, current string) bool {
	cur, err := semver.NewVersion(current)
	if err != nil {
		return true
	}
	lat, err := semver.NewVersion(latest)
	if err != nil {
		return false
	}
	return lat.GreaterThan(cur)
}

// detect finds the latest release once so Check and Apply act on the same
// one.
func detect(ctx context.Context) (*selfupdate.Updater, *selfupdate.Release, bool, error) {
	updater, err := newUpdater()
	if err != nil {
		return nil, nil, false, err
	}
	latest, found, err := updater.DetectLatest(ctx, selfupdate.ParseSlug(Repo))
	if err != nil {
		return nil, nil, false, fmt.Errorf("checking for updates: %w", err)
	}
	return updater, latest, found, nil
}

// newResult compares a detected release version against the running one. An
// empty latest means no release was found.
func newResult(current, latest string) *Result {
	res := &Result{CurrentVersion: current, LatestVersion: latest}
	if latest != "" {
		res.UpdateAvailable = Newer(latest, current)
	}
	return res
}

func releaseVersion(rel *selfupdate.Release, found bool) string {
	if !found || rel == nil {
		return ""
	}
	return rel.Version()
}

// Check reports whether a newer release exists without downloading it.
func Check(ctx context.Context, currentVersion string) (*Result, error) {
	_, latest, found, err := detect(ctx)
	if err != nil {
		return nil, err
	}
	return newResult(currentVersion, releaseVersion(latest, found)), nil
}

// Apply installs the latest release over the current executable when it is
// newer.
func Apply(ctx context.Context, currentVersion string) (*Result, error) {
	updater, latest, found, err := detect(ctx)
	if err != nil {
		return nil, err
	}
	res := newResult(currentVersion, releaseVersion(latest, found))
	if !res.UpdateAvailable {
		return res, nil
	}

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return nil, fmt.Errorf("finding executable path: %w", err)
	}
	if err := updater.UpdateTo(ctx, latest, exe); err != nil {
		return nil, fmt.Errorf("applying update: %w", err)
	}

	res.Applied = true
	return res, nil
}
