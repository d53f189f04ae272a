package tui

import (
	"fmt"
	"io"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

// watchFile reports changes to path. The parent directory is watched so a
// file that is replaced or created later is still seen. Bursts of events
// collapse into one pending signal.
func watchFile(path string) (<-chan struct{}, io.Closer, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, fmt.Errorf("creating watcher: %w", err)
	}
	dir := filepath.Dir(path)
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, nil, fmt.Errorf("watching %s: %w", dir, err)
	}

	name := filepath.Clean(path)
	changes := make(chan struct{}, 1)
	go func() {
		defer close(changes)
		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != name {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				select {
				case changes <- struct{}{}:
				default:
				}
			case _, ok := <-w.Errors:
				if !ok {
					return
				}
			}
		}
	}()
	return changes, w, nil
}

func startWatch(path string) tea.Cmd {
	return func() tea.Msg {
		ch, closer, err := watchFile(path)
		if err != nil {
			return WatchErrMsg{Err: err}
		}
		return WatchStartedMsg{Changes: ch, Closer: closer}
	}
}

// waitForChange blocks until the next change signal.
func waitForChange(ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return DataChangedMsg{}
	}
}
