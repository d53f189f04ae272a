package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/stefanclaw/infofetch/internal/result"
	"github.com/stefanclaw/infofetch/internal/update"
)

// UpdateApplyMsg carries the result of an update apply.
type UpdateApplyMsg struct {
	Result *update.Result
	Err    error
}

type commandHandler func(m Model, args string) (tea.Model, tea.Cmd)

var commands = map[string]commandHandler{
	"help":   handleHelp,
	"quit":   handleQuit,
	"exit":   handleQuit,
	"reload": handleReload,
	"update": handleUpdate,
}

func (m Model) handleCommand(cmd *Command) (tea.Model, tea.Cmd) {
	h, ok := commands[cmd.Name]
	if !ok {
		m.setStatus(fmt.Sprintf("Unknown command: /%s. Type /help for a list.", cmd.Name), true)
		m.showHints()
		return m, nil
	}
	return h(m, cmd.Args)
}

func handleQuit(m Model, args string) (tea.Model, tea.Cmd) {
	m.quitting = true
	m.status = ""
	return m, tea.Quit
}

func handleHelp(m Model, args string) (tea.Model, tea.Cmd) {
	m.showHelp = !m.showHelp
	m.showHints()
	return m, nil
}

func handleReload(m Model, args string) (tea.Model, tea.Cmd) {
	m.ctrl.Invalidate()
	m.showHints()
	m.setStatus("Info list will be re-read on the next search.", false)
	return m, nil
}

func handleUpdate(m Model, args string) (tea.Model, tea.Cmd) {
	m.showHints()
	version := m.options.Version
	if version == "" || version == "dev" {
		m.setStatus("Development build, self-update is disabled.", true)
		return m, nil
	}
	m.setStatus("Checking for updates...", false)
	return m, func() tea.Msg {
		res, err := update.Apply(context.Background(), version)
		return UpdateApplyMsg{Result: res, Err: err}
	}
}

// activate runs the selected entry's action the way a launcher host does:
// copy writes the clipboard, custom goes back to the controller, hide closes.
// Any action that does not keep the launcher open quits it.
func (m Model) activate() (tea.Model, tea.Cmd) {
	e, ok := m.selected()
	if !ok {
		return m, nil
	}
	m.showHelp = false

	if m.hints != nil {
		m.setQuery(m.hints[m.cursor] + " ")
		return m, nil
	}

	action := e.OnEnter
	switch action.Behavior {
	case result.DoNothing:
		return m, nil

	case result.Copy:
		if err := m.copy(action.Text); err != nil {
			m.logger.Error("clipboard write failed", "err", err)
			m.setStatus(fmt.Sprintf("Copy failed: %v", err), true)
			return m, nil
		}
		m.logger.Info("copied info item", "title", e.Name)
		m.setStatus(fmt.Sprintf("Copied %q to the clipboard.", e.Name), false)

	case result.Custom:
		if action.Data == nil {
			return m, nil
		}
		resp, err := m.ctrl.HandleEnter(m.ctx, *action.Data)
		if err != nil {
			m.logger.Error("item enter failed", "option", action.Data.Option, "err", err)
			m.setStatus(err.Error(), true)
			return m, nil
		}
		m.setStatus(doneMessage(*action.Data), false)
		m.apply(resp)

	case result.Hide:
	}

	if action.KeepOpen {
		return m, nil
	}
	m.quitting = true
	return m, tea.Quit
}

func doneMessage(data result.CustomData) string {
	switch data.Option {
	case result.OptionAddContent:
		return fmt.Sprintf("Added %q.", data.Item.Title)
	case result.OptionRemove:
		return fmt.Sprintf("Removed %q.", data.Item.Title)
	}
	return ""
}
