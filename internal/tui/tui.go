package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/stefanclaw/infofetch/internal/channel"
	"github.com/stefanclaw/infofetch/internal/controller"
	"github.com/stefanclaw/infofetch/internal/result"
	"github.com/stefanclaw/infofetch/internal/update"
)

// Options configures the TUI.
type Options struct {
	Controller *controller.Controller
	// DataFile is watched for outside edits when Watch is set.
	DataFile string
	Watch    bool
	Version  string
	// Clipboard receives copied content. Defaults to the system clipboard.
	Clipboard func(string) error
	Logger    *slog.Logger
}

// DataChangedMsg signals that the info list changed on disk.
type DataChangedMsg struct{}

// WatchStartedMsg carries a running data file watcher.
type WatchStartedMsg struct {
	Changes <-chan struct{}
	Closer  io.Closer
}

// WatchErrMsg reports a watcher that could not start.
type WatchErrMsg struct {
	Err error
}

// UpdateCheckMsg carries the result of a background update check.
type UpdateCheckMsg struct {
	Result *update.Result
	Err    error
}

// Model is the Bubble Tea model for the launcher.
type Model struct {
	options Options
	ctrl    *controller.Controller
	ctx     context.Context
	copy    func(string) error
	logger  *slog.Logger

	input    textinput.Model
	lastSeen string
	entries  []result.Entry
	// hints holds the keyword each hint entry expands to; empty unless the
	// input has no known keyword.
	hints  []string
	cursor int

	status    string
	statusErr bool

	mdRenderer *glamour.TermRenderer
	showHelp   bool

	changes <-chan struct{}
	watcher io.Closer

	width    int
	height   int
	ready    bool
	quitting bool
}

// New creates a new TUI model.
func New(opts Options) Model {
	ti := textinput.New()
	ti.Placeholder = fmt.Sprintf("%s <title>", opts.Controller.Keywords().Fetch)
	ti.Prompt = inputPromptStyle.Render("> ")
	ti.CharLimit = 1024
	ti.Focus()

	renderer, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(76),
	)

	cp := opts.Clipboard
	if cp == nil {
		cp = clipboard.WriteAll
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	m := Model{
		options:    opts,
		ctrl:       opts.Controller,
		ctx:        context.Background(),
		copy:       cp,
		logger:     logger,
		input:      ti,
		mdRenderer: renderer,
	}
	m.showHints()
	return m
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.options.Watch && m.options.DataFile != "" {
		cmds = append(cmds, startWatch(m.options.DataFile))
	}
	// Background update check (only for release builds)
	if v := m.options.Version; v != "" && v != "dev" {
		cmds = append(cmds, checkForUpdate(v))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			m.status = ""
			return m, tea.Quit
		case tea.KeyUp, tea.KeyCtrlP, tea.KeyShiftTab:
			m.move(-1)
			return m, nil
		case tea.KeyDown, tea.KeyCtrlN, tea.KeyTab:
			m.move(1)
			return m, nil
		case tea.KeyEnter:
			if cmd := ParseCommand(m.input.Value()); cmd != nil {
				m.input.SetValue("")
				m.lastSeen = ""
				return m.handleCommand(cmd)
			}
			return m.activate()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case WatchStartedMsg:
		m.changes = msg.Changes
		m.watcher = msg.Closer
		m.logger.Debug("watching info list", "path", m.options.DataFile)
		return m, waitForChange(m.changes)

	case WatchErrMsg:
		m.logger.Warn("info list watcher not started", "err", msg.Err)
		return m, nil

	case DataChangedMsg:
		m.logger.Debug("info list changed on disk")
		m.ctrl.Invalidate()
		m.refresh()
		return m, waitForChange(m.changes)

	case UpdateCheckMsg:
		if msg.Err == nil && msg.Result != nil && msg.Result.UpdateAvailable {
			m.setStatus(fmt.Sprintf("Update available: v%s. Run /update or `infofetch update`.", msg.Result.LatestVersion), false)
		}
		return m, nil

	case UpdateApplyMsg:
		switch {
		case msg.Err != nil:
			m.setStatus(fmt.Sprintf("Update failed: %v", msg.Err), true)
		case msg.Result.Applied:
			m.setStatus(fmt.Sprintf("Updated to v%s. Restart infofetch to use the new version.", msg.Result.LatestVersion), false)
		default:
			m.setStatus("Already running the latest version.", false)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if v := m.input.Value(); v != m.lastSeen {
		m.lastSeen = v
		m.runQuery()
	}
	return m, cmd
}

func (m Model) View() string {
	if m.quitting {
		if m.status != "" {
			return m.renderStatus() + "\n"
		}
		return ""
	}
	if !m.ready {
		return "Initializing..."
	}

	status := StatusBar(m.ctrl.Keywords(), m.ctrl.State(), m.ctrl.PendingTitle(), m.width)
	separator := lipgloss.NewStyle().
		Foreground(secondaryColor).
		Width(m.width).
		Render(strings.Repeat("─", m.width))

	body := m.renderEntries()
	if m.showHelp {
		body = m.renderMarkdown(HelpText(m.ctrl.Keywords()))
	}

	return fmt.Sprintf("%s\n%s\n%s\n%s\n\n%s",
		status,
		m.input.View(),
		separator,
		body,
		m.renderStatus(),
	)
}

// Close releases the data file watcher.
func (m Model) Close() error {
	if m.watcher != nil {
		return m.watcher.Close()
	}
	return nil
}

// runQuery sends the current input to the controller as a keyword event.
func (m *Model) runQuery() {
	q := ParseQuery(m.input.Value())
	if q == nil {
		m.showHints()
		return
	}

	resp, err := m.ctrl.HandleKeyword(m.ctx, q.Keyword, q.Argument)
	if err != nil {
		m.logger.Error("keyword event failed", "keyword", q.Keyword, "err", err)
		m.setStatus(err.Error(), true)
		m.setEntries(nil)
		return
	}
	// A successful query supersedes the last failure.
	if m.statusErr {
		m.setStatus("", false)
	}
	if resp == nil {
		m.showHints()
		return
	}
	m.apply(resp)
}

// refresh re-runs the current query so the list reflects the info list on
// disk.
func (m *Model) refresh() {
	if ParseQuery(m.input.Value()) != nil {
		m.runQuery()
	}
}

// apply renders a controller response.
func (m *Model) apply(resp *result.Response) {
	switch resp.Kind {
	case result.SetQuery:
		m.setQuery(resp.Query)
	case result.RenderList:
		m.setEntries(resp.Entries)
	}
}

// setQuery replaces the input and queries again, as a launcher does when an
// extension rewrites the user's query.
func (m *Model) setQuery(q string) {
	m.input.SetValue(q)
	m.input.CursorEnd()
	m.lastSeen = q
	m.runQuery()
}

func (m *Model) setEntries(entries []result.Entry) {
	m.entries = entries
	m.hints = nil
	m.cursor = 0
}

// showHints lists the keywords when the input does not name one.
func (m *Model) showHints() {
	k := m.ctrl.Keywords()
	m.entries = []result.Entry{
		result.Message(k.Fetch+" <title>", "Fetch info to the clipboard"),
		result.Message(k.Add+" <title>", "Add a new info item"),
		result.Message(k.Remove+" <title>", "Remove an info item"),
	}
	m.hints = []string{k.Fetch, k.Add, k.Remove}
	m.cursor = 0
}

func (m *Model) move(delta int) {
	if len(m.entries) == 0 {
		return
	}
	m.cursor = (m.cursor + delta + len(m.entries)) % len(m.entries)
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

func (m Model) selected() (result.Entry, bool) {
	if m.cursor < 0 || m.cursor >= len(m.entries) {
		return result.Entry{}, false
	}
	return m.entries[m.cursor], true
}

func (m *Model) renderMarkdown(content string) string {
	if m.mdRenderer == nil {
		return content
	}
	rendered, err := m.mdRenderer.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimSpace(rendered)
}

func (m Model) renderEntries() string {
	var lines []string
	for i, e := range m.entries {
		if e.Kind == result.KindHide {
			continue
		}
		marker, style := "  ", nameStyle
		if i == m.cursor {
			marker, style = "> ", selectedNameStyle
		}
		line := marker + style.Render(e.Name)
		if e.Description != "" {
			line += "  " + descriptionStyle.Render(e.Description)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderStatus() string {
	if m.statusErr {
		return statusErrStyle.Render(m.status)
	}
	return statusOKStyle.Render(m.status)
}

func checkForUpdate(version string) tea.Cmd {
	return func() tea.Msg {
		res, err := update.Check(context.Background(), version)
		return UpdateCheckMsg{Result: res, Err: err}
	}
}

// Launcher runs the model as a full-screen program.
type Launcher struct {
	opts    Options
	program *tea.Program
}

var _ channel.Channel = (*Launcher)(nil)

// NewLauncher creates a launcher channel.
func NewLauncher(opts Options) *Launcher {
	return &Launcher{opts: opts}
}

func (l *Launcher) Name() string { return "tui" }

// Start runs the launcher until the user quits or ctx is cancelled.
func (l *Launcher) Start(ctx context.Context) error {
	m := New(l.opts)
	m.ctx = ctx
	l.program = tea.NewProgram(m, tea.WithContext(ctx))

	final, err := l.program.Run()
	if fm, ok := final.(Model); ok {
		fm.Close()
	}
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running launcher: %w", err)
	}
	return nil
}

// Stop asks a running launcher to quit.
func (l *Launcher) Stop() error {
	if l.program != nil {
		l.program.Quit()
	}
	return nil
}
