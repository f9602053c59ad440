// Package tui implements the interactive terminal UI: a URL input with
// playback options, the play history, a log view, and a status line. A
// one-second tick drives the playback liveness poll.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ytplay/internal/config"
	"ytplay/internal/history"
	"ytplay/internal/logging"
	"ytplay/internal/player"
	"ytplay/internal/title"
	"ytplay/internal/updater"
	"ytplay/internal/validate"
)

// pollInterval is the cadence of the playback liveness check.
const pollInterval = time.Second

// visibleLogLines bounds the log panel height.
const visibleLogLines = 6

// Panel identifies which panel has keyboard focus.
type Panel int

const (
	PanelInput Panel = iota
	PanelHistory
)

// App bundles the collaborators the UI drives. Everything is constructed
// by the caller; the UI holds no globals.
type App struct {
	Config  *config.Config
	Store   *history.Store
	Player  *player.Controller
	Client  *http.Client
	Log     *slog.Logger
	Tail    *logging.Tail
	Version string
}

// Run starts the interactive UI and blocks until the user quits.
func Run(app *App) error {
	p := tea.NewProgram(newModel(app), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Model is the bubbletea model for the player UI.
type Model struct {
	app    *App
	width  int
	height int

	focused    Panel
	urlInput   textinput.Model
	fullscreen bool
	loop       bool

	status     player.Status
	statusText string
	recent     []history.Played
	cursor     int

	lastError   string
	errorExpiry time.Time

	quitting bool
}

func newModel(app *App) Model {
	ti := textinput.New()
	ti.Placeholder = "https://www.youtube.com/watch?v=..."
	ti.CharLimit = 500
	ti.Width = 60
	ti.Focus()

	return Model{
		app:        app,
		urlInput:   ti,
		status:     player.StatusIdle,
		statusText: "Ready",
		recent:     app.Store.Recent(),
	}
}

// Messages
type tickMsg time.Time
type updaterDoneMsg struct{}
type titleFetchedMsg struct {
	url   string
	title string
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// checkUpdates runs the yt-dlp self-update off the UI loop. Outcomes land
// in the log panel only.
func (m Model) checkUpdates() tea.Cmd {
	return func() tea.Msg {
		updater.Run(context.Background(), m.app.Config.YTDLPPath, m.app.Log)
		return updaterDoneMsg{}
	}
}

// fetchTitle resolves the real watch-page title in the background.
func (m Model) fetchTitle(url string) tea.Cmd {
	return func() tea.Msg {
		t, err := title.Fetch(m.app.Client, url)
		if err != nil {
			m.app.Log.Debug("fetching title", "url", url, "error", err)
			return nil
		}
		return titleFetchedMsg{url: url, title: t}
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.tick(), m.checkUpdates())
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.urlInput.Width = max(20, m.width-10)
		return m, nil

	case tickMsg:
		if time.Now().After(m.errorExpiry) {
			m.lastError = ""
		}
		switch m.app.Player.Poll() {
		case player.StatusCompleted:
			m.status = player.StatusIdle
			m.statusText = "Ready"
		case player.StatusRunning:
			m.status = player.StatusRunning
		default:
			m.status = player.StatusIdle
		}
		return m, m.tick()

	case titleFetchedMsg:
		if err := m.app.Store.SetTitle(msg.url, msg.title); err != nil {
			m.app.Log.Warn("saving history", "error", err)
		}
		m.recent = m.app.Store.Recent()
		return m, nil

	case updaterDoneMsg:
		return m, nil
	}

	if m.focused == PanelInput {
		var cmd tea.Cmd
		m.urlInput, cmd = m.urlInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.app.Player.Stop()
		m.quitting = true
		return m, tea.Quit

	case "tab", "shift+tab":
		if m.focused == PanelInput {
			m.focused = PanelHistory
			m.urlInput.Blur()
			if m.cursor >= len(m.recent) {
				m.cursor = 0
			}
		} else {
			m.focused = PanelInput
			m.urlInput.Focus()
		}
		return m, nil

	case "ctrl+f":
		m.fullscreen = !m.fullscreen
		return m, nil

	case "ctrl+r":
		m.loop = !m.loop
		return m, nil

	case "ctrl+s":
		return m.stop(), nil

	case "esc":
		if m.app.Player.Running() {
			return m.stop(), nil
		}
		return m, nil
	}

	if m.focused == PanelHistory {
		return m.handleHistoryKey(msg)
	}

	switch msg.String() {
	case "enter":
		return m.play()

	case "ctrl+v":
		text, err := clipboard.ReadAll()
		if err != nil {
			m.app.Log.Warn("reading clipboard", "error", err)
			return m.withError("failed to paste from clipboard"), nil
		}
		m.urlInput.SetValue(strings.TrimSpace(text))
		m.urlInput.CursorEnd()
		m.app.Log.Info("URL pasted from clipboard")
		return m, nil
	}

	var cmd tea.Cmd
	m.urlInput, cmd = m.urlInput.Update(msg)
	return m, cmd
}

func (m Model) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.app.Player.Stop()
		m.quitting = true
		return m, tea.Quit

	case "j", "down":
		if m.cursor < len(m.recent)-1 {
			m.cursor++
		}

	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}

	case "enter":
		if m.cursor < len(m.recent) {
			m.urlInput.SetValue(m.recent[m.cursor].URL)
			m.urlInput.CursorEnd()
			m.focused = PanelInput
			m.urlInput.Focus()
			m.app.Log.Info("selected URL from history")
		}

	case "c":
		if err := m.app.Store.Clear(); err != nil {
			m.app.Log.Warn("clearing history", "error", err)
		} else {
			m.app.Log.Info("history cleared")
		}
		m.recent = m.app.Store.Recent()
		m.cursor = 0
	}
	return m, nil
}

// play validates the input URL, launches the player, and records history.
// Validation and spawn errors surface in the status line; everything else
// is log-only.
func (m Model) play() (Model, tea.Cmd) {
	url := strings.TrimSpace(m.urlInput.Value())

	if url == "" {
		m.app.Log.Warn("attempted to play with empty URL")
		return m.withError("please enter a URL"), nil
	}
	if !validate.IsValid(url) {
		m.app.Log.Warn("invalid YouTube URL format", "url", url)
		return m.withError("invalid YouTube URL format"), nil
	}

	opts := player.Options{Fullscreen: m.fullscreen, Loop: m.loop}
	if err := m.app.Player.Play(url, opts); err != nil {
		m.app.Log.Error("playback error", "error", err)
		return m.withError(err.Error()), nil
	}

	if err := m.app.Store.Record(url, validate.DisplayTitle(url)); err != nil {
		m.app.Log.Warn("saving history", "error", err)
	}
	m.recent = m.app.Store.Recent()
	m.status = player.StatusRunning
	m.statusText = "Playing video..."
	return m, m.fetchTitle(url)
}

func (m Model) stop() Model {
	m.app.Player.Stop()
	m.status = player.StatusIdle
	m.statusText = "Ready"
	return m
}

func (m Model) withError(text string) Model {
	m.lastError = text
	m.errorExpiry = time.Now().Add(5 * time.Second)
	return m
}

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}

	header := titleStyle.Render("YouTube Player") + mutedStyle.Render("  "+m.app.Version)

	inner := max(20, m.width-6)

	options := lipgloss.JoinHorizontal(lipgloss.Top,
		checkbox("fullscreen (ctrl+f)", m.fullscreen),
		"   ",
		checkbox("loop (ctrl+r)", m.loop),
	)
	inputPanel := panel(m.focused == PanelInput).Width(inner).Render(
		panelTitle("Video URL", m.focused == PanelInput) + "\n" +
			m.urlInput.View() + "\n" +
			options,
	)

	historyPanel := panel(m.focused == PanelHistory).Width(inner).Render(
		panelTitle("History", m.focused == PanelHistory) + "\n" +
			m.renderHistory(inner),
	)

	logPanel := panelStyle.Width(inner).Render(
		labelStyle.Render(" Log ") + "\n" + m.renderLog(inner),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		inputPanel,
		historyPanel,
		logPanel,
		m.renderStatusBar(),
	)
}

func (m Model) renderHistory(width int) string {
	if len(m.recent) == 0 {
		return mutedStyle.Render("no videos played yet")
	}

	var b strings.Builder
	for i, p := range m.recent {
		line := fmt.Sprintf("%s  %s", p.Title, mutedStyle.Render(
			fmt.Sprintf("(%d plays, %s)", p.PlayCount, p.Timestamp.Format("Jan 2 15:04"))))
		if m.focused == PanelHistory && i == m.cursor {
			line = selectedStyle.Render("> ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(truncate(line, width) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderLog(width int) string {
	lines := m.app.Tail.Lines()
	if len(lines) > visibleLogLines {
		lines = lines[len(lines)-visibleLogLines:]
	}
	if len(lines) == 0 {
		return mutedStyle.Render("-")
	}
	for i, l := range lines {
		lines[i] = mutedStyle.Render(truncate(l, width))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderStatusBar() string {
	status := m.statusText
	style := mutedStyle
	if m.status == player.StatusRunning {
		style = playingStyle
	}
	if m.lastError != "" {
		status = "Error: " + m.lastError
		style = errorStyle
	}

	hints := labelStyle.Render("enter:play  ctrl+s:stop  ctrl+v:paste  tab:history  ctrl+c:quit")
	return lipgloss.NewStyle().Width(m.width).Padding(0, 1).Render(
		style.Render(status) + "  " + hints,
	)
}

func truncate(s string, width int) string {
	if width <= 3 || lipgloss.Width(s) <= width {
		return s
	}
	// Cheap rune-based cut; styled sequences are short enough in practice.
	r := []rune(s)
	if len(r) <= width-3 {
		return s
	}
	return string(r[:width-3]) + "..."
}
