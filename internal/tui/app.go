package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tessro/deck/internal/config"
	"github.com/tessro/deck/internal/controls"
	"github.com/tessro/deck/internal/core"
	"github.com/tessro/deck/internal/engine"
	deckerrors "github.com/tessro/deck/internal/errors"
	"github.com/tessro/deck/internal/format"
	"github.com/tessro/deck/internal/tail"
	"github.com/tessro/deck/internal/tui/components"
	"github.com/tessro/deck/internal/tui/styles"
)

// Panel represents which panel is focused
type Panel int

const (
	PanelControls Panel = iota
	PanelPlaylist
	PanelEvents
	panelCount
)

// errorTTL is how long an error stays in the status bar.
const errorTTL = 5 * time.Second

// App holds the playback objects behind the UI. They are only touched from
// the bubbletea update loop.
type App struct {
	clock    *engine.Clock
	controls *controls.Controls
	watcher  *tail.Watcher
	playlist *core.Playlist
	cfg      *config.Config
	refresh  time.Duration
}

// NewApp wires a virtual-clock engine, a control surface and an event
// watcher, then loads the track at start.
func NewApp(playlist *core.Playlist, start int, cfg *config.Config) (*App, error) {
	refresh := time.Duration(cfg.TUI.RefreshInterval) * time.Millisecond
	if refresh <= 0 {
		refresh = time.Duration(config.Default().TUI.RefreshInterval) * time.Millisecond
	}

	clock := engine.NewClock()
	ctl := controls.New(clock, controls.WithConfig(cfg.Controls))
	watcher := tail.NewWatcher(ctl.Reconciler(), tail.WithSeekJump(max(2.5, 2*refresh.Seconds())))

	if err := clock.Load(playlist, start); err != nil {
		watcher.Close()
		ctl.Close()
		return nil, err
	}

	return &App{
		clock:    clock,
		controls: ctl,
		watcher:  watcher,
		playlist: playlist,
		cfg:      cfg,
		refresh:  refresh,
	}, nil
}

// Close detaches the watcher and the control surface from the engine.
func (a *App) Close() {
	a.watcher.Close()
	a.controls.Close()
}

// Model is the main TUI model
type Model struct {
	app          *App
	width        int
	height       int
	focusedPanel Panel

	keys      keyMap
	help      help.Model
	formatter *tail.Formatter

	// Components
	nowPlaying   *components.NowPlaying
	playlistView *components.Playlist
	eventLog     *components.EventLog

	// Error handling
	lastError   error
	errorExpiry time.Time

	quitting bool
}

// NewModel creates a new TUI model
func NewModel(app *App) Model {
	digits := format.DigitsForLanguage(app.cfg.Locale.Language)
	m := Model{
		app:          app,
		focusedPanel: PanelControls,
		keys:         newKeyMap(app.controls.Dispatcher().SkipEnabled()),
		help:         help.New(),
		formatter: tail.NewFormatter(
			tail.WithPlaylistSize(app.playlist.Len()),
			tail.WithDigits(digits),
		),
		nowPlaying:   components.NewNowPlaying(styles.NewTheme(app.cfg), digits),
		playlistView: components.NewPlaylist(),
		eventLog:     components.NewEventLog(),
	}
	m.drainEvents()
	return m
}

// Messages
type tickMsg time.Time

// Commands
func (m Model) tick() tea.Cmd {
	return tea.Tick(m.app.refresh, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		model, cmd := m.handleKeyPress(msg)
		model.drainEvents()
		return model, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		if time.Now().After(m.errorExpiry) {
			m.lastError = nil
		}
		m.app.clock.Advance(m.app.refresh)
		m.drainEvents()
		return m, m.tick()
	}

	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (Model, tea.Cmd) {
	ctl := m.app.controls

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case m.help.ShowAll && msg.String() == "esc":
		m.help.ShowAll = false

	case key.Matches(msg, m.keys.Tab):
		m.focusedPanel = (m.focusedPanel + 1) % panelCount

	case key.Matches(msg, m.keys.PlayPause):
		ctl.TogglePlayPause()

	case key.Matches(msg, m.keys.Next):
		m.setError(ctl.Next())
		m.playlistView.Follow()

	case key.Matches(msg, m.keys.Prev):
		m.setError(ctl.Previous())
		m.playlistView.Follow()

	case key.Matches(msg, m.keys.SkipBack):
		m.setError(ctl.SkipBackward())

	case key.Matches(msg, m.keys.SkipFwd):
		m.setError(ctl.SkipForward())

	case key.Matches(msg, m.keys.ScrubBack):
		m.scrub(-1)

	case key.Matches(msg, m.keys.ScrubFwd):
		m.scrub(1)

	case key.Matches(msg, m.keys.Commit):
		if target, ok := ctl.Reconciler().ScrubTarget(); ok {
			ctl.ReleaseScrub(target)
		}

	case key.Matches(msg, m.keys.Cancel):
		if ctl.Reconciler().Scrubbing() {
			ctl.CancelScrub()
		} else {
			m.playlistView.Follow()
		}

	case key.Matches(msg, m.keys.Up):
		if m.focusedPanel == PanelPlaylist {
			m.playlistView.ScrollUp()
		}

	case key.Matches(msg, m.keys.Down):
		if m.focusedPanel == PanelPlaylist {
			m.playlistView.ScrollDown()
		}
	}

	return m, nil
}

// scrub moves the scrub handle one step, starting a gesture if needed.
func (m Model) scrub(direction float64) {
	ctl := m.app.controls
	snap := ctl.Snapshot()
	if !snap.HasTrack() {
		return
	}

	target, ok := ctl.Reconciler().ScrubTarget()
	if !ok {
		target = snap.CurrentTime
	}
	step := max(snap.Duration/50, 1)
	ctl.Scrub(target + direction*step)
}

func (m *Model) setError(err error) {
	if err == nil {
		return
	}
	m.lastError = err
	m.errorExpiry = time.Now().Add(errorTTL)
}

// drainEvents moves buffered watcher events into the event log.
func (m *Model) drainEvents() {
	for {
		select {
		case e, ok := <-m.app.watcher.Events():
			if !ok {
				return
			}
			failed := e.Type == tail.EventEngineError
			if failed {
				m.setError(e.Err)
			}
			m.eventLog.Add(components.LogEntry{
				Text:   m.formatter.Format(e),
				At:     e.Timestamp,
				Failed: failed,
			})
		default:
			return
		}
	}
}

// View renders the UI
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.width == 0 {
		return "Loading..."
	}

	if m.help.ShowAll {
		return m.renderHelp()
	}

	// Left: controls (top), playlist (bottom). Right: event log.
	leftWidth := m.width * 60 / 100
	rightWidth := m.width - leftWidth - 2
	bodyHeight := m.height - 1
	topHeight := max(bodyHeight*55/100, 14)
	bottomHeight := bodyHeight - topHeight - 2

	ctl := m.app.controls
	disp := ctl.Dispatcher()
	view := components.PlayerView{
		Snapshot:     ctl.Snapshot(),
		Availability: ctl.Availability(),
		PlaylistLen:  m.app.playlist.Len(),
		Scrubbing:    ctl.Reconciler().Scrubbing(),
		SkipEnabled:  disp.SkipEnabled(),
		SkipSeconds:  disp.SkipInterval(),
	}

	current := -1
	if view.Snapshot.HasTrack() {
		current = view.Snapshot.Track.Index
	}

	nowPlaying := m.nowPlaying.Render(view, leftWidth-2, topHeight-2, m.focusedPanel == PanelControls)
	playlistView := m.playlistView.Render(m.app.playlist, current, leftWidth-2, bottomHeight-2, m.focusedPanel == PanelPlaylist)
	eventLog := m.eventLog.Render(rightWidth-2, bodyHeight-2, m.focusedPanel == PanelEvents)

	leftCol := lipgloss.JoinVertical(lipgloss.Left, nowPlaying, playlistView)
	main := lipgloss.JoinHorizontal(lipgloss.Top, leftCol, eventLog)

	return lipgloss.JoinVertical(lipgloss.Left, main, m.renderStatusBar())
}

func (m Model) renderStatusBar() string {
	status := m.help.View(m.keys)

	if m.lastError != nil {
		text := "Error: " + m.lastError.Error()
		if s := deckerrors.GetSuggestion(m.lastError); s != "" {
			text += " (" + s + ")"
		}
		status = styles.Paused.Render(text)
	}

	return lipgloss.NewStyle().
		Width(m.width).
		Padding(0, 1).
		Render(status)
}

func (m Model) renderHelp() string {
	title := styles.Highlight.Render("Deck - Keyboard Shortcuts")
	body := lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		m.help.View(m.keys),
		"",
		styles.Dim.Render("Press ? or Esc to close"),
	)

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(styles.BorderStyle.Padding(1, 2).Render(body))
}

// Run starts the TUI application
func Run(playlist *core.Playlist, start int, cfg *config.Config) error {
	app, err := NewApp(playlist, start, cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	p := tea.NewProgram(NewModel(app), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
