package wizard

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tessro/deck/internal/core"
	"github.com/tessro/deck/internal/format"
)

// TrackModel is the bubbletea model for the start-track picker.
type TrackModel struct {
	playlist *core.Playlist
	cursor   int
	selected *core.Track
	width    int
	height   int
}

// Styles for track picker
var (
	trackTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	trackItemStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	trackSelectedStyle = lipgloss.NewStyle().
				PaddingLeft(2).
				Background(lipgloss.Color("237"))

	trackMetaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

// NewTrackModel creates a new track picker model.
func NewTrackModel(playlist *core.Playlist) TrackModel {
	return TrackModel{
		playlist: playlist,
		width:    80,
		height:   20,
	}
}

// Init initializes the model.
func (m TrackModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m TrackModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	last := m.playlist.Len() - 1

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			return m, tea.Quit

		case "enter", " ":
			if t := m.playlist.At(m.cursor); t != nil {
				m.selected = t
				return m, tea.Quit
			}

		case "up", "k", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}

		case "down", "j", "ctrl+n":
			if m.cursor < last {
				m.cursor++
			}

		case "home", "g":
			m.cursor = 0

		case "end", "G":
			m.cursor = max(last, 0)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, nil
}

// View renders the model.
func (m TrackModel) View() string {
	var b strings.Builder

	b.WriteString(trackTitleStyle.Render("🎵 Start From"))
	b.WriteString("\n\n")

	if m.playlist.IsEmpty() {
		b.WriteString(trackMetaStyle.Render("Playlist is empty"))
		b.WriteString("\n")
	} else {
		visible := max(m.height-6, 1)
		offset := max(m.cursor-visible+1, 0)
		end := min(offset+visible, m.playlist.Len())

		for i := offset; i < end; i++ {
			track := m.playlist.At(i)

			var line strings.Builder
			line.WriteString(track.DisplayTitle())
			if track.Author != "" {
				line.WriteString(trackMetaStyle.Render(" - " + track.Author))
			}
			if track.Duration > 0 {
				line.WriteString(trackMetaStyle.Render(" (" + format.Clock(track.Duration) + ")"))
			}

			if i == m.cursor {
				b.WriteString(trackSelectedStyle.Render("▸ " + line.String()))
			} else {
				b.WriteString(trackItemStyle.Render("  " + line.String()))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(trackMetaStyle.Render("↑/↓ navigate • enter select • esc quit"))

	return b.String()
}

// Selected returns the selected track, or nil if none.
func (m TrackModel) Selected() *core.Track {
	return m.selected
}

// RunTrackPicker runs the picker and returns the selected track.
func RunTrackPicker(playlist *core.Playlist) (*core.Track, error) {
	model := NewTrackModel(playlist)
	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}
	return finalModel.(TrackModel).Selected(), nil
}
