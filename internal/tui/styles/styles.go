package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tessro/deck/internal/config"
)

// Colors - a pleasant color palette
var (
	// Primary colors
	Primary = lipgloss.Color("#7C3AED") // Purple
	Accent  = lipgloss.Color("#F59E0B") // Amber

	// Status colors
	Success = lipgloss.Color("#10B981") // Green
	Warning = lipgloss.Color("#F59E0B") // Amber
	Error   = lipgloss.Color("#EF4444") // Red

	// Neutral colors
	Border    = lipgloss.Color("#4B5563") // Light gray
	Text      = lipgloss.Color("#F9FAFB") // White
	TextMuted = lipgloss.Color("#9CA3AF") // Gray
	TextDim   = lipgloss.Color("#6B7280") // Darker gray
)

// Text styles
var (
	Label = lipgloss.NewStyle().
		Foreground(TextDim)

	Highlight = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary)

	Muted = lipgloss.NewStyle().
		Foreground(TextMuted)

	Dim = lipgloss.NewStyle().
		Foreground(TextDim)

	Playing = lipgloss.NewStyle().
		Foreground(Success)

	Paused = lipgloss.NewStyle().
		Foreground(Warning)

	Failure = lipgloss.NewStyle().
		Foreground(Error)
)

// Border styles
var (
	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border)

	FocusedBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary)
)

// Theme holds the styles that come from the user's configuration.
type Theme struct {
	Title          lipgloss.Style
	Author         lipgloss.Style
	Time           lipgloss.Style
	ActiveButton   lipgloss.Style
	InactiveButton lipgloss.Style
	MinimumTrack   lipgloss.Style
	MaximumTrack   lipgloss.Style
	Thumb          lipgloss.Style
	Thumbnail      lipgloss.Style
}

// NewTheme builds a Theme from cfg. cfg is expected to have defaults
// applied.
func NewTheme(cfg *config.Config) Theme {
	fg := func(c string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
	}
	return Theme{
		Title:          fg(cfg.Style.TitleColor).Bold(cfg.Style.TitleBold),
		Author:         fg(cfg.Style.AuthorColor),
		Time:           fg(cfg.Style.TimeColor),
		ActiveButton:   fg(cfg.Colors.ActiveButtonColor()).Bold(true),
		InactiveButton: fg(cfg.Colors.InactiveButtonColor()),
		MinimumTrack:   fg(cfg.Slider.MinimumTrack),
		MaximumTrack:   fg(cfg.Slider.MaximumTrack),
		Thumb:          fg(cfg.Slider.Thumb),
		Thumbnail: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color(cfg.Colors.Inactive)).
			Width(cfg.Thumbnail.Width).
			Height(cfg.Thumbnail.Height).
			Align(lipgloss.Center, lipgloss.Center),
	}
}

// Button renders a transport button in its active or inactive tint.
func (t Theme) Button(label string, enabled bool) string {
	if enabled {
		return t.ActiveButton.Render(label)
	}
	return t.InactiveButton.Render(label)
}

// ScrubBar renders a slider with the elapsed part in the minimum-track
// tint, the rest in the maximum-track tint and a thumb at the position.
func (t Theme) ScrubBar(percent float64, width int) string {
	if width < 1 {
		return ""
	}
	pos := int(percent / 100 * float64(width-1))
	if pos > width-1 {
		pos = width - 1
	}
	if pos < 0 {
		pos = 0
	}

	return t.MinimumTrack.Render(strings.Repeat("━", pos)) +
		t.Thumb.Render("●") +
		t.MaximumTrack.Render(strings.Repeat("─", width-1-pos))
}

// Panel creates a styled panel with optional focus
func Panel(focused bool) lipgloss.Style {
	if focused {
		return FocusedBorder.Padding(0, 1)
	}
	return BorderStyle.Padding(0, 1)
}

// PanelTitle creates a styled panel title
func PanelTitle(title string, focused bool) string {
	style := Label
	if focused {
		style = Highlight
	}
	return style.Render(" " + title + " ")
}

// StatusIcon returns an icon for playback status
func StatusIcon(playing bool) string {
	if playing {
		return Playing.Render("▶")
	}
	return Paused.Render("⏸")
}
