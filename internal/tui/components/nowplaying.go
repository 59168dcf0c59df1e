package components

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/tessro/deck/internal/core"
	"github.com/tessro/deck/internal/format"
	"github.com/tessro/deck/internal/tui/styles"
)

// PlayerView is everything the controls panel renders.
type PlayerView struct {
	Snapshot     core.Snapshot
	Availability core.TransportAvailability
	PlaylistLen  int
	Scrubbing    bool
	SkipEnabled  bool
	SkipSeconds  float64
}

// NowPlaying displays the current track and its transport controls
type NowPlaying struct {
	theme  styles.Theme
	digits format.Digits
}

// NewNowPlaying creates a new NowPlaying component
func NewNowPlaying(theme styles.Theme, digits format.Digits) *NowPlaying {
	return &NowPlaying{theme: theme, digits: digits}
}

// Render renders the controls panel
func (n *NowPlaying) Render(v PlayerView, width, height int, focused bool) string {
	title := styles.PanelTitle("Now Playing", focused)

	var content string
	if !v.Snapshot.HasTrack() {
		content = styles.Muted.Render("No track loaded")
	} else {
		content = n.renderTrack(v, width-4)
	}

	panel := styles.Panel(focused).
		Width(width).
		Height(height)

	return panel.Render(lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		content,
	))
}

func (n *NowPlaying) renderTrack(v PlayerView, width int) string {
	snap := v.Snapshot
	track := snap.Track

	thumb := n.theme.Thumbnail.Render(thumbnailLabel(track.Thumbnail))
	textWidth := width - lipgloss.Width(thumb) - 2
	if textWidth < 10 {
		textWidth = 10
	}

	position := n.digits.Localize(format.Position(track.Index, v.PlaylistLen))
	info := lipgloss.JoinVertical(lipgloss.Left,
		styles.StatusIcon(snap.IsPlaying)+" "+n.theme.Title.Render(ansi.Truncate(track.DisplayTitle(), textWidth-2, "…")),
		"  "+n.theme.Author.Render(ansi.Truncate(track.Author, textWidth-2, "…")),
		"  "+styles.Dim.Render(position),
	)
	header := lipgloss.JoinHorizontal(lipgloss.Top, thumb, "  ", info)

	elapsed := n.theme.Time.Render(n.digits.Localize(format.Clock(snap.CurrentTime)))
	total := n.theme.Time.Render(n.digits.Localize(format.Clock(snap.Duration)))
	barWidth := width - lipgloss.Width(elapsed) - lipgloss.Width(total) - 2
	if barWidth < 10 {
		barWidth = 10
	}
	progress := fmt.Sprintf("%s %s %s", elapsed, n.theme.ScrubBar(snap.ProgressPercent(), barWidth), total)

	scrub := ""
	if v.Scrubbing {
		scrub = styles.Highlight.Render("scrubbing: enter to seek, esc to cancel")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		progress,
		scrub,
		n.renderControls(v, width),
	)
}

func (n *NowPlaying) renderControls(v PlayerView, width int) string {
	var buttons []string

	skip := n.digits.Localize(fmt.Sprintf("%g", v.SkipSeconds))
	if v.SkipEnabled {
		buttons = append(buttons, n.theme.Button("⏪"+skip, true))
	}

	buttons = append(buttons, n.theme.Button("⏮", v.Availability.HasPrevious))
	if v.Snapshot.IsPlaying {
		buttons = append(buttons, n.theme.Button("⏸", true))
	} else {
		buttons = append(buttons, n.theme.Button("▶", true))
	}
	buttons = append(buttons, n.theme.Button("⏭", v.Availability.HasNext))

	if v.SkipEnabled {
		buttons = append(buttons, n.theme.Button(skip+"⏩", true))
	}

	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "   "))
}

// thumbnailLabel describes the artwork in place of the image itself.
func thumbnailLabel(t core.Thumbnail) string {
	switch {
	case t.IsZero():
		return "♪"
	case t.IsRemote():
		if u, err := url.Parse(t.Ref); err == nil {
			return "⇣ " + u.Host
		}
		return "⇣"
	default:
		return "🖼 " + filepath.Base(t.Ref)
	}
}
