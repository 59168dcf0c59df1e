package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/tessro/deck/internal/core"
	"github.com/tessro/deck/internal/tui/styles"
)

// Playlist displays the loaded playlist with the current track marked
type Playlist struct {
	offset int
	// follow keeps the current track in view until the user scrolls.
	follow bool
}

// NewPlaylist creates a new Playlist component
func NewPlaylist() *Playlist {
	return &Playlist{follow: true}
}

// ScrollDown scrolls the playlist down
func (q *Playlist) ScrollDown() {
	q.follow = false
	q.offset++
}

// ScrollUp scrolls the playlist up
func (q *Playlist) ScrollUp() {
	q.follow = false
	if q.offset > 0 {
		q.offset--
	}
}

// Follow re-centers the view on the current track.
func (q *Playlist) Follow() {
	q.follow = true
}

// Render renders the playlist panel
func (q *Playlist) Render(playlist *core.Playlist, current, width, height int, focused bool) string {
	title := styles.PanelTitle("Playlist", focused)

	var content string
	if playlist.IsEmpty() {
		content = styles.Muted.Render("Playlist is empty")
	} else {
		content = q.renderPlaylist(playlist, current, width-4, height-4)
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

func (q *Playlist) renderPlaylist(playlist *core.Playlist, current, width, maxLines int) string {
	tracks := playlist.Tracks

	// Leave room for the "more" indicator
	visibleCount := maxLines - 1
	if visibleCount < 1 {
		visibleCount = 1
	}

	if q.follow {
		if current < q.offset {
			q.offset = current
		} else if current >= q.offset+visibleCount {
			q.offset = current - visibleCount + 1
		}
	}
	if q.offset >= len(tracks) {
		q.offset = len(tracks) - 1
	}
	if q.offset < 0 {
		q.offset = 0
	}

	start := q.offset
	end := min(start+visibleCount, len(tracks))

	lines := make([]string, 0, end-start+1)

	// Fixed overhead: "XX. " (4) + "▶ " or "  " (2) + " — " (3) = 9 chars
	const overhead = 9
	available := width - overhead

	for i := start; i < end; i++ {
		track := tracks[i]
		num := fmt.Sprintf("%2d.", i+1)
		title, author := fit(track.DisplayTitle(), track.Author, available)

		var line string
		if i == current {
			line = styles.Playing.Render(fmt.Sprintf("%s ▶ %s — %s", num, title, author))
		} else {
			line = fmt.Sprintf("%s   %s — %s",
				styles.Dim.Render(num),
				title,
				styles.Muted.Render(author))
		}

		lines = append(lines, line)
	}

	if end < len(tracks) {
		more := styles.Dim.Render(fmt.Sprintf("    ... and %d more", len(tracks)-end))
		lines = append(lines, more)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// fit truncates title and author to share available cells, giving the
// author at least a third.
func fit(title, author string, available int) (string, string) {
	titleLen := ansi.StringWidth(title)
	authorLen := ansi.StringWidth(author)
	if titleLen+authorLen <= available {
		return title, author
	}

	minAuthor := max(available/3, 8)
	if minAuthor > available-8 {
		minAuthor = available - 8
	}
	authorSpace := min(minAuthor, authorLen)
	titleSpace := available - authorSpace

	return truncate(title, titleSpace), truncate(author, authorSpace)
}

func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	return ansi.Truncate(s, n, "…")
}
