package components

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/tessro/deck/internal/tui/styles"
)

// maxLogEntries bounds the event log.
const maxLogEntries = 50

// LogEntry is one line of the event log
type LogEntry struct {
	Text   string
	At     time.Time
	Failed bool
}

// EventLog displays recent playback events, newest first
type EventLog struct {
	entries []LogEntry
}

// NewEventLog creates a new EventLog component
func NewEventLog() *EventLog {
	return &EventLog{}
}

// Add records an entry at the top of the log.
func (h *EventLog) Add(e LogEntry) {
	h.entries = append([]LogEntry{e}, h.entries...)
	if len(h.entries) > maxLogEntries {
		h.entries = h.entries[:maxLogEntries]
	}
}

// Entries returns the logged entries, newest first.
func (h *EventLog) Entries() []LogEntry {
	return h.entries
}

// Render renders the event log panel
func (h *EventLog) Render(width, height int, focused bool) string {
	title := styles.PanelTitle("Events", focused)

	var content string
	if len(h.entries) == 0 {
		content = styles.Muted.Render("No events yet")
	} else {
		content = h.renderEntries(width-4, height-4)
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

func (h *EventLog) renderEntries(width, maxLines int) string {
	lines := make([]string, 0, maxLines)
	now := time.Now()

	for i, entry := range h.entries {
		if i >= maxLines {
			break
		}

		timeAgo := formatTimeAgo(now, entry.At)
		timeWidth := len(timeAgo)

		text := truncate(entry.Text, width-timeWidth-1)
		padding := max(width-ansi.StringWidth(text)-timeWidth, 1)

		if entry.Failed {
			text = styles.Failure.Render(text)
		}

		line := fmt.Sprintf("%s%s%s",
			text,
			lipgloss.NewStyle().Width(padding).Render(""),
			styles.Dim.Render(timeAgo))

		lines = append(lines, line)
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func formatTimeAgo(now, t time.Time) string {
	d := now.Sub(t)

	if d < time.Minute {
		return "now"
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	if d < 24*time.Hour {
		return fmt.Sprintf("%dh", int(d.Hours()))
	}
	return t.Format("Jan 2")
}
