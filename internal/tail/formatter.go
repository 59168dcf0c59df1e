package tail

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/tessro/deck/internal/core"
	"github.com/tessro/deck/internal/format"
)

// Formatter formats events for output.
type Formatter struct {
	showEmoji     bool
	showTimestamp bool
	playlistSize  int
	digits        format.Digits
	template      *template.Template
}

// FormatterOption configures a Formatter.
type FormatterOption func(*Formatter)

// WithEmoji enables emoji output.
func WithEmoji(enabled bool) FormatterOption {
	return func(f *Formatter) {
		f.showEmoji = enabled
	}
}

// WithTimestamp enables timestamp output.
func WithTimestamp(enabled bool) FormatterOption {
	return func(f *Formatter) {
		f.showTimestamp = enabled
	}
}

// WithPlaylistSize adds "of n" to track positions.
func WithPlaylistSize(n int) FormatterOption {
	return func(f *Formatter) {
		f.playlistSize = n
	}
}

// WithDigits renders time labels in a localized numbering system.
func WithDigits(d format.Digits) FormatterOption {
	return func(f *Formatter) {
		f.digits = d
	}
}

// WithTemplate sets a custom format template.
func WithTemplate(tmpl string) FormatterOption {
	return func(f *Formatter) {
		if tmpl != "" {
			t, err := template.New("format").Parse(tmpl)
			if err == nil {
				f.template = t
			}
		}
	}
}

// NewFormatter creates a new formatter with the given options.
func NewFormatter(opts ...FormatterOption) *Formatter {
	f := &Formatter{
		showEmoji:     true,
		showTimestamp: false,
		digits:        format.Latin,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format formats an event as a string.
func (f *Formatter) Format(e Event) string {
	if f.template != nil {
		return f.formatTemplate(e)
	}
	return f.formatLine(e)
}

// formatLine formats an event as a simple line.
func (f *Formatter) formatLine(e Event) string {
	var parts []string

	if f.showTimestamp {
		parts = append(parts, e.Timestamp.Format("15:04:05"))
	}

	if f.showEmoji {
		parts = append(parts, eventEmoji(e.Type))
	}

	parts = append(parts, f.eventDescription(e))

	return strings.Join(parts, " ")
}

// formatTemplate formats an event using a custom template.
func (f *Formatter) formatTemplate(e Event) string {
	data := templateData{
		Type:      eventTypeName(e.Type),
		Emoji:     eventEmoji(e.Type),
		Timestamp: e.Timestamp,
		Time:      e.Timestamp.Format("15:04:05"),
		Elapsed:   f.clock(e.Current.CurrentTime),
		Duration:  f.clock(e.Current.Duration),
		Playing:   e.Current.IsPlaying,
	}

	if t := e.Current.Track; t != nil {
		data.Title = t.DisplayTitle()
		data.Author = t.Author
		data.Position = f.position(t)
	}

	if e.Err != nil {
		data.Error = e.Err.Error()
	}

	var buf bytes.Buffer
	if err := f.template.Execute(&buf, data); err != nil {
		return f.formatLine(e)
	}
	return buf.String()
}

type templateData struct {
	Type      string
	Emoji     string
	Timestamp time.Time
	Time      string
	Title     string
	Author    string
	Position  string
	Elapsed   string
	Duration  string
	Playing   bool
	Error     string
}

// eventDescription returns a human-readable description of the event.
func (f *Formatter) eventDescription(e Event) string {
	switch e.Type {
	case EventTrackChange:
		if t := e.Current.Track; t != nil {
			return fmt.Sprintf("Now playing %s: %s", f.position(t), trackLabel(t))
		}
		return "Track changed"

	case EventTrackComplete:
		if t := e.Previous.Track; t != nil {
			return fmt.Sprintf("Finished: %s", trackLabel(t))
		}
		return "Track completed"

	case EventTrackSkip:
		if t := e.Previous.Track; t != nil {
			return fmt.Sprintf("Skipped: %s at %s", trackLabel(t), f.clock(e.Previous.CurrentTime))
		}
		return "Track skipped"

	case EventPause:
		return fmt.Sprintf("Paused at %s", f.clock(e.Current.CurrentTime))

	case EventResume:
		return fmt.Sprintf("Resumed at %s", f.clock(e.Current.CurrentTime))

	case EventDurationKnown:
		return fmt.Sprintf("Duration: %s", f.clock(e.Current.Duration))

	case EventSeek:
		return fmt.Sprintf("Seek: %s → %s", f.clock(e.Previous.CurrentTime), f.clock(e.Current.CurrentTime))

	case EventEngineError:
		if e.Err != nil {
			return fmt.Sprintf("Engine error: %v", e.Err)
		}
		return "Engine error"

	default:
		return "Unknown event"
	}
}

// position renders a track's place in the playlist, e.g. "3rd of 12".
func (f *Formatter) position(t *core.Track) string {
	s := humanize.Ordinal(t.Index + 1)
	if f.playlistSize > 0 {
		s = fmt.Sprintf("%s of %d", s, f.playlistSize)
	}
	return f.digits.Localize(s)
}

func (f *Formatter) clock(seconds float64) string {
	return f.digits.Localize(format.Clock(seconds))
}

func trackLabel(t *core.Track) string {
	if t.Author == "" {
		return t.DisplayTitle()
	}
	return fmt.Sprintf("%s - %s", t.Author, t.DisplayTitle())
}

// eventEmoji returns an emoji for the event type.
func eventEmoji(t EventType) string {
	switch t {
	case EventTrackChange:
		return "🎵"
	case EventTrackComplete:
		return "✅"
	case EventTrackSkip:
		return "⏭️"
	case EventPause:
		return "⏸️"
	case EventResume:
		return "▶️"
	case EventDurationKnown:
		return "⏱️"
	case EventSeek:
		return "⏩"
	case EventEngineError:
		return "⚠️"
	default:
		return "❓"
	}
}

// eventTypeName returns the name of the event type.
func eventTypeName(t EventType) string {
	switch t {
	case EventTrackChange:
		return "track_change"
	case EventTrackComplete:
		return "track_complete"
	case EventTrackSkip:
		return "track_skip"
	case EventPause:
		return "pause"
	case EventResume:
		return "resume"
	case EventDurationKnown:
		return "duration_known"
	case EventSeek:
		return "seek"
	case EventEngineError:
		return "engine_error"
	default:
		return "unknown"
	}
}

// String returns the snake_case name of the event type.
func (t EventType) String() string {
	return eventTypeName(t)
}
