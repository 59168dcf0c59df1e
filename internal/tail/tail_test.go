package tail

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tessro/deck/internal/controls"
	"github.com/tessro/deck/internal/core"
	"github.com/tessro/deck/internal/engine"
	"github.com/tessro/deck/internal/format"
)

func testPlaylist() *core.Playlist {
	return core.NewPlaylist(
		core.Track{Title: "A", Author: "One", Duration: 180},
		core.Track{Title: "B", Author: "Two", Duration: 60},
		core.Track{Title: "C", Author: "Three", Duration: 30},
	)
}

func setup(t *testing.T, opts ...controls.Option) (*engine.Clock, *controls.Controls, *Watcher) {
	t.Helper()
	clock := engine.NewClock()
	ctl := controls.New(clock, opts...)
	w := NewWatcher(ctl.Reconciler())
	t.Cleanup(func() {
		w.Close()
		ctl.Close()
	})
	return clock, ctl, w
}

func drain(w *Watcher) []Event {
	var events []Event
	for {
		select {
		case e, ok := <-w.Events():
			if !ok {
				return events
			}
			events = append(events, e)
		default:
			return events
		}
	}
}

func types(events []Event) []EventType {
	out := make([]EventType, len(events))
	for i, e := range events {
		out[i] = e.Type
	}
	return out
}

func TestWatcherSession(t *testing.T) {
	clock, ctl, w := setup(t)

	require.NoError(t, clock.Load(testPlaylist(), 0))
	clock.Advance(0)
	ctl.TogglePlayPause()
	clock.Advance(time.Second)
	require.NoError(t, ctl.Next())
	clock.Advance(0)

	ctl.Scrub(30)
	ctl.Scrub(40)
	ctl.ReleaseScrub(40)

	for range 20 {
		clock.Advance(time.Second)
	}
	clock.Advance(0)

	ctl.TogglePlayPause()
	clock.Fail(errors.New("device lost"))

	events := drain(w)
	assert.Equal(t, []EventType{
		EventTrackChange,
		EventDurationKnown,
		EventResume,
		EventTrackSkip,
		EventDurationKnown,
		EventSeek,
		EventTrackComplete,
		EventDurationKnown,
		EventPause,
		EventEngineError,
	}, types(events))

	skip := events[3]
	assert.Equal(t, "A", skip.Previous.Track.Title)
	assert.Equal(t, "B", skip.Current.Track.Title)

	seek := events[5]
	assert.Equal(t, 0.0, seek.Previous.CurrentTime, "seek starts where the gesture began")
	assert.Equal(t, 40.0, seek.Current.CurrentTime)

	complete := events[6]
	assert.Equal(t, "B", complete.Previous.Track.Title)
	assert.Equal(t, "C", complete.Current.Track.Title)

	assert.EqualError(t, events[9].Err, "device lost")
}

func TestWatcherReportsLoadedTrack(t *testing.T) {
	clock := engine.NewClock()
	ctl := controls.New(clock)
	defer ctl.Close()
	require.NoError(t, clock.Load(testPlaylist(), 1))

	w := NewWatcher(ctl.Reconciler())
	defer w.Close()

	events := drain(w)
	require.Len(t, events, 1)
	assert.Equal(t, EventTrackChange, events[0].Type)
	assert.Equal(t, "B", events[0].Current.Track.Title)
}

func TestWatcherIgnoresTicks(t *testing.T) {
	clock, ctl, w := setup(t)
	require.NoError(t, clock.Load(testPlaylist(), 0))
	clock.Advance(0)
	ctl.TogglePlayPause()
	drain(w)

	for range 10 {
		clock.Advance(time.Second)
	}
	assert.Empty(t, drain(w))
	assert.Equal(t, 10.0, ctl.Snapshot().CurrentTime)
}

func TestWatcherSkipSeconds(t *testing.T) {
	clock, ctl, w := setup(t, controls.WithSkip(true, 15))
	require.NoError(t, clock.Load(testPlaylist(), 0))
	clock.Advance(0)
	drain(w)

	require.NoError(t, ctl.SkipForward())
	require.NoError(t, ctl.SkipBackward())

	events := drain(w)
	require.Equal(t, []EventType{EventSeek, EventSeek}, types(events))
	assert.Equal(t, 15.0, events[0].Current.CurrentTime)
	assert.Equal(t, 0.0, events[1].Current.CurrentTime)
}

func TestWatcherCancelledScrub(t *testing.T) {
	clock, ctl, w := setup(t)
	require.NoError(t, clock.Load(testPlaylist(), 0))
	clock.Advance(0)
	drain(w)

	ctl.Scrub(50)
	ctl.Scrub(90)
	ctl.CancelScrub()

	assert.Empty(t, drain(w))
	assert.Zero(t, ctl.Snapshot().CurrentTime)
}

func TestWatcherDropsWhenFull(t *testing.T) {
	clock := engine.NewClock()
	ctl := controls.New(clock)
	defer ctl.Close()
	w := NewWatcher(ctl.Reconciler(), WithBuffer(1))

	require.NoError(t, clock.Load(testPlaylist(), 0))
	clock.Advance(0)
	ctl.TogglePlayPause()

	assert.Equal(t, []EventType{EventTrackChange}, types(drain(w)))

	w.Close()
	w.Close()
	clock.Fail(errors.New("after close"))
	_, ok := <-w.Events()
	assert.False(t, ok)
}

func TestFormatterLines(t *testing.T) {
	a := &core.Track{Title: "A", Author: "One", Index: 0}
	b := &core.Track{Name: "b-side", Index: 1}

	tests := []struct {
		name  string
		event Event
		want  string
	}{
		{
			"track change",
			Event{Type: EventTrackChange, Current: core.Snapshot{Track: a}},
			"Now playing 1st of 3: One - A",
		},
		{
			"skip",
			Event{Type: EventTrackSkip, Previous: core.Snapshot{Track: a, CurrentTime: 65}, Current: core.Snapshot{Track: b}},
			"Skipped: One - A at 01:05",
		},
		{
			"complete without author",
			Event{Type: EventTrackComplete, Previous: core.Snapshot{Track: b}},
			"Finished: b-side",
		},
		{
			"seek",
			Event{Type: EventSeek, Previous: core.Snapshot{CurrentTime: 10}, Current: core.Snapshot{CurrentTime: 170}},
			"Seek: 00:10 → 02:50",
		},
		{
			"duration",
			Event{Type: EventDurationKnown, Current: core.Snapshot{Duration: 3725}},
			"Duration: 1:02:05",
		},
		{
			"error",
			Event{Type: EventEngineError, Err: errors.New("boom")},
			"Engine error: boom",
		},
	}

	f := NewFormatter(WithEmoji(false), WithPlaylistSize(3))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.Format(tt.event))
		})
	}
}

func TestFormatterOptions(t *testing.T) {
	e := Event{
		Type:      EventPause,
		Timestamp: time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC),
		Current:   core.Snapshot{CurrentTime: 65},
	}

	assert.Equal(t, "15:04:05 ⏸️ Paused at 01:05", NewFormatter(WithTimestamp(true)).Format(e))
	assert.Equal(t, "Paused at ۰۱:۰۵", NewFormatter(WithEmoji(false), WithDigits(format.Persian)).Format(e))
}

func TestFormatterTemplate(t *testing.T) {
	e := Event{
		Type:    EventTrackChange,
		Current: core.Snapshot{Track: &core.Track{Title: "A", Author: "One", Index: 2}, Duration: 180},
	}

	f := NewFormatter(WithTemplate("{{.Type}} {{.Position}} {{.Author}}/{{.Title}} {{.Duration}}"))
	assert.Equal(t, "track_change 3rd One/A 03:00", f.Format(e))

	broken := NewFormatter(WithEmoji(false), WithTemplate("{{.Nope"))
	assert.Equal(t, "Now playing 3rd: One - A", broken.Format(e))
}
