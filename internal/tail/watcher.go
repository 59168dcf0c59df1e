package tail

import (
	"math"
	"time"

	"github.com/mitchellh/hashstructure/v2"
	"github.com/sirupsen/logrus"
	"github.com/tessro/deck/internal/controls"
	"github.com/tessro/deck/internal/core"
	"github.com/tessro/deck/internal/log"
)

// EventType represents the type of playback event.
type EventType int

const (
	EventTrackChange EventType = iota
	EventTrackComplete
	EventTrackSkip
	EventPause
	EventResume
	EventDurationKnown
	EventSeek
	EventEngineError
)

const (
	// completeThreshold is the share of a track that must have played for a
	// track change to count as a completion rather than a skip.
	completeThreshold = 0.95
	// rewindTolerance absorbs jitter before a backwards move counts as a seek.
	rewindTolerance = 0.5
	defaultSeekJump = 2.5
)

// Event represents a playback state change.
type Event struct {
	Type      EventType
	Timestamp time.Time
	Previous  core.Snapshot
	Current   core.Snapshot
	Err       error
}

// Source is the state side of a control surface.
type Source interface {
	Snapshot() core.Snapshot
	Scrubbing() bool
	OnChange(func(controls.Change)) core.Subscription
	OnError(func(error)) core.Subscription
}

// Watcher turns snapshot replacements into playback events. Callbacks arrive
// on the host loop; events are buffered on a channel and dropped when it is
// full.
type Watcher struct {
	source   Source
	events   chan Event
	seekJump float64
	log      *logrus.Entry

	changeSub core.Subscription
	errorSub  core.Subscription
	closed    bool

	lastHash uint64
	// scrubFrom is the position before the current scrub gesture started.
	scrubFrom float64
	inScrub   bool
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithBuffer sets the event channel capacity.
func WithBuffer(n int) WatcherOption {
	return func(w *Watcher) {
		if n > 0 {
			w.events = make(chan Event, n)
		}
	}
}

// WithSeekJump sets how far a forward move may go between two reports
// before it counts as a seek. It should exceed the host's tick interval.
func WithSeekJump(seconds float64) WatcherOption {
	return func(w *Watcher) {
		if seconds > 0 {
			w.seekJump = seconds
		}
	}
}

// NewWatcher subscribes to source. A track that is already loaded is
// reported as a track change.
func NewWatcher(source Source, opts ...WatcherOption) *Watcher {
	w := &Watcher{
		source:   source,
		events:   make(chan Event, 64),
		seekJump: defaultSeekJump,
		log:      log.For("tail"),
	}
	for _, opt := range opts {
		opt(w)
	}

	curr := source.Snapshot()
	w.lastHash = w.hash(curr)
	if curr.HasTrack() {
		w.send(Event{Type: EventTrackChange, Timestamp: time.Now(), Current: curr})
	}

	w.changeSub = source.OnChange(w.handleChange)
	w.errorSub = source.OnError(w.handleError)
	return w
}

// Events returns the channel of playback events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Close unsubscribes and closes the event channel. It must be called from
// the host loop.
func (w *Watcher) Close() {
	if w.closed {
		return
	}
	w.closed = true
	w.changeSub.Unsubscribe()
	w.errorSub.Unsubscribe()
	close(w.events)
}

func (w *Watcher) handleChange(c controls.Change) {
	now := time.Now()
	var events []Event

	switch {
	case w.source.Scrubbing():
		if !w.inScrub {
			w.inScrub = true
			w.scrubFrom = c.Previous.CurrentTime
		}
	case c.Committed:
		prev := c.Previous
		if w.inScrub {
			prev.CurrentTime = w.scrubFrom
		}
		w.inScrub = false
		if sameTrack(prev, c.Current) && math.Abs(c.Current.CurrentTime-prev.CurrentTime) > rewindTolerance {
			events = append(events, Event{Type: EventSeek, Timestamp: now, Previous: prev, Current: c.Current})
		}
	case w.inScrub:
		// cancelled gesture
		w.inScrub = false
	case w.seeked(c.Previous, c.Current):
		events = append(events, Event{Type: EventSeek, Timestamp: now, Previous: c.Previous, Current: c.Current})
	}

	h := w.hash(c.Current)
	if h != w.lastHash {
		w.lastHash = h
		events = append(diffStates(c.Previous, c.Current, now), events...)
	}

	for _, e := range events {
		w.send(e)
	}
}

func (w *Watcher) handleError(err error) {
	w.send(Event{
		Type:      EventEngineError,
		Timestamp: time.Now(),
		Current:   w.source.Snapshot(),
		Err:       err,
	})
}

func (w *Watcher) send(e Event) {
	if w.closed {
		return
	}
	select {
	case w.events <- e:
	default:
		w.log.WithField("event", eventTypeName(e.Type)).Debug("event buffer full, dropping")
	}
}

// seeked reports a position jump that ticks alone would not produce.
func (w *Watcher) seeked(prev, curr core.Snapshot) bool {
	if !sameTrack(prev, curr) || !prev.HasTrack() {
		return false
	}
	delta := curr.CurrentTime - prev.CurrentTime
	return delta < -rewindTolerance || delta > w.seekJump
}

// projection is the part of a snapshot that events are derived from.
// Position is left out so tick-only changes hash the same.
type projection struct {
	HasTrack   bool
	TrackIndex int
	TrackName  string
	TrackTitle string
	IsPlaying  bool
	Duration   float64
}

func (w *Watcher) hash(s core.Snapshot) uint64 {
	p := projection{
		HasTrack:  s.HasTrack(),
		IsPlaying: s.IsPlaying,
		Duration:  s.Duration,
	}
	if s.Track != nil {
		p.TrackIndex = s.Track.Index
		p.TrackName = s.Track.Name
		p.TrackTitle = s.Track.Title
	}
	h, err := hashstructure.Hash(p, hashstructure.FormatV2, nil)
	if err != nil {
		w.log.WithError(err).Debug("hashing snapshot")
		return 0
	}
	return h
}

// diffStates compares two snapshots and returns detected events.
func diffStates(prev, curr core.Snapshot, now time.Time) []Event {
	var events []Event

	if !sameTrack(prev, curr) && curr.HasTrack() {
		eventType := EventTrackChange
		if prev.HasTrack() {
			if wasCompleted(prev) {
				eventType = EventTrackComplete
			} else {
				eventType = EventTrackSkip
			}
		}
		events = append(events, Event{
			Type:      eventType,
			Timestamp: now,
			Previous:  prev,
			Current:   curr,
		})
	} else if prev.Duration <= 0 && curr.Duration > 0 {
		events = append(events, Event{
			Type:      EventDurationKnown,
			Timestamp: now,
			Previous:  prev,
			Current:   curr,
		})
	}

	if prev.IsPlaying && !curr.IsPlaying {
		events = append(events, Event{
			Type:      EventPause,
			Timestamp: now,
			Previous:  prev,
			Current:   curr,
		})
	} else if !prev.IsPlaying && curr.IsPlaying {
		events = append(events, Event{
			Type:      EventResume,
			Timestamp: now,
			Previous:  prev,
			Current:   curr,
		})
	}

	return events
}

// sameTrack returns true if both snapshots hold the same track.
func sameTrack(prev, curr core.Snapshot) bool {
	if prev.Track == nil || curr.Track == nil {
		return prev.Track == nil && curr.Track == nil
	}
	return prev.Track.Index == curr.Track.Index &&
		prev.Track.Name == curr.Track.Name &&
		prev.Track.Title == curr.Track.Title
}

// wasCompleted returns true if the track likely finished playing.
func wasCompleted(s core.Snapshot) bool {
	if s.Duration <= 0 {
		return false
	}
	return s.CurrentTime >= s.Duration*completeThreshold
}
