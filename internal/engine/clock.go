// Package engine provides a virtual-clock playback engine. It decodes no
// audio: the host loop advances its position, which makes it usable as the
// terminal UI's engine and as a deterministic test engine.
package engine

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tessro/deck/internal/core"
	deckerrors "github.com/tessro/deck/internal/errors"
	"github.com/tessro/deck/internal/log"
)

// Clock implements core.Engine on a virtual clock. It is not safe for
// concurrent use; the host calls it from its event loop.
type Clock struct {
	playlist *core.Playlist
	index    int
	position float64
	playing  bool

	status core.Listeners[core.StatusEvent]
	ticks  core.Listeners[core.TimeTick]

	// pending duration requests, answered on the next Advance
	pending []durationRequest

	log *logrus.Entry
}

// durationRequest remembers the duration of the track that was loaded
// when the request was made.
type durationRequest struct {
	fn      func(float64)
	seconds float64
}

// NewClock creates an engine with no playlist loaded.
func NewClock() *Clock {
	return &Clock{
		log: log.For("engine"),
	}
}

// Load registers the playlist and loads the track at initialIndex.
func (c *Clock) Load(playlist *core.Playlist, initialIndex int) error {
	if playlist.IsEmpty() {
		return deckerrors.ErrEmptyPlaylist
	}
	if playlist.At(initialIndex) == nil {
		return fmt.Errorf("initial track %d of %d: %w", initialIndex, playlist.Len(), deckerrors.ErrOutOfRange)
	}
	c.playlist = playlist
	c.playing = false
	c.loadIndex(initialIndex)
	return nil
}

// OnStatus registers a status sink.
func (c *Clock) OnStatus(fn func(core.StatusEvent)) core.Subscription {
	return c.status.Add(fn)
}

// OnTick registers a time sink.
func (c *Clock) OnTick(fn func(core.TimeTick)) core.Subscription {
	return c.ticks.Add(fn)
}

// Play starts or resumes playback. Playing from the end rewinds first.
func (c *Clock) Play() {
	if !c.loaded() {
		c.fail(deckerrors.ErrNotLoaded)
		return
	}
	if c.position >= c.trackDuration() {
		c.position = 0
		c.emitTick()
	}
	c.playing = true
	c.emitStatus(core.StatusPlaying)
}

// Pause pauses playback.
func (c *Clock) Pause() {
	if !c.loaded() {
		c.fail(deckerrors.ErrNotLoaded)
		return
	}
	c.playing = false
	c.emitStatus(core.StatusPaused)
}

// PlayNext loads the following track, keeping the play state.
func (c *Clock) PlayNext() {
	if !c.HasNext() {
		c.fail(fmt.Errorf("play next: %w", deckerrors.ErrOutOfRange))
		return
	}
	c.switchTo(c.index + 1)
}

// PlayPrevious loads the preceding track, keeping the play state.
func (c *Clock) PlayPrevious() {
	if !c.HasPrevious() {
		c.fail(fmt.Errorf("play previous: %w", deckerrors.ErrOutOfRange))
		return
	}
	c.switchTo(c.index - 1)
}

// Seek moves to an absolute position, clamped to the track.
func (c *Clock) Seek(seconds float64) {
	if !c.loaded() {
		c.fail(deckerrors.ErrNotLoaded)
		return
	}
	c.position = c.clamp(seconds)
	c.emitTick()
}

// SeekBy moves relative to the current position, clamped to the track.
func (c *Clock) SeekBy(delta float64) {
	c.Seek(c.position + delta)
}

// HasNext returns true if a track follows the current one.
func (c *Clock) HasNext() bool {
	return c.loaded() && c.playlist.HasNext(c.index)
}

// HasPrevious returns true if a track precedes the current one.
func (c *Clock) HasPrevious() bool {
	return c.loaded() && c.playlist.HasPrevious(c.index)
}

// Duration queues fn; it is answered on the next Advance.
func (c *Clock) Duration(fn func(seconds float64)) {
	c.pending = append(c.pending, durationRequest{fn: fn, seconds: c.trackDuration()})
}

// CurrentTrack returns a copy of the loaded track's metadata.
func (c *Clock) CurrentTrack() core.Track {
	if t := c.playlist.At(c.index); t != nil {
		return *t
	}
	return core.Track{}
}

// Position returns the virtual playback position in seconds.
func (c *Clock) Position() float64 {
	return c.position
}

// Playing reports whether the virtual clock is running.
func (c *Clock) Playing() bool {
	return c.playing
}

// Fail reports err to status subscribers, as a real engine would on a
// decoding or I/O failure.
func (c *Clock) Fail(err error) {
	c.fail(err)
}

// Advance answers queued duration requests and, while playing, moves the
// position forward by d and reports it. Reaching the end loads the next
// track or stops.
func (c *Clock) Advance(d time.Duration) {
	if len(c.pending) > 0 {
		pending := c.pending
		c.pending = nil
		for _, req := range pending {
			req.fn(req.seconds)
		}
	}

	if !c.playing || d <= 0 {
		return
	}

	c.position += d.Seconds()
	end := c.trackDuration()
	if c.position < end {
		c.emitTick()
		return
	}

	c.position = end
	c.emitTick()
	if c.HasNext() {
		c.log.WithField("index", c.index+1).Debug("advancing to next track")
		c.switchTo(c.index + 1)
		return
	}
	c.playing = false
	c.emitStatus(core.StatusStopped)
}

func (c *Clock) switchTo(index int) {
	wasPlaying := c.playing
	c.playing = false
	c.loadIndex(index)
	if wasPlaying {
		c.playing = true
		c.emitStatus(core.StatusPlaying)
	}
}

func (c *Clock) loadIndex(index int) {
	c.index = index
	c.position = 0
	c.emitStatus(core.StatusLoading)
	c.emitStatus(core.StatusLoaded)
}

func (c *Clock) loaded() bool {
	return c.playlist != nil && c.playlist.At(c.index) != nil
}

func (c *Clock) trackDuration() float64 {
	if t := c.playlist.At(c.index); t != nil && t.Duration > 0 {
		return t.Duration
	}
	return 0
}

func (c *Clock) clamp(seconds float64) float64 {
	if seconds < 0 {
		return 0
	}
	if end := c.trackDuration(); seconds > end {
		return end
	}
	return seconds
}

func (c *Clock) fail(err error) {
	c.log.WithError(err).Warn("engine error")
	c.status.Emit(core.StatusEvent{Status: core.StatusError, Err: err})
}

func (c *Clock) emitStatus(s core.Status) {
	c.log.WithField("status", s.String()).Debug("status")
	c.status.Emit(core.StatusEvent{Status: s})
}

func (c *Clock) emitTick() {
	c.ticks.Emit(core.TimeTick{Seconds: c.position})
}

var _ core.Engine = (*Clock)(nil)
