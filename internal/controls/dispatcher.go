package controls

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/tessro/deck/internal/core"
	deckerrors "github.com/tessro/deck/internal/errors"
)

// SnapshotReader exposes the view state the dispatcher guards on.
type SnapshotReader interface {
	Snapshot() core.Snapshot
}

// Dispatcher turns discrete user gestures into engine commands. It reads
// the snapshot for guards but never writes it: displayed state changes
// only when the engine confirms through a status event.
type Dispatcher struct {
	engine core.Engine
	state  SnapshotReader
	log    *logrus.Entry

	skipEnabled bool
	skipSeconds float64
}

// NewDispatcher creates a dispatcher for engine guarded by state.
func NewDispatcher(engine core.Engine, state SnapshotReader, opts ...Option) *Dispatcher {
	o := newOptions(opts)
	return &Dispatcher{
		engine:      engine,
		state:       state,
		log:         o.log.WithField("component", "dispatcher"),
		skipEnabled: o.skipEnabled,
		skipSeconds: o.skipSeconds,
	}
}

// TogglePlayPause pauses a playing engine and plays a paused one.
func (d *Dispatcher) TogglePlayPause() {
	if d.state.Snapshot().IsPlaying {
		d.engine.Pause()
		return
	}
	d.engine.Play()
}

// Availability reports which adjacent-track controls are enabled. It asks
// the engine every time so the answer is never stale after a track change.
func (d *Dispatcher) Availability() core.TransportAvailability {
	return core.TransportAvailability{
		HasNext:     d.engine.HasNext(),
		HasPrevious: d.engine.HasPrevious(),
	}
}

// SkipToNext moves to the next track when one exists.
func (d *Dispatcher) SkipToNext() error {
	if !d.engine.HasNext() {
		d.log.Debug("next ignored: no next track")
		return fmt.Errorf("skip to next: %w", deckerrors.ErrOutOfRange)
	}
	d.engine.PlayNext()
	return nil
}

// SkipToPrevious moves to the previous track when one exists.
func (d *Dispatcher) SkipToPrevious() error {
	if !d.engine.HasPrevious() {
		d.log.Debug("previous ignored: no previous track")
		return fmt.Errorf("skip to previous: %w", deckerrors.ErrOutOfRange)
	}
	d.engine.PlayPrevious()
	return nil
}

// SkipEnabled reports whether the skip-by-seconds buttons are shown.
func (d *Dispatcher) SkipEnabled() bool {
	return d.skipEnabled
}

// SkipInterval returns the skip button step in seconds.
func (d *Dispatcher) SkipInterval() float64 {
	return d.skipSeconds
}

// SkipBySeconds moves relative to the engine position. Negative deltas
// move backward; the engine clamps the result to the track.
func (d *Dispatcher) SkipBySeconds(delta float64) error {
	if !d.skipEnabled {
		return fmt.Errorf("skip %+.0fs: %w", delta, deckerrors.ErrSkipDisabled)
	}
	if delta == 0 {
		return nil
	}
	d.engine.SeekBy(delta)
	return nil
}

// SkipForward skips ahead by the configured interval.
func (d *Dispatcher) SkipForward() error {
	return d.SkipBySeconds(d.skipSeconds)
}

// SkipBackward skips back by the configured interval.
func (d *Dispatcher) SkipBackward() error {
	return d.SkipBySeconds(-d.skipSeconds)
}

// SeekAndResume seeks to target and resumes playback unless target is at or
// past the end of the track, so releasing the handle at the end does not
// restart it.
func (d *Dispatcher) SeekAndResume(target float64) {
	d.engine.Seek(target)
	if target < d.state.Snapshot().Duration {
		d.engine.Play()
	}
}
