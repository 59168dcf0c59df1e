// Package controls keeps the view's playback state in sync with an injected
// engine and turns user gestures into engine commands.
package controls

import (
	"math"

	"github.com/sirupsen/logrus"
	"github.com/tessro/deck/internal/core"
	deckerrors "github.com/tessro/deck/internal/errors"
)

const (
	// seekTolerance is how far below a seek target a tick may land and still
	// count as the engine having honored the seek.
	seekTolerance = 0.5
	// seekSettleWindow bounds how far past the target the first accepted tick
	// may be.
	seekSettleWindow = 3.0
	// maxStaleTicks is the number of consecutive out-of-window ticks after
	// which the guard is dropped and the engine's position wins.
	maxStaleTicks = 8
)

// Change describes one snapshot replacement.
type Change struct {
	Previous core.Snapshot
	Current  core.Snapshot
	// Committed is set on the change that ends a scrub gesture. It is
	// reported even when the snapshot is unchanged.
	Committed bool
}

// seekGuard discards ticks that predate the last committed seek.
type seekGuard struct {
	armed     bool
	target    float64
	discarded int
}

// Reconciler mirrors engine status and time callbacks into a Snapshot. It
// is driven from a single event loop and is not safe for concurrent use.
type Reconciler struct {
	engine core.Engine
	log    *logrus.Entry

	snap    core.Snapshot
	phase   Phase
	lastErr error

	// lastTick is the latest engine position, unclamped, so a late duration
	// report can restore it.
	lastTick float64

	statusSub core.Subscription
	tickSub   core.Subscription

	scrubbing  bool
	scrubValue float64
	guard      seekGuard

	// generation identifies the loaded track so late duration answers for a
	// replaced track are dropped.
	generation int

	changes core.Listeners[Change]
	errs    core.Listeners[error]
}

// NewReconciler subscribes to the engine's status and time events.
func NewReconciler(engine core.Engine, opts ...Option) *Reconciler {
	o := newOptions(opts)
	r := &Reconciler{
		engine: engine,
		log:    o.log.WithField("component", "reconciler"),
		phase:  PhaseInit,
	}
	r.statusSub = engine.OnStatus(r.HandleStatus)
	r.subscribeTicks()
	return r
}

// Snapshot returns the current view state.
func (r *Reconciler) Snapshot() core.Snapshot {
	return r.snap
}

// Phase returns the state machine position.
func (r *Reconciler) Phase() Phase {
	return r.phase
}

// LastError returns the most recent engine error, if any.
func (r *Reconciler) LastError() error {
	return r.lastErr
}

// Scrubbing reports whether a scrub gesture is in progress.
func (r *Reconciler) Scrubbing() bool {
	return r.scrubbing
}

// ScrubTarget returns the in-progress gesture position.
func (r *Reconciler) ScrubTarget() (float64, bool) {
	return r.scrubValue, r.scrubbing
}

// OnChange registers fn to receive every snapshot replacement.
func (r *Reconciler) OnChange(fn func(Change)) core.Subscription {
	return r.changes.Add(fn)
}

// OnError registers fn to receive engine errors.
func (r *Reconciler) OnError(fn func(error)) core.Subscription {
	return r.errs.Add(fn)
}

// HandleStatus applies one engine status event.
func (r *Reconciler) HandleStatus(ev core.StatusEvent) {
	prevPhase := r.phase
	r.phase = nextPhase(r.phase, ev.Status)
	if r.phase != prevPhase {
		r.log.WithFields(logrus.Fields{
			"from": prevPhase.String(),
			"to":   r.phase.String(),
		}).Debug("phase transition")
	}

	switch ev.Status {
	case core.StatusPlaying:
		next := r.snap
		next.IsPlaying = true
		r.replace(next)

	case core.StatusPaused, core.StatusStopped:
		next := r.snap
		next.IsPlaying = false
		r.replace(next)

	case core.StatusLoaded:
		r.loadTrack()

	case core.StatusError:
		r.reportError(ev.Err)

	default:
		r.log.WithField("status", ev.Status.String()).Debug("ignoring status")
	}
}

// HandleTick applies one engine time report.
func (r *Reconciler) HandleTick(tick core.TimeTick) {
	if r.scrubbing {
		return
	}

	seconds := tick.Seconds
	if math.IsNaN(seconds) {
		return
	}

	if r.guard.armed {
		low := r.guard.target - seekTolerance
		high := r.guard.target + seekSettleWindow
		if seconds < low || seconds > high {
			r.guard.discarded++
			if r.guard.discarded < maxStaleTicks {
				r.log.WithError(deckerrors.ErrStaleSeek).WithFields(logrus.Fields{
					"tick":   seconds,
					"target": r.guard.target,
				}).Debug("discarding tick")
				return
			}
			r.log.WithField("target", r.guard.target).Debug("seek guard expired")
		}
		r.guard = seekGuard{}
	}

	r.lastTick = seconds
	next := r.snap
	next.CurrentTime = r.clamp(seconds)
	r.replace(next)
}

// Scrub records a value-change event of the scrub gesture. The first call
// detaches the time sink so ticks cannot move the handle mid-gesture.
func (r *Reconciler) Scrub(value float64) {
	if !r.scrubbing {
		r.scrubbing = true
		r.unsubscribeTicks()
		r.log.Debug("scrub started")
	}
	r.scrubValue = r.clamp(value)

	next := r.snap
	next.CurrentTime = r.scrubValue
	r.replace(next)
}

// CommitScrub ends the gesture at target. Call it after the seek has been
// issued; ticks older than the seek are discarded from here on. It does
// nothing when no gesture is in progress.
func (r *Reconciler) CommitScrub(target float64) {
	if !r.scrubbing {
		return
	}
	target = r.clamp(target)
	r.scrubbing = false
	r.scrubValue = 0
	r.guard = seekGuard{armed: true, target: target}
	r.lastTick = target

	prev := r.snap
	r.snap.CurrentTime = target
	r.changes.Emit(Change{Previous: prev, Current: r.snap, Committed: true})

	r.subscribeTicks()
	r.log.WithField("target", target).Debug("scrub committed")
}

// CancelScrub abandons the gesture without seeking.
func (r *Reconciler) CancelScrub() {
	if !r.scrubbing {
		return
	}
	r.scrubbing = false
	r.scrubValue = 0

	next := r.snap
	next.CurrentTime = r.clamp(r.lastTick)
	r.replace(next)

	r.subscribeTicks()
	r.log.Debug("scrub cancelled")
}

// clearSeekGuard forgets the last committed seek. A newer user command that
// moves the engine makes every following tick current.
func (r *Reconciler) clearSeekGuard() {
	r.guard = seekGuard{}
}

// Close detaches from the engine.
func (r *Reconciler) Close() {
	if r.statusSub != nil {
		r.statusSub.Unsubscribe()
		r.statusSub = nil
	}
	r.unsubscribeTicks()
}

func (r *Reconciler) loadTrack() {
	if r.scrubbing {
		// The gesture referred to the previous track.
		r.scrubbing = false
		r.scrubValue = 0
		r.subscribeTicks()
	}

	track := r.engine.CurrentTrack()
	r.generation++
	gen := r.generation
	r.guard = seekGuard{}
	r.lastTick = 0

	r.replace(core.Snapshot{
		Track:     &track,
		IsPlaying: r.snap.IsPlaying,
	})
	r.log.WithFields(logrus.Fields{
		"title": track.DisplayTitle(),
		"index": track.Index,
	}).Info("track loaded")

	r.engine.Duration(func(seconds float64) {
		if gen != r.generation {
			r.log.WithField("duration", seconds).Debug("dropping duration for replaced track")
			return
		}
		r.applyDuration(seconds)
	})
}

func (r *Reconciler) applyDuration(seconds float64) {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		seconds = 0
	}

	next := r.snap
	next.Duration = seconds
	if r.scrubbing {
		r.scrubValue = clampTo(r.scrubValue, seconds)
		next.CurrentTime = r.scrubValue
	} else {
		next.CurrentTime = clampTo(r.lastTick, seconds)
	}
	r.replace(next)
}

func (r *Reconciler) reportError(err error) {
	if err == nil {
		err = deckerrors.ErrEngine
	}
	r.lastErr = err
	r.log.WithError(err).Warn("engine reported an error")
	r.errs.Emit(err)
}

// clamp bounds a position to [0, duration]. Before the duration is known
// it is provisionally 0, so positions read 0 as well.
func (r *Reconciler) clamp(seconds float64) float64 {
	return clampTo(seconds, r.snap.Duration)
}

func clampTo(seconds, duration float64) float64 {
	if seconds < 0 || math.IsNaN(seconds) {
		return 0
	}
	if seconds > duration {
		return duration
	}
	return seconds
}

func (r *Reconciler) replace(next core.Snapshot) {
	prev := r.snap
	r.snap = next
	if prev == next {
		return
	}
	r.changes.Emit(Change{Previous: prev, Current: next})
}

func (r *Reconciler) subscribeTicks() {
	if r.tickSub == nil {
		r.tickSub = r.engine.OnTick(r.HandleTick)
	}
}

func (r *Reconciler) unsubscribeTicks() {
	if r.tickSub != nil {
		r.tickSub.Unsubscribe()
		r.tickSub = nil
	}
}
