package controls

import "github.com/tessro/deck/internal/core"

// Controls is one control surface: a Reconciler and a Dispatcher sharing
// an injected engine.
type Controls struct {
	reconciler *Reconciler
	dispatcher *Dispatcher
}

// New wires a control surface to engine. The engine should be loaded
// afterwards so the first LOADED event is observed.
func New(engine core.Engine, opts ...Option) *Controls {
	r := NewReconciler(engine, opts...)
	return &Controls{
		reconciler: r,
		dispatcher: NewDispatcher(engine, r, opts...),
	}
}

// Reconciler returns the state side of the surface.
func (c *Controls) Reconciler() *Reconciler { return c.reconciler }

// Dispatcher returns the command side of the surface.
func (c *Controls) Dispatcher() *Dispatcher { return c.dispatcher }

// Snapshot returns the current view state.
func (c *Controls) Snapshot() core.Snapshot { return c.reconciler.Snapshot() }

// Phase returns the status state machine position.
func (c *Controls) Phase() Phase { return c.reconciler.Phase() }

// Availability returns the next/previous enablement.
func (c *Controls) Availability() core.TransportAvailability { return c.dispatcher.Availability() }

// LastError returns the most recent engine error.
func (c *Controls) LastError() error { return c.reconciler.LastError() }

// TogglePlayPause handles a tap on the play/pause button. Playing from the
// end rewinds, so a pending seek guard is dropped before resuming.
func (c *Controls) TogglePlayPause() {
	if !c.reconciler.Snapshot().IsPlaying {
		c.reconciler.clearSeekGuard()
	}
	c.dispatcher.TogglePlayPause()
}

// Next handles a tap on the next button.
func (c *Controls) Next() error {
	c.reconciler.clearSeekGuard()
	return c.dispatcher.SkipToNext()
}

// Previous handles a tap on the previous button.
func (c *Controls) Previous() error {
	c.reconciler.clearSeekGuard()
	return c.dispatcher.SkipToPrevious()
}

// SkipForward handles a tap on the skip-forward button.
func (c *Controls) SkipForward() error {
	c.skipping()
	return c.dispatcher.SkipForward()
}

// SkipBackward handles a tap on the skip-backward button.
func (c *Controls) SkipBackward() error {
	c.skipping()
	return c.dispatcher.SkipBackward()
}

// skipping drops the seek guard when a skip is about to move the engine.
func (c *Controls) skipping() {
	if c.dispatcher.SkipEnabled() {
		c.reconciler.clearSeekGuard()
	}
}

// Scrub handles a value change while the scrub handle is dragged.
func (c *Controls) Scrub(value float64) { c.reconciler.Scrub(value) }

// ReleaseScrub handles the end of a scrub gesture: the seek is issued first,
// then the time sink is re-attached. Without a gesture in progress it does
// nothing.
func (c *Controls) ReleaseScrub(target float64) {
	if !c.reconciler.Scrubbing() {
		return
	}
	c.dispatcher.SeekAndResume(target)
	c.reconciler.CommitScrub(target)
}

// CancelScrub abandons a scrub gesture without seeking.
func (c *Controls) CancelScrub() { c.reconciler.CancelScrub() }

// OnChange registers fn for every snapshot replacement.
func (c *Controls) OnChange(fn func(Change)) core.Subscription { return c.reconciler.OnChange(fn) }

// OnError registers fn for engine errors.
func (c *Controls) OnError(fn func(error)) core.Subscription { return c.reconciler.OnError(fn) }

// Close detaches from the engine.
func (c *Controls) Close() { c.reconciler.Close() }
