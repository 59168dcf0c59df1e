package core

// Engine is the external playback subsystem. Commands are fire-and-forget:
// the engine reports failures only through a StatusError event.
type Engine interface {
	// Load registers the playlist and loads the initial track.
	Load(playlist *Playlist, initialIndex int) error

	// Event subscriptions
	OnStatus(fn func(StatusEvent)) Subscription
	OnTick(fn func(TimeTick)) Subscription

	// Playback control
	Play()
	Pause()
	PlayNext()
	PlayPrevious()
	Seek(seconds float64)
	SeekBy(deltaSeconds float64)

	// Queries
	HasNext() bool
	HasPrevious() bool
	Duration(fn func(seconds float64))
	CurrentTrack() Track
}
