package core

import "strings"

// Status is a playback status reported by the engine.
type Status int

const (
	StatusUnknown Status = iota
	StatusLoading
	StatusLoaded
	StatusPlaying
	StatusPaused
	StatusStopped
	StatusError
)

// String returns the upper-case engine name of the status.
func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "LOADING"
	case StatusLoaded:
		return "LOADED"
	case StatusPlaying:
		return "PLAYING"
	case StatusPaused:
		return "PAUSED"
	case StatusStopped:
		return "STOPPED"
	case StatusError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseStatus maps an engine status name to a Status. Unrecognized names
// return StatusUnknown.
func ParseStatus(name string) Status {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "LOADING":
		return StatusLoading
	case "LOADED":
		return StatusLoaded
	case "PLAYING":
		return StatusPlaying
	case "PAUSED":
		return StatusPaused
	case "STOPPED":
		return StatusStopped
	case "ERROR":
		return StatusError
	default:
		return StatusUnknown
	}
}

// StatusEvent is emitted by the engine on every status change.
type StatusEvent struct {
	Status Status
	// Err carries engine detail for StatusError.
	Err error
}

// TimeTick is a periodic position report pushed by the engine.
type TimeTick struct {
	Seconds float64
}
