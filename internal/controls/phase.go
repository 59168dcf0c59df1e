package controls

import "github.com/tessro/deck/internal/core"

// Phase is the reconciler's position in the status state machine.
type Phase int

const (
	PhaseInit Phase = iota
	PhaseReady
	PhasePlaying
	PhasePaused
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseInit:
		return "INIT"
	case PhaseReady:
		return "READY"
	case PhasePlaying:
		return "PLAYING"
	case PhasePaused:
		return "PAUSED"
	default:
		return "UNKNOWN"
	}
}

// nextPhase applies one status to the transition table. Pairs missing from
// the table, ERROR included, keep the current phase.
func nextPhase(p Phase, s core.Status) Phase {
	switch s {
	case core.StatusLoaded:
		if p == PhaseInit {
			return PhaseReady
		}
	case core.StatusPlaying:
		if p == PhaseReady || p == PhasePaused {
			return PhasePlaying
		}
	case core.StatusPaused, core.StatusStopped:
		if p == PhasePlaying {
			return PhasePaused
		}
	}
	return p
}
