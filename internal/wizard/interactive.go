package wizard

import (
	"os"

	"github.com/tessro/deck/internal/config"
	"github.com/tessro/deck/internal/core"
	"golang.org/x/term"
)

// Interactive provides interactive fallback functionality.
type Interactive struct {
	enabled bool
}

// NewInteractive creates a new interactive handler.
func NewInteractive() *Interactive {
	return &Interactive{
		enabled: true,
	}
}

// SetEnabled enables or disables interactive mode.
func (i *Interactive) SetEnabled(enabled bool) {
	i.enabled = enabled
}

// IsTerminal returns true if stdin and stdout are both terminals.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// CanInteract returns true if interactive mode is available.
func (i *Interactive) CanInteract() bool {
	return i.enabled && IsTerminal()
}

// PromptTrack launches the track picker if interactive mode is available.
// Returns the selected track, or nil if cancelled or not interactive.
func (i *Interactive) PromptTrack(playlist *core.Playlist) (*core.Track, error) {
	if !i.CanInteract() || playlist.IsEmpty() {
		return nil, nil
	}
	return RunTrackPicker(playlist)
}

// PromptConfig fills cfg from a form if interactive mode is available.
// Returns false when the form was not shown.
func (i *Interactive) PromptConfig(cfg *config.Config) (bool, error) {
	if !i.CanInteract() {
		return false, nil
	}
	if err := RunConfigForm(cfg); err != nil {
		return false, err
	}
	return true, nil
}
