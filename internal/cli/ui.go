package cli

import (
	"github.com/spf13/cobra"
	"github.com/tessro/deck/internal/tui"
	"github.com/tessro/deck/internal/wizard"
)

var (
	uiRefresh int
	uiStart   int
	uiPick    bool
)

var uiCmd = &cobra.Command{
	Use:     "ui <playlist>",
	Aliases: []string{"tui"},
	Short:   "Launch the interactive player",
	Long: `Launch the interactive terminal player for a playlist file.

The player shows:
  • Now Playing - artwork, title, author, position, scrub bar, buttons
  • Playlist - all tracks with the current one marked
  • Events - track changes, seeks, pauses and engine errors

Keyboard shortcuts:
  q, Ctrl+C    Quit
  ?            Help
  Space        Play/Pause
  n            Next track
  p            Previous track
  [ / ]        Skip back/forward (when skip buttons are enabled)
  ← / →        Scrub
  Enter        Seek to the scrub position
  Esc          Cancel scrubbing
  Tab          Switch panel`,
	Args: cobra.ExactArgs(1),
	RunE: runUI,
}

func init() {
	uiCmd.Flags().IntVar(&uiRefresh, "refresh", 0, "Refresh interval in milliseconds (default from config)")
	uiCmd.Flags().IntVar(&uiStart, "start", 1, "Track number to start from")
	uiCmd.Flags().BoolVar(&uiPick, "pick", false, "Pick the starting track interactively")
	rootCmd.AddCommand(uiCmd)
}

func runUI(cmd *cobra.Command, args []string) error {
	p, err := loadPlaylist(args[0])
	if err != nil {
		return err
	}

	start, err := startIndex(uiStart, p)
	if err != nil {
		return err
	}

	if uiPick {
		track, err := wizard.NewInteractive().PromptTrack(p)
		if err != nil {
			return err
		}
		if track == nil {
			return nil
		}
		start = track.Index
	}

	if uiRefresh > 0 {
		cfg.TUI.RefreshInterval = uiRefresh
	}
	return tui.Run(p, start, cfg)
}
