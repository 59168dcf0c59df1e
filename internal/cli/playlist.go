package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/tessro/deck/internal/core"
	deckerrors "github.com/tessro/deck/internal/errors"
	"github.com/tessro/deck/internal/format"
	"github.com/tessro/deck/internal/playlist"
)

var playlistCmd = &cobra.Command{
	Use:   "playlist <file>",
	Short: "List the tracks in a playlist file",
	Long: `Parse a playlist file and list its tracks.

Entries that cannot be played (no title or name, negative duration) are
reported and skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runPlaylist,
}

func init() {
	rootCmd.AddCommand(playlistCmd)
}

type playlistOutput struct {
	Tracks   []core.Track `json:"tracks"`
	Duration float64      `json:"duration"`
	Skipped  []string     `json:"skipped,omitempty"`
}

func runPlaylist(cmd *cobra.Command, args []string) error {
	res, err := playlist.Load(args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	var total float64
	for _, t := range res.Data.Tracks {
		total += t.Duration
	}

	if JSONOutput() {
		o := playlistOutput{Tracks: res.Data.Tracks, Duration: total}
		for _, e := range res.Errors {
			o.Skipped = append(o.Skipped, e.Error())
		}
		return writeJSON(out, o)
	}

	table := NewTableWriter(out, "#", "TITLE", "AUTHOR", "DURATION", "ARTWORK")
	for _, t := range res.Data.Tracks {
		artwork := string(t.Thumbnail.Kind)
		if artwork == "" {
			artwork = "-"
		}
		table.Row(
			strconv.Itoa(t.Index+1),
			TruncateString(t.DisplayTitle(), 40),
			TruncateString(t.Author, 30),
			format.Clock(t.Duration),
			artwork,
		)
	}
	table.Flush()

	fmt.Fprintf(out, "\n%d tracks, %s total\n", res.Data.Len(), format.Clock(total))
	if res.HasErrors() {
		fmt.Fprintln(cmd.ErrOrStderr(), res.ErrorSummary())
	}
	return nil
}

// loadPlaylist reads a playlist for playback, printing skipped entries to
// stderr.
func loadPlaylist(path string) (*core.Playlist, error) {
	res, err := playlist.Load(path)
	if err != nil {
		return nil, err
	}
	if res.HasErrors() && !JSONOutput() {
		fmt.Fprintf(os.Stderr, "warning: %s\n", res.ErrorSummary())
	}
	return res.Data, nil
}

// startIndex converts a one-based --start flag into a playlist index.
func startIndex(start int, p *core.Playlist) (int, error) {
	if start < 1 || start > p.Len() {
		return 0, deckerrors.WithSuggestion(
			fmt.Errorf("start track %d: %w", start, deckerrors.ErrOutOfRange),
			fmt.Sprintf("Pick a track between 1 and %d", p.Len()),
		)
	}
	return start - 1, nil
}
