package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/tessro/deck/internal/controls"
	"github.com/tessro/deck/internal/engine"
	"github.com/tessro/deck/internal/format"
	"github.com/tessro/deck/internal/tail"
)

var (
	tailNoEmoji   bool
	tailTimestamp bool
	tailFormat    string
	tailInterval  time.Duration
	tailSpeed     float64
	tailStart     int
	tailPaused    bool
)

var tailCmd = &cobra.Command{
	Use:   "tail <playlist>",
	Short: "Play a playlist headlessly and follow its events",
	Long: `Play a playlist on the virtual clock and print playback events as they
happen. Exits when the last track ends.

Events tracked:
  - Track changes (new track loaded)
  - Track completions (track played to the end)
  - Track skips (track left before the end)
  - Pause/Resume
  - Duration reports
  - Seeks
  - Engine errors`,
	Args: cobra.ExactArgs(1),
	RunE: runTail,
}

func init() {
	tailCmd.Flags().BoolVar(&tailNoEmoji, "no-emoji", false, "disable emoji output")
	tailCmd.Flags().BoolVarP(&tailTimestamp, "timestamp", "t", false, "show timestamps")
	tailCmd.Flags().StringVarP(&tailFormat, "format", "f", "", "custom format template")
	tailCmd.Flags().DurationVarP(&tailInterval, "interval", "i", time.Second, "tick interval")
	tailCmd.Flags().Float64Var(&tailSpeed, "speed", 1, "playback speed multiplier")
	tailCmd.Flags().IntVar(&tailStart, "start", 1, "track number to start from")
	tailCmd.Flags().BoolVar(&tailPaused, "paused", false, "load without starting playback")

	rootCmd.AddCommand(tailCmd)
}

// eventJSON is the --json line format of an event.
type eventJSON struct {
	Type        string    `json:"type"`
	Timestamp   time.Time `json:"timestamp"`
	Title       string    `json:"title,omitempty"`
	Author      string    `json:"author,omitempty"`
	Index       *int      `json:"index,omitempty"`
	CurrentTime float64   `json:"current_time"`
	Duration    float64   `json:"duration"`
	Playing     bool      `json:"playing"`
	Error       string    `json:"error,omitempty"`
}

func newEventJSON(e tail.Event) eventJSON {
	j := eventJSON{
		Type:        e.Type.String(),
		Timestamp:   e.Timestamp,
		CurrentTime: e.Current.CurrentTime,
		Duration:    e.Current.Duration,
		Playing:     e.Current.IsPlaying,
	}
	if t := e.Current.Track; t != nil {
		j.Title = t.DisplayTitle()
		j.Author = t.Author
		idx := t.Index
		j.Index = &idx
	}
	if e.Err != nil {
		j.Error = e.Err.Error()
	}
	return j
}

func runTail(cmd *cobra.Command, args []string) error {
	p, err := loadPlaylist(args[0])
	if err != nil {
		return err
	}
	start, err := startIndex(tailStart, p)
	if err != nil {
		return err
	}
	if tailInterval <= 0 {
		return fmt.Errorf("interval must be positive")
	}
	if tailSpeed <= 0 {
		return fmt.Errorf("speed must be positive")
	}
	step := time.Duration(float64(tailInterval) * tailSpeed)

	formatter := tail.NewFormatter(
		tail.WithEmoji(!tailNoEmoji),
		tail.WithTimestamp(tailTimestamp),
		tail.WithTemplate(tailFormat),
		tail.WithPlaylistSize(p.Len()),
		tail.WithDigits(format.DigitsForLanguage(cfg.Locale.Language)),
	)

	// Handle Ctrl+C gracefully
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		select {
		case <-sigCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	clock := engine.NewClock()
	ctl := controls.New(clock, controls.WithConfig(cfg.Controls))
	defer ctl.Close()
	watcher := tail.NewWatcher(ctl.Reconciler(), tail.WithSeekJump(max(2.5, 2*step.Seconds())))
	defer watcher.Close()

	if err := clock.Load(p, start); err != nil {
		return err
	}
	clock.Advance(0)
	if !tailPaused {
		ctl.TogglePlayPause()
	}

	return followEvents(ctx, cmd.OutOrStdout(), clock, watcher, formatter, tailInterval, step, !tailPaused)
}

// followEvents advances the clock by step every interval and prints events
// until ctx is done or, when untilEnd is set, playback stops at the end of
// the playlist.
func followEvents(ctx context.Context, out io.Writer, clock *engine.Clock, w *tail.Watcher, f *tail.Formatter, interval, step time.Duration, untilEnd bool) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	enc := json.NewEncoder(out)
	for {
		for drained := false; !drained; {
			select {
			case e, ok := <-w.Events():
				if !ok {
					return nil
				}
				if JSONOutput() {
					if err := enc.Encode(newEventJSON(e)); err != nil {
						return err
					}
				} else {
					fmt.Fprintln(out, f.Format(e))
				}
			default:
				drained = true
			}
		}

		if untilEnd && finished(clock) {
			return nil
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			clock.Advance(step)
		}
	}
}

// finished reports that playback stopped at the end of the last track.
func finished(clock *engine.Clock) bool {
	return !clock.Playing() && !clock.HasNext() && clock.Position() >= clock.CurrentTrack().Duration
}
