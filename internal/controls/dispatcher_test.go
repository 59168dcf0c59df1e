package controls

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tessro/deck/internal/config"
	"github.com/tessro/deck/internal/core"
	deckerrors "github.com/tessro/deck/internal/errors"
)

func TestTogglePlayPauseDoesNotFlipState(t *testing.T) {
	c, eng := newTestControls(t)
	eng.load(core.Track{Title: "A"}, 180)

	c.TogglePlayPause()
	assert.Equal(t, []string{"play"}, eng.calls)
	assert.False(t, c.Snapshot().IsPlaying, "isPlaying waits for the engine's PLAYING status")

	eng.emit(core.StatusPlaying)
	c.TogglePlayPause()
	assert.Equal(t, []string{"play", "pause"}, eng.calls)
	assert.True(t, c.Snapshot().IsPlaying)
}

func TestTogglePlayPauseRejectedByEngine(t *testing.T) {
	c, eng := newTestControls(t)
	eng.load(core.Track{Title: "A"}, 180)

	c.TogglePlayPause()
	eng.status.Emit(core.StatusEvent{Status: core.StatusError})

	assert.False(t, c.Snapshot().IsPlaying)
	assert.ErrorIs(t, c.LastError(), deckerrors.ErrEngine)
}

func TestSkipToNextGuarded(t *testing.T) {
	c, eng := newTestControls(t)
	eng.hasNext = false

	err := c.Next()
	assert.ErrorIs(t, err, deckerrors.ErrOutOfRange)
	assert.NotContains(t, eng.calls, "next")

	eng.hasNext = true
	require.NoError(t, c.Next())
	assert.Equal(t, []string{"next"}, eng.calls)
}

func TestSkipToPreviousGuarded(t *testing.T) {
	c, eng := newTestControls(t)
	eng.hasPrev = false

	err := c.Previous()
	assert.ErrorIs(t, err, deckerrors.ErrOutOfRange)
	assert.Empty(t, eng.calls)

	eng.hasPrev = true
	require.NoError(t, c.Previous())
	assert.Equal(t, []string{"previous"}, eng.calls)
}

func TestAvailabilityIsNotCached(t *testing.T) {
	c, eng := newTestControls(t)

	eng.hasNext, eng.hasPrev = true, false
	assert.Equal(t, core.TransportAvailability{HasNext: true}, c.Availability())

	eng.hasNext, eng.hasPrev = false, true
	assert.Equal(t, core.TransportAvailability{HasPrevious: true}, c.Availability())
}

func TestSkipBySecondsDisabled(t *testing.T) {
	c, eng := newTestControls(t)

	assert.ErrorIs(t, c.SkipForward(), deckerrors.ErrSkipDisabled)
	assert.ErrorIs(t, c.SkipBackward(), deckerrors.ErrSkipDisabled)
	assert.Empty(t, eng.calls)
}

func TestSkipBySecondsEnabled(t *testing.T) {
	c, eng := newTestControls(t, WithConfig(config.ControlsConfig{SkipButtons: true, SkipSeconds: 15}))

	require.NoError(t, c.SkipForward())
	require.NoError(t, c.SkipBackward())
	require.NoError(t, c.Dispatcher().SkipBySeconds(0))
	require.NoError(t, c.Dispatcher().SkipBySeconds(-42))

	assert.Equal(t, []string{"seekby:15", "seekby:-15", "seekby:-42"}, eng.calls)
	assert.True(t, c.Dispatcher().SkipEnabled())
	assert.Equal(t, 15.0, c.Dispatcher().SkipInterval())
}

func TestSeekAndResume(t *testing.T) {
	tests := []struct {
		name   string
		target float64
		want   []string
	}{
		{"before end resumes", 170, []string{"seek:170", "play"}},
		{"at end does not resume", 180, []string{"seek:180"}},
		{"past end does not resume", 200, []string{"seek:200"}},
		{"start resumes", 0, []string{"seek:0", "play"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, eng := newTestControls(t)
			eng.load(core.Track{Title: "A"}, 180)

			c.Scrub(tt.target)
			c.ReleaseScrub(tt.target)

			assert.Equal(t, tt.want, eng.calls)
		})
	}
}

func TestSeekAndResumeWithUnknownDuration(t *testing.T) {
	c, eng := newTestControls(t)
	eng.track = core.Track{Title: "A"}
	eng.emit(core.StatusLoaded)

	c.Dispatcher().SeekAndResume(10)
	assert.Equal(t, []string{"seek:10"}, eng.calls)
}
