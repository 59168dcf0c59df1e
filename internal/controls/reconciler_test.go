package controls

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tessro/deck/internal/core"
	deckerrors "github.com/tessro/deck/internal/errors"
)

func newTestControls(t *testing.T, opts ...Option) (*Controls, *fakeEngine) {
	t.Helper()
	eng := &fakeEngine{}
	c := New(eng, opts...)
	t.Cleanup(c.Close)
	return c, eng
}

func TestLoadedThenDuration(t *testing.T) {
	c, eng := newTestControls(t)

	eng.track = core.Track{Title: "A"}
	eng.emit(core.StatusLoaded)

	snap := c.Snapshot()
	require.True(t, snap.HasTrack())
	assert.Equal(t, "A", snap.Track.Title)
	assert.Zero(t, snap.Duration, "duration is provisional until reported")
	assert.Zero(t, snap.CurrentTime)
	require.Len(t, eng.duration, 1, "LOADED must request the duration")

	eng.answerDuration(180)

	snap = c.Snapshot()
	assert.Equal(t, 180.0, snap.Duration)
	assert.Equal(t, 0.0, snap.CurrentTime)
	assert.Equal(t, "A", snap.Track.Title)
	assert.False(t, snap.IsPlaying)
	assert.Equal(t, PhaseReady, c.Phase())
}

func TestPlayingThenTick(t *testing.T) {
	c, eng := newTestControls(t)
	eng.load(core.Track{Title: "A"}, 180)

	eng.emit(core.StatusPlaying)
	assert.True(t, c.Snapshot().IsPlaying)

	eng.tick(42)
	assert.Equal(t, 42.0, c.Snapshot().CurrentTime)
}

func TestPausedAndStoppedClearPlaying(t *testing.T) {
	for _, s := range []core.Status{core.StatusPaused, core.StatusStopped} {
		t.Run(s.String(), func(t *testing.T) {
			c, eng := newTestControls(t)
			eng.load(core.Track{Title: "A"}, 180)
			eng.emit(core.StatusPlaying)

			eng.emit(s)
			assert.False(t, c.Snapshot().IsPlaying)
			assert.Equal(t, PhasePaused, c.Phase())
		})
	}
}

func TestTickBeforeDurationReadsZero(t *testing.T) {
	c, eng := newTestControls(t)
	eng.track = core.Track{Title: "A"}
	eng.emit(core.StatusLoaded)

	eng.tick(12)
	assert.Zero(t, c.Snapshot().CurrentTime)

	eng.answerDuration(180)
	assert.Equal(t, 12.0, c.Snapshot().CurrentTime, "late duration restores the last engine position")
}

func TestTickClampedToDuration(t *testing.T) {
	c, eng := newTestControls(t)
	eng.load(core.Track{Title: "A"}, 180)

	eng.tick(181)
	assert.Equal(t, 180.0, c.Snapshot().CurrentTime)

	eng.tick(-3)
	assert.Equal(t, 0.0, c.Snapshot().CurrentTime)
}

func TestDurationForReplacedTrackIsDropped(t *testing.T) {
	c, eng := newTestControls(t)

	eng.track = core.Track{Title: "A"}
	eng.emit(core.StatusLoaded)
	eng.track = core.Track{Title: "B"}
	eng.emit(core.StatusLoaded)
	require.Len(t, eng.duration, 2)

	eng.answerDuration(100) // A's late answer
	assert.Zero(t, c.Snapshot().Duration)

	eng.answerDuration(200)
	snap := c.Snapshot()
	assert.Equal(t, 200.0, snap.Duration)
	assert.Equal(t, "B", snap.Track.Title)
}

func TestLoadedResetsPosition(t *testing.T) {
	c, eng := newTestControls(t)
	eng.load(core.Track{Title: "A"}, 180)
	eng.emit(core.StatusPlaying)
	eng.tick(120)

	eng.track = core.Track{Title: "B"}
	eng.emit(core.StatusLoaded)

	snap := c.Snapshot()
	assert.Equal(t, "B", snap.Track.Title)
	assert.Zero(t, snap.CurrentTime)
	assert.Zero(t, snap.Duration)
	assert.True(t, snap.IsPlaying, "LOADED does not touch isPlaying")
}

func TestErrorLeavesStateUnchanged(t *testing.T) {
	c, eng := newTestControls(t)
	eng.load(core.Track{Title: "A"}, 180)
	eng.emit(core.StatusPlaying)
	eng.tick(30)

	var got []error
	c.OnError(func(err error) { got = append(got, err) })
	changed := false
	c.OnChange(func(Change) { changed = true })

	before := c.Snapshot()
	boom := errors.New("decoder failed")
	eng.status.Emit(core.StatusEvent{Status: core.StatusError, Err: boom})

	assert.Equal(t, before, c.Snapshot())
	assert.False(t, changed)
	assert.Equal(t, PhasePlaying, c.Phase())
	assert.ErrorIs(t, c.LastError(), boom)
	require.Len(t, got, 1)
	assert.Empty(t, eng.calls, "no retry is initiated")
}

func TestUnknownStatusIgnored(t *testing.T) {
	c, eng := newTestControls(t)
	eng.load(core.Track{Title: "A"}, 180)
	before := c.Snapshot()

	eng.emit(core.StatusUnknown)
	eng.emit(core.StatusLoading)
	eng.emit(core.Status(99))

	assert.Equal(t, before, c.Snapshot())
	assert.Equal(t, PhaseReady, c.Phase())
	assert.NoError(t, c.LastError())
}

func TestPhaseTransitions(t *testing.T) {
	tests := []struct {
		from   Phase
		status core.Status
		want   Phase
	}{
		{PhaseInit, core.StatusLoaded, PhaseReady},
		{PhaseInit, core.StatusPlaying, PhaseInit},
		{PhaseReady, core.StatusPlaying, PhasePlaying},
		{PhaseReady, core.StatusStopped, PhaseReady},
		{PhasePlaying, core.StatusPaused, PhasePaused},
		{PhasePlaying, core.StatusStopped, PhasePaused},
		{PhasePaused, core.StatusPlaying, PhasePlaying},
		{PhasePlaying, core.StatusLoaded, PhasePlaying},
		{PhasePlaying, core.StatusError, PhasePlaying},
		{PhasePaused, core.StatusError, PhasePaused},
		{PhaseReady, core.StatusUnknown, PhaseReady},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"/"+tt.status.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, nextPhase(tt.from, tt.status))
		})
	}
}

func TestScrubSuppressesTicks(t *testing.T) {
	c, eng := newTestControls(t)
	eng.load(core.Track{Title: "A"}, 180)
	eng.emit(core.StatusPlaying)
	eng.tick(60)

	c.Scrub(150)
	c.Scrub(170)
	assert.Equal(t, 0, eng.ticks.Len(), "time sink is detached during the gesture")

	eng.tick(90)
	assert.Equal(t, 170.0, c.Snapshot().CurrentTime)

	target, active := c.Reconciler().ScrubTarget()
	assert.True(t, active)
	assert.Equal(t, 170.0, target)

	// Direct delivery is ignored as well.
	c.Reconciler().HandleTick(core.TimeTick{Seconds: 91})
	assert.Equal(t, 170.0, c.Snapshot().CurrentTime)

	c.ReleaseScrub(170)
	assert.Equal(t, 1, eng.ticks.Len(), "time sink is re-attached after release")
	assert.False(t, c.Reconciler().Scrubbing())
}

func TestStaleTickAfterSeekDiscarded(t *testing.T) {
	c, eng := newTestControls(t)
	eng.load(core.Track{Title: "A"}, 180)
	eng.emit(core.StatusPlaying)
	eng.tick(90)

	c.Scrub(170)
	c.ReleaseScrub(170)

	eng.tick(91) // emitted before the engine applied the seek
	assert.Equal(t, 170.0, c.Snapshot().CurrentTime)

	eng.tick(170.5)
	assert.Equal(t, 170.5, c.Snapshot().CurrentTime)

	// Guard is settled: normal ticks flow again.
	eng.tick(175)
	assert.Equal(t, 175.0, c.Snapshot().CurrentTime)
}

func TestStaleTickAfterBackwardSeekDiscarded(t *testing.T) {
	c, eng := newTestControls(t)
	eng.load(core.Track{Title: "A"}, 180)
	eng.tick(170)

	c.Scrub(10)
	c.ReleaseScrub(10)

	eng.tick(171)
	assert.Equal(t, 10.0, c.Snapshot().CurrentTime)

	eng.tick(11)
	assert.Equal(t, 11.0, c.Snapshot().CurrentTime)
}

func TestSeekGuardExpires(t *testing.T) {
	c, eng := newTestControls(t)
	eng.load(core.Track{Title: "A"}, 180)

	c.Scrub(100)
	c.ReleaseScrub(100)

	for i := 0; i < maxStaleTicks-1; i++ {
		eng.tick(40)
		assert.Equal(t, 100.0, c.Snapshot().CurrentTime)
	}
	eng.tick(40)
	assert.Equal(t, 40.0, c.Snapshot().CurrentTime, "engine position wins once the guard expires")
}

func TestCancelScrubRestoresPosition(t *testing.T) {
	c, eng := newTestControls(t)
	eng.load(core.Track{Title: "A"}, 180)
	eng.tick(60)

	c.Scrub(150)
	c.CancelScrub()

	assert.Equal(t, 60.0, c.Snapshot().CurrentTime)
	assert.Equal(t, 1, eng.ticks.Len())
	assert.Empty(t, eng.calls, "cancel does not seek")

	eng.tick(61)
	assert.Equal(t, 61.0, c.Snapshot().CurrentTime)
}

func TestLoadedDuringScrubEndsGesture(t *testing.T) {
	c, eng := newTestControls(t)
	eng.load(core.Track{Title: "A"}, 180)
	c.Scrub(100)

	eng.load(core.Track{Title: "B"}, 200)

	assert.False(t, c.Reconciler().Scrubbing())
	assert.Equal(t, 1, eng.ticks.Len())
	eng.tick(5)
	assert.Equal(t, 5.0, c.Snapshot().CurrentTime)
}

func TestScrubClampedToDuration(t *testing.T) {
	c, eng := newTestControls(t)
	eng.load(core.Track{Title: "A"}, 180)

	c.Scrub(500)
	assert.Equal(t, 180.0, c.Snapshot().CurrentTime)
	c.Scrub(-1)
	assert.Equal(t, 0.0, c.Snapshot().CurrentTime)
}

func TestCurrentTimeNeverExceedsDuration(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	for run := 0; run < 50; run++ {
		c, eng := newTestControls(t)
		eng.track = core.Track{Title: "A"}

		for step := 0; step < 200; step++ {
			switch rng.IntN(8) {
			case 0:
				eng.emit(core.StatusLoaded)
			case 1:
				if len(eng.duration) > 0 {
					eng.answerDuration(rng.Float64() * 300)
				}
			case 2:
				eng.emit(core.StatusPlaying)
			case 3:
				eng.emit(core.StatusPaused)
			case 4:
				c.Scrub(rng.Float64()*400 - 50)
			case 5:
				c.ReleaseScrub(rng.Float64() * 400)
			default:
				eng.tick(rng.Float64()*400 - 50)
			}

			snap := c.Snapshot()
			require.GreaterOrEqual(t, snap.CurrentTime, 0.0)
			require.LessOrEqual(t, snap.CurrentTime, snap.Duration,
				"run %d step %d: current %v > duration %v", run, step, snap.CurrentTime, snap.Duration)
		}
	}
}

func TestOnChangeReportsPrevious(t *testing.T) {
	c, eng := newTestControls(t)
	eng.load(core.Track{Title: "A"}, 180)

	var changes []Change
	sub := c.OnChange(func(ch Change) { changes = append(changes, ch) })

	eng.emit(core.StatusPlaying)
	eng.tick(1)
	eng.tick(1) // unchanged, not reported

	require.Len(t, changes, 2)
	assert.False(t, changes[0].Previous.IsPlaying)
	assert.True(t, changes[0].Current.IsPlaying)
	assert.Equal(t, 1.0, changes[1].Current.CurrentTime)

	sub.Unsubscribe()
	eng.tick(2)
	assert.Len(t, changes, 2)
}

func TestCloseDetaches(t *testing.T) {
	eng := &fakeEngine{}
	c := New(eng)
	require.Equal(t, 1, eng.status.Len())
	require.Equal(t, 1, eng.ticks.Len())

	c.Close()
	assert.Equal(t, 0, eng.status.Len())
	assert.Equal(t, 0, eng.ticks.Len())
}

func TestCommitScrubAlwaysReported(t *testing.T) {
	c, eng := newTestControls(t)
	eng.load(core.Track{Title: "A"}, 180)

	var changes []Change
	c.OnChange(func(ch Change) { changes = append(changes, ch) })

	c.Scrub(90)
	c.ReleaseScrub(90)

	require.Len(t, changes, 2)
	assert.False(t, changes[0].Committed)
	assert.True(t, changes[1].Committed)
	assert.Equal(t, changes[1].Previous, changes[1].Current)
}

func TestUserCommandsSupersedeSeekGuard(t *testing.T) {
	tests := []struct {
		name    string
		playing bool
		command func(c *Controls) error
	}{
		{"skip forward", true, (*Controls).SkipForward},
		{"skip backward", true, (*Controls).SkipBackward},
		{"play", false, func(c *Controls) error { c.TogglePlayPause(); return nil }},
		{"next", true, (*Controls).Next},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, eng := newTestControls(t, WithSkip(true, 15))
			eng.hasNext = true
			eng.load(core.Track{Title: "A"}, 180)
			if tt.playing {
				eng.emit(core.StatusPlaying)
			}

			c.Scrub(100)
			c.ReleaseScrub(100)
			require.NoError(t, tt.command(c))

			eng.tick(40)
			assert.Equal(t, 40.0, c.Snapshot().CurrentTime, "ticks after a newer command are current")
		})
	}
}

func TestPauseKeepsSeekGuard(t *testing.T) {
	c, eng := newTestControls(t)
	eng.load(core.Track{Title: "A"}, 180)
	eng.emit(core.StatusPlaying)

	c.Scrub(100)
	c.ReleaseScrub(100)
	c.TogglePlayPause()

	eng.tick(40)
	assert.Equal(t, 100.0, c.Snapshot().CurrentTime)
}

func TestDisabledSkipKeepsSeekGuard(t *testing.T) {
	c, eng := newTestControls(t)
	eng.load(core.Track{Title: "A"}, 180)

	c.Scrub(100)
	c.ReleaseScrub(100)
	assert.Error(t, c.SkipForward())

	eng.tick(40)
	assert.Equal(t, 100.0, c.Snapshot().CurrentTime)
}

func TestReleaseWithoutGestureIgnored(t *testing.T) {
	c, eng := newTestControls(t)
	eng.load(core.Track{Title: "A"}, 180)
	eng.tick(60)

	var changes []Change
	c.OnChange(func(ch Change) { changes = append(changes, ch) })

	c.ReleaseScrub(120)
	c.Reconciler().CommitScrub(120)

	assert.Empty(t, eng.calls, "no seek without a gesture")
	assert.Empty(t, changes)

	eng.tick(61)
	assert.Equal(t, 61.0, c.Snapshot().CurrentTime, "no guard was armed")
}

func TestStaleTickLogged(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	c, eng := newTestControls(t, WithLogger(logrus.NewEntry(logger)))
	eng.load(core.Track{Title: "A"}, 180)

	c.Scrub(100)
	c.ReleaseScrub(100)
	eng.tick(40)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "discarding tick", entry.Message)
	assert.ErrorIs(t, entry.Data[logrus.ErrorKey].(error), deckerrors.ErrStaleSeek)
}
