package controls

import (
	"fmt"

	"github.com/tessro/deck/internal/core"
)

// fakeEngine records commands and lets tests push events by hand.
type fakeEngine struct {
	status core.Listeners[core.StatusEvent]
	ticks  core.Listeners[core.TimeTick]

	track    core.Track
	hasNext  bool
	hasPrev  bool
	calls    []string
	duration []func(float64)
}

func (f *fakeEngine) Load(*core.Playlist, int) error { return nil }

func (f *fakeEngine) OnStatus(fn func(core.StatusEvent)) core.Subscription {
	return f.status.Add(fn)
}

func (f *fakeEngine) OnTick(fn func(core.TimeTick)) core.Subscription {
	return f.ticks.Add(fn)
}

func (f *fakeEngine) Play()         { f.calls = append(f.calls, "play") }
func (f *fakeEngine) Pause()        { f.calls = append(f.calls, "pause") }
func (f *fakeEngine) PlayNext()     { f.calls = append(f.calls, "next") }
func (f *fakeEngine) PlayPrevious() { f.calls = append(f.calls, "previous") }

func (f *fakeEngine) Seek(seconds float64) {
	f.calls = append(f.calls, fmt.Sprintf("seek:%g", seconds))
}

func (f *fakeEngine) SeekBy(delta float64) {
	f.calls = append(f.calls, fmt.Sprintf("seekby:%g", delta))
}

func (f *fakeEngine) HasNext() bool     { return f.hasNext }
func (f *fakeEngine) HasPrevious() bool { return f.hasPrev }

func (f *fakeEngine) Duration(fn func(float64)) {
	f.duration = append(f.duration, fn)
}

func (f *fakeEngine) CurrentTrack() core.Track { return f.track }

// emit sends a status event to subscribers.
func (f *fakeEngine) emit(s core.Status) {
	f.status.Emit(core.StatusEvent{Status: s})
}

// tick sends a time report to subscribers.
func (f *fakeEngine) tick(seconds float64) {
	f.ticks.Emit(core.TimeTick{Seconds: seconds})
}

// answerDuration resolves the oldest pending duration request.
func (f *fakeEngine) answerDuration(seconds float64) {
	fn := f.duration[0]
	f.duration = f.duration[1:]
	fn(seconds)
}

// load emits LOADED for track and answers the duration request.
func (f *fakeEngine) load(track core.Track, seconds float64) {
	f.track = track
	f.emit(core.StatusLoaded)
	f.answerDuration(seconds)
}

var _ core.Engine = (*fakeEngine)(nil)
