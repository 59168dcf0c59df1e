// Package playlist reads TOML playlist files.
//
// A playlist file is a list of [[track]] tables:
//
//	[[track]]
//	title = "Morning"
//	author = "Field Recordings"
//	thumbnail = "https://example.com/morning.png"
//	source = "audio/morning.mp3"
//	duration = 184.5
package playlist

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/tessro/deck/internal/core"
	deckerrors "github.com/tessro/deck/internal/errors"
)

// file is the on-disk layout.
type file struct {
	Tracks []entry `toml:"track"`
}

type entry struct {
	Name      string  `toml:"name"`
	Title     string  `toml:"title"`
	Author    string  `toml:"author"`
	Thumbnail string  `toml:"thumbnail"`
	Source    string  `toml:"source"`
	Duration  float64 `toml:"duration"`
}

// Result is a loaded playlist along with the entries that were skipped.
type Result = deckerrors.PartialResult[*core.Playlist]

// Load reads and parses the playlist file at path.
func Load(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read playlist: %w", err)
	}
	return Parse(data)
}

// Parse decodes playlist data. Invalid entries are skipped and reported in
// the result's Errors; an error is returned only when the data cannot be
// decoded or no track survives.
func Parse(data []byte) (*Result, error) {
	var f file
	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", deckerrors.ErrInvalidPlaylist, err)
	}

	result := &Result{}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		result.AddError(fmt.Errorf("unknown keys ignored: %s", strings.Join(keys, ", ")))
	}

	tracks := make([]core.Track, 0, len(f.Tracks))
	for i, e := range f.Tracks {
		t, err := e.track()
		if err != nil {
			result.AddError(fmt.Errorf("track %d: %w", i+1, err))
			continue
		}
		tracks = append(tracks, t)
	}

	if len(tracks) == 0 {
		if result.HasErrors() {
			return nil, fmt.Errorf("%w: %s", deckerrors.ErrEmptyPlaylist, result.ErrorSummary())
		}
		return nil, deckerrors.ErrEmptyPlaylist
	}

	result.Data = core.NewPlaylist(tracks...)
	return result, nil
}

func (e entry) track() (core.Track, error) {
	name := strings.TrimSpace(e.Name)
	title := strings.TrimSpace(e.Title)
	if name == "" && title == "" {
		return core.Track{}, fmt.Errorf("%w: needs a title or name", deckerrors.ErrInvalidPlaylist)
	}
	if e.Duration < 0 {
		return core.Track{}, fmt.Errorf("%w: negative duration %g", deckerrors.ErrInvalidPlaylist, e.Duration)
	}
	return core.Track{
		Name:      name,
		Title:     title,
		Author:    strings.TrimSpace(e.Author),
		Thumbnail: core.ParseThumbnail(e.Thumbnail),
		Source:    e.Source,
		Duration:  e.Duration,
	}, nil
}
