package core

import "fmt"

// Playlist is an ordered list of tracks owned by the host application.
type Playlist struct {
	Tracks []Track `json:"tracks"`
}

// NewPlaylist builds a playlist and assigns each track its position index.
func NewPlaylist(tracks ...Track) *Playlist {
	p := &Playlist{Tracks: make([]Track, len(tracks))}
	for i, t := range tracks {
		t.Index = i
		p.Tracks[i] = t
	}
	return p
}

// At returns the track at index i, or nil if i is out of range.
func (p *Playlist) At(i int) *Track {
	if p == nil || i < 0 || i >= len(p.Tracks) {
		return nil
	}
	return &p.Tracks[i]
}

// HasNext returns true if a track follows index i.
func (p *Playlist) HasNext(i int) bool {
	return p.At(i) != nil && i < len(p.Tracks)-1
}

// HasPrevious returns true if a track precedes index i.
func (p *Playlist) HasPrevious(i int) bool {
	return p.At(i) != nil && i > 0
}

// Position returns a one-based "n/total" label for index i.
func (p *Playlist) Position(i int) string {
	return fmt.Sprintf("%d/%d", i+1, p.Len())
}

// Len returns the total number of tracks in the playlist.
func (p *Playlist) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Tracks)
}

// IsEmpty returns true if the playlist has no tracks.
func (p *Playlist) IsEmpty() bool {
	return p.Len() == 0
}
