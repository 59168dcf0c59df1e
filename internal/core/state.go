package core

// Snapshot is the view's complete playback state. It is replaced wholesale on
// every update and handed out by value.
type Snapshot struct {
	Duration    float64 `json:"duration"`
	CurrentTime float64 `json:"current_time"`
	Track       *Track  `json:"track"`
	IsPlaying   bool    `json:"is_playing"`
}

// HasTrack returns true if a track has been loaded.
func (s Snapshot) HasTrack() bool {
	return s.Track != nil
}

// ProgressPercent returns playback progress as a percentage (0-100).
func (s Snapshot) ProgressPercent() float64 {
	if s.Duration <= 0 {
		return 0
	}
	p := s.CurrentTime / s.Duration * 100
	if p > 100 {
		return 100
	}
	if p < 0 {
		return 0
	}
	return p
}

// Remaining returns the seconds left in the track.
func (s Snapshot) Remaining() float64 {
	if s.Duration <= s.CurrentTime {
		return 0
	}
	return s.Duration - s.CurrentTime
}

// TransportAvailability tells which adjacent-track controls are enabled.
// It is computed on demand and never stored.
type TransportAvailability struct {
	HasNext     bool `json:"has_next"`
	HasPrevious bool `json:"has_previous"`
}
