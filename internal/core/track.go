package core

// Track holds the metadata of a playable audio track as reported by the engine.
type Track struct {
	Name      string    `json:"name" toml:"name"`
	Title     string    `json:"title" toml:"title"`
	Author    string    `json:"author" toml:"author"`
	Thumbnail Thumbnail `json:"thumbnail" toml:"-"`
	Index     int       `json:"index" toml:"-"`

	// Source is an opaque media reference only the engine interprets.
	Source string `json:"source,omitempty" toml:"source"`
	// Duration is a length hint in seconds. The engine may report the real
	// duration later through Engine.Duration.
	Duration float64 `json:"duration,omitempty" toml:"duration"`
}

// DisplayTitle returns the title, falling back to the name.
func (t *Track) DisplayTitle() string {
	if t == nil {
		return ""
	}
	if t.Title != "" {
		return t.Title
	}
	return t.Name
}
