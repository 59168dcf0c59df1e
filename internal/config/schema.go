package config

// Config is the root configuration structure.
type Config struct {
	Controls  ControlsConfig  `toml:"controls" json:"controls"`
	Thumbnail ThumbnailConfig `toml:"thumbnail" json:"thumbnail"`
	Style     StyleConfig     `toml:"style" json:"style"`
	Colors    ColorsConfig    `toml:"colors" json:"colors"`
	Slider    SliderConfig    `toml:"slider" json:"slider"`
	Locale    LocaleConfig    `toml:"locale" json:"locale"`
	TUI       TUIConfig       `toml:"tui" json:"tui"`
	Log       LogConfig       `toml:"log" json:"log"`
}

// ControlsConfig holds transport button settings.
type ControlsConfig struct {
	SkipButtons bool `toml:"skip_buttons" json:"skip_buttons"`
	SkipSeconds int  `toml:"skip_seconds" json:"skip_seconds"`
}

// ThumbnailConfig holds the artwork box size in terminal cells.
type ThumbnailConfig struct {
	Width  int `toml:"width" json:"width"`
	Height int `toml:"height" json:"height"`
}

// StyleConfig holds text styling for title, author and time labels.
type StyleConfig struct {
	TitleColor  string `toml:"title_color" json:"title_color"`
	TitleBold   bool   `toml:"title_bold" json:"title_bold"`
	AuthorColor string `toml:"author_color" json:"author_color"`
	TimeColor   string `toml:"time_color" json:"time_color"`
}

// ColorsConfig holds control tints. Button colors fall back to Active and
// Inactive when empty.
type ColorsConfig struct {
	Active         string `toml:"active" json:"active"`
	Inactive       string `toml:"inactive" json:"inactive"`
	ActiveButton   string `toml:"active_button" json:"active_button"`
	InactiveButton string `toml:"inactive_button" json:"inactive_button"`
}

// ActiveButtonColor returns the tint for enabled buttons.
func (c ColorsConfig) ActiveButtonColor() string {
	if c.ActiveButton != "" {
		return c.ActiveButton
	}
	return c.Active
}

// InactiveButtonColor returns the tint for disabled buttons.
func (c ColorsConfig) InactiveButtonColor() string {
	if c.InactiveButton != "" {
		return c.InactiveButton
	}
	return c.Inactive
}

// SliderConfig holds scrub bar tints.
type SliderConfig struct {
	MinimumTrack string `toml:"minimum_track" json:"minimum_track"`
	MaximumTrack string `toml:"maximum_track" json:"maximum_track"`
	Thumb        string `toml:"thumb" json:"thumb"`
}

// LocaleConfig selects digit rendering.
type LocaleConfig struct {
	Language string `toml:"language" json:"language"`
}

// TUIConfig holds terminal UI settings.
type TUIConfig struct {
	RefreshInterval int `toml:"refresh_interval" json:"refresh_interval"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level" json:"level"`
	File  string `toml:"file" json:"file"`
	JSON  bool   `toml:"json" json:"json"`
}
