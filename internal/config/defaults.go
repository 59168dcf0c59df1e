package config

// Default returns a Config populated with sensible defaults.
func Default() *Config {
	return &Config{
		Controls: ControlsConfig{
			SkipButtons: false,
			SkipSeconds: 15,
		},
		Thumbnail: ThumbnailConfig{
			Width:  24,
			Height: 8,
		},
		Style: StyleConfig{
			TitleColor:  "#FFFFFF",
			TitleBold:   true,
			AuthorColor: "#FFFFFF",
			TimeColor:   "#FFFFFF",
		},
		Colors: ColorsConfig{
			Active:   "#FFFFFF",
			Inactive: "#808080",
		},
		Slider: SliderConfig{
			MinimumTrack: "#2ECC71",
			MaximumTrack: "#FFFFFF",
			Thumb:        "#2ECC71",
		},
		Locale: LocaleConfig{
			Language: "en",
		},
		TUI: TUIConfig{
			RefreshInterval: 250,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// ApplyDefaults fills in zero values with sensible defaults.
func (c *Config) ApplyDefaults() {
	d := Default()

	// Controls
	if c.Controls.SkipSeconds == 0 {
		c.Controls.SkipSeconds = d.Controls.SkipSeconds
	}

	// Thumbnail
	if c.Thumbnail.Width == 0 {
		c.Thumbnail.Width = d.Thumbnail.Width
	}
	if c.Thumbnail.Height == 0 {
		c.Thumbnail.Height = d.Thumbnail.Height
	}

	// Style
	if c.Style.TitleColor == "" {
		c.Style.TitleColor = d.Style.TitleColor
	}
	if c.Style.AuthorColor == "" {
		c.Style.AuthorColor = d.Style.AuthorColor
	}
	if c.Style.TimeColor == "" {
		c.Style.TimeColor = d.Style.TimeColor
	}

	// Colors
	if c.Colors.Active == "" {
		c.Colors.Active = d.Colors.Active
	}
	if c.Colors.Inactive == "" {
		c.Colors.Inactive = d.Colors.Inactive
	}

	// Slider
	if c.Slider.MinimumTrack == "" {
		c.Slider.MinimumTrack = d.Slider.MinimumTrack
	}
	if c.Slider.MaximumTrack == "" {
		c.Slider.MaximumTrack = d.Slider.MaximumTrack
	}
	if c.Slider.Thumb == "" {
		c.Slider.Thumb = d.Slider.Thumb
	}

	// Locale
	if c.Locale.Language == "" {
		c.Locale.Language = d.Locale.Language
	}

	// TUI
	if c.TUI.RefreshInterval == 0 {
		c.TUI.RefreshInterval = d.TUI.RefreshInterval
	}

	// Log
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
}
