package config

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/text/language"
)

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if err := c.Controls.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("controls: %w", err))
	}
	if err := c.Thumbnail.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("thumbnail: %w", err))
	}
	if err := c.Style.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("style: %w", err))
	}
	if err := c.Colors.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("colors: %w", err))
	}
	if err := c.Slider.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("slider: %w", err))
	}
	if err := c.Locale.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("locale: %w", err))
	}
	if err := c.TUI.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("tui: %w", err))
	}
	if err := c.Log.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("log: %w", err))
	}

	return errors.Join(errs...)
}

// Validate checks ControlsConfig for errors.
func (c *ControlsConfig) Validate() error {
	if c.SkipSeconds < 0 {
		return errors.New("skip_seconds must be non-negative")
	}
	return nil
}

// Validate checks ThumbnailConfig for errors.
func (c *ThumbnailConfig) Validate() error {
	if c.Width < 0 || c.Height < 0 {
		return errors.New("width and height must be non-negative")
	}
	return nil
}

// Validate checks StyleConfig for errors.
func (c *StyleConfig) Validate() error {
	return validateColors(map[string]string{
		"title_color":  c.TitleColor,
		"author_color": c.AuthorColor,
		"time_color":   c.TimeColor,
	})
}

// Validate checks ColorsConfig for errors.
func (c *ColorsConfig) Validate() error {
	return validateColors(map[string]string{
		"active":          c.Active,
		"inactive":        c.Inactive,
		"active_button":   c.ActiveButton,
		"inactive_button": c.InactiveButton,
	})
}

// Validate checks SliderConfig for errors.
func (c *SliderConfig) Validate() error {
	return validateColors(map[string]string{
		"minimum_track": c.MinimumTrack,
		"maximum_track": c.MaximumTrack,
		"thumb":         c.Thumb,
	})
}

// Validate checks LocaleConfig for errors.
func (c *LocaleConfig) Validate() error {
	if c.Language == "" {
		return nil
	}
	if _, err := language.Parse(c.Language); err != nil {
		return fmt.Errorf("invalid language %q: %w", c.Language, err)
	}
	return nil
}

// Validate checks TUIConfig for errors.
func (c *TUIConfig) Validate() error {
	if c.RefreshInterval < 0 {
		return errors.New("refresh_interval must be non-negative")
	}
	return nil
}

// Validate checks LogConfig for errors.
func (c *LogConfig) Validate() error {
	switch c.Level {
	case "", "trace", "debug", "info", "warn", "error":
		// valid
	default:
		return fmt.Errorf("invalid log level: %s (must be trace, debug, info, warn, or error)", c.Level)
	}
	return nil
}

// validateColors checks that every non-empty value is a hex color.
func validateColors(fields map[string]string) error {
	var errs []error
	for _, name := range slices.Sorted(maps.Keys(fields)) {
		v := fields[name]
		if v == "" {
			continue
		}
		if _, err := colorful.Hex(v); err != nil {
			errs = append(errs, fmt.Errorf("invalid %s %q: must be #RRGGBB", name, v))
		}
	}
	return errors.Join(errs...)
}

// ValidateColor checks a single #RRGGBB value.
func ValidateColor(v string) error {
	if _, err := colorful.Hex(v); err != nil {
		return fmt.Errorf("invalid color %q: must be #RRGGBB", v)
	}
	return nil
}
