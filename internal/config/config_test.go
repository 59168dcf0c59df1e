package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFromAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
[controls]
skip_buttons = true

[colors]
active = "#FF0000"
`)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if !cfg.Controls.SkipButtons {
		t.Error("SkipButtons = false, want true")
	}
	if cfg.Controls.SkipSeconds != 15 {
		t.Errorf("SkipSeconds = %d, want 15", cfg.Controls.SkipSeconds)
	}
	if cfg.Colors.Active != "#FF0000" {
		t.Errorf("Active = %q, want %q", cfg.Colors.Active, "#FF0000")
	}
	if cfg.Colors.Inactive != "#808080" {
		t.Errorf("Inactive = %q, want %q", cfg.Colors.Inactive, "#808080")
	}
	if cfg.Slider.Thumb != "#2ECC71" {
		t.Errorf("Thumb = %q, want %q", cfg.Slider.Thumb, "#2ECC71")
	}
}

func TestEnvOverrides(t *testing.T) {
	path := writeConfig(t, "")
	t.Setenv("DECK_CONTROLS_SKIP_BUTTONS", "true")
	t.Setenv("DECK_CONTROLS_SKIP_SECONDS", "30")
	t.Setenv("DECK_LOCALE_LANGUAGE", "fa")
	t.Setenv("DECK_LOG_LEVEL", "debug")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if !cfg.Controls.SkipButtons {
		t.Error("SkipButtons = false, want true")
	}
	if cfg.Controls.SkipSeconds != 30 {
		t.Errorf("SkipSeconds = %d, want 30", cfg.Controls.SkipSeconds)
	}
	if cfg.Locale.Language != "fa" {
		t.Errorf("Language = %q, want %q", cfg.Locale.Language, "fa")
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Level = %q, want %q", cfg.Log.Level, "debug")
	}
}

func TestButtonColorFallback(t *testing.T) {
	c := ColorsConfig{Active: "#FFFFFF", Inactive: "#808080"}
	if got := c.ActiveButtonColor(); got != "#FFFFFF" {
		t.Errorf("ActiveButtonColor() = %q, want %q", got, "#FFFFFF")
	}
	if got := c.InactiveButtonColor(); got != "#808080" {
		t.Errorf("InactiveButtonColor() = %q, want %q", got, "#808080")
	}

	c.ActiveButton = "#00FF00"
	c.InactiveButton = "#333333"
	if got := c.ActiveButtonColor(); got != "#00FF00" {
		t.Errorf("ActiveButtonColor() = %q, want %q", got, "#00FF00")
	}
	if got := c.InactiveButtonColor(); got != "#333333" {
		t.Errorf("InactiveButtonColor() = %q, want %q", got, "#333333")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"negative skip", func(c *Config) { c.Controls.SkipSeconds = -1 }, "skip_seconds"},
		{"bad color", func(c *Config) { c.Colors.Active = "white" }, "invalid active"},
		{"bad slider", func(c *Config) { c.Slider.Thumb = "#GGGGGG" }, "invalid thumb"},
		{"bad language", func(c *Config) { c.Locale.Language = "not a tag!" }, "invalid language"},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, "invalid log level"},
		{"negative thumbnail", func(c *Config) { c.Thumbnail.Width = -3 }, "width and height"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}
