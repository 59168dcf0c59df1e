package wizard

import (
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/tessro/deck/internal/config"
	"golang.org/x/text/language"
)

// Languages offered by the config form. Any BCP 47 tag works in the file.
var Languages = []string{"en", "ar", "fa", "de", "fr", "es", "ja"}

// configAnswers holds form values before they are copied into a Config.
type configAnswers struct {
	skipButtons  bool
	skipSeconds  string
	language     string
	active       string
	inactive     string
	minimumTrack string
	logFile      string
}

func answersFrom(cfg *config.Config) *configAnswers {
	return &configAnswers{
		skipButtons:  cfg.Controls.SkipButtons,
		skipSeconds:  strconv.Itoa(cfg.Controls.SkipSeconds),
		language:     cfg.Locale.Language,
		active:       cfg.Colors.Active,
		inactive:     cfg.Colors.Inactive,
		minimumTrack: cfg.Slider.MinimumTrack,
		logFile:      cfg.Log.File,
	}
}

// apply copies the answers into cfg. Values are assumed validated.
func (a *configAnswers) apply(cfg *config.Config) {
	cfg.Controls.SkipButtons = a.skipButtons
	if n, err := strconv.Atoi(strings.TrimSpace(a.skipSeconds)); err == nil {
		cfg.Controls.SkipSeconds = n
	}
	cfg.Locale.Language = a.language
	cfg.Colors.Active = a.active
	cfg.Colors.Inactive = a.inactive
	cfg.Slider.MinimumTrack = a.minimumTrack
	cfg.Slider.Thumb = a.minimumTrack
	cfg.Log.File = strings.TrimSpace(a.logFile)
}

func validateSeconds(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return errors.New("enter a positive number of seconds")
	}
	return nil
}

func validateLanguage(s string) error {
	_, err := language.Parse(s)
	return err
}

// NewConfigForm builds the form used by 'deck config init'. Answers are
// copied into cfg by the returned apply function once the form completes.
func NewConfigForm(cfg *config.Config) (*huh.Form, func()) {
	a := answersFrom(cfg)

	options := make([]huh.Option[string], 0, len(Languages))
	for _, l := range Languages {
		tag := language.Make(l)
		options = append(options, huh.NewOption(tag.String(), l))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Show skip buttons?").
				Description("Adds skip-back and skip-forward buttons next to previous/next").
				Value(&a.skipButtons),
			huh.NewInput().
				Title("Skip interval (seconds)").
				Value(&a.skipSeconds).
				Validate(validateSeconds),
			huh.NewSelect[string]().
				Title("Language").
				Description("Controls the digits used in time labels").
				Options(options...).
				Value(&a.language).
				Validate(validateLanguage),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Active color").
				Value(&a.active).
				Validate(config.ValidateColor),
			huh.NewInput().
				Title("Inactive color").
				Value(&a.inactive).
				Validate(config.ValidateColor),
			huh.NewInput().
				Title("Scrub bar color").
				Value(&a.minimumTrack).
				Validate(config.ValidateColor),
			huh.NewInput().
				Title("Log file").
				Description("Leave empty to disable logging").
				Value(&a.logFile),
		),
	)

	return form, func() { a.apply(cfg) }
}

// RunConfigForm runs the config form and updates cfg on completion.
func RunConfigForm(cfg *config.Config) error {
	form, apply := NewConfigForm(cfg)
	if err := form.Run(); err != nil {
		return err
	}
	apply()
	return nil
}
