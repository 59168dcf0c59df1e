package controls

import (
	"github.com/sirupsen/logrus"
	"github.com/tessro/deck/internal/config"
	"github.com/tessro/deck/internal/log"
)

// Option configures a Reconciler, Dispatcher or Controls.
type Option func(*options)

type options struct {
	log         *logrus.Entry
	skipEnabled bool
	skipSeconds float64
}

func newOptions(opts []Option) options {
	o := options{
		log:         log.For("controls"),
		skipSeconds: 15,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithLogger sets the log entry used for diagnostics.
func WithLogger(entry *logrus.Entry) Option {
	return func(o *options) {
		if entry != nil {
			o.log = entry
		}
	}
}

// WithSkip enables the skip-by-seconds buttons with the given interval.
func WithSkip(enabled bool, seconds float64) Option {
	return func(o *options) {
		o.skipEnabled = enabled
		if seconds > 0 {
			o.skipSeconds = seconds
		}
	}
}

// WithConfig applies the [controls] section of the configuration.
func WithConfig(cfg config.ControlsConfig) Option {
	return WithSkip(cfg.SkipButtons, float64(cfg.SkipSeconds))
}
