package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error types for common failure scenarios.
var (
	ErrEngine          = errors.New("engine error")
	ErrOutOfRange      = errors.New("no adjacent track")
	ErrStaleSeek       = errors.New("stale time tick")
	ErrSkipDisabled    = errors.New("skip buttons disabled")
	ErrNotLoaded       = errors.New("no playlist loaded")
	ErrEmptyPlaylist   = errors.New("playlist is empty")
	ErrInvalidPlaylist = errors.New("invalid playlist")
	ErrConfigNotFound  = errors.New("config file not found")
	ErrInvalidConfig   = errors.New("invalid configuration")
)

// DeckError wraps an error with a user-friendly suggestion.
type DeckError struct {
	Err        error
	Suggestion string
}

func (e *DeckError) Error() string {
	return e.Err.Error()
}

func (e *DeckError) Unwrap() error {
	return e.Err
}

// WithSuggestion wraps an error with a helpful suggestion.
func WithSuggestion(err error, suggestion string) error {
	return &DeckError{
		Err:        err,
		Suggestion: suggestion,
	}
}

// GetSuggestion returns a suggestion for the given error.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	var deckErr *DeckError
	if errors.As(err, &deckErr) && deckErr.Suggestion != "" {
		return deckErr.Suggestion
	}

	errStr := strings.ToLower(err.Error())

	if errors.Is(err, ErrEmptyPlaylist) || errors.Is(err, ErrNotLoaded) {
		return "Pass a playlist file with at least one [[track]] entry"
	}

	if errors.Is(err, ErrInvalidPlaylist) || strings.Contains(errStr, "playlist") {
		return "Run 'deck playlist <file>' to see which tracks were rejected"
	}

	if errors.Is(err, ErrSkipDisabled) {
		return "Enable skip buttons with 'deck config set controls.skip_buttons true'"
	}

	if errors.Is(err, ErrOutOfRange) {
		return "There is no track in that direction"
	}

	if errors.Is(err, ErrConfigNotFound) {
		return "Run 'deck config init' to create a configuration file"
	}

	if errors.Is(err, ErrInvalidConfig) || strings.Contains(errStr, "config") {
		return "Run 'deck config show' to check your configuration"
	}

	return ""
}

// Format returns a formatted error message with suggestion if available.
func Format(err error) string {
	if err == nil {
		return ""
	}

	suggestion := GetSuggestion(err)
	if suggestion != "" {
		return fmt.Sprintf("Error: %s\n\nSuggestion: %s", err.Error(), suggestion)
	}

	return fmt.Sprintf("Error: %s", err.Error())
}

// PartialResult represents a result that may have partial failures.
type PartialResult[T any] struct {
	Data   T
	Errors []error
}

// HasErrors returns true if there were any errors.
func (p *PartialResult[T]) HasErrors() bool {
	return len(p.Errors) > 0
}

// AddError adds an error to the partial result.
func (p *PartialResult[T]) AddError(err error) {
	if err != nil {
		p.Errors = append(p.Errors, err)
	}
}

// ErrorSummary returns a summary of all errors.
func (p *PartialResult[T]) ErrorSummary() string {
	if len(p.Errors) == 0 {
		return ""
	}
	if len(p.Errors) == 1 {
		return p.Errors[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d errors occurred:\n", len(p.Errors)))
	for i, err := range p.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}
