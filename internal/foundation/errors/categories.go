package errors

import (
	"log/slog"
	"maps"
	"slices"
)

// ErrorCategory represents the broad category of an error for classification and routing.
type ErrorCategory string

const (
	// CategoryValidation covers rejected arguments and invalid input values.
	CategoryValidation ErrorCategory = "validation"
	CategoryConfig     ErrorCategory = "config"
	CategoryNotFound   ErrorCategory = "not_found"
	// CategoryState is used when an operation is called before its prerequisites ran
	// (for example querying the content cache before anything was loaded).
	CategoryState ErrorCategory = "state"

	// CategoryContent covers content file parsing and persistence.
	CategoryContent    ErrorCategory = "content"
	CategoryTheme      ErrorCategory = "theme"
	CategoryGeneration ErrorCategory = "generation"
	CategoryFileSystem ErrorCategory = "filesystem"
	CategoryHistory    ErrorCategory = "history"

	CategoryRuntime  ErrorCategory = "runtime"
	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates the impact level of an error.
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops the run
	SeverityError   ErrorSeverity = "error"   // Fails the current operation
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded output
	SeverityInfo    ErrorSeverity = "info"    // Informational, no impact
)

func (s ErrorSeverity) level() slog.Level {
	switch s {
	case SeverityInfo:
		return slog.LevelInfo
	case SeverityWarning:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

// traits describe how a category is built and presented.
type traits struct {
	severity ErrorSeverity // default severity of new errors
	exitCode int
	display  displayMode
}

type displayMode int

const (
	displayPrefixed displayMode = iota // "category: message"
	displayMessage                     // message only
	displayHidden                      // generic text unless verbose
)

var categoryTraits = map[ErrorCategory]traits{
	CategoryValidation: {SeverityError, 2, displayMessage},
	CategoryNotFound:   {SeverityError, 3, displayMessage},
	CategoryState:      {SeverityError, 4, displayPrefixed},
	CategoryConfig:     {SeverityFatal, 7, displayMessage},
	CategoryInternal:   {SeverityFatal, 10, displayHidden},
	CategoryTheme:      {SeverityFatal, 11, displayMessage},
	CategoryContent:    {SeverityError, 11, displayPrefixed},
	CategoryGeneration: {SeverityError, 11, displayPrefixed},
	CategoryFileSystem: {SeverityError, 11, displayPrefixed},
	CategoryHistory:    {SeverityError, 12, displayPrefixed},
	CategoryRuntime:    {SeverityError, 12, displayHidden},
}

func (c ErrorCategory) traits() traits {
	if t, ok := categoryTraits[c]; ok {
		return t
	}
	return traits{severity: SeverityError, exitCode: 1}
}

// ExitCode is the process exit status for errors of this category.
func (c ErrorCategory) ExitCode() int { return c.traits().exitCode }

// ErrorContext carries structured details of an error, such as the path or
// stage it concerns.
type ErrorContext map[string]any

// Set stores value under key, allocating the map when needed.
func (c ErrorContext) Set(key string, value any) ErrorContext {
	if c == nil {
		c = ErrorContext{}
	}
	c[key] = value
	return c
}

// GetString returns the value under key when it is a string.
func (c ErrorContext) GetString(key string) (string, bool) {
	s, ok := c[key].(string)
	return s, ok
}

// Merge returns a new context holding c overlaid with other.
func (c ErrorContext) Merge(other ErrorContext) ErrorContext {
	out := make(ErrorContext, len(c)+len(other))
	maps.Copy(out, c)
	maps.Copy(out, other)
	return out
}

// attrs renders the context as slog attributes sorted by key.
func (c ErrorContext) attrs() []slog.Attr {
	keys := slices.Sorted(maps.Keys(c))
	out := make([]slog.Attr, 0, len(keys))
	for _, k := range keys {
		out = append(out, slog.Any(k, c[k]))
	}
	return out
}
