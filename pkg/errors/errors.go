package errors

import (
	"fmt"
)

// ConfigError reports a grid option that cannot be honoured. These are
// fatal: the grid refuses to guess a fallback.
type ConfigError struct {
	Option  string
	Value   any
	Message string
	Err     error
}

// NewConfigError constructs a ConfigError for the named option.
func NewConfigError(option string, value any, message string) error {
	return &ConfigError{Option: option, Value: value, Message: message}
}

func (e *ConfigError) Error() string {
	if e == nil {
		return ""
	}
	if e.Option != "" {
		return fmt.Sprintf("config error: %s=%v: %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("config error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ConfigError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// DuplicateKeyError is returned when two concurrently rendered items share an identity key.
type DuplicateKeyError struct {
	Key   string
	First int
	Again int
}

// NewDuplicateKeyError constructs a DuplicateKeyError.
func NewDuplicateKeyError(key string, first, again int) error {
	return &DuplicateKeyError{Key: key, First: first, Again: again}
}

func (e *DuplicateKeyError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("duplicate item key %q at positions %d and %d", e.Key, e.First, e.Again)
}

// ParseError represents a YAML parsing failure with optional line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures grid document validation issues.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ScriptError indicates a script-defined transition profile failed to load or run.
type ScriptError struct {
	Profile string
	Phase   string
	Err     error
}

// NewScriptError constructs a ScriptError for the given profile and phase.
func NewScriptError(profile, phase string, err error) error {
	return &ScriptError{Profile: profile, Phase: phase, Err: err}
}

func (e *ScriptError) Error() string {
	if e == nil {
		return ""
	}
	if e.Phase != "" {
		return fmt.Sprintf("script error [%s.%s]: %v", e.Profile, e.Phase, e.Err)
	}
	return fmt.Sprintf("script error [%s]: %v", e.Profile, e.Err)
}

// Unwrap exposes the root error.
func (e *ScriptError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
