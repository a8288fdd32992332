package configloader

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/Torykoon/Safeagent/pkg/config"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the name of the invalid field (e.g., "format").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string

	// Line is the line number in the config file (if known).
	Line int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		if e.Line > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", e.FilePath, e.Line))
		} else {
			parts = append(parts, e.FilePath)
		}
	}

	if e.Field != "" {
		parts = append(parts, e.Field)
	}

	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

func (r *ValidationResult) addError(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) addWarning(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// Validate checks a merged configuration.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.addError("format", cfg.Format,
			"invalid format %q (expected text, json, html or tree)", cfg.Format)
	}

	switch cfg.Color {
	case "", config.ColorAuto, config.ColorAlways, config.ColorNever:
	default:
		result.addError("color", cfg.Color, "invalid color mode %q (expected auto, always or never)", cfg.Color)
	}

	if cfg.Jobs < 0 {
		result.addError("jobs", cfg.Jobs, "must be >= 0, got %d", cfg.Jobs)
	}
	if cfg.Width < 0 {
		result.addError("width", cfg.Width, "must be >= 0, got %d", cfg.Width)
	}

	if !isWord(cfg.DefaultLanguage) {
		result.addError("default_language", cfg.DefaultLanguage,
			"%q must be a single word of letters, digits or underscores", cfg.DefaultLanguage)
	}

	for _, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") {
			result.addWarning("extensions", ext, "%q does not start with a dot and will never match", ext)
		}
	}

	for _, pattern := range cfg.Ignore {
		if _, err := filepath.Match(strings.ReplaceAll(pattern, "**", "*"), ""); err != nil {
			result.addError("ignore", pattern, "invalid glob %q: %v", pattern, err)
		}
	}

	return result
}

// isWord reports whether s is empty or made only of word characters.
func isWord(s string) bool {
	for _, r := range s {
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
