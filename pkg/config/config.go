// Package config defines the configuration types for safeagent.
// These are plain data structures; loading and merging live in internal/configloader.
package config

// OutputFormat selects how rendered documents are written.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatHTML OutputFormat = "html"
	FormatTree OutputFormat = "tree"
)

// IsValid reports whether f is a known output format.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatHTML, FormatTree:
		return true
	default:
		return false
	}
}

// Color modes for terminal output.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// DefaultLanguage labels untagged code blocks unless configured otherwise.
const DefaultLanguage = "text"

// Config is the root configuration structure.
type Config struct {
	// Format is the output format.
	Format OutputFormat `yaml:"format,omitempty"`

	// Color controls terminal colors: auto, always or never.
	Color string `yaml:"color,omitempty"`

	// DefaultLanguage labels code blocks whose fence has no language tag.
	DefaultLanguage string `yaml:"default_language,omitempty"`

	// DetectLanguage guesses a language for untagged code blocks before
	// falling back to DefaultLanguage. Nil means unset.
	DetectLanguage *bool `yaml:"detect_language,omitempty"`

	// Width is the column width for terminal output; 0 uses the terminal width.
	Width int `yaml:"width,omitempty"`

	// Jobs is the number of parallel render workers; 0 uses all CPUs.
	Jobs int `yaml:"jobs,omitempty"`

	// Extensions lists the file extensions picked up from directories.
	Extensions []string `yaml:"extensions,omitempty"`

	// Ignore holds glob patterns for files and directories to skip.
	Ignore []string `yaml:"ignore,omitempty"`

	// CLI-level options (not persisted to config files).

	// Output is a file to write to instead of stdout.
	Output string `yaml:"-"`

	// Compact minimizes JSON and HTML output.
	Compact bool `yaml:"-"`
}

// NewConfig returns a Config with defaults applied.
func NewConfig() *Config {
	detect := false
	return &Config{
		Format:          FormatText,
		Color:           ColorAuto,
		DefaultLanguage: DefaultLanguage,
		DetectLanguage:  &detect,
		Extensions:      DefaultExtensions(),
	}
}

// DefaultExtensions returns the extensions rendered when walking directories.
func DefaultExtensions() []string {
	return []string{".md", ".markdown", ".txt"}
}

// DetectLanguageEnabled reports whether language detection is switched on.
func (c *Config) DetectLanguageEnabled() bool {
	return c != nil && c.DetectLanguage != nil && *c.DetectLanguage
}

// Bool returns a pointer to b, for optional boolean fields.
func Bool(b bool) *bool {
	return &b
}
