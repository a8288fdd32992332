package config

import (
	"bytes"
	"fmt"
	"strings"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full writes every setting with its default value instead of a mostly
	// commented-out minimal file.
	Full bool
}

// templateHeader opens every generated file.
const templateHeader = `# safeagent configuration
# Controls how assistant answers are rendered by "safeagent render".
`

// GenerateTemplate creates a commented configuration file.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(templateHeader)
	buf.WriteString("\n")

	defaults := NewConfig()
	for _, s := range templateSettings(defaults) {
		buf.WriteString("# " + s.help + "\n")
		line := s.key + ": " + s.value + "\n"
		if !opts.Full && !s.minimal {
			line = "# " + line
		}
		if s.list != nil {
			line = s.key + ":\n"
			for _, item := range s.list {
				line += fmt.Sprintf("  - %q\n", item)
			}
			if !opts.Full && !s.minimal {
				line = commentOut(line)
			}
		}
		buf.WriteString(line)
		buf.WriteString("\n")
	}

	return append(bytes.TrimRight(buf.Bytes(), "\n"), '\n'), nil
}

type templateSetting struct {
	key     string
	help    string
	value   string
	list    []string
	minimal bool
}

func templateSettings(defaults *Config) []templateSetting {
	return []templateSetting{
		{key: "format", help: "Output format: text, json, html, or tree", value: string(defaults.Format), minimal: true},
		{key: "color", help: "Terminal colors: auto, always, or never", value: defaults.Color},
		{
			key:     "default_language",
			help:    "Label for code blocks whose fence has no language tag",
			value:   defaults.DefaultLanguage,
			minimal: true,
		},
		{
			key:   "detect_language",
			help:  "Guess the language of untagged code blocks",
			value: fmt.Sprintf("%t", defaults.DetectLanguageEnabled()),
		},
		{key: "width", help: "Output width in columns (0 = terminal width)", value: "0"},
		{key: "jobs", help: "Number of parallel workers (0 = auto)", value: "0"},
		{key: "extensions", help: "File extensions rendered when walking directories", list: defaults.Extensions},
		{key: "ignore", help: "Glob patterns to skip", list: []string{"node_modules/**", "vendor/**"}},
	}
}

func commentOut(block string) string {
	lines := strings.Split(strings.TrimSuffix(block, "\n"), "\n")
	for i, line := range lines {
		lines[i] = "# " + line
	}
	return strings.Join(lines, "\n") + "\n"
}
