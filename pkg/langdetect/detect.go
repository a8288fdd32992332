// Package langdetect guesses a fence language tag for untagged code blocks in
// assistant answers. It combines go-enry's shebang and classifier heuristics
// with a few cheap textual probes for the snippets assistants emit most.
package langdetect

import (
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Fence tags returned by Detect.
const (
	Go         = "go"
	Python     = "python"
	JavaScript = "javascript"
	JSON       = "json"
	YAML       = "yaml"
	HTML       = "html"
	SQL        = "sql"
	Rust       = "rust"
	Dockerfile = "dockerfile"
	Bash       = "bash"
)

// classifierCandidates restricts go-enry's classifier to languages that show
// up in chat answers.
//
//nolint:gochecknoglobals // Read-only lookup table.
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Dockerfile",
}

// probe inspects a snippet and returns a tag, or "" to pass.
type probe func(body, trimmed string) string

// probes run in order; the first non-empty answer wins. Specific markers
// (package clause, doctype, leading brace) come before loose ones.
//
//nolint:gochecknoglobals // Read-only dispatch table.
var probes = []probe{
	probeGo,
	probePython,
	probeHTML,
	probeJSON,
	probeDockerfile,
	probeSQL,
	probeRust,
	probeJavaScript,
	probeYAML,
}

// Detect returns a fence tag for body, or "" when no guess is confident.
func Detect(body string) string {
	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return ""
	}

	if lang, safe := enry.GetLanguageByShebang([]byte(trimmed)); safe {
		return normalize(lang)
	}

	for _, p := range probes {
		if lang := p(body, trimmed); lang != "" {
			return lang
		}
	}

	if lang, safe := enry.GetLanguageByClassifier([]byte(body), classifierCandidates); safe && lang != "" {
		return normalize(lang)
	}

	return ""
}

// Func adapts Detect to callers that take a detector function.
func Func() func(string) string {
	return Detect
}

func probeGo(_, trimmed string) string {
	if strings.HasPrefix(trimmed, "package ") {
		return Go
	}
	return ""
}

func probePython(body, trimmed string) string {
	switch {
	case strings.Contains(body, "def ") && strings.Contains(body, "):"):
		return Python
	case strings.Contains(body, "__name__") || strings.Contains(body, "__main__"):
		return Python
	case strings.HasPrefix(trimmed, "import ") && !strings.Contains(body, "import ("):
		return Python
	case strings.HasPrefix(trimmed, "from ") && strings.Contains(body, " import "):
		return Python
	}
	return ""
}

func probeHTML(_, trimmed string) string {
	lower := strings.ToLower(trimmed)
	for _, marker := range []string{"<!doctype html", "<html", "<head>", "<body>"} {
		if strings.Contains(lower, marker) {
			return HTML
		}
	}
	return ""
}

func probeJSON(_, trimmed string) string {
	if (strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[")) && strings.Contains(trimmed, `"`) {
		return JSON
	}
	return ""
}

func probeDockerfile(body, trimmed string) string {
	if strings.HasPrefix(trimmed, "FROM ") ||
		(strings.Contains(body, "\nFROM ") && strings.Contains(body, "\nRUN ")) ||
		(strings.Contains(body, "WORKDIR ") && strings.Contains(body, "COPY ")) {
		return Dockerfile
	}
	return ""
}

func probeSQL(_, trimmed string) string {
	upper := strings.ToUpper(trimmed)
	for _, verb := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
		if strings.HasPrefix(upper, verb) {
			return SQL
		}
	}
	return ""
}

func probeRust(body, _ string) string {
	if strings.Contains(body, "fn main()") ||
		strings.Contains(body, "println!") ||
		strings.Contains(body, "let mut ") {
		return Rust
	}
	return ""
}

func probeJavaScript(body, _ string) string {
	for _, marker := range []string{"=>", "const ", "let ", "console.log"} {
		if strings.Contains(body, marker) {
			return JavaScript
		}
	}
	return ""
}

// probeYAML counts "key: value" lines and root list items.
func probeYAML(body, _ string) string {
	pairs := 0
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.Contains(line, ": ") &&
			!strings.ContainsAny(line, "({") &&
			!strings.HasPrefix(line, `"`) {
			pairs++
		}
		if strings.HasPrefix(line, "- ") {
			pairs++
		}
	}
	if pairs >= 2 {
		return YAML
	}
	return ""
}

// normalize converts go-enry language names to fence tags.
func normalize(lang string) string {
	if lang == "Shell" {
		return Bash
	}
	return strings.ToLower(lang)
}
