package langdetect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Torykoon/Safeagent/pkg/langdetect"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want string
	}{
		{"empty", "", ""},
		{"whitespace", " \n\t", ""},
		{"shebang bash", "#!/bin/bash\necho hello", langdetect.Bash},
		{"shebang sh", "#!/bin/sh\necho hello", langdetect.Bash},
		{"shebang python", "#!/usr/bin/env python3\nprint('hello')", langdetect.Python},
		{"go", "package main\n\nfunc main() {}", langdetect.Go},
		{"python def", "def check(site):\n    return site.ok", langdetect.Python},
		{"python from import", "from pathlib import Path", langdetect.Python},
		{"html", "<!DOCTYPE html>\n<html></html>", langdetect.HTML},
		{"json", `{"site": "A-3", "risk": "high"}`, langdetect.JSON},
		{"dockerfile", "FROM golang:1.25\nRUN go build", langdetect.Dockerfile},
		{"sql", "select * from incidents where grade = 'high';", langdetect.SQL},
		{"rust", "fn main() {\n    println!(\"hi\");\n}", langdetect.Rust},
		{"javascript", "const total = items.map(x => x.count);", langdetect.JavaScript},
		{"yaml", "site: A-3\nworkers: 12\nhazards:\n  - fall", langdetect.YAML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, langdetect.Detect(tt.body))
		})
	}
}

func TestFunc(t *testing.T) {
	t.Parallel()

	detect := langdetect.Func()
	assert.Equal(t, langdetect.Go, detect("package x"))
}

func BenchmarkDetect(b *testing.B) {
	snippets := []string{
		"package main\n\nfunc main() {}",
		"site: A-3\nworkers: 12",
		"just a short note about the checklist",
	}
	for range b.N {
		for _, s := range snippets {
			langdetect.Detect(s)
		}
	}
}
