package runner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchGlob(t *testing.T) {
	t.Parallel()

	tests := []struct {
		pattern string
		name    string
		want    bool
	}{
		{"*.md", "a.md", true},
		{"*.md", "deep/dir/a.md", true},
		{"*.md", "a.txt", false},
		{"docs/*.md", "docs/a.md", true},
		{"docs/*.md", "docs/sub/a.md", false},
		{"docs/**", "docs", true},
		{"docs/**", "docs/sub/a.md", true},
		{"docs/**", "other/docs/a.md", false},
		{"**/vendor", "a/b/vendor", true},
		{"**/vendor", "vendor", true},
		{"**/vendor", "vendored", false},
		{"a/**/z.md", "a/z.md", true},
		{"a/**/z.md", "a/b/c/z.md", true},
		{"a/**/z.md", "a/b/c/y.md", false},
		{"**", "anything/at/all", true},
		{"[", "[", false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+" "+tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, matchGlob(tt.pattern, tt.name))
		})
	}
}

func TestDisplayPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "-", displayPath("/work", "-"))
	assert.Equal(t, "docs/a.md", displayPath("/work", "/work/docs/a.md"))
	assert.Equal(t, "/elsewhere/a.md", displayPath("/work", "/elsewhere/a.md"))
}
