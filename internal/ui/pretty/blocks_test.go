package pretty_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Torykoon/Safeagent/internal/ui/pretty"
	"github.com/Torykoon/Safeagent/pkg/chatmd"
)

func TestFormatBlock_NoColor(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	tests := []struct {
		name  string
		block chatmd.Block
		want  string
	}{
		{
			name:  "heading",
			block: chatmd.Block{Kind: chatmd.BlockHeading, Level: 2, Spans: []chatmd.Span{chatmd.Plain("점검 항목")}},
			want:  "점검 항목",
		},
		{
			name:  "rule",
			block: chatmd.Block{Kind: chatmd.BlockHorizontalRule},
			want:  "─────",
		},
		{
			name:  "blockquote",
			block: chatmd.Block{Kind: chatmd.BlockBlockquote, Spans: []chatmd.Span{chatmd.Plain("주의")}},
			want:  "│ 주의",
		},
		{
			name:  "bullet",
			block: chatmd.Block{Kind: chatmd.BlockListItem, Spans: []chatmd.Span{chatmd.Plain("a")}},
			want:  "• a",
		},
		{
			name:  "nested bullet",
			block: chatmd.Block{Kind: chatmd.BlockListItem, Nested: true, Spans: []chatmd.Span{chatmd.Plain("b")}},
			want:  "  ◦ b",
		},
		{
			name:  "ordered",
			block: chatmd.Block{Kind: chatmd.BlockListItem, Ordered: true, Index: "12", Spans: []chatmd.Span{chatmd.Plain("c")}},
			want:  "12. c",
		},
		{
			name:  "blank",
			block: chatmd.Block{Kind: chatmd.BlockBlank},
			want:  "",
		},
		{
			name: "paragraph with spans",
			block: chatmd.Block{Kind: chatmd.BlockParagraph, Spans: []chatmd.Span{
				chatmd.Bold("b"), chatmd.Plain(" "), chatmd.Italic("i"), chatmd.Plain(" "),
				chatmd.Code("c"), chatmd.Plain(" "), chatmd.Link("site", "https://example.com"),
			}},
			want: "b i c site (https://example.com)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, styles.FormatBlock(tt.block, 5))
		})
	}
}

func TestFormatBlock_CodePanel(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	out := styles.FormatBlock(chatmd.Block{Kind: chatmd.BlockCodeBlock, Language: "go", Body: "x := 1\ny := 2"}, 40)

	lines := strings.Split(out, "\n")
	assert.Equal(t, "go", lines[0])
	assert.Contains(t, out, "x := 1")
	assert.Contains(t, out, "y := 2")
	assert.Greater(t, len(lines), 3, "panel adds border lines")
}

func TestFormatFileHeader(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	assert.Equal(t, "a.md (1 block)", styles.FormatFileHeader("a.md", 1))
	assert.Equal(t, "a.md (3 blocks)", styles.FormatFileHeader("a.md", 3))
}
