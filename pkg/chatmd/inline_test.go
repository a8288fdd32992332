package chatmd_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Torykoon/Safeagent/pkg/chatmd"
)

func TestTokenize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want []chatmd.Span
	}{
		{"empty", "", nil},
		{"plain", "hello world", []chatmd.Span{chatmd.Plain("hello world")}},
		{"inline code", "run `make test` now", []chatmd.Span{
			chatmd.Plain("run "), chatmd.Code("make test"), chatmd.Plain(" now"),
		}},
		{"code wins over bold", "`**x**`", []chatmd.Span{chatmd.Code("**x**")}},
		{"bold asterisks", "**hard hat** required", []chatmd.Span{
			chatmd.Bold("hard hat"), chatmd.Plain(" required"),
		}},
		{"bold underscores", "__scaffold__", []chatmd.Span{chatmd.Bold("scaffold")}},
		{"bold closes at first delimiter", "**a** and **b**", []chatmd.Span{
			chatmd.Bold("a"), chatmd.Plain(" and "), chatmd.Bold("b"),
		}},
		{"italic asterisk", "*caution*", []chatmd.Span{chatmd.Italic("caution")}},
		{"italic underscore", "an _emphasized_ word", []chatmd.Span{
			chatmd.Plain("an "), chatmd.Italic("emphasized"), chatmd.Plain(" word"),
		}},
		{"link", "see [docs](http://example.com)", []chatmd.Span{
			chatmd.Plain("see "), chatmd.Link("docs", "http://example.com"),
		}},
		{"dangling asterisk", "a * b", []chatmd.Span{chatmd.Plain("a * b")}},
		{"trailing asterisk", "end*", []chatmd.Span{chatmd.Plain("end*")}},
		{"empty bold stays literal", "****", []chatmd.Span{chatmd.Plain("****")}},
		{"empty code stays literal", "``", []chatmd.Span{chatmd.Plain("``")}},
		{"unclosed bold falls back to italic", "**a*", []chatmd.Span{
			chatmd.Plain("*"), chatmd.Italic("a"),
		}},
		{"bracket without link", "[not a link] here", []chatmd.Span{chatmd.Plain("[not a link] here")}},
		{"link with empty href", "[x]()", []chatmd.Span{chatmd.Plain("[x]()")}},
		{"snake case identifiers", "use snake_case_names", []chatmd.Span{
			chatmd.Plain("use snake"), chatmd.Italic("case"), chatmd.Plain("names"),
		}},
		{"multibyte text", "**안전모** 착용", []chatmd.Span{
			chatmd.Bold("안전모"), chatmd.Plain(" 착용"),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, chatmd.Tokenize(tt.text))
		})
	}
}
