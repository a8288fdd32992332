package pretty_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Torykoon/Safeagent/internal/ui/pretty"
	"github.com/Torykoon/Safeagent/pkg/chatmd"
	"github.com/Torykoon/Safeagent/pkg/runner"
)

func TestFormatStatsTable(t *testing.T) {
	t.Parallel()

	blocks := chatmd.Render("# 제목\n본문\n- 하나\n```\ncode\n```")
	result := &runner.Result{
		Documents: []runner.Document{
			{Path: "answers/first.md", Blocks: blocks},
			{Path: "broken.md", Error: errors.New("read: permission denied")},
		},
		Stats: runner.Stats{
			FilesDiscovered: 2, FilesRendered: 1, FilesErrored: 1,
			BlocksTotal:  len(blocks),
			BlocksByKind: chatmd.Count(blocks),
		},
	}

	out := pretty.NewStyles(false).FormatStatsTable(result)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 6)

	assert.True(t, strings.HasPrefix(lines[0], "FILE"))
	assert.Contains(t, lines[0], "HEADINGS")
	assert.Equal(t, strings.Repeat("=", len(lines[1])), lines[1])
	assert.Equal(t, []string{"answers/first.md", "1", "1", "1", "1", "4"}, strings.Fields(lines[2]))
	assert.Equal(t, []string{"broken.md", "failed"}, strings.Fields(lines[3]))
	assert.Equal(t, []string{"TOTAL", "1", "1", "1", "1", "4"}, strings.Fields(lines[5]))
}

func TestFormatStatsTable_Empty(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	assert.Empty(t, styles.FormatStatsTable(nil))
	assert.Empty(t, styles.FormatStatsTable(&runner.Result{}))
}
