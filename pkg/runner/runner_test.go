package runner_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Torykoon/Safeagent/pkg/chatmd"
	"github.com/Torykoon/Safeagent/pkg/fsutil"
	"github.com/Torykoon/Safeagent/pkg/runner"
)

func TestNew(t *testing.T) {
	t.Parallel()

	r := chatmd.New(chatmd.Options{DefaultLanguage: "plain"})
	assert.Same(t, r, runner.New(r).Renderer)
	assert.NotNil(t, runner.New(nil).Renderer)
}

func TestRunner_Run_NoFiles(t *testing.T) {
	t.Parallel()

	result, err := runner.New(nil).Run(context.Background(), runner.Options{WorkingDir: t.TempDir()})
	require.NoError(t, err)
	assert.Empty(t, result.Documents)
	assert.Zero(t, result.Stats.FilesDiscovered)
	assert.False(t, result.HasFailures())
}

func TestRunner_Run_MultipleFiles(t *testing.T) {
	t.Parallel()

	dir := tree(t, map[string]string{
		"a.md":      "# 점검\n- 안전모 착용\n",
		"b.md":      "```go\nfmt.Println()\n```\n",
		"sub/c.txt": "plain line",
	})

	result, err := runner.New(nil).Run(context.Background(), runner.Options{WorkingDir: dir, Jobs: 2})
	require.NoError(t, err)
	require.Len(t, result.Documents, 3)

	paths := []string{result.Documents[0].Path, result.Documents[1].Path, result.Documents[2].Path}
	assert.Equal(t, []string{"a.md", "b.md", filepath.Join("sub", "c.txt")}, paths)

	assert.Equal(t, chatmd.BlockHeading, result.Documents[0].Blocks[0].Kind)
	assert.Equal(t, chatmd.BlockListItem, result.Documents[0].Blocks[1].Kind)
	assert.Equal(t, "go", result.Documents[1].Blocks[0].Language)

	stats := result.Stats
	assert.Equal(t, 3, stats.FilesDiscovered)
	assert.Equal(t, 3, stats.FilesRendered)
	assert.Zero(t, stats.FilesErrored)
	assert.Equal(t, 4, stats.BlocksTotal)
	assert.Equal(t, 1, stats.BlocksByKind[chatmd.BlockCodeBlock])
	assert.Equal(t, 1, stats.BlocksByKind[chatmd.BlockParagraph])
}

func TestRunner_Run_Stdin(t *testing.T) {
	t.Parallel()

	result, err := runner.New(nil).Run(context.Background(), runner.Options{
		Paths:      []string{runner.StdinPath},
		WorkingDir: t.TempDir(),
		Stdin:      strings.NewReader("**주의** 사항"),
	})
	require.NoError(t, err)
	require.Len(t, result.Documents, 1)

	doc := result.Documents[0]
	assert.Equal(t, "-", doc.Path)
	require.Len(t, doc.Blocks, 1)
	assert.Equal(t, []chatmd.Span{chatmd.Bold("주의"), chatmd.Plain(" 사항")}, doc.Blocks[0].Spans)
}

func TestRunner_Run_UnreadableFile(t *testing.T) {
	t.Parallel()

	dir := tree(t, map[string]string{"ok.md": "fine"})
	bad := filepath.Join(dir, "bad.md")
	require.NoError(t, os.WriteFile(bad, []byte("x"), 0o644))
	require.NoError(t, os.Chmod(bad, 0o000))
	if _, err := os.ReadFile(bad); err == nil {
		t.Skip("running with permissions that ignore file modes")
	}

	result, err := runner.New(nil).Run(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	require.Len(t, result.Documents, 2)

	assert.Error(t, result.Documents[0].Error)
	assert.NoError(t, result.Documents[1].Error)
	assert.Equal(t, 1, result.Stats.FilesErrored)
	assert.Equal(t, 1, result.Stats.FilesRendered)
	assert.True(t, result.HasFailures())
}

func TestRunner_Run_SerialVsParallelConsistency(t *testing.T) {
	t.Parallel()

	files := make(map[string]string)
	for i := range 20 {
		files[fmt.Sprintf("doc%02d.md", i)] = fmt.Sprintf("## 항목 %d\n1. `code %d`\n---\n", i, i)
	}
	dir := tree(t, files)

	serial, err := runner.New(nil).Run(context.Background(), runner.Options{WorkingDir: dir, Jobs: 1})
	require.NoError(t, err)
	parallel, err := runner.New(nil).Run(context.Background(), runner.Options{WorkingDir: dir, Jobs: 8})
	require.NoError(t, err)

	assert.Equal(t, serial.Documents, parallel.Documents)
	assert.Equal(t, serial.Stats, parallel.Stats)
}

func TestRunner_Run_ContextCancellation(t *testing.T) {
	t.Parallel()

	dir := tree(t, map[string]string{"a.md": "x"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.New(nil).Run(ctx, runner.Options{WorkingDir: dir})
	require.Error(t, err)
}

func TestRunner_Run_DetectLanguage(t *testing.T) {
	t.Parallel()

	dir := tree(t, map[string]string{"a.md": "```\nbody\n```"})
	r := chatmd.New(chatmd.Options{DetectLanguage: func(string) string { return "guess" }})

	result, err := runner.New(r).Run(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Equal(t, "guess", result.Documents[0].Blocks[0].Language)
}

func TestResult_HasFailures(t *testing.T) {
	t.Parallel()

	var nilResult *runner.Result
	assert.False(t, nilResult.HasFailures())
	assert.True(t, (&runner.Result{Stats: runner.Stats{FilesErrored: 1}}).HasFailures())
}

func TestRunner_Run_MaxFileSize(t *testing.T) {
	t.Parallel()

	dir := tree(t, map[string]string{"big.md": strings.Repeat("x", 100), "small.md": "x"})

	result, err := runner.New(nil).Run(context.Background(), runner.Options{WorkingDir: dir, MaxFileSize: 10})
	require.NoError(t, err)
	require.Len(t, result.Documents, 2)

	require.ErrorIs(t, result.Documents[0].Error, fsutil.ErrTooLarge)
	assert.NoError(t, result.Documents[1].Error)
	assert.Equal(t, 1, result.Stats.FilesErrored)
}
