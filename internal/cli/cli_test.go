package cli_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Torykoon/Safeagent/internal/cli"
	"github.com/Torykoon/Safeagent/internal/configloader"
	"github.com/Torykoon/Safeagent/pkg/chatmd"
	"github.com/Torykoon/Safeagent/pkg/fsutil"
	"github.com/Torykoon/Safeagent/pkg/reporter"
)

const answer = `# 안전 점검
**보호구**를 착용하세요.
- 안전모
1. 작업 전 [체크리스트](https://example.com/check) 확인
` + "```bash\nlockout --all\n```\n"

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(cli.BuildInfo{Version: "1.2.3", Commit: "abc123", Date: "2026-01-01"})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func writeAnswer(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRootCommand_Subcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(cli.BuildInfo{})
	names := make([]string, 0, len(cmd.Commands()))
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.Subset(t, names, []string{"render", "init", "version"})

	for _, flag := range []string{"debug", "config", "color"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), "missing --%s", flag)
	}
}

func TestRootHelp_ListsEnvironment(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "", "--help")
	require.NoError(t, err)

	assert.Contains(t, out, "Environment:")
	for _, name := range configloader.ListEnvVars() {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, "render")
}

func TestRenderHelp_ShowsFlags(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "", "render", "--help")
	require.NoError(t, err)

	assert.Contains(t, out, "--format")
	assert.Contains(t, out, "--detect-language")
	assert.Contains(t, out, "Global Flags:")
	assert.NotContains(t, out, "Environment:")
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "", "version")
	require.NoError(t, err)

	assert.Contains(t, out, "safeagent")
	assert.Contains(t, out, "1.2.3")
	assert.Contains(t, out, "abc123")
}

func TestRender_TextFromStdin(t *testing.T) {
	t.Parallel()

	out, err := execute(t, answer, "render", "-", "--no-config", "--color", "never", "--width", "40")
	require.NoError(t, err)

	assert.Contains(t, out, "안전 점검")
	assert.Contains(t, out, "• 안전모")
	assert.Contains(t, out, "1. 작업 전 체크리스트 (https://example.com/check) 확인")
	assert.Contains(t, out, "lockout --all")
	assert.NotContains(t, out, "**")
}

func TestRender_JSON(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeAnswer(t, dir, "answer.md", answer)

	out, err := execute(t, "", "render", path, "--no-config", "-f", "json")
	require.NoError(t, err)

	var got reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Documents, 1)
	assert.Equal(t, 1, got.Summary.Rendered)

	blocks := got.Documents[0].Blocks
	require.Len(t, blocks, 5)
	assert.Equal(t, chatmd.BlockHeading, blocks[0].Kind)
	assert.Equal(t, chatmd.BlockParagraph, blocks[1].Kind)
	assert.Equal(t, chatmd.BlockListItem, blocks[2].Kind)
	assert.True(t, blocks[3].Ordered)
	assert.Equal(t, chatmd.BlockCodeBlock, blocks[4].Kind)
	assert.Equal(t, "bash", blocks[4].Language)
	assert.Equal(t, "lockout --all", blocks[4].Body)
}

func TestRender_DefaultLanguageFlag(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "```\nx\n```", "render", "-", "--no-config", "-f", "json", "--default-language", "plain")
	require.NoError(t, err)

	var got reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Documents, 1)
	require.Len(t, got.Documents[0].Blocks, 1)
	assert.Equal(t, "plain", got.Documents[0].Blocks[0].Language)
}

func TestRender_HTMLToFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeAnswer(t, dir, "answer.md", answer)
	output := filepath.Join(dir, "answer.html")

	out, err := execute(t, "", "render", path, "--no-config", "-f", "html", "-o", output)
	require.NoError(t, err)
	assert.Empty(t, out)

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	html := string(content)
	assert.Contains(t, html, `<article class="chat-answer"`)
	assert.Contains(t, html, "<h2>안전 점검</h2>")
	assert.Contains(t, html, "<strong>보호구</strong>")
	assert.Contains(t, html, `href="https://example.com/check"`)
}

func TestRender_Tree(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "## 절차\n---\n", "render", "-", "--no-config", "--color", "never", "-f", "tree")
	require.NoError(t, err)

	assert.Contains(t, out, "heading h2")
	assert.Contains(t, out, "rule")
}

func TestRender_DirectoryFiltersExtensions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeAnswer(t, dir, "a.md", "# A\n")
	writeAnswer(t, dir, "b.txt", "# B\n")
	writeAnswer(t, dir, "c.go", "package c\n")

	out, err := execute(t, "", "render", dir, "--no-config", "-f", "json", "--extensions", ".md")
	require.NoError(t, err)

	var got reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Documents, 1)
	assert.Equal(t, "a.md", filepath.Base(got.Documents[0].Path))
}

func TestRender_FailedDocument(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writeAnswer(t, dir, "big.md", strings.Repeat("x", 64))

	out, err := execute(t, "", "render", path, "--no-config", "-f", "json", "--max-size", "8")
	require.ErrorIs(t, err, cli.ErrRenderFailures)
	assert.Equal(t, cli.ExitRenderFailures, cli.ExitCode(err))

	var got reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 1, got.Summary.Errored)
	require.Len(t, got.Documents, 1)
	assert.NotEmpty(t, got.Documents[0].Error)
}

func TestRender_InvalidUsage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
	}{
		{"unknown format", []string{"render", "-", "--no-config", "--format", "pdf"}},
		{"negative jobs", []string{"render", "-", "--no-config", "--jobs", "-1"}},
		{"negative max size", []string{"render", "-", "--no-config", "--max-size", "-5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := execute(t, "", tt.args...)
			require.Error(t, err)
			assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))
		})
	}
}

func TestRender_ExplicitConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := writeAnswer(t, dir, "custom.yml", "format: json\ndefault_language: shell\n")

	out, err := execute(t, "```\necho\n```", "render", "-", "--no-config", "--config", cfgPath)
	require.NoError(t, err)

	var got reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Documents, 1)
	assert.Equal(t, "shell", got.Documents[0].Blocks[0].Language)
}

func TestRender_InvalidConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := writeAnswer(t, dir, "bad.yml", "format: pdf\n")

	_, err := execute(t, "", "render", "-", "--no-config", "--config", cfgPath)
	require.Error(t, err)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCode(err))
}

func TestInit(t *testing.T) {
	t.Parallel()

	t.Run("creates file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), ".safeagent.yml")
		_, err := execute(t, "", "init", "-o", path)
		require.NoError(t, err)

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), "format")
	})

	t.Run("refuses to overwrite", func(t *testing.T) {
		t.Parallel()

		path := writeAnswer(t, t.TempDir(), ".safeagent.yml", "format: json\n")
		_, err := execute(t, "", "init", "-o", path)
		require.ErrorIs(t, err, cli.ErrInvalidUsage)

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "format: json\n", string(content))
	})

	t.Run("force keeps backup", func(t *testing.T) {
		t.Parallel()

		path := writeAnswer(t, t.TempDir(), ".safeagent.yml", "format: json\n")
		_, err := execute(t, "", "init", "--force", "--full", "-o", path)
		require.NoError(t, err)

		backup, err := os.ReadFile(fsutil.BackupPath(path))
		require.NoError(t, err)
		assert.Equal(t, "format: json\n", string(backup))

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.NotEqual(t, "format: json\n", string(content))
	})
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, cli.ExitSuccess},
		{"render failures", cli.ErrRenderFailures, cli.ExitRenderFailures},
		{"wrapped usage", fmt.Errorf("bad flag: %w", cli.ErrInvalidUsage), cli.ExitInvalidUsage},
		{"config", &configloader.ValidationError{Field: "format", Message: "bad"}, cli.ExitConfigError},
		{"not found", fsutil.ErrNotFound, cli.ExitIOError},
		{"fs not exist", fmt.Errorf("stat x: %w", fs.ErrNotExist), cli.ExitIOError},
		{"other", errors.New("boom"), cli.ExitInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, cli.ExitCode(tt.err))
		})
	}
}
