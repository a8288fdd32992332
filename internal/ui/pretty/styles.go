// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// DefaultWidth is used when the output is not a terminal and no width is configured.
const DefaultWidth = 80

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Block styles
	Heading1  lipgloss.Style
	Heading2  lipgloss.Style
	Heading3  lipgloss.Style
	Rule      lipgloss.Style
	Quote     lipgloss.Style
	Bullet    lipgloss.Style
	Number    lipgloss.Style
	CodeLabel lipgloss.Style
	CodePanel lipgloss.Style

	// Inline styles
	Strong     lipgloss.Style
	Emphasis   lipgloss.Style
	InlineCode lipgloss.Style
	Link       lipgloss.Style
	Href       lipgloss.Style

	// Summary styles
	FilePath lipgloss.Style
	Success  lipgloss.Style
	Failure  lipgloss.Style

	// Table styles
	TableHeader    lipgloss.Style
	TableSeparator lipgloss.Style

	// Misc
	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

// newColorStyles creates styles with ANSI 256 colors.
func newColorStyles() *Styles {
	return &Styles{
		Heading1:  lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true).Underline(true),
		Heading2:  lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		Heading3:  lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		Rule:      lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Quote:     lipgloss.NewStyle().Foreground(lipgloss.Color("7")).Italic(true),
		Bullet:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Number:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		CodeLabel: lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true),
		CodePanel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1),

		Strong:     lipgloss.NewStyle().Bold(true),
		Emphasis:   lipgloss.NewStyle().Italic(true),
		InlineCode: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
		Link:       lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Underline(true),
		Href:       lipgloss.NewStyle().Foreground(lipgloss.Color("8")),

		FilePath: lipgloss.NewStyle().Bold(true),
		Success:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Failure:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),

		TableHeader:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7")),
		TableSeparator: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),

		Dim:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Bold: lipgloss.NewStyle().Bold(true),
	}
}

// newNoColorStyles creates styles with no color formatting. The code panel
// keeps its border so code stays visually fenced.
func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Heading1:       plain,
		Heading2:       plain,
		Heading3:       plain,
		Rule:           plain,
		Quote:          plain,
		Bullet:         plain,
		Number:         plain,
		CodeLabel:      plain,
		CodePanel:      lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1),
		Strong:         plain,
		Emphasis:       plain,
		InlineCode:     plain,
		Link:           plain,
		Href:           plain,
		FilePath:       plain,
		Success:        plain,
		Failure:        plain,
		TableHeader:    plain,
		TableSeparator: plain,
		Dim:            plain,
		Bold:           plain,
	}
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// Mode values: "auto" (default), "always", "never".
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}

// TerminalWidth returns the column count of writer when it is a terminal,
// and fallback otherwise. A non-positive fallback means DefaultWidth.
func TerminalWidth(writer io.Writer, fallback int) int {
	if fallback <= 0 {
		fallback = DefaultWidth
	}
	f, ok := writer.(*os.File)
	if !ok {
		return fallback
	}
	fd := int(f.Fd()) //nolint:gosec // File descriptors fit in int.
	if !term.IsTerminal(fd) {
		return fallback
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return fallback
	}
	return width
}
