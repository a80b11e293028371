package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the message colors.
type Theme struct {
	Success lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color
	Warning lipgloss.Color
	Dim     lipgloss.Color
}

// DefaultTheme is the default bright green theme.
var DefaultTheme = Theme{
	Success: lipgloss.Color("#00ff9f"),
	Error:   lipgloss.Color("#ff5f5f"),
	Info:    lipgloss.Color("#5fafff"),
	Warning: lipgloss.Color("#ffaf00"),
	Dim:     lipgloss.Color("#6e7681"),
}

// Styles holds all styles derived from a theme.
type Styles struct {
	Success lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style
	Warning lipgloss.Style
	Dim     lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(t Theme) Styles {
	return Styles{
		Success: lipgloss.NewStyle().Bold(true).Foreground(t.Success),
		Error:   lipgloss.NewStyle().Bold(true).Foreground(t.Error),
		Info:    lipgloss.NewStyle().Foreground(t.Info),
		Warning: lipgloss.NewStyle().Bold(true).Foreground(t.Warning),
		Dim:     lipgloss.NewStyle().Foreground(t.Dim),
	}
}

var styles = NewStyles(DefaultTheme)

// Print helpers for terminal output

// PrintSuccess prints a success message with checkmark
func PrintSuccess(format string, args ...any) {
	printStyled(os.Stdout, styles.Success, "✓", format, args...)
}

// PrintError prints an error message to stderr
func PrintError(format string, args ...any) {
	printStyled(os.Stderr, styles.Error, "Error:", format, args...)
}

// PrintInfo prints an info message
func PrintInfo(format string, args ...any) {
	printStyled(os.Stdout, styles.Info, "ℹ", format, args...)
}

// PrintWarning prints a warning message to stderr
func PrintWarning(format string, args ...any) {
	printStyled(os.Stderr, styles.Warning, "⚠", format, args...)
}

// PrintVerbose prints verbose output to stderr
func PrintVerbose(verbose bool, format string, args ...any) {
	if verbose {
		printStyled(os.Stderr, styles.Dim, "[verbose]", format, args...)
	}
}

func printStyled(w io.Writer, style lipgloss.Style, prefix, format string, args ...any) {
	fmt.Fprintln(w, style.Render(prefix)+" "+fmt.Sprintf(format, args...))
}
