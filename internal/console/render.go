// Package console renders lookup results for a terminal and runs the
// interactive prompt loop used by the CLI.
package console

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/fleveque/store-context/internal/model"
)

const (
	colorCyan   = lipgloss.Color("12")
	colorYellow = lipgloss.Color("11")
	colorRed    = lipgloss.Color("9")
	colorGray   = lipgloss.Color("8")
)

const separatorWidth = 60

var (
	headerStyle   = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	bodyStyle     = lipgloss.NewStyle().Width(separatorWidth)
	fallbackStyle = lipgloss.NewStyle().Width(separatorWidth).Foreground(colorYellow)
	errorStyle    = lipgloss.NewStyle().Foreground(colorRed)
	dimStyle      = lipgloss.NewStyle().Foreground(colorGray)
	promptStyle   = lipgloss.NewStyle().Foreground(colorCyan)
)

// Render writes a result block: header, body, separator, timestamp.
func Render(w io.Writer, result *model.LookupResult, at time.Time) error {
	body := bodyStyle
	if result.Source == model.SourceFallback {
		body = fallbackStyle
	}

	separator := strings.Repeat("─", separatorWidth)
	block := strings.Join([]string{
		"",
		headerStyle.Render("About " + result.Identifier),
		body.Render(result.Text),
		dimStyle.Render(separator),
		dimStyle.Render("Looked up " + at.Format("2006-01-02 15:04:05")),
		"",
	}, "\n")

	_, err := fmt.Fprintln(w, block)
	return err
}

// RenderError writes a single styled error line.
func RenderError(w io.Writer, msg string) error {
	_, err := fmt.Fprintln(w, errorStyle.Render("✗ "+msg))
	return err
}
