// Package style renders the basset CLI output with Lipgloss.
package style

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Marks printed in front of each written, skipped or failed bundle
const (
	MarkDone = "✓"
	MarkSkip = "-"
	MarkFail = "✗"
)

// ANSI 16 colors, the terminal theme decides the shade
const (
	green  = lipgloss.Color("2")
	yellow = lipgloss.Color("3")
	red    = lipgloss.Color("1")
	blue   = lipgloss.Color("4")
	gray   = lipgloss.Color("8")
)

var (
	// Success written bundles and published keys
	Success lipgloss.Style
	// Warning nothing to do
	Warning lipgloss.Style
	// Error failed publishes
	Error lipgloss.Style
	// Info paths and urls
	Info lipgloss.Style
	// Dim secondary text, spinner frames and table separators
	Dim  lipgloss.Style
	Bold lipgloss.Style
)

func init() {
	apply(true)
}

// apply rebuilds every style, without color or weight when color is false
func apply(color bool) {
	style := func(c lipgloss.Color, bold bool) lipgloss.Style {
		s := lipgloss.NewStyle()
		if !color {
			return s
		}
		if c != "" {
			s = s.Foreground(c)
		}
		return s.Bold(bold)
	}
	Success = style(green, true)
	Warning = style(yellow, true)
	Error = style(red, true)
	Info = style(blue, false)
	Dim = style(gray, false)
	Bold = style("", true)
}

// SetColorMode applies the --color flag, "auto" leaves the terminal detection to lipgloss
func SetColorMode(mode string) {
	switch mode {
	case "never":
		_ = os.Setenv("NO_COLOR", "1")
		apply(false)
	case "always":
		_ = os.Unsetenv("NO_COLOR")
		_ = os.Setenv("CLICOLOR_FORCE", "1")
		apply(true)
	}
}
