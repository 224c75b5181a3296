package output

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// IsTTY returns true if stdout is a terminal
func IsTTY() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// colorsEnabled reports whether styled output should be used
func colorsEnabled() bool {
	if !IsTTY() {
		return false
	}
	return termenv.EnvColorProfile() != termenv.Ascii
}

// ColorGreen colors text green
func ColorGreen(text string) string {
	if !colorsEnabled() {
		return text
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("2")).
		Render(text)
}

// ColorRed colors text red
func ColorRed(text string) string {
	if !colorsEnabled() {
		return text
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("1")).
		Render(text)
}

// ColorYellow colors text yellow
func ColorYellow(text string) string {
	if !colorsEnabled() {
		return text
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("3")).
		Render(text)
}

// ColorCyan colors text cyan
func ColorCyan(text string) string {
	if !colorsEnabled() {
		return text
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("6")).
		Render(text)
}

// ColorSHA styles a commit or tree SHA
func ColorSHA(sha string) string {
	if !colorsEnabled() {
		return sha
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Render(sha)
}

// ColorBranch styles a branch name
func ColorBranch(branch string) string {
	if !colorsEnabled() {
		return branch
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("39")).
		Bold(true).
		Render(branch)
}
