// Package theme holds the colors used by the menu and the TUI.
package theme

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/nibzard/todolist/internal/config"
	"github.com/nibzard/todolist/internal/todo"
)

// ANSI color numbers.
const (
	red     = lipgloss.Color("1")
	green   = lipgloss.Color("2")
	yellow  = lipgloss.Color("3")
	blue    = lipgloss.Color("4")
	magenta = lipgloss.Color("5")
	cyan    = lipgloss.Color("6")
	gray    = lipgloss.Color("8")
)

// Theme is a set of styles bound to one output.
type Theme struct {
	Description lipgloss.Style
	Pending     lipgloss.Style
	Done        lipgloss.Style
	Importance  lipgloss.Style
	Error       lipgloss.Style
	Success     lipgloss.Style
	Warning     lipgloss.Style
	Goodbye     lipgloss.Style

	// TUI only.
	Title  lipgloss.Style
	Cursor lipgloss.Style
	Muted  lipgloss.Style

	color bool
}

// New returns a theme for w. Color is used when mode is always, or when
// mode is auto and w is a terminal.
func New(w io.Writer, mode config.ColorMode) *Theme {
	return newTheme(lipgloss.NewRenderer(w), Enabled(w, mode))
}

// Plain returns a theme that never emits escape sequences.
func Plain() *Theme {
	return newTheme(lipgloss.NewRenderer(io.Discard), false)
}

func newTheme(r *lipgloss.Renderer, color bool) *Theme {
	if color {
		r.SetColorProfile(termenv.ANSI)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	fg := func(c lipgloss.Color) lipgloss.Style {
		return r.NewStyle().Foreground(c).TabWidth(lipgloss.NoTabConversion)
	}
	return &Theme{
		Description: fg(cyan),
		Pending:     fg(red),
		Done:        fg(green),
		Importance:  fg(magenta),
		Error:       fg(red),
		Success:     fg(green),
		Warning:     fg(yellow),
		Goodbye:     fg(blue),
		Title:       fg(cyan).Bold(true),
		Cursor:      fg(yellow).Bold(true),
		Muted:       fg(gray),
		color:       color,
	}
}

// Color reports whether the theme emits colors.
func (t *Theme) Color() bool {
	return t.color
}

// Status renders a status in its color.
func (t *Theme) Status(s todo.Status) string {
	if s == todo.StatusDone {
		return t.Done.Render(string(s))
	}
	return t.Pending.Render(string(s))
}

// Task renders a task the way listings show it:
//
//	desc [status] - Importance: imp
func (t *Theme) Task(task todo.Task) string {
	return t.Description.Render(task.Description) +
		" [" + t.Status(task.Status) + "] - Importance: " +
		t.Importance.Render(string(task.Importance))
}

// Enabled resolves a color mode for w.
func Enabled(w io.Writer, mode config.ColorMode) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		return IsTTY(w)
	}
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
