// Package style holds small lipgloss render helpers so call sites can style a string inline.
package style

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/tubescribe/tubescribe/color"
)

// New returns an empty style.
func New() lipgloss.Style {
	return lipgloss.NewStyle()
}

// Fg returns a function that renders its argument in c.
func Fg(c lipgloss.Color) func(string) string {
	s := New().Foreground(c)
	return func(text string) string { return s.Render(text) }
}

// Truncate returns a function that renders its argument at a fixed width.
func Truncate(width int) func(string) string {
	s := New().Width(width)
	return func(text string) string { return s.Render(text) }
}

var (
	faint = New().Faint(true)
	bold  = New().Bold(true)
	title = New().Foreground(color.New("230")).Background(color.New("62")).Padding(0, 1)
	fatal = title.Background(color.Red)
	link  = New().Foreground(Sapphire).Underline(true)
)

func Faint(s string) string { return faint.Render(s) }

func Bold(s string) string { return bold.Render(s) }

// Title renders a header banner.
func Title(s string) string { return title.Render(s) }

// ErrorTitle renders the banner of the error screen.
func ErrorTitle(s string) string { return fatal.Render(s) }

// Link renders s like a terminal hyperlink.
func Link(s string) string { return link.Render(s) }

// Status renders a short status label in bold c.
func Status(label string, c lipgloss.Color) string {
	return New().Foreground(c).Bold(true).Render(label)
}
