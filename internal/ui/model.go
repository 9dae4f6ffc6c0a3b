// Package ui provides ephemeral notifications appended to the bottom line of a view.
package ui

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tubescribe/tubescribe/style"
)

// Lifetime is how long a notification stays on screen.
const Lifetime = 3 * time.Second

// Model holds the notification currently on screen.
type Model struct {
	notification string
	serial       int
}

// NotificationMsg shows Text until a newer one arrives or Lifetime passes.
type NotificationMsg struct {
	Text string
}

type clearMsg struct {
	serial int
}

// Notify returns a tea.Cmd that shows text.
func Notify(text string) tea.Cmd {
	return func() tea.Msg {
		return NotificationMsg{Text: text}
	}
}

// Update handles notification messages and ignores everything else.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case NotificationMsg:
		m.notification = msg.Text
		m.serial++
		serial := m.serial
		return tea.Tick(Lifetime, func(time.Time) tea.Msg {
			return clearMsg{serial: serial}
		})
	case clearMsg:
		// an older timer must not hide a newer notification
		if msg.serial == m.serial {
			m.notification = ""
		}
	}
	return nil
}

// Current returns the notification on screen, if any.
func (m *Model) Current() string {
	return m.notification
}

// View appends the notification to the last line of mainContent.
func (m *Model) View(mainContent string) string {
	if m.notification == "" {
		return mainContent
	}

	lines := strings.Split(mainContent, "\n")
	lines[len(lines)-1] += "  " + style.Faint(m.notification)
	return strings.Join(lines, "\n")
}
