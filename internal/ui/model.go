// Package ui holds the bubbletea settings form.
package ui

import (
	"strings"
	"time"

	"github.com/autoskip-cli/autoskip/style"
	tea "github.com/charmbracelet/bubbletea"
)

const statusHold = 2 * time.Second

// statusMsg sets the form's transient status line.
type statusMsg string

// clearStatusMsg resets the status line once it has been shown for statusHold.
type clearStatusMsg struct {
	seq int
}

// status is a one-line notice under the form that clears itself.
type status struct {
	text string
	seq  int
}

func setStatus(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg(text) }
}

func (s *status) clearAfter(d time.Duration) tea.Cmd {
	seq := s.seq
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

// Update returns the command that eventually clears the notice.
func (s *status) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case statusMsg:
		s.text = string(msg)
		s.seq++
		return s.clearAfter(statusHold)
	case clearStatusMsg:
		// A newer notice has replaced the one this tick was for.
		if msg.seq == s.seq {
			s.text = ""
		}
	}
	return nil
}

// View appends the notice to the last line of content.
func (s *status) View(content string) string {
	if s.text == "" {
		return content
	}

	lines := strings.Split(content, "\n")
	lines[len(lines)-1] += "  " + style.Faint(s.text)
	return strings.Join(lines, "\n")
}
