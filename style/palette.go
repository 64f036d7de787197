package style

import "github.com/charmbracelet/lipgloss"

// Colors of the missing-player box.
var (
	Text   = lipgloss.Color("#cdd6f4")
	Accent = lipgloss.Color("#cba6f7")
	Danger = lipgloss.Color("#f38ba8")
)
